// Package errs provides standardized error types for the ordering application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used by the domain model, the application layer and the adapters.
//
// The package includes one error type per failure category:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed input
//     (together they form the validation category, see IsValidation)
//   - InvalidStateError: an operation attempted from a state that forbids it
//   - ValueIsDuplicateError: a business key that must be unique already exists
//   - CurrencyMismatchError: arithmetic or comparison across different currencies
//   - ObjectNotFoundError: a referenced object cannot be found
//   - VersionIsInvalidError: an optimistic-lock version no longer matches storage
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is works
package errs
