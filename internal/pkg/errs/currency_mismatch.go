package errs

import (
	"errors"
	"fmt"
)

var ErrCurrencyMismatch = errors.New("currency mismatch")

// CurrencyMismatchError is returned when two monetary values of different
// currencies are combined or compared.
type CurrencyMismatchError struct {
	Expected string
	Actual   string
}

func NewCurrencyMismatchError(expected, actual string) *CurrencyMismatchError {
	return &CurrencyMismatchError{Expected: expected, Actual: actual}
}

func (e *CurrencyMismatchError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", ErrCurrencyMismatch, sanitize(e.Expected), sanitize(e.Actual))
}

func (e *CurrencyMismatchError) Unwrap() error {
	return ErrCurrencyMismatch
}
