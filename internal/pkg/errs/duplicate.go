package errs

import (
	"errors"
	"fmt"
)

var ErrValueIsDuplicate = errors.New("value is duplicate")

// ValueIsDuplicateError is returned when a business key that must be unique
// inside its owner already exists, e.g. a SKU already present in an order.
type ValueIsDuplicateError struct {
	ParamName string
	Value     any
}

func NewValueIsDuplicateError(paramName string, value any) *ValueIsDuplicateError {
	return &ValueIsDuplicateError{ParamName: paramName, Value: value}
}

func (e *ValueIsDuplicateError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrValueIsDuplicate, e.ParamName, sanitize(e.Value))
}

func (e *ValueIsDuplicateError) Unwrap() error {
	return ErrValueIsDuplicate
}
