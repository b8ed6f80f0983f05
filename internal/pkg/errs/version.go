package errs

import (
	"errors"
	"fmt"
)

var ErrVersionIsInvalid = errors.New("version is invalid")

// VersionIsInvalidError signals an optimistic-lock conflict: the stored row was
// changed by someone else since the aggregate was loaded.
type VersionIsInvalidError struct {
	ParamName string
	Version   int
	Cause     error
}

func NewVersionIsInvalidError(paramName string, version int) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName, Version: version}
}

func NewVersionIsInvalidErrorWithCause(paramName string, version int, cause error) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName, Version: version, Cause: cause}
}

func (e *VersionIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s at version %d", ErrVersionIsInvalid, e.ParamName, e.Version), e.Cause)
}

func (e *VersionIsInvalidError) Unwrap() error {
	return ErrVersionIsInvalid
}
