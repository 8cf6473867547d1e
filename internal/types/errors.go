package types

import (
	"errors"
	"fmt"
)

// ErrNullArgument is the sentinel every *NullArgumentError matches with
// errors.Is, so callers can branch on the kind without a type assertion.
var ErrNullArgument = errors.New("required argument is missing")

// NullArgumentError reports a constructor argument that was absent.
// In Go terms "absent" means the zero value of a value type (one that was
// never produced by its NewXxx constructor) or a nil collection.
type NullArgumentError struct {
	Param string
}

func (e *NullArgumentError) Error() string {
	return fmt.Sprintf("%s must not be null", e.Param)
}

func (e *NullArgumentError) Is(target error) bool {
	return target == ErrNullArgument
}

func nullArg(param string) error {
	return &NullArgumentError{Param: param}
}

// FormatError is returned by the value-type constructors when the raw
// input does not satisfy the field's constraint.
type FormatError struct {
	Field      string
	Value      string
	Constraint string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Constraint)
}
