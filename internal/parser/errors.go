package parser

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedLine = errors.New("malformed log entry")
	ErrConversion    = errors.New("data conversion error")
)

// ConversionError is returned when a line matches the grammar but one of its
// numeric fields does not fit an int.
type ConversionError struct {
	Field string
	Value string
	Err   error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("%s: invalid %s %q: %v", ErrConversion, e.Field, e.Value, e.Err)
}

func (e *ConversionError) Unwrap() []error {
	return []error{ErrConversion, e.Err}
}
