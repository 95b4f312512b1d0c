package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfiguration indicates a scaffold request with bad identifiers
// or coordinates. Nothing is written when it is reported.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// ValidationError represents a single invalid field.
type ValidationError struct {
	Field   string
	Message string
	Value   any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("field %q: %s (got: %v)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("field %q: %s", e.Field, e.Message)
}

// Unwrap returns ErrInvalidConfiguration.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfiguration
}

// ValidationErrors collects every invalid field of a ProjectConfig.
type ValidationErrors struct {
	Errors []ValidationError
}

// Error implements the error interface.
func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "invalid configuration: no errors"
	}
	msgs := make([]string, len(e.Errors))
	for i := range e.Errors {
		msgs[i] = e.Errors[i].Error()
	}
	return fmt.Sprintf("invalid configuration: %d error(s): %s", len(e.Errors), strings.Join(msgs, "; "))
}

// Is reports true for ErrInvalidConfiguration.
func (e *ValidationErrors) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

// Fields returns the names of the invalid fields in reporting order.
func (e *ValidationErrors) Fields() []string {
	out := make([]string, len(e.Errors))
	for i := range e.Errors {
		out[i] = e.Errors[i].Field
	}
	return out
}
