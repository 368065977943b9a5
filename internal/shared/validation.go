package shared

import (
	"errors"
	"sort"
	"strings"
)

// ValidationError carries field-keyed French messages back to the form.
type ValidationError struct {
	Fields map[string]string

	order []string
}

// NewValidationError returns an empty ValidationError ready to be filled.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records a message for a field, keeping the first message per field.
func (e *ValidationError) Add(field, message string) {
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = message
		e.order = append(e.order, field)
	}
}

// First returns the earliest recorded failure, or empty strings when none.
func (e *ValidationError) First() (field, message string) {
	if len(e.order) == 0 {
		return "", ""
	}
	return e.order[0], e.Fields[e.order[0]]
}

// Any reports whether at least one field failed.
func (e *ValidationError) Any() bool {
	return len(e.Fields) > 0
}

// Error summarises the failed fields.
func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "validation: " + strings.Join(fields, ", ")
}

// ErrIfAny returns e as an error when it holds failures, nil otherwise.
func (e *ValidationError) ErrIfAny() error {
	if e.Any() {
		return e
	}
	return nil
}

// AsValidationError unwraps err into a ValidationError when possible.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
