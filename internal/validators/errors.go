package validators

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrUnsupportedType  = errors.New("unsupported type for validation")
	ErrUnknownField     = errors.New("unknown field for validation")
	ErrNoFieldsToUpdate = errors.New("at least one field must be provided for update")
	ErrInvalidNoteID    = errors.New("invalid note ID")
	ErrInvalidAuthorID  = errors.New("invalid author ID")
)

// ValidationError carries field-level messages keyed by JSON field name.
// It is rendered as the "details" object of an error response.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError returns an empty ValidationError ready for Add.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// Add appends msg to the messages of field.
func (e *ValidationError) Add(field, msg string) {
	e.Fields[field] = append(e.Fields[field], msg)
}

// HasErrors reports whether any message was added.
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

// Error lists the offending fields in a stable order.
func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	return "validation failed: " + strings.Join(fields, ", ")
}

// only drops messages of fields not listed. No fields keeps everything.
func (e *ValidationError) only(fields ...string) *ValidationError {
	if len(fields) == 0 {
		return e
	}

	keep := make(map[string]bool, len(fields))
	for _, f := range fields {
		keep[f] = true
	}
	for f := range e.Fields {
		if !keep[f] {
			delete(e.Fields, f)
		}
	}
	return e
}

// orNil returns e as an error only when it holds messages.
func (e *ValidationError) orNil() error {
	if e.HasErrors() {
		return e
	}
	return nil
}
