package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing server record.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists signals a duplicate server record.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidQuery signals a structurally malformed discovery query.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrCatalogUnavailable signals that the catalog read dependency failed.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	// ErrInvalidRecord signals a server record that fails validation.
	ErrInvalidRecord = errors.New("invalid server record")
)

// InvalidQueryError wraps ErrInvalidQuery with the offending request field.
type InvalidQueryError struct {
	Field  string
	Reason string
}

func (e *InvalidQueryError) Error() string {
	return fmt.Sprintf("%s: field %q: %s", ErrInvalidQuery.Error(), e.Field, e.Reason)
}

func (e *InvalidQueryError) Unwrap() error { return ErrInvalidQuery }

// NewInvalidQuery creates an invalid query error for a named request field.
func NewInvalidQuery(field, reason string) error {
	return &InvalidQueryError{Field: field, Reason: reason}
}
