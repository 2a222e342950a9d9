package core

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNotFound is returned when a row looked up by its id does not exist.
var ErrNotFound = errors.New("not found")

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

// NewFieldError is a shortcut for a ValidationError on a single field.
func NewFieldError(field, msg string) error {
	return NewValidationError(errors.New(field+": "+msg), FieldError{Field: field, Error: msg})
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// ReferenceError reports that a name typed by the user does not resolve to an existing row.
type ReferenceError struct {
	Entity string
	Field  string
	Value  string
}

func NewReferenceError(entity, field, value string) error {
	return &ReferenceError{Entity: entity, Field: field, Value: value}
}

func (err ReferenceError) Error() string {
	return fmt.Sprintf("%s %q not found", err.Entity, err.Value)
}

func IsReferenceNotFound(err error) bool {
	_, ok := errors.Cause(err).(*ReferenceError)
	return ok
}

// DuplicateKeyError reports a unique constraint violation on Field.
type DuplicateKeyError struct {
	Field string
	Value string
}

func NewDuplicateKeyError(field, value string) error {
	return &DuplicateKeyError{Field: field, Value: value}
}

func (err DuplicateKeyError) Error() string {
	if err.Value == "" {
		return fmt.Sprintf("%s already exists", err.Field)
	}
	return fmt.Sprintf("%s %q already exists", err.Field, err.Value)
}

func IsDuplicateKey(err error) bool {
	_, ok := errors.Cause(err).(*DuplicateKeyError)
	return ok
}

func IsNotFound(err error) bool {
	return errors.Cause(err) == ErrNotFound
}
