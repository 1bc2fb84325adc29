package application

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("application: not found")
	// ErrAlreadyExists is returned when a unique attribute is already taken.
	ErrAlreadyExists = errors.New("application: already exists")
)

// NotFoundError is a not-found failure that names the missing resource and,
// where known, the offending identifiers. It unwraps to ErrNotFound so
// callers can match with errors.Is.
type NotFoundError struct {
	Resource string
	IDs      []string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e == nil {
		return ErrNotFound.Error()
	}
	if len(e.IDs) == 0 {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s not found: %s", e.Resource, strings.Join(e.IDs, ", "))
}

// Unwrap allows errors.Is(err, ErrNotFound) to match.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// ConflictError reports a scheduling conflict for a named participant.
type ConflictError struct {
	EmployeeID   string
	EmployeeName string
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	if e == nil {
		return "scheduling conflict"
	}
	name := e.EmployeeName
	if name == "" {
		name = e.EmployeeID
	}
	return fmt.Sprintf("participant %s has a scheduling conflict", name)
}

// ValidationError captures field level validation issues that callers can surface to users.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	if v == nil {
		return ""
	}
	return "validation failed"
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// add records a field level validation error.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}

func (v *ValidationError) merge(other *ValidationError) {
	if other == nil {
		return
	}
	for field, message := range other.FieldErrors {
		v.add(field, message)
	}
}
