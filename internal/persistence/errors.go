package persistence

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("persistence: not found")
	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = errors.New("persistence: duplicate record")
	// ErrConstraintViolation is returned when a CHECK constraint rejects a write.
	ErrConstraintViolation = errors.New("persistence: constraint violation")
	// ErrForeignKeyViolation is returned when a referenced record is missing.
	ErrForeignKeyViolation = errors.New("persistence: foreign key violation")
)

// SlotConflictError reports employees whose booked calendar slots overlap the
// range of an attempted booking. It is produced by the transactional booking
// write so that a conflict committed by a concurrent transaction is still
// observed.
type SlotConflictError struct {
	EmployeeIDs []string
}

// Error implements the error interface.
func (e *SlotConflictError) Error() string {
	if e == nil || len(e.EmployeeIDs) == 0 {
		return "persistence: slot conflict"
	}
	return fmt.Sprintf("persistence: slot conflict for employees %s", strings.Join(e.EmployeeIDs, ", "))
}
