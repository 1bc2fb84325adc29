package persistence

import (
	"context"
	"time"
)

// EmployeeRepository exposes lookup and creation operations for employees.
// Employees are immutable once created and are never deleted.
type EmployeeRepository interface {
	CreateEmployee(ctx context.Context, employee Employee) error
	GetEmployee(ctx context.Context, id string) (Employee, error)
	GetEmployeeByEmail(ctx context.Context, email string) (Employee, error)
	ListEmployees(ctx context.Context) ([]Employee, error)
	ListEmployeesByIDs(ctx context.Context, ids []string) ([]Employee, error)
	MissingEmployeeIDs(ctx context.Context, ids []string) ([]string, error)
}

// MeetingRepository stores meetings and their participant references.
type MeetingRepository interface {
	// CreateMeetingWithSlots writes the meeting, its participant rows, and
	// one calendar slot per participant in a single transaction. Before
	// writing it re-checks for booked slots overlapping the meeting range and
	// returns a *SlotConflictError when any participant is already occupied.
	CreateMeetingWithSlots(ctx context.Context, meeting Meeting, slots []CalendarSlot) error
	GetMeeting(ctx context.Context, id string) (Meeting, error)
	ListMeetingsOverlapping(ctx context.Context, start, end time.Time) ([]Meeting, error)
	ListMeetingsByEmployee(ctx context.Context, employeeID string) ([]Meeting, error)
}

// CalendarSlotRepository stores calendar slot records.
type CalendarSlotRepository interface {
	ListSlotsByEmployee(ctx context.Context, employeeID string) ([]CalendarSlot, error)
	// ConflictingSlotOwners returns the distinct owners, among the supplied
	// employee ids, of booked slots that overlap the half-open range
	// [start, end). A single batched query replaces per-employee round trips.
	ConflictingSlotOwners(ctx context.Context, employeeIDs []string, start, end time.Time) ([]string, error)
}
