package persistence

import "time"

// Employee represents an employee record in the scheduling domain.
type Employee struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
}

// Meeting represents a booked meeting stored in persistence. Participants are
// referenced by employee id only; the object graph is one-directional.
type Meeting struct {
	ID           string
	Topic        string
	Start        time.Time
	End          time.Time
	Participants []string
	CreatedAt    time.Time
}

// CalendarSlot represents a time range on one employee's calendar.
type CalendarSlot struct {
	ID         string
	EmployeeID string
	Start      time.Time
	End        time.Time
	Available  bool
	CreatedAt  time.Time
}
