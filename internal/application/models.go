package application

import "time"

// Employee represents an employee exposed by the application services.
type Employee struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
}

// EmployeeInput captures caller provided employee fields.
type EmployeeInput struct {
	Name  string
	Email string
}

// Meeting represents a persisted meeting.
type Meeting struct {
	ID             string
	Topic          string
	Start          time.Time
	End            time.Time
	ParticipantIDs []string
	CreatedAt      time.Time
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

// BookMeetingParams wraps the data required to book a meeting.
type BookMeetingParams struct {
	AdminID        string
	Topic          string
	Start          time.Time
	End            time.Time
	ParticipantIDs []string
}

// ParticipantCalendar pairs a participant with their full slot history.
type ParticipantCalendar struct {
	Employee Employee
	Slots    []CalendarSlot
}

// BookedMeeting is the read-after-write projection returned by BookMeeting:
// the persisted meeting together with each participant's slot history.
type BookedMeeting struct {
	Meeting      Meeting
	Participants []ParticipantCalendar
}

// FreeSlotsParams wraps the data required to query available slots.
type FreeSlotsParams struct {
	EmployeeIDs     []string
	RequestedStart  time.Time
	DurationMinutes int
}

// ConflictQueryParams wraps the data required for the conflict diagnostic.
type ConflictQueryParams struct {
	RequestedStart  time.Time
	DurationMinutes int
}
