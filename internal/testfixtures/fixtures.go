package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/meeting-scheduler/internal/application"
	"github.com/example/meeting-scheduler/internal/persistence"
	"github.com/example/meeting-scheduler/internal/scheduler"
)

var (
	employeeCounter uint64
	meetingCounter  uint64
	slotCounter     uint64
)

var referenceTime = time.Date(2024, time.January, 2, 15, 4, 5, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// --------------------------- Employee fixtures ---------------------------

// EmployeeFixture represents a deterministic employee record that can be
// materialised for application or persistence tests.
type EmployeeFixture struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
}

// EmployeeOption configures the generated employee fixture.
type EmployeeOption func(*EmployeeFixture)

// NewEmployeeFixture returns a deterministic employee fixture with optional overrides.
func NewEmployeeFixture(opts ...EmployeeOption) EmployeeFixture {
	idx := atomic.AddUint64(&employeeCounter, 1)
	id := fmt.Sprintf("employee-%03d", idx)
	fixture := EmployeeFixture{
		ID:        id,
		Name:      fmt.Sprintf("Employee %03d", idx),
		Email:     fmt.Sprintf("%s@example.com", id),
		CreatedAt: referenceTime.Add(time.Duration(idx) * time.Minute),
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithEmployeeID overrides the generated employee ID.
func WithEmployeeID(id string) EmployeeOption {
	return func(f *EmployeeFixture) {
		f.ID = id
	}
}

// WithEmployeeName overrides the generated name.
func WithEmployeeName(name string) EmployeeOption {
	return func(f *EmployeeFixture) {
		f.Name = name
	}
}

// WithEmployeeEmail overrides the generated email address.
func WithEmployeeEmail(email string) EmployeeOption {
	return func(f *EmployeeFixture) {
		f.Email = email
	}
}

// WithEmployeeCreatedAt sets the created timestamp on the fixture.
func WithEmployeeCreatedAt(t time.Time) EmployeeOption {
	return func(f *EmployeeFixture) {
		f.CreatedAt = t
	}
}

// Application returns the fixture as an application.Employee value.
func (f EmployeeFixture) Application() application.Employee {
	return application.Employee{
		ID:        f.ID,
		Name:      f.Name,
		Email:     f.Email,
		CreatedAt: f.CreatedAt,
	}
}

// Persistence returns the fixture as a persistence.Employee value.
func (f EmployeeFixture) Persistence() persistence.Employee {
	return persistence.Employee{
		ID:        f.ID,
		Name:      f.Name,
		Email:     f.Email,
		CreatedAt: f.CreatedAt,
	}
}

// Input returns the fixture as an application.EmployeeInput.
func (f EmployeeFixture) Input() application.EmployeeInput {
	return application.EmployeeInput{
		Name:  f.Name,
		Email: f.Email,
	}
}

// ---------------------------- Meeting fixtures ---------------------------

// MeetingFixture represents a deterministic meeting record.
type MeetingFixture struct {
	ID             string
	Topic          string
	Start          time.Time
	End            time.Time
	ParticipantIDs []string
	CreatedAt      time.Time
}

// MeetingOption configures the generated meeting fixture.
type MeetingOption func(*MeetingFixture)

// NewMeetingFixture returns a deterministic meeting fixture with optional overrides.
func NewMeetingFixture(opts ...MeetingOption) MeetingFixture {
	idx := atomic.AddUint64(&meetingCounter, 1)
	start := referenceTime.Add(time.Duration(idx) * time.Hour)
	fixture := MeetingFixture{
		ID:             fmt.Sprintf("meeting-%03d", idx),
		Topic:          fmt.Sprintf("Meeting %03d", idx),
		Start:          start,
		End:            start.Add(time.Hour),
		ParticipantIDs: []string{fmt.Sprintf("employee-%03d", idx)},
		CreatedAt:      referenceTime,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithMeetingID overrides the meeting ID.
func WithMeetingID(id string) MeetingOption {
	return func(f *MeetingFixture) {
		f.ID = id
	}
}

// WithMeetingTopic overrides the topic.
func WithMeetingTopic(topic string) MeetingOption {
	return func(f *MeetingFixture) {
		f.Topic = topic
	}
}

// WithMeetingStartEnd sets the start and end times.
func WithMeetingStartEnd(start, end time.Time) MeetingOption {
	return func(f *MeetingFixture) {
		f.Start = start
		f.End = end
	}
}

// WithMeetingParticipants sets the participant IDs.
func WithMeetingParticipants(participants ...string) MeetingOption {
	return func(f *MeetingFixture) {
		f.ParticipantIDs = append([]string(nil), participants...)
	}
}

// WithMeetingCreatedAt sets the created timestamp.
func WithMeetingCreatedAt(t time.Time) MeetingOption {
	return func(f *MeetingFixture) {
		f.CreatedAt = t
	}
}

// Application returns the fixture as an application.Meeting value.
func (f MeetingFixture) Application() application.Meeting {
	return application.Meeting{
		ID:             f.ID,
		Topic:          f.Topic,
		Start:          f.Start,
		End:            f.End,
		ParticipantIDs: append([]string(nil), f.ParticipantIDs...),
		CreatedAt:      f.CreatedAt,
	}
}

// Persistence returns the fixture as a persistence.Meeting value.
func (f MeetingFixture) Persistence() persistence.Meeting {
	return persistence.Meeting{
		ID:           f.ID,
		Topic:        f.Topic,
		Start:        f.Start,
		End:          f.End,
		Participants: append([]string(nil), f.ParticipantIDs...),
		CreatedAt:    f.CreatedAt,
	}
}

// Scheduler returns the fixture as a scheduler.Booking value.
func (f MeetingFixture) Scheduler() scheduler.Booking {
	return scheduler.Booking{
		ID:           f.ID,
		Participants: append([]string(nil), f.ParticipantIDs...),
		Start:        f.Start,
		End:          f.End,
	}
}

// ------------------------- Calendar slot fixtures ------------------------

// SlotFixture represents a deterministic calendar slot record.
type SlotFixture struct {
	ID         string
	EmployeeID string
	Start      time.Time
	End        time.Time
	Available  bool
	CreatedAt  time.Time
}

// SlotOption configures the generated slot fixture.
type SlotOption func(*SlotFixture)

// NewSlotFixture returns a deterministic calendar slot fixture with optional overrides.
func NewSlotFixture(opts ...SlotOption) SlotFixture {
	idx := atomic.AddUint64(&slotCounter, 1)
	start := referenceTime.Add(time.Duration(idx) * time.Hour)
	fixture := SlotFixture{
		ID:         fmt.Sprintf("slot-%03d", idx),
		EmployeeID: fmt.Sprintf("employee-%03d", idx),
		Start:      start,
		End:        start.Add(time.Hour),
		Available:  false,
		CreatedAt:  referenceTime,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithSlotID overrides the slot ID.
func WithSlotID(id string) SlotOption {
	return func(f *SlotFixture) {
		f.ID = id
	}
}

// WithSlotEmployeeID sets the owning employee ID.
func WithSlotEmployeeID(id string) SlotOption {
	return func(f *SlotFixture) {
		f.EmployeeID = id
	}
}

// WithSlotStartEnd sets the start and end times.
func WithSlotStartEnd(start, end time.Time) SlotOption {
	return func(f *SlotFixture) {
		f.Start = start
		f.End = end
	}
}

// WithSlotAvailable sets the availability flag.
func WithSlotAvailable(available bool) SlotOption {
	return func(f *SlotFixture) {
		f.Available = available
	}
}

// WithSlotCreatedAt sets the created timestamp.
func WithSlotCreatedAt(t time.Time) SlotOption {
	return func(f *SlotFixture) {
		f.CreatedAt = t
	}
}

// Application returns the fixture as an application.CalendarSlot value.
func (f SlotFixture) Application() application.CalendarSlot {
	return application.CalendarSlot{
		ID:         f.ID,
		EmployeeID: f.EmployeeID,
		Start:      f.Start,
		End:        f.End,
		Available:  f.Available,
		CreatedAt:  f.CreatedAt,
	}
}

// Persistence returns the fixture as a persistence.CalendarSlot value.
func (f SlotFixture) Persistence() persistence.CalendarSlot {
	return persistence.CalendarSlot{
		ID:         f.ID,
		EmployeeID: f.EmployeeID,
		Start:      f.Start,
		End:        f.End,
		Available:  f.Available,
		CreatedAt:  f.CreatedAt,
	}
}

// Scheduler returns the fixture as a scheduler.Slot value.
func (f SlotFixture) Scheduler() scheduler.Slot {
	return scheduler.Slot{
		ID:         f.ID,
		EmployeeID: f.EmployeeID,
		Start:      f.Start,
		End:        f.End,
		Available:  f.Available,
	}
}
