package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/meeting-scheduler/internal/persistence"
	"github.com/example/meeting-scheduler/internal/scheduler"
)

// EmployeeDirectory exposes employee lookup operations.
type EmployeeDirectory interface {
	GetEmployee(ctx context.Context, id string) (Employee, error)
	ListEmployeesByIDs(ctx context.Context, ids []string) ([]Employee, error)
	MissingEmployeeIDs(ctx context.Context, ids []string) ([]string, error)
}

// MeetingRepository captures the persistence interactions needed by the service.
type MeetingRepository interface {
	CreateMeetingWithSlots(ctx context.Context, meeting Meeting, slots []CalendarSlot) error
	ListMeetingsOverlapping(ctx context.Context, start, end time.Time) ([]Meeting, error)
	ListMeetingsByEmployee(ctx context.Context, employeeID string) ([]Meeting, error)
}

// SlotRepository captures the calendar slot interactions needed by the service.
type SlotRepository interface {
	ListSlotsByEmployee(ctx context.Context, employeeID string) ([]CalendarSlot, error)
	ConflictingSlotOwners(ctx context.Context, employeeIDs []string, start, end time.Time) ([]string, error)
}

// MeetingService orchestrates booking, conflict diagnostics, and slot
// availability queries.
type MeetingService struct {
	meetings    MeetingRepository
	slots       SlotRepository
	employees   EmployeeDirectory
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewMeetingService wires dependencies for meeting operations.
func NewMeetingService(meetings MeetingRepository, slots SlotRepository, employees EmployeeDirectory, idGenerator func() string, now func() time.Time) *MeetingService {
	return NewMeetingServiceWithLogger(meetings, slots, employees, idGenerator, now, nil)
}

// NewMeetingServiceWithLogger wires dependencies including a fallback logger.
func NewMeetingServiceWithLogger(meetings MeetingRepository, slots SlotRepository, employees EmployeeDirectory, idGenerator func() string, now func() time.Time, logger *slog.Logger) *MeetingService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &MeetingService{
		meetings:    meetings,
		slots:       slots,
		employees:   employees,
		idGenerator: idGenerator,
		now:         now,
		logger:      logger,
	}
}

// BookMeeting validates the request, rejects it when any participant holds an
// overlapping booked slot, and otherwise persists the meeting plus one booked
// slot per participant in a single transaction. The admin always participates;
// a duplicate admin id is deduplicated. The returned projection carries each
// participant's full slot history.
func (s *MeetingService) BookMeeting(ctx context.Context, params BookMeetingParams) (BookedMeeting, error) {
	if s == nil {
		return BookedMeeting{}, fmt.Errorf("MeetingService is nil")
	}
	if s.meetings == nil || s.slots == nil || s.employees == nil {
		return BookedMeeting{}, fmt.Errorf("meeting service dependencies not configured")
	}

	admin, err := s.employees.GetEmployee(ctx, params.AdminID)
	if err != nil {
		if isNotFoundError(err) {
			return BookedMeeting{}, &NotFoundError{Resource: "admin", IDs: []string{params.AdminID}}
		}
		return BookedMeeting{}, err
	}

	missing, err := s.employees.MissingEmployeeIDs(ctx, params.ParticipantIDs)
	if err != nil {
		return BookedMeeting{}, err
	}
	if len(missing) > 0 {
		return BookedMeeting{}, &NotFoundError{Resource: "employees", IDs: missing}
	}

	if len(params.ParticipantIDs) == 0 {
		vErr := &ValidationError{}
		vErr.add("participants", "meeting must have at least one participant")
		return BookedMeeting{}, vErr
	}

	if vErr := validateMeetingWindow(params.Start, params.End); vErr.HasErrors() {
		return BookedMeeting{}, vErr
	}

	requested := uniqueStrings(params.ParticipantIDs)
	resolved, err := s.employees.ListEmployeesByIDs(ctx, requested)
	if err != nil {
		return BookedMeeting{}, err
	}
	if len(resolved) != len(requested) {
		return BookedMeeting{}, &NotFoundError{Resource: "participants"}
	}

	byID := make(map[string]Employee, len(resolved)+1)
	for _, employee := range resolved {
		byID[employee.ID] = employee
	}
	byID[admin.ID] = admin

	// The admin always attends; the id set keyed by employee removes a
	// duplicate admin entry by construction.
	participantIDs := uniqueStrings(append(append([]string(nil), requested...), admin.ID))

	conflicted, err := s.slots.ConflictingSlotOwners(ctx, participantIDs, params.Start, params.End)
	if err != nil {
		return BookedMeeting{}, err
	}
	if len(conflicted) > 0 {
		return BookedMeeting{}, s.conflictFor(participantIDs, conflicted, byID)
	}

	createdAt := s.now()
	meeting := Meeting{
		ID:             s.idGenerator(),
		Topic:          strings.TrimSpace(params.Topic),
		Start:          params.Start,
		End:            params.End,
		ParticipantIDs: participantIDs,
		CreatedAt:      createdAt,
	}

	slots := make([]CalendarSlot, 0, len(participantIDs))
	for _, employeeID := range participantIDs {
		slots = append(slots, CalendarSlot{
			ID:         s.idGenerator(),
			EmployeeID: employeeID,
			Start:      params.Start,
			End:        params.End,
			Available:  false,
			CreatedAt:  createdAt,
		})
	}

	if err := s.meetings.CreateMeetingWithSlots(ctx, meeting, slots); err != nil {
		var slotConflict *persistence.SlotConflictError
		if errors.As(err, &slotConflict) {
			return BookedMeeting{}, s.conflictFor(participantIDs, slotConflict.EmployeeIDs, byID)
		}
		if errors.Is(err, persistence.ErrForeignKeyViolation) {
			return BookedMeeting{}, &NotFoundError{Resource: "participants"}
		}
		return BookedMeeting{}, err
	}

	participants, err := s.participantCalendars(ctx, participantIDs, byID)
	if err != nil {
		return BookedMeeting{}, err
	}

	serviceLogger(ctx, s.logger, "meeting", "book").InfoContext(ctx, "meeting booked",
		"meeting_id", meeting.ID, "participants", len(participantIDs))

	return BookedMeeting{Meeting: meeting, Participants: participants}, nil
}

// FindConflictedEmployees returns every distinct employee participating in a
// meeting that overlaps the requested window, in first-seen order.
func (s *MeetingService) FindConflictedEmployees(ctx context.Context, params ConflictQueryParams) ([]Employee, error) {
	if s == nil {
		return nil, fmt.Errorf("MeetingService is nil")
	}
	if s.meetings == nil || s.employees == nil {
		return nil, fmt.Errorf("meeting service dependencies not configured")
	}

	window, vErr := requestedWindow(params.RequestedStart, params.DurationMinutes)
	if vErr.HasErrors() {
		return nil, vErr
	}

	meetings, err := s.meetings.ListMeetingsOverlapping(ctx, window.Start, window.End)
	if err != nil {
		return nil, err
	}

	bookings := make([]scheduler.Booking, 0, len(meetings))
	for _, meeting := range meetings {
		bookings = append(bookings, toSchedulerBooking(meeting))
	}

	ids := scheduler.ConflictedParticipants(bookings, window)
	if len(ids) == 0 {
		return nil, nil
	}

	resolved, err := s.employees.ListEmployeesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]Employee, len(resolved))
	for _, employee := range resolved {
		byID[employee.ID] = employee
	}

	out := make([]Employee, 0, len(ids))
	for _, id := range ids {
		if employee, ok := byID[id]; ok {
			out = append(out, employee)
		}
	}
	return out, nil
}

// FindAvailableSlots returns the calendar slots that remain free of overlap
// for the requested window. Employees are visited in request order; each
// employee's slots are ordered by start time. An employee with any meeting
// overlapping the window contributes no slots at all.
func (s *MeetingService) FindAvailableSlots(ctx context.Context, params FreeSlotsParams) ([]CalendarSlot, error) {
	if s == nil {
		return nil, fmt.Errorf("MeetingService is nil")
	}
	if s.meetings == nil || s.slots == nil {
		return nil, fmt.Errorf("meeting service dependencies not configured")
	}

	window, vErr := requestedWindow(params.RequestedStart, params.DurationMinutes)
	if vErr.HasErrors() {
		return nil, vErr
	}

	var out []CalendarSlot
	for _, employeeID := range uniqueStrings(params.EmployeeIDs) {
		slots, err := s.slots.ListSlotsByEmployee(ctx, employeeID)
		if err != nil {
			return nil, err
		}
		if len(slots) == 0 {
			continue
		}

		meetings, err := s.meetings.ListMeetingsByEmployee(ctx, employeeID)
		if err != nil {
			return nil, err
		}

		out = append(out, filterAvailable(slots, meetings, window)...)
	}

	return out, nil
}

func (s *MeetingService) conflictFor(participantIDs, conflicted []string, byID map[string]Employee) error {
	conflictedSet := make(map[string]struct{}, len(conflicted))
	for _, id := range conflicted {
		conflictedSet[id] = struct{}{}
	}
	// The first conflicted participant, in participant order, names the error.
	for _, id := range participantIDs {
		if _, ok := conflictedSet[id]; ok {
			return &ConflictError{EmployeeID: id, EmployeeName: byID[id].Name}
		}
	}
	if len(conflicted) > 0 {
		return &ConflictError{EmployeeID: conflicted[0]}
	}
	return &ConflictError{}
}

func (s *MeetingService) participantCalendars(ctx context.Context, participantIDs []string, byID map[string]Employee) ([]ParticipantCalendar, error) {
	participants := make([]ParticipantCalendar, 0, len(participantIDs))
	for _, id := range participantIDs {
		history, err := s.slots.ListSlotsByEmployee(ctx, id)
		if err != nil {
			return nil, err
		}
		participants = append(participants, ParticipantCalendar{
			Employee: byID[id],
			Slots:    history,
		})
	}
	return participants, nil
}

func validateMeetingWindow(start, end time.Time) *ValidationError {
	vErr := &ValidationError{}

	if start.IsZero() {
		vErr.add("start", "start time is required")
	}
	if end.IsZero() {
		vErr.add("end", "end time is required")
	}
	if !start.IsZero() && !end.IsZero() && !start.Before(end) {
		vErr.add("time", "start time must be before end time")
	}

	return vErr
}

func requestedWindow(start time.Time, durationMinutes int) (scheduler.Window, *ValidationError) {
	vErr := &ValidationError{}

	if start.IsZero() {
		vErr.add("requested_start", "requested start time is required")
	}
	if durationMinutes <= 0 {
		vErr.add("duration_minutes", "duration must be positive")
	}
	if vErr.HasErrors() {
		return scheduler.Window{}, vErr
	}

	return scheduler.NewWindow(start, durationMinutes), vErr
}

func filterAvailable(slots []CalendarSlot, meetings []Meeting, window scheduler.Window) []CalendarSlot {
	byID := make(map[string]CalendarSlot, len(slots))
	kernelSlots := make([]scheduler.Slot, 0, len(slots))
	for _, slot := range slots {
		byID[slot.ID] = slot
		kernelSlots = append(kernelSlots, scheduler.Slot{
			ID:         slot.ID,
			EmployeeID: slot.EmployeeID,
			Start:      slot.Start,
			End:        slot.End,
			Available:  slot.Available,
		})
	}

	bookings := make([]scheduler.Booking, 0, len(meetings))
	for _, meeting := range meetings {
		bookings = append(bookings, toSchedulerBooking(meeting))
	}

	free := scheduler.AvailableSlots(kernelSlots, bookings, window)
	out := make([]CalendarSlot, 0, len(free))
	for _, slot := range free {
		out = append(out, byID[slot.ID])
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func toSchedulerBooking(meeting Meeting) scheduler.Booking {
	participants := make([]string, len(meeting.ParticipantIDs))
	copy(participants, meeting.ParticipantIDs)

	return scheduler.Booking{
		ID:           meeting.ID,
		Participants: participants,
		Start:        meeting.Start,
		End:          meeting.End,
	}
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, value := range values {
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		result = append(result, value)
	}
	return result
}
