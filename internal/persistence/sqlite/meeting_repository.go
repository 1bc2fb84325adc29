package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/meeting-scheduler/internal/persistence"
)

// MeetingRepository implements persistence.MeetingRepository using SQLite.
type MeetingRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewMeetingRepository creates a new SQLite meeting repository.
func NewMeetingRepository(pool *ConnectionPool) *MeetingRepository {
	return &MeetingRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

// CreateMeetingWithSlots writes the meeting, its participant rows, and one
// calendar slot per participant in a single transaction. The slot-conflict
// check runs inside the same transaction so that a booking committed by a
// concurrent writer is observed before any row is written.
func (r *MeetingRepository) CreateMeetingWithSlots(ctx context.Context, meeting persistence.Meeting, slots []persistence.CalendarSlot) error {
	if meeting.ID == "" || len(meeting.Participants) == 0 {
		return persistence.ErrConstraintViolation
	}
	if !meeting.Start.Before(meeting.End) {
		return persistence.ErrConstraintViolation
	}

	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		conflicted, err := conflictingSlotOwnersTx(r.helper, tx, meeting.Participants, meeting.Start, meeting.End)
		if err != nil {
			return err
		}
		if len(conflicted) > 0 {
			return &persistence.SlotConflictError{EmployeeIDs: conflicted}
		}

		insertMeeting := `
			INSERT INTO meetings (id, topic, start_time, end_time, created_at)
			VALUES (?, ?, ?, ?, ?)
		`
		if _, err := r.helper.ExecTx(tx, insertMeeting,
			meeting.ID,
			meeting.Topic,
			formatTimestamp(meeting.Start),
			formatTimestamp(meeting.End),
			formatTimestamp(meeting.CreatedAt),
		); err != nil {
			return r.mapper.MapError(err)
		}

		insertParticipant := `
			INSERT INTO meeting_participants (meeting_id, employee_id, position)
			VALUES (?, ?, ?)
		`
		for i, employeeID := range meeting.Participants {
			if _, err := r.helper.ExecTx(tx, insertParticipant, meeting.ID, employeeID, i); err != nil {
				return r.mapper.MapError(err)
			}
		}

		insertSlot := `
			INSERT INTO calendar_slots (id, employee_id, start_time, end_time, available, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`
		for _, slot := range slots {
			if _, err := r.helper.ExecTx(tx, insertSlot,
				slot.ID,
				slot.EmployeeID,
				formatTimestamp(slot.Start),
				formatTimestamp(slot.End),
				slot.Available,
				formatTimestamp(slot.CreatedAt),
			); err != nil {
				return r.mapper.MapError(err)
			}
		}

		return nil
	})
}

// GetMeeting retrieves a meeting and its participants by id.
func (r *MeetingRepository) GetMeeting(ctx context.Context, id string) (persistence.Meeting, error) {
	query := `SELECT id, topic, start_time, end_time, created_at FROM meetings WHERE id = ?`

	meeting, err := r.scanMeeting(r.helper.QueryRow(ctx, query, id))
	if err != nil {
		return persistence.Meeting{}, err
	}

	participants, err := r.participantsFor(ctx, []string{meeting.ID})
	if err != nil {
		return persistence.Meeting{}, err
	}
	meeting.Participants = participants[meeting.ID]

	return meeting, nil
}

// ListMeetingsOverlapping returns meetings whose half-open range intersects
// [start, end), ordered by start time.
func (r *MeetingRepository) ListMeetingsOverlapping(ctx context.Context, start, end time.Time) ([]persistence.Meeting, error) {
	query := `
		SELECT id, topic, start_time, end_time, created_at
		FROM meetings
		WHERE start_time < ? AND end_time > ?
		ORDER BY start_time, id
	`

	rows, err := r.helper.Query(ctx, query, formatTimestamp(end), formatTimestamp(start))
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	return r.collectMeetings(ctx, rows)
}

// ListMeetingsByEmployee returns every meeting the employee participates in,
// ordered by start time.
func (r *MeetingRepository) ListMeetingsByEmployee(ctx context.Context, employeeID string) ([]persistence.Meeting, error) {
	query := `
		SELECT m.id, m.topic, m.start_time, m.end_time, m.created_at
		FROM meetings m
		JOIN meeting_participants mp ON mp.meeting_id = m.id
		WHERE mp.employee_id = ?
		ORDER BY m.start_time, m.id
	`

	rows, err := r.helper.Query(ctx, query, employeeID)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	return r.collectMeetings(ctx, rows)
}

func (r *MeetingRepository) scanMeeting(row *sql.Row) (persistence.Meeting, error) {
	var meeting persistence.Meeting
	var start, end, createdAt string

	err := row.Scan(&meeting.ID, &meeting.Topic, &start, &end, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Meeting{}, persistence.ErrNotFound
		}
		return persistence.Meeting{}, r.mapper.MapError(err)
	}

	return r.withParsedTimes(meeting, start, end, createdAt)
}

func (r *MeetingRepository) collectMeetings(ctx context.Context, rows *sql.Rows) ([]persistence.Meeting, error) {
	var meetings []persistence.Meeting
	var ids []string
	for rows.Next() {
		var meeting persistence.Meeting
		var start, end, createdAt string
		if err := rows.Scan(&meeting.ID, &meeting.Topic, &start, &end, &createdAt); err != nil {
			return nil, r.mapper.MapError(err)
		}
		parsed, err := r.withParsedTimes(meeting, start, end, createdAt)
		if err != nil {
			return nil, err
		}
		meetings = append(meetings, parsed)
		ids = append(ids, parsed.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}
	if len(meetings) == 0 {
		return nil, nil
	}

	participants, err := r.participantsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range meetings {
		meetings[i].Participants = participants[meetings[i].ID]
	}

	return meetings, nil
}

func (r *MeetingRepository) withParsedTimes(meeting persistence.Meeting, start, end, createdAt string) (persistence.Meeting, error) {
	var err error
	if meeting.Start, err = parseTimestamp(start); err != nil {
		return persistence.Meeting{}, err
	}
	if meeting.End, err = parseTimestamp(end); err != nil {
		return persistence.Meeting{}, err
	}
	if meeting.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return persistence.Meeting{}, err
	}
	return meeting, nil
}

func (r *MeetingRepository) participantsFor(ctx context.Context, meetingIDs []string) (map[string][]string, error) {
	query := fmt.Sprintf(`
		SELECT meeting_id, employee_id
		FROM meeting_participants
		WHERE meeting_id IN (%s)
		ORDER BY meeting_id, position
	`, placeholders(len(meetingIDs)))

	rows, err := r.helper.Query(ctx, query, idArgs(meetingIDs)...)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	out := make(map[string][]string, len(meetingIDs))
	for rows.Next() {
		var meetingID, employeeID string
		if err := rows.Scan(&meetingID, &employeeID); err != nil {
			return nil, r.mapper.MapError(err)
		}
		out[meetingID] = append(out[meetingID], employeeID)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}

	return out, nil
}
