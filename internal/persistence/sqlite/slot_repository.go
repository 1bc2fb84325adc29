package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/meeting-scheduler/internal/persistence"
)

// CalendarSlotRepository implements persistence.CalendarSlotRepository using SQLite.
type CalendarSlotRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewCalendarSlotRepository creates a new SQLite calendar slot repository.
func NewCalendarSlotRepository(pool *ConnectionPool) *CalendarSlotRepository {
	return &CalendarSlotRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

// ListSlotsByEmployee returns every calendar slot owned by the employee,
// ordered by start time.
func (r *CalendarSlotRepository) ListSlotsByEmployee(ctx context.Context, employeeID string) ([]persistence.CalendarSlot, error) {
	query := `
		SELECT id, employee_id, start_time, end_time, available, created_at
		FROM calendar_slots
		WHERE employee_id = ?
		ORDER BY start_time, id
	`

	rows, err := r.helper.Query(ctx, query, employeeID)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var slots []persistence.CalendarSlot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, r.mapper.MapError(err)
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}

	return slots, nil
}

// ConflictingSlotOwners returns the distinct owners, among the supplied
// employee ids, of booked slots overlapping the half-open range [start, end).
// One batched query covers all participants.
func (r *CalendarSlotRepository) ConflictingSlotOwners(ctx context.Context, employeeIDs []string, start, end time.Time) ([]string, error) {
	if len(employeeIDs) == 0 {
		return nil, nil
	}

	rows, err := r.helper.Query(ctx, conflictingOwnersQuery(len(employeeIDs)), conflictingOwnersArgs(employeeIDs, start, end)...)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	return collectOwnerIDs(rows)
}

// conflictingSlotOwnersTx is the transactional variant used by the booking
// write to re-check conflicts inside its own transaction.
func conflictingSlotOwnersTx(helper *QueryHelper, tx *sql.Tx, employeeIDs []string, start, end time.Time) ([]string, error) {
	if len(employeeIDs) == 0 {
		return nil, nil
	}

	rows, err := helper.QueryTx(tx, conflictingOwnersQuery(len(employeeIDs)), conflictingOwnersArgs(employeeIDs, start, end)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOwnerIDs(rows)
}

func conflictingOwnersQuery(n int) string {
	return fmt.Sprintf(`
		SELECT DISTINCT employee_id
		FROM calendar_slots
		WHERE employee_id IN (%s)
		  AND available = 0
		  AND start_time < ?
		  AND end_time > ?
		ORDER BY employee_id
	`, placeholders(n))
}

func conflictingOwnersArgs(employeeIDs []string, start, end time.Time) []any {
	args := idArgs(employeeIDs)
	return append(args, formatTimestamp(end), formatTimestamp(start))
}

func collectOwnerIDs(rows *sql.Rows) ([]string, error) {
	var owners []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		owners = append(owners, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return owners, nil
}

func scanSlot(rows *sql.Rows) (persistence.CalendarSlot, error) {
	var slot persistence.CalendarSlot
	var start, end, createdAt string

	if err := rows.Scan(&slot.ID, &slot.EmployeeID, &start, &end, &slot.Available, &createdAt); err != nil {
		return persistence.CalendarSlot{}, err
	}

	var err error
	if slot.Start, err = parseTimestamp(start); err != nil {
		return persistence.CalendarSlot{}, err
	}
	if slot.End, err = parseTimestamp(end); err != nil {
		return persistence.CalendarSlot{}, err
	}
	if slot.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return persistence.CalendarSlot{}, err
	}

	return slot, nil
}
