package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/meeting-scheduler/internal/persistence"
)

// EmployeeRepository implements persistence.EmployeeRepository using SQLite.
type EmployeeRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewEmployeeRepository creates a new SQLite employee repository.
func NewEmployeeRepository(pool *ConnectionPool) *EmployeeRepository {
	return &EmployeeRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

// CreateEmployee inserts a new employee.
func (r *EmployeeRepository) CreateEmployee(ctx context.Context, employee persistence.Employee) error {
	if employee.ID == "" {
		return persistence.ErrConstraintViolation
	}

	query := `
		INSERT INTO employees (id, name, email, created_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := r.helper.Exec(ctx, query,
		employee.ID,
		employee.Name,
		strings.ToLower(employee.Email),
		formatTimestamp(employee.CreatedAt),
	)
	if err != nil {
		return r.mapper.MapError(err)
	}

	return nil
}

// GetEmployee retrieves an employee by id.
func (r *EmployeeRepository) GetEmployee(ctx context.Context, id string) (persistence.Employee, error) {
	query := `SELECT id, name, email, created_at FROM employees WHERE id = ?`
	return r.scanEmployee(r.helper.QueryRow(ctx, query, id))
}

// GetEmployeeByEmail retrieves an employee by email address.
func (r *EmployeeRepository) GetEmployeeByEmail(ctx context.Context, email string) (persistence.Employee, error) {
	query := `SELECT id, name, email, created_at FROM employees WHERE email = ?`
	return r.scanEmployee(r.helper.QueryRow(ctx, query, strings.ToLower(email)))
}

// ListEmployees returns all employees ordered by creation time.
func (r *EmployeeRepository) ListEmployees(ctx context.Context) ([]persistence.Employee, error) {
	query := `SELECT id, name, email, created_at FROM employees ORDER BY created_at, id`

	rows, err := r.helper.Query(ctx, query)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	return r.collectEmployees(rows)
}

// ListEmployeesByIDs returns the employees matching the supplied ids. Missing
// ids are simply absent from the result.
func (r *EmployeeRepository) ListEmployeesByIDs(ctx context.Context, ids []string) ([]persistence.Employee, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(
		`SELECT id, name, email, created_at FROM employees WHERE id IN (%s) ORDER BY created_at, id`,
		placeholders(len(ids)),
	)

	rows, err := r.helper.Query(ctx, query, idArgs(ids)...)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	return r.collectEmployees(rows)
}

// MissingEmployeeIDs returns the subset of ids with no matching employee row,
// preserving the order of the input.
func (r *EmployeeRepository) MissingEmployeeIDs(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	employees, err := r.ListEmployeesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	known := make(map[string]struct{}, len(employees))
	for _, employee := range employees {
		known[employee.ID] = struct{}{}
	}

	var missing []string
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := known[id]; ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		missing = append(missing, id)
	}

	return missing, nil
}

func (r *EmployeeRepository) scanEmployee(row *sql.Row) (persistence.Employee, error) {
	var employee persistence.Employee
	var createdAt string

	err := row.Scan(&employee.ID, &employee.Name, &employee.Email, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Employee{}, persistence.ErrNotFound
		}
		return persistence.Employee{}, r.mapper.MapError(err)
	}

	employee.CreatedAt, err = parseTimestamp(createdAt)
	if err != nil {
		return persistence.Employee{}, err
	}

	return employee, nil
}

func (r *EmployeeRepository) collectEmployees(rows *sql.Rows) ([]persistence.Employee, error) {
	var employees []persistence.Employee
	for rows.Next() {
		var employee persistence.Employee
		var createdAt string
		if err := rows.Scan(&employee.ID, &employee.Name, &employee.Email, &createdAt); err != nil {
			return nil, r.mapper.MapError(err)
		}
		parsed, err := parseTimestamp(createdAt)
		if err != nil {
			return nil, err
		}
		employee.CreatedAt = parsed
		employees = append(employees, employee)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}
	return employees, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func idArgs(ids []string) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

func parseTimestamp(value string) (time.Time, error) {
	ts, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", value, err)
	}
	return ts, nil
}

// Timestamps are stored as second-precision RFC3339 text in UTC so that
// lexicographic comparison in SQL matches chronological order.
func formatTimestamp(ts time.Time) string {
	return ts.UTC().Truncate(time.Second).Format(time.RFC3339)
}
