package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/example/meeting-scheduler/internal/persistence"
)

// EmployeeRepository captures the persistence interactions needed by the service.
type EmployeeRepository interface {
	CreateEmployee(ctx context.Context, employee Employee) (Employee, error)
	GetEmployee(ctx context.Context, id string) (Employee, error)
	ListEmployees(ctx context.Context) ([]Employee, error)
}

// EmployeeService orchestrates validation and persistence for employee operations.
type EmployeeService struct {
	employees   EmployeeRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewEmployeeService wires dependencies for employee operations.
func NewEmployeeService(employees EmployeeRepository, idGenerator func() string, now func() time.Time) *EmployeeService {
	return NewEmployeeServiceWithLogger(employees, idGenerator, now, nil)
}

// NewEmployeeServiceWithLogger wires dependencies including a fallback logger.
func NewEmployeeServiceWithLogger(employees EmployeeRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *EmployeeService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &EmployeeService{
		employees:   employees,
		idGenerator: idGenerator,
		now:         now,
		logger:      logger,
	}
}

// CreateEmployee validates input and persists a new employee. A taken email
// address surfaces as ErrAlreadyExists.
func (s *EmployeeService) CreateEmployee(ctx context.Context, input EmployeeInput) (Employee, error) {
	if s == nil {
		return Employee{}, fmt.Errorf("EmployeeService is nil")
	}

	normalized := normalizeEmployeeInput(input)
	if vErr := validateEmployeeInput(normalized); vErr.HasErrors() {
		return Employee{}, vErr
	}

	employee := Employee{
		ID:        s.idGenerator(),
		Name:      normalized.Name,
		Email:     normalized.Email,
		CreatedAt: s.now(),
	}

	if s.employees == nil {
		return employee, nil
	}

	persisted, err := s.employees.CreateEmployee(ctx, employee)
	if err != nil {
		err = mapEmployeeRepoError(err)
		serviceLogger(ctx, s.logger, "employee", "create").ErrorContext(ctx, "failed to create employee",
			"error", err, "error_kind", ErrorKind(err))
		return Employee{}, err
	}

	serviceLogger(ctx, s.logger, "employee", "create").InfoContext(ctx, "employee created", "employee_id", persisted.ID)
	return persisted, nil
}

// GetEmployee fetches a single employee by id.
func (s *EmployeeService) GetEmployee(ctx context.Context, id string) (Employee, error) {
	if s == nil {
		return Employee{}, fmt.Errorf("EmployeeService is nil")
	}
	if s.employees == nil {
		return Employee{}, fmt.Errorf("employee repository not configured")
	}

	employee, err := s.employees.GetEmployee(ctx, id)
	if err != nil {
		if isNotFoundError(err) {
			return Employee{}, &NotFoundError{Resource: "employee", IDs: []string{id}}
		}
		return Employee{}, err
	}

	return employee, nil
}

// ListEmployees returns all employees in creation order.
func (s *EmployeeService) ListEmployees(ctx context.Context) ([]Employee, error) {
	if s == nil {
		return nil, fmt.Errorf("EmployeeService is nil")
	}
	if s.employees == nil {
		return nil, nil
	}

	return s.employees.ListEmployees(ctx)
}

func normalizeEmployeeInput(input EmployeeInput) EmployeeInput {
	return EmployeeInput{
		Name:  strings.TrimSpace(input.Name),
		Email: strings.ToLower(strings.TrimSpace(input.Email)),
	}
}

func validateEmployeeInput(input EmployeeInput) *ValidationError {
	vErr := &ValidationError{}

	if input.Name == "" {
		vErr.add("name", "name is required")
	}

	if input.Email == "" {
		vErr.add("email", "email is required")
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		vErr.add("email", "email is invalid")
	}

	return vErr
}

func mapEmployeeRepoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, persistence.ErrDuplicate) {
		return ErrAlreadyExists
	}
	if errors.Is(err, persistence.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func isNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, persistence.ErrNotFound)
}
