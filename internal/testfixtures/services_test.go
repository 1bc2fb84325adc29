package testfixtures

import (
	"context"
	"testing"

	"github.com/example/meeting-scheduler/internal/application"
)

type capturingEmployeeRepo struct {
	created application.Employee
}

func (c *capturingEmployeeRepo) CreateEmployee(ctx context.Context, employee application.Employee) (application.Employee, error) {
	c.created = employee
	return employee, nil
}

func (c *capturingEmployeeRepo) GetEmployee(ctx context.Context, id string) (application.Employee, error) {
	return application.Employee{}, application.ErrNotFound
}

func (c *capturingEmployeeRepo) ListEmployees(ctx context.Context) ([]application.Employee, error) {
	return nil, nil
}

func TestServiceFactoryNewEmployeeService(t *testing.T) {
	factory := NewServiceFactory()
	repo := &capturingEmployeeRepo{}

	svc := factory.NewEmployeeService(EmployeeServiceDeps{Employees: repo})
	input := application.EmployeeInput{Name: "Employee", Email: "employee@example.com"}

	employee, err := svc.CreateEmployee(context.Background(), input)
	if err != nil {
		t.Fatalf("CreateEmployee returned error: %v", err)
	}

	if employee.ID != "id-1" {
		t.Fatalf("expected generated ID id-1, got %q", employee.ID)
	}
	if repo.created.ID != employee.ID {
		t.Fatalf("repository received unexpected ID: %q", repo.created.ID)
	}
	if !employee.CreatedAt.Equal(factory.Clock.Current()) {
		t.Fatalf("expected timestamp %v, got %v", factory.Clock.Current(), employee.CreatedAt)
	}
}
