package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/example/meeting-scheduler/internal/application"
)

type stubEmployeeService struct {
	createFunc func(ctx context.Context, input application.EmployeeInput) (application.Employee, error)
	getFunc    func(ctx context.Context, id string) (application.Employee, error)
	listFunc   func(ctx context.Context) ([]application.Employee, error)
}

func (s *stubEmployeeService) CreateEmployee(ctx context.Context, input application.EmployeeInput) (application.Employee, error) {
	if s.createFunc == nil {
		return application.Employee{}, nil
	}
	return s.createFunc(ctx, input)
}

func (s *stubEmployeeService) GetEmployee(ctx context.Context, id string) (application.Employee, error) {
	if s.getFunc == nil {
		return application.Employee{}, application.ErrNotFound
	}
	return s.getFunc(ctx, id)
}

func (s *stubEmployeeService) ListEmployees(ctx context.Context) ([]application.Employee, error) {
	if s.listFunc == nil {
		return nil, nil
	}
	return s.listFunc(ctx)
}

type stubMeetingService struct {
	bookFunc      func(ctx context.Context, params application.BookMeetingParams) (application.BookedMeeting, error)
	freeSlotsFunc func(ctx context.Context, params application.FreeSlotsParams) ([]application.CalendarSlot, error)
	conflictsFunc func(ctx context.Context, params application.ConflictQueryParams) ([]application.Employee, error)
}

func (s *stubMeetingService) BookMeeting(ctx context.Context, params application.BookMeetingParams) (application.BookedMeeting, error) {
	if s.bookFunc == nil {
		return application.BookedMeeting{}, nil
	}
	return s.bookFunc(ctx, params)
}

func (s *stubMeetingService) FindAvailableSlots(ctx context.Context, params application.FreeSlotsParams) ([]application.CalendarSlot, error) {
	if s.freeSlotsFunc == nil {
		return nil, nil
	}
	return s.freeSlotsFunc(ctx, params)
}

func (s *stubMeetingService) FindConflictedEmployees(ctx context.Context, params application.ConflictQueryParams) ([]application.Employee, error) {
	if s.conflictsFunc == nil {
		return nil, nil
	}
	return s.conflictsFunc(ctx, params)
}

func newTestRouter(employees employeeService, meetings meetingService) http.Handler {
	return NewRouter(RouterConfig{
		Employees: NewEmployeeHandler(employees, nil),
		Meetings:  NewMeetingHandler(meetings, nil),
	})
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.NewDecoder(recorder.Body).Decode(target); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
}

func TestEmployeeHandlers(t *testing.T) {
	t.Parallel()

	t.Run("create returns 201 with the persisted employee", func(t *testing.T) {
		t.Parallel()

		employees := &stubEmployeeService{
			createFunc: func(_ context.Context, input application.EmployeeInput) (application.Employee, error) {
				if input.Name != "Alice" || input.Email != "alice@example.com" {
					t.Fatalf("unexpected input %+v", input)
				}
				return application.Employee{
					ID:        "emp-1",
					Name:      "Alice",
					Email:     "alice@example.com",
					CreatedAt: time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC),
				}, nil
			},
		}
		router := newTestRouter(employees, &stubMeetingService{})

		req := httptest.NewRequest(http.MethodPost, "/api/employees/create",
			strings.NewReader(`{"name":"Alice","email":"alice@example.com"}`))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", recorder.Code, recorder.Body.String())
		}
		var dto employeeDTO
		decodeBody(t, recorder, &dto)
		if dto.ID != "emp-1" || dto.CreatedAt != "2024-03-14T09:00:00Z" {
			t.Fatalf("unexpected payload %+v", dto)
		}
	})

	t.Run("create maps duplicate email to 409", func(t *testing.T) {
		t.Parallel()

		employees := &stubEmployeeService{
			createFunc: func(_ context.Context, _ application.EmployeeInput) (application.Employee, error) {
				return application.Employee{}, application.ErrAlreadyExists
			},
		}
		router := newTestRouter(employees, &stubMeetingService{})

		req := httptest.NewRequest(http.MethodPost, "/api/employees/create",
			strings.NewReader(`{"name":"Alice","email":"alice@example.com"}`))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", recorder.Code)
		}
	})

	t.Run("create rejects malformed JSON with 400", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(&stubEmployeeService{}, &stubMeetingService{})

		req := httptest.NewRequest(http.MethodPost, "/api/employees/create", strings.NewReader("{"))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", recorder.Code)
		}
	})

	t.Run("get resolves the path id and maps missing employees to 404", func(t *testing.T) {
		t.Parallel()

		employees := &stubEmployeeService{
			getFunc: func(_ context.Context, id string) (application.Employee, error) {
				if id != "emp-404" {
					t.Fatalf("unexpected id %q", id)
				}
				return application.Employee{}, &application.NotFoundError{Resource: "employee", IDs: []string{id}}
			},
		}
		router := newTestRouter(employees, &stubMeetingService{})

		req := httptest.NewRequest(http.MethodGet, "/api/employees/emp-404", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", recorder.Code)
		}
		var body errorResponse
		decodeBody(t, recorder, &body)
		if body.Message != "employee not found: emp-404" {
			t.Fatalf("unexpected message %q", body.Message)
		}
	})

	t.Run("list returns every employee", func(t *testing.T) {
		t.Parallel()

		employees := &stubEmployeeService{
			listFunc: func(_ context.Context) ([]application.Employee, error) {
				return []application.Employee{
					{ID: "emp-1", Name: "Alice"},
					{ID: "emp-2", Name: "Bob"},
				}, nil
			},
		}
		router := newTestRouter(employees, &stubMeetingService{})

		req := httptest.NewRequest(http.MethodGet, "/api/employees", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", recorder.Code)
		}
		var body listEmployeesResponse
		decodeBody(t, recorder, &body)
		if len(body.Employees) != 2 {
			t.Fatalf("expected two employees, got %+v", body)
		}
	})

	t.Run("rejects unsupported methods", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(&stubEmployeeService{}, &stubMeetingService{})

		req := httptest.NewRequest(http.MethodDelete, "/api/employees/emp-1", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusMethodNotAllowed {
			t.Fatalf("expected 405, got %d", recorder.Code)
		}
	})
}

func TestMeetingHandlers(t *testing.T) {
	t.Parallel()

	t.Run("book parses the request body into typed params", func(t *testing.T) {
		t.Parallel()

		meetings := &stubMeetingService{
			bookFunc: func(_ context.Context, params application.BookMeetingParams) (application.BookedMeeting, error) {
				if params.AdminID != "emp-1" || params.Topic != "Planning" {
					t.Fatalf("unexpected params %+v", params)
				}
				want := time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC)
				if !params.Start.Equal(want) {
					t.Fatalf("unexpected start %v", params.Start)
				}
				if len(params.ParticipantIDs) != 2 {
					t.Fatalf("unexpected participants %v", params.ParticipantIDs)
				}
				return application.BookedMeeting{
					Meeting: application.Meeting{ID: "m-1", ParticipantIDs: []string{"emp-2", "emp-3", "emp-1"}},
					Participants: []application.ParticipantCalendar{
						{Employee: application.Employee{ID: "emp-2"}, Slots: []application.CalendarSlot{{ID: "slot-1", EmployeeID: "emp-2"}}},
					},
				}, nil
			},
		}
		router := newTestRouter(&stubEmployeeService{}, meetings)

		req := httptest.NewRequest(http.MethodPost, "/api/meetings/book", strings.NewReader(
			`{"adminId":"emp-1","topic":"Planning","startTime":"2024-03-14T10:00:00Z","endTime":"2024-03-14T11:00:00Z","participantIds":["emp-2","emp-3"]}`))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", recorder.Code, recorder.Body.String())
		}
		var body bookedMeetingResponse
		decodeBody(t, recorder, &body)
		if body.Meeting.ID != "m-1" || len(body.Participants) != 1 {
			t.Fatalf("unexpected payload %+v", body)
		}
	})

	t.Run("book maps scheduling conflicts to 409 with the participant name", func(t *testing.T) {
		t.Parallel()

		meetings := &stubMeetingService{
			bookFunc: func(_ context.Context, _ application.BookMeetingParams) (application.BookedMeeting, error) {
				return application.BookedMeeting{}, &application.ConflictError{EmployeeID: "emp-2", EmployeeName: "Bob"}
			},
		}
		router := newTestRouter(&stubEmployeeService{}, meetings)

		req := httptest.NewRequest(http.MethodPost, "/api/meetings/book", strings.NewReader(`{}`))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", recorder.Code)
		}
		var body errorResponse
		decodeBody(t, recorder, &body)
		if body.Message != "participant Bob has a scheduling conflict" {
			t.Fatalf("unexpected message %q", body.Message)
		}
	})

	t.Run("book maps validation failures to 400 with field details", func(t *testing.T) {
		t.Parallel()

		meetings := &stubMeetingService{
			bookFunc: func(_ context.Context, _ application.BookMeetingParams) (application.BookedMeeting, error) {
				return application.BookedMeeting{}, &application.ValidationError{
					FieldErrors: map[string]string{"time": "start time must be before end time"},
				}
			},
		}
		router := newTestRouter(&stubEmployeeService{}, meetings)

		req := httptest.NewRequest(http.MethodPost, "/api/meetings/book", strings.NewReader(`{}`))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", recorder.Code)
		}
		var body errorResponse
		decodeBody(t, recorder, &body)
		if body.Errors["time"] != "start time must be before end time" {
			t.Fatalf("unexpected field errors %v", body.Errors)
		}
	})

	t.Run("free-slots parses query parameters", func(t *testing.T) {
		t.Parallel()

		meetings := &stubMeetingService{
			freeSlotsFunc: func(_ context.Context, params application.FreeSlotsParams) ([]application.CalendarSlot, error) {
				if len(params.EmployeeIDs) != 2 || params.EmployeeIDs[0] != "emp-1" {
					t.Fatalf("unexpected employee ids %v", params.EmployeeIDs)
				}
				if params.DurationMinutes != 30 {
					t.Fatalf("unexpected duration %d", params.DurationMinutes)
				}
				return []application.CalendarSlot{
					{ID: "slot-1", EmployeeID: "emp-1", Available: true},
				}, nil
			},
		}
		router := newTestRouter(&stubEmployeeService{}, meetings)

		req := httptest.NewRequest(http.MethodGet,
			"/api/meetings/free-slots?employeeIds=emp-1,emp-2&requestedStartTime=2024-03-14T10:00:00Z&durationMinutes=30", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", recorder.Code)
		}
		var body freeSlotsResponse
		decodeBody(t, recorder, &body)
		if len(body.Slots) != 1 || body.Slots[0].ID != "slot-1" {
			t.Fatalf("unexpected payload %+v", body)
		}
	})

	t.Run("free-slots surfaces validation errors for malformed parameters", func(t *testing.T) {
		t.Parallel()

		meetings := &stubMeetingService{
			freeSlotsFunc: func(_ context.Context, params application.FreeSlotsParams) ([]application.CalendarSlot, error) {
				if !params.RequestedStart.IsZero() || params.DurationMinutes != 0 {
					t.Fatalf("expected zero values for malformed input, got %+v", params)
				}
				vErr := &application.ValidationError{FieldErrors: map[string]string{
					"requested_start": "requested start time is required",
				}}
				return nil, vErr
			},
		}
		router := newTestRouter(&stubEmployeeService{}, meetings)

		req := httptest.NewRequest(http.MethodGet,
			"/api/meetings/free-slots?requestedStartTime=yesterday&durationMinutes=soon", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", recorder.Code)
		}
	})

	t.Run("conflicts reports conflicted employees", func(t *testing.T) {
		t.Parallel()

		meetings := &stubMeetingService{
			conflictsFunc: func(_ context.Context, params application.ConflictQueryParams) ([]application.Employee, error) {
				if params.DurationMinutes != 45 {
					t.Fatalf("unexpected duration %d", params.DurationMinutes)
				}
				return []application.Employee{{ID: "emp-1", Name: "Alice"}}, nil
			},
		}
		router := newTestRouter(&stubEmployeeService{}, meetings)

		req := httptest.NewRequest(http.MethodPost,
			"/api/meetings/conflicts?requestedStartTime=2024-03-14T10:00:00Z&durationMinutes=45", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", recorder.Code)
		}
		var body conflictsResponse
		decodeBody(t, recorder, &body)
		if len(body.ConflictedEmployees) != 1 || body.ConflictedEmployees[0].Name != "Alice" {
			t.Fatalf("unexpected payload %+v", body)
		}
	})

	t.Run("conflicts requires POST", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(&stubEmployeeService{}, &stubMeetingService{})

		req := httptest.NewRequest(http.MethodGet, "/api/meetings/conflicts", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusMethodNotAllowed {
			t.Fatalf("expected 405, got %d", recorder.Code)
		}
	})
}
