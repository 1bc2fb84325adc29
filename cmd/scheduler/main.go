package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/example/meeting-scheduler/internal/application"
	"github.com/example/meeting-scheduler/internal/config"
	httptransport "github.com/example/meeting-scheduler/internal/http"
	"github.com/example/meeting-scheduler/internal/persistence"
	"github.com/example/meeting-scheduler/internal/persistence/sqlite"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	pool, err := openDatabase(ctx, cfg.SQLiteDSN, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := pool.Close(); cerr != nil {
			logger.Error("failed to close database", "error", cerr)
		}
	}()

	handler := buildHandler(pool, logger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("scheduler API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}

func openDatabase(ctx context.Context, dsn string, logger *slog.Logger) (*sqlite.ConnectionPool, error) {
	pool, err := sqlite.NewConnectionPool(dsn)
	if err != nil {
		return nil, err
	}

	if err := pool.Migrate(ctx); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	version, err := pool.SchemaVersion(ctx)
	if err != nil {
		logger.Warn("could not determine schema version", "error", err)
	} else {
		logger.Info("database ready", "schema_version", version)
	}

	return pool, nil
}

func buildHandler(pool *sqlite.ConnectionPool, logger *slog.Logger) http.Handler {
	idGenerator := uuid.NewString
	now := time.Now

	employees := sqlite.NewEmployeeRepository(pool)
	meetings := sqlite.NewMeetingRepository(pool)
	slots := sqlite.NewCalendarSlotRepository(pool)

	employeeRepo := newEmployeeRepositoryAdapter(employees)
	employeeDirectory := newEmployeeDirectoryAdapter(employees)
	meetingRepo := newMeetingRepositoryAdapter(meetings)
	slotRepo := newSlotRepositoryAdapter(slots)

	employeeService := application.NewEmployeeServiceWithLogger(employeeRepo, idGenerator, now, logger)
	meetingService := application.NewMeetingServiceWithLogger(meetingRepo, slotRepo, employeeDirectory, idGenerator, now, logger)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Employees: httptransport.NewEmployeeHandler(employeeService, logger),
		Meetings:  httptransport.NewMeetingHandler(meetingService, logger),
	})

	return httptransport.RequestLogger(logger)(router)
}

type employeeRepositoryAdapter struct {
	repo persistence.EmployeeRepository
}

func newEmployeeRepositoryAdapter(repo persistence.EmployeeRepository) *employeeRepositoryAdapter {
	return &employeeRepositoryAdapter{repo: repo}
}

func (a *employeeRepositoryAdapter) CreateEmployee(ctx context.Context, employee application.Employee) (application.Employee, error) {
	if err := a.repo.CreateEmployee(ctx, toPersistenceEmployee(employee)); err != nil {
		return application.Employee{}, err
	}
	stored, err := a.repo.GetEmployee(ctx, employee.ID)
	if err != nil {
		return application.Employee{}, err
	}
	return toApplicationEmployee(stored), nil
}

func (a *employeeRepositoryAdapter) GetEmployee(ctx context.Context, id string) (application.Employee, error) {
	stored, err := a.repo.GetEmployee(ctx, id)
	if err != nil {
		return application.Employee{}, err
	}
	return toApplicationEmployee(stored), nil
}

func (a *employeeRepositoryAdapter) ListEmployees(ctx context.Context) ([]application.Employee, error) {
	models, err := a.repo.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	return toApplicationEmployees(models), nil
}

type employeeDirectoryAdapter struct {
	repo persistence.EmployeeRepository
}

func newEmployeeDirectoryAdapter(repo persistence.EmployeeRepository) *employeeDirectoryAdapter {
	return &employeeDirectoryAdapter{repo: repo}
}

func (a *employeeDirectoryAdapter) GetEmployee(ctx context.Context, id string) (application.Employee, error) {
	stored, err := a.repo.GetEmployee(ctx, id)
	if err != nil {
		return application.Employee{}, err
	}
	return toApplicationEmployee(stored), nil
}

func (a *employeeDirectoryAdapter) ListEmployeesByIDs(ctx context.Context, ids []string) ([]application.Employee, error) {
	models, err := a.repo.ListEmployeesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return toApplicationEmployees(models), nil
}

func (a *employeeDirectoryAdapter) MissingEmployeeIDs(ctx context.Context, ids []string) ([]string, error) {
	return a.repo.MissingEmployeeIDs(ctx, ids)
}

type meetingRepositoryAdapter struct {
	repo persistence.MeetingRepository
}

func newMeetingRepositoryAdapter(repo persistence.MeetingRepository) *meetingRepositoryAdapter {
	return &meetingRepositoryAdapter{repo: repo}
}

func (a *meetingRepositoryAdapter) CreateMeetingWithSlots(ctx context.Context, meeting application.Meeting, slots []application.CalendarSlot) error {
	models := make([]persistence.CalendarSlot, 0, len(slots))
	for _, slot := range slots {
		models = append(models, toPersistenceSlot(slot))
	}
	return a.repo.CreateMeetingWithSlots(ctx, toPersistenceMeeting(meeting), models)
}

func (a *meetingRepositoryAdapter) ListMeetingsOverlapping(ctx context.Context, start, end time.Time) ([]application.Meeting, error) {
	models, err := a.repo.ListMeetingsOverlapping(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return toApplicationMeetings(models), nil
}

func (a *meetingRepositoryAdapter) ListMeetingsByEmployee(ctx context.Context, employeeID string) ([]application.Meeting, error) {
	models, err := a.repo.ListMeetingsByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return toApplicationMeetings(models), nil
}

type slotRepositoryAdapter struct {
	repo persistence.CalendarSlotRepository
}

func newSlotRepositoryAdapter(repo persistence.CalendarSlotRepository) *slotRepositoryAdapter {
	return &slotRepositoryAdapter{repo: repo}
}

func (a *slotRepositoryAdapter) ListSlotsByEmployee(ctx context.Context, employeeID string) ([]application.CalendarSlot, error) {
	models, err := a.repo.ListSlotsByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, nil
	}
	slots := make([]application.CalendarSlot, 0, len(models))
	for _, model := range models {
		slots = append(slots, toApplicationSlot(model))
	}
	return slots, nil
}

func (a *slotRepositoryAdapter) ConflictingSlotOwners(ctx context.Context, employeeIDs []string, start, end time.Time) ([]string, error) {
	return a.repo.ConflictingSlotOwners(ctx, employeeIDs, start, end)
}

func toApplicationEmployee(model persistence.Employee) application.Employee {
	return application.Employee{
		ID:        model.ID,
		Name:      model.Name,
		Email:     model.Email,
		CreatedAt: model.CreatedAt,
	}
}

func toApplicationEmployees(models []persistence.Employee) []application.Employee {
	if len(models) == 0 {
		return nil
	}
	employees := make([]application.Employee, 0, len(models))
	for _, model := range models {
		employees = append(employees, toApplicationEmployee(model))
	}
	return employees
}

func toPersistenceEmployee(employee application.Employee) persistence.Employee {
	return persistence.Employee{
		ID:        employee.ID,
		Name:      employee.Name,
		Email:     employee.Email,
		CreatedAt: employee.CreatedAt,
	}
}

func toApplicationMeeting(model persistence.Meeting) application.Meeting {
	return application.Meeting{
		ID:             model.ID,
		Topic:          model.Topic,
		Start:          model.Start,
		End:            model.End,
		ParticipantIDs: append([]string(nil), model.Participants...),
		CreatedAt:      model.CreatedAt,
	}
}

func toApplicationMeetings(models []persistence.Meeting) []application.Meeting {
	if len(models) == 0 {
		return nil
	}
	meetings := make([]application.Meeting, 0, len(models))
	for _, model := range models {
		meetings = append(meetings, toApplicationMeeting(model))
	}
	return meetings
}

func toPersistenceMeeting(meeting application.Meeting) persistence.Meeting {
	return persistence.Meeting{
		ID:           meeting.ID,
		Topic:        meeting.Topic,
		Start:        meeting.Start,
		End:          meeting.End,
		Participants: append([]string(nil), meeting.ParticipantIDs...),
		CreatedAt:    meeting.CreatedAt,
	}
}

func toApplicationSlot(model persistence.CalendarSlot) application.CalendarSlot {
	return application.CalendarSlot{
		ID:         model.ID,
		EmployeeID: model.EmployeeID,
		Start:      model.Start,
		End:        model.End,
		Available:  model.Available,
		CreatedAt:  model.CreatedAt,
	}
}

func toPersistenceSlot(slot application.CalendarSlot) persistence.CalendarSlot {
	return persistence.CalendarSlot{
		ID:         slot.ID,
		EmployeeID: slot.EmployeeID,
		Start:      slot.Start,
		End:        slot.End,
		Available:  slot.Available,
		CreatedAt:  slot.CreatedAt,
	}
}
