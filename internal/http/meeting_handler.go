package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/example/meeting-scheduler/internal/application"
)

type meetingService interface {
	BookMeeting(ctx context.Context, params application.BookMeetingParams) (application.BookedMeeting, error)
	FindAvailableSlots(ctx context.Context, params application.FreeSlotsParams) ([]application.CalendarSlot, error)
	FindConflictedEmployees(ctx context.Context, params application.ConflictQueryParams) ([]application.Employee, error)
}

type MeetingHandler struct {
	service   meetingService
	responder responder
}

func NewMeetingHandler(service meetingService, logger *slog.Logger) *MeetingHandler {
	return &MeetingHandler{service: service, responder: newResponder(logger)}
}

func (h *MeetingHandler) Book(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req bookMeetingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	booked, err := h.service.BookMeeting(r.Context(), application.BookMeetingParams{
		AdminID:        strings.TrimSpace(req.AdminID),
		Topic:          req.Topic,
		Start:          parseTime(req.StartTime),
		End:            parseTime(req.EndTime),
		ParticipantIDs: append([]string(nil), req.ParticipantIDs...),
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	handlerLogger(r.Context(), h.responder.logger, "meeting", "book").
		InfoContext(r.Context(), "meeting booked", "meeting_id", booked.Meeting.ID)

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, toBookedMeetingDTO(booked))
}

func (h *MeetingHandler) FreeSlots(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	slots, err := h.service.FindAvailableSlots(r.Context(), application.FreeSlotsParams{
		EmployeeIDs:     parseCSV(query.Get("employeeIds")),
		RequestedStart:  parseTime(query.Get("requestedStartTime")),
		DurationMinutes: parseMinutes(query.Get("durationMinutes")),
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, freeSlotsResponse{
		Slots: toSlotDTOs(slots),
	})
}

func (h *MeetingHandler) Conflicts(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	conflicted, err := h.service.FindConflictedEmployees(r.Context(), application.ConflictQueryParams{
		RequestedStart:  parseTime(query.Get("requestedStartTime")),
		DurationMinutes: parseMinutes(query.Get("durationMinutes")),
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, conflictsResponse{
		ConflictedEmployees: toEmployeeDTOs(conflicted),
	})
}

type bookMeetingRequest struct {
	AdminID        string   `json:"adminId"`
	Topic          string   `json:"topic"`
	StartTime      string   `json:"startTime"`
	EndTime        string   `json:"endTime"`
	ParticipantIDs []string `json:"participantIds"`
}

type bookedMeetingResponse struct {
	Meeting      meetingDTO               `json:"meeting"`
	Participants []participantCalendarDTO `json:"participants"`
}

type meetingDTO struct {
	ID             string   `json:"id"`
	Topic          string   `json:"topic"`
	StartTime      string   `json:"startTime"`
	EndTime        string   `json:"endTime"`
	ParticipantIDs []string `json:"participantIds"`
	CreatedAt      string   `json:"createdAt"`
}

type participantCalendarDTO struct {
	Employee employeeDTO `json:"employee"`
	Slots    []slotDTO   `json:"slots"`
}

type slotDTO struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employeeId"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	Available  bool   `json:"available"`
}

type freeSlotsResponse struct {
	Slots []slotDTO `json:"slots"`
}

type conflictsResponse struct {
	ConflictedEmployees []employeeDTO `json:"conflictedEmployees"`
}

func toBookedMeetingDTO(booked application.BookedMeeting) bookedMeetingResponse {
	participants := make([]participantCalendarDTO, 0, len(booked.Participants))
	for _, participant := range booked.Participants {
		participants = append(participants, participantCalendarDTO{
			Employee: toEmployeeDTO(participant.Employee),
			Slots:    toSlotDTOs(participant.Slots),
		})
	}

	return bookedMeetingResponse{
		Meeting:      toMeetingDTO(booked.Meeting),
		Participants: participants,
	}
}

func toMeetingDTO(meeting application.Meeting) meetingDTO {
	return meetingDTO{
		ID:             meeting.ID,
		Topic:          meeting.Topic,
		StartTime:      meeting.Start.UTC().Format(time.RFC3339),
		EndTime:        meeting.End.UTC().Format(time.RFC3339),
		ParticipantIDs: append([]string(nil), meeting.ParticipantIDs...),
		CreatedAt:      meeting.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toSlotDTOs(slots []application.CalendarSlot) []slotDTO {
	if len(slots) == 0 {
		return nil
	}
	out := make([]slotDTO, 0, len(slots))
	for _, slot := range slots {
		out = append(out, slotDTO{
			ID:         slot.ID,
			EmployeeID: slot.EmployeeID,
			StartTime:  slot.Start.UTC().Format(time.RFC3339),
			EndTime:    slot.End.UTC().Format(time.RFC3339),
			Available:  slot.Available,
		})
	}
	return out
}

func parseTime(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	if ts, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return ts
	}
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts
	}
	return time.Time{}
}

func parseMinutes(value string) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	minutes, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return minutes
}

func parseCSV(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
