package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/escala-dev/escala/backend/internal/domain"
	"github.com/escala-dev/escala/backend/internal/scheduler"
)

func (h *Handler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	est := r.Context().Value(EstablishmentCtx).(*domain.Establishment)

	var req struct {
		WeekStartDate string `json:"weekStartDate" validate:"required,datetime=2006-01-02"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	roster, err := h.repository.GetEmployeesByEstablishment(est.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	outcome, err := h.orchestrator.GenerateWeek(r.Context(), est, roster, req.WeekStartDate)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	msg := "schedule generated"
	if !outcome.Created {
		msg = "a schedule already exists for this week"
	}

	h.successResponse(w, r, msg, outcome)
}

func (h *Handler) GetEstablishmentSchedules(w http.ResponseWriter, r *http.Request) {
	est := r.Context().Value(EstablishmentCtx).(*domain.Establishment)

	schedules, err := h.repository.GetSchedulesByEstablishment(est.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "schedules fetched", schedules)
}

func (h *Handler) GetScheduleByWeek(w http.ResponseWriter, r *http.Request) {
	est := r.Context().Value(EstablishmentCtx).(*domain.Establishment)

	week := chi.URLParam(r, "week")
	if err := h.validate.Var(week, "datetime=2006-01-02"); err != nil {
		h.errorResponse(w, r, "invalid week start date")
		return
	}

	s, err := h.repository.GetActiveScheduleByWeek(r.Context(), est.ID, week)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrScheduleNotFound):
			h.errorResponse(w, r, "no schedule for this week")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "schedule fetched", s)
}

// ValidateShifts runs the compliance validator on a caller-supplied shift
// list without touching any stored schedule, so managers can check manual
// edits before saving them.
func (h *Handler) ValidateShifts(w http.ResponseWriter, r *http.Request) {
	est := r.Context().Value(EstablishmentCtx).(*domain.Establishment)

	var req struct {
		Shifts []domain.Shift `json:"shifts" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := checkShiftList(req.Shifts); err != nil {
		h.badRequest(w, r, err)
		return
	}

	result, err := scheduler.Validate(req.Shifts, est.OperatingHours, est.MinEmployeesPerShift)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	h.successResponse(w, r, "shifts validated", result)
}

func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	s := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	h.successResponse(w, r, "schedule fetched", s)
}

// ReplaceScheduleShifts swaps a draft schedule's shift list for a manually
// edited one and re-runs the validator. Compliance issues are reported but
// do not block the save.
func (h *Handler) ReplaceScheduleShifts(w http.ResponseWriter, r *http.Request) {
	s := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	if s.Status != domain.ScheduleDraft {
		h.errorResponse(w, r, "only draft schedules can be edited")
		return
	}

	var req struct {
		Shifts []domain.Shift `json:"shifts" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := checkShiftList(req.Shifts); err != nil {
		h.badRequest(w, r, err)
		return
	}

	est, err := h.repository.GetEstablishmentByID(s.EstablishmentID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	result, err := scheduler.Validate(req.Shifts, est.OperatingHours, est.MinEmployeesPerShift)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	s.Shifts = req.Shifts
	s.GeneratedBy = domain.GeneratedByManual

	if err := h.repository.UpdateScheduleShifts(s); err != nil {
		switch {
		case errors.Is(err, domain.ErrScheduleNotFound):
			h.errorResponse(w, r, "please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "shifts updated", struct {
		Schedule   *domain.Schedule         `json:"schedule"`
		Validation *domain.ValidationResult `json:"validation"`
	}{s, result})
}

func (h *Handler) PublishSchedule(w http.ResponseWriter, r *http.Request) {
	s := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	est, err := h.repository.GetEstablishmentByID(s.EstablishmentID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	published, err := h.orchestrator.Publish(r.Context(), est, s.ID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrScheduleNotFound):
			h.errorResponse(w, r, "only draft schedules can be published")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "schedule published", published)
}

func (h *Handler) ArchiveSchedule(w http.ResponseWriter, r *http.Request) {
	s := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	if s.Status == domain.ScheduleArchived {
		h.errorResponse(w, r, "schedule is already archived")
		return
	}

	archived, err := h.repository.UpdateScheduleStatus(r.Context(), s.ID, s.Status, domain.ScheduleArchived)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrScheduleNotFound):
			h.errorResponse(w, r, "please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "schedule archived", archived)
}

// checkShiftList performs the structural checks on manually supplied shifts
// that the validator's rules assume: parseable dates and times, a matching
// dayOfWeek, and non-empty identity fields.
func checkShiftList(shifts []domain.Shift) error {
	for i, s := range shifts {
		if s.EmployeeID == "" {
			return fmt.Errorf("shift %d: employeeID is required", i)
		}
		d, err := time.Parse("2006-01-02", s.Date)
		if err != nil {
			return fmt.Errorf("shift %d: invalid date %q", i, s.Date)
		}
		if int(d.Weekday()) != s.DayOfWeek {
			return fmt.Errorf("shift %d: dayOfWeek %d does not match date %s", i, s.DayOfWeek, s.Date)
		}
		if _, err := time.Parse("15:04", s.StartTime); err != nil {
			return fmt.Errorf("shift %d: invalid start time %q", i, s.StartTime)
		}
		if _, err := time.Parse("15:04", s.EndTime); err != nil {
			return fmt.Errorf("shift %d: invalid end time %q", i, s.EndTime)
		}
	}
	return nil
}
