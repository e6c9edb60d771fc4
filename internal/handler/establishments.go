package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/escala-dev/escala/backend/internal/domain"
)

// weekdayNames is indexed 0=Sunday..6=Saturday, matching domain.WeekHours.
var weekdayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

func validateOperatingHours(hours domain.WeekHours) error {
	for weekday, day := range hours {
		if !day.IsOpen {
			continue
		}
		if _, err := time.Parse("15:04", day.OpenTime); err != nil {
			return fmt.Errorf("%s: invalid open time %q", weekdayNames[weekday], day.OpenTime)
		}
		if _, err := time.Parse("15:04", day.CloseTime); err != nil {
			return fmt.Errorf("%s: invalid close time %q", weekdayNames[weekday], day.CloseTime)
		}
	}
	return nil
}

func (h *Handler) CreateEstablishment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name                 string           `json:"name" validate:"required"`
		OperatingHours       domain.WeekHours `json:"operatingHours"`
		MinEmployeesPerShift int              `json:"minEmployeesPerShift" validate:"required,min=1"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := validateOperatingHours(req.OperatingHours); err != nil {
		h.badRequest(w, r, err)
		return
	}

	est := &domain.Establishment{
		ID:                   uuid.NewString(),
		Name:                 req.Name,
		OperatingHours:       req.OperatingHours,
		MinEmployeesPerShift: req.MinEmployeesPerShift,
	}

	if err := h.repository.CreateEstablishment(est); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "establishment created", est)
}

func (h *Handler) GetAllEstablishments(w http.ResponseWriter, r *http.Request) {
	ests, err := h.repository.GetAllEstablishments()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "establishments fetched", ests)
}

func (h *Handler) GetEstablishment(w http.ResponseWriter, r *http.Request) {
	est := r.Context().Value(EstablishmentCtx).(*domain.Establishment)

	h.successResponse(w, r, "establishment fetched", est)
}

func (h *Handler) UpdateEstablishment(w http.ResponseWriter, r *http.Request) {
	est := r.Context().Value(EstablishmentCtx).(*domain.Establishment)

	var req struct {
		Name                 *string           `json:"name"`
		OperatingHours       *domain.WeekHours `json:"operatingHours"`
		MinEmployeesPerShift *int              `json:"minEmployeesPerShift" validate:"omitempty,min=1"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Name != nil {
		est.Name = *req.Name
	}
	if req.OperatingHours != nil {
		if err := validateOperatingHours(*req.OperatingHours); err != nil {
			h.badRequest(w, r, err)
			return
		}
		est.OperatingHours = *req.OperatingHours
	}
	if req.MinEmployeesPerShift != nil {
		est.MinEmployeesPerShift = *req.MinEmployeesPerShift
	}

	if err := h.repository.UpdateEstablishment(est); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "establishment updated", est)
}

func (h *Handler) DeleteEstablishment(w http.ResponseWriter, r *http.Request) {
	est := r.Context().Value(EstablishmentCtx).(*domain.Establishment)

	if err := h.repository.DeleteEstablishment(est.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "establishment deleted", nil)
}
