package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/escala-dev/escala/backend/internal/domain"
)

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	est := r.Context().Value(EstablishmentCtx).(*domain.Establishment)

	var req struct {
		Name  string `json:"name" validate:"required"`
		Email string `json:"email" validate:"omitempty,email"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	emp := &domain.Employee{
		ID:                    uuid.NewString(),
		EstablishmentID:       est.ID,
		Name:                  req.Name,
		Email:                 req.Email,
		Status:                domain.EmployeeActive,
		TemporaryAvailability: []domain.TemporaryException{},
	}

	if err := h.repository.CreateEmployee(emp); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "employee created", emp)
}

func (h *Handler) GetEstablishmentEmployees(w http.ResponseWriter, r *http.Request) {
	est := r.Context().Value(EstablishmentCtx).(*domain.Establishment)

	emps, err := h.repository.GetEmployeesByEstablishment(est.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "employees fetched", emps)
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	emp := r.Context().Value(EmployeeCtx).(*domain.Employee)

	h.successResponse(w, r, "employee fetched", emp)
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	emp := r.Context().Value(EmployeeCtx).(*domain.Employee)

	var req struct {
		Name   *string `json:"name"`
		Email  *string `json:"email" validate:"omitempty,email"`
		Status *string `json:"status" validate:"omitempty,oneof=active inactive"`
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
		emp.Name = *req.Name
	}
	if req.Email != nil {
		emp.Email = *req.Email
	}
	if req.Status != nil {
		emp.Status = domain.EmployeeStatus(*req.Status)
	}

	if err := h.repository.UpdateEmployee(emp); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "employee updated", emp)
}

// UpdateEmployeeAvailability updates any of the three availability layers.
// Absent fields keep their stored value; present fields are replaced
// wholesale (partial merges of a layer are not supported).
func (h *Handler) UpdateEmployeeAvailability(w http.ResponseWriter, r *http.Request) {
	emp := r.Context().Value(EmployeeCtx).(*domain.Employee)

	var req struct {
		Restrictions          *domain.Restrictions         `json:"restrictions"`
		RecurringAvailability *domain.RecurringWeek        `json:"recurringAvailability"`
		TemporaryAvailability *[]domain.TemporaryException `json:"temporaryAvailability"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.TemporaryAvailability != nil {
		for _, exc := range *req.TemporaryAvailability {
			if err := h.validate.Var(string(exc.Type), "oneof=unavailable available custom"); err != nil {
				h.errorResponse(w, r, "invalid temporary availability type")
				return
			}
			if err := h.validate.Var(exc.StartDate, "datetime=2006-01-02"); err != nil {
				h.errorResponse(w, r, "invalid temporary availability start date")
				return
			}
			if err := h.validate.Var(exc.EndDate, "datetime=2006-01-02"); err != nil {
				h.errorResponse(w, r, "invalid temporary availability end date")
				return
			}
			if exc.EndDate < exc.StartDate {
				h.errorResponse(w, r, "temporary availability range ends before it starts")
				return
			}
		}
	}

	if req.Restrictions != nil {
		for _, day := range req.Restrictions.UnavailableDays {
			if day < 0 || day > 6 {
				h.errorResponse(w, r, "restriction weekdays must be between 0 and 6")
				return
			}
		}
	}

	if req.Restrictions != nil {
		emp.Restrictions = req.Restrictions
	}
	if req.RecurringAvailability != nil {
		emp.RecurringAvailability = *req.RecurringAvailability
	}
	if req.TemporaryAvailability != nil {
		emp.TemporaryAvailability = *req.TemporaryAvailability
	}

	if err := h.repository.UpdateEmployee(emp); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "availability updated", emp)
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	emp := r.Context().Value(EmployeeCtx).(*domain.Employee)

	if err := h.repository.DeleteEmployee(emp.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "employee deleted", nil)
}
