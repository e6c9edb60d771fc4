package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/escala-dev/escala/backend/internal/domain"
)

func TestEmployeeAvailableDefaultsToAvailable(t *testing.T) {
	emp := &domain.Employee{ID: "e1", Name: "Ana"}

	assert.True(t, EmployeeAvailable(emp, "2025-01-06", 1))
}

func TestEmployeeAvailableTemporaryExceptionWins(t *testing.T) {
	emp := &domain.Employee{
		ID: "e1",
		// The recurring rule says Monday is fine; the vacation range must
		// still win.
		RecurringAvailability: domain.RecurringWeek{
			1: {Available: true, StartTime: "09:00", EndTime: "18:00"},
		},
		TemporaryAvailability: []domain.TemporaryException{
			{StartDate: "2025-01-06", EndDate: "2025-01-10", Type: domain.ExceptionUnavailable},
		},
	}

	assert.False(t, EmployeeAvailable(emp, "2025-01-06", 1))
	assert.False(t, EmployeeAvailable(emp, "2025-01-10", 5))
	// Outside the range the recurring rule applies again.
	assert.True(t, EmployeeAvailable(emp, "2025-01-13", 1))
}

func TestEmployeeAvailableOverlappingExceptionsFirstMatchWins(t *testing.T) {
	emp := &domain.Employee{
		ID: "e1",
		TemporaryAvailability: []domain.TemporaryException{
			{StartDate: "2025-01-06", EndDate: "2025-01-12", Type: domain.ExceptionAvailable},
			{StartDate: "2025-01-08", EndDate: "2025-01-08", Type: domain.ExceptionUnavailable},
		},
	}

	// Both ranges contain the date; the earlier list entry governs.
	assert.True(t, EmployeeAvailable(emp, "2025-01-08", 3))
}

func TestEmployeeAvailableUnknownExceptionTypeFallsThrough(t *testing.T) {
	emp := &domain.Employee{
		ID: "e1",
		TemporaryAvailability: []domain.TemporaryException{
			{StartDate: "2025-01-06", EndDate: "2025-01-06", Type: "sabbatical"},
		},
		RecurringAvailability: domain.RecurringWeek{
			1: {Available: false},
		},
	}

	// An unrecognized type neither grants nor denies; the next layer decides.
	assert.False(t, EmployeeAvailable(emp, "2025-01-06", 1))
}

func TestEmployeeAvailableRecurringOverridesRestrictions(t *testing.T) {
	emp := &domain.Employee{
		ID: "e1",
		RecurringAvailability: domain.RecurringWeek{
			1: {Available: true, StartTime: "09:00", EndTime: "18:00"},
			2: {Available: false},
		},
		Restrictions: &domain.Restrictions{UnavailableDays: []int{1}},
	}

	// Monday has a recurring entry, so the legacy restriction is ignored.
	assert.True(t, EmployeeAvailable(emp, "2025-01-06", 1))
	assert.False(t, EmployeeAvailable(emp, "2025-01-07", 2))
}

func TestEmployeeAvailableLegacyRestrictions(t *testing.T) {
	emp := &domain.Employee{
		ID:           "e1",
		Restrictions: &domain.Restrictions{UnavailableDays: []int{0, 6}},
	}

	assert.False(t, EmployeeAvailable(emp, "2025-01-05", 0))
	assert.True(t, EmployeeAvailable(emp, "2025-01-06", 1))
	assert.False(t, EmployeeAvailable(emp, "2025-01-11", 6))
}

func TestEmployeeAvailableCustomExceptionCountsAsAvailable(t *testing.T) {
	emp := &domain.Employee{
		ID:           "e1",
		Restrictions: &domain.Restrictions{UnavailableDays: []int{1}},
		TemporaryAvailability: []domain.TemporaryException{
			{
				StartDate: "2025-01-06",
				EndDate:   "2025-01-06",
				Type:      domain.ExceptionCustom,
				Hours:     &domain.HourRange{StartTime: "12:00", EndTime: "16:00"},
			},
		},
	}

	assert.True(t, EmployeeAvailable(emp, "2025-01-06", 1))
}
