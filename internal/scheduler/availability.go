package scheduler

import (
	"slices"

	"github.com/escala-dev/escala/backend/internal/domain"
)

// EmployeeAvailable reports whether the employee may be scheduled on the
// given calendar day. date is "YYYY-MM-DD" and weekday is 0=Sunday..6=Saturday
// and must match the date's actual weekday.
//
// Resolution order, first matching rule wins:
//  1. temporary exceptions, scanned in list order
//  2. the recurring entry for the weekday, if one exists
//  3. legacy restriction weekdays
//  4. available by default
//
// Overlapping temporary ranges are allowed; the first entry in list order
// that contains the date governs and later entries are ignored.
func EmployeeAvailable(emp *domain.Employee, date string, weekday int) bool {
	for _, exc := range emp.TemporaryAvailability {
		// ISO dates compare correctly as strings.
		if exc.StartDate <= date && date <= exc.EndDate {
			switch exc.Type {
			case domain.ExceptionUnavailable:
				return false
			case domain.ExceptionAvailable, domain.ExceptionCustom:
				// Custom hours are informational only; the day counts as
				// available for the boolean check.
				return true
			}
		}
	}

	if weekday >= 0 && weekday < 7 {
		if rec := emp.RecurringAvailability[weekday]; rec != nil {
			return rec.Available
		}
	}

	if emp.Restrictions != nil && slices.Contains(emp.Restrictions.UnavailableDays, weekday) {
		return false
	}

	return true
}
