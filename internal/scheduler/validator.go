package scheduler

import (
	"fmt"
	"sort"
	"time"

	"github.com/escala-dev/escala/backend/internal/domain"
)

const (
	maxConsecutiveWorkDays = 6
	minRestBetweenShifts   = 11.0 // hours (interjornada)
	maxWeeklyHours         = 44.0
)

// Validate checks a finished shift list against the labor rules and returns
// the findings grouped into errors and warnings. The input is never mutated,
// and calling Validate twice with identical arguments yields identical
// results.
//
// Issues are ordered by rule (understaffed day, no weekly rest, consecutive
// days, insufficient inter-shift rest, excess weekly hours) and within a
// rule by the employee/date order in which the input was scanned.
//
// Malformed dates or times in the shift list are structural input errors,
// not compliance issues, and abort validation.
func Validate(shifts []domain.Shift, hours domain.WeekHours, minPerShift int) (*domain.ValidationResult, error) {
	if minPerShift < 1 {
		minPerShift = 1
	}

	// Group by employee and by date, preserving first-encounter order.
	empOrder := make([]string, 0)
	empShifts := make(map[string][]domain.Shift)
	empNames := make(map[string]string)
	dateOrder := make([]string, 0)
	dateEmployees := make(map[string]map[string]struct{})

	for _, s := range shifts {
		if _, ok := empShifts[s.EmployeeID]; !ok {
			empOrder = append(empOrder, s.EmployeeID)
			empNames[s.EmployeeID] = s.EmployeeName
		}
		empShifts[s.EmployeeID] = append(empShifts[s.EmployeeID], s)

		if _, ok := dateEmployees[s.Date]; !ok {
			dateOrder = append(dateOrder, s.Date)
			dateEmployees[s.Date] = make(map[string]struct{})
		}
		dateEmployees[s.Date][s.EmployeeID] = struct{}{}
	}

	// Per-employee sorted distinct work dates and overnight-aware totals.
	workDates := make(map[string][]time.Time)
	totalHours := make(map[string]float64)

	for _, id := range empOrder {
		seen := make(map[string]struct{})
		for _, s := range empShifts[id] {
			h, err := shiftHours(s.StartTime, s.EndTime)
			if err != nil {
				return nil, fmt.Errorf("shift %s: %w", s.ID, err)
			}
			totalHours[id] += h

			if _, ok := seen[s.Date]; ok {
				continue
			}
			seen[s.Date] = struct{}{}
			d, err := parseDate(s.Date)
			if err != nil {
				return nil, fmt.Errorf("shift %s: %w", s.ID, err)
			}
			workDates[id] = append(workDates[id], d)
		}
		sort.Slice(workDates[id], func(x, y int) bool {
			return workDates[id][x].Before(workDates[id][y])
		})
	}

	res := &domain.ValidationResult{
		Errors:   []domain.ComplianceIssue{},
		Warnings: []domain.ComplianceIssue{},
	}

	// Understaffed open days.
	for _, date := range dateOrder {
		d, err := parseDate(date)
		if err != nil {
			return nil, err
		}
		if !hours[int(d.Weekday())].IsOpen {
			continue
		}
		if count := len(dateEmployees[date]); count < minPerShift {
			res.Errors = append(res.Errors, domain.ComplianceIssue{
				Kind:     domain.IssueUnderstaffedDay,
				Severity: domain.SeverityError,
				Message:  fmt.Sprintf("%s has %d employee(s) scheduled; the minimum is %d", date, count, minPerShift),
				Date:     date,
			})
		}
	}

	// No weekly rest day (DSR).
	for _, id := range empOrder {
		if n := len(workDates[id]); n > maxConsecutiveWorkDays {
			res.Errors = append(res.Errors, domain.ComplianceIssue{
				Kind:       domain.IssueNoWeeklyRest,
				Severity:   domain.SeverityError,
				Message:    fmt.Sprintf("%s works on %d distinct days and has no weekly rest day (DSR)", empNames[id], n),
				EmployeeID: id,
			})
		}
	}

	// More than six consecutive work days.
	for _, id := range empOrder {
		if run := longestRun(workDates[id]); run > maxConsecutiveWorkDays {
			res.Errors = append(res.Errors, domain.ComplianceIssue{
				Kind:       domain.IssueExcessConsecutiveDays,
				Severity:   domain.SeverityError,
				Message:    fmt.Sprintf("%s works %d consecutive days; the maximum is %d", empNames[id], run, maxConsecutiveWorkDays),
				EmployeeID: id,
			})
		}
	}

	// Exactly six consecutive work days.
	for _, id := range empOrder {
		if longestRun(workDates[id]) == maxConsecutiveWorkDays {
			res.Warnings = append(res.Warnings, domain.ComplianceIssue{
				Kind:       domain.IssueMaxConsecutiveDays,
				Severity:   domain.SeverityWarning,
				Message:    fmt.Sprintf("%s works %d consecutive days; consider scheduling a rest day", empNames[id], maxConsecutiveWorkDays),
				EmployeeID: id,
			})
		}
	}

	// Insufficient rest between consecutive shifts (interjornada).
	for _, id := range empOrder {
		ordered := make([]domain.Shift, len(empShifts[id]))
		copy(ordered, empShifts[id])
		sort.SliceStable(ordered, func(x, y int) bool {
			if ordered[x].Date != ordered[y].Date {
				return ordered[x].Date < ordered[y].Date
			}
			return ordered[x].StartTime < ordered[y].StartTime
		})

		for i := 1; i < len(ordered); i++ {
			prevEnd, err := shiftEnd(ordered[i-1])
			if err != nil {
				return nil, err
			}
			nextStart, err := shiftStart(ordered[i])
			if err != nil {
				return nil, err
			}
			gap := nextStart.Sub(prevEnd).Hours()
			if gap > 0 && gap < minRestBetweenShifts {
				res.Warnings = append(res.Warnings, domain.ComplianceIssue{
					Kind:     domain.IssueInsufficientRest,
					Severity: domain.SeverityWarning,
					Message: fmt.Sprintf("%s has %.2f hour(s) of rest between %s and %s; the minimum is %v",
						empNames[id], gap, ordered[i-1].Date, ordered[i].Date, minRestBetweenShifts),
					EmployeeID: id,
					Date:       ordered[i].Date,
				})
			}
		}
	}

	// More than 44 worked hours in the week.
	for _, id := range empOrder {
		if total := totalHours[id]; total > maxWeeklyHours {
			res.Warnings = append(res.Warnings, domain.ComplianceIssue{
				Kind:       domain.IssueExcessWeeklyHours,
				Severity:   domain.SeverityWarning,
				Message:    fmt.Sprintf("%s is scheduled for %.1f hour(s); the weekly limit is %v", empNames[id], total, maxWeeklyHours),
				EmployeeID: id,
			})
		}
	}

	res.IsValid = len(res.Errors) == 0
	return res, nil
}

// longestRun returns the length of the longest run of calendar-consecutive
// dates. The input must be sorted ascending and free of duplicates.
func longestRun(dates []time.Time) int {
	longest, run := 0, 0
	for i, d := range dates {
		if i > 0 && d.Sub(dates[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

func shiftStart(s domain.Shift) (time.Time, error) {
	d, err := parseDate(s.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("shift %s: %w", s.ID, err)
	}
	m, err := clockMinutes(s.StartTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("shift %s: %w", s.ID, err)
	}
	return d.Add(time.Duration(m) * time.Minute), nil
}

// shiftEnd returns the absolute end of a shift, rolling into the next
// calendar day when the shift crosses midnight.
func shiftEnd(s domain.Shift) (time.Time, error) {
	d, err := parseDate(s.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("shift %s: %w", s.ID, err)
	}
	start, err := clockMinutes(s.StartTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("shift %s: %w", s.ID, err)
	}
	end, err := clockMinutes(s.EndTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("shift %s: %w", s.ID, err)
	}
	if end < start {
		end += 24 * 60
	}
	return d.Add(time.Duration(end) * time.Minute), nil
}
