package scheduler

import (
	"fmt"
	"sort"

	"github.com/escala-dev/escala/backend/internal/domain"
)

// GeneratedSchedule is the outcome of one generation run. Success is false
// only for business-state problems such as an empty roster; compliance
// issues never appear here.
type GeneratedSchedule struct {
	Shifts   []domain.Shift `json:"shifts"`
	Warnings []string       `json:"warnings"`
	Success  bool           `json:"success"`
}

// Assigner produces a full week of shift assignments from operating hours
// and a roster. Construct with NewAssigner.
type Assigner struct {
	available func(emp *domain.Employee, date string, weekday int) bool
}

func NewAssigner() *Assigner {
	return &Assigner{available: EmployeeAvailable}
}

// Generate enumerates the seven calendar dates starting at weekStartDate and
// staffs every open one with up to minPerShift employees, each working the
// full operating window of the day.
//
// Candidates for a day are ordered by cumulative hours assigned so far in
// this run; the stable sort keeps roster order for ties. This ordering is
// the engine's determinism contract: identical inputs, including roster
// order, always produce identical output.
func (a *Assigner) Generate(weekStartDate string, hours domain.WeekHours, roster []*domain.Employee, minPerShift int) (*GeneratedSchedule, error) {
	weekStart, err := parseDate(weekStartDate)
	if err != nil {
		return nil, fmt.Errorf("week start: %w", err)
	}
	if minPerShift < 1 {
		minPerShift = 1
	}

	gen := &GeneratedSchedule{
		Shifts:   []domain.Shift{},
		Warnings: []string{},
		Success:  true,
	}

	if len(roster) == 0 {
		gen.Success = false
		gen.Warnings = append(gen.Warnings, "no employees available for scheduling")
		return gen, nil
	}

	anyOpen := false
	for _, day := range hours {
		if day.IsOpen {
			anyOpen = true
			break
		}
	}
	if !anyOpen {
		gen.Warnings = append(gen.Warnings, "establishment has no open days in its operating hours")
		return gen, nil
	}

	assigned := make(map[string]float64, len(roster))

	for i := 0; i < 7; i++ {
		date := weekStart.AddDate(0, 0, i)
		weekday := int(date.Weekday())
		day := hours[weekday]
		if !day.IsOpen {
			continue
		}

		duration, err := shiftHours(day.OpenTime, day.CloseTime)
		if err != nil {
			return nil, fmt.Errorf("operating hours for weekday %d: %w", weekday, err)
		}

		dateStr := date.Format(dateLayout)

		candidates := make([]*domain.Employee, 0, len(roster))
		for _, emp := range roster {
			if a.available(emp, dateStr, weekday) {
				candidates = append(candidates, emp)
			}
		}

		if len(candidates) < minPerShift {
			gen.Warnings = append(gen.Warnings, fmt.Sprintf(
				"%s: only %d of %d required employee(s) available", dateStr, len(candidates), minPerShift))
		}

		sort.SliceStable(candidates, func(x, y int) bool {
			return assigned[candidates[x].ID] < assigned[candidates[y].ID]
		})

		for _, emp := range candidates[:min(minPerShift, len(candidates))] {
			gen.Shifts = append(gen.Shifts, domain.Shift{
				ID:           dateStr + "_" + emp.ID,
				EmployeeID:   emp.ID,
				EmployeeName: emp.Name,
				Date:         dateStr,
				DayOfWeek:    weekday,
				StartTime:    day.OpenTime,
				EndTime:      day.CloseTime,
				Status:       domain.ShiftScheduled,
			})
			assigned[emp.ID] += duration
		}
	}

	return gen, nil
}
