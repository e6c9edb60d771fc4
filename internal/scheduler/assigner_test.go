package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escala-dev/escala/backend/internal/domain"
)

// weekdayHours builds operating hours open Monday through Friday with the
// same window every day.
func weekdayHours(open, close string) domain.WeekHours {
	hours := domain.WeekHours{}
	for weekday := 1; weekday <= 5; weekday++ {
		hours[weekday] = domain.DayHours{IsOpen: true, OpenTime: open, CloseTime: close}
	}
	return hours
}

func testRoster(ids ...string) []*domain.Employee {
	roster := make([]*domain.Employee, 0, len(ids))
	for _, id := range ids {
		roster = append(roster, &domain.Employee{ID: id, Name: "Employee " + id, Status: domain.EmployeeActive})
	}
	return roster
}

func TestGenerateFullWeek(t *testing.T) {
	roster := testRoster("e1", "e2", "e3")

	gen, err := NewAssigner().Generate("2025-01-06", weekdayHours("09:00", "18:00"), roster, 2)
	require.NoError(t, err)

	assert.True(t, gen.Success)
	assert.Empty(t, gen.Warnings)
	// Five open days, two employees each.
	require.Len(t, gen.Shifts, 10)

	for _, s := range gen.Shifts {
		assert.Equal(t, s.Date+"_"+s.EmployeeID, s.ID)
		assert.Equal(t, "09:00", s.StartTime)
		assert.Equal(t, "18:00", s.EndTime)
		assert.Equal(t, domain.ShiftScheduled, s.Status)
	}

	// Cumulative-hours ordering rotates the third employee in on day two.
	perDay := map[string][]string{}
	for _, s := range gen.Shifts {
		perDay[s.Date] = append(perDay[s.Date], s.EmployeeID)
	}
	assert.Equal(t, []string{"e1", "e2"}, perDay["2025-01-06"])
	assert.Equal(t, []string{"e3", "e1"}, perDay["2025-01-07"])
	assert.Equal(t, []string{"e2", "e3"}, perDay["2025-01-08"])

	// Nobody ends the week more than one working day ahead of anyone else.
	counts := map[string]int{}
	for _, s := range gen.Shifts {
		counts[s.EmployeeID]++
	}
	for _, id := range []string{"e1", "e2", "e3"} {
		assert.InDelta(t, 10.0/3.0, float64(counts[id]), 1.0)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	roster := testRoster("e1", "e2", "e3", "e4")
	hours := weekdayHours("08:00", "17:00")

	first, err := NewAssigner().Generate("2025-01-06", hours, roster, 2)
	require.NoError(t, err)
	second, err := NewAssigner().Generate("2025-01-06", hours, roster, 2)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateUnderstaffedDayWarns(t *testing.T) {
	roster := testRoster("e1", "e2", "e3")
	roster[1].TemporaryAvailability = []domain.TemporaryException{
		{StartDate: "2025-01-07", EndDate: "2025-01-07", Type: domain.ExceptionUnavailable},
	}
	roster[2].TemporaryAvailability = []domain.TemporaryException{
		{StartDate: "2025-01-07", EndDate: "2025-01-07", Type: domain.ExceptionUnavailable},
	}

	gen, err := NewAssigner().Generate("2025-01-06", weekdayHours("09:00", "18:00"), roster, 2)
	require.NoError(t, err)

	// Understaffing is a warning, not a failure; the day is staffed with
	// whoever is left.
	assert.True(t, gen.Success)
	require.Len(t, gen.Warnings, 1)
	assert.Equal(t, "2025-01-07: only 1 of 2 required employee(s) available", gen.Warnings[0])

	tuesday := []string{}
	for _, s := range gen.Shifts {
		if s.Date == "2025-01-07" {
			tuesday = append(tuesday, s.EmployeeID)
		}
	}
	assert.Equal(t, []string{"e1"}, tuesday)
}

func TestGenerateEmptyRoster(t *testing.T) {
	gen, err := NewAssigner().Generate("2025-01-06", weekdayHours("09:00", "18:00"), nil, 2)
	require.NoError(t, err)

	assert.False(t, gen.Success)
	assert.Empty(t, gen.Shifts)
	assert.Equal(t, []string{"no employees available for scheduling"}, gen.Warnings)
}

func TestGenerateNoOpenDays(t *testing.T) {
	gen, err := NewAssigner().Generate("2025-01-06", domain.WeekHours{}, testRoster("e1"), 2)
	require.NoError(t, err)

	// A fully closed week is not a failure, just an empty schedule.
	assert.True(t, gen.Success)
	assert.Empty(t, gen.Shifts)
	assert.Equal(t, []string{"establishment has no open days in its operating hours"}, gen.Warnings)
}

func TestGenerateOvernightShiftKeepsWallClockTimes(t *testing.T) {
	hours := domain.WeekHours{}
	hours[5] = domain.DayHours{IsOpen: true, OpenTime: "18:00", CloseTime: "02:00"}

	gen, err := NewAssigner().Generate("2025-01-06", hours, testRoster("e1"), 1)
	require.NoError(t, err)

	require.Len(t, gen.Shifts, 1)
	s := gen.Shifts[0]
	assert.Equal(t, "2025-01-10", s.Date)
	assert.Equal(t, "18:00", s.StartTime)
	assert.Equal(t, "02:00", s.EndTime)
}

func TestGenerateClampsMinPerShift(t *testing.T) {
	gen, err := NewAssigner().Generate("2025-01-06", weekdayHours("09:00", "18:00"), testRoster("e1", "e2"), 0)
	require.NoError(t, err)

	assert.True(t, gen.Success)
	// A zero minimum still staffs one employee per open day.
	assert.Len(t, gen.Shifts, 5)
}

func TestGenerateRejectsMalformedWeekStart(t *testing.T) {
	_, err := NewAssigner().Generate("06/01/2025", weekdayHours("09:00", "18:00"), testRoster("e1"), 1)
	assert.Error(t, err)
}
