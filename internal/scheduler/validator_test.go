package scheduler

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escala-dev/escala/backend/internal/domain"
)

func shift(empID, date, start, end string) domain.Shift {
	return domain.Shift{
		ID:           date + "_" + empID,
		EmployeeID:   empID,
		EmployeeName: "Employee " + empID,
		Date:         date,
		StartTime:    start,
		EndTime:      end,
		Status:       domain.ShiftScheduled,
	}
}

func TestValidateCleanScheduleIsValid(t *testing.T) {
	shifts := []domain.Shift{}
	// Mon-Fri, two employees, 9h days: 45h would trip the weekly limit, so
	// use an 8h window.
	for _, date := range []string{"2025-01-06", "2025-01-07", "2025-01-08", "2025-01-09", "2025-01-10"} {
		shifts = append(shifts, shift("e1", date, "09:00", "17:00"), shift("e2", date, "09:00", "17:00"))
	}

	res, err := Validate(shifts, weekdayHours("09:00", "17:00"), 2)
	require.NoError(t, err)

	assert.True(t, res.IsValid)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
}

func TestValidateIsIdempotent(t *testing.T) {
	shifts := []domain.Shift{
		shift("e1", "2025-01-06", "09:00", "18:00"),
	}

	first, err := Validate(shifts, weekdayHours("09:00", "18:00"), 2)
	require.NoError(t, err)
	second, err := Validate(shifts, weekdayHours("09:00", "18:00"), 2)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestValidateUnderstaffedDays(t *testing.T) {
	shifts := []domain.Shift{
		shift("e1", "2025-01-06", "09:00", "18:00"),
		shift("e2", "2025-01-06", "09:00", "18:00"),
		shift("e1", "2025-01-07", "09:00", "18:00"),
	}

	res, err := Validate(shifts, weekdayHours("09:00", "18:00"), 2)
	require.NoError(t, err)

	assert.False(t, res.IsValid)
	require.Len(t, res.Errors, 1)
	issue := res.Errors[0]
	assert.Equal(t, domain.IssueUnderstaffedDay, issue.Kind)
	assert.Equal(t, domain.SeverityError, issue.Severity)
	assert.Equal(t, "2025-01-07", issue.Date)
	assert.Equal(t, "2025-01-07 has 1 employee(s) scheduled; the minimum is 2", issue.Message)
}

func TestValidateClosedDaysAreNotUnderstaffed(t *testing.T) {
	// A manually added Saturday shift at a Mon-Fri establishment: the closed
	// day must not be measured against the staffing minimum.
	shifts := []domain.Shift{
		shift("e1", "2025-01-11", "09:00", "13:00"),
	}

	res, err := Validate(shifts, weekdayHours("09:00", "18:00"), 3)
	require.NoError(t, err)

	for _, issue := range res.Errors {
		assert.NotEqual(t, domain.IssueUnderstaffedDay, issue.Kind)
	}
}

func TestValidateSevenDistinctDays(t *testing.T) {
	shifts := []domain.Shift{}
	for i := 6; i <= 12; i++ {
		shifts = append(shifts, shift("e1", fmt.Sprintf("2025-01-%02d", i), "09:00", "13:00"))
	}

	res, err := Validate(shifts, weekdayHours("09:00", "13:00"), 1)
	require.NoError(t, err)

	assert.False(t, res.IsValid)

	kinds := issueKinds(res.Errors)
	// Seven straight days breaks both the weekly rest rule and the
	// consecutive-day cap.
	assert.Contains(t, kinds, domain.IssueNoWeeklyRest)
	assert.Contains(t, kinds, domain.IssueExcessConsecutiveDays)
	assert.NotContains(t, issueKinds(res.Warnings), domain.IssueMaxConsecutiveDays)
}

func TestValidateExactlySixConsecutiveDaysWarns(t *testing.T) {
	shifts := []domain.Shift{}
	for i := 6; i <= 11; i++ {
		shifts = append(shifts, shift("e1", fmt.Sprintf("2025-01-%02d", i), "09:00", "13:00"))
	}

	res, err := Validate(shifts, weekdayHours("09:00", "13:00"), 1)
	require.NoError(t, err)

	assert.True(t, res.IsValid)
	assert.Empty(t, res.Errors)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, domain.IssueMaxConsecutiveDays, res.Warnings[0].Kind)
	assert.Equal(t, "e1", res.Warnings[0].EmployeeID)
}

func TestValidateSixDaysWithGapDoesNotWarn(t *testing.T) {
	// Six work dates, but split 3+3 around a rest day: no consecutive run
	// reaches six.
	shifts := []domain.Shift{}
	for _, i := range []int{5, 6, 7, 9, 10, 11} {
		shifts = append(shifts, shift("e1", fmt.Sprintf("2025-01-%02d", i), "09:00", "13:00"))
	}

	res, err := Validate(shifts, domain.WeekHours{}, 1)
	require.NoError(t, err)

	assert.NotContains(t, issueKinds(res.Warnings), domain.IssueMaxConsecutiveDays)
}

func TestValidateInsufficientRest(t *testing.T) {
	shifts := []domain.Shift{
		shift("e1", "2025-01-06", "09:00", "22:00"),
		shift("e1", "2025-01-07", "08:00", "16:00"),
	}

	res, err := Validate(shifts, weekdayHours("08:00", "22:00"), 1)
	require.NoError(t, err)

	require.Len(t, res.Warnings, 1)
	issue := res.Warnings[0]
	assert.Equal(t, domain.IssueInsufficientRest, issue.Kind)
	assert.Equal(t, domain.SeverityWarning, issue.Severity)
	assert.Equal(t, "2025-01-07", issue.Date)
	assert.Equal(t, "Employee e1 has 10.00 hour(s) of rest between 2025-01-06 and 2025-01-07; the minimum is 11", issue.Message)
}

func TestValidateExactMinimumRestDoesNotWarn(t *testing.T) {
	// 18:00 end to 05:00 next day is exactly 11 hours.
	shifts := []domain.Shift{
		shift("e1", "2025-01-06", "09:00", "18:00"),
		shift("e1", "2025-01-07", "05:00", "13:00"),
	}

	res, err := Validate(shifts, weekdayHours("05:00", "18:00"), 1)
	require.NoError(t, err)

	assert.NotContains(t, issueKinds(res.Warnings), domain.IssueInsufficientRest)
}

func TestValidateOvernightShiftRest(t *testing.T) {
	// Friday 18:00-02:00 ends Saturday 02:00; a Saturday 10:00 start leaves
	// only eight hours of rest.
	shifts := []domain.Shift{
		shift("e1", "2025-01-10", "18:00", "02:00"),
		shift("e1", "2025-01-11", "10:00", "18:00"),
	}

	hours := weekdayHours("09:00", "18:00")
	hours[5] = domain.DayHours{IsOpen: true, OpenTime: "18:00", CloseTime: "02:00"}
	hours[6] = domain.DayHours{IsOpen: true, OpenTime: "10:00", CloseTime: "18:00"}

	res, err := Validate(shifts, hours, 1)
	require.NoError(t, err)

	require.Len(t, res.Warnings, 1)
	issue := res.Warnings[0]
	assert.Equal(t, domain.IssueInsufficientRest, issue.Kind)
	assert.Contains(t, issue.Message, "8.00 hour(s) of rest")
}

func TestValidateExcessWeeklyHours(t *testing.T) {
	// Five 10h days: 50 hours.
	shifts := []domain.Shift{}
	for i := 6; i <= 10; i++ {
		shifts = append(shifts, shift("e1", fmt.Sprintf("2025-01-%02d", i), "08:00", "18:00"))
	}

	res, err := Validate(shifts, weekdayHours("08:00", "18:00"), 1)
	require.NoError(t, err)

	assert.True(t, res.IsValid)
	require.Len(t, res.Warnings, 1)
	issue := res.Warnings[0]
	assert.Equal(t, domain.IssueExcessWeeklyHours, issue.Kind)
	assert.Equal(t, "Employee e1 is scheduled for 50.0 hour(s); the weekly limit is 44", issue.Message)
}

func TestValidateOvernightHoursCountTowardWeeklyTotal(t *testing.T) {
	// Six 8h overnight shifts: 48 hours.
	shifts := []domain.Shift{}
	for i := 6; i <= 11; i++ {
		shifts = append(shifts, shift("e1", fmt.Sprintf("2025-01-%02d", i), "22:00", "06:00"))
	}

	res, err := Validate(shifts, domain.WeekHours{}, 1)
	require.NoError(t, err)

	assert.Contains(t, issueKinds(res.Warnings), domain.IssueExcessWeeklyHours)
}

func TestValidateIssuesGroupedByRule(t *testing.T) {
	// e1 works all seven days at 10h; Tuesday is understaffed.
	shifts := []domain.Shift{}
	for i := 5; i <= 11; i++ {
		date := fmt.Sprintf("2025-01-%02d", i)
		shifts = append(shifts, shift("e1", date, "08:00", "18:00"))
		if date != "2025-01-07" {
			shifts = append(shifts, shift("e2", date, "08:00", "18:00"))
		}
	}

	hours := domain.WeekHours{}
	for weekday := range hours {
		hours[weekday] = domain.DayHours{IsOpen: true, OpenTime: "08:00", CloseTime: "18:00"}
	}

	res, err := Validate(shifts, hours, 2)
	require.NoError(t, err)

	assert.False(t, res.IsValid)
	assert.Equal(t, []domain.IssueKind{
		domain.IssueUnderstaffedDay,
		domain.IssueNoWeeklyRest,
		domain.IssueExcessConsecutiveDays,
	}, issueKinds(res.Errors))
	assert.Equal(t, []domain.IssueKind{
		domain.IssueExcessWeeklyHours,
		domain.IssueExcessWeeklyHours,
	}, issueKinds(res.Warnings))
}

func TestValidateEmptyShiftList(t *testing.T) {
	res, err := Validate(nil, weekdayHours("09:00", "18:00"), 2)
	require.NoError(t, err)

	assert.True(t, res.IsValid)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
}

func TestValidateMalformedShiftIsAnError(t *testing.T) {
	shifts := []domain.Shift{
		shift("e1", "2025-01-06", "9am", "18:00"),
	}

	_, err := Validate(shifts, weekdayHours("09:00", "18:00"), 1)
	assert.Error(t, err)
}

func issueKinds(issues []domain.ComplianceIssue) []domain.IssueKind {
	kinds := make([]domain.IssueKind, 0, len(issues))
	for _, issue := range issues {
		kinds = append(kinds, issue.Kind)
	}
	return kinds
}
