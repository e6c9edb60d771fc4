// Package scheduler contains the shift generation and compliance validation
// engine: availability resolution, deterministic week assignment, labor-rule
// validation and the orchestration of both against persistence. Everything
// except the orchestrator is pure and safe for concurrent use.
package scheduler

import (
	"fmt"
	"time"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// clockMinutes parses an "HH:MM" wall-clock string into minutes since
// midnight.
func clockMinutes(s string) (int, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// shiftHours returns the duration of a start..end window in hours. An end
// earlier than the start means the window crosses midnight and gains 24h.
func shiftHours(start, end string) (float64, error) {
	s, err := clockMinutes(start)
	if err != nil {
		return 0, err
	}
	e, err := clockMinutes(end)
	if err != nil {
		return 0, err
	}
	m := e - s
	if m < 0 {
		m += 24 * 60
	}
	return float64(m) / 60, nil
}
