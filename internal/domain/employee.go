package domain

import "time"

type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "active"
	EmployeeInactive EmployeeStatus = "inactive"
)

type ExceptionType string

const (
	ExceptionUnavailable ExceptionType = "unavailable"
	ExceptionAvailable   ExceptionType = "available"
	ExceptionCustom      ExceptionType = "custom"
)

// RecurringDay is a weekly-repeating availability entry for one weekday.
// The optional times are informational; the engine only consults Available.
type RecurringDay struct {
	Available bool   `json:"available"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
}

// RecurringWeek maps weekday 0=Sunday..6=Saturday to an optional recurring
// entry. A nil slot means the weekday has no recurring rule.
type RecurringWeek [7]*RecurringDay

// TemporaryException overrides recurring availability for a bounded date
// range. Dates are inclusive "YYYY-MM-DD" strings. Hours only accompanies
// the custom type.
type TemporaryException struct {
	StartDate string        `json:"startDate"`
	EndDate   string        `json:"endDate"`
	Type      ExceptionType `json:"type"`
	Hours     *HourRange    `json:"hours,omitempty"`
}

type HourRange struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// Restrictions is the legacy availability shape kept for employees created
// before per-weekday recurring availability existed.
type Restrictions struct {
	UnavailableDays []int `json:"unavailableDays"`
}

type Employee struct {
	ID                    string               `json:"id"`
	EstablishmentID       string               `json:"establishmentID"`
	Name                  string               `json:"name"`
	Email                 string               `json:"email,omitempty"`
	Status                EmployeeStatus       `json:"status"`
	Restrictions          *Restrictions        `json:"restrictions,omitempty"`
	RecurringAvailability RecurringWeek        `json:"recurringAvailability"`
	TemporaryAvailability []TemporaryException `json:"temporaryAvailability"`
	CreatedAt             time.Time            `json:"createdAt"`
	Version               int32                `json:"-"`
}
