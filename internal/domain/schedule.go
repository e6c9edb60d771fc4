package domain

import (
	"errors"
	"time"
)

// ErrScheduleNotFound is returned by schedule lookups when no matching
// non-archived schedule exists. Repositories map sql.ErrNoRows to it.
var ErrScheduleNotFound = errors.New("schedule not found")

type ScheduleStatus string

const (
	ScheduleDraft     ScheduleStatus = "draft"
	SchedulePublished ScheduleStatus = "published"
	ScheduleArchived  ScheduleStatus = "archived"
)

type GeneratedBy string

const (
	GeneratedByEngine GeneratedBy = "engine"
	GeneratedByManual GeneratedBy = "manual"
)

type ShiftStatus string

const (
	ShiftScheduled ShiftStatus = "scheduled"
)

// Shift is one employee working one calendar day. DayOfWeek always equals
// the actual weekday of Date. EndTime earlier than StartTime means the shift
// crosses midnight.
type Shift struct {
	ID           string      `json:"id"`
	EmployeeID   string      `json:"employeeID"`
	EmployeeName string      `json:"employeeName"`
	Date         string      `json:"date"`
	DayOfWeek    int         `json:"dayOfWeek"`
	StartTime    string      `json:"startTime"`
	EndTime      string      `json:"endTime"`
	Status       ShiftStatus `json:"status"`
}

type Schedule struct {
	ID              int64          `json:"id"`
	EstablishmentID string         `json:"establishmentID"`
	WeekStartDate   string         `json:"weekStartDate"`
	WeekEndDate     string         `json:"weekEndDate"`
	Shifts          []Shift        `json:"shifts"`
	Status          ScheduleStatus `json:"status"`
	GeneratedBy     GeneratedBy    `json:"generatedBy"`
	CreatedAt       time.Time      `json:"createdAt"`
	Version         int32          `json:"-"`
}
