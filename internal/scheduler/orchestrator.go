package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/escala-dev/escala/backend/internal/domain"
)

// ErrDuplicateSchedule is returned by ScheduleStore.CreateSchedule when a
// non-archived schedule already exists for the same establishment and week.
var ErrDuplicateSchedule = errors.New("a schedule already exists for this week")

// ScheduleStore is the persistence surface the orchestrator depends on. The
// "at most one non-archived schedule per (establishment, week)" invariant
// belongs to the store, not the engine; CreateSchedule must enforce it
// atomically and report violations as ErrDuplicateSchedule.
type ScheduleStore interface {
	GetActiveScheduleByWeek(ctx context.Context, establishmentID, weekStartDate string) (*domain.Schedule, error)
	CreateSchedule(ctx context.Context, schedule *domain.Schedule) error
	UpdateScheduleStatus(ctx context.Context, id int64, from, to domain.ScheduleStatus) (*domain.Schedule, error)
}

// Notifier delivers published-schedule notifications. Delivery is
// best-effort: the orchestrator logs failures and never fails the publish
// transition because of them.
type Notifier interface {
	SchedulePublished(ctx context.Context, est *domain.Establishment, schedule *domain.Schedule) error
}

// GenerationOutcome pairs the persisted (or pre-existing) schedule with the
// compliance verdict and any generation warnings. Created is false when the
// week already had a schedule and nothing was generated.
type GenerationOutcome struct {
	Schedule   *domain.Schedule         `json:"schedule"`
	Validation *domain.ValidationResult `json:"validation"`
	Warnings   []string                 `json:"warnings"`
	Created    bool                     `json:"created"`
}

// Orchestrator composes the assigner and validator with persistence and
// notification to implement the generate-once and publish workflows.
type Orchestrator struct {
	store    ScheduleStore
	notifier Notifier
	assigner *Assigner
}

func NewOrchestrator(store ScheduleStore, notifier Notifier) *Orchestrator {
	return &Orchestrator{
		store:    store,
		notifier: notifier,
		assigner: NewAssigner(),
	}
}

// GenerateWeek returns the schedule for (establishment, week), generating
// and persisting a draft when none exists. Generation is idempotent: an
// existing non-archived schedule is returned unchanged, with the validator
// re-run on its shifts so the caller always sees a current verdict.
//
// Compliance failures never block persistence. A rule-violating draft is
// stored anyway and surfaced through the validation result so a manager can
// fix it by hand.
func (o *Orchestrator) GenerateWeek(ctx context.Context, est *domain.Establishment, roster []*domain.Employee, weekStartDate string) (*GenerationOutcome, error) {
	weekStart, err := parseDate(weekStartDate)
	if err != nil {
		return nil, fmt.Errorf("week start: %w", err)
	}

	existing, err := o.store.GetActiveScheduleByWeek(ctx, est.ID, weekStartDate)
	if err == nil {
		return o.existingOutcome(est, existing)
	}
	if !errors.Is(err, domain.ErrScheduleNotFound) {
		return nil, err
	}

	eligible := make([]*domain.Employee, 0, len(roster))
	for _, emp := range roster {
		if emp.Status == domain.EmployeeActive {
			eligible = append(eligible, emp)
		}
	}

	gen, err := o.assigner.Generate(weekStartDate, est.OperatingHours, eligible, est.MinEmployeesPerShift)
	if err != nil {
		return nil, err
	}

	validation, err := Validate(gen.Shifts, est.OperatingHours, est.MinEmployeesPerShift)
	if err != nil {
		return nil, err
	}

	schedule := &domain.Schedule{
		EstablishmentID: est.ID,
		WeekStartDate:   weekStartDate,
		WeekEndDate:     weekStart.AddDate(0, 0, 6).Format(dateLayout),
		Shifts:          gen.Shifts,
		Status:          domain.ScheduleDraft,
		GeneratedBy:     domain.GeneratedByEngine,
	}

	if err := o.store.CreateSchedule(ctx, schedule); err != nil {
		if errors.Is(err, ErrDuplicateSchedule) {
			// Lost a concurrent race for the same week; the stored row wins.
			existing, err := o.store.GetActiveScheduleByWeek(ctx, est.ID, weekStartDate)
			if err != nil {
				return nil, err
			}
			return o.existingOutcome(est, existing)
		}
		return nil, err
	}

	return &GenerationOutcome{
		Schedule:   schedule,
		Validation: validation,
		Warnings:   gen.Warnings,
		Created:    true,
	}, nil
}

func (o *Orchestrator) existingOutcome(est *domain.Establishment, schedule *domain.Schedule) (*GenerationOutcome, error) {
	validation, err := Validate(schedule.Shifts, est.OperatingHours, est.MinEmployeesPerShift)
	if err != nil {
		return nil, err
	}
	return &GenerationOutcome{
		Schedule:   schedule,
		Validation: validation,
		Warnings:   []string{},
		Created:    false,
	}, nil
}

// Publish transitions a draft schedule to published and hands it to the
// notifier. Validation is not re-run; publishing is a pure state change.
func (o *Orchestrator) Publish(ctx context.Context, est *domain.Establishment, scheduleID int64) (*domain.Schedule, error) {
	schedule, err := o.store.UpdateScheduleStatus(ctx, scheduleID, domain.ScheduleDraft, domain.SchedulePublished)
	if err != nil {
		return nil, err
	}

	if o.notifier != nil {
		if err := o.notifier.SchedulePublished(ctx, est, schedule); err != nil {
			slog.Error("failed to enqueue publish notifications", "scheduleID", schedule.ID, "error", err)
		}
	}

	return schedule, nil
}
