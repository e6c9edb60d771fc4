package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/escala-dev/escala/backend/internal/domain"
	"github.com/escala-dev/escala/backend/internal/scheduler"
)

// scheduleColumns is shared by every schedule SELECT so scans stay aligned.
const scheduleColumns = `
	id, establishment_id, week_start_date, week_end_date, shifts, status, generated_by, created_at, version
`

func scanSchedule(row interface{ Scan(...any) error }) (*domain.Schedule, error) {
	s := &domain.Schedule{}
	var shifts []byte
	dst := []any{&s.ID, &s.EstablishmentID, &s.WeekStartDate, &s.WeekEndDate, &shifts, &s.Status, &s.GeneratedBy, &s.CreatedAt, &s.Version}
	if err := row.Scan(dst...); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(shifts, &s.Shifts); err != nil {
		return nil, err
	}
	return s, nil
}

// GetActiveScheduleByWeek returns the single non-archived schedule for an
// establishment and week, or domain.ErrScheduleNotFound.
func (r *Repository) GetActiveScheduleByWeek(ctx context.Context, establishmentID, weekStartDate string) (*domain.Schedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM schedules
		WHERE establishment_id = $1 AND week_start_date = $2 AND status <> 'archived'
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	s, err := scanSchedule(r.dbpool.QueryRowContext(ctx, query, establishmentID, weekStartDate))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrScheduleNotFound
		}
		return nil, err
	}

	return s, nil
}

// CreateSchedule inserts a schedule. The partial unique index
// schedules_establishment_week_active_key makes the one-active-schedule-per-
// week invariant atomic; a violation surfaces as
// scheduler.ErrDuplicateSchedule so the orchestrator can resolve the race.
func (r *Repository) CreateSchedule(ctx context.Context, s *domain.Schedule) error {
	if s.Shifts == nil {
		s.Shifts = []domain.Shift{}
	}
	shifts, err := json.Marshal(s.Shifts)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO schedules (establishment_id, week_start_date, week_end_date, shifts, status, generated_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{s.EstablishmentID, s.WeekStartDate, s.WeekEndDate, shifts, s.Status, s.GeneratedBy}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.CreatedAt, &s.Version); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "schedules_establishment_week_active_key" {
			return scheduler.ErrDuplicateSchedule
		}
		return err
	}

	return nil
}

func (r *Repository) GetScheduleByID(id int64) (*domain.Schedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM schedules WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	s, err := scanSchedule(r.dbpool.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrScheduleNotFound
		}
		return nil, err
	}

	return s, nil
}

func (r *Repository) GetSchedulesByEstablishment(establishmentID string) ([]*domain.Schedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM schedules
		WHERE establishment_id = $1
		ORDER BY week_start_date DESC, created_at DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, establishmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schedules := []*domain.Schedule{}
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return schedules, nil
}

// UpdateScheduleShifts replaces a schedule's shift list wholesale (manual
// edits always submit the complete new list) and records who generated it.
func (r *Repository) UpdateScheduleShifts(s *domain.Schedule) error {
	shifts, err := json.Marshal(s.Shifts)
	if err != nil {
		return err
	}

	query := `
		UPDATE schedules
		SET
			shifts = $1,
			generated_by = $2,
			version = version + 1
		WHERE id = $3 AND version = $4
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{shifts, s.GeneratedBy, s.ID, s.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&s.CreatedAt, &s.Version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrScheduleNotFound
		}
		return err
	}

	return nil
}

// UpdateScheduleStatus performs a conditional state transition and returns
// the updated schedule. domain.ErrScheduleNotFound covers both a missing row
// and a schedule that is not in the expected source state.
func (r *Repository) UpdateScheduleStatus(ctx context.Context, id int64, from, to domain.ScheduleStatus) (*domain.Schedule, error) {
	query := `
		UPDATE schedules
		SET status = $1, version = version + 1
		WHERE id = $2 AND status = $3
		RETURNING ` + scheduleColumns + `
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	s, err := scanSchedule(r.dbpool.QueryRowContext(ctx, query, to, id, from))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrScheduleNotFound
		}
		return nil, err
	}

	return s, nil
}
