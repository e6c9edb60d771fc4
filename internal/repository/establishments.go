package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/escala-dev/escala/backend/internal/domain"
)

func (r *Repository) CreateEstablishment(est *domain.Establishment) error {
	hours, err := json.Marshal(est.OperatingHours)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO establishments (id, name, operating_hours, min_employees_per_shift)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{est.ID, est.Name, hours, est.MinEmployeesPerShift}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&est.CreatedAt, &est.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetEstablishmentByID(id string) (*domain.Establishment, error) {
	query := `
		SELECT name, operating_hours, min_employees_per_shift, created_at, version
		FROM establishments WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	est := &domain.Establishment{
		ID: id,
	}

	var hours []byte
	dst := []any{&est.Name, &hours, &est.MinEmployeesPerShift, &est.CreatedAt, &est.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(hours, &est.OperatingHours); err != nil {
		return nil, err
	}

	return est, nil
}

func (r *Repository) GetAllEstablishments() ([]*domain.Establishment, error) {
	query := `
		SELECT id, name, operating_hours, min_employees_per_shift, created_at, version
		FROM establishments
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ests := []*domain.Establishment{}
	for rows.Next() {
		est := &domain.Establishment{}
		var hours []byte
		dst := []any{&est.ID, &est.Name, &hours, &est.MinEmployeesPerShift, &est.CreatedAt, &est.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(hours, &est.OperatingHours); err != nil {
			return nil, err
		}
		ests = append(ests, est)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ests, nil
}

func (r *Repository) UpdateEstablishment(est *domain.Establishment) error {
	hours, err := json.Marshal(est.OperatingHours)
	if err != nil {
		return err
	}

	query := `
		UPDATE establishments
		SET
			name = $1,
			operating_hours = $2,
			min_employees_per_shift = $3,
			version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{est.Name, hours, est.MinEmployeesPerShift, est.ID, est.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&est.CreatedAt, &est.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteEstablishment(id string) error {
	query := `
		DELETE FROM establishments WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
