package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/escala-dev/escala/backend/internal/domain"
)

// Availability data (restrictions, recurring pattern, temporary exceptions)
// is stored as JSONB documents so the layered shapes survive round-trips
// without a table per layer.

func (r *Repository) CreateEmployee(emp *domain.Employee) error {
	restrictions, recurring, temporary, err := marshalAvailability(emp)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO employees (id, establishment_id, name, email, status, restrictions, recurring_availability, temporary_availability)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{emp.ID, emp.EstablishmentID, emp.Name, emp.Email, emp.Status, restrictions, recurring, temporary}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&emp.CreatedAt, &emp.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetEmployeeByID(id string) (*domain.Employee, error) {
	query := `
		SELECT establishment_id, name, email, status, restrictions, recurring_availability, temporary_availability, created_at, version
		FROM employees WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	emp := &domain.Employee{
		ID: id,
	}

	var restrictions, recurring, temporary []byte
	dst := []any{&emp.EstablishmentID, &emp.Name, &emp.Email, &emp.Status, &restrictions, &recurring, &temporary, &emp.CreatedAt, &emp.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}
	if err := unmarshalAvailability(emp, restrictions, recurring, temporary); err != nil {
		return nil, err
	}

	return emp, nil
}

func (r *Repository) GetEmployeesByEstablishment(establishmentID string) ([]*domain.Employee, error) {
	query := `
		SELECT id, name, email, status, restrictions, recurring_availability, temporary_availability, created_at, version
		FROM employees
		WHERE establishment_id = $1
		ORDER BY created_at, id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, establishmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	emps := []*domain.Employee{}
	for rows.Next() {
		emp := &domain.Employee{
			EstablishmentID: establishmentID,
		}
		var restrictions, recurring, temporary []byte
		dst := []any{&emp.ID, &emp.Name, &emp.Email, &emp.Status, &restrictions, &recurring, &temporary, &emp.CreatedAt, &emp.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		if err := unmarshalAvailability(emp, restrictions, recurring, temporary); err != nil {
			return nil, err
		}
		emps = append(emps, emp)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return emps, nil
}

func (r *Repository) UpdateEmployee(emp *domain.Employee) error {
	restrictions, recurring, temporary, err := marshalAvailability(emp)
	if err != nil {
		return err
	}

	query := `
		UPDATE employees
		SET
			name = $1,
			email = $2,
			status = $3,
			restrictions = $4,
			recurring_availability = $5,
			temporary_availability = $6,
			version = version + 1
		WHERE id = $7 AND version = $8
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{emp.Name, emp.Email, emp.Status, restrictions, recurring, temporary, emp.ID, emp.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&emp.CreatedAt, &emp.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteEmployee(id string) error {
	query := `
		DELETE FROM employees WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}

func marshalAvailability(emp *domain.Employee) (restrictions, recurring, temporary []byte, err error) {
	if restrictions, err = json.Marshal(emp.Restrictions); err != nil {
		return nil, nil, nil, err
	}
	if recurring, err = json.Marshal(emp.RecurringAvailability); err != nil {
		return nil, nil, nil, err
	}
	if emp.TemporaryAvailability == nil {
		emp.TemporaryAvailability = []domain.TemporaryException{}
	}
	if temporary, err = json.Marshal(emp.TemporaryAvailability); err != nil {
		return nil, nil, nil, err
	}
	return restrictions, recurring, temporary, nil
}

func unmarshalAvailability(emp *domain.Employee, restrictions, recurring, temporary []byte) error {
	if restrictions != nil {
		if err := json.Unmarshal(restrictions, &emp.Restrictions); err != nil {
			return err
		}
	}
	if recurring != nil {
		if err := json.Unmarshal(recurring, &emp.RecurringAvailability); err != nil {
			return err
		}
	}
	if emp.TemporaryAvailability == nil {
		emp.TemporaryAvailability = []domain.TemporaryException{}
	}
	if temporary == nil {
		return nil
	}
	return json.Unmarshal(temporary, &emp.TemporaryAvailability)
}
