package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zankoclinic/clinic-api/internal/model"
	"github.com/zankoclinic/clinic-api/internal/repository"
)

const orthoColumns = `
	id, patient_id, upper_size, lower_size, amount_paid, currency,
	to_char(date, 'YYYY-MM-DD') AS date, created_at, updated_at
`

func (r *orthodonticRepository) Create(ctx context.Context, entry *model.OrthodonticEntry) error {
	query := `
		INSERT INTO orthodontics_schedules (
			id, patient_id, upper_size, lower_size, amount_paid, currency, date,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	entry.ID = uuid.New()
	entry.CreatedAt = time.Now()
	entry.UpdatedAt = entry.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.PatientID,
		entry.UpperSize,
		entry.LowerSize,
		entry.AmountPaid,
		entry.Currency,
		entry.Date,
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create orthodontic entry: %w", err)
	}
	return nil
}

func (r *orthodonticRepository) Get(ctx context.Context, id uuid.UUID) (*model.OrthodonticEntry, error) {
	query := `
		SELECT ` + orthoColumns + `
		FROM orthodontics_schedules
		WHERE id = $1
	`
	var entry model.OrthodonticEntry
	if err := r.db.GetContext(ctx, &entry, query, id); err != nil {
		return nil, fmt.Errorf("failed to get orthodontic entry: %w", mapError(err))
	}
	return &entry, nil
}

func (r *orthodonticRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.OrthodonticEntry, error) {
	query := `
		SELECT ` + orthoColumns + `
		FROM orthodontics_schedules
		WHERE patient_id = $1
		ORDER BY date DESC, created_at DESC
	`
	var entries []*model.OrthodonticEntry
	if err := r.db.SelectContext(ctx, &entries, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list orthodontic entries: %w", err)
	}
	return entries, nil
}

func (r *orthodonticRepository) Update(ctx context.Context, entry *model.OrthodonticEntry) error {
	query := `
		UPDATE orthodontics_schedules
		SET upper_size = $1, lower_size = $2, amount_paid = $3, currency = $4,
			date = $5, updated_at = $6
		WHERE id = $7
	`
	entry.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		entry.UpperSize,
		entry.LowerSize,
		entry.AmountPaid,
		entry.Currency,
		entry.Date,
		entry.UpdatedAt,
		entry.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update orthodontic entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("failed to update orthodontic entry: %w", repository.ErrNotFound)
	}
	return nil
}

func (r *orthodonticRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM orthodontics_schedules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete orthodontic entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("failed to delete orthodontic entry: %w", repository.ErrNotFound)
	}
	return nil
}
