package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zankoclinic/clinic-api/internal/model"
	"github.com/zankoclinic/clinic-api/internal/repository"
)

const patientColumns = `
	p.id, p.full_name, p.phone, p.problem, p.assigned_doctor_id,
	p.total_cost, p.remaining_amount, p.currency, p.note,
	p.implant_brand, p.implant_former, p.implant_crown_type,
	d.name AS doctor_name, p.created_at
`

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (
			id, full_name, phone, problem, assigned_doctor_id,
			total_cost, remaining_amount, currency,
			implant_brand, implant_former, implant_crown_type, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	patient.ID = uuid.New()
	patient.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		patient.ID,
		patient.FullName,
		patient.Phone,
		patient.Problem,
		patient.AssignedDoctorID,
		patient.TotalCost,
		patient.RemainingAmount,
		patient.Currency,
		patient.ImplantBrand,
		patient.ImplantFormer,
		patient.ImplantCrownType,
		patient.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	query := `
		SELECT ` + patientColumns + `
		FROM patients p
		LEFT JOIN doctors d ON p.assigned_doctor_id = d.id
		WHERE p.id = $1
	`
	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, query, id); err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", mapError(err))
	}
	return &patient, nil
}

func (r *patientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	query := `
		SELECT ` + patientColumns + `
		FROM patients p
		LEFT JOIN doctors d ON p.assigned_doctor_id = d.id
		ORDER BY p.full_name
	`
	var patients []*model.Patient
	if err := r.db.SelectContext(ctx, &patients, query); err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (r *patientRepository) Search(ctx context.Context, q string) ([]*model.Patient, error) {
	query := `
		SELECT ` + patientColumns + `
		FROM patients p
		LEFT JOIN doctors d ON p.assigned_doctor_id = d.id
		WHERE p.full_name ILIKE $1 OR p.phone LIKE $1
		ORDER BY p.full_name
	`
	var patients []*model.Patient
	if err := r.db.SelectContext(ctx, &patients, query, "%"+q+"%"); err != nil {
		return nil, fmt.Errorf("failed to search patients: %w", err)
	}
	return patients, nil
}

func (r *patientRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Patient, error) {
	query := `
		SELECT ` + patientColumns + `
		FROM patients p
		LEFT JOIN doctors d ON p.assigned_doctor_id = d.id
		WHERE p.assigned_doctor_id = $1
		ORDER BY p.full_name
	`
	var patients []*model.Patient
	if err := r.db.SelectContext(ctx, &patients, query, doctorID); err != nil {
		return nil, fmt.Errorf("failed to list doctor patients: %w", err)
	}
	return patients, nil
}

func (r *patientRepository) SearchByDoctor(ctx context.Context, doctorID uuid.UUID, q string) ([]*model.Patient, error) {
	query := `
		SELECT ` + patientColumns + `
		FROM patients p
		LEFT JOIN doctors d ON p.assigned_doctor_id = d.id
		WHERE p.assigned_doctor_id = $1
		AND (p.full_name ILIKE $2 OR p.phone LIKE $2)
		ORDER BY p.full_name
	`
	var patients []*model.Patient
	if err := r.db.SelectContext(ctx, &patients, query, doctorID, "%"+q+"%"); err != nil {
		return nil, fmt.Errorf("failed to search doctor patients: %w", err)
	}
	return patients, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	query := `
		UPDATE patients
		SET full_name = $1, phone = $2, problem = $3, assigned_doctor_id = $4,
			total_cost = $5, remaining_amount = $6, currency = $7,
			implant_brand = $8, implant_former = $9, implant_crown_type = $10
		WHERE id = $11
	`
	result, err := r.db.ExecContext(ctx, query,
		patient.FullName,
		patient.Phone,
		patient.Problem,
		patient.AssignedDoctorID,
		patient.TotalCost,
		patient.RemainingAmount,
		patient.Currency,
		patient.ImplantBrand,
		patient.ImplantFormer,
		patient.ImplantCrownType,
		patient.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("failed to update patient: %w", repository.ErrNotFound)
	}
	return nil
}

func (r *patientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM patients
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("failed to delete patient: %w", repository.ErrNotFound)
	}
	return nil
}

func (r *patientRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM patients`); err != nil {
		return 0, fmt.Errorf("failed to count patients: %w", err)
	}
	return count, nil
}

func (r *patientRepository) CountByDoctor(ctx context.Context, doctorID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM patients WHERE assigned_doctor_id = $1`
	if err := r.db.GetContext(ctx, &count, query, doctorID); err != nil {
		return 0, fmt.Errorf("failed to count doctor patients: %w", err)
	}
	return count, nil
}

func (r *patientRepository) GetNote(ctx context.Context, id uuid.UUID) (*model.PatientNote, error) {
	var note model.PatientNote
	query := `SELECT note FROM patients WHERE id = $1`
	if err := r.db.GetContext(ctx, &note, query, id); err != nil {
		return nil, fmt.Errorf("failed to get patient note: %w", mapError(err))
	}
	return &note, nil
}

func (r *patientRepository) SetNote(ctx context.Context, id uuid.UUID, note *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE patients SET note = $1 WHERE id = $2`, note, id)
	if err != nil {
		return fmt.Errorf("failed to set patient note: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("failed to set patient note: %w", repository.ErrNotFound)
	}
	return nil
}

func (r *patientRepository) GetImplantInfo(ctx context.Context, id uuid.UUID) (*model.ImplantInfo, error) {
	var info model.ImplantInfo
	query := `SELECT implant_brand, implant_former, implant_crown_type FROM patients WHERE id = $1`
	if err := r.db.GetContext(ctx, &info, query, id); err != nil {
		return nil, fmt.Errorf("failed to get implant info: %w", mapError(err))
	}
	return &info, nil
}

func (r *patientRepository) SetImplantInfo(ctx context.Context, id uuid.UUID, info *model.ImplantInfo) error {
	query := `
		UPDATE patients
		SET implant_brand = $1, implant_former = $2, implant_crown_type = $3
		WHERE id = $4
	`
	result, err := r.db.ExecContext(ctx, query, info.ImplantBrand, info.ImplantFormer, info.ImplantCrownType, id)
	if err != nil {
		return fmt.Errorf("failed to set implant info: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("failed to set implant info: %w", repository.ErrNotFound)
	}
	return nil
}

func (r *patientRepository) RevenueByCurrency(ctx context.Context) (float64, float64, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN currency = 'USD' THEN (total_cost - remaining_amount) ELSE 0 END), 0) AS usd,
			COALESCE(SUM(CASE WHEN currency = 'IQD' THEN (total_cost - remaining_amount) ELSE 0 END), 0) AS iqd
		FROM patients
	`
	var revenue struct {
		USD float64 `db:"usd"`
		IQD float64 `db:"iqd"`
	}
	if err := r.db.GetContext(ctx, &revenue, query); err != nil {
		return 0, 0, fmt.Errorf("failed to compute revenue: %w", err)
	}
	return revenue.USD, revenue.IQD, nil
}

func (r *patientRepository) PendingByDoctor(ctx context.Context, doctorID uuid.UUID, currency model.Currency) (float64, error) {
	query := `
		SELECT COALESCE(SUM(remaining_amount), 0)
		FROM patients
		WHERE assigned_doctor_id = $1 AND currency = $2
	`
	var pending float64
	if err := r.db.GetContext(ctx, &pending, query, doctorID, currency); err != nil {
		return 0, fmt.Errorf("failed to compute pending payments: %w", err)
	}
	return pending, nil
}
