package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zankoclinic/clinic-api/internal/model"
	"github.com/zankoclinic/clinic-api/internal/repository"
)

// Date and time columns are selected back as text so the wire shape stays
// YYYY-MM-DD / HH:MM:SS regardless of driver scanning rules.
const reminderColumns = `
	a.id, a.doctor_id, a.patient_id,
	to_char(a.date, 'YYYY-MM-DD') AS date,
	to_char(a.time, 'HH24:MI:SS') AS time,
	a.notified,
	d.name AS doctor_name, p.full_name AS patient_name, p.problem
`

func (r *appointmentRepository) Create(ctx context.Context, apt *model.Appointment) error {
	query := `
		INSERT INTO appointments (id, doctor_id, patient_id, date, time, notified, created_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, $6)
	`
	apt.ID = uuid.New()
	apt.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		apt.ID,
		apt.DoctorID,
		apt.PatientID,
		apt.Date,
		apt.Time,
		apt.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Reminder, error) {
	query := `
		SELECT ` + reminderColumns + `
		FROM appointments a
		JOIN doctors d ON a.doctor_id = d.id
		JOIN patients p ON a.patient_id = p.id
		WHERE a.id = $1
	`
	var reminder model.Reminder
	if err := r.db.GetContext(ctx, &reminder, query, id); err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", mapError(err))
	}
	return &reminder, nil
}

func (r *appointmentRepository) List(ctx context.Context) ([]*model.Reminder, error) {
	query := `
		SELECT ` + reminderColumns + `
		FROM appointments a
		JOIN doctors d ON a.doctor_id = d.id
		JOIN patients p ON a.patient_id = p.id
		ORDER BY a.date DESC, a.time DESC
	`
	var reminders []*model.Reminder
	if err := r.db.SelectContext(ctx, &reminders, query); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return reminders, nil
}

func (r *appointmentRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Reminder, error) {
	query := `
		SELECT ` + reminderColumns + `
		FROM appointments a
		JOIN doctors d ON a.doctor_id = d.id
		JOIN patients p ON a.patient_id = p.id
		WHERE a.doctor_id = $1
		ORDER BY a.date DESC, a.time DESC
	`
	var reminders []*model.Reminder
	if err := r.db.SelectContext(ctx, &reminders, query, doctorID); err != nil {
		return nil, fmt.Errorf("failed to list doctor appointments: %w", err)
	}
	return reminders, nil
}

func (r *appointmentRepository) ListByDoctorForDate(ctx context.Context, doctorID uuid.UUID, date string) ([]*model.Reminder, error) {
	query := `
		SELECT ` + reminderColumns + `
		FROM appointments a
		JOIN doctors d ON a.doctor_id = d.id
		JOIN patients p ON a.patient_id = p.id
		WHERE a.doctor_id = $1 AND a.date = $2
		ORDER BY a.time
	`
	var reminders []*model.Reminder
	if err := r.db.SelectContext(ctx, &reminders, query, doctorID, date); err != nil {
		return nil, fmt.Errorf("failed to list doctor appointments for date: %w", err)
	}
	return reminders, nil
}

func (r *appointmentRepository) ListByPatient(ctx context.Context, patientID uuid.UUID, fromDate string) ([]*model.Reminder, error) {
	query := `
		SELECT ` + reminderColumns + `
		FROM appointments a
		JOIN doctors d ON a.doctor_id = d.id
		JOIN patients p ON a.patient_id = p.id
		WHERE a.patient_id = $1 AND a.date >= $2
		ORDER BY a.date, a.time
	`
	var reminders []*model.Reminder
	if err := r.db.SelectContext(ctx, &reminders, query, patientID, fromDate); err != nil {
		return nil, fmt.Errorf("failed to list patient appointments: %w", err)
	}
	return reminders, nil
}

// Update clears the notified flag: a rescheduled appointment must become
// eligible for a fresh reminder.
func (r *appointmentRepository) Update(ctx context.Context, apt *model.Appointment) error {
	query := `
		UPDATE appointments
		SET doctor_id = $1, patient_id = $2, date = $3, time = $4, notified = FALSE
		WHERE id = $5
	`
	result, err := r.db.ExecContext(ctx, query,
		apt.DoctorID,
		apt.PatientID,
		apt.Date,
		apt.Time,
		apt.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("failed to update appointment: %w", repository.ErrNotFound)
	}
	return nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM appointments
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("failed to delete appointment: %w", repository.ErrNotFound)
	}
	return nil
}

func (r *appointmentRepository) CountForDate(ctx context.Context, date string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM appointments WHERE date = $1`
	if err := r.db.GetContext(ctx, &count, query, date); err != nil {
		return 0, fmt.Errorf("failed to count appointments: %w", err)
	}
	return count, nil
}

func (r *appointmentRepository) CountForDoctorDate(ctx context.Context, doctorID uuid.UUID, date string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM appointments WHERE doctor_id = $1 AND date = $2`
	if err := r.db.GetContext(ctx, &count, query, doctorID, date); err != nil {
		return 0, fmt.Errorf("failed to count doctor appointments: %w", err)
	}
	return count, nil
}

func (r *appointmentRepository) NextTimeForDoctor(ctx context.Context, doctorID uuid.UUID, date, afterTime string) (string, error) {
	query := `
		SELECT to_char(time, 'HH24:MI:SS')
		FROM appointments
		WHERE doctor_id = $1 AND date = $2 AND time > $3
		ORDER BY time
		LIMIT 1
	`
	var next string
	if err := r.db.GetContext(ctx, &next, query, doctorID, date, afterTime); err != nil {
		return "", fmt.Errorf("failed to get next appointment time: %w", mapError(err))
	}
	return next, nil
}

func (r *appointmentRepository) Upcoming(ctx context.Context, doctorID *uuid.UUID, fromDate string) ([]*model.Reminder, error) {
	query := `
		SELECT ` + reminderColumns + `
		FROM appointments a
		JOIN doctors d ON a.doctor_id = d.id
		JOIN patients p ON a.patient_id = p.id
		WHERE a.date >= $1
	`
	args := []interface{}{fromDate}
	if doctorID != nil {
		query += ` AND a.doctor_id = $2`
		args = append(args, *doctorID)
	}
	query += ` ORDER BY a.date, a.time`

	var reminders []*model.Reminder
	if err := r.db.SelectContext(ctx, &reminders, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list upcoming reminders: %w", err)
	}
	return reminders, nil
}

// ResolveDue flags and returns due appointments in a single statement. The
// UPDATE ... RETURNING CTE makes the read-then-flag a critical section: two
// concurrent polls can never both observe the same appointment as due.
func (r *appointmentRepository) ResolveDue(ctx context.Context, doctorID *uuid.UUID, date, now string) ([]*model.Reminder, error) {
	query := `
		WITH flagged AS (
			UPDATE appointments
			SET notified = TRUE
			WHERE notified = FALSE
			AND ((date = $1 AND time <= $2) OR date < $1)
	`
	args := []interface{}{date, now}
	if doctorID != nil {
		query += ` AND doctor_id = $3`
		args = append(args, *doctorID)
	}
	query += `
			RETURNING id, doctor_id, patient_id, date, time, notified
		)
		SELECT
			a.id, a.doctor_id, a.patient_id,
			to_char(a.date, 'YYYY-MM-DD') AS date,
			to_char(a.time, 'HH24:MI:SS') AS time,
			a.notified,
			d.name AS doctor_name, p.full_name AS patient_name, p.problem
		FROM flagged a
		JOIN doctors d ON a.doctor_id = d.id
		JOIN patients p ON a.patient_id = p.id
		ORDER BY a.date, a.time
	`

	var due []*model.Reminder
	if err := r.db.SelectContext(ctx, &due, query, args...); err != nil {
		return nil, fmt.Errorf("failed to resolve due reminders: %w", err)
	}
	return due, nil
}
