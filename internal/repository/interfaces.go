package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/zankoclinic/clinic-api/internal/model"
)

var (
	// ErrNotFound is returned when the targeted row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned on unique violations of the email columns.
	ErrDuplicateEmail = errors.New("email already exists")
)

type AdminRepository interface {
	Create(ctx context.Context, admin *model.Admin) error
	Get(ctx context.Context, id uuid.UUID) (*model.Admin, error)
	GetByEmail(ctx context.Context, email string) (*model.Admin, error)
	List(ctx context.Context) ([]*model.Admin, error)
	Update(ctx context.Context, admin *model.Admin) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
}

type DoctorRepository interface {
	Create(ctx context.Context, doctor *model.Doctor) error
	Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
	GetByEmail(ctx context.Context, email string) (*model.Doctor, error)
	List(ctx context.Context) ([]*model.Doctor, error)
	Update(ctx context.Context, doctor *model.Doctor) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
}

type PatientRepository interface {
	Create(ctx context.Context, patient *model.Patient) error
	Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
	List(ctx context.Context) ([]*model.Patient, error)
	Search(ctx context.Context, query string) ([]*model.Patient, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Patient, error)
	SearchByDoctor(ctx context.Context, doctorID uuid.UUID, query string) ([]*model.Patient, error)
	Update(ctx context.Context, patient *model.Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
	CountByDoctor(ctx context.Context, doctorID uuid.UUID) (int, error)
	GetNote(ctx context.Context, id uuid.UUID) (*model.PatientNote, error)
	SetNote(ctx context.Context, id uuid.UUID, note *string) error
	GetImplantInfo(ctx context.Context, id uuid.UUID) (*model.ImplantInfo, error)
	SetImplantInfo(ctx context.Context, id uuid.UUID, info *model.ImplantInfo) error
	RevenueByCurrency(ctx context.Context) (usd, iqd float64, err error)
	PendingByDoctor(ctx context.Context, doctorID uuid.UUID, currency model.Currency) (float64, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, apt *model.Appointment) error
	Get(ctx context.Context, id uuid.UUID) (*model.Reminder, error)
	List(ctx context.Context) ([]*model.Reminder, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Reminder, error)
	ListByDoctorForDate(ctx context.Context, doctorID uuid.UUID, date string) ([]*model.Reminder, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, fromDate string) ([]*model.Reminder, error)
	// Update rewrites the appointment and clears the notified flag so a
	// rescheduled appointment becomes due again.
	Update(ctx context.Context, apt *model.Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountForDate(ctx context.Context, date string) (int, error)
	CountForDoctorDate(ctx context.Context, doctorID uuid.UUID, date string) (int, error)
	NextTimeForDoctor(ctx context.Context, doctorID uuid.UUID, date, afterTime string) (string, error)

	// Upcoming returns appointments dated today or later, joined with
	// doctor/patient names, ascending by (date, time). A nil doctorID means
	// no scoping.
	Upcoming(ctx context.Context, doctorID *uuid.UUID, fromDate string) ([]*model.Reminder, error)
	// ResolveDue atomically flags and returns every unnotified appointment
	// matching (date = today AND time <= now) OR (date < today).
	ResolveDue(ctx context.Context, doctorID *uuid.UUID, date, now string) ([]*model.Reminder, error)
}

type OrthodonticRepository interface {
	Create(ctx context.Context, entry *model.OrthodonticEntry) error
	Get(ctx context.Context, id uuid.UUID) (*model.OrthodonticEntry, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.OrthodonticEntry, error)
	Update(ctx context.Context, entry *model.OrthodonticEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
}
