package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/zankoclinic/clinic-api/internal/model"
	"github.com/zankoclinic/clinic-api/internal/repository"
)

type Service struct {
	repo repository.AppointmentRepository
}

func NewService(repo repository.AppointmentRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	apt := &model.Appointment{
		DoctorID:  req.DoctorID,
		PatientID: req.PatientID,
		Date:      req.Date,
		Time:      req.Time,
	}
	if err := s.repo.Create(ctx, apt); err != nil {
		return nil, err
	}
	return apt, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Reminder, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*model.Reminder, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Reminder, error) {
	return s.repo.ListByDoctor(ctx, doctorID)
}

func (s *Service) ListByDoctorForDate(ctx context.Context, doctorID uuid.UUID, date string) ([]*model.Reminder, error) {
	return s.repo.ListByDoctorForDate(ctx, doctorID, date)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, fromDate string) ([]*model.Reminder, error) {
	return s.repo.ListByPatient(ctx, patientID, fromDate)
}

// Update reschedules an appointment. The repository clears the notified
// flag as part of the write, re-arming the reminder.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateAppointmentRequest) error {
	apt := &model.Appointment{
		ID:        id,
		DoctorID:  req.DoctorID,
		PatientID: req.PatientID,
		Date:      req.Date,
		Time:      req.Time,
	}
	return s.repo.Update(ctx, apt)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
