package stats

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/zankoclinic/clinic-api/internal/model"
	"github.com/zankoclinic/clinic-api/internal/repository"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

type Service struct {
	adminRepo       repository.AdminRepository
	doctorRepo      repository.DoctorRepository
	patientRepo     repository.PatientRepository
	appointmentRepo repository.AppointmentRepository
	now             func() time.Time
}

func NewService(adminRepo repository.AdminRepository, doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository, appointmentRepo repository.AppointmentRepository) *Service {
	return &Service{
		adminRepo:       adminRepo,
		doctorRepo:      doctorRepo,
		patientRepo:     patientRepo,
		appointmentRepo: appointmentRepo,
		now:             time.Now,
	}
}

func (s *Service) AdminStats(ctx context.Context) (*model.AdminStats, error) {
	stats := &model.AdminStats{}

	var err error
	if stats.TotalAdmins, err = s.adminRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalDoctors, err = s.doctorRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalPatients, err = s.patientRepo.Count(ctx); err != nil {
		return nil, err
	}

	today := s.now().Format(dateLayout)
	if stats.TodayAppointments, err = s.appointmentRepo.CountForDate(ctx, today); err != nil {
		return nil, err
	}

	if stats.USDRevenue, stats.IQDRevenue, err = s.patientRepo.RevenueByCurrency(ctx); err != nil {
		return nil, err
	}

	return stats, nil
}

func (s *Service) DoctorStats(ctx context.Context, doctorID uuid.UUID) (*model.DoctorStats, error) {
	stats := &model.DoctorStats{}
	now := s.now()
	today := now.Format(dateLayout)

	var err error
	if stats.TodayAppointments, err = s.appointmentRepo.CountForDoctorDate(ctx, doctorID, today); err != nil {
		return nil, err
	}
	if stats.TotalPatients, err = s.patientRepo.CountByDoctor(ctx, doctorID); err != nil {
		return nil, err
	}

	next, err := s.appointmentRepo.NextTimeForDoctor(ctx, doctorID, today, now.Format(timeLayout))
	switch {
	case err == nil:
		stats.NextAppointmentTime = formatTime(next)
	case errors.Is(err, repository.ErrNotFound):
		stats.NextAppointmentTime = "--:--"
	default:
		return nil, err
	}

	if stats.PendingPaymentsUSD, err = s.patientRepo.PendingByDoctor(ctx, doctorID, model.CurrencyUSD); err != nil {
		return nil, err
	}
	if stats.PendingPaymentsIQD, err = s.patientRepo.PendingByDoctor(ctx, doctorID, model.CurrencyIQD); err != nil {
		return nil, err
	}

	return stats, nil
}

// formatTime trims HH:MM:SS down to HH:MM for display.
func formatTime(t string) string {
	if len(t) == 8 {
		return t[:5]
	}
	return t
}
