package stats

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zankoclinic/clinic-api/internal/model"
	"github.com/zankoclinic/clinic-api/internal/repository"
)

type countingAdminRepo struct {
	repository.AdminRepository
	count int
}

func (r *countingAdminRepo) Count(context.Context) (int, error) { return r.count, nil }

type countingDoctorRepo struct {
	repository.DoctorRepository
	count int
}

func (r *countingDoctorRepo) Count(context.Context) (int, error) { return r.count, nil }

type statsPatientRepo struct {
	repository.PatientRepository
	total      int
	byDoctor   int
	usd, iqd   float64
	pendingUSD float64
	pendingIQD float64
}

func (r *statsPatientRepo) Count(context.Context) (int, error) { return r.total, nil }

func (r *statsPatientRepo) CountByDoctor(context.Context, uuid.UUID) (int, error) {
	return r.byDoctor, nil
}

func (r *statsPatientRepo) RevenueByCurrency(context.Context) (float64, float64, error) {
	return r.usd, r.iqd, nil
}

func (r *statsPatientRepo) PendingByDoctor(_ context.Context, _ uuid.UUID, currency model.Currency) (float64, error) {
	if currency == model.CurrencyUSD {
		return r.pendingUSD, nil
	}
	return r.pendingIQD, nil
}

type statsAppointmentRepo struct {
	repository.AppointmentRepository
	todayTotal  int
	todayDoctor int
	nextTime    string
	nextErr     error

	gotDate, gotAfter string
}

func (r *statsAppointmentRepo) CountForDate(_ context.Context, date string) (int, error) {
	r.gotDate = date
	return r.todayTotal, nil
}

func (r *statsAppointmentRepo) CountForDoctorDate(_ context.Context, _ uuid.UUID, date string) (int, error) {
	r.gotDate = date
	return r.todayDoctor, nil
}

func (r *statsAppointmentRepo) NextTimeForDoctor(_ context.Context, _ uuid.UUID, date, afterTime string) (string, error) {
	r.gotDate, r.gotAfter = date, afterTime
	if r.nextErr != nil {
		return "", r.nextErr
	}
	return r.nextTime, nil
}

func newStatsService(aptRepo *statsAppointmentRepo, patRepo *statsPatientRepo, clock time.Time) *Service {
	svc := NewService(&countingAdminRepo{count: 2}, &countingDoctorRepo{count: 5}, patRepo, aptRepo)
	svc.now = func() time.Time { return clock }
	return svc
}

func TestAdminStats(t *testing.T) {
	clock := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	aptRepo := &statsAppointmentRepo{todayTotal: 7}
	patRepo := &statsPatientRepo{total: 40, usd: 1500, iqd: 250000}

	svc := newStatsService(aptRepo, patRepo, clock)
	stats, err := svc.AdminStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalAdmins)
	assert.Equal(t, 5, stats.TotalDoctors)
	assert.Equal(t, 40, stats.TotalPatients)
	assert.Equal(t, 7, stats.TodayAppointments)
	assert.Equal(t, 1500.0, stats.USDRevenue)
	assert.Equal(t, 250000.0, stats.IQDRevenue)
	assert.Equal(t, "2025-03-14", aptRepo.gotDate)
}

func TestDoctorStatsNextAppointment(t *testing.T) {
	clock := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	aptRepo := &statsAppointmentRepo{todayDoctor: 3, nextTime: "10:15:00"}
	patRepo := &statsPatientRepo{byDoctor: 12, pendingUSD: 300, pendingIQD: 75000}

	svc := newStatsService(aptRepo, patRepo, clock)
	stats, err := svc.DoctorStats(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TodayAppointments)
	assert.Equal(t, 12, stats.TotalPatients)
	assert.Equal(t, "10:15", stats.NextAppointmentTime)
	assert.Equal(t, 300.0, stats.PendingPaymentsUSD)
	assert.Equal(t, 75000.0, stats.PendingPaymentsIQD)
	assert.Equal(t, "09:30:00", aptRepo.gotAfter)
}

func TestDoctorStatsNoNextAppointment(t *testing.T) {
	clock := time.Date(2025, 3, 14, 18, 0, 0, 0, time.UTC)
	aptRepo := &statsAppointmentRepo{nextErr: repository.ErrNotFound}
	patRepo := &statsPatientRepo{}

	svc := newStatsService(aptRepo, patRepo, clock)
	stats, err := svc.DoctorStats(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, "--:--", stats.NextAppointmentTime)
}
