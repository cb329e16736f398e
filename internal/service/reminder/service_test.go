package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zankoclinic/clinic-api/internal/model"
	"github.com/zankoclinic/clinic-api/internal/repository"
)

type fakeAppointmentRepo struct {
	repository.AppointmentRepository

	resolveDue func(doctorID *uuid.UUID, date, now string) ([]*model.Reminder, error)
	upcoming   func(doctorID *uuid.UUID, fromDate string) ([]*model.Reminder, error)
}

func (f *fakeAppointmentRepo) ResolveDue(_ context.Context, doctorID *uuid.UUID, date, now string) ([]*model.Reminder, error) {
	return f.resolveDue(doctorID, date, now)
}

func (f *fakeAppointmentRepo) Upcoming(_ context.Context, doctorID *uuid.UUID, fromDate string) ([]*model.Reminder, error) {
	return f.upcoming(doctorID, fromDate)
}

func TestResolveDuePassesClock(t *testing.T) {
	clock := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	var gotDate, gotNow string
	repo := &fakeAppointmentRepo{
		resolveDue: func(doctorID *uuid.UUID, date, now string) ([]*model.Reminder, error) {
			assert.Nil(t, doctorID)
			gotDate, gotNow = date, now
			return []*model.Reminder{{ID: uuid.New()}}, nil
		},
	}

	svc := NewServiceWithClock(repo, func() time.Time { return clock })
	due, err := svc.ResolveDue(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, "2025-03-14", gotDate)
	assert.Equal(t, "09:26:53", gotNow)
	assert.Len(t, due, 1)
}

func TestResolveDueScopesDoctor(t *testing.T) {
	doctorID := uuid.New()

	repo := &fakeAppointmentRepo{
		resolveDue: func(gotDoctor *uuid.UUID, _, _ string) ([]*model.Reminder, error) {
			require.NotNil(t, gotDoctor)
			assert.Equal(t, doctorID, *gotDoctor)
			return nil, nil
		},
	}

	svc := NewServiceWithClock(repo, time.Now)
	due, err := svc.ResolveDue(context.Background(), &doctorID)
	require.NoError(t, err)
	assert.NotNil(t, due, "nil result must become an empty slice")
	assert.Empty(t, due)
}

func TestResolveDuePropagatesError(t *testing.T) {
	repo := &fakeAppointmentRepo{
		resolveDue: func(*uuid.UUID, string, string) ([]*model.Reminder, error) {
			return nil, errors.New("db down")
		},
	}

	svc := NewServiceWithClock(repo, time.Now)
	_, err := svc.ResolveDue(context.Background(), nil)
	assert.Error(t, err)
}

func TestUpcomingUsesToday(t *testing.T) {
	clock := time.Date(2025, 3, 14, 23, 59, 59, 0, time.UTC)

	repo := &fakeAppointmentRepo{
		upcoming: func(doctorID *uuid.UUID, fromDate string) ([]*model.Reminder, error) {
			assert.Equal(t, "2025-03-14", fromDate)
			return nil, nil
		},
	}

	svc := NewServiceWithClock(repo, func() time.Time { return clock })
	reminders, err := svc.Upcoming(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, reminders)
	assert.Empty(t, reminders)
}
