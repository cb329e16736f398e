// Package reminder owns the due-reminder pipeline's server half: the
// upcoming-list query and the atomic resolve-and-flag operation.
package reminder

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/zankoclinic/clinic-api/internal/model"
	"github.com/zankoclinic/clinic-api/internal/repository"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

type Service struct {
	repo repository.AppointmentRepository
	now  func() time.Time
}

func NewService(repo repository.AppointmentRepository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// NewServiceWithClock pins the wall clock, for tests.
func NewServiceWithClock(repo repository.AppointmentRepository, now func() time.Time) *Service {
	return &Service{repo: repo, now: now}
}

// Upcoming lists appointments dated today or later, ascending by
// (date, time). A nil doctorID returns the global list.
func (s *Service) Upcoming(ctx context.Context, doctorID *uuid.UUID) ([]*model.Reminder, error) {
	today := s.now().Format(dateLayout)
	reminders, err := s.repo.Upcoming(ctx, doctorID, today)
	if err != nil {
		return nil, err
	}
	if reminders == nil {
		reminders = []*model.Reminder{}
	}
	return reminders, nil
}

// ResolveDue flags and returns every appointment that is due right now:
// (date = today AND time <= now) OR (date < today), notified = false. The
// time comparison is inclusive, so an appointment scheduled at the current
// second counts. Flagging happens in the same statement, so a concurrent
// poll never sees the same appointment as due twice.
func (s *Service) ResolveDue(ctx context.Context, doctorID *uuid.UUID) ([]*model.Reminder, error) {
	now := s.now()
	due, err := s.repo.ResolveDue(ctx, doctorID, now.Format(dateLayout), now.Format(timeLayout))
	if err != nil {
		return nil, err
	}
	if due == nil {
		due = []*model.Reminder{}
	}
	if len(due) > 0 {
		log.Info().Int("count", len(due)).Msg("due reminders resolved")
	}
	return due, nil
}
