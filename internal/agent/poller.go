package agent

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zankoclinic/clinic-api/internal/model"
)

const (
	// Doctors poll fast so chair-side reminders land within seconds.
	DoctorPollInterval = 15 * time.Second
	AdminPollInterval  = 60 * time.Second
)

// PollIntervalForRole maps a session role to its poll cadence.
func PollIntervalForRole(role model.Role) time.Duration {
	if role == model.RoleDoctor {
		return DoctorPollInterval
	}
	return AdminPollInterval
}

// ReminderSource is the slice of Client the poller needs.
type ReminderSource interface {
	DueReminders(ctx context.Context) ([]*model.Reminder, error)
	UpcomingReminders(ctx context.Context) ([]*model.Reminder, error)
}

// DueHandler receives each batch of newly due reminders exactly once.
type DueHandler interface {
	HandleDue(reminders []*model.Reminder)
}

// Poller drives the periodic due-resolve and feed refresh. The first tick
// fires immediately so a fresh login never waits a full interval.
type Poller struct {
	source   ReminderSource
	handler  DueHandler
	interval time.Duration

	mu      sync.Mutex
	stopped bool
	cache   []*model.Reminder

	cancel context.CancelFunc
	done   chan struct{}
}

func NewPoller(source ReminderSource, handler DueHandler, interval time.Duration) *Poller {
	return &Poller{
		source:   source,
		handler:  handler,
		interval: interval,
	}
}

// Start launches the poll loop. Call Stop to end it. Start must be called
// at most once.
func (p *Poller) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	p.done = make(chan struct{})

	go func() {
		defer close(p.done)

		p.tick(ctx)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.tick(ctx)
			}
		}
	}()
}

// Stop cancels the loop and waits for the in-flight tick to finish. Results
// of that tick are discarded.
func (p *Poller) Stop() {
	p.mu.Lock()
	p.stopped = true
	p.mu.Unlock()

	if p.cancel != nil {
		p.cancel()
		<-p.done
	}
}

// Reminders returns the latest feed snapshot.
func (p *Poller) Reminders() []*model.Reminder {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cache
}

// tick resolves due reminders and refreshes the feed concurrently, then
// applies both results from the same pass. A panic in a tick is logged and
// the loop carries on.
func (p *Poller) tick(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("reminder poll tick panicked")
		}
	}()

	var (
		wg       sync.WaitGroup
		due      []*model.Reminder
		upcoming []*model.Reminder
		dueErr   error
		listErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		due, dueErr = p.source.DueReminders(ctx)
	}()
	go func() {
		defer wg.Done()
		upcoming, listErr = p.source.UpcomingReminders(ctx)
	}()
	wg.Wait()

	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	if listErr == nil {
		p.cache = upcoming
	}
	p.mu.Unlock()

	if dueErr != nil {
		log.Warn().Err(dueErr).Msg("failed to resolve due reminders")
	}
	if listErr != nil {
		log.Warn().Err(listErr).Msg("failed to refresh reminder feed")
	}

	// The handler runs on every successful resolve, empty or not, so the
	// badge can drop back to zero once nothing is due.
	if dueErr == nil && p.handler != nil {
		p.handler.HandleDue(due)
	}
}
