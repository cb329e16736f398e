package agent

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/zankoclinic/clinic-api/internal/model"
)

// Dashboard owns the per-session pipeline: one poller, one session
// monitor, one dispatcher. It is created after login and torn down on
// logout or expiry.
type Dashboard struct {
	client     *Client
	user       *model.SessionUser
	poller     *Poller
	monitor    *SessionMonitor
	dispatcher *Dispatcher

	mu        sync.Mutex
	active    bool
	onSignOut func()
}

// NewDashboard wires the pipeline for the logged-in user. Doctors get a
// feed scoped to their own appointments; admins get the clinic-wide feed.
// onSignOut runs once, after the loops have stopped.
func NewDashboard(client *Client, user *model.SessionUser, toasts ToastSink, badge Badge, notifier Notifier, onSignOut func()) *Dashboard {
	d := &Dashboard{
		client:     client,
		user:       user,
		dispatcher: NewDispatcher(toasts, badge, notifier),
		onSignOut:  onSignOut,
	}

	var source ReminderSource = client
	if user.Role == model.RoleDoctor {
		source = &doctorSource{client: client, doctorID: user.ID}
	}

	d.poller = NewPoller(source, d.dispatcher, PollIntervalForRole(user.Role))
	d.monitor = NewSessionMonitor(client, d.expire)
	return d
}

func (d *Dashboard) Start(ctx context.Context) {
	d.mu.Lock()
	d.active = true
	d.mu.Unlock()

	if err := d.dispatcher.notifierPermission(); err != nil {
		log.Warn().Err(err).Msg("notification permission not granted")
	}

	d.poller.Start(ctx)
	d.monitor.Start(ctx)
}

// Reminders exposes the poller's latest feed snapshot.
func (d *Dashboard) Reminders() []*model.Reminder {
	return d.poller.Reminders()
}

// MarkRead clears the unread badge.
func (d *Dashboard) MarkRead() {
	d.dispatcher.MarkRead()
}

// Logout stops both loops before clearing anything, so a tick in flight
// cannot repopulate state that is being torn down, then ends the server
// session.
func (d *Dashboard) Logout(ctx context.Context) {
	if !d.deactivate() {
		return
	}

	d.poller.Stop()
	d.monitor.Stop()

	if err := d.client.Logout(ctx); err != nil {
		log.Warn().Err(err).Msg("server-side logout failed")
	}

	if d.onSignOut != nil {
		d.onSignOut()
	}
}

// expire is the session monitor's callback: same teardown as Logout minus
// the logout call, since the server session is already gone.
func (d *Dashboard) expire() {
	if !d.deactivate() {
		return
	}

	d.poller.Stop()
	d.monitor.Stop()

	if d.onSignOut != nil {
		d.onSignOut()
	}
}

func (d *Dashboard) deactivate() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.active {
		return false
	}
	d.active = false
	return true
}

// doctorSource scopes the feed to one doctor.
type doctorSource struct {
	client   *Client
	doctorID uuid.UUID
}

func (s *doctorSource) DueReminders(ctx context.Context) ([]*model.Reminder, error) {
	return s.client.DueRemindersForDoctor(ctx, s.doctorID)
}

func (s *doctorSource) UpcomingReminders(ctx context.Context) ([]*model.Reminder, error) {
	return s.client.UpcomingRemindersForDoctor(ctx, s.doctorID)
}
