package agent

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zankoclinic/clinic-api/internal/model"
)

// ToastDuration is how long an in-app toast stays visible.
const ToastDuration = 10 * time.Second

// ToastSink shows transient in-app messages.
type ToastSink interface {
	ShowToast(message string, duration time.Duration)
}

// Badge reflects the number of unread reminders. Zero hides it.
type Badge interface {
	SetCount(n int)
}

// Dispatcher turns each due reminder into one toast and one native
// notification. The notification tag keeps repeated dispatches for the
// same reminder collapsed to a single alert.
type Dispatcher struct {
	toasts   ToastSink
	badge    Badge
	notifier Notifier

	mu   sync.Mutex
	seen map[string]bool
}

func NewDispatcher(toasts ToastSink, badge Badge, notifier Notifier) *Dispatcher {
	return &Dispatcher{
		toasts:   toasts,
		badge:    badge,
		notifier: notifier,
		seen:     map[string]bool{},
	}
}

func (d *Dispatcher) notifierPermission() error {
	if d.notifier == nil {
		return nil
	}
	return d.notifier.RequestPermission()
}

// HandleDue runs every poll tick. The badge always mirrors the tick's due
// set, so an empty tick hides it; only the toast and native notification
// are deduplicated across ticks.
func (d *Dispatcher) HandleDue(reminders []*model.Reminder) {
	for _, r := range reminders {
		d.dispatch(r)
	}

	if d.badge != nil {
		d.badge.SetCount(len(reminders))
	}
}

// MarkRead clears the unread count, for when the user opens the feed.
func (d *Dispatcher) MarkRead() {
	d.mu.Lock()
	d.seen = map[string]bool{}
	d.mu.Unlock()
	if d.badge != nil {
		d.badge.SetCount(0)
	}
}

func (d *Dispatcher) dispatch(r *model.Reminder) {
	tag := fmt.Sprintf("reminder-%s", r.ID)

	d.mu.Lock()
	if d.seen[tag] {
		d.mu.Unlock()
		return
	}
	d.seen[tag] = true
	d.mu.Unlock()

	title := "Appointment due"
	body := fmt.Sprintf("%s with Dr. %s at %s", r.PatientName, r.DoctorName, r.Time)

	if d.toasts != nil {
		d.toasts.ShowToast(body, ToastDuration)
	}
	if d.notifier != nil {
		if err := d.notifier.Notify(tag, title, body); err != nil {
			log.Warn().Err(err).Str("tag", tag).Msg("failed to deliver notification")
		}
	}
}
