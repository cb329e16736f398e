package agent

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/zankoclinic/clinic-api/internal/model"
)

type recordingToasts struct {
	messages []string
}

func (r *recordingToasts) ShowToast(message string, _ time.Duration) {
	r.messages = append(r.messages, message)
}

type recordingBadge struct {
	counts []int
}

func (r *recordingBadge) SetCount(n int) {
	r.counts = append(r.counts, n)
}

type recordingNotifier struct {
	tags []string
}

func (r *recordingNotifier) RequestPermission() error { return nil }

func (r *recordingNotifier) Notify(tag, _, _ string) error {
	r.tags = append(r.tags, tag)
	return nil
}

func TestDispatcherOneNotificationPerReminder(t *testing.T) {
	toasts := &recordingToasts{}
	badge := &recordingBadge{}
	notifier := &recordingNotifier{}
	d := NewDispatcher(toasts, badge, notifier)

	r1 := &model.Reminder{ID: uuid.New(), PatientName: "Sara", DoctorName: "Aram", Time: "09:00:00"}
	r2 := &model.Reminder{ID: uuid.New(), PatientName: "Karwan", DoctorName: "Aram", Time: "10:30:00"}

	d.HandleDue([]*model.Reminder{r1, r2})

	assert.Len(t, toasts.messages, 2)
	assert.Equal(t, []string{"reminder-" + r1.ID.String(), "reminder-" + r2.ID.String()}, notifier.tags)
	assert.Equal(t, []int{2}, badge.counts)
}

func TestDispatcherDeduplicatesByTag(t *testing.T) {
	toasts := &recordingToasts{}
	notifier := &recordingNotifier{}
	d := NewDispatcher(toasts, &recordingBadge{}, notifier)

	r := &model.Reminder{ID: uuid.New(), PatientName: "Sara"}

	d.HandleDue([]*model.Reminder{r})
	d.HandleDue([]*model.Reminder{r})
	d.HandleDue([]*model.Reminder{r})

	assert.Len(t, toasts.messages, 1, "re-delivery of the same reminder must not stack")
	assert.Len(t, notifier.tags, 1)
}

func TestDispatcherBadgeMirrorsDueSet(t *testing.T) {
	badge := &recordingBadge{}
	d := NewDispatcher(&recordingToasts{}, badge, &recordingNotifier{})

	d.HandleDue([]*model.Reminder{{ID: uuid.New()}})
	d.HandleDue(nil)
	d.HandleDue([]*model.Reminder{{ID: uuid.New()}, {ID: uuid.New()}})

	// An empty tick hides the badge; it never accumulates across ticks.
	assert.Equal(t, []int{1, 0, 2}, badge.counts)
}

func TestDispatcherMarkRead(t *testing.T) {
	badge := &recordingBadge{}
	d := NewDispatcher(&recordingToasts{}, badge, &recordingNotifier{})

	d.HandleDue([]*model.Reminder{{ID: uuid.New()}})
	d.MarkRead()

	assert.Equal(t, []int{1, 0}, badge.counts)
}
