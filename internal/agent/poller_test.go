package agent

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zankoclinic/clinic-api/internal/model"
)

type fakeSource struct {
	mu       sync.Mutex
	dueCalls int
	due      [][]*model.Reminder
	upcoming []*model.Reminder
	block    chan struct{}
}

func (f *fakeSource) DueReminders(ctx context.Context) ([]*model.Reminder, error) {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dueCalls++
	if len(f.due) == 0 {
		return nil, nil
	}
	batch := f.due[0]
	f.due = f.due[1:]
	return batch, nil
}

func (f *fakeSource) UpcomingReminders(context.Context) ([]*model.Reminder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.upcoming, nil
}

func (f *fakeSource) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dueCalls
}

type recordingHandler struct {
	mu      sync.Mutex
	batches [][]*model.Reminder
}

func (h *recordingHandler) HandleDue(reminders []*model.Reminder) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.batches = append(h.batches, reminders)
}

func (h *recordingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.batches)
}

func TestPollerFirstTickIsImmediate(t *testing.T) {
	source := &fakeSource{
		due:      [][]*model.Reminder{{{ID: uuid.New()}}},
		upcoming: []*model.Reminder{{ID: uuid.New()}},
	}
	handler := &recordingHandler{}

	// Interval far longer than the test: only the immediate tick can fire.
	p := NewPoller(source, handler, time.Hour)
	p.Start(context.Background())
	defer p.Stop()

	require.Eventually(t, func() bool { return handler.count() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, source.calls())
	assert.Len(t, p.Reminders(), 1)
}

func TestPollerTicksRepeatedly(t *testing.T) {
	source := &fakeSource{}
	p := NewPoller(source, &recordingHandler{}, 10*time.Millisecond)
	p.Start(context.Background())
	defer p.Stop()

	require.Eventually(t, func() bool { return source.calls() >= 3 }, time.Second, 5*time.Millisecond)
}

func TestPollerRunsHandlerOnEmptyTick(t *testing.T) {
	source := &fakeSource{}
	handler := &recordingHandler{}

	p := NewPoller(source, handler, time.Hour)
	p.Start(context.Background())
	defer p.Stop()

	// An empty resolve still reaches the handler, so the badge can clear.
	require.Eventually(t, func() bool { return handler.count() >= 1 }, time.Second, 5*time.Millisecond)
	handler.mu.Lock()
	defer handler.mu.Unlock()
	assert.Empty(t, handler.batches[0])
}

func TestPollerStopDiscardsInFlightResults(t *testing.T) {
	source := &fakeSource{
		upcoming: []*model.Reminder{{ID: uuid.New()}},
		block:    make(chan struct{}),
	}

	p := NewPoller(source, &recordingHandler{}, time.Hour)
	p.Start(context.Background())

	// Stop while the first tick is parked inside the source. The tick
	// completes during Stop, but its results must not land in the cache.
	done := make(chan struct{})
	go func() {
		p.Stop()
		close(done)
	}()

	close(source.block)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return")
	}

	assert.Empty(t, p.Reminders())
}

func TestPollIntervalForRole(t *testing.T) {
	assert.Equal(t, DoctorPollInterval, PollIntervalForRole(model.RoleDoctor))
	assert.Equal(t, AdminPollInterval, PollIntervalForRole(model.RoleAdmin))
}
