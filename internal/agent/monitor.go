package agent

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zankoclinic/clinic-api/internal/model"
)

// SessionCheckInterval is how often the monitor revalidates the cookie.
const SessionCheckInterval = 5 * time.Minute

// SessionChecker is the slice of Client the monitor needs.
type SessionChecker interface {
	CheckSession(ctx context.Context) (*model.SessionUser, error)
}

// SessionMonitor watches for server-side session expiry. Only an explicit
// unauthenticated response triggers the expiry path; a flaky network must
// never log the user out.
type SessionMonitor struct {
	checker  SessionChecker
	interval time.Duration
	grace    time.Duration
	onExpiry func()

	mu     sync.Mutex
	fired  bool
	cancel context.CancelFunc
	done   chan struct{}
}

func NewSessionMonitor(checker SessionChecker, onExpiry func()) *SessionMonitor {
	return &SessionMonitor{
		checker:  checker,
		interval: SessionCheckInterval,
		grace:    2 * time.Second,
		onExpiry: onExpiry,
	}
}

func (m *SessionMonitor) Start(ctx context.Context) {
	ctx, m.cancel = context.WithCancel(ctx)
	m.done = make(chan struct{})

	go func() {
		defer close(m.done)

		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.check(ctx)
			}
		}
	}()
}

func (m *SessionMonitor) Stop() {
	if m.cancel != nil {
		m.cancel()
		<-m.done
	}
}

func (m *SessionMonitor) check(ctx context.Context) {
	_, err := m.checker.CheckSession(ctx)
	if err == nil {
		return
	}
	if !errors.Is(err, ErrUnauthenticated) {
		log.Warn().Err(err).Msg("session check failed, will retry")
		return
	}

	m.mu.Lock()
	already := m.fired
	m.fired = true
	m.mu.Unlock()
	if already {
		return
	}

	log.Info().Msg("session expired on server")

	// Brief grace so any message shown to the user is visible before the
	// logout tears the session state down.
	select {
	case <-ctx.Done():
		return
	case <-time.After(m.grace):
	}

	if m.onExpiry != nil {
		// Run outside the monitor goroutine so the callback can Stop the
		// monitor without deadlocking on its own loop.
		go m.onExpiry()
	}
}
