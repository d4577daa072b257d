package evaluation

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/de-tools/eval-atlas/pkg/services/console"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var ErrSessionNotFound = errors.New("session not found")

// ConsoleFactory builds a console for a new session. onError receives the
// session's user-facing error messages.
type ConsoleFactory func(onError func(message string)) *console.Console

type session struct {
	console  *console.Console
	lastSeen time.Time
}

// Sessions keeps the open dashboard sessions by id. Sessions unused for
// longer than the idle timeout are closed by Sweep.
type Sessions struct {
	factory     ConsoleFactory
	idleTimeout time.Duration
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

// NewSessions builds the registry. An idleTimeout of zero disables expiry.
func NewSessions(factory ConsoleFactory, idleTimeout time.Duration) *Sessions {
	return &Sessions{
		factory:     factory,
		idleTimeout: idleTimeout,
		now:         time.Now,
		sessions:    make(map[string]*session),
	}
}

// Create opens a console and registers it. A console whose first load fails
// is still registered; its view carries the error and Refresh retries.
func (s *Sessions) Create(ctx context.Context) (string, *console.Console, error) {
	id := uuid.NewString()
	logger := zerolog.Ctx(ctx).With().Str("session", id).Logger()

	c := s.factory(func(message string) {
		logger.Warn().Str("message", message).Msg("session error")
	})
	if err := c.Open(logger.WithContext(ctx)); err != nil {
		if errors.Is(err, console.ErrClosed) {
			return "", nil, err
		}
		logger.Warn().Err(err).Msg("session opened without businesses")
	}

	s.mu.Lock()
	s.sessions[id] = &session{console: c, lastSeen: s.now()}
	s.mu.Unlock()

	logger.Info().Msg("session opened")
	return id, c, nil
}

// Get returns a session and marks it as used.
func (s *Sessions) Get(id string) (*console.Console, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	entry.lastSeen = s.now()
	return entry.console, nil
}

func (s *Sessions) Close(id string) error {
	s.mu.Lock()
	entry, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	entry.console.Close()
	return nil
}

// CloseAll closes every session, waiting for their polls to stop.
func (s *Sessions) CloseAll() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*session)
	s.mu.Unlock()

	for _, entry := range sessions {
		entry.console.Close()
	}
}

// Sweep closes the sessions idle for longer than the idle timeout and returns
// how many it closed.
func (s *Sessions) Sweep(ctx context.Context) int {
	if s.idleTimeout <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.idleTimeout)

	s.mu.Lock()
	expired := make(map[string]*session)
	for id, entry := range s.sessions {
		if entry.lastSeen.Before(cutoff) {
			expired[id] = entry
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for id, entry := range expired {
		entry.console.Close()
		zerolog.Ctx(ctx).Info().Str("session", id).Msg("idle session closed")
	}
	return len(expired)
}

// RunJanitor sweeps idle sessions every interval until ctx is done.
func (s *Sessions) RunJanitor(ctx context.Context, interval time.Duration) {
	if s.idleTimeout <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// JanitorInterval is how often RunJanitor should sweep for the configured
// idle timeout.
func (s *Sessions) JanitorInterval() time.Duration {
	if s.idleTimeout <= 0 {
		return 0
	}
	return max(s.idleTimeout/4, time.Second)
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
