// Package limiter implements the per-subscription sliding-window delivery
// throttle.
package limiter

import (
	"time"

	"github.com/google/uuid"
)

// Default throttle parameters.
const (
	DefaultMaxPerWindow = 10
	DefaultWindow       = time.Minute
)

type state struct {
	count       int
	windowStart time.Time
	warned      bool
}

// Limiter tracks delivery counts per subscription over a fixed sliding
// window. It is owned by the single dispatch consumer and is not safe for
// concurrent use.
type Limiter struct {
	max    int
	window time.Duration
	now    func() time.Time
	states map[uuid.UUID]*state
}

// New creates a limiter allowing max deliveries per window.
func New(max int, window time.Duration) *Limiter {
	if max <= 0 {
		max = DefaultMaxPerWindow
	}
	if window <= 0 {
		window = DefaultWindow
	}

	return &Limiter{
		max:    max,
		window: window,
		now:    time.Now,
		states: make(map[uuid.UUID]*state),
	}
}

// Allow evaluates one dequeued item for the subscription. When the window
// has elapsed the count resets before evaluation. An allowed delivery is
// counted; a limited one is not.
func (l *Limiter) Allow(id uuid.UUID) bool {
	s, ok := l.states[id]
	if !ok {
		s = &state{windowStart: l.now()}
		l.states[id] = s
	}

	if l.now().Sub(s.windowStart) >= l.window {
		s.count = 0
		s.windowStart = l.now()
	}

	if s.count < l.max {
		s.count++

		return true
	}

	return false
}

// Warned reports whether the rate-limit notice was already sent during the
// current limiting episode.
func (l *Limiter) Warned(id uuid.UUID) bool {
	s, ok := l.states[id]

	return ok && s.warned
}

// MarkWarned records that the one-time rate-limit notice went out.
func (l *Limiter) MarkWarned(id uuid.UUID) {
	if s, ok := l.states[id]; ok {
		s.warned = true
	}
}

// ClearWarning re-arms the notice after a non-limited delivery so a future
// limiting episode can warn again.
func (l *Limiter) ClearWarning(id uuid.UUID) {
	if s, ok := l.states[id]; ok {
		s.warned = false
	}
}

// Max returns the configured per-window delivery cap.
func (l *Limiter) Max() int {
	return l.max
}

// Window returns the configured window duration.
func (l *Limiter) Window() time.Duration {
	return l.window
}
