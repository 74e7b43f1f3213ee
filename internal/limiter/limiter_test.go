package limiter

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newTestLimiter(max int, window time.Duration) (*Limiter, *time.Time) {
	l := New(max, window)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	return l, &now
}

func TestLimiter_CapSuppressesEleventhDelivery(t *testing.T) {
	l, _ := newTestLimiter(10, time.Minute)
	id := uuid.New()

	for i := 0; i < 10; i++ {
		assert.True(t, l.Allow(id), "delivery %d should be allowed", i+1)
	}
	assert.False(t, l.Allow(id), "11th delivery within the window should be suppressed")
}

func TestLimiter_WindowResetRestartsCount(t *testing.T) {
	l, now := newTestLimiter(10, time.Minute)
	id := uuid.New()

	for i := 0; i < 10; i++ {
		assert.True(t, l.Allow(id))
	}
	assert.False(t, l.Allow(id))

	*now = now.Add(time.Minute)

	for i := 0; i < 10; i++ {
		assert.True(t, l.Allow(id), "delivery %d after reset should be allowed", i+1)
	}
	assert.False(t, l.Allow(id))
}

func TestLimiter_WarningFlagLifecycle(t *testing.T) {
	l, now := newTestLimiter(1, time.Minute)
	id := uuid.New()

	assert.True(t, l.Allow(id))
	assert.False(t, l.Allow(id))

	assert.False(t, l.Warned(id))
	l.MarkWarned(id)
	assert.True(t, l.Warned(id))

	// Re-arms only after a non-limited delivery cycle.
	*now = now.Add(time.Minute)
	assert.True(t, l.Allow(id))
	l.ClearWarning(id)
	assert.False(t, l.Warned(id))
}

func TestLimiter_SubscriptionsAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(1, time.Minute)
	first := uuid.New()
	second := uuid.New()

	assert.True(t, l.Allow(first))
	assert.False(t, l.Allow(first))
	assert.True(t, l.Allow(second))
}

func TestLimiter_DefaultsApplied(t *testing.T) {
	l := New(0, 0)
	assert.Equal(t, DefaultMaxPerWindow, l.Max())
	assert.Equal(t, DefaultWindow, l.Window())
}
