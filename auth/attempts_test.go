// api/auth/attempts_test.go
package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fixhub-app/fixhub/api/auth"
)

func TestAttemptTrackerLockoutAtThresholdOnly(t *testing.T) {
	tracker := auth.NewAttemptTracker(5, 5*time.Minute)

	for i := 1; i <= 4; i++ {
		count, lockout := tracker.RecordFailure("admin@example.com")
		assert.Equal(t, i, count)
		assert.False(t, lockout, "no lockout before the fifth failure")
	}

	count, lockout := tracker.RecordFailure("admin@example.com")
	assert.Equal(t, 5, count)
	assert.True(t, lockout)

	_, lockout = tracker.RecordFailure("admin@example.com")
	assert.False(t, lockout, "the sixth failure must not re-trigger the event")
}

func TestAttemptTrackerResetsAfterWindow(t *testing.T) {
	now := time.Now()
	tracker := auth.NewAttemptTracker(5, 5*time.Minute).
		WithAttemptClock(func() time.Time { return now })

	for i := 0; i < 3; i++ {
		tracker.RecordFailure("admin@example.com")
	}

	now = now.Add(5*time.Minute + time.Second)
	count, lockout := tracker.RecordFailure("admin@example.com")

	assert.Equal(t, 1, count, "counter resets to 1 after the window elapses")
	assert.False(t, lockout)
}

func TestAttemptTrackerResetOnSuccess(t *testing.T) {
	tracker := auth.NewAttemptTracker(5, 5*time.Minute)

	tracker.RecordFailure("admin@example.com")
	tracker.RecordFailure("admin@example.com")
	tracker.Reset("admin@example.com")

	count, _ := tracker.RecordFailure("admin@example.com")
	assert.Equal(t, 1, count)
}

func TestAttemptTrackerSeparateIdentifiers(t *testing.T) {
	tracker := auth.NewAttemptTracker(5, 5*time.Minute)

	tracker.RecordFailure("a@example.com")
	count, _ := tracker.RecordFailure("b@example.com")

	assert.Equal(t, 1, count)
}
