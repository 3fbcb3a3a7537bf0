package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestManualScheduler_FiresInDueOrder(t *testing.T) {
	s := NewManualScheduler()
	var fired []string

	s.Schedule(3*time.Second, func() { fired = append(fired, "c") })
	s.Schedule(1*time.Second, func() { fired = append(fired, "a") })
	s.Schedule(1*time.Second, func() { fired = append(fired, "b") })

	s.Advance(500 * time.Millisecond)
	require.Empty(t, fired)
	require.Equal(t, 3, s.Pending())

	s.Advance(500 * time.Millisecond)
	require.Equal(t, []string{"a", "b"}, fired)

	s.Advance(10 * time.Second)
	require.Equal(t, []string{"a", "b", "c"}, fired)
	require.Zero(t, s.Pending())
	require.Equal(t, 11*time.Second, s.Now())
}

func TestManualScheduler_NestedScheduleWithinWindow(t *testing.T) {
	s := NewManualScheduler()
	var fired []time.Duration

	s.Schedule(time.Second, func() {
		fired = append(fired, s.Now())
		s.Schedule(time.Second, func() { fired = append(fired, s.Now()) })
		s.Schedule(5*time.Second, func() { fired = append(fired, s.Now()) })
	})

	s.Advance(3 * time.Second)
	require.Equal(t, []time.Duration{time.Second, 2 * time.Second}, fired)
	require.Equal(t, 1, s.Pending())
}

func TestManualScheduler_NegativeDelayIsImmediate(t *testing.T) {
	s := NewManualScheduler()
	called := false
	s.Schedule(-time.Second, func() { called = true })

	s.Advance(0)
	require.True(t, called)
}

func TestRealScheduler_Fires(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	done := make(chan struct{})
	NewRealScheduler().Schedule(5*time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduled callback did not fire")
	}
}
