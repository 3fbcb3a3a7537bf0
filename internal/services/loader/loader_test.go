package loader

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gabrielcapilla/playbutton/internal/ports"
	"github.com/gabrielcapilla/playbutton/internal/services/audio"
	"github.com/gabrielcapilla/playbutton/internal/services/clock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type stubAudio struct {
	mu       sync.Mutex
	err      error
	acquired []string
	playable ports.Playable
}

func (a *stubAudio) Acquire(resource string) (ports.Playable, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.acquired = append(a.acquired, resource)
	if a.err != nil {
		return nil, a.err
	}
	return a.playable, nil
}

func (a *stubAudio) Close() error { return nil }

type result struct {
	playable ports.Playable
	err      error
}

func TestSimulated_CompletesOnceAfterDelay(t *testing.T) {
	s := clock.NewManualScheduler()
	l := NewSimulated(s, DefaultDelay, audio.NewSilentAudio(), "song")

	var results []result
	l.Load(func(p ports.Playable, err error) { results = append(results, result{p, err}) })

	s.Advance(DefaultDelay - time.Millisecond)
	require.Empty(t, results)

	s.Advance(time.Millisecond)
	require.Len(t, results, 1)
	require.NoError(t, results[0].err)
	require.NotNil(t, results[0].playable)

	s.Advance(time.Hour)
	require.Len(t, results, 1, "completion is signalled exactly once")
}

func TestSimulated_ReportsAcquireError(t *testing.T) {
	s := clock.NewManualScheduler()
	boom := errors.New("boom")
	l := NewSimulated(s, time.Second, &stubAudio{err: boom}, "song")

	var got error
	l.Load(func(p ports.Playable, err error) { got = err })
	s.Advance(time.Second)

	require.ErrorIs(t, got, boom)
}

func TestAudio_DeliversThroughScheduler(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	pl, err := audio.NewSilentAudio().Acquire("track.wav")
	require.NoError(t, err)
	stub := &stubAudio{playable: pl}

	results := make(chan result, 1)
	l := NewAudio(clock.NewRealScheduler(), stub, "track.wav")
	l.Load(func(p ports.Playable, err error) { results <- result{p, err} })

	select {
	case r := <-results:
		require.NoError(t, r.err)
		require.Equal(t, pl, r.playable)
	case <-time.After(2 * time.Second):
		t.Fatal("load did not complete")
	}
	require.Equal(t, []string{"track.wav"}, stub.acquired)
}

func TestAudio_Failure(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	boom := errors.New("decode failed")
	results := make(chan result, 1)
	l := NewAudio(clock.NewRealScheduler(), &stubAudio{err: boom}, "track.wav")
	l.Load(func(p ports.Playable, err error) { results <- result{p, err} })

	select {
	case r := <-results:
		require.ErrorIs(t, r.err, boom)
		require.Nil(t, r.playable)
	case <-time.After(2 * time.Second):
		t.Fatal("load did not complete")
	}
}
