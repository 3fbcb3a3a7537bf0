package clock

import (
	"sort"
	"sync"
	"time"

	"github.com/gabrielcapilla/playbutton/internal/ports"
)

// RealScheduler runs callbacks on the runtime timer goroutine.
type RealScheduler struct{}

func NewRealScheduler() ports.Scheduler {
	return RealScheduler{}
}

func (RealScheduler) Schedule(delay time.Duration, fn func()) {
	time.AfterFunc(delay, fn)
}

type pending struct {
	at  time.Duration
	seq int
	fn  func()
}

// ManualScheduler keeps virtual time. Callbacks only run from Advance, on the
// caller's goroutine, in due-time order (ties in scheduling order).
type ManualScheduler struct {
	mu      sync.Mutex
	now     time.Duration
	seq     int
	pending []pending
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) Schedule(delay time.Duration, fn func()) {
	if delay < 0 {
		delay = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.pending = append(s.pending, pending{at: s.now + delay, seq: s.seq, fn: fn})
}

// Advance moves virtual time forward by d and fires everything now due,
// including callbacks scheduled by callbacks that fall inside the window.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		s.mu.Lock()
		next, ok := s.popDue(target)
		if !ok {
			s.now = target
			s.mu.Unlock()
			return
		}
		s.now = next.at
		s.mu.Unlock()

		next.fn()
	}
}

func (s *ManualScheduler) popDue(target time.Duration) (pending, bool) {
	if len(s.pending) == 0 {
		return pending{}, false
	}
	sort.Slice(s.pending, func(i, j int) bool {
		if s.pending[i].at == s.pending[j].at {
			return s.pending[i].seq < s.pending[j].seq
		}
		return s.pending[i].at < s.pending[j].at
	})
	if s.pending[0].at > target {
		return pending{}, false
	}
	next := s.pending[0]
	s.pending = s.pending[1:]
	return next, true
}

// Pending reports how many callbacks have not fired yet.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

func (s *ManualScheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}
