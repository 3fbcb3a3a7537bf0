package ui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gabrielcapilla/playbutton/internal/logger"
)

// Sender is satisfied by *tea.Program.
type Sender interface {
	Send(msg tea.Msg)
}

// ProgramScheduler delivers callbacks as messages so they run inside
// Update, serialized with key handling. Callbacks that fall due before a
// program is attached run on the timer goroutine.
type ProgramScheduler struct {
	mu     sync.Mutex
	sender Sender
}

func NewProgramScheduler() *ProgramScheduler {
	return &ProgramScheduler{}
}

func (s *ProgramScheduler) Attach(sender Sender) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sender = sender
}

func (s *ProgramScheduler) Schedule(delay time.Duration, fn func()) {
	time.AfterFunc(delay, func() {
		s.mu.Lock()
		sender := s.sender
		s.mu.Unlock()

		if sender == nil {
			logger.Log.Warn().Msg("No program attached, running scheduled work directly")
			fn()
			return
		}
		sender.Send(scheduledMsg{fn: fn})
	})
}
