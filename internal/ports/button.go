package ports

import (
	"time"

	"github.com/gabrielcapilla/playbutton/internal/domain"
)

// ButtonController owns the state of a single play button.
type ButtonController interface {
	Trigger()
	// Observe returns the state as a render would see it, applying any
	// pending Loading to Playing advance first.
	Observe() domain.ButtonState
}

// Scheduler runs fn once after delay. Scheduled work cannot be cancelled.
type Scheduler interface {
	Schedule(delay time.Duration, fn func())
}

// ContentLoader acquires the content behind the button and reports the
// outcome exactly once through done.
type ContentLoader interface {
	Load(done func(Playable, error))
}

type Notifier interface {
	Show(message string)
}

type TransitionObserver interface {
	OnTransition(t domain.Transition)
}
