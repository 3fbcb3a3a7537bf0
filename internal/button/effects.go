package button

import (
	"github.com/gabrielcapilla/playbutton/internal/domain"
	"github.com/gabrielcapilla/playbutton/internal/logger"
	"github.com/gabrielcapilla/playbutton/internal/ports"
)

// effects collects collaborator calls decided under the controller lock so
// they can run after it is released.
type effects []func()

func (fx *effects) add(f func()) { *fx = append(*fx, f) }

func (fx *effects) transition(o ports.TransitionObserver, t domain.Transition) {
	fx.add(func() { o.OnTransition(t) })
}

func (fx *effects) notify(n ports.Notifier, message string) {
	if n == nil || message == "" {
		return
	}
	fx.add(func() { n.Show(message) })
}

func (fx *effects) start(p ports.Playable) {
	if p == nil {
		return
	}
	fx.add(p.Start)
}

func (fx *effects) pause(p ports.Playable) {
	if p == nil {
		return
	}
	fx.add(p.Pause)
}

func (fx effects) run() {
	for _, f := range fx {
		f()
	}
}

// Observers fans a transition out to every observer in order.
type Observers []ports.TransitionObserver

func (obs Observers) OnTransition(t domain.Transition) {
	for _, o := range obs {
		o.OnTransition(t)
	}
}

// LogObserver writes each transition to the structured log.
type LogObserver struct{}

func (LogObserver) OnTransition(t domain.Transition) {
	log := logger.WithComponent("button")
	log.Info().
		Stringer("from", t.From).
		Stringer("to", t.To).
		Str("cause", string(t.Cause)).
		Msg("Transition")
}
