package button

import (
	"fmt"
	"sync"

	"github.com/gabrielcapilla/playbutton/internal/domain"
	"github.com/gabrielcapilla/playbutton/internal/ports"
)

// ToggleController is the eagerly loaded button: the resource is acquired
// up front, so it starts Paused and flips between Paused and Playing.
type ToggleController struct {
	playable ports.Playable
	notifier ports.Notifier
	observer ports.TransitionObserver
	messages domain.Messages

	mu    sync.Mutex
	state domain.ButtonState
}

func NewToggleController(audio ports.AudioService, resource string, notifier ports.Notifier, observer ports.TransitionObserver, messages domain.Messages) (*ToggleController, error) {
	p, err := audio.Acquire(resource)
	if err != nil {
		return nil, fmt.Errorf("could not acquire %q: %w", resource, err)
	}
	if observer == nil {
		observer = Observers(nil)
	}
	return &ToggleController{
		playable: p,
		notifier: notifier,
		observer: observer,
		messages: messages,
		state:    domain.ButtonState{Phase: domain.Paused, ContentReady: true},
	}, nil
}

func (c *ToggleController) Trigger() {
	var fx effects

	c.mu.Lock()
	from := c.state.Phase
	if from == domain.Paused {
		fx.transition(c.observer, c.move(domain.Playing))
		fx.start(c.playable)
		fx.notify(c.notifier, c.messages.Playing)
	} else {
		fx.transition(c.observer, c.move(domain.Paused))
		fx.pause(c.playable)
		fx.notify(c.notifier, c.messages.Paused)
	}
	c.mu.Unlock()

	fx.run()
}

func (c *ToggleController) Observe() domain.ButtonState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *ToggleController) move(to domain.Phase) domain.Transition {
	t := domain.Transition{From: c.state.Phase, To: to, Cause: domain.CauseTrigger}
	c.state.Phase = to
	return t
}
