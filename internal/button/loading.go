// Package button holds the state machines behind the play button.
package button

import (
	"sync"

	"github.com/gabrielcapilla/playbutton/internal/domain"
	"github.com/gabrielcapilla/playbutton/internal/logger"
	"github.com/gabrielcapilla/playbutton/internal/ports"
)

// LoadingController is the lazily loading button. The first trigger starts
// the content load and shows a progress indicator; once the load reports
// ready, the next observation switches to Playing and starts playback.
// After that it toggles between Playing and Paused.
type LoadingController struct {
	loader   ports.ContentLoader
	notifier ports.Notifier
	observer ports.TransitionObserver
	messages domain.Messages

	mu       sync.Mutex
	state    domain.ButtonState
	playable ports.Playable
	cycle    uint64
}

func NewLoadingController(loader ports.ContentLoader, notifier ports.Notifier, observer ports.TransitionObserver, messages domain.Messages) *LoadingController {
	if observer == nil {
		observer = Observers(nil)
	}
	return &LoadingController{
		loader:   loader,
		notifier: notifier,
		observer: observer,
		messages: messages,
		state:    domain.ButtonState{Phase: domain.Idle},
	}
}

func (c *LoadingController) Trigger() {
	var fx effects

	c.mu.Lock()
	switch c.state.Phase {
	case domain.Idle:
		if c.state.ContentReady {
			break
		}
		c.cycle++
		cycle := c.cycle
		fx.transition(c.observer, c.move(domain.Loading, domain.CauseTrigger))
		fx.notify(c.notifier, c.messages.Loading)
		fx.add(func() {
			c.loader.Load(func(p ports.Playable, err error) {
				c.complete(cycle, p, err)
			})
		})
	case domain.Playing:
		fx.transition(c.observer, c.move(domain.Paused, domain.CauseTrigger))
		fx.pause(c.playable)
		fx.notify(c.notifier, c.messages.Paused)
	case domain.Paused:
		fx.transition(c.observer, c.move(domain.Playing, domain.CauseTrigger))
		fx.start(c.playable)
		fx.notify(c.notifier, c.messages.Playing)
	case domain.Loading:
		logger.Log.Debug().Msg("Trigger ignored while loading")
	}
	c.mu.Unlock()

	fx.run()
}

// OnLoadComplete records the outcome of the current load cycle. Success only
// marks the content ready; the phase moves on the next Observe. Failure
// returns the button to Idle.
func (c *LoadingController) OnLoadComplete(p ports.Playable, err error) {
	c.mu.Lock()
	cycle := c.cycle
	c.mu.Unlock()
	c.complete(cycle, p, err)
}

func (c *LoadingController) complete(cycle uint64, p ports.Playable, err error) {
	var fx effects

	c.mu.Lock()
	switch {
	case cycle != c.cycle || c.state.Phase != domain.Loading:
		logger.Log.Warn().Uint64("cycle", cycle).Str("phase", c.state.Phase.String()).Msg("Stale load completion ignored")
	case err != nil:
		logger.Log.Error().Err(err).Msg("Content load failed")
		fx.transition(c.observer, c.move(domain.Idle, domain.CauseLoadFailed))
		fx.notify(c.notifier, c.messages.LoadFailed)
	default:
		c.state.ContentReady = true
		c.playable = p
		logger.Log.Info().Msg("Content ready")
	}
	c.mu.Unlock()

	fx.run()
}

// Observe applies the render-time advance from Loading to Playing once the
// content is ready, then returns the state.
func (c *LoadingController) Observe() domain.ButtonState {
	var fx effects

	c.mu.Lock()
	if c.state.Phase == domain.Loading && c.state.ContentReady {
		fx.transition(c.observer, c.move(domain.Playing, domain.CauseLoaded))
		fx.start(c.playable)
		fx.notify(c.notifier, c.messages.Playing)
	}
	state := c.state
	c.mu.Unlock()

	fx.run()
	return state
}

// Snapshot returns the state without applying any pending advance.
func (c *LoadingController) Snapshot() domain.ButtonState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *LoadingController) move(to domain.Phase, cause domain.Cause) domain.Transition {
	t := domain.Transition{From: c.state.Phase, To: to, Cause: cause}
	c.state.Phase = to
	return t
}
