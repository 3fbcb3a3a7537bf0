package loader

import (
	"time"

	"github.com/gabrielcapilla/playbutton/internal/logger"
	"github.com/gabrielcapilla/playbutton/internal/ports"
)

const DefaultDelay = 4 * time.Second

// Simulated pretends to fetch content. Each Load reports success exactly
// once, after the fixed delay; it never fails and cannot be cancelled.
type Simulated struct {
	scheduler ports.Scheduler
	delay     time.Duration
	audio     ports.AudioService
	resource  string
}

func NewSimulated(scheduler ports.Scheduler, delay time.Duration, audio ports.AudioService, resource string) *Simulated {
	return &Simulated{scheduler: scheduler, delay: delay, audio: audio, resource: resource}
}

func (l *Simulated) Load(done func(ports.Playable, error)) {
	logger.Log.Debug().Dur("delay", l.delay).Msg("Simulated load started")
	l.scheduler.Schedule(l.delay, func() {
		p, err := l.audio.Acquire(l.resource)
		if err != nil {
			done(nil, err)
			return
		}
		logger.Log.Debug().Msg("Simulated load finished")
		done(p, nil)
	})
}

// Audio acquires the resource through the audio service on its own
// goroutine and hands the outcome back through the scheduler, so the
// completion runs wherever the scheduler delivers work.
type Audio struct {
	scheduler ports.Scheduler
	audio     ports.AudioService
	resource  string
}

func NewAudio(scheduler ports.Scheduler, audio ports.AudioService, resource string) *Audio {
	return &Audio{scheduler: scheduler, audio: audio, resource: resource}
}

func (l *Audio) Load(done func(ports.Playable, error)) {
	go func() {
		started := time.Now()
		p, err := l.audio.Acquire(l.resource)
		if err != nil {
			logger.Log.Error().Err(err).Str("resource", l.resource).Msg("Load failed")
		} else {
			logger.Log.Info().Str("resource", l.resource).Dur("took", time.Since(started)).Msg("Load finished")
		}
		l.scheduler.Schedule(0, func() { done(p, err) })
	}()
}
