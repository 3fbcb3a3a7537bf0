package audio

import (
	"github.com/gabrielcapilla/playbutton/internal/logger"
	"github.com/gabrielcapilla/playbutton/internal/ports"
)

// SilentAudio stands in for a real device: every resource is accepted and
// playback is only logged.
type SilentAudio struct{}

func NewSilentAudio() SilentAudio { return SilentAudio{} }

func (SilentAudio) Acquire(resource string) (ports.Playable, error) {
	return silentPlayable{resource: resource}, nil
}

func (SilentAudio) Close() error { return nil }

type silentPlayable struct{ resource string }

func (p silentPlayable) Start() {
	logger.Log.Info().Str("resource", p.resource).Msg("Silent playback started")
}

func (p silentPlayable) Pause() {
	logger.Log.Info().Str("resource", p.resource).Msg("Silent playback paused")
}
