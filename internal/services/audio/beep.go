package audio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/gabrielcapilla/playbutton/internal/domain"
	"github.com/gabrielcapilla/playbutton/internal/logger"
	"github.com/gabrielcapilla/playbutton/internal/ports"
)

const (
	outputBufferDuration = 100 * time.Millisecond
	resampleQuality      = 4
)

// Output is the sound device the decoded streams are mixed into.
type Output interface {
	Init(sr beep.SampleRate, bufferSize int) error
	Play(s ...beep.Streamer)
	Clear()
	Lock()
	Unlock()
}

type speakerOutput struct{}

func (speakerOutput) Init(sr beep.SampleRate, bufferSize int) error {
	return speaker.Init(sr, bufferSize)
}
func (speakerOutput) Play(s ...beep.Streamer) { speaker.Play(s...) }
func (speakerOutput) Clear()                  { speaker.Clear() }
func (speakerOutput) Lock()                   { speaker.Lock() }
func (speakerOutput) Unlock()                 { speaker.Unlock() }

// BeepAudio decodes WAV resources and plays them through the speaker. The
// speaker is initialised lazily with the sample rate of the first resource
// that starts; later resources are resampled to it.
type BeepAudio struct {
	out Output

	mu         sync.Mutex
	sampleRate beep.SampleRate
	ready      bool
	opened     []beep.StreamSeekCloser
}

func NewBeepAudio() *BeepAudio {
	return NewBeepAudioWithOutput(speakerOutput{})
}

func NewBeepAudioWithOutput(out Output) *BeepAudio {
	return &BeepAudio{out: out}
}

func (a *BeepAudio) Acquire(resource string) (ports.Playable, error) {
	f, err := os.Open(resource)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrResourceNotFound, resource)
		}
		return nil, fmt.Errorf("could not open audio resource: %w", err)
	}

	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("could not decode %s: %w", resource, err)
	}

	a.mu.Lock()
	a.opened = append(a.opened, streamer)
	a.mu.Unlock()

	logger.Log.Info().
		Str("resource", resource).
		Int("sampleRate", int(format.SampleRate)).
		Int("channels", format.NumChannels).
		Msg("Audio resource acquired")

	return &beepPlayable{
		audio:    a,
		resource: resource,
		format:   format,
		ctrl:     &beep.Ctrl{Streamer: streamer, Paused: true},
	}, nil
}

// queue opens the output on first use and hands p's stream to it once.
func (a *BeepAudio) queue(p *beepPlayable) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.ready {
		sr := p.format.SampleRate
		if err := a.out.Init(sr, sr.N(outputBufferDuration)); err != nil {
			return fmt.Errorf("could not initialise audio output: %w", err)
		}
		a.sampleRate = sr
		a.ready = true
	}
	if p.queued {
		return nil
	}

	var s beep.Streamer = p.ctrl
	if p.format.SampleRate != a.sampleRate {
		s = beep.Resample(resampleQuality, p.format.SampleRate, a.sampleRate, p.ctrl)
	}
	a.out.Play(s)
	p.queued = true
	return nil
}

func (a *BeepAudio) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ready {
		a.out.Clear()
	}
	var errs []error
	for _, s := range a.opened {
		errs = append(errs, s.Close())
	}
	a.opened = nil
	return errors.Join(errs...)
}

type beepPlayable struct {
	audio    *BeepAudio
	resource string
	format   beep.Format
	ctrl     *beep.Ctrl
	queued   bool
}

func (p *beepPlayable) Start() {
	if err := p.audio.queue(p); err != nil {
		logger.Log.Error().Err(err).Str("resource", p.resource).Msg("Could not start playback")
		return
	}

	out := p.audio.out
	out.Lock()
	p.ctrl.Paused = false
	out.Unlock()
	logger.Log.Info().Str("resource", p.resource).Msg("Playback started")
}

func (p *beepPlayable) Pause() {
	out := p.audio.out
	out.Lock()
	p.ctrl.Paused = true
	out.Unlock()
	logger.Log.Info().Str("resource", p.resource).Msg("Playback paused")
}
