package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/gabrielcapilla/playbutton/internal/domain"
	"github.com/gabrielcapilla/playbutton/internal/services/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shown []string

func (s *shown) Show(message string) { *s = append(*s, message) }

func TestNewController_SimulatedLoadIgnoresAudioBackend(t *testing.T) {
	for _, backend := range []string{domain.AudioBeep, domain.AudioMpv, domain.AudioSilent} {
		t.Run(backend, func(t *testing.T) {
			cfg := domain.Config{
				Variant:   domain.VariantLoading,
				LoadDelay: time.Second,
				Audio:     backend,
				MpvSocket: filepath.Join(t.TempDir(), "mpv.sock"),
				Messages:  domain.DefaultMessages(),
			}
			require.NoError(t, cfg.Validate())

			audioService := newAudio(cfg)
			t.Cleanup(func() { audioService.Close() })

			s := clock.NewManualScheduler()
			var messages shown
			c, initial, err := newController(cfg, s, audioService, &messages, nil)
			require.NoError(t, err)
			assert.Equal(t, domain.Idle, initial)

			c.Trigger()
			s.Advance(cfg.LoadDelay)

			assert.Equal(t, domain.Playing, c.Observe().Phase)
			assert.Equal(t, []string{"Loading...", "Playing...."}, []string(messages))
		})
	}
}

func TestNewController_UnknownVariant(t *testing.T) {
	cfg := domain.Config{Variant: "slider"}
	_, _, err := newController(cfg, clock.NewManualScheduler(), newAudio(cfg), nil, nil)
	require.ErrorIs(t, err, domain.ErrUnknownVariant)
}
