package domain

import (
	"errors"
	"fmt"
	"time"
)

const (
	VariantLoading = "loading"
	VariantToggle  = "toggle"
)

const (
	AudioAuto   = "auto"
	AudioBeep   = "beep"
	AudioMpv    = "mpv"
	AudioSilent = "silent"
)

var (
	ErrUnknownVariant   = errors.New("unknown button variant")
	ErrUnknownAudio     = errors.New("unknown audio backend")
	ErrResourceNotFound = errors.New("audio resource not found")
)

type Config struct {
	Variant     string        `mapstructure:"variant"`
	LoadDelay   time.Duration `mapstructure:"loadDelay"`
	Resource    string        `mapstructure:"resource"`
	Audio       string        `mapstructure:"audio"`
	MpvSocket   string        `mapstructure:"mpvSocket"`
	LogLevel    string        `mapstructure:"logLevel"`
	MetricsAddr string        `mapstructure:"metricsAddr"`
	Journal     JournalConfig `mapstructure:"journal"`
	Messages    Messages      `mapstructure:"messages"`
}

type JournalConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Messages are the transient notifications shown on state changes.
type Messages struct {
	Loading    string `mapstructure:"loading"`
	Playing    string `mapstructure:"playing"`
	Paused     string `mapstructure:"paused"`
	LoadFailed string `mapstructure:"loadFailed"`
}

func DefaultMessages() Messages {
	return Messages{
		Loading:    "Loading...",
		Playing:    "Playing....",
		Paused:     "Paused",
		LoadFailed: "Load failed",
	}
}

// AudioBackend resolves "auto": beep when a resource is configured,
// silent otherwise.
func (c Config) AudioBackend() string {
	if c.Audio != AudioAuto {
		return c.Audio
	}
	if c.Resource != "" {
		return AudioBeep
	}
	return AudioSilent
}

func (c Config) Validate() error {
	switch c.Variant {
	case VariantLoading, VariantToggle:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownVariant, c.Variant)
	}
	switch c.Audio {
	case AudioAuto, AudioBeep, AudioMpv, AudioSilent:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAudio, c.Audio)
	}
	if c.LoadDelay < 0 {
		return fmt.Errorf("loadDelay must not be negative, got %s", c.LoadDelay)
	}
	return nil
}
