package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/gabrielcapilla/playbutton/internal/domain"
	"github.com/gabrielcapilla/playbutton/internal/logger"
	"github.com/gabrielcapilla/playbutton/internal/ports"
	"github.com/gabrielcapilla/playbutton/internal/services/loader"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flagKeys maps config keys to the command line flags that override them.
var flagKeys = map[string]string{
	"variant":         "variant",
	"loadDelay":       "load-delay",
	"resource":        "resource",
	"audio":           "audio",
	"logLevel":        "log-level",
	"metricsAddr":     "metrics-addr",
	"journal.enabled": "journal",
}

// NewFlagSet declares the flags understood by NewViperConfigService.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config", "", "directory containing config.yml")
	fs.String("variant", domain.VariantLoading, "button variant: loading or toggle")
	fs.Duration("load-delay", loader.DefaultDelay, "simulated load duration")
	fs.String("resource", "", "audio file to play; empty uses silent audio")
	fs.String("audio", domain.AudioAuto, "audio backend: auto, beep, mpv or silent")
	fs.String("log-level", "info", "log level")
	fs.String("metrics-addr", "", "serve Prometheus metrics on this address")
	fs.Bool("journal", false, "record transitions to the journal database")
	fs.Int("show-journal", 0, "print the N most recent journal entries and exit")
	fs.Bool("headless", false, "read triggers from the terminal instead of drawing the button")
	return fs
}

type ViperConfigService struct {
	v   *viper.Viper
	dir string
}

var _ ports.ConfigService = (*ViperConfigService)(nil)

// DefaultDir is where the config file, journal and log live.
func DefaultDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Could not find user config directory, using current directory")
		return "."
	}
	dir := filepath.Join(configDir, "playbutton")
	if err := os.MkdirAll(dir, 0755); err != nil {
		logger.Log.Error().Err(err).Msg("Could not create playbutton config directory")
		return "."
	}
	return dir
}

// NewViperConfigService looks for config.yml in dir. Flags, if given, take
// precedence over the file but are never written to it.
func NewViperConfigService(dir string, flags *pflag.FlagSet) (*ViperConfigService, error) {
	v := newViper(dir)

	if flags != nil {
		for key, name := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, err
			}
		}
	}

	return &ViperConfigService{v: v, dir: dir}, nil
}

func newViper(dir string) *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(dir)

	messages := domain.DefaultMessages()
	v.SetDefault("variant", domain.VariantLoading)
	v.SetDefault("loadDelay", loader.DefaultDelay)
	v.SetDefault("resource", "")
	v.SetDefault("audio", domain.AudioAuto)
	v.SetDefault("mpvSocket", filepath.Join(os.TempDir(), "playbutton-mpv.sock"))
	v.SetDefault("logLevel", "info")
	v.SetDefault("metricsAddr", "")
	v.SetDefault("journal.enabled", false)
	v.SetDefault("journal.path", filepath.Join(dir, "journal.db"))
	v.SetDefault("messages.loading", messages.Loading)
	v.SetDefault("messages.playing", messages.Playing)
	v.SetDefault("messages.paused", messages.Paused)
	v.SetDefault("messages.loadFailed", messages.LoadFailed)
	return v
}

func (s *ViperConfigService) Load() (domain.Config, error) {
	var cfg domain.Config

	if err := s.v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			logger.Log.Info().Msg("Config file not found, creating with default values.")
			if err := newViper(s.dir).SafeWriteConfig(); err != nil {
				return cfg, err
			}
			if err := s.v.ReadInConfig(); err != nil {
				return cfg, err
			}
		} else {
			return cfg, err
		}
	}

	if err := s.v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

// Watch calls onChange with the re-read config each time the file changes.
// Invalid edits are logged and skipped.
func (s *ViperConfigService) Watch(onChange func(domain.Config)) {
	s.v.OnConfigChange(func(e fsnotify.Event) {
		var cfg domain.Config
		if err := s.v.Unmarshal(&cfg); err != nil {
			logger.Log.Error().Err(err).Str("file", e.Name).Msg("Could not reload config")
			return
		}
		if err := cfg.Validate(); err != nil {
			logger.Log.Error().Err(err).Str("file", e.Name).Msg("Ignoring invalid config")
			return
		}
		logger.Log.Info().Str("file", e.Name).Str("op", e.Op.String()).Msg("Config reloaded")
		onChange(cfg)
	})
	s.v.WatchConfig()
}

func (s *ViperConfigService) ConfigFile() string {
	return s.v.ConfigFileUsed()
}
