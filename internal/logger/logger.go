package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Log is the process-wide logger. It discards output until Init is called.
var Log = zerolog.Nop()

// LogPath returns the log file location inside the user's config directory,
// falling back to /tmp when that directory is unavailable.
func LogPath() string {
	logPath := "/tmp/playbutton.log"
	configDir, err := os.UserConfigDir()
	if err == nil {
		appDir := filepath.Join(configDir, "playbutton")
		if err := os.MkdirAll(appDir, 0755); err == nil {
			logPath = filepath.Join(appDir, "playbutton.log")
		}
	}
	return logPath
}

// Init opens the log file and installs it as the destination for Log.
// The returned closer releases the file.
func Init(level string) (io.Closer, error) {
	file, err := os.OpenFile(LogPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		return nil, err
	}
	Configure(file, level)
	Log.Info().Str("path", file.Name()).Msg("Logger initialized")
	return file, nil
}

// Configure points Log at w.
func Configure(w io.Writer, level string) {
	zerolog.TimeFieldFormat = time.RFC3339
	SetLevel(level)
	Log = zerolog.New(w).With().Timestamp().Str("service", "playbutton").Logger()
}

// SetLevel changes the global level; unknown names leave it at info.
func SetLevel(level string) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
}

func WithComponent(component string) zerolog.Logger {
	return Log.With().Str("component", component).Logger()
}
