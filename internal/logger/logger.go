// Package logger configures the process-wide zerolog logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogConfig holds logging configuration.
type LogConfig struct {
	Level      string `yaml:"level"`                          // trace, debug, info, warn, error
	Format     string `yaml:"format"`                         // console or json
	TimeFormat string `yaml:"time_format" split_words:"true"` // Go time layout
	Output     string `yaml:"output"`                         // stdout, stderr or a file path
}

// DefaultConfig returns console logging at info level on stderr.
func DefaultConfig() LogConfig {
	return LogConfig{
		Level:      "info",
		Format:     "console",
		TimeFormat: time.RFC3339,
		Output:     "stderr",
	}
}

// Setup initializes the global logger. It opens Output when it names a file;
// the returned close function releases it and is a no-op for stdout and stderr.
func Setup(cfg LogConfig) (func() error, error) {
	noop := func() error { return nil }
	switch cfg.Output {
	case "", "stderr":
		return noop, SetupWriter(cfg, os.Stderr)
	case "stdout":
		return noop, SetupWriter(cfg, os.Stdout)
	}

	f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return noop, fmt.Errorf("opening log output: %w", err)
	}
	if err := SetupWriter(cfg, f); err != nil {
		_ = f.Close()
		return noop, err
	}
	return f.Close, nil
}

// SetupWriter initializes the global logger to write to w.
func SetupWriter(cfg LogConfig, w io.Writer) error {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		var err error
		level, err = zerolog.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return fmt.Errorf("parsing log level: %w", err)
		}
	}
	zerolog.SetGlobalLevel(level)

	timeFormat := cfg.TimeFormat
	if timeFormat == "" {
		timeFormat = time.RFC3339
	}
	zerolog.TimeFieldFormat = timeFormat

	switch strings.ToLower(cfg.Format) {
	case "json":
	case "", "console":
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: timeFormat}
	default:
		return fmt.Errorf("unknown log format %q", cfg.Format)
	}

	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	return nil
}

// WithComponent returns a logger with a component field.
func WithComponent(component string) zerolog.Logger {
	return log.Logger.With().Str("component", component).Logger()
}
