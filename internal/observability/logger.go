package observability

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/comalice/behaviortreex/internal/config"
)

// InitLogger builds the process logger on stdout and installs it as the
// zerolog global logger.
func InitLogger(app string, cfg config.LogConfig) (zerolog.Logger, error) {
	logger, err := NewLogger(os.Stdout, app, cfg)
	if err != nil {
		return zerolog.Nop(), err
	}
	log.Logger = logger
	return logger, nil
}

// NewLogger returns a logger writing to w in the configured format, tagged
// with app.
func NewLogger(w io.Writer, app string, cfg config.LogConfig) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log level: %w", err)
	}
	if cfg.Format == "console" {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Str("app", app).Logger(), nil
}
