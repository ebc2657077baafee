package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// Format selects the handler used by New.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text" // colourised, for local development
)

// Option configures New.
type Option func(*config)

type config struct {
	output     io.Writer
	format     Format
	extractors []ContextExtractor
	level      slog.Level
	noColor    bool
}

// WithLevel sets the minimum level. Default: info.
func WithLevel(level slog.Level) Option {
	return func(c *config) {
		c.level = level
	}
}

// WithFormat selects JSON (default) or colourised text output.
func WithFormat(format Format) Option {
	return func(c *config) {
		c.format = format
	}
}

// WithOutput redirects log output. Default: stdout.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		c.output = w
		c.noColor = true
	}
}

// WithExtractors adds context extractors, evaluated on every log call.
func WithExtractors(extractors ...ContextExtractor) Option {
	return func(c *config) {
		c.extractors = append(c.extractors, extractors...)
	}
}

// New creates a logger. JSON to stdout at info level unless configured otherwise.
func New(opts ...Option) *slog.Logger {
	cfg := &config{
		output: os.Stdout,
		format: FormatJSON,
		level:  slog.LevelInfo,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	var h slog.Handler
	switch cfg.format {
	case FormatText:
		h = tint.NewHandler(cfg.output, &tint.Options{
			Level:      cfg.level,
			TimeFormat: time.Kitchen,
			NoColor:    cfg.noColor,
		})
	default:
		h = slog.NewJSONHandler(cfg.output, &slog.HandlerOptions{Level: cfg.level})
	}

	return slog.New(NewLogHandlerDecorator(h, cfg.extractors...))
}

// ParseLevel maps "debug", "info", "warn" and "error" to slog levels.
// Unknown values fall back to info.
func ParseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
