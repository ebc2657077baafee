package logger

import "log/slog"

// NewNope returns a logger that discards everything. Default for library types
// that accept an optional logger.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
