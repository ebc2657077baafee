// Package logger builds log/slog loggers for services that use the catalog and
// locale middleware.
//
// New returns a JSON logger by default, or a colourised text logger
// (github.com/lmittmann/tint) for local development:
//
//	log := logger.New(
//		logger.WithFormat(logger.FormatText),
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithExtractors(middlewares.LocaleExtractor()),
//	)
//
// A ContextExtractor runs on every log call and appends one attribute taken from
// the context, so a warning about a missing message key logged with
// WarnContext(r.Context(), ...) carries the request's locale.
//
// NewNope returns a discarding logger; catalogs use it until WithLogger is given.
package logger
