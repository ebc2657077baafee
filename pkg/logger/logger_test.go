package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/crossroads/pkg/logger"
)

type localeKey struct{}

func localeExtractor(ctx context.Context) (slog.Attr, bool) {
	if v, ok := ctx.Value(localeKey{}).(string); ok {
		return slog.String("locale", v), true
	}
	return slog.Attr{}, false
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("writes json with extracted attributes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithExtractors(localeExtractor, nil))

		ctx := context.WithValue(context.Background(), localeKey{}, "de-DE")
		log.WarnContext(ctx, "message key not found", slog.String("key", "greeting"))

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		require.Equal(t, "WARN", rec["level"])
		require.Equal(t, "message key not found", rec["msg"])
		require.Equal(t, "greeting", rec["key"])
		require.Equal(t, "de-DE", rec["locale"])
	})

	t.Run("skips attribute when extractor misses", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithExtractors(localeExtractor))
		log.Info("hello")

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		require.NotContains(t, rec, "locale")
	})

	t.Run("respects level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithLevel(slog.LevelError))
		log.Warn("dropped")
		require.Zero(t, buf.Len())
	})

	t.Run("writes text format", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithFormat(logger.FormatText))
		log.Info("catalog loaded", slog.String("base_name", "I18n"))

		require.Contains(t, buf.String(), "catalog loaded")
		require.Contains(t, buf.String(), "base_name=I18n")
	})

	t.Run("decorated logger keeps extractors across With", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithExtractors(localeExtractor)).With("component", "catalog")

		ctx := context.WithValue(context.Background(), localeKey{}, "fr")
		log.InfoContext(ctx, "lookup")

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		require.Equal(t, "catalog", rec["component"])
		require.Equal(t, "fr", rec["locale"])
	})
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	require.Equal(t, slog.LevelDebug, logger.ParseLevel("debug"))
	require.Equal(t, slog.LevelWarn, logger.ParseLevel("WARN"))
	require.Equal(t, slog.LevelInfo, logger.ParseLevel("nonsense"))
}

func TestNewNope(t *testing.T) {
	t.Parallel()

	log := logger.NewNope()
	require.False(t, log.Enabled(context.Background(), slog.LevelError))
}
