package i18n

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

// Translator binds a catalog to one locale, e.g. the locale of a request.
// It wraps a Catalog and eliminates the need to pass the locale to every lookup.
type Translator struct {
	catalog *Catalog
	ctx     context.Context
	format  *formatter
	locale  language.Tag
}

// NewTranslator creates a Translator for locale.
func NewTranslator(catalog *Catalog, locale language.Tag) *Translator {
	if catalog == nil {
		panic("i18n: catalog is not provided")
	}
	return &Translator{
		catalog: catalog,
		ctx:     context.Background(),
		format:  catalog.formatter(locale),
		locale:  locale,
	}
}

// WithContext returns a copy of t that logs and loads with ctx.
func (t *Translator) WithContext(ctx context.Context) *Translator {
	cp := *t
	cp.ctx = ctx
	return &cp
}

// T formats key with args. Errors are logged and the key is returned,
// which makes T convenient in templates.
func (t *Translator) T(key string, args ...any) string {
	s, err := t.catalog.LookupContext(t.ctx, key, t.locale, args...)
	if err != nil {
		t.catalog.logger.ErrorContext(t.ctx, "message lookup failed",
			slog.String("key", key),
			slog.String("locale", t.locale.String()),
			slog.Any("error", err),
		)
		return key
	}
	return s
}

// Lookup is T with the error returned.
func (t *Translator) Lookup(key string, args ...any) (string, error) {
	return t.catalog.LookupContext(t.ctx, key, t.locale, args...)
}

// FormatNumber formats a number with locale-specific separators.
func (t *Translator) FormatNumber(n float64) string {
	return t.format.decimal(n, 0, 3)
}

// FormatCurrency formats an amount in the currency of the locale's region.
func (t *Translator) FormatCurrency(amount float64) string {
	return t.format.currency(amount, t.format.localCurrency())
}

// FormatMoney formats an amount in an explicit currency.
func (t *Translator) FormatMoney(amount float64, unit currency.Unit) string {
	return t.format.currency(amount, unit)
}

// FormatPercent formats a ratio as a percentage (0.5 -> "50%").
func (t *Translator) FormatPercent(n float64) string {
	return t.format.percent(n)
}

// FormatDate formats a date in the locale's medium style.
func (t *Translator) FormatDate(date time.Time) string {
	return t.format.dateStyle(StyleMedium, date)
}

// FormatTime formats a time of day in the locale's medium style.
func (t *Translator) FormatTime(tm time.Time) string {
	return t.format.timeStyle(StyleMedium, tm)
}

// FormatDateTime formats a timestamp as short date and short time.
func (t *Translator) FormatDateTime(datetime time.Time) string {
	return t.format.dateTime(datetime)
}

// Locale returns the translator's locale.
func (t *Translator) Locale() language.Tag {
	return t.locale
}

// Catalog returns the underlying catalog.
func (t *Translator) Catalog() *Catalog {
	return t.catalog
}
