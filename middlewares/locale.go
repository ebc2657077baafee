package middlewares

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/crossroads/pkg/i18n"
	"github.com/dmitrymomot/crossroads/pkg/logger"
)

// ContextKey is the type of context keys set by this package.
type ContextKey string

// RequestLocaleKey is the context key holding the resolved language.Tag.
const RequestLocaleKey ContextKey = "locale"

// DefaultLocaleHeader is the request header read by LocaleResolver.
const DefaultLocaleHeader = "Accept-Language"

// LocaleResolver determines the locale of a request from its Accept-Language header.
type LocaleResolver struct {
	mu            sync.RWMutex
	defaultLocale language.Tag
	supported     []language.Tag
	header        string
}

// LocaleOption configures LocaleResolver.
type LocaleOption func(*LocaleResolver)

// WithSupportedLocales restricts resolution to the given locales.
// The best match for the header is chosen with a language.Matcher.
func WithSupportedLocales(tags ...language.Tag) LocaleOption {
	return func(r *LocaleResolver) {
		r.supported = tags
	}
}

// WithLocaleHeader sets the request header to read instead of Accept-Language.
func WithLocaleHeader(name string) LocaleOption {
	return func(r *LocaleResolver) {
		if name != "" {
			r.header = name
		}
	}
}

// NewLocaleResolver creates a resolver that falls back to defaultLocale.
func NewLocaleResolver(defaultLocale language.Tag, opts ...LocaleOption) *LocaleResolver {
	r := &LocaleResolver{
		defaultLocale: defaultLocale,
		header:        DefaultLocaleHeader,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewLocaleResolverFromTag is NewLocaleResolver with the default given as a
// language tag such as "en-US". Returns i18n.ErrInvalidLocale for unparsable tags.
func NewLocaleResolverFromTag(tag string, opts ...LocaleOption) (*LocaleResolver, error) {
	def, err := i18n.ParseLocale(tag)
	if err != nil {
		return nil, err
	}
	return NewLocaleResolver(def, opts...), nil
}

// SetDefault replaces the locale used when a request names none.
func (r *LocaleResolver) SetDefault(tag language.Tag) *LocaleResolver {
	r.mu.Lock()
	r.defaultLocale = tag
	r.mu.Unlock()
	return r
}

// SetDefaultTag is SetDefault with the locale given as a language tag.
// The current default is kept when tag does not parse.
func (r *LocaleResolver) SetDefaultTag(tag string) error {
	def, err := i18n.ParseLocale(tag)
	if err != nil {
		return err
	}
	r.SetDefault(def)
	return nil
}

// Default returns the locale used when a request names none.
func (r *LocaleResolver) Default() language.Tag {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaultLocale
}

// Resolve returns the preferred locale of the request.
// A missing, blank or unusable header resolves to the default locale.
func (r *LocaleResolver) Resolve(req *http.Request) language.Tag {
	header := strings.TrimSpace(req.Header.Get(r.header))
	if header == "" {
		return r.Default()
	}
	if tag, ok := i18n.MatchAcceptLanguage(header, r.supported); ok {
		return tag
	}
	return r.Default()
}

// Locale returns middleware that resolves the locale of every request and
// stores it in the request context under RequestLocaleKey.
func Locale(resolver *LocaleResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tag := resolver.Resolve(r)
			next.ServeHTTP(w, r.WithContext(WithLocale(r.Context(), tag)))
		})
	}
}

// WithLocale returns a copy of ctx carrying tag.
func WithLocale(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, RequestLocaleKey, tag)
}

// LocaleFromContext extracts the resolved locale from ctx.
func LocaleFromContext(ctx context.Context) (language.Tag, bool) {
	tag, ok := ctx.Value(RequestLocaleKey).(language.Tag)
	return tag, ok
}

// GetLocale extracts the resolved locale from the request.
// Returns language.Und if the Locale middleware is not used.
func GetLocale(r *http.Request) language.Tag {
	if tag, ok := LocaleFromContext(r.Context()); ok {
		return tag
	}
	return language.Und
}

// LocaleExtractor returns a ContextExtractor for use with logger.WithExtractors.
// Automatically adds "locale" to all log entries.
func LocaleExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if tag, ok := LocaleFromContext(ctx); ok {
			return slog.String("locale", tag.String()), true
		}
		return slog.Attr{}, false
	}
}
