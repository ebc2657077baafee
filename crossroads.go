package crossroads

import (
	"net/http"

	"github.com/Xuanwo/go-locale"
	"github.com/go-chi/chi/v5"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/crossroads/middlewares"
)

// RequestLocale is the request context key holding the resolved language.Tag.
const RequestLocale = middlewares.RequestLocaleKey

// Plugin resolves the locale of every request of a chi router.
type Plugin struct {
	resolver *middlewares.LocaleResolver
}

// NewPlugin creates a plugin whose default locale is the locale of the host
// system, or English when it cannot be detected.
func NewPlugin(opts ...middlewares.LocaleOption) *Plugin {
	return &Plugin{
		resolver: middlewares.NewLocaleResolver(systemLocale(), opts...),
	}
}

// systemLocale detects the locale from the environment (LANG, LC_ALL and
// friends on Unix, the user locale on Windows).
func systemLocale() language.Tag {
	tag, err := locale.Detect()
	if err != nil || tag == language.Und {
		return language.English
	}
	return tag
}

// SetDefault sets the locale used for requests without a usable
// Accept-Language header.
func (p *Plugin) SetDefault(tag language.Tag) *Plugin {
	p.resolver.SetDefault(tag)
	return p
}

// SetDefaultTag is SetDefault with the locale given as a language tag such as
// "en-US". Returns i18n.ErrInvalidLocale when tag does not parse.
func (p *Plugin) SetDefaultTag(tag string) error {
	return p.resolver.SetDefaultTag(tag)
}

// Default returns the locale used for requests without a usable header.
func (p *Plugin) Default() language.Tag {
	return p.resolver.Default()
}

// Resolver returns the underlying resolver.
func (p *Plugin) Resolver() *middlewares.LocaleResolver {
	return p.resolver
}

// Middleware returns the locale middleware for use outside chi.
func (p *Plugin) Middleware() func(http.Handler) http.Handler {
	return middlewares.Locale(p.resolver)
}

// Bind installs the locale middleware on r.
// Like every chi middleware it must be bound before routes are registered.
func (p *Plugin) Bind(r chi.Router) *Plugin {
	r.Use(p.Middleware())
	return p
}

// Locale returns the locale attached to r by the plugin, or language.Und when
// the plugin is not bound.
func Locale(r *http.Request) language.Tag {
	return middlewares.GetLocale(r)
}
