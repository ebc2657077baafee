// Package crossroads ties locale resolution and message catalogs into a
// chi application.
//
// A Plugin installs middleware that reads the Accept-Language header of each
// request and attaches the resolved locale to the request context under
// RequestLocale. Handlers then look messages up in an i18n.Catalog:
//
//	catalog, err := i18n.New(i18n.WithFS(bundles), i18n.WithBaseName("Messages"))
//	if err != nil {
//	    return err
//	}
//
//	r := chi.NewRouter()
//	crossroads.NewPlugin().SetDefault(language.English).Bind(r)
//
//	r.Get("/hello", func(w http.ResponseWriter, r *http.Request) {
//	    msg, _ := catalog.Lookup("greeting", crossroads.Locale(r), "Anna")
//	    fmt.Fprint(w, msg)
//	})
//
// # Default Locale
//
// Requests without a usable Accept-Language header get the plugin's default
// locale. NewPlugin starts from the locale of the host system and falls back
// to English when it cannot be detected.
//
// # Validation Errors
//
// ValidationError carries an offending value together with a message key and
// named parameters. Localize renders it through a catalog, passing the value
// as argument {0} and the parameters as named arguments:
//
//	# Messages.properties
//	errors.too_long = {0} is longer than {max} characters
//
//	err := crossroads.NewValidationError(name, "errors.too_long", map[string]string{"max": "32"})
//	text, _ := err.Localize(catalog, crossroads.Locale(r))
//
// Subpackages:
//   - pkg/i18n: message catalogs and pattern formatting
//   - middlewares: net/http locale and request ID middleware
//   - pkg/logger: slog factory with context extractors
//   - pkg/cache: in-memory cache backing catalog loading
package crossroads
