// Package middlewares provides net/http middleware for locale resolution.
//
// # Locale
//
// Locale resolves the preferred locale of every request from its
// Accept-Language header and stores it in the request context under
// RequestLocaleKey. Requests without a usable header get the resolver's default.
//
//	resolver := middlewares.NewLocaleResolver(language.English,
//	    middlewares.WithSupportedLocales(language.English, language.German),
//	)
//	r := chi.NewRouter()
//	r.Use(middlewares.Locale(resolver))
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    tag := middlewares.GetLocale(r)
//	    msg, _ := catalog.Lookup("greeting", tag, "Anna")
//	}
//
// # Request ID
//
// RequestID assigns an ID to each request, keeping one set by an upstream proxy.
//
// Use LocaleExtractor() and RequestIDExtractor() with logger.WithExtractors
// for automatic locale and request_id attributes in request logs:
//
//	log := logger.New(logger.WithExtractors(
//	    middlewares.RequestIDExtractor(),
//	    middlewares.LocaleExtractor(),
//	))
package middlewares
