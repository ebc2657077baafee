package i18n

import "errors"

// Configuration errors. Returned from constructors and setters.
var (
	ErrEmptyBaseName         = errors.New("i18n: base name cannot be empty")
	ErrInvalidBaseName       = errors.New("i18n: invalid base name")
	ErrInvalidSearchLocation = errors.New("i18n: invalid search location")
	ErrInvalidLocale         = errors.New("i18n: invalid locale")
	ErrInvalidFile           = errors.New("i18n: invalid catalog file")
	ErrParsingConfig         = errors.New("i18n: failed to parse config")
)

// Lookup errors. Returned from Lookup and Find, never swallowed.
var (
	ErrCatalogNotFound  = errors.New("i18n: catalog not found")
	ErrMalformedPattern = errors.New("i18n: malformed message pattern")
	ErrUnknownFormat    = errors.New("i18n: unknown format type")
	ErrArgumentType     = errors.New("i18n: argument cannot be formatted")
)
