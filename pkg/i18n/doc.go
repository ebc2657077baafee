// Package i18n provides message catalogs resolved through a locale fallback
// chain and formatted with MessageFormat-style patterns.
//
// A Catalog reads files named after a base name and a locale suffix from an
// fs.FS (usually embedded) and an optional directory on disk:
//
//	I18n.properties         root, consulted last
//	I18n_en.properties
//	I18n_de.properties
//	I18n_de_DE.properties
//
// .properties, .yaml/.yml, .json and .toml files are supported; for a given
// suffix the first existing extension wins. Nested YAML, JSON and TOML maps are
// flattened with dots ("errors.required").
//
// # Basic Usage
//
//	//go:embed i18n
//	var catalogs embed.FS
//
//	sub, _ := fs.Sub(catalogs, "i18n")
//	catalog, err := i18n.New(
//		i18n.WithFS(sub),
//		i18n.WithBaseName("Messages"),
//		i18n.WithLogger(log),
//	)
//
//	msg, err := catalog.Lookup("greeting", language.German, "Anna")
//
// # Fallback Chain
//
// For de-DE the catalog consults Messages_de_DE, Messages_de and then the root
// file, most specific first. When none of the requested locale's files exist,
// the fallback locale (English unless WithFallbackLocale says otherwise) is
// tried before the root file. A key missing from every file is logged as a
// warning and Lookup returns the key itself. Find reports the miss through
// Message.Found instead.
//
// # Patterns
//
// Placeholders take the form {index}, {index,type} or {index,type,style}:
//
//	{0}                          default rendering of argument 0
//	{0,number}                   locale decimal, "1,043.568"
//	{0,number,integer}           no fraction digits
//	{0,number,currency}          currency of the locale's region, "$1,043.57"
//	{0,number,percent}           "25%"
//	{0,number,#,##0.00}          custom decimal pattern
//	{1,date} {1,time,short}      short, medium (default), long or full
//	{1,date,yyyy-MM-dd}          custom date pattern
//	{0,choice,0#none|1#one|1<{0} items}
//	{0,plural,=0{none} one{# item} other{# items}}
//	{name}                       named argument from an i18n.Params value
//
// Single quotes escape: '{' is a literal brace and '' a literal quote.
// Pass i18n.Money to format an explicit currency.
//
// Numbers, currency symbols and plural categories come from
// golang.org/x/text; date styles, month and weekday names and the currency
// symbol placement come from the CLDR locales of github.com/go-playground/locales.
// Locales without calendar data use English.
//
// # Accept-Language Header
//
// ParseAcceptLanguage orders the tags of a header by quality;
// MatchAcceptLanguage picks the best supported locale:
//
//	tag, ok := i18n.MatchAcceptLanguage("es-ES,es;q=0.9,en;q=0.8", supported)
//
// # Thread Safety
//
// Lookups may run concurrently; loaded files and compiled patterns are cached.
// SetBaseName, SetSearchLocation and Configure drop the cache but are not
// synchronized with lookups running at the same time.
package i18n
