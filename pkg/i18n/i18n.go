package i18n

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/crossroads/pkg/cache"
	"github.com/dmitrymomot/crossroads/pkg/logger"
)

// DefaultBaseName is the catalog base name used when none is configured.
const DefaultBaseName = "I18n"

const maxFormatters = 256

// Catalog resolves message patterns by key and locale through a fallback chain
// of catalog files and formats them with locale rules.
//
// Lookups are safe for concurrent use. Reconfiguration (SetBaseName,
// SetSearchLocation, Configure) is not synchronized with in-flight lookups;
// reconfigure during startup or while no requests are being served.
type Catalog struct {
	bundled fs.FS
	search  fs.FS
	files   *cache.Memory[*catalogFile]
	logger  *slog.Logger

	// Called when a key is not found in any file of the chain.
	missingKeyHandler func(key string, locale language.Tag)

	// Formatters keyed by language, script and region.
	formatters *cache.Memory[*formatter]

	baseName       string
	searchLocation string
	id             string
	generation     atomic.Uint64
	fallback       language.Tag
	reload         time.Duration
	maxFiles       int
}

// Message is the result of Find.
type Message struct {
	// Text is the formatted message, or the key when Found is false.
	Text string
	Key  string
	// Locale is the requested locale; Source is the locale of the file that
	// defined the key (language.Und for the root file).
	Locale language.Tag
	Source language.Tag
	Found  bool
}

// Option configures the Catalog during construction.
type Option func(*Catalog) error

// New creates a catalog. Without options it reads "I18n" catalogs from the
// bundled file system, which must then be set with WithFS or WithSearchLocation.
func New(opts ...Option) (*Catalog, error) {
	c := &Catalog{
		baseName: DefaultBaseName,
		fallback: DefaultFallbackLocale,
		logger:   logger.NewNope(),
		id:       uuid.NewString(),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	fileOpts := []cache.Option{cache.WithMaxEntries(c.maxFiles)}
	if c.reload > 0 {
		fileOpts = append(fileOpts, cache.WithDefaultTTL(c.reload), cache.WithCleanupInterval(c.reload))
	}
	c.files = cache.NewMemory[*catalogFile](fileOpts...)
	c.formatters = cache.NewMemory[*formatter](cache.WithMaxEntries(maxFormatters))

	return c, nil
}

// WithBaseName sets the catalog base name. Dots map to directories: "app.I18n"
// reads "app/I18n_<locale>.<ext>".
func WithBaseName(baseName string) Option {
	return func(c *Catalog) error {
		return c.setBaseName(baseName)
	}
}

// WithSearchLocation adds a directory that is searched before the bundled file system.
func WithSearchLocation(dir string) Option {
	return func(c *Catalog) error {
		return c.setSearchLocation(dir)
	}
}

// WithFS sets the bundled catalog set, typically an embed.FS.
func WithFS(fsys fs.FS) Option {
	return func(c *Catalog) error {
		c.bundled = fsys
		return nil
	}
}

// WithFallbackLocale sets the locale consulted when the requested locale has no
// file of its own. Default: English.
func WithFallbackLocale(tag language.Tag) Option {
	return func(c *Catalog) error {
		c.fallback = tag
		return nil
	}
}

// WithLogger sets the logger used for missing keys and catalog loads.
func WithLogger(l *slog.Logger) Option {
	return func(c *Catalog) error {
		if l != nil {
			c.logger = l
		}
		return nil
	}
}

// WithMissingKeyHandler sets a function called when a key is not found in any
// file of the fallback chain. Useful for collecting untranslated keys.
func WithMissingKeyHandler(handler func(key string, locale language.Tag)) Option {
	return func(c *Catalog) error {
		c.missingKeyHandler = handler
		return nil
	}
}

// WithReloadInterval makes loaded files expire after d, so edits on disk are
// picked up. Zero caches files until the catalog is reconfigured.
func WithReloadInterval(d time.Duration) Option {
	return func(c *Catalog) error {
		c.reload = max(d, 0)
		return nil
	}
}

// WithMaxCachedFiles bounds the number of loaded files kept in memory.
// Zero means unbounded.
func WithMaxCachedFiles(n int) Option {
	return func(c *Catalog) error {
		c.maxFiles = max(n, 0)
		return nil
	}
}

// Configure sets both the base name and the search location. Nothing changes
// when either value is invalid.
func (c *Catalog) Configure(baseName, searchLocation string) error {
	if err := validateBaseName(baseName); err != nil {
		return err
	}
	search, err := openSearchLocation(searchLocation)
	if err != nil {
		return err
	}

	c.baseName = baseName
	c.searchLocation = searchLocation
	c.search = search
	c.invalidate()
	return nil
}

// SetBaseName switches the catalog to another base name.
// Subsequent lookups resolve against the new name.
func (c *Catalog) SetBaseName(baseName string) error {
	if err := c.setBaseName(baseName); err != nil {
		return err
	}
	c.invalidate()
	return nil
}

// SetSearchLocation sets the directory searched before the bundled file system.
// An empty dir clears it.
func (c *Catalog) SetSearchLocation(dir string) error {
	if err := c.setSearchLocation(dir); err != nil {
		return err
	}
	c.invalidate()
	return nil
}

// BaseName returns the configured base name.
func (c *Catalog) BaseName() string { return c.baseName }

// SearchLocation returns the configured search directory, or "".
func (c *Catalog) SearchLocation() string { return c.searchLocation }

// FallbackLocale returns the locale consulted for locales without files.
func (c *Catalog) FallbackLocale() language.Tag { return c.fallback }

// Close releases the file and formatter caches.
func (c *Catalog) Close() error {
	return errors.Join(c.files.Close(), c.formatters.Close())
}

// Lookup formats the message stored under key for locale.
//
// A key missing from every file in the chain is logged as a warning and
// returned unchanged with a nil error. ErrCatalogNotFound is returned when no
// file of the chain exists. Pattern and argument errors are returned as is.
func (c *Catalog) Lookup(key string, locale language.Tag, args ...any) (string, error) {
	return c.LookupContext(context.Background(), key, locale, args...)
}

// LookupContext is Lookup with a context for logging and loading.
func (c *Catalog) LookupContext(ctx context.Context, key string, locale language.Tag, args ...any) (string, error) {
	msg, err := c.FindContext(ctx, key, locale, args...)
	if err != nil {
		return key, err
	}
	if !msg.Found {
		c.logger.WarnContext(ctx, "message key not found",
			slog.String("key", key),
			slog.String("locale", locale.String()),
			slog.String("base_name", c.baseName),
		)
		if c.missingKeyHandler != nil {
			c.missingKeyHandler(key, locale)
		}
	}
	return msg.Text, nil
}

// Find is like Lookup but reports a missing key through Message.Found
// instead of logging it.
func (c *Catalog) Find(key string, locale language.Tag, args ...any) (Message, error) {
	return c.FindContext(context.Background(), key, locale, args...)
}

// FindContext is Find with a context for loading.
func (c *Catalog) FindContext(ctx context.Context, key string, locale language.Tag, args ...any) (Message, error) {
	msg := Message{Text: key, Key: key, Locale: locale}

	files, err := c.chain(ctx, locale)
	if err != nil {
		return msg, err
	}

	for _, f := range files {
		raw, ok := f.messages[key]
		if !ok {
			continue
		}
		p, err := f.pattern(key, raw)
		if err != nil {
			return msg, fmt.Errorf("key %q in %s: %w", key, f.name, err)
		}
		text, err := p.format(c.formatter(locale), args)
		if err != nil {
			return msg, fmt.Errorf("key %q in %s: %w", key, f.name, err)
		}

		msg.Text = text
		msg.Source = f.locale
		msg.Found = true
		return msg, nil
	}

	return msg, nil
}

// Locales lists the locales that have a catalog file for the base name.
// The root file is reported as language.Und.
func (c *Catalog) Locales() ([]language.Tag, error) {
	seen := make(map[string]language.Tag)
	for _, fsys := range c.sources() {
		suffixes, err := listSuffixes(fsys, c.baseName)
		if err != nil {
			return nil, err
		}
		for _, s := range suffixes {
			if tag, ok := localeFromSuffix(s); ok {
				seen[s] = tag
			}
		}
	}

	tags := slices.Collect(maps.Values(seen))
	slices.SortFunc(tags, func(a, b language.Tag) int {
		return cmp.Compare(a.String(), b.String())
	})
	return tags, nil
}

// Keys returns the sorted keys defined directly in the file for locale,
// without walking the fallback chain. language.Und selects the root file.
func (c *Catalog) Keys(locale language.Tag) ([]string, error) {
	suffix := ""
	if cands := candidateSuffixes(locale); len(cands) > 0 {
		suffix = cands[0]
	}

	f, err := c.file(context.Background(), suffix)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, fmt.Errorf("%w: %s%s", ErrCatalogNotFound, c.baseName, suffix)
	}

	keys := slices.Collect(maps.Keys(f.messages))
	slices.Sort(keys)
	return keys, nil
}

// chain returns the existing files for locale, most specific first.
func (c *Catalog) chain(ctx context.Context, locale language.Tag) ([]*catalogFile, error) {
	var files []*catalogFile

	add := func(suffixes []string) error {
		for _, s := range suffixes {
			f, err := c.file(ctx, s)
			if err != nil {
				return err
			}
			if f != nil {
				files = append(files, f)
			}
		}
		return nil
	}

	if err := add(candidateSuffixes(locale)); err != nil {
		return nil, err
	}
	if len(files) == 0 && c.fallback != locale {
		if err := add(candidateSuffixes(c.fallback)); err != nil {
			return nil, err
		}
	}
	if err := add([]string{""}); err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: base name %q, locale %s", ErrCatalogNotFound, c.baseName, locale)
	}
	return files, nil
}

// file loads baseName+suffix once per configuration. A nil file means
// no such file exists and is cached as well.
func (c *Catalog) file(ctx context.Context, suffix string) (*catalogFile, error) {
	key := c.id + ":" + strconv.FormatUint(c.generation.Load(), 10) + ":" + c.baseName + suffix
	baseName := c.baseName

	return cache.GetOrSet(ctx, c.files, key, func(ctx context.Context) (*catalogFile, time.Duration, error) {
		for _, fsys := range c.sources() {
			f, err := readCatalogFile(fsys, baseName, suffix)
			if err != nil {
				return nil, 0, err
			}
			if f != nil {
				c.logger.DebugContext(ctx, "catalog file loaded",
					slog.String("file", f.name),
					slog.Int("messages", len(f.messages)),
				)
				return f, 0, nil
			}
		}
		return nil, 0, nil
	})
}

// sources returns the file systems to search, search location first.
func (c *Catalog) sources() []fs.FS {
	out := make([]fs.FS, 0, 2)
	if c.search != nil {
		out = append(out, c.search)
	}
	if c.bundled != nil {
		out = append(out, c.bundled)
	}
	return out
}

// formatter returns the formatter for the language, script and region of
// locale. Variants and extensions do not change formatting and are ignored,
// so arbitrary client tags cannot grow the cache.
func (c *Catalog) formatter(locale language.Tag) *formatter {
	key := formatterKey(locale)
	if f, err := c.formatters.Get(context.Background(), key); err == nil {
		return f
	}

	tag, err := language.Parse(key)
	if err != nil {
		tag = language.Und
	}
	f := newFormatter(tag)
	_ = c.formatters.Set(context.Background(), key, f, 0)
	return f
}

func formatterKey(locale language.Tag) string {
	lang, script, region, _ := subtags(locale)
	if lang == "" {
		return "und"
	}
	key := lang
	if script != "" {
		key += "-" + script
	}
	if region != "" {
		key += "-" + region
	}
	return key
}

// invalidate drops every loaded file. The generation bump keeps loads that
// were in flight during the change from being served afterwards.
func (c *Catalog) invalidate() {
	c.generation.Add(1)
	_ = c.files.Clear(context.Background())
}

func (c *Catalog) setBaseName(baseName string) error {
	if err := validateBaseName(baseName); err != nil {
		return err
	}
	c.baseName = baseName
	return nil
}

func (c *Catalog) setSearchLocation(dir string) error {
	search, err := openSearchLocation(dir)
	if err != nil {
		return err
	}
	c.searchLocation = dir
	c.search = search
	return nil
}

func validateBaseName(baseName string) error {
	if baseName == "" {
		return ErrEmptyBaseName
	}
	if !fs.ValidPath(resourceName(baseName)) {
		return fmt.Errorf("%w: %q", ErrInvalidBaseName, baseName)
	}
	return nil
}

func openSearchLocation(dir string) (fs.FS, error) {
	if dir == "" {
		return nil, nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q does not exist", ErrInvalidSearchLocation, dir)
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidSearchLocation, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %q is not a directory", ErrInvalidSearchLocation, dir)
	}
	return os.DirFS(dir), nil
}
