// Command crossroads inspects message catalogs.
//
//	crossroads lookup [-dir DIR] [-base NAME] [-locale TAG] KEY [ARG...]
//	crossroads status [-dir DIR] [-base NAME] [-json]
//
// lookup prints a formatted message; numeric arguments are passed as numbers.
// status reports, per locale, the root keys that the locale does not translate.
// Defaults come from I18N_BUNDLE_PATH, I18N_BASE_NAME and I18N_DEFAULT_LOCALE.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/crossroads/pkg/i18n"
	"github.com/dmitrymomot/crossroads/pkg/logger"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}

	cfg, err := i18n.LoadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "load config: %v\n", err)
		return 1
	}

	switch args[0] {
	case "lookup":
		err = lookup(cfg, args[1:], stdout, stderr)
	case "status":
		err = status(cfg, args[1:], stdout, stderr)
	case "-h", "-help", "--help", "help":
		usage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", args[0])
		usage(stderr)
		return 2
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, errUsage):
		if err != errUsage {
			fmt.Fprintf(stderr, "crossroads %s: %v\n", args[0], err)
		}
		return 2
	default:
		fmt.Fprintf(stderr, "crossroads %s: %v\n", args[0], err)
		return 1
	}
}

var errUsage = errors.New("usage")

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage:")
	fmt.Fprintln(w, "  crossroads lookup [-dir DIR] [-base NAME] [-locale TAG] KEY [ARG...]")
	fmt.Fprintln(w, "  crossroads status [-dir DIR] [-base NAME] [-json]")
}

// catalogFlags registers the flags shared by all commands.
func catalogFlags(fs *flag.FlagSet, cfg *i18n.Config, level *string) {
	fs.StringVar(&cfg.BundlePath, "dir", cfg.BundlePath, "directory holding the catalog files")
	fs.StringVar(&cfg.BaseName, "base", cfg.BaseName, "catalog base name")
	fs.StringVar(level, "log-level", "warn", "log level: debug, info, warn or error")
}

func openCatalog(cfg i18n.Config, level string, stderr io.Writer) (*i18n.Catalog, error) {
	if !cfg.HasBundlePath() {
		return nil, fmt.Errorf("%w: -dir or I18N_BUNDLE_PATH is required", errUsage)
	}
	log := logger.New(
		logger.WithFormat(logger.FormatText),
		logger.WithOutput(stderr),
		logger.WithLevel(logger.ParseLevel(level)),
	)
	return i18n.FromConfig(cfg, i18n.WithLogger(log))
}

func lookup(cfg i18n.Config, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("lookup", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var level, localeTag string
	catalogFlags(fs, &cfg, &level)
	fs.StringVar(&localeTag, "locale", cfg.DefaultLocale, "locale to look the key up for")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, "lookup: KEY is required")
		return errUsage
	}

	locale := language.English
	if localeTag != "" {
		tag, err := i18n.ParseLocale(localeTag)
		if err != nil {
			return err
		}
		locale = tag
	}

	c, err := openCatalog(cfg, level, stderr)
	if err != nil {
		return err
	}
	defer c.Close()

	msg, err := c.Find(fs.Arg(0), locale, parseArgs(fs.Args()[1:])...)
	if err != nil {
		return err
	}
	if !msg.Found {
		return fmt.Errorf("key %q not found for %s", msg.Key, locale)
	}
	fmt.Fprintln(stdout, msg.Text)
	return nil
}

// parseArgs turns numeric command-line arguments into numbers.
func parseArgs(raw []string) []any {
	out := make([]any, len(raw))
	for i, s := range raw {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			out[i] = n
		} else if f, err := strconv.ParseFloat(s, 64); err == nil {
			out[i] = f
		} else {
			out[i] = s
		}
	}
	return out
}

type localeStatus struct {
	Locale      string   `json:"locale"`
	Translated  int      `json:"translated"`
	Missing     int      `json:"missing"`
	MissingKeys []string `json:"missing_keys"`
}

type report struct {
	BaseName string         `json:"base_name"`
	RootKeys int            `json:"root_keys"`
	Locales  []localeStatus `json:"locales"`
}

func status(cfg i18n.Config, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var level string
	var asJSON bool
	catalogFlags(fs, &cfg, &level)
	fs.BoolVar(&asJSON, "json", false, "print the report as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c, err := openCatalog(cfg, level, stderr)
	if err != nil {
		return err
	}
	defer c.Close()

	rep, err := buildReport(c)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	fmt.Fprintf(stdout, "%s: %d root keys\n", rep.BaseName, rep.RootKeys)
	for _, l := range rep.Locales {
		fmt.Fprintf(stdout, "%-10s %d translated, %d missing\n", l.Locale, l.Translated, l.Missing)
		for _, k := range l.MissingKeys {
			fmt.Fprintf(stdout, "  - %s\n", k)
		}
	}
	return nil
}

// buildReport compares every locale with the root catalog. A locale counts
// the keys of its less specific parents, so de-AT inherits from de.
func buildReport(c *i18n.Catalog) (report, error) {
	rootKeys, err := c.Keys(language.Und)
	if err != nil {
		return report{}, err
	}

	locales, err := c.Locales()
	if err != nil {
		return report{}, err
	}

	rep := report{BaseName: c.BaseName(), RootKeys: len(rootKeys)}
	for _, tag := range locales {
		if tag == language.Und {
			continue
		}

		have := make(map[string]bool)
		for t := tag; t != language.Und; t = t.Parent() {
			keys, err := c.Keys(t)
			if errors.Is(err, i18n.ErrCatalogNotFound) {
				continue
			}
			if err != nil {
				return report{}, err
			}
			for _, k := range keys {
				have[k] = true
			}
		}

		st := localeStatus{Locale: tag.String(), MissingKeys: []string{}}
		for _, k := range rootKeys {
			if have[k] {
				st.Translated++
			} else {
				st.MissingKeys = append(st.MissingKeys, k)
			}
		}
		st.Missing = len(st.MissingKeys)
		rep.Locales = append(rep.Locales, st)
	}

	slices.SortStableFunc(rep.Locales, func(a, b localeStatus) int {
		return b.Missing - a.Missing
	})
	return rep, nil
}
