package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// DefaultFallbackLocale is consulted when a requested locale has no catalog file of its own.
var DefaultFallbackLocale = language.English

// ParseLocale parses a BCP 47 language tag ("en", "en-US", "zh-Hant-TW").
// Underscores are accepted as subtag separators ("de_DE").
func ParseLocale(s string) (language.Tag, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, "_", "-"))
	if s == "" {
		return language.Und, fmt.Errorf("%w: empty tag", ErrInvalidLocale)
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und, fmt.Errorf("%w: %q: %s", ErrInvalidLocale, s, err)
	}
	return tag, nil
}

// MustParseLocale is like ParseLocale but panics on error.
func MustParseLocale(s string) language.Tag {
	tag, err := ParseLocale(s)
	if err != nil {
		panic(err)
	}
	return tag
}

// subtags splits a tag into language, script, region and variants.
// Extensions (-u-, -x-, ...) are dropped: they never select a catalog file.
func subtags(tag language.Tag) (lang, script, region string, variants []string) {
	parts := strings.Split(tag.String(), "-")
	lang = parts[0]
	for _, p := range parts[1:] {
		switch {
		case len(p) == 1:
			return lang, script, region, variants
		case len(p) == 4 && isAlpha(p) && script == "" && region == "" && len(variants) == 0:
			script = p
		case (len(p) == 2 && isAlpha(p)) || (len(p) == 3 && isDigit(p)):
			if region == "" && len(variants) == 0 {
				region = p
				continue
			}
			variants = append(variants, p)
		default:
			variants = append(variants, p)
		}
	}
	return lang, script, region, variants
}

// candidateSuffixes returns file suffixes for tag, most specific first,
// without the root (empty) suffix.
func candidateSuffixes(tag language.Tag) []string {
	lang, script, region, variants := subtags(tag)
	if lang == "" || lang == "und" {
		return nil
	}
	variant := strings.Join(variants, "_")

	var out []string
	add := func(segs ...string) {
		var b strings.Builder
		for _, s := range segs {
			if s == "" {
				continue
			}
			b.WriteByte('_')
			b.WriteString(s)
		}
		out = append(out, b.String())
	}

	if script != "" {
		if region != "" && variant != "" {
			add(lang, script, region, variant)
		}
		if region != "" {
			add(lang, script, region)
		}
		add(lang, script)
	}
	if region != "" && variant != "" {
		add(lang, region, variant)
	}
	if region != "" {
		add(lang, region)
	}
	add(lang)
	return out
}

// localeFromSuffix turns "_de_DE" back into a tag. The root suffix maps to language.Und.
func localeFromSuffix(suffix string) (language.Tag, bool) {
	suffix = strings.TrimPrefix(suffix, "_")
	if suffix == "" {
		return language.Und, true
	}
	tag, err := language.Parse(strings.ReplaceAll(suffix, "_", "-"))
	if err != nil {
		return language.Und, false
	}
	return tag, true
}

func isAlpha(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

func isDigit(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
