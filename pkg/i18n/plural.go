package i18n

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
)

// Plural category constants as defined by Unicode CLDR.
// Not all languages use all categories.
const (
	PluralZero  = "zero"
	PluralOne   = "one"
	PluralTwo   = "two"
	PluralFew   = "few"
	PluralMany  = "many"
	PluralOther = "other"
)

// PluralCategory returns the CLDR cardinal category of n in the language of
// tag. n is taken as rendered by "#": at most three fraction digits with
// trailing zeros dropped, so 1.5 is "one" in French and "other" in English.
func PluralCategory(tag language.Tag, n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return PluralOther
	}
	i, v, f := pluralOperands(n)
	switch plural.Cardinal.MatchPlural(tag, i, v, v, f, f) {
	case plural.Zero:
		return PluralZero
	case plural.One:
		return PluralOne
	case plural.Two:
		return PluralTwo
	case plural.Few:
		return PluralFew
	case plural.Many:
		return PluralMany
	default:
		return PluralOther
	}
}

// pluralOperands splits |n| into its integer digits i, the number of visible
// fraction digits v and their value f. Integer parts above seven digits keep
// their last six digits, enough for every modulus the rules use.
func pluralOperands(n float64) (i, v, f int) {
	s := strconv.FormatFloat(math.Abs(n), 'f', 3, 64)
	whole, frac, _ := strings.Cut(s, ".")
	frac = strings.TrimRight(frac, "0")

	if len(whole) > 7 {
		whole = whole[len(whole)-6:]
		i = 1_000_000
	}
	w, _ := strconv.Atoi(whole)
	i += w

	if frac != "" {
		v = len(frac)
		f, _ = strconv.Atoi(frac)
	}
	return i, v, f
}

// pluralFormat selects a sub-pattern by plural category or exact value:
// "=0{no files} one{# file} other{# files}".
type pluralFormat struct {
	exact map[float64]*pattern
	forms map[string]*pattern
}

func parsePlural(style string) (*pluralFormat, error) {
	pf := &pluralFormat{
		exact: make(map[float64]*pattern),
		forms: make(map[string]*pattern),
	}

	s := strings.TrimSpace(style)
	for s != "" {
		open := strings.IndexByte(s, '{')
		if open < 0 {
			return nil, fmt.Errorf("%w: plural selector %q has no message", ErrMalformedPattern, s)
		}
		end := matchingBrace(s, open)
		if end < 0 {
			return nil, fmt.Errorf("%w: unmatched braces in plural %q", ErrMalformedPattern, style)
		}

		msg, err := compilePattern(s[open+1 : end])
		if err != nil {
			return nil, err
		}
		msg = msg.withPound()

		switch sel := strings.TrimSpace(s[:open]); {
		case strings.HasPrefix(sel, "="):
			v, err := strconv.ParseFloat(sel[1:], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid plural selector %q", ErrMalformedPattern, sel)
			}
			pf.exact[v] = msg
		case isPluralCategory(sel):
			pf.forms[sel] = msg
		default:
			return nil, fmt.Errorf("%w: invalid plural selector %q", ErrMalformedPattern, sel)
		}

		s = strings.TrimSpace(s[end+1:])
	}

	if pf.forms[PluralOther] == nil {
		return nil, fmt.Errorf("%w: plural %q has no 'other' message", ErrMalformedPattern, style)
	}
	return pf, nil
}

func (pf *pluralFormat) choose(tag language.Tag, x float64) *pattern {
	if p, ok := pf.exact[x]; ok {
		return p
	}

	form := PluralCategory(tag, x)
	if p, ok := pf.forms[form]; ok {
		return p
	}
	for _, fallback := range pluralFallbackForms(form) {
		if p, ok := pf.forms[fallback]; ok {
			return p
		}
	}
	return pf.forms[PluralOther]
}

func pluralFallbackForms(form string) []string {
	switch form {
	case PluralTwo:
		return []string{PluralFew, PluralMany}
	case PluralFew:
		return []string{PluralMany}
	default:
		return nil
	}
}

func isPluralCategory(s string) bool {
	switch s {
	case PluralZero, PluralOne, PluralTwo, PluralFew, PluralMany, PluralOther:
		return true
	}
	return false
}

// matchingBrace returns the index of the '}' closing the '{' at open, or -1.
func matchingBrace(s string, open int) int {
	depth := 0
	inQuote := false
	for i := open; i < len(s); i++ {
		switch c := s[i]; {
		case c == '\'':
			inQuote = !inQuote
		case inQuote:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
