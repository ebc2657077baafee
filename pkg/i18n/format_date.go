package i18n

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/ar"
	"github.com/go-playground/locales/bg"
	"github.com/go-playground/locales/ca"
	"github.com/go-playground/locales/cs"
	"github.com/go-playground/locales/da"
	"github.com/go-playground/locales/de"
	"github.com/go-playground/locales/de_AT"
	"github.com/go-playground/locales/de_CH"
	"github.com/go-playground/locales/el"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/en_AU"
	"github.com/go-playground/locales/en_CA"
	"github.com/go-playground/locales/en_GB"
	"github.com/go-playground/locales/es"
	"github.com/go-playground/locales/es_MX"
	"github.com/go-playground/locales/et"
	"github.com/go-playground/locales/fi"
	"github.com/go-playground/locales/fr"
	"github.com/go-playground/locales/fr_CA"
	"github.com/go-playground/locales/fr_CH"
	"github.com/go-playground/locales/he"
	"github.com/go-playground/locales/hi"
	"github.com/go-playground/locales/hr"
	"github.com/go-playground/locales/hu"
	"github.com/go-playground/locales/id"
	"github.com/go-playground/locales/it"
	"github.com/go-playground/locales/ja"
	"github.com/go-playground/locales/ko"
	"github.com/go-playground/locales/lt"
	"github.com/go-playground/locales/lv"
	"github.com/go-playground/locales/ms"
	"github.com/go-playground/locales/nb"
	"github.com/go-playground/locales/nl"
	"github.com/go-playground/locales/pl"
	"github.com/go-playground/locales/pt"
	"github.com/go-playground/locales/pt_PT"
	"github.com/go-playground/locales/ro"
	"github.com/go-playground/locales/ru"
	"github.com/go-playground/locales/sk"
	"github.com/go-playground/locales/sl"
	"github.com/go-playground/locales/sr"
	"github.com/go-playground/locales/sv"
	"github.com/go-playground/locales/th"
	"github.com/go-playground/locales/tr"
	"github.com/go-playground/locales/uk"
	"github.com/go-playground/locales/vi"
	"github.com/go-playground/locales/zh"
	"github.com/go-playground/locales/zh_Hant"
	"golang.org/x/text/language"
)

// calendarLocales are the CLDR locales used for calendar and currency
// layouts. The first entry is used when nothing else matches.
var calendarLocales = []func() locales.Translator{
	en.New, en_AU.New, en_CA.New, en_GB.New,
	ar.New, bg.New, ca.New, cs.New, da.New,
	de.New, de_AT.New, de_CH.New, el.New,
	es.New, es_MX.New, et.New, fi.New,
	fr.New, fr_CA.New, fr_CH.New, he.New, hi.New, hr.New, hu.New,
	id.New, it.New, ja.New, ko.New, lt.New, lv.New, ms.New, nb.New, nl.New,
	pl.New, pt.New, pt_PT.New, ro.New, ru.New, sk.New, sl.New, sr.New, sv.New,
	th.New, tr.New, uk.New, vi.New, zh.New, zh_Hant.New,
}

var calendars = sync.OnceValues(func() ([]locales.Translator, language.Matcher) {
	trans := make([]locales.Translator, len(calendarLocales))
	tags := make([]language.Tag, len(calendarLocales))
	for i, newLocale := range calendarLocales {
		trans[i] = newLocale()
		tags[i] = language.MustParse(strings.ReplaceAll(trans[i].Locale(), "_", "-"))
	}
	return trans, language.NewMatcher(tags)
})

// calendarFor returns the closest CLDR locale for tag, or English.
func calendarFor(tag language.Tag) locales.Translator {
	trans, matcher := calendars()
	_, i, conf := matcher.Match(tag)
	if conf == language.No {
		return trans[0]
	}
	return trans[i]
}

// affixes returns the text before the first and after the last digit of s.
func affixes(s string) (prefix, suffix string, ok bool) {
	first := strings.IndexFunc(s, unicode.IsDigit)
	if first < 0 {
		return "", "", false
	}
	last := strings.LastIndexFunc(s, unicode.IsDigit)
	return s[:first], s[last+1:], true
}

// dayPeriod extracts the am/pm marker from the locale's short time at hour.
// Locales with a 24-hour clock have none.
func dayPeriod(cal locales.Translator, hour int) string {
	prefix, suffix, ok := affixes(cal.FmtTimeShort(time.Date(2000, time.January, 1, hour, 0, 0, 0, time.UTC)))
	if !ok {
		return ""
	}
	return strings.TrimSpace(strings.TrimSpace(prefix) + " " + strings.TrimSpace(suffix))
}

// dateToken is either a literal or a pattern field such as "yyyy" or "MMM".
type dateToken struct {
	literal string
	letter  byte
	count   int
}

func (f *formatter) formatTime(a *argument, t time.Time) string {
	if a.date != nil {
		return f.render(a.date, t)
	}
	if a.kind == argTime {
		return f.timeStyle(a.style, t)
	}
	return f.dateStyle(a.style, t)
}

// dateStyle renders t in one of the short, medium, long or full date styles.
// Anything else is medium.
func (f *formatter) dateStyle(style string, t time.Time) string {
	switch style {
	case StyleShort:
		return f.calendar.FmtDateShort(t)
	case StyleLong:
		return f.calendar.FmtDateLong(t)
	case StyleFull:
		return f.calendar.FmtDateFull(t)
	default:
		return f.calendar.FmtDateMedium(t)
	}
}

func (f *formatter) timeStyle(style string, t time.Time) string {
	switch style {
	case StyleShort:
		return f.calendar.FmtTimeShort(t)
	case StyleLong:
		return f.calendar.FmtTimeLong(t)
	case StyleFull:
		return f.calendar.FmtTimeFull(t)
	default:
		return f.calendar.FmtTimeMedium(t)
	}
}

// dateTime is the short date followed by the short time.
func (f *formatter) dateTime(t time.Time) string {
	return f.calendar.FmtDateShort(t) + ", " + f.calendar.FmtTimeShort(t)
}

func (f *formatter) render(tokens []dateToken, t time.Time) string {
	var b strings.Builder
	for _, tok := range tokens {
		if tok.letter == 0 {
			b.WriteString(tok.literal)
			continue
		}
		b.WriteString(f.field(tok, t))
	}
	return b.String()
}

func (f *formatter) field(tok dateToken, t time.Time) string {
	switch tok.letter {
	case 'y':
		if tok.count == 2 {
			return pad(t.Year()%100, 2)
		}
		return pad(t.Year(), tok.count)
	case 'M', 'L':
		switch {
		case tok.count >= 4:
			return f.calendar.MonthWide(t.Month())
		case tok.count == 3:
			return f.calendar.MonthAbbreviated(t.Month())
		default:
			return pad(int(t.Month()), tok.count)
		}
	case 'd':
		return pad(t.Day(), tok.count)
	case 'E':
		if tok.count >= 4 {
			return f.calendar.WeekdayWide(t.Weekday())
		}
		return f.calendar.WeekdayAbbreviated(t.Weekday())
	case 'H':
		return pad(t.Hour(), tok.count)
	case 'h':
		h := t.Hour() % 12
		if h == 0 {
			h = 12
		}
		return pad(h, tok.count)
	case 'm':
		return pad(t.Minute(), tok.count)
	case 's':
		return pad(t.Second(), tok.count)
	case 'S':
		return pad(t.Nanosecond()/int(time.Millisecond), tok.count)
	case 'a':
		if t.Hour() < 12 {
			return f.am
		}
		return f.pm
	case 'z':
		return t.Format("MST")
	case 'Z':
		return t.Format("-0700")
	}
	return ""
}

func pad(n, width int) string {
	s := strconv.Itoa(n)
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

const dateLetters = "yMLdEHhmsSazZ"

// compileDatePattern parses a date pattern ("d MMMM y", "HH:mm 'Uhr'").
// ASCII letters are fields; quoted text and every other character are literals.
func compileDatePattern(s string) ([]dateToken, error) {
	var (
		tokens []dateToken
		lit    strings.Builder
	)
	flush := func() {
		if lit.Len() > 0 {
			tokens = append(tokens, dateToken{literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == '\'':
			if i+1 < len(s) && s[i+1] == '\'' {
				lit.WriteByte('\'')
				i += 2
				continue
			}
			// Quoted text runs to the next lone quote; '' inside it is a quote.
			for i++; i < len(s); i++ {
				if s[i] != '\'' {
					lit.WriteByte(s[i])
					continue
				}
				if i+1 < len(s) && s[i+1] == '\'' {
					lit.WriteByte('\'')
					i++
					continue
				}
				i++
				break
			}
		case (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
			if !strings.ContainsRune(dateLetters, rune(c)) {
				return nil, fmt.Errorf("%w: illegal date pattern character %q in %q", ErrMalformedPattern, c, s)
			}
			j := i
			for j < len(s) && s[j] == c {
				j++
			}
			flush()
			tokens = append(tokens, dateToken{letter: c, count: j - i})
			i = j
		default:
			lit.WriteByte(c)
			i++
		}
	}
	flush()

	return tokens, nil
}
