package i18n

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/locales"
	lpcurrency "github.com/go-playground/locales/currency"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Money is an amount in an explicit currency. Without it, the currency
// style uses the currency of the locale's region.
type Money struct {
	Currency currency.Unit
	Value    float64
}

// formatter renders placeholder arguments for one locale.
type formatter struct {
	printer  *message.Printer
	calendar locales.Translator
	tag      language.Tag

	am, pm string

	// Currency layout: the symbol goes before the amount when symbolFirst,
	// separated by symbolSpace.
	symbolFirst bool
	symbolSpace string
}

func newFormatter(tag language.Tag) *formatter {
	cal := calendarFor(tag)
	f := &formatter{
		printer:  message.NewPrinter(tag),
		calendar: cal,
		tag:      tag,
		am:       dayPeriod(cal, 1),
		pm:       dayPeriod(cal, 13),
	}
	if f.am == "" || f.pm == "" {
		f.am, f.pm = "AM", "PM"
	}

	// The layout is read off a sample amount: the symbol sits in whichever
	// affix has more than spacing.
	prefix, suffix, _ := affixes(cal.FmtCurrency(1, 2, lpcurrency.USD))
	if strings.TrimSpace(prefix) != "" {
		f.symbolFirst = true
		f.symbolSpace = spacing(prefix)
	} else {
		f.symbolSpace = spacing(suffix)
	}
	return f
}

// spacing keeps only the whitespace of s.
func spacing(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
}

func (f *formatter) formatArg(a *argument, v any, args []any) (string, error) {
	switch a.kind {
	case argNumber:
		return f.formatNumber(a, v)
	case argDate, argTime:
		t, ok := toTime(v)
		if !ok {
			return "", fmt.Errorf("%w: argument %s (%T) is not a time", ErrArgumentType, a.ref(), v)
		}
		return f.formatTime(a, t), nil
	case argChoice:
		x, ok := toFloat(v)
		if !ok {
			return "", fmt.Errorf("%w: argument %s (%T) is not a number", ErrArgumentType, a.ref(), v)
		}
		return a.choice.choose(x).format(f, args)
	case argPlural:
		x, ok := toFloat(v)
		if !ok {
			return "", fmt.Errorf("%w: argument %s (%T) is not a number", ErrArgumentType, a.ref(), v)
		}
		return a.plural.choose(f.tag, x).render(f, args, f.decimal(x, 0, 3))
	default:
		return f.formatDefault(v), nil
	}
}

// formatDefault renders an argument without a format type.
func (f *formatter) formatDefault(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case Money:
		return f.currency(x.Value, x.Currency)
	case time.Time:
		return f.dateTime(x)
	case *time.Time:
		if x != nil {
			return f.formatDefault(*x)
		}
	}
	if _, ok := toFloat(v); ok {
		return f.decimal(v, 0, 3)
	}
	return fmt.Sprint(v)
}

func (f *formatter) formatNumber(a *argument, v any) (string, error) {
	if m, ok := v.(Money); ok {
		return f.currency(m.Value, m.Currency), nil
	}

	x, ok := toFloat(v)
	if !ok {
		return "", fmt.Errorf("%w: argument %s (%T) is not a number", ErrArgumentType, a.ref(), v)
	}

	if a.number != nil {
		return f.custom(a.number, x), nil
	}

	switch a.style {
	case StyleInteger:
		return f.decimal(v, 0, 0), nil
	case StyleCurrency:
		return f.currency(x, f.localCurrency()), nil
	case StylePercent:
		return f.percent(v), nil
	default:
		return f.decimal(v, 0, 3), nil
	}
}

func (f *formatter) decimal(v any, minFrac, maxFrac int) string {
	return f.printer.Sprintf("%v", number.Decimal(v,
		number.MinFractionDigits(minFrac),
		number.MaxFractionDigits(maxFrac),
	))
}

func (f *formatter) percent(v any) string {
	return f.printer.Sprintf("%v", number.Percent(v))
}

func (f *formatter) custom(np *numberPattern, x float64) string {
	if np.percent {
		x *= 100
	}
	negative := x < 0
	s := f.decimal(math.Abs(x), np.minFrac, np.maxFrac)
	if !np.grouping {
		if sep := f.groupSeparator(); sep != "" {
			s = strings.ReplaceAll(s, sep, "")
		}
	}
	if negative {
		s = "-" + s
	}
	return np.prefix + s + np.suffix
}

// groupSeparator discovers the locale's grouping symbol by formatting 1000.
func (f *formatter) groupSeparator() string {
	s := []rune(f.printer.Sprintf("%v", number.Decimal(1000)))
	if len(s) == 5 {
		return string(s[1])
	}
	return ""
}

// currency formats amount with the unit's standard number of fraction digits,
// the unit's symbol in the formatter's language and the locale's placement.
func (f *formatter) currency(amount float64, unit currency.Unit) string {
	scale, _ := currency.Standard.Rounding(unit)
	num := f.decimal(math.Abs(amount), scale, scale)
	sym := f.printer.Sprint(currency.Symbol(unit))

	s := num + f.symbolSpace + sym
	if f.symbolFirst {
		s = sym + f.symbolSpace + num
	}
	if amount < 0 {
		s = "-" + s
	}
	return s
}

func (f *formatter) localCurrency() currency.Unit {
	unit, conf := currency.FromTag(f.tag)
	if conf == language.No {
		return currency.XXX
	}
	return unit
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	default:
		return 0, false
	}
}

func toTime(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, true
	case *time.Time:
		if x != nil {
			return *x, true
		}
	}
	return time.Time{}, false
}
