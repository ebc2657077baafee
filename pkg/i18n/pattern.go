package i18n

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type argKind int

const (
	argNone argKind = iota
	argNumber
	argDate
	argTime
	argChoice
	argPlural
)

// Number and date styles recognised in placeholders.
const (
	StyleInteger  = "integer"
	StyleCurrency = "currency"
	StylePercent  = "percent"
	StyleShort    = "short"
	StyleMedium   = "medium"
	StyleLong     = "long"
	StyleFull     = "full"
)

// pattern is a compiled message pattern: literal text interleaved with placeholders.
type pattern struct {
	segments []segment
}

type segment struct {
	arg     *argument
	literal string
	pound   bool // "#" inside a plural message
}

// argument is a single {index[,type[,style]]} or {name[,type[,style]]} placeholder.
type argument struct {
	choice *choiceFormat
	plural *pluralFormat
	number *numberPattern
	date   []dateToken
	name   string
	style  string
	index  int
	kind   argKind
}

// compilePattern parses src. Single quotes start and end literal sections;
// two consecutive quotes produce one literal quote.
func compilePattern(src string) (*pattern, error) {
	p := &pattern{}

	var (
		lit     strings.Builder
		seg     [4]strings.Builder // 1: index, 2: type, 3: style
		part    int
		braces  int
		inQuote bool
	)

	flushLiteral := func() {
		if lit.Len() > 0 {
			p.segments = append(p.segments, segment{literal: lit.String()})
			lit.Reset()
		}
	}

	runes := []rune(src)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]

		if part == 0 {
			switch {
			case ch == '\'':
				if i+1 < len(runes) && runes[i+1] == '\'' {
					lit.WriteRune('\'')
					i++
				} else {
					inQuote = !inQuote
				}
			case ch == '{' && !inQuote:
				flushLiteral()
				part = 1
			default:
				lit.WriteRune(ch)
			}
			continue
		}

		if inQuote {
			seg[part].WriteRune(ch)
			if ch == '\'' {
				inQuote = false
			}
			continue
		}

		switch ch {
		case ',':
			if part < 3 {
				part++
			} else {
				seg[part].WriteRune(ch)
			}
		case '{':
			braces++
			seg[part].WriteRune(ch)
		case '}':
			if braces > 0 {
				braces--
				seg[part].WriteRune(ch)
				continue
			}
			arg, err := newArgument(seg[1].String(), seg[2].String(), seg[3].String())
			if err != nil {
				return nil, err
			}
			p.segments = append(p.segments, segment{arg: arg})
			for j := range seg {
				seg[j].Reset()
			}
			part = 0
		case '\'':
			inQuote = true
			seg[part].WriteRune(ch)
		default:
			seg[part].WriteRune(ch)
		}
	}

	if part != 0 {
		return nil, fmt.Errorf("%w: unmatched braces in %q", ErrMalformedPattern, src)
	}
	flushLiteral()

	return p, nil
}

func newArgument(index, kind, style string) (*argument, error) {
	a := &argument{style: strings.TrimSpace(style)}

	index = strings.TrimSpace(index)
	if n, err := strconv.Atoi(index); err == nil && n >= 0 {
		a.index = n
	} else if isIdentifier(index) {
		a.name = index
	} else {
		return nil, fmt.Errorf("%w: invalid argument index %q", ErrMalformedPattern, index)
	}

	lowerStyle := strings.ToLower(a.style)

	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "":
		a.kind = argNone
	case "number":
		a.kind = argNumber
		switch lowerStyle {
		case "", StyleInteger, StyleCurrency, StylePercent:
			a.style = lowerStyle
		default:
			a.number = parseNumberPattern(a.style)
		}
	case "date", "time":
		a.kind = argDate
		if strings.EqualFold(strings.TrimSpace(kind), "time") {
			a.kind = argTime
		}
		switch lowerStyle {
		case "", StyleShort, StyleMedium, StyleLong, StyleFull:
			a.style = lowerStyle
		default:
			tokens, err := compileDatePattern(a.style)
			if err != nil {
				return nil, err
			}
			a.date = tokens
		}
	case "choice":
		a.kind = argChoice
		choice, err := parseChoice(a.style)
		if err != nil {
			return nil, err
		}
		a.choice = choice
	case "plural":
		a.kind = argPlural
		plural, err := parsePlural(a.style)
		if err != nil {
			return nil, err
		}
		a.plural = plural
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, strings.TrimSpace(kind))
	}

	return a, nil
}

// format renders the pattern. Placeholders without a matching argument are
// written back verbatim as "{n}" or "{name}".
func (p *pattern) format(f *formatter, args []any) (string, error) {
	return p.render(f, args, "#")
}

// render formats the pattern, writing pound for each "#" of a plural message.
func (p *pattern) render(f *formatter, args []any, pound string) (string, error) {
	var b strings.Builder
	for _, s := range p.segments {
		switch {
		case s.pound:
			b.WriteString(pound)
			continue
		case s.arg == nil:
			b.WriteString(s.literal)
			continue
		}

		v, ok := s.arg.value(args)
		if !ok {
			b.WriteString("{" + s.arg.ref() + "}")
			continue
		}
		out, err := f.formatArg(s.arg, v, args)
		if err != nil {
			return "", err
		}
		b.WriteString(out)
	}
	return b.String(), nil
}

// withPound returns a copy of p with every "#" in literal text turned into a pound segment.
func (p *pattern) withPound() *pattern {
	out := &pattern{segments: make([]segment, 0, len(p.segments))}
	for _, s := range p.segments {
		if s.arg != nil || !strings.Contains(s.literal, "#") {
			out.segments = append(out.segments, s)
			continue
		}
		for i, part := range strings.Split(s.literal, "#") {
			if i > 0 {
				out.segments = append(out.segments, segment{pound: true})
			}
			if part != "" {
				out.segments = append(out.segments, segment{literal: part})
			}
		}
	}
	return out
}

func (a *argument) value(args []any) (any, bool) {
	if a.name != "" {
		return namedArg(args, a.name)
	}
	if a.index >= len(args) {
		return nil, false
	}
	return args[a.index], true
}

func (a *argument) ref() string {
	if a.name != "" {
		return a.name
	}
	return strconv.Itoa(a.index)
}

// choiceFormat selects a sub-pattern by numeric range:
// "0#no files|1#one file|1<{0,number,integer} files".
type choiceFormat struct {
	limits   []float64
	messages []*pattern
}

func parseChoice(style string) (*choiceFormat, error) {
	if strings.TrimSpace(style) == "" {
		return nil, fmt.Errorf("%w: empty choice pattern", ErrMalformedPattern)
	}

	c := &choiceFormat{}
	for _, entry := range splitChoice(style) {
		sep := strings.IndexAny(entry, "#<≤")
		if sep < 0 {
			return nil, fmt.Errorf("%w: choice entry %q has no limit", ErrMalformedPattern, entry)
		}

		limit, err := parseChoiceLimit(strings.TrimSpace(entry[:sep]))
		if err != nil {
			return nil, err
		}
		if entry[sep] == '<' {
			limit = math.Nextafter(limit, math.Inf(1))
		}
		if n := len(c.limits); n > 0 && limit <= c.limits[n-1] {
			return nil, fmt.Errorf("%w: choice limits must be ascending in %q", ErrMalformedPattern, style)
		}

		_, width := firstRune(entry[sep:])
		msg, err := compilePattern(entry[sep+width:])
		if err != nil {
			return nil, err
		}

		c.limits = append(c.limits, limit)
		c.messages = append(c.messages, msg)
	}

	return c, nil
}

// choose returns the sub-pattern whose range contains x. Values below the
// first limit (and NaN) select the first entry.
func (c *choiceFormat) choose(x float64) *pattern {
	i := 0
	for i < len(c.limits) && x >= c.limits[i] {
		i++
	}
	return c.messages[max(i-1, 0)]
}

// splitChoice splits on '|' outside quotes and nested braces.
func splitChoice(style string) []string {
	var (
		out     []string
		start   int
		braces  int
		inQuote bool
	)
	for i, r := range style {
		switch {
		case r == '\'':
			inQuote = !inQuote
		case inQuote:
		case r == '{':
			braces++
		case r == '}':
			braces--
		case r == '|' && braces == 0:
			out = append(out, style[start:i])
			start = i + 1
		}
	}
	return append(out, style[start:])
}

func parseChoiceLimit(s string) (float64, error) {
	switch s {
	case "∞", "+∞":
		return math.Inf(1), nil
	case "-∞":
		return math.Inf(-1), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid choice limit %q", ErrMalformedPattern, s)
	}
	return v, nil
}

func firstRune(s string) (rune, int) {
	for _, r := range s {
		return r, len(string(r))
	}
	return 0, 0
}

// numberPattern is a reduced decimal subpattern such as "#,##0.00" or "0.#%".
// Only fraction digits, grouping, percent and literal affixes are honoured.
type numberPattern struct {
	prefix   string
	suffix   string
	minFrac  int
	maxFrac  int
	grouping bool
	percent  bool
}

func parseNumberPattern(s string) *numberPattern {
	np := &numberPattern{}

	first, last := -1, -1
	inQuote := false
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '\'':
			inQuote = !inQuote
		case !inQuote && strings.IndexByte("#0,.", c) >= 0:
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		np.prefix = unquote(s)
		return np
	}

	np.prefix = unquote(s[:first])
	np.suffix = unquote(s[last+1:])
	core := s[first : last+1]

	np.grouping = strings.Contains(core, ",")
	if dot := strings.IndexByte(core, '.'); dot >= 0 {
		for _, r := range core[dot+1:] {
			switch r {
			case '0':
				np.minFrac++
				np.maxFrac++
			case '#':
				np.maxFrac++
			}
		}
	}
	np.percent = strings.Contains(np.prefix, "%") || strings.Contains(np.suffix, "%")

	return np
}

func unquote(s string) string {
	s = strings.ReplaceAll(s, "''", "\x00")
	s = strings.ReplaceAll(s, "'", "")
	return strings.ReplaceAll(s, "\x00", "'")
}
