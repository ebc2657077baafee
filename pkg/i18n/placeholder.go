package i18n

import "unicode"

// Params holds named arguments. A "{name}" placeholder is read from the Params
// (or plain maps) passed among the arguments, first match wins.
//
// Example:
//
//	pattern: "Hello, {name}! You have {count,plural,one{# message} other{# messages}}."
//	args:    i18n.Params{"name": "John", "count": 5}
//	returns: "Hello, John! You have 5 messages."
type Params map[string]any

func namedArg(args []any, name string) (any, bool) {
	for _, a := range args {
		var m map[string]any
		switch p := a.(type) {
		case Params:
			m = p
		case map[string]any:
			m = p
		case map[string]string:
			v, ok := p[name]
			if ok {
				return v, true
			}
			continue
		default:
			continue
		}
		if v, ok := m[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// isIdentifier reports whether s can name an argument: a letter or underscore
// followed by letters, digits or underscores.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
