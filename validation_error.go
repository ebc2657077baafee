package crossroads

import (
	"fmt"
	"maps"
	"strings"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/crossroads/pkg/i18n"
)

// ValidationError reports an invalid value. Message is a catalog key or a
// literal message; Params holds named substitutions and may be nil.
type ValidationError struct {
	Value   any
	Message string
	Params  map[string]string
}

// NewValidationError creates a ValidationError. params is copied.
func NewValidationError(value any, message string, params map[string]string) ValidationError {
	return ValidationError{
		Value:   value,
		Message: message,
		Params:  maps.Clone(params),
	}
}

// Error implements the error interface. The message is returned untranslated.
func (e ValidationError) Error() string {
	return e.Message
}

// Localize looks the message up in c for locale. The value is passed as {0}
// and the parameters as named arguments. A message that is not a catalog key
// comes back unchanged.
func (e ValidationError) Localize(c *i18n.Catalog, locale language.Tag) (string, error) {
	if c == nil {
		return e.Message, nil
	}
	return c.Lookup(e.Message, locale, e.Value, e.Params)
}

// ValidationErrors collects the errors of a single validation pass.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (errs ValidationErrors) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Localize localizes every error in order. It stops at the first failure.
func (errs ValidationErrors) Localize(c *i18n.Catalog, locale language.Tag) ([]string, error) {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		msg, err := e.Localize(c, locale)
		if err != nil {
			return nil, fmt.Errorf("localize %q: %w", e.Message, err)
		}
		out = append(out, msg)
	}
	return out, nil
}
