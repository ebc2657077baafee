package crossroads_test

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/crossroads"
	"github.com/dmitrymomot/crossroads/pkg/i18n"
)

func newValidationCatalog(t *testing.T) *i18n.Catalog {
	t.Helper()

	c, err := i18n.New(
		i18n.WithBaseName("Validation"),
		i18n.WithFS(fstest.MapFS{
			"Validation.properties": {Data: []byte(
				"required={field} is required\n" +
					"too_long=''{0}'' is longer than {max} characters\n" +
					"min_age={0,number,integer} is below the minimum age of {min}\n",
			)},
			"Validation_de.properties": {Data: []byte(
				"required={field} ist erforderlich\n",
			)},
		}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	params := map[string]string{"field": "Email"}
	err := crossroads.NewValidationError("", "required", params)
	params["field"] = "changed"

	require.Equal(t, "required", err.Error())
	require.Equal(t, "Email", err.Params["field"])

	var target crossroads.ValidationError
	require.True(t, errors.As(error(err), &target))
	require.Empty(t, target.Value)
}

func TestValidationError_Localize(t *testing.T) {
	t.Parallel()

	c := newValidationCatalog(t)

	tests := []struct {
		name   string
		err    crossroads.ValidationError
		locale language.Tag
		want   string
	}{
		{
			name:   "named parameter",
			err:    crossroads.NewValidationError(nil, "required", map[string]string{"field": "Email"}),
			locale: language.English,
			want:   "Email is required",
		},
		{
			name:   "localized",
			err:    crossroads.NewValidationError(nil, "required", map[string]string{"field": "E-Mail"}),
			locale: language.German,
			want:   "E-Mail ist erforderlich",
		},
		{
			name:   "value and parameter",
			err:    crossroads.NewValidationError("crossroads", "too_long", map[string]string{"max": "5"}),
			locale: language.English,
			want:   "'crossroads' is longer than 5 characters",
		},
		{
			name:   "numeric value",
			err:    crossroads.NewValidationError(15, "min_age", map[string]string{"min": "18"}),
			locale: language.English,
			want:   "15 is below the minimum age of 18",
		},
		{
			name:   "literal message",
			err:    crossroads.NewValidationError(nil, "must not be blank", nil),
			locale: language.English,
			want:   "must not be blank",
		},
		{
			name:   "missing parameter",
			err:    crossroads.NewValidationError(nil, "required", nil),
			locale: language.English,
			want:   "{field} is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.err.Localize(c, tt.locale)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	t.Run("nil catalog", func(t *testing.T) {
		t.Parallel()

		got, err := crossroads.NewValidationError(nil, "required", nil).Localize(nil, language.English)
		require.NoError(t, err)
		require.Equal(t, "required", got)
	})

	t.Run("format error", func(t *testing.T) {
		t.Parallel()

		_, err := crossroads.NewValidationError("fifteen", "min_age", nil).Localize(c, language.English)
		require.ErrorIs(t, err, i18n.ErrArgumentType)
	})
}

func TestValidationErrors(t *testing.T) {
	t.Parallel()

	c := newValidationCatalog(t)

	errs := crossroads.ValidationErrors{
		crossroads.NewValidationError(nil, "required", map[string]string{"field": "Name"}),
		crossroads.NewValidationError("abcdef", "too_long", map[string]string{"max": "3"}),
	}
	require.Equal(t, "required; too_long", errs.Error())

	got, err := errs.Localize(c, language.English)
	require.NoError(t, err)
	require.Equal(t, []string{"Name is required", "'abcdef' is longer than 3 characters"}, got)

	errs = append(errs, crossroads.NewValidationError(true, "min_age", nil))
	_, err = errs.Localize(c, language.English)
	require.ErrorIs(t, err, i18n.ErrArgumentType)
}
