package i18n_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/crossroads/pkg/i18n"
)

func tagStrings(tags []language.Tag) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = t.String()
	}
	return out
}

func TestParseAcceptLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		header   string
		expected []string
	}{
		{
			name:     "empty header",
			header:   "",
			expected: []string{},
		},
		{
			name:     "single tag",
			header:   "fr-FR",
			expected: []string{"fr-FR"},
		},
		{
			name:     "ordered by quality",
			header:   "de;q=0.5,pl;q=0.9,en;q=0.8",
			expected: []string{"pl", "en", "de"},
		},
		{
			name:     "wildcard skipped",
			header:   "fr-CH, fr;q=0.9, en;q=0.8, *;q=0.5",
			expected: []string{"fr-CH", "fr", "en"},
		},
		{
			name:     "equal quality keeps header order",
			header:   "es,it,de",
			expected: []string{"es", "it", "de"},
		},
		{
			name:     "zero quality excluded",
			header:   "en;q=0,de",
			expected: []string{"de"},
		},
		{
			name:     "invalid quality treated as 1",
			header:   "pl;q=0.5,en;q=abc",
			expected: []string{"en", "pl"},
		},
		{
			name:     "invalid tag skipped",
			header:   "xx-invalid-tag!,de-DE;q=0.3",
			expected: []string{"de-DE"},
		},
		{
			name:     "only invalid tag",
			header:   "xx-invalid-tag!",
			expected: []string{},
		},
		{
			name:     "whitespace and empty entries",
			header:   " , en-GB ; q=0.7 ,, ja ",
			expected: []string{"ja", "en-GB"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, tagStrings(i18n.ParseAcceptLanguage(tt.header)))
		})
	}
}

func TestParseAcceptLanguage_OversizedHeader(t *testing.T) {
	t.Parallel()

	header := "fr;q=0.9," + strings.Repeat("en,", 5000)
	tags := i18n.ParseAcceptLanguage(header)
	require.NotEmpty(t, tags)
	require.Equal(t, "en", tags[0].String())
}

func TestMatchAcceptLanguage(t *testing.T) {
	t.Parallel()

	supported := []language.Tag{language.Polish, language.English, language.German}

	tests := []struct {
		name      string
		header    string
		supported []language.Tag
		expected  language.Tag
		ok        bool
	}{
		{
			name:      "best quality supported",
			header:    "en-US,en;q=0.9,pl;q=0.8",
			supported: supported,
			expected:  language.English,
			ok:        true,
		},
		{
			name:      "skips unsupported preference",
			header:    "fr,de;q=0.5",
			supported: supported,
			expected:  language.German,
			ok:        true,
		},
		{
			name:      "nothing supported",
			header:    "ja",
			supported: supported,
			ok:        false,
		},
		{
			name:     "no supported list returns first entry",
			header:   "fr-FR,en;q=0.5",
			expected: language.MustParse("fr-FR"),
			ok:       true,
		},
		{
			name:   "invalid header",
			header: "xx-invalid-tag!",
			ok:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tag, ok := i18n.MatchAcceptLanguage(tt.header, tt.supported)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				require.Equal(t, tt.expected, tag)
			}
		})
	}
}
