package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

const testdataDir = "../../pkg/i18n/testdata/i18n"

func runCmd(t *testing.T, args ...string) (int, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestLookup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"regional", []string{"-locale", "de-AT", "greeting", "Anna"}, "Servus, Anna!\n"},
		{"locale file", []string{"-locale", "fr", "s5"}, "parlez-vous français?\n"},
		{"numeric argument", []string{"files", "3"}, "3 files\n"},
		{"choice singular", []string{"-locale", "en-US", "files", "1"}, "one file\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			args := append([]string{"lookup", "-dir", testdataDir, "-base", "SampleBundle"}, tt.args...)
			code, stdout, stderr := runCmd(t, args...)
			require.Equal(t, 0, code, stderr)
			require.Equal(t, tt.want, stdout)
		})
	}

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()

		code, _, stderr := runCmd(t, "lookup", "-dir", testdataDir, "-base", "SampleBundle", "nope")
		require.Equal(t, 1, code)
		require.Contains(t, stderr, `key "nope" not found`)
	})

	t.Run("key required", func(t *testing.T) {
		t.Parallel()

		code, _, _ := runCmd(t, "lookup", "-dir", testdataDir)
		require.Equal(t, 2, code)
	})

	t.Run("invalid locale", func(t *testing.T) {
		t.Parallel()

		code, _, stderr := runCmd(t, "lookup", "-dir", testdataDir, "-locale", "%%", "s5")
		require.Equal(t, 1, code)
		require.Contains(t, stderr, "invalid locale")
	})
}

func TestStatus(t *testing.T) {
	t.Parallel()

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		code, stdout, stderr := runCmd(t, "status", "-dir", testdataDir, "-base", "SampleBundle", "-json")
		require.Equal(t, 0, code, stderr)

		var rep report
		require.NoError(t, json.Unmarshal([]byte(stdout), &rep))
		require.Equal(t, "SampleBundle", rep.BaseName)
		require.Equal(t, 6, rep.RootKeys)
		require.Equal(t, []localeStatus{
			{Locale: "de", Translated: 2, Missing: 4, MissingKeys: []string{"files", "greeting", "s6", "s8"}},
			{Locale: "de-AT", Translated: 3, Missing: 3, MissingKeys: []string{"files", "s6", "s8"}},
			{Locale: "fr", Translated: 3, Missing: 3, MissingKeys: []string{"files", "s6", "s8"}},
		}, rep.Locales)
	})

	t.Run("text", func(t *testing.T) {
		t.Parallel()

		code, stdout, _ := runCmd(t, "status", "-dir", testdataDir, "-base", "SampleBundle")
		require.Equal(t, 0, code)
		require.Contains(t, stdout, "SampleBundle: 6 root keys")
		require.Contains(t, stdout, "  - greeting")
	})

	t.Run("no root catalog", func(t *testing.T) {
		t.Parallel()

		code, _, stderr := runCmd(t, "status", "-dir", t.TempDir(), "-base", "Missing")
		require.Equal(t, 1, code)
		require.Contains(t, stderr, "catalog not found")
	})
}

func TestRun_Usage(t *testing.T) {
	t.Parallel()

	code, _, stderr := runCmd(t)
	require.Equal(t, 2, code)
	require.Contains(t, stderr, "usage:")

	code, _, stderr = runCmd(t, "translate")
	require.Equal(t, 2, code)
	require.Contains(t, stderr, `unknown command "translate"`)

	code, stdout, _ := runCmd(t, "help")
	require.Equal(t, 0, code)
	require.Contains(t, stdout, "crossroads status")
}
