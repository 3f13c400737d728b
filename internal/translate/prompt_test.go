// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package translate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt(LanguageFor("de"), []Pair{{"a.title", "Hello {appName}"}, {"b", "<b>Bold</b>"}})
	assert.Contains(t, p, "to German.")
	assert.True(t, strings.HasSuffix(p, "a.title||Hello {appName}\nb||<b>Bold</b>\n"), p)
}

func TestParseResponse(t *testing.T) {
	resp := "Here you go:\n a.title || Hallo {appName} \nb||x||y\nunknown||nope\nno separator\n"
	got := ParseResponse(resp, []string{"a.title", "b"})
	assert.Equal(t, []Pair{{"a.title", "Hallo {appName}"}, {"b", "x||y"}}, got)
}

func TestLanguageFor(t *testing.T) {
	assert.Equal(t, Language{"tr", "Turkish", "🇹🇷"}, LanguageFor("tr"))
	assert.Equal(t, Language{"xx", "xx", "🌍"}, LanguageFor("xx"))
	assert.Len(t, languageTable, 39)
}

func TestParseLanguages(t *testing.T) {
	langs := ParseLanguages("ja, ko,,ja ,zz")
	require.Len(t, langs, 3)
	assert.Equal(t, "Japanese", langs[0].Name)
	assert.Equal(t, "zz", langs[2].Name)
}

func TestDiscoverLanguages(t *testing.T) {
	dir := t.TempDir()
	_, err := DiscoverLanguages(filepath.Join(dir, "nope"), "source.json")
	assert.Error(t, err)

	langs, err := DiscoverLanguages(dir, "source.json")
	require.NoError(t, err)
	var codes []string
	for _, l := range langs {
		codes = append(codes, l.Code)
	}
	assert.Equal(t, DefaultLanguages, codes)

	for _, name := range []string{"source.json", "fr.json", "de.json", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "x.json"), 0o755))
	langs, err = DiscoverLanguages(dir, "source.json")
	require.NoError(t, err)
	assert.Equal(t, []Language{LanguageFor("de"), LanguageFor("fr")}, langs)
}
