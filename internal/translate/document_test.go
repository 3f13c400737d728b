// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package translate

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) Document {
	t.Helper()
	var d Document
	require.NoError(t, json.Unmarshal([]byte(s), &d))
	return d
}

func TestFlatten(t *testing.T) {
	doc := decode(t, `{"app":{"title":"Nitro","count":3,"nested":{"deep":"x"}},"hello":"Hello","list":["a"]}`)
	assert.Equal(t, []string{"app.nested.deep", "app.title", "hello"}, Flatten(doc))
}

func TestGetSetRoundTrip(t *testing.T) {
	src := decode(t, `{"auth":{"login":{"title":"Sign in","button":"Go"}},"footer":"Bye"}`)
	dst := Document{}
	for _, p := range Flatten(src) {
		v, ok := GetString(src, p)
		require.True(t, ok, p)
		require.NoError(t, Set(dst, p, v))
	}
	assert.Equal(t, Flatten(src), Flatten(dst))
	for _, p := range Flatten(src) {
		a, _ := GetString(src, p)
		b, _ := GetString(dst, p)
		assert.Equal(t, a, b, p)
	}
}

func TestSet_ReplacesScalarIntermediate(t *testing.T) {
	doc := decode(t, `{"a":"flat"}`)
	require.NoError(t, Set(doc, "a.b", "deep"))
	v, ok := GetString(doc, "a.b")
	assert.True(t, ok)
	assert.Equal(t, "deep", v)
	assert.Error(t, Set(doc, "", "x"))
}

func TestMissingPaths(t *testing.T) {
	target := decode(t, `{"a":{"b":"x"},"c":{}}`)
	missing := MissingPaths(target, []string{"a.b", "a.c", "c.d", "e"})
	assert.Equal(t, []string{"a.c", "c.d", "e"}, missing)

	_, ok := Get(target, "a.b.c")
	assert.False(t, ok, "cannot descend into a string")
}

func TestDocumentSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tr.json")
	doc := decode(t, `{"n":12.50,"s":"x"}`)
	require.NoError(t, doc.Save(path))

	back, err := LoadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, json.Number("12.5"), back["n"])
	assert.Equal(t, "x", back["s"])
}
