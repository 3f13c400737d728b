// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package translate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Document is a decoded i18n JSON file. Leaves addressed by dotted paths
// such as "auth.login.title".
type Document map[string]any

// LoadDocument decodes path. Numbers keep their literal form.
func LoadDocument(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if doc == nil {
		doc = Document{}
	}
	return doc, nil
}

// Save writes doc as two-space indented JSON.
func (d Document) Save(path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// Flatten returns the dotted paths of every string leaf, sorted.
func Flatten(doc Document) []string {
	var paths []string
	flatten(map[string]any(doc), "", &paths)
	sort.Strings(paths)
	return paths
}

func flatten(m map[string]any, prefix string, out *[]string) {
	for k, v := range m {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		switch val := v.(type) {
		case string:
			*out = append(*out, path)
		case map[string]any:
			flatten(val, path, out)
		case Document:
			flatten(val, path, out)
		}
	}
}

// Get returns the value at path.
func Get(doc Document, path string) (any, bool) {
	var cur any = map[string]any(doc)
	for _, part := range strings.Split(path, ".") {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		if cur, ok = m[part]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// GetString returns the string leaf at path.
func GetString(doc Document, path string) (string, bool) {
	v, ok := Get(doc, path)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Set stores value at path, creating intermediate objects and replacing
// non-object intermediates.
func Set(doc Document, path string, value any) error {
	if path == "" {
		return errors.New("empty path")
	}
	parts := strings.Split(path, ".")
	cur := map[string]any(doc)
	for _, part := range parts[:len(parts)-1] {
		next, ok := asMap(cur[part])
		if !ok {
			next = map[string]any{}
			cur[part] = next
		}
		cur = next
	}
	cur[parts[len(parts)-1]] = value
	return nil
}

// MissingPaths returns the paths absent from target, in input order.
func MissingPaths(target Document, paths []string) []string {
	var missing []string
	for _, p := range paths {
		if _, ok := Get(target, p); !ok {
			missing = append(missing, p)
		}
	}
	return missing
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Document:
		return m, true
	}
	return nil, false
}
