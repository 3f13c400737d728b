// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// i18n-linter checks the CLI's locale files against the Go sources. It
// reports message ids passed to i18n.T that the primary locale lacks, keys
// the other locales are missing and keys nothing references any more.
//
// Run it from the repository root:
//
//	go run ./tools/i18n-linter
package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	localesDir    = "internal/i18n/locales"
	primaryLocale = "en.yaml"
)

var (
	// i18n.T("menu.title", ...) calls.
	callRe = regexp.MustCompile(`i18n\.T\("([^"]+)"`)
	// Ids stored in tables before being translated, e.g. menu items.
	literalRe = regexp.MustCompile(`"([a-z_]+\.[a-z_.]+)"`)
)

// report is the outcome of one lint run.
type report struct {
	// Unknown ids are passed to i18n.T but absent from the primary locale.
	Unknown []string
	// Missing maps a secondary locale file to the keys it lacks.
	Missing map[string][]string
	// Orphaned keys exist in the primary locale but nothing references them.
	Orphaned []string
}

func (r report) failed() bool {
	if len(r.Unknown) > 0 {
		return true
	}
	for _, keys := range r.Missing {
		if len(keys) > 0 {
			return true
		}
	}
	return false
}

func main() {
	fmt.Println("🔍 Running i18n linter...")
	r, err := lint(".", localesDir)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	printReport(os.Stdout, r)
	if r.failed() {
		os.Exit(1)
	}
}

func lint(root, locales string) (report, error) {
	r := report{Missing: map[string][]string{}}

	called, referenced, err := scanSources(root)
	if err != nil {
		return r, fmt.Errorf("scan sources: %w", err)
	}
	primary, err := loadKeys(filepath.Join(locales, primaryLocale))
	if err != nil {
		return r, fmt.Errorf("load %s: %w", primaryLocale, err)
	}

	for id := range called {
		if _, ok := primary[id]; !ok {
			r.Unknown = append(r.Unknown, id)
		}
	}
	for key := range primary {
		_, c := called[key]
		_, l := referenced[key]
		if !c && !l {
			r.Orphaned = append(r.Orphaned, key)
		}
	}

	files, err := filepath.Glob(filepath.Join(locales, "*.yaml"))
	if err != nil {
		return r, err
	}
	for _, file := range files {
		name := filepath.Base(file)
		if name == primaryLocale {
			continue
		}
		keys, err := loadKeys(file)
		if err != nil {
			return r, fmt.Errorf("load %s: %w", name, err)
		}
		var missing []string
		for key := range primary {
			if _, ok := keys[key]; !ok {
				missing = append(missing, key)
			}
		}
		sort.Strings(missing)
		r.Missing[name] = missing
	}

	sort.Strings(r.Unknown)
	sort.Strings(r.Orphaned)
	return r, nil
}

// scanSources collects the ids passed to i18n.T and every other string
// literal shaped like a message id. Tests and the tools tree are skipped.
func scanSources(root string) (called, referenced map[string]struct{}, err error) {
	called = map[string]struct{}{}
	referenced = map[string]struct{}{}
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (name == "tools" || strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		for _, m := range callRe.FindAllStringSubmatch(string(content), -1) {
			called[m[1]] = struct{}{}
		}
		for _, m := range literalRe.FindAllStringSubmatch(string(content), -1) {
			referenced[m[1]] = struct{}{}
		}
		return nil
	})
	return called, referenced, err
}

// loadKeys reads a locale file. Nested maps are flattened with dots so
// both flat and nested layouts work.
func loadKeys(path string) (map[string]struct{}, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data map[string]any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, err
	}
	keys := map[string]struct{}{}
	flatten("", data, keys)
	return keys, nil
}

func flatten(prefix string, node any, keys map[string]struct{}) {
	m, ok := node.(map[string]any)
	if !ok {
		if prefix != "" {
			keys[prefix] = struct{}{}
		}
		return
	}
	for k, v := range m {
		if prefix != "" {
			k = prefix + "." + k
		}
		flatten(k, v, keys)
	}
}

func printReport(w io.Writer, r report) {
	section := func(title string, items []string, label string) {
		fmt.Fprintf(w, "--- %s ---\n", title)
		if len(items) == 0 {
			fmt.Fprintln(w, "  ✨ None found.")
		}
		for _, it := range items {
			fmt.Fprintf(w, "  - %s: %s\n", label, it)
		}
		fmt.Fprintln(w)
	}

	section("Unknown ids (used in code, missing from "+primaryLocale+")", r.Unknown, "Unknown")

	names := make([]string, 0, len(r.Missing))
	for name := range r.Missing {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		section("Missing keys in "+name, r.Missing[name], "Missing")
	}

	section("Orphaned keys (in "+primaryLocale+" but not referenced)", r.Orphaned, "Orphaned")

	switch {
	case r.failed():
		fmt.Fprintln(w, "❌ Found issues that need to be addressed.")
	case len(r.Orphaned) > 0:
		fmt.Fprintln(w, "⚠️  Found orphaned keys. Please consider removing them.")
	default:
		fmt.Fprintln(w, "✅ All translation files are consistent!")
	}
}
