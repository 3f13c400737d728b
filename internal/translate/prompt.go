// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package translate

import (
	"fmt"
	"strings"
)

// Pair is one path with its text.
type Pair struct {
	Path string
	Text string
}

const separator = "||"

// BuildPrompt asks for batch to be translated into lang, one
// "path||text" line per entry.
func BuildPrompt(lang Language, batch []Pair) string {
	var b strings.Builder
	for _, p := range batch {
		fmt.Fprintf(&b, "%s%s%s\n", p.Path, separator, p.Text)
	}
	return fmt.Sprintf("Translate the following key-value pairs to %s. "+
		"Keep the exact format with || separator and preserve any HTML tags, "+
		"placeholders like {appName}, {min}, {max}, etc. "+
		"Only translate the text content, not the keys or placeholders:\n\n%s",
		lang.Name, b.String())
}

// ParseResponse reads "path||text" lines, splitting on the first
// separator. Lines naming a path outside paths are dropped.
func ParseResponse(resp string, paths []string) []Pair {
	known := make(map[string]bool, len(paths))
	for _, p := range paths {
		known[p] = true
	}
	var out []Pair
	for _, line := range strings.Split(resp, "\n") {
		path, text, ok := strings.Cut(line, separator)
		if !ok {
			continue
		}
		path = strings.TrimSpace(path)
		if known[path] {
			out = append(out, Pair{Path: path, Text: strings.TrimSpace(text)})
		}
	}
	return out
}
