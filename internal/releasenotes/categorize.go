// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package releasenotes

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nitrokit/nitrokit/internal/git"
)

// Category is a release-notes section.
type Category int

const (
	Breaking Category = iota
	Security
	Features
	Fixes
	Improvements
	Translations
	Docs
	Dependencies
	Other
)

// RenderOrder is the order sections appear in the document.
var RenderOrder = []Category{Breaking, Security, Features, Fixes, Improvements, Translations, Docs, Dependencies, Other}

// Heading returns the markdown section title.
func (c Category) Heading() string {
	switch c {
	case Breaking:
		return "⚠️ Breaking Changes"
	case Security:
		return "🔒 Security Updates"
	case Features:
		return "✨ New Features"
	case Fixes:
		return "🐛 Bug Fixes"
	case Improvements:
		return "🔧 Improvements"
	case Translations:
		return "🌍 Translation Updates"
	case Docs:
		return "📚 Documentation"
	case Dependencies:
		return "📦 Dependencies"
	default:
		return "🔄 Other Changes"
	}
}

func (c Category) String() string {
	switch c {
	case Breaking:
		return "breaking"
	case Security:
		return "security"
	case Features:
		return "features"
	case Fixes:
		return "fixes"
	case Improvements:
		return "improvements"
	case Translations:
		return "translations"
	case Docs:
		return "docs"
	case Dependencies:
		return "dependencies"
	default:
		return "other"
	}
}

// Categories holds the entries per section, each entry "Subject (short)".
type Categories map[Category][]string

// Total counts entries across all sections.
func (c Categories) Total() int {
	n := 0
	for _, entries := range c {
		n += len(entries)
	}
	return n
}

var conventional = regexp.MustCompile(`^([a-z][a-z0-9]*)(?:\(([^)]*)\))?(!)?:\s`)

// conventionalTypes maps a conventional-commit type to its section.
// Types not listed fall through to keyword matching.
var conventionalTypes = map[string]Category{
	"feat":        Features,
	"feature":     Features,
	"fix":         Fixes,
	"bugfix":      Fixes,
	"hotfix":      Fixes,
	"security":    Security,
	"docs":        Docs,
	"doc":         Docs,
	"refactor":    Improvements,
	"perf":        Improvements,
	"improve":     Improvements,
	"deps":        Dependencies,
	"i18n":        Translations,
	"l10n":        Translations,
	"translation": Translations,
}

type keywordRule struct {
	category Category
	words    []string
}

// keywordRules are tried in order; the first match wins.
var keywordRules = []keywordRule{
	{Breaking, []string{"breaking"}},
	{Security, []string{"security", "vulnerability", "cve"}},
	{Features, []string{"feat", "feature", "add"}},
	{Fixes, []string{"fix", "bug", "hotfix"}},
	{Docs, []string{"doc", "readme"}},
	{Improvements, []string{"improve", "enhance", "update", "refactor"}},
	{Dependencies, []string{"dep", "bump", "upgrade", "yarn", "npm", "cargo"}},
	{Translations, []string{"translation", "i18n", "locale"}},
}

// Classify assigns a commit subject to exactly one category.
func Classify(subject string) Category {
	lower := strings.ToLower(strings.TrimSpace(subject))

	if strings.HasPrefix(lower, "breaking change") {
		return Breaking
	}
	if m := conventional.FindStringSubmatch(lower); m != nil {
		typ, scope, bang := m[1], m[2], m[3]
		if bang == "!" {
			return Breaking
		}
		if scope == "deps" || scope == "deps-dev" {
			return Dependencies
		}
		if c, ok := conventionalTypes[typ]; ok {
			return c
		}
	}

	for _, rule := range keywordRules {
		for _, w := range rule.words {
			if strings.Contains(lower, w) {
				return rule.category
			}
		}
	}
	return Other
}

// Categorize sorts commits into sections, preserving commit order within
// each section.
func Categorize(commits []git.Commit) Categories {
	out := Categories{}
	for _, c := range commits {
		cat := Classify(c.Subject())
		out[cat] = append(out[cat], fmt.Sprintf("%s (%s)", c.Subject(), c.ShortHash()))
	}
	return out
}
