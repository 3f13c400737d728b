// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package releasenotes

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitrokit/nitrokit/internal/git"
)

func TestClassify(t *testing.T) {
	cases := map[string]Category{
		"feat: add login":              Features,
		"feat(ui): dark mode":          Features,
		"fix(api): nil pointer":        Fixes,
		"feat!: drop v1 api":           Breaking,
		"BREAKING CHANGE: removed x":   Breaking,
		"chore(deps): bump lodash":     Dependencies,
		"docs: update README":          Docs,
		"security: escape html":        Security,
		"i18n: add German":             Translations,
		"refactor: split parser":       Improvements,
		"Add dark mode":                Features,
		"Refactor the parser":          Improvements,
		"Bump serde to 1.0.200":        Dependencies,
		"Mitigate CVE-2024-1234":       Security,
		"Merge branch 'main' into dev": Other,
	}
	for subject, want := range cases {
		assert.Equal(t, want, Classify(subject), subject)
	}
}

func TestCategorize_EachCommitOnce(t *testing.T) {
	at := time.Date(2025, 5, 26, 12, 0, 0, 0, time.UTC)
	commits := []git.Commit{
		{Hash: "aaaaaaaaaa", Message: "feat: search", Time: at},
		{Hash: "bbbbbbbbbb", Message: "fix: typo in docs\n\nlong body", Time: at},
		{Hash: "cccccccccc", Message: "random change", Time: at},
	}
	cats := Categorize(commits)
	require.Equal(t, len(commits), cats.Total())
	assert.Equal(t, []string{"feat: search (aaaaaaa)"}, cats[Features])
	assert.Equal(t, []string{"fix: typo in docs (bbbbbbb)"}, cats[Fixes])
	assert.Equal(t, []string{"random change (ccccccc)"}, cats[Other])
}

func TestCategoryHeadingsDistinct(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range RenderOrder {
		h := c.Heading()
		assert.False(t, seen[h], "duplicate heading %q", h)
		seen[h] = true
	}
}
