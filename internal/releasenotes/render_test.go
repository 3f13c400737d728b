// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package releasenotes

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nitrokit/nitrokit/internal/git"
	"github.com/nitrokit/nitrokit/internal/project"
)

var renderDay = time.Date(2025, 5, 26, 12, 0, 0, 0, time.UTC)

func sampleCommits() []git.Commit {
	return []git.Commit{
		{Hash: "bbbbbbbbbb", Message: "fix: crash on empty input", AuthorName: "Bob", AuthorEmail: "bob@example.com", Time: renderDay},
		{Hash: "aaaaaaaaaa", Message: "feat: add login", AuthorName: "Alice", AuthorEmail: "alice@example.com", Time: renderDay.Add(-24 * time.Hour)},
	}
}

func TestRender_Sections(t *testing.T) {
	md := Render(Document{
		Tag:         "v1.1.0",
		PreviousTag: "v1.0.0",
		Repo:        ParseRepository("git@github.com:acme/tool.git"),
		Commits:     sampleCommits(),
		Date:        renderDay,
		Toolchain:   project.Rust,
	})

	for _, want := range []string{
		"# Release v1.1.0\n",
		"## 📋 Changes since v1.0.0",
		"- **Release Date:** 2025-05-26",
		"- **Repository:** https://github.com/acme/tool",
		"- **Total Commits:** 2",
		"- **Commit Range:** 2025-05-25 to 2025-05-26",
		"## ✨ New Features\n\n- feat: add login (aaaaaaa)",
		"## 🐛 Bug Fixes\n\n- fix: crash on empty input (bbbbbbb)",
		"## 👥 Contributors",
		"- Alice (alice@example.com) - 1 commit",
		"cargo build --release",
		"## 📊 Detailed Timeline",
		"**Full Changelog**: https://github.com/acme/tool/compare/v1.0.0...v1.1.0",
		"[GitHub Discussions](https://github.com/acme/tool/discussions)",
		"**Enjoy building with tool! 🚀**",
	} {
		assert.Contains(t, md, want)
	}
	assert.Less(t, strings.Index(md, "New Features"), strings.Index(md, "Bug Fixes"))
	assert.NotContains(t, md, "pre-release")
}

func TestRender_InitialPrerelease(t *testing.T) {
	md := Render(Document{
		Tag:     "v2.0.0-beta.1",
		Repo:    ParseRepository("https://git.example.com/team/widget"),
		Commits: sampleCommits(),
		Date:    renderDay,
	})
	assert.Contains(t, md, "## 📋 Initial release")
	assert.Contains(t, md, "This is a pre-release version")
	assert.Contains(t, md, "**Full Changelog**: https://git.example.com/team/widget/commits/v2.0.0-beta.1")
	assert.Contains(t, md, "# Follow project-specific build instructions")
	assert.NotContains(t, md, "Discussions")
}

func TestRender_LargeReleasesTrimSections(t *testing.T) {
	var commits []git.Commit
	for i := 0; i < 25; i++ {
		commits = append(commits, git.Commit{
			Hash:        fmt.Sprintf("%010d", i),
			Message:     fmt.Sprintf("misc change number %d", i),
			AuthorName:  "Dev",
			AuthorEmail: "dev@example.com",
			Time:        renderDay.Add(-time.Duration(i) * time.Minute),
		})
	}
	md := Render(Document{Tag: "v3.0.0", Repo: ParseRepository("git@github.com:acme/tool.git"), Commits: commits, Date: renderDay})
	assert.NotContains(t, md, "Other Changes", "more than ten uncategorized entries are left out")
	assert.NotContains(t, md, "Detailed Timeline", "timeline is only shown for small releases")
	assert.Contains(t, md, "- **Total Commits:** 25")
	assert.Contains(t, md, "- Dev (dev@example.com) - 25 commits")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 50))
	long := strings.Repeat("ü", 60)
	assert.Equal(t, strings.Repeat("ü", 50)+"...", truncate(long, 50))
}
