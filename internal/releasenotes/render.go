// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package releasenotes

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/nitrokit/nitrokit/internal/git"
	"github.com/nitrokit/nitrokit/internal/project"
)

const (
	maxOtherEntries    = 10
	maxTimelineCommits = 20
	timelineMsgWidth   = 50
)

// Document is everything Render needs.
type Document struct {
	Tag         string
	PreviousTag string
	Repo        Repository
	Commits     []git.Commit // newest first
	Date        time.Time
	// Toolchain drives the install snippet. Unknown falls back to
	// guessing from the repository name.
	Toolchain project.Type
}

// Render produces the markdown release notes.
func Render(doc Document) string {
	var b strings.Builder
	w := func(format string, args ...any) { fmt.Fprintf(&b, format, args...) }

	comparison := "Initial release"
	if doc.PreviousTag != "" {
		comparison = "Changes since " + doc.PreviousTag
	}
	date := doc.Date
	if date.IsZero() {
		date = time.Now()
	}

	w("# Release %s\n\n", doc.Tag)
	w("## 📋 %s\n\n", comparison)
	w("- **Release Date:** %s\n", date.Format("2006-01-02"))
	w("- **Repository:** %s\n", doc.Repo.WebURL)
	w("- **Total Commits:** %d\n", len(doc.Commits))
	if n := len(doc.Commits); n > 0 {
		w("- **Commit Range:** %s to %s\n", doc.Commits[n-1].Date(), doc.Commits[0].Date())
	}
	w("\n")

	if IsPrerelease(doc.Tag) {
		w("🚨 **This is a pre-release version** - Use with caution in production environments.\n\n")
	}

	cats := Categorize(doc.Commits)
	for _, cat := range RenderOrder {
		entries := cats[cat]
		if len(entries) == 0 {
			continue
		}
		if cat == Other && len(entries) > maxOtherEntries {
			continue
		}
		w("## %s\n\n", cat.Heading())
		switch cat {
		case Breaking:
			w("🚨 **Important:** This release contains breaking changes. Please review the migration guide before upgrading.\n\n")
		case Security:
			w("🛡️ **Security patches included in this release:**\n\n")
		}
		for _, e := range entries {
			w("- %s\n", e)
		}
		w("\n")
	}

	if contributors := Contributors(doc.Commits); len(contributors) > 0 {
		w("## 👥 Contributors\n\n")
		w("Thanks to all the contributors who made this release possible:\n\n")
		for _, c := range contributors {
			w("%s\n", c.Format(doc.Repo))
		}
		w("\n")
	}

	writeInstall(&b, doc)

	if n := len(doc.Commits); n > 0 && n <= maxTimelineCommits {
		w("## 📊 Detailed Timeline\n\n")
		w("| Date | Time | Commit | Author | Message |\n")
		w("|------|------|--------|--------|---------|\n")
		for _, c := range doc.Commits {
			w("| %s | %s | `%s` | %s | %s |\n", c.Date(), c.Clock(), c.ShortHash(), c.AuthorName, truncate(c.Subject(), timelineMsgWidth))
		}
		w("\n")
	}

	w("## 📝 Full Changelog\n\n")
	if doc.PreviousTag != "" {
		w("**Full Changelog**: %s\n\n", doc.Repo.CompareURL(doc.PreviousTag, doc.Tag))
	} else {
		w("**Full Changelog**: %s\n\n", doc.Repo.CommitsURL(doc.Tag))
	}

	w("---\n\n")
	w("### 🔗 Useful Links\n\n")
	w("- 📖 **Documentation**: [README.md](%s#readme)\n", doc.Repo.WebURL)
	if doc.Repo.IsGitHub() {
		w("- 💬 **Discussions**: [GitHub Discussions](%s/discussions)\n", doc.Repo.WebURL)
	}
	w("- 🐛 **Report Issues**: [Issues](%s)\n\n", doc.Repo.IssuesURL())

	w("### 🆘 Getting Help\n\n")
	w("If you encounter any issues with this release:\n\n")
	w("1. Check the project documentation and README\n")
	w("2. Search [existing issues](%s)\n", doc.Repo.IssuesURL())
	w("3. Create a [new issue](%s) with detailed information\n\n", doc.Repo.NewIssueURL())

	w("---\n\n")
	w("**Enjoy building with %s! 🚀**\n", doc.Repo.Name)
	return b.String()
}

type toolchainFamily int

const (
	familyUnknown toolchainFamily = iota
	familyRust
	familyNode
	familyPython
)

func familyOf(doc Document) toolchainFamily {
	switch {
	case doc.Toolchain == project.Rust:
		return familyRust
	case doc.Toolchain.IsNode():
		return familyNode
	case doc.Toolchain == project.Python:
		return familyPython
	}
	name := strings.ToLower(doc.Repo.Name)
	url := strings.ToLower(doc.Repo.URL)
	switch {
	case strings.Contains(name, "rust") || strings.Contains(url, "rust"):
		return familyRust
	case strings.Contains(name, "node") || strings.Contains(url, "node") || strings.Contains(name, "js"):
		return familyNode
	case strings.Contains(name, "python") || strings.Contains(url, "python"):
		return familyPython
	}
	return familyUnknown
}

func writeInstall(b *strings.Builder, doc Document) {
	family := familyOf(doc)

	b.WriteString("## 🚀 Installation & Upgrade\n\n")
	b.WriteString("### For new projects:\n```bash\n")
	fmt.Fprintf(b, "git clone %s\n", doc.Repo.URL)
	fmt.Fprintf(b, "cd %s\n", doc.Repo.Name)
	fmt.Fprintf(b, "git checkout %s\n", doc.Tag)
	switch family {
	case familyRust:
		b.WriteString("cargo build --release\n")
	case familyNode:
		b.WriteString("npm install\nnpm run build\n")
	case familyPython:
		b.WriteString("pip install -r requirements.txt\n")
	default:
		b.WriteString("# Follow project-specific build instructions\n")
	}
	b.WriteString("```\n\n")

	b.WriteString("### For existing projects:\n```bash\n")
	b.WriteString("git pull origin main\n")
	fmt.Fprintf(b, "git checkout %s\n", doc.Tag)
	switch family {
	case familyRust:
		b.WriteString("cargo update\ncargo build --release\n")
	case familyNode:
		b.WriteString("npm update\nnpm run build\n")
	case familyPython:
		b.WriteString("pip install --upgrade -r requirements.txt\n")
	default:
		b.WriteString("# Follow project-specific update instructions\n")
	}
	b.WriteString("```\n\n")
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	r := []rune(s)
	return string(r[:width]) + "..."
}
