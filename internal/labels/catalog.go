// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package labels

// Label is a GitHub issue label. Color is hex without '#'.
type Label struct {
	Name        string
	Description string
	Color       string
}

// Rename restyles one of GitHub's default labels.
type Rename struct {
	OldName string
	Label
}

// DefaultRenames gives GitHub's stock labels an emoji prefix and a
// consistent description.
var DefaultRenames = []Rename{
	{"bug", Label{"🐛 bug", "Software bugs and defects", "D73A49"}},
	{"dependencies", Label{"📦 dependencies", "Dependency updates and package management", "0366D6"}},
	{"documentation", Label{"📚 documentation", "Documentation improvements and updates", "0075CA"}},
	{"duplicate", Label{"🔄 duplicate", "Duplicate issues already reported", "CFD3D7"}},
	{"enhancement", Label{"✨ enhancement", "New features and improvements", "A2EEEF"}},
	{"github_actions", Label{"⚙️ github_actions", "CI/CD and GitHub Actions workflow", "000000"}},
	{"good first issue", Label{"🌟 good first issue", "Beginner-friendly issues for new contributors", "7057FF"}},
	{"help wanted", Label{"🙏 help wanted", "Issues where community help is needed", "008672"}},
	{"invalid", Label{"❌ invalid", "Invalid or incorrectly reported issues", "E4E669"}},
	{"question", Label{"❓ question", "Questions about usage or implementation", "CC317C"}},
	{"wontfix", Label{"🚫 wontfix", "Issues that won't be addressed", "FFFFFF"}},
}

// NewLabels are created on top of the renamed defaults.
var NewLabels = []Label{
	// priority
	{"🔴 priority: critical", "Critical issues that need immediate attention", "B60205"},
	{"🟠 priority: high", "High priority issues", "D93F0B"},
	{"🟡 priority: medium", "Medium priority issues", "FBCA04"},
	{"🟢 priority: low", "Low priority issues", "0E8A16"},
	// status
	{"🔄 status: in progress", "Currently being worked on", "0052CC"},
	{"👀 status: needs review", "Waiting for code review", "006B75"},
	{"🚧 status: blocked", "Blocked by external dependencies", "D4C5F9"},
	{"✅ status: ready", "Ready to be implemented", "0E8A16"},
	// component
	{"🎨 ui/ux", "User interface and experience", "F9D0C4"},
	{"🌍 translation", "Translation and internationalization", "1D76DB"},
	{"🔧 cli", "Command line interface", "5319E7"},
	{"📦 release", "Release management and versioning", "0366D6"},
	{"🔍 code-quality", "Code quality checks and linting", "D93F0B"},
	// difficulty
	{"🌱 easy", "Easy to implement, good for beginners", "C2E0C6"},
	{"🌿 medium", "Moderate complexity", "FEF2C0"},
	{"🌳 hard", "Complex implementation required", "F9D0C4"},
	// type
	{"🔒 security", "Security related issues", "D73A49"},
	{"⚡ performance", "Performance optimization", "FBCA04"},
	{"♿ accessibility", "Accessibility improvements", "0052CC"},
	{"🧪 testing", "Testing related issues", "BFD4F2"},
	{"🐞 fix", "Bug fixes", "D73A49"},
	{"✨ feature", "New feature implementation", "A2EEEF"},
}
