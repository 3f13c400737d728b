// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package releasenotes

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// DefaultTag is used when nothing better can be derived.
const DefaultTag = "v0.1.0"

// IsVersionTag reports whether tag looks like a release version.
func IsVersionTag(tag string) bool {
	if !strings.ContainsFunc(tag, unicode.IsDigit) {
		return false
	}
	lower := strings.ToLower(tag)
	for _, junk := range []string{"backup", "temp", "test", "old"} {
		if strings.Contains(lower, junk) {
			return false
		}
	}
	return strings.HasPrefix(lower, "v") ||
		unicode.IsDigit(rune(tag[0])) ||
		strings.Contains(lower, "release") ||
		strings.Contains(lower, "version") ||
		strings.Contains(lower, "rel-") ||
		strings.Contains(tag, ".")
}

func versionNumbers(tag string) []int {
	var b strings.Builder
	for _, r := range tag {
		if unicode.IsDigit(r) || r == '.' {
			b.WriteRune(r)
		}
	}
	var nums []int
	for _, part := range strings.Split(b.String(), ".") {
		if n, err := strconv.Atoi(part); err == nil {
			nums = append(nums, n)
		}
	}
	return nums
}

// CompareVersionTags orders tags by their numeric components. Non-digit
// characters are dropped; when one tag is a prefix of the other the longer
// one is newer. Returns -1, 0 or 1.
func CompareVersionTags(a, b string) int {
	va, vb := versionNumbers(a), versionNumbers(b)
	for i := 0; i < len(va) && i < len(vb); i++ {
		switch {
		case va[i] < vb[i]:
			return -1
		case va[i] > vb[i]:
			return 1
		}
	}
	switch {
	case len(va) < len(vb):
		return -1
	case len(va) > len(vb):
		return 1
	}
	return 0
}

// SortVersionTags filters tags through IsVersionTag and sorts them newest
// first.
func SortVersionTags(tags []string) []string {
	var out []string
	for _, t := range tags {
		if IsVersionTag(t) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return CompareVersionTags(out[i], out[j]) > 0 })
	return out
}

// TagRange picks the latest and previous version tags. ok is false when
// tags contains no version tag.
func TagRange(tags []string) (latest, previous string, ok bool) {
	sorted := SortVersionTags(tags)
	if len(sorted) == 0 {
		return "", "", false
	}
	if len(sorted) > 1 {
		previous = sorted[1]
	}
	return sorted[0], previous, true
}

var releaseBranchVersion = regexp.MustCompile(`v?(\d+\.\d+\.\d+(?:-[a-zA-Z0-9]+)?)`)

// SmartTag derives a tag name for an untagged repository from the branch,
// the commit date (2006.01.02), the short hash and the commit message.
func SmartTag(branch, date, hash, message string) string {
	branch = strings.TrimSpace(branch)
	if branch == "" {
		branch = "main"
	}
	branchLower := strings.ToLower(branch)
	msg := strings.ToLower(message)

	if strings.Contains(branchLower, "release") || strings.Contains(branchLower, "rel") {
		if m := releaseBranchVersion.FindStringSubmatch(branch); m != nil {
			return "v" + m[1]
		}
	}

	if date == "" || hash == "" {
		return DefaultTag + "-dev"
	}
	suffix := fmt.Sprintf("%s.%s", date, hash)

	switch {
	case strings.Contains(msg, "major") || strings.Contains(msg, "breaking"):
		return "v1.0.0-dev." + suffix
	case strings.Contains(msg, "minor") || strings.Contains(msg, "feature") || strings.Contains(msg, "feat"):
		return "v0.2.0-dev." + suffix
	case strings.Contains(msg, "patch") || strings.Contains(msg, "fix") || strings.Contains(msg, "hotfix"):
		return "v0.1.1-dev." + suffix
	}

	switch {
	case branchLower == "main" || branchLower == "master":
		return "v0.1.0-main." + suffix
	case branchLower == "develop" || branchLower == "dev":
		return "v0.1.0-dev." + suffix
	case strings.HasPrefix(branchLower, "feature/"):
		return "v0.1.0-feature." + suffix
	case strings.HasPrefix(branchLower, "hotfix/"):
		return "v0.1.0-hotfix." + suffix
	}
	return fmt.Sprintf("v0.1.0-%s.%s", strings.ReplaceAll(branchLower, "/", "-"), suffix)
}

var hashComponent = regexp.MustCompile(`^(v?\d+\.\d+\.\d+)\.[0-9a-fA-F]{6,}$`)

// CleanTagName turns a tag into something safe for a file name: build and
// prerelease suffixes are dropped and path separators become underscores.
// Empty input yields DefaultTag. Clean tags are returned unchanged.
func CleanTagName(tag string) string {
	tag = strings.TrimSpace(tag)

	// Prerelease/build suffix: "v0.1.0-main.2025.05.26.b9a7534" -> "v0.1.0".
	if i := strings.Index(tag, "-"); i > 0 {
		tag = tag[:i]
	}
	// Trailing commit hash: "v1.0.0.abc1234" -> "v1.0.0".
	if m := hashComponent.FindStringSubmatch(tag); m != nil {
		tag = m[1]
	}

	tag = strings.NewReplacer("/", "_", ":", "_", " ", "_").Replace(tag)
	if strings.Trim(tag, "_.") == "" {
		return DefaultTag
	}
	return tag
}

// IsPrerelease reports the common prerelease markers.
func IsPrerelease(tag string) bool {
	lower := strings.ToLower(tag)
	for _, marker := range []string{"-alpha", "-beta", "-rc", "-pre", "-snapshot"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
