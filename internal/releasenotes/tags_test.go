// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package releasenotes

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCleanTagName(t *testing.T) {
	cases := map[string]string{
		"v0.1.0-main.2025.05.26.b9a7534": "v0.1.0",
		"v1.0.0.abc1234":                 "v1.0.0",
		"v2.3.4":                         "v2.3.4",
		"v1.0.0-beta.1":                  "v1.0.0",
		"feature/login":                  "feature_login",
		"release:1.0":                    "release_1.0",
		"":                               DefaultTag,
		"   ":                            DefaultTag,
	}
	for in, want := range cases {
		if got := CleanTagName(in); got != want {
			t.Errorf("CleanTagName(%q) = %q, want %q", in, got, want)
		}
		// cleaning twice changes nothing
		if got := CleanTagName(CleanTagName(in)); got != want {
			t.Errorf("CleanTagName not idempotent for %q: %q", in, got)
		}
	}
}

func TestIsVersionTag(t *testing.T) {
	good := []string{"v1.0.0", "1.2.3", "release-4", "version_2", "rel-7", "build.5"}
	bad := []string{"latest", "backup-1.0", "temp-2", "test1", "old-v1", "vnext"}
	for _, tag := range good {
		if !IsVersionTag(tag) {
			t.Errorf("expected %q to be a version tag", tag)
		}
	}
	for _, tag := range bad {
		if IsVersionTag(tag) {
			t.Errorf("expected %q to be rejected", tag)
		}
	}
}

func TestCompareVersionTags(t *testing.T) {
	if CompareVersionTags("v1.10.0", "v1.9.0") != 1 {
		t.Fatalf("numeric comparison expected 1.10 > 1.9")
	}
	if CompareVersionTags("v1.0", "v1.0.1") != -1 {
		t.Fatalf("longer tag should be newer")
	}
	if CompareVersionTags("v2.0.0", "2.0.0") != 0 {
		t.Fatalf("prefix should not matter")
	}
}

func TestSortVersionTagsAndRange(t *testing.T) {
	tags := []string{"v1.9.0", "backup-2.0", "v1.10.0", "v1.2.0", "nightly"}
	got := SortVersionTags(tags)
	want := []string{"v1.10.0", "v1.9.0", "v1.2.0"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("SortVersionTags mismatch (-want +got):\n%s", diff)
	}

	latest, prev, ok := TagRange(tags)
	if !ok || latest != "v1.10.0" || prev != "v1.9.0" {
		t.Fatalf("TagRange = %q %q %v", latest, prev, ok)
	}
	latest, prev, ok = TagRange([]string{"v1.0.0"})
	if !ok || latest != "v1.0.0" || prev != "" {
		t.Fatalf("single tag range = %q %q %v", latest, prev, ok)
	}
	if _, _, ok := TagRange([]string{"nightly"}); ok {
		t.Fatalf("expected no range without version tags")
	}
}

func TestSmartTag(t *testing.T) {
	const d, h = "2025.05.26", "b9a7534"
	cases := []struct {
		name                   string
		branch, date, hash, msg string
		want                   string
	}{
		{"release branch", "release/1.2.3", d, h, "anything", "v1.2.3"},
		{"main", "main", d, h, "update readme", "v0.1.0-main." + d + "." + h},
		{"empty branch is main", "", d, h, "chore", "v0.1.0-main." + d + "." + h},
		{"feature message", "develop", d, h, "feat: login", "v0.2.0-dev." + d + "." + h},
		{"fix message", "main", d, h, "fix: crash", "v0.1.1-dev." + d + "." + h},
		{"breaking message", "main", d, h, "BREAKING: drop api", "v1.0.0-dev." + d + "." + h},
		{"develop", "develop", d, h, "wip", "v0.1.0-dev." + d + "." + h},
		{"feature branch", "feature/login", d, h, "wip", "v0.1.0-feature." + d + "." + h},
		{"hotfix branch", "hotfix/crash", d, h, "wip", "v0.1.0-hotfix." + d + "." + h},
		{"other branch", "spike/cache", d, h, "wip", "v0.1.0-spike-cache." + d + "." + h},
		{"no commit data", "main", "", "", "wip", "v0.1.0-dev"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SmartTag(tc.branch, tc.date, tc.hash, tc.msg); got != tc.want {
				t.Fatalf("SmartTag = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestIsPrerelease(t *testing.T) {
	for _, tag := range []string{"v1.0.0-alpha", "v1.0.0-beta.2", "v2.0.0-RC1", "v0.1.0-pre"} {
		if !IsPrerelease(tag) {
			t.Errorf("%q should be a prerelease", tag)
		}
	}
	if IsPrerelease("v1.0.0") {
		t.Errorf("v1.0.0 is not a prerelease")
	}
}
