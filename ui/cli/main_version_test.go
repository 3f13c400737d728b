// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.
package cli

import (
	"runtime/debug"
	"testing"

	"github.com/nitrokit/nitrokit/buildvars"
)

func TestResolveBuildVersion_MainVersion(t *testing.T) {
	info := &debug.BuildInfo{
		Main: debug.Module{Path: "github.com/nitrokit/nitrokit", Version: "v1.2.3"},
	}
	v, c, d := resolveBuildVersion(info)
	if v != "v1.2.3" {
		t.Fatalf("expected v1.2.3 got %s", v)
	}
	if c != gitCommit {
		t.Fatalf("expected commit to equal package gitCommit (default) got %s", c)
	}
	if d != buildDate {
		t.Fatalf("expected date to equal package buildDate (default) got %s", d)
	}
}

func TestResolveBuildVersion_DependencyFallback(t *testing.T) {
	info := &debug.BuildInfo{
		Main: debug.Module{Path: "github.com/nitrokit/nitrokit", Version: "(devel)"},
		Deps: []*debug.Module{
			{Path: "github.com/nitrokit/nitrokit", Version: "v0.4.1-0.20260130131337-d1692e4643ee"},
		},
	}
	v, _, _ := resolveBuildVersion(info)
	if v != "v0.4.1-0.20260130131337-d1692e4643ee" {
		t.Fatalf("expected dependency version fallback got %s", v)
	}
}

func TestResolveBuildVersion_GitCommitFallback(t *testing.T) {
	orig := gitCommit
	defer func() { gitCommit = orig }()
	gitCommit = "deadbeef"
	info := &debug.BuildInfo{
		Main: debug.Module{Path: "github.com/nitrokit/nitrokit", Version: "(devel)"},
	}
	v, _, _ := resolveBuildVersion(info)
	if v != "deadbeef" {
		t.Fatalf("expected gitCommit fallback got %s", v)
	}
}

func TestResolveBuildVersion_VCSSettings(t *testing.T) {
	info := &debug.BuildInfo{
		Main: debug.Module{Path: "github.com/nitrokit/nitrokit", Version: "(devel)"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123abcd"},
			{Key: "vcs.time", Value: "2026-03-01T10:00:00Z"},
		},
	}
	_, c, d := resolveBuildVersion(info)
	if c != "0123abcd" {
		t.Fatalf("expected vcs revision, got %s", c)
	}
	if d != "2026-03-01T10:00:00Z" {
		t.Fatalf("expected vcs time, got %s", d)
	}
}

func TestResolveBuildVersion_LinkerVarsWin(t *testing.T) {
	origV, origC := buildvars.Version, buildvars.Commit
	defer func() { buildvars.Version, buildvars.Commit = origV, origC }()
	buildvars.Version = "v2.0.0"
	buildvars.Commit = "cafe"

	info := &debug.BuildInfo{
		Main:     debug.Module{Path: "github.com/nitrokit/nitrokit", Version: "v1.0.0"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "0123abcd"}},
	}
	v, c, _ := resolveBuildVersion(info)
	if v != "v2.0.0" || c != "cafe" {
		t.Fatalf("linker values must win, got %s %s", v, c)
	}
}
