// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package quality

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nitrokit/nitrokit/internal/config"
	"github.com/nitrokit/nitrokit/internal/project"
)

func commands(checks []Check) []string {
	out := make([]string, 0, len(checks))
	for _, c := range checks {
		out = append(out, c.String())
	}
	return out
}

func TestPlanChecks(t *testing.T) {
	cfg := DefaultConfig()
	cases := []struct {
		name string
		info project.Info
		want []string
	}{
		{
			name: "next with typescript on pnpm",
			info: project.Info{Type: project.NextJs, PackageManager: project.Pnpm, HasTypeScript: true},
			want: []string{"pnpm run lint", "pnpm run type-check", "pnpm test", "pnpm audit"},
		},
		{
			name: "plain node falls back to npm",
			info: project.Info{Type: project.NodeJs},
			want: []string{"npm run lint", "npm test", "npm audit"},
		},
		{
			name: "rust",
			info: project.Info{Type: project.Rust, PackageManager: project.Cargo},
			want: []string{"cargo fmt -- --check", "cargo clippy -- -D warnings", "cargo test"},
		},
		{
			name: "python",
			info: project.Info{Type: project.Python},
			want: []string{"flake8 .", "black --check .", "pytest", "bandit -r ."},
		},
		{
			name: "unknown",
			info: project.Info{Type: project.Unknown},
			want: []string{"validate"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := commands(PlanChecks(&tc.info, cfg))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("PlanChecks mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPlanChecks_FiltersKinds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnabledChecks = []string{KindTest}
	got := commands(PlanChecks(&project.Info{Type: project.Rust}, cfg))
	if diff := cmp.Diff([]string{"cargo test"}, got); diff != "" {
		t.Fatalf("filter mismatch (-want +got):\n%s", diff)
	}

	cfg.EnabledChecks = []string{KindLint}
	got = commands(PlanChecks(&project.Info{Type: project.React, HasTypeScript: true}, cfg))
	if diff := cmp.Diff([]string{"npm run lint", "npm run type-check"}, got); diff != "" {
		t.Fatalf("type-check belongs to lint (-want +got):\n%s", diff)
	}
}

func TestInstallStep(t *testing.T) {
	dir := t.TempDir()
	info := &project.Info{Root: dir, Type: project.NodeJs, PackageManager: project.Yarn}

	check, ok := InstallStep(info, DefaultConfig())
	if !ok || check.String() != "yarn install" {
		t.Fatalf("expected yarn install, got %v %v", check, ok)
	}

	skip := DefaultConfig()
	skip.SkipDependencies = true
	if _, ok := InstallStep(info, skip); ok {
		t.Fatal("SkipDependencies must suppress install")
	}

	if err := os.Mkdir(filepath.Join(dir, "node_modules"), 0o755); err != nil {
		t.Fatal(err)
	}
	if _, ok := InstallStep(info, DefaultConfig()); ok {
		t.Fatal("existing node_modules needs no install")
	}
	if _, ok := InstallStep(&project.Info{Root: dir, Type: project.Rust}, DefaultConfig()); ok {
		t.Fatal("rust projects have no install step")
	}
}

func TestLoadConfig(t *testing.T) {
	base := FromSettings(config.Quality{MaxParallelJobs: 2})
	if base.MaxParallelJobs != 2 || base.TimeoutSeconds != 300 || len(base.EnabledChecks) != 4 {
		t.Fatalf("FromSettings: %+v", base)
	}

	missing, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"), base)
	if err != nil || missing.MaxParallelJobs != 2 {
		t.Fatalf("missing file should return base: %+v %v", missing, err)
	}

	path := filepath.Join(t.TempDir(), "quality.json")
	if err := os.WriteFile(path, []byte(`{"enabled_checks":["lint"],"timeout_seconds":60}`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path, base)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Config{EnabledChecks: []string{"lint"}, MaxParallelJobs: 2, TimeoutSeconds: 60}, cfg); diff != "" {
		t.Fatalf("LoadConfig mismatch (-want +got):\n%s", diff)
	}

	if err := os.WriteFile(path, []byte(`{not json`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path, base); err == nil {
		t.Fatal("expected parse error")
	}
}
