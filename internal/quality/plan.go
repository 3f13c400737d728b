// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package quality

import (
	"github.com/nitrokit/nitrokit/internal/execx"
	"github.com/nitrokit/nitrokit/internal/project"
)

// Check kinds, matched against Config.EnabledChecks.
const (
	KindLint     = "lint"
	KindFormat   = "format"
	KindSecurity = "security"
	KindTest     = "test"
	KindInstall  = "install"
	KindBasic    = "basic"
)

// Check is one external command. An empty Command is a built-in check
// that always passes.
type Check struct {
	Name    string
	Kind    string
	Command string
	Args    []string
}

func (c Check) String() string {
	if c.Command == "" {
		return c.Name
	}
	return execx.CommandString(c.Command, c.Args...)
}

func nodeCommand(pm project.PackageManager) string {
	switch pm {
	case project.Yarn, project.Pnpm, project.Bun:
		return string(pm)
	}
	return string(project.Npm)
}

// PlanChecks lists the checks for info, filtered by cfg.EnabledChecks.
func PlanChecks(info *project.Info, cfg Config) []Check {
	var all []Check
	switch {
	case info.Type.IsFrontend():
		pm := nodeCommand(info.PackageManager)
		all = append(all, Check{Name: "lint", Kind: KindLint, Command: pm, Args: []string{"run", "lint"}})
		if info.HasTypeScript {
			all = append(all, Check{Name: "typecheck", Kind: KindLint, Command: pm, Args: []string{"run", "type-check"}})
		}
		all = append(all,
			Check{Name: "test", Kind: KindTest, Command: pm, Args: []string{"test"}},
			Check{Name: "security", Kind: KindSecurity, Command: pm, Args: []string{"audit"}})
	case info.Type.IsNode():
		pm := nodeCommand(info.PackageManager)
		all = append(all,
			Check{Name: "lint", Kind: KindLint, Command: pm, Args: []string{"run", "lint"}},
			Check{Name: "test", Kind: KindTest, Command: pm, Args: []string{"test"}},
			Check{Name: "security", Kind: KindSecurity, Command: pm, Args: []string{"audit"}})
	case info.Type == project.Rust:
		all = append(all,
			Check{Name: "format", Kind: KindFormat, Command: "cargo", Args: []string{"fmt", "--", "--check"}},
			Check{Name: "lint", Kind: KindLint, Command: "cargo", Args: []string{"clippy", "--", "-D", "warnings"}},
			Check{Name: "test", Kind: KindTest, Command: "cargo", Args: []string{"test"}})
	case info.Type == project.Python:
		all = append(all,
			Check{Name: "lint", Kind: KindLint, Command: "flake8", Args: []string{"."}},
			Check{Name: "format", Kind: KindFormat, Command: "black", Args: []string{"--check", "."}},
			Check{Name: "test", Kind: KindTest, Command: "pytest"},
			Check{Name: "security", Kind: KindSecurity, Command: "bandit", Args: []string{"-r", "."}})
	default:
		all = append(all, Check{Name: "validate", Kind: KindBasic})
	}

	checks := all[:0]
	for _, c := range all {
		if cfg.Enabled(c.Kind) {
			checks = append(checks, c)
		}
	}
	return checks
}

// InstallStep returns the dependency install that must precede the checks
// of a Node project without node_modules. ok is false when nothing needs
// installing or cfg.SkipDependencies is set.
func InstallStep(info *project.Info, cfg Config) (check Check, ok bool) {
	if cfg.SkipDependencies || !info.Type.IsNode() || project.Exists(info.Root, "node_modules") {
		return Check{}, false
	}
	return Check{Name: "install", Kind: KindInstall, Command: nodeCommand(info.PackageManager), Args: []string{"install"}}, true
}
