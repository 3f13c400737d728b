// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// Package project classifies a directory's toolchain from its marker files.
// Detection is a fixed sequence of existence checks plus a look at the
// dependency names in package.json.
package project

import (
	"os"
	"path/filepath"
	"sort"
)

// Type is the detected project kind.
type Type int

const (
	Unknown Type = iota
	NextJs
	Angular
	React
	Vue
	NodeJs
	TypeScript
	JavaScript
	Rust
	Python
	PHP
)

func (t Type) String() string {
	switch t {
	case NextJs:
		return "Next.js"
	case Angular:
		return "Angular"
	case React:
		return "React"
	case Vue:
		return "Vue.js"
	case NodeJs:
		return "Node.js"
	case TypeScript:
		return "TypeScript"
	case JavaScript:
		return "JavaScript"
	case Rust:
		return "Rust"
	case Python:
		return "Python"
	case PHP:
		return "PHP"
	default:
		return "Unknown"
	}
}

// IsFrontend reports the framework family that gets lint/type-check/test/audit.
func (t Type) IsFrontend() bool {
	switch t {
	case NextJs, Angular, React, Vue, TypeScript:
		return true
	}
	return false
}

// IsNode reports any package.json based project.
func (t Type) IsNode() bool {
	return t.IsFrontend() || t == NodeJs || t == JavaScript
}

// PackageManager names the tool owning the project's dependencies.
type PackageManager string

const (
	NoPackageManager PackageManager = ""
	Npm              PackageManager = "npm"
	Yarn             PackageManager = "yarn"
	Pnpm             PackageManager = "pnpm"
	Bun              PackageManager = "bun"
	Cargo            PackageManager = "cargo"
	Pip              PackageManager = "pip"
	Composer         PackageManager = "composer"
)

// lockfiles is checked in order; the first hit wins.
var lockfiles = []struct {
	file string
	pm   PackageManager
}{
	{"package-lock.json", Npm},
	{"yarn.lock", Yarn},
	{"pnpm-lock.yaml", Pnpm},
	{"bun.lockb", Bun},
	{"Cargo.toml", Cargo},
	{"requirements.txt", Pip},
	{"pyproject.toml", Pip},
	{"poetry.lock", Pip},
	{"composer.json", Composer},
}

// DetectPackageManager returns the manager implied by the first lockfile
// found in dir.
func DetectPackageManager(dir string) PackageManager {
	for _, l := range lockfiles {
		if Exists(dir, l.file) {
			return l.pm
		}
	}
	return NoPackageManager
}

var configPatterns = []string{
	".eslintrc", ".eslintrc.*", "eslint.config.*",
	".prettierrc", ".prettierrc.*",
	"tsconfig.json",
	"jest.config.*", "webpack.config.*", "vite.config.*",
	"tailwind.config.*", "next.config.*",
	"angular.json", ".gitignore", "Dockerfile",
}

var pythonMarkers = []string{"requirements.txt", "pyproject.toml", "setup.py", "poetry.lock"}

// Info is the result of Detect.
type Info struct {
	Root           string
	Type           Type
	PackageManager PackageManager
	HasTypeScript  bool
	ConfigFiles    []string
	Scripts        map[string]string
}

// Detect inspects dir and classifies the project.
func Detect(dir string) (*Info, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, err
	}

	info := &Info{
		Root:           abs,
		Type:           Unknown,
		PackageManager: DetectPackageManager(abs),
		ConfigFiles:    findConfigFiles(abs),
	}

	if Exists(abs, "Cargo.toml") {
		info.Type = Rust
		return info, nil
	}

	for _, m := range pythonMarkers {
		if Exists(abs, m) {
			info.Type = Python
			break
		}
	}

	if Exists(abs, "tsconfig.json") {
		info.HasTypeScript = true
	}

	pkg, pkgErr := ReadPackageJSON(abs)
	if pkgErr == nil {
		info.Scripts = pkg.Scripts
		switch {
		case pkg.HasDependency("next"):
			info.Type = NextJs
		case pkg.HasDependency("@angular/core"):
			info.Type = Angular
		case pkg.HasDependency("vue"):
			info.Type = Vue
		case pkg.HasDependency("react") && info.Type == Unknown:
			info.Type = React
		}
		if pkg.HasDependency("typescript") {
			info.HasTypeScript = true
		}
		if info.Type == Unknown && (len(pkg.Scripts) > 0 || pkg.Main != "") {
			info.Type = NodeJs
		}
	}

	if Exists(abs, "angular.json") {
		info.Type = Angular
	}
	if Exists(abs, "next.config.js") || Exists(abs, "next.config.mjs") || Exists(abs, "next.config.ts") {
		info.Type = NextJs
	}

	if info.Type == Unknown && pkgErr == nil {
		if info.HasTypeScript {
			info.Type = TypeScript
		} else {
			info.Type = JavaScript
		}
	}

	if info.Type == Unknown && Exists(abs, "composer.json") {
		info.Type = PHP
	}

	return info, nil
}

func findConfigFiles(dir string) []string {
	seen := map[string]bool{}
	var out []string
	for _, pattern := range configPatterns {
		matches, _ := filepath.Glob(filepath.Join(dir, pattern))
		for _, m := range matches {
			name := filepath.Base(m)
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	sort.Strings(out)
	return out
}

// Exists reports whether dir/name exists.
func Exists(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}
