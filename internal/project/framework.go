// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package project

// Framework is the release-side view of a project: which manifest carries
// the version and which scripts exist around a release.
type Framework int

const (
	FrameworkUnknown Framework = iota
	FrameworkNextJs
	FrameworkAngular
	FrameworkNodeJs
	FrameworkReact
	FrameworkVue
	FrameworkRust
	FrameworkLaravel
)

func (f Framework) String() string {
	switch f {
	case FrameworkNextJs:
		return "Next.js"
	case FrameworkAngular:
		return "Angular"
	case FrameworkNodeJs:
		return "Node.js"
	case FrameworkReact:
		return "React"
	case FrameworkVue:
		return "Vue.js"
	case FrameworkRust:
		return "Rust"
	case FrameworkLaravel:
		return "Laravel"
	default:
		return "Unknown"
	}
}

// ReleaseConfig describes what a release needs to touch.
type ReleaseConfig struct {
	Framework      Framework
	PackageManager PackageManager
	HasTests       bool
	HasBuild       bool
	HasLint        bool
	VersionFile    string
}

// DetectFramework classifies dir for release purposes. Next.js wins over
// React because every Next.js app also depends on react.
func DetectFramework(dir string) Framework {
	pkg, _ := ReadPackageJSON(dir)
	has := func(dep string) bool { return pkg != nil && pkg.HasDependency(dep) }

	switch {
	case Exists(dir, "next.config.js") || Exists(dir, "next.config.mjs") || Exists(dir, "next.config.ts") || has("next"):
		return FrameworkNextJs
	case Exists(dir, "angular.json") || has("@angular/core"):
		return FrameworkAngular
	case has("vue"):
		return FrameworkVue
	case has("react"):
		return FrameworkReact
	case pkg != nil:
		return FrameworkNodeJs
	case Exists(dir, "Cargo.toml"):
		return FrameworkRust
	case Exists(dir, "artisan") && Exists(dir, "composer.json"):
		return FrameworkLaravel
	}
	return FrameworkUnknown
}

// DetectReleaseConfig builds the ReleaseConfig for dir.
func DetectReleaseConfig(dir string) ReleaseConfig {
	cfg := ReleaseConfig{
		Framework:      DetectFramework(dir),
		PackageManager: DetectPackageManager(dir),
	}

	switch {
	case Exists(dir, "package.json"):
		cfg.VersionFile = "package.json"
	case Exists(dir, "Cargo.toml"):
		cfg.VersionFile = "Cargo.toml"
	case Exists(dir, "composer.json"):
		cfg.VersionFile = "composer.json"
	}

	if pkg, err := ReadPackageJSON(dir); err == nil {
		cfg.HasTests = pkg.HasScript("test")
		cfg.HasBuild = pkg.HasScript("build")
		cfg.HasLint = pkg.HasScript("lint")
	} else if cfg.Framework == FrameworkRust {
		cfg.HasTests, cfg.HasBuild, cfg.HasLint = true, true, true
	}
	return cfg
}
