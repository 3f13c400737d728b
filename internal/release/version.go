// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// Package release bumps project versions, tags them and publishes GitHub
// releases.
package release

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/nitrokit/nitrokit/internal/project"
)

var (
	ErrInvalidVersion   = errors.New("Version must be in format X.Y.Z")
	ErrTagExists        = errors.New("already exists")
	ErrDirtyWorkingTree = errors.New("working directory has uncommitted changes")
	ErrMissingToken     = errors.New("GITHUB_TOKEN is not set")
)

// Bump is a semantic version increment.
type Bump string

const (
	BumpMajor Bump = "major"
	BumpMinor Bump = "minor"
	BumpPatch Bump = "patch"
)

var versionPattern = regexp.MustCompile(`^v?\d+\.\d+\.\d+(-[\w.]+)?$`)

// ValidateVersion accepts X.Y.Z with an optional v prefix and prerelease.
func ValidateVersion(v string) error {
	if !versionPattern.MatchString(strings.TrimSpace(v)) {
		return fmt.Errorf("%q: %w", v, ErrInvalidVersion)
	}
	return nil
}

// ParseBump recognizes the major/minor/patch keywords.
func ParseBump(s string) (Bump, bool) {
	switch b := Bump(strings.ToLower(strings.TrimSpace(s))); b {
	case BumpMajor, BumpMinor, BumpPatch:
		return b, true
	}
	return "", false
}

// BumpVersion increments current. Prerelease data is dropped.
func BumpVersion(current string, kind Bump) (string, error) {
	v, err := semver.NewVersion(strings.TrimPrefix(current, "v"))
	if err != nil {
		return "", fmt.Errorf("current version %q: %w", current, ErrInvalidVersion)
	}
	var next semver.Version
	switch kind {
	case BumpMajor:
		next = v.IncMajor()
	case BumpMinor:
		next = v.IncMinor()
	case BumpPatch:
		next = v.IncPatch()
	default:
		return "", fmt.Errorf("invalid bump type %q, use major, minor or patch", kind)
	}
	return next.String(), nil
}

// DetermineBump classifies the jump from current to an explicit version.
// The requested version must be greater than current.
func DetermineBump(current, requested string) (Bump, error) {
	if err := ValidateVersion(requested); err != nil {
		return "", err
	}
	cur, err := semver.NewVersion(strings.TrimPrefix(current, "v"))
	if err != nil {
		return "", fmt.Errorf("current version %q: %w", current, ErrInvalidVersion)
	}
	next, err := semver.NewVersion(strings.TrimPrefix(requested, "v"))
	if err != nil {
		return "", fmt.Errorf("%q: %w", requested, ErrInvalidVersion)
	}
	if !next.GreaterThan(cur) {
		return "", fmt.Errorf("new version %s must be higher than current version %s", next, cur)
	}
	switch {
	case next.Major() > cur.Major():
		return BumpMajor, nil
	case next.Minor() > cur.Minor():
		return BumpMinor, nil
	}
	return BumpPatch, nil
}

// NextVersion resolves a user request, either a bump keyword or an
// explicit version, against current. The result has no v prefix.
func NextVersion(current, requested string) (string, error) {
	if kind, ok := ParseBump(requested); ok {
		return BumpVersion(current, kind)
	}
	if _, err := DetermineBump(current, requested); err != nil {
		return "", err
	}
	return strings.TrimPrefix(strings.TrimSpace(requested), "v"), nil
}

// CurrentVersion reads the version recorded in the project's version file.
// It returns "" when the file has none.
func CurrentVersion(dir, versionFile string) (string, error) {
	switch versionFile {
	case "package.json":
		pkg, err := project.ReadPackageJSON(dir)
		if err != nil {
			return "", err
		}
		return pkg.Version, nil
	case "Cargo.toml":
		m, err := project.ReadCargoManifest(dir)
		if err != nil {
			return "", err
		}
		return m.Package.Version, nil
	case "composer.json":
		c, err := project.ReadComposerJSON(dir)
		if err != nil {
			return "", err
		}
		return c.Version, nil
	}
	return "", nil
}

var jsonVersionField = regexp.MustCompile(`("version"\s*:\s*")[^"]*(")`)

// updateJSONVersion rewrites the first "version" field in place so the
// rest of the file keeps its formatting. A file without one gets the
// field inserted after the opening brace.
func updateJSONVersion(path, version string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	content := string(data)
	if loc := jsonVersionField.FindStringSubmatchIndex(content); loc != nil {
		content = content[:loc[3]] + version + content[loc[4]:]
	} else {
		i := strings.Index(content, "{")
		if i < 0 {
			return fmt.Errorf("%s: not a JSON object", filepath.Base(path))
		}
		content = content[:i+1] + "\n  \"version\": \"" + version + "\"," + content[i+1:]
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

// UpdatePackageVersion sets package.json "version".
func UpdatePackageVersion(dir, version string) error {
	return updateJSONVersion(filepath.Join(dir, "package.json"), strings.TrimPrefix(version, "v"))
}

// UpdateComposerVersion sets composer.json "version".
func UpdateComposerVersion(dir, version string) error {
	return updateJSONVersion(filepath.Join(dir, "composer.json"), strings.TrimPrefix(version, "v"))
}

var tomlVersionLine = regexp.MustCompile(`^(\s*version\s*=\s*")[^"]*(".*)$`)

// UpdateCargoVersion sets version in the [package] table of Cargo.toml.
// Only that line is touched.
func UpdateCargoVersion(dir, version string) error {
	path := filepath.Join(dir, "Cargo.toml")
	if _, err := project.ReadCargoManifest(dir); err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	version = strings.TrimPrefix(version, "v")
	lines := strings.Split(string(data), "\n")
	inPackage, done := false, false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[") {
			inPackage = trimmed == "[package]"
			continue
		}
		if inPackage && tomlVersionLine.MatchString(line) {
			lines[i] = tomlVersionLine.ReplaceAllString(line, "${1}"+version+"${2}")
			done = true
			break
		}
	}
	if !done {
		return fmt.Errorf("Cargo.toml: no version in [package]")
	}
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644)
}

// UpdateVersionFile dispatches on the file name.
func UpdateVersionFile(dir, versionFile, version string) error {
	switch versionFile {
	case "package.json":
		return UpdatePackageVersion(dir, version)
	case "Cargo.toml":
		return UpdateCargoVersion(dir, version)
	case "composer.json":
		return UpdateComposerVersion(dir, version)
	}
	return fmt.Errorf("unsupported version file %q", versionFile)
}
