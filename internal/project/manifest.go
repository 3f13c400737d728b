// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"
)

// PackageJSON is the subset of package.json Nitrokit reads.
type PackageJSON struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Main            string            `json:"main"`
	Scripts         map[string]string `json:"scripts"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// HasDependency checks both dependency maps.
func (p *PackageJSON) HasDependency(name string) bool {
	if _, ok := p.Dependencies[name]; ok {
		return true
	}
	_, ok := p.DevDependencies[name]
	return ok
}

// HasScript reports whether scripts[name] is defined.
func (p *PackageJSON) HasScript(name string) bool {
	_, ok := p.Scripts[name]
	return ok
}

// ScriptNames returns the script names sorted.
func (p *PackageJSON) ScriptNames() []string {
	names := make([]string, 0, len(p.Scripts))
	for n := range p.Scripts {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ReadPackageJSON parses dir/package.json.
func ReadPackageJSON(dir string) (*PackageJSON, error) {
	data, err := os.ReadFile(filepath.Join(dir, "package.json"))
	if err != nil {
		return nil, err
	}
	var p PackageJSON
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse package.json: %w", err)
	}
	return &p, nil
}

// CargoManifest is the subset of Cargo.toml Nitrokit reads.
type CargoManifest struct {
	Package struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"package"`
	Dependencies    map[string]any `toml:"dependencies"`
	DevDependencies map[string]any `toml:"dev-dependencies"`
}

// DependencyList renders [dependencies] as "name = version" lines, sorted.
// Table-form entries report their "version" key, or "*" when absent.
func (c *CargoManifest) DependencyList() []string {
	out := make([]string, 0, len(c.Dependencies))
	for name, spec := range c.Dependencies {
		version := "*"
		switch v := spec.(type) {
		case string:
			version = v
		case map[string]any:
			if s, ok := v["version"].(string); ok {
				version = s
			} else if p, ok := v["path"].(string); ok {
				version = "path:" + p
			} else if g, ok := v["git"].(string); ok {
				version = "git:" + g
			}
		}
		out = append(out, fmt.Sprintf("%s = %s", name, version))
	}
	sort.Strings(out)
	return out
}

// ReadCargoManifest parses dir/Cargo.toml.
func ReadCargoManifest(dir string) (*CargoManifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, "Cargo.toml"))
	if err != nil {
		return nil, err
	}
	var m CargoManifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse Cargo.toml: %w", err)
	}
	return &m, nil
}

// ComposerJSON is the subset of composer.json Nitrokit reads.
type ComposerJSON struct {
	Name       string            `json:"name"`
	Version    string            `json:"version"`
	Require    map[string]string `json:"require"`
	RequireDev map[string]string `json:"require-dev"`
}

// ReadComposerJSON parses dir/composer.json.
func ReadComposerJSON(dir string) (*ComposerJSON, error) {
	data, err := os.ReadFile(filepath.Join(dir, "composer.json"))
	if err != nil {
		return nil, err
	}
	var c ComposerJSON
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse composer.json: %w", err)
	}
	return &c, nil
}
