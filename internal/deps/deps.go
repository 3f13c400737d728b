// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// Package deps updates the dependencies of every ecosystem found in a
// project directory through its native package manager.
package deps

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/nitrokit/nitrokit/internal/execx"
	"github.com/nitrokit/nitrokit/internal/logging"
	"github.com/nitrokit/nitrokit/internal/project"
)

// ErrNoManifests is returned when dir has nothing to update.
var ErrNoManifests = errors.New("no dependency files found")

type Ecosystem string

const (
	Node   Ecosystem = "node"
	Rust   Ecosystem = "rust"
	Python Ecosystem = "python"
	PHP    Ecosystem = "php"
)

// Manifest is a dependency file and the ecosystem it belongs to.
type Manifest struct {
	File      string
	Ecosystem Ecosystem
}

var manifests = []Manifest{
	{"package.json", Node},
	{"Cargo.toml", Rust},
	{"requirements.txt", Python},
	{"composer.json", PHP},
}

// Detect lists the manifests present in dir.
func Detect(dir string) []Manifest {
	var found []Manifest
	for _, m := range manifests {
		if project.Exists(dir, m.File) {
			found = append(found, m)
		}
	}
	return found
}

// StepResult is one package-manager invocation.
type StepResult struct {
	Name    string
	Command string
	Success bool
	Skipped bool
	Output  string
	Warning string
}

// Report covers one ecosystem.
type Report struct {
	Ecosystem      Ecosystem
	Manifest       string
	PackageManager string
	Dependencies   []string
	BackedUp       []string
	Steps          []StepResult
}

// Failed reports whether any step that ran failed.
func (r Report) Failed() bool {
	for _, s := range r.Steps {
		if !s.Skipped && !s.Success {
			return true
		}
	}
	return false
}

// Updater runs the updates in Dir.
type Updater struct {
	Dir    string
	Runner execx.Runner
	Now    func() time.Time
}

func NewUpdater(r execx.Runner, dir string) *Updater {
	return &Updater{Dir: dir, Runner: r, Now: time.Now}
}

// Run updates every detected ecosystem. Missing tools and failing steps
// are recorded in the reports; only an empty directory is an error.
func (u *Updater) Run(ctx context.Context) ([]Report, error) {
	found := Detect(u.Dir)
	if len(found) == 0 {
		return nil, ErrNoManifests
	}
	now := time.Now()
	if u.Now != nil {
		now = u.Now()
	}

	var reports []Report
	for _, m := range found {
		logging.Infof("Analyzing: %s", m.File)
		var rep Report
		switch m.Ecosystem {
		case Node:
			rep = u.updateNode(ctx, now)
		case Rust:
			rep = u.updateRust(ctx, now)
		case Python:
			rep = u.updatePython(ctx)
		case PHP:
			rep = u.updatePHP(ctx)
		}
		rep.Ecosystem, rep.Manifest = m.Ecosystem, m.File
		reports = append(reports, rep)
	}
	return reports, nil
}

// NodePackageManager picks the manager from the lockfile, else the first
// installed of pnpm, yarn and npm.
func (u *Updater) NodePackageManager(ctx context.Context) (string, bool) {
	switch {
	case project.Exists(u.Dir, "pnpm-lock.yaml"):
		return "pnpm", true
	case project.Exists(u.Dir, "yarn.lock"):
		return "yarn", true
	case project.Exists(u.Dir, "package-lock.json"):
		return "npm", true
	}
	for _, pm := range []string{"pnpm", "yarn", "npm"} {
		if execx.Available(ctx, u.Runner, pm) {
			return pm, true
		}
	}
	return "", false
}

func (u *Updater) step(ctx context.Context, name, cmd string, args ...string) StepResult {
	st := StepResult{Name: name, Command: execx.CommandString(cmd, args...)}
	res, err := u.Runner.Run(ctx, u.Dir, cmd, args...)
	st.Output = strings.TrimSpace(res.Combined())
	st.Success = err == nil
	if err != nil {
		logging.Errorf("%s failed: %v", st.Command, err)
	}
	return st
}

// infoStep runs a report-only command. `outdated` and `audit` exit
// non-zero when they find something, which is not a failure.
func (u *Updater) infoStep(ctx context.Context, name, cmd string, args ...string) StepResult {
	st := StepResult{Name: name, Command: execx.CommandString(cmd, args...)}
	res, err := u.Runner.Run(ctx, u.Dir, cmd, args...)
	st.Output = strings.TrimSpace(res.Combined())
	var exitErr *execx.ExitError
	st.Success = err == nil || errors.As(err, &exitErr)
	if !st.Success {
		logging.Warnf("%s failed: %v", st.Command, err)
	}
	return st
}

func skipped(name, warning string) StepResult {
	logging.Warnf("%s", warning)
	return StepResult{Name: name, Skipped: true, Warning: warning}
}

func (u *Updater) updateNode(ctx context.Context, now time.Time) Report {
	var rep Report
	if pkg, err := project.ReadPackageJSON(u.Dir); err == nil {
		rep.Dependencies = nodeDependencies(pkg)
	} else {
		logging.Warnf("could not read package.json: %v", err)
	}

	pm, ok := u.NodePackageManager(ctx)
	if !ok {
		rep.Steps = append(rep.Steps, skipped("update", "No Node.js package manager found (npm, yarn, or pnpm)"))
		return rep
	}
	rep.PackageManager = pm
	logging.Infof("Using package manager: %s", pm)
	rep.BackedUp = u.backup(now, "package.json", "package-lock.json", "yarn.lock", "pnpm-lock.yaml")

	cmd, prefix := pm, []string(nil)
	if pm == "yarn" && !execx.Available(ctx, u.Runner, "yarn") {
		logging.Warnf("Yarn not found, trying npx yarn")
		cmd, prefix = "npx", []string{"yarn"}
	}
	with := func(args ...string) []string { return append(append([]string(nil), prefix...), args...) }

	update := "update"
	if pm == "yarn" {
		update = "upgrade"
	}
	up := u.step(ctx, "update", cmd, with(update)...)
	rep.Steps = append(rep.Steps, up)
	if !up.Success {
		return rep
	}
	rep.Steps = append(rep.Steps, u.infoStep(ctx, "outdated", cmd, with("outdated")...))

	audit := u.infoStep(ctx, "audit", cmd, with("audit")...)
	if hasVulnerabilities(audit.Output) {
		audit.Warning = "security audit reported vulnerabilities"
		logging.Warnf("%s", audit.Warning)
	}
	rep.Steps = append(rep.Steps, audit)
	return rep
}

func hasVulnerabilities(out string) bool {
	lower := strings.ToLower(out)
	return strings.Contains(lower, "vulnerabilities") &&
		!strings.Contains(lower, "found 0 vulnerabilities") &&
		!strings.Contains(lower, "no known vulnerabilities")
}

func nodeDependencies(pkg *project.PackageJSON) []string {
	var out []string
	for name, v := range pkg.Dependencies {
		out = append(out, name+"@"+v)
	}
	for name, v := range pkg.DevDependencies {
		out = append(out, name+"@"+v+" (dev)")
	}
	sort.Strings(out)
	return out
}

func (u *Updater) updateRust(ctx context.Context, now time.Time) Report {
	var rep Report
	rep.PackageManager = "cargo"
	rep.BackedUp = u.backup(now, "Cargo.toml", "Cargo.lock")
	if m, err := project.ReadCargoManifest(u.Dir); err == nil {
		rep.Dependencies = m.DependencyList()
	} else {
		logging.Warnf("could not read Cargo.toml: %v", err)
	}
	if !execx.Available(ctx, u.Runner, "cargo") {
		rep.Steps = append(rep.Steps, skipped("update", "cargo not found, skipping Rust dependencies"))
		return rep
	}
	rep.Steps = append(rep.Steps, u.step(ctx, "update", "cargo", "update"))
	return rep
}

func (u *Updater) updatePython(ctx context.Context) Report {
	var rep Report
	rep.PackageManager = "pip"
	rep.Dependencies = readRequirements(filepath.Join(u.Dir, "requirements.txt"))
	if !execx.Available(ctx, u.Runner, "pip") {
		rep.Steps = append(rep.Steps, skipped("update", "pip not found, skipping Python dependencies"))
		return rep
	}
	rep.Steps = append(rep.Steps,
		u.step(ctx, "update", "pip", "install", "--upgrade", "-r", "requirements.txt"),
		u.infoStep(ctx, "outdated", "pip", "list", "--outdated"))
	return rep
}

func readRequirements(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out
}

func (u *Updater) updatePHP(ctx context.Context) Report {
	var rep Report
	rep.PackageManager = "composer"
	if c, err := project.ReadComposerJSON(u.Dir); err == nil {
		for name, v := range c.Require {
			rep.Dependencies = append(rep.Dependencies, name+" "+v)
		}
		for name, v := range c.RequireDev {
			rep.Dependencies = append(rep.Dependencies, name+" "+v+" (dev)")
		}
		sort.Strings(rep.Dependencies)
	}
	if !execx.Available(ctx, u.Runner, "composer") {
		rep.Steps = append(rep.Steps, skipped("update", "composer not found, skipping PHP dependencies"))
		return rep
	}
	up := u.step(ctx, "update", "composer", "update")
	rep.Steps = append(rep.Steps, up)
	if up.Success {
		rep.Steps = append(rep.Steps, u.infoStep(ctx, "outdated", "composer", "outdated"))
	}
	return rep
}

func (u *Updater) backup(now time.Time, files ...string) []string {
	dir, copied, err := Backup(u.Dir, files, now)
	if err != nil {
		logging.Errorf("Failed to create backup directory: %v", err)
		return nil
	}
	if len(copied) > 0 {
		logging.Infof("Backup created in %s", dir)
	}
	return copied
}

// Backup copies the existing files into dir/backup/YYYYMMDDHHMMSS and
// returns the directory and the names copied. The directory is removed
// again when nothing was copied.
func Backup(dir string, files []string, now time.Time) (string, []string, error) {
	target := filepath.Join(dir, "backup", now.Format("20060102150405"))
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", nil, err
	}
	var copied []string
	for _, name := range files {
		src := filepath.Join(dir, name)
		if !project.Exists(dir, name) {
			continue
		}
		if err := copyFile(src, filepath.Join(target, name)); err != nil {
			logging.Warnf("Failed to backup %s: %v", name, err)
			continue
		}
		copied = append(copied, name)
	}
	if len(copied) == 0 {
		_ = os.Remove(target)
		return "", nil, nil
	}
	return target, copied, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", filepath.Base(src), err)
	}
	return out.Close()
}
