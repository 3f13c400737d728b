// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// Package labels manages a repository's issue labels through the gh CLI.
package labels

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/nitrokit/nitrokit/internal/execx"
	"github.com/nitrokit/nitrokit/internal/logging"
)

var (
	ErrGhMissing        = errors.New("GitHub CLI (gh) is not installed")
	ErrNotAuthenticated = errors.New("not authenticated with GitHub")
)

// Options mirror the github-labels flags.
type Options struct {
	SkipAuth    bool
	SkipInstall bool
	DryRun      bool
	ListOnly    bool
	DeleteAll   bool
	// UpdateOnly restyles existing labels without creating new ones.
	UpdateOnly bool
}

// Summary counts what Run did, or would do in a dry run.
type Summary struct {
	Updated int
	Created int
	Deleted int
	Failed  int
	Labels  []Label
}

// Manager wraps gh.
type Manager struct {
	Runner execx.Runner
	Dir    string
	// Confirm asks the user before installing gh or logging in. Nil
	// declines.
	Confirm func(prompt string) bool
	// Interactive runs a command attached to the terminal.
	Interactive func(ctx context.Context, dir, name string, args ...string) error
	GOOS        string
	// FileExists probes distribution marker files.
	FileExists func(path string) bool
}

func NewManager(r execx.Runner, dir string) *Manager {
	return &Manager{
		Runner:      r,
		Dir:         dir,
		Interactive: execx.RunInteractive,
		GOOS:        runtime.GOOS,
		FileExists: func(path string) bool {
			_, err := os.Stat(path)
			return err == nil
		},
	}
}

// Run executes the label workflow: ensure gh, ensure auth, then list,
// delete, update and create as opts ask.
func (m *Manager) Run(ctx context.Context, opts Options) (Summary, error) {
	var sum Summary
	if !opts.SkipInstall {
		if err := m.ensureGh(ctx, opts.DryRun); err != nil {
			return sum, err
		}
	}
	if !opts.SkipAuth {
		if err := m.ensureAuth(ctx, opts.DryRun); err != nil {
			return sum, err
		}
	}

	if opts.ListOnly {
		labels, err := m.List(ctx, 50)
		sum.Labels = labels
		return sum, err
	}

	if opts.DeleteAll {
		if err := m.deleteAll(ctx, opts.DryRun, &sum); err != nil {
			return sum, err
		}
	}

	logging.Infof("Updating existing labels with emojis...")
	for _, r := range DefaultRenames {
		if opts.DryRun {
			logging.Infof("Would update %s to %s", r.OldName, r.Name)
			sum.Updated++
			continue
		}
		_, err := m.gh(ctx, "label", "edit", r.OldName, "--name", r.Name, "--description", r.Description, "--color", r.Color)
		if err != nil {
			logging.Warnf("Error updating %s or label not found", r.OldName)
			sum.Failed++
			continue
		}
		sum.Updated++
	}

	if opts.UpdateOnly {
		return sum, nil
	}

	logging.Infof("Creating new labels...")
	for _, l := range NewLabels {
		if opts.DryRun {
			logging.Infof("Would create label '%s'", l.Name)
			sum.Created++
			continue
		}
		_, err := m.gh(ctx, "label", "create", l.Name, "--description", l.Description, "--color", l.Color)
		if err != nil {
			logging.Warnf("Error creating %s or label already exists", l.Name)
			sum.Failed++
			continue
		}
		sum.Created++
	}
	return sum, nil
}

func (m *Manager) gh(ctx context.Context, args ...string) (execx.Result, error) {
	return m.Runner.Run(ctx, m.Dir, "gh", args...)
}

// List returns up to limit labels parsed from gh's tab-separated output.
func (m *Manager) List(ctx context.Context, limit int) ([]Label, error) {
	res, err := m.gh(ctx, "label", "list", "--limit", strconv.Itoa(limit))
	if err != nil {
		return nil, fmt.Errorf("list labels: %w", err)
	}
	return parseLabelList(res.Stdout), nil
}

func parseLabelList(out string) []Label {
	var labels []Label
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		l := Label{Name: strings.TrimSpace(fields[0])}
		if len(fields) > 1 {
			l.Description = strings.TrimSpace(fields[1])
		}
		if len(fields) > 2 {
			l.Color = strings.TrimPrefix(strings.TrimSpace(fields[2]), "#")
		}
		labels = append(labels, l)
	}
	return labels
}

func (m *Manager) deleteAll(ctx context.Context, dryRun bool, sum *Summary) error {
	logging.Warnf("Deleting all existing labels...")
	labels, err := m.List(ctx, 100)
	if err != nil {
		return fmt.Errorf("failed to list labels for deletion: %w", err)
	}
	for _, l := range labels {
		if dryRun {
			logging.Infof("Would delete: %s", l.Name)
			sum.Deleted++
			continue
		}
		if _, err := m.gh(ctx, "label", "delete", l.Name, "--yes"); err != nil {
			logging.Warnf("Could not delete %s", l.Name)
			sum.Failed++
			continue
		}
		sum.Deleted++
	}
	return nil
}

func (m *Manager) confirm(prompt string) bool {
	return m.Confirm != nil && m.Confirm(prompt)
}

func (m *Manager) ensureGh(ctx context.Context, dryRun bool) error {
	logging.Infof("Checking GitHub CLI installation...")
	if res, err := m.gh(ctx, "--version"); err == nil {
		version, _, _ := strings.Cut(strings.TrimSpace(res.Stdout), "\n")
		logging.Infof("GitHub CLI found: %s", version)
		return nil
	}
	if dryRun {
		logging.Infof("Would install GitHub CLI")
		return nil
	}
	if !m.confirm("Would you like to install the GitHub CLI automatically?") {
		return ErrGhMissing
	}
	plan, err := InstallPlan(m.GOOS, m.FileExists)
	if err != nil {
		return err
	}
	for _, step := range plan {
		if err := m.Interactive(ctx, m.Dir, step[0], step[1:]...); err != nil {
			return fmt.Errorf("install gh: %w", err)
		}
	}
	return nil
}

func (m *Manager) ensureAuth(ctx context.Context, dryRun bool) error {
	logging.Infof("Checking GitHub authentication...")
	if _, err := m.gh(ctx, "auth", "status"); err == nil {
		logging.Infof("Already authenticated with GitHub")
		return nil
	}
	if dryRun {
		logging.Infof("Would authenticate with GitHub")
		return nil
	}
	if !m.confirm("Would you like to authenticate now?") {
		return ErrNotAuthenticated
	}
	if err := m.Interactive(ctx, m.Dir, "gh", "auth", "login", "--web"); err != nil {
		return fmt.Errorf("%w: %v", ErrNotAuthenticated, err)
	}
	return nil
}

// InstallPlan lists the commands that install gh on goos. exists probes
// the distribution marker files on Linux.
func InstallPlan(goos string, exists func(string) bool) ([][]string, error) {
	switch goos {
	case "darwin":
		return [][]string{{"brew", "install", "gh"}}, nil
	case "windows":
		return [][]string{{"winget", "install", "--id", "GitHub.cli"}}, nil
	case "linux":
		switch {
		case exists("/etc/debian_version"):
			return [][]string{{"sudo", "apt", "update"}, {"sudo", "apt", "install", "gh", "-y"}}, nil
		case exists("/etc/fedora-release"):
			return [][]string{{"sudo", "dnf", "install", "gh", "-y"}}, nil
		case exists("/etc/centos-release"):
			return [][]string{
				{"sudo", "yum", "install", "-y", "dnf-plugins-core"},
				{"sudo", "yum", "config-manager", "--add-repo", "https://cli.github.com/packages/rpm/gh-cli.repo"},
				{"sudo", "yum", "install", "gh", "-y"},
			}, nil
		}
	}
	return nil, fmt.Errorf("%w: install it manually from https://cli.github.com/", ErrGhMissing)
}
