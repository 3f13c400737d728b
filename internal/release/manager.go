// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package release

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nitrokit/nitrokit/internal/execx"
	"github.com/nitrokit/nitrokit/internal/git"
	"github.com/nitrokit/nitrokit/internal/logging"
	"github.com/nitrokit/nitrokit/internal/project"
	"github.com/nitrokit/nitrokit/internal/releasenotes"
)

// Publisher creates a hosted release. GitHubClient implements it.
type Publisher interface {
	CreateRelease(ctx context.Context, repo, tag, name, body string, prerelease bool) (string, error)
}

// Manager drives one release in one repository.
type Manager struct {
	Dir     string
	Git     *git.Repo
	Runner  execx.Runner
	Project project.ReleaseConfig
	Remote  string
	// Branch is the branch releases are expected to be cut from.
	Branch string
	// Publisher is used when Options.GitHub is set.
	Publisher Publisher
}

// NewManager opens dir and detects its release configuration.
func NewManager(ctx context.Context, r execx.Runner, dir string) (*Manager, error) {
	repo, err := git.Open(ctx, r, dir)
	if err != nil {
		return nil, err
	}
	return &Manager{
		Dir:     dir,
		Git:     repo,
		Runner:  r,
		Project: project.DetectReleaseConfig(dir),
		Remote:  "origin",
		Branch:  "main",
	}, nil
}

// Options controls Create.
type Options struct {
	// Version is a bump keyword or an explicit X.Y.Z.
	Version   string
	Message   string
	GitHub    bool
	SkipTasks bool
	DryRun    bool
	NotesDir  string
}

// Result summarizes a finished release.
type Result struct {
	Previous   string
	Version    string
	Tag        string
	NotesPath  string
	ReleaseURL string
	Warnings   []string
}

func (res *Result) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	logging.Warnf("%s", msg)
	res.Warnings = append(res.Warnings, msg)
}

// CheckTagExists fails with ErrTagExists when tag is already present.
func (m *Manager) CheckTagExists(ctx context.Context, tag string) error {
	exists, err := m.Git.TagExists(ctx, tag)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("tag %s %w", tag, ErrTagExists)
	}
	return nil
}

// CheckWorkingDirectoryClean fails with ErrDirtyWorkingTree when anything,
// untracked files included, is pending.
func (m *Manager) CheckWorkingDirectoryClean(ctx context.Context) error {
	lines, err := m.Git.StatusPorcelain(ctx)
	if err != nil {
		return err
	}
	if len(lines) > 0 {
		return fmt.Errorf("%w (%d files)", ErrDirtyWorkingTree, len(lines))
	}
	return nil
}

// CurrentVersion prefers the version file and falls back to the newest
// version tag, then 0.0.0.
func (m *Manager) CurrentVersion(ctx context.Context) string {
	if m.Project.VersionFile != "" {
		if v, err := CurrentVersion(m.Dir, m.Project.VersionFile); err == nil && v != "" {
			return strings.TrimPrefix(v, "v")
		}
	}
	if tags, err := m.Git.VersionTags(ctx, 1); err == nil && len(tags) > 0 {
		return strings.TrimPrefix(tags[0], "v")
	}
	return "0.0.0"
}

// History lists the newest version tags.
func (m *Manager) History(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 10
	}
	return m.Git.VersionTags(ctx, limit)
}

// RunFrameworkTasks runs the lint, test and build steps the project
// defines. The first failing step aborts.
func (m *Manager) RunFrameworkTasks(ctx context.Context, version string) error {
	for _, step := range m.frameworkSteps() {
		logging.Infof("Running %s for %s...", execx.CommandString(step[0], step[1:]...), version)
		if _, err := m.Runner.Run(ctx, m.Dir, step[0], step[1:]...); err != nil {
			return fmt.Errorf("%s: %w", execx.CommandString(step[0], step[1:]...), err)
		}
	}
	return nil
}

func (m *Manager) frameworkSteps() [][]string {
	cfg := m.Project
	var steps [][]string
	switch cfg.Framework {
	case project.FrameworkNextJs, project.FrameworkAngular, project.FrameworkNodeJs,
		project.FrameworkReact, project.FrameworkVue:
		pm := string(project.Npm)
		switch cfg.PackageManager {
		case project.Yarn, project.Pnpm, project.Bun:
			pm = string(cfg.PackageManager)
		}
		if cfg.HasLint {
			steps = append(steps, []string{pm, "run", "lint"})
		}
		if cfg.HasTests {
			steps = append(steps, []string{pm, "test"})
		}
		if cfg.HasBuild {
			steps = append(steps, []string{pm, "run", "build"})
		}
	case project.FrameworkRust:
		steps = append(steps,
			[]string{"cargo", "clippy", "--", "-D", "warnings"},
			[]string{"cargo", "test"},
			[]string{"cargo", "build", "--release"})
	case project.FrameworkLaravel:
		steps = append(steps, []string{"php", "artisan", "test"})
	}
	return steps
}

// Create runs the whole release: checks, version file, commit, tag, push,
// release notes and the optional GitHub release. Push, notes and GitHub
// failures are reported as warnings.
func (m *Manager) Create(ctx context.Context, opts Options) (*Result, error) {
	res := &Result{Previous: m.CurrentVersion(ctx)}

	version, err := NextVersion(res.Previous, opts.Version)
	if err != nil {
		return nil, err
	}
	res.Version = version
	res.Tag = "v" + version
	logging.Infof("Bumping version from %s to %s", res.Previous, version)

	if err := m.CheckTagExists(ctx, res.Tag); err != nil {
		return nil, err
	}
	if err := m.CheckWorkingDirectoryClean(ctx); err != nil {
		return nil, err
	}
	if branch, err := m.Git.CurrentBranch(ctx); err == nil && m.Branch != "" && branch != m.Branch {
		res.warn("releasing from %s, default branch is %s", branch, m.Branch)
	}

	previousTag := ""
	if tags, err := m.Git.VersionTags(ctx, 1); err == nil && len(tags) > 0 {
		previousTag = tags[0]
	}

	message := opts.Message
	if message == "" {
		message = "Release " + res.Tag
	}

	if opts.DryRun {
		logging.Infof("Would update %s to %s", orNone(m.Project.VersionFile), version)
		logging.Infof("Would create tag %s with message %q", res.Tag, message)
		logging.Infof("Would push to %s", m.Remote)
		if opts.GitHub {
			logging.Infof("Would create GitHub release %s", res.Tag)
		}
		return res, nil
	}

	if !opts.SkipTasks {
		if err := m.RunFrameworkTasks(ctx, version); err != nil {
			return nil, err
		}
	}

	if m.Project.VersionFile != "" {
		if err := UpdateVersionFile(m.Dir, m.Project.VersionFile, version); err != nil {
			res.warn("could not update %s: %v", m.Project.VersionFile, err)
		} else {
			logging.Infof("Updated %s", m.Project.VersionFile)
		}
	}

	if clean, err := m.Git.IsClean(ctx); err == nil && !clean {
		logging.Infof("Committing changes...")
		if err := m.Git.AddAll(ctx); err != nil {
			return nil, err
		}
		if err := m.Git.Commit(ctx, "bump: version "+version); err != nil {
			return nil, err
		}
	}

	if err := m.Git.CreateAnnotatedTag(ctx, res.Tag, message); err != nil {
		return nil, err
	}

	if err := m.Git.Push(ctx, m.Remote); err != nil {
		res.warn("could not push commits: %v", err)
	}
	if err := m.Git.PushTag(ctx, m.Remote, res.Tag); err != nil {
		res.warn("could not push tag: %v (tag created locally)", err)
	}

	gen := releasenotes.NewGenerator(m.Git, m.Remote)
	notes, err := gen.Generate(ctx, releasenotes.Options{From: previousTag, To: res.Tag, OutputDir: opts.NotesDir})
	if err != nil {
		res.warn("could not generate release notes: %v", err)
	} else {
		res.NotesPath = notes.Path
	}

	if opts.GitHub {
		res.ReleaseURL, err = m.publish(ctx, res.Tag, message, notes)
		if err != nil {
			res.warn("could not create GitHub release: %v", err)
		}
	}
	return res, nil
}

func (m *Manager) publish(ctx context.Context, tag, name string, notes *releasenotes.Result) (string, error) {
	if m.Publisher == nil {
		return "", errors.New("no publisher configured")
	}
	url, err := m.Git.RemoteURL(ctx, m.Remote)
	if err != nil {
		return "", err
	}
	slug, err := NormalizeGitHubURL(url)
	if err != nil {
		return "", err
	}
	body := ""
	if notes != nil {
		body = notes.Markdown
	}
	return m.Publisher.CreateRelease(ctx, slug, tag, name, body, releasenotes.IsPrerelease(tag))
}

func orNone(s string) string {
	if s == "" {
		return "(no version file)"
	}
	return s
}
