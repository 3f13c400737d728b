// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// Package releasenotes turns the git history between two version tags into
// a markdown release document.
package releasenotes

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nitrokit/nitrokit/internal/git"
	"github.com/nitrokit/nitrokit/internal/logging"
	"github.com/nitrokit/nitrokit/internal/project"
)

// Options narrows what Generate covers. Empty fields are discovered from
// the repository.
type Options struct {
	From      string // previous tag
	To        string // current tag
	OutputDir string
	// DryRun renders without writing a file.
	DryRun bool
}

// Result is what Generate produced.
type Result struct {
	Tag         string
	PreviousTag string
	Commits     int
	Markdown    string
	Path        string
}

// Generator builds release notes for one repository.
type Generator struct {
	Repo   *git.Repo
	Remote string
	Now    func() time.Time
}

// NewGenerator returns a Generator reading from repo.
func NewGenerator(repo *git.Repo, remote string) *Generator {
	return &Generator{Repo: repo, Remote: remote, Now: time.Now}
}

// FileName is the output file name for tag on day.
func FileName(tag string, day time.Time) string {
	return fmt.Sprintf("ReleaseNotes_%s_%s.md", CleanTagName(tag), day.Format("2006-01-02"))
}

// ResolveTags picks the current and previous tag. When the repository has
// no version tags a tag is synthesized from HEAD and previous is empty.
func (g *Generator) ResolveTags(ctx context.Context, from, to string) (current, previous string, tagged bool, err error) {
	tags, err := g.Repo.Tags(ctx)
	if err != nil {
		return "", "", false, err
	}
	logging.Debugf("found %d tags in repository", len(tags))

	if to != "" {
		current, previous = to, from
		if previous == "" {
			for _, t := range SortVersionTags(tags) {
				if t != to && CompareVersionTags(t, to) < 0 {
					previous = t
					break
				}
			}
		}
		return current, previous, contains(tags, to), nil
	}

	if latest, prev, ok := TagRange(tags); ok {
		if from != "" {
			prev = from
		}
		return latest, prev, true, nil
	}

	logging.Infof("No version tags found, analyzing current commit...")
	head, err := g.Repo.HeadCommit(ctx)
	if err != nil {
		return DefaultTag + "-dev", "", false, nil
	}
	branch, _ := g.Repo.CurrentBranch(ctx)
	tag := SmartTag(branch, head.Time.Format("2006.01.02"), head.ShortHash(), head.Message)
	logging.Infof("Generated tag from current commit: %s", tag)
	return tag, from, false, nil
}

// Generate renders release notes and, unless DryRun, writes them to
// OutputDir.
func (g *Generator) Generate(ctx context.Context, opts Options) (*Result, error) {
	current, previous, tagged, err := g.ResolveTags(ctx, opts.From, opts.To)
	if err != nil {
		return nil, err
	}

	ref := "HEAD"
	if tagged {
		ref = current
	}
	commits, err := g.Repo.Log(ctx, previous, ref)
	if err != nil {
		return nil, fmt.Errorf("collect commits: %w", err)
	}

	var repo Repository
	if url, err := g.Repo.RemoteURL(ctx, g.Remote); err == nil {
		repo = ParseRepository(url)
	} else {
		if !errors.Is(err, git.ErrNoRemote) {
			logging.Warnf("could not read remote: %v", err)
		}
		repo = Repository{Name: filepath.Base(g.Repo.Dir)}
	}

	toolchain := project.Unknown
	if info, err := project.Detect(g.Repo.Dir); err == nil {
		toolchain = info.Type
	}

	now := g.now()
	md := Render(Document{
		Tag:         current,
		PreviousTag: previous,
		Repo:        repo,
		Commits:     commits,
		Date:        now,
		Toolchain:   toolchain,
	})

	res := &Result{Tag: current, PreviousTag: previous, Commits: len(commits), Markdown: md}
	if opts.DryRun {
		return res, nil
	}

	dir := opts.OutputDir
	if dir == "" {
		dir = g.Repo.Dir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	res.Path = filepath.Join(dir, FileName(current, now))
	if err := os.WriteFile(res.Path, []byte(md), 0o644); err != nil {
		return nil, fmt.Errorf("write release notes: %w", err)
	}
	return res, nil
}

func (g *Generator) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
