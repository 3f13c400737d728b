// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// Package git wraps the git CLI for the read and write operations Nitrokit
// needs: tags, commit logs, remotes, working tree status and tagging.
package git

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/nitrokit/nitrokit/internal/execx"
)

var (
	ErrNotGitRepository = errors.New("not a git repository")
	ErrNoCommits        = errors.New("repository has no commits")
	ErrNoRemote         = errors.New("repository has no remote")
)

// Record and field separators for --pretty=format output. They cannot
// appear in commit metadata typed by humans.
const (
	fieldSep  = "\x1f"
	recordSep = "\x1e"
	logFormat = "%H" + fieldSep + "%an" + fieldSep + "%ae" + fieldSep + "%ct" + fieldSep + "%B" + recordSep
)

// Commit is one entry of a git log.
type Commit struct {
	Hash        string
	Message     string
	AuthorName  string
	AuthorEmail string
	Time        time.Time
}

// ShortHash returns the first seven characters of the hash.
func (c Commit) ShortHash() string {
	if len(c.Hash) > 7 {
		return c.Hash[:7]
	}
	return c.Hash
}

// Subject is the first line of the message.
func (c Commit) Subject() string {
	line, _, _ := strings.Cut(c.Message, "\n")
	return strings.TrimSpace(line)
}

// Date formats the commit day as 2006-01-02.
func (c Commit) Date() string { return c.Time.Format("2006-01-02") }

// Clock formats the commit time as 15:04.
func (c Commit) Clock() string { return c.Time.Format("15:04") }

// Repo is a working copy driven through the git binary.
type Repo struct {
	Dir    string
	Runner execx.Runner
}

// Open verifies dir is inside a git work tree.
func Open(ctx context.Context, r execx.Runner, dir string) (*Repo, error) {
	repo := &Repo{Dir: dir, Runner: r}
	out, err := repo.git(ctx, "rev-parse", "--is-inside-work-tree")
	if err != nil || strings.TrimSpace(out) != "true" {
		if errors.Is(err, execx.ErrToolNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", ErrNotGitRepository, dir)
	}
	return repo, nil
}

func (r *Repo) git(ctx context.Context, args ...string) (string, error) {
	res, err := r.Runner.Run(ctx, r.Dir, "git", args...)
	if err != nil {
		return res.Stdout, err
	}
	return res.Stdout, nil
}

// Tags lists every tag name.
func (r *Repo) Tags(ctx context.Context) ([]string, error) {
	out, err := r.git(ctx, "tag", "--list")
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return splitLines(out), nil
}

// VersionTags lists v* tags sorted by version, newest first.
func (r *Repo) VersionTags(ctx context.Context, limit int) ([]string, error) {
	out, err := r.git(ctx, "tag", "--sort=-version:refname", "-l", "v*")
	if err != nil {
		return nil, fmt.Errorf("list version tags: %w", err)
	}
	tags := splitLines(out)
	if limit > 0 && len(tags) > limit {
		tags = tags[:limit]
	}
	return tags, nil
}

// TagExists reports whether refs/tags/tag exists.
func (r *Repo) TagExists(ctx context.Context, tag string) (bool, error) {
	out, err := r.git(ctx, "tag", "--list", tag)
	if err != nil {
		return false, fmt.Errorf("check tag %s: %w", tag, err)
	}
	for _, t := range splitLines(out) {
		if t == tag {
			return true, nil
		}
	}
	return false, nil
}

// CurrentBranch returns the checked-out branch, or "HEAD" when detached.
func (r *Repo) CurrentBranch(ctx context.Context) (string, error) {
	out, err := r.git(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("current branch: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// HeadCommit returns the commit HEAD points at.
func (r *Repo) HeadCommit(ctx context.Context) (Commit, error) {
	out, err := r.git(ctx, "log", "-1", "--pretty=format:"+logFormat)
	if err != nil {
		return Commit{}, fmt.Errorf("%w: %v", ErrNoCommits, err)
	}
	commits := parseLog(out)
	if len(commits) == 0 {
		return Commit{}, ErrNoCommits
	}
	return commits[0], nil
}

// Log returns commits reachable from to (HEAD when empty) but not from
// from, newest first.
func (r *Repo) Log(ctx context.Context, from, to string) ([]Commit, error) {
	if to == "" {
		to = "HEAD"
	}
	rev := to
	if from != "" {
		rev = from + ".." + to
	}
	out, err := r.git(ctx, "log", "--date-order", "--pretty=format:"+logFormat, rev)
	if err != nil {
		return nil, fmt.Errorf("git log %s: %w", rev, err)
	}
	return parseLog(out), nil
}

// RemoteURL returns the URL of the named remote, or of the first remote
// when name is empty or unknown.
func (r *Repo) RemoteURL(ctx context.Context, name string) (string, error) {
	out, err := r.git(ctx, "remote")
	if err != nil {
		return "", fmt.Errorf("list remotes: %w", err)
	}
	remotes := splitLines(out)
	if len(remotes) == 0 {
		return "", ErrNoRemote
	}
	chosen := remotes[0]
	for _, rm := range remotes {
		if rm == name {
			chosen = rm
			break
		}
	}
	url, err := r.git(ctx, "remote", "get-url", chosen)
	if err != nil {
		return "", fmt.Errorf("remote url %s: %w", chosen, err)
	}
	return strings.TrimSpace(url), nil
}

// StatusPorcelain returns `git status --porcelain` lines. Untracked files
// are included.
func (r *Repo) StatusPorcelain(ctx context.Context) ([]string, error) {
	out, err := r.git(ctx, "status", "--porcelain")
	if err != nil {
		return nil, fmt.Errorf("git status: %w", err)
	}
	return splitLines(out), nil
}

// IsClean reports an empty porcelain status.
func (r *Repo) IsClean(ctx context.Context) (bool, error) {
	lines, err := r.StatusPorcelain(ctx)
	if err != nil {
		return false, err
	}
	return len(lines) == 0, nil
}

func (r *Repo) AddAll(ctx context.Context) error {
	if _, err := r.git(ctx, "add", "-A"); err != nil {
		return fmt.Errorf("git add: %w", err)
	}
	return nil
}

func (r *Repo) Commit(ctx context.Context, message string) error {
	if _, err := r.git(ctx, "commit", "-m", message); err != nil {
		return fmt.Errorf("git commit: %w", err)
	}
	return nil
}

// CreateAnnotatedTag runs `git tag -a tag -m message`.
func (r *Repo) CreateAnnotatedTag(ctx context.Context, tag, message string) error {
	if _, err := r.git(ctx, "tag", "-a", tag, "-m", message); err != nil {
		return fmt.Errorf("create tag %s: %w", tag, err)
	}
	return nil
}

func (r *Repo) Push(ctx context.Context, remote string) error {
	args := []string{"push"}
	if remote != "" {
		args = append(args, remote)
	}
	if _, err := r.git(ctx, args...); err != nil {
		return fmt.Errorf("git push: %w", err)
	}
	return nil
}

func (r *Repo) PushTag(ctx context.Context, remote, tag string) error {
	if remote == "" {
		remote = "origin"
	}
	if _, err := r.git(ctx, "push", remote, tag); err != nil {
		return fmt.Errorf("push tag %s: %w", tag, err)
	}
	return nil
}

func parseLog(out string) []Commit {
	var commits []Commit
	for _, rec := range strings.Split(out, recordSep) {
		rec = strings.TrimLeft(rec, "\r\n")
		if strings.TrimSpace(rec) == "" {
			continue
		}
		parts := strings.SplitN(rec, fieldSep, 5)
		if len(parts) < 5 {
			continue
		}
		c := Commit{
			Hash:        strings.TrimSpace(parts[0]),
			AuthorName:  parts[1],
			AuthorEmail: parts[2],
			Message:     strings.TrimSpace(parts[4]),
		}
		if ts, err := strconv.ParseInt(strings.TrimSpace(parts[3]), 10, 64); err == nil {
			c.Time = time.Unix(ts, 0)
		}
		commits = append(commits, c)
	}
	sort.SliceStable(commits, func(i, j int) bool { return commits[i].Time.After(commits[j].Time) })
	return commits
}

func splitLines(out string) []string {
	var lines []string
	for _, l := range strings.Split(out, "\n") {
		l = strings.TrimRight(l, "\r")
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
