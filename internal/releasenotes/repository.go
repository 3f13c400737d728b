// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package releasenotes

import (
	"strings"
)

// Host identifies the hosting service of a remote.
type Host int

const (
	HostGeneric Host = iota
	HostGitHub
	HostGitLab
	HostBitbucket
)

// Repository describes the origin remote.
type Repository struct {
	URL    string // as configured
	WebURL string // browsable https form without .git
	Owner  string
	Name   string
	Host   Host
}

func (r Repository) IsGitHub() bool { return r.Host == HostGitHub }

// ParseRepository interprets https, ssh (git@host:owner/repo) and
// ssh:// remote URLs.
func ParseRepository(url string) Repository {
	repo := Repository{URL: strings.TrimSpace(url)}
	clean := strings.TrimSuffix(strings.TrimSuffix(repo.URL, "/"), ".git")

	var host, path string
	switch {
	case strings.HasPrefix(clean, "git@"):
		rest := strings.TrimPrefix(clean, "git@")
		host, path, _ = strings.Cut(rest, ":")
	case strings.Contains(clean, "://"):
		_, rest, _ := strings.Cut(clean, "://")
		if at := strings.Index(rest, "@"); at >= 0 && at < strings.Index(rest+"/", "/") {
			rest = rest[at+1:]
		}
		host, path, _ = strings.Cut(rest, "/")
		if h, _, found := strings.Cut(host, ":"); found {
			host = h
		}
	default:
		path = clean
	}

	switch {
	case strings.Contains(host, "github.com"):
		repo.Host = HostGitHub
	case strings.Contains(host, "gitlab.com"):
		repo.Host = HostGitLab
	case strings.Contains(host, "bitbucket.org"):
		repo.Host = HostBitbucket
	}

	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) >= 2 {
		repo.Owner = parts[len(parts)-2]
		repo.Name = parts[len(parts)-1]
	} else if len(parts) == 1 {
		repo.Name = parts[0]
	}

	if host != "" && path != "" {
		repo.WebURL = "https://" + host + "/" + strings.Trim(path, "/")
	} else {
		repo.WebURL = clean
	}
	return repo
}

// CompareURL links the diff between two refs. Bitbucket uses "..".
func (r Repository) CompareURL(from, to string) string {
	switch r.Host {
	case HostGitHub, HostGitLab:
		return r.WebURL + "/compare/" + from + "..." + to
	case HostBitbucket:
		return r.WebURL + "/compare/" + from + ".." + to
	}
	return r.CommitsURL(to)
}

func (r Repository) CommitsURL(tag string) string { return r.WebURL + "/commits/" + tag }
func (r Repository) IssuesURL() string            { return r.WebURL + "/issues" }
func (r Repository) NewIssueURL() string          { return r.WebURL + "/issues/new" }
