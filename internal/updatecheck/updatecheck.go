// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// Package updatecheck asks GitHub for the latest Nitrokit release, at most
// once per check interval.
package updatecheck

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

const (
	LatestReleaseURL = "https://api.github.com/repos/mustafagenc/nitrokit/releases/latest"
	CacheFile        = ".nitrokit_version_cache.json"
	CheckInterval    = 24 * time.Hour
)

// Release is the subset of the GitHub release payload that is shown.
type Release struct {
	TagName     string `json:"tag_name"`
	Name        string `json:"name"`
	PublishedAt string `json:"published_at"`
	HTMLURL     string `json:"html_url"`
	Prerelease  bool   `json:"prerelease"`
}

type versionCache struct {
	LastCheck          int64  `json:"last_check"`
	LatestVersion      string `json:"latest_version"`
	CheckIntervalHours int    `json:"check_interval_hours"`
}

// Status is the outcome of Check.
type Status int

const (
	// Skipped means the cache was fresh and nothing was fetched.
	Skipped Status = iota
	UpToDate
	UpdateAvailable
	// Development means the running build is newer than the latest release.
	Development
)

// Result describes a finished check.
type Result struct {
	Status  Status
	Current string
	Latest  *Release
}

// Checker fetches releases and remembers when it last did.
type Checker struct {
	URL      string
	CacheDir string
	HTTP     *http.Client
	Now      func() time.Time
}

func NewChecker(cacheDir string) *Checker {
	return &Checker{
		URL:      LatestReleaseURL,
		CacheDir: cacheDir,
		HTTP:     &http.Client{Timeout: 10 * time.Second},
		Now:      time.Now,
	}
}

// CleanVersion strips one leading "v".
func CleanVersion(v string) string {
	return strings.TrimPrefix(strings.TrimSpace(v), "v")
}

// Compare orders current against latest after cleaning both.
func Compare(current, latest string) (int, error) {
	cv, err := semver.NewVersion(CleanVersion(current))
	if err != nil {
		return 0, fmt.Errorf("parse current version %q: %w", current, err)
	}
	lv, err := semver.NewVersion(CleanVersion(latest))
	if err != nil {
		return 0, fmt.Errorf("parse latest version %q: %w", latest, err)
	}
	return cv.Compare(lv), nil
}

// IsNewer reports whether latest is a higher version than current.
func IsNewer(current, latest string) bool {
	c, err := Compare(current, latest)
	return err == nil && c < 0
}

func (c *Checker) cachePath() string { return filepath.Join(c.CacheDir, CacheFile) }

// Due reports whether the interval since the last recorded check has
// passed. A missing or unreadable cache is due.
func (c *Checker) Due() bool {
	data, err := os.ReadFile(c.cachePath())
	if err != nil {
		return true
	}
	var vc versionCache
	if err := json.Unmarshal(data, &vc); err != nil {
		return true
	}
	interval := time.Duration(vc.CheckIntervalHours) * time.Hour
	return c.Now().Sub(time.Unix(vc.LastCheck, 0)) >= interval
}

func (c *Checker) saveCache(latest string) error {
	data, err := json.MarshalIndent(versionCache{
		LastCheck:          c.Now().Unix(),
		LatestVersion:      latest,
		CheckIntervalHours: int(CheckInterval / time.Hour),
	}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(c.CacheDir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(c.cachePath(), data, 0o644)
}

// Latest fetches the newest release.
func (c *Checker) Latest(ctx context.Context) (*Release, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "nitrokit")
	req.Header.Set("Accept", "application/vnd.github+json")

	client := c.HTTP
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub API returned status: %s", resp.Status)
	}
	var rel Release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}
	return &rel, nil
}

// Check compares current with the latest release. Unless force is set it
// returns Skipped while the cache is fresh.
func (c *Checker) Check(ctx context.Context, current string, force bool) (Result, error) {
	res := Result{Status: Skipped, Current: current}
	if !force && !c.Due() {
		return res, nil
	}
	rel, err := c.Latest(ctx)
	if err != nil {
		return res, err
	}
	res.Latest = rel
	_ = c.saveCache(rel.TagName)

	cmp, err := Compare(current, rel.TagName)
	if err != nil {
		return res, err
	}
	switch {
	case cmp < 0:
		res.Status = UpdateAvailable
	case cmp > 0:
		res.Status = Development
	default:
		res.Status = UpToDate
	}
	return res, nil
}
