// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// Package quality plans and runs the linters, formatters, tests and audits a
// project defines.
package quality

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/nitrokit/nitrokit/internal/config"
)

// Config is the code-quality section, readable from a standalone JSON file.
type Config struct {
	EnabledChecks    []string `json:"enabled_checks"`
	SkipDependencies bool     `json:"skip_dependencies"`
	MaxParallelJobs  int      `json:"max_parallel_jobs"`
	TimeoutSeconds   int      `json:"timeout_seconds"`
}

func DefaultConfig() Config {
	return Config{
		EnabledChecks:   []string{KindLint, KindFormat, KindSecurity, KindTest},
		MaxParallelJobs: 4,
		TimeoutSeconds:  300,
	}
}

// FromSettings converts the nitrokit.yaml quality section. Zero values
// fall back to the defaults.
func FromSettings(q config.Quality) Config {
	cfg := DefaultConfig()
	if len(q.EnabledChecks) > 0 {
		cfg.EnabledChecks = append([]string(nil), q.EnabledChecks...)
	}
	cfg.SkipDependencies = q.SkipDependencies
	if q.MaxParallelJobs > 0 {
		cfg.MaxParallelJobs = q.MaxParallelJobs
	}
	if q.TimeoutSeconds > 0 {
		cfg.TimeoutSeconds = q.TimeoutSeconds
	}
	return cfg
}

// LoadConfig overlays the JSON file at path on base. A missing file
// returns base unchanged.
func LoadConfig(path string, base Config) (Config, error) {
	if path == "" {
		return base, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return base, nil
	}
	if err != nil {
		return base, err
	}
	cfg := base
	if err := json.Unmarshal(data, &cfg); err != nil {
		return base, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.MaxParallelJobs <= 0 {
		cfg.MaxParallelJobs = 1
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = base.TimeoutSeconds
	}
	return cfg, nil
}

// Timeout is the per-check limit.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Enabled reports whether checks of kind should run.
func (c Config) Enabled(kind string) bool {
	if kind == KindBasic {
		return true
	}
	for _, k := range c.EnabledChecks {
		if k == kind {
			return true
		}
	}
	return false
}
