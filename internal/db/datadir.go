// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nitrokit/nitrokit/internal/logging"
)

// DatabaseFile is the sqlite file name inside the data directory.
const DatabaseFile = "nitrokit.db"

// Swapped in tests.
var (
	userHomeDir = os.UserHomeDir
	getwd       = os.Getwd
)

// ResolveDataDir returns the first writable directory among
// ~/.config/nitrokit, $XDG_CONFIG_HOME/nitrokit and ./.nitrokit, falling
// back to $TMP/nitrokit.
func ResolveDataDir() string {
	var candidates []string
	if home, err := userHomeDir(); err == nil && home != "" {
		candidates = append(candidates, filepath.Join(home, ".config", "nitrokit"))
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		candidates = append(candidates, filepath.Join(xdg, "nitrokit"))
	}
	if wd, err := getwd(); err == nil {
		candidates = append(candidates, filepath.Join(wd, ".nitrokit"))
	}
	for _, dir := range candidates {
		if isWritableDir(dir) {
			return dir
		}
	}
	return filepath.Join(os.TempDir(), "nitrokit")
}

// isWritableDir creates dir and proves it accepts a file write.
func isWritableDir(dir string) bool {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false
	}
	probe := filepath.Join(dir, ".test_write")
	if err := os.WriteFile(probe, []byte("test"), 0o600); err != nil {
		return false
	}
	_ = os.Remove(probe)
	return true
}

// OpenDefault opens the sqlite store in the resolved data directory. When
// that fails it falls back to ./nitrokit.db.
func OpenDefault() (*Store, error) {
	dir := ResolveDataDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	primary := filepath.Join(dir, DatabaseFile)
	logging.Debugf("Config directory: %s", dir)
	st, err := Open("sqlite", primary)
	if err == nil {
		return st, nil
	}
	logging.Warnf("Cannot access %s, using local database", primary)
	local, localErr := Open("sqlite", "./"+DatabaseFile)
	if localErr != nil {
		return nil, fmt.Errorf("failed to connect to database. home: %v local: %w", err, localErr)
	}
	return local, nil
}

// OpenConfigured honors an explicit database type and DSN and otherwise
// opens the default sqlite store.
func OpenConfigured(dbType, dsn string) (*Store, error) {
	if dsn == "" && (dbType == "" || dbType == "sqlite") {
		return OpenDefault()
	}
	return Open(dbType, dsn)
}
