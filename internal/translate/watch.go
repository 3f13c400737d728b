// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package translate

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nitrokit/nitrokit/internal/logging"
)

// watchDebounce collapses the burst of events an editor save produces.
var watchDebounce = 500 * time.Millisecond

// Watch re-runs s.Sync whenever the source file changes until ctx ends.
// The directory is watched rather than the file so editors that replace
// the file on save are still seen.
func Watch(ctx context.Context, s *Syncer, langs []Language, onSync func(*Report, error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = w.Close() }()

	if err := w.Add(s.Settings.MessagesDir); err != nil {
		return fmt.Errorf("watch %s: %w", s.Settings.MessagesDir, err)
	}
	source := filepath.Clean(s.Settings.SourcePath())
	logging.Infof("Watching %s for changes (Ctrl+C to stop)", source)

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != source {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				fire = time.After(watchDebounce)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logging.Warnf("Watcher error: %v", err)
		case <-fire:
			fire = nil
			logging.Infof("Source file changed, syncing...")
			report, err := s.Sync(ctx, langs)
			if onSync != nil {
				onSync(report, err)
			}
		}
	}
}
