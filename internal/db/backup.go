// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/zstd"
)

// Snapshot is the portable form of the store used by backup and restore.
type Snapshot struct {
	CreatedAt    time.Time           `json:"created_at"`
	Config       []Entry             `json:"config"`
	Translations []CachedTranslation `json:"translations"`
}

type CachedTranslation struct {
	Lang       string `json:"lang"`
	SourceHash string `json:"source_hash"`
	Text       string `json:"text"`
}

// Export reads every setting and cached translation.
func (s *Store) Export(ctx context.Context) (*Snapshot, error) {
	cfg, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	var rows []cacheEntry
	if err := s.bun.NewSelect().Model(&rows).
		Column("lang", "source_hash", "text").
		Order("lang", "source_hash").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("export translation cache: %w", err)
	}
	snap := &Snapshot{CreatedAt: time.Now().UTC(), Config: cfg}
	for _, r := range rows {
		snap.Translations = append(snap.Translations, CachedTranslation{Lang: r.Lang, SourceHash: r.SourceHash, Text: r.Text})
	}
	return snap, nil
}

// Import upserts a snapshot. With replace set the settings table is
// cleared first.
func (s *Store) Import(ctx context.Context, snap *Snapshot, replace bool) error {
	tx, err := s.bun.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if replace {
		if _, err := tx.NewDelete().Model((*configEntry)(nil)).Where("1 = 1").Exec(ctx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("clear config: %w", err)
		}
	}
	for _, e := range snap.Config {
		if err := s.set(ctx, tx, e.Key, e.Value); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	for _, t := range snap.Translations {
		if err := s.putHashed(ctx, tx, t.Lang, t.SourceHash, t.Text); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// WriteBackup writes snap as zstd-compressed JSON.
func WriteBackup(snap *Snapshot, w io.Writer) error {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("create zstd writer: %w", err)
	}
	enc := json.NewEncoder(zw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		_ = zw.Close()
		return fmt.Errorf("encode backup: %w", err)
	}
	return zw.Close()
}

// ReadBackup decodes a backup written by WriteBackup.
func ReadBackup(r io.Reader) (*Snapshot, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("create zstd reader: %w", err)
	}
	defer zr.Close()
	var snap Snapshot
	if err := json.NewDecoder(zr).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode backup: %w", err)
	}
	return &snap, nil
}
