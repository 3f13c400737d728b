// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

type configEntry struct {
	bun.BaseModel `bun:"table:config,alias:c"`

	ID        int64     `bun:"id,pk,autoincrement"`
	Key       string    `bun:"key,notnull,unique"`
	Value     string    `bun:"value,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

type cacheEntry struct {
	bun.BaseModel `bun:"table:translation_cache,alias:tc"`

	ID         int64     `bun:"id,pk,autoincrement"`
	Lang       string    `bun:"lang,notnull"`
	SourceHash string    `bun:"source_hash,notnull"`
	Text       string    `bun:"text,notnull"`
	CreatedAt  time.Time `bun:"created_at,notnull"`
}

// Entry is one stored setting.
type Entry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Store is the key/value settings store plus the translation cache.
type Store struct {
	bun    *bun.DB
	dbType string
	path   string
}

// Type reports the backend: sqlite, postgres or mysql.
func (s *Store) Type() string { return s.dbType }

// Path is the sqlite database file, empty for server backends.
func (s *Store) Path() string { return s.path }

func (s *Store) Close() error { return s.bun.Close() }

// Get returns the value for key and whether it exists.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var e configEntry
	err := s.bun.NewSelect().Model(&e).
		Column("value").
		Where("? = ?", bun.Ident("key"), key).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get config %s: %w", key, err)
	}
	return e.Value, true, nil
}

// Set inserts or replaces key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	return s.set(ctx, s.bun, key, value)
}

func (s *Store) set(ctx context.Context, db bun.IDB, key, value string) error {
	now := time.Now().UTC()
	e := &configEntry{Key: key, Value: value, CreatedAt: now, UpdatedAt: now}
	q := db.NewInsert().Model(e)
	if s.dbType == "mysql" {
		q = q.On("DUPLICATE KEY UPDATE").
			Set("? = VALUES(?)", bun.Ident("value"), bun.Ident("value")).
			Set("updated_at = VALUES(updated_at)")
	} else {
		q = q.On("CONFLICT (?) DO UPDATE", bun.Ident("key")).
			Set("? = EXCLUDED.?", bun.Ident("value"), bun.Ident("value")).
			Set("updated_at = EXCLUDED.updated_at")
	}
	if _, err := q.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save config key '%s': %w", key, err)
	}
	return nil
}

// All returns every setting ordered by key.
func (s *Store) All(ctx context.Context) ([]Entry, error) {
	var rows []configEntry
	err := s.bun.NewSelect().Model(&rows).
		Column("key", "value").
		OrderExpr("? ASC", bun.Ident("key")).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list config: %w", err)
	}
	out := make([]Entry, 0, len(rows))
	for _, r := range rows {
		out = append(out, Entry{Key: r.Key, Value: r.Value})
	}
	return out, nil
}

// Delete removes key and reports whether it existed.
func (s *Store) Delete(ctx context.Context, key string) (bool, error) {
	res, err := s.bun.NewDelete().Model((*configEntry)(nil)).
		Where("? = ?", bun.Ident("key"), key).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("delete config %s: %w", key, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Reset removes every setting. The translation cache is kept.
func (s *Store) Reset(ctx context.Context) error {
	if _, err := s.bun.NewDelete().Model((*configEntry)(nil)).Where("1 = 1").Exec(ctx); err != nil {
		return fmt.Errorf("reset config: %w", err)
	}
	return nil
}

// IsFirstRun reports an empty settings table. Read errors count as a
// first run.
func (s *Store) IsFirstRun(ctx context.Context) bool {
	n, err := s.bun.NewSelect().Model((*configEntry)(nil)).Count(ctx)
	return err != nil || n == 0
}

// SourceHash keys the translation cache.
func SourceHash(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

// CachedTranslation looks up a previous translation of source into lang.
func (s *Store) CachedTranslation(ctx context.Context, lang, source string) (string, bool, error) {
	var e cacheEntry
	err := s.bun.NewSelect().Model(&e).
		Column("text").
		Where("lang = ?", lang).
		Where("source_hash = ?", SourceHash(source)).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("translation cache lookup: %w", err)
	}
	return e.Text, true, nil
}

// PutTranslation stores or replaces the translation of source into lang.
func (s *Store) PutTranslation(ctx context.Context, lang, source, text string) error {
	return s.putHashed(ctx, s.bun, lang, SourceHash(source), text)
}

func (s *Store) putHashed(ctx context.Context, db bun.IDB, lang, hash, text string) error {
	e := &cacheEntry{Lang: lang, SourceHash: hash, Text: text, CreatedAt: time.Now().UTC()}
	q := db.NewInsert().Model(e)
	if s.dbType == "mysql" {
		q = q.On("DUPLICATE KEY UPDATE").Set("? = VALUES(?)", bun.Ident("text"), bun.Ident("text"))
	} else {
		q = q.On("CONFLICT (lang, source_hash) DO UPDATE").Set("? = EXCLUDED.?", bun.Ident("text"), bun.Ident("text"))
	}
	if _, err := q.Exec(ctx); err != nil {
		return fmt.Errorf("translation cache store: %w", err)
	}
	return nil
}

// Maintain runs engine-specific housekeeping.
func (s *Store) Maintain(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()
	switch s.dbType {
	case "sqlite":
		if _, err := s.bun.ExecContext(ctx, "VACUUM"); err != nil {
			return fmt.Errorf("sqlite vacuum failed: %w", err)
		}
		var res string
		if err := s.bun.QueryRowContext(ctx, "PRAGMA integrity_check").Scan(&res); err == nil && res != "ok" {
			return fmt.Errorf("sqlite integrity_check failed: %s", res)
		}
	case "postgres":
		if _, err := s.bun.ExecContext(ctx, "VACUUM ANALYZE"); err != nil {
			return fmt.Errorf("postgres vacuum failed: %w", err)
		}
	case "mysql":
		for _, table := range []string{"config", "translation_cache"} {
			if _, err := s.bun.ExecContext(ctx, "OPTIMIZE TABLE "+table); err != nil {
				return fmt.Errorf("mysql optimize %s failed: %w", table, err)
			}
		}
	}
	return nil
}
