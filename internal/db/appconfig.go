// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"fmt"
	"strconv"
)

// Setting keys persisted by `nitrokit config setup`.
const (
	KeyGeminiAPIKey     = "gemini_api_key"
	KeyGeminiModel      = "gemini_model"
	KeyTranslationDelay = "translation_delay_seconds"
	KeyMessagesDir      = "messages_dir"
	KeySourceFile       = "source_file"
)

const DefaultTranslationDelay = 2

// AppConfig is the typed view over the settings the translation workflow
// needs. An empty GeminiAPIKey means unset.
type AppConfig struct {
	GeminiAPIKey     string
	GeminiModel      string
	TranslationDelay int
	MessagesDir      string
	SourceFile       string
}

func DefaultAppConfig() AppConfig {
	return AppConfig{
		GeminiModel:      "gemini-1.5-flash",
		TranslationDelay: DefaultTranslationDelay,
		MessagesDir:      "messages",
		SourceFile:       "source.json",
	}
}

// LoadAppConfig overlays stored settings on the defaults. A read failure
// yields the defaults.
func (s *Store) LoadAppConfig(ctx context.Context) AppConfig {
	cfg := DefaultAppConfig()
	entries, err := s.All(ctx)
	if err != nil {
		return cfg
	}
	for _, e := range entries {
		switch e.Key {
		case KeyGeminiAPIKey:
			cfg.GeminiAPIKey = e.Value
		case KeyGeminiModel:
			if e.Value != "" {
				cfg.GeminiModel = e.Value
			}
		case KeyTranslationDelay:
			cfg.TranslationDelay = ParseDelay(e.Value)
		case KeyMessagesDir:
			if e.Value != "" {
				cfg.MessagesDir = e.Value
			}
		case KeySourceFile:
			if e.Value != "" {
				cfg.SourceFile = e.Value
			}
		}
	}
	return cfg
}

// ParseDelay reads a non-negative delay in seconds, defaulting to 2.
func ParseDelay(v string) int {
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return DefaultTranslationDelay
	}
	return n
}

// SaveAppConfig writes all five keys in one transaction.
func (s *Store) SaveAppConfig(ctx context.Context, cfg AppConfig) error {
	tx, err := s.bun.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	items := []Entry{
		{KeyGeminiAPIKey, cfg.GeminiAPIKey},
		{KeyGeminiModel, cfg.GeminiModel},
		{KeyTranslationDelay, strconv.Itoa(cfg.TranslationDelay)},
		{KeyMessagesDir, cfg.MessagesDir},
		{KeySourceFile, cfg.SourceFile},
	}
	for _, it := range items {
		if err := s.set(ctx, tx, it.Key, it.Value); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}
