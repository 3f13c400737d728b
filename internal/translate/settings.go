// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// Package translate keeps i18n JSON files in step with a source file by
// asking Gemini for the missing keys.
package translate

import (
	"errors"
	"path/filepath"
	"time"

	"github.com/nitrokit/nitrokit/internal/db"
)

var (
	ErrMissingAPIKey = errors.New("Gemini API key not configured")
	ErrSourceMissing = errors.New("source file not found")
)

const (
	DefaultModel     = "gemini-1.5-flash"
	DefaultBatchSize = 10
)

// Settings drive one sync run.
type Settings struct {
	APIKey      string
	Model       string
	Delay       time.Duration
	MessagesDir string
	SourceFile  string
	BatchSize   int
}

func DefaultSettings() Settings {
	return Settings{
		Model:       DefaultModel,
		Delay:       2 * time.Second,
		MessagesDir: "messages",
		SourceFile:  "source.json",
		BatchSize:   DefaultBatchSize,
	}
}

// SettingsFrom combines the stored app config with the yaml batch size.
// GEMINI_API_KEY, when given, wins over the stored key.
func SettingsFrom(cfg db.AppConfig, envKey string, batchSize int) Settings {
	s := DefaultSettings()
	s.APIKey = cfg.GeminiAPIKey
	if envKey != "" {
		s.APIKey = envKey
	}
	if cfg.GeminiModel != "" {
		s.Model = cfg.GeminiModel
	}
	s.Delay = time.Duration(cfg.TranslationDelay) * time.Second
	if cfg.MessagesDir != "" {
		s.MessagesDir = cfg.MessagesDir
	}
	if cfg.SourceFile != "" {
		s.SourceFile = cfg.SourceFile
	}
	if batchSize > 0 {
		s.BatchSize = batchSize
	}
	return s
}

// SourcePath is MessagesDir/SourceFile.
func (s Settings) SourcePath() string { return filepath.Join(s.MessagesDir, s.SourceFile) }

// LanguagePath is MessagesDir/<code>.json.
func (s Settings) LanguagePath(code string) string {
	return filepath.Join(s.MessagesDir, code+".json")
}
