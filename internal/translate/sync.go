// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package translate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/nitrokit/nitrokit/internal/logging"
)

// Cache remembers earlier translations. *db.Store implements it.
type Cache interface {
	CachedTranslation(ctx context.Context, lang, source string) (string, bool, error)
	PutTranslation(ctx context.Context, lang, source, text string) error
}

// LanguageResult is the outcome for one target file.
type LanguageResult struct {
	Language Language
	Missing  int
	Updated  int
	Cached   int
	Err      error
}

// Report summarizes a Sync run.
type Report struct {
	SourceKeys int
	Languages  []LanguageResult
}

// Failed counts languages that ended with an error.
func (r *Report) Failed() int {
	n := 0
	for _, l := range r.Languages {
		if l.Err != nil {
			n++
		}
	}
	return n
}

// Syncer fills missing keys of every target file.
type Syncer struct {
	Settings   Settings
	Translator Translator
	Cache      Cache
	// OnProgress is told how many of a language's missing keys are done.
	OnProgress func(lang Language, done, total int)
	Sleep      func(time.Duration)
}

func NewSyncer(s Settings, t Translator, c Cache) *Syncer {
	return &Syncer{Settings: s, Translator: t, Cache: c, Sleep: time.Sleep}
}

// Sync translates the missing keys of langs, discovering them from the
// messages directory when langs is empty. A failing language is logged and
// recorded; the remaining languages still run.
func (s *Syncer) Sync(ctx context.Context, langs []Language) (*Report, error) {
	if s.Translator == nil {
		return nil, ErrMissingAPIKey
	}
	dir := s.Settings.MessagesDir
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		logging.Infof("Creating messages directory: %s", dir)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create messages directory: %w", err)
		}
	}

	sourcePath := s.Settings.SourcePath()
	source, err := LoadDocument(sourcePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceMissing, sourcePath)
		}
		return nil, err
	}
	paths := Flatten(source)
	logging.Infof("Loaded source file: %s (%d translation keys)", sourcePath, len(paths))

	if len(langs) == 0 {
		if langs, err = DiscoverLanguages(dir, s.Settings.SourceFile); err != nil {
			return nil, err
		}
	}

	report := &Report{SourceKeys: len(paths)}
	for i, lang := range langs {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		logging.Section(fmt.Sprintf("Processing %s", lang))
		res := s.syncLanguage(ctx, source, paths, lang)
		switch {
		case res.Err != nil:
			logging.Errorf("Failed to process %s: %v", lang.Name, res.Err)
		case res.Updated > 0:
			logging.Successf("Updated %d translations", res.Updated)
		default:
			logging.Successf("All translations up to date")
		}
		report.Languages = append(report.Languages, res)

		if i < len(langs)-1 && s.Settings.Delay > 0 && s.Sleep != nil {
			s.Sleep(s.Settings.Delay)
		}
	}
	return report, nil
}

func (s *Syncer) syncLanguage(ctx context.Context, source Document, paths []string, lang Language) LanguageResult {
	res := LanguageResult{Language: lang}
	file := s.Settings.LanguagePath(lang.Code)

	target, err := LoadDocument(file)
	if errors.Is(err, os.ErrNotExist) {
		target, err = Document{}, nil
	}
	if err != nil {
		res.Err = err
		return res
	}

	missing := MissingPaths(target, paths)
	res.Missing = len(missing)
	if len(missing) == 0 {
		return res
	}
	logging.Infof("Found %d missing translations", len(missing))

	var pending []Pair
	for _, p := range missing {
		text, ok := GetString(source, p)
		if !ok {
			continue
		}
		if s.Cache != nil {
			if hit, found, err := s.Cache.CachedTranslation(ctx, lang.Code, text); err == nil && found {
				_ = Set(target, p, hit)
				res.Cached++
				res.Updated++
				continue
			}
		}
		pending = append(pending, Pair{Path: p, Text: text})
	}
	s.progress(lang, res.Updated, len(missing))

	batchSize := s.Settings.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	for start := 0; start < len(pending); start += batchSize {
		batch := pending[start:min(start+batchSize, len(pending))]
		translated, err := s.translateBatch(ctx, lang, batch)
		if err != nil {
			res.Err = err
			break
		}
		for _, t := range translated {
			_ = Set(target, t.Path, t.Text)
			res.Updated++
		}
		s.progress(lang, res.Updated, len(missing))
	}

	// Keep partial progress even when a later batch failed.
	if res.Updated > 0 {
		if err := target.Save(file); err != nil && res.Err == nil {
			res.Err = fmt.Errorf("write %s: %w", file, err)
		}
	}
	return res
}

func (s *Syncer) translateBatch(ctx context.Context, lang Language, batch []Pair) ([]Pair, error) {
	paths := make([]string, len(batch))
	sources := make(map[string]string, len(batch))
	for i, p := range batch {
		paths[i] = p.Path
		sources[p.Path] = p.Text
	}
	out, err := s.Translator.Translate(ctx, BuildPrompt(lang, batch))
	if err != nil {
		return nil, err
	}
	pairs := ParseResponse(out, paths)
	if s.Cache != nil {
		for _, p := range pairs {
			if err := s.Cache.PutTranslation(ctx, lang.Code, sources[p.Path], p.Text); err != nil {
				logging.Warnf("Could not cache translation for %s: %v", p.Path, err)
			}
		}
	}
	return pairs, nil
}

func (s *Syncer) progress(lang Language, done, total int) {
	if s.OnProgress != nil {
		s.OnProgress(lang, done, total)
	}
}
