// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nitrokit/nitrokit/internal/db"
	"github.com/nitrokit/nitrokit/internal/i18n"
	"github.com/nitrokit/nitrokit/internal/logging"
	"github.com/nitrokit/nitrokit/internal/translate"
	"github.com/nitrokit/nitrokit/internal/tui"
)

// newTranslator is swapped in tests so no request reaches Gemini.
var newTranslator = func(ctx context.Context, apiKey, model string) (translate.Translator, error) {
	return translate.NewGeminiClient(ctx, apiKey, model)
}

// translationSettings merges the stored settings, GEMINI_API_KEY and the
// translation section of nitrokit.yaml. Values saved with `config setup`
// win over the yaml file. A relative messages directory is resolved
// against dir.
func translationSettings(ctx context.Context, store *db.Store, dir string) translate.Settings {
	s := translate.SettingsFrom(store.LoadAppConfig(ctx), os.Getenv("GEMINI_API_KEY"), appConfig.Translation.BatchSize)
	if _, ok, _ := store.Get(ctx, db.KeyMessagesDir); !ok && appConfig.Translation.MessagesDir != "" {
		s.MessagesDir = appConfig.Translation.MessagesDir
	}
	if _, ok, _ := store.Get(ctx, db.KeySourceFile); !ok && appConfig.Translation.SourceFile != "" {
		s.SourceFile = appConfig.Translation.SourceFile
	}
	s.MessagesDir = resolveIn(dir, s.MessagesDir)
	return s
}

func newSyncTranslationsCmd() *cobra.Command {
	var languages string
	var watch bool

	cmd := &cobra.Command{
		Use:   "sync-translations",
		Short: "Translate missing keys of the i18n JSON files with Gemini",
		Long: `Reads the source file (messages/source.json by default), finds the keys
missing from every <lang>.json next to it and translates them in batches
through the Gemini API. Earlier translations are reused from the local
cache. With --watch the sync re-runs whenever the source file changes.

Examples:
  nitrokit sync-translations
  nitrokit sync-translations --languages tr,de --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(store *db.Store) error {
				ctx := cmd.Context()
				out := cmd.OutOrStdout()
				logging.Section("🌍 " + i18n.T("translate.title"))

				if store.IsFirstRun(ctx) && os.Getenv("GEMINI_API_KEY") == "" {
					fmt.Fprintln(out, i18n.T("translate.first_run"))
					if err := runConfigSetup(cmd, store); err != nil {
						return err
					}
				}

				dir, err := workDir()
				if err != nil {
					return err
				}
				settings := translationSettings(ctx, store, dir)
				if settings.APIKey == "" {
					return fmt.Errorf("%w: %s", translate.ErrMissingAPIKey, i18n.T("translate.missing_key_hint"))
				}
				tr, err := newTranslator(ctx, settings.APIKey, settings.Model)
				if err != nil {
					return err
				}

				syncer := translate.NewSyncer(settings, tr, store)
				bar := translate.NewProgressBar(out)
				syncer.OnProgress = bar.Update

				langs := translate.ParseLanguages(languages)
				report, err := syncer.Sync(ctx, langs)
				if err != nil {
					return err
				}
				printTranslationReport(out, report)

				if watch {
					return translate.Watch(ctx, syncer, langs, func(r *translate.Report, err error) {
						if err != nil {
							logging.Errorf("%v", err)
							return
						}
						printTranslationReport(out, r)
					})
				}
				if n := report.Failed(); n > 0 {
					return fmt.Errorf("%s", i18n.T("translate.failed", n))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&languages, "languages", "", "Comma-separated language codes (default: every <lang>.json found)")
	cmd.Flags().BoolVar(&watch, "watch", false, "Keep running and sync whenever the source file changes")
	return cmd
}

func printTranslationReport(out io.Writer, r *translate.Report) {
	if r == nil {
		return
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, i18n.T("translate.source_keys", r.SourceKeys))
	for _, l := range r.Languages {
		switch {
		case l.Err != nil:
			fmt.Fprintf(out, "  %s %s: %v\n", tui.Fail("✗"), l.Language, l.Err)
		case l.Missing == 0:
			fmt.Fprintf(out, "  %s %s: %s\n", tui.Success("✓"), l.Language, i18n.T("translate.up_to_date"))
		default:
			fmt.Fprintf(out, "  %s %s: %s\n", tui.Success("✓"), l.Language, i18n.T("translate.updated", l.Updated, l.Missing, l.Cached))
		}
	}
}
