// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/nitrokit/nitrokit/internal/config"
	"github.com/nitrokit/nitrokit/internal/db"
	"github.com/nitrokit/nitrokit/internal/i18n"
	"github.com/nitrokit/nitrokit/internal/logging"
	"github.com/nitrokit/nitrokit/internal/tui"
)

var errConfigKeyNotFound = errors.New("config key not found")

// isTerminal is swapped in tests; piped stdin falls back to a plain read.
var isTerminal = term.IsTerminal

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show and change the stored settings",
	}
	cmd.AddCommand(
		newConfigShowCmd(),
		newConfigSetupCmd(),
		newConfigResetCmd(),
		newConfigSetCmd(),
		newConfigGetCmd(),
		newConfigBackupCmd(),
		newConfigRestoreCmd(),
		newConfigMaintainCmd(),
	)
	return cmd
}

// maskSecret keeps the first four characters of an API key.
func maskSecret(v string) string {
	if v == "" {
		return i18n.T("config.not_set")
	}
	if len(v) <= 4 {
		return "****"
	}
	return v[:4] + strings.Repeat("*", 8)
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the configuration file values and stored settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			logging.Section("⚙️  " + i18n.T("config.title"))
			if path, err := config.GetConfigPath(); err == nil {
				fmt.Fprintf(out, "%-26s %s\n", i18n.T("config.file"), path)
			}
			fmt.Fprintf(out, "%-26s %s\n", "project_name", appConfig.ProjectName)
			fmt.Fprintf(out, "%-26s %s\n", "git_remote", appConfig.GitRemote)
			fmt.Fprintf(out, "%-26s %s\n", "language", appConfig.Language)
			fmt.Fprintf(out, "%-26s %s\n", "database.type", appConfig.Database.Type)
			fmt.Fprintf(out, "%-26s %t\n", "update_check", appConfig.UpdateCheck)
			fmt.Fprintf(out, "%-26s %s\n", "quality.enabled_checks", strings.Join(appConfig.Quality.EnabledChecks, ","))

			return withStore(func(store *db.Store) error {
				ctx := cmd.Context()
				fmt.Fprintln(out)
				if store.Path() != "" {
					fmt.Fprintf(out, "%-26s %s\n", i18n.T("config.database"), store.Path())
				}
				cfg := store.LoadAppConfig(ctx)
				fmt.Fprintf(out, "%-26s %s\n", db.KeyGeminiAPIKey, maskSecret(cfg.GeminiAPIKey))
				fmt.Fprintf(out, "%-26s %s\n", db.KeyGeminiModel, cfg.GeminiModel)
				fmt.Fprintf(out, "%-26s %d\n", db.KeyTranslationDelay, cfg.TranslationDelay)
				fmt.Fprintf(out, "%-26s %s\n", db.KeyMessagesDir, cfg.MessagesDir)
				fmt.Fprintf(out, "%-26s %s\n", db.KeySourceFile, cfg.SourceFile)
				if store.IsFirstRun(ctx) {
					fmt.Fprintln(out, tui.Warn(i18n.T("config.first_run_hint")))
				}
				return nil
			})
		},
	}
}

// readSecret reads without echo when stdin is a terminal.
func readSecret(prompt string) string {
	fd := int(os.Stdin.Fd())
	if !isTerminal(fd) {
		return promptLine(prompt, "")
	}
	fmt.Printf("%s: ", prompt)
	b, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		logging.Warnf("could not read input: %v", err)
		return ""
	}
	return strings.TrimSpace(string(b))
}

// runConfigSetup asks for every translation setting. Empty answers keep
// the current value.
func runConfigSetup(cmd *cobra.Command, store *db.Store) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	cur := store.LoadAppConfig(ctx)

	fmt.Fprintln(out, i18n.T("setup.intro"))
	if cur.GeminiAPIKey != "" {
		fmt.Fprintln(out, i18n.T("setup.current_key", maskSecret(cur.GeminiAPIKey)))
	}
	if key := readSecret(i18n.T("setup.api_key")); key != "" {
		cur.GeminiAPIKey = key
	}
	cur.GeminiModel = promptLine(i18n.T("setup.model"), cur.GeminiModel)
	cur.TranslationDelay = db.ParseDelay(promptLine(i18n.T("setup.delay"), strconv.Itoa(cur.TranslationDelay)))
	cur.MessagesDir = promptLine(i18n.T("setup.messages_dir"), cur.MessagesDir)
	cur.SourceFile = promptLine(i18n.T("setup.source_file"), cur.SourceFile)

	if err := store.SaveAppConfig(ctx, cur); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	fmt.Fprintln(out, tui.Success(i18n.T("setup.saved")))
	return nil
}

func newConfigSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Interactively set the Gemini API key and translation settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(store *db.Store) error {
				return runConfigSetup(cmd, store)
			})
		},
	}
}

func newConfigResetCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every stored setting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !confirm(i18n.T("config.reset_confirm")) {
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T("config.reset_cancelled"))
				return nil
			}
			return withStore(func(store *db.Store) error {
				if err := store.Reset(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), tui.Success(i18n.T("config.reset_done")))
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store a single setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(store *db.Store) error {
				if err := store.Set(cmd.Context(), args[0], args[1]); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T("config.set_done", args[0]))
				return nil
			})
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print a single stored setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(store *db.Store) error {
				v, ok, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("%w: %s", errConfigKeyNotFound, args[0])
				}
				if args[0] == db.KeyGeminiAPIKey {
					v = maskSecret(v)
				}
				fmt.Fprintln(cmd.OutOrStdout(), v)
				return nil
			})
		},
	}
}

func newConfigBackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup [output-file]",
		Short: "Create a compressed (zstd) JSON backup of the settings and translation cache",
		Long: `Dumps the stored settings and the translation cache into a single
Zstandard-compressed JSON file.

If no output file is specified, 'nitrokit-backup-YYYY-MM-DD.json.zst' is
used. '.zst' is appended when missing.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFile := fmt.Sprintf("nitrokit-backup-%s.json.zst", time.Now().Format("2006-01-02"))
			if len(args) == 1 {
				outputFile = args[0]
				if !strings.HasSuffix(outputFile, ".zst") {
					outputFile += ".zst"
				}
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, i18n.T("backup.cli_starting"))
			return withStore(func(store *db.Store) error {
				snap, err := store.Export(cmd.Context())
				if err != nil {
					return errors.New(i18n.T("backup.cli_error_export", err))
				}
				f, err := os.OpenFile(outputFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
				if err != nil {
					return errors.New(i18n.T("backup.cli_error_write", err))
				}
				defer func() { _ = f.Close() }()
				if err := db.WriteBackup(snap, f); err != nil {
					return errors.New(i18n.T("backup.cli_error_write", err))
				}
				fmt.Fprintln(out, tui.Success(i18n.T("backup.cli_success", outputFile)))
				return nil
			})
		},
	}
}

func newConfigRestoreCmd() *cobra.Command {
	var replace bool
	cmd := &cobra.Command{
		Use:   "restore <backup-file>",
		Short: "Restore settings and translation cache from a backup",
		Long: `Reads a backup written by 'nitrokit config backup'. Entries are merged
into the store; with --replace the stored settings are wiped first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, i18n.T("restore.cli_starting", args[0]))
			f, err := os.Open(args[0])
			if err != nil {
				return errors.New(i18n.T("restore.cli_error_read", err))
			}
			defer func() { _ = f.Close() }()
			snap, err := db.ReadBackup(f)
			if err != nil {
				return errors.New(i18n.T("restore.cli_error_read", err))
			}
			return withStore(func(store *db.Store) error {
				if err := store.Import(cmd.Context(), snap, replace); err != nil {
					return errors.New(i18n.T("restore.cli_error_import", err))
				}
				fmt.Fprintln(out, tui.Success(i18n.T("restore.cli_success", len(snap.Config), len(snap.Translations))))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&replace, "replace", false, "Wipe the stored settings before restoring")
	return cmd
}

func newConfigMaintainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "maintain",
		Short: "Run database maintenance (VACUUM and integrity check)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(store *db.Store) error {
				if err := store.Maintain(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), tui.Success(i18n.T("config.maintain_done")))
				return nil
			})
		},
	}
}
