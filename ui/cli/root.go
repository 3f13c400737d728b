// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// root.go sets up the root command, the shared startup path
// (dotenv, config, i18n) and the interactive menu loop.

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"strings"

	log "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nitrokit/nitrokit/buildvars"
	"github.com/nitrokit/nitrokit/internal/config"
	"github.com/nitrokit/nitrokit/internal/db"
	"github.com/nitrokit/nitrokit/internal/execx"
	"github.com/nitrokit/nitrokit/internal/i18n"
	"github.com/nitrokit/nitrokit/internal/logging"
	"github.com/nitrokit/nitrokit/internal/tui"
)

const modulePath = "github.com/nitrokit/nitrokit"

var version = "dev"   // this will be set by the linker
var gitCommit = "dev" // set at build time with the short commit SHA
var buildDate = ""    // set at build time (RFC3339)
var cfgFile string
var verbose bool
var showVersionFlag bool

var appConfig config.Config

// Package-level hooks so tests can replace process-facing pieces.
var (
	newRunner = func() execx.Runner { return execx.NewOSRunner(0) }

	openStoreFunc = func() (*db.Store, error) {
		return db.OpenConfigured(appConfig.Database.Type, appConfig.Database.Dsn)
	}

	runMenuFunc = tui.Run

	getwd = os.Getwd

	// stdin is shared so consecutive prompts do not lose buffered input.
	stdin = bufio.NewReader(os.Stdin)

	exitFunc = os.Exit
)

func setupDefaultServices(cmd *cobra.Command, args []string) error {
	// Existing environment wins over .env.
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Warnf("could not load .env: %v", err)
	}

	optionalConfigPath, err := getConfigPathFromCli(cmd)
	if err != nil {
		return err
	}

	defaults := config.Defaults()
	appConfig, err = config.LoadConfig[config.Config](cmd, defaults, optionalConfigPath)
	// A missing file is expected on first run.
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		if writeErr := config.WriteConfigFile(&appConfig); writeErr != nil {
			log.Warnf("could not write default config file: %v", writeErr)
		} else {
			logging.Debugf("wrote default config to user config path")
		}
	} else if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	// A config file with blank values must not leave these empty.
	if appConfig.Language == "" {
		appConfig.Language = defaults["language"].(string)
	}
	if appConfig.Database.Type == "" {
		appConfig.Database.Type = defaults["database.type"].(string)
	}
	if appConfig.GitRemote == "" {
		appConfig.GitRemote = defaults["git_remote"].(string)
	}

	i18n.Init(appConfig.Language)
	return nil
}

func getConfigPathFromCli(cmd *cobra.Command) (*string, error) {
	if !cmd.Flags().Changed("config") {
		return nil, nil
	}
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("could not read --config flag: %w", err)
	}
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
	}
	return &path, nil
}

// Execute runs the CLI entrypoint. Ctrl+C cancels the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd creates a fresh command tree. Tests build one per case.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nitrokit",
		Short: "Nitrokit automates the chores around a software project.",
		Long: `Nitrokit checks code quality, updates dependencies, writes release
notes, cuts releases, tidies GitHub labels and keeps translation files in
sync with their source.

Running without a subcommand opens the interactive menu.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if showVersionFlag {
				fmt.Fprintln(cmd.OutOrStdout(), compositeVersion())
				exitFunc(0)
				return nil
			}
			logging.SetVerbose(verbose)
			return setupDefaultServices(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd)
		},
	}
	cmd.Version = compositeVersion()

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVarP(&showVersionFlag, "version", "V", false, "Print version and exit")
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/nitrokit/nitrokit.yaml)")
	cmd.PersistentFlags().String("language", "en", `Interface language ("en", "tr")`)

	cmd.AddCommand(
		newReleaseNotesCmd(),
		newUpdateDependenciesCmd(),
		newCodeQualityCmd(),
		newCreateReleaseCmd(),
		newVersionHistoryCmd(),
		newGitHubLabelsCmd(),
		newSyncTranslationsCmd(),
		newConfigCmd(),
		newCheckUpdatesCmd(),
		newVersionCmd(),
	)
	return cmd
}

func compositeVersion() string {
	v, c, d := resolveBuildVersion(nil)
	out := v
	if c != "" && c != "dev" {
		out = out + " (" + c + ")"
	}
	if d != "" {
		out = out + " built: " + d
	}
	return out
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			v, c, d := resolveBuildVersion(nil)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "version: %s\n", v)
			fmt.Fprintf(out, "commit: %s\n", c)
			if d != "" {
				fmt.Fprintf(out, "built: %s\n", d)
			}
		},
	}
}

// resolveBuildVersion prefers linker-injected values, then module build
// info, then the vcs stamp.
func resolveBuildVersion(info *debug.BuildInfo) (versionOut, commitOut, dateOut string) {
	resolvedVersion := buildvars.VersionOrDefault(version)
	resolvedCommit := gitCommit
	if buildvars.Commit != "" {
		resolvedCommit = buildvars.Commit
	}
	resolvedDate := buildDate
	if buildvars.Date != "" {
		resolvedDate = buildvars.Date
	}

	if info == nil {
		if local, ok := debug.ReadBuildInfo(); ok {
			info = local
		}
	}

	if info != nil {
		if resolvedVersion == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			resolvedVersion = info.Main.Version
		}
		// Some build paths only record our module among the deps.
		if resolvedVersion == "dev" {
			for _, dep := range info.Deps {
				if dep.Path == modulePath && dep.Version != "" {
					resolvedVersion = dep.Version
					break
				}
			}
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if s.Value != "" && resolvedCommit == "dev" {
					resolvedCommit = s.Value
				}
			case "vcs.time":
				if s.Value != "" && resolvedDate == "" {
					resolvedDate = s.Value
				}
			}
		}
	}

	if resolvedVersion == "dev" && resolvedCommit != "dev" && resolvedCommit != "" {
		resolvedVersion = resolvedCommit
	}
	return resolvedVersion, resolvedCommit, resolvedDate
}

// actionCommands maps menu entries to the subcommand path they run.
var actionCommands = map[tui.Action][]string{
	tui.ActionCreateRelease:      {"create-release"},
	tui.ActionReleaseNotes:       {"release-notes"},
	tui.ActionUpdateDependencies: {"update-dependencies"},
	tui.ActionSyncTranslations:   {"sync-translations"},
	tui.ActionCodeQuality:        {"code-quality"},
	tui.ActionGitHubLabels:       {"github-labels"},
	tui.ActionConfigShow:         {"config", "show"},
	tui.ActionConfigSetup:        {"config", "setup"},
	tui.ActionConfigReset:        {"config", "reset"},
}

func runMenu(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	v, _, _ := resolveBuildVersion(nil)
	fmt.Fprintln(out, tui.Banner(v))
	if appConfig.UpdateCheck {
		notifyUpdate(cmd.Context(), out, v)
	}

	for {
		res, err := runMenuFunc(v)
		if err != nil {
			return err
		}
		switch res.Action {
		case tui.ActionExit, tui.ActionNone:
			fmt.Fprintln(out, i18n.T("menu.goodbye"))
			return nil
		case tui.ActionLanguage:
			saveLanguage(res.Lang)
			continue
		}
		if err := dispatchAction(cmd.Root(), res.Action); err != nil {
			logging.Errorf("%v", err)
		}
		waitForEnter(out)
	}
}

func dispatchAction(root *cobra.Command, action tui.Action) error {
	if action == tui.ActionHelp {
		return root.Help()
	}
	path, ok := actionCommands[action]
	if !ok {
		return fmt.Errorf("unknown menu action %q", action)
	}
	sub, rest, err := root.Find(path)
	if err != nil {
		return err
	}
	ctx := root.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	sub.SetContext(ctx)
	sub.SetOut(root.OutOrStdout())
	if sub.RunE == nil {
		return nil
	}
	return sub.RunE(sub, rest)
}

func saveLanguage(lang string) {
	if lang == "" {
		return
	}
	appConfig.Language = lang
	i18n.SetLang(lang)
	if err := config.WriteConfigFile(&appConfig); err != nil {
		logging.Warnf("could not save language: %v", err)
	}
}

func waitForEnter(out io.Writer) {
	fmt.Fprint(out, "\n"+i18n.T("menu.press_enter"))
	_, _ = stdin.ReadString('\n')
}

// promptForConfirmation displays a prompt and reads a line from stdin.
func promptForConfirmation(prompt string) string {
	fmt.Print(prompt)
	answer, _ := stdin.ReadString('\n')
	return strings.TrimSpace(strings.ToLower(answer))
}

// promptLine reads one trimmed line, keeping its case. An empty answer
// yields def.
func promptLine(prompt, def string) string {
	if def != "" {
		fmt.Printf("%s [%s]: ", prompt, def)
	} else {
		fmt.Printf("%s: ", prompt)
	}
	answer, _ := stdin.ReadString('\n')
	if answer = strings.TrimSpace(answer); answer == "" {
		return def
	}
	return answer
}

// confirm asks a yes/no question; only y or yes accepts.
func confirm(prompt string) bool {
	switch promptForConfirmation(prompt + " (y/N): ") {
	case "y", "yes":
		return true
	}
	return false
}

func workDir() (string, error) {
	dir, err := getwd()
	if err != nil {
		return "", fmt.Errorf("could not determine working directory: %w", err)
	}
	return dir, nil
}

// resolveIn joins a relative p onto base. Empty stays empty.
func resolveIn(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

func withStore(fn func(*db.Store) error) error {
	store, err := openStoreFunc()
	if err != nil {
		return errors.New(i18n.T("config.error_init_db", err))
	}
	defer func() { _ = store.Close() }()
	return fn(store)
}
