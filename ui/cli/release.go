// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nitrokit/nitrokit/internal/i18n"
	"github.com/nitrokit/nitrokit/internal/logging"
	"github.com/nitrokit/nitrokit/internal/release"
	"github.com/nitrokit/nitrokit/internal/tui"
)

// newPublisher is swapped in tests to avoid the GitHub API.
var newPublisher = func() (release.Publisher, error) { return release.NewGitHubClient() }

func newReleaseManager(cmd *cobra.Command) (*release.Manager, error) {
	dir, err := workDir()
	if err != nil {
		return nil, err
	}
	m, err := release.NewManager(cmd.Context(), newRunner(), dir)
	if err != nil {
		return nil, err
	}
	m.Remote = appConfig.GitRemote
	if appConfig.Release.DefaultBranch != "" {
		m.Branch = appConfig.Release.DefaultBranch
	}
	return m, nil
}

func newCreateReleaseCmd() *cobra.Command {
	var github, skipTasks, dryRun bool

	cmd := &cobra.Command{
		Use:   "create-release [version] [message]",
		Short: "Bump the version, tag and publish a release",
		Long: `Bumps the project version (major, minor, patch or an explicit X.Y.Z),
commits the version file, creates an annotated tag, pushes, writes release
notes and optionally creates a GitHub release (requires GITHUB_TOKEN).

Examples:
  nitrokit create-release patch
  nitrokit create-release 2.0.0 "Second major release" --github
  nitrokit create-release minor --dry-run`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newReleaseManager(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			logging.Section("🚀 " + i18n.T("release.title"))

			current := m.CurrentVersion(cmd.Context())
			fmt.Fprintln(out, i18n.T("release.current_version", orDash(current)))

			opts := release.Options{
				GitHub:    github || appConfig.Release.CreateGitHub,
				SkipTasks: skipTasks || !appConfig.Release.RunFrameworkTasks,
				DryRun:    dryRun,
				NotesDir:  resolveIn(m.Dir, appConfig.Release.OutputDir),
			}
			if len(args) > 0 {
				opts.Version = args[0]
			} else {
				opts.Version = promptLine(i18n.T("release.version_prompt"), string(release.BumpPatch))
			}
			if len(args) > 1 {
				opts.Message = args[1]
			}

			// A missing token is a precondition failure, not a late warning.
			if opts.GitHub && !opts.DryRun {
				pub, err := newPublisher()
				if err != nil {
					return err
				}
				m.Publisher = pub
			}

			res, err := m.Create(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if opts.DryRun {
				fmt.Fprintln(out, i18n.T("release.dry_run", res.Previous, res.Version))
				return nil
			}
			fmt.Fprintln(out, tui.Success(i18n.T("release.tag_created", res.Tag)))
			if res.NotesPath != "" {
				fmt.Fprintln(out, i18n.T("release.notes_written", res.NotesPath))
			}
			if res.ReleaseURL != "" {
				fmt.Fprintln(out, i18n.T("release.github_created", res.ReleaseURL))
			}
			for _, w := range res.Warnings {
				fmt.Fprintln(out, tui.Warn("⚠ "+w))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&github, "github", false, "Create a GitHub release (needs GITHUB_TOKEN)")
	cmd.Flags().BoolVar(&skipTasks, "skip-tasks", false, "Skip the project's lint, test and build scripts")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would happen without changing anything")
	return cmd
}

func newVersionHistoryCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "version-history",
		Short: "List the newest version tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newReleaseManager(cmd)
			if err != nil {
				return err
			}
			tags, err := m.History(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(tags) == 0 {
				fmt.Fprintln(out, i18n.T("release.no_tags"))
				return nil
			}
			fmt.Fprintln(out, i18n.T("release.history_title"))
			for i, tag := range tags {
				fmt.Fprintf(out, "  %2d. %s\n", i+1, tag)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "Number of tags to show")
	return cmd
}
