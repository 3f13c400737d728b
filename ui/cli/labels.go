// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nitrokit/nitrokit/internal/i18n"
	"github.com/nitrokit/nitrokit/internal/labels"
	"github.com/nitrokit/nitrokit/internal/logging"
	"github.com/nitrokit/nitrokit/internal/tui"
)

func newGitHubLabelsCmd() *cobra.Command {
	var opts labels.Options

	cmd := &cobra.Command{
		Use:   "github-labels",
		Short: "Restyle and create the repository's GitHub issue labels",
		Long: `Uses the GitHub CLI (gh) to give the default labels an emoji prefix and
a consistent description, then creates the priority, status, component,
difficulty and type labels. gh is installed and authenticated on request.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := workDir()
			if err != nil {
				return err
			}
			logging.Section("🏷️  " + i18n.T("labels.title"))

			m := labels.NewManager(newRunner(), dir)
			m.Confirm = confirm
			sum, err := m.Run(cmd.Context(), opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.ListOnly {
				for _, l := range sum.Labels {
					fmt.Fprintf(out, "  %-32s #%s  %s\n", l.Name, l.Color, l.Description)
				}
				fmt.Fprintln(out, i18n.T("labels.listed", len(sum.Labels)))
				return nil
			}
			line := i18n.T("labels.summary", sum.Updated, sum.Created, sum.Deleted, sum.Failed)
			if sum.Failed > 0 {
				fmt.Fprintln(out, tui.Warn(line))
			} else {
				fmt.Fprintln(out, tui.Success(line))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.SkipAuth, "skip-auth", false, "Skip the gh authentication check")
	cmd.Flags().BoolVar(&opts.SkipInstall, "skip-install", false, "Skip the gh installation check")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Print what would change")
	cmd.Flags().BoolVar(&opts.ListOnly, "list", false, "Only list the current labels")
	cmd.Flags().BoolVar(&opts.DeleteAll, "delete-all", false, "Delete every existing label first")
	cmd.Flags().BoolVar(&opts.UpdateOnly, "update-only", false, "Restyle existing labels without creating new ones")
	return cmd
}
