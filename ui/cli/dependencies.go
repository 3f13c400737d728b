// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nitrokit/nitrokit/internal/deps"
	"github.com/nitrokit/nitrokit/internal/i18n"
	"github.com/nitrokit/nitrokit/internal/logging"
	"github.com/nitrokit/nitrokit/internal/tui"
)

func newUpdateDependenciesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update-dependencies",
		Short: "Update Node, Rust, Python and PHP dependencies",
		Long: `Detects package.json, Cargo.toml, requirements.txt and composer.json in
the current directory, backs up manifests and lock files into
backup/<timestamp>/ and runs each ecosystem's update, outdated and audit
commands. Missing tools are skipped with a warning.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := workDir()
			if err != nil {
				return err
			}
			logging.Section("📦 " + i18n.T("deps.title"))
			reports, err := deps.NewUpdater(newRunner(), dir).Run(cmd.Context())
			if err != nil {
				return err
			}
			printDependencyReports(cmd.OutOrStdout(), reports)
			return nil
		},
	}
}

func printDependencyReports(out io.Writer, reports []deps.Report) {
	failed := 0
	for _, rep := range reports {
		header := fmt.Sprintf("%s (%s)", rep.Ecosystem, rep.Manifest)
		if rep.PackageManager != "" {
			header += " via " + rep.PackageManager
		}
		fmt.Fprintln(out, header)
		if len(rep.BackedUp) > 0 {
			fmt.Fprintf(out, "  %s\n", i18n.T("deps.backed_up", strings.Join(rep.BackedUp, ", ")))
		}
		if len(rep.Dependencies) > 0 {
			fmt.Fprintf(out, "  %s\n", i18n.T("deps.count", len(rep.Dependencies)))
		}
		for _, st := range rep.Steps {
			switch {
			case st.Skipped:
				fmt.Fprintf(out, "  %s %s\n", tui.Warn("-"), st.Name+": "+st.Warning)
			case st.Success:
				fmt.Fprintf(out, "  %s %s\n", tui.Success("✓"), st.Command)
			default:
				fmt.Fprintf(out, "  %s %s\n", tui.Fail("✗"), st.Command)
			}
			if st.Warning != "" && !st.Skipped {
				fmt.Fprintf(out, "    %s\n", tui.Warn(st.Warning))
			}
		}
		if rep.Failed() {
			failed++
		}
	}
	if failed > 0 {
		logging.Warnf("%s", i18n.T("deps.some_failed", failed))
		return
	}
	logging.Successf("%s", i18n.T("deps.done"))
}
