// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nitrokit/nitrokit/internal/i18n"
	"github.com/nitrokit/nitrokit/internal/logging"
	"github.com/nitrokit/nitrokit/internal/project"
	"github.com/nitrokit/nitrokit/internal/quality"
	"github.com/nitrokit/nitrokit/internal/tui"
)

func newCodeQualityCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "code-quality [path]",
		Short: "Run linters, formatters, security audits and tests",
		Long: `Detects the project toolchain and runs its lint, format, security and
test commands in parallel. The enabled checks, parallelism and timeout come
from the quality section of nitrokit.yaml and may be overridden by a JSON
file given with --config-file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) == 1 {
				dir = args[0]
			} else {
				wd, err := workDir()
				if err != nil {
					return err
				}
				dir = wd
			}
			dir, err := filepath.Abs(dir)
			if err != nil {
				return err
			}

			cfg, err := quality.LoadConfig(configPath, quality.FromSettings(appConfig.Quality))
			if err != nil {
				return err
			}
			info, err := project.Detect(dir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			logging.Section("🔍 " + i18n.T("quality.title"))
			fmt.Fprintln(out, i18n.T("quality.project", info.Type, dir))

			runner := quality.NewRunner(newRunner(), cfg)
			if install, ok := quality.InstallStep(info, cfg); ok {
				res := runner.RunOne(cmd.Context(), dir, install)
				if !res.Success {
					return fmt.Errorf("%s: %s", install, res.Error)
				}
			}

			checks := quality.PlanChecks(info, cfg)
			runner.OnResult = func(r quality.CheckResult) { printCheckResult(out, r) }
			sum := quality.Summarize(runner.Run(cmd.Context(), dir, checks))

			fmt.Fprintln(out)
			fmt.Fprintln(out, i18n.T("quality.summary", sum.Passed, sum.Total, sum.Duration.Round(1e6)))
			if !sum.OK() {
				return fmt.Errorf("%s", i18n.T("quality.failed", strings.Join(sum.Failures, ", ")))
			}
			fmt.Fprintln(out, tui.Success(i18n.T("quality.all_passed")))
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config-file", "", "JSON file overriding the quality settings")
	return cmd
}

func printCheckResult(out io.Writer, r quality.CheckResult) {
	if r.Success {
		fmt.Fprintf(out, "%s %s (%s)\n", tui.Success("✓"), r.Name, r.Duration.Round(1e6))
		return
	}
	fmt.Fprintf(out, "%s %s (%s)\n", tui.Fail("✗"), r.Name, r.Duration.Round(1e6))
	if r.Error != "" {
		fmt.Fprintf(out, "    %s\n", r.Error)
	}
	if r.Output != "" {
		for _, line := range lastLines(r.Output, 10) {
			fmt.Fprintf(out, "    %s\n", line)
		}
	}
}

func lastLines(s string, n int) []string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}
