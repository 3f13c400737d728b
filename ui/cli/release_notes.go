// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/nitrokit/nitrokit/internal/git"
	"github.com/nitrokit/nitrokit/internal/i18n"
	"github.com/nitrokit/nitrokit/internal/logging"
	"github.com/nitrokit/nitrokit/internal/releasenotes"
	"github.com/nitrokit/nitrokit/internal/tui"
)

// clipboardWrite is swapped in tests; CI machines have no clipboard.
var clipboardWrite = clipboard.WriteAll

// renderMarkdown styles markdown for the terminal.
func renderMarkdown(md string) (string, error) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

func newReleaseNotesCmd() *cobra.Command {
	var from, to, outputDir string
	var preview, copyNotes, dryRun bool

	cmd := &cobra.Command{
		Use:   "release-notes",
		Short: "Generate release notes from git history",
		Long: `Collects the commits between the two newest version tags (or the
tags given with --from and --to), groups them by category and writes
ReleaseNotes_<tag>_<date>.md.

Examples:
  nitrokit release-notes
  nitrokit release-notes --from v1.1.0 --to v1.2.0 --preview`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			dir, err := workDir()
			if err != nil {
				return err
			}
			repo, err := git.Open(ctx, newRunner(), dir)
			if err != nil {
				return err
			}
			if outputDir == "" {
				outputDir = appConfig.Release.OutputDir
			}
			outputDir = resolveIn(dir, outputDir)

			logging.Section("📝 " + i18n.T("release_notes.title"))
			gen := releasenotes.NewGenerator(repo, appConfig.GitRemote)
			res, err := gen.Generate(ctx, releasenotes.Options{
				From:      from,
				To:        to,
				OutputDir: outputDir,
				DryRun:    dryRun,
			})
			if err != nil {
				return fmt.Errorf("generate release notes: %w", err)
			}

			fmt.Fprintln(out, i18n.T("release_notes.range", orDash(res.PreviousTag), res.Tag, res.Commits))
			if res.Path != "" {
				fmt.Fprintln(out, tui.Success(i18n.T("release_notes.written", res.Path)))
			}
			if preview || dryRun {
				rendered, err := renderMarkdown(res.Markdown)
				if err != nil {
					logging.Warnf("could not render preview: %v", err)
					rendered = res.Markdown
				}
				fmt.Fprint(out, rendered)
			}
			if copyNotes {
				if err := clipboardWrite(res.Markdown); err != nil {
					logging.Warnf("could not copy to clipboard: %v", err)
				} else {
					fmt.Fprintln(out, tui.Success(i18n.T("release_notes.copied")))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Previous tag (default: second newest version tag)")
	cmd.Flags().StringVar(&to, "to", "", "Current tag (default: newest version tag)")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory for the generated file (default: release.output_dir)")
	cmd.Flags().BoolVar(&preview, "preview", false, "Render the notes in the terminal")
	cmd.Flags().BoolVar(&copyNotes, "copy", false, "Copy the notes to the clipboard")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the notes without writing a file")
	return cmd
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
