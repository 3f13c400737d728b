// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nitrokit/nitrokit/internal/db"
	"github.com/nitrokit/nitrokit/internal/i18n"
	"github.com/nitrokit/nitrokit/internal/logging"
	"github.com/nitrokit/nitrokit/internal/tui"
	"github.com/nitrokit/nitrokit/internal/updatecheck"
)

var newChecker = func() *updatecheck.Checker {
	return updatecheck.NewChecker(db.ResolveDataDir())
}

// notifyUpdate runs the cached startup check. It only speaks up when a
// newer release exists; failures are logged at debug level.
func notifyUpdate(ctx context.Context, out io.Writer, current string) {
	res, err := newChecker().Check(ctx, current, false)
	if err != nil {
		logging.Debugf("update check failed: %v", err)
		return
	}
	if res.Status == updatecheck.UpdateAvailable {
		printUpdateResult(out, res)
	}
}

func printUpdateResult(out io.Writer, res updatecheck.Result) {
	switch res.Status {
	case updatecheck.UpdateAvailable:
		fmt.Fprintln(out, tui.Warn(i18n.T("update.available", res.Latest.TagName, res.Current)))
		if res.Latest.HTMLURL != "" {
			fmt.Fprintln(out, "  "+res.Latest.HTMLURL)
		}
		fmt.Fprintln(out, "  "+i18n.T("update.install_hint"))
	case updatecheck.Development:
		fmt.Fprintln(out, i18n.T("update.development", res.Current, res.Latest.TagName))
	case updatecheck.UpToDate:
		fmt.Fprintln(out, tui.Success(i18n.T("update.up_to_date", res.Current)))
	}
}

func newCheckUpdatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-updates",
		Short: "Check GitHub for a newer nitrokit release",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, _, _ := resolveBuildVersion(nil)
			res, err := newChecker().Check(cmd.Context(), v, true)
			// Non-semver builds ("dev", a commit hash) cannot be compared.
			if err != nil && res.Latest != nil {
				res.Status = updatecheck.Development
				printUpdateResult(cmd.OutOrStdout(), res)
				return nil
			}
			if err != nil {
				return fmt.Errorf("check for updates: %w", err)
			}
			printUpdateResult(cmd.OutOrStdout(), res)
			return nil
		},
	}
}
