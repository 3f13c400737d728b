// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// Package cli builds the nitrokit command tree. Running without a
// subcommand opens the interactive menu; every menu entry maps to one of
// the subcommands defined here.
package cli
