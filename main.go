// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for Nitrokit.
//
// Usage:
//
//	go run . [command] [flags]
//	./nitrokit [command] [flags]
//
// Without a command the interactive menu opens. See --help for options.
package main

import (
	"os"

	log "github.com/charmbracelet/log"

	"github.com/nitrokit/nitrokit/ui/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
