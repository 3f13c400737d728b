// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// Package logging is the shared console logger for Nitrokit. Every command
// reports progress through the helpers here so output stays uniform:
// a [HH:MM:SS] timestamp, a level and the message.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	clog "github.com/charmbracelet/log"
)

// TimeFormat is the clock format printed in front of every record.
const TimeFormat = "15:04:05"

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("40")).Bold(true)
	sectionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true)
)

// L is the package-level logger. Callers should use the helper functions
// below rather than reaching into L directly.
var L = New(os.Stderr)

// New builds a logger writing to w with Nitrokit's record layout.
func New(w io.Writer) *clog.Logger {
	return clog.NewWithOptions(w, clog.Options{
		ReportTimestamp: true,
		TimeFormat:      TimeFormat,
		Level:           clog.InfoLevel,
	})
}

// SetOutput redirects the package logger, keeping its level.
func SetOutput(w io.Writer) {
	lvl := L.GetLevel()
	L = New(w)
	L.SetLevel(lvl)
}

// SetVerbose toggles debug records.
func SetVerbose(verbose bool) {
	if verbose {
		L.SetLevel(clog.DebugLevel)
		return
	}
	L.SetLevel(clog.InfoLevel)
}

// Debugf logs a debug-level formatted message.
func Debugf(format string, v ...interface{}) {
	L.Debug(fmt.Sprintf(format, v...))
}

// Infof logs an info-level formatted message.
func Infof(format string, v ...interface{}) {
	L.Info(fmt.Sprintf(format, v...))
}

// Warnf logs a warning-level formatted message.
func Warnf(format string, v ...interface{}) {
	L.Warn(fmt.Sprintf(format, v...))
}

// Errorf logs an error-level formatted message.
func Errorf(format string, v ...interface{}) {
	L.Error(fmt.Sprintf(format, v...))
}

// Successf logs an info record marked as a completed step.
func Successf(format string, v ...interface{}) {
	L.Info(successStyle.Render("SUCCESS") + " " + fmt.Sprintf(format, v...))
}

// Section prints a highlighted heading to stdout. Used by command banners.
func Section(title string) {
	fmt.Println()
	fmt.Println(sectionStyle.Render(title))
}
