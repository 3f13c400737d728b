// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package logging

import (
	"bytes"
	"strings"
	"testing"

	clog "github.com/charmbracelet/log"
)

// TestLoggingHelpers_WriteToBuffer verifies the package helper functions write
// formatted messages to the package-level logger `L`. The test swaps `L` with
// a buffer-backed logger and restores it afterwards.
func TestLoggingHelpers_WriteToBuffer(t *testing.T) {
	var buf bytes.Buffer
	prev := L
	L = New(&buf)
	L.SetLevel(clog.DebugLevel)
	defer func() { L = prev }()

	Debugf("hello %s", "dbg")
	Infof("info %d", 1)
	Warnf("warn")
	Errorf("err %v", "E")
	Successf("done %s", "ok")

	out := buf.String()
	for _, want := range []string{"hello dbg", "info 1", "warn", "err E", "SUCCESS", "done ok"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output; got: %s", want, out)
		}
	}
}

func TestSetVerbose_TogglesDebug(t *testing.T) {
	var buf bytes.Buffer
	prev := L
	L = New(&buf)
	defer func() { L = prev }()

	Debugf("hidden")
	if strings.Contains(buf.String(), "hidden") {
		t.Fatalf("debug output should be suppressed at info level")
	}
	SetVerbose(true)
	Debugf("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("debug output expected after SetVerbose(true); got: %s", buf.String())
	}
	SetVerbose(false)
	if L.GetLevel() != clog.InfoLevel {
		t.Fatalf("expected info level, got %v", L.GetLevel())
	}
}

func TestSetOutput_KeepsLevel(t *testing.T) {
	prev := L
	defer func() { L = prev }()
	L = New(&bytes.Buffer{})
	L.SetLevel(clog.DebugLevel)

	var buf bytes.Buffer
	SetOutput(&buf)
	Debugf("after redirect")
	if !strings.Contains(buf.String(), "after redirect") {
		t.Fatalf("expected redirected debug output; got: %s", buf.String())
	}
}
