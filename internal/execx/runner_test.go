// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package execx

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"testing"
	"time"
)

// TestHelperProcess is not a real test. It is re-executed by fakeCommand
// to stand in for external binaries.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("NITROKIT_HELPER_PROCESS") != "1" {
		return
	}
	switch os.Getenv("NITROKIT_HELPER_MODE") {
	case "ok":
		os.Stdout.WriteString("hello\n")
		os.Exit(0)
	case "fail":
		os.Stderr.WriteString("boom\n")
		os.Exit(3)
	case "sleep":
		time.Sleep(5 * time.Second)
		os.Exit(0)
	}
	os.Exit(0)
}

func fakeCommand(mode string) func(ctx context.Context, name string, args ...string) *exec.Cmd {
	return func(ctx context.Context, name string, args ...string) *exec.Cmd {
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(), "NITROKIT_HELPER_PROCESS=1", "NITROKIT_HELPER_MODE="+mode)
		return cmd
	}
}

func withFakes(t *testing.T, mode string) {
	t.Helper()
	prevCmd, prevLook := newExecCommand, execLookPath
	newExecCommand = fakeCommand(mode)
	execLookPath = func(string) (string, error) { return "/usr/bin/fake", nil }
	t.Cleanup(func() {
		newExecCommand = prevCmd
		execLookPath = prevLook
	})
}

func TestOSRunner_Success(t *testing.T) {
	withFakes(t, "ok")
	res, err := NewOSRunner(0).Run(context.Background(), "", "tool", "arg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Success() || res.Stdout != "hello\n" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestOSRunner_NonZeroExit(t *testing.T) {
	withFakes(t, "fail")
	res, err := NewOSRunner(0).Run(context.Background(), "", "tool")
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected ExitError, got %T %v", err, err)
	}
	if res.ExitCode != 3 || exitErr.Code != 3 {
		t.Fatalf("expected exit code 3, got %d / %d", res.ExitCode, exitErr.Code)
	}
	if res.Combined() != "boom" {
		t.Fatalf("unexpected combined output %q", res.Combined())
	}
}

func TestOSRunner_Timeout(t *testing.T) {
	withFakes(t, "sleep")
	_, err := NewOSRunner(100*time.Millisecond).Run(context.Background(), "", "tool")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestOSRunner_MissingTool(t *testing.T) {
	prev := execLookPath
	execLookPath = func(string) (string, error) { return "", exec.ErrNotFound }
	defer func() { execLookPath = prev }()

	_, err := NewOSRunner(0).Run(context.Background(), "", "definitely-missing")
	if !errors.Is(err, ErrToolNotFound) {
		t.Fatalf("expected ErrToolNotFound, got %v", err)
	}
}

func TestCommandString_QuotesSpaces(t *testing.T) {
	got := CommandString("gh", "label", "create", "🐛 bug", "--color", "D73A49")
	want := `gh label create "🐛 bug" --color D73A49`
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestResult_Combined(t *testing.T) {
	cases := []struct {
		r    Result
		want string
	}{
		{Result{Stdout: "a\n"}, "a"},
		{Result{Stderr: " b "}, "b"},
		{Result{Stdout: "a", Stderr: "b"}, "a\nb"},
	}
	for _, c := range cases {
		if got := c.r.Combined(); got != c.want {
			t.Fatalf("Combined(%+v) = %q want %q", c.r, got, c.want)
		}
	}
}

func TestRunInteractive(t *testing.T) {
	withFakes(t, "ok")
	if err := RunInteractive(context.Background(), "", "tool"); err != nil {
		t.Fatalf("RunInteractive: %v", err)
	}

	withFakes(t, "fail")
	if err := RunInteractive(context.Background(), "", "tool"); err == nil {
		t.Fatal("expected error from failing command")
	}

	execLookPath = func(string) (string, error) { return "", errors.New("missing") }
	if err := RunInteractive(context.Background(), "", "tool"); !errors.Is(err, ErrToolNotFound) {
		t.Fatalf("expected ErrToolNotFound, got %v", err)
	}
}
