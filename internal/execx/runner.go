// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// Package execx runs external tools (git, gh, npm, cargo, ...) and captures
// their output. Every command module goes through a Runner so tests can
// replay scripted output instead of spawning processes.
package execx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// ErrToolNotFound is returned when the requested binary is not on PATH.
var ErrToolNotFound = errors.New("tool not found")

// Result captures one finished process.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Success reports a zero exit code.
func (r Result) Success() bool { return r.ExitCode == 0 }

// Combined joins stdout and stderr, trimmed.
func (r Result) Combined() string {
	out := strings.TrimSpace(r.Stdout)
	errOut := strings.TrimSpace(r.Stderr)
	switch {
	case out == "":
		return errOut
	case errOut == "":
		return out
	default:
		return out + "\n" + errOut
	}
}

// ExitError is returned alongside a Result when the process exits non-zero.
type ExitError struct {
	Command string
	Code    int
	Stderr  string
}

func (e *ExitError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		return fmt.Sprintf("%s exited with code %d", e.Command, e.Code)
	}
	return fmt.Sprintf("%s exited with code %d: %s", e.Command, e.Code, msg)
}

// Runner executes external commands.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (Result, error)
	LookPath(name string) (string, error)
}

// newExecCommand creates an exec.Cmd; swapped in tests.
var newExecCommand = func(ctx context.Context, name string, args ...string) *exec.Cmd {
	return exec.CommandContext(ctx, name, args...)
}

// execLookPath wraps exec.LookPath for testability.
var execLookPath = exec.LookPath

// OSRunner runs commands on the host. A zero Timeout means the caller's
// context is the only deadline.
type OSRunner struct {
	Timeout time.Duration
	Env     []string
}

// NewOSRunner returns a host runner with the given per-command timeout.
func NewOSRunner(timeout time.Duration) *OSRunner {
	return &OSRunner{Timeout: timeout}
}

func (r *OSRunner) LookPath(name string) (string, error) {
	path, err := execLookPath(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}
	return path, nil
}

func (r *OSRunner) Run(ctx context.Context, dir, name string, args ...string) (Result, error) {
	if _, err := r.LookPath(name); err != nil {
		return Result{ExitCode: -1}, err
	}
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := newExecCommand(ctx, name, args...)
	cmd.Dir = dir
	if len(r.Env) > 0 {
		cmd.Env = append(cmd.Environ(), r.Env...)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	res := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}
	if err == nil {
		return res, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		res.ExitCode = -1
		return res, fmt.Errorf("%s: %w", CommandString(name, args...), ctxErr)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, &ExitError{Command: CommandString(name, args...), Code: res.ExitCode, Stderr: res.Stderr}
	}
	res.ExitCode = -1
	return res, fmt.Errorf("run %s: %w", CommandString(name, args...), err)
}

// CommandString renders name and args the way a user would type them.
func CommandString(name string, args ...string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, name)
	for _, a := range args {
		if strings.ContainsAny(a, " \t\"'") {
			a = fmt.Sprintf("%q", a)
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}

// Available reports whether name is installed and answers `name --version`.
func Available(ctx context.Context, r Runner, name string) bool {
	if _, err := r.LookPath(name); err != nil {
		return false
	}
	res, err := r.Run(ctx, "", name, "--version")
	return err == nil && res.Success()
}

// RunInteractive runs name attached to the terminal, for commands that
// prompt the user (browser logins, sudo installers).
func RunInteractive(ctx context.Context, dir, name string, args ...string) error {
	if _, err := execLookPath(name); err != nil {
		return fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}
	cmd := newExecCommand(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", CommandString(name, args...), err)
	}
	return nil
}
