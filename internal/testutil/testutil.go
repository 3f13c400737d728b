// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// Package testutil holds small fakes shared by package tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/nitrokit/nitrokit/internal/execx"
)

// Response is a scripted answer for one command prefix.
type Response struct {
	Result execx.Result
	Err    error
}

// FakeRunner is an in-memory execx.Runner. Commands are matched against
// scripted responses by the longest registered prefix of
// "name arg1 arg2 ...". Unmatched commands succeed with empty output.
type FakeRunner struct {
	mu        sync.Mutex
	responses map[string]Response
	queued    map[string][]Response
	missing   map[string]bool
	Calls     []Call
}

// Call is one recorded invocation.
type Call struct {
	Dir  string
	Name string
	Args []string
}

// String renders the call as a command line.
func (c Call) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

func NewFakeRunner() *FakeRunner {
	return &FakeRunner{responses: map[string]Response{}, queued: map[string][]Response{}, missing: map[string]bool{}}
}

// On scripts stdout and exit code for commands starting with prefix.
func (f *FakeRunner) On(prefix, stdout string, exitCode int) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	res := execx.Result{Stdout: stdout, ExitCode: exitCode}
	var err error
	if exitCode != 0 {
		res.Stderr = stdout
		err = &execx.ExitError{Command: prefix, Code: exitCode, Stderr: stdout}
	}
	f.responses[prefix] = Response{Result: res, Err: err}
	return f
}

// Once scripts a response used by the next matching call only. Queued
// responses are consulted before the ones registered with On.
func (f *FakeRunner) Once(prefix, stdout string, exitCode int) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	res := execx.Result{Stdout: stdout, ExitCode: exitCode}
	var err error
	if exitCode != 0 {
		res.Stderr = stdout
		err = &execx.ExitError{Command: prefix, Code: exitCode, Stderr: stdout}
	}
	f.queued[prefix] = append(f.queued[prefix], Response{Result: res, Err: err})
	return f
}

// OnError scripts an arbitrary error for commands starting with prefix.
func (f *FakeRunner) OnError(prefix string, err error) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[prefix] = Response{Result: execx.Result{ExitCode: -1}, Err: err}
	return f
}

// Missing marks a binary as not installed.
func (f *FakeRunner) Missing(names ...string) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range names {
		f.missing[n] = true
	}
	return f
}

func (f *FakeRunner) LookPath(name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.missing[name] {
		return "", fmt.Errorf("%w: %s", execx.ErrToolNotFound, name)
	}
	return "/usr/bin/" + name, nil
}

func (f *FakeRunner) Run(ctx context.Context, dir, name string, args ...string) (execx.Result, error) {
	if err := ctx.Err(); err != nil {
		return execx.Result{ExitCode: -1}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	call := Call{Dir: dir, Name: name, Args: append([]string(nil), args...)}
	f.Calls = append(f.Calls, call)
	if f.missing[name] {
		return execx.Result{ExitCode: -1}, fmt.Errorf("%w: %s", execx.ErrToolNotFound, name)
	}

	line := call.String()
	if q := longestPrefix(line, f.queued); q != "" {
		r := f.queued[q][0]
		if f.queued[q] = f.queued[q][1:]; len(f.queued[q]) == 0 {
			delete(f.queued, q)
		}
		return r.Result, r.Err
	}
	best := longestPrefix(line, f.responses)
	if best == "" {
		return execx.Result{}, nil
	}
	r := f.responses[best]
	return r.Result, r.Err
}

func longestPrefix[V any](line string, m map[string]V) string {
	best := ""
	for prefix := range m {
		if strings.HasPrefix(line, prefix) && len(prefix) > len(best) {
			best = prefix
		}
	}
	return best
}

// CallLines returns every recorded call as a command line.
func (f *FakeRunner) CallLines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.Calls))
	for _, c := range f.Calls {
		out = append(out, c.String())
	}
	return out
}

// Called reports whether any call starts with prefix.
func (f *FakeRunner) Called(prefix string) bool {
	for _, l := range f.CallLines() {
		if strings.HasPrefix(l, prefix) {
			return true
		}
	}
	return false
}

// WriteFiles creates files (relative to dir) with the given contents.
func WriteFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", path, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
}
