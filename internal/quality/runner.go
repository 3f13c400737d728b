// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package quality

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nitrokit/nitrokit/internal/execx"
	"github.com/nitrokit/nitrokit/internal/logging"
)

// CheckResult is the outcome of one Check.
type CheckResult struct {
	Name     string
	Command  string
	Success  bool
	Output   string
	Error    string
	Duration time.Duration
}

// Runner executes checks concurrently.
type Runner struct {
	Exec        execx.Runner
	MaxParallel int
	Timeout     time.Duration
	// OnResult, if set, is called as each check finishes. Calls are
	// serialized.
	OnResult func(CheckResult)

	mu sync.Mutex
}

func NewRunner(r execx.Runner, cfg Config) *Runner {
	return &Runner{Exec: r, MaxParallel: cfg.MaxParallelJobs, Timeout: cfg.Timeout()}
}

// Run executes checks in dir with at most MaxParallel in flight. Failures
// do not cancel other checks. Results are in the order of checks.
func (r *Runner) Run(ctx context.Context, dir string, checks []Check) []CheckResult {
	results := make([]CheckResult, len(checks))

	var g errgroup.Group
	limit := r.MaxParallel
	if limit <= 0 {
		limit = 1
	}
	g.SetLimit(limit)

	for i, check := range checks {
		g.Go(func() error {
			results[i] = r.runOne(ctx, dir, check)
			r.report(results[i])
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// RunOne executes a single check synchronously.
func (r *Runner) RunOne(ctx context.Context, dir string, check Check) CheckResult {
	res := r.runOne(ctx, dir, check)
	r.report(res)
	return res
}

func (r *Runner) report(res CheckResult) {
	if r.OnResult == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.OnResult(res)
}

func (r *Runner) runOne(ctx context.Context, dir string, check Check) CheckResult {
	res := CheckResult{Name: check.Name, Command: check.String()}
	if check.Command == "" {
		res.Success = true
		res.Output = "Basic validation completed"
		return res
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	logging.Debugf("running %s in %s", res.Command, dir)
	start := time.Now()
	out, err := r.Exec.Run(ctx, dir, check.Command, check.Args...)
	res.Duration = time.Since(start)
	if out.Duration > 0 {
		res.Duration = out.Duration
	}
	res.Output = out.Stdout
	res.Success = err == nil && out.Success()
	switch {
	case strings.TrimSpace(out.Stderr) != "":
		res.Error = strings.TrimSpace(out.Stderr)
	case err != nil:
		res.Error = err.Error()
	}
	return res
}

// Summary aggregates a run.
type Summary struct {
	Total    int
	Passed   int
	Failed   int
	Duration time.Duration
	Failures []string
}

func Summarize(results []CheckResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		s.Duration += r.Duration
		if r.Success {
			s.Passed++
			continue
		}
		s.Failed++
		s.Failures = append(s.Failures, r.Name)
	}
	return s
}

// OK reports whether every check passed.
func (s Summary) OK() bool { return s.Failed == 0 }
