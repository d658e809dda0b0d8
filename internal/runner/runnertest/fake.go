// Package runnertest provides a scripted Runner for tests.
package runnertest

import (
	"context"
	"fmt"
	"sync"
	"syncwatch/internal/runner"
)

type Call struct {
	Name string
	Args []string
}

// Subcommand is the first argument of the call, e.g. "sync" or "dedupe".
func (c Call) Subcommand() string {
	if len(c.Args) == 0 {
		return ""
	}
	return c.Args[0]
}

// Fake answers calls by subcommand. A subcommand without a scripted result
// exits zero with no output.
type Fake struct {
	mu      sync.Mutex
	results map[string]runner.Result
	calls   []Call

	// OnRun, if set, runs inside every call before it returns.
	OnRun func(Call)
}

func New() *Fake {
	return &Fake{results: make(map[string]runner.Result)}
}

func (f *Fake) Set(subcommand string, res runner.Result) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results[subcommand] = res
	return f
}

// Fail scripts subcommand to exit with code and write stderr.
func (f *Fake) Fail(subcommand string, code int, stderr string) *Fake {
	return f.Set(subcommand, runner.Result{
		ExitCode: code,
		Stderr:   stderr,
		Err:      fmt.Errorf("exit status %d", code),
	})
}

func (f *Fake) Run(_ context.Context, name string, args ...string) runner.Result {
	call := Call{Name: name, Args: append([]string(nil), args...)}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	res := f.results[call.Subcommand()]
	onRun := f.OnRun
	f.mu.Unlock()

	if onRun != nil {
		onRun(call)
	}

	return res
}

func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

func (f *Fake) Count(subcommand string) int {
	n := 0
	for _, c := range f.Calls() {
		if c.Subcommand() == subcommand {
			n++
		}
	}
	return n
}
