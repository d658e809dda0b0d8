// Package runner runs external programs and captures their output.
package runner

import (
	"bytes"
	"context"
	"errors"
	"os/exec"

	"golang.org/x/text/encoding/unicode"
)

type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string

	// Err is set when the program could not start or exited non-zero.
	Err error
}

func (r Result) Success() bool {
	return r.Err == nil && r.ExitCode == 0
}

// Runner blocks until the program exits.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) Result
}

// ExecRunner runs programs as OS subprocesses. There is no deadline, and
// cancelling ctx does not kill a program that is already running.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) Result {
	cmd := exec.CommandContext(context.WithoutCancel(ctx), name, args...)
	hideWindow(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := Result{
		Stdout: decode(stdout.Bytes()),
		Stderr: decode(stderr.Bytes()),
		Err:    err,
	}

	if err != nil {
		result.ExitCode = -1
		if exitErr, ok := errors.AsType[*exec.ExitError](err); ok {
			result.ExitCode = exitErr.ExitCode()
		}
	}

	return result
}

// decode turns tool output into valid UTF-8, replacing bad bytes with U+FFFD.
func decode(b []byte) string {
	out, err := unicode.UTF8.NewDecoder().Bytes(b)
	if err != nil {
		return string(bytes.ToValidUTF8(b, []byte("�")))
	}

	return string(out)
}
