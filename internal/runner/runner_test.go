//go:build !windows

package runner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecRunnerCapturesOutput(t *testing.T) {
	t.Parallel()

	res := ExecRunner{}.Run(context.Background(), "sh", "-c", "echo out; echo err >&2")

	assert.True(t, res.Success())
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "out\n", res.Stdout)
	assert.Equal(t, "err\n", res.Stderr)
}

func TestExecRunnerNonZeroExit(t *testing.T) {
	t.Parallel()

	res := ExecRunner{}.Run(context.Background(), "sh", "-c", "echo failed >&2; exit 3")

	assert.False(t, res.Success())
	assert.Equal(t, 3, res.ExitCode)
	assert.Error(t, res.Err)
	assert.Equal(t, "failed\n", res.Stderr)
}

func TestExecRunnerMissingBinary(t *testing.T) {
	t.Parallel()

	res := ExecRunner{}.Run(context.Background(), "syncwatch-no-such-binary")

	assert.False(t, res.Success())
	assert.Equal(t, -1, res.ExitCode)
	assert.Error(t, res.Err)
}

func TestExecRunnerIgnoresCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := ExecRunner{}.Run(ctx, "sh", "-c", "echo done")
	assert.True(t, res.Success())
	assert.Equal(t, "done\n", res.Stdout)
}

func TestDecodeReplacesInvalidBytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a�b", decode([]byte{'a', 0xff, 'b'}))
	assert.Equal(t, "同步", decode([]byte("同步")))
}
