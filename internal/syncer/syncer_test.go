package syncer

import (
	"context"
	"errors"
	"syncwatch/internal/model"
	"syncwatch/internal/runner/runnertest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var target = model.WatchTarget{
	SourcePath:      "/home/user/netdisk",
	DestinationPath: "gdrive:netdisk",
}

func newTestExecutor(t *testing.T, fake *runnertest.Fake, withSource bool) *Executor {
	t.Helper()

	fs := afero.NewMemMapFs()
	if withSource {
		require.NoError(t, fs.MkdirAll(target.SourcePath, 0755))
	}

	return NewExecutor(target, DefaultCommand(), Options{
		Fs:     fs,
		Runner: fake,
		Log:    zaptest.NewLogger(t),
	})
}

func TestRunSyncSourceMissing(t *testing.T) {
	fake := runnertest.New()
	e := newTestExecutor(t, fake, false)

	outcome := e.RunSync(context.Background(), "startup")

	assert.Equal(t, model.StatusSourceMissing, outcome.Status)
	assert.False(t, outcome.Success())
	assert.True(t, errors.Is(outcome.Err, ErrSourceMissing))
	assert.Nil(t, outcome.Dedupe)
	assert.Empty(t, fake.Calls(), "no subprocess may run without a source")
}

func TestRunSyncFailureSkipsDedupe(t *testing.T) {
	fake := runnertest.New().Fail("sync", 7, "didn't find section in config file")
	e := newTestExecutor(t, fake, true)

	outcome := e.RunSync(context.Background(), "/home/user/netdisk/a.txt")

	assert.Equal(t, model.StatusFailed, outcome.Status)
	assert.True(t, errors.Is(outcome.Err, ErrSyncProcess))
	assert.Equal(t, "didn't find section in config file", outcome.Stderr)
	assert.Nil(t, outcome.Dedupe)
	assert.Equal(t, 1, fake.Count("sync"))
	assert.Equal(t, 0, fake.Count("dedupe"))
}

func TestRunSyncSuccessRunsDedupeOnce(t *testing.T) {
	fake := runnertest.New()
	e := newTestExecutor(t, fake, true)

	outcome := e.RunSync(context.Background(), "startup")

	require.True(t, outcome.Success())
	assert.NoError(t, outcome.Err)
	require.NotNil(t, outcome.Dedupe)
	assert.True(t, outcome.Dedupe.Success)

	calls := fake.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, runnertest.Call{
		Name: "rclone",
		Args: []string{"sync", "/home/user/netdisk", "gdrive:netdisk", "--max-depth", "1", "--progress", "-v"},
	}, calls[0])
	assert.Equal(t, runnertest.Call{
		Name: "rclone",
		Args: []string{"dedupe", "--dedupe-mode", "newest", "gdrive:netdisk"},
	}, calls[1])
}

func TestRunSyncDedupeFailureKeepsSuccess(t *testing.T) {
	fake := runnertest.New().Fail("dedupe", 1, "quota exceeded")
	e := newTestExecutor(t, fake, true)

	outcome := e.RunSync(context.Background(), "startup")

	assert.True(t, outcome.Success())
	assert.NoError(t, outcome.Err)
	require.NotNil(t, outcome.Dedupe)
	assert.False(t, outcome.Dedupe.Success)
	assert.True(t, errors.Is(outcome.Dedupe.Err, ErrDedupeProcess))
	assert.Equal(t, 1, fake.Count("dedupe"))
}

func TestRunSyncRecordsDuration(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(start)

	fake := runnertest.New()
	fake.OnRun = func(runnertest.Call) { clock.Advance(2 * time.Second) }

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(target.SourcePath, 0755))
	e := NewExecutor(target, DefaultCommand(), Options{Fs: fs, Runner: fake, Clock: clock})

	outcome := e.RunSync(context.Background(), "/home/user/netdisk/a.txt")

	assert.Equal(t, "/home/user/netdisk/a.txt", outcome.Trigger)
	assert.Equal(t, start, outcome.StartedAt)
	assert.Equal(t, 4*time.Second, outcome.Duration)
}

func TestCommandArgs(t *testing.T) {
	c := Command{Binary: "/usr/bin/rclone", MaxDepth: 0, Flags: []string{"--fast-list"}, DedupeMode: "largest"}

	assert.Equal(t, []string{"sync", "/src", "remote:dst", "--fast-list"}, c.SyncArgs("/src", "remote:dst"))
	assert.Equal(t, []string{"dedupe", "--dedupe-mode", "largest", "remote:dst"}, c.DedupeArgs("remote:dst"))
}
