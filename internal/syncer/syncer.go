// Package syncer mirrors the watched tree to its destination with rclone and
// deduplicates the destination after every successful mirror.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"syncwatch/internal/model"
	"syncwatch/internal/runner"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

var (
	ErrSourceMissing = errors.New("source path does not exist")
	ErrSyncProcess   = errors.New("sync process failed")
	ErrDedupeProcess = errors.New("dedupe process failed")
)

type Options struct {
	Fs     afero.Fs
	Runner runner.Runner
	Clock  clockwork.Clock
	Log    *zap.Logger
}

type Executor struct {
	target  model.WatchTarget
	command Command
	fs      afero.Fs
	runner  runner.Runner
	clock   clockwork.Clock
	log     *zap.Logger
}

func NewExecutor(target model.WatchTarget, command Command, opts Options) *Executor {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Runner == nil {
		opts.Runner = runner.ExecRunner{}
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}

	return &Executor{
		target:  target,
		command: command,
		fs:      opts.Fs,
		runner:  opts.Runner,
		clock:   opts.Clock,
		log:     opts.Log,
	}
}

// RunSync mirrors the source to the destination and, if that succeeds,
// deduplicates the destination. It blocks until both programs exit. Every
// failure is logged and reported in the outcome; nothing is retried.
func (e *Executor) RunSync(ctx context.Context, trigger string) model.SyncOutcome {
	start := e.clock.Now()
	outcome := e.runSync(ctx)
	outcome.Trigger = trigger
	outcome.StartedAt = start
	outcome.Duration = e.clock.Since(start)
	return outcome
}

func (e *Executor) runSync(ctx context.Context) model.SyncOutcome {
	src, dst := e.target.SourcePath, e.target.DestinationPath

	if _, err := e.fs.Stat(src); err != nil {
		if os.IsNotExist(err) {
			err = ErrSourceMissing
		} else {
			err = fmt.Errorf("%w: %w", ErrSourceMissing, err)
		}

		e.log.Error("source path not found",
			zap.String("src", src),
			zap.Error(err))

		return model.SyncOutcome{
			Status: model.StatusSourceMissing,
			Err:    err,
		}
	}

	e.log.Info("sync started",
		zap.String("src", src),
		zap.String("dst", dst))

	res := e.runner.Run(ctx, e.command.Binary, e.command.SyncArgs(src, dst)...)
	outcome := model.SyncOutcome{
		Stdout: res.Stdout,
		Stderr: res.Stderr,
	}

	if !res.Success() {
		outcome.Status = model.StatusFailed
		outcome.Err = processError(ErrSyncProcess, res)

		e.log.Error("sync failed",
			zap.Int("exit_code", res.ExitCode),
			zap.Error(res.Err),
			zap.String("stderr", res.Stderr))

		return outcome
	}

	outcome.Status = model.StatusSucceeded
	e.log.Info("sync completed")
	e.log.Debug("sync output",
		zap.String("stdout", res.Stdout))

	outcome.Dedupe = e.dedupe(ctx)
	return outcome
}

func (e *Executor) dedupe(ctx context.Context) *model.DedupeOutcome {
	dst := e.target.DestinationPath

	e.log.Info("dedupe started",
		zap.String("dst", dst),
		zap.String("mode", e.command.DedupeMode))

	res := e.runner.Run(ctx, e.command.Binary, e.command.DedupeArgs(dst)...)
	out := &model.DedupeOutcome{
		Success: res.Success(),
		Stdout:  res.Stdout,
		Stderr:  res.Stderr,
	}

	if !res.Success() {
		out.Err = processError(ErrDedupeProcess, res)

		e.log.Error("dedupe failed",
			zap.Int("exit_code", res.ExitCode),
			zap.Error(res.Err),
			zap.String("stderr", res.Stderr))

		return out
	}

	e.log.Info("dedupe completed")
	if res.Stdout != "" {
		e.log.Info("dedupe output",
			zap.String("stdout", res.Stdout))
	}

	return out
}

func processError(kind error, res runner.Result) error {
	if res.Err == nil {
		return fmt.Errorf("%w: exit status %d", kind, res.ExitCode)
	}

	return fmt.Errorf("%w: %w", kind, res.Err)
}
