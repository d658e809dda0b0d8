package daemon

import (
	"context"
	"errors"
	"net/http"
	"syncwatch/internal/model"
	"syncwatch/internal/runner/runnertest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newSupervisor(t *testing.T, h *harness, server *Server) (*Supervisor, *observer.ObservedLogs) {
	t.Helper()

	core, logs := observer.New(zapcore.InfoLevel)
	return NewSupervisor(h.ctrl, server, h.ctrl.target, 5*time.Second, zap.New(core)), logs
}

func runSupervisor(s *Supervisor, ctx context.Context) chan error {
	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx)
	}()
	return done
}

func waitErr(t *testing.T, done chan error) error {
	t.Helper()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("supervisor did not return")
		return nil
	}
}

func TestSupervisorShutdownOnCancel(t *testing.T) {
	h := newHarnessWithLog(t, testTarget, zap.NewNop())
	s, logs := newSupervisor(t, h, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := runSupervisor(s, ctx)

	require.Eventually(t, func() bool {
		return len(h.src.Watched()) == 1
	}, 5*time.Second, time.Millisecond)
	cancel()

	assert.NoError(t, waitErr(t, done))
	assert.Equal(t, int32(1), h.src.stopped.Load())
	assert.Equal(t, 1, logs.FilterMessage("===== syncwatch started =====").Len())
	assert.Equal(t, 1, logs.FilterMessage("===== syncwatch stopped =====").Len())
}

func TestSupervisorStopViaAPI(t *testing.T) {
	h := newHarnessWithLog(t, testTarget, zap.NewNop())
	f := newServerFixture(t)
	s, logs := newSupervisor(t, h, f.server)

	done := runSupervisor(s, context.Background())

	require.Eventually(t, func() bool {
		return len(h.src.Watched()) == 1
	}, 5*time.Second, time.Millisecond)
	f.do(t, http.MethodPost, "/stop")

	assert.NoError(t, waitErr(t, done))
	assert.Equal(t, int32(1), h.src.stopped.Load())
	assert.Equal(t, 1, logs.FilterMessage("stop requested via API").Len())
}

func TestSupervisorDoesNotWaitForRunningSync(t *testing.T) {
	h := newHarnessWithLog(t, testTarget, zap.NewNop())
	s, _ := newSupervisor(t, h, nil)

	release := make(chan struct{})
	started := make(chan struct{}, 1)
	h.runner.OnRun = func(call runnertest.Call) {
		if call.Subcommand() == "sync" {
			started <- struct{}{}
			<-release
		}
	}
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	done := runSupervisor(s, ctx)

	<-started
	cancel()

	assert.NoError(t, waitErr(t, done))
	assert.Empty(t, h.src.Watched(), "the watch is never registered while the startup sync hangs")
}

func TestSupervisorReturnsConfigurationError(t *testing.T) {
	h := newHarnessWithLog(t, model.WatchTarget{SourcePath: "/home/user/netdisk"}, zap.NewNop())
	s, _ := newSupervisor(t, h, nil)

	err := waitErr(t, runSupervisor(s, context.Background()))

	assert.True(t, errors.Is(err, model.ErrConfiguration))
	assert.Empty(t, h.runner.Calls())
	assert.Empty(t, h.src.Watched())
}
