package daemon

import (
	"context"
	"syncwatch/internal/model"
	"time"

	"go.uber.org/zap"
)

const serverShutdownTimeout = 5 * time.Second

// Supervisor owns the daemon lifecycle: it runs the controller until the
// context is cancelled or a stop is requested, then tears the watch down.
type Supervisor struct {
	ctrl     *Controller
	server   *Server
	target   model.WatchTarget
	cooldown time.Duration
	log      *zap.Logger
}

// NewSupervisor builds a Supervisor. server may be nil when the control
// endpoint is disabled.
func NewSupervisor(ctrl *Controller, server *Server, target model.WatchTarget, cooldown time.Duration, log *zap.Logger) *Supervisor {
	return &Supervisor{
		ctrl:     ctrl,
		server:   server,
		target:   target,
		cooldown: cooldown,
		log:      log,
	}
}

// Run returns nil on an orderly shutdown. A sync that is still running when
// shutdown starts is neither awaited nor killed.
func (s *Supervisor) Run(ctx context.Context) error {
	s.log.Info("===== syncwatch started =====",
		zap.String("src", s.target.SourcePath),
		zap.String("dst", s.target.DestinationPath),
		zap.Duration("cooldown", s.cooldown))

	if s.server != nil {
		s.server.Start()
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.ctrl.Run(runCtx)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		s.log.Info("shutdown requested")
	case <-s.stopRequested():
		s.log.Info("stop requested via API")
	case runErr = <-errCh:
		if runErr != nil {
			s.log.Error("watch controller failed", zap.Error(runErr))
		}
	}

	cancel()
	s.ctrl.Stop()
	s.log.Info("directory watch stopped")

	if s.server != nil {
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), serverShutdownTimeout)
		defer cancelShutdown()

		if err := s.server.Stop(shutdownCtx); err != nil {
			s.log.Warn("control server shutdown failed", zap.Error(err))
		}
	}

	s.log.Info("===== syncwatch stopped =====")
	return runErr
}

func (s *Supervisor) stopRequested() <-chan struct{} {
	if s.server == nil {
		return nil
	}
	return s.server.StopCh()
}
