package cmd

import (
	"context"
	"os"
	"os/signal"
	"syncwatch/internal/daemon"
	"syncwatch/internal/logger"
	"syncwatch/internal/pipeline"
	"syncwatch/internal/repository"
	"syncwatch/internal/syncer"
	"syncwatch/internal/watcher"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Sync once, then keep the destination mirrored as the source changes",
	RunE:  runDaemon,
}

func runDaemon(cmd *cobra.Command, args []string) error {
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Log.Error("invalid configuration, set SOURCE_PATH and DESTINATION_PATH",
			zap.Error(err))
		return err
	}

	log := logger.Log
	target := cfg.Target()
	clock := clockwork.NewRealClock()

	w, err := watcher.New(cfg.BufferSize, log.Named("watcher"))
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	state := daemon.NewState(target, cfg.Cooldown, clock.Now())
	histRepo := repository.NewHistoryRepository(cfg.HistorySize)

	ctrl := daemon.NewController(daemon.ControllerConfig{
		Target:   target,
		Source:   w,
		Ignore:   pipeline.IgnoreSet(cfg.IgnoreSuffixes),
		Gate:     pipeline.NewGate(cfg.Cooldown, clock),
		Executor: syncer.NewExecutor(target, syncCommand(), syncer.Options{Clock: clock, Log: log.Named("syncer")}),
		State:    state,
		History:  histRepo,
		Metrics:  daemon.NewMetrics(reg),
		Log:      log.Named("controller"),
	})

	var srv *daemon.Server
	if cfg.DaemonPort > 0 {
		srv = daemon.NewServer(state, histRepo, reg, cfg.DaemonPort, log.Named("server"))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			log.Info("shutting down",
				zap.String("signal", sig.String()))
			cancel()
		case <-ctx.Done():
		}
	}()

	return daemon.NewSupervisor(ctrl, srv, target, cfg.Cooldown, log).Run(ctx)
}

func syncCommand() syncer.Command {
	return syncer.Command{
		Binary:     cfg.RclonePath,
		MaxDepth:   cfg.MaxDepth,
		Flags:      cfg.SyncFlags,
		DedupeMode: cfg.DedupeMode,
	}
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
