package daemon

import (
	"context"
	"fmt"
	"sync"
	"syncwatch/internal/model"
	"syncwatch/internal/pipeline"
	"syncwatch/internal/repository"

	"go.uber.org/zap"
)

const (
	dispositionIgnored    = "ignored"
	dispositionSuppressed = "suppressed"
	dispositionTriggered  = "triggered"
)

const startupTrigger = "startup"

// Source is a recursive watch on one directory tree.
type Source interface {
	Watch(dir string) error
	Events() <-chan model.ChangeEvent
	Stop()
}

type SyncExecutor interface {
	RunSync(ctx context.Context, trigger string) model.SyncOutcome
}

type ControllerConfig struct {
	Target   model.WatchTarget
	Source   Source
	Ignore   pipeline.IgnoreSet
	Gate     *pipeline.Gate
	Executor SyncExecutor
	State    *State
	History  *repository.HistoryRepository
	Metrics  *Metrics
	Log      *zap.Logger
}

// Controller runs the startup sync and then turns filtered, debounced change
// events into syncs. Events are handled one at a time on the goroutine that
// called Run, so a sync never starts while another is running.
type Controller struct {
	target   model.WatchTarget
	source   Source
	ignore   pipeline.IgnoreSet
	gate     *pipeline.Gate
	executor SyncExecutor
	state    *State
	history  *repository.HistoryRepository
	metrics  *Metrics
	log      *zap.Logger
	stopOnce sync.Once

	// observe is called after each event has been fully handled.
	observe func(ev model.ChangeEvent, disposition string)
}

func NewController(cfg ControllerConfig) *Controller {
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}

	return &Controller{
		target:   cfg.Target,
		source:   cfg.Source,
		ignore:   cfg.Ignore,
		gate:     cfg.Gate,
		executor: cfg.Executor,
		state:    cfg.State,
		history:  cfg.History,
		metrics:  cfg.Metrics,
		log:      cfg.Log,
	}
}

// Run blocks until ctx is done or the watch stops delivering events. It only
// returns an error when the daemon cannot start.
func (c *Controller) Run(ctx context.Context) error {
	if err := c.target.Validate(); err != nil {
		return err
	}

	c.log.Info("running initial sync")
	c.sync(ctx, startupTrigger)

	c.log.Info("starting directory watch")
	if err := c.source.Watch(c.target.SourcePath); err != nil {
		return fmt.Errorf("failed to watch source: %w", err)
	}
	defer c.Stop()

	c.log.Info("watching directory",
		zap.String("src", c.target.SourcePath),
		zap.Bool("recursive", true),
		zap.String("dst", c.target.DestinationPath))

	events := pipeline.Filter(c.source.Events(), c.ignore, c.log, func(ev model.ChangeEvent) {
		c.record(ev, dispositionIgnored)
	})

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				c.log.Warn("watch closed its event channel")
				return nil
			}
			c.handle(ctx, ev)
		}
	}
}

// Stop releases the watch registration. It does not wait for a running sync.
func (c *Controller) Stop() {
	c.stopOnce.Do(func() {
		c.source.Stop()
	})
}

func (c *Controller) handle(ctx context.Context, ev model.ChangeEvent) {
	c.log.Debug("change event",
		zap.String("kind", string(ev.Kind)),
		zap.String("path", ev.Path),
		zap.String("dest", ev.DestPath))

	if !c.gate.Allow() {
		c.record(ev, dispositionSuppressed)
		return
	}

	c.log.Info("directory change detected",
		zap.String("path", ev.TriggerPath()))
	c.sync(ctx, ev.TriggerPath())
	c.record(ev, dispositionTriggered)
}

func (c *Controller) sync(ctx context.Context, trigger string) {
	if c.state != nil {
		c.state.SetRunning(true)
	}

	outcome := c.executor.RunSync(ctx, trigger)

	if outcome.Success() {
		c.log.Info("sync task finished",
			zap.String("trigger", trigger),
			zap.Duration("duration", outcome.Duration))
	} else {
		c.log.Error("sync task failed",
			zap.String("trigger", trigger),
			zap.String("status", string(outcome.Status)),
			zap.Duration("duration", outcome.Duration),
			zap.Error(outcome.Err))
	}

	if c.state != nil {
		c.state.RecordSync(outcome)
	}
	if c.history != nil {
		c.history.Save(outcome)
	}
	if c.metrics != nil {
		c.metrics.ObserveSync(outcome)
	}
}

func (c *Controller) record(ev model.ChangeEvent, disposition string) {
	if c.state != nil {
		c.state.RecordEvent(disposition)
	}
	if c.metrics != nil {
		c.metrics.ObserveEvent(disposition)
	}
	if c.observe != nil {
		c.observe(ev, disposition)
	}
}
