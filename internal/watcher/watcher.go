// Package watcher reports changes anywhere under a directory tree.
package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"syncwatch/internal/model"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher wraps fsnotify with recursive registration. Events are delivered on
// a single buffered channel; when the buffer is full new events are dropped.
type Watcher struct {
	fw       *fsnotify.Watcher
	log      *zap.Logger
	eventCh  chan model.ChangeEvent
	doneCh   chan struct{}
	exitedCh chan struct{}
	stopOnce sync.Once
	now      func() time.Time
}

func New(bufferSize int, log *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &Watcher{
		fw:       fw,
		log:      log,
		eventCh:  make(chan model.ChangeEvent, bufferSize),
		doneCh:   make(chan struct{}),
		exitedCh: make(chan struct{}),
		now:      time.Now,
	}, nil
}

// Watch registers dir and every directory below it and starts delivering
// events. It must be called once.
func (w *Watcher) Watch(dir string) error {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	if _, err := os.Stat(absDir); err != nil {
		return fmt.Errorf("source directory not found: %w", err)
	}

	if err := w.addRecursive(absDir); err != nil {
		return err
	}

	go w.run()

	w.log.Info("watcher started",
		zap.String("dir", absDir),
		zap.Bool("recursive", true))
	return nil
}

func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if err := w.fw.Add(path); err != nil {
				return fmt.Errorf("failed to watch %s: %w", path, err)
			}
			w.log.Debug("watching directory",
				zap.String("path", path))
		}

		return nil
	})
}

func (w *Watcher) run() {
	defer close(w.exitedCh)
	defer close(w.eventCh)

	for {
		select {
		case <-w.doneCh:
			w.log.Info("watcher stopping")
			return

		case fsEvent, ok := <-w.fw.Events:
			if !ok {
				return
			}

			kind := toEventKind(fsEvent.Op)
			if kind == "" {
				continue
			}

			if kind == model.EventCreated {
				w.watchNewDir(fsEvent.Name)
			}

			event := model.ChangeEvent{
				Kind:      kind,
				Path:      fsEvent.Name,
				Timestamp: w.now(),
			}

			select {
			case w.eventCh <- event:
			default:
				w.log.Warn("event channel is full, dropping event",
					zap.String("path", fsEvent.Name))
			}

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}

			w.log.Error("watcher error",
				zap.Error(err))
		}
	}
}

// watchNewDir extends the watch to a directory created after Watch was called.
func (w *Watcher) watchNewDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}

	if err := w.addRecursive(path); err != nil {
		w.log.Warn("failed to watch new directory",
			zap.String("path", path),
			zap.Error(err))
		return
	}

	w.log.Debug("added new directory to watch",
		zap.String("path", path))
}

func (w *Watcher) Events() <-chan model.ChangeEvent {
	return w.eventCh
}

// Stop ends event delivery and releases the OS watches. Events that arrive
// during teardown may be lost. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.doneCh)
		_ = w.fw.Close()
	})
}

// Done is closed once the delivery goroutine has exited.
func (w *Watcher) Done() <-chan struct{} {
	return w.exitedCh
}

func toEventKind(op fsnotify.Op) model.EventKind {
	switch {
	case op.Has(fsnotify.Create):
		return model.EventCreated
	case op.Has(fsnotify.Write):
		return model.EventModified
	case op.Has(fsnotify.Remove):
		return model.EventDeleted
	case op.Has(fsnotify.Rename):
		// fsnotify reports only the old name; the new name arrives as Create.
		return model.EventMovedFrom
	default:
		return ""
	}
}
