package fswatch

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/philly/emitter/internal/platform/eventbus"
	"github.com/philly/emitter/internal/platform/events"
	"github.com/philly/emitter/internal/platform/logger"
)

// Config holds the watcher settings. An empty Dir disables the watcher.
type Config struct {
	Dir string
}

// relevantOps are published; chmod-only events are dropped.
const relevantOps = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename

// Watcher publishes file.changed for every change inside one directory.
type Watcher struct {
	dir    string
	bus    *eventbus.Bus
	logger logger.Logger
	done   chan struct{} // closed when the watch loop exits; nil until started
}

func NewWatcher(config Config, bus *eventbus.Bus, logger logger.Logger) *Watcher {
	return &Watcher{dir: config.Dir, bus: bus, logger: logger}
}

// Enabled reports whether a directory is configured.
func (w *Watcher) Enabled() bool {
	return w.dir != ""
}

// Start begins watching and returns once the directory is registered.
// Changes are published asynchronously until ctx is done.
func (w *Watcher) Start(ctx context.Context) error {
	if !w.Enabled() {
		w.logger.Info(ctx, "watcher disabled")
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(w.dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}

	w.logger.Info(ctx, "watching directory", "dir", w.dir)

	done := make(chan struct{})
	w.done = done
	go func() {
		defer close(done)
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !evt.Op.Has(relevantOps) {
					continue
				}
				w.bus.Publish(ctx, events.FileChangedTopic, events.FileChangedEvent{
					Path: evt.Name,
					Base: filepath.Base(evt.Name),
					Op:   opName(evt.Op),
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				w.logger.Warn(ctx, "watcher error", "dir", w.dir, "error", err)
			}
		}
	}()

	return nil
}

// Wait blocks until the watch loop started by Start has exited.
// It returns at once when the watcher never started.
func (w *Watcher) Wait() {
	if w.done != nil {
		<-w.done
	}
}

// opName picks the most significant operation of an Op that has one of relevantOps.
func opName(op fsnotify.Op) string {
	switch {
	case op.Has(fsnotify.Create):
		return "create"
	case op.Has(fsnotify.Remove):
		return "remove"
	case op.Has(fsnotify.Rename):
		return "rename"
	default:
		return "write"
	}
}
