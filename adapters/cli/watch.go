package adapter

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"website-audit/core/output"
	apperrors "website-audit/internal/errors"
)

// DefaultDebounce collapses the bursts of events editors emit on save
const DefaultDebounce = 300 * time.Millisecond

// WatchFunc receives the outcome of every run in watch mode
type WatchFunc func(report *output.Report, err error)

// Watch estimates path once, then again whenever it changes, until ctx is
// done. The parent directory is watched so editors that save by renaming
// a temp file are still seen. Run errors go to fn and do not stop the
// watch.
func (a *CLIAdapter) Watch(ctx context.Context, path string, debounce time.Duration, fn WatchFunc) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	target, err := filepath.Abs(path)
	if err != nil {
		return apperrors.Input("failed to resolve "+path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return apperrors.Internal("failed to create file watcher", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return apperrors.Input("failed to watch "+filepath.Dir(target), err)
	}

	log := a.log.With(zap.String("file", target))
	run := func() {
		report, _, err := a.Estimate(ctx, target, false)
		if ctx.Err() != nil {
			return
		}
		fn(report, err)
	}

	log.Info("watching for changes", zap.Duration("debounce", debounce))
	run()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info("watch stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			log.Debug("change detected", zap.Stringer("op", event.Op))
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", zap.Error(err))

		case <-fire:
			fire = nil
			run()
		}
	}
}
