package linker

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/fsnotify/fsnotify"
)

// Debounce window for filesystem events: editors and scanners write the
// input in bursts, and only the last write matters.
const watchDebounce = 500 * time.Millisecond

// Watch runs one pass, then reruns on every change to the input file until
// ctx is cancelled. A freshly rewritten PDF may still be mid-write when the
// event fires, so each triggered pass retries with a delay before giving up
// on that event.
func (l *Linker) Watch(ctx context.Context) error {
	if _, err := l.Run(ctx); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	input := filepath.Clean(l.config().Input)
	// Watch the directory: rewrites that replace the file would drop a
	// watch on the file itself.
	if err := watcher.Add(filepath.Dir(input)); err != nil {
		return err
	}
	l.log.Info("watching for changes", "input", input)

	debounce := time.NewTimer(watchDebounce)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != input {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			debounce.Reset(watchDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			l.log.Error("watch error", "error", err)
		case <-debounce.C:
			if err := l.rerun(ctx); err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				l.log.Error("relink failed", "error", err)
			}
		}
	}
}

// rerun retries the pass a few times: the event may have fired while the
// writer still held the file.
func (l *Linker) rerun(ctx context.Context) error {
	return retry.Do(
		func() error {
			_, err := l.Run(ctx)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(5),
		retry.Delay(time.Second),
	)
}
