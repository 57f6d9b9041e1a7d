// Package watch converts access logs as they appear in the source directory.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/hejijunhao/lsaccess/internal/pipeline"
	"github.com/hejijunhao/lsaccess/internal/source"
)

const minTick = 50 * time.Millisecond

// Converter turns one log file into a table.
type Converter interface {
	Convert(ctx context.Context, path string) (pipeline.Result, error)
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long a file must stay quiet before it is converted.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) { w.logger = l }
}

// WithResultHandler registers fn to be called after every conversion attempt.
func WithResultHandler(fn func(path string, res pipeline.Result, err error)) Option {
	return func(w *Watcher) { w.onResult = fn }
}

// Watcher converts files matching a name prefix once they are created or
// modified in a directory. Conversions run one at a time on the watch loop.
type Watcher struct {
	dir      string
	prefix   string
	conv     Converter
	debounce time.Duration
	logger   *slog.Logger
	onResult func(path string, res pipeline.Result, err error)

	fw     *fsnotify.Watcher
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a Watcher for dir. Call Start to begin watching.
func New(dir, prefix string, conv Converter, opts ...Option) *Watcher {
	w := &Watcher{
		dir:      dir,
		prefix:   prefix,
		conv:     conv,
		debounce: 2 * time.Second,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start registers the directory with the file watcher and starts the loop.
// Events are observed as soon as Start returns.
func (w *Watcher) Start(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fw.Add(w.dir); err != nil {
		fw.Close()
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	w.fw = fw

	ctx, w.cancel = context.WithCancel(ctx)
	w.done = make(chan struct{})
	go w.watchLoop(ctx)

	w.logger.Info("watching for access logs", "dir", w.dir, "prefix", w.prefix, "debounce", w.debounce)
	return nil
}

// Stop ends the loop and waits for an in-flight conversion to finish.
func (w *Watcher) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.done != nil {
		<-w.done
	}
}

// Done is closed when the loop has exited.
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

func (w *Watcher) watchLoop(ctx context.Context) {
	defer close(w.done)
	defer w.fw.Close()

	tick := w.debounce / 2
	if tick < minTick {
		tick = minTick
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	pending := make(map[string]time.Time)
	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			if !source.Matches(ev.Name, w.prefix) {
				continue
			}
			pending[ev.Name] = time.Now()

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error", "error", err)

		case now := <-ticker.C:
			for _, path := range due(pending, now, w.debounce) {
				if ctx.Err() != nil {
					return
				}
				w.convert(ctx, path)
			}
		}
	}
}

// due removes and returns, sorted, the pending paths that have been quiet
// for at least d.
func due(pending map[string]time.Time, now time.Time, d time.Duration) []string {
	var ready []string
	for path, last := range pending {
		if now.Sub(last) >= d {
			ready = append(ready, path)
			delete(pending, path)
		}
	}
	sort.Strings(ready)
	return ready
}

func (w *Watcher) convert(ctx context.Context, path string) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return
	}

	res, err := w.conv.Convert(ctx, path)
	if err != nil {
		w.logger.Error("conversion failed", "file", path, "error", err)
	}
	if w.onResult != nil {
		w.onResult(path, res, err)
	}
}
