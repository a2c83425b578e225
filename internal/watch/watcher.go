package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"mdtree/internal/logging"
)

// DefaultDebounce is the quiet period used when Options.Debounce is zero.
const DefaultDebounce = 300 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	Dir      string
	Ext      string
	Debounce time.Duration
	Logger   *slog.Logger
}

// Watcher watches one directory for document writes.
type Watcher struct {
	dir      string
	ext      string
	debounce time.Duration
	logger   *slog.Logger
	fw       *fsnotify.Watcher
}

// New starts watching opts.Dir. Call Run to receive changes.
func New(opts Options) (*Watcher, error) {
	dir, err := filepath.Abs(opts.Dir)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	ext := opts.Ext
	if ext == "" {
		ext = ".md"
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		dir:      dir,
		ext:      ext,
		debounce: debounce,
		logger:   logging.NewComponentLogger(opts.Logger, "watch"),
		fw:       fw,
	}, nil
}

// Run delivers each changed document path to onChange once its events have
// been quiet for the debounce period. Callbacks for different documents may
// run concurrently; callbacks for the same document never overlap. Run blocks
// until ctx is done and then closes the watcher.
func (w *Watcher) Run(ctx context.Context, onChange func(path string)) error {
	defer w.fw.Close()

	var (
		mu      sync.Mutex
		timers  = make(map[string]*time.Timer)
		running = make(map[string]*sync.Mutex)
		wg      sync.WaitGroup
	)
	fire := func(path string) {
		defer wg.Done()
		mu.Lock()
		delete(timers, path)
		lock, ok := running[path]
		if !ok {
			lock = &sync.Mutex{}
			running[path] = lock
		}
		mu.Unlock()

		lock.Lock()
		defer lock.Unlock()
		if ctx.Err() != nil {
			return
		}
		onChange(path)
	}

	for {
		select {
		case <-ctx.Done():
			mu.Lock()
			for path, t := range timers {
				if t.Stop() {
					wg.Done()
				}
				delete(timers, path)
			}
			mu.Unlock()
			wg.Wait()
			return nil
		case event, ok := <-w.fw.Events:
			if !ok {
				wg.Wait()
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			path := event.Name
			mu.Lock()
			if t, ok := timers[path]; ok && t.Stop() {
				t.Reset(w.debounce)
			} else {
				wg.Add(1)
				timers[path] = time.AfterFunc(w.debounce, func() { fire(path) })
			}
			mu.Unlock()
		case err, ok := <-w.fw.Errors:
			if !ok {
				wg.Wait()
				return nil
			}
			w.logger.Warn("watch error", logging.Error(err))
		}
	}
}

// Close stops the watcher without waiting for Run.
func (w *Watcher) Close() error {
	return w.fw.Close()
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	if filepath.Dir(event.Name) != w.dir {
		return false
	}
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	return strings.EqualFold(filepath.Ext(base), w.ext)
}
