package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounceInterval is the quiet period before changes are reported.
const DefaultDebounceInterval = 100 * time.Millisecond

// Config contains configuration for the watcher.
type Config struct {
	// Paths are files or directories to watch. Files are watched through
	// their parent directory so editors that replace files on save are seen.
	Paths []string

	// DebounceInterval is the time to wait after the last event before
	// reporting changes (default: 100ms)
	DebounceInterval time.Duration

	// Match selects files inside watched directories (default: IsAgentsFile).
	Match func(path string) bool

	// SkipHidden skips hidden directories while walking, except .well-known.
	SkipHidden bool
}

// IsAgentsFile reports whether path names an AGENTS.md file, ignoring case.
func IsAgentsFile(path string) bool {
	return strings.EqualFold(filepath.Base(path), "AGENTS.md")
}

// Watcher reports changes to AGENTS.md files.
type Watcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	config   Config
	debounce *Debouncer

	files map[string]bool // explicitly watched files, absolute
	dirs  map[string]bool // recursively watched directories, absolute

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
	readyCh chan struct{}
}

// New creates a watcher for cfg.Paths.
func New(cfg Config, logger *slog.Logger) (*Watcher, error) {
	if len(cfg.Paths) == 0 {
		return nil, errors.New("no paths to watch")
	}
	if cfg.DebounceInterval <= 0 {
		cfg.DebounceInterval = DefaultDebounceInterval
	}
	if cfg.Match == nil {
		cfg.Match = IsAgentsFile
	}
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		watcher:  fsw,
		logger:   logger.With("component", "watch"),
		config:   cfg,
		debounce: NewDebouncer(cfg.DebounceInterval),
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
		readyCh:  make(chan struct{}),
	}, nil
}

// Watch blocks until ctx is cancelled or Stop is called, invoking onChange
// with the sorted set of changed files after each quiet period. Errors from
// onChange are logged and watching continues.
func (w *Watcher) Watch(ctx context.Context, onChange func(changed []string) error) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return errors.New("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		close(w.doneCh)
	}()

	for _, path := range w.config.Paths {
		if err := w.addPath(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
	}

	close(w.readyCh)

	w.logger.Info("watching for changes",
		"paths", w.config.Paths,
		"debounce_ms", w.config.DebounceInterval.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-w.stopCh:
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}

			w.trackNewDirectory(event)
			if !w.shouldProcessEvent(event) {
				continue
			}

			w.logger.Debug("file event", "path", event.Name, "op", event.Op.String())

			w.debounce.Add(filepath.Clean(event.Name), func(changed []string) {
				if err := onChange(changed); err != nil {
					w.logger.Error("change handler failed", "error", err)
				}
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			w.logger.Error("file watcher error", "error", err)
		}
	}
}

// Ready is closed once every path is being watched.
func (w *Watcher) Ready() <-chan struct{} {
	return w.readyCh
}

// Stop stops the watcher and cancels pending notifications.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	running := w.running
	w.mu.Unlock()

	if running {
		close(w.stopCh)
		<-w.doneCh
	}

	w.debounce.Stop()

	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}
	return nil
}

func (w *Watcher) addPath(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	info, err := os.Stat(abs)
	if err != nil {
		return err
	}

	if info.IsDir() {
		return w.addDirectory(abs)
	}

	w.files[abs] = true
	return w.watcher.Add(filepath.Dir(abs))
}

// addDirectory adds dir and its subdirectories.
func (w *Watcher) addDirectory(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && w.skipDir(path) {
			return filepath.SkipDir
		}

		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory %q: %w", path, err)
		}
		w.dirs[path] = true
		w.logger.Debug("watching directory", "path", path)
		return nil
	})
}

func (w *Watcher) skipDir(path string) bool {
	base := filepath.Base(path)
	return w.config.SkipHidden && strings.HasPrefix(base, ".") && base != ".well-known"
}

// trackNewDirectory starts watching directories created under a watched tree.
func (w *Watcher) trackNewDirectory(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) || !w.underWatchedDir(event.Name) {
		return
	}
	info, err := os.Stat(event.Name)
	if err != nil || !info.IsDir() {
		return
	}
	if err := w.addDirectory(filepath.Clean(event.Name)); err != nil {
		w.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
	}
}

// shouldProcessEvent determines if an event names a watched file.
func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}

	name := filepath.Clean(event.Name)
	if w.files[name] {
		return true
	}
	return w.underWatchedDir(name) && w.config.Match(name)
}

func (w *Watcher) underWatchedDir(path string) bool {
	return w.dirs[filepath.Dir(filepath.Clean(path))]
}
