package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeFunc is called once per quiet period with the paths that changed,
// sorted and without duplicates.
type ChangeFunc func(ctx context.Context, changed []string) error

// Config contains configuration for the watcher.
type Config struct {
	// Paths are the files or directories to watch.
	Paths []string

	// Debounce is the quiet period after the last event before OnChange runs
	// (default: 100ms).
	Debounce time.Duration

	// Extensions filters files inside watched directories (e.g., ".tags").
	// Files named directly in Paths are always watched.
	Extensions []string

	// SkipHidden ignores dot files and directories inside watched directories.
	SkipHidden bool
}

// Watcher watches expression and configuration files and calls back after
// each burst of changes.
//
// Files are watched through their parent directory so that editors which
// save by renaming a temporary file keep triggering events.
type Watcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	config   Config
	debounce *Debouncer

	files map[string]bool // Files named directly in Paths
	dirs  map[string]bool // Directories named in Paths, and their subdirectories

	mu      sync.Mutex
	running bool
	pending map[string]struct{}
	ready   chan struct{}
}

// New creates a watcher. It does not start watching until Watch is called.
func New(cfg Config, logger *slog.Logger) (*Watcher, error) {
	if len(cfg.Paths) == 0 {
		return nil, fmt.Errorf("no paths to watch")
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = 100 * time.Millisecond
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
		logger:   logger,
		config:   cfg,
		debounce: NewDebouncer(cfg.Debounce),
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
		pending:  make(map[string]struct{}),
		ready:    make(chan struct{}),
	}, nil
}

// Ready is closed once every path has been registered with the OS watcher.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Watch blocks, delivering batches of changes to onChange until ctx is
// cancelled. Errors returned by onChange are logged and watching continues.
func (w *Watcher) Watch(ctx context.Context, onChange ChangeFunc) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.debounce.Stop()
		_ = w.watcher.Close()
	}()

	for _, p := range w.config.Paths {
		if err := w.addPath(p); err != nil {
			return fmt.Errorf("failed to watch %q: %w", p, err)
		}
	}
	close(w.ready)

	w.logger.Info("file watcher started",
		"paths", w.config.Paths,
		"debounce_ms", w.config.Debounce.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("file watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if event.Has(fsnotify.Create) && w.isWatchedDir(filepath.Dir(event.Name)) {
				w.addNewDirectory(event.Name)
			}

			if !w.shouldProcessEvent(event) {
				continue
			}

			w.logger.Debug("file event detected",
				"path", event.Name,
				"op", event.Op.String(),
			)

			w.mu.Lock()
			w.pending[filepath.Clean(event.Name)] = struct{}{}
			w.mu.Unlock()

			w.debounce.Trigger(func() {
				changed := w.drain()
				if len(changed) == 0 {
					return
				}
				if err := onChange(ctx, changed); err != nil {
					w.logger.Error("reload failed", "error", err)
				}
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("file watcher error", "error", err)
		}
	}
}

// drain returns and clears the paths collected since the last callback.
func (w *Watcher) drain() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	changed := make([]string, 0, len(w.pending))
	for p := range w.pending {
		changed = append(changed, p)
	}
	w.pending = make(map[string]struct{})
	sort.Strings(changed)
	return changed
}

func (w *Watcher) addPath(path string) error {
	path = filepath.Clean(path)
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	if info.IsDir() {
		return w.addDirectory(path)
	}

	w.files[path] = true
	return w.watcher.Add(filepath.Dir(path))
}

// addDirectory watches dir and all its subdirectories.
func (w *Watcher) addDirectory(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && w.config.SkipHidden && isHidden(path) {
			return filepath.SkipDir
		}

		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory %q: %w", path, err)
		}
		w.mu.Lock()
		w.dirs[path] = true
		w.mu.Unlock()
		w.logger.Debug("watching directory", "path", path)
		return nil
	})
}

// addNewDirectory picks up directories created inside a watched tree.
func (w *Watcher) addNewDirectory(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if w.config.SkipHidden && isHidden(path) {
		return
	}
	if err := w.addDirectory(path); err != nil {
		w.logger.Warn("failed to watch new directory", "path", path, "error", err)
	}
}

func (w *Watcher) isWatchedDir(dir string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dirs[filepath.Clean(dir)]
}

// shouldProcessEvent reports whether an event concerns a watched file.
func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}

	name := filepath.Clean(event.Name)
	if w.files[name] {
		return true
	}
	if !w.isWatchedDir(filepath.Dir(name)) {
		return false
	}
	if w.config.SkipHidden && isHidden(name) {
		return false
	}
	return w.hasValidExtension(strings.ToLower(filepath.Ext(name)))
}

func (w *Watcher) hasValidExtension(ext string) bool {
	for _, valid := range w.config.Extensions {
		if ext == strings.ToLower(valid) {
			return true
		}
	}
	return false
}

func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
