package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/moddle-labs/moddle/internal/meta"
)

// DefaultDebounce is the quiet period Watch waits for before reloading.
const DefaultDebounce = 200 * time.Millisecond

// ReloadFunc receives the result of each reload.
type ReloadFunc func(pkgs []*meta.Package, err error)

// Watcher reloads package definitions when files under its paths change.
type Watcher struct {
	paths    []string
	opts     Options
	debounce time.Duration
	w        *fsnotify.Watcher
}

// NewWatcher watches paths (files or directories). Directories are watched
// recursively as they exist at call time.
func NewWatcher(paths []string, opts Options, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	for _, dir := range watchDirs(paths) {
		if err := w.Add(dir); err != nil {
			w.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}
	return &Watcher{paths: paths, opts: opts, debounce: debounce, w: w}, nil
}

// Run calls onReload once with the initial load and again after every
// burst of relevant changes, until ctx is done.
func (wt *Watcher) Run(ctx context.Context, onReload ReloadFunc) error {
	defer wt.w.Close()

	onReload(Load(wt.paths, wt.opts))

	timer := time.NewTimer(wt.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-wt.w.Events:
			if !ok {
				return nil
			}
			if !relevant(ev) {
				continue
			}
			wt.opts.Logger.Debug().Str("file", ev.Name).Str("op", ev.Op.String()).Msg("package file changed")
			if ev.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = wt.w.Add(ev.Name)
				}
			}
			timer.Reset(wt.debounce)
		case err, ok := <-wt.w.Errors:
			if !ok {
				return nil
			}
			wt.opts.Logger.Warn().Err(err).Msg("watch error")
		case <-timer.C:
			onReload(Load(wt.paths, wt.opts))
		}
	}
}

// Close stops watching without waiting for Run.
func (wt *Watcher) Close() error {
	return wt.w.Close()
}

func relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	if isPackageFile(filepath.Base(ev.Name)) {
		return true
	}
	// New or removed directories may hold package files.
	return filepath.Ext(ev.Name) == ""
}

// watchDirs returns the directories to register: every directory under a
// directory argument, and the parent of each file argument.
func watchDirs(paths []string) []string {
	seen := make(map[string]bool)
	var dirs []string
	add := func(d string) {
		if !seen[d] {
			seen[d] = true
			dirs = append(dirs, d)
		}
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			add(filepath.Dir(p))
			continue
		}
		_ = filepath.WalkDir(p, func(path string, d os.DirEntry, err error) error {
			if err == nil && d.IsDir() {
				add(path)
			}
			return nil
		})
	}
	return dirs
}
