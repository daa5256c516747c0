// Package watch re-runs a build when any of its input files change.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/sitesmith/internal/logfields"
)

// DefaultDebounce is how long the loop waits after the last event before rebuilding.
const DefaultDebounce = 500 * time.Millisecond

// RebuildFunc runs one build. Errors are logged and the loop keeps going.
type RebuildFunc func(ctx context.Context) error

// Watcher monitors input files and directories and triggers rebuilds.
type Watcher struct {
	roots    []string // absolute input paths; files or directories, possibly not yet created
	debounce time.Duration
	rebuild  RebuildFunc
}

// New returns a watcher over paths (files or directories). Empty paths are
// ignored. Paths need not exist yet.
func New(paths []string, debounce time.Duration, rebuild RebuildFunc) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w := &Watcher{debounce: debounce, rebuild: rebuild}
	seen := map[string]struct{}{}
	for _, p := range paths {
		if strings.TrimSpace(p) == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolve watch path %s: %w", p, err)
		}
		if _, ok := seen[abs]; ok {
			continue
		}
		seen[abs] = struct{}{}
		w.roots = append(w.roots, abs)
	}
	return w, nil
}

// Run watches until ctx is canceled. Builds run in the calling goroutine, so
// they never overlap; events arriving during a build schedule one more build.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() {
		if cerr := fw.Close(); cerr != nil {
			slog.Warn("Error closing file watcher", logfields.Error(cerr))
		}
	}()

	tr := &tracker{fw: fw, watched: map[string]struct{}{}}
	tr.sync(w.roots)
	if len(tr.watched) == 0 && len(w.roots) > 0 {
		return fmt.Errorf("failed to watch any of %s", strings.Join(w.roots, ", "))
	}
	slog.Info("Watching for changes", logfields.Count(len(tr.watched)))

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Op == fsnotify.Chmod {
				continue
			}
			name := filepath.Clean(ev.Name)
			changed := w.relevant(ev)
			if ev.Has(fsnotify.Create) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				if (changed || w.leadsToRoot(name)) && tr.sync(w.roots) {
					changed = true
				}
			}
			if !changed {
				continue
			}
			slog.Debug("Input changed", logfields.Path(name), slog.String("op", ev.Op.String()))
			timer.Reset(w.debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("File watcher error", logfields.Error(err))
		case <-timer.C:
			slog.Info("Change detected, rebuilding")
			if err := w.rebuild(ctx); err != nil {
				slog.Error("Rebuild failed", logfields.Error(err))
			}
			tr.sync(w.roots)
		}
	}
}

// relevant reports whether ev touches a root or anything below one.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	name := filepath.Clean(ev.Name)
	for _, r := range w.roots {
		if name == r || strings.HasPrefix(name, r+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// leadsToRoot reports whether name is an ancestor directory of a root.
func (w *Watcher) leadsToRoot(name string) bool {
	for _, r := range w.roots {
		if strings.HasPrefix(r, name+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// tracker keeps fsnotify registrations in step with the roots on disk.
type tracker struct {
	fw      *fsnotify.Watcher
	watched map[string]struct{}
}

// sync drops directories that disappeared, then watches every directory
// under a directory root plus the nearest existing ancestor of each root.
// It reports whether a directory at or below a root was newly watched.
func (t *tracker) sync(roots []string) bool {
	for dir := range t.watched {
		if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
			_ = t.fw.Remove(dir)
			delete(t.watched, dir)
		}
	}
	grew := false
	for _, root := range roots {
		t.add(existingAncestor(filepath.Dir(root)))
		if fi, err := os.Stat(root); err != nil || !fi.IsDir() {
			continue
		}
		_ = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err == nil && d.IsDir() && t.add(p) {
				grew = true
			}
			return nil
		})
	}
	return grew
}

func (t *tracker) add(dir string) bool {
	if _, ok := t.watched[dir]; ok {
		return false
	}
	if err := t.fw.Add(dir); err != nil {
		slog.Warn("Cannot watch directory", logfields.Path(dir), logfields.Error(err))
		return false
	}
	t.watched[dir] = struct{}{}
	return true
}

func existingAncestor(dir string) string {
	for {
		if fi, err := os.Stat(dir); err == nil && fi.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
