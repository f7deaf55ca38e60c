// Package watcher turns filesystem activity in a work tree into opaque
// "something changed" signals.
//
// The work tree is watched recursively (new directories are added as they
// appear) and the git directory is watched one level deep, which covers
// index, HEAD and the merge/rebase markers. Signals are coalesced: the
// channel holds at most one pending signal and sends never block, so a
// burst of writes costs the consumer a single refresh.
//
// Debouncing is the consumer's job (see internal/reconcile).
package watcher

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/Akashdeep-Patra/bgs/internal/log"
)

// Watcher owns the fsnotify handle and its event goroutine.
type Watcher struct {
	fs     *fsnotify.Watcher
	root   string
	gitDir string
	events chan struct{}
	done   chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
}

// Start watches root and gitDir. It fails when the platform watcher cannot
// be created or the tree exceeds the watch limit; callers fall back to
// polling.
func Start(root, gitDir string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	w := &Watcher{
		fs:     fw,
		root:   filepath.Clean(root),
		gitDir: filepath.Clean(gitDir),
		events: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	if err := w.addTree(w.root); err != nil {
		_ = fw.Close()
		return nil, err
	}
	if err := fw.Add(w.gitDir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watching %s: %w", w.gitDir, err)
	}

	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Events delivers change signals. It is closed when the watcher stops or
// the underlying handle fails.
func (w *Watcher) Events() <-chan struct{} { return w.events }

// Stop tears the watcher down and waits for its goroutine. Safe to call
// more than once.
func (w *Watcher) Stop() {
	w.once.Do(func() {
		close(w.done)
		_ = w.fs.Close()
		w.wg.Wait()
	})
}

// addTree watches dir and every directory below it, skipping git
// directories.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Vanished or unreadable directories are not fatal.
			if path == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if w.skipDir(path) {
			return filepath.SkipDir
		}
		if err := w.fs.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) skipDir(path string) bool {
	return path == w.gitDir || (path != w.root && filepath.Base(path) == ".git")
}

func (w *Watcher) run() {
	defer w.wg.Done()
	defer close(w.events)

	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if w.shouldIgnore(ev) {
				continue
			}
			if ev.Has(fsnotify.Create) && w.isTreeDir(ev.Name) {
				if err := w.addTree(ev.Name); err != nil {
					log.Warn("watching new directory", "path", ev.Name, "err", err)
				}
			}
			w.signal()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Warn("file watcher error", "err", err)
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				w.signal()
			}
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) signal() {
	select {
	case w.events <- struct{}{}:
	default:
	}
}

func (w *Watcher) isTreeDir(path string) bool {
	if w.inGitDir(path) {
		return false
	}
	info, err := os.Lstat(path)
	return err == nil && info.IsDir()
}

func (w *Watcher) inGitDir(path string) bool {
	return path == w.gitDir || strings.HasPrefix(path, w.gitDir+string(filepath.Separator))
}

// shouldIgnore filters events that never change what bgs shows.
func (w *Watcher) shouldIgnore(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return true
	}
	if w.inGitDir(ev.Name) {
		return ignoreGitFile(filepath.Base(ev.Name))
	}
	return ignoreName(filepath.Base(ev.Name))
}

// ignoreName matches lock, swap and editor temp files.
func ignoreName(base string) bool {
	return strings.HasSuffix(base, ".lock") ||
		strings.HasSuffix(base, ".swp") || strings.HasSuffix(base, ".swo") ||
		strings.HasSuffix(base, "~") || strings.HasPrefix(base, ".#") ||
		base == "4913" // vim's write probe
}

// ignoreGitFile matches git directory churn that does not affect status.
func ignoreGitFile(base string) bool {
	if ignoreName(base) {
		return true
	}
	switch base {
	case "COMMIT_EDITMSG", "gc.log", "FETCH_HEAD", "objects", "logs":
		return true
	}
	return strings.HasPrefix(base, "fsmonitor")
}
