package gitwatch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher coalesces filesystem events on git ref files into a single
// "something changed" signal. Consumers drain Events and then ask the Tracker
// what actually moved; the signal itself carries no information.
type Watcher struct {
	fsw    *fsnotify.Watcher
	Events chan struct{}
	done   chan struct{}
}

// NewWatcher watches HEAD and the refs tree of every given .git directory.
// fsnotify is not recursive, so existing refs subdirectories are registered
// individually; directories created under a watched parent later are added
// when their create event arrives.
func NewWatcher(gitDirs []string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{
		fsw:    fsw,
		Events: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}

	for _, gitDir := range gitDirs {
		if headPath := filepath.Join(gitDir, "HEAD"); exists(headPath) {
			_ = fsw.Add(headPath)
		}
		refsPath := filepath.Join(gitDir, "refs")
		if !exists(refsPath) {
			continue
		}
		_ = filepath.WalkDir(refsPath, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				_ = fsw.Add(path)
			}
			return nil
		})
	}

	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op.Has(fsnotify.Create) {
				w.watchNewDirs(ev.Name)
			}
			// Non-blocking send: one pending signal is enough.
			select {
			case w.Events <- struct{}{}:
			default:
			}
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		case <-w.done:
			return
		}
	}
}

// watchNewDirs registers path and any directories below it, so refs created
// in fresh subdirectories (refs/heads/feature/x and the like) keep signaling.
func (w *Watcher) watchNewDirs(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	_ = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			_ = w.fsw.Add(p)
		}
		return nil
	})
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
