// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceWindow coalesces the burst of filesystem events an editor save
// produces (write, chmod, rename) into one reload.
const debounceWindow = 250 * time.Millisecond

// Watcher reloads the config file when it changes on disk, so theme or
// sort edits made in another terminal apply to a running TUI.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
}

// NewWatcher creates a watcher for the config file at path. The parent
// directory is watched rather than the file itself: atomic saves replace
// the file, which would silently detach a file-level watch.
func NewWatcher(path string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}
	return &Watcher{watcher: fsw, path: path}, nil
}

// Watch emits a freshly loaded Config after each on-disk change until the
// context is cancelled. A change that fails to load or validate is logged
// and skipped; the previous configuration stays in effect.
func (w *Watcher) Watch(ctx context.Context) <-chan *Config {
	out := make(chan *Config, 1)

	go func() {
		defer close(out)

		var timer *time.Timer
		var pending <-chan time.Time

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(w.path) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(debounceWindow)
				} else {
					timer.Reset(debounceWindow)
				}
				pending = timer.C

			case <-pending:
				pending = nil
				cfg, err := LoadFromPath(w.path)
				if err != nil {
					log.Printf("config watcher: reload skipped: %v", err)
					continue
				}
				select {
				case out <- cfg:
				case <-ctx.Done():
					return
				}

			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				log.Printf("config watcher: %v", err)
			}
		}
	}()

	return out
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
