// Copyright 2026 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package watch calls a function whenever a file changes.
package watch

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDelay is the debounce delay used when a Watcher has none.
const DefaultDelay = 100 * time.Millisecond

// A Watcher monitors one file and calls OnChange, debounced, after the
// file is written or created. The file's directory is watched rather
// than the file itself, so editors that replace the file on save are
// handled.
type Watcher struct {
	Path     string
	Delay    time.Duration
	OnChange func()
	Logger   *zerolog.Logger

	mu       sync.Mutex
	debounce *time.Timer
}

// New returns a Watcher for path.
func New(path string, onChange func()) *Watcher {
	return &Watcher{Path: path, Delay: DefaultDelay, OnChange: onChange}
}

// Run watches the file until ctx is done. It returns an error only if
// the watch cannot be established.
func (w *Watcher) Run(ctx context.Context) error {
	if w.OnChange == nil {
		return errors.New("ajax/watch: nil OnChange")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dir, name := filepath.Split(filepath.Clean(w.Path))
	if dir == "" {
		dir = "."
	}
	if err := watcher.Add(dir); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			w.stop()
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.trigger()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger().Warn().Err(err).Str("path", w.Path).Msg("watch error")
		}
	}
}

func (w *Watcher) trigger() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}

	delay := w.Delay
	if delay <= 0 {
		delay = DefaultDelay
	}
	w.debounce = time.AfterFunc(delay, w.OnChange)
}

func (w *Watcher) stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
		w.debounce = nil
	}
}

func (w *Watcher) logger() *zerolog.Logger {
	if w.Logger != nil {
		return w.Logger
	}
	nop := zerolog.Nop()
	return &nop
}
