// Package rulewatch reloads the classification rules file when it changes on
// disk, so a running chat picks up edited replies without a restart.
package rulewatch

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/metekarasubasi/notiva/internal/application/classify"
	"github.com/metekarasubasi/notiva/internal/ports"
)

// Watcher watches one rules file.
type Watcher struct {
	path     string
	onChange func(*classify.RuleBook)
	logger   ports.Logger

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// New creates a watcher for path. onChange receives every successfully
// parsed rule book; parse failures are logged and the old rules stay.
func New(path string, onChange func(*classify.RuleBook), logger ports.Logger) *Watcher {
	return &Watcher{path: filepath.Clean(path), onChange: onChange, logger: logger}
}

// Start begins watching. The parent directory is watched because editors
// usually replace the file instead of writing it in place.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.path)
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if !info.IsDir() {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watcher != nil {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return err
	}
	w.watcher = watcher
	w.done = make(chan struct{})

	go w.loop(watcher, w.done)
	return nil
}

// Close stops watching and waits for the event loop to exit.
func (w *Watcher) Close() error {
	w.mu.Lock()
	watcher, done := w.watcher, w.done
	w.watcher, w.done = nil, nil
	w.mu.Unlock()
	if watcher == nil {
		return nil
	}
	err := watcher.Close()
	<-done
	return err
}

func (w *Watcher) loop(watcher *fsnotify.Watcher, done chan struct{}) {
	defer close(done)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.reload()
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("rules watcher error", map[string]interface{}{"error": err.Error()})
		}
	}
}

// reload parses the file; a removed file falls back to the built-in rules.
func (w *Watcher) reload() {
	book, err := classify.LoadRuleBook(w.path)
	if err != nil {
		w.logger.Warn("rules reload failed, keeping previous rules", map[string]interface{}{
			"path":  w.path,
			"error": err.Error(),
		})
		return
	}
	w.logger.Info("rules reloaded", map[string]interface{}{"path": w.path, "rules": book.Len()})
	if w.onChange != nil {
		w.onChange(book)
	}
}
