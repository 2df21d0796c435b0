package check

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher re-checks documents as they change on disk.
type Watcher struct {
	watcher    *fsnotify.Watcher
	logger     *zap.Logger
	onReport   func(*Report)
	isWatching bool
}

// NewWatcher creates a watcher that calls onReport with the report of
// every re-checked document.
func NewWatcher(logger *zap.Logger, onReport func(*Report)) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("error creating watcher: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		watcher:  fsWatcher,
		logger:   logger,
		onReport: onReport,
	}, nil
}

// StartWatching registers the paths and begins the watch loop. A
// directory path is registered recursively.
func (w *Watcher) StartWatching(paths []string) error {
	if w.isWatching {
		return fmt.Errorf("already watching")
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("error accessing %s: %w", path, err)
		}

		if !info.IsDir() {
			if err := w.watcher.Add(path); err != nil {
				return fmt.Errorf("error adding file to watcher: %w", err)
			}
			continue
		}

		err = filepath.Walk(path, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return w.watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}

	w.isWatching = true
	go w.watchLoop()
	return nil
}

// StopWatching ends the watch loop and releases the underlying watcher.
func (w *Watcher) StopWatching() error {
	if !w.isWatching {
		w.logger.Warn("not watching")
	}

	w.isWatching = false
	return w.watcher.Close()
}

// watchLoop runs until StopWatching closes the underlying watcher,
// which closes both channels.
func (w *Watcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFileEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleFileEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Write == fsnotify.Write {
		if IsDocumentPath(event.Name) {
			// wait for a while after file change to consider multiple changes as one
			time.Sleep(100 * time.Millisecond)

			report, err := CheckDocument(event.Name)
			if err != nil {
				w.logger.Error("error re-checking document",
					zap.String("document", event.Name), zap.Error(err))
				return
			}
			w.onReport(report)
		}
	}
}
