package defs

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// eventBuffer is the size of the watch event channel.
const eventBuffer = 64

// Op indicates the kind of definition file change.
type Op string

const (
	OpCreate Op = "create"
	OpModify Op = "modify"
	OpRemove Op = "remove"
)

// Event reports a definition file change after debouncing.
type Event struct {
	Path string
	Op   Op
}

// Watcher watches definition directories and emits debounced change
// events, so a burst of writes produces one revalidation.
type Watcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	debounce time.Duration

	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op

	events chan Event
}

// NewWatcher creates a watcher that coalesces changes for the debounce
// interval before emitting them. A zero interval defaults to 500ms.
func NewWatcher(debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	return &Watcher{
		watcher:  fsw,
		logger:   logger,
		debounce: debounce,
		pending:  make(map[string]fsnotify.Op),
		events:   make(chan Event, eventBuffer),
	}, nil
}

// Add watches dir and every directory below it.
func (w *Watcher) Add(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		base := filepath.Base(path)
		if strings.HasPrefix(base, ".") && base != "." {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("failed to watch directory", "path", path, "error", err)
		}
		return nil
	})
}

// Events returns the channel of debounced change events. It is closed when
// the watcher stops.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start begins processing filesystem events until ctx is done or the
// watcher is closed.
func (w *Watcher) Start(ctx context.Context) {
	go w.processEvents(ctx)
}

// Close stops the underlying filesystem watcher. The events channel closes
// once processing drains.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watcher error", "error", err)
		case <-ticker.C:
			w.flushPending()
		}
	}
}

// handleFSEvent records a definition file change and picks up newly
// created directories.
func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	ext := strings.ToLower(filepath.Ext(event.Name))
	if ext != ".yaml" && ext != ".yml" {
		if event.Has(fsnotify.Create) {
			if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
				if err := w.watcher.Add(event.Name); err != nil {
					w.logger.Warn("failed to watch new directory",
						"path", event.Name, "error", err)
				}
			}
		}
		return
	}

	w.pendingMu.Lock()
	w.pending[event.Name] |= event.Op
	w.pendingMu.Unlock()
}

// flushPending emits one event per changed path accumulated since the last
// tick.
func (w *Watcher) flushPending() {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}
	toProcess := w.pending
	w.pending = make(map[string]fsnotify.Op)
	w.pendingMu.Unlock()

	for path, op := range toProcess {
		event := Event{Path: path, Op: OpModify}
		switch {
		case op.Has(fsnotify.Remove) || op.Has(fsnotify.Rename):
			event.Op = OpRemove
		case op.Has(fsnotify.Create):
			event.Op = OpCreate
		}
		if event.Op != OpRemove {
			if _, err := os.Stat(path); os.IsNotExist(err) {
				event.Op = OpRemove
			}
		}
		select {
		case w.events <- event:
		default:
			w.logger.Warn("event channel full, dropping event", "path", path)
		}
	}
}
