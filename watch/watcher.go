// Package watch re-triggers conversion when model input files change.
package watch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	// eventChannelBuffer is the size of the watch event channel.
	eventChannelBuffer = 64

	defaultDebounce = 500 * time.Millisecond
)

// Config configures model file watching.
type Config struct {
	// Enabled controls whether file watching is active.
	Enabled bool `yaml:"enabled"`

	// DebounceDelay is how long to wait for more changes before emitting.
	DebounceDelay string `yaml:"debounce_delay"`
}

// DefaultConfig returns default watch configuration.
func DefaultConfig() Config {
	return Config{
		Enabled:       false,
		DebounceDelay: "500ms",
	}
}

// GetDebounceDelay returns the debounce delay as a duration.
func (c Config) GetDebounceDelay() time.Duration {
	if c.DebounceDelay == "" {
		return defaultDebounce
	}
	d, err := time.ParseDuration(c.DebounceDelay)
	if err != nil || d <= 0 {
		return defaultDebounce
	}
	return d
}

// Operation indicates the type of file change.
type Operation string

// OpCreate, OpModify and OpDelete enumerate the file change types.
const (
	OpCreate Operation = "create"
	OpModify Operation = "modify"
	OpDelete Operation = "delete"
)

// Event reports a change to one watched file.
type Event struct {
	// Path is the absolute file path.
	Path string

	// Operation is the type of change.
	Operation Operation
}

// ModelWatcher watches a fixed set of files and emits debounced events when
// their content changes. Parent directories are watched so that editors
// replacing a file through rename are still seen.
type ModelWatcher struct {
	config  Config
	watcher *fsnotify.Watcher
	logger  *slog.Logger
	files   map[string]bool
	dirs    map[string]bool

	// Debouncing: collect changes before emitting
	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op

	// Content hashes of the last emitted state
	hashMu sync.Mutex
	hashes map[string]string

	events        chan Event
	droppedEvents atomic.Int64
}

// New creates a watcher for paths.
func New(config Config, paths []string, logger *slog.Logger) (*ModelWatcher, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("watch: no paths to watch")
	}
	if logger == nil {
		logger = slog.Default()
	}

	files := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", p, err)
		}
		files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &ModelWatcher{
		config:  config,
		watcher: fsw,
		logger:  logger,
		files:   files,
		dirs:    dirs,
		pending: make(map[string]fsnotify.Op),
		hashes:  make(map[string]string),
		events:  make(chan Event, eventChannelBuffer),
	}, nil
}

// Events returns the channel of watch events. It is closed when the watcher
// stops.
func (w *ModelWatcher) Events() <-chan Event {
	return w.events
}

// Start records the current content of every watched file and begins
// watching. Events stop when ctx is done or Stop is called.
func (w *ModelWatcher) Start(ctx context.Context) error {
	for path := range w.files {
		if content, err := os.ReadFile(path); err == nil {
			w.setHash(path, contentHash(content))
		}
	}

	for dir := range w.dirs {
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		w.logger.Debug("Watching directory", "path", dir)
	}

	go w.processEvents(ctx)

	w.logger.Info("Model watcher started",
		"files", len(w.files),
		"debounce", w.config.GetDebounceDelay())
	return nil
}

// Stop stops the watcher.
// The events channel is closed by processEvents when it exits.
func (w *ModelWatcher) Stop() error {
	return w.watcher.Close()
}

// DroppedEvents returns the number of events dropped due to channel overflow.
func (w *ModelWatcher) DroppedEvents() int64 {
	return w.droppedEvents.Load()
}

// processEvents handles fsnotify events with debouncing.
func (w *ModelWatcher) processEvents(ctx context.Context) {
	defer close(w.events)
	ticker := time.NewTicker(w.config.GetDebounceDelay())
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
			w.logger.Error("Watcher error", "error", err)

		case <-ticker.C:
			w.flushPending(ctx)
		}
	}
}

func (w *ModelWatcher) handleFSEvent(event fsnotify.Event) {
	path := filepath.Clean(event.Name)
	if !w.files[path] {
		return
	}

	w.pendingMu.Lock()
	w.pending[path] |= event.Op
	w.pendingMu.Unlock()

	w.logger.Debug("Model change detected", "path", path, "op", event.Op.String())
}

// flushPending turns accumulated changes into events. Writes that leave the
// content unchanged are dropped.
func (w *ModelWatcher) flushPending(ctx context.Context) {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}
	toProcess := w.pending
	w.pending = make(map[string]fsnotify.Op)
	w.pendingMu.Unlock()

	for path := range toProcess {
		if ctx.Err() != nil {
			return
		}

		content, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			if w.clearHash(path) {
				w.sendEvent(Event{Path: path, Operation: OpDelete})
			}
			continue
		}
		if err != nil {
			w.logger.Warn("Failed to read changed model", "path", path, "error", err)
			continue
		}

		newHash := contentHash(content)
		oldHash, hadHash := w.getHash(path)
		if hadHash && oldHash == newHash {
			continue
		}
		w.setHash(path, newHash)

		op := OpModify
		if !hadHash {
			op = OpCreate
		}
		w.sendEvent(Event{Path: path, Operation: op})
	}
}

func (w *ModelWatcher) sendEvent(event Event) {
	select {
	case w.events <- event:
		w.logger.Debug("Sent watch event", "path", event.Path, "op", event.Operation)
	default:
		dropped := w.droppedEvents.Add(1)
		w.logger.Warn("Event channel full, dropping event",
			"path", event.Path,
			"total_dropped", dropped)
	}
}

func (w *ModelWatcher) getHash(path string) (string, bool) {
	w.hashMu.Lock()
	defer w.hashMu.Unlock()
	h, ok := w.hashes[path]
	return h, ok
}

func (w *ModelWatcher) setHash(path, hash string) {
	w.hashMu.Lock()
	defer w.hashMu.Unlock()
	w.hashes[path] = hash
}

// clearHash forgets path and reports whether it was known.
func (w *ModelWatcher) clearHash(path string) bool {
	w.hashMu.Lock()
	defer w.hashMu.Unlock()
	_, ok := w.hashes[path]
	delete(w.hashes, path)
	return ok
}

func contentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
