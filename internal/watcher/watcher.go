// Package watcher notices writes to the history database made by other
// processes, such as `datecalc open`, and publishes a debounced event.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/datecalc/internal/log"
	"github.com/zjrosen/datecalc/internal/pubsub"
)

// DefaultDebounce is the quiet period before a change is published.
const DefaultDebounce = 200 * time.Millisecond

// WatcherEvent reports that the database changed on disk.
type WatcherEvent struct {
	Path string
	At   time.Time
}

// Config holds watcher options.
type Config struct {
	DBPath   string
	Debounce time.Duration
}

// DefaultConfig returns the default options for dbPath.
func DefaultConfig(dbPath string) Config {
	return Config{DBPath: dbPath, Debounce: DefaultDebounce}
}

// Watcher watches the directory of the database file and publishes a
// WatcherEvent after writes to the file or its WAL settle.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	dbPath    string
	debounce  time.Duration
	broker    *pubsub.Broker[WatcherEvent]

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// New creates a watcher. Call Start to begin watching.
func New(cfg Config) (*Watcher, error) {
	if cfg.DBPath == "" {
		return nil, errors.New("watcher: database path is required")
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	return &Watcher{
		fsWatcher: fsw,
		dbPath:    cfg.DBPath,
		debounce:  cfg.Debounce,
		broker:    pubsub.NewBroker[WatcherEvent](),
		done:      make(chan struct{}),
	}, nil
}

// Broker returns the broker change events are published on.
func (w *Watcher) Broker() *pubsub.Broker[WatcherEvent] {
	return w.broker
}

// Start begins watching the database directory.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return errors.New("watcher: already started")
	}

	dir := filepath.Dir(w.dbPath)
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("watching directory %s: %w", dir, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.started = true
	go w.loop(ctx)

	log.Debug(log.CatWatcher, "watching database", "path", w.dbPath, "debounce", w.debounce)
	return nil
}

// Stop terminates the watcher, closes the broker and releases resources.
// It is safe to call more than once.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	cancel := w.cancel
	started := w.started
	w.cancel = nil
	w.mu.Unlock()

	if cancel == nil {
		if !started {
			w.broker.Close()
			return w.fsWatcher.Close()
		}
		return nil
	}
	cancel()
	<-w.done
	w.broker.Close()
	return w.fsWatcher.Close()
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.done)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.isRelevantEvent(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			n := w.broker.Publish(pubsub.UpdatedEvent, WatcherEvent{Path: w.dbPath, At: time.Now()})
			log.Debug(log.CatWatcher, "database changed", "subscribers", n)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatcher, "watch error", err)

		case <-ctx.Done():
			return
		}
	}
}

// isRelevantEvent reports whether event is a write or create of the
// database file or its WAL.
func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return false
	}
	base := filepath.Base(event.Name)
	db := filepath.Base(w.dbPath)
	return base == db || base == db+"-wal"
}
