// Package watch reports changes to the directory the browser is showing.
package watch

import (
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce collapses bursts of events (editors writing temp files,
// git checkouts) into one refresh
const DefaultDebounce = 150 * time.Millisecond

// Change is sent once per quiet period after the watched directory changed
type Change struct {
	Dir       string
	Timestamp time.Time
}

// Watcher follows a single directory at a time using fsnotify
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	debounce  time.Duration

	changes  chan Change
	stopChan chan struct{}
	done     chan struct{}

	mutex   sync.Mutex
	dir     string
	running bool
	closed  bool
}

// New creates a watcher that waits debounce after the last event before
// reporting a change
func New(debounce time.Duration) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		fsWatcher: fsWatcher,
		debounce:  debounce,
		changes:   make(chan Change, 1),
		stopChan:  make(chan struct{}),
		done:      make(chan struct{}),
	}, nil
}

// Changes delivers debounced change notifications. It is closed by Stop.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Dir returns the directory currently watched
func (w *Watcher) Dir() string {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.dir
}

// Switch stops watching the previous directory and starts watching dir
func (w *Watcher) Switch(dir string) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if dir == w.dir {
		return nil
	}
	if w.dir != "" {
		if err := w.fsWatcher.Remove(w.dir); err != nil {
			logrus.WithFields(logrus.Fields{"directory": w.dir, "error": err}).Debug("Failed to remove watch")
		}
	}
	w.dir = ""

	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}
	w.dir = dir
	logrus.WithField("directory", dir).Debug("Watching directory")
	return nil
}

// Start begins the event loop
func (w *Watcher) Start() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.running {
		return fmt.Errorf("watcher already running")
	}
	if w.closed {
		return fmt.Errorf("watcher stopped")
	}
	w.running = true

	go w.loop()
	return nil
}

func (w *Watcher) loop() {
	defer close(w.done)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			// chmod alone does not change the listing
			if event.Op == fsnotify.Chmod {
				continue
			}
			logrus.WithFields(logrus.Fields{"file": event.Name, "op": event.Op.String()}).Trace("Directory event")
			if pending && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(w.debounce)
			pending = true

		case <-timer.C:
			pending = false
			change := Change{Dir: w.Dir(), Timestamp: time.Now()}
			select {
			case w.changes <- change:
			default:
				// a change is already queued; the reader will refresh anyway
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			logrus.WithError(err).Error("fsnotify watcher error")

		case <-w.stopChan:
			timer.Stop()
			return
		}
	}
}

// Stop halts the watcher and closes the Changes channel
func (w *Watcher) Stop() {
	w.mutex.Lock()
	if w.closed {
		w.mutex.Unlock()
		return
	}
	w.closed = true
	if !w.running {
		w.mutex.Unlock()
		if err := w.fsWatcher.Close(); err != nil {
			logrus.WithError(err).Error("Error closing fsnotify watcher")
		}
		close(w.changes)
		return
	}
	w.running = false
	w.mutex.Unlock()

	// the loop takes the mutex in Dir, so wait for it unlocked
	close(w.stopChan)
	<-w.done

	if err := w.fsWatcher.Close(); err != nil {
		logrus.WithError(err).Error("Error closing fsnotify watcher")
	}
	close(w.changes)
}
