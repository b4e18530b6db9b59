package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDelay coalesces bursts of writes into a single Event.
const DefaultWatchDelay = 100 * time.Millisecond

// Event is emitted by File.Watch when the watched file may have changed.
type Event struct {
	Path string
	// Err is set when the watcher reported an error; callers should still
	// treat the event as a reason to refresh.
	Err error
}

// Watch streams change events for the file until ctx is cancelled. The
// parent directory is watched so atomic replaces (write temp, rename) are
// seen. The returned channel is closed when ctx is done or the watcher
// fails.
func (f *File) Watch(ctx context.Context) (<-chan Event, error) {
	return f.watch(ctx, DefaultWatchDelay)
}

func (f *File) watch(ctx context.Context, delay time.Duration) (<-chan Event, error) {
	if f.Path == "" {
		return nil, errors.New("source: watch: empty path")
	}
	dir := filepath.Dir(f.Path)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("source: watch: %s is not a directory", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("source: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			_ = watcher.Close()
		})
	}
	if err := watcher.Add(dir); err != nil {
		closeWatcher()
		return nil, fmt.Errorf("source: watch %s: %w", dir, err)
	}

	events := make(chan Event, 16)
	target := filepath.Clean(f.Path)

	go func() {
		defer close(events)
		defer closeWatcher()

		var sendMu sync.Mutex
		done := false
		send := func(ev Event) {
			sendMu.Lock()
			defer sendMu.Unlock()
			if done {
				return
			}
			select {
			case events <- ev:
			default:
				// A pending event already asks the consumer to refresh.
			}
		}
		throttle := newEventThrottle(delay)
		defer func() {
			throttle.Stop()
			sendMu.Lock()
			done = true
			sendMu.Unlock()
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				throttle.Enqueue(Event{Path: target, Err: err}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != target {
					continue
				}
				if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
					continue
				}
				throttle.Enqueue(Event{Path: target}, send)
			}
		}
	}()

	return events, nil
}

// eventThrottle coalesces a burst of change notifications into one event.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending *Event
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{delay: delay}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pending == nil || ev.Err != nil {
		t.pending = &ev
	}
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = nil
	t.timer = nil
	t.mu.Unlock()

	if pending != nil {
		send(*pending)
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
