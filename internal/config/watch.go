package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce coalesces the burst of events editors produce on save.
const reloadDebounce = 150 * time.Millisecond

// Reload is delivered to subscribers after the config file changed.
// Exactly one of Config and Err is set.
type Reload struct {
	Config *UserConfig
	Err    error
}

// Watcher reloads a config file when it changes on disk and fans the result
// out to every subscriber. One Watcher serves every desktop in the process.
type Watcher struct {
	path     string
	fsw      *fsnotify.Watcher
	load     func(string) (*UserConfig, error)
	done     chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex
	subs     map[int]chan Reload
	nextID   int
	closeErr error
	closed   bool
}

// Watch starts watching path. The directory is watched rather than the file
// so that editors which replace the file on save are still seen.
func Watch(path string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	w := &Watcher{
		path: filepath.Clean(path),
		fsw:  fsw,
		load: LoadFile,
		done: make(chan struct{}),
		subs: make(map[int]chan Reload),
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Subscribe returns a channel that receives every reload, and a function
// that ends the subscription. A slow subscriber only ever sees the latest
// reload.
func (w *Watcher) Subscribe() (<-chan Reload, func()) {
	w.mu.Lock()
	defer w.mu.Unlock()

	ch := make(chan Reload, 1)
	if w.closed {
		close(ch)
		return ch, func() {}
	}
	id := w.nextID
	w.nextID++
	w.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			w.mu.Lock()
			defer w.mu.Unlock()
			if c, ok := w.subs[id]; ok {
				delete(w.subs, id)
				close(c)
			}
		})
	}
}

// Subscribers returns the number of open subscriptions.
func (w *Watcher) Subscribers() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.subs)
}

func (w *Watcher) run() {
	defer w.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(reloadDebounce)
			} else {
				timer.Reset(reloadDebounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			cfg, err := w.load(w.path)
			w.broadcast(Reload{Config: cfg, Err: err})

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.broadcast(Reload{Err: fmt.Errorf("config watcher: %w", err)})
		}
	}
}

func (w *Watcher) broadcast(r Reload) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, ch := range w.subs {
		select {
		case <-ch:
		default:
		}
		ch <- r
	}
}

// Close stops the watcher and closes every subscriber channel.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return w.closeErr
	}
	w.closed = true
	w.mu.Unlock()

	close(w.done)
	err := w.fsw.Close()
	w.wg.Wait()

	w.mu.Lock()
	w.closeErr = err
	for id, ch := range w.subs {
		delete(w.subs, id)
		close(ch)
	}
	w.mu.Unlock()
	return err
}
