package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/zeebo/xxh3"
	"go.uber.org/zap"

	"github.com/Faultbox/charctl/internal/logger"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reloads a config file when its content changes. Editors often
// write a file several times or replace it by rename, so the parent
// directory is watched and bursts are collapsed into one reload.
type Watcher struct {
	path     string
	debounce time.Duration
	watcher  *fsnotify.Watcher

	Reloads chan *Config
	Errors  chan error

	mu      sync.Mutex
	hash    uint64
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher starts watching path. The current content is hashed so that
// touching the file without changing it does not trigger a reload.
func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:     abs,
		debounce: debounce,
		watcher:  fw,
		Reloads:  make(chan *Config, 1),
		Errors:   make(chan error, 1),
		closeCh:  make(chan struct{}),
		done:     make(chan struct{}),
	}
	if data, err := os.ReadFile(abs); err == nil {
		w.hash = xxh3.Hash(data)
	}

	go w.run()
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops the watcher. Reloads and Errors are closed once it returns.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	defer close(w.Reloads)
	defer close(w.Errors)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(w.debounce)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendError(err)
		case <-timer.C:
			w.reload()
		case <-w.closeCh:
			return
		}
	}
}

// reload reads the file and publishes it if the content changed and the
// result is valid.
func (w *Watcher) reload() {
	data, err := os.ReadFile(w.path)
	if err != nil {
		// Renamed away mid-save; the Create that follows retries.
		logger.Debug("config reload skipped", zap.String("path", w.path), zap.Error(err))
		return
	}

	sum := xxh3.Hash(data)
	w.mu.Lock()
	unchanged := sum == w.hash
	w.mu.Unlock()
	if unchanged {
		return
	}

	cfg := Default()
	if err := decode(cfg, data); err != nil {
		w.sendError(fmt.Errorf("reloading %s: %w", w.path, err))
		return
	}
	cfg.Path = w.path
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		w.sendError(fmt.Errorf("reloading %s: %w", w.path, err))
		return
	}

	w.mu.Lock()
	w.hash = sum
	w.mu.Unlock()

	logger.Info("config changed", zap.String("path", w.path), zap.Uint64("hash", sum))

	// Keep only the newest config if the consumer is behind.
	select {
	case <-w.Reloads:
	default:
	}
	w.Reloads <- cfg
}

func (w *Watcher) sendError(err error) {
	select {
	case w.Errors <- err:
	default:
		logger.Warn("config watcher error dropped", zap.Error(err))
	}
}
