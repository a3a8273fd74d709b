package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	apperrors "resumelens/internal/errors"
)

// Provider serves the current catalog snapshot and, when configured
// with a file path, reloads it on change. Current is lock-free, so
// request handlers can call it on every analysis.
type Provider struct {
	mu sync.Mutex

	path        string
	current     atomic.Pointer[Catalog]
	lastModTime time.Time

	fsWatcher     *fsnotify.Watcher
	debounceDelay time.Duration
	debounceTimer *time.Timer

	stopChan   chan struct{}
	reloadChan chan struct{}

	logger   *apperrors.Logger
	running  bool
	onReload func(success bool)
}

// NewProvider loads the initial catalog. An empty path means the
// embedded default, which cannot be watched.
func NewProvider(path string, logger *apperrors.Logger) (*Provider, error) {
	p := &Provider{
		path:          path,
		debounceDelay: time.Second,
		stopChan:      make(chan struct{}),
		reloadChan:    make(chan struct{}, 1),
		logger:        logger,
	}

	var (
		c   *Catalog
		err error
	)
	if path == "" {
		c, err = LoadDefault()
	} else {
		c, err = LoadFile(path)
	}
	if err != nil {
		return nil, err
	}
	p.current.Store(c)
	return p, nil
}

// Current returns the active catalog snapshot.
func (p *Provider) Current() *Catalog {
	return p.current.Load()
}

// Watch starts reloading the catalog file on change. A catalog that
// fails to parse is logged and discarded; the previous snapshot stays
// active.
func (p *Provider) Watch() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.path == "" {
		return fmt.Errorf("embedded catalog cannot be watched")
	}
	if p.running {
		return fmt.Errorf("catalog watcher is already running")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	p.fsWatcher = watcher

	if stat, err := os.Stat(p.path); err == nil {
		p.lastModTime = stat.ModTime()
	}

	// Watch the directory too, to catch atomic writes via rename.
	if err := watcher.Add(p.path); err != nil && !os.IsNotExist(err) {
		p.cleanupWatcher()
		return fmt.Errorf("failed to watch file %s: %w", p.path, err)
	}
	if err := watcher.Add(filepath.Dir(p.path)); err != nil {
		p.logger.Warn("Failed to watch catalog directory",
			"directory", filepath.Dir(p.path), "error", err)
	}

	p.running = true
	go p.watchLoop()

	p.logger.Info("Catalog file watcher started",
		"file", p.path, "debounce_delay", p.debounceDelay)
	return nil
}

// Stop shuts the watcher down. Safe to call when Watch never ran.
func (p *Provider) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return nil
	}

	close(p.stopChan)
	if p.debounceTimer != nil {
		p.debounceTimer.Stop()
	}
	if err := p.fsWatcher.Close(); err != nil {
		p.logger.LogError(err, "Failed to close catalog file watcher")
		return err
	}

	p.running = false
	p.logger.Info("Catalog file watcher stopped")
	return nil
}

func (p *Provider) cleanupWatcher() {
	if p.fsWatcher != nil {
		if err := p.fsWatcher.Close(); err != nil {
			p.logger.LogError(err, "Failed to close file watcher during cleanup")
		}
	}
}

func (p *Provider) watchLoop() {
	for {
		select {
		case event, ok := <-p.fsWatcher.Events:
			if !ok {
				return
			}
			if p.shouldProcessEvent(event) {
				p.scheduleReload()
			}

		case err, ok := <-p.fsWatcher.Errors:
			if !ok {
				return
			}
			p.logger.LogError(err, "Catalog file watcher error")

		case <-p.reloadChan:
			if p.fileChanged() {
				p.reload()
			}

		case <-p.stopChan:
			return
		}
	}
}

func (p *Provider) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Name != p.path && filepath.Base(event.Name) != filepath.Base(p.path) {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

func (p *Provider) scheduleReload() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.debounceTimer != nil {
		p.debounceTimer.Stop()
	}
	p.debounceTimer = time.AfterFunc(p.debounceDelay, func() {
		select {
		case p.reloadChan <- struct{}{}:
		default:
		}
	})
}

func (p *Provider) fileChanged() bool {
	stat, err := os.Stat(p.path)
	if err != nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if stat.ModTime().After(p.lastModTime) {
		p.lastModTime = stat.ModTime()
		return true
	}
	return false
}

func (p *Provider) reload() {
	c, err := LoadFile(p.path)

	p.mu.Lock()
	hook := p.onReload
	p.mu.Unlock()
	if hook != nil {
		hook(err == nil)
	}

	if err != nil {
		p.logger.LogError(err, "Catalog reload failed, keeping previous catalog",
			"file", p.path)
		return
	}
	p.current.Store(c)
	p.logger.Info("Catalog reloaded", "file", p.path, "roles", c.Len())
}

// SetReloadHook registers a callback invoked after every reload
// attempt. Must be set before Watch starts.
func (p *Provider) SetReloadHook(fn func(success bool)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onReload = fn
}
