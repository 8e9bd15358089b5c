package config

import (
	"fmt"
	"path/filepath"

	"volumecloud/internal/utils"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a profile when its file changes. Reloaded profiles are
// queued for the render thread, which drains them with Pending.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	updates chan *Profile
	done    chan struct{}
}

// Watch starts watching path. The parent directory is watched so editors
// that replace the file on save are still seen.
func Watch(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:    abs,
		watcher: fw,
		updates: make(chan *Profile, 1),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			p, err := LoadProfile(w.path)
			if err != nil {
				utils.Warn("Config: Reload failed, keeping current profile: %v", err)
				continue
			}
			utils.Info("Config: Reloaded %s", w.path)
			w.push(p)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			utils.Warn("Config: Watcher error: %v", err)
		}
	}
}

// push replaces any profile the render thread has not picked up yet.
func (w *Watcher) push(p *Profile) {
	select {
	case <-w.updates:
	default:
	}
	w.updates <- p
}

// Pending returns the latest reloaded profile without blocking.
func (w *Watcher) Pending() (*Profile, bool) {
	select {
	case p := <-w.updates:
		return p, true
	default:
		return nil, false
	}
}

func (w *Watcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}
