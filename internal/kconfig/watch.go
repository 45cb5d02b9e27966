package kconfig

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch watches dir/kernel.yaml for changes and invokes onChange with the
// freshly reloaded Config each time it's written. It runs until ctx-like
// cancellation isn't available here (the watcher has no context API), so
// callers call Close on the returned watcher to stop it.
func Watch(dir string, onChange func(*Config)) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("kconfig: creating watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("kconfig: watching %s: %w", dir, err)
	}

	target := filepath.Join(dir, "kernel.yaml")
	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Name != target || !ev.Op.Has(fsnotify.Write) {
					continue
				}
				cfg, err := Load(dir)
				if err != nil {
					continue
				}
				onChange(cfg)
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return watcher, nil
}
