package registry

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/dmitrymomot/schemakit/pkg/logger"
)

// Watch keeps the registry in sync with schema files in dir until ctx is
// done. Written or created files are reloaded, removed files are dropped.
// A file that fails to parse or compile is logged and the previously
// registered schema stays in place.
//
// Watch does not perform the initial load; call LoadFS first.
func (r *Registry) Watch(ctx context.Context, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	r.logger.InfoContext(ctx, "watching schema dir", logger.Component("registry"), "dir", dir)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			r.handleEvent(ctx, event)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.ErrorContext(ctx, "schema watcher error", logger.Component("registry"), logger.Error(err))

		case <-ctx.Done():
			return nil
		}
	}
}

func (r *Registry) handleEvent(ctx context.Context, event fsnotify.Event) {
	name, format, ok := schemaFile(filepath.Base(event.Name))
	if !ok {
		return
	}
	log := r.logger.With(logger.Component("registry"), logger.Schema(name), "op", event.Op.String())

	switch {
	// Atomic saves show up as create
	case event.Op&(fsnotify.Write|fsnotify.Create) != 0:
		data, err := os.ReadFile(event.Name)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return
			}
			log.ErrorContext(ctx, "schema reload failed", logger.Error(err))
			r.reloaded(r.Len(), err)
			return
		}
		if err := r.registerRaw(name, data, format); err != nil {
			log.ErrorContext(ctx, "schema reload failed, keeping previous version", logger.Error(err))
			r.reloaded(r.Len(), err)
			return
		}
		log.InfoContext(ctx, "schema reloaded")
		r.reloaded(r.Len(), nil)

	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		if r.Remove(name) {
			log.InfoContext(ctx, "schema removed")
			r.reloaded(r.Len(), nil)
		}
	}
}
