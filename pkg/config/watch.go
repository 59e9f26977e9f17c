package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dd0wney/cluso-simgraph/pkg/logging"
	"github.com/fsnotify/fsnotify"
)

// reloadDelay absorbs the burst of events editors emit for a single save
const reloadDelay = 100 * time.Millisecond

// Watch reloads path whenever it changes and passes every valid result to
// onChange. Invalid files are logged and the previous configuration stays
// in effect. Watch blocks until ctx is done.
func Watch(ctx context.Context, path string, logger logging.Logger, onChange func(*Config)) error {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	logger = logger.With(logging.Component("config"), logging.Path(path))

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory so atomic renames are seen
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	reload := func() {
		cfg, err := Load(path)
		if err != nil {
			logger.Warn("ignoring invalid configuration", logging.Error(err))
			return
		}
		logger.Info("configuration reloaded")
		onChange(cfg)
	}

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != filepath.Base(path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(reloadDelay, reload)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", logging.Error(err))
		}
	}
}
