package diskv

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/julianstephens/daypad/internal/debounce"
	"github.com/julianstephens/daypad/internal/logger"
)

// watchSettle coalesces the burst of events one atomic write produces.
const watchSettle = 100 * time.Millisecond

// Change names a key whose file changed on disk: a date key or "preferences".
type Change struct {
	Key string
}

// Watch streams changes made to the store's files, by this process or any
// other, until ctx is cancelled. Events are dropped when the consumer falls
// behind; callers should treat a Change as a hint to reload.
func (s *Store) Watch(ctx context.Context) (<-chan Change, error) {
	if err := os.MkdirAll(s.base, 0o700); err != nil {
		return nil, fmt.Errorf("ensure base path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	dirs, err := collectDirs(s.base)
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("enumerate directories: %w", err)
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	out := make(chan Change, 64)
	var (
		mu     sync.RWMutex
		closed bool
	)
	settle := debounce.NewGroup(watchSettle, nil)
	send := func(key string) func() {
		return func() {
			mu.RLock()
			defer mu.RUnlock()
			if closed {
				return
			}
			select {
			case out <- Change{Key: key}:
			default:
				logger.Debug("dropped store change", "key", key)
			}
		}
	}

	go func() {
		defer func() {
			settle.CancelAll()
			watcher.Close()
			mu.Lock()
			closed = true
			close(out)
			mu.Unlock()
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("store watcher error", "error", err)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if evt.Has(fsnotify.Create) {
					if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
						// nested directories and files may already exist by the
						// time the watch is added
						s.watchTree(watcher, evt.Name, func(key string) { settle.Schedule(key, send(key)) })
						continue
					}
				}
				if key := s.keyForFile(evt.Name); key != "" {
					settle.Schedule(key, send(key))
				}
			}
		}
	}()

	return out, nil
}

// collectDirs returns base and every directory below it except the temp dir.
func collectDirs(base string) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == tempDirName {
			return filepath.SkipDir
		}
		dirs = append(dirs, path)
		return nil
	})
	return dirs, err
}

// watchTree adds watches for root and everything below it and reports the
// keys of files already present.
func (s *Store) watchTree(watcher *fsnotify.Watcher, root string, found func(key string)) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if d.Name() == tempDirName {
				return filepath.SkipDir
			}
			if err := watcher.Add(path); err != nil {
				logger.Warn("failed to watch new directory", "dir", path, "error", err)
			}
			return nil
		}
		if key := s.keyForFile(path); key != "" {
			found(key)
		}
		return nil
	})
}
