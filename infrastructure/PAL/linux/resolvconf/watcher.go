package resolvconf

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher signals changes to the resolver file. It watches the parent directory,
// because resolvers are usually replaced by rename, and when the file is a symlink
// it also watches the directory of the link target.
type Watcher struct {
	path    string
	logger  *zap.Logger
	changes chan struct{}
}

func NewWatcher(path string, logger *zap.Logger) *Watcher {
	if path == "" {
		path = DefaultPath
	}
	return &Watcher{path: path, logger: logger, changes: make(chan struct{}, 1)}
}

// Changes delivers at most one pending notification; bursts are coalesced.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Run watches until ctx is done. It returns an error only when the watch could
// not be set up at all.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() {
		_ = watcher.Close()
	}()

	names := w.watchedNames()
	added := 0
	for dir := range dirsOf(names) {
		if err := watcher.Add(dir); err != nil {
			w.logger.Debug("cannot watch resolver directory", zap.String("dir", dir), zap.Error(err))
			continue
		}
		added++
	}
	if added == 0 {
		return errNoWatch
	}
	w.logger.Debug("watching resolver file", zap.String("path", w.path))

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if _, relevant := names[filepath.Clean(event.Name)]; !relevant {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			w.logger.Debug("resolver file changed", zap.Stringer("op", event.Op))
			w.signal()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Debug("resolver watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) signal() {
	select {
	case w.changes <- struct{}{}:
	default:
	}
}

// watchedNames is the resolver path plus its symlink target, if any.
func (w *Watcher) watchedNames() map[string]struct{} {
	names := map[string]struct{}{filepath.Clean(w.path): {}}
	if target, err := filepath.EvalSymlinks(w.path); err == nil {
		names[filepath.Clean(target)] = struct{}{}
	}
	return names
}

func dirsOf(names map[string]struct{}) map[string]struct{} {
	dirs := make(map[string]struct{}, len(names))
	for name := range names {
		dirs[filepath.Dir(name)] = struct{}{}
	}
	return dirs
}
