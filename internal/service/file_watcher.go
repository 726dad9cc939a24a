package service

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/jcadmin/internal/repository"
	"github.com/yasinhessnawi1/jcadmin/internal/utils"
)

// changeOps are the events after which cached content may be stale. Atomic
// rewrites show up as Create or Rename on the directory, not Write.
const changeOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove

// FileWatcher drops cache entries as soon as the device rewrites a file,
// instead of waiting for the next poll to notice the new modification time.
type FileWatcher struct {
	cache   *FileCache
	paths   map[string]string
	watcher *fsnotify.Watcher
}

// NewFileWatcher watches the directories holding files. Directories are
// watched rather than the files so that replaced files stay tracked.
func NewFileWatcher(cache *FileCache, files ...repository.TextFile) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, utils.NewIOError("watch", "", err)
	}

	w := &FileWatcher{
		cache:   cache,
		paths:   make(map[string]string, len(files)),
		watcher: watcher,
	}

	dirs := make(map[string]bool)
	for _, file := range files {
		path := file.Path()
		w.paths[filepath.Clean(path)] = path

		dir := filepath.Dir(path)
		if dirs[dir] {
			continue
		}
		dirs[dir] = true

		if err := watcher.Add(dir); err != nil {
			_ = watcher.Close()
			return nil, utils.NewIOError("watch", dir, err)
		}
	}

	return w, nil
}

// Run handles events until ctx is done, then closes the watcher.
func (w *FileWatcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("File watcher error")
		}
	}
}

func (w *FileWatcher) handle(event fsnotify.Event) {
	if event.Op&changeOps == 0 {
		return
	}

	path, tracked := w.paths[filepath.Clean(event.Name)]
	if !tracked {
		return
	}

	w.cache.Invalidate(path)
	log.Debug().
		Str("file", path).
		Str("op", event.Op.String()).
		Msg("Cached file changed on disk")
}

// WatchFiles invalidates cached file content on change until ctx is done.
func (s *CallerService) WatchFiles(ctx context.Context) error {
	watcher, err := NewFileWatcher(s.cache, s.callLog, s.safe.File(), s.blocked.File())
	if err != nil {
		return err
	}
	return watcher.Run(ctx)
}
