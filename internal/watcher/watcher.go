// Package watcher turns a drop folder into an image source: files copied
// into the watched directory are picked up and staged the same way as an
// explicit selection.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/roadwatch/potholectl/internal/logger"
	"github.com/roadwatch/potholectl/internal/session"
)

// Watcher monitors one directory and emits newly dropped images
type Watcher struct {
	dir    string
	fsw    *fsnotify.Watcher
	log    *logger.Logger
	images chan session.Image

	// emitted remembers paths already picked up so a Create followed by
	// Write events for the same file produces one image, not several
	emitted map[string]struct{}
}

// New creates a watcher over dir. The directory must exist.
func New(dir string, log *logger.Logger) (*Watcher, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("empty watch directory")
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot access watch directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch path is not a directory: %s", dir)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := fsw.Add(dir); err != nil {
		closeQuiet(fsw, log)
		return nil, fmt.Errorf("failed to watch directory: %w", err)
	}

	if log == nil {
		log = logger.New("watcher", nil)
	}

	return &Watcher{
		dir:     dir,
		fsw:     fsw,
		log:     log,
		images:  make(chan session.Image, 16),
		emitted: make(map[string]struct{}),
	}, nil
}

// Images returns the channel of picked-up images. Closed when Run returns.
func (w *Watcher) Images() <-chan session.Image {
	return w.images
}

// Run processes file system events until the context is canceled or the
// watcher fails. It always closes the images channel on return.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.images)
	defer closeQuiet(w.fsw, w.log)

	w.log.Info("watching drop folder", logger.F("dir", w.dir))

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			w.handleEvent(ctx, event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.log.Warn("watcher error", logger.Err(err))
		}
	}
}

func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
			delete(w.emitted, event.Name)
		}
		return
	}

	img, ok := w.pickUp(event.Name)
	if !ok {
		return
	}

	select {
	case w.images <- img:
		w.log.Debug("picked up dropped image", logger.F("file", img.Name))
	case <-ctx.Done():
	}
}

// pickUp reads a dropped file if it is a not-yet-seen, non-empty image
func (w *Watcher) pickUp(path string) (session.Image, bool) {
	if !IsImageFile(path) {
		return session.Image{}, false
	}
	if _, done := w.emitted[path]; done {
		return session.Image{}, false
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() || info.Size() == 0 {
		return session.Image{}, false
	}

	data, err := os.ReadFile(path) // #nosec G304 - path comes from the watched directory
	if err != nil {
		w.log.Warn("failed to read dropped file", logger.F("file", path), logger.Err(err))
		return session.Image{}, false
	}

	w.emitted[path] = struct{}{}
	return session.Image{Name: filepath.Base(path), Data: data}, true
}

// IsImageFile reports whether the path carries a supported image extension
func IsImageFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}

func closeQuiet(fsw *fsnotify.Watcher, log *logger.Logger) {
	if err := fsw.Close(); err != nil && log != nil {
		log.Warn("failed to close watcher", logger.Err(err))
	}
}
