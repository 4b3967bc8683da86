// Package watch observes library directories for file-system changes and
// triggers a callback once the activity settles.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"cantabile/internal/catalog"
)

const defaultDebounce = 2 * time.Second

// Watcher follows one or more library roots recursively. Change bursts
// are debounced per library; after a quiet period the OnChange callback
// fires with the affected library's id.
type Watcher struct {
	fsw      *fsnotify.Watcher
	log      zerolog.Logger
	debounce time.Duration

	// root path -> library id, longest-prefix matched against events.
	roots map[string]string

	// OnChange is invoked from the watch loop; keep it quick or hand
	// off to a goroutine.
	OnChange func(libraryID string)
}

// New creates a Watcher. A debounce of 0 means the default of 2s.
func New(log zerolog.Logger, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &Watcher{
		fsw:      fsw,
		log:      log,
		debounce: debounce,
		roots:    make(map[string]string),
	}, nil
}

// WatchLibrary registers a library root and all its subdirectories.
// Unreadable subdirectories are skipped.
func (w *Watcher) WatchLibrary(lib catalog.Library) error {
	if err := w.fsw.Add(lib.Path); err != nil {
		return err
	}
	w.roots[lib.Path] = lib.ID

	_ = filepath.WalkDir(lib.Path, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || !d.IsDir() || path == lib.Path {
			return nil
		}
		if err := w.fsw.Add(path); err != nil {
			w.log.Warn().Str("path", path).Err(err).Msg("cannot watch directory")
		}
		return nil
	})

	w.log.Info().Str("library", lib.ID).Str("path", lib.Path).Msg("watching library")
	return nil
}

// Run processes events until the context is canceled.
func (w *Watcher) Run(ctx context.Context) {
	// One pending timer per library keeps independent change bursts
	// from resetting each other.
	pending := make(map[string]*time.Timer)
	fired := make(chan string, 16)

	defer func() {
		for _, t := range pending {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case libID := <-fired:
			delete(pending, libID)
			if w.OnChange != nil {
				w.OnChange(libID)
			}

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(ev, pending, fired)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("watch error")
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event, pending map[string]*time.Timer, fired chan<- string) {
	libID := w.libraryFor(ev.Name)
	if libID == "" {
		return
	}

	// New directories join the watch set so deeper changes are seen.
	if ev.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			_ = w.fsw.Add(ev.Name)
		}
	}

	w.log.Debug().Str("library", libID).Str("path", ev.Name).Str("op", ev.Op.String()).Msg("change detected")

	if t, ok := pending[libID]; ok {
		t.Reset(w.debounce)
		return
	}
	pending[libID] = time.AfterFunc(w.debounce, func() {
		fired <- libID
	})
}

// libraryFor maps an event path to the owning library by longest prefix.
func (w *Watcher) libraryFor(path string) string {
	best := ""
	bestLen := -1
	for root, id := range w.roots {
		if strings.HasPrefix(path, root+string(filepath.Separator)) || path == root {
			if len(root) > bestLen {
				best = id
				bestLen = len(root)
			}
		}
	}
	return best
}

// Close stops the underlying watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
