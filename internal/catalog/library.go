package catalog

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// Libraries returns every configured library.
func (c *Catalog) Libraries() []Library {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Library(nil), c.doc.Libraries...)
}

// LibraryByID returns the library with the given id.
func (c *Catalog) LibraryByID(id string) (Library, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, lib := range c.doc.Libraries {
		if lib.ID == id {
			return lib, nil
		}
	}
	return Library{}, fmt.Errorf("library %q: %w", id, ErrNotFound)
}

// AddLibrary registers a new root directory. The path must exist and be a
// directory; a path already registered is rejected.
func (c *Catalog) AddLibrary(name, path string) (Library, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Library{}, fmt.Errorf("library path %q: %w", path, err)
	}
	if !info.IsDir() {
		return Library{}, fmt.Errorf("library path %q is not a directory", path)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, lib := range c.doc.Libraries {
		if lib.Path == path {
			return Library{}, fmt.Errorf("library path %q already registered as %q", path, lib.Name)
		}
	}

	lib := Library{
		ID:        uuid.NewString(),
		Name:      name,
		Path:      path,
		CreatedAt: time.Now().UnixMilli(),
	}
	c.doc.Libraries = append(c.doc.Libraries, lib)
	if err := c.persistLocked(); err != nil {
		return Library{}, err
	}

	c.log.Info().Str("name", name).Str("path", path).Msg("library added")
	return lib, nil
}

// RenameLibrary changes a library's display name.
func (c *Catalog) RenameLibrary(id, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.doc.Libraries {
		if c.doc.Libraries[i].ID == id {
			c.doc.Libraries[i].Name = name
			return c.persistLocked()
		}
	}
	return fmt.Errorf("library %q: %w", id, ErrNotFound)
}

// DeleteLibrary removes a library and cascades to its songs. Returns the
// number of songs removed with it.
func (c *Catalog) DeleteLibrary(id string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := -1
	for i := range c.doc.Libraries {
		if c.doc.Libraries[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0, fmt.Errorf("library %q: %w", id, ErrNotFound)
	}
	c.doc.Libraries = append(c.doc.Libraries[:idx], c.doc.Libraries[idx+1:]...)

	kept := c.doc.Songs[:0]
	removed := 0
	removedIDs := make(map[string]bool)
	for i := range c.doc.Songs {
		if c.doc.Songs[i].LibraryID == id {
			removedIDs[c.doc.Songs[i].ID] = true
			removed++
			continue
		}
		kept = append(kept, c.doc.Songs[i])
	}
	c.doc.Songs = kept

	for i := range c.doc.Playlists {
		pl := &c.doc.Playlists[i]
		filtered := pl.SongIDs[:0]
		for _, sid := range pl.SongIDs {
			if !removedIDs[sid] {
				filtered = append(filtered, sid)
			}
		}
		pl.SongIDs = filtered
	}

	c.rebuildIndicesLocked()
	if err := c.persistLocked(); err != nil {
		return 0, err
	}

	c.log.Info().Str("library", id).Int("songs_removed", removed).Msg("library deleted")
	return removed, nil
}

// LibrarySongCount returns how many songs a library owns.
func (c *Catalog) LibrarySongCount(id string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for i := range c.doc.Songs {
		if c.doc.Songs[i].LibraryID == id {
			n++
		}
	}
	return n
}
