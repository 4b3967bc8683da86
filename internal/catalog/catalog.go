package catalog

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Catalog is the in-process view of the persisted document plus two derived
// indices (by id, by path). All mutation goes through Catalog methods; the
// indices are never handed out.
type Catalog struct {
	mu      sync.RWMutex
	backend Backend
	log     zerolog.Logger

	doc    *Document
	byID   map[string]*Song
	byPath map[string]*Song
}

// Open loads the document from the backend and builds the indices.
func Open(backend Backend, log zerolog.Logger) (*Catalog, error) {
	doc, err := backend.Read()
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	if doc == nil {
		doc = &Document{}
	}

	c := &Catalog{
		backend: backend,
		log:     log,
		doc:     doc,
	}
	c.rebuildIndicesLocked()

	c.log.Debug().
		Int("songs", len(doc.Songs)).
		Int("libraries", len(doc.Libraries)).
		Int("playlists", len(doc.Playlists)).
		Msg("catalog loaded")
	return c, nil
}

// SongByID returns the song with the given id.
func (c *Catalog) SongByID(id string) (Song, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, ok := c.byID[id]
	if !ok {
		return Song{}, fmt.Errorf("song %q: %w", id, ErrNotFound)
	}
	return *s, nil
}

// SongByPath returns the song stored under the given file path.
func (c *Catalog) SongByPath(path string) (Song, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, ok := c.byPath[path]
	if !ok {
		return Song{}, fmt.Errorf("song at %q: %w", path, ErrNotFound)
	}
	return *s, nil
}

// SongsByLibrary returns all songs belonging to a library, or every song in
// the catalog when libraryID is "all".
func (c *Catalog) SongsByLibrary(libraryID string) []Song {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []Song
	for i := range c.doc.Songs {
		if libraryID == "all" || c.doc.Songs[i].LibraryID == libraryID {
			out = append(out, c.doc.Songs[i])
		}
	}
	return out
}

// SongCount returns the number of songs in the catalog.
func (c *Catalog) SongCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.doc.Songs)
}

// AddSong inserts a single song. A song already stored under the same path
// is replaced, keeping its original id and play count.
func (c *Catalog) AddSong(song Song) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.byPath[song.FilePath]; ok {
		song.ID = existing.ID
		song.PlayCount = existing.PlayCount
		*existing = song
	} else {
		c.doc.Songs = append(c.doc.Songs, song)
	}
	c.rebuildIndicesLocked()
	return c.persistLocked()
}

// ReconcileResult counts what a reconciliation changed.
type ReconcileResult struct {
	Added   int
	Updated int
}

// Reconcile merges freshly scanned songs into the catalog. Identity is
// path-keyed: a song whose path is already stored keeps its existing id,
// and its content is replaced only when the file's modification time
// differs. Unknown paths are inserted as new songs. This is what makes
// rescans idempotent and non-duplicating.
func (c *Catalog) Reconcile(libraryID string, songs []Song) (ReconcileResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Index by position, not pointer: appends below may reallocate the
	// slice and would leave the pointer index stale mid-loop.
	pathIdx := make(map[string]int, len(c.doc.Songs))
	for i := range c.doc.Songs {
		pathIdx[c.doc.Songs[i].FilePath] = i
	}

	var res ReconcileResult
	for _, incoming := range songs {
		i, ok := pathIdx[incoming.FilePath]
		if !ok {
			c.doc.Songs = append(c.doc.Songs, incoming)
			// Duplicate paths within one batch collapse into the
			// first insert instead of appending twice.
			pathIdx[incoming.FilePath] = len(c.doc.Songs) - 1
			res.Added++
			continue
		}
		existing := &c.doc.Songs[i]
		if existing.ModifiedAt == incoming.ModifiedAt {
			continue
		}
		incoming.ID = existing.ID
		incoming.PlayCount = existing.PlayCount
		*existing = incoming
		res.Updated++
	}

	c.rebuildIndicesLocked()
	if err := c.persistLocked(); err != nil {
		return ReconcileResult{}, err
	}

	c.log.Info().
		Str("library", libraryID).
		Int("added", res.Added).
		Int("updated", res.Updated).
		Msg("reconciled scan results")
	return res, nil
}

// ClearByLibrary removes every song belonging to the library. Returns the
// number of songs removed.
func (c *Catalog) ClearByLibrary(libraryID string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.doc.Songs[:0]
	removed := 0
	for i := range c.doc.Songs {
		if c.doc.Songs[i].LibraryID == libraryID {
			removed++
			continue
		}
		kept = append(kept, c.doc.Songs[i])
	}
	c.doc.Songs = kept

	if removed == 0 {
		return 0, nil
	}
	c.rebuildIndicesLocked()
	if err := c.persistLocked(); err != nil {
		return 0, err
	}
	return removed, nil
}

// DeleteSong removes one song by id and drops it from every playlist.
func (c *Catalog) DeleteSong(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := -1
	for i := range c.doc.Songs {
		if c.doc.Songs[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("song %q: %w", id, ErrNotFound)
	}
	c.doc.Songs = append(c.doc.Songs[:idx], c.doc.Songs[idx+1:]...)

	for i := range c.doc.Playlists {
		c.doc.Playlists[i].SongIDs = removeString(c.doc.Playlists[i].SongIDs, id)
	}

	c.rebuildIndicesLocked()
	return c.persistLocked()
}

// IncrementPlayCount bumps a song's play counter and returns the updated
// song. Last writer wins if a reconcile races this.
func (c *Catalog) IncrementPlayCount(id string) (Song, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.byID[id]
	if !ok {
		return Song{}, fmt.Errorf("song %q: %w", id, ErrNotFound)
	}
	s.PlayCount++
	if err := c.persistLocked(); err != nil {
		return Song{}, err
	}
	return *s, nil
}

// RebuildIndices rebuilds both indices from the document. Mutating methods
// already keep them current; this is the recovery path after bulk edits.
func (c *Catalog) RebuildIndices() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rebuildIndicesLocked()
}

func (c *Catalog) rebuildIndicesLocked() {
	c.byID = make(map[string]*Song, len(c.doc.Songs))
	c.byPath = make(map[string]*Song, len(c.doc.Songs))
	for i := range c.doc.Songs {
		s := &c.doc.Songs[i]
		c.byID[s.ID] = s
		c.byPath[s.FilePath] = s
	}
}

func (c *Catalog) persistLocked() error {
	if err := c.backend.Write(c.doc); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}

func removeString(list []string, s string) []string {
	out := list[:0]
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}
