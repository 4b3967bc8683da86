package catalog

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Playlists returns every playlist.
func (c *Catalog) Playlists() []Playlist {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Playlist(nil), c.doc.Playlists...)
}

// PlaylistByID returns the playlist with the given id.
func (c *Catalog) PlaylistByID(id string) (Playlist, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, pl := range c.doc.Playlists {
		if pl.ID == id {
			return pl, nil
		}
	}
	return Playlist{}, fmt.Errorf("playlist %q: %w", id, ErrNotFound)
}

// CreatePlaylist makes a new empty playlist.
func (c *Catalog) CreatePlaylist(name string) (Playlist, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now().UnixMilli()
	pl := Playlist{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	c.doc.Playlists = append(c.doc.Playlists, pl)
	if err := c.persistLocked(); err != nil {
		return Playlist{}, err
	}
	return pl, nil
}

// AddToPlaylist appends a song to a playlist. The song must exist; a song
// already on the playlist is not added twice.
func (c *Catalog) AddToPlaylist(playlistID, songID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.byID[songID]; !ok {
		return fmt.Errorf("song %q: %w", songID, ErrNotFound)
	}

	pl := c.playlistLocked(playlistID)
	if pl == nil {
		return fmt.Errorf("playlist %q: %w", playlistID, ErrNotFound)
	}
	for _, sid := range pl.SongIDs {
		if sid == songID {
			return nil
		}
	}
	pl.SongIDs = append(pl.SongIDs, songID)
	pl.UpdatedAt = time.Now().UnixMilli()
	return c.persistLocked()
}

// RemoveFromPlaylist drops a song from a playlist.
func (c *Catalog) RemoveFromPlaylist(playlistID, songID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	pl := c.playlistLocked(playlistID)
	if pl == nil {
		return fmt.Errorf("playlist %q: %w", playlistID, ErrNotFound)
	}
	pl.SongIDs = removeString(pl.SongIDs, songID)
	pl.UpdatedAt = time.Now().UnixMilli()
	return c.persistLocked()
}

// DeletePlaylist removes a playlist. Songs are untouched.
func (c *Catalog) DeletePlaylist(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.doc.Playlists {
		if c.doc.Playlists[i].ID == id {
			c.doc.Playlists = append(c.doc.Playlists[:i], c.doc.Playlists[i+1:]...)
			return c.persistLocked()
		}
	}
	return fmt.Errorf("playlist %q: %w", id, ErrNotFound)
}

func (c *Catalog) playlistLocked(id string) *Playlist {
	for i := range c.doc.Playlists {
		if c.doc.Playlists[i].ID == id {
			return &c.doc.Playlists[i]
		}
	}
	return nil
}
