// Package catalog holds the song catalog of record: the persisted document,
// the in-memory id and path indices derived from it, and the reconciliation
// logic that merges scan results into the catalog.
package catalog

import "errors"

var (
	// ErrNotFound is returned when an operation targets an id that does
	// not exist in the catalog.
	ErrNotFound = errors.New("not found")

	// ErrStorage wraps persistence failures from the backend. Callers
	// decide whether to retry; the catalog never retries on its own.
	ErrStorage = errors.New("storage error")
)

// Song is one audio file's catalog entry. FilePath is unique across the
// whole catalog and serves as the identity key across rescans: the ID is
// generated once and survives metadata changes as long as the path stays
// the same.
type Song struct {
	ID          string  `json:"id"`
	LibraryID   string  `json:"libraryId"`
	FilePath    string  `json:"filePath"`
	Title       string  `json:"title"`
	Artist      string  `json:"artist"`
	Album       string  `json:"album"`
	AlbumArtist string  `json:"albumArtist"`
	Year        int     `json:"year"`
	Duration    float64 `json:"duration"`
	FileSize    int64   `json:"fileSize"`
	ModifiedAt  int64   `json:"modifiedAt"`
	Format      string  `json:"format"`
	Bitrate     int     `json:"bitrate"`
	SampleRate  int     `json:"sampleRate"`
	Channels    int     `json:"channels"`
	HasCover    bool    `json:"hasCover"`
	HasLyrics   bool    `json:"hasLyrics"`
	Lyrics      string  `json:"lyrics,omitempty"`
	PlayCount   int     `json:"playCount"`
}

// Library is one user-configured root directory. Songs reference it via
// LibraryID; deleting a library cascades to its songs.
type Library struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Path      string `json:"path"`
	CreatedAt int64  `json:"createdAt"`
}

// Playlist is an ordered list of song ids.
type Playlist struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	SongIDs   []string `json:"songIds"`
	CreatedAt int64    `json:"createdAt"`
	UpdatedAt int64    `json:"updatedAt"`
}

// Document is the whole persisted catalog. The backend reads and writes it
// as a unit; the catalog is its single writer.
type Document struct {
	Songs     []Song     `json:"songs"`
	Libraries []Library  `json:"libraries"`
	Playlists []Playlist `json:"playlists"`
}

// Backend persists the catalog document. Read on a backend that has never
// been written returns an empty document, not an error.
type Backend interface {
	Read() (*Document, error)
	Write(doc *Document) error
}
