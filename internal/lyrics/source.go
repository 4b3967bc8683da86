package lyrics

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"cantabile/internal/catalog"
	"cantabile/internal/tags"
)

// ErrNoLyrics is returned when a song has neither embedded lyrics nor an
// external .lrc file.
var ErrNoLyrics = errors.New("no lyrics available")

// Lyric formats and sources reported by Service.Get.
const (
	FormatLRC  = "lrc"
	FormatText = "text"

	SourceEmbedded = "embedded"
	SourceExternal = "external"
)

// SongSource resolves song ids. Satisfied by the catalog.
type SongSource interface {
	SongByID(id string) (catalog.Song, error)
}

// Result is a resolved lyric set for one song.
type Result struct {
	Lines    []Line            `json:"lyrics"`
	Metadata map[string]string `json:"metadata,omitempty"`
	Format   string            `json:"format"`
	Source   string            `json:"source"`
}

// Service resolves lyrics for songs: embedded text first, then an external
// .lrc file next to the audio file.
type Service struct {
	songs SongSource
}

// NewService creates a lyrics Service.
func NewService(songs SongSource) *Service {
	return &Service{songs: songs}
}

// Get returns the lyrics for a song. Synchronized text is parsed into
// timed lines; plain text becomes untimed lines.
func (s *Service) Get(songID string) (Result, error) {
	song, err := s.songs.SongByID(songID)
	if err != nil {
		return Result{}, err
	}

	if text := strings.TrimSpace(song.Lyrics); text != "" {
		return buildResult(text, SourceEmbedded), nil
	}

	data, err := os.ReadFile(tags.SiblingLRCPath(song.FilePath))
	if err == nil {
		if text := strings.TrimSpace(string(data)); text != "" {
			return buildResult(text, SourceExternal), nil
		}
	}

	return Result{}, fmt.Errorf("song %q: %w", songID, ErrNoLyrics)
}

func buildResult(text, source string) Result {
	if IsSynced(text) {
		doc := Parse(text)
		return Result{
			Lines:    doc.Lines,
			Metadata: doc.Metadata,
			Format:   FormatLRC,
			Source:   source,
		}
	}
	return Result{
		Lines:  PlainLines(text),
		Format: FormatText,
		Source: source,
	}
}
