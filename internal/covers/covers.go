// Package covers resolves cover art for songs, memoizing results in a
// bounded LRU cache keyed by song id.
package covers

import (
	"encoding/base64"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"cantabile/internal/cache"
	"cantabile/internal/catalog"
	"cantabile/internal/tags"
)

// ErrNoCover is returned when neither the file nor its directory carries
// any cover art.
var ErrNoCover = errors.New("no cover art available")

// SourceCache marks a cover served from the in-memory cache. The other
// sources come from the tags package.
const SourceCache = "memory-cache"

// DefaultCacheSize bounds the cover cache when the configuration does not
// say otherwise.
const DefaultCacheSize = 100

// Cover is one resolved cover image, base64-encoded for transport.
type Cover struct {
	Data   string `json:"cover"`
	Format string `json:"format"`
	Source string `json:"source"`
}

// SongSource resolves song ids. Satisfied by the catalog.
type SongSource interface {
	SongByID(id string) (catalog.Song, error)
}

type cached struct {
	data   string
	format string
}

// Service extracts and caches cover art.
type Service struct {
	songs SongSource
	log   zerolog.Logger

	mu  sync.Mutex
	lru *cache.LRU[string, cached]
}

// NewService creates a cover service with the given cache capacity.
func NewService(songs SongSource, capacity int, log zerolog.Logger) (*Service, error) {
	lru, err := cache.New[string, cached](capacity)
	if err != nil {
		return nil, err
	}
	return &Service{songs: songs, log: log, lru: lru}, nil
}

// Get returns a song's cover art. Cache hits are served directly; misses
// extract from the file (embedded art first, then directory images) and
// populate the cache.
func (s *Service) Get(songID string) (Cover, error) {
	s.mu.Lock()
	if hit, ok := s.lru.Get(songID); ok {
		s.mu.Unlock()
		return Cover{Data: hit.data, Format: hit.format, Source: SourceCache}, nil
	}
	s.mu.Unlock()

	song, err := s.songs.SongByID(songID)
	if err != nil {
		return Cover{}, err
	}

	data, mimeType, source, err := tags.ExtractCoverArt(song.FilePath)
	if err != nil {
		return Cover{}, fmt.Errorf("extracting cover for %s: %w", song.FilePath, err)
	}
	if data == nil {
		return Cover{}, fmt.Errorf("song %q: %w", songID, ErrNoCover)
	}

	encoded := base64.StdEncoding.EncodeToString(data)
	s.mu.Lock()
	s.lru.Set(songID, cached{data: encoded, format: mimeType})
	s.mu.Unlock()

	s.log.Debug().Str("song", songID).Str("source", source).Msg("cover extracted")
	return Cover{Data: encoded, Format: mimeType, Source: source}, nil
}

// Invalidate drops a song's cached cover, forcing re-extraction on the
// next Get. Used when a song is deleted or retagged.
func (s *Service) Invalidate(songID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lru.Delete(songID)
}

// Clear empties the cache.
func (s *Service) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lru.Clear()
}

// CacheLen returns the number of cached covers.
func (s *Service) CacheLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lru.Len()
}
