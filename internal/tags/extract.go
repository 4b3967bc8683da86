package tags

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.senan.xyz/taglib"

	"cantabile/internal/catalog"
)

// Defaults applied when a file carries no usable tag values.
const (
	UnknownArtist = "Unknown Artist"
	UnknownAlbum  = "Unknown Album"
)

// Extractor turns audio files into catalog song records.
type Extractor struct {
	log zerolog.Logger
}

// NewExtractor creates an Extractor.
func NewExtractor(log zerolog.Logger) *Extractor {
	return &Extractor{log: log}
}

// ParseSong reads a file's tags and audio properties and builds a song
// record with a freshly generated id. The caller decides whether that id
// sticks or an existing one is kept during reconciliation.
func (e *Extractor) ParseSong(path, libraryID string) (*catalog.Song, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !IsAudioFile(path) {
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}

	song := &catalog.Song{
		ID:         uuid.NewString(),
		LibraryID:  libraryID,
		FilePath:   path,
		FileSize:   info.Size(),
		ModifiedAt: info.ModTime().UnixMilli(),
		Format:     FormatOf(path),
	}

	rawTags, tagErr := taglib.ReadTags(path)
	if tagErr != nil {
		// Tag-less files are still playable; fall back to the filename.
		e.log.Debug().Str("path", path).Err(tagErr).Msg("tag read failed, using filename")
		rawTags = nil
	}
	t := taglibTags(rawTags)

	song.Title = t.get(taglib.Title)
	if song.Title == "" {
		song.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	song.Artist = t.get(taglib.Artist)
	if song.Artist == "" {
		song.Artist = UnknownArtist
	}
	song.Album = t.get(taglib.Album)
	if song.Album == "" {
		song.Album = UnknownAlbum
	}
	song.AlbumArtist = t.get(taglib.AlbumArtist)
	if song.AlbumArtist == "" {
		song.AlbumArtist = song.Artist
	}
	song.Year = t.getInt(taglib.Date, taglib.OriginalDate)

	props, err := taglib.ReadProperties(path)
	if err != nil {
		// A file yielding neither tags nor audio properties is not an
		// audio file at all, whatever its extension says.
		if tagErr != nil {
			return nil, fmt.Errorf("%s: %w", path, ErrParse)
		}
		e.log.Debug().Str("path", path).Err(err).Msg("audio properties unreadable")
	} else {
		song.Duration = props.Length.Seconds()
		song.Bitrate = int(props.Bitrate)
		song.SampleRate = int(props.SampleRate)
		song.Channels = int(props.Channels)
	}

	song.HasCover = hasEmbeddedCover(path)

	if lyrics := e.extractLyrics(path, t); lyrics != "" {
		song.Lyrics = lyrics
		song.HasLyrics = true
	}

	return song, nil
}

// hasEmbeddedCover reports whether the file carries an embedded picture.
func hasEmbeddedCover(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return false
	}
	return m.Picture() != nil
}
