package tags

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.senan.xyz/taglib"
)

// Update holds the tag values to write to a file. Empty string fields are
// left untouched except through Clear semantics of the underlying writer.
type Update struct {
	Title       string
	Artist      string
	Album       string
	AlbumArtist string
	Genre       string
	Year        int
	TrackNumber int
	CoverArt    []byte
}

// Write writes tag metadata to a music file in place.
func Write(path string, u *Update) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("file not found: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ExtMP3:
		return writeMP3Tags(path, u)
	case ExtFLAC:
		return writeFLACTags(path, u)
	case ExtOGG, ExtOPUS, ExtM4A:
		return writeWithTaglib(path, u)
	default:
		return fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// writeWithTaglib handles formats without a dedicated writer.
func writeWithTaglib(path string, u *Update) error {
	values := map[string][]string{}
	add := func(key, v string) {
		if v != "" {
			values[key] = []string{v}
		}
	}
	add(taglib.Title, u.Title)
	add(taglib.Artist, u.Artist)
	add(taglib.Album, u.Album)
	add(taglib.AlbumArtist, u.AlbumArtist)
	add(taglib.Genre, u.Genre)
	if u.Year > 0 {
		add(taglib.Date, strconv.Itoa(u.Year))
	}
	if u.TrackNumber > 0 {
		add(taglib.TrackNumber, strconv.Itoa(u.TrackNumber))
	}

	if err := taglib.WriteTags(path, values, taglib.Clear); err != nil {
		return fmt.Errorf("write tags: %w", err)
	}
	return nil
}
