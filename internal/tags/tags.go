// Package tags reads and writes music file metadata. Reading goes through
// TagLib with dhowden/tag assisting for embedded pictures and lyrics;
// writing is format specific (ID3v2 for MP3, Vorbis comments for FLAC,
// TagLib for the rest).
package tags

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"
)

// File extensions accepted by the scanner.
const (
	ExtMP3  = ".mp3"
	ExtFLAC = ".flac"
	ExtWAV  = ".wav"
	ExtOGG  = ".ogg"
	ExtOPUS = ".opus"
	ExtM4A  = ".m4a"
	ExtAAC  = ".aac"
)

var (
	// ErrUnsupportedFormat marks files whose extension is not in the
	// supported set.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrParse marks files that look supported but could not be read.
	ErrParse = errors.New("parse error")
)

// id3Magic is the magic bytes for ID3v2 header detection.
const id3Magic = "ID3"

// IsAudioFile reports whether the path has a supported audio extension.
func IsAudioFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtMP3, ExtFLAC, ExtWAV, ExtOGG, ExtOPUS, ExtM4A, ExtAAC:
		return true
	}
	return false
}

// FormatOf returns the uppercase format name for a path, e.g. "MP3".
func FormatOf(path string) string {
	return strings.ToUpper(strings.TrimPrefix(filepath.Ext(path), "."))
}

// taglibTags wraps a taglib result map with lookup helpers.
type taglibTags map[string][]string

// get returns the first value for any of the given keys, or empty string.
func (t taglibTags) get(keys ...string) string {
	for _, key := range keys {
		if values, ok := t[key]; ok && len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// getInt returns the first value as an integer, or 0.
func (t taglibTags) getInt(keys ...string) int {
	s := t.get(keys...)
	if s == "" {
		return 0
	}
	// Track numbers and dates may carry a suffix ("3/12", "2011-05-01").
	for i, r := range s {
		if r < '0' || r > '9' {
			s = s[:i]
			break
		}
	}
	n, _ := strconv.Atoi(s)
	return n
}
