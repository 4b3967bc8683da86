package tags

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/dhowden/tag"
)

// extractLyrics resolves embedded or sibling lyrics for a file. The chain
// is: tag-level LYRICS value, ID3v2 unsynchronised lyrics frame, dhowden
// fallback, then a .lrc file next to the audio file. First hit wins.
func (e *Extractor) extractLyrics(path string, t taglibTags) string {
	if lyrics := strings.TrimSpace(t.get("LYRICS", "UNSYNCEDLYRICS")); lyrics != "" {
		return lyrics
	}

	if strings.EqualFold(filepath.Ext(path), ExtMP3) {
		if lyrics := readUSLTFrame(path); lyrics != "" {
			return lyrics
		}
	}

	if lyrics := readLyricsWithDhowden(path); lyrics != "" {
		return lyrics
	}

	return readSiblingLRC(path)
}

// readUSLTFrame pulls the unsynchronised lyrics frame out of an MP3.
func readUSLTFrame(path string) string {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return ""
	}
	defer id3tag.Close()

	for _, frame := range id3tag.GetFrames(id3tag.CommonID("Unsynchronised lyrics/text transcription")) {
		if uslt, ok := frame.(id3v2.UnsynchronisedLyricsFrame); ok {
			if lyrics := strings.TrimSpace(uslt.Lyrics); lyrics != "" {
				return lyrics
			}
		}
	}
	return ""
}

func readLyricsWithDhowden(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(m.Lyrics())
}

// readSiblingLRC loads a .lrc file sharing the audio file's base name.
func readSiblingLRC(path string) string {
	lrcPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".lrc"
	data, err := os.ReadFile(lrcPath)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// SiblingLRCPath returns the .lrc path next to an audio file.
func SiblingLRCPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".lrc"
}
