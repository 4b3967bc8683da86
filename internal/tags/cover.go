package tags

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

// Cover art sources, reported alongside extracted image data.
const (
	CoverSourceFile      = "music_file"
	CoverSourceDirectory = "directory"
)

// Common cover art filenames to look for in album folders.
var coverArtFilenames = []string{
	"cover.jpg", "cover.jpeg", "cover.png",
	"folder.jpg", "folder.jpeg", "folder.png",
	"album.jpg", "album.jpeg", "album.png",
	"front.jpg", "front.jpeg", "front.png",
}

// ExtractCoverArt reads cover art for an audio file. Embedded art wins;
// otherwise common image filenames in the same directory are tried,
// including one matching the audio file's own base name. Returns nil data
// when nothing is found.
func ExtractCoverArt(path string) (data []byte, mimeType, source string, err error) {
	data, mimeType, err = extractEmbeddedArt(path)
	if err != nil {
		return nil, "", "", err
	}
	if data != nil {
		return data, mimeType, CoverSourceFile, nil
	}

	data, mimeType = findFolderArt(path)
	if data != nil {
		return data, mimeType, CoverSourceDirectory, nil
	}
	return nil, "", "", nil
}

func extractEmbeddedArt(path string) (data []byte, mimeType string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		// Unreadable tags just mean no embedded art.
		return nil, "", nil
	}

	pic := m.Picture()
	if pic == nil {
		return nil, "", nil
	}

	mimeType = pic.MIMEType
	if mimeType == "" {
		mimeType = detectMimeType(pic.Data)
	}
	return pic.Data, mimeType, nil
}

// findFolderArt looks for cover image files next to the audio file. The
// audio file's own base name is tried first, then the common names.
func findFolderArt(audioPath string) (data []byte, mimeType string) {
	dir := filepath.Dir(audioPath)
	base := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))

	candidates := []string{base + ".jpg", base + ".jpeg", base + ".png"}
	candidates = append(candidates, coverArtFilenames...)

	for _, name := range candidates {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		switch strings.ToLower(filepath.Ext(name)) {
		case ".jpg", ".jpeg":
			return data, mimeJPEG
		case ".png":
			return data, mimePNG
		default:
			return data, detectMimeType(data)
		}
	}
	return nil, ""
}

const (
	mimeJPEG = "image/jpeg"
	mimePNG  = "image/png"
)

// detectMimeType sniffs image data, defaulting to JPEG.
func detectMimeType(data []byte) string {
	if len(data) == 0 {
		return mimeJPEG
	}
	switch http.DetectContentType(data) {
	case mimePNG:
		return mimePNG
	default:
		return mimeJPEG
	}
}
