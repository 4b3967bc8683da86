package tags

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/bogem/id3v2/v2"
)

// writeMP3Tags writes ID3v2 tags to an MP3 file.
func writeMP3Tags(path string, u *Update) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if errors.Is(err, id3v2.ErrUnsupportedVersion) {
		// ID3v2.2 or older tags, strip them and retry.
		if stripErr := stripID3v2Tag(path); stripErr != nil {
			return fmt.Errorf("strip unsupported ID3v2.2 tag: %w", stripErr)
		}
		tag, err = id3v2.Open(path, id3v2.Options{Parse: true})
	}
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer tag.Close()

	// ID3v2.4 with UTF-8 for full Unicode support.
	tag.SetVersion(4)
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.DeleteAllFrames()

	tag.SetTitle(u.Title)
	tag.SetArtist(u.Artist)
	tag.SetAlbum(u.Album)
	tag.SetGenre(u.Genre)

	if u.Year > 0 {
		tag.AddTextFrame("TDRC", id3v2.EncodingUTF8, strconv.Itoa(u.Year))
	}
	if u.TrackNumber > 0 {
		tag.AddTextFrame(tag.CommonID("Track number/Position in set"), id3v2.EncodingUTF8, strconv.Itoa(u.TrackNumber))
	}
	if u.AlbumArtist != "" {
		tag.AddTextFrame(tag.CommonID("Band/Orchestra/Accompaniment"), id3v2.EncodingUTF8, u.AlbumArtist)
	}

	if len(u.CoverArt) > 0 {
		tag.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    detectMimeType(u.CoverArt),
			PictureType: id3v2.PTFrontCover,
			Description: "Front Cover",
			Picture:     u.CoverArt,
		})
	}

	if err := tag.Save(); err != nil {
		return fmt.Errorf("save tags: %w", err)
	}
	return nil
}

// stripID3v2Tag removes an ID3v2 tag block from the head of an MP3 file.
func stripID3v2Tag(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	if len(data) < 10 || string(data[:3]) != id3Magic {
		return nil
	}

	// Tag size is a syncsafe integer in bytes 6-9.
	size := int(data[6])<<21 | int(data[7])<<14 | int(data[8])<<7 | int(data[9])
	tagSize := size + 10
	if data[5]&0x10 != 0 {
		// ID3v2.4 footer flag.
		tagSize += 10
	}
	if tagSize >= len(data) {
		return fmt.Errorf("ID3v2 tag size (%d) exceeds file size (%d)", tagSize, len(data))
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat file: %w", err)
	}
	if err := os.WriteFile(path, data[tagSize:], info.Mode()); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
