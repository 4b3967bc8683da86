package tags

import (
	"fmt"
	"strconv"

	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"
)

// writeFLACTags writes Vorbis comments and picture to a FLAC file.
func writeFLACTags(path string, u *Update) error {
	f, err := flac.ParseFile(path)
	if err != nil {
		return fmt.Errorf("parse file: %w", err)
	}

	cmtIdx := -1
	for i, meta := range f.Meta {
		if meta.Type == flac.VorbisComment {
			cmtIdx = i
			break
		}
	}

	// A fresh comment block avoids duplicated tags.
	cmts := flacvorbis.New()
	add := func(key, value string) error {
		if value == "" {
			return nil
		}
		return cmts.Add(key, value)
	}

	if err := add("TITLE", u.Title); err != nil {
		return fmt.Errorf("add title: %w", err)
	}
	if err := add("ARTIST", u.Artist); err != nil {
		return fmt.Errorf("add artist: %w", err)
	}
	if err := add("ALBUM", u.Album); err != nil {
		return fmt.Errorf("add album: %w", err)
	}
	if err := add("ALBUMARTIST", u.AlbumArtist); err != nil {
		return fmt.Errorf("add album artist: %w", err)
	}
	if err := add("GENRE", u.Genre); err != nil {
		return fmt.Errorf("add genre: %w", err)
	}
	if u.Year > 0 {
		if err := add("DATE", strconv.Itoa(u.Year)); err != nil {
			return fmt.Errorf("add date: %w", err)
		}
	}
	if u.TrackNumber > 0 {
		if err := add("TRACKNUMBER", strconv.Itoa(u.TrackNumber)); err != nil {
			return fmt.Errorf("add track number: %w", err)
		}
	}

	cmtBlock := cmts.Marshal()
	if cmtIdx >= 0 {
		f.Meta[cmtIdx] = &cmtBlock
	} else {
		f.Meta = append(f.Meta, &cmtBlock)
	}

	if len(u.CoverArt) > 0 {
		newMeta := make([]*flac.MetaDataBlock, 0, len(f.Meta))
		for _, meta := range f.Meta {
			if meta.Type != flac.Picture {
				newMeta = append(newMeta, meta)
			}
		}
		f.Meta = newMeta

		pic, err := flacpicture.NewFromImageData(
			flacpicture.PictureTypeFrontCover,
			"Front Cover",
			u.CoverArt,
			detectMimeType(u.CoverArt),
		)
		if err != nil {
			return fmt.Errorf("create picture: %w", err)
		}
		picBlock := pic.Marshal()
		f.Meta = append(f.Meta, &picBlock)
	}

	if err := f.Save(path); err != nil {
		return fmt.Errorf("save file: %w", err)
	}
	return nil
}
