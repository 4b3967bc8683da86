package tags

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func TestIsAudioFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/m/song.mp3", true},
		{"/m/song.FLAC", true},
		{"/m/song.wav", true},
		{"/m/song.ogg", true},
		{"/m/song.opus", true},
		{"/m/song.m4a", true},
		{"/m/song.aac", true},
		{"/m/song.txt", false},
		{"/m/cover.jpg", false},
		{"/m/noext", false},
		{"/m/song.mp3.bak", false},
	}
	for _, tt := range tests {
		if got := IsAudioFile(tt.path); got != tt.want {
			t.Errorf("IsAudioFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestFormatOf(t *testing.T) {
	if got := FormatOf("/m/song.mp3"); got != "MP3" {
		t.Errorf("FormatOf = %q, want MP3", got)
	}
	if got := FormatOf("/m/song.FlAc"); got != "FLAC" {
		t.Errorf("FormatOf = %q, want FLAC", got)
	}
}

func TestTaglibTags_Get(t *testing.T) {
	tags := taglibTags{
		"TITLE":  {"A Song"},
		"ARTIST": {"Someone", "Someone Else"},
		"EMPTY":  {},
	}

	if got := tags.get("TITLE"); got != "A Song" {
		t.Errorf("get(TITLE) = %q", got)
	}
	if got := tags.get("ARTIST"); got != "Someone" {
		t.Errorf("get(ARTIST) = %q, want first value", got)
	}
	if got := tags.get("MISSING", "TITLE"); got != "A Song" {
		t.Errorf("get with fallback = %q", got)
	}
	if got := tags.get("EMPTY"); got != "" {
		t.Errorf("get(EMPTY) = %q, want empty", got)
	}
}

func TestTaglibTags_GetInt(t *testing.T) {
	tags := taglibTags{
		"TRACKNUMBER": {"3/12"},
		"DATE":        {"2011-05-01"},
		"YEAR":        {"1999"},
		"BAD":         {"abc"},
	}

	if got := tags.getInt("TRACKNUMBER"); got != 3 {
		t.Errorf("getInt(TRACKNUMBER) = %d, want 3", got)
	}
	if got := tags.getInt("DATE"); got != 2011 {
		t.Errorf("getInt(DATE) = %d, want 2011", got)
	}
	if got := tags.getInt("YEAR"); got != 1999 {
		t.Errorf("getInt(YEAR) = %d, want 1999", got)
	}
	if got := tags.getInt("BAD"); got != 0 {
		t.Errorf("getInt(BAD) = %d, want 0", got)
	}
	if got := tags.getInt("MISSING"); got != 0 {
		t.Errorf("getInt(MISSING) = %d, want 0", got)
	}
}

func TestParseSong_GarbageFileIsParseError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "garbage.mp3")
	if err := os.WriteFile(path, []byte("this is not audio data"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	_, err := NewExtractor(zerolog.Nop()).ParseSong(path, "l1")
	if !errors.Is(err, ErrParse) {
		t.Errorf("err = %v, want ErrParse", err)
	}
}

func TestParseSong_UnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	_, err := NewExtractor(zerolog.Nop()).ParseSong(path, "l1")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestDetectMimeType(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n00000000")
	if got := detectMimeType(png); got != mimePNG {
		t.Errorf("detectMimeType(png) = %q", got)
	}
	if got := detectMimeType([]byte("\xff\xd8\xff\xe0rest")); got != mimeJPEG {
		t.Errorf("detectMimeType(jpeg) = %q", got)
	}
	if got := detectMimeType(nil); got != mimeJPEG {
		t.Errorf("detectMimeType(nil) = %q, want jpeg default", got)
	}
}

func TestReadSiblingLRC(t *testing.T) {
	dir := t.TempDir()
	audio := filepath.Join(dir, "track.mp3")

	if got := readSiblingLRC(audio); got != "" {
		t.Errorf("missing .lrc should yield empty, got %q", got)
	}

	lrc := filepath.Join(dir, "track.lrc")
	if err := os.WriteFile(lrc, []byte("[00:01.00]hello\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if got := readSiblingLRC(audio); got != "[00:01.00]hello" {
		t.Errorf("readSiblingLRC = %q", got)
	}
}

func TestSiblingLRCPath(t *testing.T) {
	if got := SiblingLRCPath("/m/a/track.flac"); got != "/m/a/track.lrc" {
		t.Errorf("SiblingLRCPath = %q", got)
	}
}

func TestFindFolderArt(t *testing.T) {
	dir := t.TempDir()
	audio := filepath.Join(dir, "track.mp3")

	if data, _ := findFolderArt(audio); data != nil {
		t.Error("empty directory should yield no art")
	}

	// A generic cover file is picked up.
	if err := os.WriteFile(filepath.Join(dir, "cover.png"), []byte("\x89PNG\r\n\x1a\n0000"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	data, mime := findFolderArt(audio)
	if data == nil || mime != mimePNG {
		t.Errorf("findFolderArt = %v bytes, %q; want png data", len(data), mime)
	}

	// A basename-matched image takes priority over generic names.
	if err := os.WriteFile(filepath.Join(dir, "track.jpg"), []byte("\xff\xd8\xff"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	data, mime = findFolderArt(audio)
	if mime != mimeJPEG || len(data) != 3 {
		t.Errorf("basename art should win, got %d bytes, %q", len(data), mime)
	}
}

func TestStripID3v2Tag(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "track.mp3")

	// 10-byte ID3v2 header declaring a 6-byte body, then audio data.
	file := append([]byte("ID3\x03\x00\x00\x00\x00\x00\x06"), []byte("tagbdy")...)
	file = append(file, []byte("AUDIO")...)
	if err := os.WriteFile(path, file, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if err := stripID3v2Tag(path); err != nil {
		t.Fatalf("stripID3v2Tag failed: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(got) != "AUDIO" {
		t.Errorf("stripped file = %q, want AUDIO", got)
	}

	// A file without an ID3 header is left alone.
	plain := filepath.Join(dir, "plain.mp3")
	if err := os.WriteFile(plain, []byte("AUDIOAUDIOAUDIO"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := stripID3v2Tag(plain); err != nil {
		t.Fatalf("stripID3v2Tag on plain file failed: %v", err)
	}
	got, _ = os.ReadFile(plain)
	if string(got) != "AUDIOAUDIOAUDIO" {
		t.Errorf("plain file modified: %q", got)
	}
}
