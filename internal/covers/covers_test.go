package covers

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"cantabile/internal/catalog"
)

type fakeSongs map[string]catalog.Song

func (f fakeSongs) SongByID(id string) (catalog.Song, error) {
	s, ok := f[id]
	if !ok {
		return catalog.Song{}, fmt.Errorf("song %q: %w", id, catalog.ErrNotFound)
	}
	return s, nil
}

// pngBytes renders a solid PNG of the given size.
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("png encode failed: %v", err)
	}
	return buf.Bytes()
}

func newTestService(t *testing.T, songs fakeSongs) *Service {
	t.Helper()
	svc, err := NewService(songs, 4, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return svc
}

func TestGet_DirectoryArt(t *testing.T) {
	dir := t.TempDir()
	audio := filepath.Join(dir, "track.mp3")
	art := pngBytes(t, 8, 8)
	if err := os.WriteFile(filepath.Join(dir, "cover.png"), art, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	svc := newTestService(t, fakeSongs{"s1": {ID: "s1", FilePath: audio}})

	cover, err := svc.Get("s1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if cover.Source != "directory" {
		t.Errorf("Source = %q, want directory", cover.Source)
	}
	if cover.Format != "image/png" {
		t.Errorf("Format = %q, want image/png", cover.Format)
	}
	decoded, err := base64.StdEncoding.DecodeString(cover.Data)
	if err != nil {
		t.Fatalf("cover data should be base64: %v", err)
	}
	if !bytes.Equal(decoded, art) {
		t.Error("decoded cover differs from the source image")
	}
}

func TestGet_SecondHitComesFromCache(t *testing.T) {
	dir := t.TempDir()
	audio := filepath.Join(dir, "track.mp3")
	if err := os.WriteFile(filepath.Join(dir, "cover.png"), pngBytes(t, 4, 4), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	svc := newTestService(t, fakeSongs{"s1": {ID: "s1", FilePath: audio}})

	first, err := svc.Get("s1")
	if err != nil {
		t.Fatalf("first Get failed: %v", err)
	}
	second, err := svc.Get("s1")
	if err != nil {
		t.Fatalf("second Get failed: %v", err)
	}
	if second.Source != SourceCache {
		t.Errorf("second Source = %q, want %q", second.Source, SourceCache)
	}
	if second.Data != first.Data || second.Format != first.Format {
		t.Error("cached cover should match the extracted one")
	}
	if svc.CacheLen() != 1 {
		t.Errorf("CacheLen = %d, want 1", svc.CacheLen())
	}
}

func TestGet_NoCover(t *testing.T) {
	dir := t.TempDir()
	audio := filepath.Join(dir, "track.mp3")
	if err := os.WriteFile(audio, []byte("not real audio"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	svc := newTestService(t, fakeSongs{"s1": {ID: "s1", FilePath: audio}})

	if _, err := svc.Get("s1"); !errors.Is(err, ErrNoCover) {
		t.Errorf("err = %v, want ErrNoCover", err)
	}
}

func TestGet_UnknownSong(t *testing.T) {
	svc := newTestService(t, fakeSongs{})
	if _, err := svc.Get("ghost"); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestInvalidate(t *testing.T) {
	dir := t.TempDir()
	audio := filepath.Join(dir, "track.mp3")
	if err := os.WriteFile(filepath.Join(dir, "cover.png"), pngBytes(t, 4, 4), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	svc := newTestService(t, fakeSongs{"s1": {ID: "s1", FilePath: audio}})

	if _, err := svc.Get("s1"); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	svc.Invalidate("s1")

	cover, err := svc.Get("s1")
	if err != nil {
		t.Fatalf("Get after Invalidate failed: %v", err)
	}
	if cover.Source == SourceCache {
		t.Error("invalidated entry should be re-extracted, not served from cache")
	}
}

func TestThumbnail_ScalesDownLargeImages(t *testing.T) {
	data := pngBytes(t, 300, 150)

	out, mime, err := Thumbnail(data, 100)
	if err != nil {
		t.Fatalf("Thumbnail failed: %v", err)
	}
	if mime != "image/jpeg" {
		t.Errorf("mime = %q, want image/jpeg", mime)
	}

	img, _, err := image.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decoding thumbnail failed: %v", err)
	}
	if img.Bounds().Dx() != 100 {
		t.Errorf("width = %d, want 100", img.Bounds().Dx())
	}
	if img.Bounds().Dy() > 100 {
		t.Errorf("height = %d, want <= 100", img.Bounds().Dy())
	}
}

func TestThumbnail_LeavesSmallImagesAlone(t *testing.T) {
	data := pngBytes(t, 50, 50)

	out, mime, err := Thumbnail(data, 100)
	if err != nil {
		t.Fatalf("Thumbnail failed: %v", err)
	}
	if !bytes.Equal(out, data) {
		t.Error("small image should pass through unchanged")
	}
	if mime != "image/png" {
		t.Errorf("mime = %q, want image/png", mime)
	}
}

func TestThumbnail_RejectsGarbage(t *testing.T) {
	if _, _, err := Thumbnail([]byte("not an image"), 100); err == nil {
		t.Error("garbage input should error")
	}
}
