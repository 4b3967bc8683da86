package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cantabile/internal/catalog"
)

func TestRead_MissingFileYieldsEmptyDocument(t *testing.T) {
	f, err := NewJSONFile(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)

	doc, err := f.Read()
	require.NoError(t, err)
	assert.Empty(t, doc.Songs)
	assert.Empty(t, doc.Libraries)
	assert.Empty(t, doc.Playlists)
}

func TestWriteRead_RoundTrip(t *testing.T) {
	f, err := NewJSONFile(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)

	in := &catalog.Document{
		Songs: []catalog.Song{{
			ID:        "s1",
			LibraryID: "l1",
			FilePath:  "/m/a.mp3",
			Title:     "A Song",
			Duration:  123.4,
		}},
		Libraries: []catalog.Library{{ID: "l1", Name: "Music", Path: "/m"}},
	}
	require.NoError(t, f.Write(in))

	out, err := f.Read()
	require.NoError(t, err)
	require.Len(t, out.Songs, 1)
	assert.Equal(t, "s1", out.Songs[0].ID)
	assert.Equal(t, 123.4, out.Songs[0].Duration)
	require.Len(t, out.Libraries, 1)
	assert.Equal(t, "Music", out.Libraries[0].Name)
}

func TestWrite_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "db.json")

	f, err := NewJSONFile(path)
	require.NoError(t, err)
	require.NoError(t, f.Write(&catalog.Document{}))

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestWrite_LeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	f, err := NewJSONFile(filepath.Join(dir, "db.json"))
	require.NoError(t, err)
	require.NoError(t, f.Write(&catalog.Document{}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "db.json", entries[0].Name())
}

func TestRead_CorruptFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	f, err := NewJSONFile(path)
	require.NoError(t, err)

	_, err = f.Read()
	assert.Error(t, err)
}
