// Package store persists the catalog document as a JSON file.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cantabile/internal/catalog"
)

// JSONFile implements catalog.Backend over a single JSON file. Writes go
// through a temp file and rename so a crash mid-write never truncates the
// previous document.
type JSONFile struct {
	path string
}

// NewJSONFile creates a backend writing to path. The parent directory is
// created if needed.
func NewJSONFile(path string) (*JSONFile, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &JSONFile{path: path}, nil
}

// Path returns the backing file's location.
func (f *JSONFile) Path() string {
	return f.path
}

// Read loads the document. A file that does not exist yet yields an empty
// document.
func (f *JSONFile) Read() (*catalog.Document, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return &catalog.Document{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.path, err)
	}

	var doc catalog.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", f.path, err)
	}
	return &doc, nil
}

// Write persists the document atomically.
func (f *JSONFile) Write(doc *catalog.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", f.path, err)
	}
	return nil
}
