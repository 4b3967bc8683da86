package catalog

import (
	"os"
)

// ReparseFunc re-reads an audio file into a fresh song record. The
// caller wires this to the tag extractor; the catalog stays unaware of
// how records are produced.
type ReparseFunc func(path, libraryID string) (*Song, error)

// ValidateResult summarizes a catalog validation pass.
type ValidateResult struct {
	Checked int
	Missing int
	Updated int
}

// Validate walks the catalog and checks every song's file on disk. Songs
// whose file has disappeared are removed. Songs whose file has a
// modification time differing from the stored record are re-extracted
// through reparse, keeping their id and play count; with a nil reparse
// they are counted but left untouched.
func (c *Catalog) Validate(reparse ReparseFunc) (ValidateResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var res ValidateResult
	changed := false
	kept := c.doc.Songs[:0]
	for i := range c.doc.Songs {
		s := c.doc.Songs[i]
		res.Checked++

		info, err := os.Stat(s.FilePath)
		if err != nil {
			res.Missing++
			changed = true
			c.log.Warn().Str("path", s.FilePath).Msg("song file missing, dropping from catalog")
			continue
		}
		if info.ModTime().UnixMilli() != s.ModifiedAt {
			if reparse == nil {
				res.Updated++
			} else if fresh, err := reparse(s.FilePath, s.LibraryID); err != nil {
				c.log.Warn().Str("path", s.FilePath).Err(err).Msg("re-extraction failed, keeping stored record")
			} else {
				fresh.ID = s.ID
				fresh.PlayCount = s.PlayCount
				s = *fresh
				res.Updated++
				changed = true
			}
		}
		kept = append(kept, s)
	}
	c.doc.Songs = kept

	if changed {
		c.rebuildIndicesLocked()
		if err := c.persistLocked(); err != nil {
			return ValidateResult{}, err
		}
	}
	return res, nil
}
