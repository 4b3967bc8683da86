package scan

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"cantabile/internal/catalog"
	"cantabile/internal/tags"
)

const (
	// How many files are parsed concurrently per batch.
	defaultBatchSize = 20

	// A finding_files event is emitted every this many discovered files.
	findProgressEvery = 100
)

// SongParser turns one audio file into a song record.
type SongParser interface {
	ParseSong(path, libraryID string) (*catalog.Song, error)
}

// Worker performs one scan: directory traversal, then batched metadata
// extraction. Cancellation is cooperative, checked at traversal steps and
// batch boundaries but never mid-file.
type Worker struct {
	parser    SongParser
	log       zerolog.Logger
	batchSize int
}

// NewWorker creates a scan worker.
func NewWorker(parser SongParser, log zerolog.Logger) *Worker {
	return &Worker{
		parser:    parser,
		log:       log,
		batchSize: defaultBatchSize,
	}
}

// Run scans rootPath and returns the extracted song records. Progress
// events are sent on progress while the scan runs; the channel is not
// closed here. A canceled run returns the context's error; the terminal
// event for the session is the supervisor's to emit.
func (w *Worker) Run(ctx context.Context, rootPath, libraryID string, progress chan<- Progress) ([]catalog.Song, error) {
	if _, err := os.Stat(rootPath); err != nil {
		return nil, fmt.Errorf("scan root: %w", err)
	}

	progress <- Progress{Phase: PhaseFindingFiles}

	found, err := w.discover(ctx, rootPath, progress)
	if err != nil {
		return nil, err
	}

	return w.parseFiles(ctx, found, libraryID, progress)
}

// discover walks the tree collecting supported audio files. Unreadable
// directories and files are skipped with a warning; only cancellation
// aborts the walk.
func (w *Worker) discover(ctx context.Context, rootPath string, progress chan<- Progress) ([]string, error) {
	var found []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			w.log.Warn().Str("path", path).Err(walkErr).Msg("skipping unreadable path")
			return nil
		}
		if d.IsDir() || !tags.IsAudioFile(path) {
			return nil
		}

		found = append(found, path)
		if len(found)%findProgressEvery == 0 {
			progress <- Progress{Phase: PhaseFindingFiles, Processed: len(found)}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// parseFiles extracts metadata in fixed-size concurrent batches. Per-file
// failures drop the file from the result and never fail the scan.
func (w *Worker) parseFiles(ctx context.Context, found []string, libraryID string, progress chan<- Progress) ([]catalog.Song, error) {
	total := len(found)
	progress <- Progress{Phase: PhaseParsing, Processed: 0, Total: total}

	songs := make([]catalog.Song, 0, total)
	var mu sync.Mutex

	for start := 0; start < total; start += w.batchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		end := min(start+w.batchSize, total)
		g, gctx := errgroup.WithContext(ctx)
		for _, path := range found[start:end] {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				song, err := w.parser.ParseSong(path, libraryID)
				if err != nil {
					w.log.Warn().Str("path", path).Err(err).Msg("skipping unparsable file")
					return nil
				}
				mu.Lock()
				songs = append(songs, *song)
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		percent := 0
		if total > 0 {
			percent = end * 100 / total
		}
		progress <- Progress{Phase: PhaseParsing, Processed: end, Total: total, Percent: percent}
	}

	return songs, nil
}
