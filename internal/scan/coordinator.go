package scan

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"cantabile/internal/catalog"
)

var (
	// ErrAlreadyScanning rejects a scan start while one is active.
	ErrAlreadyScanning = errors.New("a scan is already running")

	// ErrInvalidLibrary marks a scan request for an unknown library.
	ErrInvalidLibrary = errors.New("invalid library")

	// ErrPathUnreachable marks a library whose root path cannot be read.
	ErrPathUnreachable = errors.New("library path unreachable")

	// ErrTimeout marks a scan that exceeded the session timeout.
	ErrTimeout = errors.New("scan timed out")
)

const (
	defaultTimeout = time.Hour

	// How long a canceled worker gets to stop cooperatively before the
	// session is abandoned. Goroutines cannot be killed; an abandoned
	// worker keeps running against a dead session and its remaining
	// events are discarded.
	defaultGrace = 3 * time.Second
)

// Result is the terminal outcome of a scan.
type Result struct {
	Added    int
	Updated  int
	Total    int
	Canceled bool
}

// Coordinator runs scans against the catalog, one at a time. Starting a
// scan while another is active is rejected, not queued.
type Coordinator struct {
	catalog *catalog.Catalog
	worker  *Worker
	log     zerolog.Logger

	timeout time.Duration
	grace   time.Duration

	mu     sync.Mutex
	active *session
}

type session struct {
	libraryID string
	cancel    context.CancelFunc
}

// NewCoordinator creates a scan coordinator. A timeout of 0 means the
// default of one hour.
func NewCoordinator(cat *catalog.Catalog, worker *Worker, log zerolog.Logger, timeout time.Duration) *Coordinator {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Coordinator{
		catalog: cat,
		worker:  worker,
		log:     log,
		timeout: timeout,
		grace:   defaultGrace,
	}
}

// Scanning reports whether a session is active.
func (c *Coordinator) Scanning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active != nil
}

// Cancel requests cooperative cancellation of the active scan. Returns
// false when no scan is running. The session reaches a terminal state
// within the grace window.
func (c *Coordinator) Cancel() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil {
		return false
	}
	c.log.Info().Str("library", c.active.libraryID).Msg("scan cancellation requested")
	c.active.cancel()
	return true
}

// Start runs a scan for the library and blocks until it reaches a
// terminal state. Progress events are delivered to onProgress in order;
// the terminal phase event is always last. A canceled scan returns a
// Result with Canceled set and no error.
func (c *Coordinator) Start(libraryID string, clearExisting bool, onProgress func(Progress)) (Result, error) {
	lib, err := c.catalog.LibraryByID(libraryID)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %s", ErrInvalidLibrary, libraryID)
	}
	if _, err := os.Stat(lib.Path); err != nil {
		return Result{}, fmt.Errorf("%w: %s", ErrPathUnreachable, lib.Path)
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)

	c.mu.Lock()
	if c.active != nil {
		c.mu.Unlock()
		cancel()
		return Result{}, ErrAlreadyScanning
	}
	c.active = &session{libraryID: libraryID, cancel: cancel}
	c.mu.Unlock()

	defer func() {
		cancel()
		c.mu.Lock()
		c.active = nil
		c.mu.Unlock()
	}()

	emit := func(p Progress) {
		if onProgress != nil {
			onProgress(p)
		}
	}

	// Destructive clear happens before the worker starts so a failed scan
	// cannot interleave old and new records. A crash between here and
	// reconciliation leaves the library empty; that window is accepted.
	if clearExisting {
		removed, err := c.catalog.ClearByLibrary(libraryID)
		if err != nil {
			return Result{}, err
		}
		c.log.Info().Str("library", libraryID).Int("removed", removed).Msg("cleared library before scan")
	}

	c.log.Info().Str("library", libraryID).Str("path", lib.Path).Msg("scan started")

	progressCh := make(chan Progress, 16)
	resultCh := make(chan workerResult, 1)
	go func() {
		songs, err := c.worker.Run(ctx, lib.Path, libraryID, progressCh)
		close(progressCh)
		resultCh <- workerResult{songs: songs, err: err}
	}()

	return c.superviseSession(ctx, libraryID, progressCh, resultCh, emit)
}

type workerResult struct {
	songs []catalog.Song
	err   error
}

// superviseSession relays progress until the worker terminates or the
// grace window after cancellation expires.
func (c *Coordinator) superviseSession(
	ctx context.Context,
	libraryID string,
	progressCh chan Progress,
	resultCh chan workerResult,
	emit func(Progress),
) (Result, error) {
	ctxDone := ctx.Done()
	var graceCh <-chan time.Time

	for {
		select {
		case p, ok := <-progressCh:
			if !ok {
				progressCh = nil
				continue
			}
			emit(p)

		case res := <-resultCh:
			// Drain any progress the worker emitted before finishing.
			if progressCh != nil {
				for p := range progressCh {
					emit(p)
				}
			}
			return c.finishSession(ctx, libraryID, res, emit)

		case <-ctxDone:
			ctxDone = nil
			graceCh = time.After(c.grace)

		case <-graceCh:
			// The worker did not stop in time. Abandon the session and
			// discard whatever it still produces.
			c.log.Warn().Str("library", libraryID).Msg("worker missed the grace window, abandoning session")
			go drainSession(progressCh, resultCh)
			return c.canceledOutcome(ctx, emit)
		}
	}
}

// finishSession turns the worker's result into the terminal outcome,
// reconciling on success.
func (c *Coordinator) finishSession(ctx context.Context, libraryID string, res workerResult, emit func(Progress)) (Result, error) {
	if res.err != nil {
		if errors.Is(res.err, context.Canceled) || errors.Is(res.err, context.DeadlineExceeded) {
			return c.canceledOutcome(ctx, emit)
		}
		emit(Progress{Phase: PhaseError, Message: res.err.Error()})
		c.log.Error().Str("library", libraryID).Err(res.err).Msg("scan failed")
		return Result{}, res.err
	}

	emit(Progress{Phase: PhaseSaving, Message: "saving scan results", Total: len(res.songs)})
	rec, err := c.catalog.Reconcile(libraryID, res.songs)
	if err != nil {
		emit(Progress{Phase: PhaseError, Message: err.Error()})
		return Result{}, err
	}

	out := Result{Added: rec.Added, Updated: rec.Updated, Total: len(res.songs)}
	emit(Progress{
		Phase:     PhaseComplete,
		Message:   fmt.Sprintf("scan complete: %d added, %d updated", out.Added, out.Updated),
		Processed: out.Total,
		Total:     out.Total,
		Percent:   100,
	})
	c.log.Info().Str("library", libraryID).Int("added", out.Added).Int("updated", out.Updated).Msg("scan complete")
	return out, nil
}

// canceledOutcome maps the context's failure mode: a timeout is an error,
// a user cancel is a normal result.
func (c *Coordinator) canceledOutcome(ctx context.Context, emit func(Progress)) (Result, error) {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		emit(Progress{Phase: PhaseError, Message: "scan timed out"})
		return Result{}, ErrTimeout
	}
	emit(Progress{Phase: PhaseCanceled, Message: "scan canceled"})
	return Result{Canceled: true}, nil
}

// drainSession consumes an abandoned worker's remaining events so it can
// finish and exit.
func drainSession(progressCh chan Progress, resultCh chan workerResult) {
	if progressCh != nil {
		for range progressCh {
		}
	}
	<-resultCh
}
