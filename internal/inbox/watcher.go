// Package inbox tails a plain text file and enqueues every URL line appended
// to it, so other programs can feed the queue by writing to a file.
package inbox

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce coalesces bursts of writes into a single read
const DefaultDebounce = 100 * time.Millisecond

// Enqueuer receives batches of lines. Blank and comment lines are its concern.
type Enqueuer interface {
	EnqueueMany(lines []string, quality, format string) int
}

// SelectionFunc returns the quality and format applied to imported lines
type SelectionFunc func() (quality, format string)

// Watcher follows an inbox file
type Watcher struct {
	path      string
	sink      Enqueuer
	selection SelectionFunc
	watcher   *fsnotify.Watcher
	logger    zerolog.Logger

	debounceDelay time.Duration

	mu            sync.Mutex
	offset        int64
	partial       string
	current       os.FileInfo // file the offset belongs to
	debounceTimer *time.Timer
}

// NewWatcher creates a watcher for path. Content already in the file when
// Start runs is imported unless SkipExisting was called first.
func NewWatcher(path string, sink Enqueuer, selection SelectionFunc, logger zerolog.Logger) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		path:          path,
		sink:          sink,
		selection:     selection,
		watcher:       watcher,
		debounceDelay: DefaultDebounce,
		logger:        logger.With().Str("component", "inbox").Logger(),
	}, nil
}

// SkipExisting moves the read position to the current end of the file
func (w *Watcher) SkipExisting() error {
	info, err := os.Stat(w.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	w.mu.Lock()
	w.offset = info.Size()
	w.partial = ""
	w.current = info
	w.mu.Unlock()
	return nil
}

// Start imports pending content and then follows the file until ctx is done.
// It blocks; run it in its own goroutine.
func (w *Watcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.path)
	name := filepath.Base(w.path)

	// fsnotify watches directories so the file may be created or replaced later
	if err := w.watcher.Add(dir); err != nil {
		w.logger.Error().Err(err).Str("dir", dir).Msg("Failed to watch inbox directory")
		return err
	}

	w.logger.Info().Str("file", w.path).Msg("Started watching inbox")
	defer func() {
		w.mu.Lock()
		if w.debounceTimer != nil {
			w.debounceTimer.Stop()
		}
		w.mu.Unlock()
		if err := w.watcher.Close(); err != nil {
			w.logger.Warn().Err(err).Msg("Error closing watcher")
		}
		w.logger.Info().Msg("Stopped watching inbox")
	}()

	if _, err := w.Poll(); err != nil {
		w.logger.Warn().Err(err).Msg("Initial inbox read failed")
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.logger.Debug().Str("op", event.Op.String()).Msg("Inbox changed")
				w.schedulePoll()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("File watcher error")
		}
	}
}

func (w *Watcher) schedulePoll() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debounceDelay, func() {
		if _, err := w.Poll(); err != nil {
			w.logger.Error().Err(err).Msg("Failed to read inbox")
		}
	})
}

// Poll reads everything appended since the last call and enqueues complete
// lines. A file that shrank, or was replaced by another file, is read from the
// start.
// It returns the number of jobs enqueued.
func (w *Watcher) Poll() (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := os.Open(w.path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("open inbox: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat inbox: %w", err)
	}
	switch {
	case w.current != nil && !os.SameFile(w.current, info):
		w.logger.Info().Int64("offset", w.offset).Msg("Inbox replaced, rewinding")
		w.offset = 0
		w.partial = ""
	case info.Size() < w.offset:
		w.logger.Info().Int64("size", info.Size()).Int64("offset", w.offset).Msg("Inbox truncated, rewinding")
		w.offset = 0
		w.partial = ""
	}
	w.current = info
	if info.Size() == w.offset {
		return 0, nil
	}

	if _, err := f.Seek(w.offset, io.SeekStart); err != nil {
		return 0, fmt.Errorf("seek inbox: %w", err)
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return 0, fmt.Errorf("read inbox: %w", err)
	}
	w.offset += int64(len(data))

	text := w.partial + string(data)
	lastNL := strings.LastIndexByte(text, '\n')
	if lastNL < 0 {
		w.partial = text
		return 0, nil
	}
	w.partial = text[lastNL+1:]

	lines := strings.Split(strings.ReplaceAll(text[:lastNL], "\r", ""), "\n")
	quality, format := w.selection()
	added := w.sink.EnqueueMany(lines, quality, format)
	if added > 0 {
		w.logger.Info().Int("added", added).Msg("Imported URLs from inbox")
	}
	return added, nil
}

// Close releases the underlying watcher when Start was never run
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
