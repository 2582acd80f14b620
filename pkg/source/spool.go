package source

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/arthur-debert/reactor/pkg/errors"
	"github.com/arthur-debert/reactor/pkg/logging"
	"github.com/arthur-debert/reactor/pkg/types"
)

// spoolEvent is the on-disk shape of one spooled event file.
type spoolEvent struct {
	Tag  string                 `json:"tag"`
	Data map[string]interface{} `json:"data"`
}

// SpoolSource emits an event for every JSON file dropped into a spool
// directory. Files present at startup are drained first; consumed files
// are removed. Only files with a .json extension are considered, so
// writers can stage under a temporary name and rename into place.
type SpoolSource struct {
	dir string

	stopOnce sync.Once
	stop     chan struct{}
}

// NewSpoolSource creates a SpoolSource over the given directory,
// creating it if needed.
func NewSpoolSource(dir string) (*SpoolSource, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrSourceInit, "failed to create spool directory %s", dir)
	}
	return &SpoolSource{
		dir:  dir,
		stop: make(chan struct{}),
	}, nil
}

// Name identifies the source in diagnostics
func (s *SpoolSource) Name() string {
	return "spool:" + s.dir
}

// Start watches the spool directory and emits events until the context
// is cancelled or Stop is called.
func (s *SpoolSource) Start(ctx context.Context, events chan<- types.Event) error {
	logger := logging.GetLogger("source.spool")

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrapf(err, errors.ErrSourceInit, "failed to create spool watcher")
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close spool watcher")
		}
	}()

	if err := watcher.Add(s.dir); err != nil {
		return errors.Wrapf(err, errors.ErrSourceInit, "failed to watch spool directory %s", s.dir)
	}

	logger.Info().Str("dir", s.dir).Msg("watching spool directory")

	// Drain files that were spooled before the watch started
	s.drain(ctx, events)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.stop:
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error().Err(err).Msg("spool watcher error")
		case fsEvent, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !fsEvent.Op.Has(fsnotify.Create) && !fsEvent.Op.Has(fsnotify.Rename) {
				continue
			}
			s.consume(ctx, fsEvent.Name, events)
		}
	}
}

// Stop asks Start to return.
func (s *SpoolSource) Stop() error {
	s.stopOnce.Do(func() { close(s.stop) })
	return nil
}

// drain consumes every event file already present in the spool.
func (s *SpoolSource) drain(ctx context.Context, events chan<- types.Event) {
	logger := logging.GetLogger("source.spool")

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		logger.Error().Err(err).Str("dir", s.dir).Msg("failed to read spool directory")
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		s.consume(ctx, filepath.Join(s.dir, entry.Name()), events)
	}
}

// consume decodes one spooled file, emits its event and removes the
// file. A malformed file is removed with a diagnostic so it cannot jam
// the spool.
func (s *SpoolSource) consume(ctx context.Context, path string, events chan<- types.Event) {
	logger := logging.GetLogger("source.spool")

	if !strings.EqualFold(filepath.Ext(path), ".json") {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		// Create events can race with the writer removing/renaming
		if !os.IsNotExist(err) {
			logger.Error().Err(err).Str("file", path).Msg("failed to read spooled event")
		}
		return
	}

	var spooled spoolEvent
	if err := json.Unmarshal(data, &spooled); err != nil || spooled.Tag == "" {
		logger.Error().Err(err).Str("file", path).Msg("discarding malformed spooled event")
		s.remove(path)
		return
	}

	evt := types.NewEvent(spooled.Tag, spooled.Data)
	select {
	case events <- evt:
		s.remove(path)
		logger.Debug().Str("tag", evt.Tag).Str("file", path).Msg("emitted spooled event")
	case <-ctx.Done():
	case <-s.stop:
	}
}

func (s *SpoolSource) remove(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger := logging.GetLogger("source.spool")
		logger.Warn().Err(err).Str("file", path).Msg("failed to remove spooled event")
	}
}
