// Package logtail follows a newline-delimited visit log and emits every line
// appended to it.
package logtail

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/papercomputeco/marksort/pkg/utils"
	"github.com/papercomputeco/marksort/pkg/visit"
)

const (
	sourceName = "logtail"

	// maxLoggedLine bounds how much of a malformed line is logged.
	maxLoggedLine = 120
)

// Config configures a log tail source.
type Config struct {
	// Path is the visit log. Each line is a JSON visit object or a bare URL.
	Path string

	// FromStart replays lines already in the file instead of starting at
	// its current end.
	FromStart bool

	Logger *slog.Logger
}

// Source tails a visit log file.
type Source struct {
	path      string
	fromStart bool
	logger    *slog.Logger
}

// NewSource creates a Source. The file is opened when Run starts.
func NewSource(c Config) (*Source, error) {
	if c.Path == "" {
		return nil, errors.New("visit log path is required")
	}
	if c.Logger == nil {
		return nil, errors.New("logger is required")
	}

	return &Source{path: c.Path, fromStart: c.FromStart, logger: c.Logger}, nil
}

// Run delivers a visit for every complete line appended to the file until
// ctx is done. If the file is replaced (log rotation), the new file is read
// from its start.
func (s *Source) Run(ctx context.Context, h visit.Handler) error {
	file, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("opening visit log: %w", err)
	}
	defer func() { file.Close() }()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating visit log watcher: %w", err)
	}
	defer watcher.Close()

	if !s.fromStart {
		if _, err := file.Seek(0, io.SeekEnd); err != nil {
			return fmt.Errorf("seek visit log: %w", err)
		}
	}

	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("watching visit log dir: %w", err)
	}

	var pending []byte
	buf := make([]byte, 4096)
	readAvailable := func() error {
		for {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			n, err := file.Read(buf)
			if n > 0 {
				pending = append(pending, buf[:n]...)
				pending = s.emitLines(pending, h)
			}
			if err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}
				return err
			}
		}
	}

	if err := readAvailable(); err != nil {
		return err
	}

	target := filepath.Clean(s.path)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-watcher.Events:
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				reopened, err := os.Open(s.path)
				if err != nil {
					s.logger.Warn("failed to reopen rotated visit log", "path", s.path, "error", err)
					continue
				}
				file.Close()
				file = reopened
				pending = nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := readAvailable(); err != nil {
				return err
			}
		case err := <-watcher.Errors:
			return fmt.Errorf("visit log watcher error: %w", err)
		}
	}
}

// Close is a no-op; Run owns the file handle.
func (s *Source) Close() error {
	return nil
}

// emitLines delivers every complete line in data and returns the trailing
// partial line.
func (s *Source) emitLines(data []byte, h visit.Handler) []byte {
	for {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			return data
		}

		line := data[:i]
		data = data[i+1:]
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		v, err := visit.Parse(line, sourceName)
		if err != nil {
			s.logger.Warn("skipping malformed visit log line",
				"path", s.path, "line", utils.Truncate(string(line), maxLoggedLine), "error", err)
			continue
		}
		h(v)
	}
}
