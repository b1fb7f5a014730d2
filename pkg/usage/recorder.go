package usage

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/papercomputeco/marksort/pkg/bookmark"
	"github.com/papercomputeco/marksort/pkg/kv"
)

// TreeFetcher supplies the tracked-leaf set as a tree snapshot.
type TreeFetcher interface {
	FetchTree(ctx context.Context) (*bookmark.Node, error)
}

// RecorderConfig is the configuration for a Recorder.
type RecorderConfig struct {
	// KV persists the usage table under StatsKey.
	KV kv.Driver

	// Tree supplies the tracked leaves the index is built from.
	Tree TreeFetcher

	// Logger receives attribution and storage diagnostics.
	Logger *slog.Logger
}

// Recorder attributes visits to tracked bookmarks and bumps their counters.
type Recorder struct {
	kv     kv.Driver
	tree   TreeFetcher
	logger *slog.Logger

	// writeMu serializes the read-then-write of the usage table.
	writeMu sync.Mutex

	indexMu sync.RWMutex
	index   *Index
}

// NewRecorder creates a Recorder. The index is built lazily on the first
// visit, or eagerly with Refresh.
func NewRecorder(c RecorderConfig) (*Recorder, error) {
	if c.KV == nil {
		return nil, errors.New("kv driver is required")
	}
	if c.Tree == nil {
		return nil, errors.New("tree fetcher is required")
	}
	if c.Logger == nil {
		return nil, errors.New("logger is required")
	}

	return &Recorder{
		kv:     c.KV,
		tree:   c.Tree,
		logger: c.Logger,
	}, nil
}

// Refresh rebuilds the tracked-leaf index from a fresh tree snapshot.
func (r *Recorder) Refresh(ctx context.Context) error {
	root, err := r.tree.FetchTree(ctx)
	if err != nil {
		return err
	}

	idx := NewIndex(root)

	r.indexMu.Lock()
	r.index = idx
	r.indexMu.Unlock()

	r.logger.Debug("tracked bookmark index rebuilt", "identities", idx.Len())
	return nil
}

// Record attributes a visit to every tracked identity it matches and
// increments each of their counters by one. It returns the matched
// identities. Malformed URLs and storage failures are logged, never returned.
func (r *Recorder) Record(ctx context.Context, visited string) []string {
	idx := r.currentIndex(ctx)
	if idx == nil {
		return nil
	}

	matched := idx.Match(visited)
	if len(matched) == 0 {
		r.logger.Debug("visit matched no bookmarks", "url", visited)
		return nil
	}

	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	table, err := LoadTable(ctx, r.kv)
	if err != nil {
		r.logger.Error("failed to load usage table", "url", visited, "error", err)
		return nil
	}

	for _, identity := range matched {
		table[identity]++
	}

	if err := SaveTable(ctx, r.kv, table); err != nil {
		r.logger.Error("failed to save usage table", "url", visited, "error", err)
		return nil
	}

	for _, identity := range matched {
		r.logger.Info("updated bookmark count", "bookmark", identity, "count", table[identity])
	}

	return matched
}

func (r *Recorder) currentIndex(ctx context.Context) *Index {
	r.indexMu.RLock()
	idx := r.index
	r.indexMu.RUnlock()

	if idx != nil {
		return idx
	}

	if err := r.Refresh(ctx); err != nil {
		r.logger.Error("failed to build bookmark index", "error", err)
		return nil
	}

	r.indexMu.RLock()
	defer r.indexMu.RUnlock()
	return r.index
}
