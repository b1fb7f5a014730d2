// Package service wires the usage recorder, the reorder engine, the tree
// store and the event stream into the operations the CLI, HTTP API and MCP
// server expose.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/papercomputeco/marksort/pkg/bookmark"
	"github.com/papercomputeco/marksort/pkg/eventstream"
	"github.com/papercomputeco/marksort/pkg/kv"
	"github.com/papercomputeco/marksort/pkg/reorder"
	"github.com/papercomputeco/marksort/pkg/treestore"
	"github.com/papercomputeco/marksort/pkg/usage"
	"github.com/papercomputeco/marksort/pkg/visit"
	"github.com/papercomputeco/marksort/pkg/worker"
)

// SourceAPI tags visits submitted through RecordVisit.
const SourceAPI = "api"

// Config is the configuration for a Service.
type Config struct {
	// KV holds the usage table.
	KV kv.Driver

	// Tree is the live bookmark hierarchy.
	Tree treestore.Store

	// Publisher receives reorder and visit events. Optional.
	Publisher eventstream.Publisher

	// Workers is the number of visit workers. Zero uses the pool default.
	Workers uint

	// QueueSize is the visit queue capacity. Zero uses the pool default.
	QueueSize uint

	Logger *slog.Logger
}

// Service runs reorder passes and records visits.
type Service struct {
	kv        kv.Driver
	tree      treestore.Store
	publisher eventstream.Publisher
	recorder  *usage.Recorder
	pool      *worker.Pool
	engine    *reorder.Engine
	logger    *slog.Logger

	// passMu serializes reorder passes.
	passMu sync.Mutex
}

// New creates a Service and starts its visit workers.
func New(c Config) (*Service, error) {
	if c.KV == nil {
		return nil, errors.New("kv driver is required")
	}
	if c.Tree == nil {
		return nil, errors.New("tree store is required")
	}
	if c.Logger == nil {
		return nil, errors.New("logger is required")
	}

	recorder, err := usage.NewRecorder(usage.RecorderConfig{
		KV:     c.KV,
		Tree:   c.Tree,
		Logger: c.Logger.With("component", "usage"),
	})
	if err != nil {
		return nil, fmt.Errorf("creating usage recorder: %w", err)
	}

	pool, err := worker.NewPool(&worker.Config{
		Recorder:   recorder,
		Publisher:  c.Publisher,
		NumWorkers: c.Workers,
		QueueSize:  c.QueueSize,
		Logger:     c.Logger.With("component", "worker"),
	})
	if err != nil {
		return nil, fmt.Errorf("creating worker pool: %w", err)
	}

	return &Service{
		kv:        c.KV,
		tree:      c.Tree,
		publisher: c.Publisher,
		recorder:  recorder,
		pool:      pool,
		engine:    reorder.NewEngine(c.Tree, c.Logger.With("component", "reorder")),
		logger:    c.Logger,
	}, nil
}

// RunReorder performs one reorder pass with policy. Concurrent calls wait for
// the running pass to finish. The usage table is read once, before the tree
// is fetched.
func (s *Service) RunReorder(ctx context.Context, policy reorder.Policy) (*reorder.Report, error) {
	s.passMu.Lock()
	defer s.passMu.Unlock()

	started := time.Now()

	table, root, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	report := s.engine.Run(ctx, root, table, policy)

	s.logger.Info("reorder pass completed",
		"folders", report.Folders,
		"moves", len(report.Moves),
		"failed", len(report.Failed),
		"duration", time.Since(started),
	)

	if s.publisher != nil {
		event := eventstream.NewReorderCompletedEvent(policy, report, started)
		if err := s.publisher.PublishReorder(ctx, event); err != nil {
			s.logger.Warn("failed to publish reorder event", "event_id", event.EventID, "error", err)
		}
	}

	return report, nil
}

// PlanReorder computes the moves a pass with policy would issue without
// applying them.
func (s *Service) PlanReorder(ctx context.Context, policy reorder.Policy) (*reorder.Report, error) {
	s.passMu.Lock()
	defer s.passMu.Unlock()

	table, root, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return reorder.Plan(root, table, policy, s.logger.With("component", "reorder")), nil
}

// RecordVisit queues a visit to url for attribution and returns immediately.
// It reports false when the visit was dropped because the queue is full.
func (s *Service) RecordVisit(_ context.Context, url string) bool {
	return s.pool.Enqueue(visit.Visit{
		URL:       url,
		VisitedAt: time.Now().UTC(),
		Source:    SourceAPI,
	})
}

// RecordVisitSync attributes a visit to url immediately and returns the
// matched bookmark identities.
func (s *Service) RecordVisitSync(ctx context.Context, url string) []string {
	return s.recorder.Record(ctx, url)
}

// Consume feeds every visit from src into the worker pool until ctx is done.
func (s *Service) Consume(ctx context.Context, src visit.Source) error {
	return src.Run(ctx, func(v visit.Visit) {
		s.pool.Enqueue(v)
	})
}

// Stats returns the most used bookmarks. A limit of zero returns all.
func (s *Service) Stats(ctx context.Context, limit int) ([]usage.Entry, error) {
	table, err := usage.LoadTable(ctx, s.kv)
	if err != nil {
		return nil, fmt.Errorf("loading usage table: %w", err)
	}
	return table.Top(limit), nil
}

// Tree returns a snapshot of the bookmark hierarchy.
func (s *Service) Tree(ctx context.Context) (*bookmark.Node, error) {
	root, err := s.tree.FetchTree(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching bookmark tree: %w", err)
	}
	return root, nil
}

// RefreshIndex rebuilds the tracked-bookmark index after the tree changed.
func (s *Service) RefreshIndex(ctx context.Context) error {
	return s.recorder.Refresh(ctx)
}

// Close drains queued visits. The kv driver, tree store and publisher are
// owned by the caller.
func (s *Service) Close() {
	s.pool.Close()
}

func (s *Service) snapshot(ctx context.Context) (usage.Table, *bookmark.Node, error) {
	table, err := usage.LoadTable(ctx, s.kv)
	if err != nil {
		return nil, nil, fmt.Errorf("loading usage table: %w", err)
	}

	root, err := s.tree.FetchTree(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching bookmark tree: %w", err)
	}

	return table, root, nil
}
