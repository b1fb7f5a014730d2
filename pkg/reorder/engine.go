package reorder

import (
	"context"
	"log/slog"

	"github.com/papercomputeco/marksort/pkg/bookmark"
	"github.com/papercomputeco/marksort/pkg/usage"
)

// Mover relocates a node to an index within its current parent, with the
// index interpreted after the node is removed from its old position.
type Mover interface {
	Move(ctx context.Context, id string, index int) error
}

// Engine walks a tree snapshot and brings each folder's children into
// descending usage order through a Mover.
//
// Engine does not guard against overlapping passes; callers that may start
// passes concurrently must serialize them.
type Engine struct {
	mover  Mover
	logger *slog.Logger
}

// NewEngine creates an Engine that applies moves through mover.
func NewEngine(mover Mover, logger *slog.Logger) *Engine {
	return &Engine{
		mover:  mover,
		logger: logger,
	}
}

// Run performs one pass over root, issuing moves one at a time and waiting
// for each to complete. root is treated as the reserved root: its direct
// children are reordered in the model but never moved, and its folder
// children are always descended into.
//
// Once started, a pass runs to completion. ctx is forwarded to the Mover and
// is not checked between moves. Rejected moves are logged and skipped.
func (e *Engine) Run(ctx context.Context, root *bookmark.Node, table usage.Table, policy Policy) *Report {
	w := &walker{
		ctx:    ctx,
		mover:  e.mover,
		logger: e.logger,
		policy: policy,
		scorer: newScorer(table),
		report: newReport(),
	}
	w.walk(root, true)
	return w.report
}

// Plan computes the moves a pass over root would issue without applying
// them. It assumes every move would succeed.
func Plan(root *bookmark.Node, table usage.Table, policy Policy, logger *slog.Logger) *Report {
	w := &walker{
		logger: logger,
		policy: policy,
		scorer: newScorer(table),
		report: newReport(),
	}
	w.walk(root, true)
	return w.report
}

type walker struct {
	ctx    context.Context
	mover  Mover
	logger *slog.Logger
	policy Policy
	scorer *scorer
	report *Report
}

func (w *walker) walk(folder *bookmark.Node, isRoot bool) {
	if folder == nil || !folder.IsFolder() {
		return
	}

	w.report.Folders++

	desired := desiredOrder(folder, w.policy, w.scorer)
	reconcile(idModel(folder.ChildIDs()), desired, func(id string, from, to int) {
		w.move(folder, isRoot, Move{ID: id, ParentID: folder.ID, From: from, To: to})
	}, func(id string) {
		w.logger.Warn("bookmark missing from folder order, skipping move",
			"bookmark", id, "folder", folder.ID)
		w.report.Missing = append(w.report.Missing, id)
	})

	if !isRoot && !w.policy.SortFolderContents {
		return
	}

	for _, child := range folder.Children {
		if child.IsFolder() {
			w.walk(child, false)
		}
	}
}

func (w *walker) move(folder *bookmark.Node, isRoot bool, m Move) {
	if isRoot {
		w.report.Suppressed = append(w.report.Suppressed, m)
		return
	}

	if w.mover == nil {
		w.report.Moves = append(w.report.Moves, m)
		return
	}

	if err := w.mover.Move(w.ctx, m.ID, m.To); err != nil {
		w.logger.Error("failed to move bookmark",
			"bookmark", m.ID, "folder", folder.ID, "index", m.To, "error", err)
		w.report.Failed = append(w.report.Failed, FailedMove{Move: m, Error: err.Error()})
		return
	}

	w.logger.Debug("moved bookmark", "bookmark", m.ID, "folder", folder.ID, "from", m.From, "to", m.To)
	w.report.Moves = append(w.report.Moves, m)
}

// reconcile walks desired position by position and calls move for every
// position whose modeled id differs, updating the model after each call.
// A desired id absent from the model is reported through missing and skipped.
func reconcile(model idModel, desired []string, move func(id string, from, to int), missing func(id string)) {
	for i, want := range desired {
		if i < len(model) && model[i] == want {
			continue
		}

		from := model.indexOf(want)
		if from < 0 {
			missing(want)
			continue
		}

		move(want, from, i)

		to := min(i, len(model)-1)
		model = model.moveTo(from, to)
	}
}
