package waygraph

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/hupe1980/waygraph/codec"
	"github.com/hupe1980/waygraph/geom"
	"github.com/hupe1980/waygraph/graph"
	"github.com/hupe1980/waygraph/route"
)

// Editor owns the current graph snapshot and applies edits to it. It is the
// single writer of its graph: edits are serialized, while snapshots returned
// by Snapshot may be read concurrently from any goroutine.
type Editor struct {
	mu      sync.RWMutex
	current *graph.Snapshot
	history *history
	chain   chain
	opts    options
}

// chain remembers the end of the last drawing so the next one can continue
// from it.
type chain struct {
	end     route.Anchor
	created []graph.NodeID
}

// Stats describes the editor state.
type Stats struct {
	Nodes      int
	Edges      int
	Markers    int
	Generation uint64
	UndoDepth  int
	RedoDepth  int
}

// New returns an editor on an empty graph.
func New(optFns ...Option) (*Editor, error) {
	return Open(nil, optFns...)
}

// Open returns an editor on snap. A nil snap starts with an empty graph.
func Open(snap *graph.Snapshot, optFns ...Option) (*Editor, error) {
	opts := applyOptions(optFns)
	if err := opts.validate(); err != nil {
		return nil, err
	}
	e := &Editor{
		history: newHistory(opts.historyLimit, opts.compression),
		opts:    opts,
	}
	if snap == nil {
		snap = graph.New(e.graphOptions()...).Freeze()
	}
	e.current = snap
	return e, nil
}

// Import returns an editor on a graph encoded with Export.
func Import(data []byte, optFns ...Option) (*Editor, error) {
	opts := applyOptions(optFns)
	snap, err := codec.Decode(data, graph.WithLogger(opts.logger.Logger))
	if err != nil {
		return nil, translateError(err)
	}
	return Open(snap, optFns...)
}

func (e *Editor) graphOptions() []graph.Option {
	return []graph.Option{graph.WithLogger(e.opts.logger.Logger)}
}

// Snapshot returns the current graph. The snapshot never changes; later edits
// produce new snapshots.
func (e *Editor) Snapshot() *graph.Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.current
}

// Stats returns counters of the current state.
func (e *Editor) Stats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	undo, redo := e.history.depth()
	return Stats{
		Nodes:      e.current.NodeCount(),
		Edges:      e.current.EdgeCount(),
		Markers:    len(e.current.Markers()),
		Generation: e.current.Generation(),
		UndoDepth:  undo,
		RedoDepth:  redo,
	}
}

// Resolve snaps pos to an existing node within the configured snap radius.
func (e *Editor) Resolve(pos geom.Vec2) route.Anchor {
	start := time.Now()
	a := route.Resolve(e.Snapshot(), pos, e.opts.snapRadius)
	e.opts.metricsCollector.RecordQuery(time.Since(start), a.Kind() == route.AnchorExisting)
	return a
}

// Stroke returns the default stroke: Regular edges resampled at the
// configured maximum segment length.
func (e *Editor) Stroke() route.Stroke {
	s := route.DefaultStroke()
	s.Segment.MaxLength = e.opts.maxSegmentLength
	return s
}

// Line returns a line tool between two resolved positions using the default
// stroke.
func (e *Editor) Line(from, to geom.Vec2) route.LineTool {
	return route.LineTool{Start: e.Resolve(from), End: e.Resolve(to), Stroke: e.Stroke()}
}

// ChainStart returns the anchor the next drawing continues from: the end of
// the last drawing, referring to the node that drawing created there.
func (e *Editor) ChainStart() (route.Anchor, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	end := e.chain.end
	switch end.Kind() {
	case route.AnchorExisting:
		return end, true
	case route.AnchorFree:
		if n := len(e.chain.created); n > 0 {
			return route.Existing(e.chain.created[n-1], end.Position()), true
		}
	}
	return route.Anchor{}, false
}

// Draw builds tool against the current snapshot and commits the result.
func (e *Editor) Draw(tool route.Tool) ([]graph.NodeID, error) {
	d, err := tool.Build(e.Snapshot())
	if err != nil {
		return nil, translateError(err)
	}
	ids, err := e.Commit(d)
	if err != nil {
		return nil, err
	}

	_, end := tool.Anchors()
	e.mu.Lock()
	e.chain = chain{end: end, created: ids}
	e.mu.Unlock()
	return ids, nil
}

// DrawAll builds the tools concurrently against the current snapshot, then
// commits their deltas in order. Points of later tools that land on nodes
// created by earlier ones are merged by a following Deduplicate.
func (e *Editor) DrawAll(ctx context.Context, tools []route.Tool) ([][]graph.NodeID, error) {
	deltas, err := route.BuildAll(ctx, e.Snapshot(), tools, 0)
	if err != nil {
		return nil, translateError(err)
	}
	out := make([][]graph.NodeID, 0, len(deltas))
	for _, d := range deltas {
		ids, err := e.Commit(d)
		if err != nil {
			return out, err
		}
		out = append(out, ids)
	}
	return out, nil
}

// Commit applies a delta built against any snapshot of this editor and
// returns the ids of the created nodes.
func (e *Editor) Commit(d graph.Delta) ([]graph.NodeID, error) {
	var ids []graph.NodeID
	err := e.update("commit", func(m *graph.Mutable) error {
		var err error
		ids, err = m.ApplyDelta(d)
		return err
	}, func(log *Logger, elapsed time.Duration, err error) {
		log.LogCommit(len(d.NewNodes), d.EdgeCount(), err)
		e.opts.metricsCollector.RecordCommit(len(d.NewNodes), d.EdgeCount(), elapsed, err)
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Update runs fn on a writer derived from the current snapshot. If fn
// returns an error nothing is published; otherwise the result becomes the
// current snapshot as one undo step.
func (e *Editor) Update(fn func(m *graph.Mutable) error) error {
	return e.update("update", fn, func(_ *Logger, elapsed time.Duration, err error) {
		e.opts.metricsCollector.RecordCommit(0, 0, elapsed, err)
	})
}

// Deduplicate merges nodes closer than the configured dedup epsilon.
func (e *Editor) Deduplicate() (graph.DedupResult, error) {
	var res graph.DedupResult
	err := e.update("dedup", func(m *graph.Mutable) error {
		res = m.Deduplicate(e.opts.dedupEpsilon)
		return nil
	}, func(log *Logger, elapsed time.Duration, _ error) {
		log.LogDedup(res.RemovedNodes, res.DuplicateGroups)
		e.opts.metricsCollector.RecordDedup(res.RemovedNodes, elapsed)
	})
	return res, err
}

// update publishes the result of fn as the next snapshot. done receives a
// logger tagged with the generation the edit produced, or the current one when
// fn failed.
func (e *Editor) update(op string, fn func(*graph.Mutable) error, done func(*Logger, time.Duration, error)) error {
	start := time.Now()
	e.mu.Lock()
	defer e.mu.Unlock()

	prev := e.current
	m := prev.Edit()
	if err := fn(m); err != nil {
		err = translateError(err)
		done(e.opts.logger.WithGeneration(prev.Generation()), time.Since(start), err)
		return err
	}
	next := m.Freeze()
	log := e.opts.logger.WithGeneration(next.Generation())

	if _, err := e.history.record(prev, next); err != nil {
		log.Warn("history not recorded", "op", op, "error", err)
	}
	e.current = next
	done(log, time.Since(start), nil)
	return nil
}

// Undo restores the state before the last edit.
func (e *Editor) Undo() error {
	return e.travel("undo", e.history.undoStep)
}

// Redo re-applies the last undone edit.
func (e *Editor) Redo() error {
	return e.travel("redo", e.history.redoStep)
}

func (e *Editor) travel(op string, step func(*graph.Snapshot, ...graph.Option) (*graph.Snapshot, error)) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap, err := step(e.current, e.graphOptions()...)
	undo, redo := e.history.depth()
	e.opts.logger.LogHistory(op, undo, redo, err)
	if err != nil {
		return err
	}
	e.current = snap
	e.chain = chain{}
	return nil
}

// Export encodes the current graph. Without options the blob uses
// codec.Default and zstd compression.
func (e *Editor) Export(opts ...codec.EncodeOption) ([]byte, error) {
	return codec.Encode(e.Snapshot(), opts...)
}

// Logger returns the editor's logger.
func (e *Editor) Logger() *slog.Logger {
	return e.opts.logger.Logger
}
