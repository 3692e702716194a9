// Package waygraph is the authoring core of a directed, prioritized waypoint
// graph consumed by an in-simulation routing agent.
//
// It turns continuous curve geometry (lines, quadratic and cubic Bezier
// curves, Catmull-Rom splines) into discrete nodes and edges, merges them into
// a large existing graph and keeps the graph consistent: unique ids, one edge
// per ordered node pair, per-node flags derived from incident edges and fast
// nearest-neighbor queries.
//
// # Quick Start
//
//	ed, _ := waygraph.New()
//	ids, _ := ed.Draw(ed.Line(geom.V(0, 0), geom.V(12, 0)))
//	fmt.Println(len(ids)) // 3 nodes, 6 units apart
//
// # Snapshots
//
// The Editor is the single writer of its graph. Every edit publishes a new
// immutable *graph.Snapshot that carries a fresh spatial index:
//
//	snap := ed.Snapshot()
//	match, ok := snap.Nearest(geom.V(5, 1))
//
// Snapshots are safe for concurrent readers and never observe later edits.
//
// # Snapping and Chaining
//
// Resolve snaps a cursor position to an existing node within the snap radius
// and returns a route.Anchor. ChainStart continues the next drawing from the
// end of the previous one:
//
//	start, _ := ed.ChainStart()
//	ed.Draw(route.LineTool{Start: start, End: ed.Resolve(p), Stroke: ed.Stroke()})
//
// # Batches
//
// DrawAll builds several tools concurrently against one snapshot and commits
// them in order. Update runs arbitrary edits on a *graph.Mutable as one step.
//
// # Undo and Redo
//
// Each edit that changes the graph is stored as a compressed snapshot blob
// (see package codec). Undo and Redo move through that history; WithHistory
// bounds it.
//
// # Configuration
//
// Functional options configure the editor, or load a TOML or YAML file:
//
//	cfg, _ := config.Load("waygraph.toml")
//	ed, _ := waygraph.New(waygraph.WithConfig(cfg))
//
// # Errors
//
// Errors returned by the Editor wrap ErrNotFound, ErrInvalidInput or
// ErrInvalidConfig together with the underlying package error:
//
//	if errors.Is(err, waygraph.ErrNotFound) { ... }
package waygraph
