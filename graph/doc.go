// Package graph stores the waypoint graph: nodes, directed edges keyed by
// their ordered endpoint pair, and named markers.
//
// # Handles
//
// A graph is accessed through two handle types:
//
//   - Mutable is the single writer. It supports every edit operation but no
//     spatial queries, since its index may be stale.
//   - Snapshot is immutable. Its spatial index was built from exactly the
//     nodes it holds, so Nearest, WithinRadius and WithinRect are always
//     fresh. Snapshots are safe for concurrent readers.
//
// Mutable.Freeze turns the current state into a Snapshot. Snapshot.Edit starts
// a new writer that shares the snapshot's maps until its first write, at which
// point it copies them (one copy per generation).
//
// # Edges
//
// At most one edge exists per ordered pair (start, end). A Dual edge is a
// single record that is traversable both ways; switching it to another
// direction also removes a reverse record (end, start) if one is present.
// Reverse edges keep their storage order.
//
// # Consistency
//
// Removing a node purges its edges and markers. RecalculateFlags derives the
// Regular/SubPriority flag of nodes from their incident edges in a single pass,
// Deduplicate merges nodes that share a grid cell, and ApplyDelta commits the
// output of a route tool.
package graph
