// Package spatial provides an immutable 2D point index over node positions.
//
// The index is a balanced kd-tree built once from a snapshot of positions and
// never patched incrementally. Callers rebuild it wholesale after a batch of
// mutations; the graph package does this in Mutable.Freeze.
//
// # Queries
//
//   - Nearest: exact Euclidean nearest neighbor (ties resolve to the lowest id)
//   - NearestK: the k closest points, ascending
//   - WithinRadius: all points within a radius, ascending by distance
//   - WithinRect: all points inside a closed axis-aligned box
//
// Queries on an empty index return empty results, never errors.
//
// # Concurrency
//
// An Index is immutable after construction and safe for concurrent readers.
package spatial
