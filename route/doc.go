// Package route turns user input into graph deltas.
//
// A drawing operation runs in three steps:
//
//  1. Resolve classifies each endpoint as an existing node (within the snap
//     radius) or a free position.
//  2. A tool (LineTool, QuadraticTool, CubicTool, SplineTool) builds a
//     curve.Curve from the anchors and resamples it by arc length.
//  3. Assemble merges the resampled points with the existing graph and
//     returns a graph.Delta, which the caller commits with
//     graph.Mutable.ApplyDelta.
//
// Nothing in this package mutates a graph. All functions read an immutable
// graph.Snapshot and are safe for concurrent use.
//
// # Coincidence
//
// Interior points are matched against existing nodes with CoincidenceEpsilon,
// a tolerance far tighter than any snap radius. It only detects points that
// land exactly on an existing node, so a resampled chain never fuses with
// nearby but distinct geometry.
package route
