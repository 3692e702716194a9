// Package testutil provides testing utilities for waygraph.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random positions and computing exact
// (brute force) spatial query results to compare indexes against.
//
// # Random Positions
//
//	rng := testutil.NewRNG(seed)
//	positions := rng.UniformPositions(1000, geom.V(-500, -500), geom.V(500, 500))
//
// # Exact Search (Ground Truth)
//
//	nearest, _ := testutil.ExactNearest(query, positions)
//	hits := testutil.ExactWithinRadius(query, radius, positions)
package testutil
