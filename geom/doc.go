// Package geom provides the 2D vector math shared by the spatial index, the
// curve evaluators and the graph.
//
// # Coordinate System
//
// Positions are top-down world coordinates: +X points east and +Y points
// south. Angles are in radians, measured with math.Atan2(dy, dx).
//
// # Usage
//
//	a := geom.V(0, 0)
//	b := geom.V(12, 0)
//	mid := a.Lerp(b, 0.5)
//	d := a.Distance(b)
package geom
