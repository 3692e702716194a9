// Package curve provides parametric curve evaluation and arc-length resampling.
//
// A Curve is a closed set of variants:
//
//   - Line: linear interpolation between two points
//   - Quadratic: quadratic Bezier with one control point
//   - Cubic: cubic Bezier with two control points
//   - CatmullRom: interpolating spline through an ordered point chain
//
// Every variant maps t in [0, 1] to a point. Evaluation does not allocate.
//
// # Resampling
//
// Resample turns a curve into points spaced evenly by distance travelled
// along the curve rather than by t, so the generated node chain has
// consistent segment lengths even where the curve bends sharply:
//
//	c := curve.Quadratic(geom.V(0, 0), geom.V(5, 10), geom.V(10, 0))
//	points := curve.Resample(c, 2.0)
//
// # Tangents
//
// PhantomStart/PhantomEnd and TangentControlPoint derive control points from
// the angle of an existing edge, so a new curve leaves or joins a junction
// along that edge's direction.
package curve
