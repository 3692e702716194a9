package curve

import (
	"math"

	"github.com/hupe1980/waygraph/geom"
)

// PhantomStart returns the left flank for the first Catmull-Rom segment that
// makes the chain leave anchor in continuation of an existing edge.
//
// angle is the direction of the neighboring edge pointing toward anchor; the
// phantom sits behind anchor on that edge, at the distance between anchor and
// the adjacent chain point (at least 1).
func PhantomStart(anchor geom.Vec2, angle float64, adjacent geom.Vec2) geom.Vec2 {
	dist := math.Max(anchor.Distance(adjacent), 1)
	return anchor.Add(geom.FromAngle(angle + math.Pi).Scale(dist))
}

// PhantomEnd is the end-side counterpart of PhantomStart. The direction is not
// reversed, so the chain arrives at anchor aligned with the edge.
func PhantomEnd(anchor geom.Vec2, angle float64, adjacent geom.Vec2) geom.Vec2 {
	dist := math.Max(anchor.Distance(adjacent), 1)
	return anchor.Add(geom.FromAngle(angle).Scale(dist))
}

// TangentControlPoint places a Bezier control point one third of the chord
// length away from anchor, on the side opposite the neighbor at neighborAngle
// (the angle from anchor toward the neighbor). The curve then passes through
// the junction in line with the neighbor's edge, on either end of the curve.
func TangentControlPoint(anchor geom.Vec2, neighborAngle float64, other geom.Vec2) geom.Vec2 {
	dist := anchor.Distance(other) / 3
	return anchor.Add(geom.FromAngle(neighborAngle + math.Pi).Scale(dist))
}
