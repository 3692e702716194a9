package route

import (
	"context"
	"math"

	"github.com/hupe1980/waygraph/curve"
	"github.com/hupe1980/waygraph/geom"
	"github.com/hupe1980/waygraph/graph"
	"golang.org/x/sync/errgroup"
)

// Tool builds a curve between two anchors and turns it into a delta.
type Tool interface {
	// Curve returns the curve the tool draws against snap.
	Curve(snap *graph.Snapshot) (curve.Curve, error)
	// Build resamples the curve and assembles it against snap.
	Build(snap *graph.Snapshot) (graph.Delta, error)
	// Anchors returns the endpoints the tool draws between.
	Anchors() (start, end Anchor)
}

// Stroke holds the settings every tool shares.
type Stroke struct {
	Direction graph.Direction
	Priority  graph.Priority
	Segment   SegmentConfig
}

// DefaultStroke draws Regular edges subdivided by DefaultMaxSegmentLength.
func DefaultStroke() Stroke {
	return Stroke{Segment: DefaultSegmentConfig()}
}

// Tangent makes a curve end continue the edge to a connected neighbor of an
// existing anchor. The zero value disables it.
type Tangent struct {
	Neighbor graph.NodeID
	Enabled  bool
}

// TangentTo continues the edge between the anchor and neighbor.
func TangentTo(neighbor graph.NodeID) Tangent {
	return Tangent{Neighbor: neighbor, Enabled: true}
}

// angle returns the angle from the anchor towards the chosen neighbor. It
// reports false when the tangent is disabled, the anchor is free, or the
// neighbor is not connected to the anchor in snap.
func (t Tangent) angle(snap *graph.Snapshot, a Anchor) (float64, bool) {
	if !t.Enabled {
		return 0, false
	}
	id, ok := a.NodeID()
	if !ok {
		return 0, false
	}
	for _, nb := range snap.ConnectedNeighbors(id) {
		if nb.ID == t.Neighbor {
			return nb.Angle, true
		}
	}
	return 0, false
}

func checkAnchors(start, end Anchor) error {
	if !start.IsSet() || !end.IsSet() {
		return ErrMissingAnchor
	}
	return nil
}

// build resamples c and assembles the points against snap.
func build(snap *graph.Snapshot, c curve.Curve, start, end Anchor, s Stroke) (graph.Delta, error) {
	length := curve.ApproxLength(c, curve.LUTSamples)
	points := curve.Resample(c, s.Segment.Spacing(length))
	if len(points) < 2 {
		return graph.Delta{}, ErrTooFewPoints
	}
	return Assemble(points, start, end, s.Direction, s.Priority, snap), nil
}

// LineTool draws a straight line.
type LineTool struct {
	Start, End Anchor
	Stroke
}

// Curve implements Tool.
func (t LineTool) Curve(_ *graph.Snapshot) (curve.Curve, error) {
	if err := checkAnchors(t.Start, t.End); err != nil {
		return curve.Curve{}, err
	}
	return curve.Line(t.Start.Position(), t.End.Position()), nil
}

// Anchors implements Tool.
func (t LineTool) Anchors() (start, end Anchor) { return t.Start, t.End }

// Build implements Tool.
func (t LineTool) Build(snap *graph.Snapshot) (graph.Delta, error) {
	c, err := t.Curve(snap)
	if err != nil {
		return graph.Delta{}, err
	}
	return build(snap, c, t.Start, t.End, t.Stroke)
}

// QuadraticTool draws a quadratic Bezier curve with one control point.
type QuadraticTool struct {
	Start, End Anchor
	Control    geom.Vec2
	Stroke
}

// Curve implements Tool.
func (t QuadraticTool) Curve(_ *graph.Snapshot) (curve.Curve, error) {
	if err := checkAnchors(t.Start, t.End); err != nil {
		return curve.Curve{}, err
	}
	return curve.Quadratic(t.Start.Position(), t.Control, t.End.Position()), nil
}

// Anchors implements Tool.
func (t QuadraticTool) Anchors() (start, end Anchor) { return t.Start, t.End }

// Build implements Tool.
func (t QuadraticTool) Build(snap *graph.Snapshot) (graph.Delta, error) {
	c, err := t.Curve(snap)
	if err != nil {
		return graph.Delta{}, err
	}
	return build(snap, c, t.Start, t.End, t.Stroke)
}

// CubicTool draws a cubic Bezier curve. An enabled tangent replaces the
// control point on its side so the curve continues the chosen edge.
type CubicTool struct {
	Start, End               Anchor
	Control1, Control2       geom.Vec2
	StartTangent, EndTangent Tangent
	Stroke
}

// Curve implements Tool.
func (t CubicTool) Curve(snap *graph.Snapshot) (curve.Curve, error) {
	if err := checkAnchors(t.Start, t.End); err != nil {
		return curve.Curve{}, err
	}
	p0, p3 := t.Start.Position(), t.End.Position()
	c1, c2 := t.Control1, t.Control2
	if angle, ok := t.StartTangent.angle(snap, t.Start); ok {
		c1 = curve.TangentControlPoint(p0, angle, p3)
	}
	if angle, ok := t.EndTangent.angle(snap, t.End); ok {
		c2 = curve.TangentControlPoint(p3, angle, p0)
	}
	return curve.Cubic(p0, c1, c2, p3), nil
}

// Anchors implements Tool.
func (t CubicTool) Anchors() (start, end Anchor) { return t.Start, t.End }

// Build implements Tool.
func (t CubicTool) Build(snap *graph.Snapshot) (graph.Delta, error) {
	c, err := t.Curve(snap)
	if err != nil {
		return graph.Delta{}, err
	}
	return build(snap, c, t.Start, t.End, t.Stroke)
}

// SplineTool draws a Catmull-Rom spline through the anchors and the via
// points between them. Enabled tangents set the phantom points at the ends.
type SplineTool struct {
	Start, End               Anchor
	Via                      []geom.Vec2
	StartTangent, EndTangent Tangent
	Stroke
}

// Curve implements Tool.
func (t SplineTool) Curve(snap *graph.Snapshot) (curve.Curve, error) {
	if err := checkAnchors(t.Start, t.End); err != nil {
		return curve.Curve{}, err
	}
	points := make([]geom.Vec2, 0, len(t.Via)+2)
	points = append(points, t.Start.Position())
	points = append(points, t.Via...)
	points = append(points, t.End.Position())

	c := curve.CatmullRom(points)
	if c.Kind() != curve.KindCatmullRom {
		return c, nil
	}
	n := len(points)
	if angle, ok := t.StartTangent.angle(snap, t.Start); ok {
		// The incoming edge points from the neighbor into the anchor.
		c = c.WithStartPhantom(curve.PhantomStart(points[0], angle+math.Pi, points[1]))
	}
	if angle, ok := t.EndTangent.angle(snap, t.End); ok {
		c = c.WithEndPhantom(curve.PhantomEnd(points[n-1], angle, points[n-2]))
	}
	return c, nil
}

// Anchors implements Tool.
func (t SplineTool) Anchors() (start, end Anchor) { return t.Start, t.End }

// Build implements Tool.
func (t SplineTool) Build(snap *graph.Snapshot) (graph.Delta, error) {
	c, err := t.Curve(snap)
	if err != nil {
		return graph.Delta{}, err
	}
	return build(snap, c, t.Start, t.End, t.Stroke)
}

// BuildAll builds every tool against the same snapshot concurrently, with at
// most limit builds in flight (limit <= 0 means no limit). The deltas are
// returned in tool order.
func BuildAll(ctx context.Context, snap *graph.Snapshot, tools []Tool, limit int) ([]graph.Delta, error) {
	deltas := make([]graph.Delta, len(tools))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, tool := range tools {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			d, err := tool.Build(snap)
			if err != nil {
				return err
			}
			deltas[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return deltas, nil
}
