package route

import (
	"context"
	"math"
	"testing"

	"github.com/hupe1980/waygraph/curve"
	"github.com/hupe1980/waygraph/geom"
	"github.com/hupe1980/waygraph/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineToolStraightLine(t *testing.T) {
	tool := LineTool{
		Start:  Free(geom.V(0, 0)),
		End:    Free(geom.V(12, 0)),
		Stroke: DefaultStroke(),
	}

	d, err := tool.Build(graph.Empty())
	require.NoError(t, err)

	require.Len(t, d.NewNodes, 3)
	want := []geom.Vec2{{X: 0}, {X: 6}, {X: 12}}
	for i, n := range d.NewNodes {
		assert.True(t, n.Position.ApproxEqual(want[i], 1e-9), "node %d at %v", i, n.Position)
	}
	assert.Len(t, d.Internal, 2)
	assert.Empty(t, d.External)
}

func TestLineToolByCount(t *testing.T) {
	stroke := DefaultStroke()
	stroke.Segment = SegmentConfig{NodeCount: 5, LastEdited: ByCount}
	tool := LineTool{Start: Free(geom.V(0, 0)), End: Free(geom.V(10, 0)), Stroke: stroke}

	d, err := tool.Build(graph.Empty())
	require.NoError(t, err)
	assert.Len(t, d.NewNodes, 5)
	assert.Len(t, d.Internal, 4)
}

func TestToolErrors(t *testing.T) {
	snap := graph.Empty()

	_, err := LineTool{End: Free(geom.V(1, 0)), Stroke: DefaultStroke()}.Build(snap)
	assert.ErrorIs(t, err, ErrMissingAnchor)

	_, err = LineTool{Start: Free(geom.V(1, 1)), End: Free(geom.V(1, 1)), Stroke: DefaultStroke()}.Build(snap)
	assert.ErrorIs(t, err, ErrTooFewPoints)

	_, err = SplineTool{Start: Free(geom.Zero), Stroke: DefaultStroke()}.Curve(snap)
	assert.ErrorIs(t, err, ErrMissingAnchor)
}

func TestQuadraticTool(t *testing.T) {
	tool := QuadraticTool{
		Start:   Free(geom.V(0, 0)),
		Control: geom.V(5, 10),
		End:     Free(geom.V(10, 0)),
		Stroke:  DefaultStroke(),
	}
	c, err := tool.Curve(graph.Empty())
	require.NoError(t, err)
	assert.Equal(t, geom.V(5, 5), c.Evaluate(0.5))

	d, err := tool.Build(graph.Empty())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(d.NewNodes), 3)
	assert.Equal(t, geom.V(0, 0), d.NewNodes[0].Position)
	assert.Equal(t, geom.V(10, 0), d.NewNodes[len(d.NewNodes)-1].Position)
}

// junction returns a graph with an edge 1->2 running east from (-10,0) to
// (0,0), plus an unconnected node 3 at (30,0).
func junction(t *testing.T) *graph.Snapshot {
	t.Helper()
	m := graph.New()
	a := m.NewNode(geom.V(-10, 0), graph.FlagRegular)
	b := m.NewNode(geom.V(0, 0), graph.FlagRegular)
	m.NewNode(geom.V(30, 0), graph.FlagRegular)
	require.NoError(t, m.AddEdge(a, b, graph.DirectionRegular, graph.PriorityRegular))
	return m.Freeze()
}

func TestCubicToolTangent(t *testing.T) {
	snap := junction(t)
	tool := CubicTool{
		Start:        Existing(2, geom.V(0, 0)),
		End:          Free(geom.V(30, 30)),
		Control1:     geom.V(0, 30),
		Control2:     geom.V(30, 0),
		StartTangent: TangentTo(1),
		Stroke:       DefaultStroke(),
	}

	c, err := tool.Curve(snap)
	require.NoError(t, err)
	cps := c.ControlPoints()
	require.Len(t, cps, 4)

	// The first control point continues the edge eastwards.
	assert.InDelta(t, 0, cps[1].Y, 1e-9)
	assert.Greater(t, cps[1].X, 0.0)
	assert.Equal(t, geom.V(30, 0), cps[2])

	// A neighbor that is not connected is ignored.
	tool.StartTangent = TangentTo(3)
	c, err = tool.Curve(snap)
	require.NoError(t, err)
	assert.Equal(t, geom.V(0, 30), c.ControlPoints()[1])
}

func TestSplineToolTangent(t *testing.T) {
	snap := junction(t)
	tool := SplineTool{
		Start:  Existing(2, geom.V(0, 0)),
		Via:    []geom.Vec2{{X: 10, Y: 10}},
		End:    Free(geom.V(20, 0)),
		Stroke: DefaultStroke(),
	}

	plain, err := tool.Curve(snap)
	require.NoError(t, err)

	tool.StartTangent = TangentTo(1)
	bent, err := tool.Curve(snap)
	require.NoError(t, err)

	// With the tangent the spline leaves the junction closer to the edge
	// direction (east) than the mirrored default does.
	step := 1e-3
	dirPlain := plain.Evaluate(step).Sub(plain.Evaluate(0))
	dirBent := bent.Evaluate(step).Sub(bent.Evaluate(0))
	assert.Less(t, math.Abs(math.Atan2(dirBent.Y, dirBent.X)), math.Abs(math.Atan2(dirPlain.Y, dirPlain.X)))

	d, err := tool.Build(snap)
	require.NoError(t, err)
	require.NotEmpty(t, d.External)
	assert.Equal(t, graph.ExternalEdge{Slot: 0, Existing: 2, Incoming: true}, d.External[0])
}

func TestSplineToolTwoPointsIsLine(t *testing.T) {
	tool := SplineTool{Start: Free(geom.V(0, 0)), End: Free(geom.V(5, 0)), Stroke: DefaultStroke()}
	c, err := tool.Curve(graph.Empty())
	require.NoError(t, err)
	assert.Equal(t, curve.KindLine, c.Kind())
}

func TestBuildAll(t *testing.T) {
	snap := junction(t)
	tools := []Tool{
		LineTool{Start: Existing(3, geom.V(30, 0)), End: Free(geom.V(42, 0)), Stroke: DefaultStroke()},
		QuadraticTool{Start: Free(geom.V(0, 50)), Control: geom.V(5, 60), End: Free(geom.V(10, 50)), Stroke: DefaultStroke()},
		SplineTool{Start: Existing(2, geom.V(0, 0)), Via: []geom.Vec2{{X: 5, Y: -5}}, End: Free(geom.V(10, -10)), Stroke: DefaultStroke()},
	}

	deltas, err := BuildAll(context.Background(), snap, tools, 2)
	require.NoError(t, err)
	require.Len(t, deltas, 3)
	assert.Len(t, deltas[0].NewNodes, 2)
	assert.Equal(t, graph.ExternalEdge{Slot: 0, Existing: 3, Incoming: true}, deltas[0].External[0])

	_, err = BuildAll(context.Background(), snap, append(tools, LineTool{}), 0)
	assert.ErrorIs(t, err, ErrMissingAnchor)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = BuildAll(ctx, snap, tools, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
