package route

import (
	"testing"

	"github.com/hupe1980/waygraph/geom"
	"github.com/hupe1980/waygraph/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleBetweenExistingNodes(t *testing.T) {
	snap := snapshot(t, geom.V(0, 0), geom.V(12, 0))
	a, b := Existing(1, geom.V(0, 0)), Existing(2, geom.V(12, 0))
	points := []geom.Vec2{{X: 0}, {X: 6}, {X: 12}}

	d := Assemble(points, a, b, graph.DirectionRegular, graph.PriorityRegular, snap)

	require.Len(t, d.NewNodes, 1)
	assert.Equal(t, geom.V(6, 0), d.NewNodes[0].Position)
	assert.Empty(t, d.Internal)
	assert.Equal(t, []graph.ExternalEdge{
		{Slot: 0, Existing: 1, Incoming: true},
		{Slot: 0, Existing: 2},
	}, d.External)

	m := snap.Edit()
	ids, err := m.ApplyDelta(d)
	require.NoError(t, err)
	require.Len(t, ids, 1)
	assert.True(t, m.HasEdge(1, ids[0]))
	assert.True(t, m.HasEdge(ids[0], 2))
	assert.False(t, m.HasEdge(1, 2))
	assert.False(t, m.HasEdge(2, 1))
}

func TestAssembleFreeEndpoints(t *testing.T) {
	points := []geom.Vec2{{X: 0}, {X: 6}, {X: 12}}
	d := Assemble(points, Free(points[0]), Free(points[2]), graph.DirectionDual, graph.PrioritySubPriority, graph.Empty())

	assert.Len(t, d.NewNodes, 3)
	assert.Empty(t, d.External)
	assert.Equal(t, []graph.InternalEdge{
		{From: 0, To: 1, Direction: graph.DirectionDual, Priority: graph.PrioritySubPriority},
		{From: 1, To: 2, Direction: graph.DirectionDual, Priority: graph.PrioritySubPriority},
	}, d.Internal)
}

func TestAssembleInteriorCoincidence(t *testing.T) {
	snap := snapshot(t, geom.V(12.005, 0), geom.V(6.5, 0))
	points := []geom.Vec2{{X: 0}, {X: 6}, {X: 12}, {X: 18}, {X: 24}}

	d := Assemble(points, Free(points[0]), Free(points[4]), graph.DirectionRegular, graph.PriorityRegular, snap)

	// (12,0) lies on node 1; (6,0) is near node 2 but not on it.
	assert.Len(t, d.NewNodes, 4)
	assert.Equal(t, []graph.InternalEdge{{From: 0, To: 1}, {From: 2, To: 3}}, d.Internal)
	assert.Equal(t, []graph.ExternalEdge{
		{Slot: 1, Existing: 1},
		{Slot: 2, Existing: 1, Incoming: true},
	}, d.External)
}

func TestAssembleNeverConnectsExistingPairs(t *testing.T) {
	snap := snapshot(t, geom.V(0, 0), geom.V(6, 0))
	points := []geom.Vec2{{X: 0}, {X: 6}}

	d := Assemble(points, Existing(1, points[0]), Existing(2, points[1]), graph.DirectionRegular, graph.PriorityRegular, snap)
	assert.True(t, d.IsEmpty())
}

func TestAssembleDegenerateInput(t *testing.T) {
	snap := snapshot(t, geom.V(0, 0))

	assert.True(t, Assemble(nil, Free(geom.Zero), Free(geom.Zero), 0, 0, snap).IsEmpty())

	single := Assemble([]geom.Vec2{{X: 5}}, Free(geom.V(5, 0)), Free(geom.V(5, 0)), 0, 0, snap)
	assert.Len(t, single.NewNodes, 1)
	assert.Equal(t, 0, single.EdgeCount())

	onAnchor := Assemble([]geom.Vec2{{X: 0}}, Existing(1, geom.Zero), Free(geom.Zero), 0, 0, snap)
	assert.True(t, onAnchor.IsEmpty())
}
