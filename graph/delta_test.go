package graph

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/hupe1980/waygraph/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDelta(t *testing.T) {
	var logs bytes.Buffer
	m := New(WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	a := m.NewNode(geom.V(0, 0), FlagRegular)
	b := m.NewNode(geom.V(30, 0), FlagRegular)

	d := Delta{
		NewNodes: []NewNode{
			{Position: geom.V(10, 0)},
			{Position: geom.V(20, 0)},
		},
		Internal: []InternalEdge{
			{From: 0, To: 1, Priority: PrioritySubPriority},
		},
		External: []ExternalEdge{
			{Slot: 0, Existing: a, Incoming: true, Priority: PrioritySubPriority},
			{Slot: 1, Existing: b, Priority: PrioritySubPriority},
			{Slot: 1, Existing: 77, Priority: PrioritySubPriority},
		},
	}

	ids, err := m.ApplyDelta(d)
	require.NoError(t, err)
	assert.Equal(t, []NodeID{3, 4}, ids)

	assert.True(t, m.HasEdge(a, 3))
	assert.True(t, m.HasEdge(3, 4))
	assert.True(t, m.HasEdge(4, b))
	assert.False(t, m.HasEdge(a, b))
	assert.Equal(t, 3, m.EdgeCount())

	// Every touched node only has SubPriority edges now.
	for _, id := range []NodeID{a, b, 3, 4} {
		n, _ := m.Node(id)
		assert.Equal(t, FlagSubPriority, n.Flag, "node %d", id)
	}

	assert.Contains(t, logs.String(), "external node missing")
}

func TestApplyDeltaInvalid(t *testing.T) {
	tests := []struct {
		name  string
		delta Delta
	}{
		{"InternalOutOfRange", Delta{NewNodes: []NewNode{{}}, Internal: []InternalEdge{{From: 0, To: 1}}}},
		{"InternalSelfLoop", Delta{NewNodes: []NewNode{{}}, Internal: []InternalEdge{{From: 0, To: 0}}}},
		{"ExternalOutOfRange", Delta{External: []ExternalEdge{{Slot: 0, Existing: 1}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := line(t, 1)
			ids, err := m.ApplyDelta(tt.delta)
			require.ErrorIs(t, err, ErrInvalidDelta)
			assert.Nil(t, ids)
			assert.Equal(t, 1, m.NodeCount())
		})
	}
}

func TestApplyEmptyDelta(t *testing.T) {
	m := line(t, 1)
	snap := m.Freeze()

	ids, err := m.ApplyDelta(Delta{})
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.Same(t, snap.Index(), m.Freeze().Index())
}
