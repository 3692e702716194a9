package graph

import (
	"testing"

	"github.com/hupe1980/waygraph/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecalculateFlags(t *testing.T) {
	tests := []struct {
		name       string
		priorities []Priority
		initial    NodeFlag
		want       NodeFlag
	}{
		{"OnlySubPriority", []Priority{PrioritySubPriority, PrioritySubPriority}, FlagRegular, FlagSubPriority},
		{"Mixed", []Priority{PrioritySubPriority, PriorityRegular}, FlagSubPriority, FlagRegular},
		{"OnlyRegular", []Priority{PriorityRegular}, FlagSubPriority, FlagRegular},
		{"NoEdges", nil, FlagSubPriority, FlagRegular},
		{"WarningUntouched", []Priority{PrioritySubPriority}, FlagWarning, FlagWarning},
		{"ReservedUntouched", nil, FlagReserved, FlagReserved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			center := m.NewNode(geom.V(0, 0), tt.initial)
			for i, p := range tt.priorities {
				other := m.NewNode(geom.V(float64(i+1), 0), FlagRegular)
				// Alternate storage order so both endpoints are covered.
				if i%2 == 0 {
					require.NoError(t, m.AddEdge(center, other, DirectionRegular, p))
				} else {
					require.NoError(t, m.AddEdge(other, center, DirectionRegular, p))
				}
			}

			m.RecalculateFlags(center)

			n, _ := m.Node(center)
			assert.Equal(t, tt.want, n.Flag)
		})
	}
}

func TestRecalculateFlagsOnlyTouchesListedNodes(t *testing.T) {
	m := line(t, 3)
	require.NoError(t, m.AddEdge(1, 2, DirectionRegular, PrioritySubPriority))
	require.NoError(t, m.AddEdge(2, 3, DirectionRegular, PrioritySubPriority))

	changed := m.RecalculateFlags(2, 42)
	assert.Equal(t, 1, changed)

	n1, _ := m.Node(1)
	n2, _ := m.Node(2)
	assert.Equal(t, FlagRegular, n1.Flag)
	assert.Equal(t, FlagSubPriority, n2.Flag)

	assert.Equal(t, 0, m.RecalculateFlags(2))
	assert.Equal(t, 0, m.RecalculateFlags())
}

func BenchmarkRecalculateFlags(b *testing.B) {
	m := New()
	var ids []NodeID
	prev := m.NewNode(geom.V(0, 0), FlagRegular)
	for i := 1; i < 10000; i++ {
		id := m.NewNode(geom.V(float64(i), 0), FlagRegular)
		_ = m.AddEdge(prev, id, DirectionRegular, Priority(i%2))
		ids = append(ids, id)
		prev = id
	}

	for b.Loop() {
		m.RecalculateFlags(ids...)
	}
}
