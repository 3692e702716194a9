package waygraph

import (
	"testing"

	"github.com/hupe1980/waygraph/codec"
	"github.com/hupe1980/waygraph/geom"
	"github.com/hupe1980/waygraph/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapWith(t *testing.T, positions ...geom.Vec2) *graph.Snapshot {
	t.Helper()
	m := graph.New()
	for _, p := range positions {
		m.NewNode(p, graph.FlagRegular)
	}
	return m.Freeze()
}

func TestHistory(t *testing.T) {
	for _, c := range []codec.Compression{codec.CompressionNone, codec.CompressionLZ4, codec.CompressionZSTD} {
		t.Run(c.String(), func(t *testing.T) {
			h := newHistory(10, c)
			s0 := snapWith(t)
			s1 := snapWith(t, geom.V(1, 1))

			ok, err := h.record(s0, s1)
			require.NoError(t, err)
			assert.True(t, ok)

			restored, err := h.undoStep(s1)
			require.NoError(t, err)
			assert.Equal(t, 0, restored.NodeCount())

			undo, redo := h.depth()
			assert.Equal(t, 0, undo)
			assert.Equal(t, 1, redo)

			again, err := h.redoStep(restored)
			require.NoError(t, err)
			assert.Equal(t, s1.Nodes(), again.Nodes())
		})
	}
}

func TestHistorySkipsEqualSnapshots(t *testing.T) {
	h := newHistory(10, codec.CompressionLZ4)
	a := snapWith(t, geom.V(1, 1))
	b := snapWith(t, geom.V(1, 1))

	ok, err := h.record(a, b)
	require.NoError(t, err)
	assert.False(t, ok)

	undo, _ := h.depth()
	assert.Zero(t, undo)
}

func TestHistoryTrim(t *testing.T) {
	h := newHistory(2, codec.CompressionNone)
	prev := snapWith(t)
	for i := range 5 {
		pts := make([]geom.Vec2, i+1)
		next := snapWith(t, pts...)
		_, err := h.record(prev, next)
		require.NoError(t, err)
		prev = next
	}
	undo, _ := h.depth()
	assert.Equal(t, 2, undo)

	_, err := h.undoStep(prev)
	require.NoError(t, err)
	restored, err := h.undoStep(prev)
	require.NoError(t, err)
	assert.Equal(t, 3, restored.NodeCount())
}
