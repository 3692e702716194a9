package testutil

import (
	"testing"

	"github.com/hupe1980/waygraph/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniformPositions(t *testing.T) {
	rng := NewRNG(4711)

	pos := rng.UniformPositions(64, geom.V(-10, -10), geom.V(10, 10))

	assert.Len(t, pos, 64)
	for id, p := range pos {
		assert.GreaterOrEqual(t, id, uint64(1))
		assert.True(t, p.InRect(geom.V(-10, -10), geom.V(10, 10)))
	}
}

func TestReset(t *testing.T) {
	rng := NewRNG(42)
	a := rng.Float64()
	rng.Reset()
	assert.Equal(t, a, rng.Float64())
	assert.Equal(t, int64(42), rng.Seed())
}

func TestExactHelpers(t *testing.T) {
	pos := map[uint64]geom.Vec2{
		1: geom.V(0, 0),
		2: geom.V(10, 0),
		3: geom.V(4, 3),
	}

	n, ok := ExactNearest(geom.V(3.9, 2.9), pos)
	require.True(t, ok)
	assert.Equal(t, uint64(3), n.ID)

	hits := ExactWithinRadius(geom.V(0, 0), 6, pos)
	require.Len(t, hits, 2)
	assert.Equal(t, uint64(1), hits[0].ID)
	assert.Equal(t, uint64(3), hits[1].ID)

	assert.Equal(t, []uint64{1, 3}, ExactWithinRect(geom.V(-1, -1), geom.V(5, 3.5), pos))

	top := ExactTopK(geom.V(10, 0), pos, 2)
	assert.Equal(t, []uint64{2, 3}, []uint64{top[0].ID, top[1].ID})

	_, ok = ExactNearest(geom.V(0, 0), nil)
	assert.False(t, ok)
}
