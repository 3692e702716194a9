package spatial

import (
	"testing"

	"github.com/hupe1980/waygraph/geom"
	"github.com/hupe1980/waygraph/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePositions() map[uint64]geom.Vec2 {
	return map[uint64]geom.Vec2{
		1: geom.V(0, 0),
		2: geom.V(10, 0),
		3: geom.V(4, 3),
	}
}

func TestIndex(t *testing.T) {
	idx := FromPositions(samplePositions())

	t.Run("Nearest", func(t *testing.T) {
		m, ok := idx.Nearest(geom.V(3.9, 2.9))
		require.True(t, ok)
		assert.Equal(t, uint64(3), m.ID)
		assert.Less(t, m.Distance, 0.2)
	})

	t.Run("WithinRadius", func(t *testing.T) {
		matches := idx.WithinRadius(geom.V(0, 0), 6)
		require.Len(t, matches, 2)
		assert.Equal(t, uint64(1), matches[0].ID)
		assert.Equal(t, uint64(3), matches[1].ID)
		assert.InDelta(t, 5.0, matches[1].Distance, 1e-12)
	})

	t.Run("WithinRect", func(t *testing.T) {
		assert.Equal(t, []uint64{1, 3}, idx.WithinRect(geom.V(-1, -1), geom.V(5, 3.5)))
	})

	t.Run("WithinRectOnBoundary", func(t *testing.T) {
		assert.Equal(t, []uint64{1, 3}, idx.WithinRect(geom.V(0, 0), geom.V(4, 3)))
	})

	t.Run("NearestK", func(t *testing.T) {
		matches := idx.NearestK(geom.V(9, 0), 2)
		require.Len(t, matches, 2)
		assert.Equal(t, uint64(2), matches[0].ID)
		assert.Equal(t, uint64(3), matches[1].ID)
	})

	t.Run("Metadata", func(t *testing.T) {
		assert.Equal(t, 3, idx.Len())
		assert.False(t, idx.IsEmpty())
		assert.Equal(t, []uint64{1, 2, 3}, idx.IDs())
		p, ok := idx.Position(2)
		require.True(t, ok)
		assert.Equal(t, geom.V(10, 0), p)
	})
}

func TestIndexDegenerateQueries(t *testing.T) {
	idx := FromPositions(samplePositions())

	assert.Empty(t, idx.WithinRadius(geom.V(0, 0), 0))
	assert.Empty(t, idx.WithinRadius(geom.V(0, 0), -1))
	assert.Empty(t, idx.NearestK(geom.V(0, 0), 0))
	assert.Empty(t, idx.WithinRect(geom.V(5, 5), geom.V(-5, -5)))

	// A zero-area box still matches a point lying exactly on it.
	assert.Equal(t, []uint64{2}, idx.WithinRect(geom.V(10, 0), geom.V(10, 0)))
}

func TestEmptyIndex(t *testing.T) {
	for name, idx := range map[string]*Index{
		"Empty":         Empty(),
		"FromPositions": FromPositions(nil),
	} {
		t.Run(name, func(t *testing.T) {
			assert.True(t, idx.IsEmpty())
			assert.Equal(t, 0, idx.Len())

			_, ok := idx.Nearest(geom.V(0, 0))
			assert.False(t, ok)
			assert.Empty(t, idx.NearestK(geom.V(0, 0), 3))
			assert.Empty(t, idx.WithinRadius(geom.V(0, 0), 10))
			assert.Empty(t, idx.WithinRect(geom.V(-1, -1), geom.V(1, 1)))
		})
	}
}

func TestIndexMatchesBruteForce(t *testing.T) {
	rng := testutil.NewRNG(4711)

	for _, n := range []int{1, 2, 7, 100, 1000} {
		positions := rng.UniformPositions(n, geom.V(-500, -500), geom.V(500, 500))
		idx := FromPositions(positions)

		for range 50 {
			q := rng.Point(geom.V(-600, -600), geom.V(600, 600))

			got, ok := idx.Nearest(q)
			require.True(t, ok)
			want, _ := testutil.ExactNearest(q, positions)
			assert.Equal(t, want.ID, got.ID)
			assert.Equal(t, want.Distance, got.Distance)

			radius := rng.Float64() * 150
			hits := idx.WithinRadius(q, radius)
			exact := testutil.ExactWithinRadius(q, radius, positions)
			require.Len(t, hits, len(exact))
			for i := range hits {
				assert.Equal(t, exact[i].ID, hits[i].ID)
				if i > 0 {
					assert.LessOrEqual(t, hits[i-1].Distance, hits[i].Distance)
				}
			}

			a := rng.Point(geom.V(-500, -500), geom.V(500, 500))
			b := rng.Point(geom.V(-500, -500), geom.V(500, 500))
			lo := geom.V(min(a.X, b.X), min(a.Y, b.Y))
			hi := geom.V(max(a.X, b.X), max(a.Y, b.Y))
			assert.Equal(t, testutil.ExactWithinRect(lo, hi, positions), nonNil(idx.WithinRect(lo, hi)))

			k := 1 + rng.Intn(10)
			topK := idx.NearestK(q, k)
			exactK := testutil.ExactTopK(q, positions, k)
			require.Len(t, topK, len(exactK))
			for i := range topK {
				assert.Equal(t, exactK[i].ID, topK[i].ID)
			}
		}
	}
}

func TestIndexTiesResolveToLowestID(t *testing.T) {
	rng := testutil.NewRNG(7)
	positions := rng.GridPositions(400, 12)
	idx := FromPositions(positions)

	for range 200 {
		q := geom.V(float64(rng.Intn(14))-1, float64(rng.Intn(14))-1)
		got, ok := idx.Nearest(q)
		require.True(t, ok)
		want, _ := testutil.ExactNearest(q, positions)
		assert.Equal(t, want.ID, got.ID, "query %v", q)
	}
}

// nonNil normalizes a nil result so it compares equal to a nil brute-force slice.
func nonNil(ids []uint64) []uint64 {
	if len(ids) == 0 {
		return nil
	}
	return ids
}

func BenchmarkNearest(b *testing.B) {
	rng := testutil.NewRNG(1)
	positions := rng.UniformPositions(100_000, geom.V(-5000, -5000), geom.V(5000, 5000))
	idx := FromPositions(positions)
	q := geom.V(12.5, -40.25)

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		_, _ = idx.Nearest(q)
	}
}
