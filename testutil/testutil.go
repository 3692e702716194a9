package testutil

import (
	"cmp"
	"math"
	"math/rand"
	"slices"
	"sync"

	"github.com/hupe1980/waygraph/geom"
)

// SearchResult represents a search result.
type SearchResult struct {
	ID       uint64
	Distance float64
}

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Point returns a random position inside [min, max).
func (r *RNG) Point(min, max geom.Vec2) geom.Vec2 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pointLocked(min, max)
}

func (r *RNG) pointLocked(min, max geom.Vec2) geom.Vec2 {
	return geom.V(
		min.X+r.rand.Float64()*(max.X-min.X),
		min.Y+r.rand.Float64()*(max.Y-min.Y),
	)
}

// UniformPositions generates num positions inside [min, max) keyed by ids 1..num.
func (r *RNG) UniformPositions(num int, min, max geom.Vec2) map[uint64]geom.Vec2 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[uint64]geom.Vec2, num)
	for i := range num {
		out[uint64(i+1)] = r.pointLocked(min, max)
	}
	return out
}

// GridPositions generates positions snapped to an integer grid of the given
// size, which produces many exact distance ties.
func (r *RNG) GridPositions(num, size int) map[uint64]geom.Vec2 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[uint64]geom.Vec2, num)
	for i := range num {
		out[uint64(i+1)] = geom.V(float64(r.rand.Intn(size)), float64(r.rand.Intn(size)))
	}
	return out
}

// ExactNearest returns the closest position by linear scan.
// Ties resolve to the lowest id.
func ExactNearest(q geom.Vec2, positions map[uint64]geom.Vec2) (SearchResult, bool) {
	var bestID uint64
	bestD2 := math.Inf(1)
	found := false
	for id, p := range positions {
		d2 := p.SquaredDistance(q)
		if !found || d2 < bestD2 || (d2 == bestD2 && id < bestID) {
			bestID, bestD2, found = id, d2, true
		}
	}
	return SearchResult{ID: bestID, Distance: math.Sqrt(bestD2)}, found
}

// ExactTopK returns the k closest positions by linear scan, ascending.
func ExactTopK(q geom.Vec2, positions map[uint64]geom.Vec2, k int) []SearchResult {
	all := make([]SearchResult, 0, len(positions))
	for id, p := range positions {
		all = append(all, SearchResult{ID: id, Distance: math.Sqrt(p.SquaredDistance(q))})
	}
	sortResults(all)
	if len(all) > k {
		all = all[:k]
	}
	return all
}

// ExactWithinRadius returns all positions within radius of q, ascending.
func ExactWithinRadius(q geom.Vec2, radius float64, positions map[uint64]geom.Vec2) []SearchResult {
	var out []SearchResult
	r2 := radius * radius
	for id, p := range positions {
		if d2 := p.SquaredDistance(q); d2 <= r2 {
			out = append(out, SearchResult{ID: id, Distance: math.Sqrt(d2)})
		}
	}
	sortResults(out)
	return out
}

// ExactWithinRect returns the ids of all positions inside the closed box, ascending.
func ExactWithinRect(min, max geom.Vec2, positions map[uint64]geom.Vec2) []uint64 {
	var out []uint64
	for id, p := range positions {
		if p.InRect(min, max) {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out
}

func sortResults(rs []SearchResult) {
	slices.SortFunc(rs, func(a, b SearchResult) int {
		if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
