package spatial

import (
	"cmp"
	"math"
	"slices"

	"github.com/hupe1980/waygraph/geom"
	"github.com/hupe1980/waygraph/internal/queue"
)

// Match is the result of a distance query.
type Match struct {
	// ID is the id of the matched point.
	ID uint64
	// Distance is the Euclidean distance to the query position.
	Distance float64
}

// Index is a read-only kd-tree over a set of positions.
//
// The tree is implicit: for a range [lo, hi) of the tree arrays the splitting
// point is stored at (lo+hi)/2, the left subtree occupies [lo, mid) and the
// right subtree (mid, hi). The split axis alternates with depth, X first.
type Index struct {
	// tree holds positions in kd-tree order.
	tree []geom.Vec2
	// treeIDs holds the id for each entry of tree.
	treeIDs []uint64
	// ids is the ascending id list.
	ids []uint64
	// positions maps id to position.
	positions map[uint64]geom.Vec2
}

// Empty returns a valid index without points.
func Empty() *Index {
	return &Index{positions: map[uint64]geom.Vec2{}}
}

// FromPositions builds an index over all entries of positions.
func FromPositions(positions map[uint64]geom.Vec2) *Index {
	n := len(positions)
	idx := &Index{
		tree:      make([]geom.Vec2, 0, n),
		treeIDs:   make([]uint64, 0, n),
		ids:       make([]uint64, 0, n),
		positions: make(map[uint64]geom.Vec2, n),
	}
	for id, p := range positions {
		idx.ids = append(idx.ids, id)
		idx.positions[id] = p
	}
	slices.Sort(idx.ids)

	for _, id := range idx.ids {
		idx.tree = append(idx.tree, positions[id])
		idx.treeIDs = append(idx.treeIDs, id)
	}
	idx.build(0, n, 0)
	return idx
}

func (idx *Index) build(lo, hi, depth int) {
	if hi-lo <= 1 {
		return
	}
	axis := depth % 2
	order := make([]int, hi-lo)
	for i := range order {
		order[i] = lo + i
	}
	slices.SortFunc(order, func(a, b int) int {
		if c := cmp.Compare(coord(idx.tree[a], axis), coord(idx.tree[b], axis)); c != 0 {
			return c
		}
		return cmp.Compare(idx.treeIDs[a], idx.treeIDs[b])
	})

	pts := make([]geom.Vec2, len(order))
	ids := make([]uint64, len(order))
	for i, o := range order {
		pts[i] = idx.tree[o]
		ids[i] = idx.treeIDs[o]
	}
	copy(idx.tree[lo:hi], pts)
	copy(idx.treeIDs[lo:hi], ids)

	mid := (lo + hi) / 2
	idx.build(lo, mid, depth+1)
	idx.build(mid+1, hi, depth+1)
}

func coord(p geom.Vec2, axis int) float64 {
	if axis == 0 {
		return p.X
	}
	return p.Y
}

// Len returns the number of indexed points.
func (idx *Index) Len() int { return len(idx.ids) }

// IsEmpty reports whether the index holds no points.
func (idx *Index) IsEmpty() bool { return len(idx.ids) == 0 }

// IDs returns the ascending id list. The slice must not be modified.
func (idx *Index) IDs() []uint64 { return idx.ids }

// Position returns the indexed position of id.
func (idx *Index) Position(id uint64) (geom.Vec2, bool) {
	p, ok := idx.positions[id]
	return p, ok
}

// Nearest returns the point closest to q.
// Returns false if the index is empty.
func (idx *Index) Nearest(q geom.Vec2) (Match, bool) {
	if idx.IsEmpty() {
		return Match{}, false
	}
	best := nearestState{d2: math.Inf(1)}
	idx.nearest(0, len(idx.tree), 0, q, &best)
	return Match{ID: best.id, Distance: math.Sqrt(best.d2)}, true
}

type nearestState struct {
	id    uint64
	d2    float64
	found bool
}

func (idx *Index) nearest(lo, hi, depth int, q geom.Vec2, best *nearestState) {
	if lo >= hi {
		return
	}
	mid := (lo + hi) / 2
	p := idx.tree[mid]
	id := idx.treeIDs[mid]
	if d2 := p.SquaredDistance(q); !best.found || d2 < best.d2 || (d2 == best.d2 && id < best.id) {
		best.id, best.d2, best.found = id, d2, true
	}

	axis := depth % 2
	diff := coord(q, axis) - coord(p, axis)
	nearLo, nearHi, farLo, farHi := lo, mid, mid+1, hi
	if diff > 0 {
		nearLo, nearHi, farLo, farHi = mid+1, hi, lo, mid
	}
	idx.nearest(nearLo, nearHi, depth+1, q, best)
	// Equal distances must still be visited so the lowest id wins.
	if diff*diff <= best.d2 {
		idx.nearest(farLo, farHi, depth+1, q, best)
	}
}

// NearestK returns up to k points closest to q, ascending by distance.
func (idx *Index) NearestK(q geom.Vec2, k int) []Match {
	if idx.IsEmpty() || k <= 0 {
		return nil
	}
	pq := queue.NewMax(k)
	idx.nearestK(0, len(idx.tree), 0, q, k, pq)

	items := pq.Sorted()
	out := make([]Match, len(items))
	for i, it := range items {
		out[i] = Match{ID: it.ID, Distance: math.Sqrt(it.Distance)}
	}
	return out
}

func (idx *Index) nearestK(lo, hi, depth int, q geom.Vec2, k int, pq *queue.PriorityQueue) {
	if lo >= hi {
		return
	}
	mid := (lo + hi) / 2
	p := idx.tree[mid]
	pq.PushBounded(queue.Item{ID: idx.treeIDs[mid], Distance: p.SquaredDistance(q)}, k)

	axis := depth % 2
	diff := coord(q, axis) - coord(p, axis)
	nearLo, nearHi, farLo, farHi := lo, mid, mid+1, hi
	if diff > 0 {
		nearLo, nearHi, farLo, farHi = mid+1, hi, lo, mid
	}
	idx.nearestK(nearLo, nearHi, depth+1, q, k, pq)
	worst, _ := pq.Top()
	if pq.Len() < k || diff*diff <= worst.Distance {
		idx.nearestK(farLo, farHi, depth+1, q, k, pq)
	}
}

// WithinRadius returns all points within radius of q (inclusive), ascending
// by distance. A non-positive radius yields an empty result.
func (idx *Index) WithinRadius(q geom.Vec2, radius float64) []Match {
	if idx.IsEmpty() || !(radius > 0) {
		return nil
	}
	var hits []queue.Item
	idx.within(0, len(idx.tree), 0, q, radius*radius, &hits)

	slices.SortFunc(hits, func(a, b queue.Item) int {
		if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	out := make([]Match, len(hits))
	for i, h := range hits {
		out[i] = Match{ID: h.ID, Distance: math.Sqrt(h.Distance)}
	}
	return out
}

func (idx *Index) within(lo, hi, depth int, q geom.Vec2, r2 float64, hits *[]queue.Item) {
	if lo >= hi {
		return
	}
	mid := (lo + hi) / 2
	p := idx.tree[mid]
	if d2 := p.SquaredDistance(q); d2 <= r2 {
		*hits = append(*hits, queue.Item{ID: idx.treeIDs[mid], Distance: d2})
	}

	axis := depth % 2
	diff := coord(q, axis) - coord(p, axis)
	// Left subtree holds coordinates <= split, right subtree >= split.
	if diff <= 0 || diff*diff <= r2 {
		idx.within(lo, mid, depth+1, q, r2, hits)
	}
	if diff >= 0 || diff*diff <= r2 {
		idx.within(mid+1, hi, depth+1, q, r2, hits)
	}
}

// WithinRect returns the ids of all points inside the closed box [min, max],
// ascending. The tree is pre-filtered with the box's bounding circle and each
// candidate is then tested exactly against the box.
func (idx *Index) WithinRect(min, max geom.Vec2) []uint64 {
	if idx.IsEmpty() || min.X > max.X || min.Y > max.Y {
		return nil
	}
	center := min.Midpoint(max)
	hw := (max.X - min.X) * 0.5
	hh := (max.Y - min.Y) * 0.5
	// Slack absorbs rounding of the center; the exact test below decides.
	r2 := (hw*hw+hh*hh)*(1+1e-9) + 1e-12

	var candidates []queue.Item
	idx.within(0, len(idx.tree), 0, center, r2, &candidates)

	out := make([]uint64, 0, len(candidates))
	for _, c := range candidates {
		if idx.positions[c.ID].InRect(min, max) {
			out = append(out, c.ID)
		}
	}
	slices.Sort(out)
	return out
}
