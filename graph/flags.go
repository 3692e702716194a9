package graph

import "github.com/RoaringBitmap/roaring/v2/roaring64"

// RecalculateFlags derives the flag of each listed node from its incident
// edges: Regular when it has no edges or at least one Regular-priority edge,
// SubPriority otherwise. Warning and Reserved nodes are left untouched, as
// are unknown ids. It returns the number of nodes whose flag changed.
//
// The edges are scanned once, so the cost is O(edges + len(ids)).
func (m *Mutable) RecalculateFlags(ids ...NodeID) int {
	if len(ids) == 0 {
		return 0
	}

	targets := roaring64.New()
	for _, id := range ids {
		targets.Add(uint64(id))
	}

	connected := roaring64.New()
	regular := roaring64.New()
	for _, e := range m.edges {
		for _, id := range [2]NodeID{e.Start, e.End} {
			if !targets.Contains(uint64(id)) {
				continue
			}
			connected.Add(uint64(id))
			if e.Priority == PriorityRegular {
				regular.Add(uint64(id))
			}
		}
	}

	changed := 0
	it := targets.Iterator()
	for it.HasNext() {
		raw := it.Next()
		id := NodeID(raw)
		n, ok := m.nodes[id]
		if !ok || !n.Flag.Derived() {
			continue
		}
		flag := FlagSubPriority
		if !connected.Contains(raw) || regular.Contains(raw) {
			flag = FlagRegular
		}
		if n.Flag == flag {
			continue
		}
		m.write(false)
		n.Flag = flag
		m.nodes[id] = n
		changed++
	}
	return changed
}
