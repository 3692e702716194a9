package graph

import (
	"math"
	"slices"

	"github.com/hupe1980/waygraph/geom"
)

// DefaultDedupEpsilon is used when Deduplicate receives a non-positive cell
// size.
const DefaultDedupEpsilon = 0.001

// DedupResult summarizes a Deduplicate run.
type DedupResult struct {
	RemovedNodes     int
	RemappedEdges    int
	RemovedSelfEdges int
	RemappedMarkers  int
	DuplicateGroups  int
}

// Changed reports whether the run modified the graph.
func (r DedupResult) Changed() bool {
	return r.RemovedNodes > 0
}

type cell struct {
	x, y int64
}

func cellOf(p geom.Vec2, epsilon float64) cell {
	return cell{
		x: int64(math.Round(p.X / epsilon)),
		y: int64(math.Round(p.Y / epsilon)),
	}
}

// duplicates maps every non-canonical node to the lowest id in its grid cell
// and returns the number of cells holding more than one node.
func (s *state) duplicates(epsilon float64) (map[NodeID]NodeID, int) {
	if epsilon <= 0 {
		epsilon = DefaultDedupEpsilon
	}

	canonical := make(map[cell]NodeID, len(s.nodes))
	grouped := make(map[cell]bool)
	remap := make(map[NodeID]NodeID)
	for _, id := range s.NodeIDs() {
		c := cellOf(s.nodes[id].Position, epsilon)
		first, ok := canonical[c]
		if !ok {
			canonical[c] = id
			continue
		}
		remap[id] = first
		grouped[c] = true
	}
	return remap, len(grouped)
}

// CountDuplicates reports how many duplicate groups Deduplicate would merge
// and how many nodes it would remove, without modifying anything.
func (s *state) CountDuplicates(epsilon float64) (groups, removable int) {
	remap, groups := s.duplicates(epsilon)
	return groups, len(remap)
}

// Deduplicate merges nodes that fall into the same grid cell of size epsilon
// (non-positive selects DefaultDedupEpsilon). The lowest id of each cell is
// kept. Edges and markers are rewritten to the surviving node, edges that
// collapse into self-loops are dropped, and when two edges collapse onto the
// same ordered pair the survivor becomes Dual if either of them was.
func (m *Mutable) Deduplicate(epsilon float64) DedupResult {
	remap, groups := m.duplicates(epsilon)
	if len(remap) == 0 {
		return DedupResult{}
	}
	m.write(true)

	res := DedupResult{
		RemovedNodes:    len(remap),
		DuplicateGroups: groups,
	}

	removed := NewNodeSet()
	survivors := NewNodeSet()
	for id, to := range remap {
		removed.Add(id)
		survivors.Add(to)
	}
	resolve := func(id NodeID) NodeID {
		if removed.Contains(id) {
			return remap[id]
		}
		return id
	}

	touched := NewNodeSet()
	edges := make(map[EdgeKey]Edge, len(m.edges))
	for _, e := range m.Edges() {
		start, end := resolve(e.Start), resolve(e.End)
		if start == e.Start && end == e.End {
			mergeEdge(edges, e)
			continue
		}
		// Remapping can drop a record that decided the far node's flag.
		touched.Add(start)
		touched.Add(end)
		if start == end {
			res.RemovedSelfEdges++
			continue
		}
		res.RemappedEdges++
		e.Start, e.End = start, end
		mergeEdge(edges, e)
	}

	for id := range removed.All() {
		delete(m.nodes, id)
	}
	m.edges = edges
	for k, e := range m.edges {
		if survivors.Contains(e.Start) || survivors.Contains(e.End) {
			m.refreshEdge(&e)
			m.edges[k] = e
		}
	}

	seen := NewNodeSet()
	markers := m.markers[:0]
	for _, mk := range m.markers {
		if removed.Contains(mk.NodeID) {
			mk.NodeID = remap[mk.NodeID]
			res.RemappedMarkers++
		}
		if seen.Contains(mk.NodeID) {
			continue
		}
		seen.Add(mk.NodeID)
		markers = append(markers, mk)
	}
	m.markers = slices.Clip(markers)

	touched.Union(survivors)
	m.RecalculateFlags(touched.Slice()...)

	m.logger.Info("deduplicated nodes",
		"removed", res.RemovedNodes,
		"groups", res.DuplicateGroups,
		"remapped_edges", res.RemappedEdges,
		"self_edges", res.RemovedSelfEdges,
		"remapped_markers", res.RemappedMarkers,
	)
	return res
}

func mergeEdge(edges map[EdgeKey]Edge, e Edge) {
	k := e.Key()
	prev, ok := edges[k]
	if !ok {
		edges[k] = e
		return
	}
	if e.Direction == DirectionDual {
		prev.Direction = DirectionDual
		edges[k] = prev
	}
}
