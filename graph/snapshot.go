package graph

import (
	"log/slog"

	"github.com/hupe1980/waygraph/geom"
	"github.com/hupe1980/waygraph/spatial"
)

// Snapshot is an immutable graph state whose spatial index matches its nodes.
// It is safe for concurrent use.
type Snapshot struct {
	state

	index      *spatial.Index
	generation uint64
	logger     *slog.Logger
}

// Empty returns a snapshot of an empty graph.
func Empty() *Snapshot {
	return New().Freeze()
}

// Generation increases with every Freeze of the writer lineage.
func (s *Snapshot) Generation() uint64 { return s.generation }

// Index returns the spatial index over the snapshot's node positions.
func (s *Snapshot) Index() *spatial.Index { return s.index }

// Edit starts a writer on top of the snapshot. The snapshot itself is never
// modified; the writer copies its maps on the first write.
func (s *Snapshot) Edit() *Mutable {
	return &Mutable{
		state:      s.state,
		shared:     true,
		index:      s.index,
		generation: s.generation,
		logger:     s.logger,
	}
}

// Nearest returns the node closest to pos. Ties resolve to the lowest id.
func (s *Snapshot) Nearest(pos geom.Vec2) (NodeMatch, bool) {
	m, ok := s.index.Nearest(pos)
	if !ok {
		return NodeMatch{}, false
	}
	return NodeMatch{ID: NodeID(m.ID), Distance: m.Distance}, true
}

// NearestK returns up to k nodes ordered by ascending distance.
func (s *Snapshot) NearestK(pos geom.Vec2, k int) []NodeMatch {
	return toNodeMatches(s.index.NearestK(pos, k))
}

// WithinRadius returns the nodes within radius of pos, ordered by ascending
// distance.
func (s *Snapshot) WithinRadius(pos geom.Vec2, radius float64) []NodeMatch {
	return toNodeMatches(s.index.WithinRadius(pos, radius))
}

// WithinRect returns the ids of the nodes inside the closed box, ascending.
func (s *Snapshot) WithinRect(min, max geom.Vec2) []NodeID {
	raw := s.index.WithinRect(min, max)
	if len(raw) == 0 {
		return nil
	}
	out := make([]NodeID, len(raw))
	for i, id := range raw {
		out[i] = NodeID(id)
	}
	return out
}

func toNodeMatches(ms []spatial.Match) []NodeMatch {
	if len(ms) == 0 {
		return nil
	}
	out := make([]NodeMatch, len(ms))
	for i, m := range ms {
		out[i] = NodeMatch{ID: NodeID(m.ID), Distance: m.Distance}
	}
	return out
}
