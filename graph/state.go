package graph

import (
	"maps"
	"slices"
)

// state is the data shared between a Snapshot and the Mutable derived from
// it. Its read methods are promoted to both handle types.
type state struct {
	nodes   map[NodeID]Node
	edges   map[EdgeKey]Edge
	markers []Marker
	// maxID is the highest id ever allocated or inserted.
	maxID NodeID
}

func newState() state {
	return state{
		nodes: make(map[NodeID]Node),
		edges: make(map[EdgeKey]Edge),
	}
}

func (s *state) clone() state {
	return state{
		nodes:   maps.Clone(s.nodes),
		edges:   maps.Clone(s.edges),
		markers: slices.Clone(s.markers),
		maxID:   s.maxID,
	}
}

// NodeCount returns the number of nodes.
func (s *state) NodeCount() int { return len(s.nodes) }

// EdgeCount returns the number of stored edge records.
func (s *state) EdgeCount() int { return len(s.edges) }

// NextNodeID returns the id the next allocation will use.
func (s *state) NextNodeID() NodeID { return s.maxID + 1 }

// Node returns the node with the given id.
func (s *state) Node(id NodeID) (Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// HasNode reports whether id exists.
func (s *state) HasNode(id NodeID) bool {
	_, ok := s.nodes[id]
	return ok
}

// NodeIDs returns all node ids in ascending order.
func (s *state) NodeIDs() []NodeID {
	ids := slices.Collect(maps.Keys(s.nodes))
	slices.Sort(ids)
	return ids
}

// Nodes returns all nodes ordered by id.
func (s *state) Nodes() []Node {
	out := make([]Node, 0, len(s.nodes))
	for _, id := range s.NodeIDs() {
		out = append(out, s.nodes[id])
	}
	return out
}

// HasEdge reports whether an edge is stored under (start, end).
func (s *state) HasEdge(start, end NodeID) bool {
	_, ok := s.edges[EdgeKey{Start: start, End: end}]
	return ok
}

// Edge returns the edge stored under (start, end).
func (s *state) Edge(start, end NodeID) (Edge, bool) {
	e, ok := s.edges[EdgeKey{Start: start, End: end}]
	return e, ok
}

// EdgesBetween returns the records stored under (a, b) and (b, a), in that
// order.
func (s *state) EdgesBetween(a, b NodeID) []Edge {
	var out []Edge
	if e, ok := s.edges[EdgeKey{Start: a, End: b}]; ok {
		out = append(out, e)
	}
	if a == b {
		return out
	}
	if e, ok := s.edges[EdgeKey{Start: b, End: a}]; ok {
		out = append(out, e)
	}
	return out
}

// Edges returns every edge ordered by key.
func (s *state) Edges() []Edge {
	out := slices.Collect(maps.Values(s.edges))
	sortEdges(out)
	return out
}

// IncidentEdges returns the edges that start or end at id, ordered by key.
func (s *state) IncidentEdges(id NodeID) []Edge {
	var out []Edge
	for _, e := range s.edges {
		if e.Touches(id) {
			out = append(out, e)
		}
	}
	sortEdges(out)
	return out
}

// ConnectedNeighbors lists the nodes sharing an edge with id, ordered by
// neighbor id. A neighbor connected both ways is reported once, as outgoing.
func (s *state) ConnectedNeighbors(id NodeID) []Neighbor {
	node, ok := s.nodes[id]
	if !ok {
		return nil
	}

	seen := make(map[NodeID]int)
	var out []Neighbor
	for _, e := range s.edges {
		var other NodeID
		switch id {
		case e.Start:
			other = e.End
		case e.End:
			other = e.Start
		default:
			continue
		}
		pos, ok := s.nodes[other]
		if !ok {
			continue
		}
		outgoing := e.Start == id
		if i, dup := seen[other]; dup {
			out[i].Outgoing = out[i].Outgoing || outgoing
			continue
		}
		seen[other] = len(out)
		out = append(out, Neighbor{
			ID:       other,
			Angle:    node.Position.AngleTo(pos.Position),
			Outgoing: outgoing,
		})
	}
	slices.SortFunc(out, func(a, b Neighbor) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return out
}

// Markers returns a copy of all markers.
func (s *state) Markers() []Marker {
	return slices.Clone(s.markers)
}

// Marker returns the marker attached to a node.
func (s *state) Marker(id NodeID) (Marker, bool) {
	for _, m := range s.markers {
		if m.NodeID == id {
			return m, true
		}
	}
	return Marker{}, false
}

func sortEdges(edges []Edge) {
	slices.SortFunc(edges, func(a, b Edge) int {
		switch {
		case a.Key().less(b.Key()):
			return -1
		case b.Key().less(a.Key()):
			return 1
		}
		return 0
	})
}
