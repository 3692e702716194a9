package graph

import (
	"log/slog"
	"slices"

	"github.com/hupe1980/waygraph/geom"
	"github.com/hupe1980/waygraph/spatial"
)

// Mutable is the single writer of a graph. It is not safe for concurrent use
// and offers no spatial queries; call Freeze to obtain a queryable Snapshot.
type Mutable struct {
	state

	// shared is set while the maps are still referenced by a Snapshot.
	shared bool
	// index is the spatial index of the last frozen state, nil once a write
	// has invalidated it.
	index      *spatial.Index
	generation uint64
	logger     *slog.Logger
}

// New returns an empty graph.
func New(opts ...Option) *Mutable {
	o := applyOptions(opts)
	return &Mutable{
		state:  newState(),
		index:  spatial.Empty(),
		logger: o.logger,
	}
}

// Generation returns the generation of the snapshot this writer derives from.
func (m *Mutable) Generation() uint64 { return m.generation }

// Freeze publishes the current state as an immutable Snapshot, rebuilding the
// spatial index if any node changed since the last freeze. The writer stays
// usable; its next write copies the maps it now shares with the snapshot.
func (m *Mutable) Freeze() *Snapshot {
	if m.index == nil {
		m.index = buildIndex(m.nodes)
	}
	m.shared = true
	m.generation++
	return &Snapshot{
		state:      m.state,
		index:      m.index,
		generation: m.generation,
		logger:     m.logger,
	}
}

func buildIndex(nodes map[NodeID]Node) *spatial.Index {
	positions := make(map[uint64]geom.Vec2, len(nodes))
	for id, n := range nodes {
		positions[uint64(id)] = n.Position
	}
	return spatial.FromPositions(positions)
}

// write prepares the state for a mutation. moved marks node positions or
// membership as changed, which invalidates the spatial index.
func (m *Mutable) write(moved bool) {
	if m.shared {
		m.state = m.state.clone()
		m.shared = false
	}
	if moved {
		m.index = nil
	}
}

// AddNode inserts n under its own id.
func (m *Mutable) AddNode(n Node) error {
	if _, ok := m.nodes[n.ID]; ok {
		return ErrNodeExists
	}
	m.write(true)
	m.nodes[n.ID] = n
	if n.ID > m.maxID {
		m.maxID = n.ID
	}
	return nil
}

// NewNode allocates the next id and inserts a node at pos.
func (m *Mutable) NewNode(pos geom.Vec2, flag NodeFlag) NodeID {
	m.write(true)
	m.maxID++
	id := m.maxID
	m.nodes[id] = Node{ID: id, Position: pos, Flag: flag}
	return id
}

// ReserveIDs makes sure the next allocated id is at least next. Ids below
// the current high-water mark are never handed out again, so lowering it has
// no effect.
func (m *Mutable) ReserveIDs(next NodeID) {
	if next == 0 || next-1 <= m.maxID {
		return
	}
	m.write(false)
	m.maxID = next - 1
}

// RemoveNode deletes a node together with its edges and markers.
func (m *Mutable) RemoveNode(id NodeID) (Node, bool) {
	n, ok := m.nodes[id]
	if !ok {
		return Node{}, false
	}
	m.write(true)
	delete(m.nodes, id)
	for k, e := range m.edges {
		if e.Touches(id) {
			delete(m.edges, k)
		}
	}
	m.markers = slices.DeleteFunc(m.markers, func(mk Marker) bool {
		return mk.NodeID == id
	})
	return n, true
}

// MoveNode sets a node's position and refreshes the cached geometry of its
// incident edges.
func (m *Mutable) MoveNode(id NodeID, pos geom.Vec2) error {
	n, ok := m.nodes[id]
	if !ok {
		return &NodeNotFoundError{ID: id}
	}
	m.write(true)
	n.Position = pos
	m.nodes[id] = n
	for k, e := range m.edges {
		if e.Touches(id) {
			m.refreshEdge(&e)
			m.edges[k] = e
		}
	}
	return nil
}

// SetNodeFlag sets the flag of a node.
func (m *Mutable) SetNodeFlag(id NodeID, flag NodeFlag) error {
	n, ok := m.nodes[id]
	if !ok {
		return &NodeNotFoundError{ID: id}
	}
	m.write(false)
	n.Flag = flag
	m.nodes[id] = n
	return nil
}

func (m *Mutable) refreshEdge(e *Edge) bool {
	start, ok1 := m.nodes[e.Start]
	end, ok2 := m.nodes[e.End]
	if !ok1 || !ok2 {
		m.logger.Warn("edge references missing node", "start", e.Start, "end", e.End)
		return false
	}
	e.refresh(start.Position, end.Position)
	return true
}

// AddEdge stores an edge from start to end, replacing any record under the
// same ordered pair.
func (m *Mutable) AddEdge(start, end NodeID, dir Direction, prio Priority) error {
	if start == end {
		return ErrSelfLoop
	}
	s, ok := m.nodes[start]
	if !ok {
		return &NodeNotFoundError{ID: start}
	}
	e, ok := m.nodes[end]
	if !ok {
		return &NodeNotFoundError{ID: end}
	}
	m.write(false)
	m.edges[EdgeKey{Start: start, End: end}] = newEdge(s, e, dir, prio)
	return nil
}

// RemoveEdge deletes the record stored under (start, end).
func (m *Mutable) RemoveEdge(start, end NodeID) bool {
	k := EdgeKey{Start: start, End: end}
	if _, ok := m.edges[k]; !ok {
		return false
	}
	m.write(false)
	delete(m.edges, k)
	return true
}

// RemoveEdgesBetween deletes the records in both orders and returns how many
// were removed.
func (m *Mutable) RemoveEdgesBetween(a, b NodeID) int {
	removed := 0
	if m.RemoveEdge(a, b) {
		removed++
	}
	if a != b && m.RemoveEdge(b, a) {
		removed++
	}
	return removed
}

// SetDirection changes the direction of an edge. Leaving Dual also removes
// the reverse record, which would otherwise remain as a stale arrow.
func (m *Mutable) SetDirection(start, end NodeID, dir Direction) error {
	k := EdgeKey{Start: start, End: end}
	e, ok := m.edges[k]
	if !ok {
		return ErrEdgeNotFound
	}
	if e.Direction == dir {
		return nil
	}
	m.write(false)
	if e.Direction == DirectionDual {
		if _, ghost := m.edges[k.Reverse()]; ghost {
			delete(m.edges, k.Reverse())
			m.logger.Debug("removed reverse record", "start", end, "end", start)
		}
	}
	e.Direction = dir
	m.edges[k] = e
	return nil
}

// SetPriority changes the priority of an edge.
func (m *Mutable) SetPriority(start, end NodeID, prio Priority) error {
	k := EdgeKey{Start: start, End: end}
	e, ok := m.edges[k]
	if !ok {
		return ErrEdgeNotFound
	}
	m.write(false)
	e.Priority = prio
	m.edges[k] = e
	return nil
}

// InvertEdge swaps the endpoints of an edge and re-keys it. A record already
// stored under the swapped key is replaced.
func (m *Mutable) InvertEdge(start, end NodeID) error {
	k := EdgeKey{Start: start, End: end}
	e, ok := m.edges[k]
	if !ok {
		return ErrEdgeNotFound
	}
	m.write(false)
	delete(m.edges, k)
	e.Start, e.End = e.End, e.Start
	m.refreshEdge(&e)
	m.edges[e.Key()] = e
	return nil
}

// AddMarker attaches a marker to an existing node, replacing the node's
// previous marker.
func (m *Mutable) AddMarker(mk Marker) error {
	if _, ok := m.nodes[mk.NodeID]; !ok {
		return &NodeNotFoundError{ID: mk.NodeID}
	}
	m.write(false)
	for i := range m.markers {
		if m.markers[i].NodeID == mk.NodeID {
			m.markers[i] = mk
			return nil
		}
	}
	m.markers = append(m.markers, mk)
	return nil
}

// RemoveMarker detaches the marker of a node.
func (m *Mutable) RemoveMarker(id NodeID) bool {
	if _, ok := m.Marker(id); !ok {
		return false
	}
	m.write(false)
	m.markers = slices.DeleteFunc(m.markers, func(mk Marker) bool {
		return mk.NodeID == id
	})
	return true
}
