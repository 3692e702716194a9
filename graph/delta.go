package graph

import (
	"fmt"

	"github.com/hupe1980/waygraph/geom"
)

// NewNode is a node a Delta creates. Its id is allocated on apply.
type NewNode struct {
	Position geom.Vec2
	Flag     NodeFlag
}

// InternalEdge connects two slots of Delta.NewNodes.
type InternalEdge struct {
	From      int
	To        int
	Direction Direction
	Priority  Priority
}

// ExternalEdge connects a slot of Delta.NewNodes with an existing node. The
// edge runs from the slot to the existing node unless Incoming is set.
type ExternalEdge struct {
	Slot      int
	Existing  NodeID
	Incoming  bool
	Direction Direction
	Priority  Priority
}

// Delta is a set of nodes and edges to merge into a graph in one step.
type Delta struct {
	NewNodes []NewNode
	Internal []InternalEdge
	External []ExternalEdge
}

// IsEmpty reports whether the delta adds nothing.
func (d Delta) IsEmpty() bool {
	return len(d.NewNodes) == 0 && len(d.Internal) == 0 && len(d.External) == 0
}

// EdgeCount returns the number of edges the delta describes.
func (d Delta) EdgeCount() int {
	return len(d.Internal) + len(d.External)
}

// Validate checks that every edge references a defined slot.
func (d Delta) Validate() error {
	n := len(d.NewNodes)
	for i, e := range d.Internal {
		if e.From < 0 || e.From >= n || e.To < 0 || e.To >= n {
			return fmt.Errorf("%w: internal edge %d references slot outside [0,%d)", ErrInvalidDelta, i, n)
		}
		if e.From == e.To {
			return fmt.Errorf("%w: internal edge %d: %w", ErrInvalidDelta, i, ErrSelfLoop)
		}
	}
	for i, e := range d.External {
		if e.Slot < 0 || e.Slot >= n {
			return fmt.Errorf("%w: external edge %d references slot outside [0,%d)", ErrInvalidDelta, i, n)
		}
	}
	return nil
}

// ApplyDelta allocates ids for the new nodes, inserts them with their edges
// and recalculates the flags of every touched node. External edges whose
// existing node is gone are logged and skipped. It returns the allocated ids
// in slot order; an invalid delta leaves the graph unchanged.
func (m *Mutable) ApplyDelta(d Delta) ([]NodeID, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if d.IsEmpty() {
		return nil, nil
	}

	ids := make([]NodeID, len(d.NewNodes))
	affected := NewNodeSet()
	for i, n := range d.NewNodes {
		ids[i] = m.NewNode(n.Position, n.Flag)
		affected.Add(ids[i])
	}

	for _, e := range d.Internal {
		if err := m.AddEdge(ids[e.From], ids[e.To], e.Direction, e.Priority); err != nil {
			return ids, err
		}
	}

	skipped := 0
	for _, e := range d.External {
		if !m.HasNode(e.Existing) {
			m.logger.Warn("external node missing, edge skipped", "node", e.Existing)
			skipped++
			continue
		}
		start, end := ids[e.Slot], e.Existing
		if e.Incoming {
			start, end = end, start
		}
		if err := m.AddEdge(start, end, e.Direction, e.Priority); err != nil {
			return ids, err
		}
		affected.Add(e.Existing)
	}

	m.RecalculateFlags(affected.Slice()...)

	m.logger.Info("applied delta",
		"nodes", len(ids),
		"edges", d.EdgeCount()-skipped,
		"skipped", skipped,
	)
	return ids, nil
}
