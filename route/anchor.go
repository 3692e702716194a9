package route

import (
	"fmt"

	"github.com/hupe1980/waygraph/geom"
	"github.com/hupe1980/waygraph/graph"
)

// AnchorKind discriminates Anchor.
type AnchorKind uint8

const (
	// AnchorUnset is the zero Anchor.
	AnchorUnset AnchorKind = iota
	// AnchorExisting refers to a node of the graph.
	AnchorExisting
	// AnchorFree is a position that becomes a new node.
	AnchorFree
)

// Anchor is the resolved endpoint of a drawing operation.
type Anchor struct {
	kind     AnchorKind
	id       graph.NodeID
	position geom.Vec2
}

// Existing returns an anchor on node id, stored at pos.
func Existing(id graph.NodeID, pos geom.Vec2) Anchor {
	return Anchor{kind: AnchorExisting, id: id, position: pos}
}

// Free returns an anchor at pos that does not refer to any node.
func Free(pos geom.Vec2) Anchor {
	return Anchor{kind: AnchorFree, position: pos}
}

// Kind returns the anchor kind.
func (a Anchor) Kind() AnchorKind { return a.kind }

// IsSet reports whether the anchor was created by Existing or Free.
func (a Anchor) IsSet() bool { return a.kind != AnchorUnset }

// NodeID returns the referenced node for an existing anchor.
func (a Anchor) NodeID() (graph.NodeID, bool) {
	return a.id, a.kind == AnchorExisting
}

// Position returns the anchor position. For existing anchors this is the
// node's stored position.
func (a Anchor) Position() geom.Vec2 { return a.position }

func (a Anchor) String() string {
	switch a.kind {
	case AnchorExisting:
		return fmt.Sprintf("node %d at %v", a.id, a.position)
	case AnchorFree:
		return fmt.Sprintf("free at %v", a.position)
	default:
		return "unset"
	}
}

// Resolve snaps pos to the nearest node of snap when it lies within
// snapRadius (inclusive); the anchor then carries the node's stored position.
// Otherwise pos becomes a free anchor.
//
// Resolve has no side effects. Callers re-run it when a dragged endpoint is
// released so the endpoint can snap to a different node.
func Resolve(snap *graph.Snapshot, pos geom.Vec2, snapRadius float64) Anchor {
	hit, ok := snap.Nearest(pos)
	if !ok || hit.Distance > snapRadius {
		return Free(pos)
	}
	n, ok := snap.Node(hit.ID)
	if !ok {
		return Free(pos)
	}
	return Existing(n.ID, n.Position)
}
