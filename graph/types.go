package graph

import (
	"fmt"

	"github.com/hupe1980/waygraph/geom"
)

// NodeID identifies a node. Ids are never reused within a session.
type NodeID uint64

// NodeFlag classifies a node for the downstream driving system.
type NodeFlag uint8

const (
	FlagRegular NodeFlag = iota
	FlagSubPriority
	FlagWarning
	FlagReserved
)

// Derived reports whether the flag is computed from incident edges.
// Warning and Reserved are set by the user and never recomputed.
func (f NodeFlag) Derived() bool {
	return f == FlagRegular || f == FlagSubPriority
}

func (f NodeFlag) String() string {
	switch f {
	case FlagRegular:
		return "regular"
	case FlagSubPriority:
		return "subpriority"
	case FlagWarning:
		return "warning"
	case FlagReserved:
		return "reserved"
	default:
		return fmt.Sprintf("NodeFlag(%d)", uint8(f))
	}
}

// Direction describes how an edge may be traversed.
type Direction uint8

const (
	// DirectionRegular is traversable from Start to End.
	DirectionRegular Direction = iota
	// DirectionDual is traversable both ways with a single record.
	DirectionDual
	// DirectionReverse is traversable from End to Start. The record keeps
	// its storage order.
	DirectionReverse
)

func (d Direction) String() string {
	switch d {
	case DirectionRegular:
		return "regular"
	case DirectionDual:
		return "dual"
	case DirectionReverse:
		return "reverse"
	default:
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
}

// ParseDirection is the inverse of Direction.String.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "regular", "":
		return DirectionRegular, nil
	case "dual":
		return DirectionDual, nil
	case "reverse":
		return DirectionReverse, nil
	default:
		return 0, fmt.Errorf("unknown direction %q", s)
	}
}

// Priority of an edge.
type Priority uint8

const (
	PriorityRegular Priority = iota
	PrioritySubPriority
)

func (p Priority) String() string {
	switch p {
	case PriorityRegular:
		return "regular"
	case PrioritySubPriority:
		return "subpriority"
	default:
		return fmt.Sprintf("Priority(%d)", uint8(p))
	}
}

// ParsePriority is the inverse of Priority.String.
func ParsePriority(s string) (Priority, error) {
	switch s {
	case "regular", "":
		return PriorityRegular, nil
	case "subpriority":
		return PrioritySubPriority, nil
	default:
		return 0, fmt.Errorf("unknown priority %q", s)
	}
}

// Node is a waypoint.
type Node struct {
	ID       NodeID    `json:"id"`
	Position geom.Vec2 `json:"position"`
	Flag     NodeFlag  `json:"flag"`
}

// EdgeKey is the ordered endpoint pair an edge is stored under.
type EdgeKey struct {
	Start NodeID
	End   NodeID
}

// Reverse returns the key with swapped endpoints.
func (k EdgeKey) Reverse() EdgeKey {
	return EdgeKey{Start: k.End, End: k.Start}
}

func (k EdgeKey) less(o EdgeKey) bool {
	if k.Start != o.Start {
		return k.Start < o.Start
	}
	return k.End < o.End
}

// Edge is a directed connection between two nodes. Midpoint and Angle are
// cached from the endpoint positions and refreshed whenever an endpoint moves.
type Edge struct {
	Start     NodeID    `json:"start"`
	End       NodeID    `json:"end"`
	Direction Direction `json:"direction"`
	Priority  Priority  `json:"priority"`
	Midpoint  geom.Vec2 `json:"midpoint"`
	Angle     float64   `json:"angle"`
}

// Key returns the storage key of the edge.
func (e Edge) Key() EdgeKey {
	return EdgeKey{Start: e.Start, End: e.End}
}

// Touches reports whether id is one of the endpoints.
func (e Edge) Touches(id NodeID) bool {
	return e.Start == id || e.End == id
}

func newEdge(start, end Node, dir Direction, prio Priority) Edge {
	e := Edge{Start: start.ID, End: end.ID, Direction: dir, Priority: prio}
	e.refresh(start.Position, end.Position)
	return e
}

func (e *Edge) refresh(start, end geom.Vec2) {
	e.Midpoint = start.Midpoint(end)
	e.Angle = start.AngleTo(end)
}

// Marker is a named waypoint attached to a node.
type Marker struct {
	NodeID NodeID `json:"node_id"`
	Name   string `json:"name"`
	Group  string `json:"group"`
	Index  int    `json:"index"`
	Debug  bool   `json:"debug,omitempty"`
}

// Neighbor is a node connected to another node by an edge in either
// direction.
type Neighbor struct {
	ID NodeID
	// Angle from the queried node towards the neighbor, in radians.
	Angle float64
	// Outgoing is true when the edge is stored from the queried node to the
	// neighbor.
	Outgoing bool
}

// NodeMatch is a spatial query result.
type NodeMatch struct {
	ID       NodeID
	Distance float64
}
