package graph

import (
	"errors"
	"fmt"
)

var (
	// ErrNodeNotFound is returned when an operation references a missing node.
	ErrNodeNotFound = errors.New("node not found")

	// ErrEdgeNotFound is returned when an operation references a missing edge.
	ErrEdgeNotFound = errors.New("edge not found")

	// ErrSelfLoop is returned when an edge would connect a node to itself.
	ErrSelfLoop = errors.New("edge endpoints must differ")

	// ErrNodeExists is returned by AddNode when the id is already taken.
	ErrNodeExists = errors.New("node already exists")

	// ErrInvalidDelta is returned when a delta references slots it does not
	// define.
	ErrInvalidDelta = errors.New("invalid delta")
)

// NodeNotFoundError reports the id of a missing node.
type NodeNotFoundError struct {
	ID NodeID
}

func (e *NodeNotFoundError) Error() string {
	return fmt.Sprintf("node %d not found", e.ID)
}

func (e *NodeNotFoundError) Unwrap() error { return ErrNodeNotFound }
