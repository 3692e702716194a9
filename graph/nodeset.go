package graph

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// NodeSet is a compressed set of node ids backed by a 64-bit roaring bitmap.
type NodeSet struct {
	rb *roaring64.Bitmap
}

// NewNodeSet returns a set holding ids.
func NewNodeSet(ids ...NodeID) *NodeSet {
	s := &NodeSet{rb: roaring64.New()}
	for _, id := range ids {
		s.rb.Add(uint64(id))
	}
	return s
}

// Add inserts id.
func (s *NodeSet) Add(id NodeID) { s.rb.Add(uint64(id)) }

// Contains reports whether id is in the set.
func (s *NodeSet) Contains(id NodeID) bool { return s.rb.Contains(uint64(id)) }

// Len returns the number of ids.
func (s *NodeSet) Len() int { return int(s.rb.GetCardinality()) }

// IsEmpty reports whether the set is empty.
func (s *NodeSet) IsEmpty() bool { return s.rb.IsEmpty() }

// Union adds every id of other.
func (s *NodeSet) Union(other *NodeSet) { s.rb.Or(other.rb) }

// All iterates the ids in ascending order.
func (s *NodeSet) All() iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		it := s.rb.Iterator()
		for it.HasNext() {
			if !yield(NodeID(it.Next())) {
				return
			}
		}
	}
}

// Slice returns the ids in ascending order.
func (s *NodeSet) Slice() []NodeID {
	raw := s.rb.ToArray()
	out := make([]NodeID, len(raw))
	for i, id := range raw {
		out[i] = NodeID(id)
	}
	return out
}
