package route

import (
	"github.com/hupe1980/waygraph/geom"
	"github.com/hupe1980/waygraph/graph"
)

// CoincidenceEpsilon is the distance below which a resampled interior point is
// considered to lie on an existing node. It is independent of the snap radius.
const CoincidenceEpsilon = 0.01

// Assemble merges a resampled point chain into snap and returns the delta to
// commit. Every point that coincides with neither an anchor nor an existing
// node becomes a new node; consecutive points are connected in chain order:
//
//   - new to new: an internal edge,
//   - existing to new or new to existing: an external edge,
//   - existing to existing: nothing. Two pre-existing nodes are never
//     connected implicitly.
//
// All edges share direction and priority. Assemble does not mutate snap.
func Assemble(points []geom.Vec2, start, end Anchor, dir graph.Direction, prio graph.Priority, snap *graph.Snapshot) graph.Delta {
	var d graph.Delta
	if len(points) == 0 {
		return d
	}

	// slots[i] is the new-node slot of point i, or -1 when it coincides with
	// existing[i].
	slots := make([]int, len(points))
	existing := make([]graph.NodeID, len(points))
	last := len(points) - 1
	for i, p := range points {
		if id, ok := coincident(i, last, p, start, end, snap); ok {
			slots[i] = -1
			existing[i] = id
			continue
		}
		slots[i] = len(d.NewNodes)
		d.NewNodes = append(d.NewNodes, graph.NewNode{Position: p, Flag: graph.FlagRegular})
	}

	for i := 0; i < last; i++ {
		a, b := slots[i], slots[i+1]
		switch {
		case a >= 0 && b >= 0:
			d.Internal = append(d.Internal, graph.InternalEdge{
				From: a, To: b, Direction: dir, Priority: prio,
			})
		case a >= 0:
			d.External = append(d.External, graph.ExternalEdge{
				Slot: a, Existing: existing[i+1], Direction: dir, Priority: prio,
			})
		case b >= 0:
			d.External = append(d.External, graph.ExternalEdge{
				Slot: b, Existing: existing[i], Incoming: true, Direction: dir, Priority: prio,
			})
		}
	}
	return d
}

func coincident(i, last int, p geom.Vec2, start, end Anchor, snap *graph.Snapshot) (graph.NodeID, bool) {
	if i == 0 {
		if id, ok := start.NodeID(); ok {
			return id, true
		}
	}
	if i == last {
		if id, ok := end.NodeID(); ok {
			return id, true
		}
	}
	if i == 0 || i == last {
		return 0, false
	}
	hit, ok := snap.Nearest(p)
	if ok && hit.Distance < CoincidenceEpsilon {
		return hit.ID, true
	}
	return 0, false
}
