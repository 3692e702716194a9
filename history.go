package waygraph

import (
	"github.com/hupe1980/waygraph/codec"
	"github.com/hupe1980/waygraph/graph"
)

// history keeps encoded snapshots for undo and redo. Blobs are compressed,
// so long histories of large graphs stay small.
type history struct {
	undo        [][]byte
	redo        [][]byte
	limit       int
	compression codec.Compression
}

func newHistory(limit int, c codec.Compression) *history {
	return &history{limit: limit, compression: c}
}

func (h *history) encode(snap *graph.Snapshot) ([]byte, error) {
	return codec.Encode(snap, codec.WithCompression(h.compression))
}

// record stores prev as an undo step unless next has the same content.
func (h *history) record(prev, next *graph.Snapshot) (bool, error) {
	if h.limit == 0 {
		return false, nil
	}
	before, err := codec.FingerprintOf(prev)
	if err != nil {
		return false, err
	}
	after, err := codec.FingerprintOf(next)
	if err != nil {
		return false, err
	}
	if before == after {
		return false, nil
	}

	blob, err := h.encode(prev)
	if err != nil {
		return false, err
	}
	h.undo = append(h.undo, blob)
	if len(h.undo) > h.limit {
		h.undo = h.undo[len(h.undo)-h.limit:]
	}
	h.redo = h.redo[:0]
	return true, nil
}

// step pops from one stack, pushes current onto the other and returns the
// restored snapshot. The restored snapshot keeps allocating after current's
// ids, so nodes of an undone edit never share ids with later ones.
func (h *history) step(from, to *[][]byte, empty error, current *graph.Snapshot, opts ...graph.Option) (*graph.Snapshot, error) {
	if len(*from) == 0 {
		return nil, empty
	}
	blob := (*from)[len(*from)-1]
	restored, err := codec.Decode(blob, opts...)
	if err != nil {
		return nil, err
	}
	if next := current.NextNodeID(); next > restored.NextNodeID() {
		w := restored.Edit()
		w.ReserveIDs(next)
		restored = w.Freeze()
	}
	cur, err := h.encode(current)
	if err != nil {
		return nil, err
	}
	*from = (*from)[:len(*from)-1]
	*to = append(*to, cur)
	return restored, nil
}

func (h *history) undoStep(current *graph.Snapshot, opts ...graph.Option) (*graph.Snapshot, error) {
	return h.step(&h.undo, &h.redo, ErrNothingToUndo, current, opts...)
}

func (h *history) redoStep(current *graph.Snapshot, opts ...graph.Option) (*graph.Snapshot, error) {
	return h.step(&h.redo, &h.undo, ErrNothingToRedo, current, opts...)
}

func (h *history) depth() (undo, redo int) {
	return len(h.undo), len(h.redo)
}
