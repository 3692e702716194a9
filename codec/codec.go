// Package codec serializes graph snapshots into opaque, self-describing byte
// blobs for undo/redo history and for saving scenes.
//
// A blob records the name of the Codec that encoded its document and the
// Compression applied to it, so Decode accepts any blob regardless of the
// options it was written with. Changing the document layout is a breaking
// change for previously written blobs.
package codec

import "fmt"

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}

// MustMarshal marshals v with c (nil selects Default) and panics on error.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}
