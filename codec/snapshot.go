package codec

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/hupe1980/waygraph/graph"
	"github.com/hupe1980/waygraph/internal/hash"
	"lukechampine.com/blake3"
)

var magic = [4]byte{'W', 'G', 'S', '1'}

const formatVersion = 1

var (
	// ErrBadMagic is returned when a blob was not produced by Encode.
	ErrBadMagic = errors.New("codec: not a waygraph snapshot")
	// ErrUnsupportedVersion is returned for blobs of a newer format.
	ErrUnsupportedVersion = errors.New("codec: unsupported snapshot version")
	// ErrUnknownCodec is returned when a blob names a codec ByName does not know.
	ErrUnknownCodec = errors.New("codec: unknown codec")
	// ErrChecksum is returned when a blob was truncated or altered.
	ErrChecksum = errors.New("codec: checksum mismatch")
)

// Document is the serialized form of a graph. Nodes, edges and markers are
// ordered, so equal graphs produce equal documents.
type Document struct {
	NextID  graph.NodeID   `json:"next_id"`
	Nodes   []graph.Node   `json:"nodes"`
	Edges   []EdgeRecord   `json:"edges"`
	Markers []graph.Marker `json:"markers,omitempty"`
}

// EdgeRecord is an edge without its cached geometry.
type EdgeRecord struct {
	Start     graph.NodeID    `json:"start"`
	End       graph.NodeID    `json:"end"`
	Direction graph.Direction `json:"direction"`
	Priority  graph.Priority  `json:"priority"`
}

// NewDocument captures snap.
func NewDocument(snap *graph.Snapshot) Document {
	edges := snap.Edges()
	records := make([]EdgeRecord, len(edges))
	for i, e := range edges {
		records[i] = EdgeRecord{Start: e.Start, End: e.End, Direction: e.Direction, Priority: e.Priority}
	}
	return Document{
		NextID:  snap.NextNodeID(),
		Nodes:   snap.Nodes(),
		Edges:   records,
		Markers: snap.Markers(),
	}
}

// Graph rebuilds a snapshot from the document.
func (d Document) Graph(opts ...graph.Option) (*graph.Snapshot, error) {
	m := graph.New(opts...)
	for _, n := range d.Nodes {
		if err := m.AddNode(n); err != nil {
			return nil, fmt.Errorf("node %d: %w", n.ID, err)
		}
	}
	for _, e := range d.Edges {
		if err := m.AddEdge(e.Start, e.End, e.Direction, e.Priority); err != nil {
			return nil, fmt.Errorf("edge %d->%d: %w", e.Start, e.End, err)
		}
	}
	for _, mk := range d.Markers {
		if err := m.AddMarker(mk); err != nil {
			return nil, fmt.Errorf("marker %q: %w", mk.Name, err)
		}
	}
	m.ReserveIDs(d.NextID)
	return m.Freeze(), nil
}

// EncodeOption configures Encode.
type EncodeOption func(*encodeOptions)

type encodeOptions struct {
	codec       Codec
	compression Compression
}

// WithCodec sets the document codec. Nil selects Default.
func WithCodec(c Codec) EncodeOption {
	return func(o *encodeOptions) {
		if c == nil {
			c = Default
		}
		o.codec = c
	}
}

// WithCompression sets the block compression.
func WithCompression(c Compression) EncodeOption {
	return func(o *encodeOptions) {
		o.compression = c
	}
}

// Encode serializes snap into a self-describing blob.
//
// Layout: magic, version byte, compression byte, codec name length byte,
// codec name, compressed document block, CRC32C of everything before it.
func Encode(snap *graph.Snapshot, opts ...EncodeOption) ([]byte, error) {
	o := encodeOptions{codec: Default, compression: CompressionZSTD}
	for _, fn := range opts {
		fn(&o)
	}

	doc, err := o.codec.Marshal(NewDocument(snap))
	if err != nil {
		return nil, fmt.Errorf("codec %s: %w", o.codec.Name(), err)
	}
	block, err := compressBlock(doc, o.compression)
	if err != nil {
		return nil, err
	}

	name := o.codec.Name()
	var buf bytes.Buffer
	buf.Grow(len(magic) + 3 + len(name) + len(block) + hash.Size)
	buf.Write(magic[:])
	buf.WriteByte(formatVersion)
	buf.WriteByte(byte(o.compression))
	buf.WriteByte(byte(len(name)))
	buf.WriteString(name)
	buf.Write(block)
	return hash.Seal(buf.Bytes()), nil
}

// Decode parses a blob produced by Encode.
func Decode(data []byte, opts ...graph.Option) (*graph.Snapshot, error) {
	doc, err := DecodeDocument(data)
	if err != nil {
		return nil, err
	}
	return doc.Graph(opts...)
}

// DecodeDocument parses a blob produced by Encode without building a graph.
func DecodeDocument(data []byte) (Document, error) {
	var doc Document
	if len(data) < len(magic)+3+hash.Size || !bytes.Equal(data[:len(magic)], magic[:]) {
		return doc, ErrBadMagic
	}
	if data[len(magic)] != formatVersion {
		return doc, fmt.Errorf("%w: %d", ErrUnsupportedVersion, data[len(magic)])
	}
	data, ok := hash.Open(data)
	if !ok {
		return doc, ErrChecksum
	}
	data = data[len(magic)+1:]
	compression := Compression(data[0])
	nameLen := int(data[1])
	data = data[2:]
	if len(data) < nameLen {
		return doc, errShortBlock
	}
	name := string(data[:nameLen])
	c, ok := ByName(name)
	if !ok {
		return doc, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}

	raw, err := decompressBlock(data[nameLen:], compression)
	if err != nil {
		return doc, err
	}
	if err := c.Unmarshal(raw, &doc); err != nil {
		return doc, fmt.Errorf("codec %s: %w", name, err)
	}
	return doc, nil
}

// Fingerprint is a BLAKE3 digest of a graph's document. Equal graphs have
// equal fingerprints regardless of how they were encoded.
type Fingerprint [32]byte

// FingerprintOf digests snap.
func FingerprintOf(snap *graph.Snapshot) (Fingerprint, error) {
	doc, err := JSON{}.Marshal(NewDocument(snap))
	if err != nil {
		return Fingerprint{}, err
	}
	return blake3.Sum256(doc), nil
}

func (f Fingerprint) String() string {
	return fmt.Sprintf("%x", f[:8])
}
