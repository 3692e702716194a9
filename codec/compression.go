package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the block compression of an encoded blob.
type Compression uint8

const (
	// CompressionNone stores the document as is.
	CompressionNone Compression = 0
	// CompressionLZ4 favors speed; suited for undo history.
	CompressionLZ4 Compression = 1
	// CompressionZSTD favors ratio; suited for saved scenes.
	CompressionZSTD Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("Compression(%d)", uint8(c))
	}
}

// ParseCompression is the inverse of Compression.String.
func ParseCompression(s string) (Compression, error) {
	switch s {
	case "none", "":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZSTD, nil
	default:
		return 0, fmt.Errorf("unknown compression %q", s)
	}
}

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// Block layout: [UncompressedSize uint32][CompressedSize uint32][Data...].
// CompressedSize 0 means the data is stored uncompressed.
const blockHeaderSize = 8

var errShortBlock = errors.New("codec: block truncated")

// compressBlock compresses data, falling back to raw storage when the
// compressed form saves less than 10%.
func compressBlock(data []byte, c Compression) ([]byte, error) {
	var compressed []byte
	switch c {
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, err
		}
		compressed = buf[:n]
	case CompressionZSTD:
		enc := getZstdEncoder()
		compressed = enc.EncodeAll(data, nil)
		zstdEncoderPool.Put(enc)
	}

	if len(compressed) == 0 || float64(len(compressed)) > float64(len(data))*0.9 {
		out := make([]byte, blockHeaderSize+len(data))
		binary.LittleEndian.PutUint32(out[0:], uint32(len(data)))
		copy(out[blockHeaderSize:], data)
		return out, nil
	}

	out := make([]byte, blockHeaderSize+len(compressed))
	binary.LittleEndian.PutUint32(out[0:], uint32(len(data)))
	binary.LittleEndian.PutUint32(out[4:], uint32(len(compressed)))
	copy(out[blockHeaderSize:], compressed)
	return out, nil
}

func decompressBlock(data []byte, c Compression) ([]byte, error) {
	if len(data) < blockHeaderSize {
		return nil, errShortBlock
	}
	size := binary.LittleEndian.Uint32(data[0:])
	csize := binary.LittleEndian.Uint32(data[4:])
	body := data[blockHeaderSize:]

	if csize == 0 {
		if uint32(len(body)) < size {
			return nil, errShortBlock
		}
		return body[:size], nil
	}
	if uint32(len(body)) < csize {
		return nil, errShortBlock
	}
	body = body[:csize]

	switch c {
	case CompressionLZ4:
		out := make([]byte, size)
		n, err := lz4.UncompressBlock(body, out)
		if err != nil {
			return nil, err
		}
		if uint32(n) != size {
			return nil, errors.New("codec: decompressed size mismatch")
		}
		return out, nil
	case CompressionZSTD:
		dec := getZstdDecoder()
		defer zstdDecoderPool.Put(dec)
		out, err := dec.DecodeAll(body, make([]byte, 0, size))
		if err != nil {
			return nil, err
		}
		if uint32(len(out)) != size {
			return nil, errors.New("codec: decompressed size mismatch")
		}
		return out, nil
	default:
		return nil, fmt.Errorf("codec: compressed block with %s", c)
	}
}
