// Package hash provides the checksum used to detect corrupted snapshot blobs.
//
// All checksums use CRC32-Castagnoli (CRC32C), which Go's hash/crc32
// computes with SSE4.2 or the ARM CRC extension when available.
package hash

import (
	"encoding/binary"
	"hash"
	"hash/crc32"
)

// Size is the length of an encoded checksum.
const Size = 4

var crc32cTable = crc32.MakeTable(crc32.Castagnoli)

// CRC32C computes the CRC32-Castagnoli checksum of data.
func CRC32C(data []byte) uint32 {
	return crc32.Checksum(data, crc32cTable)
}

// NewCRC32C returns a new CRC32-Castagnoli hash.Hash32.
func NewCRC32C() hash.Hash32 {
	return crc32.New(crc32cTable)
}

// Seal appends the little-endian checksum of data to data.
func Seal(data []byte) []byte {
	return binary.LittleEndian.AppendUint32(data, CRC32C(data))
}

// Open verifies a trailer written by Seal and returns the payload without it.
func Open(sealed []byte) ([]byte, bool) {
	if len(sealed) < Size {
		return nil, false
	}
	n := len(sealed) - Size
	payload := sealed[:n]
	return payload, binary.LittleEndian.Uint32(sealed[n:]) == CRC32C(payload)
}
