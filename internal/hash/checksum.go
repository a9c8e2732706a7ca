package hash

import "github.com/cespare/xxhash/v2"

// Checksum computes the xxHash64 of the given payload bytes.
//
// Container headers store this value so parse adapters can detect
// truncated or corrupted payloads before decoding them.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}
