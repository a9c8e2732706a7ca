// Package parse provides the built-in parse adapters: the four native
// container formats (raw, palette, rle, octree) and a MagicaVoxel .vox
// reader.
//
// A parse adapter decodes the bytes behind an input cursor into a node
// tree. Container parsers read the 48-byte volume header, verify the
// payload checksum, decompress, and decode the payload into nodes
// covering the stored bounds. Channels the container stores but the
// blit did not request are skipped; requested channels the container
// does not store decode as the all-zero default sample.
//
// Structural defects in the data (bad magic, length or checksum
// mismatches, impossible palette indices, malformed chunk layout) fail
// with errs.ErrCorrupt. Failures of the input itself surface as the
// cursor's errs.ErrIOFailure.
package parse
