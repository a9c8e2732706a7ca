// Package section defines the shared on-disk layout of voxblit
// containers.
//
// Every voxblit container (raw, palette, rle, octree) starts with a
// fixed 48-byte VolumeHeader followed by a single payload section. The
// header records the container's magic number and format version, the
// payload compression codec, the volume bounds and channel set, and the
// stored payload's length and xxHash64 checksum.
//
// The first two header bytes (the flag options) are always little-endian
// so a reader can discover the declared byte order before decoding the
// rest of the header. All built-in serializers write little-endian; the
// endianness bit exists so the header format does not need a revision if
// a big-endian producer ever appears.
//
// Parsing is strict: unknown magic numbers, reserved bits, invalid
// compression kinds, and checksum mismatches all surface as
// errs.ErrCorrupt wraps.
package section
