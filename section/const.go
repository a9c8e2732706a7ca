package section

const (
	// Bit masks for the flag options field
	EndiannessMask   = 0x0001 // Mask for endianness bit (bit 0)
	ReservedBitsMask = 0x000E // Mask for reserved bits (bits 1-3)
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15)

	// Magic numbers (bits 4-15); the low magic nibble is the format version.
	MagicRawV1Opt     = 0xEC10 // Version 1 magic number for the raw container format.
	MagicPaletteV1Opt = 0xED10 // Version 1 magic number for the palette container format.
	MagicRLEV1Opt     = 0xEE10 // Version 1 magic number for the rle container format.
	MagicOctreeV1Opt  = 0xEF10 // Version 1 magic number for the octree container format.
)

// offsets and section sizes in a container
const (
	HeaderSize    = 48         // fixed header size in bytes (shared by all container formats)
	PayloadOffset = HeaderSize // byte offset where the payload section starts
)

// Payload grammar constants shared by the encoders and decoders.
const (
	// PaletteBlockSize is the cube edge length of one palette payload
	// block; blocks on the volume's far faces are clipped.
	PaletteBlockSize = 8

	// OctreeLeafTag and OctreeBranchTag discriminate octree payload
	// nodes in the depth-first stream.
	OctreeLeafTag   = 0x00
	OctreeBranchTag = 0x01
)
