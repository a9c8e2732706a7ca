package section

import (
	"fmt"

	"github.com/arloliu/voxblit/errs"
	"github.com/arloliu/voxblit/internal/hash"
	"github.com/arloliu/voxblit/voxel"
)

// VolumeHeader represents the fixed-size header section at the start of
// every voxblit container.
type VolumeHeader struct {
	// Bounds is the volume covered by the payload.
	Bounds voxel.RegionRange // byte offset 4-27
	// Channels is the set of channels stored per voxel, ascending order.
	Channels voxel.ChannelSet // byte offset 28-31
	// PayloadLength is the byte length of the stored payload section,
	// after compression.
	PayloadLength uint64 // byte offset 32-39
	// PayloadChecksum is the xxHash64 checksum of the stored payload
	// bytes, after compression.
	PayloadChecksum uint64 // byte offset 40-47

	// Flag is the packed field for endianness, magic number and
	// compression.
	Flag VolumeFlag // byte offset 0-3
}

// NewVolumeHeader creates a new VolumeHeader for the given container
// magic. The payload length and checksum are set when the serializer
// finishes the payload.
func NewVolumeHeader(magic uint16, bounds voxel.RegionRange, channels voxel.ChannelSet) *VolumeHeader {
	return &VolumeHeader{
		Bounds:   bounds,
		Channels: channels,
		Flag:     NewVolumeFlag(magic),
	}
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be exactly 48 bytes)
//
// Returns:
//   - error: ErrCorrupt wrap if the size is wrong or the flag field is invalid
func (h *VolumeHeader) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return fmt.Errorf("%w: container header requires %d bytes, got %d", errs.ErrCorrupt, HeaderSize, len(data))
	}

	// Parse options first to determine endianness (always little-endian
	// for the Options field itself).
	h.Flag.Options = uint16(data[0]) | (uint16(data[1]) << 8)
	h.Flag.CompressionType = data[2]
	h.Flag.Reserved = data[3]

	engine := h.Flag.GetEndianEngine()

	h.Bounds.Offset.X = int32(engine.Uint32(data[4:8]))
	h.Bounds.Offset.Y = int32(engine.Uint32(data[8:12]))
	h.Bounds.Offset.Z = int32(engine.Uint32(data[12:16]))
	h.Bounds.Extent.X = engine.Uint32(data[16:20])
	h.Bounds.Extent.Y = engine.Uint32(data[20:24])
	h.Bounds.Extent.Z = engine.Uint32(data[24:28])
	h.Channels = voxel.ChannelSet(engine.Uint32(data[28:32]))
	h.PayloadLength = engine.Uint64(data[32:40])
	h.PayloadChecksum = engine.Uint64(data[40:48])

	return h.Flag.Validate()
}

// Bytes serializes the VolumeHeader into a byte slice.
func (h *VolumeHeader) Bytes() []byte {
	b := make([]byte, HeaderSize)

	engine := h.Flag.GetEndianEngine()

	b[0] = byte(h.Flag.Options)
	b[1] = byte(h.Flag.Options >> 8)
	b[2] = h.Flag.CompressionType
	b[3] = h.Flag.Reserved
	engine.PutUint32(b[4:8], uint32(h.Bounds.Offset.X))
	engine.PutUint32(b[8:12], uint32(h.Bounds.Offset.Y))
	engine.PutUint32(b[12:16], uint32(h.Bounds.Offset.Z))
	engine.PutUint32(b[16:20], h.Bounds.Extent.X)
	engine.PutUint32(b[20:24], h.Bounds.Extent.Y)
	engine.PutUint32(b[24:28], h.Bounds.Extent.Z)
	engine.PutUint32(b[28:32], uint32(h.Channels))
	engine.PutUint64(b[32:40], h.PayloadLength)
	engine.PutUint64(b[40:48], h.PayloadChecksum)

	return b
}

// SetPayload records the stored payload's length and checksum.
// Call with the final payload bytes, after compression.
func (h *VolumeHeader) SetPayload(payload []byte) {
	h.PayloadLength = uint64(len(payload))
	h.PayloadChecksum = hash.Checksum(payload)
}

// VerifyPayload checks the stored payload bytes against the header's
// length and checksum.
func (h *VolumeHeader) VerifyPayload(payload []byte) error {
	if uint64(len(payload)) != h.PayloadLength {
		return fmt.Errorf("%w: payload length %d does not match header %d", errs.ErrCorrupt, len(payload), h.PayloadLength)
	}

	if sum := hash.Checksum(payload); sum != h.PayloadChecksum {
		return fmt.Errorf("%w: payload checksum 0x%016X does not match header 0x%016X", errs.ErrCorrupt, sum, h.PayloadChecksum)
	}

	return nil
}

// ExpectMagic checks that the header belongs to the given container
// format.
func (h *VolumeHeader) ExpectMagic(magic uint16) error {
	if got := h.Flag.GetMagicNumber(); got != magic&MagicNumberMask {
		return fmt.Errorf("%w: container magic 0x%04X, want 0x%04X", errs.ErrCorrupt, got, magic&MagicNumberMask)
	}

	return nil
}

// ParseVolumeHeader parses a VolumeHeader from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be at least 48 bytes)
//
// Returns:
//   - VolumeHeader: Parsed header struct
//   - error: ErrCorrupt wrap on truncated data or invalid flag values
func ParseVolumeHeader(data []byte) (VolumeHeader, error) {
	if len(data) < HeaderSize {
		return VolumeHeader{}, fmt.Errorf("%w: container header requires %d bytes, got %d", errs.ErrCorrupt, HeaderSize, len(data))
	}

	h := VolumeHeader{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return VolumeHeader{}, err
	}

	return h, nil
}
