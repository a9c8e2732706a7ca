package section

import (
	"fmt"

	"github.com/arloliu/voxblit/endian"
	"github.com/arloliu/voxblit/errs"
	"github.com/arloliu/voxblit/format"
)

// VolumeFlag represents the packed flag field at the start of a
// container header.
type VolumeFlag struct {
	// Options is a packed field for various options.
	// Bit 0 is the endianness flag, 0 means little-endian, 1 means big-endian.
	// Bits 1-3 are reserved for future use, must be set to 0.
	// Bits 4-15 are the magic number identifying the container format;
	// the low nibble of the magic is the format version:
	//   - 0xEC10: raw container format v1
	//   - 0xED10: palette container format v1
	//   - 0xEE10: rle container format v1
	//   - 0xEF10: octree container format v1
	Options uint16

	// CompressionType is an enum indicating the payload compression.
	CompressionType uint8
	// Reserved must be set to 0.
	Reserved uint8
}

var validMagicNumbers = map[uint16]struct{}{
	MagicRawV1Opt:     {},
	MagicPaletteV1Opt: {},
	MagicRLEV1Opt:     {},
	MagicOctreeV1Opt:  {},
}

var validCompressions = map[uint8]struct{}{
	uint8(format.CompressionNone): {},
	uint8(format.CompressionZstd): {},
	uint8(format.CompressionS2):   {},
	uint8(format.CompressionLZ4):  {},
}

// NewVolumeFlag creates a new VolumeFlag for the given magic number with
// default settings: little-endian, no payload compression.
func NewVolumeFlag(magic uint16) VolumeFlag {
	flag := VolumeFlag{
		Options:         magic & MagicNumberMask,
		CompressionType: uint8(format.CompressionNone),
	}
	flag.WithLittleEndian()

	return flag
}

// IsLittleEndian returns whether the container data is little-endian.
func (f VolumeFlag) IsLittleEndian() bool {
	return (f.Options & EndiannessMask) == 0
}

// IsBigEndian returns whether the container data is big-endian.
func (f VolumeFlag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

// WithLittleEndian sets little-endian byte order.
func (f *VolumeFlag) WithLittleEndian() {
	f.Options &= ^uint16(EndiannessMask)
}

// WithBigEndian sets big-endian byte order.
func (f *VolumeFlag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// GetEndianEngine returns the endian engine matching the endianness flag.
func (f VolumeFlag) GetEndianEngine() endian.EndianEngine {
	if f.IsLittleEndian() {
		return endian.GetLittleEndianEngine()
	}

	return endian.GetBigEndianEngine()
}

// GetMagicNumber returns the magic number from the Options field.
func (f VolumeFlag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// FormatVersion returns the format version encoded in the magic number.
func (f VolumeFlag) FormatVersion() uint8 {
	return uint8((f.Options >> 4) & 0x0F)
}

// Compression returns the payload compression type.
func (f VolumeFlag) Compression() format.CompressionType {
	return format.CompressionType(f.CompressionType)
}

// SetCompression sets the payload compression type.
func (f *VolumeFlag) SetCompression(compression format.CompressionType) {
	f.CompressionType = uint8(compression)
}

// IsValidMagicNumber checks if the magic number identifies a known
// container format.
func (f VolumeFlag) IsValidMagicNumber() bool {
	_, ok := validMagicNumbers[f.GetMagicNumber()]

	return ok
}

// IsValidCompression checks if the compression type is valid.
func (f VolumeFlag) IsValidCompression() bool {
	_, ok := validCompressions[f.CompressionType]

	return ok
}

// Validate checks if the flag field contains valid values.
func (f VolumeFlag) Validate() error {
	if !f.IsValidMagicNumber() {
		return fmt.Errorf("%w: unknown container magic 0x%04X", errs.ErrCorrupt, f.GetMagicNumber())
	}

	if f.Options&ReservedBitsMask != 0 {
		return fmt.Errorf("%w: reserved flag bits set in 0x%04X", errs.ErrCorrupt, f.Options)
	}

	if !f.IsValidCompression() {
		return fmt.Errorf("%w: unknown compression type 0x%02X", errs.ErrCorrupt, f.CompressionType)
	}

	if f.Reserved != 0 {
		return fmt.Errorf("%w: reserved flag byte is 0x%02X", errs.ErrCorrupt, f.Reserved)
	}

	return nil
}
