package parse

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/voxblit/endian"
	"github.com/arloliu/voxblit/errs"
	"github.com/arloliu/voxblit/section"
	"github.com/arloliu/voxblit/voxel"
)

func TestPaletteParser_RejectsEmptyBlockPalette(t *testing.T) {
	bounds := makeRegion(0, 0, 0, 2, 1, 1)
	channels := voxel.NewChannelSet(voxel.ChannelMaterialID)

	engine := endian.GetLittleEndianEngine()
	payload := engine.AppendUint32(nil, 0)
	data := makeContainer(section.MagicPaletteV1Opt, bounds, channels, payload)

	_, err := buildParser(t, newPaletteParser, data, bounds, channels)
	require.ErrorIs(t, err, errs.ErrCorrupt)
	require.Contains(t, err.Error(), "0 entries")
}

func TestPaletteParser_RejectsOversizedBlockPalette(t *testing.T) {
	bounds := makeRegion(0, 0, 0, 2, 1, 1)
	channels := voxel.NewChannelSet(voxel.ChannelMaterialID)

	engine := endian.GetLittleEndianEngine()
	payload := engine.AppendUint32(nil, 3)
	data := makeContainer(section.MagicPaletteV1Opt, bounds, channels, payload)

	_, err := buildParser(t, newPaletteParser, data, bounds, channels)
	require.ErrorIs(t, err, errs.ErrCorrupt)
	require.Contains(t, err.Error(), "3 entries for 2 voxels")
}

func TestPaletteParser_RejectsIndexOutOfRange(t *testing.T) {
	bounds := makeRegion(0, 0, 0, 4, 1, 1)
	channels := voxel.NewChannelSet(voxel.ChannelMaterialID)

	// Three entries force two-bit indices; index 3 has no entry.
	engine := endian.GetLittleEndianEngine()
	payload := engine.AppendUint32(nil, 3)
	for _, v := range []uint32{1, 2, 3} {
		payload = engine.AppendUint32(payload, v)
	}
	payload = append(payload, 0b11_10_01_00)
	data := makeContainer(section.MagicPaletteV1Opt, bounds, channels, payload)

	_, err := buildParser(t, newPaletteParser, data, bounds, channels)
	require.ErrorIs(t, err, errs.ErrCorrupt)
	require.Contains(t, err.Error(), "palette index 3 out of range")
}

func TestPaletteParser_RejectsTrailingBytes(t *testing.T) {
	bounds := makeRegion(0, 0, 0, 2, 1, 1)
	channels := voxel.NewChannelSet(voxel.ChannelMaterialID)

	engine := endian.GetLittleEndianEngine()
	payload := engine.AppendUint32(nil, 1)
	payload = engine.AppendUint32(payload, 9)
	payload = append(payload, 0xFF)
	data := makeContainer(section.MagicPaletteV1Opt, bounds, channels, payload)

	_, err := buildParser(t, newPaletteParser, data, bounds, channels)
	require.ErrorIs(t, err, errs.ErrCorrupt)
	require.Contains(t, err.Error(), "trailing")
}

func TestPaletteParser_CorruptedPayloadChecksum(t *testing.T) {
	region := makeRegion(0, 0, 0, 2, 1, 1)
	channels := voxel.NewChannelSet(voxel.ChannelMaterialID)
	data := serializeContainer(t, "palette", nil, region, channels, []uint32{1, 2})

	data[len(data)-1] ^= 0x01

	_, err := buildParser(t, newPaletteParser, data, region, channels)
	require.ErrorIs(t, err, errs.ErrCorrupt)
	require.Contains(t, err.Error(), "checksum")
}
