package parse

import (
	"fmt"
	"math/bits"

	"github.com/arloliu/voxblit/adapter"
	"github.com/arloliu/voxblit/errs"
	"github.com/arloliu/voxblit/internal/bitio"
	"github.com/arloliu/voxblit/section"
	"github.com/arloliu/voxblit/voxel"
)

// paletteParser decodes the palette container format.
//
// Blocks decode in the same order the serializer emits them: 8x8x8
// edge-clipped cubes, x fastest. A single-entry block becomes one
// Uniform node covering the block; a multi-entry block becomes a Leaf
// node rebuilt from its bit-packed indices.
type paletteParser struct{}

func newPaletteParser(cfg any) (adapter.ParseHandler, error) {
	if err := requireNilConfig("palette", cfg); err != nil {
		return nil, err
	}

	return &paletteParser{}, nil
}

func (p *paletteParser) SupportedChannels() voxel.ChannelSet {
	return voxel.AllChannels()
}

func (p *paletteParser) Build(region voxel.RegionRange, channels voxel.ChannelSet, in *adapter.InputCursor) (*voxel.Tree, error) {
	header, payload, err := readVolume(in, section.MagicPaletteV1Opt)
	if err != nil {
		return nil, err
	}

	bounds := header.Bounds
	proj := newProjection(header.Channels, channels)
	cc := len(proj.slots)
	r := newPayloadReader(payload)

	ex := int64(bounds.Extent.X)
	ey := int64(bounds.Extent.Y)
	ez := int64(bounds.Extent.Z)

	var nodes []*voxel.Node
	entries := make([]uint32, 0, 16*proj.storedCount)

	for bz := int64(0); bz < ez; bz += section.PaletteBlockSize {
		bd := min(int64(section.PaletteBlockSize), ez-bz)
		for by := int64(0); by < ey; by += section.PaletteBlockSize {
			bh := min(int64(section.PaletteBlockSize), ey-by)
			for bx := int64(0); bx < ex; bx += section.PaletteBlockSize {
				bw := min(int64(section.PaletteBlockSize), ex-bx)
				blockVoxels := bw * bh * bd

				count, err := r.u32()
				if err != nil {
					return nil, err
				}
				if count == 0 || int64(count) > blockVoxels {
					return nil, fmt.Errorf("%w: block palette holds %d entries for %d voxels", errs.ErrCorrupt, count, blockVoxels)
				}

				if need := int(count) * proj.storedCount; cap(entries) < need {
					entries = make([]uint32, need)
				} else {
					entries = entries[:need]
				}
				if err := r.tuple(entries); err != nil {
					return nil, err
				}

				box := voxel.RegionRange{
					Offset: voxel.Offset3D{
						X: bounds.Offset.X + int32(bx),
						Y: bounds.Offset.Y + int32(by),
						Z: bounds.Offset.Z + int32(bz),
					},
					Extent: voxel.Extent3D{X: uint32(bw), Y: uint32(bh), Z: uint32(bd)},
				}

				if count == 1 {
					samples := make([]uint32, cc)
					proj.apply(entries, samples)
					nodes = append(nodes, voxel.NewUniformNode(box, samples))

					continue
				}

				width := uint8(bits.Len32(count - 1))
				packed, err := r.take(int((blockVoxels*int64(width) + 7) / 8))
				if err != nil {
					return nil, err
				}

				br := bitio.NewReader(packed)
				samples := make([]uint32, blockVoxels*int64(cc))
				for v := int64(0); v < blockVoxels; v++ {
					idx, err := br.ReadBits(width)
					if err != nil {
						return nil, fmt.Errorf("%w: block indices truncated: %w", errs.ErrCorrupt, err)
					}
					if idx >= count {
						return nil, fmt.Errorf("%w: palette index %d out of range, block holds %d entries", errs.ErrCorrupt, idx, count)
					}
					proj.apply(entries[int(idx)*proj.storedCount:(int(idx)+1)*proj.storedCount], samples[v*int64(cc):(v+1)*int64(cc)])
				}
				nodes = append(nodes, voxel.NewLeafNode(box, samples))
			}
		}
	}

	if err := r.expectEnd(); err != nil {
		return nil, err
	}

	return voxel.NewTree(bounds, channels, nodes), nil
}

func (p *paletteParser) Destroy() error {
	return nil
}
