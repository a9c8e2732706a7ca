package serialize

import (
	"fmt"
	"math/bits"

	"github.com/arloliu/voxblit/adapter"
	"github.com/arloliu/voxblit/endian"
	"github.com/arloliu/voxblit/errs"
	"github.com/arloliu/voxblit/format"
	"github.com/arloliu/voxblit/internal/bitio"
	"github.com/arloliu/voxblit/section"
)

// PaletteConfig configures the palette container serializer.
type PaletteConfig struct {
	// Compression selects the payload codec. Zero means no compression.
	Compression format.CompressionType
}

// newPaletteSerializer creates the palette container serializer.
//
// The palette payload tiles the region into 8x8x8 blocks (x fastest, then y,
// then z). Each block stores a little-endian uint32 palette length followed
// by the palette entries in first-appearance order (each entry one tuple of
// channels-ascending uint32 samples). A single-entry block stores only that
// tuple. A multi-entry block additionally stores one palette index per voxel
// in scan order, packed LSB-first at the minimum bit width for the palette
// size and padded to a byte boundary per block.
func newPaletteSerializer(cfg any) (adapter.SerializeHandler, error) {
	var pc PaletteConfig
	switch c := cfg.(type) {
	case nil:
	case PaletteConfig:
		pc = c
	case *PaletteConfig:
		pc = *c
	default:
		return nil, fmt.Errorf("%w: palette serializer wants serialize.PaletteConfig, got %T", errs.ErrConfigMismatch, cfg)
	}

	return newContainerSerializer(section.MagicPaletteV1Opt, pc.Compression, buildPalettePayload)
}

func buildPalettePayload(grid *Grid) ([]byte, func(), error) {
	engine := endian.GetLittleEndianEngine()
	region := grid.Region()
	cc := grid.ChannelCount()

	ex := int64(region.Extent.X)
	ey := int64(region.Extent.Y)
	ez := int64(region.Extent.Z)

	// Dense worst case: every block is a full palette plus indices.
	payload := make([]byte, 0, len(grid.Raw())*4/2+64)

	key := make([]byte, cc*4)
	var entries []uint32
	lookup := make(map[string]uint32)

	for bz := int64(0); bz < ez; bz += section.PaletteBlockSize {
		bd := min(int64(section.PaletteBlockSize), ez-bz)
		for by := int64(0); by < ey; by += section.PaletteBlockSize {
			bh := min(int64(section.PaletteBlockSize), ey-by)
			for bx := int64(0); bx < ex; bx += section.PaletteBlockSize {
				bw := min(int64(section.PaletteBlockSize), ex-bx)

				entries = entries[:0]
				clear(lookup)

				for dz := int64(0); dz < bd; dz++ {
					for dy := int64(0); dy < bh; dy++ {
						for dx := int64(0); dx < bw; dx++ {
							samples := grid.atRel(bx+dx, by+dy, bz+dz)
							for i, sample := range samples {
								engine.PutUint32(key[i*4:], sample)
							}
							if _, ok := lookup[string(key)]; !ok {
								lookup[string(key)] = uint32(len(lookup))
								entries = append(entries, samples...)
							}
						}
					}
				}

				count := uint32(len(lookup))
				payload = engine.AppendUint32(payload, count)
				payload = appendSamples(engine, payload, entries)
				if count == 1 {
					continue
				}

				width := uint8(bits.Len32(count - 1))
				writer := bitio.NewWriter()
				for dz := int64(0); dz < bd; dz++ {
					for dy := int64(0); dy < bh; dy++ {
						for dx := int64(0); dx < bw; dx++ {
							samples := grid.atRel(bx+dx, by+dy, bz+dz)
							for i, sample := range samples {
								engine.PutUint32(key[i*4:], sample)
							}
							writer.WriteBits(lookup[string(key)], width)
						}
					}
				}
				payload = append(payload, writer.Bytes()...)
			}
		}
	}

	return payload, nil, nil
}
