package serialize

import (
	"fmt"
	"math"

	"github.com/arloliu/voxblit/format"
	"github.com/arloliu/voxblit/voxel"
)

// Downsample resamples a grid by an integer factor and returns a new
// grid whose extent is the ceiling division of the source extent. The
// output keeps the source region's offset as its anchor.
//
// Nearest picks each cell's sample from the lowest corner of its source
// box. Linear averages the source box: component-packed channels are
// averaged per 8-bit component, scalar channels over the raw sample
// value, both rounding ties to even. Source boxes are clipped at the
// region edge, so partial cells average only real voxels.
//
// The caller owns the returned grid and must Release it separately from
// the source. A factor of 1 returns a plain copy.
func Downsample(grid *Grid, factor uint32, mode format.DownscaleMode) (*Grid, error) {
	if factor == 0 {
		return nil, fmt.Errorf("downscale factor must be at least 1")
	}
	if mode != format.DownscaleNearest && mode != format.DownscaleLinear {
		return nil, fmt.Errorf("unknown downscale mode 0x%X", uint8(mode))
	}

	src := grid.Region()
	dstRegion := voxel.RegionRange{
		Offset: src.Offset,
		Extent: voxel.Extent3D{
			X: ceilDiv(src.Extent.X, factor),
			Y: ceilDiv(src.Extent.Y, factor),
			Z: ceilDiv(src.Extent.Z, factor),
		},
	}

	dst, err := NewGrid(dstRegion, grid.Channels())
	if err != nil {
		return nil, err
	}

	if factor == 1 {
		copy(dst.Raw(), grid.Raw())

		return dst, nil
	}

	channels := make([]voxel.Channel, 0, grid.ChannelCount())
	for c := range grid.Channels().All() {
		channels = append(channels, c)
	}

	f := int64(factor)
	ex, ey, ez := int64(src.Extent.X), int64(src.Extent.Y), int64(src.Extent.Z)

	for oz := int64(0); oz < int64(dstRegion.Extent.Z); oz++ {
		for oy := int64(0); oy < int64(dstRegion.Extent.Y); oy++ {
			for ox := int64(0); ox < int64(dstRegion.Extent.X); ox++ {
				bx, by, bz := ox*f, oy*f, oz*f
				bw := min(f, ex-bx)
				bh := min(f, ey-by)
				bd := min(f, ez-bz)

				out := dst.at(
					int32(int64(dstRegion.Offset.X)+ox),
					int32(int64(dstRegion.Offset.Y)+oy),
					int32(int64(dstRegion.Offset.Z)+oz),
				)

				if mode == format.DownscaleNearest {
					corner := grid.at(
						int32(int64(src.Offset.X)+bx),
						int32(int64(src.Offset.Y)+by),
						int32(int64(src.Offset.Z)+bz),
					)
					copy(out, corner)

					continue
				}

				averageBox(grid, channels, bx, by, bz, bw, bh, bd, out)
			}
		}
	}

	return dst, nil
}

// averageBox computes the linear mean of one source box into out.
func averageBox(grid *Grid, channels []voxel.Channel, bx, by, bz, bw, bh, bd int64, out []uint32) {
	src := grid.Region()
	count := float64(bw * bh * bd)

	// Component sums: 4 lanes per channel. Scalar channels use lane 0
	// for the whole sample.
	sums := make([]float64, len(channels)*4)

	for dz := int64(0); dz < bd; dz++ {
		for dy := int64(0); dy < bh; dy++ {
			for dx := int64(0); dx < bw; dx++ {
				samples := grid.at(
					int32(int64(src.Offset.X)+bx+dx),
					int32(int64(src.Offset.Y)+by+dy),
					int32(int64(src.Offset.Z)+bz+dz),
				)
				for i, c := range channels {
					if c.IsComponentPacked() {
						for lane := 0; lane < 4; lane++ {
							sums[i*4+lane] += float64(voxel.Component(samples[i], lane))
						}
					} else {
						sums[i*4] += float64(samples[i])
					}
				}
			}
		}
	}

	for i, c := range channels {
		if c.IsComponentPacked() {
			var packed uint32
			for lane := 0; lane < 4; lane++ {
				mean := uint32(math.RoundToEven(sums[i*4+lane] / count))
				packed |= (mean & 0xFF) << (8 * lane)
			}
			out[i] = packed
		} else {
			out[i] = uint32(math.RoundToEven(sums[i*4] / count))
		}
	}
}

func ceilDiv(a, b uint32) uint32 {
	return uint32((uint64(a) + uint64(b) - 1) / uint64(b))
}
