package serialize

import (
	"fmt"

	"github.com/arloliu/voxblit/adapter"
	"github.com/arloliu/voxblit/errs"
	"github.com/arloliu/voxblit/format"
	"github.com/arloliu/voxblit/internal/pool"
	"github.com/arloliu/voxblit/voxel"
)

const ansiReset = "\x1b[0m"

// ColoredTextConfig configures the colored text serializer.
type ColoredTextConfig struct {
	// DownscaleFactor shrinks the rendered region by this factor per axis.
	// Zero means 1 (no downscaling).
	DownscaleFactor uint32
	// DownscaleMode selects the downscale filter.
	DownscaleMode format.DownscaleMode
	// NonColorMaxValue is the sample value rendered at full brightness for
	// scalar channels. Zero means 255.
	NonColorMaxValue uint32
	// Vertical stacks depth slices below each other instead of side by side.
	Vertical bool
}

// coloredTextSerializer renders the region as ANSI truecolor cells, one
// text block per effective channel.
//
// Within a block, depth slices are ordered by ascending z and rows by
// descending y, so +y is up on screen. Each voxel is two spaces on a
// 24-bit background color; every row segment ends with a color reset.
// Horizontal layout joins the slices of a row with a single space;
// vertical layout separates slices with a blank line, as does each
// channel block from the next. Component-packed channels render their
// low three components as RGB; scalar channels render a gray ramp capped
// at NonColorMaxValue.
type coloredTextSerializer struct {
	cfg ColoredTextConfig
}

func newColoredTextSerializer(cfg any) (adapter.SerializeHandler, error) {
	var tc ColoredTextConfig
	switch c := cfg.(type) {
	case nil:
	case ColoredTextConfig:
		tc = c
	case *ColoredTextConfig:
		tc = *c
	default:
		return nil, fmt.Errorf("%w: colored text serializer wants serialize.ColoredTextConfig, got %T", errs.ErrConfigMismatch, cfg)
	}

	if tc.DownscaleFactor == 0 {
		tc.DownscaleFactor = 1
	}
	if tc.DownscaleMode != format.DownscaleNearest && tc.DownscaleMode != format.DownscaleLinear {
		return nil, fmt.Errorf("%w: unknown downscale mode %d", errs.ErrConfigMismatch, tc.DownscaleMode)
	}
	if tc.NonColorMaxValue == 0 {
		tc.NonColorMaxValue = 255
	}

	return &coloredTextSerializer{cfg: tc}, nil
}

func (s *coloredTextSerializer) SupportedChannels() voxel.ChannelSet {
	return voxel.AllChannels()
}

func (s *coloredTextSerializer) Consume(tree *voxel.Tree, region voxel.RegionRange, channels voxel.ChannelSet, out *adapter.OutputCursor) error {
	grid, err := CollectGrid(tree, region, channels)
	if err != nil {
		return err
	}
	defer grid.Release()

	render := grid
	if s.cfg.DownscaleFactor > 1 {
		down, err := Downsample(grid, s.cfg.DownscaleFactor, s.cfg.DownscaleMode)
		if err != nil {
			return err
		}
		defer down.Release()
		render = down
	}

	buf := pool.GetPayloadBuffer()
	defer pool.PutPayloadBuffer(buf)

	s.render(buf, render, channels)

	return out.Append(buf.Bytes())
}

func (s *coloredTextSerializer) Destroy() error {
	return nil
}

func (s *coloredTextSerializer) render(buf *pool.ByteBuffer, grid *Grid, channels voxel.ChannelSet) {
	region := grid.Region()
	ex := int64(region.Extent.X)
	ey := int64(region.Extent.Y)
	ez := int64(region.Extent.Z)

	firstBlock := true
	for channel := range channels.All() {
		if !firstBlock {
			buf.MustWrite([]byte{'\n'})
		}
		firstBlock = false
		ci := channels.Index(channel)

		if s.cfg.Vertical {
			for z := int64(0); z < ez; z++ {
				if z > 0 {
					buf.MustWrite([]byte{'\n'})
				}
				for y := ey - 1; y >= 0; y-- {
					for x := int64(0); x < ex; x++ {
						s.writeCell(buf, grid.atRel(x, y, z)[ci], channel)
					}
					buf.MustWrite([]byte(ansiReset + "\n"))
				}
			}

			continue
		}

		for y := ey - 1; y >= 0; y-- {
			for z := int64(0); z < ez; z++ {
				if z > 0 {
					buf.MustWrite([]byte{' '})
				}
				for x := int64(0); x < ex; x++ {
					s.writeCell(buf, grid.atRel(x, y, z)[ci], channel)
				}
				buf.MustWrite([]byte(ansiReset))
			}
			buf.MustWrite([]byte{'\n'})
		}
	}
}

func (s *coloredTextSerializer) writeCell(buf *pool.ByteBuffer, sample uint32, channel voxel.Channel) {
	var r, g, b uint32
	if channel.IsComponentPacked() {
		r = voxel.Component(sample, 0)
		g = voxel.Component(sample, 1)
		b = voxel.Component(sample, 2)
	} else {
		capped := min(sample, s.cfg.NonColorMaxValue)
		gray := uint32(uint64(capped) * 255 / uint64(s.cfg.NonColorMaxValue))
		r, g, b = gray, gray, gray
	}

	fmt.Fprintf(buf, "\x1b[48;2;%d;%d;%dm  ", r, g, b)
}
