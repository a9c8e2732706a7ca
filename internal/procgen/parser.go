package procgen

import (
	"fmt"

	"github.com/arloliu/voxblit/adapter"
	"github.com/arloliu/voxblit/errs"
	"github.com/arloliu/voxblit/voxel"
)

// parser serves the generated terrain as a parse adapter. It never
// touches its input; the requested region alone decides what it emits.
type parser struct{}

// NewParser creates the procedural terrain parse adapter. It takes no
// configuration.
func NewParser(cfg any) (adapter.ParseHandler, error) {
	if cfg != nil {
		return nil, fmt.Errorf("%w: procedural parser takes no configuration, got %T", errs.ErrConfigMismatch, cfg)
	}

	return &parser{}, nil
}

func (p *parser) SupportedChannels() voxel.ChannelSet {
	return voxel.NewChannelSet(voxel.ChannelColor, voxel.ChannelNormal, voxel.ChannelMaterialID)
}

// Build returns a lazy tree generating one voxel per node in scan order
// over the requested region.
func (p *parser) Build(region voxel.RegionRange, channels voxel.ChannelSet, _ *adapter.InputCursor) (*voxel.Tree, error) {
	colorSlot, normalSlot, idSlot := -1, -1, -1
	if channels.Contains(voxel.ChannelColor) {
		colorSlot = channels.Index(voxel.ChannelColor)
	}
	if channels.Contains(voxel.ChannelNormal) {
		normalSlot = channels.Index(voxel.ChannelNormal)
	}
	if channels.Contains(voxel.ChannelMaterialID) {
		idSlot = channels.Index(voxel.ChannelMaterialID)
	}

	cc := channels.Count()
	ex := int64(region.Extent.X)
	ey := int64(region.Extent.Y)
	volume := region.Volume()

	var flat uint64
	pull := func() (*voxel.Node, error) {
		if flat >= volume {
			return nil, nil
		}

		pos := int64(flat)
		flat++
		x := region.Offset.X + int32(pos%ex)
		y := region.Offset.Y + int32((pos/ex)%ey)
		z := region.Offset.Z + int32(pos/(ex*ey))

		color, normal, id := sampleVoxel(x, y, z)
		samples := make([]uint32, cc)
		if colorSlot >= 0 {
			samples[colorSlot] = color
		}
		if normalSlot >= 0 {
			samples[normalSlot] = normal
		}
		if idSlot >= 0 {
			samples[idSlot] = id
		}

		box := voxel.RegionRange{
			Offset: voxel.Offset3D{X: x, Y: y, Z: z},
			Extent: voxel.Extent3D{X: 1, Y: 1, Z: 1},
		}

		return voxel.NewUniformNode(box, samples), nil
	}

	return voxel.NewLazyTree(region, channels, pull), nil
}

func (p *parser) Destroy() error {
	return nil
}

// Register adds the procedural terrain parser to reg under the name
// "procedural".
func Register(reg *adapter.Registry) error {
	return reg.RegisterParse("procedural", NewParser)
}
