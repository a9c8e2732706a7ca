package parse

import (
	"fmt"
	"math/bits"

	"github.com/arloliu/voxblit/adapter"
	"github.com/arloliu/voxblit/errs"
	"github.com/arloliu/voxblit/section"
	"github.com/arloliu/voxblit/voxel"
)

// octreeParser decodes the octree container format.
//
// The depth-first tag stream is walked in the encoder's child order
// (x fastest, then y, then z), skipping the cubes that lie outside the
// stored extent; every leaf becomes one Uniform node clipped to the
// extent.
type octreeParser struct{}

func newOctreeParser(cfg any) (adapter.ParseHandler, error) {
	if err := requireNilConfig("octree", cfg); err != nil {
		return nil, err
	}

	return &octreeParser{}, nil
}

func (p *octreeParser) SupportedChannels() voxel.ChannelSet {
	return voxel.AllChannels()
}

func (p *octreeParser) Build(region voxel.RegionRange, channels voxel.ChannelSet, in *adapter.InputCursor) (*voxel.Tree, error) {
	header, payload, err := readVolume(in, section.MagicOctreeV1Opt)
	if err != nil {
		return nil, err
	}

	bounds := header.Bounds
	r := newPayloadReader(payload)

	rootSize, err := r.u32()
	if err != nil {
		return nil, err
	}
	maxDim := max(bounds.Extent.X, bounds.Extent.Y, bounds.Extent.Z)
	if bits.OnesCount32(rootSize) != 1 || rootSize < maxDim {
		return nil, fmt.Errorf("%w: root size %d cannot cover extent %dx%dx%d", errs.ErrCorrupt, rootSize, bounds.Extent.X, bounds.Extent.Y, bounds.Extent.Z)
	}

	d := &octreeDecoder{
		r:      r,
		proj:   newProjection(header.Channels, channels),
		bounds: bounds,
		stored: make([]uint32, header.Channels.Count()),
	}
	if !bounds.IsEmpty() {
		if err := d.walk(0, 0, 0, int64(rootSize)); err != nil {
			return nil, err
		}
	}

	if err := r.expectEnd(); err != nil {
		return nil, err
	}

	return voxel.NewTree(bounds, channels, d.nodes), nil
}

func (p *octreeParser) Destroy() error {
	return nil
}

type octreeDecoder struct {
	r      *payloadReader
	proj   projection
	bounds voxel.RegionRange
	stored []uint32
	nodes  []*voxel.Node
}

// walk decodes the node for the cube at extent-relative (x, y, z). The
// caller guarantees the cube intersects the extent.
func (d *octreeDecoder) walk(x, y, z, size int64) error {
	tag, err := d.r.u8()
	if err != nil {
		return err
	}

	switch tag {
	case section.OctreeLeafTag:
		if err := d.r.tuple(d.stored); err != nil {
			return err
		}
		samples := make([]uint32, len(d.proj.slots))
		d.proj.apply(d.stored, samples)

		box := voxel.RegionRange{
			Offset: voxel.Offset3D{
				X: d.bounds.Offset.X + int32(x),
				Y: d.bounds.Offset.Y + int32(y),
				Z: d.bounds.Offset.Z + int32(z),
			},
			Extent: voxel.Extent3D{
				X: uint32(min(size, int64(d.bounds.Extent.X)-x)),
				Y: uint32(min(size, int64(d.bounds.Extent.Y)-y)),
				Z: uint32(min(size, int64(d.bounds.Extent.Z)-z)),
			},
		}
		d.nodes = append(d.nodes, voxel.NewUniformNode(box, samples))

		return nil

	case section.OctreeBranchTag:
		if size == 1 {
			return fmt.Errorf("%w: branch node at unit cube", errs.ErrCorrupt)
		}
		half := size / 2
		for child := int64(0); child < 8; child++ {
			cx := x + (child&1)*half
			cy := y + ((child>>1)&1)*half
			cz := z + ((child>>2)&1)*half
			if cx >= int64(d.bounds.Extent.X) || cy >= int64(d.bounds.Extent.Y) || cz >= int64(d.bounds.Extent.Z) {
				continue
			}
			if err := d.walk(cx, cy, cz, half); err != nil {
				return err
			}
		}

		return nil

	default:
		return fmt.Errorf("%w: unknown octree tag 0x%02X", errs.ErrCorrupt, tag)
	}
}
