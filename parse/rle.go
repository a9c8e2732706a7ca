package parse

import (
	"fmt"

	"github.com/arloliu/voxblit/adapter"
	"github.com/arloliu/voxblit/errs"
	"github.com/arloliu/voxblit/section"
	"github.com/arloliu/voxblit/voxel"
)

// rleParser decodes the run-length container format.
//
// Stored runs follow flat scan order and may span row and slice
// boundaries; the decoder splits each run into row-aligned boxes and
// emits them as Uniform nodes sharing the run's tuple.
type rleParser struct{}

func newRLEParser(cfg any) (adapter.ParseHandler, error) {
	if err := requireNilConfig("rle", cfg); err != nil {
		return nil, err
	}

	return &rleParser{}, nil
}

func (p *rleParser) SupportedChannels() voxel.ChannelSet {
	return voxel.AllChannels()
}

func (p *rleParser) Build(region voxel.RegionRange, channels voxel.ChannelSet, in *adapter.InputCursor) (*voxel.Tree, error) {
	header, payload, err := readVolume(in, section.MagicRLEV1Opt)
	if err != nil {
		return nil, err
	}

	bounds := header.Bounds
	proj := newProjection(header.Channels, channels)
	r := newPayloadReader(payload)

	runCount, err := r.u32()
	if err != nil {
		return nil, err
	}

	volume := bounds.Volume()
	ex := int64(bounds.Extent.X)
	ey := int64(bounds.Extent.Y)

	var nodes []*voxel.Node
	stored := make([]uint32, proj.storedCount)

	var flat uint64
	for i := uint32(0); i < runCount; i++ {
		length, err := r.u32()
		if err != nil {
			return nil, err
		}
		if length == 0 {
			return nil, fmt.Errorf("%w: zero-length run %d", errs.ErrCorrupt, i)
		}
		if err := r.tuple(stored); err != nil {
			return nil, err
		}
		if flat+uint64(length) > volume {
			return nil, fmt.Errorf("%w: runs cover %d voxels, volume is %d", errs.ErrCorrupt, flat+uint64(length), volume)
		}

		samples := make([]uint32, len(proj.slots))
		proj.apply(stored, samples)

		// Split the run into row-aligned boxes. The boxes share one
		// sample tuple; nodes only ever read it.
		remaining := int64(length)
		for remaining > 0 {
			pos := int64(flat)
			x := pos % ex
			y := (pos / ex) % ey
			z := pos / (ex * ey)
			take := min(remaining, ex-x)

			box := voxel.RegionRange{
				Offset: voxel.Offset3D{
					X: bounds.Offset.X + int32(x),
					Y: bounds.Offset.Y + int32(y),
					Z: bounds.Offset.Z + int32(z),
				},
				Extent: voxel.Extent3D{X: uint32(take), Y: 1, Z: 1},
			}
			nodes = append(nodes, voxel.NewUniformNode(box, samples))

			flat += uint64(take)
			remaining -= take
		}
	}

	if flat != volume {
		return nil, fmt.Errorf("%w: runs cover %d voxels, volume is %d", errs.ErrCorrupt, flat, volume)
	}
	if err := r.expectEnd(); err != nil {
		return nil, err
	}

	return voxel.NewTree(bounds, channels, nodes), nil
}

func (p *rleParser) Destroy() error {
	return nil
}
