package parse

import (
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/voxblit/adapter"
	"github.com/arloliu/voxblit/endian"
	"github.com/arloliu/voxblit/errs"
	"github.com/arloliu/voxblit/format"
	"github.com/arloliu/voxblit/section"
	"github.com/arloliu/voxblit/voxel"
)

// rawParser decodes the raw container format.
//
// An uncompressed raw payload is decoded lazily, one z slab per node,
// reading each slab from the cursor only when the consumer pulls it;
// the payload checksum is accumulated alongside and verified with the
// final slab. Compressed payloads are loaded and verified up front.
type rawParser struct{}

func newRawParser(cfg any) (adapter.ParseHandler, error) {
	if err := requireNilConfig("raw", cfg); err != nil {
		return nil, err
	}

	return &rawParser{}, nil
}

func (p *rawParser) SupportedChannels() voxel.ChannelSet {
	return voxel.AllChannels()
}

func (p *rawParser) Build(region voxel.RegionRange, channels voxel.ChannelSet, in *adapter.InputCursor) (*voxel.Tree, error) {
	headerBytes, err := in.Next(section.HeaderSize)
	if err != nil {
		return nil, err
	}

	header, err := section.ParseVolumeHeader(headerBytes)
	if err != nil {
		return nil, err
	}
	if err := header.ExpectMagic(section.MagicRawV1Opt); err != nil {
		return nil, err
	}

	proj := newProjection(header.Channels, channels)
	want := header.Bounds.Volume() * uint64(proj.storedCount) * 4
	if want > maxPayloadBytes {
		return nil, fmt.Errorf("%w: raw volume %s with %d channels needs %d bytes, limit is %d", errs.ErrCorrupt, header.Bounds, proj.storedCount, want, maxPayloadBytes)
	}

	if header.Flag.Compression() == format.CompressionNone {
		if header.PayloadLength != want {
			return nil, fmt.Errorf("%w: raw payload is %d bytes, volume %s with %d channels needs %d", errs.ErrCorrupt, header.PayloadLength, header.Bounds, proj.storedCount, want)
		}

		return lazyRawTree(&header, proj, channels, in), nil
	}

	payload, err := loadPayload(in, &header)
	if err != nil {
		return nil, err
	}
	if uint64(len(payload)) != want {
		return nil, fmt.Errorf("%w: raw payload is %d bytes, volume %s with %d channels needs %d", errs.ErrCorrupt, len(payload), header.Bounds, proj.storedCount, want)
	}

	return eagerRawTree(&header, proj, channels, payload), nil
}

func (p *rawParser) Destroy() error {
	return nil
}

func lazyRawTree(header *section.VolumeHeader, proj projection, effective voxel.ChannelSet, in *adapter.InputCursor) *voxel.Tree {
	bounds := header.Bounds
	engine := endian.GetLittleEndianEngine()
	slabLen := int(bounds.Extent.X) * int(bounds.Extent.Y) * proj.storedCount * 4

	digest := xxhash.New()
	ez := int64(bounds.Extent.Z)
	var zi int64

	pull := func() (*voxel.Node, error) {
		if zi >= ez {
			return nil, nil
		}

		data, err := in.Next(slabLen)
		if err != nil {
			return nil, err
		}
		_, _ = digest.Write(data)
		if zi == ez-1 && digest.Sum64() != header.PayloadChecksum {
			return nil, fmt.Errorf("%w: payload checksum 0x%016X does not match header 0x%016X", errs.ErrCorrupt, digest.Sum64(), header.PayloadChecksum)
		}

		node := decodeRawSlab(engine, proj, bounds, data, zi)
		zi++

		return node, nil
	}

	return voxel.NewLazyTree(bounds, effective, pull)
}

func eagerRawTree(header *section.VolumeHeader, proj projection, effective voxel.ChannelSet, payload []byte) *voxel.Tree {
	bounds := header.Bounds
	engine := endian.GetLittleEndianEngine()
	slabLen := int(bounds.Extent.X) * int(bounds.Extent.Y) * proj.storedCount * 4

	nodes := make([]*voxel.Node, 0, bounds.Extent.Z)
	for zi := int64(0); zi < int64(bounds.Extent.Z); zi++ {
		start := int(zi) * slabLen
		nodes = append(nodes, decodeRawSlab(engine, proj, bounds, payload[start:start+slabLen], zi))
	}

	return voxel.NewTree(bounds, effective, nodes)
}

// decodeRawSlab turns one z slab of stored tuples into a leaf node in
// the effective channel layout.
func decodeRawSlab(engine endian.EndianEngine, proj projection, bounds voxel.RegionRange, data []byte, zi int64) *voxel.Node {
	cc := len(proj.slots)
	voxels := int(bounds.Extent.X) * int(bounds.Extent.Y)
	stride := proj.storedCount * 4

	samples := make([]uint32, voxels*cc)
	for v := 0; v < voxels; v++ {
		proj.decode(engine, data[v*stride:], samples[v*cc:(v+1)*cc])
	}

	box := voxel.RegionRange{
		Offset: voxel.Offset3D{X: bounds.Offset.X, Y: bounds.Offset.Y, Z: bounds.Offset.Z + int32(zi)},
		Extent: voxel.Extent3D{X: bounds.Extent.X, Y: bounds.Extent.Y, Z: 1},
	}

	return voxel.NewLeafNode(box, samples)
}
