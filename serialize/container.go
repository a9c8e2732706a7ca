package serialize

import (
	"fmt"

	"github.com/arloliu/voxblit/adapter"
	"github.com/arloliu/voxblit/compress"
	"github.com/arloliu/voxblit/endian"
	"github.com/arloliu/voxblit/errs"
	"github.com/arloliu/voxblit/format"
	"github.com/arloliu/voxblit/section"
	"github.com/arloliu/voxblit/voxel"
)

// containerSerializer is the shared skeleton of the container formats:
// collect the tree into a grid, build the format's payload, compress,
// and emit header + payload.
type containerSerializer struct {
	magic       uint16
	compression format.CompressionType
	codec       compress.Codec
	build       func(grid *Grid) (payload []byte, release func(), err error)
}

func (s *containerSerializer) SupportedChannels() voxel.ChannelSet {
	return voxel.AllChannels()
}

func (s *containerSerializer) Consume(tree *voxel.Tree, region voxel.RegionRange, channels voxel.ChannelSet, out *adapter.OutputCursor) error {
	grid, err := CollectGrid(tree, region, channels)
	if err != nil {
		return err
	}
	defer grid.Release()

	payload, release, err := s.build(grid)
	if err != nil {
		return err
	}
	if release != nil {
		defer release()
	}

	stored, err := s.codec.Compress(payload)
	if err != nil {
		return fmt.Errorf("compress payload: %w", err)
	}

	header := section.NewVolumeHeader(s.magic, region, channels)
	header.Flag.SetCompression(s.compression)
	header.SetPayload(stored)

	if err := out.Append(header.Bytes()); err != nil {
		return err
	}

	return out.Append(stored)
}

func (s *containerSerializer) Destroy() error {
	return nil
}

// resolveCompression maps a zero-value config field to no compression.
func resolveCompression(c format.CompressionType) format.CompressionType {
	if c == 0 {
		return format.CompressionNone
	}

	return c
}

// appendSamples appends one voxel tuple (channels ascending) to the payload.
func appendSamples(engine endian.EndianEngine, payload []byte, samples []uint32) []byte {
	for _, sample := range samples {
		payload = engine.AppendUint32(payload, sample)
	}

	return payload
}

// newContainerSerializer validates the compression choice and binds the
// payload builder.
func newContainerSerializer(magic uint16, compression format.CompressionType, build func(*Grid) ([]byte, func(), error)) (*containerSerializer, error) {
	compression = resolveCompression(compression)
	codec, err := compress.CreateCodec(compression, "payload")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrConfigMismatch, err)
	}

	return &containerSerializer{
		magic:       magic,
		compression: compression,
		codec:       codec,
		build:       build,
	}, nil
}
