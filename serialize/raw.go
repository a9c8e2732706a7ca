package serialize

import (
	"fmt"

	"github.com/arloliu/voxblit/adapter"
	"github.com/arloliu/voxblit/endian"
	"github.com/arloliu/voxblit/errs"
	"github.com/arloliu/voxblit/format"
	"github.com/arloliu/voxblit/internal/pool"
	"github.com/arloliu/voxblit/section"
)

// RawConfig configures the raw container serializer.
type RawConfig struct {
	// Compression selects the payload codec. Zero means no compression.
	Compression format.CompressionType
}

// newRawSerializer creates the raw container serializer.
//
// The raw payload is every grid sample in layout order (x fastest, then
// y, then z, channels ascending per voxel), little-endian. It is the
// densest and simplest container, and the only one whose parse side can
// stream lazily without decoding state.
func newRawSerializer(cfg any) (adapter.SerializeHandler, error) {
	var rc RawConfig
	switch c := cfg.(type) {
	case nil:
	case RawConfig:
		rc = c
	case *RawConfig:
		rc = *c
	default:
		return nil, fmt.Errorf("%w: raw serializer wants serialize.RawConfig, got %T", errs.ErrConfigMismatch, cfg)
	}

	return newContainerSerializer(section.MagicRawV1Opt, rc.Compression, buildRawPayload)
}

func buildRawPayload(grid *Grid) ([]byte, func(), error) {
	engine := endian.GetLittleEndianEngine()
	raw := grid.Raw()

	payload, release := pool.GetByteSlice(len(raw) * 4)
	for i, sample := range raw {
		engine.PutUint32(payload[i*4:], sample)
	}

	return payload, release, nil
}
