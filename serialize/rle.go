package serialize

import (
	"fmt"
	"slices"

	"github.com/arloliu/voxblit/adapter"
	"github.com/arloliu/voxblit/endian"
	"github.com/arloliu/voxblit/errs"
	"github.com/arloliu/voxblit/format"
	"github.com/arloliu/voxblit/section"
)

// RLEConfig configures the run-length container serializer.
type RLEConfig struct {
	// Compression selects the payload codec. Zero means no compression.
	Compression format.CompressionType
}

// newRLESerializer creates the run-length container serializer.
//
// The payload starts with a little-endian uint32 run count, followed by the
// runs in layout order. Each run is a uint32 length and one tuple of
// channels-ascending uint32 samples. Runs follow the flat voxel order
// (x fastest, then y, then z) and freely cross row and slice boundaries.
func newRLESerializer(cfg any) (adapter.SerializeHandler, error) {
	var rc RLEConfig
	switch c := cfg.(type) {
	case nil:
	case RLEConfig:
		rc = c
	case *RLEConfig:
		rc = *c
	default:
		return nil, fmt.Errorf("%w: rle serializer wants serialize.RLEConfig, got %T", errs.ErrConfigMismatch, cfg)
	}

	return newContainerSerializer(section.MagicRLEV1Opt, rc.Compression, buildRLEPayload)
}

func buildRLEPayload(grid *Grid) ([]byte, func(), error) {
	engine := endian.GetLittleEndianEngine()
	raw := grid.Raw()
	cc := grid.ChannelCount()
	voxels := len(raw) / cc

	payload := make([]byte, 4, 4+voxels)

	var runCount uint32
	for start := 0; start < voxels; {
		tuple := raw[start*cc : (start+1)*cc]
		end := start + 1
		for end < voxels && slices.Equal(raw[end*cc:(end+1)*cc], tuple) {
			end++
		}

		payload = engine.AppendUint32(payload, uint32(end-start))
		payload = appendSamples(engine, payload, tuple)
		runCount++
		start = end
	}

	engine.PutUint32(payload[0:4], runCount)

	return payload, nil, nil
}
