package serialize

import (
	"fmt"
	"math/bits"
	"slices"

	"github.com/arloliu/voxblit/adapter"
	"github.com/arloliu/voxblit/endian"
	"github.com/arloliu/voxblit/errs"
	"github.com/arloliu/voxblit/format"
	"github.com/arloliu/voxblit/section"
)

// OctreeConfig configures the octree container serializer.
type OctreeConfig struct {
	// Compression selects the payload codec. Zero means no compression.
	Compression format.CompressionType
}

// newOctreeSerializer creates the octree container serializer.
//
// The payload starts with a little-endian uint32 root cube edge length: the
// smallest power of two covering the region's largest extent, anchored at
// the region offset. A depth-first node stream follows. Each node is one tag
// byte: 0x00 for a leaf followed by its tuple of channels-ascending uint32
// samples, 0x01 for a branch followed by its children in child-index order
// (dz<<2 | dy<<1 | dx). Children whose cube lies entirely outside the region
// extent are omitted from the stream. A cube that is uniform across its
// in-extent voxels is always emitted as a leaf.
func newOctreeSerializer(cfg any) (adapter.SerializeHandler, error) {
	var oc OctreeConfig
	switch c := cfg.(type) {
	case nil:
	case OctreeConfig:
		oc = c
	case *OctreeConfig:
		oc = *c
	default:
		return nil, fmt.Errorf("%w: octree serializer wants serialize.OctreeConfig, got %T", errs.ErrConfigMismatch, cfg)
	}

	return newContainerSerializer(section.MagicOctreeV1Opt, oc.Compression, buildOctreePayload)
}

func buildOctreePayload(grid *Grid) ([]byte, func(), error) {
	engine := endian.GetLittleEndianEngine()
	region := grid.Region()

	maxDim := max(region.Extent.X, region.Extent.Y, region.Extent.Z)
	rootSize := int64(1) << bits.Len32(uint32(maxDim)-1)

	b := &octreeBuilder{
		grid:    grid,
		engine:  engine,
		ex:      int64(region.Extent.X),
		ey:      int64(region.Extent.Y),
		ez:      int64(region.Extent.Z),
		payload: engine.AppendUint32(make([]byte, 0, 512), uint32(rootSize)),
	}
	b.emit(0, 0, 0, rootSize)

	return b.payload, nil, nil
}

type octreeBuilder struct {
	grid    *Grid
	engine  endian.EndianEngine
	ex      int64
	ey      int64
	ez      int64
	payload []byte
}

// emit appends the node for the cube at region-relative (x, y, z). The
// caller guarantees the cube intersects the extent.
func (b *octreeBuilder) emit(x, y, z, size int64) {
	if size == 1 || b.uniform(x, y, z, size) {
		b.payload = append(b.payload, section.OctreeLeafTag)
		b.payload = appendSamples(b.engine, b.payload, b.grid.atRel(x, y, z))

		return
	}

	b.payload = append(b.payload, section.OctreeBranchTag)
	half := size / 2
	for child := int64(0); child < 8; child++ {
		cx := x + (child&1)*half
		cy := y + ((child>>1)&1)*half
		cz := z + ((child>>2)&1)*half
		if cx >= b.ex || cy >= b.ey || cz >= b.ez {
			continue
		}
		b.emit(cx, cy, cz, half)
	}
}

func (b *octreeBuilder) uniform(x, y, z, size int64) bool {
	w := min(size, b.ex-x)
	h := min(size, b.ey-y)
	d := min(size, b.ez-z)

	first := b.grid.atRel(x, y, z)
	for dz := int64(0); dz < d; dz++ {
		for dy := int64(0); dy < h; dy++ {
			for dx := int64(0); dx < w; dx++ {
				if !slices.Equal(b.grid.atRel(x+dx, y+dy, z+dz), first) {
					return false
				}
			}
		}
	}

	return true
}
