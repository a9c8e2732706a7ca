package serialize

import (
	"fmt"
	"math"

	"github.com/arloliu/voxblit/internal/pool"
	"github.com/arloliu/voxblit/voxel"
)

// MaxGridSamples bounds how many samples a single Grid may hold.
// A full grid at this bound is 8GiB of samples; regions beyond it
// cannot be materialized and must be blitted in pieces.
const MaxGridSamples = math.MaxInt32

// Grid is a dense sample array covering a region.
//
// Samples are laid out voxel-major in scan order (x fastest, then y,
// then z) with one sample per channel in ascending channel order, the
// same layout Leaf nodes use. Cells no node covered hold all-zero
// samples.
type Grid struct {
	region   voxel.RegionRange
	channels voxel.ChannelSet
	cc       int
	samples  []uint32
	release  func()
}

// NewGrid creates a zero-filled grid covering the region.
func NewGrid(region voxel.RegionRange, channels voxel.ChannelSet) (*Grid, error) {
	cc := channels.Count()
	total := region.Volume() * uint64(cc)
	if total > MaxGridSamples {
		return nil, fmt.Errorf("region %s with %d channels needs %d samples, limit is %d", region, cc, total, MaxGridSamples)
	}

	samples, release := pool.GetSampleSlice(int(total))

	return &Grid{
		region:   region,
		channels: channels,
		cc:       cc,
		samples:  samples,
		release:  release,
	}, nil
}

// CollectGrid drains a node tree into a dense grid over the region.
//
// Nodes are clipped to the region; anything they cover outside it is
// discarded, and region cells no node covers keep default all-zero
// samples. The tree is consumed even though the grid is random-access,
// so lazy parse work happens during collection.
func CollectGrid(tree *voxel.Tree, region voxel.RegionRange, channels voxel.ChannelSet) (*Grid, error) {
	grid, err := NewGrid(region, channels)
	if err != nil {
		return nil, err
	}

	for node, err := range tree.Nodes() {
		if err != nil {
			grid.Release()

			return nil, err
		}
		grid.Blit(node)
	}

	return grid, nil
}

// Blit copies one node's samples into the grid, clipped to the grid's
// region.
func (g *Grid) Blit(node *voxel.Node) {
	node.VisitVoxels(g.region, g.channels, func(p voxel.Offset3D, samples []uint32) {
		copy(g.at(p.X, p.Y, p.Z), samples)
	})
}

// Region returns the region the grid covers.
func (g *Grid) Region() voxel.RegionRange {
	return g.region
}

// Channels returns the grid's channel set.
func (g *Grid) Channels() voxel.ChannelSet {
	return g.channels
}

// ChannelCount returns the number of samples stored per voxel.
func (g *Grid) ChannelCount() int {
	return g.cc
}

// Samples returns the voxel's samples in ascending channel order.
// The returned slice aliases the grid; p must lie inside the region.
func (g *Grid) Samples(p voxel.Offset3D) []uint32 {
	return g.at(p.X, p.Y, p.Z)
}

// Sample returns one channel sample of the voxel at p. channelIndex is
// the channel's rank in the grid's channel set.
func (g *Grid) Sample(p voxel.Offset3D, channelIndex int) uint32 {
	return g.at(p.X, p.Y, p.Z)[channelIndex]
}

// Raw returns the grid's backing sample slice in layout order.
func (g *Grid) Raw() []uint32 {
	return g.samples
}

// Release returns the grid's sample storage to the pool. The grid and
// any slice obtained from it must not be used afterwards.
func (g *Grid) Release() {
	if g.release != nil {
		g.release()
		g.release = nil
		g.samples = nil
	}
}

func (g *Grid) at(x, y, z int32) []uint32 {
	rx := int64(x) - int64(g.region.Offset.X)
	ry := int64(y) - int64(g.region.Offset.Y)
	rz := int64(z) - int64(g.region.Offset.Z)

	return g.atRel(rx, ry, rz)
}

// atRel addresses a voxel by region-relative coordinates.
func (g *Grid) atRel(x, y, z int64) []uint32 {
	nx := int64(g.region.Extent.X)
	ny := int64(g.region.Extent.Y)

	idx := ((z*ny+y)*nx + x) * int64(g.cc)

	return g.samples[idx : idx+int64(g.cc)]
}
