package voxel

import (
	"fmt"

	"github.com/arloliu/voxblit/errs"
)

// NodeKind discriminates the two node shapes in a tree stream.
type NodeKind uint8

const (
	// NodeUniform covers its whole box with one sample per channel.
	NodeUniform NodeKind = 0x1
	// NodeLeaf carries one sample per channel per voxel.
	NodeLeaf NodeKind = 0x2
)

// String returns a human-readable node kind name.
func (k NodeKind) String() string {
	switch k {
	case NodeUniform:
		return "Uniform"
	case NodeLeaf:
		return "Leaf"
	default:
		return "Unknown"
	}
}

// Node is one box of voxel data in a tree stream.
//
// Samples are laid out by kind:
//   - Uniform: one sample per enabled channel, ascending channel order.
//   - Leaf: Range.Volume() * channel count samples, scan order with x
//     fastest then y then z, each voxel's channels ascending.
type Node struct {
	Kind    NodeKind
	Range   RegionRange
	Samples []uint32
}

// NewUniformNode builds a node covering box with one sample per channel.
func NewUniformNode(box RegionRange, samples []uint32) *Node {
	return &Node{Kind: NodeUniform, Range: box, Samples: samples}
}

// NewLeafNode builds a node carrying per-voxel samples for box.
func NewLeafNode(box RegionRange, samples []uint32) *Node {
	return &Node{Kind: NodeLeaf, Range: box, Samples: samples}
}

// Validate checks the sample slice length against the node kind, box
// volume and channel count. Failures wrap ErrCorrupt.
func (n *Node) Validate(channels ChannelSet) error {
	cc := channels.Count()

	var want uint64
	switch n.Kind {
	case NodeUniform:
		want = uint64(cc)
	case NodeLeaf:
		want = n.Range.Volume() * uint64(cc)
	default:
		return fmt.Errorf("%w: node %s has unknown kind 0x%x", errs.ErrCorrupt, n.Range, uint8(n.Kind))
	}

	if uint64(len(n.Samples)) != want {
		return fmt.Errorf("%w: node %s kind=%s carries %d samples, want %d",
			errs.ErrCorrupt, n.Range, n.Kind, len(n.Samples), want)
	}

	return nil
}

// VisitVoxels calls fn for every voxel of the node that lies inside
// clip, in scan order with x fastest. The samples argument holds one
// value per channel in ascending channel order; it aliases the node's
// storage and must not be retained or mutated across calls.
func (n *Node) VisitVoxels(clip RegionRange, channels ChannelSet, fn func(p Offset3D, samples []uint32)) {
	box := n.Range.Intersect(clip)
	if box.IsEmpty() {
		return
	}

	cc := channels.Count()
	if n.Kind == NodeUniform {
		for z := int64(0); z < int64(box.Extent.Z); z++ {
			for y := int64(0); y < int64(box.Extent.Y); y++ {
				for x := int64(0); x < int64(box.Extent.X); x++ {
					p := Offset3D{
						X: box.Offset.X + int32(x),
						Y: box.Offset.Y + int32(y),
						Z: box.Offset.Z + int32(z),
					}
					fn(p, n.Samples)
				}
			}
		}

		return
	}

	// Leaf: index voxels relative to the node's own box.
	nx := uint64(n.Range.Extent.X)
	ny := uint64(n.Range.Extent.Y)
	for z := int64(0); z < int64(box.Extent.Z); z++ {
		rz := uint64(int64(box.Offset.Z) - int64(n.Range.Offset.Z) + z)
		for y := int64(0); y < int64(box.Extent.Y); y++ {
			ry := uint64(int64(box.Offset.Y) - int64(n.Range.Offset.Y) + y)
			rowBase := (rz*ny + ry) * nx
			for x := int64(0); x < int64(box.Extent.X); x++ {
				rx := uint64(int64(box.Offset.X) - int64(n.Range.Offset.X) + x)
				idx := (rowBase + rx) * uint64(cc)
				p := Offset3D{
					X: box.Offset.X + int32(x),
					Y: box.Offset.Y + int32(y),
					Z: box.Offset.Z + int32(z),
				}
				fn(p, n.Samples[idx:idx+uint64(cc)])
			}
		}
	}
}
