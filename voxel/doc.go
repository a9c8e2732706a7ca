// Package voxel defines the data model shared by every adapter role:
// regions, channels, packed samples, and the sparse node tree that a
// parse pass produces and a serialize pass consumes.
//
// # Regions
//
// A RegionRange is an axis-aligned box of voxel coordinates given by a
// signed Offset3D (the lowest corner) and an unsigned Extent3D. Offsets
// may be negative; a zero-volume range is valid and denotes "no voxels".
// Region arithmetic is checked in 64-bit space, so a range whose end
// coordinate would overflow the 32-bit coordinate domain is rejected
// rather than silently wrapped.
//
// # Channels
//
// A Channel names one per-voxel attribute (color, normal, material id,
// and so on). A ChannelSet is a 32-bit set of channels; every operation
// in the pipeline acts on the intersection of the caller's requested set
// with both endpoints' supported sets. Each enabled channel contributes
// exactly one uint32 sample per voxel. Color and Normal samples pack four
// 8-bit components; scalar channels carry their value directly. Zero is
// the universal "no data" sample.
//
// # Node trees
//
// A Tree is a finite, forward-only stream of Node boxes over a bounded
// region. Uniform nodes carry one sample per channel for their whole box;
// Leaf nodes carry one sample per channel per voxel. Trees may be built
// eagerly from a node slice or lazily from a pull function, and are
// consumed exactly once; walking a tree after exhaustion fails with
// ErrTreeConsumed. Nodes may extend past the region being translated;
// consumers clip.
package voxel
