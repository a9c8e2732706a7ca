// Package serialize provides the built-in Serialize adapters.
//
// Four container serializers write the voxblit container formats (raw,
// palette, rle, octree), and colored_text renders a region as ANSI
// truecolor art for terminals. Register seeds a registry with all five.
//
// # Containers
//
// Container serializers share one flow: drain the node tree into a
// dense region Grid (voxels outside every node default to all-zero
// samples), lay the format's payload out little-endian, optionally
// compress it, and emit a section.VolumeHeader followed by the payload.
// Each serializer's config selects the payload compression codec.
//
// # Grid and downsampling
//
// CollectGrid materializes a node tree over a region; Downsample
// resamples a grid by an integer factor, either picking the lowest
// corner of each cell (nearest) or averaging the cell (linear,
// per 8-bit component for component-packed channels, ties to even).
// Both are exported because parse-side tests and external serializers
// need the same machinery.
package serialize
