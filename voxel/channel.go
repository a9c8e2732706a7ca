package voxel

import (
	"iter"
	"math/bits"
	"strings"
)

// Channel identifies one per-voxel attribute.
type Channel uint8

const (
	// ChannelColor is a packed 8-bit RGBA color.
	ChannelColor Channel = 0
	// ChannelNormal is a packed 8-bit signed-remapped surface normal.
	ChannelNormal Channel = 1
	// ChannelMaterialID is an opaque material index.
	ChannelMaterialID Channel = 2
	// ChannelRoughness is a scalar surface roughness value.
	ChannelRoughness Channel = 3
	// ChannelMetalness is a scalar metalness value.
	ChannelMetalness Channel = 4
	// ChannelTransparency is a scalar transparency value.
	ChannelTransparency Channel = 5
	// ChannelEmissivity is a scalar emissive intensity value.
	ChannelEmissivity Channel = 6
	// ChannelHardness is a scalar hardness value.
	ChannelHardness Channel = 7

	// MaxChannels is the number of channel slots in a ChannelSet.
	MaxChannels = 32
)

// String returns a human-readable channel name.
func (c Channel) String() string {
	switch c {
	case ChannelColor:
		return "Color"
	case ChannelNormal:
		return "Normal"
	case ChannelMaterialID:
		return "MaterialID"
	case ChannelRoughness:
		return "Roughness"
	case ChannelMetalness:
		return "Metalness"
	case ChannelTransparency:
		return "Transparency"
	case ChannelEmissivity:
		return "Emissivity"
	case ChannelHardness:
		return "Hardness"
	default:
		return "Unknown"
	}
}

// Bit returns the single-channel set containing c.
func (c Channel) Bit() ChannelSet {
	return ChannelSet(1) << c
}

// IsComponentPacked reports whether samples of this channel pack four
// 8-bit components rather than one scalar value. Component-packed
// channels are resampled per component during downscaling.
func (c Channel) IsComponentPacked() bool {
	return c == ChannelColor || c == ChannelNormal
}

// ChannelSet is a bit set of up to MaxChannels channels.
//
// The zero value is the empty set.
type ChannelSet uint32

// NewChannelSet builds a set from individual channels.
func NewChannelSet(channels ...Channel) ChannelSet {
	var s ChannelSet
	for _, c := range channels {
		s |= c.Bit()
	}

	return s
}

// AllChannels returns the set containing every channel slot. Container
// adapters that can store arbitrary samples advertise this set.
func AllChannels() ChannelSet {
	return ^ChannelSet(0)
}

// Contains reports whether c is a member of the set.
func (s ChannelSet) Contains(c Channel) bool {
	return s&c.Bit() != 0
}

// Intersect returns the channels present in both sets.
func (s ChannelSet) Intersect(other ChannelSet) ChannelSet {
	return s & other
}

// Union returns the channels present in either set.
func (s ChannelSet) Union(other ChannelSet) ChannelSet {
	return s | other
}

// Count returns the number of channels in the set.
func (s ChannelSet) Count() int {
	return bits.OnesCount32(uint32(s))
}

// IsEmpty reports whether the set contains no channels.
func (s ChannelSet) IsEmpty() bool {
	return s == 0
}

// Index returns the rank of c among the set's members in ascending
// order. Sample slices are laid out in this order. The result is
// meaningless when c is not a member.
func (s ChannelSet) Index(c Channel) int {
	below := uint32(c.Bit() - 1)

	return bits.OnesCount32(uint32(s) & below)
}

// All iterates the set's channels in ascending order.
func (s ChannelSet) All() iter.Seq[Channel] {
	return func(yield func(Channel) bool) {
		rest := uint32(s)
		for rest != 0 {
			c := Channel(bits.TrailingZeros32(rest))
			if !yield(c) {
				return
			}
			rest &= rest - 1
		}
	}
}

// String formats the set as "Color|Normal|..." or "(none)".
func (s ChannelSet) String() string {
	if s.IsEmpty() {
		return "(none)"
	}

	var sb strings.Builder
	first := true
	for c := range s.All() {
		if !first {
			sb.WriteByte('|')
		}
		sb.WriteString(c.String())
		first = false
	}

	return sb.String()
}
