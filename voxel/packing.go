package voxel

// Sample packing helpers for the component-packed channels.
//
// Color samples hold R, G, B in the low three bytes and alpha in the
// high byte. Normal samples remap each axis from [-1, 1] to an 8-bit
// component in the same byte order, with the high byte unused.

func clamp01(v float32) float32 {
	if v < 0.0 {
		return 0.0
	}
	if v > 1.0 {
		return 1.0
	}

	return v
}

// PackColor packs RGB components in [0, 1] plus an alpha value into a
// color sample. Components are clamped, scaled to [0, 255] and
// truncated.
func PackColor(r, g, b float32, a uint32) uint32 {
	rr := uint32(clamp01(r) * 255.0)
	gg := uint32(clamp01(g) * 255.0)
	bb := uint32(clamp01(b) * 255.0)

	return rr | (gg << 8) | (bb << 16) | (a << 24)
}

// UnpackColor splits a color sample into RGB components in [0, 1] and
// the raw alpha value.
func UnpackColor(sample uint32) (r, g, b float32, a uint32) {
	r = float32(sample&0xFF) / 255.0
	g = float32((sample>>8)&0xFF) / 255.0
	b = float32((sample>>16)&0xFF) / 255.0
	a = sample >> 24

	return r, g, b, a
}

// PackNormal packs a unit direction with components in [-1, 1] into a
// normal sample. Each axis is remapped to [0, 1], clamped, scaled to
// [0, 255] and truncated; the high byte is zero.
func PackNormal(x, y, z float32) uint32 {
	xx := uint32(clamp01(x*0.5+0.5) * 255.0)
	yy := uint32(clamp01(y*0.5+0.5) * 255.0)
	zz := uint32(clamp01(z*0.5+0.5) * 255.0)

	return xx | (yy << 8) | (zz << 16)
}

// UnpackNormal splits a normal sample back into direction components in
// [-1, 1]. The round trip loses the 8-bit quantization error.
func UnpackNormal(sample uint32) (x, y, z float32) {
	x = float32(sample&0xFF)/255.0*2.0 - 1.0
	y = float32((sample>>8)&0xFF)/255.0*2.0 - 1.0
	z = float32((sample>>16)&0xFF)/255.0*2.0 - 1.0

	return x, y, z
}

// Component extracts the i-th 8-bit component of a packed sample,
// i in [0, 3].
func Component(sample uint32, i int) uint32 {
	return (sample >> (8 * i)) & 0xFF
}

// PackComponents assembles four 8-bit components into one sample.
func PackComponents(c0, c1, c2, c3 uint32) uint32 {
	return (c0 & 0xFF) | ((c1 & 0xFF) << 8) | ((c2 & 0xFF) << 16) | ((c3 & 0xFF) << 24)
}
