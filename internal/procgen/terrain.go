// Package procgen generates a small deterministic voxel terrain.
//
// The terrain is a sphere of rock capped with dirt and grass, derived
// from a fixed analytic density field. The same voxel coordinate always
// produces the same samples, which makes the generator usable as a
// reference source in tests and demos.
package procgen

import (
	"math"

	"github.com/arloliu/voxblit/voxel"
)

// fieldScale maps voxel coordinates onto the density field: one field
// unit spans eight voxels, sampled at voxel centers.
const fieldScale = 1.0 / 8.0

func stableRand(x float32) float32 {
	return mod1(float32(math.Sin(float64(x*91.3458))) * 47453.5453)
}

func stableRand2(x, y float32) float32 {
	return mod1(float32(math.Sin(float64(x*12.9898+y*78.233))) * 47453.5453)
}

func stableRand3(x, y, z float32) float32 {
	return stableRand2(x+stableRand(z), y+stableRand(z))
}

func mod1(v float32) float32 {
	return float32(math.Mod(float64(v), 1))
}

// density evaluates the field at the center of voxel (x, y, z); positive
// values are solid.
func density(x, y, z int32) float32 {
	fx := (float32(x) + 0.5) * fieldScale
	fy := (float32(y) + 0.5) * fieldScale
	fz := (float32(z) + 0.5) * fieldScale

	return -(fx*fx + fy*fy + fz*fz) + 0.25
}

func unitByte(v float32) uint32 {
	return uint32(min(max(v, 0), 1) * 255)
}

func packUnitColor(r, g, b float32, a uint32) uint32 {
	return voxel.PackComponents(unitByte(r), unitByte(g), unitByte(b), a)
}

// packUnitNormal remaps a unit vector from [-1, 1] to the packed byte
// range.
func packUnitNormal(x, y, z float32) uint32 {
	return voxel.PackComponents(
		unitByte(x*0.5+0.5),
		unitByte(y*0.5+0.5),
		unitByte(z*0.5+0.5),
		0,
	)
}

// sampleVoxel derives the color, surface normal and material id of the
// voxel at (x, y, z). Voxels outside the terrain return all zeros;
// normals are nonzero only on surface voxels.
func sampleVoxel(x, y, z int32) (color, normal, id uint32) {
	val := density(x, y, z)
	if val <= 0 {
		return 0, 0, 0
	}

	px := density(x+1, y, z)
	py := density(x, y+1, z)
	pz := density(x, y, z+1)
	nx := density(x-1, y, z)
	ny := density(x, y-1, z)
	nz := density(x, y, z-1)
	if px < 0 || py < 0 || pz < 0 || nx < 0 || ny < 0 || nz < 0 {
		gx := px - val
		gy := py - val
		gz := pz - val
		invMag := 1 / float32(math.Sqrt(float64(gx*gx+gy*gy+gz*gz)))
		normal = packUnitNormal(gx*invMag, gy*invMag, gz*invMag)
	}

	// Solid thickness above the voxel, capped at 16, picks the material
	// band.
	depth := int32(0)
	for ; depth < 16; depth++ {
		if density(x, y, z+depth) < 0 {
			break
		}
	}

	switch {
	case depth < 2:
		color = packUnitColor(0.2, 0.5, 0.1, 1)
		id = 1
	case depth < 4:
		color = packUnitColor(0.4, 0.3, 0.2, 1)
		id = 2
	default:
		fx := (float32(x) + 0.5) * fieldScale
		fy := (float32(y) + 0.5) * fieldScale
		fz := (float32(z) + 0.5) * fieldScale
		if stableRand3(fx, fy, fz) < 0.5 {
			color = packUnitColor(0.36, 0.34, 0.34, 1)
		} else {
			color = packUnitColor(0.25, 0.24, 0.23, 1)
		}
		id = 3
	}

	return color, normal, id
}
