package voxel

import (
	"fmt"
	"math"

	"github.com/arloliu/voxblit/errs"
)

// Offset3D is the lowest corner of an axis-aligned voxel box.
// Components are signed and may be negative.
type Offset3D struct {
	X int32
	Y int32
	Z int32
}

// Extent3D is the per-axis size of an axis-aligned voxel box.
type Extent3D struct {
	X uint32
	Y uint32
	Z uint32
}

// Volume returns the number of voxels the extent covers.
func (e Extent3D) Volume() uint64 {
	return uint64(e.X) * uint64(e.Y) * uint64(e.Z)
}

// IsEmpty reports whether the extent covers no voxels.
func (e Extent3D) IsEmpty() bool {
	return e.X == 0 || e.Y == 0 || e.Z == 0
}

// RegionRange is an axis-aligned box of voxel coordinates.
//
// The box spans [Offset, Offset+Extent) per axis. A zero-volume range is
// valid and denotes "no voxels".
type RegionRange struct {
	Offset Offset3D
	Extent Extent3D
}

// Volume returns the number of voxels the range covers.
func (r RegionRange) Volume() uint64 {
	return r.Extent.Volume()
}

// IsEmpty reports whether the range covers no voxels.
func (r RegionRange) IsEmpty() bool {
	return r.Extent.IsEmpty()
}

// End returns the exclusive upper corner of the range per axis, computed
// in 64-bit space so it cannot wrap.
func (r RegionRange) End() (x, y, z int64) {
	x = int64(r.Offset.X) + int64(r.Extent.X)
	y = int64(r.Offset.Y) + int64(r.Extent.Y)
	z = int64(r.Offset.Z) + int64(r.Extent.Z)

	return x, y, z
}

// Validate returns ErrOutOfBounds when the range's end coordinate leaves
// the 32-bit coordinate domain on any axis.
func (r RegionRange) Validate() error {
	ex, ey, ez := r.End()
	// The last voxel coordinate end-1 must fit in int32.
	const limit = int64(math.MaxInt32) + 1
	if ex > limit || ey > limit || ez > limit {
		return fmt.Errorf("%w: range offset=(%d,%d,%d) extent=(%d,%d,%d) overflows coordinate domain",
			errs.ErrOutOfBounds,
			r.Offset.X, r.Offset.Y, r.Offset.Z,
			r.Extent.X, r.Extent.Y, r.Extent.Z)
	}

	return nil
}

// Contains reports whether the voxel coordinate p lies inside the range.
func (r RegionRange) Contains(p Offset3D) bool {
	ex, ey, ez := r.End()

	return int64(p.X) >= int64(r.Offset.X) && int64(p.X) < ex &&
		int64(p.Y) >= int64(r.Offset.Y) && int64(p.Y) < ey &&
		int64(p.Z) >= int64(r.Offset.Z) && int64(p.Z) < ez
}

// ContainsRange reports whether other lies fully inside the range.
// An empty other is contained everywhere.
func (r RegionRange) ContainsRange(other RegionRange) bool {
	if other.IsEmpty() {
		return true
	}

	ex, ey, ez := r.End()
	ox, oy, oz := other.End()

	return other.Offset.X >= r.Offset.X && ox <= ex &&
		other.Offset.Y >= r.Offset.Y && oy <= ey &&
		other.Offset.Z >= r.Offset.Z && oz <= ez
}

// Intersect returns the overlap of the two ranges. When they are
// disjoint the result has zero extent.
func (r RegionRange) Intersect(other RegionRange) RegionRange {
	x0 := max(int64(r.Offset.X), int64(other.Offset.X))
	y0 := max(int64(r.Offset.Y), int64(other.Offset.Y))
	z0 := max(int64(r.Offset.Z), int64(other.Offset.Z))

	rx, ry, rz := r.End()
	ox, oy, oz := other.End()
	x1 := min(rx, ox)
	y1 := min(ry, oy)
	z1 := min(rz, oz)

	if x1 <= x0 || y1 <= y0 || z1 <= z0 {
		return RegionRange{}
	}

	return RegionRange{
		Offset: Offset3D{X: int32(x0), Y: int32(y0), Z: int32(z0)},
		Extent: Extent3D{X: uint32(x1 - x0), Y: uint32(y1 - y0), Z: uint32(z1 - z0)},
	}
}

// String formats the range as "(x,y,z)+(w,h,d)".
func (r RegionRange) String() string {
	return fmt.Sprintf("(%d,%d,%d)+(%d,%d,%d)",
		r.Offset.X, r.Offset.Y, r.Offset.Z,
		r.Extent.X, r.Extent.Y, r.Extent.Z)
}
