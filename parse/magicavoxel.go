package parse

import (
	"fmt"

	"github.com/arloliu/voxblit/adapter"
	"github.com/arloliu/voxblit/errs"
	"github.com/arloliu/voxblit/voxel"
)

const (
	voxMagic        = "VOX "
	voxChunkMain    = "MAIN"
	voxChunkSize    = "SIZE"
	voxChunkVoxels  = "XYZI"
	voxChunkPalette = "RGBA"
)

// voxParser decodes MagicaVoxel .vox files.
//
// The first model's SIZE and XYZI chunks are decoded; additional models
// and scene-graph chunks are skipped. Each stored voxel yields its
// palette color on the Color channel and its raw palette index on the
// MaterialID channel. Cells the file does not store decode as the
// all-zero default. Files without an RGBA chunk use the generated
// default palette.
type voxParser struct{}

func newVoxParser(cfg any) (adapter.ParseHandler, error) {
	if err := requireNilConfig("magicavoxel", cfg); err != nil {
		return nil, err
	}

	return &voxParser{}, nil
}

func (p *voxParser) SupportedChannels() voxel.ChannelSet {
	return voxel.NewChannelSet(voxel.ChannelColor, voxel.ChannelMaterialID)
}

func (p *voxParser) Build(region voxel.RegionRange, channels voxel.ChannelSet, in *adapter.InputCursor) (*voxel.Tree, error) {
	magic, err := in.Next(4)
	if err != nil {
		return nil, err
	}
	if string(magic) != voxMagic {
		return nil, fmt.Errorf("%w: not a vox file, magic is %q", errs.ErrCorrupt, magic)
	}
	if _, err := in.U32(); err != nil { // format version
		return nil, err
	}

	id, contentLen, childrenLen, err := readVoxChunkHeader(in)
	if err != nil {
		return nil, err
	}
	if id != voxChunkMain {
		return nil, fmt.Errorf("%w: expected %s chunk, found %q", errs.ErrCorrupt, voxChunkMain, id)
	}
	in.Skip(uint64(contentLen))

	var (
		size       voxel.Extent3D
		haveSize   bool
		voxelData  []byte
		haveVoxels bool
	)
	palette := defaultVoxPalette()

	var consumed uint64
	for consumed < uint64(childrenLen) {
		id, contentLen, kidsLen, err := readVoxChunkHeader(in)
		if err != nil {
			return nil, err
		}
		consumed += 12 + uint64(contentLen) + uint64(kidsLen)

		switch {
		case id == voxChunkSize && !haveSize:
			if contentLen != 12 {
				return nil, fmt.Errorf("%w: SIZE chunk is %d bytes, want 12", errs.ErrCorrupt, contentLen)
			}
			if size.X, err = in.U32(); err != nil {
				return nil, err
			}
			if size.Y, err = in.U32(); err != nil {
				return nil, err
			}
			if size.Z, err = in.U32(); err != nil {
				return nil, err
			}
			haveSize = true

		case id == voxChunkVoxels && !haveVoxels:
			if contentLen < 4 || contentLen > maxPayloadBytes {
				return nil, fmt.Errorf("%w: XYZI chunk is %d bytes", errs.ErrCorrupt, contentLen)
			}
			count, err := in.U32()
			if err != nil {
				return nil, err
			}
			if uint64(4)+uint64(count)*4 != uint64(contentLen) {
				return nil, fmt.Errorf("%w: XYZI declares %d voxels in %d bytes", errs.ErrCorrupt, count, contentLen)
			}
			if voxelData, err = in.Next(int(count) * 4); err != nil {
				return nil, err
			}
			haveVoxels = true

		case id == voxChunkPalette:
			if contentLen != 1024 {
				return nil, fmt.Errorf("%w: RGBA chunk is %d bytes, want 1024", errs.ErrCorrupt, contentLen)
			}
			colors, err := in.Next(1024)
			if err != nil {
				return nil, err
			}
			// Color index i maps to the chunk's entry i-1; the last
			// entry is unused.
			for i := 1; i < 256; i++ {
				base := (i - 1) * 4
				palette[i] = voxel.PackComponents(
					uint32(colors[base]),
					uint32(colors[base+1]),
					uint32(colors[base+2]),
					uint32(colors[base+3]),
				)
			}

		default:
			in.Skip(uint64(contentLen))
		}

		in.Skip(uint64(kidsLen))
	}

	if !haveSize || !haveVoxels {
		return nil, fmt.Errorf("%w: vox file has no model (SIZE present: %t, XYZI present: %t)", errs.ErrCorrupt, haveSize, haveVoxels)
	}

	return buildVoxTree(size, voxelData, palette, channels)
}

func (p *voxParser) Destroy() error {
	return nil
}

func readVoxChunkHeader(in *adapter.InputCursor) (string, uint32, uint32, error) {
	id, err := in.Next(4)
	if err != nil {
		return "", 0, 0, err
	}
	contentLen, err := in.U32()
	if err != nil {
		return "", 0, 0, err
	}
	childrenLen, err := in.U32()
	if err != nil {
		return "", 0, 0, err
	}

	return string(id), contentLen, childrenLen, nil
}

// buildVoxTree scatters the sparse XYZI voxels into a dense model grid
// and emits it as one leaf node per z slab.
func buildVoxTree(size voxel.Extent3D, voxelData []byte, palette *[256]uint32, effective voxel.ChannelSet) (*voxel.Tree, error) {
	bounds := voxel.RegionRange{Extent: size}
	cc := effective.Count()

	if want := bounds.Volume() * uint64(cc) * 4; want > maxPayloadBytes {
		return nil, fmt.Errorf("%w: model %dx%dx%d needs %d bytes, limit is %d", errs.ErrCorrupt, size.X, size.Y, size.Z, want, maxPayloadBytes)
	}

	colorSlot := -1
	materialSlot := -1
	if effective.Contains(voxel.ChannelColor) {
		colorSlot = effective.Index(voxel.ChannelColor)
	}
	if effective.Contains(voxel.ChannelMaterialID) {
		materialSlot = effective.Index(voxel.ChannelMaterialID)
	}

	ex := int(size.X)
	ey := int(size.Y)
	dense := make([]uint32, int(bounds.Volume())*cc)

	for i := 0; i+4 <= len(voxelData); i += 4 {
		x := int(voxelData[i])
		y := int(voxelData[i+1])
		z := int(voxelData[i+2])
		colorIndex := voxelData[i+3]

		if x >= ex || y >= ey || z >= int(size.Z) {
			return nil, fmt.Errorf("%w: voxel (%d, %d, %d) outside model %dx%dx%d", errs.ErrCorrupt, x, y, z, size.X, size.Y, size.Z)
		}

		base := ((z*ey+y)*ex + x) * cc
		if colorSlot >= 0 {
			dense[base+colorSlot] = palette[colorIndex]
		}
		if materialSlot >= 0 {
			dense[base+materialSlot] = uint32(colorIndex)
		}
	}

	slab := ex * ey * cc
	nodes := make([]*voxel.Node, 0, size.Z)
	for zi := 0; zi < int(size.Z); zi++ {
		box := voxel.RegionRange{
			Offset: voxel.Offset3D{Z: int32(zi)},
			Extent: voxel.Extent3D{X: size.X, Y: size.Y, Z: 1},
		}
		nodes = append(nodes, voxel.NewLeafNode(box, dense[zi*slab:(zi+1)*slab]))
	}

	return voxel.NewTree(bounds, effective, nodes), nil
}

// defaultVoxPalette generates the stock palette for files without an
// RGBA chunk: entry 0 empty, the 6-step RGB cube from white downward
// with its black corner dropped, then 10-step blue, green and red ramps,
// then grays.
func defaultVoxPalette() *[256]uint32 {
	var p [256]uint32
	steps := [6]uint32{255, 204, 153, 102, 51, 0}

	i := 1
	for _, r := range steps {
		for _, g := range steps {
			for _, b := range steps {
				if r == 0 && g == 0 && b == 0 {
					continue
				}
				p[i] = voxel.PackComponents(r, g, b, 255)
				i++
			}
		}
	}

	ramp := [10]uint32{238, 221, 187, 170, 136, 119, 85, 68, 34, 17}
	for _, v := range ramp {
		p[i] = voxel.PackComponents(0, 0, v, 255)
		i++
	}
	for _, v := range ramp {
		p[i] = voxel.PackComponents(0, v, 0, 255)
		i++
	}
	for _, v := range ramp {
		p[i] = voxel.PackComponents(v, 0, 0, 255)
		i++
	}
	for _, v := range ramp {
		p[i] = voxel.PackComponents(v, v, v, 255)
		i++
	}

	return &p
}
