package parse

import "github.com/arloliu/voxblit/adapter"

// Register seeds the registry with the built-in parse adapters.
func Register(reg *adapter.Registry) error {
	if err := reg.RegisterParse("raw", newRawParser); err != nil {
		return err
	}
	if err := reg.RegisterParse("palette", newPaletteParser); err != nil {
		return err
	}
	if err := reg.RegisterParse("rle", newRLEParser); err != nil {
		return err
	}
	if err := reg.RegisterParse("octree", newOctreeParser); err != nil {
		return err
	}

	return reg.RegisterParse("magicavoxel", newVoxParser)
}
