package serialize

import "github.com/arloliu/voxblit/adapter"

// Register seeds the registry with the built-in serialize adapters.
func Register(reg *adapter.Registry) error {
	if err := reg.RegisterSerialize("raw", newRawSerializer); err != nil {
		return err
	}
	if err := reg.RegisterSerialize("palette", newPaletteSerializer); err != nil {
		return err
	}
	if err := reg.RegisterSerialize("rle", newRLESerializer); err != nil {
		return err
	}
	if err := reg.RegisterSerialize("octree", newOctreeSerializer); err != nil {
		return err
	}

	return reg.RegisterSerialize("colored_text", newColoredTextSerializer)
}
