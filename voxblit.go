// Package voxblit converts voxel volumes between formats through a
// four-role adapter pipeline.
//
// A conversion ("blit") wires four adapters together: an Input adapter
// supplies bytes, a Parse adapter decodes them into a sparse stream of
// voxel nodes, a Serialize adapter re-encodes that stream, and an
// Output adapter stores the result. Adapters are registered per role
// under a name and instantiated into contexts whose lifetime brackets
// their resource use. The engine translates one region at a time,
// restricted to the channel mask all sides support, in a single
// streaming pass.
//
// # Core Features
//
//   - Four independent adapter roles with dynamic name-based dispatch
//   - Sparse voxel trees: uniform and per-voxel nodes, consumed lazily
//   - Channel negotiation (requested ∩ parse ∩ serialize)
//   - Built-in container codecs: raw, palette, rle, octree with
//     optional compression (None, Zstd, S2, LZ4) and xxHash64 payload
//     checksums
//   - MagicaVoxel .vox import and ANSI colored-text rendering
//   - Byte-buffer, file and stdout transports
//
// # Basic Usage
//
// Rendering a MagicaVoxel model to the terminal:
//
//	import "github.com/arloliu/voxblit"
//
//	reg, _ := voxblit.NewRegistry()
//
//	model, _ := os.ReadFile("scene.vox")
//	region := voxel.RegionRange{Extent: voxel.Extent3D{X: 32, Y: 32, Z: 32}}
//
//	err := voxblit.Convert(reg,
//	    voxblit.AdapterSpec{Name: "byte_buffer", Config: model},
//	    voxblit.AdapterSpec{Name: "stdout"},
//	    voxblit.AdapterSpec{Name: "magicavoxel"},
//	    voxblit.AdapterSpec{Name: "colored_text"},
//	    region,
//	    voxel.NewChannelSet(voxel.ChannelColor),
//	)
//
// Re-encoding between container formats works the same way; swap the
// parse and serialize specs:
//
//	var encoded []byte
//	err := voxblit.Convert(reg,
//	    voxblit.AdapterSpec{Name: "byte_buffer", Config: model},
//	    voxblit.AdapterSpec{Name: "byte_buffer", Config: &encoded},
//	    voxblit.AdapterSpec{Name: "magicavoxel"},
//	    voxblit.AdapterSpec{Name: "palette", Config: serialize.PaletteConfig{
//	        Compression: format.CompressionZstd,
//	    }},
//	    region,
//	    voxel.NewChannelSet(voxel.ChannelColor, voxel.ChannelMaterialID),
//	)
//
// # Package Structure
//
// This package provides the seeded registry and a one-shot conversion
// wrapper around the most common flow. For fine-grained control —
// reusing contexts across blits, registering custom adapters, driving
// the engine directly — use the adapter and blit packages.
package voxblit

import (
	"fmt"

	"github.com/arloliu/voxblit/adapter"
	"github.com/arloliu/voxblit/blit"
	"github.com/arloliu/voxblit/errs"
	"github.com/arloliu/voxblit/input"
	"github.com/arloliu/voxblit/internal/procgen"
	"github.com/arloliu/voxblit/output"
	"github.com/arloliu/voxblit/parse"
	"github.com/arloliu/voxblit/serialize"
	"github.com/arloliu/voxblit/voxel"
)

// NewRegistry creates a registry seeded with every built-in adapter.
//
// Input: byte_buffer, file. Output: byte_buffer, file, stdout. Parse:
// raw, palette, rle, octree, magicavoxel, procedural. Serialize: raw,
// palette, rle, octree, colored_text. Additional adapters may be
// registered on top as long as their (role, name) pairs stay unique.
func NewRegistry() (*adapter.Registry, error) {
	reg := adapter.NewRegistry()
	for _, register := range []func(*adapter.Registry) error{
		input.Register,
		output.Register,
		parse.Register,
		serialize.Register,
		procgen.Register,
	} {
		if err := register(reg); err != nil {
			return nil, err
		}
	}

	return reg, nil
}

// Blit translates region from the parse context's source format to the
// serialize context's destination format, reading bytes through ictx
// and writing bytes through octx. Only channels in requested that both
// the parse and serialize adapters support are translated.
//
// See blit.Region for the full contract.
func Blit(
	ictx *adapter.InputContext,
	octx *adapter.OutputContext,
	pctx *adapter.ParseContext,
	sctx *adapter.SerializeContext,
	region voxel.RegionRange,
	requested voxel.ChannelSet,
) error {
	return blit.Region(ictx, octx, pctx, sctx, region, requested)
}

// AdapterSpec names a registered adapter and carries its configuration.
// A nil Config selects the adapter's defaults where it has any.
type AdapterSpec struct {
	Name   string
	Config any
}

// Convert runs one blit between four named adapters.
//
// It looks each adapter up in reg, creates the four contexts, blits
// region with the requested channel mask, and destroys every context it
// created. Outputs that flush on Destroy (files, byte buffers) have
// flushed when Convert returns. The first error wins; destroy failures
// surface only when everything before them succeeded.
func Convert(
	reg *adapter.Registry,
	input, output, parser, serializer AdapterSpec,
	region voxel.RegionRange,
	requested voxel.ChannelSet,
) error {
	idesc, ok := reg.LookupInput(input.Name)
	if !ok {
		return fmt.Errorf("%w: input adapter %q", errs.ErrUnknownAdapter, input.Name)
	}
	odesc, ok := reg.LookupOutput(output.Name)
	if !ok {
		return fmt.Errorf("%w: output adapter %q", errs.ErrUnknownAdapter, output.Name)
	}
	pdesc, ok := reg.LookupParse(parser.Name)
	if !ok {
		return fmt.Errorf("%w: parse adapter %q", errs.ErrUnknownAdapter, parser.Name)
	}
	sdesc, ok := reg.LookupSerialize(serializer.Name)
	if !ok {
		return fmt.Errorf("%w: serialize adapter %q", errs.ErrUnknownAdapter, serializer.Name)
	}

	ictx, err := idesc.CreateContext(input.Config)
	if err != nil {
		return err
	}
	octx, err := odesc.CreateContext(output.Config)
	if err != nil {
		_ = ictx.Destroy()

		return err
	}
	pctx, err := pdesc.CreateContext(parser.Config)
	if err != nil {
		_ = octx.Destroy()
		_ = ictx.Destroy()

		return err
	}
	sctx, err := sdesc.CreateContext(serializer.Config)
	if err != nil {
		_ = pctx.Destroy()
		_ = octx.Destroy()
		_ = ictx.Destroy()

		return err
	}

	blitErr := blit.Region(ictx, octx, pctx, sctx, region, requested)
	for _, destroy := range []func() error{sctx.Destroy, pctx.Destroy, octx.Destroy, ictx.Destroy} {
		if err := destroy(); err != nil && blitErr == nil {
			blitErr = err
		}
	}

	return blitErr
}
