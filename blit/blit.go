// Package blit implements the translation engine that drives one full
// Input → Parse → Serialize → Output pass over a region and channel
// mask.
//
// The engine negotiates the effective channel set, runs exactly one
// parse pass and one serialize pass per invocation, and interleaves
// them: the serialize adapter pulls nodes from the tree, so a lazy parse
// adapter decodes on demand and the whole translation stays single-pass.
// The engine accounts coverage while nodes flow past it and fails the
// blit when the node stream does not cover the translated region
// exactly.
//
// Argument failures (destroyed context, invalid region, empty channel
// negotiation) are returned as plain sentinel errors. Failures once the
// pipeline is running are wrapped in errs.PhaseError naming the
// originating stage; an input fault surfacing through the parse phase
// keeps its input tag.
package blit

import (
	"fmt"

	"github.com/arloliu/voxblit/adapter"
	"github.com/arloliu/voxblit/errs"
	"github.com/arloliu/voxblit/voxel"
)

// Region translates the voxels of region from the parse context's
// source format to the serialize context's destination format, reading
// bytes through ictx and writing bytes through octx.
//
// Only channels in requested ∩ parse-supported ∩ serialize-supported
// are translated; an empty intersection fails with
// ErrNoCompatibleChannels before any adapter work. A zero-volume region
// succeeds without transferring any payload. Voxels of region outside
// the source's declared bounds are left to the serialize adapter's
// default fill; voxels inside must be covered by the node stream
// exactly once or the blit fails with ErrCorrupt.
//
// Output bytes already written when a blit fails are not rolled back.
func Region(
	ictx *adapter.InputContext,
	octx *adapter.OutputContext,
	pctx *adapter.ParseContext,
	sctx *adapter.SerializeContext,
	region voxel.RegionRange,
	requested voxel.ChannelSet,
) error {
	ih, err := ictx.Handler()
	if err != nil {
		return err
	}
	oh, err := octx.Handler()
	if err != nil {
		return err
	}
	ph, err := pctx.Handler()
	if err != nil {
		return err
	}
	sh, err := sctx.Handler()
	if err != nil {
		return err
	}

	if err := region.Validate(); err != nil {
		return err
	}

	effective := requested.
		Intersect(ph.SupportedChannels()).
		Intersect(sh.SupportedChannels())
	if effective.IsEmpty() {
		return fmt.Errorf("%w: requested %s, parse %q supports %s, serialize %q supports %s",
			errs.ErrNoCompatibleChannels, requested,
			pctx.Descriptor().Name(), ph.SupportedChannels(),
			sctx.Descriptor().Name(), sh.SupportedChannels())
	}

	if region.IsEmpty() {
		return nil
	}

	in := adapter.NewInputCursor(ih)
	out := adapter.NewOutputCursor(oh)

	tree, err := ph.Build(region, effective, in)
	if err != nil {
		return errs.NewPhaseError(errs.PhaseParse, err)
	}
	if tree == nil {
		return errs.NewPhaseError(errs.PhaseParse,
			fmt.Errorf("%w: parse adapter %q returned no tree", errs.ErrCorrupt, pctx.Descriptor().Name()))
	}
	if tree.Channels() != effective {
		return errs.NewPhaseError(errs.PhaseParse,
			fmt.Errorf("%w: parse adapter %q built tree for channels %s, want %s",
				errs.ErrCorrupt, pctx.Descriptor().Name(), tree.Channels(), effective))
	}

	// Coverage target: voxels of the region the source declares data
	// for. The accounting wrapper sits between the parse stream and the
	// serialize consumer, so lazy parsing interleaves with consumption
	// and overlap is caught the moment it streams past.
	target := region.Intersect(tree.Bounds())
	want := target.Volume()
	var covered uint64

	wrapped := voxel.NewLazyTree(tree.Bounds(), effective, func() (*voxel.Node, error) {
		n, err := tree.Next()
		if err != nil {
			return nil, errs.NewPhaseError(errs.PhaseParse, err)
		}
		if n == nil {
			return nil, nil
		}
		if err := n.Validate(effective); err != nil {
			return nil, errs.NewPhaseError(errs.PhaseParse, err)
		}

		covered += n.Range.Intersect(target).Volume()
		if covered > want {
			return nil, errs.NewPhaseError(errs.PhaseParse,
				fmt.Errorf("%w: node stream covers parts of %s more than once", errs.ErrCorrupt, target))
		}

		return n, nil
	})

	if err := sh.Consume(wrapped, region, effective, out); err != nil {
		return errs.NewPhaseError(errs.PhaseSerialize, err)
	}

	if covered != want {
		return errs.NewPhaseError(errs.PhaseSerialize,
			fmt.Errorf("%w: node stream covered %d of %d voxels in %s",
				errs.ErrCorrupt, covered, want, target))
	}

	return nil
}
