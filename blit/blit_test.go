package blit

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/voxblit/adapter"
	"github.com/arloliu/voxblit/errs"
	"github.com/arloliu/voxblit/voxel"
)

// stubInput serves reads from a byte slice.
type stubInput struct {
	data    []byte
	readErr error
	reads   int
}

func (s *stubInput) Read(pos uint64, dst []byte) error {
	s.reads++
	if s.readErr != nil {
		return s.readErr
	}
	if pos+uint64(len(dst)) > uint64(len(s.data)) {
		return fmt.Errorf("read past end of %d-byte buffer", len(s.data))
	}
	copy(dst, s.data[pos:])

	return nil
}

func (s *stubInput) Destroy() error { return nil }

// stubOutput collects writes into a growing byte slice.
type stubOutput struct {
	data     []byte
	writeErr error
	writes   int
}

func (s *stubOutput) Write(pos uint64, data []byte) error {
	s.writes++
	if s.writeErr != nil {
		return s.writeErr
	}
	end := pos + uint64(len(data))
	if end > uint64(len(s.data)) {
		grown := make([]byte, end)
		copy(grown, s.data)
		s.data = grown
	}
	copy(s.data[pos:], data)

	return nil
}

func (s *stubOutput) Destroy() error { return nil }

// stubParse produces trees through a pluggable build function.
type stubParse struct {
	supported voxel.ChannelSet
	build     func(region voxel.RegionRange, channels voxel.ChannelSet, in *adapter.InputCursor) (*voxel.Tree, error)
	builds    int
}

func (s *stubParse) SupportedChannels() voxel.ChannelSet { return s.supported }

func (s *stubParse) Build(region voxel.RegionRange, channels voxel.ChannelSet, in *adapter.InputCursor) (*voxel.Tree, error) {
	s.builds++

	return s.build(region, channels, in)
}

func (s *stubParse) Destroy() error { return nil }

// stubSerialize consumes trees through a pluggable consume function.
type stubSerialize struct {
	supported voxel.ChannelSet
	consume   func(tree *voxel.Tree, region voxel.RegionRange, channels voxel.ChannelSet, out *adapter.OutputCursor) error
	consumes  int
}

func (s *stubSerialize) SupportedChannels() voxel.ChannelSet { return s.supported }

func (s *stubSerialize) Consume(tree *voxel.Tree, region voxel.RegionRange, channels voxel.ChannelSet, out *adapter.OutputCursor) error {
	s.consumes++

	return s.consume(tree, region, channels, out)
}

func (s *stubSerialize) Destroy() error { return nil }

// drainConsume walks the whole tree and discards it.
func drainConsume(tree *voxel.Tree, _ voxel.RegionRange, _ voxel.ChannelSet, _ *adapter.OutputCursor) error {
	for _, err := range tree.Nodes() {
		if err != nil {
			return err
		}
	}

	return nil
}

// fullCoverBuild produces a single uniform node covering the region.
func fullCoverBuild(region voxel.RegionRange, channels voxel.ChannelSet, _ *adapter.InputCursor) (*voxel.Tree, error) {
	samples := make([]uint32, channels.Count())

	return voxel.NewTree(region, channels, []*voxel.Node{
		voxel.NewUniformNode(region, samples),
	}), nil
}

func testRegion() voxel.RegionRange {
	return voxel.RegionRange{
		Offset: voxel.Offset3D{X: -4, Y: -4, Z: -4},
		Extent: voxel.Extent3D{X: 8, Y: 8, Z: 8},
	}
}

// newContexts registers the four stubs in a fresh registry and creates
// one context per role.
func newContexts(t *testing.T, in *stubInput, out *stubOutput, p *stubParse, s *stubSerialize) (
	*adapter.InputContext, *adapter.OutputContext, *adapter.ParseContext, *adapter.SerializeContext,
) {
	t.Helper()

	reg := adapter.NewRegistry()
	require.NoError(t, reg.RegisterInput("stub", func(cfg any) (adapter.InputHandler, error) { return in, nil }))
	require.NoError(t, reg.RegisterOutput("stub", func(cfg any) (adapter.OutputHandler, error) { return out, nil }))
	require.NoError(t, reg.RegisterParse("stub", func(cfg any) (adapter.ParseHandler, error) { return p, nil }))
	require.NoError(t, reg.RegisterSerialize("stub", func(cfg any) (adapter.SerializeHandler, error) { return s, nil }))

	id, _ := reg.LookupInput("stub")
	od, _ := reg.LookupOutput("stub")
	pd, _ := reg.LookupParse("stub")
	sd, _ := reg.LookupSerialize("stub")

	ictx, err := id.CreateContext(nil)
	require.NoError(t, err)
	octx, err := od.CreateContext(nil)
	require.NoError(t, err)
	pctx, err := pd.CreateContext(nil)
	require.NoError(t, err)
	sctx, err := sd.CreateContext(nil)
	require.NoError(t, err)

	return ictx, octx, pctx, sctx
}

func TestRegion_TranslatesFullRegion(t *testing.T) {
	channels := voxel.NewChannelSet(voxel.ChannelColor, voxel.ChannelNormal, voxel.ChannelMaterialID)

	in := &stubInput{}
	out := &stubOutput{}
	p := &stubParse{supported: channels, build: fullCoverBuild}

	var visited uint64
	s := &stubSerialize{
		supported: channels,
		consume: func(tree *voxel.Tree, region voxel.RegionRange, ch voxel.ChannelSet, oc *adapter.OutputCursor) error {
			for n, err := range tree.Nodes() {
				if err != nil {
					return err
				}
				n.VisitVoxels(region, ch, func(_ voxel.Offset3D, _ []uint32) {
					visited++
				})
			}

			return oc.AppendU32(uint32(visited))
		},
	}

	ictx, octx, pctx, sctx := newContexts(t, in, out, p, s)

	err := Region(ictx, octx, pctx, sctx, testRegion(), channels)
	require.NoError(t, err)

	assert.Equal(t, uint64(512), visited)
	assert.Equal(t, 1, p.builds, "exactly one parse pass")
	assert.Equal(t, 1, s.consumes, "exactly one serialize pass")
	assert.Equal(t, []byte{0x00, 0x02, 0x00, 0x00}, out.data)
}

func TestRegion_NegotiatesEffectiveChannels(t *testing.T) {
	parseSupports := voxel.NewChannelSet(voxel.ChannelColor, voxel.ChannelNormal, voxel.ChannelMaterialID)
	serializeSupports := voxel.NewChannelSet(voxel.ChannelColor, voxel.ChannelMaterialID, voxel.ChannelRoughness)
	requested := voxel.NewChannelSet(voxel.ChannelColor, voxel.ChannelNormal, voxel.ChannelRoughness)

	var buildChannels, consumeChannels voxel.ChannelSet
	p := &stubParse{
		supported: parseSupports,
		build: func(region voxel.RegionRange, ch voxel.ChannelSet, in *adapter.InputCursor) (*voxel.Tree, error) {
			buildChannels = ch

			return fullCoverBuild(region, ch, in)
		},
	}
	s := &stubSerialize{
		supported: serializeSupports,
		consume: func(tree *voxel.Tree, region voxel.RegionRange, ch voxel.ChannelSet, out *adapter.OutputCursor) error {
			consumeChannels = ch

			return drainConsume(tree, region, ch, out)
		},
	}

	ictx, octx, pctx, sctx := newContexts(t, &stubInput{}, &stubOutput{}, p, s)

	err := Region(ictx, octx, pctx, sctx, testRegion(), requested)
	require.NoError(t, err)

	want := voxel.NewChannelSet(voxel.ChannelColor)
	assert.Equal(t, want, buildChannels, "parse sees requested ∩ supported of both endpoints")
	assert.Equal(t, want, consumeChannels)
}

func TestRegion_NoCompatibleChannels(t *testing.T) {
	p := &stubParse{
		supported: voxel.NewChannelSet(voxel.ChannelColor, voxel.ChannelNormal, voxel.ChannelMaterialID),
		build:     fullCoverBuild,
	}
	s := &stubSerialize{
		supported: voxel.NewChannelSet(voxel.ChannelColor, voxel.ChannelNormal, voxel.ChannelMaterialID),
		consume:   drainConsume,
	}
	in := &stubInput{}
	out := &stubOutput{}

	ictx, octx, pctx, sctx := newContexts(t, in, out, p, s)

	err := Region(ictx, octx, pctx, sctx, testRegion(), voxel.NewChannelSet(voxel.ChannelTransparency))
	require.ErrorIs(t, err, errs.ErrNoCompatibleChannels)

	assert.Zero(t, p.builds, "parse must not run")
	assert.Zero(t, s.consumes, "serialize must not run")
	assert.Zero(t, in.reads)
	assert.Zero(t, out.writes)

	var perr *errs.PhaseError
	assert.False(t, errors.As(err, &perr), "negotiation failures carry no phase")
}

func TestRegion_ZeroVolumeRegion(t *testing.T) {
	channels := voxel.NewChannelSet(voxel.ChannelColor)
	in := &stubInput{}
	out := &stubOutput{}
	p := &stubParse{supported: channels, build: fullCoverBuild}
	s := &stubSerialize{supported: channels, consume: drainConsume}

	ictx, octx, pctx, sctx := newContexts(t, in, out, p, s)

	region := voxel.RegionRange{
		Offset: voxel.Offset3D{X: 5, Y: 5, Z: 5},
		Extent: voxel.Extent3D{X: 4, Y: 0, Z: 4},
	}

	require.NoError(t, Region(ictx, octx, pctx, sctx, region, channels))

	assert.Zero(t, p.builds)
	assert.Zero(t, s.consumes)
	assert.Zero(t, in.reads, "zero-volume blit performs no payload reads")
	assert.Zero(t, out.writes, "zero-volume blit performs no payload writes")
}

func TestRegion_ZeroVolumeStillNegotiates(t *testing.T) {
	p := &stubParse{supported: voxel.NewChannelSet(voxel.ChannelColor), build: fullCoverBuild}
	s := &stubSerialize{supported: voxel.NewChannelSet(voxel.ChannelNormal), consume: drainConsume}

	ictx, octx, pctx, sctx := newContexts(t, &stubInput{}, &stubOutput{}, p, s)

	err := Region(ictx, octx, pctx, sctx, voxel.RegionRange{}, voxel.NewChannelSet(voxel.ChannelColor))
	require.ErrorIs(t, err, errs.ErrNoCompatibleChannels)
}

func TestRegion_InvalidRegion(t *testing.T) {
	channels := voxel.NewChannelSet(voxel.ChannelColor)
	p := &stubParse{supported: channels, build: fullCoverBuild}
	s := &stubSerialize{supported: channels, consume: drainConsume}

	ictx, octx, pctx, sctx := newContexts(t, &stubInput{}, &stubOutput{}, p, s)

	region := voxel.RegionRange{
		Offset: voxel.Offset3D{X: math.MaxInt32, Y: 0, Z: 0},
		Extent: voxel.Extent3D{X: 2, Y: 1, Z: 1},
	}

	err := Region(ictx, octx, pctx, sctx, region, channels)
	require.ErrorIs(t, err, errs.ErrOutOfBounds)
	assert.Zero(t, p.builds)
}

func TestRegion_DestroyedContexts(t *testing.T) {
	channels := voxel.NewChannelSet(voxel.ChannelColor)

	newSet := func() (*adapter.InputContext, *adapter.OutputContext, *adapter.ParseContext, *adapter.SerializeContext) {
		return newContexts(t,
			&stubInput{}, &stubOutput{},
			&stubParse{supported: channels, build: fullCoverBuild},
			&stubSerialize{supported: channels, consume: drainConsume})
	}

	t.Run("destroyed input", func(t *testing.T) {
		ictx, octx, pctx, sctx := newSet()
		require.NoError(t, ictx.Destroy())
		err := Region(ictx, octx, pctx, sctx, testRegion(), channels)
		require.ErrorIs(t, err, errs.ErrContextDestroyed)
	})

	t.Run("destroyed output", func(t *testing.T) {
		ictx, octx, pctx, sctx := newSet()
		require.NoError(t, octx.Destroy())
		err := Region(ictx, octx, pctx, sctx, testRegion(), channels)
		require.ErrorIs(t, err, errs.ErrContextDestroyed)
	})

	t.Run("destroyed parse", func(t *testing.T) {
		ictx, octx, pctx, sctx := newSet()
		require.NoError(t, pctx.Destroy())
		err := Region(ictx, octx, pctx, sctx, testRegion(), channels)
		require.ErrorIs(t, err, errs.ErrContextDestroyed)
	})

	t.Run("destroyed serialize", func(t *testing.T) {
		ictx, octx, pctx, sctx := newSet()
		require.NoError(t, sctx.Destroy())
		err := Region(ictx, octx, pctx, sctx, testRegion(), channels)
		require.ErrorIs(t, err, errs.ErrContextDestroyed)
	})
}

func TestRegion_DefaultFillOutsideBounds(t *testing.T) {
	channels := voxel.NewChannelSet(voxel.ChannelColor)

	// Source declares data only for the positive octant corner of the
	// region; the rest of the region is default fill, not an error.
	bounds := voxel.RegionRange{
		Offset: voxel.Offset3D{X: 0, Y: 0, Z: 0},
		Extent: voxel.Extent3D{X: 4, Y: 4, Z: 4},
	}
	p := &stubParse{
		supported: channels,
		build: func(region voxel.RegionRange, ch voxel.ChannelSet, _ *adapter.InputCursor) (*voxel.Tree, error) {
			return voxel.NewTree(bounds, ch, []*voxel.Node{
				voxel.NewUniformNode(bounds, []uint32{7}),
			}), nil
		},
	}
	s := &stubSerialize{supported: channels, consume: drainConsume}

	ictx, octx, pctx, sctx := newContexts(t, &stubInput{}, &stubOutput{}, p, s)

	require.NoError(t, Region(ictx, octx, pctx, sctx, testRegion(), channels))
}

func TestRegion_CoverageGap(t *testing.T) {
	channels := voxel.NewChannelSet(voxel.ChannelColor)

	// The node stream covers only half the region's z range.
	p := &stubParse{
		supported: channels,
		build: func(region voxel.RegionRange, ch voxel.ChannelSet, _ *adapter.InputCursor) (*voxel.Tree, error) {
			half := voxel.RegionRange{
				Offset: region.Offset,
				Extent: voxel.Extent3D{X: region.Extent.X, Y: region.Extent.Y, Z: region.Extent.Z / 2},
			}

			return voxel.NewTree(region, ch, []*voxel.Node{
				voxel.NewUniformNode(half, []uint32{1}),
			}), nil
		},
	}
	s := &stubSerialize{supported: channels, consume: drainConsume}

	ictx, octx, pctx, sctx := newContexts(t, &stubInput{}, &stubOutput{}, p, s)

	err := Region(ictx, octx, pctx, sctx, testRegion(), channels)
	require.ErrorIs(t, err, errs.ErrCorrupt)

	var perr *errs.PhaseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, errs.PhaseSerialize, perr.Phase)
}

func TestRegion_CoverageOverlap(t *testing.T) {
	channels := voxel.NewChannelSet(voxel.ChannelColor)

	// The same box streams past twice.
	p := &stubParse{
		supported: channels,
		build: func(region voxel.RegionRange, ch voxel.ChannelSet, _ *adapter.InputCursor) (*voxel.Tree, error) {
			return voxel.NewTree(region, ch, []*voxel.Node{
				voxel.NewUniformNode(region, []uint32{1}),
				voxel.NewUniformNode(region, []uint32{2}),
			}), nil
		},
	}
	s := &stubSerialize{supported: channels, consume: drainConsume}

	ictx, octx, pctx, sctx := newContexts(t, &stubInput{}, &stubOutput{}, p, s)

	err := Region(ictx, octx, pctx, sctx, testRegion(), channels)
	require.ErrorIs(t, err, errs.ErrCorrupt)

	var perr *errs.PhaseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, errs.PhaseParse, perr.Phase, "overlap is a parse-stream fault")
}

func TestRegion_MalformedNode(t *testing.T) {
	channels := voxel.NewChannelSet(voxel.ChannelColor, voxel.ChannelNormal)

	p := &stubParse{
		supported: channels,
		build: func(region voxel.RegionRange, ch voxel.ChannelSet, _ *adapter.InputCursor) (*voxel.Tree, error) {
			// One sample short for a two-channel uniform node.
			return voxel.NewTree(region, ch, []*voxel.Node{
				voxel.NewUniformNode(region, []uint32{1}),
			}), nil
		},
	}
	s := &stubSerialize{supported: channels, consume: drainConsume}

	ictx, octx, pctx, sctx := newContexts(t, &stubInput{}, &stubOutput{}, p, s)

	err := Region(ictx, octx, pctx, sctx, testRegion(), channels)
	require.ErrorIs(t, err, errs.ErrCorrupt)

	var perr *errs.PhaseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, errs.PhaseParse, perr.Phase)
}

func TestRegion_ChannelSetMismatchedTree(t *testing.T) {
	channels := voxel.NewChannelSet(voxel.ChannelColor, voxel.ChannelNormal)

	p := &stubParse{
		supported: channels,
		build: func(region voxel.RegionRange, ch voxel.ChannelSet, _ *adapter.InputCursor) (*voxel.Tree, error) {
			wrong := voxel.NewChannelSet(voxel.ChannelColor)

			return voxel.NewTree(region, wrong, nil), nil
		},
	}
	s := &stubSerialize{supported: channels, consume: drainConsume}

	ictx, octx, pctx, sctx := newContexts(t, &stubInput{}, &stubOutput{}, p, s)

	err := Region(ictx, octx, pctx, sctx, testRegion(), channels)
	require.ErrorIs(t, err, errs.ErrCorrupt)
	assert.Equal(t, 0, s.consumes, "mismatched tree never reaches serialize")
}

func TestRegion_PhaseClassification(t *testing.T) {
	channels := voxel.NewChannelSet(voxel.ChannelColor)

	t.Run("parse build failure", func(t *testing.T) {
		cause := errors.New("unreadable header")
		p := &stubParse{
			supported: channels,
			build: func(voxel.RegionRange, voxel.ChannelSet, *adapter.InputCursor) (*voxel.Tree, error) {
				return nil, fmt.Errorf("%w: %w", errs.ErrCorrupt, cause)
			},
		}
		s := &stubSerialize{supported: channels, consume: drainConsume}
		ictx, octx, pctx, sctx := newContexts(t, &stubInput{}, &stubOutput{}, p, s)

		err := Region(ictx, octx, pctx, sctx, testRegion(), channels)
		require.ErrorIs(t, err, errs.ErrCorrupt)
		require.ErrorIs(t, err, cause)

		var perr *errs.PhaseError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, errs.PhaseParse, perr.Phase)
	})

	t.Run("input failure during lazy parse keeps input phase", func(t *testing.T) {
		in := &stubInput{readErr: errors.New("socket closed")}
		p := &stubParse{
			supported: channels,
			build: func(region voxel.RegionRange, ch voxel.ChannelSet, cur *adapter.InputCursor) (*voxel.Tree, error) {
				// Defer all reading into the node stream.
				return voxel.NewLazyTree(region, ch, func() (*voxel.Node, error) {
					if _, err := cur.U32(); err != nil {
						return nil, err
					}

					return nil, nil
				}), nil
			},
		}
		s := &stubSerialize{supported: channels, consume: drainConsume}
		ictx, octx, pctx, sctx := newContexts(t, in, &stubOutput{}, p, s)

		err := Region(ictx, octx, pctx, sctx, testRegion(), channels)
		require.ErrorIs(t, err, errs.ErrIOFailure)

		var perr *errs.PhaseError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, errs.PhaseInput, perr.Phase, "origin phase survives the parse and serialize wrapping")
	})

	t.Run("serialize consume failure", func(t *testing.T) {
		cause := errors.New("unsupported node shape")
		p := &stubParse{supported: channels, build: fullCoverBuild}
		s := &stubSerialize{
			supported: channels,
			consume: func(*voxel.Tree, voxel.RegionRange, voxel.ChannelSet, *adapter.OutputCursor) error {
				return cause
			},
		}
		ictx, octx, pctx, sctx := newContexts(t, &stubInput{}, &stubOutput{}, p, s)

		err := Region(ictx, octx, pctx, sctx, testRegion(), channels)
		require.ErrorIs(t, err, cause)

		var perr *errs.PhaseError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, errs.PhaseSerialize, perr.Phase)
	})

	t.Run("output failure during serialize keeps output phase", func(t *testing.T) {
		out := &stubOutput{writeErr: errors.New("disk full")}
		p := &stubParse{supported: channels, build: fullCoverBuild}
		s := &stubSerialize{
			supported: channels,
			consume: func(tree *voxel.Tree, region voxel.RegionRange, ch voxel.ChannelSet, oc *adapter.OutputCursor) error {
				if err := drainConsume(tree, region, ch, oc); err != nil {
					return err
				}

				return oc.AppendU8(0)
			},
		}
		ictx, octx, pctx, sctx := newContexts(t, &stubInput{}, out, p, s)

		err := Region(ictx, octx, pctx, sctx, testRegion(), channels)
		require.ErrorIs(t, err, errs.ErrIOFailure)

		var perr *errs.PhaseError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, errs.PhaseOutput, perr.Phase)
	})
}

func TestRegion_RepeatBlitsAreIndependent(t *testing.T) {
	channels := voxel.NewChannelSet(voxel.ChannelColor)

	run := func() []byte {
		out := &stubOutput{}
		p := &stubParse{supported: channels, build: fullCoverBuild}
		s := &stubSerialize{
			supported: channels,
			consume: func(tree *voxel.Tree, region voxel.RegionRange, ch voxel.ChannelSet, oc *adapter.OutputCursor) error {
				var total uint64
				for n, err := range tree.Nodes() {
					if err != nil {
						return err
					}
					total += n.Range.Intersect(region).Volume()
				}

				return oc.AppendU64(total)
			},
		}
		ictx, octx, pctx, sctx := newContexts(t, &stubInput{}, out, p, s)
		require.NoError(t, Region(ictx, octx, pctx, sctx, testRegion(), channels))

		return out.data
	}

	first := run()
	second := run()
	require.Equal(t, first, second, "equal invocations produce equal output")
}
