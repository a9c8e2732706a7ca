package voxel

import (
	"fmt"
	"iter"

	"github.com/arloliu/voxblit/errs"
)

// Tree is a finite forward-only stream of nodes over a bounded box.
//
// A tree is produced by one parse pass, belongs to that pass alone, and
// is consumed exactly once. Production may be eager (NewTree) or
// demand-driven (NewLazyTree); consumers cannot tell the difference.
// Node boxes may extend past the bounds; consumers clip.
type Tree struct {
	bounds   RegionRange
	channels ChannelSet
	pull     func() (*Node, error)
	done     bool
}

// NewTree builds an eagerly materialized tree from a fixed node list.
func NewTree(bounds RegionRange, channels ChannelSet, nodes []*Node) *Tree {
	i := 0

	return &Tree{
		bounds:   bounds,
		channels: channels,
		pull: func() (*Node, error) {
			if i >= len(nodes) {
				return nil, nil
			}
			n := nodes[i]
			i++

			return n, nil
		},
	}
}

// NewLazyTree builds a demand-driven tree. pull returns the next node in
// the stream, or (nil, nil) once the stream is exhausted. pull is never
// called again after it reports exhaustion or an error.
func NewLazyTree(bounds RegionRange, channels ChannelSet, pull func() (*Node, error)) *Tree {
	return &Tree{bounds: bounds, channels: channels, pull: pull}
}

// Bounds returns the box of voxel coordinates the source declares data
// for. Voxels outside it take the default sample.
func (t *Tree) Bounds() RegionRange {
	return t.bounds
}

// Channels returns the channel set the tree's samples are laid out for.
func (t *Tree) Channels() ChannelSet {
	return t.channels
}

// Next returns the next node in the stream.
//
// It returns (nil, nil) exactly once when the stream ends cleanly; any
// call after that fails with ErrTreeConsumed. A production error ends
// the stream as well.
func (t *Tree) Next() (*Node, error) {
	if t.done {
		return nil, fmt.Errorf("%w: tree over %s", errs.ErrTreeConsumed, t.bounds)
	}

	n, err := t.pull()
	if err != nil {
		t.done = true

		return nil, err
	}
	if n == nil {
		t.done = true

		return nil, nil
	}

	return n, nil
}

// Nodes iterates the remaining stream. On a production failure the
// sequence yields (nil, err) and stops; iterating a consumed tree yields
// (nil, ErrTreeConsumed).
func (t *Tree) Nodes() iter.Seq2[*Node, error] {
	return func(yield func(*Node, error) bool) {
		for {
			n, err := t.Next()
			if err != nil {
				yield(nil, err)

				return
			}
			if n == nil {
				return
			}
			if !yield(n, nil) {
				return
			}
		}
	}
}
