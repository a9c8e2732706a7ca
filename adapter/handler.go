package adapter

import (
	"github.com/arloliu/voxblit/voxel"
)

// InputHandler is the adapter surface of an Input source.
//
// Read fills dst from absolute byte position pos. Short reads are not
// modeled: the handler either fills dst completely or returns an error.
type InputHandler interface {
	Read(pos uint64, dst []byte) error
	Destroy() error
}

// OutputHandler is the adapter surface of an Output sink.
//
// Write stores data at absolute byte position pos, extending the sink as
// needed. Destroy flushes whatever the sink buffers.
type OutputHandler interface {
	Write(pos uint64, data []byte) error
	Destroy() error
}

// ParseHandler is the adapter surface of a Parse decoder.
//
// Build decodes the source read through in and returns a node tree whose
// bounds declare where the source has data. The tree is valid for one
// consumption within the same blit. Build must not read channels outside
// the channels set, and may produce the tree lazily; in stays usable for
// the tree's whole consumption.
type ParseHandler interface {
	SupportedChannels() voxel.ChannelSet
	Build(region voxel.RegionRange, channels voxel.ChannelSet, in *InputCursor) (*voxel.Tree, error)
	Destroy() error
}

// SerializeHandler is the adapter surface of a Serialize encoder.
//
// Consume walks tree restricted to region and writes the encoding
// through out. It must not write channels outside the channels set.
type SerializeHandler interface {
	SupportedChannels() voxel.ChannelSet
	Consume(tree *voxel.Tree, region voxel.RegionRange, channels voxel.ChannelSet, out *OutputCursor) error
	Destroy() error
}

// Factory signatures, one per role. A factory validates its opaque
// configuration and constructs a ready handler: a config of the wrong Go
// type fails with ErrConfigMismatch, any other construction failure is
// reported as ErrInitFailed by CreateContext.
type (
	InputFactory     func(cfg any) (InputHandler, error)
	OutputFactory    func(cfg any) (OutputHandler, error)
	ParseFactory     func(cfg any) (ParseHandler, error)
	SerializeFactory func(cfg any) (SerializeHandler, error)
)

// RawConfig carries pre-encoded configuration for out-of-tree adapters
// whose config cannot be expressed as one of the documented struct
// types. TypeTag names the encoding so the receiving factory can decide
// whether it understands Data; factories reject unknown tags with
// ErrConfigMismatch.
type RawConfig struct {
	TypeTag string
	Data    []byte
}
