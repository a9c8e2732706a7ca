package parse

import (
	"fmt"
	"math"

	"github.com/arloliu/voxblit/adapter"
	"github.com/arloliu/voxblit/compress"
	"github.com/arloliu/voxblit/endian"
	"github.com/arloliu/voxblit/errs"
	"github.com/arloliu/voxblit/section"
	"github.com/arloliu/voxblit/voxel"
)

// maxPayloadBytes caps how large a stored payload a parser will load in
// one piece.
const maxPayloadBytes = math.MaxInt32

// requireNilConfig rejects any configuration: the built-in parsers are
// driven entirely by the data they read.
func requireNilConfig(name string, cfg any) error {
	if cfg != nil {
		return fmt.Errorf("%w: %s parser takes no configuration, got %T", errs.ErrConfigMismatch, name, cfg)
	}

	return nil
}

// readVolume reads and validates a container's header, then loads,
// verifies and decompresses its payload.
func readVolume(in *adapter.InputCursor, magic uint16) (section.VolumeHeader, []byte, error) {
	headerBytes, err := in.Next(section.HeaderSize)
	if err != nil {
		return section.VolumeHeader{}, nil, err
	}

	header, err := section.ParseVolumeHeader(headerBytes)
	if err != nil {
		return section.VolumeHeader{}, nil, err
	}
	if err := header.ExpectMagic(magic); err != nil {
		return section.VolumeHeader{}, nil, err
	}

	payload, err := loadPayload(in, &header)
	if err != nil {
		return section.VolumeHeader{}, nil, err
	}

	return header, payload, nil
}

// loadPayload reads the stored payload section and returns it decoded.
func loadPayload(in *adapter.InputCursor, header *section.VolumeHeader) ([]byte, error) {
	if header.PayloadLength > maxPayloadBytes {
		return nil, fmt.Errorf("%w: payload length %d exceeds limit %d", errs.ErrCorrupt, header.PayloadLength, maxPayloadBytes)
	}

	stored, err := in.Next(int(header.PayloadLength))
	if err != nil {
		return nil, err
	}
	if err := header.VerifyPayload(stored); err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(header.Flag.Compression())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrCorrupt, err)
	}

	payload, err := codec.Decompress(stored)
	if err != nil {
		return nil, fmt.Errorf("%w: decompress payload: %w", errs.ErrCorrupt, err)
	}

	return payload, nil
}

// projection maps effective channel ranks to stored tuple positions.
// A slot of -1 marks a requested channel the container does not store;
// it decodes as zero.
type projection struct {
	storedCount int
	slots       []int
}

func newProjection(stored, effective voxel.ChannelSet) projection {
	slots := make([]int, 0, effective.Count())
	for c := range effective.All() {
		if stored.Contains(c) {
			slots = append(slots, stored.Index(c))
		} else {
			slots = append(slots, -1)
		}
	}

	return projection{storedCount: stored.Count(), slots: slots}
}

// apply projects one stored tuple into the effective channel layout.
func (p projection) apply(stored, out []uint32) {
	for i, slot := range p.slots {
		if slot >= 0 {
			out[i] = stored[slot]
		} else {
			out[i] = 0
		}
	}
}

// decode projects one little-endian encoded tuple into the effective
// channel layout.
func (p projection) decode(engine endian.EndianEngine, tupleBytes []byte, out []uint32) {
	for i, slot := range p.slots {
		if slot >= 0 {
			out[i] = engine.Uint32(tupleBytes[slot*4:])
		} else {
			out[i] = 0
		}
	}
}

// payloadReader walks a decoded payload; running past its end or over
// malformed fields reports ErrCorrupt.
type payloadReader struct {
	engine endian.EndianEngine
	data   []byte
	pos    int
}

func newPayloadReader(data []byte) *payloadReader {
	return &payloadReader{engine: endian.GetLittleEndianEngine(), data: data}
}

func (r *payloadReader) u8() (uint8, error) {
	if r.pos+1 > len(r.data) {
		return 0, fmt.Errorf("%w: payload truncated at byte %d", errs.ErrCorrupt, r.pos)
	}
	v := r.data[r.pos]
	r.pos++

	return v, nil
}

func (r *payloadReader) u32() (uint32, error) {
	if r.pos+4 > len(r.data) {
		return 0, fmt.Errorf("%w: payload truncated at byte %d", errs.ErrCorrupt, r.pos)
	}
	v := r.engine.Uint32(r.data[r.pos:])
	r.pos += 4

	return v, nil
}

// tuple reads len(out) consecutive uint32 samples.
func (r *payloadReader) tuple(out []uint32) error {
	if r.pos+len(out)*4 > len(r.data) {
		return fmt.Errorf("%w: payload truncated at byte %d", errs.ErrCorrupt, r.pos)
	}
	for i := range out {
		out[i] = r.engine.Uint32(r.data[r.pos+i*4:])
	}
	r.pos += len(out) * 4

	return nil
}

func (r *payloadReader) take(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.data) {
		return nil, fmt.Errorf("%w: payload truncated at byte %d", errs.ErrCorrupt, r.pos)
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n

	return b, nil
}

// expectEnd fails when decoding left unconsumed payload bytes behind.
func (r *payloadReader) expectEnd() error {
	if r.pos != len(r.data) {
		return fmt.Errorf("%w: %d trailing payload bytes", errs.ErrCorrupt, len(r.data)-r.pos)
	}

	return nil
}
