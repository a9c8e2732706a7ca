package adapter

import (
	"fmt"

	"github.com/arloliu/voxblit/endian"
	"github.com/arloliu/voxblit/errs"
)

// InputCursor layers sequential, endian-aware reads on top of an
// InputHandler's absolute-position Read.
//
// Multi-byte reads are little-endian, matching the built-in container
// encodings. Every handler failure is classified as ErrIOFailure and
// tagged with the input phase, so a parse failure whose root cause is an
// input fault keeps its origin.
type InputCursor struct {
	handler InputHandler
	engine  endian.EndianEngine
	pos     uint64
	scratch [8]byte
}

// NewInputCursor wraps handler in a cursor positioned at byte 0.
func NewInputCursor(handler InputHandler) *InputCursor {
	return &InputCursor{
		handler: handler,
		engine:  endian.GetLittleEndianEngine(),
	}
}

// ReadAt fills dst from absolute position pos. The sequential position
// does not move.
func (c *InputCursor) ReadAt(pos uint64, dst []byte) error {
	if len(dst) == 0 {
		return nil
	}

	if err := c.handler.Read(pos, dst); err != nil {
		return errs.NewPhaseError(errs.PhaseInput,
			fmt.Errorf("%w: read %d bytes at offset %d: %w", errs.ErrIOFailure, len(dst), pos, err))
	}

	return nil
}

// Position returns the sequential read position.
func (c *InputCursor) Position() uint64 { return c.pos }

// Seek moves the sequential read position to pos.
func (c *InputCursor) Seek(pos uint64) { c.pos = pos }

// Skip advances the sequential read position by n bytes.
func (c *InputCursor) Skip(n uint64) { c.pos += n }

// Next reads n bytes at the sequential position and advances past them.
// The returned slice is freshly allocated and owned by the caller.
func (c *InputCursor) Next(n int) ([]byte, error) {
	buf := make([]byte, n)
	if err := c.ReadAt(c.pos, buf); err != nil {
		return nil, err
	}
	c.pos += uint64(n)

	return buf, nil
}

// U8 reads one byte at the sequential position and advances past it.
func (c *InputCursor) U8() (uint8, error) {
	if err := c.ReadAt(c.pos, c.scratch[:1]); err != nil {
		return 0, err
	}
	c.pos++

	return c.scratch[0], nil
}

// U16 reads a little-endian uint16 at the sequential position and
// advances past it.
func (c *InputCursor) U16() (uint16, error) {
	if err := c.ReadAt(c.pos, c.scratch[:2]); err != nil {
		return 0, err
	}
	c.pos += 2

	return c.engine.Uint16(c.scratch[:2]), nil
}

// U32 reads a little-endian uint32 at the sequential position and
// advances past it.
func (c *InputCursor) U32() (uint32, error) {
	if err := c.ReadAt(c.pos, c.scratch[:4]); err != nil {
		return 0, err
	}
	c.pos += 4

	return c.engine.Uint32(c.scratch[:4]), nil
}

// U64 reads a little-endian uint64 at the sequential position and
// advances past it.
func (c *InputCursor) U64() (uint64, error) {
	if err := c.ReadAt(c.pos, c.scratch[:8]); err != nil {
		return 0, err
	}
	c.pos += 8

	return c.engine.Uint64(c.scratch[:8]), nil
}

// OutputCursor layers append-style, endian-aware writes on top of an
// OutputHandler's absolute-position Write and tracks the high-water
// mark of everything written.
//
// Multi-byte writes are little-endian, matching the built-in container
// encodings. Every handler failure is classified as ErrIOFailure and
// tagged with the output phase.
type OutputCursor struct {
	handler OutputHandler
	engine  endian.EndianEngine
	pos     uint64
	high    uint64
	scratch [8]byte
}

// NewOutputCursor wraps handler in a cursor positioned at byte 0.
func NewOutputCursor(handler OutputHandler) *OutputCursor {
	return &OutputCursor{
		handler: handler,
		engine:  endian.GetLittleEndianEngine(),
	}
}

// WriteAt stores data at absolute position pos. The append position does
// not move; the high-water mark extends when the write ends past it.
func (c *OutputCursor) WriteAt(pos uint64, data []byte) error {
	if len(data) == 0 {
		return nil
	}

	if err := c.handler.Write(pos, data); err != nil {
		return errs.NewPhaseError(errs.PhaseOutput,
			fmt.Errorf("%w: write %d bytes at offset %d: %w", errs.ErrIOFailure, len(data), pos, err))
	}

	if end := pos + uint64(len(data)); end > c.high {
		c.high = end
	}

	return nil
}

// Append writes data at the append position and advances past it.
func (c *OutputCursor) Append(data []byte) error {
	if err := c.WriteAt(c.pos, data); err != nil {
		return err
	}
	c.pos += uint64(len(data))

	return nil
}

// AppendString writes s at the append position and advances past it.
func (c *OutputCursor) AppendString(s string) error {
	return c.Append([]byte(s))
}

// AppendU8 writes one byte at the append position and advances past it.
func (c *OutputCursor) AppendU8(v uint8) error {
	c.scratch[0] = v

	return c.Append(c.scratch[:1])
}

// AppendU16 writes a little-endian uint16 at the append position and
// advances past it.
func (c *OutputCursor) AppendU16(v uint16) error {
	c.engine.PutUint16(c.scratch[:2], v)

	return c.Append(c.scratch[:2])
}

// AppendU32 writes a little-endian uint32 at the append position and
// advances past it.
func (c *OutputCursor) AppendU32(v uint32) error {
	c.engine.PutUint32(c.scratch[:4], v)

	return c.Append(c.scratch[:4])
}

// AppendU64 writes a little-endian uint64 at the append position and
// advances past it.
func (c *OutputCursor) AppendU64(v uint64) error {
	c.engine.PutUint64(c.scratch[:8], v)

	return c.Append(c.scratch[:8])
}

// Position returns the append position.
func (c *OutputCursor) Position() uint64 { return c.pos }

// Seek moves the append position to pos. Useful for backpatching a
// header after its payload length is known.
func (c *OutputCursor) Seek(pos uint64) { c.pos = pos }

// BytesWritten returns the high-water mark: the end offset of the
// furthest write issued so far.
func (c *OutputCursor) BytesWritten() uint64 { return c.high }
