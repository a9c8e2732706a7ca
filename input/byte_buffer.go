package input

import (
	"fmt"

	"github.com/arloliu/voxblit/adapter"
	"github.com/arloliu/voxblit/errs"
)

// ByteBufferConfig configures the byte_buffer input adapter.
type ByteBufferConfig struct {
	// Data is the container bytes to serve reads from. The handler does
	// not copy the slice; the caller must keep it alive and unmodified
	// for the lifetime of the context.
	Data []byte
}

type byteBufferHandler struct {
	data []byte
}

var _ adapter.InputHandler = (*byteBufferHandler)(nil)

func newByteBufferHandler(cfg any) (adapter.InputHandler, error) {
	switch c := cfg.(type) {
	case ByteBufferConfig:
		return &byteBufferHandler{data: c.Data}, nil
	case *ByteBufferConfig:
		return &byteBufferHandler{data: c.Data}, nil
	case []byte:
		return &byteBufferHandler{data: c}, nil
	default:
		return nil, fmt.Errorf("%w: byte_buffer input wants input.ByteBufferConfig or []byte, got %T", errs.ErrConfigMismatch, cfg)
	}
}

func (h *byteBufferHandler) Read(pos uint64, dst []byte) error {
	end := pos + uint64(len(dst))
	if end > uint64(len(h.data)) {
		return fmt.Errorf("read range [%d, %d) exceeds buffer size %d", pos, end, len(h.data))
	}

	copy(dst, h.data[pos:end])

	return nil
}

func (h *byteBufferHandler) Destroy() error {
	h.data = nil

	return nil
}
