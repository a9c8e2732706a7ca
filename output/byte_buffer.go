package output

import (
	"fmt"

	"github.com/arloliu/voxblit/adapter"
	"github.com/arloliu/voxblit/errs"
)

// ByteBufferConfig configures the byte_buffer output adapter.
type ByteBufferConfig struct {
	// Out receives the finished container bytes when the context is
	// destroyed. Must be non-nil.
	Out *[]byte
}

type byteBufferHandler struct {
	out *[]byte
	buf []byte
}

var _ adapter.OutputHandler = (*byteBufferHandler)(nil)

func newByteBufferHandler(cfg any) (adapter.OutputHandler, error) {
	var out *[]byte
	switch c := cfg.(type) {
	case ByteBufferConfig:
		out = c.Out
	case *ByteBufferConfig:
		out = c.Out
	case *[]byte:
		out = c
	default:
		return nil, fmt.Errorf("%w: byte_buffer output wants output.ByteBufferConfig or *[]byte, got %T", errs.ErrConfigMismatch, cfg)
	}

	if out == nil {
		return nil, fmt.Errorf("%w: byte_buffer output requires a non-nil destination", errs.ErrConfigMismatch)
	}

	return &byteBufferHandler{out: out}, nil
}

func (h *byteBufferHandler) Write(pos uint64, data []byte) error {
	end := pos + uint64(len(data))
	if end > uint64(len(h.buf)) {
		grown := make([]byte, end)
		copy(grown, h.buf)
		h.buf = grown
	}

	copy(h.buf[pos:end], data)

	return nil
}

func (h *byteBufferHandler) Destroy() error {
	*h.out = h.buf
	h.buf = nil

	return nil
}
