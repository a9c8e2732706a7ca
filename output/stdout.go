package output

import (
	"fmt"
	"io"
	"os"

	"github.com/arloliu/voxblit/adapter"
	"github.com/arloliu/voxblit/errs"
)

// StdoutConfig configures the stdout output adapter.
type StdoutConfig struct {
	// Writer overrides the destination stream. Nil means os.Stdout.
	Writer io.Writer
}

// stdoutHandler buffers positioned writes and flushes the assembled
// bytes in one pass on Destroy. Buffering is what lets serializers seek
// backwards to patch headers even though the destination is a stream.
type stdoutHandler struct {
	writer io.Writer
	buf    []byte
}

var _ adapter.OutputHandler = (*stdoutHandler)(nil)

func newStdoutHandler(cfg any) (adapter.OutputHandler, error) {
	var writer io.Writer
	switch c := cfg.(type) {
	case nil:
		writer = os.Stdout
	case StdoutConfig:
		writer = c.Writer
	case *StdoutConfig:
		writer = c.Writer
	case io.Writer:
		writer = c
	default:
		return nil, fmt.Errorf("%w: stdout output wants output.StdoutConfig, an io.Writer or nil, got %T", errs.ErrConfigMismatch, cfg)
	}

	if writer == nil {
		writer = os.Stdout
	}

	return &stdoutHandler{writer: writer}, nil
}

func (h *stdoutHandler) Write(pos uint64, data []byte) error {
	end := pos + uint64(len(data))
	if end > uint64(len(h.buf)) {
		grown := make([]byte, end)
		copy(grown, h.buf)
		h.buf = grown
	}

	copy(h.buf[pos:end], data)

	return nil
}

func (h *stdoutHandler) Destroy() error {
	if len(h.buf) == 0 {
		return nil
	}

	_, err := h.writer.Write(h.buf)
	h.buf = nil

	return err
}
