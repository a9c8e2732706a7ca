package input

import (
	"fmt"
	"io"
	"os"

	"github.com/arloliu/voxblit/adapter"
	"github.com/arloliu/voxblit/errs"
)

// FileConfig configures the file input adapter.
type FileConfig struct {
	// Path is the file to read container data from.
	Path string
	// ByteOffset is added to every read position, letting a container be
	// embedded at an offset inside a larger file.
	ByteOffset uint64
}

type fileHandler struct {
	file   *os.File
	offset uint64
}

var _ adapter.InputHandler = (*fileHandler)(nil)

func newFileHandler(cfg any) (adapter.InputHandler, error) {
	var fc FileConfig
	switch c := cfg.(type) {
	case FileConfig:
		fc = c
	case *FileConfig:
		fc = *c
	default:
		return nil, fmt.Errorf("%w: file input wants input.FileConfig, got %T", errs.ErrConfigMismatch, cfg)
	}

	file, err := os.Open(fc.Path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", fc.Path, err)
	}

	return &fileHandler{file: file, offset: fc.ByteOffset}, nil
}

func (h *fileHandler) Read(pos uint64, dst []byte) error {
	if len(dst) == 0 {
		return nil
	}

	n, err := h.file.ReadAt(dst, int64(h.offset+pos))
	if n == len(dst) {
		// A full read that also hits EOF is still a full read.
		return nil
	}
	if err == io.EOF {
		return fmt.Errorf("read range [%d, %d) exceeds file size", pos, pos+uint64(len(dst)))
	}

	return err
}

func (h *fileHandler) Destroy() error {
	return h.file.Close()
}
