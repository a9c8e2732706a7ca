package output

import (
	"fmt"
	"os"

	"github.com/arloliu/voxblit/adapter"
	"github.com/arloliu/voxblit/errs"
)

// FileConfig configures the file output adapter.
type FileConfig struct {
	// Path is the file to write container data to. An existing file is
	// truncated when the context is created.
	Path string
}

type fileHandler struct {
	file *os.File
}

var _ adapter.OutputHandler = (*fileHandler)(nil)

func newFileHandler(cfg any) (adapter.OutputHandler, error) {
	var fc FileConfig
	switch c := cfg.(type) {
	case FileConfig:
		fc = c
	case *FileConfig:
		fc = *c
	default:
		return nil, fmt.Errorf("%w: file output wants output.FileConfig, got %T", errs.ErrConfigMismatch, cfg)
	}

	file, err := os.Create(fc.Path)
	if err != nil {
		return nil, fmt.Errorf("create %q: %w", fc.Path, err)
	}

	return &fileHandler{file: file}, nil
}

func (h *fileHandler) Write(pos uint64, data []byte) error {
	_, err := h.file.WriteAt(data, int64(pos))

	return err
}

func (h *fileHandler) Destroy() error {
	return h.file.Close()
}
