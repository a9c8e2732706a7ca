package input

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/voxblit/adapter"
	"github.com/arloliu/voxblit/errs"
)

func writeTempFile(t *testing.T, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "volume.bin")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	return path
}

func TestFileHandler_Read(t *testing.T) {
	data := []byte{0x10, 0x20, 0x30, 0x40, 0x50, 0x60}
	path := writeTempFile(t, data)

	handler, err := newFileHandler(FileConfig{Path: path})
	require.NoError(t, err)
	defer func() { require.NoError(t, handler.Destroy()) }()

	t.Run("full read", func(t *testing.T) {
		dst := make([]byte, 6)
		require.NoError(t, handler.Read(0, dst))
		assert.Equal(t, data, dst)
	})

	t.Run("positioned read", func(t *testing.T) {
		dst := make([]byte, 2)
		require.NoError(t, handler.Read(3, dst))
		assert.Equal(t, []byte{0x40, 0x50}, dst)
	})

	t.Run("read ending at EOF", func(t *testing.T) {
		dst := make([]byte, 2)
		require.NoError(t, handler.Read(4, dst))
		assert.Equal(t, []byte{0x50, 0x60}, dst)
	})

	t.Run("empty read", func(t *testing.T) {
		require.NoError(t, handler.Read(6, nil))
	})

	t.Run("read past end", func(t *testing.T) {
		dst := make([]byte, 4)
		err := handler.Read(4, dst)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exceeds file size")
	})
}

func TestFileHandler_ByteOffset(t *testing.T) {
	// Container embedded after an 8-byte preamble.
	data := append([]byte("preamble"), 0xCA, 0xFE, 0xBA, 0xBE)
	path := writeTempFile(t, data)

	handler, err := newFileHandler(&FileConfig{Path: path, ByteOffset: 8})
	require.NoError(t, err)
	defer func() { require.NoError(t, handler.Destroy()) }()

	dst := make([]byte, 4)
	require.NoError(t, handler.Read(0, dst))
	assert.Equal(t, []byte{0xCA, 0xFE, 0xBA, 0xBE}, dst)
}

func TestFileHandler_Config(t *testing.T) {
	t.Run("wrong config type", func(t *testing.T) {
		_, err := newFileHandler("not a config")
		require.ErrorIs(t, err, errs.ErrConfigMismatch)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := newFileHandler(FileConfig{Path: filepath.Join(t.TempDir(), "missing.bin")})
		require.Error(t, err)
		require.NotErrorIs(t, err, errs.ErrConfigMismatch)
	})

	t.Run("missing file surfaces as init failure through registry", func(t *testing.T) {
		reg := adapter.NewRegistry()
		require.NoError(t, Register(reg))

		desc, ok := reg.LookupInput("file")
		require.True(t, ok)

		_, err := desc.CreateContext(FileConfig{Path: filepath.Join(t.TempDir(), "missing.bin")})
		require.ErrorIs(t, err, errs.ErrInitFailed)
	})
}

func TestRegister(t *testing.T) {
	reg := adapter.NewRegistry()
	require.NoError(t, Register(reg))

	assert.True(t, reg.Contains(adapter.RoleInput, "byte_buffer"))
	assert.True(t, reg.Contains(adapter.RoleInput, "file"))

	// Registering twice collides on names.
	require.ErrorIs(t, Register(reg), errs.ErrDuplicateAdapter)
}
