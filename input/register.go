package input

import "github.com/arloliu/voxblit/adapter"

// Register seeds the registry with the built-in input adapters.
func Register(reg *adapter.Registry) error {
	if err := reg.RegisterInput("byte_buffer", newByteBufferHandler); err != nil {
		return err
	}

	return reg.RegisterInput("file", newFileHandler)
}
