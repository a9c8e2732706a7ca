package output

import "github.com/arloliu/voxblit/adapter"

// Register seeds the registry with the built-in output adapters.
func Register(reg *adapter.Registry) error {
	if err := reg.RegisterOutput("byte_buffer", newByteBufferHandler); err != nil {
		return err
	}

	if err := reg.RegisterOutput("file", newFileHandler); err != nil {
		return err
	}

	return reg.RegisterOutput("stdout", newStdoutHandler)
}
