package compress

import (
	"fmt"

	"github.com/arloliu/voxblit/format"
)

// Compressor compresses voxel payload bytes.
//
// The input is typically a complete container payload: packed uint32
// samples, palette tables, or run-length records that the serializer has
// already laid out in wire order.
//
// Memory management:
//   - Returned slice is newly allocated and owned by the caller
//   - Input slice is not modified
//   - Internal buffers may be reused for efficiency
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a payload previously produced by the matching
// Compressor.
//
// The implementations validate the compressed framing and return an error
// for corrupted input or input produced by a different algorithm. Callers
// decoding containers should treat any such error as data corruption.
//
// Memory management:
//   - Returned slice is newly allocated and owned by the caller
//   - Input slice is not modified
//   - Internal buffers may be reused for efficiency
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions of one compression algorithm.
//
// All built-in codecs are stateless values and safe for concurrent use.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec creates a Codec for the specified compression type.
//
// Parameters:
//   - compressionType: Type of compression (None, Zstd, S2, or LZ4)
//   - target: Description of target usage (for error messages)
//
// Returns:
//   - Codec: Codec instance for the specified type
//   - error: Invalid compression type error
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %s", target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves the shared built-in Codec for the specified
// compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}
