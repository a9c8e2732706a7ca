package compress

// ZstdCompressor provides Zstandard compression, the default for archival
// containers where ratio matters more than speed.
//
// Sample payloads with long uniform runs routinely compress 10:1 or
// better. Two interchangeable implementations back this type: the cgo
// gozstd bindings when cgo is enabled, and the pure-Go
// klauspost/compress/zstd implementation otherwise. Both produce and
// accept standard Zstandard frames, so containers written by one build
// are readable by the other.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
