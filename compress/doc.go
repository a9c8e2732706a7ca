// Package compress provides payload compression codecs for voxblit
// container formats.
//
// Voxel payloads are long runs of little-endian uint32 samples. Runs of
// identical samples (uniform terrain, empty space) and byte-plane
// redundancy (alpha bytes, zero normal high bytes) make them highly
// compressible, so container serializers compress the payload section and
// record the codec in the header.
//
// # Codecs
//
// Four codecs cover the container formats' needs:
//
//   - None: pass-through, for debugging and for payloads that are already
//     dense (for example palette indices near the entropy limit).
//   - Zstd: best ratio, the default for archival containers. Uses the cgo
//     gozstd bindings when available and the pure-Go implementation
//     otherwise; the wire format is identical either way.
//   - S2: fastest, for interactive pipelines that re-serialize regions
//     every frame.
//   - LZ4: block format, for interoperability with readers that only
//     link liblz4.
//
// # Usage
//
// Codecs are selected by format.CompressionType, either per call site:
//
//	codec, err := compress.CreateCodec(format.CompressionZstd, "payload")
//	if err != nil {
//	    return err
//	}
//	compressed, err := codec.Compress(payload)
//
// or through the shared built-in instances:
//
//	codec, _ := compress.GetCodec(header.Compression)
//	payload, err := codec.Decompress(raw)
//
// All codecs are stateless values and safe for concurrent use; pooled
// encoder state is managed internally.
//
// Codecs return plain errors. Callers that decode container payloads are
// expected to classify a failed Decompress as data corruption.
package compress
