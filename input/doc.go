// Package input provides the built-in Input adapters.
//
// Two adapters cover the common sources:
//
//   - byte_buffer: serves reads from an in-memory byte slice, configured
//     with an input.ByteBufferConfig (or a bare []byte).
//   - file: serves reads from a file on disk, configured with an
//     input.FileConfig carrying the path and an optional byte offset
//     into the file.
//
// Register seeds a registry with both adapters. Handlers return plain
// errors from Read; the engine's input cursor classifies them as I/O
// failures of the input stage.
package input
