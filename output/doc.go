// Package output provides the built-in Output adapters.
//
// Three adapters cover the common sinks:
//
//   - byte_buffer: collects writes in memory and publishes the finished
//     bytes into the caller's *[]byte when the context is destroyed.
//   - file: writes positioned data directly into a file on disk.
//   - stdout: collects writes in memory and flushes them to standard
//     output (or a configured io.Writer) when the context is destroyed,
//     so serializers can backpatch positions even on a stream.
//
// Register seeds a registry with all three adapters. Handlers return
// plain errors from Write; the engine's output cursor classifies them as
// I/O failures of the output stage.
//
// Destroying an output context is what completes the sink: the file
// adapter closes its file, the stdout adapter flushes its buffer, and
// the byte_buffer adapter publishes the result. Dropping a context
// without destroying it discards buffered output.
package output
