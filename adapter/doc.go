// Package adapter provides the pluggable four-role framework the blit
// engine dispatches through: Input sources, Output sinks, Parse decoders
// and Serialize encoders.
//
// # Roles and descriptors
//
// An adapter is registered under a (role, name) pair as a factory that
// turns an opaque configuration value into a handler. Registration
// yields a role-typed descriptor (InputDescriptor, OutputDescriptor,
// ParseDescriptor, SerializeDescriptor); the distinct types make it
// impossible to hand an adapter of one role to a slot expecting another.
//
// # Contexts
//
// Descriptor.CreateContext instantiates a handler and pairs it with the
// registry that produced the descriptor. A context is destroyed exactly
// once: Destroy runs the handler's cleanup and marks the context dead,
// and every later use fails with ErrContextDestroyed. Output-role
// handlers flush their sink as part of cleanup.
//
// # Configuration
//
// Configurations are forwarded to factories opaquely. Built-in adapters
// document concrete config struct types and reject anything else with
// ErrConfigMismatch; RawConfig is the escape hatch for out-of-tree
// adapters that need to smuggle pre-encoded configuration through
// generic plumbing.
//
// # Cursors
//
// During a blit, Parse reads input through an InputCursor and Serialize
// writes output through an OutputCursor. Cursors layer sequential,
// endian-aware access on top of the handlers' absolute-position Read and
// Write, and classify every handler failure as an I/O failure tagged
// with the originating pipeline phase.
package adapter
