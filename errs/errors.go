// Package errs defines the error kinds shared across voxblit packages.
//
// All errors are sentinel values intended for errors.Is checks. Call sites
// wrap them with fmt.Errorf("%w: ...") to attach detail, so callers can
// match the kind while still seeing the specific cause in the message.
package errs

import "errors"

// Registry and context lifecycle errors.
var (
	// ErrDuplicateAdapter is returned when registering an adapter under a
	// (role, name) pair that is already present in the registry.
	ErrDuplicateAdapter = errors.New("adapter already registered")

	// ErrUnknownAdapter is returned when a caller requires an adapter that
	// is not present in the registry.
	ErrUnknownAdapter = errors.New("unknown adapter")

	// ErrConfigMismatch is returned when a context is created with a
	// configuration value whose shape does not match what the adapter
	// expects.
	ErrConfigMismatch = errors.New("adapter config mismatch")

	// ErrInitFailed is returned when an adapter's initializer rejects an
	// otherwise well-shaped configuration.
	ErrInitFailed = errors.New("adapter init failed")

	// ErrContextDestroyed is returned when a destroyed adapter context is
	// destroyed again or used in a blit.
	ErrContextDestroyed = errors.New("adapter context destroyed")
)

// Blit and data errors.
var (
	// ErrNoCompatibleChannels is returned when the requested channel mask
	// intersected with both endpoints' supported masks is empty.
	ErrNoCompatibleChannels = errors.New("no compatible channels")

	// ErrIOFailure is returned when an input read or output write fails.
	ErrIOFailure = errors.New("adapter I/O failure")

	// ErrOutOfBounds is returned when region arithmetic overflows the
	// coordinate space.
	ErrOutOfBounds = errors.New("region out of bounds")

	// ErrCorrupt is returned when a parse adapter detects malformed input
	// bytes, or when a node stream violates the coverage contract.
	ErrCorrupt = errors.New("corrupt voxel data")

	// ErrTreeConsumed is returned when a node tree is walked a second
	// time. Trees are forward-only; re-consuming requires a fresh parse.
	ErrTreeConsumed = errors.New("node tree already consumed")
)
