package adapter

import (
	"fmt"

	"github.com/arloliu/voxblit/errs"
)

// InputContext is a live Input adapter instance. A context belongs to
// one goroutine at a time and is destroyed exactly once.
type InputContext struct {
	desc    *InputDescriptor
	handler InputHandler
}

// Descriptor returns the descriptor the context was created from.
func (c *InputContext) Descriptor() *InputDescriptor { return c.desc }

// Handler returns the live handler. It fails with ErrContextDestroyed
// once the context has been destroyed.
func (c *InputContext) Handler() (InputHandler, error) {
	if c.handler == nil {
		return nil, fmt.Errorf("%w: input adapter %q", errs.ErrContextDestroyed, c.desc.name)
	}

	return c.handler, nil
}

// Destroy runs the adapter's cleanup exactly once and marks the context
// dead. A second Destroy fails with ErrContextDestroyed.
func (c *InputContext) Destroy() error {
	if c.handler == nil {
		return fmt.Errorf("%w: input adapter %q", errs.ErrContextDestroyed, c.desc.name)
	}

	h := c.handler
	c.handler = nil

	return h.Destroy()
}

// OutputContext is a live Output adapter instance. A context belongs to
// one goroutine at a time and is destroyed exactly once; Destroy flushes
// the sink.
type OutputContext struct {
	desc    *OutputDescriptor
	handler OutputHandler
}

// Descriptor returns the descriptor the context was created from.
func (c *OutputContext) Descriptor() *OutputDescriptor { return c.desc }

// Handler returns the live handler. It fails with ErrContextDestroyed
// once the context has been destroyed.
func (c *OutputContext) Handler() (OutputHandler, error) {
	if c.handler == nil {
		return nil, fmt.Errorf("%w: output adapter %q", errs.ErrContextDestroyed, c.desc.name)
	}

	return c.handler, nil
}

// Destroy runs the adapter's cleanup exactly once and marks the context
// dead. A second Destroy fails with ErrContextDestroyed.
func (c *OutputContext) Destroy() error {
	if c.handler == nil {
		return fmt.Errorf("%w: output adapter %q", errs.ErrContextDestroyed, c.desc.name)
	}

	h := c.handler
	c.handler = nil

	return h.Destroy()
}

// ParseContext is a live Parse adapter instance. A context belongs to
// one goroutine at a time and is destroyed exactly once.
type ParseContext struct {
	desc    *ParseDescriptor
	handler ParseHandler
}

// Descriptor returns the descriptor the context was created from.
func (c *ParseContext) Descriptor() *ParseDescriptor { return c.desc }

// Handler returns the live handler. It fails with ErrContextDestroyed
// once the context has been destroyed.
func (c *ParseContext) Handler() (ParseHandler, error) {
	if c.handler == nil {
		return nil, fmt.Errorf("%w: parse adapter %q", errs.ErrContextDestroyed, c.desc.name)
	}

	return c.handler, nil
}

// Destroy runs the adapter's cleanup exactly once and marks the context
// dead. A second Destroy fails with ErrContextDestroyed.
func (c *ParseContext) Destroy() error {
	if c.handler == nil {
		return fmt.Errorf("%w: parse adapter %q", errs.ErrContextDestroyed, c.desc.name)
	}

	h := c.handler
	c.handler = nil

	return h.Destroy()
}

// SerializeContext is a live Serialize adapter instance. A context
// belongs to one goroutine at a time and is destroyed exactly once.
type SerializeContext struct {
	desc    *SerializeDescriptor
	handler SerializeHandler
}

// Descriptor returns the descriptor the context was created from.
func (c *SerializeContext) Descriptor() *SerializeDescriptor { return c.desc }

// Handler returns the live handler. It fails with ErrContextDestroyed
// once the context has been destroyed.
func (c *SerializeContext) Handler() (SerializeHandler, error) {
	if c.handler == nil {
		return nil, fmt.Errorf("%w: serialize adapter %q", errs.ErrContextDestroyed, c.desc.name)
	}

	return c.handler, nil
}

// Destroy runs the adapter's cleanup exactly once and marks the context
// dead. A second Destroy fails with ErrContextDestroyed.
func (c *SerializeContext) Destroy() error {
	if c.handler == nil {
		return fmt.Errorf("%w: serialize adapter %q", errs.ErrContextDestroyed, c.desc.name)
	}

	h := c.handler
	c.handler = nil

	return h.Destroy()
}
