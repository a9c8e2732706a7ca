package adapter

import (
	"errors"
	"fmt"

	"github.com/arloliu/voxblit/errs"
)

// CurrentVersion is the revision of the adapter contract. Descriptors
// record the version in effect when they were registered.
const CurrentVersion uint32 = 1

// InputDescriptor identifies an Input adapter registered in a Registry.
type InputDescriptor struct {
	name    string
	version uint32
	reg     *Registry
	factory InputFactory
}

// Name returns the adapter's registered name.
func (d *InputDescriptor) Name() string { return d.name }

// Version returns the adapter contract revision the adapter was
// registered under.
func (d *InputDescriptor) Version() uint32 { return d.version }

// Registry returns the registry that produced the descriptor.
func (d *InputDescriptor) Registry() *Registry { return d.reg }

// CreateContext instantiates the adapter with cfg and returns a live
// context. A config of the wrong shape fails with ErrConfigMismatch;
// any other construction failure is reported as ErrInitFailed.
func (d *InputDescriptor) CreateContext(cfg any) (*InputContext, error) {
	h, err := d.factory(cfg)
	if err != nil {
		return nil, wrapCreateError(RoleInput, d.name, err)
	}

	return &InputContext{desc: d, handler: h}, nil
}

// OutputDescriptor identifies an Output adapter registered in a
// Registry.
type OutputDescriptor struct {
	name    string
	version uint32
	reg     *Registry
	factory OutputFactory
}

// Name returns the adapter's registered name.
func (d *OutputDescriptor) Name() string { return d.name }

// Version returns the adapter contract revision the adapter was
// registered under.
func (d *OutputDescriptor) Version() uint32 { return d.version }

// Registry returns the registry that produced the descriptor.
func (d *OutputDescriptor) Registry() *Registry { return d.reg }

// CreateContext instantiates the adapter with cfg and returns a live
// context. A config of the wrong shape fails with ErrConfigMismatch;
// any other construction failure is reported as ErrInitFailed.
func (d *OutputDescriptor) CreateContext(cfg any) (*OutputContext, error) {
	h, err := d.factory(cfg)
	if err != nil {
		return nil, wrapCreateError(RoleOutput, d.name, err)
	}

	return &OutputContext{desc: d, handler: h}, nil
}

// ParseDescriptor identifies a Parse adapter registered in a Registry.
type ParseDescriptor struct {
	name    string
	version uint32
	reg     *Registry
	factory ParseFactory
}

// Name returns the adapter's registered name.
func (d *ParseDescriptor) Name() string { return d.name }

// Version returns the adapter contract revision the adapter was
// registered under.
func (d *ParseDescriptor) Version() uint32 { return d.version }

// Registry returns the registry that produced the descriptor.
func (d *ParseDescriptor) Registry() *Registry { return d.reg }

// CreateContext instantiates the adapter with cfg and returns a live
// context. A config of the wrong shape fails with ErrConfigMismatch;
// any other construction failure is reported as ErrInitFailed.
func (d *ParseDescriptor) CreateContext(cfg any) (*ParseContext, error) {
	h, err := d.factory(cfg)
	if err != nil {
		return nil, wrapCreateError(RoleParse, d.name, err)
	}

	return &ParseContext{desc: d, handler: h}, nil
}

// SerializeDescriptor identifies a Serialize adapter registered in a
// Registry.
type SerializeDescriptor struct {
	name    string
	version uint32
	reg     *Registry
	factory SerializeFactory
}

// Name returns the adapter's registered name.
func (d *SerializeDescriptor) Name() string { return d.name }

// Version returns the adapter contract revision the adapter was
// registered under.
func (d *SerializeDescriptor) Version() uint32 { return d.version }

// Registry returns the registry that produced the descriptor.
func (d *SerializeDescriptor) Registry() *Registry { return d.reg }

// CreateContext instantiates the adapter with cfg and returns a live
// context. A config of the wrong shape fails with ErrConfigMismatch;
// any other construction failure is reported as ErrInitFailed.
func (d *SerializeDescriptor) CreateContext(cfg any) (*SerializeContext, error) {
	h, err := d.factory(cfg)
	if err != nil {
		return nil, wrapCreateError(RoleSerialize, d.name, err)
	}

	return &SerializeContext{desc: d, handler: h}, nil
}

// wrapCreateError classifies a factory failure: config-shape rejections
// keep their ErrConfigMismatch kind, everything else becomes
// ErrInitFailed naming the role and adapter.
func wrapCreateError(role Role, name string, err error) error {
	if errors.Is(err, errs.ErrConfigMismatch) {
		return fmt.Errorf("%s adapter %q: %w", role, name, err)
	}

	return fmt.Errorf("%w: %s adapter %q: %w", errs.ErrInitFailed, role, name, err)
}
