package adapter

import (
	"fmt"
	"sort"
	"sync"

	"github.com/arloliu/voxblit/errs"
)

// Registry maps (role, name) pairs to adapter descriptors.
//
// A registry is safe for concurrent use. The expected pattern is
// read-mostly: register every adapter up front, then create contexts
// and run blits against a stable set.
type Registry struct {
	mu          sync.RWMutex
	inputs      map[string]*InputDescriptor
	outputs     map[string]*OutputDescriptor
	parsers     map[string]*ParseDescriptor
	serializers map[string]*SerializeDescriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		inputs:      make(map[string]*InputDescriptor),
		outputs:     make(map[string]*OutputDescriptor),
		parsers:     make(map[string]*ParseDescriptor),
		serializers: make(map[string]*SerializeDescriptor),
	}
}

// RegisterInput registers an Input adapter factory under name. A name
// already taken in the input role fails with ErrDuplicateAdapter.
// RegisterInput panics when name is empty or factory is nil.
func (r *Registry) RegisterInput(name string, factory InputFactory) error {
	checkRegistration(RoleInput, name, factory == nil)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.inputs[name]; ok {
		return fmt.Errorf("%w: input adapter %q", errs.ErrDuplicateAdapter, name)
	}
	r.inputs[name] = &InputDescriptor{name: name, version: CurrentVersion, reg: r, factory: factory}

	return nil
}

// RegisterOutput registers an Output adapter factory under name. A name
// already taken in the output role fails with ErrDuplicateAdapter.
// RegisterOutput panics when name is empty or factory is nil.
func (r *Registry) RegisterOutput(name string, factory OutputFactory) error {
	checkRegistration(RoleOutput, name, factory == nil)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.outputs[name]; ok {
		return fmt.Errorf("%w: output adapter %q", errs.ErrDuplicateAdapter, name)
	}
	r.outputs[name] = &OutputDescriptor{name: name, version: CurrentVersion, reg: r, factory: factory}

	return nil
}

// RegisterParse registers a Parse adapter factory under name. A name
// already taken in the parse role fails with ErrDuplicateAdapter.
// RegisterParse panics when name is empty or factory is nil.
func (r *Registry) RegisterParse(name string, factory ParseFactory) error {
	checkRegistration(RoleParse, name, factory == nil)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.parsers[name]; ok {
		return fmt.Errorf("%w: parse adapter %q", errs.ErrDuplicateAdapter, name)
	}
	r.parsers[name] = &ParseDescriptor{name: name, version: CurrentVersion, reg: r, factory: factory}

	return nil
}

// RegisterSerialize registers a Serialize adapter factory under name. A
// name already taken in the serialize role fails with
// ErrDuplicateAdapter. RegisterSerialize panics when name is empty or
// factory is nil.
func (r *Registry) RegisterSerialize(name string, factory SerializeFactory) error {
	checkRegistration(RoleSerialize, name, factory == nil)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.serializers[name]; ok {
		return fmt.Errorf("%w: serialize adapter %q", errs.ErrDuplicateAdapter, name)
	}
	r.serializers[name] = &SerializeDescriptor{name: name, version: CurrentVersion, reg: r, factory: factory}

	return nil
}

// LookupInput returns the Input descriptor registered under name.
func (r *Registry) LookupInput(name string) (*InputDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.inputs[name]

	return d, ok
}

// LookupOutput returns the Output descriptor registered under name.
func (r *Registry) LookupOutput(name string) (*OutputDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.outputs[name]

	return d, ok
}

// LookupParse returns the Parse descriptor registered under name.
func (r *Registry) LookupParse(name string) (*ParseDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.parsers[name]

	return d, ok
}

// LookupSerialize returns the Serialize descriptor registered under
// name.
func (r *Registry) LookupSerialize(name string) (*SerializeDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.serializers[name]

	return d, ok
}

// Contains reports whether an adapter is registered under (role, name).
func (r *Registry) Contains(role Role, name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	switch role {
	case RoleInput:
		_, ok := r.inputs[name]

		return ok
	case RoleOutput:
		_, ok := r.outputs[name]

		return ok
	case RoleParse:
		_, ok := r.parsers[name]

		return ok
	case RoleSerialize:
		_, ok := r.serializers[name]

		return ok
	default:
		return false
	}
}

// Names returns the sorted adapter names registered for role.
func (r *Registry) Names(role Role) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var names []string
	switch role {
	case RoleInput:
		for name := range r.inputs {
			names = append(names, name)
		}
	case RoleOutput:
		for name := range r.outputs {
			names = append(names, name)
		}
	case RoleParse:
		for name := range r.parsers {
			names = append(names, name)
		}
	case RoleSerialize:
		for name := range r.serializers {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	return names
}

func checkRegistration(role Role, name string, nilFactory bool) {
	if name == "" {
		panic(fmt.Sprintf("adapter: %s registration requires a name", role))
	}
	if nilFactory {
		panic(fmt.Sprintf("adapter: %s adapter %q registered with nil factory", role, name))
	}
}
