package codelet

import (
	"maps"
	"slices"
	"sync"
	"sync/atomic"
)

// Codelet is a runnable compute task.
type Codelet interface {
	Name() string
	Run(p *Params) error
}

// Factory creates a codelet instance.
type Factory func() Codelet

// Params grants a codelet access to its borrowed operand buffers.
type Params struct {
	op       [3][]byte
	released atomic.Bool
}

// Op returns the buffer of operand n (0-based), or nil if the operand is
// absent or the invocation has been released.
func (p *Params) Op(n int) []byte {
	if p.released.Load() || n < 0 || n >= len(p.op) {
		return nil
	}
	return p.op[n]
}

// Released is true once the buffers are no longer accessible.
func (p *Params) Released() bool {
	return p.released.Load()
}

// Invocation is one execution request of a named codelet.
type Invocation struct {
	Opcode string
	Params *Params
}

// NewInvocation borrows the operand buffers for one execution. Absent
// operands are nil.
func NewInvocation(opcode string, ops [3][]byte) (inv *Invocation) {
	inv = &Invocation{
		Opcode: opcode,
		Params: &Params{op: ops},
	}
	return
}

// Release ends the borrow of the operand buffers.
func (inv *Invocation) Release() {
	inv.Params.released.Store(true)
}

// Registry maps codelet names to factories.
type Registry struct {
	mutex   sync.RWMutex
	factory map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factory: map[string]Factory{}}
}

// DefaultRegistry creates a registry holding the built-in codelets.
func DefaultRegistry() (r *Registry) {
	r = NewRegistry()
	for _, b := range builtins {
		r.Register(b.name, b.factory())
	}
	return
}

// Register adds or replaces the factory of a codelet name.
func (r *Registry) Register(name string, factory Factory) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.factory[name] = factory
}

// Create builds the codelet an invocation names.
func (r *Registry) Create(inv *Invocation) (cl Codelet, err error) {
	r.mutex.RLock()
	factory, ok := r.factory[inv.Opcode]
	r.mutex.RUnlock()

	if !ok {
		err = ErrCodeletUnknown(inv.Opcode)
		return
	}

	cl = factory()
	return
}

// Names returns the registered codelet names, sorted.
func (r *Registry) Names() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return slices.Sorted(maps.Keys(r.factory))
}
