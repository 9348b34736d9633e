package registry

import (
	"fmt"
	"maps"
	"slices"

	"github.com/specialistvlad/vecgraph/internal/custom"
	"github.com/specialistvlad/vecgraph/internal/node"
)

// Module is the interface that all node modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the node types and custom definitions of one application
// instance.
type Registry struct {
	types       map[string]*RegisteredType
	definitions map[string]*custom.Definition
}

// New creates and initializes a new Registry instance.
func New(modules ...Module) *Registry {
	r := &Registry{
		types:       make(map[string]*RegisteredType),
		definitions: make(map[string]*custom.Definition),
	}
	for _, mod := range modules {
		mod.Register(r)
	}
	return r
}

// Types returns the registered type names in order.
func (r *Registry) Types() []string {
	return slices.Sorted(maps.Keys(r.types))
}

// Create builds a fresh node of the given type.
func (r *Registry) Create(typeName string) (node.Node, error) {
	t, ok := r.types[typeName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, typeName)
	}
	return t.New(), nil
}

// Definition returns the custom definition registered under name.
func (r *Registry) Definition(name string) (*custom.Definition, bool) {
	d, ok := r.definitions[name]
	return d, ok
}

// Definitions returns every custom definition, ordered by name.
func (r *Registry) Definitions() []*custom.Definition {
	out := make([]*custom.Definition, 0, len(r.definitions))
	for _, name := range slices.Sorted(maps.Keys(r.definitions)) {
		out = append(out, r.definitions[name])
	}
	return out
}

// CreateCustom instantiates the custom definition registered under name.
func (r *Registry) CreateCustom(name string) (node.Node, error) {
	d, ok := r.definitions[name]
	if !ok {
		return nil, fmt.Errorf("%w: custom node %q", ErrUnknownType, name)
	}
	return custom.New(d)
}
