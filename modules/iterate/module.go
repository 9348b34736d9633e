// Package iterate provides nodes that evaluate a template node many times
// and collect one of its outputs into a list.
package iterate

import (
	"errors"

	"github.com/specialistvlad/vecgraph/internal/node"
	"github.com/specialistvlad/vecgraph/internal/registry"
)

// Factory builds a fresh template node by name.
type Factory func(name string) (node.Node, error)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the iterator node types. Templates are looked up in r
// when an iterator's template property is set.
func (m *Module) Register(r *registry.Registry) {
	create := lookup(r)
	r.RegisterNode("iterator", "iterate", func() node.Node { return NewIterator(create) })
	r.RegisterNode("random_iterator", "iterate", func() node.Node { return NewRandomIterator(create) })
}

// lookup resolves registered types first and custom definitions second.
func lookup(r *registry.Registry) Factory {
	return func(name string) (node.Node, error) {
		n, err := r.Create(name)
		if errors.Is(err, registry.ErrUnknownType) {
			if _, ok := r.Definition(name); ok {
				return r.CreateCustom(name)
			}
		}
		return n, err
	}
}
