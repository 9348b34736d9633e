// Package fill provides the nodes that produce paint for shapes.
package fill

import (
	"github.com/specialistvlad/vecgraph/internal/node"
	"github.com/specialistvlad/vecgraph/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the fill node types.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterNode("colour", "fill", func() node.Node { return NewColour() })
	r.RegisterNode("gradient", "fill", func() node.Node { return NewGradient() })
	r.RegisterNode("fill", "fill", func() node.Node { return NewFill() })
	r.RegisterNode("random_colour", "fill", func() node.Node { return NewRandomColour() })
}
