// Package grid provides the grid layout and the shape repeater that fills it.
package grid

import (
	"github.com/specialistvlad/vecgraph/internal/node"
	"github.com/specialistvlad/vecgraph/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the grid node types.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterNode("grid", "layout", func() node.Node { return NewGrid() })
	r.RegisterNode("shape_repeater", "layout", func() node.Node { return NewRepeater() })
}
