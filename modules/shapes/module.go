// Package shapes provides the primitive drawable nodes. Every shape is drawn
// in the unit square centred on (0.5, 0.5); layout nodes place it.
package shapes

import (
	"github.com/specialistvlad/vecgraph/internal/node"
	"github.com/specialistvlad/vecgraph/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the shape node types.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterNode("rectangle", "shapes", func() node.Node { return NewRectangle() })
	r.RegisterNode("ellipse", "shapes", func() node.Node { return NewEllipse() })
	r.RegisterNode("polygon", "shapes", func() node.Node { return NewPolygon() })
}
