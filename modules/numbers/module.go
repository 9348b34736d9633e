// Package numbers provides scalar sources, ranges and scalar functions.
package numbers

import (
	"github.com/specialistvlad/vecgraph/internal/node"
	"github.com/specialistvlad/vecgraph/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the number node types.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterNode("number", "numbers", func() node.Node { return NewNumber() })
	r.RegisterNode("range", "numbers", func() node.Node { return NewRange() })
	r.RegisterNode("wave", "numbers", func() node.Node { return NewWave() })
	r.RegisterNode("sample", "numbers", func() node.Node { return NewSample() })
}
