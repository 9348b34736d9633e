// Package warp provides point-displacement warps and the node that applies
// them to shapes.
package warp

import (
	"github.com/specialistvlad/vecgraph/internal/node"
	"github.com/specialistvlad/vecgraph/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the warp node types.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterNode("sine_warp", "warp", func() node.Node { return NewSineWarp() })
	r.RegisterNode("apply_warp", "warp", func() node.Node { return NewApplyWarp() })
}
