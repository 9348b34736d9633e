// Package animate provides nodes that change value over time.
package animate

import (
	"github.com/specialistvlad/vecgraph/internal/node"
	"github.com/specialistvlad/vecgraph/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the animated node types.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterNode("oscillator", "animate", func() node.Node { return NewOscillator() })
}
