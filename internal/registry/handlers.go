package registry

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/specialistvlad/vecgraph/internal/custom"
	"github.com/specialistvlad/vecgraph/internal/node"
)

// ErrUnknownType is returned when a type or definition name is not registered.
var ErrUnknownType = errors.New("unknown node type")

// RegisteredType holds the constructor of one node type.
type RegisteredType struct {
	Category string
	New      func() node.Node
}

// RegisterNode registers the constructor for a node type.
func (r *Registry) RegisterNode(name, category string, newFn func() node.Node) {
	if _, exists := r.types[name]; exists {
		panic(fmt.Sprintf("node type with name '%s' already registered", name))
	}
	if name == custom.TypeName {
		panic(fmt.Sprintf("node type name '%s' is reserved", name))
	}
	slog.Debug("Registering node type.", "name", name)
	r.types[name] = &RegisteredType{Category: category, New: newFn}
}

// RegisterDefinition adds or replaces a custom node definition.
func (r *Registry) RegisterDefinition(def *custom.Definition) error {
	if err := def.Validate(); err != nil {
		return err
	}
	slog.Debug("Registering custom definition.", "name", def.Name)
	r.definitions[def.Name] = def
	return nil
}
