package node

import (
	"context"

	"github.com/specialistvlad/vecgraph/internal/nodeid"
	"github.com/specialistvlad/vecgraph/internal/proptype"
	"github.com/specialistvlad/vecgraph/internal/vector"
)

// Info is the static description of a node type.
type Info struct {
	// Type is the registry name the node is constructed from, e.g. "rectangle".
	Type string
	// Name is the human-readable title.
	Name        string
	Category    string
	Description string
}

// Node is one computational unit of a graph.
type Node interface {
	Info() Info
	// PropDefs returns the node's own, mutable property definitions.
	PropDefs() *PropDefs
	// InternalProp returns the stored value for key, falling back to the
	// definition's default.
	InternalProp(key nodeid.PropKey) (proptype.Value, bool)
	// SetInternalProp adapts v to the definition's type and stores it.
	SetInternalProp(key nodeid.PropKey, v proptype.Value) error
	// StoredProps returns the internal values that were explicitly set.
	StoredProps() map[nodeid.PropKey]proptype.Value
	// Compute derives results from resolved inputs. It must not mutate props.
	Compute(ctx context.Context, props Props, refs Refs, q RefQuerier) (Results, error)
	// Visualise builds a drawable from cached results. It returns nil when
	// there is nothing to draw.
	Visualise(results Results) *vector.Element
	// Clone returns a deep copy with independent properties and state.
	Clone() Node
}

// Unwrapper is implemented by nodes that forward to another node.
type Unwrapper interface {
	Unwrap() Node
}

// Unwrap follows Unwrapper links down to the innermost node.
func Unwrap(n Node) Node {
	for {
		u, ok := n.(Unwrapper)
		if !ok {
			return n
		}
		n = u.Unwrap()
	}
}

// As returns the first node in n's unwrap chain that implements T.
func As[T any](n Node) (T, bool) {
	for n != nil {
		if t, ok := n.(T); ok {
			return t, true
		}
		u, ok := n.(Unwrapper)
		if !ok {
			break
		}
		n = u.Unwrap()
	}
	var zero T
	return zero, false
}
