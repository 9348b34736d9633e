package node

import (
	"context"

	"github.com/specialistvlad/vecgraph/internal/nodeid"
	"github.com/specialistvlad/vecgraph/internal/proptype"
	"github.com/specialistvlad/vecgraph/internal/vector"
)

// Selectable nodes let a user pick part of their drawable and turn it into
// an extra output port.
type Selectable interface {
	Node
	// ExtractElement registers an output port for the child of parent with
	// the given element id and returns its key. Extracting the same part
	// twice returns the existing key.
	ExtractElement(props Props, parent *vector.Element, elementID string) (nodeid.PropKey, error)
	// IsPortRedundant reports whether an extracted port no longer refers to
	// anything under the current inputs.
	IsPortRedundant(props Props, key nodeid.PropKey) bool
	// ExtractedValue returns the value of an extracted port from results.
	ExtractedValue(results Results, key nodeid.PropKey) (proptype.Value, bool)
}

// ExtractedDef declares an extracted output port of type t.
func ExtractedDef(t proptype.PropType, name string) PropDef {
	return PropDef{Type: t, Output: Optional, Extracted: true, DisplayName: name}
}

// FinalCompute runs a selectable node's compute with extraction
// bookkeeping: redundant extracted ports are removed first, then the node
// computes, then every remaining extracted port is filled from the results.
// It returns the keys it pruned so the caller can drop their edges.
func FinalCompute(ctx context.Context, s Selectable, props Props, refs Refs, q RefQuerier) (Results, []nodeid.PropKey, error) {
	var pruned []nodeid.PropKey
	for _, key := range s.PropDefs().Extracted() {
		if s.IsPortRedundant(props, key) {
			s.PropDefs().Remove(key)
			pruned = append(pruned, key)
		}
	}

	results, err := s.Compute(ctx, props, refs, q)
	if err != nil {
		return nil, pruned, err
	}
	if results == nil {
		results = Results{}
	}
	for _, key := range s.PropDefs().Extracted() {
		if v, ok := s.ExtractedValue(results, key); ok {
			results[key] = v
		}
	}
	return results, pruned, nil
}
