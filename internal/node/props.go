package node

import (
	"fmt"
	"maps"

	"github.com/specialistvlad/vecgraph/internal/nodeid"
	"github.com/specialistvlad/vecgraph/internal/proptype"
)

// InputStatus tells a node why an input does or does not have a value.
type InputStatus int

const (
	// Unconnected inputs have no edge and no internal value.
	Unconnected InputStatus = iota
	// Pending inputs have edges whose upstream nodes have no cached value yet.
	Pending
	// Present inputs carry a value, which may be an empty list.
	Present
)

func (s InputStatus) String() string {
	switch s {
	case Unconnected:
		return "unconnected"
	case Pending:
		return "pending"
	case Present:
		return "present"
	default:
		return "unknown"
	}
}

// Input is one resolved input.
type Input struct {
	Status InputStatus
	Value  proptype.Value
}

// Props holds the resolved inputs of one compute call.
type Props map[nodeid.PropKey]Input

// Get returns the value for key when it is present.
func (p Props) Get(key nodeid.PropKey) (proptype.Value, bool) {
	in, ok := p[key]
	if !ok || in.Status != Present {
		return proptype.Value{}, false
	}
	return in.Value, true
}

// Status returns the status of key.
func (p Props) Status(key nodeid.PropKey) InputStatus {
	return p[key].Status
}

// Require returns the value for key or a validation error naming the reason
// it is missing.
func (p Props) Require(key nodeid.PropKey) (proptype.Value, error) {
	switch p.Status(key) {
	case Present:
		return p[key].Value, nil
	case Pending:
		return proptype.Value{}, Invalid("input %q is waiting for an upstream value", key)
	default:
		return proptype.Value{}, Invalid("input %q is not connected", key)
	}
}

// Float returns a present numeric input or def.
func (p Props) Float(key nodeid.PropKey, def float64) float64 {
	if v, ok := p.Get(key); ok {
		return v.AsFloat()
	}
	return def
}

// Int returns a present integer input or def.
func (p Props) Int(key nodeid.PropKey, def int) int {
	if v, ok := p.Get(key); ok {
		return v.AsInt()
	}
	return def
}

// Bool returns a present boolean input or def.
func (p Props) Bool(key nodeid.PropKey, def bool) bool {
	if v, ok := p.Get(key); ok {
		return v.AsBool()
	}
	return def
}

// String returns a present string or enum input or def.
func (p Props) String(key nodeid.PropKey, def string) string {
	if v, ok := p.Get(key); ok {
		return v.AsString()
	}
	return def
}

// Items returns the items of a present list input, or nil.
func (p Props) Items(key nodeid.PropKey) []proptype.Value {
	if v, ok := p.Get(key); ok && v.IsList() {
		return v.Items()
	}
	return nil
}

// Refs lists, per input key, the RefIDs of the source ports feeding it in
// edge order.
type Refs map[nodeid.PropKey][]nodeid.RefID

// RefQuerier resolves the value behind a RefID held by the node being
// computed.
type RefQuerier interface {
	Resolve(ref nodeid.RefID, expected proptype.PropType) (proptype.Value, bool, error)
}

// Results maps output keys to computed values.
type Results map[nodeid.PropKey]proptype.Value

// Get returns the value for key.
func (r Results) Get(key nodeid.PropKey) (proptype.Value, bool) {
	v, ok := r[key]
	return v, ok
}

// Set stores a value, returning r for chaining.
func (r Results) Set(key nodeid.PropKey, v proptype.Value) Results {
	r[key] = v
	return r
}

// Clone returns a shallow copy of the map.
func (r Results) Clone() Results {
	return maps.Clone(r)
}

// Check validates every result against the node's output definitions.
func (r Results) Check(defs *PropDefs) error {
	for key, v := range r {
		d, ok := defs.Get(key)
		if !ok {
			return fmt.Errorf("result %q has no property definition", key)
		}
		if err := d.Type.Check(v); err != nil {
			return fmt.Errorf("result %q: %w", key, err)
		}
	}
	return nil
}
