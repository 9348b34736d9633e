package node

import (
	"maps"
	"slices"

	"github.com/specialistvlad/vecgraph/internal/nodeid"
	"github.com/specialistvlad/vecgraph/internal/proptype"
)

// PortStatus says whether a property may be connected in one direction.
type PortStatus int

const (
	// Forbidden ports cannot be connected.
	Forbidden PortStatus = iota
	// Optional ports may be connected.
	Optional
	// Compulsory ports must be connected (inputs) or are always produced (outputs).
	Compulsory
)

func (s PortStatus) String() string {
	switch s {
	case Forbidden:
		return "forbidden"
	case Optional:
		return "optional"
	case Compulsory:
		return "compulsory"
	default:
		return "unknown"
	}
}

// PropDef declares one property of a node.
type PropDef struct {
	Type   proptype.PropType
	Input  PortStatus
	Output PortStatus
	// Multiple lets an input port take more than one edge; the values are
	// concatenated in edge order.
	Multiple    bool
	Default     *proptype.Value
	DisplayName string
	Description string
	// Extracted marks output ports created by a selectable node.
	Extracted bool
}

// In declares a compulsory input.
func In(t proptype.PropType) PropDef {
	return PropDef{Type: t, Input: Compulsory}
}

// Out declares an output.
func Out(t proptype.PropType) PropDef {
	return PropDef{Type: t, Output: Compulsory}
}

// Param declares an optional input edited internally when unconnected.
func Param(t proptype.PropType, def proptype.Value) PropDef {
	return PropDef{Type: t, Input: Optional, Default: &def}
}

// Internal declares a property that is never connected.
func Internal(t proptype.PropType, def proptype.Value) PropDef {
	return PropDef{Type: t, Default: &def}
}

// Multi allows several edges into the input.
func (d PropDef) Multi() PropDef {
	d.Multiple = true
	return d
}

// Named sets the display name.
func (d PropDef) Named(name string) PropDef {
	d.DisplayName = name
	return d
}

// Describe sets the description.
func (d PropDef) Describe(desc string) PropDef {
	d.Description = desc
	return d
}

// IsInternal reports whether the property is forbidden in both directions.
func (d PropDef) IsInternal() bool {
	return d.Input == Forbidden && d.Output == Forbidden
}

// IsOutputOnly reports whether the property can only be read downstream.
func (d PropDef) IsOutputOnly() bool {
	return d.Input == Forbidden && d.Output != Forbidden
}

// Status returns the status for one direction.
func (d PropDef) Status(isInput bool) PortStatus {
	if isInput {
		return d.Input
	}
	return d.Output
}

// PropDefs is an ordered, mutable collection of property definitions. The
// order is the order ports are presented in.
type PropDefs struct {
	keys []nodeid.PropKey
	defs map[nodeid.PropKey]PropDef
}

// NewPropDefs builds a collection from key/definition pairs.
func NewPropDefs(entries ...Entry) *PropDefs {
	p := &PropDefs{defs: make(map[nodeid.PropKey]PropDef, len(entries))}
	for _, e := range entries {
		p.Set(e.Key, e.Def)
	}
	return p
}

// Entry is one keyed definition.
type Entry struct {
	Key nodeid.PropKey
	Def PropDef
}

// Def pairs a key with its definition.
func Def(key nodeid.PropKey, d PropDef) Entry {
	return Entry{Key: key, Def: d}
}

// Get returns the definition for key.
func (p *PropDefs) Get(key nodeid.PropKey) (PropDef, bool) {
	d, ok := p.defs[key]
	return d, ok
}

// Has reports whether key is defined.
func (p *PropDefs) Has(key nodeid.PropKey) bool {
	_, ok := p.defs[key]
	return ok
}

// Set adds or replaces a definition. Replacing keeps the original position.
func (p *PropDefs) Set(key nodeid.PropKey, d PropDef) {
	if _, ok := p.defs[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.defs[key] = d
}

// Remove deletes key.
func (p *PropDefs) Remove(key nodeid.PropKey) {
	if _, ok := p.defs[key]; !ok {
		return
	}
	delete(p.defs, key)
	p.keys = slices.DeleteFunc(p.keys, func(k nodeid.PropKey) bool { return k == key })
}

// Keys returns every key in order.
func (p *PropDefs) Keys() []nodeid.PropKey {
	return slices.Clone(p.keys)
}

// Entries returns every definition in order.
func (p *PropDefs) Entries() []Entry {
	out := make([]Entry, 0, len(p.keys))
	for _, k := range p.keys {
		out = append(out, Entry{Key: k, Def: p.defs[k]})
	}
	return out
}

// Inputs returns the keys that accept edges.
func (p *PropDefs) Inputs() []nodeid.PropKey {
	return p.filter(func(d PropDef) bool { return d.Input != Forbidden })
}

// Outputs returns the keys that emit edges.
func (p *PropDefs) Outputs() []nodeid.PropKey {
	return p.filter(func(d PropDef) bool { return d.Output != Forbidden })
}

// Extracted returns the keys of extracted output ports.
func (p *PropDefs) Extracted() []nodeid.PropKey {
	return p.filter(func(d PropDef) bool { return d.Extracted })
}

func (p *PropDefs) filter(keep func(PropDef) bool) []nodeid.PropKey {
	var out []nodeid.PropKey
	for _, k := range p.keys {
		if keep(p.defs[k]) {
			out = append(out, k)
		}
	}
	return out
}

// Len returns the number of definitions.
func (p *PropDefs) Len() int { return len(p.keys) }

// Clone returns an independent copy.
func (p *PropDefs) Clone() *PropDefs {
	return &PropDefs{
		keys: slices.Clone(p.keys),
		defs: maps.Clone(p.defs),
	}
}
