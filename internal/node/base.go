package node

import (
	"fmt"
	"maps"

	"github.com/specialistvlad/vecgraph/internal/nodeid"
	"github.com/specialistvlad/vecgraph/internal/proptype"
	"github.com/specialistvlad/vecgraph/internal/vector"
)

// Base implements the bookkeeping half of Node: the type description, the
// property definitions and the internal property store. Concrete node types
// embed it and supply Compute, Visualise and Clone.
type Base struct {
	info     Info
	defs     *PropDefs
	internal map[nodeid.PropKey]proptype.Value
}

// NewBase builds a Base from a description and definitions.
func NewBase(info Info, entries ...Entry) Base {
	return Base{
		info:     info,
		defs:     NewPropDefs(entries...),
		internal: make(map[nodeid.PropKey]proptype.Value),
	}
}

func (b *Base) Info() Info { return b.info }

func (b *Base) PropDefs() *PropDefs { return b.defs }

func (b *Base) InternalProp(key nodeid.PropKey) (proptype.Value, bool) {
	if v, ok := b.internal[key]; ok {
		return v, true
	}
	if d, ok := b.defs.Get(key); ok && d.Default != nil {
		return *d.Default, true
	}
	return proptype.Value{}, false
}

func (b *Base) SetInternalProp(key nodeid.PropKey, v proptype.Value) error {
	d, ok := b.defs.Get(key)
	if !ok {
		return fmt.Errorf("%w: %q on %s", ErrUnknownProperty, key, b.info.Type)
	}
	adapted, err := proptype.Assign(v, d.Type)
	if err != nil {
		return fmt.Errorf("property %q: %w", key, err)
	}
	b.internal[key] = adapted
	return nil
}

// StoredProps returns the explicitly stored internal values, without
// defaults.
func (b *Base) StoredProps() map[nodeid.PropKey]proptype.Value {
	return maps.Clone(b.internal)
}

// Visualise draws the first element-valued output, if any.
func (b *Base) Visualise(results Results) *vector.Element {
	for _, key := range b.defs.Outputs() {
		v, ok := results[key]
		if !ok || v.IsList() || !v.Type.Kind.IsSubKindOf(proptype.KindElement) {
			continue
		}
		return v.AsElement()
	}
	return nil
}

// CloneBase returns an independent copy for use in a concrete Clone.
func (b *Base) CloneBase() Base {
	return Base{
		info:     b.info,
		defs:     b.defs.Clone(),
		internal: maps.Clone(b.internal),
	}
}
