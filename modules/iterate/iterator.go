package iterate

import (
	"context"

	"github.com/specialistvlad/vecgraph/internal/ctxlog"
	"github.com/specialistvlad/vecgraph/internal/node"
	"github.com/specialistvlad/vecgraph/internal/nodeid"
	"github.com/specialistvlad/vecgraph/internal/proptype"
	"github.com/specialistvlad/vecgraph/internal/vector"
)

const (
	valuesKey   = "values"
	propertyKey = "property"
)

// Iterator evaluates its template once per input value, with the value set
// on the template's configured property.
type Iterator struct {
	node.Base
	templated
}

// NewIterator returns an iterator resolving templates through create.
func NewIterator(create Factory) *Iterator {
	entries := []node.Entry{
		node.Def(valuesKey, node.In(proptype.List(proptype.Any())).Multi().Named("Values")),
		node.Def(propertyKey, node.Internal(proptype.String(), proptype.StringVal("")).Named("Property").
			Describe("Template property each value is written to.")),
	}
	return &Iterator{
		Base: node.NewBase(
			node.Info{Type: "iterator", Name: "Iterator", Category: "iterate", Description: "Evaluates a template for each value."},
			append(entries, templateDefs()...)...,
		),
		templated: templated{create: create},
	}
}

func (n *Iterator) Compute(ctx context.Context, props node.Props, _ node.Refs, _ node.RefQuerier) (node.Results, error) {
	tmpl, out, err := n.instance(props)
	if err != nil {
		return nil, err
	}
	prop := nodeid.PropKey(props.String(propertyKey, ""))
	if d, ok := tmpl.PropDefs().Get(prop); !ok || d.IsOutputOnly() {
		return nil, node.Invalid("template %q has no settable property %q", n.name, prop)
	}

	values := props.Items(valuesKey)
	collected := make([]proptype.Value, 0, len(values))
	for i, v := range values {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		inst := tmpl.Clone()
		if err := inst.SetInternalProp(prop, v); err != nil {
			return nil, node.Invalid("value %d (%s): %v", i, v, err)
		}
		r, err := evaluate(ctx, i, inst, out)
		if err != nil {
			return nil, err
		}
		collected = append(collected, r)
	}
	ctxlog.FromContext(ctx).Debug("Iterated template.", "template", n.name, "iterations", len(collected))
	return node.Results{resultsKey: collect(collected)}, nil
}

func (n *Iterator) Visualise(results node.Results) *vector.Element { return visualise(results) }

func (n *Iterator) InternalProp(key nodeid.PropKey) (proptype.Value, bool) {
	return n.internalProp(&n.Base, key)
}

func (n *Iterator) SetInternalProp(key nodeid.PropKey, v proptype.Value) error {
	return n.setInternalProp(&n.Base, key, v)
}

func (n *Iterator) StoredProps() map[nodeid.PropKey]proptype.Value { return n.storedProps(&n.Base) }

func (n *Iterator) Clone() node.Node { return &Iterator{Base: n.CloneBase(), templated: n.templated.clone()} }
