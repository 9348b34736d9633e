package iterate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/vecgraph/internal/graph"
	"github.com/specialistvlad/vecgraph/internal/node"
	"github.com/specialistvlad/vecgraph/internal/nodeid"
	"github.com/specialistvlad/vecgraph/internal/proptype"
	"github.com/specialistvlad/vecgraph/internal/vector"
)

const (
	templateKey = "template"
	outputKey   = "output"
	resultsKey  = "results"
)

func templateDefs() []node.Entry {
	return []node.Entry{
		node.Def(templateKey, node.Internal(proptype.String(), proptype.StringVal("")).Named("Template").
			Describe("Node type evaluated once per iteration.")),
		node.Def(outputKey, node.Internal(proptype.String(), proptype.StringVal("")).Named("Output").
			Describe("Template output collected into the results.")),
		node.Def(resultsKey, node.Out(proptype.List(proptype.Any()))),
	}
}

// settingPrefix namespaces the template's own properties on the iterator,
// e.g. the template's "height" is the iterator's "template_height".
const settingPrefix = "template_"

// templated holds the configured template instance of an iterator. Every
// iteration evaluates a detached clone of it, so settings made through the
// template_ properties carry into each iteration.
type templated struct {
	create Factory
	name   string
	tmpl   node.Node
	err    error
}

// load builds a fresh template for name and replaces the template_
// definitions in defs with the new template's settable properties.
func (t *templated) load(defs *node.PropDefs, name string) {
	for _, key := range defs.Keys() {
		if strings.HasPrefix(string(key), settingPrefix) {
			defs.Remove(key)
		}
	}
	t.name, t.tmpl, t.err = name, nil, nil
	if name == "" {
		return
	}
	t.tmpl, t.err = t.create(name)
	if t.err != nil {
		return
	}
	for _, e := range t.tmpl.PropDefs().Entries() {
		if e.Def.IsOutputOnly() || e.Key == node.SeedKey {
			continue
		}
		d := e.Def
		d.Input, d.Output, d.Extracted = node.Forbidden, node.Forbidden, false
		if d.DisplayName == "" {
			d.DisplayName = string(e.Key)
		}
		d.DisplayName = "Template " + d.DisplayName
		defs.Set(settingPrefix+e.Key, d)
	}
}

// setting maps an iterator key to the template property behind it.
func (t *templated) setting(key nodeid.PropKey) (nodeid.PropKey, bool) {
	inner, ok := strings.CutPrefix(string(key), settingPrefix)
	if !ok || t.tmpl == nil || !t.tmpl.PropDefs().Has(nodeid.PropKey(inner)) {
		return "", false
	}
	return nodeid.PropKey(inner), true
}

func (t *templated) internalProp(b *node.Base, key nodeid.PropKey) (proptype.Value, bool) {
	if inner, ok := t.setting(key); ok {
		return t.tmpl.InternalProp(inner)
	}
	return b.InternalProp(key)
}

// setInternalProp writes template_ keys through to the template. Selecting
// a different template starts over from its defaults.
func (t *templated) setInternalProp(b *node.Base, key nodeid.PropKey, v proptype.Value) error {
	if inner, ok := t.setting(key); ok {
		if err := t.tmpl.SetInternalProp(inner, v); err != nil {
			return fmt.Errorf("template %q: %w", t.name, err)
		}
		return nil
	}
	if err := b.SetInternalProp(key, v); err != nil {
		return err
	}
	if key == templateKey {
		if name, _ := b.InternalProp(templateKey); name.AsString() != t.name || t.tmpl == nil {
			t.load(b.PropDefs(), name.AsString())
		}
	}
	return nil
}

func (t *templated) storedProps(b *node.Base) map[nodeid.PropKey]proptype.Value {
	out := b.StoredProps()
	if t.tmpl == nil {
		return out
	}
	for key, v := range t.tmpl.StoredProps() {
		if key == node.SeedKey {
			continue
		}
		out[settingPrefix+key] = v
	}
	return out
}

func (t *templated) clone() templated {
	c := *t
	if t.tmpl != nil {
		c.tmpl = t.tmpl.Clone()
	}
	return c
}

// instance returns the configured template and checks that it has the
// configured output.
func (t *templated) instance(props node.Props) (node.Node, nodeid.PropKey, error) {
	name := props.String(templateKey, "")
	if name == "" {
		return nil, "", node.Invalid("no template selected")
	}
	if t.err != nil {
		return nil, "", node.Invalid("template %q: %v", name, t.err)
	}
	if t.tmpl == nil || t.name != name {
		return nil, "", node.Invalid("template %q is not loaded", name)
	}
	out := nodeid.PropKey(props.String(outputKey, ""))
	d, ok := t.tmpl.PropDefs().Get(out)
	if !ok || d.Output == node.Forbidden {
		return nil, "", node.Invalid("template %q has no output %q", name, out)
	}
	return t.tmpl, out, nil
}

// evaluate computes one template instance on its own and returns output.
func evaluate(ctx context.Context, i int, n node.Node, output nodeid.PropKey) (proptype.Value, error) {
	m := graph.New()
	if err := m.AddNode(ctx, 1, n); err != nil {
		return proptype.Value{}, err
	}
	if err := m.Compute(ctx, 1); err != nil {
		var ve *node.ValidationError
		if errors.As(err, &ve) {
			return proptype.Value{}, node.Invalid("iteration %d: %s", i, ve.Message)
		}
		return proptype.Value{}, err
	}
	rn, _ := m.Runtime(1)
	v, ok := rn.Results()[output]
	if !ok {
		return proptype.Value{}, node.Invalid("iteration %d produced no %q", i, output)
	}
	return v, nil
}

// collect builds the results list, typed by the closest common ancestor of
// the collected values.
func collect(values []proptype.Value) proptype.Value {
	types := make([]proptype.PropType, len(values))
	for i, v := range values {
		types[i] = v.Type
	}
	return proptype.ListVal(proptype.CommonAncestor(types...), values...)
}

// visualise draws element results side by side in one group.
func visualise(results node.Results) *vector.Element {
	v, ok := results[resultsKey]
	if !ok || v.Type.Depth != 1 || !v.Type.Kind.IsSubKindOf(proptype.KindElement) {
		return nil
	}
	items := v.Items()
	g := vector.Grid{Rows: 1, Cols: max(len(items), 1), Width: 1, Height: 1}
	children := make([]*vector.Element, len(items))
	for i, it := range items {
		children[i] = it.AsElement().WithTransform(g.CellTransform(0, i))
	}
	return vector.Group(children...)
}
