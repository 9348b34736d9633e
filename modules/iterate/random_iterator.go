package iterate

import (
	"context"

	"github.com/specialistvlad/vecgraph/internal/ctxlog"
	"github.com/specialistvlad/vecgraph/internal/node"
	"github.com/specialistvlad/vecgraph/internal/nodeid"
	"github.com/specialistvlad/vecgraph/internal/proptype"
	"github.com/specialistvlad/vecgraph/internal/vector"
)

const iterationsKey = "num_iterations"

// RandomIterator evaluates a randomisable template N times, each instance
// seeded from the iterator's own seed.
type RandomIterator struct {
	node.RandomBase
	templated
}

// NewRandomIterator returns a random iterator resolving templates through
// create.
func NewRandomIterator(create Factory) *RandomIterator {
	entries := []node.Entry{
		node.Def(iterationsKey, node.Param(proptype.Int().AtLeast(1), proptype.IntVal(5)).Named("Iterations")),
	}
	return &RandomIterator{
		RandomBase: node.NewRandomBase(
			node.Info{Type: "random_iterator", Name: "Random Iterator", Category: "iterate", Description: "Evaluates differently seeded copies of a template."},
			append(entries, templateDefs()...)...,
		),
		templated: templated{create: create},
	}
}

func (n *RandomIterator) Compute(ctx context.Context, props node.Props, _ node.Refs, _ node.RefQuerier) (node.Results, error) {
	tmpl, out, err := n.instance(props)
	if err != nil {
		return nil, err
	}
	if _, ok := node.As[node.Randomisable](tmpl); !ok {
		return nil, node.Invalid("template %q is not randomisable", n.name)
	}

	count := props.Int(iterationsKey, 5)
	if count < 1 {
		return nil, node.Invalid("%s must be at least 1, got %d", iterationsKey, count)
	}
	collected := make([]proptype.Value, 0, count)
	for i, seed := range node.DeriveSeeds(n.Seed(), count) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		inst := tmpl.Clone()
		r, _ := node.As[node.Randomisable](inst)
		r.Randomise(&seed)
		v, err := evaluate(ctx, i, inst, out)
		if err != nil {
			return nil, err
		}
		collected = append(collected, v)
	}
	ctxlog.FromContext(ctx).Debug("Iterated random template.", "template", n.name, "iterations", count, "seed", n.Seed())
	return node.Results{resultsKey: collect(collected)}, nil
}

func (n *RandomIterator) Visualise(results node.Results) *vector.Element { return visualise(results) }

func (n *RandomIterator) InternalProp(key nodeid.PropKey) (proptype.Value, bool) {
	return n.internalProp(&n.Base, key)
}

func (n *RandomIterator) SetInternalProp(key nodeid.PropKey, v proptype.Value) error {
	return n.setInternalProp(&n.Base, key, v)
}

func (n *RandomIterator) StoredProps() map[nodeid.PropKey]proptype.Value {
	return n.storedProps(&n.Base)
}

func (n *RandomIterator) Clone() node.Node {
	return &RandomIterator{RandomBase: n.CloneRandomBase(), templated: n.templated.clone()}
}
