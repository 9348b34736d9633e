package custom

import (
	"context"

	"github.com/specialistvlad/vecgraph/internal/node"
	"github.com/specialistvlad/vecgraph/internal/nodeid"
	"github.com/specialistvlad/vecgraph/internal/proptype"
)

const feederKey nodeid.PropKey = "value"

// feeder is a detached constant node that carries one external value into
// the inner graph.
type feeder struct {
	node.Base
	v proptype.Value
}

func newFeeder(v proptype.Value) *feeder {
	return &feeder{
		Base: node.NewBase(node.Info{Type: "feeder", Name: "Input"},
			node.Def(feederKey, node.Out(v.Type)),
		),
		v: v,
	}
}

func (f *feeder) Compute(context.Context, node.Props, node.Refs, node.RefQuerier) (node.Results, error) {
	return node.Results{feederKey: f.v}, nil
}

func (f *feeder) Clone() node.Node {
	return &feeder{Base: f.CloneBase(), v: f.v}
}
