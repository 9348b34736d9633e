package testutil

import (
	"context"
	"time"

	"github.com/specialistvlad/vecgraph/internal/node"
	"github.com/specialistvlad/vecgraph/internal/nodeid"
	"github.com/specialistvlad/vecgraph/internal/proptype"
)

// Const emits its internal "value" on the "value" output.
type Const struct {
	node.Base
	Calls int
}

// NewConst returns a Const holding v.
func NewConst(v proptype.Value) *Const {
	return &Const{Base: node.NewBase(node.Info{Type: "const", Name: "Constant"},
		node.Def("value", node.PropDef{Type: v.Type, Output: node.Compulsory, Default: &v}),
	)}
}

func (n *Const) Compute(context.Context, node.Props, node.Refs, node.RefQuerier) (node.Results, error) {
	n.Calls++
	v, _ := n.InternalProp("value")
	return node.Results{"value": v}, nil
}

func (n *Const) Clone() node.Node { return &Const{Base: n.CloneBase()} }

// Scale multiplies input "x" by parameter "factor" into "out". A negative
// x is a validation error.
type Scale struct {
	node.Base
	Calls int
}

// NewScale returns a Scale with factor 2.
func NewScale() *Scale {
	return &Scale{Base: node.NewBase(node.Info{Type: "scale", Name: "Scale"},
		node.Def("x", node.In(proptype.Number())),
		node.Def("factor", node.Param(proptype.Number(), proptype.NumberVal(2))),
		node.Def("out", node.Out(proptype.Number())),
	)}
}

func (n *Scale) Compute(_ context.Context, props node.Props, _ node.Refs, _ node.RefQuerier) (node.Results, error) {
	n.Calls++
	x := props.Float("x", 0)
	if x < 0 {
		return nil, node.Invalid("x must not be negative, got %g", x)
	}
	return node.Results{"out": proptype.NumberVal(x * props.Float("factor", 1))}, nil
}

func (n *Scale) Clone() node.Node { return &Scale{Base: n.CloneBase()} }

// Collect sums a multi-edge list input "items".
type Collect struct {
	node.Base
	LastProps node.Props
	LastRefs  node.Refs
}

// NewCollect returns a Collect node.
func NewCollect() *Collect {
	return &Collect{Base: node.NewBase(node.Info{Type: "collect", Name: "Collect"},
		node.Def("items", node.In(proptype.List(proptype.Number())).Multi()),
		node.Def("count", node.Out(proptype.Int())),
		node.Def("total", node.Out(proptype.Number())),
	)}
}

func (n *Collect) Compute(_ context.Context, props node.Props, refs node.Refs, _ node.RefQuerier) (node.Results, error) {
	n.LastProps, n.LastRefs = props, refs
	items := props.Items("items")
	total := 0.0
	for _, it := range items {
		total += it.AsFloat()
	}
	return node.Results{
		"count": proptype.IntVal(len(items)),
		"total": proptype.NumberVal(total),
	}, nil
}

func (n *Collect) Clone() node.Node { return &Collect{Base: n.CloneBase()} }

// Optional records the status of an optional input without a default.
type Optional struct {
	node.Base
	Seen node.InputStatus
}

// NewOptional returns an Optional node with input "in" and output "out".
func NewOptional() *Optional {
	return &Optional{Base: node.NewBase(node.Info{Type: "optional"},
		node.Def("in", node.PropDef{Type: proptype.Number(), Input: node.Optional}),
		node.Def("out", node.Out(proptype.Number())),
	)}
}

func (n *Optional) Compute(_ context.Context, props node.Props, _ node.Refs, _ node.RefQuerier) (node.Results, error) {
	n.Seen = props.Status("in")
	return node.Results{"out": proptype.NumberVal(props.Float("in", -1))}, nil
}

func (n *Optional) Clone() node.Node { return &Optional{Base: n.CloneBase()} }

// Dice emits a number in [0,1) drawn from its seed.
type Dice struct {
	node.RandomBase
}

// NewDice returns a Dice node.
func NewDice() *Dice {
	return &Dice{RandomBase: node.NewRandomBase(node.Info{Type: "dice"},
		node.Def("value", node.Out(proptype.NumberRange(0, 1))),
	)}
}

func (n *Dice) Compute(context.Context, node.Props, node.Refs, node.RefQuerier) (node.Results, error) {
	return node.Results{"value": proptype.NumberVal(node.Rand(n.Seed()).Float64())}, nil
}

func (n *Dice) Clone() node.Node { return &Dice{RandomBase: n.CloneRandomBase()} }

// Jitter is randomisable and adds a seeded offset in [0,1) to its input.
type Jitter struct {
	node.RandomBase
}

// NewJitter returns a Jitter node with input "x" and output "value".
func NewJitter() *Jitter {
	return &Jitter{RandomBase: node.NewRandomBase(node.Info{Type: "jitter"},
		node.Def("x", node.Param(proptype.Number(), proptype.NumberVal(0))),
		node.Def("value", node.Out(proptype.Number())),
	)}
}

func (n *Jitter) Compute(_ context.Context, props node.Props, _ node.Refs, _ node.RefQuerier) (node.Results, error) {
	x := props.Float("x", 0)
	return node.Results{"value": proptype.NumberVal(x + node.Rand(n.Seed()).Float64())}, nil
}

func (n *Jitter) Clone() node.Node { return &Jitter{RandomBase: n.CloneRandomBase()} }

// Counter is animatable and emits how many steps it has taken.
type Counter struct {
	node.Base
	node.Animation
	steps int
}

// NewCounter returns a Counter stepping every jump.
func NewCounter(jump time.Duration) *Counter {
	return &Counter{
		Base:      node.NewBase(node.Info{Type: "counter"}, node.Def("steps", node.Out(proptype.Int()))),
		Animation: node.NewAnimation(jump),
	}
}

func (n *Counter) Compute(context.Context, node.Props, node.Refs, node.RefQuerier) (node.Results, error) {
	n.steps += n.TakeStep()
	return node.Results{"steps": proptype.IntVal(n.steps)}, nil
}

func (n *Counter) Clone() node.Node {
	return &Counter{Base: n.CloneBase(), Animation: n.Animation, steps: n.steps}
}

// Edge is shorthand for nodeid.Edge with plain integer ids.
func Edge(src uint64, srcKey string, dst uint64, dstKey string) nodeid.EdgeID {
	return nodeid.Edge(nodeid.NodeID(src), nodeid.PropKey(srcKey), nodeid.NodeID(dst), nodeid.PropKey(dstKey))
}
