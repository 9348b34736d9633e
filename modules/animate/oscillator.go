package animate

import (
	"context"
	"time"

	"github.com/specialistvlad/vecgraph/internal/node"
	"github.com/specialistvlad/vecgraph/internal/proptype"
)

var policyType = proptype.Enum(node.StepPolicies()...)

// Oscillator moves through steps evenly spaced values between min and max,
// one step per interval while playing.
type Oscillator struct {
	node.Base
	node.Animation
	pos, dir int
}

// NewOscillator returns a stopped oscillator stepping ten times a second.
func NewOscillator() *Oscillator {
	return &Oscillator{
		Base: node.NewBase(
			node.Info{Type: "oscillator", Name: "Oscillator", Category: "animate", Description: "Steps between two values over time."},
			node.Def("min", node.Param(proptype.Number(), proptype.NumberVal(0)).Named("Min")),
			node.Def("max", node.Param(proptype.Number(), proptype.NumberVal(1)).Named("Max")),
			node.Def("steps", node.Param(proptype.Int().AtLeast(2), proptype.IntVal(10)).Named("Steps")),
			node.Def("policy", node.Internal(policyType, proptype.EnumVal(policyType, string(node.Cyclic))).Named("Policy")),
			node.Def("interval", node.Internal(proptype.Number().AtLeast(0.001), proptype.NumberVal(0.1)).Named("Interval").
				Describe("Seconds between steps.")),
			node.Def("value", node.Out(proptype.Number())),
		),
		Animation: node.NewAnimation(100 * time.Millisecond),
		dir:       1,
	}
}

func (n *Oscillator) Compute(_ context.Context, props node.Props, _ node.Refs, _ node.RefQuerier) (node.Results, error) {
	lo, hi := props.Float("min", 0), props.Float("max", 1)
	steps := props.Int("steps", 10)
	if steps < 2 {
		return nil, node.Invalid("steps must be at least 2, got %d", steps)
	}
	n.SetJumpTime(time.Duration(props.Float("interval", 0.1) * float64(time.Second)))

	if n.pos >= steps {
		n.pos = steps - 1
	}
	policy := node.StepPolicy(props.String("policy", string(node.Cyclic)))
	for range n.TakeStep() {
		n.pos, n.dir = policy.Advance(n.pos, n.dir, steps)
	}
	v := lo + (hi-lo)*float64(n.pos)/float64(steps-1)
	return node.Results{"value": proptype.NumberVal(v)}, nil
}

// Position returns the current step index.
func (n *Oscillator) Position() int { return n.pos }

func (n *Oscillator) Clone() node.Node {
	return &Oscillator{
		Base:      n.CloneBase(),
		Animation: n.Animation,
		pos:       n.pos,
		dir:       n.dir,
	}
}
