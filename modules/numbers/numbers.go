package numbers

import (
	"context"
	"math"

	"github.com/specialistvlad/vecgraph/internal/node"
	"github.com/specialistvlad/vecgraph/internal/proptype"
	"github.com/specialistvlad/vecgraph/internal/vector"
)

// maxRangeLen bounds the size of a generated range.
const maxRangeLen = 10000

// Number emits a constant.
type Number struct {
	node.Base
}

// NewNumber returns a number node holding 0.
func NewNumber() *Number {
	return &Number{Base: node.NewBase(
		node.Info{Type: "number", Name: "Number", Category: "numbers", Description: "A constant number."},
		node.Def("value", node.Param(proptype.Number(), proptype.NumberVal(0)).Named("Value")),
		node.Def("number", node.Out(proptype.Number())),
	)}
}

func (n *Number) Compute(_ context.Context, props node.Props, _ node.Refs, _ node.RefQuerier) (node.Results, error) {
	return node.Results{"number": proptype.NumberVal(props.Float("value", 0))}, nil
}

func (n *Number) Clone() node.Node { return &Number{Base: n.CloneBase()} }

// Range emits start, start+step, ... up to and including stop.
type Range struct {
	node.Base
}

// NewRange returns the range 0, 0.25, ..., 1.
func NewRange() *Range {
	return &Range{Base: node.NewBase(
		node.Info{Type: "range", Name: "Range", Category: "numbers", Description: "Evenly spaced numbers."},
		node.Def("start", node.Param(proptype.Number(), proptype.NumberVal(0)).Named("Start")),
		node.Def("stop", node.Param(proptype.Number(), proptype.NumberVal(1)).Named("Stop")),
		node.Def("step", node.Param(proptype.Number(), proptype.NumberVal(0.25)).Named("Step")),
		node.Def("values", node.Out(proptype.List(proptype.Number()))),
	)}
}

func (n *Range) Compute(_ context.Context, props node.Props, _ node.Refs, _ node.RefQuerier) (node.Results, error) {
	start, stop, step := props.Float("start", 0), props.Float("stop", 1), props.Float("step", 0.25)
	if step <= 0 {
		return nil, node.Invalid("step must be positive, got %g", step)
	}
	count := 0
	if stop >= start {
		count = int(math.Floor((stop-start)/step+1e-9)) + 1
	}
	if count > maxRangeLen {
		return nil, node.Invalid("range has %d values, the limit is %d", count, maxRangeLen)
	}
	items := make([]proptype.Value, count)
	for i := range items {
		items[i] = proptype.NumberVal(start + float64(i)*step)
	}
	return node.Results{"values": proptype.ListVal(proptype.Number(), items...)}, nil
}

func (n *Range) Clone() node.Node { return &Range{Base: n.CloneBase()} }

var waveShapes = []string{"sine", "triangle", "square"}

// Wave emits a periodic function with values in [-1, 1].
type Wave struct {
	node.Base
}

// NewWave returns a sine wave with period 1.
func NewWave() *Wave {
	return &Wave{Base: node.NewBase(
		node.Info{Type: "wave", Name: "Wave", Category: "numbers", Description: "A periodic function."},
		node.Def("shape", node.Param(proptype.Enum(waveShapes...), proptype.EnumVal(proptype.Enum(waveShapes...), "sine")).Named("Shape")),
		node.Def("period", node.Param(proptype.Number(), proptype.NumberVal(1)).Named("Period")),
		node.Def("function", node.Out(proptype.Function())),
	)}
}

func (n *Wave) Compute(_ context.Context, props node.Props, _ node.Refs, _ node.RefQuerier) (node.Results, error) {
	period := props.Float("period", 1)
	if period <= 0 {
		return nil, node.Invalid("period must be positive, got %g", period)
	}
	var f vector.Function
	switch props.String("shape", "sine") {
	case "triangle":
		f = func(x float64) float64 {
			phase := x/period - math.Floor(x/period)
			return 1 - 4*math.Abs(phase-0.5)
		}
	case "square":
		f = func(x float64) float64 {
			if x/period-math.Floor(x/period) < 0.5 {
				return 1
			}
			return -1
		}
	default:
		f = func(x float64) float64 { return math.Sin(2 * math.Pi * x / period) }
	}
	return node.Results{"function": proptype.FunctionVal(f)}, nil
}

func (n *Wave) Clone() node.Node { return &Wave{Base: n.CloneBase()} }

// Sample evaluates a function at each input value.
type Sample struct {
	node.Base
}

// NewSample returns a sampler.
func NewSample() *Sample {
	return &Sample{Base: node.NewBase(
		node.Info{Type: "sample", Name: "Sample", Category: "numbers", Description: "Evaluates a function at each value."},
		node.Def("function", node.In(proptype.Function()).Named("Function")),
		node.Def("values", node.In(proptype.List(proptype.Number())).Multi().Named("Values")),
		node.Def("samples", node.Out(proptype.List(proptype.Number()))),
	)}
}

func (n *Sample) Compute(_ context.Context, props node.Props, _ node.Refs, _ node.RefQuerier) (node.Results, error) {
	fv, err := props.Require("function")
	if err != nil {
		return nil, err
	}
	f := fv.AsFunction()
	in := props.Items("values")
	out := make([]proptype.Value, len(in))
	for i, v := range in {
		y := f(v.AsFloat())
		if math.IsNaN(y) || math.IsInf(y, 0) {
			return nil, node.Invalid("function is undefined at %g", v.AsFloat())
		}
		out[i] = proptype.NumberVal(y)
	}
	return node.Results{"samples": proptype.ListVal(proptype.Number(), out...)}, nil
}

func (n *Sample) Clone() node.Node { return &Sample{Base: n.CloneBase()} }
