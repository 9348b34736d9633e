package fill

import (
	"context"

	"github.com/specialistvlad/vecgraph/internal/node"
	"github.com/specialistvlad/vecgraph/internal/proptype"
	"github.com/specialistvlad/vecgraph/internal/vector"
)

// FillKey is the output of the colour, gradient and fill nodes.
const FillKey = "fill"

// Colour emits a flat colour fill.
type Colour struct {
	node.Base
}

// NewColour returns a mid-grey colour node.
func NewColour() *Colour {
	return &Colour{Base: node.NewBase(
		node.Info{Type: "colour", Name: "Colour", Category: "fill", Description: "A flat colour."},
		node.Def("colour", node.Param(proptype.Colour(), proptype.ColourVal(vector.RGB(0.5, 0.5, 0.5))).Named("Colour")),
		node.Def(FillKey, node.Out(proptype.Fill())),
	)}
}

func (n *Colour) Compute(_ context.Context, props node.Props, _ node.Refs, _ node.RefQuerier) (node.Results, error) {
	c, err := props.Require("colour")
	if err != nil {
		return nil, err
	}
	return node.Results{FillKey: proptype.FillVal(c.AsColour())}, nil
}

func (n *Colour) Clone() node.Node { return &Colour{Base: n.CloneBase()} }

// Gradient emits a linear gradient with evenly spaced stops.
type Gradient struct {
	node.Base
}

// NewGradient returns a left-to-right black to white gradient.
func NewGradient() *Gradient {
	stops := proptype.ListVal(proptype.Colour(),
		proptype.ColourVal(vector.RGB(0, 0, 0)),
		proptype.ColourVal(vector.RGB(1, 1, 1)),
	)
	return &Gradient{Base: node.NewBase(
		node.Info{Type: "gradient", Name: "Gradient", Category: "fill", Description: "A linear gradient."},
		node.Def("start", node.Param(proptype.Point(), proptype.PointVal(vector.Point{X: 0, Y: 0.5})).Named("Start")),
		node.Def("end", node.Param(proptype.Point(), proptype.PointVal(vector.Point{X: 1, Y: 0.5})).Named("End")),
		node.Def("stops", node.Param(proptype.List(proptype.Colour()), stops).Named("Stops").
			Describe("Colours spread evenly from start to end.")),
		node.Def(FillKey, node.Out(proptype.Fill())),
	)}
}

func (n *Gradient) Compute(_ context.Context, props node.Props, _ node.Refs, _ node.RefQuerier) (node.Results, error) {
	items := props.Items("stops")
	if len(items) < 2 {
		return nil, node.Invalid("a gradient needs at least 2 stops, got %d", len(items))
	}
	g := vector.Gradient{Stops: make([]vector.Stop, len(items))}
	if v, ok := props.Get("start"); ok {
		g.Start = v.AsPoint()
	}
	if v, ok := props.Get("end"); ok {
		g.End = v.AsPoint()
	}
	for i, it := range items {
		g.Stops[i] = vector.Stop{Offset: float64(i) / float64(len(items)-1), Colour: it.AsColour()}
	}
	return node.Results{FillKey: proptype.FillVal(g)}, nil
}

func (n *Gradient) Clone() node.Node { return &Gradient{Base: n.CloneBase()} }

// NewFill returns a combination that switches between a flat colour and a
// gradient.
func NewFill() *node.Combination {
	return node.NewCombination(
		node.Info{Type: "fill", Name: "Fill", Category: "fill", Description: "A colour or a gradient."},
		node.Variant{Name: "Colour", New: func() node.Node { return NewColour() }},
		node.Variant{Name: "Gradient", New: func() node.Node { return NewGradient() }},
	)
}

// RandomColour emits an opaque colour drawn from its seed.
type RandomColour struct {
	node.RandomBase
}

// NewRandomColour returns a random colour node with a fresh seed.
func NewRandomColour() *RandomColour {
	return &RandomColour{RandomBase: node.NewRandomBase(
		node.Info{Type: "random_colour", Name: "Random Colour", Category: "fill", Description: "An opaque colour picked from the seed."},
		node.Def("colour", node.Out(proptype.Colour())),
	)}
}

func (n *RandomColour) Compute(context.Context, node.Props, node.Refs, node.RefQuerier) (node.Results, error) {
	r := node.Rand(n.Seed())
	c := vector.RGB(r.Float64(), r.Float64(), r.Float64())
	return node.Results{"colour": proptype.ColourVal(c)}, nil
}

func (n *RandomColour) Clone() node.Node { return &RandomColour{RandomBase: n.CloneRandomBase()} }
