package warp

import (
	"context"
	"math"

	"github.com/specialistvlad/vecgraph/internal/node"
	"github.com/specialistvlad/vecgraph/internal/proptype"
	"github.com/specialistvlad/vecgraph/internal/vector"
)

// ellipseSegments is the number of path vertices an ellipse becomes before
// it is warped.
const ellipseSegments = 64

// SineWarp emits a vertical sine displacement.
type SineWarp struct {
	node.Base
}

// NewSineWarp returns a gentle sine warp.
func NewSineWarp() *SineWarp {
	return &SineWarp{Base: node.NewBase(
		node.Info{Type: "sine_warp", Name: "Sine Warp", Category: "warp", Description: "Displaces points vertically along a sine wave."},
		node.Def("amplitude", node.Param(proptype.Number(), proptype.NumberVal(0.05)).Named("Amplitude")),
		node.Def("wavelength", node.Param(proptype.Number(), proptype.NumberVal(0.25)).Named("Wavelength")),
		node.Def("warp", node.Out(proptype.Warp())),
	)}
}

func (n *SineWarp) Compute(_ context.Context, props node.Props, _ node.Refs, _ node.RefQuerier) (node.Results, error) {
	wl := props.Float("wavelength", 0.25)
	if wl <= 0 {
		return nil, node.Invalid("wavelength must be positive, got %g", wl)
	}
	return node.Results{"warp": proptype.WarpVal(vector.SineWarp(props.Float("amplitude", 0.05), wl))}, nil
}

func (n *SineWarp) Clone() node.Node { return &SineWarp{Base: n.CloneBase()} }

// ApplyWarp displaces every vertex of a shape. Edges are subdivided first so
// straight sides can bend.
type ApplyWarp struct {
	node.Base
}

// NewApplyWarp returns a warp applier.
func NewApplyWarp() *ApplyWarp {
	return &ApplyWarp{Base: node.NewBase(
		node.Info{Type: "apply_warp", Name: "Apply Warp", Category: "warp", Description: "Warps a shape."},
		node.Def("shape", node.In(proptype.Shape()).Named("Shape")),
		node.Def("warp", node.In(proptype.Warp()).Named("Warp")),
		node.Def("subdivisions", node.Param(proptype.Int(), proptype.IntVal(8)).Named("Subdivisions").
			Describe("Pieces each edge is cut into before warping.")),
		node.Def("warped", node.Out(proptype.Shape())),
	)}
}

func (n *ApplyWarp) Compute(_ context.Context, props node.Props, _ node.Refs, _ node.RefQuerier) (node.Results, error) {
	sv, err := props.Require("shape")
	if err != nil {
		return nil, err
	}
	wv, err := props.Require("warp")
	if err != nil {
		return nil, err
	}
	subdiv := props.Int("subdivisions", 8)
	if subdiv < 1 {
		return nil, node.Invalid("subdivisions must be at least 1, got %d", subdiv)
	}
	return node.Results{"warped": proptype.ShapeVal(Apply(sv.AsElement(), wv.AsWarp(), subdiv))}, nil
}

func (n *ApplyWarp) Clone() node.Node { return &ApplyWarp{Base: n.CloneBase()} }

// Apply returns a warped copy of e. Ellipses become paths; groups are warped
// child by child. Points are warped in the element's own coordinates.
func Apply(e *vector.Element, w vector.Warp, subdiv int) *vector.Element {
	out := e.Copy()
	switch e.Kind {
	case vector.ElementEllipse:
		out.Kind = vector.ElementPath
		out.Closed = true
		out.Points = warpPoints(ellipsePoints(e), w, 1, true)
	case vector.ElementPath:
		out.Points = warpPoints(e.Points, w, subdiv, e.Closed)
	case vector.ElementGroup:
		for i, c := range e.Children {
			out.Children[i] = Apply(c, w, subdiv)
		}
	}
	return out
}

func ellipsePoints(e *vector.Element) []vector.Point {
	pts := make([]vector.Point, ellipseSegments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / ellipseSegments
		pts[i] = vector.Point{X: e.Center.X + e.RX*math.Cos(a), Y: e.Center.Y + e.RY*math.Sin(a)}
	}
	return pts
}

// warpPoints subdivides each edge into subdiv pieces and maps every vertex
// through w.
func warpPoints(pts []vector.Point, w vector.Warp, subdiv int, closed bool) []vector.Point {
	if len(pts) == 0 {
		return nil
	}
	edges := len(pts) - 1
	if closed {
		edges = len(pts)
	}
	out := make([]vector.Point, 0, edges*subdiv+1)
	for i := 0; i < edges; i++ {
		a, b := pts[i], pts[(i+1)%len(pts)]
		for s := 0; s < subdiv; s++ {
			t := float64(s) / float64(subdiv)
			out = append(out, w(vector.Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}))
		}
	}
	if !closed || edges == 0 {
		out = append(out, w(pts[len(pts)-1]))
	}
	return out
}
