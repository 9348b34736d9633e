package shapes

import (
	"context"

	"github.com/specialistvlad/vecgraph/internal/node"
	"github.com/specialistvlad/vecgraph/internal/nodeid"
	"github.com/specialistvlad/vecgraph/internal/proptype"
	"github.com/specialistvlad/vecgraph/internal/vector"
)

// ShapeKey is the output every shape node produces.
const ShapeKey = "shape"

var (
	center      = vector.Point{X: 0.5, Y: 0.5}
	defaultFill = vector.RGB(0.6, 0.6, 0.6)
)

func fillDef() node.Entry {
	return node.Def("fill", node.Param(proptype.Fill(), proptype.FillVal(defaultFill)).Named("Fill"))
}

func fillOf(props node.Props) vector.Fill {
	if v, ok := props.Get("fill"); ok {
		return v.AsFill()
	}
	return defaultFill
}

// size reads two non-negative dimensions.
func size(props node.Props, xKey, yKey nodeid.PropKey, def float64) (float64, float64, error) {
	x, y := props.Float(xKey, def), props.Float(yKey, def)
	if x < 0 || y < 0 {
		return 0, 0, node.Invalid("%s and %s must not be negative, got %g and %g", xKey, yKey, x, y)
	}
	return x, y, nil
}

// Rectangle draws an axis-aligned rectangle.
type Rectangle struct {
	node.Base
}

// NewRectangle returns a rectangle filling the unit square.
func NewRectangle() *Rectangle {
	return &Rectangle{Base: node.NewBase(
		node.Info{Type: "rectangle", Name: "Rectangle", Category: "shapes", Description: "An axis-aligned rectangle."},
		node.Def("width", node.Param(proptype.Number(), proptype.NumberVal(1)).Named("Width")),
		node.Def("height", node.Param(proptype.Number(), proptype.NumberVal(1)).Named("Height")),
		fillDef(),
		node.Def(ShapeKey, node.Out(proptype.Shape())),
	)}
}

func (n *Rectangle) Compute(_ context.Context, props node.Props, _ node.Refs, _ node.RefQuerier) (node.Results, error) {
	w, h, err := size(props, "width", "height", 1)
	if err != nil {
		return nil, err
	}
	hw, hh := w/2, h/2
	pts := []vector.Point{
		{X: center.X - hw, Y: center.Y - hh},
		{X: center.X + hw, Y: center.Y - hh},
		{X: center.X + hw, Y: center.Y + hh},
		{X: center.X - hw, Y: center.Y + hh},
	}
	return node.Results{ShapeKey: proptype.ShapeVal(vector.Path(pts, true, fillOf(props)))}, nil
}

func (n *Rectangle) Clone() node.Node { return &Rectangle{Base: n.CloneBase()} }

// Ellipse draws an axis-aligned ellipse.
type Ellipse struct {
	node.Base
}

// NewEllipse returns a circle inscribed in the unit square.
func NewEllipse() *Ellipse {
	return &Ellipse{Base: node.NewBase(
		node.Info{Type: "ellipse", Name: "Ellipse", Category: "shapes", Description: "An axis-aligned ellipse."},
		node.Def("rx", node.Param(proptype.Number(), proptype.NumberVal(0.5)).Named("Radius X")),
		node.Def("ry", node.Param(proptype.Number(), proptype.NumberVal(0.5)).Named("Radius Y")),
		fillDef(),
		node.Def(ShapeKey, node.Out(proptype.Shape())),
	)}
}

func (n *Ellipse) Compute(_ context.Context, props node.Props, _ node.Refs, _ node.RefQuerier) (node.Results, error) {
	rx, ry, err := size(props, "rx", "ry", 0.5)
	if err != nil {
		return nil, err
	}
	e := vector.Ellipse(center, rx, ry, fillOf(props))
	return node.Results{ShapeKey: proptype.ShapeVal(e)}, nil
}

func (n *Ellipse) Clone() node.Node { return &Ellipse{Base: n.CloneBase()} }

// Polygon draws a closed path through its points.
type Polygon struct {
	node.Base
}

// NewPolygon returns a polygon defaulting to a triangle.
func NewPolygon() *Polygon {
	triangle := proptype.ListVal(proptype.Point(),
		proptype.PointVal(vector.Point{X: 0.5, Y: 0}),
		proptype.PointVal(vector.Point{X: 1, Y: 1}),
		proptype.PointVal(vector.Point{X: 0, Y: 1}),
	)
	return &Polygon{Base: node.NewBase(
		node.Info{Type: "polygon", Name: "Polygon", Category: "shapes", Description: "A closed polygon through a list of points."},
		node.Def("points", node.Param(proptype.List(proptype.Point()), triangle).Named("Points")),
		fillDef(),
		node.Def(ShapeKey, node.Out(proptype.Shape())),
	)}
}

func (n *Polygon) Compute(_ context.Context, props node.Props, _ node.Refs, _ node.RefQuerier) (node.Results, error) {
	items := props.Items("points")
	if len(items) < 3 {
		return nil, node.Invalid("a polygon needs at least 3 points, got %d", len(items))
	}
	pts := make([]vector.Point, len(items))
	for i, it := range items {
		pts[i] = it.AsPoint()
	}
	return node.Results{ShapeKey: proptype.ShapeVal(vector.Path(pts, true, fillOf(props)))}, nil
}

func (n *Polygon) Clone() node.Node { return &Polygon{Base: n.CloneBase()} }
