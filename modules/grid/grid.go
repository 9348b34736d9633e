package grid

import (
	"context"

	"github.com/specialistvlad/vecgraph/internal/node"
	"github.com/specialistvlad/vecgraph/internal/proptype"
	"github.com/specialistvlad/vecgraph/internal/vector"
)

// Grid emits a rows x cols layout.
type Grid struct {
	node.Base
}

// NewGrid returns a 3x3 grid over the unit square.
func NewGrid() *Grid {
	return &Grid{Base: node.NewBase(
		node.Info{Type: "grid", Name: "Grid", Category: "layout", Description: "A regular grid of cells."},
		node.Def("rows", node.Param(proptype.Int(), proptype.IntVal(3)).Named("Rows")),
		node.Def("cols", node.Param(proptype.Int(), proptype.IntVal(3)).Named("Columns")),
		node.Def("width", node.Param(proptype.Number(), proptype.NumberVal(1)).Named("Width")),
		node.Def("height", node.Param(proptype.Number(), proptype.NumberVal(1)).Named("Height")),
		node.Def("grid", node.Out(proptype.Grid())),
	)}
}

func (n *Grid) Compute(_ context.Context, props node.Props, _ node.Refs, _ node.RefQuerier) (node.Results, error) {
	g := vector.Grid{
		Rows:   props.Int("rows", 3),
		Cols:   props.Int("cols", 3),
		Width:  props.Float("width", 1),
		Height: props.Float("height", 1),
	}
	if g.Rows < 1 || g.Cols < 1 {
		return nil, node.Invalid("a grid needs at least one row and one column, got %dx%d", g.Rows, g.Cols)
	}
	if g.Width <= 0 || g.Height <= 0 {
		return nil, node.Invalid("grid size must be positive, got %gx%g", g.Width, g.Height)
	}
	return node.Results{"grid": proptype.GridVal(g)}, nil
}

func (n *Grid) Clone() node.Node { return &Grid{Base: n.CloneBase()} }
