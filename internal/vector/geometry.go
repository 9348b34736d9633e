package vector

import "math"

// ---------------------------------------------------------------------------
// Points and transforms
// ---------------------------------------------------------------------------

// Point is a position in the unit drawing space.
type Point struct {
	X float64 `cty:"x" json:"x"`
	Y float64 `cty:"y" json:"y"`
}

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Scale returns p scaled component-wise.
func (p Point) Scale(sx, sy float64) Point { return Point{X: p.X * sx, Y: p.Y * sy} }

// Transform is a scale followed by a translation.
type Transform struct {
	Translate Point   `json:"translate"`
	ScaleX    float64 `json:"scale_x"`
	ScaleY    float64 `json:"scale_y"`
}

// Identity is the transform that leaves points unchanged.
func Identity() Transform {
	return Transform{ScaleX: 1, ScaleY: 1}
}

// Apply maps p through the transform.
func (t Transform) Apply(p Point) Point {
	return p.Scale(t.ScaleX, t.ScaleY).Add(t.Translate)
}

// Then composes t with next, applying t first.
func (t Transform) Then(next Transform) Transform {
	return Transform{
		Translate: next.Apply(t.Translate),
		ScaleX:    t.ScaleX * next.ScaleX,
		ScaleY:    t.ScaleY * next.ScaleY,
	}
}

// ---------------------------------------------------------------------------
// Grid
// ---------------------------------------------------------------------------

// Grid is a regular layout of Rows x Cols cells covering Width x Height.
type Grid struct {
	Rows   int     `cty:"rows" json:"rows"`
	Cols   int     `cty:"cols" json:"cols"`
	Width  float64 `cty:"width" json:"width"`
	Height float64 `cty:"height" json:"height"`
}

// Len returns the number of cells.
func (g Grid) Len() int { return g.Rows * g.Cols }

// Cell returns the row and column of the cell at index i in row-major order.
func (g Grid) Cell(i int) (row, col int) {
	if g.Cols == 0 {
		return 0, 0
	}
	return i / g.Cols, i % g.Cols
}

// CellTransform maps the unit square onto the cell at (row, col).
func (g Grid) CellTransform(row, col int) Transform {
	cw := g.Width / float64(g.Cols)
	ch := g.Height / float64(g.Rows)
	return Transform{
		Translate: Point{X: float64(col) * cw, Y: float64(row) * ch},
		ScaleX:    cw,
		ScaleY:    ch,
	}
}

// ---------------------------------------------------------------------------
// Functions
// ---------------------------------------------------------------------------

// Function maps a scalar to a scalar.
type Function func(float64) float64

// Warp displaces points in the plane.
type Warp func(Point) Point

// SineWarp displaces y by amplitude*sin(2πx/wavelength).
func SineWarp(amplitude, wavelength float64) Warp {
	return func(p Point) Point {
		return Point{X: p.X, Y: p.Y + amplitude*math.Sin(2*math.Pi*p.X/wavelength)}
	}
}
