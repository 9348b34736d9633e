package vector

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ElementKind distinguishes drawable elements.
type ElementKind int

const (
	ElementPath      ElementKind = iota // polygonal path
	ElementEllipse                      // axis-aligned ellipse
	ElementGroup                        // ordered children
	ElementErrorCard                    // placeholder shown in place of a failed preview
)

func (k ElementKind) String() string {
	switch k {
	case ElementPath:
		return "path"
	case ElementEllipse:
		return "ellipse"
	case ElementGroup:
		return "group"
	case ElementErrorCard:
		return "error"
	default:
		return "unknown"
	}
}

// Element is a node in a drawable tree. Every element carries an ID so that
// a caller holding a rendered element can point back at it (see selectable
// nodes).
type Element struct {
	ID        string
	Kind      ElementKind
	Points    []Point // path vertices, closed when Closed is set
	Closed    bool
	Center    Point   // ellipse centre
	RX, RY    float64 // ellipse radii
	Fill      Fill
	Transform Transform
	Children  []*Element

	// Title and Message are only set on error cards.
	Title   string
	Message string
}

// NewElementID allocates a unique element id.
func NewElementID() string {
	return uuid.NewString()
}

// Path returns a path element through pts.
func Path(pts []Point, closed bool, fill Fill) *Element {
	return &Element{ID: NewElementID(), Kind: ElementPath, Points: pts, Closed: closed, Fill: fill, Transform: Identity()}
}

// Ellipse returns an ellipse element.
func Ellipse(center Point, rx, ry float64, fill Fill) *Element {
	return &Element{ID: NewElementID(), Kind: ElementEllipse, Center: center, RX: rx, RY: ry, Fill: fill, Transform: Identity()}
}

// Group returns a group element owning children.
func Group(children ...*Element) *Element {
	return &Element{ID: NewElementID(), Kind: ElementGroup, Children: children, Transform: Identity()}
}

// ErrorCard returns the placeholder drawn instead of a node's preview when
// its computation failed.
func ErrorCard(title, message string) *Element {
	return &Element{ID: NewElementID(), Kind: ElementErrorCard, Title: title, Message: message, Transform: Identity()}
}

// Copy returns a deep copy of e with fresh element ids.
func (e *Element) Copy() *Element {
	if e == nil {
		return nil
	}
	c := *e
	c.ID = NewElementID()
	c.Points = append([]Point(nil), e.Points...)
	c.Children = make([]*Element, len(e.Children))
	for i, child := range e.Children {
		c.Children[i] = child.Copy()
	}
	return &c
}

// WithTransform returns a copy of e with t composed after its own transform.
func (e *Element) WithTransform(t Transform) *Element {
	c := e.Copy()
	c.Transform = c.Transform.Then(t)
	return c
}

// IndexOfChild returns the index of the direct child with the given id, or -1.
func (e *Element) IndexOfChild(id string) int {
	for i, c := range e.Children {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// Dump writes an indented, human-readable description of the element tree.
func (e *Element) Dump() string {
	var sb strings.Builder
	e.dump(&sb, 0)
	return sb.String()
}

func (e *Element) dump(sb *strings.Builder, depth int) {
	if e == nil {
		return
	}
	sb.WriteString(strings.Repeat("  ", depth))
	switch e.Kind {
	case ElementPath:
		fmt.Fprintf(sb, "path points=%d closed=%t", len(e.Points), e.Closed)
	case ElementEllipse:
		fmt.Fprintf(sb, "ellipse rx=%.3g ry=%.3g", e.RX, e.RY)
	case ElementGroup:
		fmt.Fprintf(sb, "group children=%d", len(e.Children))
	case ElementErrorCard:
		fmt.Fprintf(sb, "error %q: %s", e.Title, e.Message)
	}
	if c, ok := e.Fill.(Colour); ok {
		fmt.Fprintf(sb, " fill=%s", c.Hex())
	}
	if _, ok := e.Fill.(Gradient); ok {
		sb.WriteString(" fill=gradient")
	}
	if e.Transform != Identity() {
		fmt.Fprintf(sb, " at=(%.3g,%.3g)", e.Transform.Translate.X, e.Transform.Translate.Y)
	}
	sb.WriteString("\n")
	for _, c := range e.Children {
		c.dump(sb, depth+1)
	}
}
