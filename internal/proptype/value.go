package proptype

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/vecgraph/internal/vector"
)

// Value is a runtime property value tagged with its type. The Go type of
// Data is fixed by Type:
//
//	number            float64
//	int               int
//	bool              bool
//	string, enum      string
//	colour            vector.Colour
//	gradient          vector.Gradient
//	fill              vector.Colour or vector.Gradient
//	point             vector.Point
//	element, shape    *vector.Element
//	function          vector.Function
//	warp              vector.Warp
//	grid              vector.Grid
//	list(T)           []Value, each of type T (or narrower when T is any)
//
// The accessors panic when called on the wrong kind; that is a programming
// error, not a user error.
type Value struct {
	Type PropType
	Data any
}

func NumberVal(f float64) Value { return Value{Type: Number(), Data: f} }
func IntVal(i int) Value { return Value{Type: Int(), Data: i} }
func BoolVal(b bool) Value { return Value{Type: Bool(), Data: b} }
func StringVal(s string) Value { return Value{Type: String(), Data: s} }
func ColourVal(c vector.Colour) Value { return Value{Type: Colour(), Data: c} }
func GradientVal(g vector.Gradient) Value { return Value{Type: Gradient(), Data: g} }
func PointVal(p vector.Point) Value { return Value{Type: Point(), Data: p} }
func ElementVal(e *vector.Element) Value { return Value{Type: Element(), Data: e} }
func ShapeVal(e *vector.Element) Value { return Value{Type: Shape(), Data: e} }
func FunctionVal(f vector.Function) Value { return Value{Type: Function(), Data: f} }
func WarpVal(w vector.Warp) Value { return Value{Type: Warp(), Data: w} }
func GridVal(g vector.Grid) Value { return Value{Type: Grid(), Data: g} }

// EnumVal returns an enum value of type t.
func EnumVal(t PropType, s string) Value { return Value{Type: t, Data: s} }

// FillVal returns a value whose kind is the concrete fill's kind.
func FillVal(f vector.Fill) Value {
	switch c := f.(type) {
	case vector.Colour:
		return ColourVal(c)
	case vector.Gradient:
		return GradientVal(c)
	default:
		panic(fmt.Sprintf("proptype: unknown fill %T", f))
	}
}

// ListVal returns a list of items whose item type is itemType.
func ListVal(itemType PropType, items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{Type: List(itemType), Data: items}
}

// IsList reports whether v holds a list.
func (v Value) IsList() bool { return v.Type.IsList() }

// Items returns the list items.
func (v Value) Items() []Value {
	v.mustDepth()
	return v.Data.([]Value)
}

// Len returns the number of list items.
func (v Value) Len() int { return len(v.Items()) }

func (v Value) AsFloat() float64 {
	switch d := v.Data.(type) {
	case float64:
		return d
	case int:
		return float64(d)
	}
	panic(v.wrongKind("number"))
}

func (v Value) AsInt() int {
	switch d := v.Data.(type) {
	case int:
		return d
	case float64:
		return int(d)
	}
	panic(v.wrongKind("int"))
}

func (v Value) AsBool() bool { return as[bool](v, "bool") }
func (v Value) AsString() string { return as[string](v, "string") }
func (v Value) AsColour() vector.Colour { return as[vector.Colour](v, "colour") }
func (v Value) AsGradient() vector.Gradient { return as[vector.Gradient](v, "gradient") }
func (v Value) AsFill() vector.Fill { return as[vector.Fill](v, "fill") }
func (v Value) AsPoint() vector.Point { return as[vector.Point](v, "point") }
func (v Value) AsElement() *vector.Element { return as[*vector.Element](v, "element") }
func (v Value) AsFunction() vector.Function { return as[vector.Function](v, "function") }
func (v Value) AsWarp() vector.Warp { return as[vector.Warp](v, "warp") }
func (v Value) AsGrid() vector.Grid { return as[vector.Grid](v, "grid") }

func as[T any](v Value, want string) T {
	d, ok := v.Data.(T)
	if !ok {
		panic(v.wrongKind(want))
	}
	return d
}

func (v Value) mustDepth() {
	if !v.IsList() {
		panic(v.wrongKind("list"))
	}
}

func (v Value) wrongKind(want string) string {
	return fmt.Sprintf("proptype: %s value used as %s", v.Type, want)
}

func (v Value) String() string {
	if v.IsList() {
		parts := make([]string, 0, v.Len())
		for _, it := range v.Items() {
			parts = append(parts, it.String())
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	switch d := v.Data.(type) {
	case vector.Colour:
		return d.Hex()
	case *vector.Element:
		if d == nil {
			return "<nil element>"
		}
		return fmt.Sprintf("<%s %s>", d.Kind, d.ID)
	case vector.Function, vector.Warp:
		return "<" + v.Type.Kind.String() + ">"
	case string:
		return fmt.Sprintf("%q", d)
	default:
		return fmt.Sprintf("%v", d)
	}
}
