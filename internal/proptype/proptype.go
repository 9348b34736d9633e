package proptype

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// PropType describes the shape of a property: a base kind wrapped in Depth
// levels of list. Min and Max bound numeric kinds; Options lists the values
// of an enum.
type PropType struct {
	Kind    Kind
	Depth   int
	Min     *float64
	Max     *float64
	Options []string
}

func Any() PropType { return PropType{Kind: KindAny} }
func Number() PropType { return PropType{Kind: KindNumber} }
func Int() PropType { return PropType{Kind: KindInt} }
func Bool() PropType { return PropType{Kind: KindBool} }
func String() PropType { return PropType{Kind: KindString} }
func Fill() PropType { return PropType{Kind: KindFill} }
func Colour() PropType { return PropType{Kind: KindColour} }
func Gradient() PropType { return PropType{Kind: KindGradient} }
func Point() PropType { return PropType{Kind: KindPoint} }
func Element() PropType { return PropType{Kind: KindElement} }
func Shape() PropType { return PropType{Kind: KindShape} }
func Function() PropType { return PropType{Kind: KindFunction} }
func Warp() PropType { return PropType{Kind: KindWarp} }
func Grid() PropType { return PropType{Kind: KindGrid} }

// Enum returns an enum type restricted to options.
func Enum(options ...string) PropType {
	return PropType{Kind: KindEnum, Options: options}
}

// NumberRange returns a number type bounded to [min, max].
func NumberRange(min, max float64) PropType {
	return PropType{Kind: KindNumber, Min: &min, Max: &max}
}

// IntRange returns an int type bounded to [min, max].
func IntRange(min, max int) PropType {
	lo, hi := float64(min), float64(max)
	return PropType{Kind: KindInt, Min: &lo, Max: &hi}
}

// AtLeast returns a copy of t with a lower bound.
func (t PropType) AtLeast(min float64) PropType {
	t.Min = &min
	return t
}

// AtMost returns a copy of t with an upper bound.
func (t PropType) AtMost(max float64) PropType {
	t.Max = &max
	return t
}

// List wraps t in one more level of list.
func List(t PropType) PropType {
	t.Depth++
	return t
}

// ListOf returns kind wrapped in depth levels of list.
func ListOf(kind Kind, depth int) PropType {
	return PropType{Kind: kind, Depth: depth}
}

// IsList reports whether t is a list type.
func (t PropType) IsList() bool { return t.Depth > 0 }

// Item returns the element type of a list type.
func (t PropType) Item() PropType {
	if t.Depth == 0 {
		panic(fmt.Sprintf("proptype: Item called on scalar type %s", t))
	}
	t.Depth--
	return t
}

// Base returns t with all list levels removed.
func (t PropType) Base() PropType {
	t.Depth = 0
	return t
}

// WithDepth returns t with its depth replaced.
func (t PropType) WithDepth(depth int) PropType {
	t.Depth = depth
	return t
}

// Bounds returns the numeric range, using infinities for missing bounds.
func (t PropType) Bounds() (lo, hi float64) {
	lo, hi = math.Inf(-1), math.Inf(1)
	if t.Min != nil {
		lo = *t.Min
	}
	if t.Max != nil {
		hi = *t.Max
	}
	return lo, hi
}

// Equal reports structural equality.
func (t PropType) Equal(o PropType) bool {
	if t.Kind != o.Kind || t.Depth != o.Depth || !slices.Equal(t.Options, o.Options) {
		return false
	}
	tl, th := t.Bounds()
	ol, oh := o.Bounds()
	return tl == ol && th == oh
}

func (t PropType) String() string {
	var sb strings.Builder
	sb.WriteString(t.Kind.String())
	if t.Kind.IsNumeric() && (t.Min != nil || t.Max != nil) {
		lo, hi := t.Bounds()
		fmt.Fprintf(&sb, "[%s,%s]", formatBound(lo), formatBound(hi))
	}
	if t.Kind == KindEnum && len(t.Options) > 0 {
		fmt.Fprintf(&sb, "(%s)", strings.Join(t.Options, "|"))
	}
	s := sb.String()
	for i := 0; i < t.Depth; i++ {
		s = "list(" + s + ")"
	}
	return s
}

func formatBound(f float64) string {
	if math.IsInf(f, 0) {
		return ""
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
