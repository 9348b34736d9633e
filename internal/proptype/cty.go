package proptype

import (
	"fmt"

	"github.com/specialistvlad/vecgraph/internal/vector"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// cty object types implied from the tagged vector structs.
var (
	colourType   = mustImpliedType(vector.Colour{})
	pointType    = mustImpliedType(vector.Point{})
	gradientType = mustImpliedType(vector.Gradient{})
	gridType     = mustImpliedType(vector.Grid{})
)

func mustImpliedType(v any) cty.Type {
	t, err := gocty.ImpliedType(v)
	if err != nil {
		panic(fmt.Sprintf("proptype: cannot imply cty type for %T: %v", v, err))
	}
	return t
}

// Persistable reports whether values of t have a literal form.
func (t PropType) Persistable() bool {
	switch t.Kind {
	case KindElement, KindShape, KindFunction, KindWarp:
		return false
	default:
		return true
	}
}

// ToCty converts v into its literal cty form. Lists become tuples so that
// empty and heterogeneous lists are representable.
func ToCty(v Value) (cty.Value, error) {
	if v.IsList() {
		items := v.Items()
		if len(items) == 0 {
			return cty.EmptyTupleVal, nil
		}
		vals := make([]cty.Value, len(items))
		for i, it := range items {
			cv, err := ToCty(it)
			if err != nil {
				return cty.NilVal, fmt.Errorf("item %d: %w", i, err)
			}
			vals[i] = cv
		}
		return cty.TupleVal(vals), nil
	}

	switch d := v.Data.(type) {
	case float64:
		return cty.NumberFloatVal(d), nil
	case int:
		return cty.NumberIntVal(int64(d)), nil
	case bool:
		return cty.BoolVal(d), nil
	case string:
		return cty.StringVal(d), nil
	case vector.Colour:
		return gocty.ToCtyValue(d, colourType)
	case vector.Point:
		return gocty.ToCtyValue(d, pointType)
	case vector.Gradient:
		return gocty.ToCtyValue(d, gradientType)
	case vector.Grid:
		return gocty.ToCtyValue(d, gridType)
	default:
		return cty.NilVal, fmt.Errorf("%w: %s", ErrNotPersistable, v.Type)
	}
}

// FromCty decodes a literal into a Value of type t and checks it against t.
func FromCty(cv cty.Value, t PropType) (Value, error) {
	if cv.IsNull() || !cv.IsKnown() {
		return Value{}, fmt.Errorf("%w: null or unknown value for %s", ErrIncompatible, t)
	}
	v, err := fromCty(cv, t)
	if err != nil {
		return Value{}, err
	}
	if err := t.Check(v); err != nil {
		return Value{}, err
	}
	return v, nil
}

func fromCty(cv cty.Value, t PropType) (Value, error) {
	if t.IsList() {
		ty := cv.Type()
		if !ty.IsTupleType() && !ty.IsListType() && !ty.IsSetType() {
			return Value{}, fmt.Errorf("%w: %s literal for %s", ErrIncompatible, ty.FriendlyName(), t)
		}
		items := []Value{}
		for it := cv.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			iv, err := fromCty(ev, t.Item())
			if err != nil {
				return Value{}, err
			}
			items = append(items, iv)
		}
		return Value{Type: t, Data: items}, nil
	}

	switch t.Kind {
	case KindNumber:
		var f float64
		return decode(cv, cty.Number, &f, t, func() any { return f })
	case KindInt:
		var i int
		return decode(cv, cty.Number, &i, t, func() any { return i })
	case KindBool:
		var b bool
		return decode(cv, cty.Bool, &b, t, func() any { return b })
	case KindString, KindEnum:
		var s string
		return decode(cv, cty.String, &s, t, func() any { return s })
	case KindColour:
		var c vector.Colour
		return decode(cv, colourType, &c, t, func() any { return c })
	case KindGradient:
		var g vector.Gradient
		return decode(cv, gradientType, &g, t, func() any { return g })
	case KindFill:
		if cv.Type().IsObjectType() && cv.Type().HasAttribute("stops") {
			var g vector.Gradient
			return decode(cv, gradientType, &g, t, func() any { return g })
		}
		var c vector.Colour
		return decode(cv, colourType, &c, t, func() any { return c })
	case KindPoint:
		var p vector.Point
		return decode(cv, pointType, &p, t, func() any { return p })
	case KindGrid:
		var g vector.Grid
		return decode(cv, gridType, &g, t, func() any { return g })
	case KindAny:
		switch cv.Type() {
		case cty.Number:
			f, _ := cv.AsBigFloat().Float64()
			return NumberVal(f), nil
		case cty.Bool:
			return BoolVal(cv.True()), nil
		case cty.String:
			return StringVal(cv.AsString()), nil
		}
		return Value{}, fmt.Errorf("%w: cannot infer a property type from %s", ErrNotPersistable, cv.Type().FriendlyName())
	default:
		return Value{}, fmt.Errorf("%w: %s", ErrNotPersistable, t)
	}
}

// decode converts cv to ty, then into target, and wraps the result.
func decode(cv cty.Value, ty cty.Type, target any, t PropType, result func() any) (Value, error) {
	conv, err := convert.Convert(cv, ty)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %s: %v", ErrIncompatible, t, err)
	}
	if err := gocty.FromCtyValue(conv, target); err != nil {
		return Value{}, fmt.Errorf("%w: %s: %v", ErrIncompatible, t, err)
	}
	return Value{Type: t, Data: result()}, nil
}
