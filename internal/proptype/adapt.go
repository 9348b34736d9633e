package proptype

import (
	"fmt"
	"math"
)

// Flatten returns the scalar items of v in depth-first order. A scalar
// flattens to itself.
func Flatten(v Value) []Value {
	if !v.IsList() {
		return []Value{v}
	}
	var out []Value
	for _, it := range v.Items() {
		out = append(out, Flatten(it)...)
	}
	return out
}

// Extract flattens v and rebuilds it with target's depth. For a scalar target
// exactly one item must be present. For a list target the flat items are
// wrapped in target.Depth nested lists. Items are adapted to target's base.
func Extract(v Value, target PropType) (Value, error) {
	flat := Flatten(v)
	base := target.Base()
	items := make([]Value, len(flat))
	for i, it := range flat {
		a, err := adaptScalar(it, base)
		if err != nil {
			return Value{}, err
		}
		items[i] = a
	}
	if target.Depth == 0 {
		if len(items) != 1 {
			return Value{}, fmt.Errorf("%w: expected exactly one %s, got %d items", ErrIncompatible, target, len(items))
		}
		return items[0], nil
	}
	cur := Value{Type: base.WithDepth(1), Data: items}
	for d := 2; d <= target.Depth; d++ {
		cur = Value{Type: base.WithDepth(d), Data: []Value{cur}}
	}
	return cur, nil
}

// Adapt coerces v into target. Depth mismatches go through Extract; lists of
// equal depth are adapted item by item; scalars follow adaptScalar.
func Adapt(v Value, target PropType) (Value, error) {
	if v.Type.Depth != target.Depth {
		return Extract(v, target)
	}
	if target.IsList() {
		src := v.Items()
		items := make([]Value, len(src))
		for i, it := range src {
			a, err := Adapt(it, target.Item())
			if err != nil {
				return Value{}, fmt.Errorf("item %d: %w", i, err)
			}
			items[i] = a
		}
		return Value{Type: target, Data: items}, nil
	}
	return adaptScalar(v, target)
}

// Assign adapts v for storage in a property of type t and checks the result.
// Unlike Adapt, which truncates, a fractional number is rejected by an int
// property.
func Assign(v Value, t PropType) (Value, error) {
	if t.Kind == KindInt {
		for _, it := range Flatten(v) {
			if it.Type.Kind != KindNumber {
				continue
			}
			if f := it.AsFloat(); f != math.Trunc(f) {
				return Value{}, fmt.Errorf("%w: %g is not an integer", ErrIncompatible, f)
			}
		}
	}
	adapted, err := Adapt(v, t)
	if err != nil {
		return Value{}, err
	}
	if err := t.Check(adapted); err != nil {
		return Value{}, err
	}
	return adapted, nil
}

// adaptScalar is the coercion table for depth-0 values.
func adaptScalar(v Value, target PropType) (Value, error) {
	from, to := v.Type.Kind, target.Kind
	switch {
	case to == KindAny:
		// Any keeps the concrete type so downstream nodes can still inspect it.
		return v, nil
	case from == to:
		return Value{Type: target, Data: v.Data}, nil
	case from == KindInt && to == KindNumber:
		return Value{Type: target, Data: float64(v.AsInt())}, nil
	case from == KindNumber && to == KindInt:
		return Value{Type: target, Data: int(math.Trunc(v.AsFloat()))}, nil
	case from == KindString && to == KindEnum, from == KindEnum && to == KindString:
		// Same payload; Check enforces the options.
		return Value{Type: target, Data: v.Data}, nil
	case from.IsSubKindOf(to):
		// Colour/Gradient into Fill, Shape into Element: same payload.
		return Value{Type: target, Data: v.Data}, nil
	default:
		return Value{}, fmt.Errorf("%w: cannot adapt %s to %s", ErrIncompatible, v.Type, target)
	}
}
