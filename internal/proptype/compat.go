package proptype

import (
	"fmt"
	"math"
	"slices"
)

// CompatibleWith reports whether a value of type src may flow into a slot
// declared as dst.
//
//   - base kinds: src must be dst or one of its subkinds; a src of kind Any is
//     accepted anywhere and checked by Adapt at runtime
//   - depth: a shallower src is always wrapped; a deeper src is flattened,
//     which only works when dst is itself a list
//   - numeric kinds: src's range must fit inside dst's range
//   - enums: src's options must be a subset of dst's options
func (src PropType) CompatibleWith(dst PropType) bool {
	if src.Kind != KindAny && !src.Kind.IsSubKindOf(dst.Kind) {
		return false
	}
	if src.Depth > dst.Depth && dst.Depth == 0 {
		return false
	}
	if src.Kind.IsNumeric() && dst.Kind.IsNumeric() {
		sl, sh := src.Bounds()
		dl, dh := dst.Bounds()
		if dl > sl || dh < sh {
			return false
		}
	}
	if src.Kind == KindEnum && dst.Kind == KindEnum && len(dst.Options) > 0 {
		for _, o := range src.Options {
			if !slices.Contains(dst.Options, o) {
				return false
			}
		}
	}
	return true
}

// Check validates a concrete value against t: kind, depth, numeric range and
// enum membership. Numbers passed to an int slot must be integral.
func (t PropType) Check(v Value) error {
	if v.Type.Depth != t.Depth {
		return fmt.Errorf("%w: got %s, want %s", ErrIncompatible, v.Type, t)
	}
	if t.IsList() {
		for i, it := range v.Items() {
			if err := t.Item().Check(it); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
		return nil
	}
	kind := v.Type.Kind
	switch {
	case kind.IsSubKindOf(t.Kind):
	case kind == KindNumber && t.Kind == KindInt:
		if f := v.AsFloat(); f != math.Trunc(f) {
			return fmt.Errorf("%w: %g is not an integer", ErrIncompatible, f)
		}
	default:
		return fmt.Errorf("%w: got %s, want %s", ErrIncompatible, v.Type, t)
	}
	if t.Kind.IsNumeric() {
		lo, hi := t.Bounds()
		if f := v.AsFloat(); f < lo || f > hi {
			return fmt.Errorf("%w: %g not in %s", ErrOutOfRange, f, t)
		}
	}
	if t.Kind == KindEnum && len(t.Options) > 0 && !slices.Contains(t.Options, v.AsString()) {
		return fmt.Errorf("%w: %q is not one of %v", ErrIncompatible, v.AsString(), t.Options)
	}
	return nil
}

// CommonAncestor returns the closest type every given type is a subkind of.
// Ranges and options are dropped. Types of different depths have no common
// list shape and yield a scalar Any, as does an empty argument list.
func CommonAncestor(types ...PropType) PropType {
	if len(types) == 0 {
		return Any()
	}
	depth := types[0].Depth
	for _, t := range types[1:] {
		if t.Depth != depth {
			return Any()
		}
	}
	for _, candidate := range types[0].Kind.Ancestors() {
		shared := true
		for _, t := range types[1:] {
			if !t.Kind.IsSubKindOf(candidate) {
				shared = false
				break
			}
		}
		if shared {
			return PropType{Kind: candidate, Depth: depth}
		}
	}
	return PropType{Kind: KindAny, Depth: depth}
}
