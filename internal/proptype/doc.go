// Package proptype is the type system for node properties.
//
// A PropType is a closed tag (Kind) plus a list depth, an optional numeric
// range and optional enum options. The subkind relation is a small table
// rather than a class hierarchy:
//
//	Int      ⊂ Number
//	Colour   ⊂ Fill
//	Gradient ⊂ Fill
//	Shape    ⊂ Element
//	(every kind) ⊂ Any
//
// CompatibleWith decides whether an edge may carry a value of one type into a
// slot of another; Adapt performs the matching coercion at runtime, and is the
// only place coercion happens.
package proptype
