package proptype

import "errors"

var (
	// ErrIncompatible is returned when a value cannot be adapted to a type.
	ErrIncompatible = errors.New("incompatible property type")
	// ErrOutOfRange is returned when a numeric value violates a declared range.
	ErrOutOfRange = errors.New("value out of declared range")
	// ErrNotPersistable is returned for kinds that have no literal form.
	ErrNotPersistable = errors.New("property kind cannot be persisted")
)
