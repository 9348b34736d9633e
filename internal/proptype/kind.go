package proptype

// Kind enumerates the scalar kinds a property can hold.
type Kind int

const (
	KindAny Kind = iota
	KindNumber
	KindInt
	KindBool
	KindString
	KindEnum
	KindFill
	KindColour
	KindGradient
	KindPoint
	KindElement
	KindShape
	KindFunction
	KindWarp
	KindGrid
)

// parents holds every subkind edge that is not directly under Any.
var parents = map[Kind]Kind{
	KindInt:      KindNumber,
	KindColour:   KindFill,
	KindGradient: KindFill,
	KindShape:    KindElement,
}

func (k Kind) String() string {
	switch k {
	case KindAny:
		return "any"
	case KindNumber:
		return "number"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindEnum:
		return "enum"
	case KindFill:
		return "fill"
	case KindColour:
		return "colour"
	case KindGradient:
		return "gradient"
	case KindPoint:
		return "point"
	case KindElement:
		return "element"
	case KindShape:
		return "shape"
	case KindFunction:
		return "function"
	case KindWarp:
		return "warp"
	case KindGrid:
		return "grid"
	default:
		return "unknown"
	}
}

// Parent returns the direct superkind. Any has none.
func (k Kind) Parent() (Kind, bool) {
	if k == KindAny {
		return KindAny, false
	}
	if p, ok := parents[k]; ok {
		return p, true
	}
	return KindAny, true
}

// Ancestors returns k followed by its superkinds, closest first, ending in Any.
func (k Kind) Ancestors() []Kind {
	chain := []Kind{k}
	for cur := k; ; {
		p, ok := cur.Parent()
		if !ok {
			return chain
		}
		chain = append(chain, p)
		cur = p
	}
}

// IsSubKindOf reports whether k is other or one of its descendants.
func (k Kind) IsSubKindOf(other Kind) bool {
	for _, a := range k.Ancestors() {
		if a == other {
			return true
		}
	}
	return false
}

// IsNumeric reports whether k carries a numeric range.
func (k Kind) IsNumeric() bool {
	return k == KindNumber || k == KindInt
}
