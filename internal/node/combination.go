package node

import (
	"context"
	"fmt"

	"github.com/specialistvlad/vecgraph/internal/nodeid"
	"github.com/specialistvlad/vecgraph/internal/proptype"
	"github.com/specialistvlad/vecgraph/internal/vector"
)

// Variant is one implementation a Combination can switch to.
type Variant struct {
	Name string
	New  func() Node
}

// Combination is a node that presents one of several implementations,
// chosen by index. Everything except Info forwards to the active variant.
type Combination struct {
	info     Info
	variants []Variant
	selected int
	active   Node
}

// NewCombination builds a combination with the first variant selected.
func NewCombination(info Info, variants ...Variant) *Combination {
	if len(variants) == 0 {
		panic("node: combination needs at least one variant")
	}
	return &Combination{
		info:     info,
		variants: variants,
		active:   variants[0].New(),
	}
}

// Variants returns the variant names in selection order.
func (c *Combination) Variants() []string {
	names := make([]string, len(c.variants))
	for i, v := range c.variants {
		names[i] = v.Name
	}
	return names
}

// Selection returns the active variant's index.
func (c *Combination) Selection() int { return c.selected }

// SetSelection switches to variant i. Internal properties whose key exists
// in both variants are carried over when they adapt to the new type.
func (c *Combination) SetSelection(i int) error {
	if i < 0 || i >= len(c.variants) {
		return fmt.Errorf("selection %d out of range [0,%d)", i, len(c.variants))
	}
	if i == c.selected {
		return nil
	}
	next := c.variants[i].New()
	for key, v := range c.active.StoredProps() {
		if !next.PropDefs().Has(key) {
			continue
		}
		// A value that no longer fits keeps the new variant's default.
		_ = next.SetInternalProp(key, v)
	}
	c.selected = i
	c.active = next
	return nil
}

// Unwrap returns the active variant.
func (c *Combination) Unwrap() Node { return c.active }

func (c *Combination) Info() Info { return c.info }

func (c *Combination) PropDefs() *PropDefs { return c.active.PropDefs() }

func (c *Combination) InternalProp(key nodeid.PropKey) (proptype.Value, bool) {
	return c.active.InternalProp(key)
}

func (c *Combination) SetInternalProp(key nodeid.PropKey, v proptype.Value) error {
	return c.active.SetInternalProp(key, v)
}

func (c *Combination) StoredProps() map[nodeid.PropKey]proptype.Value {
	return c.active.StoredProps()
}

func (c *Combination) Compute(ctx context.Context, props Props, refs Refs, q RefQuerier) (Results, error) {
	return c.active.Compute(ctx, props, refs, q)
}

func (c *Combination) Visualise(results Results) *vector.Element {
	return c.active.Visualise(results)
}

func (c *Combination) Clone() Node {
	return &Combination{
		info:     c.info,
		variants: c.variants,
		selected: c.selected,
		active:   c.active.Clone(),
	}
}
