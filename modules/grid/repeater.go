package grid

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/specialistvlad/vecgraph/internal/node"
	"github.com/specialistvlad/vecgraph/internal/nodeid"
	"github.com/specialistvlad/vecgraph/internal/proptype"
	"github.com/specialistvlad/vecgraph/internal/vector"
)

const (
	elementKey = "element"
	// extractedKey stores the extracted cells as "<port>@<index>" entries so
	// that they survive cloning and persistence.
	extractedKey = "extracted"
)

// Repeater places its elements in the cells of a grid, cycling through them
// in row-major order. Individual cells can be extracted into ports named
// cell_<row>_<col>; a port is pruned once its cell index falls outside the
// grid.
type Repeater struct {
	node.Base
}

var _ node.Selectable = (*Repeater)(nil)

// NewRepeater returns a shape repeater with no extracted cells.
func NewRepeater() *Repeater {
	return &Repeater{Base: node.NewBase(
		node.Info{Type: "shape_repeater", Name: "Shape Repeater", Category: "layout", Description: "Repeats elements across a grid."},
		node.Def("grid", node.In(proptype.Grid()).Named("Grid")),
		node.Def("elements", node.In(proptype.List(proptype.Element())).Multi().Named("Elements")),
		node.Def(elementKey, node.Out(proptype.Element())),
		node.Def(extractedKey, node.Internal(proptype.List(proptype.String()), proptype.ListVal(proptype.String()))),
	)}
}

func (n *Repeater) Compute(_ context.Context, props node.Props, _ node.Refs, _ node.RefQuerier) (node.Results, error) {
	n.forgetPruned()

	gv, err := props.Require("grid")
	if err != nil {
		return nil, err
	}
	g := gv.AsGrid()
	items := props.Items("elements")

	var children []*vector.Element
	if len(items) > 0 {
		children = make([]*vector.Element, g.Len())
		for i := range children {
			row, col := g.Cell(i)
			children[i] = items[i%len(items)].AsElement().WithTransform(g.CellTransform(row, col))
		}
	}
	return node.Results{elementKey: proptype.ElementVal(vector.Group(children...))}, nil
}

func (n *Repeater) Clone() node.Node { return &Repeater{Base: n.CloneBase()} }

func (n *Repeater) SetInternalProp(key nodeid.PropKey, v proptype.Value) error {
	if err := n.Base.SetInternalProp(key, v); err != nil {
		return err
	}
	if key == extractedKey {
		return n.syncDefs()
	}
	return nil
}

func (n *Repeater) ExtractElement(props node.Props, parent *vector.Element, elementID string) (nodeid.PropKey, error) {
	if parent == nil {
		return "", node.Invalid("nothing to extract from before the repeater has computed")
	}
	idx := parent.IndexOfChild(elementID)
	if idx < 0 {
		return "", node.Invalid("element %s is not a cell of this repeater", elementID)
	}
	gv, err := props.Require("grid")
	if err != nil {
		return "", err
	}

	cells := n.cells()
	row, col := gv.AsGrid().Cell(idx)
	key := nodeid.PropKey(fmt.Sprintf("cell_%d_%d", row, col))
	if i, taken := cells[key]; taken {
		if i == idx {
			return key, nil
		}
		key = nodeid.PropKey(fmt.Sprintf("cell_%d", idx))
		if _, taken := cells[key]; taken {
			return key, nil
		}
	}
	cells[key] = idx
	if err := n.storeCells(cells); err != nil {
		return "", err
	}
	return key, n.syncDefs()
}

func (n *Repeater) IsPortRedundant(props node.Props, key nodeid.PropKey) bool {
	idx, ok := n.cells()[key]
	if !ok {
		return true
	}
	gv, gridOK := props.Get("grid")
	ev, elemsOK := props.Get("elements")
	if !gridOK || !elemsOK {
		// Keep ports while an input is only temporarily missing.
		return false
	}
	return ev.Len() == 0 || idx >= gv.AsGrid().Len()
}

func (n *Repeater) ExtractedValue(results node.Results, key nodeid.PropKey) (proptype.Value, bool) {
	idx, ok := n.cells()[key]
	if !ok {
		return proptype.Value{}, false
	}
	v, ok := results[elementKey]
	if !ok {
		return proptype.Value{}, false
	}
	children := v.AsElement().Children
	if idx >= len(children) {
		return proptype.Value{}, false
	}
	return proptype.ElementVal(children[idx]), true
}

// cells decodes the extracted property into port key -> cell index.
func (n *Repeater) cells() map[nodeid.PropKey]int {
	out := make(map[nodeid.PropKey]int)
	v, ok := n.InternalProp(extractedKey)
	if !ok {
		return out
	}
	for _, it := range v.Items() {
		key, idx, ok := strings.Cut(it.AsString(), "@")
		if !ok {
			continue
		}
		i, err := strconv.Atoi(idx)
		if err != nil || i < 0 {
			continue
		}
		out[nodeid.PropKey(key)] = i
	}
	return out
}

func (n *Repeater) storeCells(cells map[nodeid.PropKey]int) error {
	keys := slices.Sorted(maps.Keys(cells))
	items := make([]proptype.Value, len(keys))
	for i, k := range keys {
		items[i] = proptype.StringVal(string(k) + "@" + strconv.Itoa(cells[k]))
	}
	return n.Base.SetInternalProp(extractedKey, proptype.ListVal(proptype.String(), items...))
}

// syncDefs makes the extracted port definitions match the stored cells.
func (n *Repeater) syncDefs() error {
	cells := n.cells()
	defs := n.PropDefs()
	for _, key := range defs.Extracted() {
		if _, ok := cells[key]; !ok {
			defs.Remove(key)
		}
	}
	for _, key := range slices.Sorted(maps.Keys(cells)) {
		if defs.Has(key) {
			if d, _ := defs.Get(key); !d.Extracted {
				return fmt.Errorf("extracted cell %q clashes with a property", key)
			}
			continue
		}
		defs.Set(key, node.ExtractedDef(proptype.Element(), strings.ReplaceAll(string(key), "_", " ")))
	}
	return nil
}

// forgetPruned drops stored cells whose port definition was removed.
func (n *Repeater) forgetPruned() {
	cells := n.cells()
	changed := false
	for key := range cells {
		if !n.PropDefs().Has(key) {
			delete(cells, key)
			changed = true
		}
	}
	if changed {
		_ = n.storeCells(cells)
	}
}
