package session

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/specialistvlad/vecgraph/internal/ctxlog"
	"github.com/specialistvlad/vecgraph/internal/custom"
	"github.com/specialistvlad/vecgraph/internal/graph"
	"github.com/specialistvlad/vecgraph/internal/node"
	"github.com/specialistvlad/vecgraph/internal/nodeid"
	"github.com/specialistvlad/vecgraph/internal/proptype"
	"github.com/zclconf/go-cty/cty"
)

// Save writes the session as HCL. Custom definitions are written first so
// that the nodes using them can be rebuilt on load.
func (s *Session) Save(ctx context.Context, w io.Writer) error {
	f := hclwrite.NewEmptyFile()
	body := f.Body()
	body.SetAttributeValue("version", cty.NumberIntVal(Version))
	body.SetAttributeValue("next_id", cty.NumberUIntVal(uint64(s.nextID)))

	view := body.AppendNewBlock("view", nil).Body()
	view.SetAttributeValue("x", cty.NumberFloatVal(s.View.X))
	view.SetAttributeValue("y", cty.NumberFloatVal(s.View.Y))
	view.SetAttributeValue("zoom", cty.NumberFloatVal(s.View.Zoom))

	for _, def := range s.Registry.Definitions() {
		body.AppendNewline()
		cb := body.AppendNewBlock("custom_node", []string{def.Name}).Body()
		if def.Visualise != 0 {
			cb.SetAttributeValue("visualise", cty.StringVal(def.Visualise.String()))
		}
		if err := writeGraph(ctx, cb, def.Graph); err != nil {
			return fmt.Errorf("custom node %q: %w", def.Name, err)
		}
		for _, p := range def.Promotions {
			pb := cb.AppendNewBlock("promote", nil).Body()
			pb.SetAttributeValue("port", cty.StringVal(p.Port.String()))
			pb.SetAttributeValue("name", cty.StringVal(p.Name))
		}
	}

	if err := writeGraph(ctx, body, s.Manager); err != nil {
		return err
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	ctxlog.FromContext(ctx).Debug("Saved session.", "nodes", len(s.Manager.Nodes()), "definitions", len(s.Registry.Definitions()))
	return nil
}

// SaveFile writes the session to path.
func (s *Session) SaveFile(ctx context.Context, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create session file %s: %w", path, err)
	}
	if err := s.Save(ctx, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// writeGraph appends node, edge and ref blocks for m.
func writeGraph(ctx context.Context, body *hclwrite.Body, m *graph.Manager) error {
	for _, id := range m.Nodes() {
		n, _ := m.Node(id)
		body.AppendNewline()
		if err := writeNode(ctx, body.AppendNewBlock("node", []string{id.String()}).Body(), id, n); err != nil {
			return err
		}
	}

	topo := m.Topology()
	for _, e := range topo.Edges() {
		eb := body.AppendNewBlock("edge", nil).Body()
		eb.SetAttributeValue("from", cty.StringVal(e.Src.String()))
		eb.SetAttributeValue("to", cty.StringVal(e.Dst.String()))
	}

	refs := topo.PortRefs()
	for _, id := range slices.Sorted(maps.Keys(refs)) {
		ports := slices.SortedFunc(maps.Keys(refs[id]), func(a, b nodeid.PortID) int {
			return cmp.Compare(a.String(), b.String())
		})
		for _, port := range ports {
			rb := body.AppendNewBlock("ref", nil).Body()
			rb.SetAttributeValue("node", cty.StringVal(id.String()))
			rb.SetAttributeValue("port", cty.StringVal(port.String()))
			rb.SetAttributeValue("id", cty.StringVal(refs[id][port].String()))
		}
	}
	return nil
}

func writeNode(ctx context.Context, nb *hclwrite.Body, id nodeid.NodeID, n node.Node) error {
	nb.SetAttributeValue("type", cty.StringVal(n.Info().Type))
	if c, ok := n.(*node.Combination); ok {
		nb.SetAttributeValue("selection", cty.NumberIntVal(int64(c.Selection())))
	}
	if c, ok := node.As[*custom.Node](n); ok {
		nb.SetAttributeValue("custom", cty.StringVal(c.Definition().Name))
	}

	stored := n.StoredProps()
	if len(stored) == 0 {
		return nil
	}
	pb := nb.AppendNewBlock("props", nil).Body()
	for _, key := range slices.Sorted(maps.Keys(stored)) {
		v := stored[key]
		if !v.Type.Persistable() {
			ctxlog.FromContext(ctx).Warn("Skipping property that cannot be saved.", "node", id.String(), "property", string(key), "type", v.Type.String())
			continue
		}
		cv, err := proptype.ToCty(v)
		if err != nil {
			return fmt.Errorf("%s property %q: %w", id, key, err)
		}
		pb.SetAttributeValue(string(key), cv)
	}
	return nil
}
