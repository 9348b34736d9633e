package custom

import (
	"context"
	"fmt"
	"slices"

	"github.com/specialistvlad/vecgraph/internal/graph"
	"github.com/specialistvlad/vecgraph/internal/node"
	"github.com/specialistvlad/vecgraph/internal/nodeid"
)

// Promotion exposes an inner port on the custom node under Name.
type Promotion struct {
	Port nodeid.PortID
	Name string
}

// Key is the outer property key of the promotion.
func (p Promotion) Key() nodeid.PropKey { return nodeid.PropKey(p.Name) }

// Definition is a named, reusable subgraph.
type Definition struct {
	Name       string
	Graph      *graph.Manager
	Promotions []Promotion
	// Visualise names the inner node whose drawable the custom node shows.
	// Zero means the first element-valued promoted output is drawn.
	Visualise nodeid.NodeID
}

// Validate checks that every promotion names an existing, connectable inner
// port, that names are unique, and that promoted inputs are free inside the
// template.
func (d *Definition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("custom node definition has no name")
	}
	seen := make(map[string]bool)
	for _, p := range d.Promotions {
		if seen[p.Name] {
			return fmt.Errorf("definition %q: duplicate promotion name %q", d.Name, p.Name)
		}
		seen[p.Name] = true

		n, ok := d.Graph.Node(p.Port.Node)
		if !ok {
			return fmt.Errorf("definition %q: promotion %q: %w: %s", d.Name, p.Name, graph.ErrUnknownNode, p.Port.Node)
		}
		def, ok := n.PropDefs().Get(p.Port.Key)
		if !ok {
			return fmt.Errorf("definition %q: promotion %q: %w: %s", d.Name, p.Name, graph.ErrUnknownPort, p.Port)
		}
		if def.Status(p.Port.IsInput) == node.Forbidden {
			return fmt.Errorf("definition %q: promotion %q: %w: %s", d.Name, p.Name, graph.ErrPortForbidden, p.Port)
		}
		if p.Port.IsInput && len(d.Graph.Topology().IncomingToPort(p.Port)) > 0 {
			return fmt.Errorf("definition %q: promoted input %s is connected inside the template", d.Name, p.Port)
		}
	}
	if d.Visualise != 0 {
		if _, ok := d.Graph.Node(d.Visualise); !ok {
			return fmt.Errorf("definition %q: visualised node %w: %s", d.Name, graph.ErrUnknownNode, d.Visualise)
		}
	}
	return nil
}

// Capture builds a definition from the nodes ids of m. The nodes are copied
// with their ids, edges between them are kept, and every port an edge
// crosses the boundary through is promoted. The last node in topological
// order is visualised.
func Capture(ctx context.Context, m *graph.Manager, ids []nodeid.NodeID, name string) (*Definition, error) {
	ids = slices.Clone(ids)
	slices.Sort(ids)
	ids = slices.Compact(ids)
	if len(ids) == 0 {
		return nil, fmt.Errorf("capturing %q: no nodes selected", name)
	}

	tmpl := graph.New()
	for _, id := range ids {
		n, ok := m.Node(id)
		if !ok {
			return nil, fmt.Errorf("capturing %q: %w: %s", name, graph.ErrUnknownNode, id)
		}
		if err := tmpl.AddNode(ctx, id, n.Clone()); err != nil {
			return nil, err
		}
	}

	identity := make(map[nodeid.NodeID]nodeid.NodeID, len(ids))
	for _, id := range ids {
		identity[id] = id
	}
	sub, err := m.Topology().CopySubgraph(ids, identity)
	if err != nil {
		return nil, err
	}
	for _, e := range sub.Edges() {
		if err := tmpl.AddEdge(ctx, e); err != nil {
			return nil, fmt.Errorf("capturing %q: %w", name, err)
		}
	}
	tmpl.Topology().ExtendPortRefs(sub.PortRefs())

	def := &Definition{Name: name, Graph: tmpl}
	promoted := make(map[nodeid.PortID]bool)
	used := make(map[string]bool)
	promote := func(p nodeid.PortID) {
		if promoted[p] {
			return
		}
		promoted[p] = true
		label := string(p.Key)
		for i := 2; used[label]; i++ {
			label = fmt.Sprintf("%s_%d", p.Key, i)
		}
		used[label] = true
		def.Promotions = append(def.Promotions, Promotion{Port: p, Name: label})
	}
	for _, e := range m.Topology().Edges() {
		srcIn := slices.Contains(ids, e.Src.Node)
		dstIn := slices.Contains(ids, e.Dst.Node)
		switch {
		case dstIn && !srcIn:
			promote(e.Dst)
		case srcIn && !dstIn:
			promote(e.Src)
		}
	}

	order, err := tmpl.Topology().TopoOrder()
	if err != nil {
		return nil, err
	}
	def.Visualise = order[len(order)-1]
	return def, def.Validate()
}
