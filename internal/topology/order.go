package topology

import (
	"fmt"
	"maps"
	"slices"

	"github.com/specialistvlad/vecgraph/internal/nodeid"
)

// TopoOrder orders every node so that each comes after its predecessors.
func (g *Graph) TopoOrder() ([]nodeid.NodeID, error) {
	return g.TopoOrderSubgraph(g.Nodes())
}

// TopoOrderSubgraph orders the given nodes using only the edges between
// them. Ties are broken by ascending id, so the result is deterministic.
func (g *Graph) TopoOrderSubgraph(subset []nodeid.NodeID) ([]nodeid.NodeID, error) {
	in := make(map[nodeid.NodeID]int, len(subset))
	for _, id := range subset {
		if !g.HasNode(id) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownNode, id)
		}
		in[id] = 0
	}
	for id := range in {
		for src := range g.inputs[id] {
			if _, ok := in[src]; ok {
				in[id]++
			}
		}
	}

	var ready []nodeid.NodeID
	push := func(id nodeid.NodeID) {
		pos, _ := slices.BinarySearch(ready, id)
		ready = slices.Insert(ready, pos, id)
	}
	for id, deg := range in {
		if deg == 0 {
			push(id)
		}
	}

	order := make([]nodeid.NodeID, 0, len(in))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		order = append(order, id)
		for dst := range g.outputs[id] {
			if _, ok := in[dst]; !ok {
				continue
			}
			in[dst]--
			if in[dst] == 0 {
				push(dst)
			}
		}
	}

	if len(order) < len(in) {
		var stuck []string
		for _, id := range slices.Sorted(maps.Keys(in)) {
			if in[id] > 0 {
				stuck = append(stuck, id.String())
			}
		}
		return nil, fmt.Errorf("%w: involving %v", ErrCycle, stuck)
	}
	return order, nil
}

// Descendants returns ids together with every node reachable from them,
// ascending.
func (g *Graph) Descendants(ids ...nodeid.NodeID) []nodeid.NodeID {
	seen := make(map[nodeid.NodeID]struct{})
	stack := slices.Clone(ids)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := seen[id]; ok || !g.HasNode(id) {
			continue
		}
		seen[id] = struct{}{}
		for dst := range g.outputs[id] {
			stack = append(stack, dst)
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

// Reachable reports whether to can be reached from from by following edges.
// A node reaches itself. Adding an edge src -> dst creates a cycle exactly
// when Reachable(dst, src).
func (g *Graph) Reachable(from, to nodeid.NodeID) bool {
	return slices.Contains(g.Descendants(from), to)
}
