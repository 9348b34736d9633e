package topology

import (
	"fmt"
	"maps"
	"slices"

	"github.com/specialistvlad/vecgraph/internal/nodeid"
)

// Graph is the node and edge bookkeeping of one node manager.
type Graph struct {
	nodes   map[nodeid.NodeID]struct{}
	edges   []nodeid.EdgeID
	edgeSet map[nodeid.EdgeID]struct{}
	// inputs[dst][src] and outputs[src][dst] count parallel edges.
	inputs   map[nodeid.NodeID]map[nodeid.NodeID]int
	outputs  map[nodeid.NodeID]map[nodeid.NodeID]int
	portRefs RefTable
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[nodeid.NodeID]struct{}),
		edgeSet:  make(map[nodeid.EdgeID]struct{}),
		inputs:   make(map[nodeid.NodeID]map[nodeid.NodeID]int),
		outputs:  make(map[nodeid.NodeID]map[nodeid.NodeID]int),
		portRefs: make(RefTable),
	}
}

// AddNode registers id.
func (g *Graph) AddNode(id nodeid.NodeID) error {
	if _, ok := g.nodes[id]; ok {
		return fmt.Errorf("%w: %s", ErrNodeExists, id)
	}
	g.nodes[id] = struct{}{}
	return nil
}

// RemoveNode unregisters id and drops its ref table. All of the node's edges
// must have been removed first.
func (g *Graph) RemoveNode(id nodeid.NodeID) error {
	if _, ok := g.nodes[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}
	if len(g.inputs[id]) > 0 || len(g.outputs[id]) > 0 {
		return fmt.Errorf("%w: %s", ErrNodeHasEdges, id)
	}
	delete(g.nodes, id)
	delete(g.inputs, id)
	delete(g.outputs, id)
	delete(g.portRefs, id)
	return nil
}

// HasNode reports whether id is present.
func (g *Graph) HasNode(id nodeid.NodeID) bool {
	_, ok := g.nodes[id]
	return ok
}

// Nodes returns every node id in ascending order.
func (g *Graph) Nodes() []nodeid.NodeID {
	return slices.Sorted(maps.Keys(g.nodes))
}

// AddEdge inserts e. It does not check for cycles; see Reachable.
func (g *Graph) AddEdge(e nodeid.EdgeID) error {
	if !e.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidEdge, e)
	}
	for _, id := range []nodeid.NodeID{e.Src.Node, e.Dst.Node} {
		if !g.HasNode(id) {
			return fmt.Errorf("%w: %s in edge %s", ErrUnknownNode, id, e)
		}
	}
	if g.HasEdge(e) {
		return fmt.Errorf("%w: %s", ErrEdgeExists, e)
	}

	g.edges = append(g.edges, e)
	g.edgeSet[e] = struct{}{}
	bump(g.inputs, e.Dst.Node, e.Src.Node, 1)
	bump(g.outputs, e.Src.Node, e.Dst.Node, 1)
	return nil
}

// RemoveEdge deletes e. When no other edge from the same source port reaches
// the destination node, the destination's ref for that port is evicted.
func (g *Graph) RemoveEdge(e nodeid.EdgeID) error {
	if !g.HasEdge(e) {
		return fmt.Errorf("%w: %s", ErrUnknownEdge, e)
	}
	delete(g.edgeSet, e)
	g.edges = slices.DeleteFunc(g.edges, func(x nodeid.EdgeID) bool { return x == e })
	bump(g.inputs, e.Dst.Node, e.Src.Node, -1)
	bump(g.outputs, e.Src.Node, e.Dst.Node, -1)

	stillFed := slices.ContainsFunc(g.edges, func(x nodeid.EdgeID) bool {
		return x.Src == e.Src && x.Dst.Node == e.Dst.Node
	})
	if !stillFed {
		if refs := g.portRefs[e.Dst.Node]; refs != nil {
			delete(refs, e.Src)
			if len(refs) == 0 {
				delete(g.portRefs, e.Dst.Node)
			}
		}
	}
	return nil
}

// bump adjusts adj[a][b] by delta and removes entries that reach zero.
func bump(adj map[nodeid.NodeID]map[nodeid.NodeID]int, a, b nodeid.NodeID, delta int) {
	inner := adj[a]
	if inner == nil {
		inner = make(map[nodeid.NodeID]int)
		adj[a] = inner
	}
	inner[b] += delta
	if inner[b] <= 0 {
		delete(inner, b)
	}
	if len(inner) == 0 {
		delete(adj, a)
	}
}

// HasEdge reports whether e is present.
func (g *Graph) HasEdge(e nodeid.EdgeID) bool {
	_, ok := g.edgeSet[e]
	return ok
}

// Edges returns every edge in insertion order.
func (g *Graph) Edges() []nodeid.EdgeID {
	return slices.Clone(g.edges)
}

func (g *Graph) filterEdges(keep func(nodeid.EdgeID) bool) []nodeid.EdgeID {
	var out []nodeid.EdgeID
	for _, e := range g.edges {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// IncomingEdges returns the edges ending at id, in insertion order.
func (g *Graph) IncomingEdges(id nodeid.NodeID) []nodeid.EdgeID {
	return g.filterEdges(func(e nodeid.EdgeID) bool { return e.Dst.Node == id })
}

// OutgoingEdges returns the edges starting at id, in insertion order.
func (g *Graph) OutgoingEdges(id nodeid.NodeID) []nodeid.EdgeID {
	return g.filterEdges(func(e nodeid.EdgeID) bool { return e.Src.Node == id })
}

// IncomingToPort returns the edges into an input port, in insertion order.
func (g *Graph) IncomingToPort(p nodeid.PortID) []nodeid.EdgeID {
	return g.filterEdges(func(e nodeid.EdgeID) bool { return e.Dst == p })
}

// OutgoingFromPort returns the edges out of an output port, in insertion order.
func (g *Graph) OutgoingFromPort(p nodeid.PortID) []nodeid.EdgeID {
	return g.filterEdges(func(e nodeid.EdgeID) bool { return e.Src == p })
}

// Predecessors returns the distinct nodes with an edge into id, ascending.
func (g *Graph) Predecessors(id nodeid.NodeID) []nodeid.NodeID {
	return slices.Sorted(maps.Keys(g.inputs[id]))
}

// Successors returns the distinct nodes id has an edge into, ascending.
func (g *Graph) Successors(id nodeid.NodeID) []nodeid.NodeID {
	return slices.Sorted(maps.Keys(g.outputs[id]))
}

// Clone returns a deep copy. RefIDs are kept.
func (g *Graph) Clone() *Graph {
	c := New()
	maps.Copy(c.nodes, g.nodes)
	c.edges = slices.Clone(g.edges)
	maps.Copy(c.edgeSet, g.edgeSet)
	for k, inner := range g.inputs {
		c.inputs[k] = maps.Clone(inner)
	}
	for k, inner := range g.outputs {
		c.outputs[k] = maps.Clone(inner)
	}
	c.portRefs = g.PortRefs()
	return c
}

// CopySubgraph returns the subgraph induced by ids with every node renamed
// through remap. Edges between two copied nodes are copied. Each copied
// node keeps its RefIDs for ports on other copied nodes, so values held by
// the node that mention a RefID stay meaningful in the copy. Refs to ports
// outside the subgraph are dropped along with their edges.
func (g *Graph) CopySubgraph(ids []nodeid.NodeID, remap map[nodeid.NodeID]nodeid.NodeID) (*Graph, error) {
	c := New()
	for _, id := range ids {
		if !g.HasNode(id) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownNode, id)
		}
		to, ok := remap[id]
		if !ok {
			return nil, fmt.Errorf("no remapped id for %s", id)
		}
		if err := c.AddNode(to); err != nil {
			return nil, err
		}
	}

	movePort := func(p nodeid.PortID) (nodeid.PortID, bool) {
		to, ok := remap[p.Node]
		if !ok || !g.HasNode(p.Node) || !slices.Contains(ids, p.Node) {
			return p, false
		}
		p.Node = to
		return p, true
	}

	for _, e := range g.edges {
		src, okSrc := movePort(e.Src)
		dst, okDst := movePort(e.Dst)
		if !okSrc || !okDst {
			continue
		}
		if err := c.AddEdge(nodeid.EdgeID{Src: src, Dst: dst}); err != nil {
			return nil, err
		}
	}

	for _, id := range ids {
		for port, ref := range g.portRefs[id] {
			moved, ok := movePort(port)
			if !ok {
				continue
			}
			c.setRef(remap[id], moved, ref)
		}
	}
	return c, nil
}
