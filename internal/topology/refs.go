package topology

import (
	"maps"

	"github.com/specialistvlad/vecgraph/internal/nodeid"
)

// RefTable maps a destination node to the RefIDs it uses for the source
// ports feeding it.
type RefTable map[nodeid.NodeID]map[nodeid.PortID]nodeid.RefID

// Clone returns a deep copy of t.
func (t RefTable) Clone() RefTable {
	out := make(RefTable, len(t))
	for id, refs := range t {
		out[id] = maps.Clone(refs)
	}
	return out
}

// RefFor returns the RefID node uses for port, allocating one on first use.
func (g *Graph) RefFor(node nodeid.NodeID, port nodeid.PortID) nodeid.RefID {
	if ref, ok := g.portRefs[node][port]; ok {
		return ref
	}
	ref := nodeid.NewRefID()
	g.setRef(node, port, ref)
	return ref
}

// PortForRef resolves a RefID held by node back to the port it names.
func (g *Graph) PortForRef(node nodeid.NodeID, ref nodeid.RefID) (nodeid.PortID, bool) {
	for port, r := range g.portRefs[node] {
		if r == ref {
			return port, true
		}
	}
	return nodeid.PortID{}, false
}

// PortRefs returns a snapshot of the whole ref table.
func (g *Graph) PortRefs() RefTable {
	return g.portRefs.Clone()
}

// ExtendPortRefs merges t into the graph's table. Existing entries win. A
// zero RefID in t asks for a fresh ref for that port.
func (g *Graph) ExtendPortRefs(t RefTable) {
	for node, refs := range t {
		for port, ref := range refs {
			if _, ok := g.portRefs[node][port]; ok {
				continue
			}
			if ref.IsZero() {
				ref = nodeid.NewRefID()
			}
			g.setRef(node, port, ref)
		}
	}
}

func (g *Graph) setRef(node nodeid.NodeID, port nodeid.PortID, ref nodeid.RefID) {
	refs := g.portRefs[node]
	if refs == nil {
		refs = make(map[nodeid.PortID]nodeid.RefID)
		g.portRefs[node] = refs
	}
	refs[port] = ref
}
