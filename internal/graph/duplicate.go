package graph

import (
	"context"
	"fmt"
	"slices"

	"github.com/specialistvlad/vecgraph/internal/ctxlog"
	"github.com/specialistvlad/vecgraph/internal/nodeid"
)

// Duplicate deep-copies the nodes in ids under fresh ids from alloc, copies
// the edges between them and merges their ref tables, so refs a copied node
// holds for its copied neighbours stay valid. It returns the id mapping.
// The copies are not computed.
func (m *Manager) Duplicate(ctx context.Context, ids []nodeid.NodeID, alloc func() nodeid.NodeID) (map[nodeid.NodeID]nodeid.NodeID, error) {
	ids = slices.Clone(ids)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	remap := make(map[nodeid.NodeID]nodeid.NodeID, len(ids))
	for _, id := range ids {
		if _, err := m.runtime(id); err != nil {
			return nil, err
		}
		remap[id] = alloc()
	}

	sub, err := m.topo.CopySubgraph(ids, remap)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if err := m.AddNode(ctx, remap[id], m.nodes[id].Node.Clone()); err != nil {
			return nil, fmt.Errorf("duplicating %s: %w", id, err)
		}
	}
	for _, e := range sub.Edges() {
		if err := m.topo.AddEdge(e); err != nil {
			return nil, fmt.Errorf("duplicating %s: %w", e, err)
		}
	}
	m.topo.ExtendPortRefs(sub.PortRefs())

	ctxlog.FromContext(ctx).Debug("Duplicated nodes.", "count", len(ids))
	return remap, nil
}
