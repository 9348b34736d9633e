package graph

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/specialistvlad/vecgraph/internal/ctxlog"
	"github.com/specialistvlad/vecgraph/internal/node"
	"github.com/specialistvlad/vecgraph/internal/nodeid"
	"github.com/specialistvlad/vecgraph/internal/proptype"
	"github.com/specialistvlad/vecgraph/internal/topology"
)

// Manager owns the nodes of one graph and their topology. It is not safe
// for concurrent use.
type Manager struct {
	nodes map[nodeid.NodeID]*RuntimeNode
	topo  *topology.Graph
}

var _ Graph = (*Manager)(nil)

// New creates an empty Manager.
func New() *Manager {
	return &Manager{
		nodes: make(map[nodeid.NodeID]*RuntimeNode),
		topo:  topology.New(),
	}
}

// Topology exposes the structural view. Callers must not mutate it directly.
func (m *Manager) Topology() *topology.Graph { return m.topo }

// Nodes returns every node id in ascending order.
func (m *Manager) Nodes() []nodeid.NodeID {
	return slices.Sorted(maps.Keys(m.nodes))
}

// Node returns the node implementation for id.
func (m *Manager) Node(id nodeid.NodeID) (node.Node, bool) {
	rn, ok := m.nodes[id]
	if !ok {
		return nil, false
	}
	return rn.Node, true
}

// Runtime returns the runtime record for id.
func (m *Manager) Runtime(id nodeid.NodeID) (*RuntimeNode, bool) {
	rn, ok := m.nodes[id]
	return rn, ok
}

func (m *Manager) runtime(id nodeid.NodeID) (*RuntimeNode, error) {
	rn, ok := m.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}
	return rn, nil
}

// AddNode inserts n under id.
func (m *Manager) AddNode(ctx context.Context, id nodeid.NodeID, n node.Node) error {
	if err := m.topo.AddNode(id); err != nil {
		return err
	}
	m.nodes[id] = newRuntimeNode(n)
	ctxlog.FromContext(ctx).Debug("Added node.", "node", id.String(), "type", n.Info().Type)
	return nil
}

// RemoveNode detaches every edge of id and then removes it.
func (m *Manager) RemoveNode(ctx context.Context, id nodeid.NodeID) error {
	if _, err := m.runtime(id); err != nil {
		return err
	}
	edges := append(m.topo.IncomingEdges(id), m.topo.OutgoingEdges(id)...)
	for _, e := range edges {
		if err := m.RemoveEdge(ctx, e); err != nil {
			return fmt.Errorf("detaching %s: %w", id, err)
		}
	}
	if err := m.topo.RemoveNode(id); err != nil {
		return err
	}
	delete(m.nodes, id)
	ctxlog.FromContext(ctx).Debug("Removed node.", "node", id.String())
	return nil
}

// AddEdge validates and inserts e. The source must be an output port and
// the destination an input port, both defined and not forbidden in that
// direction; a single-edge input must be free; the types must be compatible;
// and the edge must not close a cycle.
func (m *Manager) AddEdge(ctx context.Context, e nodeid.EdgeID) error {
	if !e.Valid() {
		return fmt.Errorf("%w: %s", topology.ErrInvalidEdge, e)
	}
	srcDef, err := m.portDef(e.Src)
	if err != nil {
		return err
	}
	dstDef, err := m.portDef(e.Dst)
	if err != nil {
		return err
	}
	if !dstDef.Multiple && len(m.topo.IncomingToPort(e.Dst)) > 0 {
		return fmt.Errorf("%w: %s", ErrPortOccupied, e.Dst)
	}
	if !srcDef.Type.CompatibleWith(dstDef.Type) {
		return fmt.Errorf("%w: %s (%s) cannot feed %s (%s)",
			proptype.ErrIncompatible, e.Src, srcDef.Type, e.Dst, dstDef.Type)
	}
	if m.topo.Reachable(e.Dst.Node, e.Src.Node) {
		ctxlog.FromContext(ctx).Debug("Rejected edge closing a cycle.", "edge", e.String())
		return fmt.Errorf("%w: adding %s", topology.ErrCycle, e)
	}
	if err := m.topo.AddEdge(e); err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Debug("Added edge.", "edge", e.String())
	return nil
}

// portDef returns the definition behind p after checking p's direction is
// allowed.
func (m *Manager) portDef(p nodeid.PortID) (node.PropDef, error) {
	rn, err := m.runtime(p.Node)
	if err != nil {
		return node.PropDef{}, err
	}
	d, ok := rn.Node.PropDefs().Get(p.Key)
	if !ok {
		return node.PropDef{}, fmt.Errorf("%w: %s", ErrUnknownPort, p)
	}
	if d.Status(p.IsInput) == node.Forbidden {
		return node.PropDef{}, fmt.Errorf("%w: %s", ErrPortForbidden, p)
	}
	return d, nil
}

// RemoveEdge deletes e.
func (m *Manager) RemoveEdge(ctx context.Context, e nodeid.EdgeID) error {
	if err := m.topo.RemoveEdge(e); err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Debug("Removed edge.", "edge", e.String())
	return nil
}

// dropEdgesFrom removes every edge leaving an output port.
func (m *Manager) dropEdgesFrom(ctx context.Context, p nodeid.PortID) {
	for _, e := range m.topo.OutgoingFromPort(p) {
		if err := m.topo.RemoveEdge(e); err == nil {
			ctxlog.FromContext(ctx).Warn("Dropped edge from removed port.", "edge", e.String(), "port", p.String())
		}
	}
}

// dropInvalidEdges removes edges of id whose ports are no longer defined,
// allowed or type compatible. It is used after a node's definitions change.
func (m *Manager) dropInvalidEdges(ctx context.Context, id nodeid.NodeID) {
	edges := append(m.topo.IncomingEdges(id), m.topo.OutgoingEdges(id)...)
	for _, e := range edges {
		srcDef, errSrc := m.portDef(e.Src)
		dstDef, errDst := m.portDef(e.Dst)
		if err := errors.Join(errSrc, errDst); err == nil && srcDef.Type.CompatibleWith(dstDef.Type) {
			continue
		}
		if err := m.topo.RemoveEdge(e); err == nil {
			ctxlog.FromContext(ctx).Warn("Dropped edge after property change.", "edge", e.String())
		}
	}
}

// InternalProperty returns the stored or default value of a property.
func (m *Manager) InternalProperty(id nodeid.NodeID, key nodeid.PropKey) (proptype.Value, bool) {
	rn, ok := m.nodes[id]
	if !ok {
		return proptype.Value{}, false
	}
	return rn.Node.InternalProp(key)
}

// SetInternalProperty adapts v to the property's type, checks its range and
// stores it. The node is not recomputed.
func (m *Manager) SetInternalProperty(ctx context.Context, id nodeid.NodeID, key nodeid.PropKey, v proptype.Value) error {
	rn, err := m.runtime(id)
	if err != nil {
		return err
	}
	if err := rn.Node.SetInternalProp(key, v); err != nil {
		return fmt.Errorf("%s: %w", id, err)
	}
	ctxlog.FromContext(ctx).Debug("Set internal property.", "node", id.String(), "port", string(key), "value", v.String())
	return nil
}

// Clone returns a detached deep copy of the manager, nodes, cached results
// and topology included.
func (m *Manager) Clone() *Manager {
	c := &Manager{
		nodes: make(map[nodeid.NodeID]*RuntimeNode, len(m.nodes)),
		topo:  m.topo.Clone(),
	}
	for id, rn := range m.nodes {
		c.nodes[id] = rn.clone()
	}
	return c
}
