package graph

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/vecgraph/internal/ctxlog"
	"github.com/specialistvlad/vecgraph/internal/node"
	"github.com/specialistvlad/vecgraph/internal/nodeid"
	"github.com/specialistvlad/vecgraph/internal/proptype"
)

// ResolveProperty reads the cached value of an output port and adapts it to
// expected. It reports false, with no error, when the source node has no
// cached value for the port.
func (m *Manager) ResolveProperty(src nodeid.PortID, expected proptype.PropType) (proptype.Value, bool, error) {
	rn, err := m.runtime(src.Node)
	if err != nil {
		return proptype.Value{}, false, err
	}
	v, ok := rn.results[src.Key]
	if !ok {
		return proptype.Value{}, false, nil
	}
	adapted, err := proptype.Adapt(v, expected)
	if err != nil {
		return proptype.Value{}, false, fmt.Errorf("resolving %s: %w", src, err)
	}
	return adapted, true, nil
}

// gather resolves every non output-only property of id. Connected inputs
// take their value from upstream, the rest fall back to the internal value.
func (m *Manager) gather(id nodeid.NodeID, n node.Node) (node.Props, node.Refs, error) {
	props := node.Props{}
	refs := node.Refs{}
	for _, entry := range n.PropDefs().Entries() {
		key, d := entry.Key, entry.Def
		if d.IsOutputOnly() {
			continue
		}
		if d.Input != node.Forbidden {
			edges := m.topo.IncomingToPort(nodeid.In(id, key))
			if len(edges) > 0 {
				in, err := m.resolveEdges(id, d, edges, refs, key)
				if err != nil {
					return nil, nil, err
				}
				props[key] = in
				continue
			}
		}
		if v, ok := n.InternalProp(key); ok {
			props[key] = node.Input{Status: node.Present, Value: v}
		} else {
			props[key] = node.Input{Status: node.Unconnected}
		}
	}
	return props, refs, nil
}

// resolveEdges resolves the edges into one input port in insertion order.
// A Multiple list input concatenates the adapted lists; anything else takes
// the first edge. A value that fails to adapt is a validation error, since
// an Any-typed source is only checked at runtime.
func (m *Manager) resolveEdges(id nodeid.NodeID, d node.PropDef, edges []nodeid.EdgeID, refs node.Refs, key nodeid.PropKey) (node.Input, error) {
	for _, e := range edges {
		refs[key] = append(refs[key], m.topo.RefFor(id, e.Src))
	}

	if !d.Multiple || !d.Type.IsList() {
		v, ok, err := m.ResolveProperty(edges[0].Src, d.Type)
		if err != nil {
			return node.Input{}, node.Invalid("input %q: %v", key, err)
		}
		if !ok {
			return node.Input{Status: node.Pending}, nil
		}
		return node.Input{Status: node.Present, Value: v}, nil
	}

	items := []proptype.Value{}
	for _, e := range edges {
		v, ok, err := m.ResolveProperty(e.Src, d.Type)
		if err != nil {
			return node.Input{}, node.Invalid("input %q: %v", key, err)
		}
		if !ok {
			return node.Input{Status: node.Pending}, nil
		}
		items = append(items, v.Items()...)
	}
	return node.Input{Status: node.Present, Value: proptype.Value{Type: d.Type, Data: items}}, nil
}

// missingInput returns a validation error for the first compulsory input that
// has no value.
func missingInput(n node.Node, props node.Props) error {
	for _, key := range n.PropDefs().Inputs() {
		d, _ := n.PropDefs().Get(key)
		if d.Input != node.Compulsory {
			continue
		}
		if _, err := props.Require(key); err != nil {
			return err
		}
	}
	return nil
}

// Compute recomputes one node from the cached values of its inputs. On
// success the results replace the cache. On failure the cache is kept and the
// error is recorded; validation errors are stamped with id.
func (m *Manager) Compute(ctx context.Context, id nodeid.NodeID) error {
	rn, err := m.runtime(id)
	if err != nil {
		return err
	}
	logger := ctxlog.FromContext(ctx).With("node", id.String())

	props, refs, err := m.gather(id, rn.Node)
	if err == nil {
		err = missingInput(rn.Node, props)
	}
	var results node.Results
	if err == nil {
		results, err = m.run(ctx, id, rn.Node, props, refs)
	}
	if err == nil {
		err = results.Check(rn.Node.PropDefs())
	}
	if err != nil {
		var ve *node.ValidationError
		if errors.As(err, &ve) && ve.Node == 0 {
			ve.Node = id
		}
		rn.fail(err)
		logger.Info("Node compute failed.", "error", err)
		return err
	}

	rn.succeed(results)
	logger.Debug("Computed node.", "outputs", len(results))
	return nil
}

// run calls the node's compute, going through FinalCompute for selectable
// nodes and dropping the edges of any extracted port it prunes.
func (m *Manager) run(ctx context.Context, id nodeid.NodeID, n node.Node, props node.Props, refs node.Refs) (node.Results, error) {
	q := querier{m: m, id: id}
	s, ok := node.As[node.Selectable](n)
	if !ok {
		results, err := n.Compute(ctx, props, refs, q)
		if results == nil && err == nil {
			results = node.Results{}
		}
		return results, err
	}
	results, pruned, err := node.FinalCompute(ctx, s, props, refs, q)
	for _, key := range pruned {
		ctxlog.FromContext(ctx).Warn("Pruned extracted port.", "port", nodeid.Out(id, key).String())
		m.dropEdgesFrom(ctx, nodeid.Out(id, key))
	}
	return results, err
}

// Report summarises one recompute pass.
type Report struct {
	// Computed lists the nodes that computed successfully, in order.
	Computed []nodeid.NodeID
	// Failed maps failed nodes to their error, including nodes skipped
	// because of an upstream failure.
	Failed map[nodeid.NodeID]error
}

// OK reports whether every node in the pass succeeded.
func (r Report) OK() bool { return len(r.Failed) == 0 }

// Recompute computes ids and everything downstream of them in topological
// order. A node whose predecessor failed in this pass is not computed and
// records an UpstreamError naming the node where the failure started.
// Validation failures are reported, not returned; other errors abort.
func (m *Manager) Recompute(ctx context.Context, ids ...nodeid.NodeID) (Report, error) {
	report := Report{Failed: make(map[nodeid.NodeID]error)}
	order, err := m.topo.TopoOrderSubgraph(m.topo.Descendants(ids...))
	if err != nil {
		return report, err
	}
	ctxlog.FromContext(ctx).Debug("Ordered recompute.", "roots", ids, "order", order)

	origins := make(map[nodeid.NodeID]nodeid.NodeID)
	for _, id := range order {
		if origin, failed := m.failedPredecessor(id, origins); failed {
			uerr := &UpstreamError{Node: id, Origin: origin, Err: report.Failed[origin]}
			m.nodes[id].fail(uerr)
			origins[id] = origin
			report.Failed[id] = uerr
			ctxlog.FromContext(ctx).Debug("Skipped node after upstream failure.", "node", id.String(), "origin", origin.String())
			continue
		}
		if err := m.Compute(ctx, id); err != nil {
			if !node.IsValidation(err) {
				return report, fmt.Errorf("computing %s: %w", id, err)
			}
			origins[id] = id
			report.Failed[id] = err
			continue
		}
		report.Computed = append(report.Computed, id)
	}
	return report, nil
}

func (m *Manager) failedPredecessor(id nodeid.NodeID, origins map[nodeid.NodeID]nodeid.NodeID) (nodeid.NodeID, bool) {
	for _, p := range m.topo.Predecessors(id) {
		if origin, ok := origins[p]; ok {
			return origin, true
		}
	}
	return 0, false
}

// ComputeAll recomputes every node.
func (m *Manager) ComputeAll(ctx context.Context) (Report, error) {
	return m.Recompute(ctx, m.Nodes()...)
}

// querier resolves RefIDs held by one node.
type querier struct {
	m  *Manager
	id nodeid.NodeID
}

func (q querier) Resolve(ref nodeid.RefID, expected proptype.PropType) (proptype.Value, bool, error) {
	port, ok := q.m.topo.PortForRef(q.id, ref)
	if !ok {
		return proptype.Value{}, false, fmt.Errorf("%w: %s on %s", ErrUnknownRef, ref, q.id)
	}
	return q.m.ResolveProperty(port, expected)
}
