package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/specialistvlad/vecgraph/internal/ctxlog"
	"github.com/specialistvlad/vecgraph/internal/node"
	"github.com/specialistvlad/vecgraph/internal/nodeid"
)

// SetSelection switches a combination node to variant i. The runtime record
// is replaced, so cached results and errors are discarded, and edges on
// ports the new variant does not offer are removed.
func (m *Manager) SetSelection(ctx context.Context, id nodeid.NodeID, i int) error {
	rn, err := m.runtime(id)
	if err != nil {
		return err
	}
	c, ok := rn.Node.(*node.Combination)
	if !ok {
		return fmt.Errorf("%w: %s is not a combination", ErrNotSupported, id)
	}
	if err := c.SetSelection(i); err != nil {
		return fmt.Errorf("%s: %w", id, err)
	}
	m.nodes[id] = newRuntimeNode(c)
	m.dropInvalidEdges(ctx, id)
	ctxlog.FromContext(ctx).Debug("Switched combination variant.", "node", id.String(), "selection", i)
	return nil
}

// ExtractElement turns the element with elementID in a selectable node's
// drawable into an output port, recomputes the node and everything
// downstream, and returns the port key.
func (m *Manager) ExtractElement(ctx context.Context, id nodeid.NodeID, elementID string) (nodeid.PropKey, error) {
	rn, err := m.runtime(id)
	if err != nil {
		return "", err
	}
	s, ok := node.As[node.Selectable](rn.Node)
	if !ok {
		return "", fmt.Errorf("%w: %s is not selectable", ErrNotSupported, id)
	}
	props, _, err := m.gather(id, rn.Node)
	if err != nil {
		return "", err
	}
	key, err := s.ExtractElement(props, m.Visualise(id), elementID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", id, err)
	}
	ctxlog.FromContext(ctx).Debug("Extracted element.", "node", id.String(), "port", string(key))
	if _, err := m.Recompute(ctx, id); err != nil {
		return key, err
	}
	return key, nil
}

// Randomise stores seed, or a fresh random seed when nil, on a randomisable
// node. The node is not recomputed.
func (m *Manager) Randomise(ctx context.Context, id nodeid.NodeID, seed *int64) error {
	rn, err := m.runtime(id)
	if err != nil {
		return err
	}
	r, ok := node.As[node.Randomisable](rn.Node)
	if !ok {
		return fmt.Errorf("%w: %s is not randomisable", ErrNotSupported, id)
	}
	r.Randomise(seed)
	ctxlog.FromContext(ctx).Debug("Randomised node.", "node", id.String(), "seed", r.Seed())
	return nil
}

// TogglePlay starts or stops an animatable node.
func (m *Manager) TogglePlay(id nodeid.NodeID) error {
	rn, err := m.runtime(id)
	if err != nil {
		return err
	}
	a, ok := node.As[node.Animatable](rn.Node)
	if !ok {
		return fmt.Errorf("%w: %s is not animatable", ErrNotSupported, id)
	}
	a.TogglePlay()
	return nil
}

// Reanimate feeds elapsed time to every animatable node and returns the
// ones that have a step due.
func (m *Manager) Reanimate(elapsed time.Duration) []nodeid.NodeID {
	var changed []nodeid.NodeID
	for _, id := range m.Nodes() {
		a, ok := node.As[node.Animatable](m.nodes[id].Node)
		if ok && a.Reanimate(elapsed) {
			changed = append(changed, id)
		}
	}
	return changed
}

// Tick reanimates and recomputes whatever changed.
func (m *Manager) Tick(ctx context.Context, elapsed time.Duration) (Report, error) {
	changed := m.Reanimate(elapsed)
	if len(changed) == 0 {
		return Report{Failed: map[nodeid.NodeID]error{}}, nil
	}
	return m.Recompute(ctx, changed...)
}
