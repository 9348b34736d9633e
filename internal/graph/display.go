package graph

import (
	"errors"

	"github.com/specialistvlad/vecgraph/internal/node"
	"github.com/specialistvlad/vecgraph/internal/nodeid"
	"github.com/specialistvlad/vecgraph/internal/vector"
)

// Visualise returns the node's drawable for its cached results. It never
// computes; a node without results draws whatever it draws for none.
func (m *Manager) Visualise(id nodeid.NodeID) *vector.Element {
	rn, ok := m.nodes[id]
	if !ok {
		return nil
	}
	return rn.Node.Visualise(rn.results)
}

// Display is Visualise with error placeholders: a node whose last compute
// failed draws an error card instead.
func (m *Manager) Display(id nodeid.NodeID) *vector.Element {
	rn, ok := m.nodes[id]
	if !ok {
		return nil
	}
	if rn.err == nil {
		return m.Visualise(id)
	}

	var upstream *UpstreamError
	if errors.As(rn.err, &upstream) {
		return vector.ErrorCard("Error upstream", "caused by "+upstream.Origin.String())
	}
	var ve *node.ValidationError
	if errors.As(rn.err, &ve) {
		return vector.ErrorCard("Error", ve.Message)
	}
	return vector.ErrorCard("Error", rn.err.Error())
}

// Info is everything a front end needs to present a node.
type Info struct {
	node.Info
	Props        []node.Entry
	Randomisable bool
	Selectable   bool
	Animatable   bool
	// Variants and Selection are set for combination nodes.
	Variants  []string
	Selection int
}

// NodeInfo describes node id.
func (m *Manager) NodeInfo(id nodeid.NodeID) (Info, error) {
	rn, err := m.runtime(id)
	if err != nil {
		return Info{}, err
	}
	n := rn.Node
	info := Info{
		Info:  n.Info(),
		Props: n.PropDefs().Entries(),
	}
	_, info.Randomisable = node.As[node.Randomisable](n)
	_, info.Selectable = node.As[node.Selectable](n)
	_, info.Animatable = node.As[node.Animatable](n)
	if c, ok := n.(*node.Combination); ok {
		info.Variants = c.Variants()
		info.Selection = c.Selection()
	}
	return info, nil
}
