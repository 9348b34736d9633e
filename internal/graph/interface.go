package graph

import (
	"context"

	"github.com/specialistvlad/vecgraph/internal/node"
	"github.com/specialistvlad/vecgraph/internal/nodeid"
	"github.com/specialistvlad/vecgraph/internal/proptype"
	"github.com/specialistvlad/vecgraph/internal/vector"
)

// Graph is the surface a front end drives: structural edits, property
// edits, evaluation and drawing. Manager is the only implementation.
type Graph interface {
	AddNode(ctx context.Context, id nodeid.NodeID, n node.Node) error
	RemoveNode(ctx context.Context, id nodeid.NodeID) error
	AddEdge(ctx context.Context, e nodeid.EdgeID) error
	RemoveEdge(ctx context.Context, e nodeid.EdgeID) error

	NodeInfo(id nodeid.NodeID) (Info, error)
	InternalProperty(id nodeid.NodeID, key nodeid.PropKey) (proptype.Value, bool)
	SetInternalProperty(ctx context.Context, id nodeid.NodeID, key nodeid.PropKey, v proptype.Value) error

	Compute(ctx context.Context, id nodeid.NodeID) error
	Recompute(ctx context.Context, ids ...nodeid.NodeID) (Report, error)
	Visualise(id nodeid.NodeID) *vector.Element
	Display(id nodeid.NodeID) *vector.Element
}
