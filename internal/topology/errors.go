package topology

import "errors"

var (
	// ErrCycle is returned when an ordering is requested over a cyclic subgraph.
	ErrCycle = errors.New("cycle detected in node graph")
	// ErrUnknownNode is returned when an operation names a node that is not present.
	ErrUnknownNode = errors.New("unknown node")
	// ErrNodeExists is returned when a node id is added twice.
	ErrNodeExists = errors.New("node already exists")
	// ErrNodeHasEdges is returned when removing a node that is still connected.
	ErrNodeHasEdges = errors.New("node still has edges")
	// ErrEdgeExists is returned when the same edge is added twice.
	ErrEdgeExists = errors.New("edge already exists")
	// ErrUnknownEdge is returned when removing an edge that is not present.
	ErrUnknownEdge = errors.New("unknown edge")
	// ErrInvalidEdge is returned for edges that do not run output to input.
	ErrInvalidEdge = errors.New("edge must run from an output port to an input port")
)
