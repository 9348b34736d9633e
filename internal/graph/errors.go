package graph

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/vecgraph/internal/nodeid"
	"github.com/specialistvlad/vecgraph/internal/topology"
)

var (
	// ErrUnknownNode is returned for ids the manager does not hold.
	ErrUnknownNode = topology.ErrUnknownNode
	// ErrUnknownPort is returned when an edge names an undefined property.
	ErrUnknownPort = errors.New("unknown port")
	// ErrPortForbidden is returned when an edge uses a direction the port forbids.
	ErrPortForbidden = errors.New("port forbids this direction")
	// ErrPortOccupied is returned when a second edge targets a single-edge input.
	ErrPortOccupied = errors.New("input port already connected")
	// ErrUnknownRef is returned when a node asks for a RefID it does not hold.
	ErrUnknownRef = errors.New("unknown port reference")
	// ErrNotSupported is returned when a node lacks the capability an operation needs.
	ErrNotSupported = errors.New("operation not supported by node")
)

// UpstreamError is recorded on a node that was not computed because a node
// it depends on failed during the same pass.
type UpstreamError struct {
	Node   nodeid.NodeID
	Origin nodeid.NodeID
	Err    error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: error upstream in %s", e.Node, e.Origin)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
