package graph

import (
	"github.com/specialistvlad/vecgraph/internal/node"
)

// State is the outcome of a node's last compute.
type State int

const (
	// Pending nodes have not been computed yet.
	Pending State = iota
	// Done nodes hold results from their last successful compute.
	Done
	// Failed nodes hold the error of their last compute. Any results are
	// from an earlier successful compute.
	Failed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// RuntimeNode pairs a node with its cached results and last error.
type RuntimeNode struct {
	Node    node.Node
	results node.Results
	err     error
	state   State
}

func newRuntimeNode(n node.Node) *RuntimeNode {
	return &RuntimeNode{Node: n}
}

// Results returns the cached results, nil before the first successful compute.
func (r *RuntimeNode) Results() node.Results { return r.results }

// Err returns the error of the last compute.
func (r *RuntimeNode) Err() error { return r.err }

// State returns the outcome of the last compute.
func (r *RuntimeNode) State() State { return r.state }

func (r *RuntimeNode) succeed(results node.Results) {
	r.results = results
	r.err = nil
	r.state = Done
}

func (r *RuntimeNode) fail(err error) {
	r.err = err
	r.state = Failed
}

func (r *RuntimeNode) clone() *RuntimeNode {
	c := &RuntimeNode{Node: r.Node.Clone(), err: r.err, state: r.state}
	if r.results != nil {
		c.results = r.results.Clone()
	}
	return c
}
