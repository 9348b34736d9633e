// Package custom wraps a whole subgraph as a single reusable node.
//
// A Definition holds a template graph and the list of inner ports promoted to
// the outside. Every custom Node owns a private clone of the template. On
// each compute it wires the values arriving at its promoted inputs into the
// clone through detached constant "feeder" nodes, reseeds the inner
// randomisable nodes from its own seed, evaluates the clone and reads the
// promoted outputs back out.
package custom
