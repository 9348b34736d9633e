// Package topology holds the structural half of a node graph: which nodes
// exist, which ports are connected, and the per-node tables of stable port
// references.
//
// A Graph knows nothing about node behaviour or values. It answers ordering
// questions (TopoOrder, TopoOrderSubgraph, Descendants) and keeps three views
// of the edge set consistent:
//
//   - edges, in insertion order, which fixes the order multi-edge inputs are
//     resolved in
//   - coarse node adjacency with parallel edge counts, used for ordering
//   - port refs, mapping a source port to the RefID a destination node uses
//     to identify it
//
// Graph is not safe for concurrent use. Callers that need an independent copy
// use Clone or CopySubgraph.
package topology
