// Package graph evaluates a node graph. It combines the structural view kept
// by the topology package with per-node runtime state: cached results, the
// last error and the node implementation itself.
//
// # Architecture
//
//	┌─────────────────────────────────────┐
//	│              Manager                │
//	│  (edits, input resolution, compute, │
//	│   display, duplication)             │
//	└──────────┬────────────┬─────────────┘
//	           │            │
//	           ▼            ▼
//	  ┌────────────┐  ┌──────────────┐
//	  │  topology  │  │ RuntimeNode  │
//	  │   Graph    │  │ per node id  │
//	  │ (structure)│  │ (node+cache) │
//	  └────────────┘  └──────────────┘
//
// # Evaluation
//
// Compute evaluates a single node. For every property that is not output
// only, the manager resolves a value:
//
//   - connected inputs read the upstream node's cached result through
//     ResolveProperty, which adapts it to the declared type
//   - inputs accepting several edges concatenate the adapted lists in edge
//     insertion order
//   - everything else uses the node's internal value or default
//
// Each resolved input carries a status (Unconnected, Pending, Present) so a
// node can tell "not wired" from "wired but upstream has nothing yet" from
// "an empty list". Every edge also contributes the RefID its source port has
// in the destination's ref table.
//
// Recompute evaluates a set of nodes and everything downstream of them in
// topological order. When a node fails with a validation error, its
// dependents are skipped for the rest of the pass and record an
// UpstreamError naming the origin. Display then draws an error card for
// them instead of their preview.
//
// # Usage
//
//	m := graph.New()
//	_ = m.AddNode(ctx, 1, rect)
//	_ = m.AddNode(ctx, 2, repeater)
//	_ = m.AddEdge(ctx, nodeid.Edge(1, "shape", 2, "elements"))
//	report, err := m.ComputeAll(ctx)
//	preview := m.Display(2)
//
// # Thread-Safety
//
// None. A Manager belongs to one session or one custom node; independent
// copies are made with Clone.
package graph
