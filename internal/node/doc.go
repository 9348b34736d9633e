// Package node defines the contract every node type implements and the
// building blocks node types are assembled from.
//
// A Node owns its property definitions (PropDefs) and its internal property
// values. It never sees the graph: the manager gathers its inputs into Props
// and Refs, calls Compute, and caches the returned Results. Visualise turns
// cached results into a drawable.
//
// Optional behaviour is expressed as capability interfaces that the manager
// discovers with As:
//
//   - Selectable nodes expose parts of their drawable as extra output ports
//   - Randomisable nodes carry a seed in their internal "seed" property
//   - Animatable nodes advance in discrete steps driven by elapsed time
//
// Combination wraps several node implementations behind one node and
// forwards everything to the selected variant.
package node
