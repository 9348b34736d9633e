// internal/nodeid/doc.go

/*
Package nodeid provides the identifiers used to address things inside a node
graph: nodes, the ports on them, the edges between ports and the opaque
references a node keeps to whatever feeds it.

Canonical string forms:

	node_3                          NodeID
	node_3.in.fill                  PortID (input)
	node_3.out.shape                PortID (output)
	node_1.out.shape -> node_3.in.elements   EdgeID

This package centralizes all formatting and parsing of those forms so that
sessions, logs and tests agree on a single representation.
*/
package nodeid
