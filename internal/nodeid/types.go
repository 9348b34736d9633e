// internal/nodeid/types.go
package nodeid

import (
	"fmt"

	"github.com/google/uuid"
)

// NodeID identifies a live node instance. IDs are allocated by the owning
// session from a monotonically increasing counter and are never reused.
type NodeID uint64

// String returns the canonical form, e.g. "node_3".
func (id NodeID) String() string {
	return fmt.Sprintf("%s%d", nodePrefix, uint64(id))
}

// PropKey names a property within a node's property set.
type PropKey string

// PortID is a coordinate into a node's declared property set. It is not an
// owned entity: the same key may be both an input and an output port.
type PortID struct {
	Node    NodeID
	Key     PropKey
	IsInput bool
}

// In returns the input port for key on node id.
func In(id NodeID, key PropKey) PortID {
	return PortID{Node: id, Key: key, IsInput: true}
}

// Out returns the output port for key on node id.
func Out(id NodeID, key PropKey) PortID {
	return PortID{Node: id, Key: key, IsInput: false}
}

// String serializes the port into its canonical form.
func (p PortID) String() string {
	dir := dirOut
	if p.IsInput {
		dir = dirIn
	}
	return fmt.Sprintf("%s.%s.%s", p.Node, dir, p.Key)
}

// EdgeID is a directed connection from an output port to an input port.
type EdgeID struct {
	Src PortID
	Dst PortID
}

// Edge builds an EdgeID from the source output key to the destination input key.
func Edge(src NodeID, srcKey PropKey, dst NodeID, dstKey PropKey) EdgeID {
	return EdgeID{Src: Out(src, srcKey), Dst: In(dst, dstKey)}
}

// String serializes the edge into its canonical form.
func (e EdgeID) String() string {
	return e.Src.String() + edgeArrow + e.Dst.String()
}

// Valid reports whether the edge runs from an output port to an input port.
func (e EdgeID) Valid() bool {
	return !e.Src.IsInput && e.Dst.IsInput
}

// RefID is a stable handle a node stores to remember what is connected to
// one of its ports without holding the PortID, which copying invalidates.
// RefIDs are globally unique so ref tables from different graphs merge
// without collision.
type RefID uuid.UUID

// NewRefID allocates a fresh RefID.
func NewRefID() RefID {
	return RefID(uuid.New())
}

// String returns the UUID text form.
func (r RefID) String() string {
	return uuid.UUID(r).String()
}

// IsZero reports whether r is the zero handle.
func (r RefID) IsZero() bool {
	return uuid.UUID(r) == uuid.Nil
}

const (
	nodePrefix = "node_"
	dirIn      = "in"
	dirOut     = "out"
	edgeArrow  = " -> "
)
