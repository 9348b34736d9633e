// internal/nodeid/parser.go
package nodeid

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

var (
	nodeRegex = regexp.MustCompile(`^node_(\d+)$`)
	portRegex = regexp.MustCompile(`^node_(\d+)\.(in|out)\.([a-zA-Z_][a-zA-Z0-9_]*)$`)
)

// ParseNode parses the canonical "node_<n>" form.
func ParseNode(raw string) (NodeID, error) {
	if raw == "" {
		return 0, fmt.Errorf("node identifier cannot be empty")
	}
	m := nodeRegex.FindStringSubmatch(raw)
	if m == nil {
		return 0, fmt.Errorf("invalid node identifier: %q", raw)
	}
	n, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid node number in %q: %w", raw, err)
	}
	return NodeID(n), nil
}

// ParsePort parses the canonical "node_<n>.<in|out>.<key>" form.
func ParsePort(raw string) (PortID, error) {
	if raw == "" {
		return PortID{}, fmt.Errorf("port identifier cannot be empty")
	}
	m := portRegex.FindStringSubmatch(raw)
	if m == nil {
		return PortID{}, fmt.Errorf("invalid port identifier: %q", raw)
	}
	n, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return PortID{}, fmt.Errorf("invalid node number in %q: %w", raw, err)
	}
	return PortID{Node: NodeID(n), Key: PropKey(m[3]), IsInput: m[2] == dirIn}, nil
}

// ParseEdge parses the canonical "<src> -> <dst>" form. The source must be
// an output port and the destination an input port.
func ParseEdge(raw string) (EdgeID, error) {
	parts := strings.Split(raw, strings.TrimSpace(edgeArrow))
	if len(parts) != 2 {
		return EdgeID{}, fmt.Errorf("invalid edge identifier: %q", raw)
	}
	src, err := ParsePort(strings.TrimSpace(parts[0]))
	if err != nil {
		return EdgeID{}, fmt.Errorf("edge source: %w", err)
	}
	dst, err := ParsePort(strings.TrimSpace(parts[1]))
	if err != nil {
		return EdgeID{}, fmt.Errorf("edge destination: %w", err)
	}
	e := EdgeID{Src: src, Dst: dst}
	if !e.Valid() {
		return EdgeID{}, fmt.Errorf("edge %q must run from an output port to an input port", raw)
	}
	return e, nil
}

// ParseRef parses the UUID text form of a RefID.
func ParseRef(raw string) (RefID, error) {
	u, err := uuid.Parse(raw)
	if err != nil {
		return RefID{}, fmt.Errorf("invalid ref identifier %q: %w", raw, err)
	}
	return RefID(u), nil
}
