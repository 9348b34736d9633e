package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/vecgraph/internal/custom"
	"github.com/specialistvlad/vecgraph/internal/graph"
	"github.com/specialistvlad/vecgraph/internal/node"
	"github.com/specialistvlad/vecgraph/internal/nodeid"
	"github.com/specialistvlad/vecgraph/internal/registry"
)

// Version is the document version written by Save and accepted by Load.
const Version = 1

// ErrVersion is returned when a document has an unsupported version.
var ErrVersion = errors.New("unsupported session version")

// View is the front end's camera.
type View struct {
	X, Y float64
	Zoom float64
}

// Session is one open document. It is not safe for concurrent use.
type Session struct {
	Manager  *graph.Manager
	Registry *registry.Registry
	View     View
	nextID   nodeid.NodeID
}

// New returns an empty session creating nodes from reg.
func New(reg *registry.Registry) *Session {
	return &Session{
		Manager:  graph.New(),
		Registry: reg,
		View:     View{Zoom: 1},
		nextID:   1,
	}
}

// Alloc returns a fresh node id.
func (s *Session) Alloc() nodeid.NodeID {
	id := s.nextID
	s.nextID++
	return id
}

// NextID is the id the next Alloc will return.
func (s *Session) NextID() nodeid.NodeID { return s.nextID }

// AddNode creates a node of typeName, or an instance of the custom
// definition named typeName, computes it and returns its id.
func (s *Session) AddNode(ctx context.Context, typeName string) (nodeid.NodeID, error) {
	n, err := s.create(typeName, "")
	if err != nil {
		return 0, err
	}
	id := s.Alloc()
	if err := s.Manager.AddNode(ctx, id, n); err != nil {
		return 0, err
	}
	if _, err := s.Manager.Recompute(ctx, id); err != nil {
		return id, err
	}
	return id, nil
}

// create builds a node from a registered type or, when typeName is the custom
// type or names a definition, from a custom definition.
func (s *Session) create(typeName, customName string) (node.Node, error) {
	if typeName == custom.TypeName {
		return s.Registry.CreateCustom(customName)
	}
	n, err := s.Registry.Create(typeName)
	if errors.Is(err, registry.ErrUnknownType) {
		if _, ok := s.Registry.Definition(typeName); ok {
			return s.Registry.CreateCustom(typeName)
		}
	}
	return n, err
}

// Duplicate copies ids with fresh ids and returns the id mapping.
func (s *Session) Duplicate(ctx context.Context, ids []nodeid.NodeID) (map[nodeid.NodeID]nodeid.NodeID, error) {
	remap, err := s.Manager.Duplicate(ctx, ids, s.Alloc)
	if err != nil {
		return nil, err
	}
	targets := make([]nodeid.NodeID, 0, len(remap))
	for _, id := range remap {
		targets = append(targets, id)
	}
	if _, err := s.Manager.Recompute(ctx, targets...); err != nil {
		return remap, err
	}
	return remap, nil
}

// DefineCustom captures ids as a custom node definition named name and
// registers it.
func (s *Session) DefineCustom(ctx context.Context, ids []nodeid.NodeID, name string) (*custom.Definition, error) {
	if _, exists := s.Registry.Definition(name); exists {
		return nil, fmt.Errorf("custom node %q already defined", name)
	}
	def, err := custom.Capture(ctx, s.Manager, ids, name)
	if err != nil {
		return nil, err
	}
	if err := s.Registry.RegisterDefinition(def); err != nil {
		return nil, err
	}
	return def, nil
}
