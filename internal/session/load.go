package session

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/vecgraph/internal/ctxlog"
	"github.com/specialistvlad/vecgraph/internal/custom"
	"github.com/specialistvlad/vecgraph/internal/graph"
	"github.com/specialistvlad/vecgraph/internal/node"
	"github.com/specialistvlad/vecgraph/internal/nodeid"
	"github.com/specialistvlad/vecgraph/internal/proptype"
	"github.com/specialistvlad/vecgraph/internal/registry"
	"github.com/specialistvlad/vecgraph/internal/topology"
)

// Load parses a session document, registers its custom definitions with
// reg, rebuilds the graph and computes every node.
func Load(ctx context.Context, r io.Reader, filename string, reg *registry.Registry) (*Session, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Session load started.", "file", filename)

	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading session %s: %w", filename, err)
	}
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse session %s: %w", filename, diags)
	}
	var doc document
	if diags := gohcl.DecodeBody(file.Body, nil, &doc); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode session %s: %w", filename, diags)
	}
	if doc.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, doc.Version)
	}

	s := New(reg)
	if doc.View != nil {
		s.View = View{X: doc.View.X, Y: doc.View.Y, Zoom: doc.View.Zoom}
		if s.View.Zoom == 0 {
			s.View.Zoom = 1
		}
	}
	if err := s.loadDefinitions(ctx, doc.Customs); err != nil {
		return nil, err
	}
	if err := s.loadGraph(ctx, s.Manager, doc.Nodes, doc.Edges, doc.Refs); err != nil {
		return nil, err
	}

	for _, id := range s.Manager.Nodes() {
		if id >= s.nextID {
			s.nextID = id + 1
		}
	}
	if doc.NextID != nil && nodeid.NodeID(*doc.NextID) > s.nextID {
		s.nextID = nodeid.NodeID(*doc.NextID)
	}

	report, err := s.Manager.ComputeAll(ctx)
	if err != nil {
		return nil, err
	}
	logger.Debug("Session loaded.", "nodes", len(s.Manager.Nodes()), "failed", len(report.Failed))
	return s, nil
}

// LoadFile opens path and loads it.
func LoadFile(ctx context.Context, path string, reg *registry.Registry) (*Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session file %s: %w", path, err)
	}
	defer f.Close()
	return Load(ctx, f, path, reg)
}

// loadDefinitions registers the custom definitions. A definition may use
// another one, so definitions are retried until no more can be built.
func (s *Session) loadDefinitions(ctx context.Context, blocks []*customBlock) error {
	pending := slices.Clone(blocks)
	for len(pending) > 0 {
		var retry []*customBlock
		var lastErr error
		for _, cb := range pending {
			def, err := s.loadDefinition(ctx, cb)
			if err != nil {
				retry = append(retry, cb)
				lastErr = err
				continue
			}
			if err := s.Registry.RegisterDefinition(def); err != nil {
				return fmt.Errorf("custom node %q: %w", cb.Name, err)
			}
		}
		if len(retry) == len(pending) {
			return fmt.Errorf("custom node %q: %w", retry[0].Name, lastErr)
		}
		pending = retry
	}
	return nil
}

func (s *Session) loadDefinition(ctx context.Context, cb *customBlock) (*custom.Definition, error) {
	def := &custom.Definition{Name: cb.Name, Graph: graph.New()}
	if err := s.loadGraph(ctx, def.Graph, cb.Nodes, cb.Edges, cb.Refs); err != nil {
		return nil, err
	}
	if cb.Visualise != "" {
		id, err := nodeid.ParseNode(cb.Visualise)
		if err != nil {
			return nil, err
		}
		def.Visualise = id
	}
	for _, pb := range cb.Promotions {
		port, err := nodeid.ParsePort(pb.Port)
		if err != nil {
			return nil, err
		}
		def.Promotions = append(def.Promotions, custom.Promotion{Port: port, Name: pb.Name})
	}
	return def, nil
}

// loadGraph adds nodes, then edges, then refs to m. Refs are merged before
// anything computes so that nodes see the ids they were saved with.
func (s *Session) loadGraph(ctx context.Context, m *graph.Manager, nodes []*nodeBlock, edges []*edgeBlock, refs []*refBlock) error {
	for _, nb := range nodes {
		id, err := nodeid.ParseNode(nb.ID)
		if err != nil {
			return fmt.Errorf("%s: %w", nb.DefRange, err)
		}
		n, err := s.buildNode(nb)
		if err != nil {
			return fmt.Errorf("%s: %s: %w", nb.DefRange, id, err)
		}
		if err := m.AddNode(ctx, id, n); err != nil {
			return fmt.Errorf("%s: %w", nb.DefRange, err)
		}
	}

	for _, eb := range edges {
		src, err := nodeid.ParsePort(eb.From)
		if err != nil {
			return fmt.Errorf("%s: %w", eb.DefRange, err)
		}
		dst, err := nodeid.ParsePort(eb.To)
		if err != nil {
			return fmt.Errorf("%s: %w", eb.DefRange, err)
		}
		if err := m.AddEdge(ctx, nodeid.EdgeID{Src: src, Dst: dst}); err != nil {
			return fmt.Errorf("%s: %w", eb.DefRange, err)
		}
	}

	table := topology.RefTable{}
	for _, rb := range refs {
		id, err := nodeid.ParseNode(rb.Node)
		if err != nil {
			return fmt.Errorf("%s: %w", rb.DefRange, err)
		}
		port, err := nodeid.ParsePort(rb.Port)
		if err != nil {
			return fmt.Errorf("%s: %w", rb.DefRange, err)
		}
		ref, err := nodeid.ParseRef(rb.ID)
		if err != nil {
			return fmt.Errorf("%s: %w", rb.DefRange, err)
		}
		if table[id] == nil {
			table[id] = make(map[nodeid.PortID]nodeid.RefID)
		}
		table[id][port] = ref
	}
	m.Topology().ExtendPortRefs(table)
	return nil
}

// buildNode creates the node, selects its variant and restores its stored
// properties, in that order.
func (s *Session) buildNode(nb *nodeBlock) (node.Node, error) {
	n, err := s.create(nb.Type, nb.Custom)
	if err != nil {
		return nil, err
	}
	if nb.Selection != nil {
		c, ok := n.(*node.Combination)
		if !ok {
			return nil, fmt.Errorf("type %q has no variants", nb.Type)
		}
		if err := c.SetSelection(*nb.Selection); err != nil {
			return nil, err
		}
	}
	if nb.Props == nil {
		return n, nil
	}

	attrs, diags := nb.Props.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if err := setProp(n, attrs[name]); err != nil {
			return nil, err
		}
	}
	return n, nil
}

func setProp(n node.Node, attr *hcl.Attribute) error {
	key := nodeid.PropKey(attr.Name)
	d, ok := n.PropDefs().Get(key)
	if !ok {
		return fmt.Errorf("%s: %w: %q", attr.NameRange, node.ErrUnknownProperty, key)
	}
	cv, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return diags
	}
	v, err := proptype.FromCty(cv, d.Type)
	if err != nil {
		return fmt.Errorf("%s: property %q: %w", attr.NameRange, key, err)
	}
	return n.SetInternalProp(key, v)
}
