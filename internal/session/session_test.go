package session

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/vecgraph/internal/custom"
	"github.com/specialistvlad/vecgraph/internal/node"
	"github.com/specialistvlad/vecgraph/internal/nodeid"
	"github.com/specialistvlad/vecgraph/internal/proptype"
	"github.com/specialistvlad/vecgraph/internal/registry"
	"github.com/specialistvlad/vecgraph/internal/vector"
	"github.com/specialistvlad/vecgraph/modules/fill"
	"github.com/specialistvlad/vecgraph/modules/grid"
	"github.com/specialistvlad/vecgraph/modules/numbers"
	"github.com/specialistvlad/vecgraph/modules/shapes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry() *registry.Registry {
	return registry.New(&shapes.Module{}, &fill.Module{}, &grid.Module{}, &numbers.Module{})
}

func addNode(t *testing.T, s *Session, typeName string) nodeid.NodeID {
	t.Helper()
	id, err := s.AddNode(context.Background(), typeName)
	require.NoError(t, err)
	return id
}

// buildSession creates a session that exercises every persisted feature:
// stored props, seeds, variant selection, extracted ports, refs and a custom
// definition.
func buildSession(t *testing.T) *Session {
	t.Helper()
	ctx := context.Background()
	s := New(newRegistry())
	m := s.Manager

	g := addNode(t, s, "grid")              // 1
	rect := addNode(t, s, "rectangle")      // 2
	col := addNode(t, s, "random_colour")   // 3
	rep := addNode(t, s, "shape_repeater")  // 4
	f := addNode(t, s, "fill")              // 5
	rep2 := addNode(t, s, "shape_repeater") // 6

	require.NoError(t, m.SetInternalProperty(ctx, g, "cols", proptype.IntVal(4)))
	require.NoError(t, m.SetInternalProperty(ctx, rect, "width", proptype.NumberVal(0.5)))
	seed := int64(42)
	require.NoError(t, m.Randomise(ctx, col, &seed))
	require.NoError(t, m.SetSelection(ctx, f, 1))

	for _, e := range []nodeid.EdgeID{
		nodeid.Edge(col, "colour", rect, "fill"),
		nodeid.Edge(rect, "shape", rep, "elements"),
		nodeid.Edge(g, "grid", rep, "grid"),
		nodeid.Edge(g, "grid", rep2, "grid"),
	} {
		require.NoError(t, m.AddEdge(ctx, e))
	}
	_, err := m.ComputeAll(ctx)
	require.NoError(t, err)

	key, err := m.ExtractElement(ctx, rep, m.Visualise(rep).Children[5].ID)
	require.NoError(t, err)
	require.Equal(t, nodeid.PropKey("cell_1_1"), key)
	require.NoError(t, m.AddEdge(ctx, nodeid.Edge(rep, key, rep2, "elements")))

	_, err = s.DefineCustom(ctx, []nodeid.NodeID{rect}, "tile")
	require.NoError(t, err)
	tile := addNode(t, s, "tile") // 7
	require.NoError(t, m.SetInternalProperty(ctx, tile, "fill", proptype.ColourVal(vectorRed)))

	s.View = View{X: 10, Y: -5, Zoom: 2}
	_, err = m.ComputeAll(ctx)
	require.NoError(t, err)
	return s
}

func save(t *testing.T, s *Session) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, s.Save(context.Background(), &buf))
	return buf.String()
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	orig := buildSession(t)
	text := save(t, orig)

	loaded, err := Load(ctx, strings.NewReader(text), "session.hcl", newRegistry())
	require.NoError(t, err)
	m := loaded.Manager

	assert.Equal(t, orig.Manager.Nodes(), m.Nodes())
	assert.Equal(t, orig.NextID(), loaded.NextID())
	assert.Equal(t, orig.View, loaded.View)
	assert.Equal(t, orig.Manager.Topology().Edges(), m.Topology().Edges())
	if diff := cmp.Diff(orig.Manager.Topology().PortRefs(), m.Topology().PortRefs()); diff != "" {
		t.Errorf("refs changed across save/load (-orig +loaded):\n%s", diff)
	}

	for _, id := range m.Nodes() {
		a, _ := orig.Manager.Node(id)
		b, _ := m.Node(id)
		assert.Equal(t, a.Info().Type, b.Info().Type, "node %s", id)
		rn, _ := m.Runtime(id)
		assert.NoError(t, rn.Err(), "node %s computes after load", id)
	}

	t.Run("seed", func(t *testing.T) {
		n, _ := m.Node(3)
		r, ok := node.As[node.Randomisable](n)
		require.True(t, ok)
		assert.Equal(t, int64(42), r.Seed())

		before, _ := orig.Manager.Runtime(3)
		after, _ := m.Runtime(3)
		assert.Equal(t, before.Results()["colour"], after.Results()["colour"])
	})

	t.Run("selection", func(t *testing.T) {
		info, err := m.NodeInfo(5)
		require.NoError(t, err)
		assert.Equal(t, 1, info.Selection)
	})

	t.Run("extracted port", func(t *testing.T) {
		n, _ := m.Node(4)
		assert.Equal(t, []nodeid.PropKey{"cell_1_1"}, n.PropDefs().Extracted())
		assert.Len(t, m.Visualise(6).Children, 12)
	})

	t.Run("custom node", func(t *testing.T) {
		n, _ := m.Node(7)
		c, ok := node.As[*custom.Node](n)
		require.True(t, ok)
		assert.Equal(t, "tile", c.Definition().Name)
		v, ok := n.InternalProp("fill")
		require.True(t, ok)
		assert.Equal(t, vectorRed, v.AsColour())
	})

	assert.Equal(t, text, save(t, loaded), "saving a loaded session is stable")
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		doc     string
		wantErr error
		wantMsg string
	}{
		{
			name:    "unsupported version",
			doc:     `version = 2`,
			wantErr: ErrVersion,
		},
		{
			name:    "syntax error",
			doc:     `version = `,
			wantMsg: "failed to parse session",
		},
		{
			name: "unknown type",
			doc: `version = 1
node "node_1" {
  type = "hexagon"
}`,
			wantErr: registry.ErrUnknownType,
		},
		{
			name: "unknown property",
			doc: `version = 1
node "node_1" {
  type = "grid"
  props {
    depth = 3
  }
}`,
			wantErr: node.ErrUnknownProperty,
		},
		{
			name: "property of the wrong type",
			doc: `version = 1
node "node_1" {
  type = "grid"
  props {
    rows = "many"
  }
}`,
			wantMsg: `property "rows"`,
		},
		{
			name: "incompatible edge",
			doc: `version = 1
node "node_1" {
  type = "grid"
}
node "node_2" {
  type = "rectangle"
}
edge {
  from = "node_1.out.grid"
  to   = "node_2.in.fill"
}`,
			wantErr: proptype.ErrIncompatible,
		},
		{
			name: "selection on a plain node",
			doc: `version = 1
node "node_1" {
  type      = "grid"
  selection = 1
}`,
			wantMsg: "has no variants",
		},
		{
			name: "bad node label",
			doc: `version = 1
node "first" {
  type = "grid"
}`,
			wantMsg: "invalid node identifier",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(context.Background(), strings.NewReader(tc.doc), "test.hcl", newRegistry())
			require.Error(t, err)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			}
			if tc.wantMsg != "" {
				assert.Contains(t, err.Error(), tc.wantMsg)
			}
		})
	}
}

func TestLoad_NestedDefinitionsInAnyOrder(t *testing.T) {
	doc := `version = 1

custom_node "outer" {
  node "node_1" {
    type   = "custom"
    custom = "inner"
  }
  promote {
    port = "node_1.out.shape"
    name = "shape"
  }
}

custom_node "inner" {
  visualise = "node_1"
  node "node_1" {
    type = "ellipse"
    props {
      rx = 0.25
    }
  }
  promote {
    port = "node_1.out.shape"
    name = "shape"
  }
}

node "node_1" {
  type   = "custom"
  custom = "outer"
}
`
	s, err := Load(context.Background(), strings.NewReader(doc), "nested.hcl", newRegistry())
	require.NoError(t, err)
	assert.Equal(t, nodeid.NodeID(2), s.NextID())

	rn, _ := s.Manager.Runtime(1)
	require.NoError(t, rn.Err())
	assert.InDelta(t, 0.25, rn.Results()["shape"].AsElement().RX, 1e-9)
}

func TestDuplicate_AllocatesFreshIDs(t *testing.T) {
	ctx := context.Background()
	s := New(newRegistry())
	g := addNode(t, s, "grid")
	rep := addNode(t, s, "shape_repeater")
	require.NoError(t, s.Manager.AddEdge(ctx, nodeid.Edge(g, "grid", rep, "grid")))

	remap, err := s.Duplicate(ctx, []nodeid.NodeID{g, rep})
	require.NoError(t, err)
	assert.Equal(t, map[nodeid.NodeID]nodeid.NodeID{1: 3, 2: 4}, remap)
	assert.True(t, s.Manager.Topology().HasEdge(nodeid.Edge(3, "grid", 4, "grid")))
	assert.Equal(t, nodeid.NodeID(5), s.NextID())

	_, err = s.DefineCustom(ctx, []nodeid.NodeID{g}, "layout")
	require.NoError(t, err)
	_, err = s.DefineCustom(ctx, []nodeid.NodeID{g}, "layout")
	assert.Error(t, err, "names are unique")
}

var vectorRed = vector.RGB(1, 0, 0)
