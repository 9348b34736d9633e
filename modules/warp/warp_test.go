package warp

import (
	"context"
	"testing"

	"github.com/specialistvlad/vecgraph/internal/graph"
	"github.com/specialistvlad/vecgraph/internal/node"
	"github.com/specialistvlad/vecgraph/internal/nodeid"
	"github.com/specialistvlad/vecgraph/internal/proptype"
	"github.com/specialistvlad/vecgraph/internal/registry"
	"github.com/specialistvlad/vecgraph/internal/vector"
	"github.com/specialistvlad/vecgraph/modules/shapes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModule_ValidateRegistry(t *testing.T) {
	require.NoError(t, registry.New(&Module{}).ValidateRegistry(context.Background()))
}

func TestSineWarp_Wavelength(t *testing.T) {
	testCases := []struct {
		name       string
		wavelength float64
		wantErr    bool
	}{
		{"positive", 0.5, false},
		{"zero", 0, true},
		{"negative", -1, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			n := NewSineWarp()
			require.NoError(t, n.SetInternalProp("wavelength", proptype.NumberVal(tc.wavelength)))
			m := graph.New()
			require.NoError(t, m.AddNode(context.Background(), 1, n))
			err := m.Compute(context.Background(), 1)
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, node.IsValidation(err))
				assert.Contains(t, err.Error(), "wavelength must be positive")
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestApplyWarp_Graph(t *testing.T) {
	ctx := context.Background()
	m := graph.New()
	w := NewSineWarp()
	require.NoError(t, w.SetInternalProp("amplitude", proptype.NumberVal(0.1)))
	require.NoError(t, w.SetInternalProp("wavelength", proptype.NumberVal(1)))
	apply := NewApplyWarp()
	require.NoError(t, apply.SetInternalProp("subdivisions", proptype.IntVal(4)))

	require.NoError(t, m.AddNode(ctx, 1, shapes.NewRectangle()))
	require.NoError(t, m.AddNode(ctx, 2, w))
	require.NoError(t, m.AddNode(ctx, 3, apply))
	require.NoError(t, m.AddEdge(ctx, nodeid.Edge(1, "shape", 3, "shape")))
	require.NoError(t, m.AddEdge(ctx, nodeid.Edge(2, "warp", 3, "warp")))

	report, err := m.ComputeAll(ctx)
	require.NoError(t, err)
	require.True(t, report.OK())

	e := m.Visualise(3)
	require.NotNil(t, e)
	require.Len(t, e.Points, 16)
	// The second vertex sits a quarter wavelength along the top edge.
	assert.InDelta(t, 0.25, e.Points[1].X, 1e-9)
	assert.InDelta(t, 0.1, e.Points[1].Y, 1e-9)
	assert.InDelta(t, 0.0, e.Points[0].Y, 1e-9)
}

func TestApply(t *testing.T) {
	identity := func(p vector.Point) vector.Point { return p }

	t.Run("ellipse becomes a path", func(t *testing.T) {
		out := Apply(vector.Ellipse(vector.Point{X: 0.5, Y: 0.5}, 0.5, 0.25, nil), identity, 8)
		assert.Equal(t, vector.ElementPath, out.Kind)
		assert.True(t, out.Closed)
		require.Len(t, out.Points, ellipseSegments)
		assert.InDelta(t, 1.0, out.Points[0].X, 1e-9)
	})

	t.Run("open path keeps its end", func(t *testing.T) {
		in := vector.Path([]vector.Point{{X: 0, Y: 0}, {X: 1, Y: 0}}, false, nil)
		out := Apply(in, identity, 2)
		assert.Equal(t, []vector.Point{{X: 0, Y: 0}, {X: 0.5, Y: 0}, {X: 1, Y: 0}}, out.Points)
	})

	t.Run("groups warp each child", func(t *testing.T) {
		shift := func(p vector.Point) vector.Point { return vector.Point{X: p.X, Y: p.Y + 1} }
		in := vector.Group(vector.Path([]vector.Point{{X: 0, Y: 0}}, false, nil))
		out := Apply(in, shift, 1)
		require.Len(t, out.Children, 1)
		assert.Equal(t, []vector.Point{{X: 0, Y: 1}}, out.Children[0].Points)
		assert.NotEqual(t, in.Children[0].ID, out.Children[0].ID)
		assert.Equal(t, []vector.Point{{X: 0, Y: 0}}, in.Children[0].Points, "input is untouched")
	})
}
