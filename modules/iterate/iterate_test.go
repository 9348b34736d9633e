package iterate

import (
	"context"
	"testing"

	"github.com/specialistvlad/vecgraph/internal/custom"
	"github.com/specialistvlad/vecgraph/internal/graph"
	"github.com/specialistvlad/vecgraph/internal/node"
	"github.com/specialistvlad/vecgraph/internal/nodeid"
	"github.com/specialistvlad/vecgraph/internal/proptype"
	"github.com/specialistvlad/vecgraph/internal/registry"
	"github.com/specialistvlad/vecgraph/internal/testutil"
	"github.com/specialistvlad/vecgraph/internal/vector"
	"github.com/specialistvlad/vecgraph/modules/fill"
	"github.com/specialistvlad/vecgraph/modules/grid"
	"github.com/specialistvlad/vecgraph/modules/numbers"
	"github.com/specialistvlad/vecgraph/modules/shapes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry() *registry.Registry {
	return registry.New(&shapes.Module{}, &fill.Module{}, &Module{})
}

func TestModule_ValidateRegistry(t *testing.T) {
	require.NoError(t, newRegistry().ValidateRegistry(context.Background()))
}

func setAll(t *testing.T, n node.Node, props map[nodeid.PropKey]proptype.Value) {
	t.Helper()
	for k, v := range props {
		require.NoError(t, n.SetInternalProp(k, v))
	}
}

func runIterator(t *testing.T, it node.Node, values proptype.Value) (*graph.Manager, error) {
	t.Helper()
	ctx := context.Background()
	m := graph.New()
	require.NoError(t, m.AddNode(ctx, 1, testutil.NewConst(values)))
	require.NoError(t, m.AddNode(ctx, 2, it))
	require.NoError(t, m.AddEdge(ctx, testutil.Edge(1, "value", 2, valuesKey)))
	report, err := m.ComputeAll(ctx)
	require.NoError(t, err)
	return m, report.Failed[2]
}

func TestIterator(t *testing.T) {
	r := newRegistry()
	widths := proptype.ListVal(proptype.Number(), proptype.NumberVal(0.2), proptype.NumberVal(0.5), proptype.NumberVal(1))

	testCases := []struct {
		name    string
		props   map[nodeid.PropKey]proptype.Value
		values  proptype.Value
		wantErr string
	}{
		{
			name:    "no template",
			values:  widths,
			wantErr: "no template selected",
		},
		{
			name: "unknown template",
			props: map[nodeid.PropKey]proptype.Value{
				templateKey: proptype.StringVal("hexagon"), outputKey: proptype.StringVal("shape"),
			},
			values:  widths,
			wantErr: `template "hexagon"`,
		},
		{
			name: "missing output",
			props: map[nodeid.PropKey]proptype.Value{
				templateKey: proptype.StringVal("rectangle"), propertyKey: proptype.StringVal("width"), outputKey: proptype.StringVal("nope"),
			},
			values:  widths,
			wantErr: `has no output "nope"`,
		},
		{
			name: "output-only property",
			props: map[nodeid.PropKey]proptype.Value{
				templateKey: proptype.StringVal("rectangle"), propertyKey: proptype.StringVal("shape"), outputKey: proptype.StringVal("shape"),
			},
			values:  widths,
			wantErr: `no settable property "shape"`,
		},
		{
			name: "incompatible value",
			props: map[nodeid.PropKey]proptype.Value{
				templateKey: proptype.StringVal("rectangle"), propertyKey: proptype.StringVal("width"), outputKey: proptype.StringVal("shape"),
			},
			values:  proptype.ListVal(proptype.String(), proptype.StringVal("wide")),
			wantErr: "value 0",
		},
		{
			name: "template validation error",
			props: map[nodeid.PropKey]proptype.Value{
				templateKey: proptype.StringVal("rectangle"), propertyKey: proptype.StringVal("width"), outputKey: proptype.StringVal("shape"),
			},
			values:  proptype.ListVal(proptype.Number(), proptype.NumberVal(0.5), proptype.NumberVal(-1)),
			wantErr: "iteration 1: width and height must not be negative",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			it, err := r.Create("iterator")
			require.NoError(t, err)
			setAll(t, it, tc.props)

			_, err = runIterator(t, it, tc.values)
			require.Error(t, err)
			assert.True(t, node.IsValidation(err))
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}

	t.Run("collects shapes", func(t *testing.T) {
		it, err := r.Create("iterator")
		require.NoError(t, err)
		setAll(t, it, map[nodeid.PropKey]proptype.Value{
			templateKey: proptype.StringVal("rectangle"), propertyKey: proptype.StringVal("width"), outputKey: proptype.StringVal("shape"),
		})

		m, err := runIterator(t, it, widths)
		require.NoError(t, err)
		rn, _ := m.Runtime(2)
		res := rn.Results()[resultsKey]
		assert.Equal(t, proptype.List(proptype.Shape()), res.Type)
		require.Equal(t, 3, res.Len())
		assert.InDelta(t, 0.4, res.Items()[0].AsElement().Points[0].X, 1e-9)

		group := m.Visualise(2)
		require.NotNil(t, group)
		assert.Len(t, group.Children, 3)
	})
}

func randomColours(t *testing.T, r *registry.Registry, seed int64) []vector.Colour {
	t.Helper()
	n, err := r.Create("random_iterator")
	require.NoError(t, err)
	setAll(t, n, map[nodeid.PropKey]proptype.Value{
		templateKey: proptype.StringVal("random_colour"), outputKey: proptype.StringVal("colour"),
	})
	rnd, ok := node.As[node.Randomisable](n)
	require.True(t, ok)
	rnd.Randomise(&seed)

	ctx := context.Background()
	m := graph.New()
	require.NoError(t, m.AddNode(ctx, 1, n))
	require.NoError(t, m.Compute(ctx, 1))

	rn, _ := m.Runtime(1)
	res := rn.Results()[resultsKey]
	assert.Equal(t, proptype.List(proptype.Colour()), res.Type)
	var out []vector.Colour
	for _, it := range res.Items() {
		out = append(out, it.AsColour())
	}
	return out
}

func TestRandomIterator_Seeded(t *testing.T) {
	r := newRegistry()

	first := randomColours(t, r, 42)
	require.Len(t, first, 5)
	assert.Equal(t, first, randomColours(t, r, 42), "the same seed reproduces the colours")
	assert.NotEqual(t, first, randomColours(t, r, 43))

	seen := make(map[vector.Colour]bool)
	for _, c := range first {
		seen[c] = true
	}
	assert.Len(t, seen, 5, "each iteration draws its own colour")
}

func TestRandomIterator_Errors(t *testing.T) {
	r := newRegistry()
	ctx := context.Background()

	testCases := []struct {
		name    string
		props   map[nodeid.PropKey]proptype.Value
		wantErr string
	}{
		{
			name: "template not randomisable",
			props: map[nodeid.PropKey]proptype.Value{
				templateKey: proptype.StringVal("rectangle"), outputKey: proptype.StringVal("shape"),
			},
			wantErr: "is not randomisable",
		},
		{
			name: "output missing",
			props: map[nodeid.PropKey]proptype.Value{
				templateKey: proptype.StringVal("random_colour"), outputKey: proptype.StringVal("fill"),
			},
			wantErr: `has no output "fill"`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			n, err := r.Create("random_iterator")
			require.NoError(t, err)
			setAll(t, n, tc.props)
			m := graph.New()
			require.NoError(t, m.AddNode(ctx, 1, n))
			err = m.Compute(ctx, 1)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}

	n, err := r.Create("random_iterator")
	require.NoError(t, err)
	assert.Error(t, n.SetInternalProp(iterationsKey, proptype.IntVal(0)), "at least one iteration")
}

func TestIterator_CustomTemplate(t *testing.T) {
	ctx := context.Background()
	r := newRegistry()

	tmpl := graph.New()
	require.NoError(t, tmpl.AddNode(ctx, 1, shapes.NewEllipse()))
	require.NoError(t, r.RegisterDefinition(&custom.Definition{
		Name:  "dot",
		Graph: tmpl,
		Promotions: []custom.Promotion{
			{Port: nodeid.In(1, "rx"), Name: "radius"},
			{Port: nodeid.Out(1, "shape"), Name: "dot"},
		},
		Visualise: 1,
	}))

	it, err := r.Create("iterator")
	require.NoError(t, err)
	setAll(t, it, map[nodeid.PropKey]proptype.Value{
		templateKey: proptype.StringVal("dot"), propertyKey: proptype.StringVal("radius"), outputKey: proptype.StringVal("dot"),
	})
	m, err := runIterator(t, it, proptype.ListVal(proptype.Number(), proptype.NumberVal(0.1), proptype.NumberVal(0.3)))
	require.NoError(t, err)

	rn, _ := m.Runtime(2)
	items := rn.Results()[resultsKey].Items()
	require.Len(t, items, 2)
	assert.InDelta(t, 0.3, items[1].AsElement().RX, 1e-9)
}

func TestIterator_TemplateSettings(t *testing.T) {
	r := newRegistry()
	widths := proptype.ListVal(proptype.Number(), proptype.NumberVal(0.2), proptype.NumberVal(0.5))

	newIterator := func(t *testing.T) node.Node {
		t.Helper()
		it, err := r.Create("iterator")
		require.NoError(t, err)
		require.NoError(t, it.SetInternalProp(templateKey, proptype.StringVal("rectangle")))
		setAll(t, it, map[nodeid.PropKey]proptype.Value{
			propertyKey: proptype.StringVal("width"), outputKey: proptype.StringVal("shape"),
		})
		return it
	}

	t.Run("settings carry into every iteration", func(t *testing.T) {
		it := newIterator(t)
		d, ok := it.PropDefs().Get("template_height")
		require.True(t, ok)
		assert.True(t, d.IsInternal())
		require.NoError(t, it.SetInternalProp("template_height", proptype.NumberVal(0.4)))

		m, err := runIterator(t, it, widths)
		require.NoError(t, err)
		rn, _ := m.Runtime(2)
		items := rn.Results()[resultsKey].Items()
		require.Len(t, items, 2)
		for _, item := range items {
			pts := item.AsElement().Points
			assert.InDelta(t, 0.4, pts[2].Y-pts[0].Y, 1e-9)
		}
		assert.Equal(t, 0.4, it.StoredProps()["template_height"].AsFloat())
	})

	t.Run("settings are validated by the template", func(t *testing.T) {
		it := newIterator(t)
		err := it.SetInternalProp("template_height", proptype.StringVal("tall"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `template "rectangle"`)
		assert.ErrorIs(t, it.SetInternalProp("template_radius", proptype.NumberVal(1)), node.ErrUnknownProperty)
	})

	t.Run("clones keep their own settings", func(t *testing.T) {
		it := newIterator(t)
		require.NoError(t, it.SetInternalProp("template_height", proptype.NumberVal(0.4)))
		clone := it.Clone()
		require.NoError(t, clone.SetInternalProp("template_height", proptype.NumberVal(0.6)))

		v, ok := it.InternalProp("template_height")
		require.True(t, ok)
		assert.Equal(t, 0.4, v.AsFloat())
		v, _ = clone.InternalProp("template_height")
		assert.Equal(t, 0.6, v.AsFloat())
	})

	t.Run("selecting another template starts over", func(t *testing.T) {
		it := newIterator(t)
		require.NoError(t, it.SetInternalProp("template_height", proptype.NumberVal(0.4)))
		require.NoError(t, it.SetInternalProp(templateKey, proptype.StringVal("rectangle")))
		v, _ := it.InternalProp("template_height")
		assert.Equal(t, 0.4, v.AsFloat(), "the same template keeps its settings")

		require.NoError(t, it.SetInternalProp(templateKey, proptype.StringVal("ellipse")))
		assert.False(t, it.PropDefs().Has("template_height"))
		assert.True(t, it.PropDefs().Has("template_ry"))
		assert.NotContains(t, it.StoredProps(), nodeid.PropKey("template_height"))
	})
}

func TestIterator_TemplateWithSecondCompulsoryInput(t *testing.T) {
	r := registry.New(&numbers.Module{}, &Module{})
	it, err := r.Create("iterator")
	require.NoError(t, err)
	require.NoError(t, it.SetInternalProp(templateKey, proptype.StringVal("sample")))
	setAll(t, it, map[nodeid.PropKey]proptype.Value{
		propertyKey: proptype.StringVal("values"), outputKey: proptype.StringVal("samples"),
	})
	double := func(x float64) float64 { return 2 * x }
	require.NoError(t, it.SetInternalProp("template_function", proptype.FunctionVal(double)))

	m, err := runIterator(t, it, proptype.ListVal(proptype.Number(), proptype.NumberVal(1), proptype.NumberVal(3)))
	require.NoError(t, err)
	rn, _ := m.Runtime(2)
	items := rn.Results()[resultsKey].Items()
	require.Len(t, items, 2)
	assert.Equal(t, 6.0, items[1].Items()[0].AsFloat())
}

func TestIterator_RejectsFractionalIntValues(t *testing.T) {
	r := registry.New(&grid.Module{}, &Module{})
	it, err := r.Create("iterator")
	require.NoError(t, err)
	require.NoError(t, it.SetInternalProp(templateKey, proptype.StringVal("grid")))
	setAll(t, it, map[nodeid.PropKey]proptype.Value{
		propertyKey: proptype.StringVal("rows"), outputKey: proptype.StringVal("grid"),
	})

	_, err = runIterator(t, it, proptype.ListVal(proptype.Number(), proptype.NumberVal(2), proptype.NumberVal(2.7)))
	require.Error(t, err)
	assert.True(t, node.IsValidation(err))
	assert.Contains(t, err.Error(), "value 1")
	assert.Contains(t, err.Error(), "not an integer")
}
