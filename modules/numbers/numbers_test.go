package numbers

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/vecgraph/internal/graph"
	"github.com/specialistvlad/vecgraph/internal/node"
	"github.com/specialistvlad/vecgraph/internal/nodeid"
	"github.com/specialistvlad/vecgraph/internal/proptype"
	"github.com/specialistvlad/vecgraph/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModule_ValidateRegistry(t *testing.T) {
	require.NoError(t, registry.New(&Module{}).ValidateRegistry(context.Background()))
}

func floats(v proptype.Value) []float64 {
	var out []float64
	for _, it := range v.Items() {
		out = append(out, it.AsFloat())
	}
	return out
}

func TestRange(t *testing.T) {
	testCases := []struct {
		name              string
		start, stop, step float64
		want              []float64
		wantErr           string
	}{
		{name: "default", start: 0, stop: 1, step: 0.25, want: []float64{0, 0.25, 0.5, 0.75, 1}},
		{name: "inexact stop", start: 0, stop: 1, step: 0.4, want: []float64{0, 0.4, 0.8}},
		{name: "single", start: 2, stop: 2, step: 1, want: []float64{2}},
		{name: "empty", start: 1, stop: 0, step: 1},
		{name: "zero step", start: 0, stop: 1, step: 0, wantErr: "step must be positive"},
		{name: "too long", start: 0, stop: 1, step: 1e-6, wantErr: "the limit is"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			n := NewRange()
			require.NoError(t, n.SetInternalProp("start", proptype.NumberVal(tc.start)))
			require.NoError(t, n.SetInternalProp("stop", proptype.NumberVal(tc.stop)))
			require.NoError(t, n.SetInternalProp("step", proptype.NumberVal(tc.step)))

			props := node.Props{}
			for _, key := range []nodeid.PropKey{"start", "stop", "step"} {
				v, _ := n.InternalProp(key)
				props[key] = node.Input{Status: node.Present, Value: v}
			}
			res, err := n.Compute(context.Background(), props, nil, nil)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, floats(res["values"])); diff != "" {
				t.Errorf("range mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWaveSample_Graph(t *testing.T) {
	ctx := context.Background()
	m := graph.New()
	wave := NewWave()
	require.NoError(t, wave.SetInternalProp("shape", proptype.StringVal("square")))
	require.NoError(t, m.AddNode(ctx, 1, wave))
	require.NoError(t, m.AddNode(ctx, 2, NewRange()))
	require.NoError(t, m.AddNode(ctx, 3, NewSample()))
	require.NoError(t, m.AddEdge(ctx, nodeid.Edge(1, "function", 3, "function")))
	require.NoError(t, m.AddEdge(ctx, nodeid.Edge(2, "values", 3, "values")))

	report, err := m.ComputeAll(ctx)
	require.NoError(t, err)
	require.True(t, report.OK())

	rn, _ := m.Runtime(3)
	assert.Equal(t, []float64{1, 1, -1, -1, 1}, floats(rn.Results()["samples"]))

	assert.Error(t, wave.SetInternalProp("shape", proptype.StringVal("sawtooth")), "not an option")
}

func TestNumber_FeedsScalarIntoList(t *testing.T) {
	ctx := context.Background()
	m := graph.New()
	n := NewNumber()
	require.NoError(t, n.SetInternalProp("value", proptype.NumberVal(0.25)))
	require.NoError(t, m.AddNode(ctx, 1, NewWave()))
	require.NoError(t, m.AddNode(ctx, 2, n))
	require.NoError(t, m.AddNode(ctx, 3, NewSample()))
	require.NoError(t, m.AddEdge(ctx, nodeid.Edge(1, "function", 3, "function")))
	require.NoError(t, m.AddEdge(ctx, nodeid.Edge(2, "number", 3, "values")))

	_, err := m.ComputeAll(ctx)
	require.NoError(t, err)
	rn, _ := m.Runtime(3)
	got := floats(rn.Results()["samples"])
	require.Len(t, got, 1)
	assert.InDelta(t, 1.0, got[0], 1e-9)
}
