package node

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/specialistvlad/vecgraph/internal/nodeid"
	"github.com/specialistvlad/vecgraph/internal/proptype"
	"github.com/specialistvlad/vecgraph/internal/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubNode struct {
	Base
}

func newStub(typ string, entries ...Entry) *stubNode {
	return &stubNode{Base: NewBase(Info{Type: typ}, entries...)}
}

func (n *stubNode) Compute(context.Context, Props, Refs, RefQuerier) (Results, error) {
	return Results{}, nil
}

func (n *stubNode) Clone() Node { return &stubNode{Base: n.CloneBase()} }

func TestPropDefs_Order(t *testing.T) {
	defs := NewPropDefs(
		Def("b", In(proptype.Number())),
		Def("a", Out(proptype.Number())),
	)
	defs.Set("c", Internal(proptype.Bool(), proptype.BoolVal(true)))
	defs.Set("b", Param(proptype.Int(), proptype.IntVal(1)))

	assert.Equal(t, []nodeid.PropKey{"b", "a", "c"}, defs.Keys(), "replacing keeps position")
	assert.Equal(t, []nodeid.PropKey{"b"}, defs.Inputs())
	assert.Equal(t, []nodeid.PropKey{"a"}, defs.Outputs())

	clone := defs.Clone()
	clone.Remove("a")
	assert.Equal(t, 3, defs.Len())
	assert.Equal(t, []nodeid.PropKey{"b", "c"}, clone.Keys())
}

func TestBase_InternalProps(t *testing.T) {
	n := newStub("stub",
		Def("width", Param(proptype.NumberRange(0, 10), proptype.NumberVal(1))),
	)

	v, ok := n.InternalProp("width")
	require.True(t, ok)
	assert.Equal(t, 1.0, v.AsFloat(), "falls back to the default")
	assert.Empty(t, n.StoredProps())

	require.NoError(t, n.SetInternalProp("width", proptype.IntVal(4)))
	v, _ = n.InternalProp("width")
	assert.Equal(t, 4.0, v.Data, "ints widen to the declared number type")

	assert.ErrorIs(t, n.SetInternalProp("width", proptype.NumberVal(11)), proptype.ErrOutOfRange)

	counted := newStub("stub", Def("count", Param(proptype.Int(), proptype.IntVal(1))))
	assert.ErrorIs(t, counted.SetInternalProp("count", proptype.NumberVal(2.7)), proptype.ErrIncompatible)
	require.NoError(t, counted.SetInternalProp("count", proptype.NumberVal(2)))
	v, _ = counted.InternalProp("count")
	assert.Equal(t, 2, v.Data)
	assert.ErrorIs(t, n.SetInternalProp("height", proptype.NumberVal(1)), ErrUnknownProperty)
}

func TestBase_CloneIsIndependent(t *testing.T) {
	n := newStub("stub", Def("x", Param(proptype.Number(), proptype.NumberVal(0))))
	require.NoError(t, n.SetInternalProp("x", proptype.NumberVal(2)))

	c := n.Clone()
	require.NoError(t, c.SetInternalProp("x", proptype.NumberVal(3)))
	c.PropDefs().Remove("x")

	v, _ := n.InternalProp("x")
	assert.Equal(t, 2.0, v.AsFloat())
	assert.True(t, n.PropDefs().Has("x"))
}

func TestBase_VisualiseFirstElementOutput(t *testing.T) {
	n := newStub("stub",
		Def("n", Out(proptype.Number())),
		Def("shape", Out(proptype.Shape())),
	)
	el := vector.Ellipse(vector.Point{}, 1, 1, vector.RGB(0, 0, 0))
	got := n.Visualise(Results{"n": proptype.NumberVal(1), "shape": proptype.ShapeVal(el)})
	assert.Same(t, el, got)
	assert.Nil(t, n.Visualise(Results{}))
}

func TestProps_Require(t *testing.T) {
	props := Props{
		"a": {Status: Present, Value: proptype.NumberVal(2)},
		"b": {Status: Pending},
	}

	v, err := props.Require("a")
	require.NoError(t, err)
	assert.Equal(t, 2.0, v.AsFloat())

	_, err = props.Require("b")
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "waiting")

	_, err = props.Require("c")
	assert.Contains(t, err.Error(), "not connected")
	assert.Equal(t, 7.0, props.Float("c", 7))
}

func TestValidationError_Message(t *testing.T) {
	err := Invalid("wavelength must be positive, got %g", -1.0)
	assert.Equal(t, "wavelength must be positive, got -1", err.Error())

	var ve *ValidationError
	require.ErrorAs(t, fmt.Errorf("wrapped: %w", err), &ve)
	ve.Node = 3
	assert.Equal(t, "node_3: wavelength must be positive, got -1", ve.Error())
}

func TestCombination_SetSelection(t *testing.T) {
	variantA := func() Node {
		return newStub("a",
			Def("size", Param(proptype.Number(), proptype.NumberVal(1))),
			Def("only_a", Param(proptype.Number(), proptype.NumberVal(0))),
		)
	}
	variantB := func() Node {
		return newStub("b",
			Def("size", Param(proptype.IntRange(0, 5), proptype.IntVal(0))),
		)
	}
	c := NewCombination(Info{Type: "combo"}, Variant{"A", variantA}, Variant{"B", variantB})
	assert.Equal(t, []string{"A", "B"}, c.Variants())
	assert.Equal(t, "a", Unwrap(c).Info().Type)

	t.Run("carries adaptable values by key", func(t *testing.T) {
		require.NoError(t, c.SetInternalProp("size", proptype.NumberVal(3)))
		require.NoError(t, c.SetSelection(1))
		v, _ := c.InternalProp("size")
		assert.Equal(t, 3, v.Data)
		assert.Equal(t, "combo", c.Info().Type)
		assert.Equal(t, "b", Unwrap(c).Info().Type)
	})

	t.Run("drops values that no longer fit", func(t *testing.T) {
		require.NoError(t, c.SetSelection(0))
		require.NoError(t, c.SetInternalProp("size", proptype.NumberVal(9)))
		require.NoError(t, c.SetSelection(1))
		v, _ := c.InternalProp("size")
		assert.Equal(t, 0, v.Data)
	})

	t.Run("rejects out of range selection", func(t *testing.T) {
		assert.Error(t, c.SetSelection(2))
	})
}

func TestAs_FindsCapabilityThroughCombination(t *testing.T) {
	c := NewCombination(Info{Type: "combo"}, Variant{"seeded", func() Node { return newRandomStub() }})
	r, ok := As[Randomisable](c)
	require.True(t, ok)
	seed := int64(42)
	r.Randomise(&seed)
	assert.Equal(t, int64(42), r.Seed())

	_, ok = As[Animatable](c)
	assert.False(t, ok)
}

type randomStub struct {
	RandomBase
}

func newRandomStub() *randomStub {
	return &randomStub{RandomBase: NewRandomBase(Info{Type: "random"})}
}

func (n *randomStub) Compute(context.Context, Props, Refs, RefQuerier) (Results, error) {
	return Results{}, nil
}

func (n *randomStub) Clone() Node { return &randomStub{RandomBase: n.CloneRandomBase()} }

func TestDeriveSeeds(t *testing.T) {
	a := DeriveSeeds(42, 5)
	b := DeriveSeeds(42, 5)
	c := DeriveSeeds(43, 5)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 5)
}

func TestRandomBase_CloneKeepsSeed(t *testing.T) {
	n := newRandomStub()
	seed := int64(7)
	n.Randomise(&seed)
	c := n.Clone().(*randomStub)
	assert.Equal(t, int64(7), c.Seed())
	assert.True(t, c.PropDefs().Has(SeedKey))
}

func TestAnimation(t *testing.T) {
	a := NewAnimation(100 * time.Millisecond)
	assert.False(t, a.Reanimate(time.Second), "stopped animations never step")

	a.TogglePlay()
	assert.False(t, a.Reanimate(60*time.Millisecond))
	assert.True(t, a.Reanimate(60*time.Millisecond))
	assert.Equal(t, 1, a.TakeStep())
	assert.Equal(t, 0, a.TakeStep())

	assert.True(t, a.Reanimate(250*time.Millisecond))
	assert.Equal(t, 2, a.TakeStep())

	a.SetJumpTime(time.Second)
	assert.False(t, a.Reanimate(500*time.Millisecond), "a new interval restarts the countdown")
}

func TestStepPolicy_Advance(t *testing.T) {
	testCases := []struct {
		name   string
		policy StepPolicy
		want   []int
	}{
		{"cyclic", Cyclic, []int{1, 2, 0, 1, 2, 0}},
		{"pingpong", PingPong, []int{1, 2, 1, 0, 1, 2}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pos, dir := 0, 1
			var got []int
			for range tc.want {
				pos, dir = tc.policy.Advance(pos, dir, 3)
				got = append(got, pos)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

type selStub struct {
	Base
	parts int
}

func (n *selStub) Compute(context.Context, Props, Refs, RefQuerier) (Results, error) {
	return Results{"count": proptype.IntVal(n.parts)}, nil
}

func (n *selStub) Clone() Node { return &selStub{Base: n.CloneBase(), parts: n.parts} }

func (n *selStub) ExtractElement(_ Props, _ *vector.Element, id string) (nodeid.PropKey, error) {
	key := nodeid.PropKey("part_" + id)
	n.PropDefs().Set(key, ExtractedDef(proptype.Int(), id))
	return key, nil
}

func (n *selStub) IsPortRedundant(_ Props, key nodeid.PropKey) bool {
	return key == "part_2" && n.parts < 3
}

func (n *selStub) ExtractedValue(_ Results, key nodeid.PropKey) (proptype.Value, bool) {
	return proptype.IntVal(len(key)), true
}

func TestFinalCompute_PrunesRedundantPorts(t *testing.T) {
	n := &selStub{Base: NewBase(Info{Type: "sel"}, Def("count", Out(proptype.Int()))), parts: 3}
	_, err := n.ExtractElement(nil, nil, "1")
	require.NoError(t, err)
	_, err = n.ExtractElement(nil, nil, "2")
	require.NoError(t, err)

	results, pruned, err := FinalCompute(context.Background(), n, Props{}, Refs{}, nil)
	require.NoError(t, err)
	assert.Empty(t, pruned)
	assert.Contains(t, results, nodeid.PropKey("part_2"))

	n.parts = 2
	results, pruned, err = FinalCompute(context.Background(), n, Props{}, Refs{}, nil)
	require.NoError(t, err)
	assert.Equal(t, []nodeid.PropKey{"part_2"}, pruned)
	assert.NotContains(t, results, nodeid.PropKey("part_2"))
	assert.Contains(t, results, nodeid.PropKey("part_1"))
	assert.False(t, n.PropDefs().Has("part_2"))
}
