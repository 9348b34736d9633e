package registry

import (
	"context"
	"testing"

	"github.com/specialistvlad/vecgraph/internal/custom"
	"github.com/specialistvlad/vecgraph/internal/graph"
	"github.com/specialistvlad/vecgraph/internal/node"
	"github.com/specialistvlad/vecgraph/internal/nodeid"
	"github.com/specialistvlad/vecgraph/internal/proptype"
	"github.com/specialistvlad/vecgraph/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testModule struct{}

func (testModule) Register(r *Registry) {
	r.RegisterNode("const", "test", func() node.Node { return testutil.NewConst(proptype.NumberVal(1)) })
	r.RegisterNode("scale", "test", func() node.Node { return testutil.NewScale() })
}

func TestCreate(t *testing.T) {
	r := New(testModule{})
	assert.Equal(t, []string{"const", "scale"}, r.Types())

	n, err := r.Create("scale")
	require.NoError(t, err)
	assert.Equal(t, "scale", n.Info().Type)

	_, err = r.Create("nope")
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestRegisterNode_PanicsOnDuplicate(t *testing.T) {
	r := New(testModule{})
	assert.Panics(t, func() { r.RegisterNode("scale", "test", func() node.Node { return testutil.NewScale() }) })
	assert.Panics(t, func() { r.RegisterNode(custom.TypeName, "test", func() node.Node { return testutil.NewScale() }) })
}

func TestValidateRegistry(t *testing.T) {
	t.Run("consistent registry", func(t *testing.T) {
		require.NoError(t, New(testModule{}).ValidateRegistry(context.Background()))
	})

	t.Run("name mismatch", func(t *testing.T) {
		r := New()
		r.RegisterNode("alias", "test", func() node.Node { return testutil.NewScale() })
		err := r.ValidateRegistry(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "node reports type 'scale'")
	})
}

func TestDefinitions(t *testing.T) {
	tmpl := graph.New()
	require.NoError(t, tmpl.AddNode(context.Background(), 1, testutil.NewScale()))
	def := &custom.Definition{
		Name:       "double",
		Graph:      tmpl,
		Promotions: []custom.Promotion{{Port: nodeid.Out(1, "out"), Name: "out"}},
	}

	r := New()
	require.NoError(t, r.RegisterDefinition(def))
	assert.Error(t, r.RegisterDefinition(&custom.Definition{Graph: tmpl}), "definitions need a name")

	n, err := r.CreateCustom("double")
	require.NoError(t, err)
	assert.Equal(t, custom.TypeName, n.Info().Type)
	assert.Equal(t, "double", n.Info().Name)
	assert.Len(t, r.Definitions(), 1)

	_, err = r.CreateCustom("triple")
	assert.ErrorIs(t, err, ErrUnknownType)
}
