package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/specialistvlad/vecgraph/internal/node"
	"github.com/specialistvlad/vecgraph/internal/nodeid"
	"github.com/specialistvlad/vecgraph/internal/proptype"
	"github.com/specialistvlad/vecgraph/internal/registry"
	"github.com/specialistvlad/vecgraph/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeSession builds a session with build and saves it into a temp dir.
func writeSession(t *testing.T, reg *registry.Registry, build func(s *session.Session)) string {
	t.Helper()
	s := session.New(reg)
	build(s)
	path := filepath.Join(t.TempDir(), "in.hcl")
	require.NoError(t, s.SaveFile(context.Background(), path))
	return path
}

func add(t *testing.T, s *session.Session, typeName string) nodeid.NodeID {
	t.Helper()
	id, err := s.AddNode(context.Background(), typeName)
	require.NoError(t, err)
	return id
}

func TestNewConfig(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"session only", Config{SessionPath: "a.hcl"}, ""},
		{"preview of an empty session", Config{Preview: true}, ""},
		{"nothing to do", Config{}, "nothing to do"},
		{"negative frames", Config{SessionPath: "a.hcl", Frames: -1}, "frames must not be negative"},
		{"frames without tick", Config{SessionPath: "a.hcl", Frames: 2}, "tick must be positive"},
		{"frames with tick", Config{SessionPath: "a.hcl", Frames: 2, Tick: time.Second}, ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := NewConfig(tc.cfg)
			if tc.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, tc.cfg, *cfg)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestNewApp_RegistersCoreModules(t *testing.T) {
	a, _ := SetupAppTest(t, &Config{Preview: true})
	for _, typ := range []string{"rectangle", "fill", "shape_repeater", "sine_warp", "range", "oscillator", "random_iterator"} {
		_, err := a.Registry().Create(typ)
		assert.NoError(t, err, typ)
	}
}

func TestRun_ReseedsAnimatesAndSaves(t *testing.T) {
	ctx := context.Background()
	seed := int64(7)
	out := filepath.Join(t.TempDir(), "out.hcl")
	cfg := &Config{SavePath: out, Preview: true, Frames: 3, Tick: 100 * time.Millisecond, Seed: &seed}
	a, buf := SetupAppTest(t, cfg)

	cfg.SessionPath = writeSession(t, a.Registry(), func(s *session.Session) {
		osc := add(t, s, "oscillator")
		rect := add(t, s, "rectangle")
		col := add(t, s, "random_colour")
		require.NoError(t, s.Manager.AddEdge(ctx, nodeid.Edge(osc, "value", rect, "width")))
		require.NoError(t, s.Manager.AddEdge(ctx, nodeid.Edge(col, "colour", rect, "fill")))
	})

	require.NoError(t, a.Run(ctx))

	logs := buf.String()
	assert.Contains(t, logs, "Session loaded.")
	assert.Contains(t, logs, "Reseeded randomisable nodes.")
	assert.Contains(t, logs, "Running frames.")
	assert.Contains(t, logs, "node_1 (oscillator)")
	assert.Contains(t, logs, "node_2 (rectangle)")
	assert.Contains(t, logs, "path points=4 closed=true")
	assert.Contains(t, logs, "Session saved.")

	saved, err := session.LoadFile(ctx, out, a.Registry())
	require.NoError(t, err)
	n, ok := saved.Manager.Node(3)
	require.True(t, ok)
	r, ok := node.As[node.Randomisable](n)
	require.True(t, ok)
	assert.Equal(t, node.DeriveSeeds(seed, 1)[0], r.Seed())
	assert.Equal(t, nodeid.NodeID(4), saved.NextID())
}

func TestRun_PreviewShowsErrorCards(t *testing.T) {
	ctx := context.Background()
	cfg := &Config{Preview: true}
	a, buf := SetupAppTest(t, cfg)
	cfg.SessionPath = writeSession(t, a.Registry(), func(s *session.Session) {
		rect := add(t, s, "rectangle")
		require.NoError(t, s.Manager.SetInternalProperty(ctx, rect, "width", proptype.NumberVal(-1)))
	})

	require.NoError(t, a.Run(ctx))
	assert.Contains(t, buf.String(), "Node has no results.")
	assert.Contains(t, buf.String(), `error "Error": width and height must not be negative`)
}

func TestRun_FramesWithoutAnimations(t *testing.T) {
	cfg := &Config{Frames: 2, Tick: time.Second, Preview: true}
	a, buf := SetupAppTest(t, cfg)
	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, buf.String(), "No animatable nodes found")
}

func TestRun_LoadError(t *testing.T) {
	cfg := &Config{SessionPath: filepath.Join(t.TempDir(), "missing.hcl")}
	a, _ := SetupAppTest(t, cfg)
	err := a.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load session")
}

func TestRun_LibraryDefinitionsAreUsable(t *testing.T) {
	lib := filepath.Join(t.TempDir(), "dots.hcl")
	require.NoError(t, os.WriteFile(lib, []byte(`
custom_node "dot" {
  node "node_1" { type = "ellipse" }
  promote {
    port = "node_1.out.shape"
    name = "shape"
  }
}
`), 0644))
	sessionPath := filepath.Join(t.TempDir(), "in.hcl")
	require.NoError(t, os.WriteFile(sessionPath, []byte(`
version = 1

node "node_1" {
  type   = "custom"
  custom = "dot"
}
`), 0644))

	a, buf := SetupAppTest(t, &Config{SessionPath: sessionPath, LibraryPath: lib, Preview: true})
	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, buf.String(), "Custom node library loaded.")
	assert.Contains(t, buf.String(), "node_1 (custom)")
	assert.Contains(t, buf.String(), "ellipse rx=0.5 ry=0.5")

	a, _ = SetupAppTest(t, &Config{SessionPath: sessionPath, LibraryPath: filepath.Join(t.TempDir(), "none")})
	err := a.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load library")
}
