package custom

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/specialistvlad/vecgraph/internal/ctxlog"
	"github.com/specialistvlad/vecgraph/internal/graph"
	"github.com/specialistvlad/vecgraph/internal/node"
	"github.com/specialistvlad/vecgraph/internal/nodeid"
	"github.com/specialistvlad/vecgraph/internal/proptype"
	"github.com/specialistvlad/vecgraph/internal/vector"
)

// TypeName is the registry type of every custom node.
const TypeName = "custom"

// SpeedKey scales the time fed to inner animations.
const SpeedKey nodeid.PropKey = "speed"

// Node evaluates a private copy of a definition's subgraph.
type Node struct {
	node.Base
	def        *Definition
	inner      *graph.Manager
	feederBase nodeid.NodeID
	feeders    []nodeid.NodeID
	playing    bool
}

// New instantiates def. The result also implements node.Randomisable when
// any inner node does, and node.Animatable when any inner node does.
func New(def *Definition) (node.Node, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	inner := def.Graph.Clone()

	var entries []node.Entry
	for _, p := range def.Promotions {
		n, _ := inner.Node(p.Port.Node)
		d, _ := n.PropDefs().Get(p.Port.Key)
		d.DisplayName = p.Name
		d.Extracted = false
		if p.Port.IsInput {
			d.Output = node.Forbidden
		} else {
			d.Input = node.Forbidden
			d.Default = nil
		}
		entries = append(entries, node.Def(p.Key(), d))
	}

	c := &Node{
		def:        def,
		inner:      inner,
		feederBase: feederBase(inner),
	}
	random, animated := c.innerCapabilities()
	if random {
		entries = append(entries, node.SeedDef())
	}
	if animated {
		entries = append(entries, node.Def(SpeedKey,
			node.Internal(proptype.Number().AtLeast(0), proptype.NumberVal(1)).Named("Speed")))
	}
	c.Base = node.NewBase(node.Info{
		Type:        TypeName,
		Name:        def.Name,
		Category:    "custom",
		Description: fmt.Sprintf("Custom node with %d inner nodes.", len(inner.Nodes())),
	}, entries...)
	if random {
		c.randomise(nil)
	}
	return c.wrap(), nil
}

func feederBase(m *graph.Manager) nodeid.NodeID {
	ids := m.Nodes()
	if len(ids) == 0 {
		return 1
	}
	return ids[len(ids)-1] + 1
}

func (c *Node) innerCapabilities() (random, animated bool) {
	for _, id := range c.inner.Nodes() {
		n, _ := c.inner.Node(id)
		if _, ok := node.As[node.Randomisable](n); ok {
			random = true
		}
		if _, ok := node.As[node.Animatable](n); ok {
			animated = true
		}
	}
	return random, animated
}

// wrap returns c behind the capability set its inner graph supports.
func (c *Node) wrap() node.Node {
	random, animated := c.innerCapabilities()
	switch {
	case random && animated:
		return &randomAnimated{c}
	case random:
		return &randomised{c}
	case animated:
		return &animatedNode{c}
	default:
		return c
	}
}

// Definition returns the definition c was built from.
func (c *Node) Definition() *Definition { return c.def }

// Inner exposes the private subgraph, e.g. for inspecting inner previews.
func (c *Node) Inner() *graph.Manager { return c.inner }

func (c *Node) promotion(key nodeid.PropKey) (Promotion, bool) {
	for _, p := range c.def.Promotions {
		if p.Key() == key {
			return p, true
		}
	}
	return Promotion{}, false
}

// InternalProp reads promoted inputs from the inner node.
func (c *Node) InternalProp(key nodeid.PropKey) (proptype.Value, bool) {
	if p, ok := c.promotion(key); ok && p.Port.IsInput {
		return c.inner.InternalProperty(p.Port.Node, p.Port.Key)
	}
	return c.Base.InternalProp(key)
}

// SetInternalProp writes promoted inputs through to the inner node.
func (c *Node) SetInternalProp(key nodeid.PropKey, v proptype.Value) error {
	if p, ok := c.promotion(key); ok && p.Port.IsInput {
		return c.inner.SetInternalProperty(context.Background(), p.Port.Node, p.Port.Key, v)
	}
	return c.Base.SetInternalProp(key, v)
}

// StoredProps includes the promoted inputs' inner values.
func (c *Node) StoredProps() map[nodeid.PropKey]proptype.Value {
	out := c.Base.StoredProps()
	for _, p := range c.def.Promotions {
		if !p.Port.IsInput {
			continue
		}
		n, _ := c.inner.Node(p.Port.Node)
		if v, ok := n.StoredProps()[p.Port.Key]; ok {
			out[p.Key()] = v
		}
	}
	return out
}

func (c *Node) Compute(ctx context.Context, props node.Props, refs node.Refs, q node.RefQuerier) (node.Results, error) {
	ctx = ctxlog.With(ctx, "custom", c.def.Name)
	if err := c.rewire(ctx, refs, q); err != nil {
		return nil, err
	}
	c.reseed(ctx)

	report, err := c.inner.ComputeAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.innerFailure(report); err != nil {
		return nil, err
	}

	results := node.Results{}
	for _, p := range c.def.Promotions {
		if p.Port.IsInput {
			continue
		}
		d, _ := c.PropDefs().Get(p.Key())
		v, ok, err := c.inner.ResolveProperty(p.Port, d.Type)
		if err != nil {
			return nil, err
		}
		if ok {
			results[p.Key()] = v
		}
	}
	return results, nil
}

// rewire replaces the feeder nodes of the previous compute with one feeder
// per distinct external ref of each promoted input.
func (c *Node) rewire(ctx context.Context, refs node.Refs, q node.RefQuerier) error {
	for _, id := range c.feeders {
		if err := c.inner.RemoveNode(ctx, id); err != nil {
			return err
		}
	}
	c.feeders = c.feeders[:0]

	for _, p := range c.def.Promotions {
		if !p.Port.IsInput {
			continue
		}
		d, _ := c.PropDefs().Get(p.Key())
		var seen []nodeid.RefID
		for _, ref := range refs[p.Key()] {
			if slices.Contains(seen, ref) {
				continue
			}
			seen = append(seen, ref)

			v, ok, err := q.Resolve(ref, d.Type)
			if err != nil {
				return err
			}
			if !ok {
				return node.Invalid("input %q is waiting for an upstream value", p.Name)
			}
			id := c.feederBase + nodeid.NodeID(len(c.feeders))
			if err := c.inner.AddNode(ctx, id, newFeeder(v)); err != nil {
				return err
			}
			c.feeders = append(c.feeders, id)
			if err := c.inner.AddEdge(ctx, nodeid.Edge(id, feederKey, p.Port.Node, p.Port.Key)); err != nil {
				return fmt.Errorf("wiring %q: %w", p.Name, err)
			}
		}
	}
	return nil
}

// reseed hands each inner randomisable node a sub-seed of the outer seed,
// in the topological order of the definition's own nodes. Feeders are left
// out so external wiring never shifts which node gets which seed.
func (c *Node) reseed(ctx context.Context) {
	v, ok := c.Base.InternalProp(node.SeedKey)
	if !ok {
		return
	}
	own := slices.DeleteFunc(c.inner.Nodes(), func(id nodeid.NodeID) bool {
		return slices.Contains(c.feeders, id)
	})
	order, err := c.inner.Topology().TopoOrderSubgraph(own)
	if err != nil {
		return
	}
	var targets []nodeid.NodeID
	for _, id := range order {
		n, _ := c.inner.Node(id)
		if _, ok := node.As[node.Randomisable](n); ok {
			targets = append(targets, id)
		}
	}
	seeds := node.DeriveSeeds(int64(v.AsInt()), len(targets))
	for i, id := range targets {
		_ = c.inner.Randomise(ctx, id, &seeds[i])
	}
}

// innerFailure turns the first inner validation failure into the custom
// node's own error.
func (c *Node) innerFailure(report graph.Report) error {
	if report.OK() {
		return nil
	}
	for _, id := range c.inner.Nodes() {
		err, failed := report.Failed[id]
		if !failed {
			continue
		}
		var upstream *graph.UpstreamError
		if errors.As(err, &upstream) {
			continue
		}
		var ve *node.ValidationError
		if errors.As(err, &ve) {
			n, _ := c.inner.Node(id)
			return node.Invalid("inner %s (%s): %s", id, n.Info().Name, ve.Message)
		}
		return err
	}
	return node.Invalid("inner graph failed")
}

func (c *Node) Visualise(results node.Results) *vector.Element {
	if c.def.Visualise != 0 {
		return c.inner.Display(c.def.Visualise)
	}
	return c.Base.Visualise(results)
}

func (c *Node) Clone() node.Node {
	cc := &Node{
		Base:       c.CloneBase(),
		def:        c.def,
		inner:      c.inner.Clone(),
		feederBase: c.feederBase,
		feeders:    slices.Clone(c.feeders),
		playing:    c.playing,
	}
	return cc.wrap()
}

func (c *Node) randomise(seed *int64) {
	s := rand.Int64()
	if seed != nil {
		s = *seed
	}
	_ = c.Base.SetInternalProp(node.SeedKey, proptype.IntVal(int(s)))
}

func (c *Node) seed() int64 {
	v, ok := c.Base.InternalProp(node.SeedKey)
	if !ok {
		return 0
	}
	return int64(v.AsInt())
}

// togglePlay starts or stops every inner animation together.
func (c *Node) togglePlay() {
	c.playing = !c.playing
	for _, id := range c.inner.Nodes() {
		n, _ := c.inner.Node(id)
		if a, ok := node.As[node.Animatable](n); ok && a.Playing() != c.playing {
			a.TogglePlay()
		}
	}
}

// reanimate forwards elapsed time, scaled by the speed property, to the
// inner animations.
func (c *Node) reanimate(elapsed time.Duration) bool {
	if !c.playing {
		return false
	}
	speed := 1.0
	if v, ok := c.Base.InternalProp(SpeedKey); ok {
		speed = v.AsFloat()
	}
	return len(c.inner.Reanimate(time.Duration(float64(elapsed)*speed))) > 0
}

// The wrappers below export Node's randomisation and animation behaviour
// only when the inner graph has it, so node.As reports the right
// capabilities.

type randomised struct{ *Node }

func (r *randomised) Unwrap() node.Node  { return r.Node }
func (r *randomised) Randomise(s *int64) { r.randomise(s) }
func (r *randomised) Seed() int64        { return r.seed() }

type animatedNode struct{ *Node }

func (a *animatedNode) Unwrap() node.Node                    { return a.Node }
func (a *animatedNode) Playing() bool                        { return a.playing }
func (a *animatedNode) TogglePlay()                          { a.togglePlay() }
func (a *animatedNode) Reanimate(elapsed time.Duration) bool { return a.reanimate(elapsed) }

type randomAnimated struct{ *Node }

func (r *randomAnimated) Unwrap() node.Node                    { return r.Node }
func (r *randomAnimated) Randomise(s *int64)                   { r.randomise(s) }
func (r *randomAnimated) Seed() int64                          { return r.seed() }
func (r *randomAnimated) Playing() bool                        { return r.playing }
func (r *randomAnimated) TogglePlay()                          { r.togglePlay() }
func (r *randomAnimated) Reanimate(elapsed time.Duration) bool { return r.reanimate(elapsed) }
