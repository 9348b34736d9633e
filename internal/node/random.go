package node

import (
	"math/rand/v2"

	"github.com/specialistvlad/vecgraph/internal/nodeid"
	"github.com/specialistvlad/vecgraph/internal/proptype"
)

// SeedKey is the internal property that stores a randomisable node's seed.
const SeedKey nodeid.PropKey = "seed"

// Randomisable nodes draw their randomness from a stored seed. Compute reads
// the seed only; Randomise is the only way it changes.
type Randomisable interface {
	// Randomise stores seed, or a fresh random seed when seed is nil.
	Randomise(seed *int64)
	Seed() int64
}

// SeedDef is the definition of the seed property.
func SeedDef() Entry {
	return Def(SeedKey, Internal(proptype.Int(), proptype.IntVal(0)).Named("Seed"))
}

// RandomBase is a Base that implements Randomisable through SeedKey.
type RandomBase struct {
	Base
}

// NewRandomBase builds a RandomBase with a seed definition appended to
// entries and a random initial seed.
func NewRandomBase(info Info, entries ...Entry) RandomBase {
	r := RandomBase{Base: NewBase(info, append(entries, SeedDef())...)}
	r.Randomise(nil)
	return r
}

func (r *RandomBase) Seed() int64 {
	v, ok := r.InternalProp(SeedKey)
	if !ok {
		return 0
	}
	return int64(v.AsInt())
}

func (r *RandomBase) Randomise(seed *int64) {
	s := rand.Int64()
	if seed != nil {
		s = *seed
	}
	r.internal[SeedKey] = proptype.IntVal(int(s))
}

// CloneRandomBase returns an independent copy with the same seed.
func (r *RandomBase) CloneRandomBase() RandomBase {
	return RandomBase{Base: r.CloneBase()}
}

// Rand returns a deterministic generator for seed.
func Rand(seed int64) *rand.Rand {
	s := uint64(seed)
	return rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
}

// DeriveSeeds returns n sub-seeds derived from seed. The same seed always
// yields the same sequence.
func DeriveSeeds(seed int64, n int) []int64 {
	r := Rand(seed)
	out := make([]int64, n)
	for i := range out {
		out[i] = r.Int64()
	}
	return out
}
