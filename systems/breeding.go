package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/cultivar/components"
	"github.com/pthm-cable/cultivar/config"
	"github.com/pthm-cable/cultivar/genetics"
)

// BreedingSystem combines two parent strains into a child strain. It does
// not enforce funds or naming rules; those are caller responsibilities.
type BreedingSystem struct {
	strains *ecs.Map1[components.Strain]
	cfg     *config.Config
	rng     *rand.Rand
}

// NewBreedingSystem creates a new breeding system.
func NewBreedingSystem(w *ecs.World, cfg *config.Config, rng *rand.Rand) *BreedingSystem {
	return &BreedingSystem{
		strains: ecs.NewMap1[components.Strain](w),
		cfg:     cfg,
		rng:     rng,
	}
}

// Breed crosses two parents into a new strain entity. The inheritance mode
// comes from config: "mendelian" derives stats from the child genome,
// "blend" averages parent stats with stability-scaled noise. Both modes
// segregate alleles the same way.
func (s *BreedingSystem) Breed(parentA, parentB ecs.Entity, id uint32, name string, upgrades components.UpgradeSet) ecs.Entity {
	a := s.strains.Get(parentA)
	b := s.strains.Get(parentB)

	child := components.Strain{
		ID:         id,
		Name:       name,
		Generation: max(a.Generation, b.Generation) + 1,
		ParentA:    a.ID,
		ParentB:    b.ID,
		Genome:     s.segregate(a.Genome, b.Genome),
		KnownGenes: make(map[genetics.Gene]bool),
		Known:      make(map[genetics.Quirk]bool),
	}

	child.Stability = s.decayStability((a.Stability + b.Stability) / 2)

	if s.cfg.Breeding.Mode == "blend" {
		s.blendStats(&child, a, b)
	} else {
		stats := genetics.Derive(child.Genome, s.rng)
		child.Potency = stats.Potency
		child.YieldAmount = stats.Yield
		child.GrowthSpeed = stats.Speed
	}

	child.Quirks = s.inheritQuirks(a, b, child.Stability)

	// Exactly one quirk is revealed up front; the rest surface during
	// cultivation.
	if len(child.Quirks) > 0 {
		child.Known[child.Quirks[s.rng.Intn(len(child.Quirks))]] = true
	}

	// A sequencer shows the full genotype immediately.
	if upgrades.Has(components.UpgradeSequencer) {
		for _, gene := range genetics.Genes() {
			child.KnownGenes[gene] = true
		}
	}

	return s.strains.NewEntity(&child)
}

// segregate draws one allele uniformly at random from each parent's pair,
// independently per locus, and stores the canonical pair. For het x het
// this yields the 25/50/25 Punnett distribution; no extra special-casing
// and no bias toward negative outcomes.
func (s *BreedingSystem) segregate(a, b genetics.Genome) genetics.Genome {
	child := make(genetics.Genome, len(genetics.Genes()))
	for _, gene := range genetics.Genes() {
		fromA := a[gene][s.rng.Intn(2)]
		fromB := b[gene][s.rng.Intn(2)]
		child[gene] = genetics.NewPair(fromA, fromB)
	}
	return child
}

// decayStability applies the per-cross drift toward instability.
func (s *BreedingSystem) decayStability(avg int) int {
	lo := s.cfg.Breeding.StabilityDecayMin
	hi := s.cfg.Breeding.StabilityDecayMax
	decay := lo + s.rng.Intn(hi-lo+1)
	stability := avg - decay
	if stability < s.cfg.Breeding.StabilityFloor {
		stability = s.cfg.Breeding.StabilityFloor
	}
	return stability
}

// blendStats sets child stats to the parent averages plus uniform noise in
// a band that narrows as the child's stability rises.
func (s *BreedingSystem) blendStats(child *components.Strain, a, b *components.Strain) {
	noise := s.cfg.Breeding.BlendNoiseBase - float64(child.Stability)*s.cfg.Breeding.BlendNoiseSlope
	if noise < 0 {
		noise = 0
	}

	blend := func(x, y int) int {
		v := float64(x+y)/2 + (s.rng.Float64()*2-1)*noise
		n := int(v)
		if n < genetics.StatMin {
			return genetics.StatMin
		}
		if n > genetics.StatMax {
			return genetics.StatMax
		}
		return n
	}

	child.Potency = blend(a.Potency, b.Potency)
	child.YieldAmount = blend(a.YieldAmount, b.YieldAmount)
	child.GrowthSpeed = blend(a.GrowthSpeed, b.GrowthSpeed)
}

// inheritQuirks builds the child quirk set: one guaranteed pick from the
// parent union, the rest passed down by weighted chance (negative quirks
// inherit more readily), plus a possible novel mutation scaled by how
// unstable the child is. The final set is capped by random truncation.
func (s *BreedingSystem) inheritQuirks(a, b *components.Strain, stability int) []genetics.Quirk {
	union := make([]genetics.Quirk, 0, len(a.Quirks)+len(b.Quirks))
	seen := make(map[genetics.Quirk]bool)
	for _, q := range append(append([]genetics.Quirk{}, a.Quirks...), b.Quirks...) {
		if !seen[q] {
			seen[q] = true
			union = append(union, q)
		}
	}

	var quirks []genetics.Quirk
	have := make(map[genetics.Quirk]bool)
	add := func(q genetics.Quirk) {
		if !have[q] {
			have[q] = true
			quirks = append(quirks, q)
		}
	}

	// At least one parent quirk is guaranteed through.
	if len(union) > 0 {
		add(union[s.rng.Intn(len(union))])
	}

	for _, q := range union {
		info := genetics.QuirkCatalog[q]
		p := s.cfg.Breeding.QuirkBaseChance * info.Weight
		if info.Negative {
			p *= s.cfg.Breeding.QuirkNegativeMult
		}
		if s.rng.Float64() < p {
			add(q)
		}
	}

	// Novel mutation, more likely the less stable the cross.
	if s.rng.Float64() < float64(100-stability)/200 {
		all := genetics.Quirks()
		add(all[s.rng.Intn(len(all))])
	}

	// Cap via uniform random sampling.
	for len(quirks) > genetics.MaxQuirks {
		i := s.rng.Intn(len(quirks))
		quirks = append(quirks[:i], quirks[i+1:]...)
	}

	return quirks
}
