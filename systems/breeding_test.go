package systems

import (
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/cultivar/components"
	"github.com/pthm-cable/cultivar/config"
	"github.com/pthm-cable/cultivar/genetics"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return cfg
}

type breedFixture struct {
	world   ecs.World
	strains *ecs.Map1[components.Strain]
	sys     *BreedingSystem
}

func newBreedFixture(cfg *config.Config, seed int64) *breedFixture {
	f := &breedFixture{}
	f.world = *ecs.NewWorld()
	f.strains = ecs.NewMap1[components.Strain](&f.world)
	f.sys = NewBreedingSystem(&f.world, cfg, rand.New(rand.NewSource(seed)))
	return f
}

func (f *breedFixture) seedStrain(id uint32, name string, g genetics.Genome, stability int, quirks ...genetics.Quirk) ecs.Entity {
	s := components.Strain{
		ID:          id,
		Name:        name,
		Generation:  1,
		Genome:      g,
		Potency:     50,
		YieldAmount: 50,
		GrowthSpeed: 60,
		Stability:   stability,
		Quirks:      quirks,
		KnownGenes:  make(map[genetics.Gene]bool),
		Known:       make(map[genetics.Quirk]bool),
	}
	return f.strains.NewEntity(&s)
}

func genome(structure, resistance, aroma genetics.Pair) genetics.Genome {
	return genetics.Genome{
		genetics.Structure:  structure,
		genetics.Resistance: resistance,
		genetics.Aroma:      aroma,
	}
}

func TestSegregationDrawsFromParents(t *testing.T) {
	cfg := testConfig(t)
	f := newBreedFixture(cfg, 1)

	a := f.seedStrain(1, "A", genome(
		genetics.NewPair(genetics.Tall, genetics.Bushy),
		genetics.NewPair(genetics.Hardy, genetics.Frail),
		genetics.NewPair(genetics.Citrus, genetics.Lavender),
	), 80)
	b := f.seedStrain(2, "B", genome(
		genetics.NewPair(genetics.Tall, genetics.Bushy),
		genetics.NewPair(genetics.Hardy, genetics.Frail),
		genetics.NewPair(genetics.Mango, genetics.Pine),
	), 80)

	for i := 0; i < 200; i++ {
		child := f.strains.Get(f.sys.Breed(a, b, uint32(10+i), "child", nil))

		// Aroma: one allele from {C,L}, one from {M,P}, never two from the
		// same parent.
		aroma := child.Genome[genetics.Aroma]
		fromA := aroma.Has(genetics.Citrus) || aroma.Has(genetics.Lavender)
		fromB := aroma.Has(genetics.Mango) || aroma.Has(genetics.Pine)
		if !fromA || !fromB {
			t.Fatalf("cross %d: aroma %v not drawn from both parents", i, aroma)
		}

		if err := child.Genome.Validate(); err != nil {
			t.Fatalf("cross %d: invalid child genome: %v", i, err)
		}
	}
}

func TestHomozygousParentsBreedTrue(t *testing.T) {
	cfg := testConfig(t)
	f := newBreedFixture(cfg, 2)

	pure := genome(
		genetics.NewPair(genetics.Tall, genetics.Tall),
		genetics.NewPair(genetics.Hardy, genetics.Hardy),
		genetics.NewPair(genetics.Citrus, genetics.Citrus),
	)
	a := f.seedStrain(1, "A", pure, 80)
	b := f.seedStrain(2, "B", pure, 80)

	for i := 0; i < 50; i++ {
		child := f.strains.Get(f.sys.Breed(a, b, uint32(10+i), "child", nil))
		for _, gene := range genetics.Genes() {
			if child.Genome[gene] != pure[gene] {
				t.Fatalf("cross %d: locus %s = %v, want %v", i, gene, child.Genome[gene], pure[gene])
			}
		}
	}
}

func TestHeterozygousCrossRatio(t *testing.T) {
	cfg := testConfig(t)
	f := newBreedFixture(cfg, 3)

	het := genome(
		genetics.NewPair(genetics.Tall, genetics.Bushy),
		genetics.NewPair(genetics.Hardy, genetics.Hardy),
		genetics.NewPair(genetics.Citrus, genetics.Citrus),
	)
	a := f.seedStrain(1, "A", het, 80)
	b := f.seedStrain(2, "B", het, 80)

	const trials = 10000
	counts := map[genetics.Pair]int{}
	for i := 0; i < trials; i++ {
		child := f.strains.Get(f.sys.Breed(a, b, uint32(10+i), "child", nil))
		counts[child.Genome[genetics.Structure]]++
	}

	// Independent uniform draws give the 25/50/25 Punnett split.
	homoDom := counts[genetics.NewPair(genetics.Tall, genetics.Tall)]
	hetero := counts[genetics.NewPair(genetics.Tall, genetics.Bushy)]
	homoRec := counts[genetics.NewPair(genetics.Bushy, genetics.Bushy)]

	if homoDom+hetero+homoRec != trials {
		t.Fatalf("unexpected pair observed: %v", counts)
	}
	check := func(name string, got, want int) {
		if got < want-300 || got > want+300 {
			t.Errorf("%s: got %d, want ~%d", name, got, want)
		}
	}
	check("TT", homoDom, trials/4)
	check("Tt", hetero, trials/2)
	check("tt", homoRec, trials/4)
}

func TestFounderCrossOutcomes(t *testing.T) {
	cfg := testConfig(t)
	f := newBreedFixture(cfg, 4)

	// Two fully homozygous-opposite founder lines with split terpenes.
	sativa := f.seedStrain(1, "Sativa Line", genome(
		genetics.NewPair(genetics.Tall, genetics.Tall),
		genetics.NewPair(genetics.Frail, genetics.Frail),
		genetics.NewPair(genetics.Lavender, genetics.Pine),
	), 60)
	indica := f.seedStrain(2, "Indica Line", genome(
		genetics.NewPair(genetics.Bushy, genetics.Bushy),
		genetics.NewPair(genetics.Hardy, genetics.Hardy),
		genetics.NewPair(genetics.Citrus, genetics.Mango),
	), 80)

	wantStructure := genetics.NewPair(genetics.Tall, genetics.Bushy)
	wantResistance := genetics.NewPair(genetics.Hardy, genetics.Frail)
	wantAromas := map[genetics.Pair]bool{
		genetics.NewPair(genetics.Citrus, genetics.Lavender): true,
		genetics.NewPair(genetics.Citrus, genetics.Pine):     true,
		genetics.NewPair(genetics.Lavender, genetics.Mango):  true,
		genetics.NewPair(genetics.Mango, genetics.Pine):      true,
	}

	for i := 0; i < 100; i++ {
		child := f.strains.Get(f.sys.Breed(sativa, indica, uint32(10+i), "child", nil))

		if child.Genome[genetics.Structure] != wantStructure {
			t.Fatalf("cross %d: structure %v, want %v", i, child.Genome[genetics.Structure], wantStructure)
		}
		if child.Genome[genetics.Resistance] != wantResistance {
			t.Fatalf("cross %d: resistance %v, want %v", i, child.Genome[genetics.Resistance], wantResistance)
		}
		if aroma := child.Genome[genetics.Aroma]; !wantAromas[aroma] {
			t.Fatalf("cross %d: aroma %v not a cross of the parent terpenes", i, aroma)
		}
	}
}

func TestGenerationAndLineage(t *testing.T) {
	cfg := testConfig(t)
	f := newBreedFixture(cfg, 5)

	a := f.seedStrain(7, "A", genome(
		genetics.NewPair(genetics.Tall, genetics.Tall),
		genetics.NewPair(genetics.Hardy, genetics.Hardy),
		genetics.NewPair(genetics.Citrus, genetics.Citrus),
	), 80)
	b := f.seedStrain(9, "B", genome(
		genetics.NewPair(genetics.Bushy, genetics.Bushy),
		genetics.NewPair(genetics.Frail, genetics.Frail),
		genetics.NewPair(genetics.Mango, genetics.Mango),
	), 80)
	f.strains.Get(b).Generation = 3

	child := f.strains.Get(f.sys.Breed(a, b, 10, "Child", nil))
	if child.Generation != 4 {
		t.Errorf("generation = %d, want 4", child.Generation)
	}
	if child.ParentA != 7 || child.ParentB != 9 {
		t.Errorf("lineage = (%d, %d), want (7, 9)", child.ParentA, child.ParentB)
	}
	if child.Founder() {
		t.Error("bred strain reports as founder")
	}
}

func TestStabilityDecayAndFloor(t *testing.T) {
	cfg := testConfig(t)
	f := newBreedFixture(cfg, 6)

	pure := genome(
		genetics.NewPair(genetics.Tall, genetics.Tall),
		genetics.NewPair(genetics.Hardy, genetics.Hardy),
		genetics.NewPair(genetics.Citrus, genetics.Citrus),
	)
	high := f.seedStrain(1, "High", pure, 80)
	mid := f.seedStrain(2, "Mid", pure, 60)
	low := f.seedStrain(3, "Low", pure, 12)
	low2 := f.seedStrain(4, "Low2", pure, 12)

	for i := 0; i < 100; i++ {
		child := f.strains.Get(f.sys.Breed(high, mid, uint32(10+i), "child", nil))
		lo := 70 - cfg.Breeding.StabilityDecayMax
		hi := 70 - cfg.Breeding.StabilityDecayMin
		if child.Stability < lo || child.Stability > hi {
			t.Fatalf("cross %d: stability %d outside [%d, %d]", i, child.Stability, lo, hi)
		}
	}

	// Parents at the bottom always clamp to the floor.
	for i := 0; i < 50; i++ {
		child := f.strains.Get(f.sys.Breed(low, low2, uint32(200+i), "child", nil))
		if child.Stability != cfg.Breeding.StabilityFloor {
			t.Fatalf("cross %d: stability %d, want floor %d", i, child.Stability, cfg.Breeding.StabilityFloor)
		}
	}
}

func TestBlendModeAveragesWithNoise(t *testing.T) {
	cfg := testConfig(t)
	cfg.Breeding.Mode = "blend"
	f := newBreedFixture(cfg, 7)

	pure := genome(
		genetics.NewPair(genetics.Tall, genetics.Tall),
		genetics.NewPair(genetics.Hardy, genetics.Hardy),
		genetics.NewPair(genetics.Citrus, genetics.Citrus),
	)
	a := f.seedStrain(1, "A", pure, 80)
	b := f.seedStrain(2, "B", pure, 80)
	f.strains.Get(a).Potency = 40
	f.strains.Get(b).Potency = 60

	for i := 0; i < 200; i++ {
		child := f.strains.Get(f.sys.Breed(a, b, uint32(10+i), "child", nil))

		// Average 50 plus noise capped by the config band.
		maxNoise := cfg.Breeding.BlendNoiseBase - float64(child.Stability)*cfg.Breeding.BlendNoiseSlope
		lo := int(50 - maxNoise - 1)
		hi := int(50 + maxNoise + 1)
		if child.Potency < lo || child.Potency > hi {
			t.Fatalf("cross %d: blended potency %d outside [%d, %d] (stability %d)",
				i, child.Potency, lo, hi, child.Stability)
		}
	}
}

func TestQuirkInheritance(t *testing.T) {
	cfg := testConfig(t)
	f := newBreedFixture(cfg, 8)

	pure := genome(
		genetics.NewPair(genetics.Tall, genetics.Tall),
		genetics.NewPair(genetics.Hardy, genetics.Hardy),
		genetics.NewPair(genetics.Citrus, genetics.Citrus),
	)
	a := f.seedStrain(1, "A", pure, 80,
		genetics.Vigorous, genetics.DenseBuds, genetics.FastFinisher)
	b := f.seedStrain(2, "B", pure, 80,
		genetics.MoldProne, genetics.NutrientHog, genetics.Brittle)

	for i := 0; i < 300; i++ {
		child := f.strains.Get(f.sys.Breed(a, b, uint32(10+i), "child", nil))

		if len(child.Quirks) < 1 {
			t.Fatalf("cross %d: no quirks inherited from quirked parents", i)
		}
		if len(child.Quirks) > genetics.MaxQuirks {
			t.Fatalf("cross %d: %d quirks exceeds cap %d", i, len(child.Quirks), genetics.MaxQuirks)
		}

		// All quirks come from the parent union or a novel mutation, which
		// is still a catalog quirk; either way the catalog must know them.
		for _, q := range child.Quirks {
			if _, ok := genetics.QuirkCatalog[q]; !ok {
				t.Fatalf("cross %d: unknown quirk %v", i, q)
			}
		}

		// Exactly one quirk is revealed at creation.
		if len(child.Known) != 1 {
			t.Fatalf("cross %d: %d quirks revealed, want 1", i, len(child.Known))
		}
		for q := range child.Known {
			if !child.HasQuirk(q) {
				t.Fatalf("cross %d: revealed quirk %s not carried", i, q)
			}
		}
	}
}

func TestSequencerRevealsGenotype(t *testing.T) {
	cfg := testConfig(t)
	f := newBreedFixture(cfg, 9)

	pure := genome(
		genetics.NewPair(genetics.Tall, genetics.Tall),
		genetics.NewPair(genetics.Hardy, genetics.Hardy),
		genetics.NewPair(genetics.Citrus, genetics.Citrus),
	)
	a := f.seedStrain(1, "A", pure, 80)
	b := f.seedStrain(2, "B", pure, 80)

	plain := f.strains.Get(f.sys.Breed(a, b, 10, "Plain", nil))
	if len(plain.KnownGenes) != 0 {
		t.Errorf("without sequencer: %d loci visible, want 0", len(plain.KnownGenes))
	}

	upgrades := components.UpgradeSet{components.UpgradeSequencer: true}
	sequenced := f.strains.Get(f.sys.Breed(a, b, 11, "Sequenced", upgrades))
	for _, gene := range genetics.Genes() {
		if !sequenced.KnownGenes[gene] {
			t.Errorf("with sequencer: locus %s hidden", gene)
		}
	}
}
