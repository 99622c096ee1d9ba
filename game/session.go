// Package game owns the cultivation session: the ECS world of strains,
// batches, and rooms, plus funds, season, and unlocked upgrades. All state
// mutation funnels through Session operations; presentation code never
// touches core fields directly.
package game

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/cultivar/components"
	"github.com/pthm-cable/cultivar/config"
	"github.com/pthm-cable/cultivar/genetics"
	"github.com/pthm-cable/cultivar/systems"
)

// Re-exported operation failures.
var (
	ErrInsufficientFunds = systems.ErrInsufficientFunds
	ErrInvalidSelection  = systems.ErrInvalidSelection
)

// Session is the aggregate simulation state for one playthrough.
type Session struct {
	world ecs.World
	cfg   *config.Config
	rng   *rand.Rand

	strainMapper *ecs.Map1[components.Strain]
	batchMapper  *ecs.Map1[components.Batch]
	roomMapper   *ecs.Map1[components.Room]
	strainFilter *ecs.Filter1[components.Strain]
	batchFilter  *ecs.Filter1[components.Batch]
	roomFilter   *ecs.Filter1[components.Room]

	breeding *systems.BreedingSystem
	growth   *systems.GrowthSystem
	curing   *systems.CuringSystem
	market   *systems.MarketSystem

	strainByID map[uint32]ecs.Entity

	funds      int
	season     int
	overhead   int
	breedsLeft int
	sellsLeft  int
	upgrades   components.UpgradeSet
	gameOver   bool

	nextStrainID uint32
	nextBatchID  uint32
	nextRoomID   uint32
}

// NewSession builds a fresh session from config: founder strains, empty
// rooms, starting funds. The seed drives all gameplay randomness; market
// derivation uses its own per-season generators and is unaffected.
func NewSession(cfg *config.Config, seed int64) (*Session, error) {
	s := newEmptySession(cfg, seed)

	for _, f := range cfg.Founders {
		if _, err := s.seedFounder(f); err != nil {
			return nil, fmt.Errorf("seeding founder %q: %w", f.Name, err)
		}
	}

	for i := 0; i < cfg.Facility.Rooms; i++ {
		s.nextRoomID++
		s.roomMapper.NewEntity(&components.Room{ID: s.nextRoomID, Substrate: "soil"})
	}

	return s, nil
}

// newEmptySession wires the world, systems, and counters without content.
func newEmptySession(cfg *config.Config, seed int64) *Session {
	s := &Session{
		cfg:        cfg,
		rng:        rand.New(rand.NewSource(seed)),
		strainByID: make(map[uint32]ecs.Entity),
		funds:      cfg.Economy.StartingFunds,
		season:     1,
		overhead:   cfg.Economy.Overhead,
		breedsLeft: cfg.Economy.BreedsPerSeason,
		sellsLeft:  cfg.Economy.SellsPerSeason,
		upgrades:   make(components.UpgradeSet),
	}
	s.world = *ecs.NewWorld()

	s.strainMapper = ecs.NewMap1[components.Strain](&s.world)
	s.batchMapper = ecs.NewMap1[components.Batch](&s.world)
	s.roomMapper = ecs.NewMap1[components.Room](&s.world)
	s.strainFilter = ecs.NewFilter1[components.Strain](&s.world)
	s.batchFilter = ecs.NewFilter1[components.Batch](&s.world)
	s.roomFilter = ecs.NewFilter1[components.Room](&s.world)

	s.breeding = systems.NewBreedingSystem(&s.world, cfg, s.rng)
	s.growth = systems.NewGrowthSystem(&s.world, cfg, s.rng)
	s.curing = systems.NewCuringSystem(&s.world, cfg, s.rng)
	s.market = systems.NewMarketSystem(cfg)

	return s
}

// seedFounder creates one starting strain from config. Founders are fully
// known to the player: proven stats, visible genotype, visible quirks.
func (s *Session) seedFounder(f config.FounderConfig) (ecs.Entity, error) {
	genome, err := parseGenetics(f.Genetics)
	if err != nil {
		return ecs.Entity{}, err
	}

	stats := genetics.Derive(genome, s.rng)

	s.nextStrainID++
	strain := components.Strain{
		ID:          s.nextStrainID,
		Name:        f.Name,
		Generation:  1,
		Genome:      genome,
		Potency:     stats.Potency,
		YieldAmount: stats.Yield,
		GrowthSpeed: stats.Speed,
		Stability:   f.Stability,
		Proven:      true,
		KnownGenes:  make(map[genetics.Gene]bool),
		Known:       make(map[genetics.Quirk]bool),
	}
	for _, gene := range genetics.Genes() {
		strain.KnownGenes[gene] = true
	}
	for _, name := range f.Quirks {
		q, ok := quirkByName(name)
		if !ok {
			return ecs.Entity{}, fmt.Errorf("unknown quirk %q", name)
		}
		strain.Quirks = append(strain.Quirks, q)
		strain.Known[q] = true
	}

	e := s.strainMapper.NewEntity(&strain)
	s.strainByID[strain.ID] = e
	return e, nil
}

// parseGenetics restores a serialized locus map into a validated genome.
func parseGenetics(raw map[string][]string) (genetics.Genome, error) {
	genome := make(genetics.Genome, len(raw))
	for key, pair := range raw {
		gene, ok := genetics.GeneByKey(key)
		if !ok {
			return nil, fmt.Errorf("unknown locus %q", key)
		}
		if len(pair) != 2 {
			return nil, fmt.Errorf("locus %q: want 2 alleles, got %d", key, len(pair))
		}
		genome[gene] = genetics.NewPair(genetics.Allele(pair[0]), genetics.Allele(pair[1]))
	}
	if err := genome.Validate(); err != nil {
		return nil, err
	}
	return genome, nil
}

// quirkByName resolves a quirk display name.
func quirkByName(name string) (genetics.Quirk, bool) {
	for _, q := range genetics.Quirks() {
		if strings.EqualFold(genetics.QuirkCatalog[q].Name, name) {
			return q, true
		}
	}
	return genetics.NoQuirk, false
}

// Funds returns the current balance.
func (s *Session) Funds() int { return s.funds }

// Season returns the current season number.
func (s *Session) Season() int { return s.season }

// Overhead returns the expense due at the next season advance.
func (s *Session) Overhead() int { return s.overhead }

// BreedsLeft returns the remaining breeding actions this season.
func (s *Session) BreedsLeft() int { return s.breedsLeft }

// SellsLeft returns the remaining sale actions this season.
func (s *Session) SellsLeft() int { return s.sellsLeft }

// GameOver reports whether the session ended in bankruptcy.
func (s *Session) GameOver() bool { return s.gameOver }

// Upgrades returns a copy of the unlocked upgrade set.
func (s *Session) Upgrades() components.UpgradeSet { return s.upgrades.Clone() }

// Strain returns the strain component for an entity.
func (s *Session) Strain(e ecs.Entity) *components.Strain {
	return s.strainMapper.Get(e)
}

// Batch returns the batch component for an entity.
func (s *Session) Batch(e ecs.Entity) *components.Batch {
	return s.batchMapper.Get(e)
}

// Room returns the room component for an entity.
func (s *Session) Room(e ecs.Entity) *components.Room {
	return s.roomMapper.Get(e)
}

// EachStrain visits every strain.
func (s *Session) EachStrain(fn func(ecs.Entity, *components.Strain)) {
	query := s.strainFilter.Query()
	for query.Next() {
		fn(query.Entity(), query.Get())
	}
}

// EachBatch visits every active batch.
func (s *Session) EachBatch(fn func(ecs.Entity, *components.Batch)) {
	query := s.batchFilter.Query()
	for query.Next() {
		fn(query.Entity(), query.Get())
	}
}

// EachRoom visits every room.
func (s *Session) EachRoom(fn func(ecs.Entity, *components.Room)) {
	query := s.roomFilter.Query()
	for query.Next() {
		fn(query.Entity(), query.Get())
	}
}

// StrainByName finds a strain entity by exact name.
func (s *Session) StrainByName(name string) (ecs.Entity, bool) {
	var found ecs.Entity
	var ok bool
	s.EachStrain(func(e ecs.Entity, strain *components.Strain) {
		if strain.Name == name {
			found, ok = e, true
		}
	})
	return found, ok
}

// StrainByID finds a strain entity by ID.
func (s *Session) StrainByID(id uint32) (ecs.Entity, bool) {
	e, ok := s.strainByID[id]
	return e, ok
}

// StrainCount returns the number of strains in the catalog.
func (s *Session) StrainCount() int {
	n := 0
	s.EachStrain(func(ecs.Entity, *components.Strain) { n++ })
	return n
}

// BatchCount returns the number of active batches.
func (s *Session) BatchCount() int {
	n := 0
	s.EachBatch(func(ecs.Entity, *components.Batch) { n++ })
	return n
}
