package systems

import (
	"math/rand"

	"github.com/pthm-cable/cultivar/components"
	"github.com/pthm-cable/cultivar/config"
	"github.com/pthm-cable/cultivar/genetics"
)

// MarketSystem derives per-season prices and trend, and values inventory.
type MarketSystem struct {
	cfg *config.Config
}

// NewMarketSystem creates a new market system.
func NewMarketSystem(cfg *config.Config) *MarketSystem {
	return &MarketSystem{cfg: cfg}
}

// seasonSeedStride spaces per-season seeds apart.
const seasonSeedStride = 7919

// State derives the base price and trending terpene for a season. The
// derivation uses a generator seeded from the season alone and scoped to
// this call, so it never touches gameplay randomness and re-deriving the
// same season always yields the same result.
func (s *MarketSystem) State(season int) (basePrice float64, trend genetics.Allele) {
	rng := rand.New(rand.NewSource(s.cfg.Market.Seed + int64(season)*seasonSeedStride))

	spread := s.cfg.Market.BasePriceMax - s.cfg.Market.BasePriceMin
	basePrice = s.cfg.Market.BasePriceMin + rng.Float64()*spread

	terpenes := genetics.Catalog[genetics.Aroma].Symbols
	trend = terpenes[rng.Intn(len(terpenes))]
	return basePrice, trend
}

// Value prices one mass unit of a strain at the given grade. Potency scales
// against the reference; trend-matching aroma and pure-breed aroma earn
// premiums; branding adds a flat percentage on top.
func (s *MarketSystem) Value(basePrice float64, strain *components.Strain, trend genetics.Allele, grade components.Grade, upgrades components.UpgradeSet) float64 {
	unit := basePrice * float64(strain.Potency) / s.cfg.Market.ReferencePotency

	aroma := strain.Genome[genetics.Aroma]
	if aroma.Has(trend) {
		unit *= s.cfg.Market.TrendBonus
	}
	if aroma.Homozygous() {
		unit *= s.cfg.Market.PurityBonus
	}

	switch grade {
	case components.GradeFresh:
		unit *= s.cfg.Market.FreshMult
	case components.GradeArtisanal:
		unit *= s.cfg.Market.ArtisanalMult
	default:
		unit *= s.cfg.Market.StandardMult
	}

	if upgrades.Has(components.UpgradeBranding) {
		unit *= 1 + s.cfg.Market.BrandingBonus
	}

	return unit
}
