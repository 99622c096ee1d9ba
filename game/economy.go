package game

import (
	"fmt"
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/cultivar/components"
	"github.com/pthm-cable/cultivar/genetics"
	"github.com/pthm-cable/cultivar/systems"
)

// SeasonReport is the outcome of a season advance.
type SeasonReport struct {
	Season     int
	Overhead   int
	CureEvents []systems.CureEvent
	BasePrice  float64
	Trend      genetics.Allele
	GameOver   bool
}

// AdvanceSeason closes out the season: overhead comes due, curing batches
// tick, action quotas reset, and the next season's market state is derived.
// Failing to cover overhead ends the game.
func (s *Session) AdvanceSeason() SeasonReport {
	if s.gameOver {
		return SeasonReport{Season: s.season, GameOver: true}
	}

	report := SeasonReport{Overhead: s.overhead}

	if s.funds < s.overhead {
		s.gameOver = true
		report.Season = s.season
		report.GameOver = true
		Logf("[SEASON] bankrupt: overhead %d due with %d on hand", s.overhead, s.funds)
		return report
	}

	s.funds -= s.overhead
	s.season++
	s.overhead += s.cfg.Economy.OverheadStep
	s.breedsLeft = s.cfg.Economy.BreedsPerSeason
	s.sellsLeft = s.cfg.Economy.SellsPerSeason

	report.Season = s.season
	report.CureEvents = s.curing.Advance()
	for _, ev := range report.CureEvents {
		Logf("[CURE] %s", ev)
	}

	report.BasePrice, report.Trend = s.market.State(s.season)
	Logf("[SEASON] %d: base price %.2f, trending %s", s.season, report.BasePrice,
		genetics.Catalog[genetics.Aroma].SymbolLabels[report.Trend])

	return report
}

// CureBatch commits a fresh batch to a curing stage.
func (s *Session) CureBatch(batch ecs.Entity, deep bool) error {
	return s.curing.StartCure(batch, deep)
}

// MarketState returns the current season's base price and trending terpene.
func (s *Session) MarketState() (float64, genetics.Allele) {
	return s.market.State(s.season)
}

// Quote prices one mass unit of a strain at a grade under current market
// conditions. Read-only.
func (s *Session) Quote(strain ecs.Entity, grade components.Grade) float64 {
	basePrice, trend := s.market.State(s.season)
	return s.market.Value(basePrice, s.strainMapper.Get(strain), trend, grade, s.upgrades)
}

// SellInventory sells finished inventory of a strain at the given grade.
// Returns the proceeds credited.
func (s *Session) SellInventory(strain ecs.Entity, grade components.Grade, amount int) (int, error) {
	if s.gameOver {
		return 0, fmt.Errorf("session is over: %w", ErrInvalidSelection)
	}
	if s.sellsLeft <= 0 {
		return 0, fmt.Errorf("no sale actions left this season: %w", ErrInvalidSelection)
	}
	if amount <= 0 {
		return 0, fmt.Errorf("sale amount %d: %w", amount, ErrInvalidSelection)
	}

	st := s.strainMapper.Get(strain)

	var onHand *int
	switch grade {
	case components.GradeStandard:
		onHand = &st.OnHandStandard
	case components.GradeArtisanal:
		onHand = &st.OnHandArtisanal
	default:
		return 0, fmt.Errorf("grade %s is not sellable from inventory: %w", grade, ErrInvalidSelection)
	}
	if *onHand < amount {
		return 0, fmt.Errorf("only %dg of %s %s on hand: %w", *onHand, st.Name, grade, ErrInvalidSelection)
	}

	proceeds := s.priceSale(st, grade, amount)
	*onHand -= amount
	s.funds += proceeds
	s.sellsLeft--

	Logf("[SALE] %dg %s (%s) for %d", amount, st.Name, grade, proceeds)
	return proceeds, nil
}

// SellFreshBatch sells a fresh batch immediately at the discounted fresh
// grade, skipping the curing machine entirely. Terminal: the batch is
// removed outright.
func (s *Session) SellFreshBatch(batch ecs.Entity) (int, error) {
	if s.gameOver {
		return 0, fmt.Errorf("session is over: %w", ErrInvalidSelection)
	}
	if s.sellsLeft <= 0 {
		return 0, fmt.Errorf("no sale actions left this season: %w", ErrInvalidSelection)
	}

	b := s.batchMapper.Get(batch)
	if b.Status != components.BatchFresh {
		return 0, fmt.Errorf("batch %d is %s, not fresh: %w", b.ID, b.Status, ErrInvalidSelection)
	}
	strain, ok := s.strainByID[b.StrainID]
	if !ok {
		return 0, fmt.Errorf("batch %d references unknown strain %d: %w", b.ID, b.StrainID, ErrInvalidSelection)
	}

	proceeds := s.priceSale(s.strainMapper.Get(strain), components.GradeFresh, b.Amount)
	id, amount := b.ID, b.Amount
	s.world.RemoveEntity(batch)
	s.funds += proceeds
	s.sellsLeft--

	Logf("[SALE] batch %d fresh, %dg for %d", id, amount, proceeds)
	return proceeds, nil
}

// priceSale computes rounded proceeds for a quantity at a grade.
func (s *Session) priceSale(strain *components.Strain, grade components.Grade, amount int) int {
	basePrice, trend := s.market.State(s.season)
	unit := s.market.Value(basePrice, strain, trend, grade, s.upgrades)
	return int(math.Round(unit * float64(amount)))
}

// BuyUpgrade purchases a shop upgrade by catalog key.
func (s *Session) BuyUpgrade(key string) error {
	if s.gameOver {
		return fmt.Errorf("session is over: %w", ErrInvalidSelection)
	}
	item, ok := s.cfg.Derived.UpgradeIndex[key]
	if !ok {
		return fmt.Errorf("unknown upgrade %q: %w", key, ErrInvalidSelection)
	}
	if s.upgrades.Has(components.Upgrade(key)) {
		return fmt.Errorf("upgrade %q already active: %w", key, ErrInvalidSelection)
	}
	if s.funds < item.Cost {
		return fmt.Errorf("upgrade %q costs %d with %d available: %w",
			key, item.Cost, s.funds, ErrInsufficientFunds)
	}

	s.funds -= item.Cost
	s.upgrades[components.Upgrade(key)] = true
	Logf("[SHOP] purchased %s for %d", item.Name, item.Cost)
	return nil
}
