package systems

import (
	"fmt"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/cultivar/components"
	"github.com/pthm-cable/cultivar/config"
	"github.com/pthm-cable/cultivar/genetics"
)

// CycleResult reports one cultivation cycle. Yield is post-loss; the caller
// converts it into a batch and deducts Cost. The engine itself never
// touches funds or inventory.
type CycleResult struct {
	Yield    int // mass units harvested, after any risk loss
	Cost     int
	Lost     int // mass units lost to a risk trigger, 0 if none
	Events   []string
	Revealed []genetics.Quirk
}

// GrowthSystem simulates cultivation cycles for assigned strains.
type GrowthSystem struct {
	strains *ecs.Map1[components.Strain]
	cfg     *config.Config
	rng     *rand.Rand
}

// NewGrowthSystem creates a new growth system.
func NewGrowthSystem(w *ecs.World, cfg *config.Config, rng *rand.Rand) *GrowthSystem {
	return &GrowthSystem{
		strains: ecs.NewMap1[components.Strain](w),
		cfg:     cfg,
		rng:     rng,
	}
}

// CycleCost returns the cost of one cycle for the strain on the given
// substrate. Slow-growing genetic profiles pay proportionally more. Pure,
// no side effects; used for atomic pre-checks.
func (s *GrowthSystem) CycleCost(strain *components.Strain, substrate string) int {
	cost := s.cfg.Growth.BaseCost + (genetics.StatMax-strain.GrowthSpeed)*s.cfg.Growth.PerDayRate
	if sub, ok := s.cfg.Facility.Substrates[substrate]; ok {
		cost += sub.CostDelta
	}
	return cost
}

// RunCycle grows one cycle of the strain. Returns ErrInsufficientFunds,
// with no state mutated, when funds cannot cover the cycle cost.
func (s *GrowthSystem) RunCycle(e ecs.Entity, substrate string, funds int, upgrades components.UpgradeSet) (CycleResult, error) {
	strain := s.strains.Get(e)

	cost := s.CycleCost(strain, substrate)
	if funds < cost {
		return CycleResult{}, fmt.Errorf("cycle for %q costs %d with %d available: %w",
			strain.Name, cost, funds, ErrInsufficientFunds)
	}

	res := CycleResult{Cost: cost}

	// Yield: potential x multiplier, random variance, upgrades, substrate,
	// quirks. Truncated to whole mass units.
	yield := float64(strain.YieldAmount) * s.cfg.Growth.YieldMultiplier
	variance := s.cfg.Growth.VarianceMin + s.rng.Float64()*(s.cfg.Growth.VarianceMax-s.cfg.Growth.VarianceMin)
	yield *= variance
	if upgrades.Has(components.UpgradeHydroponics) {
		yield *= s.cfg.Growth.UpgradeYield
	}
	if upgrades.Has(components.UpgradeLEDLights) {
		yield *= s.cfg.Growth.UpgradeYield
	}
	if sub, ok := s.cfg.Facility.Substrates[substrate]; ok {
		yield *= sub.YieldMult
	}
	for _, q := range strain.Quirks {
		if m := genetics.QuirkCatalog[q].YieldMult; m != 0 {
			yield *= m
		}
	}
	res.Yield = int(yield)

	// Risk: one trigger per cycle, loss derived from the computed yield.
	risk := s.cropRisk(strain, upgrades)
	if s.rng.Float64() < risk {
		res.Lost = int(float64(res.Yield) * s.cfg.Growth.LossFraction)
		res.Yield -= res.Lost
		res.Events = append(res.Events,
			fmt.Sprintf("Crop failure hit %s: %dg lost", strain.Name, res.Lost))
	}

	// Discovery: each hidden quirk tested independently.
	for _, q := range strain.HiddenQuirks() {
		if s.rng.Float64() < s.revealChance(strain) {
			strain.Known[q] = true
			res.Revealed = append(res.Revealed, q)
			res.Events = append(res.Events,
				fmt.Sprintf("%s revealed a trait: %s", strain.Name, q))
		}
	}

	// Repeated successful grows lock a cross in.
	strain.Stability += s.cfg.Growth.StabilizeMin +
		s.rng.Intn(s.cfg.Growth.StabilizeMax-s.cfg.Growth.StabilizeMin+1)
	if strain.Stability > 100 {
		strain.Stability = 100
	}

	strain.TimesGrown++
	if !strain.Proven {
		strain.Proven = true
		res.Events = append(res.Events,
			fmt.Sprintf("%s proved out: potency %d, yield %d", strain.Name, strain.Potency, strain.YieldAmount))
	}

	return res, nil
}

// cropRisk computes the crop-loss probability from the resistance
// phenotype, carried quirks (hidden ones still count), and mitigation.
func (s *GrowthSystem) cropRisk(strain *components.Strain, upgrades components.UpgradeSet) float64 {
	risk := s.cfg.Growth.RiskSensitive
	if strain.Genome[genetics.Resistance].Has(genetics.Hardy) {
		risk = s.cfg.Growth.RiskHardy
	}
	for _, q := range strain.Quirks {
		risk += genetics.QuirkCatalog[q].RiskDelta
	}
	if upgrades.Has(components.UpgradePestControl) {
		risk *= s.cfg.Growth.RiskMitigation
	}
	if risk < 0 {
		risk = 0
	}
	if risk > 0.95 {
		risk = 0.95
	}
	return risk
}

// revealChance rises with cultivation experience and hardiness.
func (s *GrowthSystem) revealChance(strain *components.Strain) float64 {
	p := s.cfg.Growth.RevealBase + s.cfg.Growth.RevealPerGrow*float64(strain.TimesGrown)
	if strain.Genome[genetics.Resistance].Has(genetics.Hardy) {
		p += s.cfg.Growth.RevealHardy
	}
	if p > s.cfg.Growth.RevealCap {
		p = s.cfg.Growth.RevealCap
	}
	return p
}
