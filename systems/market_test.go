package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/cultivar/components"
	"github.com/pthm-cable/cultivar/genetics"
)

func marketStrain(potency int, aroma genetics.Pair) *components.Strain {
	return &components.Strain{
		ID:      1,
		Name:    "Quote Target",
		Potency: potency,
		Genome: genome(
			genetics.NewPair(genetics.Bushy, genetics.Bushy),
			genetics.NewPair(genetics.Hardy, genetics.Hardy),
			aroma,
		),
	}
}

func TestMarketStateDeterministic(t *testing.T) {
	cfg := testConfig(t)
	sys := NewMarketSystem(cfg)

	for season := 1; season <= 24; season++ {
		price1, trend1 := sys.State(season)
		price2, trend2 := sys.State(season)
		if price1 != price2 || trend1 != trend2 {
			t.Fatalf("season %d: re-derivation differs: %.4f/%s vs %.4f/%s",
				season, price1, trend1, price2, trend2)
		}

		if price1 < cfg.Market.BasePriceMin || price1 > cfg.Market.BasePriceMax {
			t.Errorf("season %d: base price %.4f outside [%.1f, %.1f]",
				season, price1, cfg.Market.BasePriceMin, cfg.Market.BasePriceMax)
		}
		if !genetics.Aroma.ValidSymbol(trend1) {
			t.Errorf("season %d: trend %q is not a terpene", season, trend1)
		}
	}

	// A second system over the same config derives identical state.
	other := NewMarketSystem(cfg)
	p1, t1 := sys.State(7)
	p2, t2 := other.State(7)
	if p1 != p2 || t1 != t2 {
		t.Errorf("independent systems disagree on season 7")
	}
}

func TestMarketStateVariesAcrossSeasons(t *testing.T) {
	cfg := testConfig(t)
	sys := NewMarketSystem(cfg)

	prices := map[float64]bool{}
	for season := 1; season <= 12; season++ {
		p, _ := sys.State(season)
		prices[p] = true
	}
	if len(prices) < 2 {
		t.Errorf("base price constant over 12 seasons")
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestValueTrendBonus(t *testing.T) {
	cfg := testConfig(t)
	sys := NewMarketSystem(cfg)
	strain := marketStrain(50, genetics.NewPair(genetics.Citrus, genetics.Citrus))

	onTrend := sys.Value(10, strain, genetics.Citrus, components.GradeStandard, nil)
	offTrend := sys.Value(10, strain, genetics.Mango, components.GradeStandard, nil)
	if !almostEqual(onTrend, offTrend*cfg.Market.TrendBonus) {
		t.Errorf("trend bonus: %.4f vs %.4f x %.2f", onTrend, offTrend, cfg.Market.TrendBonus)
	}
}

func TestValuePurityBonus(t *testing.T) {
	cfg := testConfig(t)
	sys := NewMarketSystem(cfg)
	pure := marketStrain(50, genetics.NewPair(genetics.Citrus, genetics.Citrus))
	mixed := marketStrain(50, genetics.NewPair(genetics.Citrus, genetics.Lavender))

	// Off-trend so only the purity premium differs.
	pureV := sys.Value(10, pure, genetics.Mango, components.GradeStandard, nil)
	mixedV := sys.Value(10, mixed, genetics.Mango, components.GradeStandard, nil)
	if !almostEqual(pureV, mixedV*cfg.Market.PurityBonus) {
		t.Errorf("purity bonus: %.4f vs %.4f x %.2f", pureV, mixedV, cfg.Market.PurityBonus)
	}
}

func TestValueGradeMultipliers(t *testing.T) {
	cfg := testConfig(t)
	sys := NewMarketSystem(cfg)
	strain := marketStrain(50, genetics.NewPair(genetics.Citrus, genetics.Lavender))

	standard := sys.Value(10, strain, genetics.Mango, components.GradeStandard, nil)
	fresh := sys.Value(10, strain, genetics.Mango, components.GradeFresh, nil)
	artisanal := sys.Value(10, strain, genetics.Mango, components.GradeArtisanal, nil)

	if !almostEqual(fresh/standard, cfg.Market.FreshMult/cfg.Market.StandardMult) {
		t.Errorf("fresh/standard = %.4f, want %.2f", fresh/standard, cfg.Market.FreshMult)
	}
	if !almostEqual(artisanal/standard, cfg.Market.ArtisanalMult/cfg.Market.StandardMult) {
		t.Errorf("artisanal/standard = %.4f, want %.2f", artisanal/standard, cfg.Market.ArtisanalMult)
	}
}

func TestValuePotencyAndBranding(t *testing.T) {
	cfg := testConfig(t)
	sys := NewMarketSystem(cfg)

	// Potency scales linearly against the reference.
	weak := marketStrain(25, genetics.NewPair(genetics.Citrus, genetics.Lavender))
	strong := marketStrain(75, genetics.NewPair(genetics.Citrus, genetics.Lavender))
	weakV := sys.Value(10, weak, genetics.Mango, components.GradeStandard, nil)
	strongV := sys.Value(10, strong, genetics.Mango, components.GradeStandard, nil)
	if !almostEqual(strongV, weakV*3) {
		t.Errorf("potency scaling: 75 potency %.4f vs 25 potency %.4f", strongV, weakV)
	}

	branded := components.UpgradeSet{components.UpgradeBranding: true}
	plainV := sys.Value(10, weak, genetics.Mango, components.GradeStandard, nil)
	brandedV := sys.Value(10, weak, genetics.Mango, components.GradeStandard, branded)
	if !almostEqual(brandedV, plainV*(1+cfg.Market.BrandingBonus)) {
		t.Errorf("branding bonus: %.4f vs %.4f", brandedV, plainV)
	}
}
