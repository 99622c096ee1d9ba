package genetics

// Quirk is a discrete heritable trait outside the locus model. Quirks start
// hidden and are discovered over repeated grows; breeding passes them down
// probabilistically and can introduce novel mutations.
type Quirk uint8

const (
	NoQuirk Quirk = iota
	Vigorous
	DenseBuds
	FastFinisher
	MoldProne
	NutrientHog
	Brittle
)

// QuirkInfo describes one quirk's inheritance and cultivation effects.
type QuirkInfo struct {
	Name       string
	Weight     float64 // inheritance weight, scales the base pass-down chance
	Negative   bool    // negative quirks inherit more readily
	YieldMult  float64 // applied to cycle yield
	RiskDelta  float64 // added to crop-loss probability
}

// QuirkCatalog is the static quirk table.
var QuirkCatalog = map[Quirk]QuirkInfo{
	Vigorous:     {Name: "Vigorous", Weight: 1.0, YieldMult: 1.10},
	DenseBuds:    {Name: "Dense Buds", Weight: 0.8, YieldMult: 1.15, RiskDelta: 0.03},
	FastFinisher: {Name: "Fast Finisher", Weight: 0.7, YieldMult: 0.95},
	MoldProne:    {Name: "Mold Prone", Weight: 0.9, Negative: true, RiskDelta: 0.10},
	NutrientHog:  {Name: "Nutrient Hog", Weight: 0.6, Negative: true, YieldMult: 0.90},
	Brittle:      {Name: "Brittle", Weight: 0.5, Negative: true, RiskDelta: 0.05},
}

// Quirks returns all quirks in catalog order.
func Quirks() []Quirk {
	return []Quirk{Vigorous, DenseBuds, FastFinisher, MoldProne, NutrientHog, Brittle}
}

// String returns the quirk's display name.
func (q Quirk) String() string {
	if info, ok := QuirkCatalog[q]; ok {
		return info.Name
	}
	return "Unknown"
}

// MaxQuirks caps how many quirks a strain can carry.
const MaxQuirks = 4
