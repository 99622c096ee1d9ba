package genetics

import "math/rand"

// Stat bounds and derivation deltas.
const (
	StatMin = 1
	StatMax = 100

	baseStat    = 50
	baseSpeed   = 60
	statJitter  = 10 // uniform perturbation, +/- this
	tallPotency = 15
	tallYield   = -10
	tallSpeed   = -20
	bushyYield  = 15
	bushySpeed  = 10
	hardyYield  = 5
	hybridVigor = 5 // heterozygous aroma potency bonus
)

// Stats are the derived cultivation numbers for a strain.
type Stats struct {
	Potency int // sale-value driver
	Yield   int // yield potential per cycle
	Speed   int // growth speed; slower plants cost more per cycle
}

// Derive computes stats from a genome plus a random perturbation. The roll
// is NOT idempotent: every call re-rolls the jitter, so it must run exactly
// once per proving event (strain creation), never on read.
func Derive(g Genome, rng *rand.Rand) Stats {
	potency, yield, speed := baseStat, baseStat, baseSpeed

	if g[Structure].Has(Tall) {
		potency += tallPotency
		yield += tallYield
		speed += tallSpeed
	} else {
		yield += bushyYield
		speed += bushySpeed
	}

	if g[Resistance].Has(Hardy) {
		yield += hardyYield
	}

	if !g.Homozygous(Aroma) {
		potency += hybridVigor
	}

	potency = clampStat(potency + jitter(rng))
	yield = clampStat(yield + jitter(rng))
	speed = clampStat(speed + jitter(rng))

	return Stats{Potency: potency, Yield: yield, Speed: speed}
}

func jitter(rng *rand.Rand) int {
	return rng.Intn(2*statJitter+1) - statJitter
}

func clampStat(v int) int {
	if v < StatMin {
		return StatMin
	}
	if v > StatMax {
		return StatMax
	}
	return v
}
