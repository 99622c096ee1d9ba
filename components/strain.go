// Package components defines the ECS components that make up a cultivation
// session: strains, harvested batches, and grow rooms.
package components

import "github.com/pthm-cable/cultivar/genetics"

// Strain is a breedable cultivar. Founders are seeded from config; children
// are created by the breeding system. Strains are never deleted except by
// session reset.
type Strain struct {
	ID         uint32
	Name       string
	Generation int    // max(parent generations)+1, 1 for founders
	ParentA    uint32 // 0 for founders
	ParentB    uint32 // 0 for founders

	Genome genetics.Genome

	// Derived stats, rolled exactly once at creation (the proving event).
	Potency     int
	YieldAmount int // yield potential per cycle
	GrowthSpeed int
	Stability   int // decays per cross, recovers through successful grows

	// Discovery state.
	Proven     bool                    // stats visible to the player
	KnownGenes map[genetics.Gene]bool  // loci with visible genotype
	Quirks     []genetics.Quirk        // full quirk set, hidden or not
	Known      map[genetics.Quirk]bool // quirks discovered so far

	TimesGrown int

	// Finished inventory by grade, in mass units.
	OnHandStandard  int
	OnHandArtisanal int
}

// Founder reports whether the strain has no lineage.
func (s *Strain) Founder() bool {
	return s.ParentA == 0 && s.ParentB == 0
}

// HasQuirk reports whether the strain carries the quirk (hidden or not).
func (s *Strain) HasQuirk(q genetics.Quirk) bool {
	for _, have := range s.Quirks {
		if have == q {
			return true
		}
	}
	return false
}

// HiddenQuirks returns carried quirks not yet discovered by the player.
func (s *Strain) HiddenQuirks() []genetics.Quirk {
	var hidden []genetics.Quirk
	for _, q := range s.Quirks {
		if !s.Known[q] {
			hidden = append(hidden, q)
		}
	}
	return hidden
}

// StableGenetics reports whether every locus is homozygous. Fully stable
// strains breed true.
func (s *Strain) StableGenetics() bool {
	for _, gene := range genetics.Genes() {
		if !s.Genome.Homozygous(gene) {
			return false
		}
	}
	return true
}
