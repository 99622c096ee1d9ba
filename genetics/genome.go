package genetics

import "fmt"

// Pair is an unordered allele pair stored in canonical sorted order, so
// {"T","t"} is identical regardless of which parent contributed which
// allele. Upper-case symbols sort before lower-case by byte order.
type Pair [2]Allele

// NewPair builds the canonical pair for two alleles.
func NewPair(a, b Allele) Pair {
	if b < a {
		a, b = b, a
	}
	return Pair{a, b}
}

// Has reports whether the pair contains the symbol (case-sensitive).
func (p Pair) Has(a Allele) bool {
	return p[0] == a || p[1] == a
}

// Homozygous reports whether both alleles are equal (case-sensitive).
// Homozygous loci are "stable": they breed true and earn the pure-breed
// value premium.
func (p Pair) Homozygous() bool {
	return p[0] == p[1]
}

// String renders the pair as e.g. "Tt" or "CL".
func (p Pair) String() string {
	return string(p[0]) + string(p[1])
}

// Genome maps every catalog locus to its allele pair.
type Genome map[Gene]Pair

// NewGenome builds a genome from per-locus pairs, canonicalizing each.
func NewGenome(pairs map[Gene]Pair) Genome {
	g := make(Genome, len(pairs))
	for gene, p := range pairs {
		g[gene] = NewPair(p[0], p[1])
	}
	return g
}

// Clone returns an independent copy.
func (g Genome) Clone() Genome {
	out := make(Genome, len(g))
	for gene, p := range g {
		out[gene] = p
	}
	return out
}

// Validate checks the genome invariant: every catalog locus present, every
// allele drawn from that locus's alphabet. A violation is a programming or
// save-data error, never a gameplay outcome.
func (g Genome) Validate() error {
	for _, gene := range Genes() {
		p, ok := g[gene]
		if !ok {
			return fmt.Errorf("genome missing locus %q", gene)
		}
		for _, a := range p {
			if !gene.ValidSymbol(a) {
				return fmt.Errorf("locus %q: symbol %q not in alphabet", gene, a)
			}
		}
		if NewPair(p[0], p[1]) != p {
			return fmt.Errorf("locus %q: pair %q not in canonical order", gene, p)
		}
	}
	return nil
}

// Homozygous reports whether the locus is homozygous.
func (g Genome) Homozygous(gene Gene) bool {
	return g[gene].Homozygous()
}

// PhenotypeLabel returns the display label for a locus. Mendelian genes
// resolve by dominance: the dominant label if the dominant symbol appears
// anywhere in the pair, else the recessive label. Codominant genes resolve
// through the blend table, falling back to ComplexHybrid.
func (g Genome) PhenotypeLabel(gene Gene) string {
	def := Catalog[gene]
	p := g[gene]

	if !def.Codominant {
		if p.Has(def.Dominant) {
			return def.DominantLabel
		}
		return def.RecessiveLabel
	}

	if label, ok := blendLabels[p]; ok {
		return label
	}
	return ComplexHybrid
}
