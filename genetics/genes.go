// Package genetics defines the heritable gene catalog and allele-pair model
// for cultivated strains.
package genetics

import "fmt"

// Gene identifies one heritable locus.
type Gene uint8

const (
	// Structure controls plant architecture: tall/sativa (dominant) vs
	// bushy/indica (recessive). Tall plants run hotter on potency but
	// yield less and grow slower.
	Structure Gene = iota

	// Resistance controls pest/mold hardiness: hardy (dominant) vs
	// sensitive (recessive). Drives crop-loss risk during growth.
	Resistance

	// Aroma is codominant: both alleles contribute to the terpene blend.
	Aroma

	geneCount
)

// Allele is a single symbol at a locus. Mendelian genes use the
// upper-case/lower-case dominant/recessive convention; codominant genes use
// free-form terpene codes.
type Allele string

// Mendelian allele symbols.
const (
	Tall  Allele = "T"
	Bushy Allele = "t"
	Hardy Allele = "R"
	Frail Allele = "r"
)

// Terpene codes for the codominant aroma gene.
const (
	Citrus   Allele = "C"
	Lavender Allele = "L"
	Mango    Allele = "M"
	Pine     Allele = "P"
)

// Definition describes one row of the static gene catalog.
type Definition struct {
	Gene           Gene
	Key            string // serialization key, e.g. "structure"
	Codominant     bool
	Dominant       Allele
	Recessive      Allele
	DominantLabel  string
	RecessiveLabel string
	Symbols        []Allele          // full allele alphabet for this gene
	SymbolLabels   map[Allele]string // per-symbol labels (codominant genes)
}

// Catalog is the static gene table. Every strain genome must carry exactly
// these loci.
var Catalog = map[Gene]Definition{
	Structure: {
		Gene:           Structure,
		Key:            "structure",
		Dominant:       Tall,
		Recessive:      Bushy,
		DominantLabel:  "Tall Sativa",
		RecessiveLabel: "Bushy Indica",
		Symbols:        []Allele{Tall, Bushy},
	},
	Resistance: {
		Gene:           Resistance,
		Key:            "resistance",
		Dominant:       Hardy,
		Recessive:      Frail,
		DominantLabel:  "Hardy",
		RecessiveLabel: "Sensitive",
		Symbols:        []Allele{Hardy, Frail},
	},
	Aroma: {
		Gene:       Aroma,
		Key:        "aroma",
		Codominant: true,
		Symbols:    []Allele{Citrus, Lavender, Mango, Pine},
		SymbolLabels: map[Allele]string{
			Citrus:   "Citrus",
			Lavender: "Lavender",
			Mango:    "Mango",
			Pine:     "Pine",
		},
	},
}

// Genes returns all loci in catalog order.
func Genes() []Gene {
	return []Gene{Structure, Resistance, Aroma}
}

// GeneByKey resolves a serialization key back to its locus.
func GeneByKey(key string) (Gene, bool) {
	for _, g := range Genes() {
		if Catalog[g].Key == key {
			return g, true
		}
	}
	return 0, false
}

// String returns the serialization key for the gene.
func (g Gene) String() string {
	if def, ok := Catalog[g]; ok {
		return def.Key
	}
	return fmt.Sprintf("gene(%d)", uint8(g))
}

// ValidSymbol reports whether a is in the gene's allele alphabet.
func (g Gene) ValidSymbol(a Allele) bool {
	def, ok := Catalog[g]
	if !ok {
		return false
	}
	for _, s := range def.Symbols {
		if s == a {
			return true
		}
	}
	return false
}

// blendLabels names well-known codominant aroma combinations, keyed by the
// canonical sorted pair. Combinations not listed here fall back to
// ComplexHybrid.
var blendLabels = map[Pair]string{
	{Citrus, Citrus}:     "Pure Citrus",
	{Lavender, Lavender}: "Pure Lavender",
	{Mango, Mango}:       "Pure Mango",
	{Pine, Pine}:         "Pure Pine",
	{Citrus, Lavender}:   "Sunrise Haze",
	{Citrus, Mango}:      "Tropic Punch",
	{Lavender, Pine}:     "Alpine Dusk",
}

// ComplexHybrid is the fallback label for unmapped aroma combinations.
const ComplexHybrid = "Complex Hybrid"
