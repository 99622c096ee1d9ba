package telemetry

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// DistStats summarizes a value distribution across the strain catalog.
type DistStats struct {
	Mean float64
	Std  float64
	P10  float64
	P50  float64
	P90  float64
}

// Distribution computes summary statistics for a slice of values. Returns
// zeros for an empty slice.
func Distribution(values []float64) DistStats {
	if len(values) == 0 {
		return DistStats{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean, std := stat.MeanStdDev(sorted, nil)
	if len(sorted) < 2 {
		std = 0
	}

	return DistStats{
		Mean: mean,
		Std:  std,
		P10:  stat.Quantile(0.10, stat.Empirical, sorted, nil),
		P50:  stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P90:  stat.Quantile(0.90, stat.Empirical, sorted, nil),
	}
}
