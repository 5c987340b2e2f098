package progress

import (
	"slices"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes a sample of distances (or times).
type Summary struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"` // sample standard deviation; 0 for a single value
	Median float64 `json:"median"`
}

// Summarize computes a Summary of xs. An empty sample gives the zero Summary.
// For an even count the median is the mean of the two middle values.
//
// Complexity: O(n log n) for the median.
func Summarize(xs []float64) Summary {
	if len(xs) == 0 {
		return Summary{}
	}

	var (
		sorted       = slices.Clone(xs)
		mean, stddev = stat.MeanStdDev(xs, nil)
	)
	sort.Float64s(sorted)
	if len(xs) == 1 {
		stddev = 0
	}

	return Summary{
		Count:  len(xs),
		Min:    floats.Min(xs),
		Max:    floats.Max(xs),
		Mean:   mean,
		StdDev: stddev,
		Median: median(sorted),
	}
}

// median expects a sorted, non-empty slice.
func median(sorted []float64) float64 {
	m := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[m]
	}

	return (sorted[m-1] + sorted[m]) / 2
}

// SummarizeAll summarizes the distances of every series.
func SummarizeAll(all map[string]Series) map[string]Summary {
	out := make(map[string]Summary, len(all))
	for label, s := range all {
		out[label] = Summarize(s.Distances)
	}

	return out
}
