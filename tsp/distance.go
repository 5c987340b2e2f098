// Package tsp - distance oracle shared by every solver.
//
// This file provides the pure distance primitives (pair and cycle length) and
// a precomputed symmetric distance matrix backed by gonum's SymDense.
//
// Design:
//   - Side-effect free; identical input ⇒ identical output.
//   - Cycle lengths are rounded to 1e-9 so that summation order (rotation,
//     reversal) does not leak floating-point noise into comparisons.
//   - Zero-length edges (duplicate coordinates) are legal; inverting a
//     distance is the caller's job and must be guarded.
package tsp

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// roundScale controls final length stabilization precision (1e-9).
const roundScale = 1e9

// Distance returns the Euclidean distance between a and b.
//
// Complexity: O(1).
func Distance(a, b City) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// TourLength returns the cycle length of tour over cities: the sum of
// consecutive distances plus the closing edge back to tour[0].
// Tours shorter than two cities have length 0. Indices are not validated;
// use ValidateTour first on untrusted input.
//
// Complexity: O(n).
func TourLength(cities []City, tour Tour) float64 {
	var n = len(tour)
	if n < 2 {
		return 0
	}

	var (
		sum float64
		i   int
	)
	for i = 0; i < n-1; i++ {
		sum += Distance(cities[tour[i]], cities[tour[i+1]])
	}
	sum += Distance(cities[tour[n-1]], cities[tour[0]])

	return round1e9(sum)
}

// DistanceMatrix is a precomputed symmetric n×n distance table.
// It is read-only after construction and safe for concurrent readers.
type DistanceMatrix struct {
	sym *mat.SymDense
	n   int
}

// NewDistanceMatrix validates cities and precomputes all pairwise distances.
//
// Errors: ErrInvalidInput for fewer than two cities or non-finite coordinates.
//
// Complexity: O(n²) time and space.
func NewDistanceMatrix(cities []City) (*DistanceMatrix, error) {
	if err := ValidateCities(cities); err != nil {
		return nil, err
	}

	var (
		n    = len(cities)
		sym  = mat.NewSymDense(n, nil)
		i, j int
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			sym.SetSym(i, j, Distance(cities[i], cities[j]))
		}
	}

	return &DistanceMatrix{sym: sym, n: n}, nil
}

// Len returns the number of cities.
func (d *DistanceMatrix) Len() int { return d.n }

// At returns the distance between cities i and j.
func (d *DistanceMatrix) At(i, j int) float64 { return d.sym.At(i, j) }

// TourLength returns the cycle length of tour using the precomputed table.
//
// Complexity: O(n).
func (d *DistanceMatrix) TourLength(tour Tour) float64 {
	var n = len(tour)
	if n < 2 {
		return 0
	}

	var (
		sum float64
		i   int
	)
	for i = 0; i < n-1; i++ {
		sum += d.sym.At(tour[i], tour[i+1])
	}
	sum += d.sym.At(tour[n-1], tour[0])

	return round1e9(sum)
}

// Dense returns the table as a fresh row-major [][]float64. HeldKarp indexes
// it directly in its inner loop.
//
// Complexity: O(n²).
func (d *DistanceMatrix) Dense() [][]float64 {
	out := make([][]float64, d.n)

	var i, j int
	for i = 0; i < d.n; i++ {
		out[i] = make([]float64, d.n)
		for j = 0; j < d.n; j++ {
			out[i][j] = d.sym.At(i, j)
		}
	}

	return out
}

// round1e9 returns x rounded to 1e-9 absolute precision.
func round1e9(x float64) float64 {
	return math.Round(x*roundScale) / roundScale
}
