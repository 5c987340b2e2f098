// Package tsp - validation utilities shared by all solvers.
//
// Design principles:
//   - Deterministic, side-effect free functions.
//   - No logging, no panics on user input - only sentinel errors from types.go.
package tsp

import "math"

// MinCities is the smallest instance any solver accepts.
const MinCities = 2

// ValidateCities checks that there are at least MinCities cities and that
// every coordinate is finite.
//
// Complexity: O(n).
func ValidateCities(cities []City) error {
	if len(cities) < MinCities {
		return ErrInvalidInput
	}

	var i int
	for i = range cities {
		if !finite(cities[i].X) || !finite(cities[i].Y) {
			return ErrInvalidInput
		}
	}

	return nil
}

// ValidateTour checks that tour is a permutation of {0..n-1} of length n.
//
// Complexity: O(n) time, O(n) space.
func ValidateTour(tour Tour, n int) error {
	if n <= 0 || len(tour) != n {
		return ErrDimensionMismatch
	}
	seen := make([]bool, n)

	var (
		i int
		v int
	)
	for i = 0; i < n; i++ {
		v = tour[i]
		if v < 0 || v >= n {
			return ErrDimensionMismatch
		}
		if seen[v] {
			return ErrDimensionMismatch
		}
		seen[v] = true
	}

	return nil
}

// ValidateAnchoredTour is ValidateTour plus tour[0] == start.
//
// Complexity: O(n).
func ValidateAnchoredTour(tour Tour, n int, start int) error {
	if start < 0 || start >= n {
		return ErrStartOutOfRange
	}
	if err := ValidateTour(tour, n); err != nil {
		return err
	}
	if tour[0] != start {
		return ErrDimensionMismatch
	}

	return nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
