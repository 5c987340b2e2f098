package tsp

import "math"

// MaxExactCities bounds HeldKarp; memory grows as n·2ⁿ.
const MaxExactCities = 16

// HeldKarp solves the instance exactly with the Held–Karp dynamic program.
// It is meant as a reference oracle for small instances (tests, optimality gap
// reports), not as a production solver.
//
// The returned tour starts at city 0.
//
// dp[mask][j] = minimum cost to start at 0, visit exactly the cities in mask
// (bit 0 always set) and end at j. The tour is closed by returning from the
// best j to 0.
//
// Errors: ErrTooLarge when n > MaxExactCities.
//
// Time complexity:   O(n²·2ⁿ)
// Memory complexity: O(n·2ⁿ)
func HeldKarp(dm *DistanceMatrix) (Result, error) {
	var n = dm.Len()
	if n > MaxExactCities {
		return Result{}, ErrTooLarge
	}
	if n < MinCities {
		return Result{}, ErrInvalidInput
	}

	var (
		dist      = dm.Dense()
		allMask   = (1 << n) - 1
		startMask = 1
		dp        = make([][]float64, 1<<n)
		parent    = make([][]int, 1<<n)
		mask      int
		j, k      int
	)
	for mask = 0; mask <= allMask; mask++ {
		dp[mask] = make([]float64, n)
		parent[mask] = make([]int, n)
		for j = 0; j < n; j++ {
			dp[mask][j] = math.Inf(1)
			parent[mask][j] = -1
		}
	}
	dp[startMask][0] = 0

	var (
		prevMask int
		cand     float64
	)
	for mask = 0; mask <= allMask; mask++ {
		if mask&startMask == 0 {
			continue
		}
		for j = 1; j < n; j++ {
			if mask&(1<<j) == 0 {
				continue
			}
			prevMask = mask ^ (1 << j)
			for k = 0; k < n; k++ {
				if prevMask&(1<<k) == 0 || math.IsInf(dp[prevMask][k], 1) {
					continue
				}
				cand = dp[prevMask][k] + dist[k][j]
				if cand < dp[mask][j] {
					dp[mask][j] = cand
					parent[mask][j] = k
				}
			}
		}
	}

	var (
		bestCost = math.Inf(1)
		last     = -1
		total    float64
	)
	for j = 1; j < n; j++ {
		total = dp[allMask][j] + dist[j][0]
		if total < bestCost {
			bestCost = total
			last = j
		}
	}

	// Walk parents back from the last city.
	tour := make(Tour, n)
	mask = allMask
	j = last

	var (
		i int
		p int
	)
	for i = n - 1; i >= 1; i-- {
		tour[i] = j
		p = parent[mask][j]
		mask ^= 1 << j
		j = p
	}
	tour[0] = 0

	return Result{Tour: tour, Distance: dm.TourLength(tour)}, nil
}
