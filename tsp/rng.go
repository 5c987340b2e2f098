// Package tsp - RNG utilities shared by the heuristic solvers.
//
// This file centralizes random generation for the metaheuristics.
//
// Goals:
//   - Determinism on request: a non-zero seed ⇒ identical results across runs
//     and across worker counts.
//   - Encapsulation: a single RNG factory; no global math/rand state.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Do not share a *rand.Rand across goroutines.
//   - Use DeriveSeeds in the controller to draw one seed per task before
//     fanning work out.
package tsp

import (
	"math/rand"
	"time"
)

// NewRNG returns a *rand.Rand for the given seed.
// Policy: seed==0 ⇒ a time-derived seed (non-reproducible); otherwise the
// seed is used verbatim.
//
// Complexity: O(1).
func NewRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(ResolveSeed(seed)))
}

// ResolveSeed applies the seed==0 policy of NewRNG and returns the seed that
// will actually drive the stream. Callers that report seeds use this value.
func ResolveSeed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	s := deriveSeed(time.Now().UnixNano(), 0)
	if s == 0 {
		s = 1
	}

	return s
}

// deriveSeed mixes a parent seed and a stream identifier into a new 64-bit seed.
// SplitMix64-style finalizer: small input changes give well-spread outputs.
//
// Complexity: O(1).
func deriveSeed(parent int64, stream uint64) int64 {
	var x uint64
	x = uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}

// DeriveSeeds draws k child seeds from base, one per parallel task.
// Drawing them up front in the controller keeps results independent of
// goroutine scheduling.
//
// Complexity: O(k).
func DeriveSeeds(base *rand.Rand, k int) []int64 {
	out := make([]int64, k)

	var i int
	for i = 0; i < k; i++ {
		out[i] = deriveSeed(base.Int63(), uint64(i))
	}

	return out
}

// ShuffleInPlace performs an in-place Fisher–Yates shuffle of a.
//
// Complexity: O(n) time, O(1) extra space.
func ShuffleInPlace(a []int, rng *rand.Rand) {
	var (
		n = len(a)
		i int
		j int
	)
	for i = n - 1; i > 0; i-- {
		j = rng.Intn(i + 1)
		a[i], a[j] = a[j], a[i]
	}
}

// RandomAnchoredTour returns a random tour of n cities with start pinned at
// position 0 and the rest shuffled.
//
// Complexity: O(n).
func RandomAnchoredTour(n, start int, rng *rand.Rand) Tour {
	t := make(Tour, 0, n)
	t = append(t, start)

	var i int
	for i = 0; i < n; i++ {
		if i != start {
			t = append(t, i)
		}
	}
	ShuffleInPlace(t[1:], rng)

	return t
}
