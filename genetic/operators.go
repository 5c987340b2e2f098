// Package genetic - population operators.
//
// All operators keep position 0 pinned to the anchor city, so every tour in
// the population starts with city 0. Operators never modify their inputs;
// a child is always a fresh slice.
package genetic

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/metatsp/tsp"
)

// individual is a tour with its cached cycle length.
type individual struct {
	tour   tsp.Tour
	length float64
}

// fitness is 1/length; a zero-length tour (all cities coincide) has
// infinite fitness.
func fitness(length float64) float64 {
	if length <= 0 {
		return math.Inf(1)
	}

	return 1 / length
}

// fitter reports whether a strictly beats b.
func fitter(a, b individual) bool {
	return fitness(a.length) > fitness(b.length)
}

// tournament samples k individuals uniformly with replacement and returns
// the fittest.
//
// Complexity: O(k).
func tournament(pop []individual, k int, rng *rand.Rand) individual {
	best := pop[rng.Intn(len(pop))]

	var (
		i int
		c individual
	)
	for i = 1; i < k; i++ {
		c = pop[rng.Intn(len(pop))]
		if fitter(c, best) {
			best = c
		}
	}

	return best
}

// nextSlot advances a non-anchor position in [1..n-1], wrapping n-1 → 1.
func nextSlot(p, n int) int {
	return p%(n-1) + 1
}

// orderCrossover (OX) copies a[lo..hi] verbatim, then fills the remaining
// non-anchor slots, starting just after hi and wrapping, with b's genes in
// b's order (also read from just after hi), skipping genes already placed.
// Position 0 is forced to the anchor a[0].
//
// Complexity: O(n) time, O(n) space.
func orderCrossover(a, b tsp.Tour, rng *rand.Rand) tsp.Tour {
	var n = len(a)
	child := make(tsp.Tour, n)
	if n <= 2 {
		copy(child, a)
		return child
	}

	var (
		m      = n - 1
		lo     = 1 + rng.Intn(m)
		hi     = 1 + rng.Intn(m)
		placed = make([]bool, n)
		i      int
	)
	if lo > hi {
		lo, hi = hi, lo
	}

	child[0] = a[0]
	placed[a[0]] = true
	for i = lo; i <= hi; i++ {
		child[i] = a[i]
		placed[a[i]] = true
	}

	var (
		pos  = nextSlot(hi, n)
		q    = nextSlot(hi, n)
		gene int
	)
	for i = 0; i < m; i++ {
		gene = b[q]
		if !placed[gene] {
			child[pos] = gene
			placed[gene] = true
			pos = nextSlot(pos, n)
		}
		q = nextSlot(q, n)
	}

	return child
}

// mutate runs an independent Bernoulli(rate) trial per non-anchor position;
// on success the gene is swapped with another random non-anchor position.
//
// Complexity: O(n).
func mutate(t tsp.Tour, rate float64, rng *rand.Rand) {
	var n = len(t)
	if n <= 2 || rate <= 0 {
		return
	}

	var i, j int
	for i = 1; i < n; i++ {
		if rng.Float64() < rate {
			j = 1 + rng.Intn(n-1)
			t[i], t[j] = t[j], t[i]
		}
	}
}
