package antcolony

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/metatsp/tsp"
)

// anchor is the city every ant starts from.
const anchor = 0

// ant is a transient walker. It lives for one construct call and is never
// shared between goroutines.
type ant struct {
	tour      tsp.Tour
	unvisited []int
	weights   []float64
}

func newAnt(n int) *ant {
	a := &ant{
		tour:      make(tsp.Tour, 0, n),
		unvisited: make([]int, 0, n-1),
		weights:   make([]float64, n-1),
	}
	a.tour = append(a.tour, anchor)

	var c int
	for c = 0; c < n; c++ {
		if c != anchor {
			a.unvisited = append(a.unvisited, c)
		}
	}

	return a
}

// construct builds one tour by roulette-wheel choice over the unvisited
// cities. It only reads dm and ph.
//
// Complexity: O(n²).
func construct(dm *tsp.DistanceMatrix, ph *PheromoneMatrix, alpha, beta float64, rng *rand.Rand) tsp.Tour {
	a := newAnt(dm.Len())

	var (
		cur  = anchor
		pick int
		last int
	)
	for len(a.unvisited) > 0 {
		pick = a.choose(dm, ph, cur, alpha, beta, rng)
		cur = a.unvisited[pick]
		a.tour = append(a.tour, cur)

		// Swap-remove keeps the step O(1); order of the candidate list only
		// affects which random draw maps to which city.
		last = len(a.unvisited) - 1
		a.unvisited[pick] = a.unvisited[last]
		a.unvisited = a.unvisited[:last]
	}

	return a.tour
}

// choose returns an index into a.unvisited.
//
// Weight of candidate c from cur: trail(cur,c)^alpha · (1/d(cur,c))^beta.
// Candidates whose weight overflows to +Inf win outright (uniformly among
// themselves). A finite total that overflows is rescaled by the largest
// weight. If the total is zero, negligible or NaN, the choice is uniform.
func (a *ant) choose(dm *tsp.DistanceMatrix, ph *PheromoneMatrix, cur int, alpha, beta float64, rng *rand.Rand) int {
	var (
		k    = len(a.unvisited)
		sum  float64
		maxW float64
		infs int
		i    int
		c    int
		w    float64
	)
	if k == 1 {
		return 0
	}

	for i = 0; i < k; i++ {
		c = a.unvisited[i]
		w = math.Pow(ph.At(cur, c), alpha) * math.Pow(visibility(dm.At(cur, c)), beta)
		if !(w > 0) {
			w = 0
		}
		if math.IsInf(w, 1) {
			infs++
		}
		if w > maxW {
			maxW = w
		}
		a.weights[i] = w
		sum += w
	}

	if infs > 0 {
		return nthInfinite(a.weights[:k], rng.Intn(infs))
	}
	if math.IsInf(sum, 1) {
		sum = 0
		for i = 0; i < k; i++ {
			a.weights[i] /= maxW
			sum += a.weights[i]
		}
	}
	if !(sum > minWeightSum) {
		return rng.Intn(k)
	}

	var (
		r    = rng.Float64() * sum
		acc  float64
		last = -1
	)
	for i = 0; i < k; i++ {
		if a.weights[i] <= 0 {
			continue
		}
		acc += a.weights[i]
		last = i
		if r < acc {
			return i
		}
	}

	// Rounding can leave r ≥ acc; the last positive weight takes it.
	return last
}

// nthInfinite returns the index of the n-th +Inf entry of ws.
func nthInfinite(ws []float64, n int) int {
	var i int
	for i = range ws {
		if math.IsInf(ws[i], 1) {
			if n == 0 {
				return i
			}
			n--
		}
	}

	return len(ws) - 1
}

// visibility is 1/d, guarded for zero-length edges.
func visibility(d float64) float64 {
	if d <= 0 {
		return maxHeuristic
	}

	return 1 / d
}
