// Package tsp - Held–Karp 1-tree lower bound.
//
// With multipliers π, edge (i,j) costs d(i,j) + π_i + π_j. A minimum 1-tree
// on those costs (MST over cities 1..n−1 plus the two cheapest edges at city
// 0) gives
//
//	L(π) = cost(T) − 2·Σπ_i ≤ OPT
//
// for every π, since each tour is a 1-tree with all degrees 2. Subgradient
// ascent on s_i = deg_T(i) − 2 pushes L toward OPT; when every degree is 2
// the 1-tree is a tour and L is exact.
//
// No RNG is involved; Prim breaks ties by index, so the bound is
// reproducible.
package tsp

import "math"

// BoundOptions tunes the subgradient loop of OneTreeBound.
type BoundOptions struct {
	// MaxIter is the iteration budget (≤ 0 ⇒ 1).
	MaxIter int

	// Alpha scales each step; values outside (0,2) fall back to 0.9.
	Alpha float64

	// UpperBound is the length of a known tour. It drives the step size
	// α·(UB − L)/‖s‖². When ≤ 0 or non-finite, 1.05·L is used as the target.
	UpperBound float64
}

// DefaultBoundOptions returns a small, deterministic budget.
//
// Defaults:
//   - MaxIter:    64
//   - Alpha:      0.9
//   - UpperBound: 0 (estimated)
func DefaultBoundOptions() BoundOptions {
	return BoundOptions{MaxIter: 64, Alpha: 0.9}
}

// OneTreeBound returns the best Held–Karp 1-tree bound found within the
// budget, rounded to 1e-9. With two cities it returns the exact tour length.
//
// Complexity: O(MaxIter · n²) time, O(n) extra memory.
func OneTreeBound(dm *DistanceMatrix, opts BoundOptions) float64 {
	var n = dm.Len()
	if n < 3 {
		return dm.TourLength(Tour{0, 1})
	}
	if opts.MaxIter <= 0 {
		opts.MaxIter = 1
	}
	if !(opts.Alpha > 0 && opts.Alpha < 2) {
		opts.Alpha = 0.9
	}
	haveUB := opts.UpperBound > 0 && !math.IsInf(opts.UpperBound, 0)

	var (
		ot    = newOneTree(dm)
		best  = math.Inf(-1)
		iter  int
		i     int
		cost  float64
		sumPi float64
		lb    float64
		norm2 float64
		s     int
		step  float64
		ub    float64
	)
	for iter = 0; iter < opts.MaxIter; iter++ {
		cost = ot.build()
		sumPi = 0
		for i = 0; i < n; i++ {
			sumPi += ot.pi[i]
		}
		lb = cost - 2*sumPi
		if lb > best {
			best = lb
		}

		norm2 = 0
		for i = 0; i < n; i++ {
			s = ot.deg[i] - 2
			norm2 += float64(s * s)
		}
		if norm2 == 0 {
			break
		}

		ub = opts.UpperBound
		if !haveUB {
			ub = 1.05 * lb
		}
		step = opts.Alpha * (ub - lb) / norm2
		if !(step > 0) {
			break
		}
		for i = 0; i < n; i++ {
			ot.pi[i] += step * float64(ot.deg[i]-2)
		}
	}

	return round1e9(best)
}

// oneTree holds the reusable buffers of the 1-tree construction.
type oneTree struct {
	dm     *DistanceMatrix
	n      int
	pi     []float64
	deg    []int
	key    []float64
	parent []int
	done   []bool
}

func newOneTree(dm *DistanceMatrix) *oneTree {
	n := dm.Len()

	return &oneTree{
		dm:     dm,
		n:      n,
		pi:     make([]float64, n),
		deg:    make([]int, n),
		key:    make([]float64, n),
		parent: make([]int, n),
		done:   make([]bool, n),
	}
}

func (o *oneTree) cost(i, j int) float64 {
	return o.dm.At(i, j) + o.pi[i] + o.pi[j]
}

// build constructs a minimum 1-tree rooted at city 0, fills deg and returns
// its total modified cost. Requires n ≥ 3.
//
// Complexity: O(n²).
func (o *oneTree) build() float64 {
	var (
		v, u, next int
		c, total   float64
	)
	for v = 0; v < o.n; v++ {
		o.deg[v] = 0
		o.done[v] = false
		o.parent[v] = -1
		o.key[v] = math.Inf(1)
	}

	// Prim over {1..n−1}, dense O(n²).
	o.key[1] = 0
	for range o.n - 1 {
		next = -1
		for v = 1; v < o.n; v++ {
			if !o.done[v] && (next == -1 || o.key[v] < o.key[next]) {
				next = v
			}
		}
		o.done[next] = true
		if u = o.parent[next]; u != -1 {
			total += o.cost(next, u)
			o.deg[next]++
			o.deg[u]++
		}
		for v = 1; v < o.n; v++ {
			if o.done[v] {
				continue
			}
			if c = o.cost(next, v); c < o.key[v] {
				o.key[v] = c
				o.parent[v] = next
			}
		}
	}

	// Two cheapest edges at the root.
	var (
		first, second = -1, -1
	)
	for v = 1; v < o.n; v++ {
		c = o.cost(0, v)
		switch {
		case first == -1 || c < o.cost(0, first):
			second = first
			first = v
		case second == -1 || c < o.cost(0, second):
			second = v
		}
	}
	total += o.cost(0, first) + o.cost(0, second)
	o.deg[0] = 2
	o.deg[first]++
	o.deg[second]++

	return total
}
