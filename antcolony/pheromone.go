// Package antcolony - pheromone trail matrix.
//
// PheromoneMatrix stores one trail value per unordered city pair in a gonum
// mat.SymDense, so the two directed entries of an edge can never diverge.
//
// Invariants:
//   - every entry is ≥ Floor() after NewPheromoneMatrix and after Evaporate;
//   - Deposit only adds non-negative amounts, so the floor holds after it too.
//
// The matrix is not safe for concurrent writers. The engine writes only in
// its post-barrier update phase, when no construction goroutine is reading.
package antcolony

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/metatsp/tsp"
)

// PheromoneMatrix is an n×n symmetric trail matrix with a positive floor.
type PheromoneMatrix struct {
	sym   *mat.SymDense
	n     int
	floor float64
}

// NewPheromoneMatrix returns an n×n matrix with every entry set to initial.
//
// Errors: tsp.ErrInvalidInput for n < 2; ErrPheromone unless 0 < floor ≤ initial.
//
// Complexity: O(n²).
func NewPheromoneMatrix(n int, initial, floor float64) (*PheromoneMatrix, error) {
	if n < tsp.MinCities {
		return nil, tsp.ErrInvalidInput
	}
	if !(floor > 0) || !(initial >= floor) || math.IsInf(initial, 0) {
		return nil, ErrPheromone
	}

	data := make([]float64, n*n)

	var i int
	for i = range data {
		data[i] = initial
	}

	return &PheromoneMatrix{sym: mat.NewSymDense(n, data), n: n, floor: floor}, nil
}

// Len returns the number of cities.
func (p *PheromoneMatrix) Len() int { return p.n }

// Floor returns the minimum trail value.
func (p *PheromoneMatrix) Floor() float64 { return p.floor }

// At returns the trail on edge (i, j); At(i,j) == At(j,i).
func (p *PheromoneMatrix) At(i, j int) float64 { return p.sym.At(i, j) }

// Min returns the smallest off-diagonal trail.
//
// Complexity: O(n²).
func (p *PheromoneMatrix) Min() float64 {
	var (
		m    = math.Inf(1)
		i, j int
		v    float64
	)
	for i = 0; i < p.n; i++ {
		for j = i + 1; j < p.n; j++ {
			v = p.sym.At(i, j)
			if v < m {
				m = v
			}
		}
	}

	return m
}

// Evaporate multiplies every entry by (1 − rho) and clamps it to the floor.
//
// Complexity: O(n²).
func (p *PheromoneMatrix) Evaporate(rho float64) {
	var (
		keep = 1 - rho
		i, j int
		v    float64
	)
	for i = 0; i < p.n; i++ {
		for j = i; j < p.n; j++ {
			v = p.sym.At(i, j) * keep
			if v < p.floor {
				v = p.floor
			}
			p.sym.SetSym(i, j, v)
		}
	}
}

// DepositEdge adds amount to edge (i, j), which covers both directions.
//
// Complexity: O(1).
func (p *PheromoneMatrix) DepositEdge(i, j int, amount float64) {
	p.sym.SetSym(i, j, p.sym.At(i, j)+amount)
}

// Deposit adds amount to every edge of tour, the closing edge included.
//
// Complexity: O(n).
func (p *PheromoneMatrix) Deposit(tour tsp.Tour, amount float64) {
	var n = len(tour)
	if n < 2 {
		return
	}

	var i int
	for i = 0; i < n-1; i++ {
		p.DepositEdge(tour[i], tour[i+1], amount)
	}
	p.DepositEdge(tour[n-1], tour[0], amount)
}

// Clone returns an independent deep copy.
//
// Complexity: O(n²).
func (p *PheromoneMatrix) Clone() *PheromoneMatrix {
	cp := mat.NewSymDense(p.n, nil)
	cp.CopySym(p.sym)

	return &PheromoneMatrix{sym: cp, n: p.n, floor: p.floor}
}
