// Package tsp_test holds helpers shared by the tsp tests.
package tsp_test

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/metatsp/tsp"
)

const (
	// epsTiny is the tolerance for lengths that should agree exactly.
	epsTiny = 1e-9

	// seedDet is the fixed seed for reproducible instances.
	seedDet = int64(42)
)

// square returns the 10×10 square used throughout: optimal length 40.
func square() []tsp.City {
	return []tsp.City{{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 0}}
}

// circle places n cities evenly on a circle of radius r; the optimal tour
// visits them in index order.
func circle(n int, r float64) []tsp.City {
	out := make([]tsp.City, n)

	var i int
	for i = 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		out[i] = tsp.City{X: r * math.Cos(a), Y: r * math.Sin(a)}
	}

	return out
}

// randomCities draws n cities from the default field with a fixed seed.
func randomCities(n int, seed int64) []tsp.City {
	cs, err := tsp.RandomCities(n, tsp.DefaultBounds(), rand.New(rand.NewSource(seed)))
	if err != nil {
		panic(err)
	}

	return cs
}

// identity returns the tour 0,1,…,n-1.
func identity(n int) tsp.Tour {
	t := make(tsp.Tour, n)
	for i := range t {
		t[i] = i
	}

	return t
}
