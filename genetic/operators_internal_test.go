package genetic

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/metatsp/tsp"
)

func TestFitness(t *testing.T) {
	require.Equal(t, 0.25, fitness(4))
	require.True(t, math.IsInf(fitness(0), 1), "zero length is infinitely fit")
	require.True(t, fitter(individual{length: 10}, individual{length: 11}))
	require.False(t, fitter(individual{length: 10}, individual{length: 10}), "ties are not fitter")
	require.True(t, fitter(individual{length: 0}, individual{length: 1e-9}))
}

func TestNextSlot_WrapsOverNonAnchor(t *testing.T) {
	require.Equal(t, 2, nextSlot(1, 5))
	require.Equal(t, 4, nextSlot(3, 5))
	require.Equal(t, 1, nextSlot(4, 5), "last slot wraps to 1, never 0")
}

func TestOrderCrossover_ValidAnchoredChild(t *testing.T) {
	var (
		rng = rand.New(rand.NewSource(1))
		n   = 11
		i   int
	)
	for i = 0; i < 500; i++ {
		a := tsp.RandomAnchoredTour(n, 0, rng)
		b := tsp.RandomAnchoredTour(n, 0, rng)
		aCopy, bCopy := a.Clone(), b.Clone()

		child := orderCrossover(a, b, rng)
		require.NoError(t, tsp.ValidateAnchoredTour(child, n, 0))
		require.Equal(t, aCopy, a, "parents untouched")
		require.Equal(t, bCopy, b, "parents untouched")
	}
}

// With identical parents the child equals them.
func TestOrderCrossover_IdenticalParents(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	p := tsp.Tour{0, 4, 2, 5, 1, 3}

	require.Equal(t, p, orderCrossover(p, p.Clone(), rng))
}

// The child keeps a contiguous block of the first parent and lists the other
// genes in the second parent's cyclic order.
func TestOrderCrossover_PreservesRelativeOrder(t *testing.T) {
	var (
		rng = rand.New(rand.NewSource(3))
		a   = tsp.Tour{0, 1, 2, 3, 4, 5, 6, 7}
		b   = tsp.Tour{0, 7, 6, 5, 4, 3, 2, 1}
		i   int
	)
	for i = 0; i < 100; i++ {
		child := orderCrossover(a, b, rng)
		require.NoError(t, tsp.ValidateAnchoredTour(child, len(a), 0))

		// Genes away from their own position come from b and must keep b's
		// descending cyclic order.
		var fromB []int
		for p, g := range child[1:] {
			if g != p+1 {
				fromB = append(fromB, g)
			}
		}
		ascents := 0
		for k := 1; k < len(fromB); k++ {
			if fromB[k] > fromB[k-1] {
				ascents++
			}
		}
		require.LessOrEqual(t, ascents, 1, "b's order is kept up to one wrap: %v", child)
	}
}

func TestOrderCrossover_Tiny(t *testing.T) {
	rng := rand.New(rand.NewSource(4))

	require.Equal(t, tsp.Tour{0, 1}, orderCrossover(tsp.Tour{0, 1}, tsp.Tour{0, 1}, rng))
	require.NoError(t, tsp.ValidateAnchoredTour(orderCrossover(tsp.Tour{0, 2, 1}, tsp.Tour{0, 1, 2}, rng), 3, 0))
}

func TestMutate_KeepsPermutationAndAnchor(t *testing.T) {
	var (
		rng = rand.New(rand.NewSource(5))
		i   int
	)
	for i = 0; i < 200; i++ {
		tour := tsp.RandomAnchoredTour(9, 0, rng)
		mutate(tour, 0.5, rng)
		require.NoError(t, tsp.ValidateAnchoredTour(tour, 9, 0))
	}
}

func TestMutate_ZeroRateIsIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	tour := tsp.Tour{0, 3, 1, 4, 2}
	mutate(tour, 0, rng)
	require.Equal(t, tsp.Tour{0, 3, 1, 4, 2}, tour)
}

func TestTournament_PicksFittestOfSample(t *testing.T) {
	pop := []individual{{length: 5}, {length: 1}, {length: 9}}
	rng := rand.New(rand.NewSource(7))

	// With a huge k every individual is sampled, so the best always wins.
	var i int
	for i = 0; i < 20; i++ {
		require.Equal(t, 1.0, tournament(pop, 64, rng).length)
	}
	// k=1 is a uniform draw.
	seen := map[float64]bool{}
	for i = 0; i < 200; i++ {
		seen[tournament(pop, 1, rng).length] = true
	}
	require.Len(t, seen, 3)
}
