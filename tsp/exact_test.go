package tsp_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/metatsp/tsp"
)

// bruteForce enumerates every tour starting at 0.
func bruteForce(dm *tsp.DistanceMatrix) float64 {
	n := dm.Len()
	rest := make([]int, 0, n-1)
	for i := 1; i < n; i++ {
		rest = append(rest, i)
	}
	best := math.Inf(1)

	var permute func(k int)
	permute = func(k int) {
		if k == len(rest) {
			t := append(tsp.Tour{0}, rest...)
			if l := dm.TourLength(t); l < best {
				best = l
			}
			return
		}
		for i := k; i < len(rest); i++ {
			rest[k], rest[i] = rest[i], rest[k]
			permute(k + 1)
			rest[k], rest[i] = rest[i], rest[k]
		}
	}
	permute(0)

	return best
}

func TestHeldKarp_Square(t *testing.T) {
	dm, err := tsp.NewDistanceMatrix(square())
	require.NoError(t, err)

	res, err := tsp.HeldKarp(dm)
	require.NoError(t, err)
	require.Equal(t, 40.0, res.Distance)
	require.NoError(t, tsp.ValidateAnchoredTour(res.Tour, 4, 0))
}

func TestHeldKarp_MatchesBruteForce(t *testing.T) {
	var seed int64
	for seed = 1; seed <= 5; seed++ {
		dm, err := tsp.NewDistanceMatrix(randomCities(8, seed))
		require.NoError(t, err)

		res, err := tsp.HeldKarp(dm)
		require.NoError(t, err)
		require.InDelta(t, bruteForce(dm), res.Distance, epsTiny, "seed %d", seed)
		require.Equal(t, res.Distance, dm.TourLength(res.Tour))
	}
}

func TestHeldKarp_Circle(t *testing.T) {
	dm, err := tsp.NewDistanceMatrix(circle(11, 50))
	require.NoError(t, err)

	res, err := tsp.HeldKarp(dm)
	require.NoError(t, err)
	require.InDelta(t, dm.TourLength(identity(11)), res.Distance, epsTiny)
	require.True(t, tsp.SameCycle(identity(11), res.Tour))
}

func TestHeldKarp_Limits(t *testing.T) {
	dm, err := tsp.NewDistanceMatrix([]tsp.City{{X: 0, Y: 0}, {X: 3, Y: 4}})
	require.NoError(t, err)
	res, err := tsp.HeldKarp(dm)
	require.NoError(t, err)
	require.Equal(t, 10.0, res.Distance)

	big, err := tsp.NewDistanceMatrix(randomCities(tsp.MaxExactCities+1, seedDet))
	require.NoError(t, err)
	_, err = tsp.HeldKarp(big)
	require.ErrorIs(t, err, tsp.ErrTooLarge)
}
