package tsp_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/metatsp/tsp"
)

// 2-opt removes the crossing of a bow-tie tour on the square.
func TestTwoOpt_UncrossesSquare(t *testing.T) {
	dm, err := tsp.NewDistanceMatrix(square())
	require.NoError(t, err)

	init := tsp.Tour{0, 2, 1, 3}
	got, length, err := tsp.TwoOpt(dm, init, tsp.DefaultTwoOptOptions())
	require.NoError(t, err)
	require.Equal(t, 40.0, length)
	require.Equal(t, 0, got[0], "first city stays in front")
	require.NoError(t, tsp.ValidateTour(got, 4))
	require.Equal(t, tsp.Tour{0, 2, 1, 3}, init, "input untouched")
}

// On a circle the index order is optimal, and 2-opt must recover it from a
// scrambled start.
func TestTwoOpt_CircleReachesOptimum(t *testing.T) {
	cs := circle(12, 100)
	dm, err := tsp.NewDistanceMatrix(cs)
	require.NoError(t, err)

	init := tsp.Tour{0, 6, 2, 9, 4, 11, 1, 7, 3, 10, 5, 8}
	got, length, err := tsp.TwoOpt(dm, init, tsp.DefaultTwoOptOptions())
	require.NoError(t, err)
	require.InDelta(t, dm.TourLength(identity(12)), length, epsTiny)
	require.True(t, tsp.SameCycle(identity(12), got))
}

func TestTwoOpt_NeverWorse(t *testing.T) {
	cs := randomCities(40, seedDet)
	dm, err := tsp.NewDistanceMatrix(cs)
	require.NoError(t, err)

	init := identity(len(cs))
	_, length, err := tsp.TwoOpt(dm, init, tsp.DefaultTwoOptOptions())
	require.NoError(t, err)
	require.LessOrEqual(t, length, dm.TourLength(init))
}

func TestTwoOpt_MaxIters(t *testing.T) {
	cs := randomCities(40, seedDet)
	dm, err := tsp.NewDistanceMatrix(cs)
	require.NoError(t, err)

	init := identity(len(cs))
	_, one, err := tsp.TwoOpt(dm, init, tsp.TwoOptOptions{MaxIters: 1})
	require.NoError(t, err)
	_, full, err := tsp.TwoOpt(dm, init, tsp.DefaultTwoOptOptions())
	require.NoError(t, err)

	require.Less(t, one, dm.TourLength(init))
	require.LessOrEqual(t, full, one)
}

func TestTwoOpt_SmallAndInvalid(t *testing.T) {
	cs := []tsp.City{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}
	dm, err := tsp.NewDistanceMatrix(cs)
	require.NoError(t, err)

	got, _, err := tsp.TwoOpt(dm, tsp.Tour{0, 2, 1}, tsp.DefaultTwoOptOptions())
	require.NoError(t, err)
	require.Equal(t, tsp.Tour{0, 2, 1}, got)

	_, _, err = tsp.TwoOpt(dm, tsp.Tour{0, 1}, tsp.DefaultTwoOptOptions())
	require.ErrorIs(t, err, tsp.ErrDimensionMismatch)
}
