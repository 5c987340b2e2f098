// Package tsp holds the vocabulary shared by every Travelling Salesman
// solver in this module.
//
// It provides:
//
//   - City, Tour and Result: the data model. A Tour is an open permutation of
//     city indices whose closing edge is implied.
//
//   - The distance oracle: Distance, TourLength and DistanceMatrix (a
//     precomputed symmetric table on gonum's mat.SymDense).
//
//   - Tour utilities: ValidateTour, RotateToStart, Reversed, SameCycle,
//     CanonicalizeOrientationInPlace, FromClosed, DebugString.
//
//   - Seeded random streams: NewRNG, DeriveSeeds. Parallel workers
//     never share a *rand.Rand; the controller derives one stream per task.
//
//   - ProgressSink: the narrow telemetry interface the engines report to.
//
//   - TwoOpt: a first-improvement local search used as an optional polish.
//
//   - HeldKarp: an exact O(n²·2ⁿ) solver for n ≤ MaxExactCities, used as a
//     reference oracle.
//
//   - OneTreeBound: the Held–Karp 1-tree lower bound, for quality reports on
//     instances too large for HeldKarp.
//
// All functions return sentinel errors from types.go; nothing here logs or
// panics on user input.
package tsp
