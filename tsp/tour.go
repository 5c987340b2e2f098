// Package tsp — tour utilities shared by all solvers.
//
// Helpers operate purely on tour structure (index sequences), without
// touching coordinates:
//   - RotateToStart: cyclic shift so a given city comes first.
//   - Reversed: the same cycle traversed the other way.
//   - CanonicalizeOrientationInPlace: canonical direction w.r.t. neighbors of tour[0].
//   - SameCycle: equality modulo rotation and reversal.
//   - FromClosed: strip the repeated start of an n+1 closed tour.
//   - DebugString: compact printable representation.
//
// Design:
//   - No logging, no panics on user input — only sentinel errors from types.go.
//   - O(n) time for every helper.
package tsp

import (
	"strconv"
	"strings"
)

// RotateToStart returns a fresh copy of tour shifted so that out[0] == start.
//
// Complexity: O(n) time, O(n) space.
func RotateToStart(tour Tour, start int) (Tour, error) {
	var n = len(tour)
	if n == 0 {
		return nil, ErrDimensionMismatch
	}

	var (
		i     int
		pivot = -1
	)
	for i = 0; i < n; i++ {
		if tour[i] == start {
			pivot = i
			break
		}
	}
	if pivot == -1 {
		return nil, ErrStartOutOfRange
	}

	out := make(Tour, n)
	for i = 0; i < n; i++ {
		out[i] = tour[(pivot+i)%n]
	}

	return out, nil
}

// Reversed returns the tour traversed in the opposite direction, keeping
// tour[0] in front.
//
// Complexity: O(n).
func Reversed(tour Tour) Tour {
	var n = len(tour)
	out := make(Tour, n)
	if n == 0 {
		return out
	}
	out[0] = tour[0]

	var i int
	for i = 1; i < n; i++ {
		out[i] = tour[n-i]
	}

	return out
}

// CanonicalizeOrientationInPlace fixes the direction of a tour under a fixed
// first city: if tour[1] > tour[n-1], the segment [1..n-1] is reversed.
// Two tours describing the same cycle from the same start become identical.
//
// Complexity: O(n) time, O(1) space.
func CanonicalizeOrientationInPlace(tour Tour) {
	var n = len(tour)
	if n < 3 {
		return
	}
	if tour[1] > tour[n-1] {
		reverseSegmentInPlace(tour, 1, n-1)
	}
}

// reverseSegmentInPlace reverses the inclusive segment tour[i..k].
// This is the primitive used by 2-opt.
//
// Complexity: O(k-i) time, O(1) space.
func reverseSegmentInPlace(tour Tour, i, k int) {
	for i < k {
		tour[i], tour[k] = tour[k], tour[i]
		i++
		k--
	}
}

// SameCycle reports whether a and b describe the same cycle, modulo rotation
// and direction.
//
// Complexity: O(n).
func SameCycle(a, b Tour) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	ra, err := RotateToStart(a, a[0])
	if err != nil {
		return false
	}
	rb, err := RotateToStart(b, a[0])
	if err != nil {
		return false
	}
	CanonicalizeOrientationInPlace(ra)
	CanonicalizeOrientationInPlace(rb)

	var i int
	for i = range ra {
		if ra[i] != rb[i] {
			return false
		}
	}

	return true
}

// FromClosed strips the closing vertex from a closed tour.
//
// Complexity: O(n).
func FromClosed(closed []int) (Tour, error) {
	if len(closed) < 2 || closed[0] != closed[len(closed)-1] {
		return nil, ErrDimensionMismatch
	}

	return Tour(closed[:len(closed)-1]).Clone(), nil
}

// DebugString returns a compact printable form, e.g. "[0 3 1 2 | 0]" where
// the vertical bar marks the implied closing edge.
//
// Complexity: O(n).
func DebugString(tour Tour) string {
	if len(tour) == 0 {
		return "[]"
	}

	var (
		sb strings.Builder
		i  int
	)
	sb.WriteByte('[')
	for i = range tour {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(tour[i]))
	}
	sb.WriteString(" | ")
	sb.WriteString(strconv.Itoa(tour[0]))
	sb.WriteByte(']')

	return sb.String()
}
