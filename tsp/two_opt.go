// Package tsp - 2-opt local search used as an optional polish pass.
//
// TwoOpt performs deterministic first-improvement 2-opt on an open tour whose
// first city stays fixed. For cut indices 1 ≤ i < k ≤ n−1:
//
//	a=T[i−1], b=T[i], c=T[k], d=T[(k+1) mod n]
//	Δ = w(a,c) + w(b,d) − w(a,b) − w(c,d)
//
// and the segment [i..k] is reversed when Δ < −Eps.
//
// Complexity:
//   - One pass: O(n²) candidate checks; first-improvement restarts after each accepted move.
//   - Overall: O(iter·n²) time, O(n) space for the working copy.
package tsp

// DefaultEps is the acceptance tolerance for an improving move.
const DefaultEps = 1e-12

// TwoOptOptions tunes TwoOpt.
type TwoOptOptions struct {
	// Eps is the strict improvement threshold (Δ < −Eps). Negative values are
	// treated as 0.
	Eps float64

	// MaxIters bounds accepted moves; 0 means "until local optimum".
	MaxIters int
}

// DefaultTwoOptOptions returns Eps=DefaultEps and no iteration bound.
func DefaultTwoOptOptions() TwoOptOptions {
	return TwoOptOptions{Eps: DefaultEps}
}

// TwoOpt improves init by 2-opt moves and returns the new tour with its length.
// init is not modified. The first city of init stays at position 0.
//
// Errors: ErrDimensionMismatch if init is not a permutation of the matrix cities.
func TwoOpt(dm *DistanceMatrix, init Tour, opts TwoOptOptions) (Tour, float64, error) {
	var n = dm.Len()
	if err := ValidateTour(init, n); err != nil {
		return nil, 0, err
	}

	cur := init.Clone()
	if n < 4 {
		// Every tour on three or fewer cities is the same cycle.
		return cur, dm.TourLength(cur), nil
	}

	eps := opts.Eps
	if eps < 0 {
		eps = 0
	}

	var (
		accepted int
		improved bool
		a, b     int
		c, d     int
		i, k     int
		delta    float64
	)
	for {
		improved = false

		for i = 1; i <= n-2 && !improved; i++ {
			for k = i + 1; k <= n-1; k++ {
				a = cur[i-1]
				b = cur[i]
				c = cur[k]
				d = cur[(k+1)%n]
				if d == a {
					continue // reversing the whole remainder changes nothing
				}

				delta = (dm.At(a, c) + dm.At(b, d)) - (dm.At(a, b) + dm.At(c, d))
				if delta >= -eps {
					continue
				}

				reverseSegmentInPlace(cur, i, k)
				accepted++
				improved = true
				break
			}
		}

		if !improved || (opts.MaxIters > 0 && accepted >= opts.MaxIters) {
			break
		}
	}

	return cur, dm.TourLength(cur), nil
}
