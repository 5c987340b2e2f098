package antcolony

import "math"

// normalize fills zero-valued pheromone bounds with their defaults.
func normalize(opts Options) Options {
	if opts.InitialPheromone == 0 {
		opts.InitialPheromone = DefaultInitialPheromone
	}
	if opts.MinPheromone == 0 {
		opts.MinPheromone = DefaultMinPheromone
	}

	return opts
}

// validateOptions checks Options in a fixed order so the first reported
// sentinel is stable. The hint tour is checked later, once n is known.
//
// Complexity: O(1).
func validateOptions(opts Options) error {
	if opts.Ants < 1 {
		return ErrAnts
	}
	if opts.Iterations < 1 {
		return ErrIterations
	}
	if !finiteNonNegative(opts.Alpha) {
		return ErrAlpha
	}
	if !finiteNonNegative(opts.Beta) {
		return ErrBeta
	}
	if math.IsNaN(opts.EvaporationRate) || opts.EvaporationRate <= 0 || opts.EvaporationRate >= 1 {
		return ErrEvaporationRate
	}
	if !(opts.MinPheromone > 0) || !(opts.InitialPheromone >= opts.MinPheromone) ||
		math.IsInf(opts.InitialPheromone, 0) {
		return ErrPheromone
	}

	return nil
}

func finiteNonNegative(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0) && x >= 0
}

// depositAmount returns 1/length, capped at MaxDeposit; a zero-length tour
// deposits MaxDeposit.
func depositAmount(length float64) float64 {
	return cappedInverse(1, length)
}

// cappedInverse returns num/den capped at MaxDeposit.
func cappedInverse(num, den float64) float64 {
	if den <= 0 {
		return MaxDeposit
	}
	v := num / den
	if v > MaxDeposit {
		return MaxDeposit
	}

	return v
}
