package genetic

import "math"

// normalize fills zero-valued optional fields with their defaults.
func normalize(opts Options) Options {
	if opts.TournamentSize == 0 {
		opts.TournamentSize = DefaultTournamentSize
	}

	return opts
}

// validateOptions checks Options in a fixed order so the first reported
// sentinel is stable.
//
// Complexity: O(1).
func validateOptions(opts Options) error {
	if opts.PopulationSize < 1 {
		return ErrPopulationSize
	}
	if opts.MaxGenerations < 1 {
		return ErrGenerations
	}
	if math.IsNaN(opts.MutationRate) || opts.MutationRate < 0 || opts.MutationRate > 1 {
		return ErrMutationRate
	}
	if opts.ElitismCount < 0 || opts.ElitismCount > opts.PopulationSize {
		return ErrElitism
	}
	if opts.TournamentSize < 1 {
		return ErrTournamentSize
	}

	return nil
}
