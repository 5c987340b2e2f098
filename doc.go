// Package metatsp solves the symmetric Euclidean travelling salesman problem
// with population-based metaheuristics.
//
// What is in the module?
//
//	tsp/       — cities, tours, the distance oracle, 2-opt, Held–Karp, 1-tree bound, shared RNG
//	genetic/   — generational GA: tournament selection, order crossover, swap mutation
//	antcolony/ — ant colony optimization over a shared pheromone matrix
//	hybrid/    — GA → ACO pipeline (GA tour primes the trails) and best-of-N restarts
//	parallel/  — bounded fan-out with a barrier, used by both engines
//	progress/  — ProgressSink implementations: slog, Prometheus, JSON file, SQLite
//	config/    — YAML configuration, validation, city files
//	logging/   — slog logger construction
//	cmd/metatsp — the command-line front end
//
// Every engine accepts a tsp.ProgressSink and reports one record per
// generation (label "GA"), per iteration ("ACO"), or per hybrid run
// ("Hybrid"). A fixed non-zero Seed makes every engine reproducible,
// independent of the worker count.
//
// Quick example:
//
//	cities := []tsp.City{{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 0}}
//	opts := hybrid.DefaultOptions()
//	opts.Seed = 42
//	res, err := hybrid.Run(cities, opts)
//	// res.Distance == 40, res.Tour is a permutation starting at city 0
//
// From the command line:
//
//	metatsp run --algo hybrid --n 50 --seed 7 --stats-file stats.json
//	metatsp stats show --stats-file stats.json
package metatsp
