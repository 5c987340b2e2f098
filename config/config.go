// Package config loads the metatsp application configuration.
//
// Priority: environment > YAML file > Default(). The result is validated with
// struct tags (go-playground/validator) plus a few cross-section checks, and
// converted into the option structs of the genetic, antcolony and hybrid
// packages.
//
// Example file:
//
//	seed: 42
//	workers: 0
//	algorithm: hybrid
//	restarts: 1
//	genetic:
//	  population_size: 100
//	  max_generations: 500
//	  mutation_rate: 0.02
//	  elitism_count: 2
//	ant_colony:
//	  ants: 20
//	  iterations: 100
//	  alpha: 1
//	  beta: 5
//	  evaporation_rate: 0.5
//	hybrid:
//	  polish: false
//	cities:
//	  count: 30
//	  width: 1200
//	  height: 800
//	  margin: 50
//	log:
//	  level: info
//	  format: text
//	stats:
//	  file: stats.json
//	metrics:
//	  addr: ":9090"
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/metatsp/antcolony"
	"github.com/katalvlaran/metatsp/genetic"
	"github.com/katalvlaran/metatsp/hybrid"
	"github.com/katalvlaran/metatsp/logging"
	"github.com/katalvlaran/metatsp/tsp"
)

// Algorithm names accepted by Config.Algorithm.
const (
	AlgoGenetic   = "ga"
	AlgoAntColony = "aco"
	AlgoHybrid    = "hybrid"
)

// Environment variables read by Load.
const (
	EnvSeed      = "METATSP_SEED"
	EnvWorkers   = "METATSP_WORKERS"
	EnvLogLevel  = "METATSP_LOG_LEVEL"
	EnvStatsFile = "METATSP_STATS_FILE"
)

// Config is the full application configuration.
type Config struct {
	// Seed drives every random choice; 0 means non-reproducible.
	Seed int64 `yaml:"seed"`

	// Workers bounds the parallel phases of both engines; 0 means GOMAXPROCS.
	Workers int `yaml:"workers" validate:"gte=0"`

	Algorithm string `yaml:"algorithm" validate:"oneof=ga aco hybrid"`

	// Restarts is the number of independent runs; the best one is kept.
	Restarts int `yaml:"restarts" validate:"gte=1"`

	Genetic   GeneticConfig   `yaml:"genetic"`
	AntColony AntColonyConfig `yaml:"ant_colony"`
	Hybrid    HybridConfig    `yaml:"hybrid"`
	Cities    CitiesConfig    `yaml:"cities"`
	Log       logging.Config  `yaml:"log"`
	Stats     StatsConfig     `yaml:"stats"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// GeneticConfig mirrors genetic.Options.
type GeneticConfig struct {
	PopulationSize int     `yaml:"population_size" validate:"gte=1"`
	MaxGenerations int     `yaml:"max_generations" validate:"gte=1"`
	MutationRate   float64 `yaml:"mutation_rate" validate:"gte=0,lte=1"`
	ElitismCount   int     `yaml:"elitism_count" validate:"gte=0,ltefield=PopulationSize"`
	TournamentSize int     `yaml:"tournament_size" validate:"gte=0"`
}

// AntColonyConfig mirrors antcolony.Options.
type AntColonyConfig struct {
	Ants             int     `yaml:"ants" validate:"gte=1"`
	Iterations       int     `yaml:"iterations" validate:"gte=1"`
	Alpha            float64 `yaml:"alpha" validate:"gte=0"`
	Beta             float64 `yaml:"beta" validate:"gte=0"`
	EvaporationRate  float64 `yaml:"evaporation_rate" validate:"gt=0,lt=1"`
	InitialPheromone float64 `yaml:"initial_pheromone" validate:"gt=0"`
	MinPheromone     float64 `yaml:"min_pheromone" validate:"gt=0,ltefield=InitialPheromone"`
}

// HybridConfig holds the coordinator's own settings.
type HybridConfig struct {
	Polish bool `yaml:"polish"`
}

// CitiesConfig selects the problem instance: File if set, otherwise Count
// random cities inside the Width×Height field, Margin away from its edges.
type CitiesConfig struct {
	File   string `yaml:"file"`
	Count  int    `yaml:"count" validate:"gte=2"`
	Width  int    `yaml:"width" validate:"gt=0"`
	Height int    `yaml:"height" validate:"gt=0"`
	Margin int    `yaml:"margin" validate:"gte=0"`
}

// Bounds returns the generation field.
func (c CitiesConfig) Bounds() tsp.Bounds {
	return tsp.Bounds{Width: c.Width, Height: c.Height, Margin: c.Margin}
}

// StatsConfig names the statistics destinations; empty disables each.
type StatsConfig struct {
	File string `yaml:"file"`
	DB   string `yaml:"db"`
}

// MetricsConfig enables the Prometheus endpoint when Addr is set.
type MetricsConfig struct {
	Addr string `yaml:"addr" validate:"omitempty,hostname_port"`
}

// ErrInvalidBounds indicates a margin that leaves no room for cities.
var ErrInvalidBounds = fmt.Errorf("%w: config: margin leaves no room inside the city field", tsp.ErrInvalidInput)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Default returns the configuration used when no file is given. Engine
// sections match genetic.DefaultOptions and antcolony.DefaultOptions.
func Default() Config {
	ga := genetic.DefaultOptions()
	aco := antcolony.DefaultOptions()
	b := tsp.DefaultBounds()

	return Config{
		Algorithm: AlgoHybrid,
		Restarts:  1,
		Genetic: GeneticConfig{
			PopulationSize: ga.PopulationSize,
			MaxGenerations: ga.MaxGenerations,
			MutationRate:   ga.MutationRate,
			ElitismCount:   ga.ElitismCount,
			TournamentSize: ga.TournamentSize,
		},
		AntColony: AntColonyConfig{
			Ants:             aco.Ants,
			Iterations:       aco.Iterations,
			Alpha:            aco.Alpha,
			Beta:             aco.Beta,
			EvaporationRate:  aco.EvaporationRate,
			InitialPheromone: antcolony.DefaultInitialPheromone,
			MinPheromone:     antcolony.DefaultMinPheromone,
		},
		Cities: CitiesConfig{
			Count:  30,
			Width:  b.Width,
			Height: b.Height,
			Margin: b.Margin,
		},
		Log: logging.Config{Level: "info", Format: logging.FormatText},
	}
}

// Load reads path over Default(), applies environment overrides and
// validates the result. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err = yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: config: %s=%q: %w", tsp.ErrInvalidInput, EnvSeed, v, err)
		}
		cfg.Seed = seed
	}
	if v := os.Getenv(EnvWorkers); v != "" {
		w, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: config: %s=%q: %w", tsp.ErrInvalidInput, EnvWorkers, v, err)
		}
		cfg.Workers = w
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvStatsFile); v != "" {
		cfg.Stats.File = v
	}

	return nil
}

// Validate checks every field. Failures wrap tsp.ErrInvalidInput; tag
// failures also wrap validator.ValidationErrors.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: config: %w", tsp.ErrInvalidInput, err)
	}
	if c.Cities.File == "" && (2*c.Cities.Margin >= c.Cities.Width || 2*c.Cities.Margin >= c.Cities.Height) {
		return ErrInvalidBounds
	}

	return nil
}

// GeneticOptions converts the genetic section. Seed and Workers come from
// the top level.
func (c Config) GeneticOptions(sink tsp.ProgressSink) genetic.Options {
	return genetic.Options{
		PopulationSize: c.Genetic.PopulationSize,
		MaxGenerations: c.Genetic.MaxGenerations,
		MutationRate:   c.Genetic.MutationRate,
		ElitismCount:   c.Genetic.ElitismCount,
		TournamentSize: c.Genetic.TournamentSize,
		Seed:           c.Seed,
		Workers:        c.Workers,
		Sink:           sink,
	}
}

// AntColonyOptions converts the ant colony section.
func (c Config) AntColonyOptions(sink tsp.ProgressSink) antcolony.Options {
	return antcolony.Options{
		Ants:             c.AntColony.Ants,
		Iterations:       c.AntColony.Iterations,
		Alpha:            c.AntColony.Alpha,
		Beta:             c.AntColony.Beta,
		EvaporationRate:  c.AntColony.EvaporationRate,
		InitialPheromone: c.AntColony.InitialPheromone,
		MinPheromone:     c.AntColony.MinPheromone,
		Seed:             c.Seed,
		Workers:          c.Workers,
		Sink:             sink,
	}
}

// HybridOptions converts both engine sections. Sub-engine seeds are left at
// zero so the coordinator derives them from Seed.
func (c Config) HybridOptions(sink tsp.ProgressSink) hybrid.Options {
	ga := c.GeneticOptions(nil)
	aco := c.AntColonyOptions(nil)
	ga.Seed, aco.Seed = 0, 0

	return hybrid.Options{
		Genetic:   ga,
		AntColony: aco,
		Polish:    c.Hybrid.Polish,
		Seed:      c.Seed,
		Sink:      sink,
	}
}
