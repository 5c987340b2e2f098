package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/metatsp/antcolony"
	"github.com/katalvlaran/metatsp/config"
	"github.com/katalvlaran/metatsp/genetic"
	"github.com/katalvlaran/metatsp/tsp"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, config.AlgoHybrid, cfg.Algorithm)
	require.Equal(t, 1, cfg.Restarts)
	require.Equal(t, genetic.DefaultOptions().PopulationSize, cfg.Genetic.PopulationSize)
	require.Equal(t, antcolony.DefaultOptions().EvaporationRate, cfg.AntColony.EvaporationRate)
	require.Equal(t, tsp.DefaultBounds(), cfg.Cities.Bounds())
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, "metatsp.yaml", `
seed: 42
algorithm: ga
restarts: 3
genetic:
  population_size: 50
  elitism_count: 5
ant_colony:
  evaporation_rate: 0.3
hybrid:
  polish: true
cities:
  count: 12
log:
  level: debug
  format: json
metrics:
  addr: "localhost:9090"
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	require.Equal(t, int64(42), cfg.Seed)
	require.Equal(t, config.AlgoGenetic, cfg.Algorithm)
	require.Equal(t, 3, cfg.Restarts)
	require.Equal(t, 50, cfg.Genetic.PopulationSize)
	require.Equal(t, 5, cfg.Genetic.ElitismCount)
	require.Equal(t, genetic.DefaultOptions().MaxGenerations, cfg.Genetic.MaxGenerations, "unset keys keep defaults")
	require.Equal(t, 0.3, cfg.AntColony.EvaporationRate)
	require.True(t, cfg.Hybrid.Polish)
	require.Equal(t, 12, cfg.Cities.Count)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "localhost:9090", cfg.Metrics.Addr)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = config.Load(writeFile(t, "bad.yaml", "seed: [1, 2"))
	require.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeFile(t, "metatsp.yaml", "seed: 1\nworkers: 2\n")
	t.Setenv(config.EnvSeed, "77")
	t.Setenv(config.EnvWorkers, "4")
	t.Setenv(config.EnvLogLevel, "warn")
	t.Setenv(config.EnvStatsFile, "/tmp/s.json")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, int64(77), cfg.Seed)
	require.Equal(t, 4, cfg.Workers)
	require.Equal(t, "warn", cfg.Log.Level)
	require.Equal(t, "/tmp/s.json", cfg.Stats.File)
}

func TestLoad_BadEnv(t *testing.T) {
	t.Setenv(config.EnvSeed, "abc")
	_, err := config.Load("")
	require.ErrorIs(t, err, tsp.ErrInvalidInput)

	t.Setenv(config.EnvSeed, "")
	t.Setenv(config.EnvWorkers, "-1")
	_, err = config.Load("")
	require.ErrorIs(t, err, tsp.ErrInvalidInput, "negative workers fail validation")
}

func TestValidate_Rejects(t *testing.T) {
	cases := []struct {
		name  string
		mod   func(*config.Config)
		field string
	}{
		{"algorithm", func(c *config.Config) { c.Algorithm = "sa" }, "Algorithm"},
		{"restarts", func(c *config.Config) { c.Restarts = 0 }, "Restarts"},
		{"population", func(c *config.Config) { c.Genetic.PopulationSize = 0 }, "PopulationSize"},
		{"mutation", func(c *config.Config) { c.Genetic.MutationRate = 1.2 }, "MutationRate"},
		{"elitism above population", func(c *config.Config) { c.Genetic.ElitismCount = c.Genetic.PopulationSize + 1 }, "ElitismCount"},
		{"ants", func(c *config.Config) { c.AntColony.Ants = 0 }, "Ants"},
		{"rho", func(c *config.Config) { c.AntColony.EvaporationRate = 1 }, "EvaporationRate"},
		{"floor above initial", func(c *config.Config) { c.AntColony.MinPheromone = 1 }, "MinPheromone"},
		{"count", func(c *config.Config) { c.Cities.Count = 1 }, "Count"},
		{"log level", func(c *config.Config) { c.Log.Level = "loud" }, "Level"},
		{"log format", func(c *config.Config) { c.Log.Format = "xml" }, "Format"},
		{"metrics addr", func(c *config.Config) { c.Metrics.Addr = "nope" }, "Addr"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mod(&cfg)
			err := cfg.Validate()
			require.ErrorIs(t, err, tsp.ErrInvalidInput)

			var verrs validator.ValidationErrors
			require.True(t, errors.As(err, &verrs))
			require.Equal(t, tc.field, verrs[0].Field())
		})
	}
}

func TestValidate_Bounds(t *testing.T) {
	cfg := config.Default()
	cfg.Cities.Margin = cfg.Cities.Height / 2
	require.ErrorIs(t, cfg.Validate(), config.ErrInvalidBounds)
	require.ErrorIs(t, cfg.Validate(), tsp.ErrInvalidInput)

	cfg.Cities.File = "cities.yaml"
	require.NoError(t, cfg.Validate(), "bounds unused with a file")
}

func TestConversions(t *testing.T) {
	cfg := config.Default()
	cfg.Seed = 9
	cfg.Workers = 3
	cfg.Hybrid.Polish = true
	sink := tsp.SinkFunc(nil)

	ga := cfg.GeneticOptions(sink)
	require.Equal(t, int64(9), ga.Seed)
	require.Equal(t, 3, ga.Workers)
	require.Equal(t, cfg.Genetic.MutationRate, ga.MutationRate)
	require.NotNil(t, ga.Sink)

	aco := cfg.AntColonyOptions(nil)
	require.Equal(t, int64(9), aco.Seed)
	require.Equal(t, cfg.AntColony.Beta, aco.Beta)
	require.Nil(t, aco.HintTour)
	require.Nil(t, aco.Sink)

	hy := cfg.HybridOptions(sink)
	require.Equal(t, int64(9), hy.Seed)
	require.Zero(t, hy.Genetic.Seed, "derived by the coordinator")
	require.Zero(t, hy.AntColony.Seed)
	require.Equal(t, 3, hy.AntColony.Workers)
	require.True(t, hy.Polish)
	require.Nil(t, hy.Genetic.Sink, "inherits the hybrid sink")

	_, err := genetic.New([]tsp.City{{X: 0, Y: 0}, {X: 1, Y: 1}}, ga)
	require.NoError(t, err, "converted options are accepted by the engine")
	_, err = antcolony.New([]tsp.City{{X: 0, Y: 0}, {X: 1, Y: 1}}, aco)
	require.NoError(t, err)
}
