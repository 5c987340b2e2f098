package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/metatsp/tsp"
)

// citiesFile is the on-disk layout of a city list:
//
//	cities:
//	  - {x: 50, y: 120}
//	  - {x: 830, y: 410}
type citiesFile struct {
	Cities []tsp.City `yaml:"cities"`
}

// LoadCities reads a city list written by SaveCities (or by hand) and
// validates it.
func LoadCities(path string) ([]tsp.City, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var f citiesFile
	if err = yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err = tsp.ValidateCities(f.Cities); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}

	return f.Cities, nil
}

// SaveCities writes cities in the LoadCities layout.
func SaveCities(path string, cities []tsp.City) error {
	data, err := yaml.Marshal(citiesFile{Cities: cities})
	if err != nil {
		return fmt.Errorf("config: encode cities: %w", err)
	}
	if err = os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}

	return nil
}

// Instance returns the configured problem: the file when Cities.File is set,
// otherwise Cities.Count random cities drawn with Seed.
func (c Config) Instance() ([]tsp.City, error) {
	if c.Cities.File != "" {
		return LoadCities(c.Cities.File)
	}

	return tsp.RandomCities(c.Cities.Count, c.Cities.Bounds(), tsp.NewRNG(c.Seed))
}
