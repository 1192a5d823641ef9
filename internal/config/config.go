// Package config loads the YAML scenario files the cmd/ demos use to
// parameterize a Context: map size, cell size, shape counts, and the
// random seed that drives procedural placement.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	defaultMapSize  = 200.0
	defaultCellSize = 4.0
	defaultSeed     = 1
)

// Scenario holds everything a demo program needs to build a Context and
// populate it.
type Scenario struct {
	Display DisplayConfig `yaml:"display"`
	World   WorldConfig   `yaml:"world"`
	Boxes   BoxesConfig   `yaml:"boxes"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	WindowTitle  string `yaml:"window_title"`
}

type WorldConfig struct {
	MapSizeX int     `yaml:"map_size_x"`
	MapSizeY int     `yaml:"map_size_y"`
	CellSize float64 `yaml:"cell_size"`
}

type BoxesConfig struct {
	Count      int     `yaml:"count"`
	Seed       int64   `yaml:"seed"`
	HalfExtent float64 `yaml:"half_extent"`
	Speed      float64 `yaml:"speed"`
}

// GlobalScenario holds the last scenario loaded by LoadScenario, mirroring
// the teacher's package-level GlobalConfig access pattern.
var GlobalScenario *Scenario

func (s *Scenario) cellSize() float64 {
	if s != nil && s.World.CellSize > 0 {
		return s.World.CellSize
	}
	return defaultCellSize
}

// MapSize returns the configured map size, or a square defaultMapSize if
// unset.
func (s *Scenario) MapSize() (x, y float64) {
	if s == nil {
		return defaultMapSize, defaultMapSize
	}
	x, y = float64(s.World.MapSizeX), float64(s.World.MapSizeY)
	if x <= 0 {
		x = defaultMapSize
	}
	if y <= 0 {
		y = defaultMapSize
	}
	return x, y
}

// CellSize returns the configured cell size, or defaultCellSize if unset.
func (s *Scenario) CellSize() float64 {
	return s.cellSize()
}

// Seed returns the configured random seed, or defaultSeed if unset.
func (s *Scenario) Seed() int64 {
	if s != nil && s.Boxes.Seed != 0 {
		return s.Boxes.Seed
	}
	return defaultSeed
}

// LoadScenario loads a scenario YAML file from disk.
func LoadScenario(filename string) (*Scenario, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", filename, err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", filename, err)
	}

	GlobalScenario = &s
	return &s, nil
}

// MustLoadScenario loads a scenario and panics on error, for demo main()
// functions that have no sensible fallback.
func MustLoadScenario(filename string) *Scenario {
	s, err := LoadScenario(filename)
	if err != nil {
		panic(err)
	}
	return s
}
