package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config drives the comparison demo. All fields have working defaults so a
// missing file still produces a runnable setup.
type Config struct {
	Option     OptionConfig     `yaml:"option"`
	Lattice    LatticeConfig    `yaml:"lattice"`
	MonteCarlo MonteCarloConfig `yaml:"montecarlo"`
	Surface    SurfaceConfig    `yaml:"surface"`
	Output     OutputConfig     `yaml:"output"`
}

type OptionConfig struct {
	Spot     float64 `yaml:"spot"`
	Strike   float64 `yaml:"strike"`
	Maturity float64 `yaml:"maturity"`
	Rate     float64 `yaml:"rate"`
	Vol      float64 `yaml:"vol"`
	Type     string  `yaml:"type"`
}

type LatticeConfig struct {
	Steps    int    `yaml:"steps"`
	Exercise string `yaml:"exercise"`
}

type MonteCarloConfig struct {
	Paths      int    `yaml:"paths"`
	Antithetic *bool  `yaml:"antithetic"`
	Seed       uint64 `yaml:"seed"`
	Workers    int    `yaml:"workers"`
}

type SurfaceConfig struct {
	// File points at a CSV of (maturity, strike, iv) rows. Empty means the
	// demo builds its own small sample surface.
	File string  `yaml:"file"`
	Bump float64 `yaml:"bump"`
}

type OutputConfig struct {
	ResultsFile string `yaml:"results_file"`
}

func Default() *Config {
	antithetic := true
	return &Config{
		Option: OptionConfig{
			Spot:     100,
			Strike:   100,
			Maturity: 1.0,
			Rate:     0.05,
			Vol:      0.20,
			Type:     "call",
		},
		Lattice: LatticeConfig{
			Steps:    300,
			Exercise: "european",
		},
		MonteCarlo: MonteCarloConfig{
			Paths:      10000,
			Antithetic: &antithetic,
		},
		Surface: SurfaceConfig{
			Bump: 0.02,
		},
		Output: OutputConfig{
			ResultsFile: "results.json",
		},
	}
}

// Load reads a YAML file over the defaults. A missing path is not an error;
// the defaults come back untouched.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
