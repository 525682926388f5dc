// Package config loads CLI defaults from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the settings a run can take from a file.
type Config struct {
	// Format is the input encoding: pseudo_tab, long or binary.
	Format string `yaml:"format"`

	// Approach is the distance strategy: vectorized, correlation, loop or bitmap.
	Approach string `yaml:"approach"`

	// Metric is the binary distance metric.
	Metric string `yaml:"metric"`

	// Similarity writes 1 - distance instead of distance.
	Similarity bool `yaml:"similarity"`

	// Workers bounds parallelism (0 = all CPUs).
	Workers int `yaml:"workers"`

	// Precision is the number of decimals in output (-1 = shortest exact).
	Precision int `yaml:"precision"`

	// Output is the output path; empty means stdout.
	Output string `yaml:"output"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Format:     "pseudo_tab",
		Approach:   "vectorized",
		Metric:     "jaccard",
		Similarity: true,
		Workers:    0,
		Precision:  -1,
	}
}

// Load reads a YAML config file on top of the defaults. A missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks numeric ranges.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	if c.Precision < -1 {
		return fmt.Errorf("precision must be >= -1, got %d", c.Precision)
	}
	return nil
}
