// Package scenario sequences the canned guest regions through the
// translation engine and carries the run configuration.
package scenario

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds the knobs for a translation run.
type Config struct {
	// Budget is the initial cycle budget for a straight-line
	// translation block when no branch obligation constrains it.
	// Default: 1000 cycles.
	Budget int `json:"budget"`

	// SingleILC is the inner loop counter for the single
	// pipelined-loop scenario. Default: 8 iterations.
	SingleILC int `json:"single_ilc"`

	// NestedILC is the initial inner loop counter for the nested-loop
	// scenario. Default: 7 iterations.
	NestedILC int `json:"nested_ilc"`

	// NestedRILC is the reload value for the inner loop counter at
	// each outer-iteration seam. Default: 7.
	NestedRILC int `json:"nested_rilc"`

	// NestedA1 is the outer loop counter for the nested-loop
	// scenario. Default: 3 iterations, enough to visit the overlap
	// region twice.
	NestedA1 int `json:"nested_a1"`
}

// DefaultConfig returns a Config with the default run values.
func DefaultConfig() *Config {
	return &Config{
		Budget:     1000,
		SingleILC:  8,
		NestedILC:  7,
		NestedRILC: 7,
		NestedA1:   3,
	}
}

// LoadConfig loads a Config from a JSON file. Fields absent from the
// file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read run config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse run config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a Config to a JSON file.
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize run config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write run config file: %w", err)
	}

	return nil
}

// Validate checks that all run values are positive.
func (c *Config) Validate() error {
	if c.Budget <= 0 {
		return fmt.Errorf("budget must be > 0")
	}
	if c.SingleILC <= 0 {
		return fmt.Errorf("single_ilc must be > 0")
	}
	if c.NestedILC <= 0 {
		return fmt.Errorf("nested_ilc must be > 0")
	}
	if c.NestedRILC <= 0 {
		return fmt.Errorf("nested_rilc must be > 0")
	}
	if c.NestedA1 <= 0 {
		return fmt.Errorf("nested_a1 must be > 0")
	}
	return nil
}

// Clone returns a copy of the Config.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
