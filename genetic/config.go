package genetic

import (
	"math"

	"github.com/lixenwraith/genpop/parameter"
)

// Config holds the population parameters
type Config struct {
	// Size is the number of individuals in every generation
	Size int
	// CrossoverRate is the probability (0-1) that a selected pair is recombined
	CrossoverRate float64
	// EliteCount is the number of best individuals carried forward unmutated
	EliteCount int
	// EliteCopies is how many copies of each elite enter the next generation
	EliteCopies int
	// Seed for the population's generator (0 for a random seed)
	Seed uint64
}

// DefaultConfig returns the standard configuration for a population of the given size
func DefaultConfig(size int) Config {
	return Config{
		Size:          size,
		CrossoverRate: parameter.GACrossoverRate,
		EliteCount:    parameter.GAEliteCount,
		EliteCopies:   parameter.GAEliteCopies,
	}
}

// Validate reports the first invalid field
func (c Config) Validate() error {
	if c.Size <= 0 {
		return &ConfigError{Field: "Size", Value: c.Size, Reason: "must be positive"}
	}
	if math.IsNaN(c.CrossoverRate) || c.CrossoverRate < 0 || c.CrossoverRate > 1 {
		return &ConfigError{Field: "CrossoverRate", Value: c.CrossoverRate, Reason: "must be within [0, 1]"}
	}
	if c.EliteCount < 0 || c.EliteCount > c.Size {
		return &ConfigError{Field: "EliteCount", Value: c.EliteCount, Reason: "must be within [0, Size]"}
	}
	if c.EliteCopies < 1 {
		return &ConfigError{Field: "EliteCopies", Value: c.EliteCopies, Reason: "must be at least 1"}
	}
	if c.EliteCount*c.EliteCopies > c.Size {
		return &ConfigError{Field: "EliteCopies", Value: c.EliteCopies, Reason: "EliteCount*EliteCopies exceeds Size"}
	}
	return nil
}
