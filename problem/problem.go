// Package problem builds the demonstration problems by name
package problem

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lixenwraith/genpop/config"
	"github.com/lixenwraith/genpop/genetic"
	"github.com/lixenwraith/genpop/problem/circlefit"
	"github.com/lixenwraith/genpop/problem/mazewalk"
	"github.com/lixenwraith/genpop/problem/rastrigin"
	"github.com/lixenwraith/genpop/problem/threshold"
)

// Instance is a configured problem ready to seed a population
type Instance[T any] struct {
	Name     string
	Strategy genetic.Strategy[T]

	// PopulationSize is used when the configuration leaves the size unset
	PopulationSize int

	// MaxFitness is the best attainable score, 0 when unknown
	MaxFitness float64

	// Describe summarizes an individual for logs
	Describe func(genetic.Individual[T]) string
}

// Real reports whether the named problem evolves float64 genes; build it with NewReal
func Real(name string) bool {
	return name == config.ProblemRastrigin
}

// New builds the integer-gene problem named by cfg.Name
func New(cfg config.Problem) (Instance[int], error) {
	switch cfg.Name {
	case config.ProblemThreshold:
		s := threshold.New(cfg.Threshold)
		return Instance[int]{
			Name:           cfg.Name,
			Strategy:       s,
			PopulationSize: cfg.PopulationSize(),
			MaxFitness:     s.MaxFitness(),
			Describe: func(ind genetic.Individual[int]) string {
				return "above=" + strconv.Itoa(s.Count(ind)) + "/" + strconv.Itoa(ind.Len())
			},
		}, nil

	case config.ProblemMaze:
		s := mazewalk.New(cfg.Maze)
		return Instance[int]{
			Name:           cfg.Name,
			Strategy:       s,
			PopulationSize: cfg.PopulationSize(),
			MaxFitness:     1,
			Describe:       s.Describe,
		}, nil

	case config.ProblemCircleFit:
		s := circlefit.New(cfg.CircleFit)
		return Instance[int]{
			Name:           cfg.Name,
			Strategy:       s,
			PopulationSize: cfg.PopulationSize(),
			Describe:       s.Describe,
		}, nil
	}
	if Real(cfg.Name) {
		return Instance[int]{}, fmt.Errorf("problem %q has real-valued genes", cfg.Name)
	}
	return Instance[int]{}, fmt.Errorf("unknown problem %q (want %s)", cfg.Name, strings.Join(config.Problems, ", "))
}

// NewReal builds the float64-gene problem named by cfg.Name
func NewReal(cfg config.Problem) (Instance[float64], error) {
	if cfg.Name != config.ProblemRastrigin {
		return Instance[float64]{}, fmt.Errorf("problem %q has no real-valued variant", cfg.Name)
	}
	s := rastrigin.New(cfg.Rastrigin)
	return Instance[float64]{
		Name:           cfg.Name,
		Strategy:       s,
		PopulationSize: cfg.PopulationSize(),
		MaxFitness:     rastrigin.MaxFitness,
		Describe:       s.Describe,
	}, nil
}
