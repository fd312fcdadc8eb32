// Package rastrigin evolves real-valued points toward the global minimum of the Rastrigin function
package rastrigin

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"

	"github.com/lixenwraith/genpop/config"
	"github.com/lixenwraith/genpop/genetic"
	"github.com/lixenwraith/genpop/genetic/fitness"
)

// MaxFitness is the score of the global minimum at the origin
const MaxFitness = 100

// Strategy scores a point by its inverse Rastrigin cost, scaled to [0, MaxFitness]
type Strategy struct {
	bounds   []genetic.Bounds
	generate genetic.GenotypeFunc[float64]
	mutate   genetic.MutationFunc[float64]
	score    fitness.NormalizeFunc
}

func New(cfg config.Rastrigin) *Strategy {
	b := genetic.Bounds{Min: -cfg.Bound, Max: cfg.Bound}
	bounds := make([]genetic.Bounds, cfg.Dimensions)
	for i := range bounds {
		bounds[i] = b
	}

	sample := func(rng *rand.Rand) float64 {
		return b.Min + rng.Float64()*(b.Max-b.Min)
	}
	return &Strategy{
		bounds:   bounds,
		generate: genetic.UniformGenotype(cfg.Dimensions, sample),
		mutate:   genetic.GaussianMutation(cfg.MutationRate, cfg.StdDev, bounds),
		score:    fitness.Scale(fitness.NormalizeInverse(1), MaxFitness),
	}
}

// Cost is the Rastrigin function: 10n + sum(x^2 - 10cos(2*pi*x)), 0 at the origin
func Cost(x []float64) float64 {
	c := 10 * float64(len(x))
	for _, v := range x {
		c += v*v - 10*math.Cos(2*math.Pi*v)
	}
	return c
}

func (s *Strategy) Bounds() []genetic.Bounds {
	return append([]genetic.Bounds(nil), s.bounds...)
}

func (s *Strategy) Generate(rng *rand.Rand) (genetic.Individual[float64], error) {
	return s.generate(rng), nil
}

func (s *Strategy) Evaluate(ind genetic.Individual[float64]) (float64, error) {
	return s.score(Cost(ind.Genes())), nil
}

func (s *Strategy) Mutate(rng *rand.Rand, ind genetic.Individual[float64]) (genetic.Individual[float64], error) {
	return s.mutate(rng, ind), nil
}

// Describe summarizes an individual for logs
func (s *Strategy) Describe(ind genetic.Individual[float64]) string {
	x := ind.Genes()
	norm := 0.0
	if len(x) > 0 {
		norm = floats.Norm(x, 2)
	}
	return fmt.Sprintf("cost=%.4f |x|=%.4f", Cost(x), norm)
}
