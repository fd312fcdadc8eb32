// Package threshold is the counting benchmark: maximize the number of genes above a cutoff
package threshold

import (
	"math/rand/v2"

	"github.com/lixenwraith/genpop/config"
	"github.com/lixenwraith/genpop/genetic"
)

// Strategy draws genes uniformly from [0, Bound) and scores the count of genes above Cutoff
type Strategy struct {
	genes  int
	bound  int
	cutoff int
	mutate genetic.MutationFunc[int]
}

func New(cfg config.Threshold) *Strategy {
	s := &Strategy{
		genes:  cfg.Genes,
		bound:  cfg.Bound,
		cutoff: cfg.Cutoff,
	}
	s.mutate = genetic.ResetMutation(cfg.MutationRate, s.sample)
	return s
}

func (s *Strategy) sample(rng *rand.Rand) int {
	return rng.IntN(s.bound)
}

func (s *Strategy) Generate(rng *rand.Rand) (genetic.Individual[int], error) {
	return genetic.UniformGenotype(s.genes, s.sample)(rng), nil
}

func (s *Strategy) Evaluate(ind genetic.Individual[int]) (float64, error) {
	return float64(s.Count(ind)), nil
}

func (s *Strategy) Mutate(rng *rand.Rand, ind genetic.Individual[int]) (genetic.Individual[int], error) {
	return s.mutate(rng, ind), nil
}

// Count returns the number of genes above the cutoff
func (s *Strategy) Count(ind genetic.Individual[int]) int {
	n := 0
	for i := 0; i < ind.Len(); i++ {
		if ind.Gene(i) > s.cutoff {
			n++
		}
	}
	return n
}

// MaxFitness is the best attainable score
func (s *Strategy) MaxFitness() float64 {
	if s.cutoff >= s.bound-1 {
		return 0
	}
	return float64(s.genes)
}
