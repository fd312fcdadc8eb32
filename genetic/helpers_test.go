package genetic

import (
	"errors"
	"math/rand/v2"
)

// unitStrategy evolves a single gene in [0, 1) scored by its own value
func unitStrategy(mutation MutationFunc[float64]) Funcs[float64] {
	return Funcs[float64]{
		Genotype: UniformGenotype(1, func(rng *rand.Rand) float64 { return rng.Float64() }),
		Fitness:  func(ind Individual[float64]) float64 { return ind.Gene(0) },
		Mutation: mutation,
	}
}

// countingStrategy records calls and can fail on demand
type countingStrategy struct {
	genes int

	generated int
	evaluated int
	mutated   int

	generateErr error
	evaluateErr error
	mutateErr   error

	fitness func(genes []int) float64
}

var errBoom = errors.New("boom")

func (s *countingStrategy) Generate(rng *rand.Rand) (Individual[int], error) {
	s.generated++
	if s.generateErr != nil {
		return Individual[int]{}, s.generateErr
	}
	genes := make([]int, s.genes)
	for i := range genes {
		genes[i] = rng.IntN(10)
	}
	return NewIndividual(genes), nil
}

func (s *countingStrategy) Evaluate(ind Individual[int]) (float64, error) {
	s.evaluated++
	if s.evaluateErr != nil {
		return 0, s.evaluateErr
	}
	if s.fitness != nil {
		return s.fitness(ind.Genes()), nil
	}
	sum := 0
	for i := 0; i < ind.Len(); i++ {
		sum += ind.Gene(i)
	}
	return float64(sum), nil
}

func (s *countingStrategy) Mutate(_ *rand.Rand, ind Individual[int]) (Individual[int], error) {
	s.mutated++
	if s.mutateErr != nil {
		return Individual[int]{}, s.mutateErr
	}
	return ind.Clone(), nil
}
