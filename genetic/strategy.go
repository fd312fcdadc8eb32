package genetic

import "math/rand/v2"

// Strategy supplies the problem-specific parts of the algorithm.
// Errors returned by any method reach the Population caller unmodified.
type Strategy[T any] interface {
	// Generate creates a random individual; its fitness is a placeholder
	Generate(rng *rand.Rand) (Individual[T], error)
	// Evaluate scores an individual; results must be non-negative
	Evaluate(ind Individual[T]) (float64, error)
	// Mutate returns a perturbed copy of ind and must not modify ind
	Mutate(rng *rand.Rand, ind Individual[T]) (Individual[T], error)
}

// GenotypeFunc creates a random individual
type GenotypeFunc[T any] func(rng *rand.Rand) Individual[T]

// FitnessFunc scores an individual
type FitnessFunc[T any] func(ind Individual[T]) float64

// MutationFunc derives a new, possibly perturbed, individual from ind
type MutationFunc[T any] func(rng *rand.Rand, ind Individual[T]) Individual[T]

// Funcs adapts three plain functions to the Strategy interface.
// Use it when none of the functions can fail.
type Funcs[T any] struct {
	Genotype GenotypeFunc[T]
	Fitness  FitnessFunc[T]
	Mutation MutationFunc[T]
}

func (f Funcs[T]) Generate(rng *rand.Rand) (Individual[T], error) {
	return f.Genotype(rng), nil
}

func (f Funcs[T]) Evaluate(ind Individual[T]) (float64, error) {
	return f.Fitness(ind), nil
}

func (f Funcs[T]) Mutate(rng *rand.Rand, ind Individual[T]) (Individual[T], error) {
	return f.Mutation(rng, ind), nil
}

func (f Funcs[T]) validate() error {
	switch {
	case f.Genotype == nil:
		return &ConfigError{Field: "Genotype", Value: nil, Reason: "function is nil"}
	case f.Fitness == nil:
		return &ConfigError{Field: "Fitness", Value: nil, Reason: "function is nil"}
	case f.Mutation == nil:
		return &ConfigError{Field: "Mutation", Value: nil, Reason: "function is nil"}
	}
	return nil
}

// IdentityMutation returns offspring unchanged (as a copy)
func IdentityMutation[T any]() MutationFunc[T] {
	return func(_ *rand.Rand, ind Individual[T]) Individual[T] {
		return ind.Clone()
	}
}
