package genetic

import "math/rand/v2"

// Bounds is the closed value range of one real-valued gene
type Bounds struct {
	Min, Max float64
}

// Clamp limits v to the range
func (b Bounds) Clamp(v float64) float64 {
	if v < b.Min {
		return b.Min
	}
	if v > b.Max {
		return b.Max
	}
	return v
}

// ResetMutation replaces each gene, with probability rate, by a fresh value from sample
func ResetMutation[T any](rate float64, sample func(rng *rand.Rand) T) MutationFunc[T] {
	return func(rng *rand.Rand, ind Individual[T]) Individual[T] {
		genes := ind.Genes()
		for i := range genes {
			if rng.Float64() < rate {
				genes[i] = sample(rng)
			}
		}
		return Individual[T]{genes: genes}
	}
}

// GaussianMutation adds noise to each gene with probability rate.
// The noise deviation is stdDev times the gene's range and results are clamped to bounds.
// Genes beyond len(bounds) are left unchanged.
func GaussianMutation(rate, stdDev float64, bounds []Bounds) MutationFunc[float64] {
	return func(rng *rand.Rand, ind Individual[float64]) Individual[float64] {
		genes := ind.Genes()
		for i := range genes {
			if i >= len(bounds) {
				break
			}
			if rng.Float64() >= rate {
				continue
			}
			b := bounds[i]
			genes[i] = b.Clamp(genes[i] + rng.NormFloat64()*stdDev*(b.Max-b.Min))
		}
		return Individual[float64]{genes: genes}
	}
}

// UniformGenotype builds individuals of the given length with every gene drawn from sample
func UniformGenotype[T any](length int, sample func(rng *rand.Rand) T) GenotypeFunc[T] {
	return func(rng *rand.Rand) Individual[T] {
		genes := make([]T, length)
		for i := range genes {
			genes[i] = sample(rng)
		}
		return Individual[T]{genes: genes}
	}
}
