package genetic

import "slices"

// Individual is one candidate solution: a fixed-length gene sequence and its fitness score.
// The gene slice is owned by the Individual. Constructors and SetGenes copy their input and
// Genes returns a copy, so no caller can reach the backing array. Because no exported method
// writes into that array, plain value copies of an Individual are safe to share.
type Individual[T any] struct {
	genes   []T
	fitness float64
}

// NewIndividual creates an unscored individual owning a copy of genes
func NewIndividual[T any](genes []T) Individual[T] {
	return Individual[T]{genes: slices.Clone(genes)}
}

// NewScored creates an individual owning a copy of genes with the given fitness
func NewScored[T any](genes []T, fitness float64) Individual[T] {
	return Individual[T]{genes: slices.Clone(genes), fitness: fitness}
}

// Genes returns a copy of the gene sequence
func (ind Individual[T]) Genes() []T {
	return slices.Clone(ind.genes)
}

// SetGenes replaces the gene sequence with a copy of genes
func (ind *Individual[T]) SetGenes(genes []T) {
	ind.genes = slices.Clone(genes)
}

// Gene returns the gene at position i without copying the sequence
func (ind Individual[T]) Gene(i int) T {
	return ind.genes[i]
}

// Len returns the gene sequence length
func (ind Individual[T]) Len() int {
	return len(ind.genes)
}

func (ind Individual[T]) Fitness() float64 {
	return ind.fitness
}

func (ind *Individual[T]) SetFitness(fitness float64) {
	ind.fitness = fitness
}

// Clone returns a deep copy
func (ind Individual[T]) Clone() Individual[T] {
	return Individual[T]{genes: slices.Clone(ind.genes), fitness: ind.fitness}
}

// GenesEqual reports whether two individuals carry identical gene sequences
func GenesEqual[T comparable](a, b Individual[T]) bool {
	return slices.Equal(a.genes, b.genes)
}
