package genetic

import (
	"fmt"
	"math/rand/v2"
	"slices"
)

// Population owns one generation of individuals and evolves it generation by generation.
// It is not safe for concurrent use; the generator is private to the instance.
type Population[T any] struct {
	config   Config
	strategy Strategy[T]
	rng      *rand.Rand

	individuals []Individual[T]
	fittest     Individual[T]
	geneLen     int
	generation  int

	stats   Stats
	history []Stats
}

// NewPopulation validates cfg, generates cfg.Size individuals and scores them
func NewPopulation[T any](cfg Config, strategy Strategy[T]) (*Population[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if strategy == nil {
		return nil, &ConfigError{Field: "Strategy", Value: nil, Reason: "strategy is nil"}
	}
	if v, ok := strategy.(interface{ validate() error }); ok {
		if err := v.validate(); err != nil {
			return nil, err
		}
	}

	var rng *rand.Rand
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	} else {
		rng = rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	}

	p := &Population[T]{
		config:   cfg,
		strategy: strategy,
		rng:      rng,
	}

	if err := p.initialize(); err != nil {
		return nil, err
	}
	if err := p.evaluate(0); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Population[T]) initialize() error {
	individuals := make([]Individual[T], 0, p.config.Size)
	for i := 0; i < p.config.Size; i++ {
		ind, err := p.strategy.Generate(p.rng)
		if err != nil {
			return err
		}
		if i == 0 {
			p.geneLen = ind.Len()
		} else if ind.Len() != p.geneLen {
			return fmt.Errorf("generated individual %d has %d genes, want %d: %w", i, ind.Len(), p.geneLen, ErrGeneLength)
		}
		individuals = append(individuals, ind.Clone())
	}
	p.individuals = individuals
	return nil
}

// AdvanceGeneration replaces the population with the next generation and scores it.
// A mutation error leaves the current generation untouched. An evaluation error leaves
// the new generation in place but partially scored, and the counter is not advanced.
func (p *Population[T]) AdvanceGeneration() error {
	next := make([]Individual[T], 0, p.config.Size)
	next = append(next, p.elite()...)

	for len(next) < p.config.Size {
		offspring1 := p.rouletteSelect()
		offspring2 := p.rouletteSelect()

		crossover(p.rng, p.config.CrossoverRate, &offspring1, &offspring2)

		child, err := p.mutate(offspring1)
		if err != nil {
			return err
		}
		next = append(next, child)
		if len(next) == p.config.Size {
			break
		}

		child, err = p.mutate(offspring2)
		if err != nil {
			return err
		}
		next = append(next, child)
	}

	p.individuals = next
	if err := p.evaluate(p.generation + 1); err != nil {
		return err
	}
	p.generation++
	return nil
}

func (p *Population[T]) mutate(ind Individual[T]) (Individual[T], error) {
	child, err := p.strategy.Mutate(p.rng, ind)
	if err != nil {
		return Individual[T]{}, err
	}
	if child.Len() != p.geneLen {
		return Individual[T]{}, fmt.Errorf("mutated individual has %d genes, want %d: %w", child.Len(), p.geneLen, ErrGeneLength)
	}
	// Detach from anything the strategy may still hold
	return child.Clone(), nil
}

// evaluate scores every individual, caches the fittest and records stats
func (p *Population[T]) evaluate(generation int) error {
	best := 0
	for i := range p.individuals {
		f, err := p.strategy.Evaluate(p.individuals[i])
		if err != nil {
			return err
		}
		p.individuals[i].SetFitness(f)
		if f > p.individuals[best].fitness {
			best = i
		}
	}

	p.fittest = p.individuals[best].Clone()
	p.stats = computeStats(generation, p.individuals)
	p.history = append(p.history, p.stats)
	return nil
}

// Fittest returns a copy of the best individual of the current generation
func (p *Population[T]) Fittest() Individual[T] {
	return p.fittest.Clone()
}

// Individuals returns deep copies of the current generation in population order
func (p *Population[T]) Individuals() []Individual[T] {
	out := make([]Individual[T], len(p.individuals))
	for i, ind := range p.individuals {
		out[i] = ind.Clone()
	}
	return out
}

// Generation returns the number of completed AdvanceGeneration calls
func (p *Population[T]) Generation() int {
	return p.generation
}

func (p *Population[T]) Size() int {
	return len(p.individuals)
}

func (p *Population[T]) GeneLen() int {
	return p.geneLen
}

func (p *Population[T]) Config() Config {
	return p.config
}

// Stats returns the fitness summary of the current generation
func (p *Population[T]) Stats() Stats {
	return p.stats
}

// History returns the stats of every scored generation, starting with generation 0
func (p *Population[T]) History() []Stats {
	return slices.Clone(p.history)
}
