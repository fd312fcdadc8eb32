package genetic

import (
	"math"
	"math/rand/v2"
	"sort"
)

// elite returns clones of the top EliteCount individuals, each repeated EliteCopies times.
// Equal fitness keeps population order.
func (p *Population[T]) elite() []Individual[T] {
	if p.config.EliteCount == 0 {
		return nil
	}

	order := make([]int, len(p.individuals))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return p.individuals[order[a]].fitness > p.individuals[order[b]].fitness
	})

	out := make([]Individual[T], 0, p.config.EliteCount*p.config.EliteCopies)
	for _, idx := range order[:p.config.EliteCount] {
		for c := 0; c < p.config.EliteCopies; c++ {
			out = append(out, p.individuals[idx].Clone())
		}
	}
	return out
}

// rouletteSelect picks a clone with probability proportional to fitness.
// A population without positive total fitness falls back to a uniform pick.
func (p *Population[T]) rouletteSelect() Individual[T] {
	total := 0.0
	for _, ind := range p.individuals {
		total += ind.fitness
	}
	if !(total > 0) || math.IsInf(total, 0) {
		return p.uniformSelect()
	}

	slice := p.rng.Float64() * total
	running := 0.0
	for _, ind := range p.individuals {
		running += ind.fitness
		if ind.fitness > 0 && running >= slice {
			return ind.Clone()
		}
	}

	// Rounding kept the running sum below the slice
	return p.uniformSelect()
}

func (p *Population[T]) uniformSelect() Individual[T] {
	return p.individuals[p.rng.IntN(len(p.individuals))].Clone()
}

// crossover swaps the tails of a and b from a random cut with probability rate.
// a and b must be private clones. Returns the cut, or -1 when no exchange happened.
func crossover[T any](rng *rand.Rand, rate float64, a, b *Individual[T]) int {
	if rng.Float64() >= rate {
		return -1
	}
	n := min(len(a.genes), len(b.genes))
	if n == 0 {
		return -1
	}

	cut := rng.IntN(n)
	for i := cut; i < n; i++ {
		a.genes[i], b.genes[i] = b.genes[i], a.genes[i]
	}
	return cut
}
