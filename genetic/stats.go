package genetic

import (
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes the fitness of one scored generation
type Stats struct {
	Generation int
	Best       float64
	Worst      float64
	Average    float64
	Total      float64
	StdDev     float64
}

// computeStats summarizes a scored generation
func computeStats[T any](generation int, individuals []Individual[T]) Stats {
	s := Stats{Generation: generation}
	if len(individuals) == 0 {
		return s
	}

	fitnesses := make([]float64, len(individuals))
	s.Best = individuals[0].fitness
	s.Worst = individuals[0].fitness
	for i, ind := range individuals {
		f := ind.fitness
		fitnesses[i] = f
		s.Total += f
		if f > s.Best {
			s.Best = f
		}
		if f < s.Worst {
			s.Worst = f
		}
	}

	if len(fitnesses) < 2 {
		s.Average = fitnesses[0]
		return s
	}
	s.Average, s.StdDev = stat.MeanStdDev(fitnesses, nil)
	return s
}
