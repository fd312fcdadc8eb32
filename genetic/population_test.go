package genetic

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPopulation_Initial(t *testing.T) {
	s := &countingStrategy{genes: 4}
	p, err := NewPopulation[int](Config{Size: 12, CrossoverRate: 0.5, EliteCount: 2, EliteCopies: 1, Seed: 1}, s)
	require.NoError(t, err)

	assert.Equal(t, 0, p.Generation())
	assert.Equal(t, 12, p.Size())
	assert.Equal(t, 4, p.GeneLen())
	assert.Equal(t, 12, s.generated)
	assert.Equal(t, 12, s.evaluated)
	assert.Len(t, p.History(), 1)
	assert.Equal(t, 0, p.Stats().Generation)

	best := p.Fittest()
	for _, ind := range p.Individuals() {
		assert.LessOrEqual(t, ind.Fitness(), best.Fitness())
	}
	assert.Equal(t, best.Fitness(), p.Stats().Best)
}

func TestNewPopulation_RejectsNilStrategy(t *testing.T) {
	_, err := NewPopulation[int](DefaultConfig(4), nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewPopulation_RejectsNilFuncs(t *testing.T) {
	s := unitStrategy(nil)
	_, err := NewPopulation[float64](DefaultConfig(4), s)
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "Mutation")
}

func TestNewPopulation_RejectsInvalidConfig(t *testing.T) {
	s := &countingStrategy{genes: 2}
	_, err := NewPopulation[int](Config{Size: 0, EliteCopies: 1}, s)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Equal(t, 0, s.generated, "nothing generated for invalid config")
}

func TestAdvanceGeneration_SizeAndCounter(t *testing.T) {
	for _, size := range []int{1, 2, 3, 7, 10, 33} {
		cfg := Config{Size: size, CrossoverRate: 0.7, EliteCount: min(2, size), EliteCopies: 1, Seed: 42}
		p, err := NewPopulation[int](cfg, &countingStrategy{genes: 5})
		require.NoError(t, err)

		for g := 1; g <= 25; g++ {
			require.NoError(t, p.AdvanceGeneration())
			assert.Equal(t, g, p.Generation())
			assert.Len(t, p.Individuals(), size)
		}
		assert.Len(t, p.History(), 26)
	}
}

func TestAdvanceGeneration_OddFill(t *testing.T) {
	s := &countingStrategy{genes: 3}
	p, err := NewPopulation[int](Config{Size: 7, CrossoverRate: 0.5, EliteCount: 2, EliteCopies: 1, Seed: 3}, s)
	require.NoError(t, err)

	s.mutated, s.evaluated = 0, 0
	require.NoError(t, p.AdvanceGeneration())

	// The last pair contributes only its first offspring
	assert.Equal(t, 5, s.mutated)
	assert.Equal(t, 7, s.evaluated)
	assert.Equal(t, 7, p.Size())
}

func TestAdvanceGeneration_Elitism(t *testing.T) {
	cfg := Config{Size: 20, CrossoverRate: 1, EliteCount: 3, EliteCopies: 1, Seed: 9}
	p, err := NewPopulation[int](cfg, &countingStrategy{genes: 6})
	require.NoError(t, err)

	for range 10 {
		prev := p.Individuals()
		require.NoError(t, p.AdvanceGeneration())
		next := p.Individuals()

		// Expected elites: stable descending order of the previous generation
		want := make([]Individual[int], 0, 3)
		used := make([]bool, len(prev))
		for range 3 {
			bi := -1
			for i, ind := range prev {
				if used[i] {
					continue
				}
				if bi < 0 || ind.Fitness() > prev[bi].Fitness() {
					bi = i
				}
			}
			used[bi] = true
			want = append(want, prev[bi])
		}

		for i, w := range want {
			assert.True(t, GenesEqual(w, next[i]), "elite %d genes changed", i)
			assert.Equal(t, w.Fitness(), next[i].Fitness())
		}
	}
}

func TestAdvanceGeneration_EliteCopies(t *testing.T) {
	cfg := Config{Size: 8, CrossoverRate: 0.5, EliteCount: 1, EliteCopies: 3, Seed: 5}
	p, err := NewPopulation[int](cfg, &countingStrategy{genes: 4})
	require.NoError(t, err)

	best := p.Fittest()
	require.NoError(t, p.AdvanceGeneration())
	next := p.Individuals()
	for i := range 3 {
		assert.True(t, GenesEqual(best, next[i]), "copy %d", i)
	}
}

func TestAdvanceGeneration_BestNeverDecreasesWithElitism(t *testing.T) {
	cfg := Config{Size: 10, CrossoverRate: 0, EliteCount: 1, EliteCopies: 1, Seed: 11}
	p, err := NewPopulation[float64](cfg, unitStrategy(IdentityMutation[float64]()))
	require.NoError(t, err)

	prev := p.Fittest().Fitness()
	for range 100 {
		require.NoError(t, p.AdvanceGeneration())
		cur := p.Fittest().Fitness()
		require.GreaterOrEqual(t, cur, prev)
		prev = cur
	}
}

func TestAdvanceGeneration_ZeroFitness(t *testing.T) {
	s := &countingStrategy{genes: 3, fitness: func([]int) float64 { return 0 }}
	p, err := NewPopulation[int](Config{Size: 9, CrossoverRate: 0.5, EliteCount: 1, EliteCopies: 1, Seed: 2}, s)
	require.NoError(t, err)

	for range 5 {
		require.NoError(t, p.AdvanceGeneration())
	}
	assert.Equal(t, 9, p.Size())
	assert.Equal(t, 0.0, p.Stats().Total)
}

func TestPopulation_DeepCopyIsolation(t *testing.T) {
	p, err := NewPopulation[int](Config{Size: 5, CrossoverRate: 0.5, EliteCount: 1, EliteCopies: 1, Seed: 8}, &countingStrategy{genes: 3})
	require.NoError(t, err)

	before := p.Individuals()
	best := p.Fittest()

	got := p.Individuals()
	got[0].SetGenes([]int{-1, -1, -1})
	got[0].SetFitness(-1)
	g := p.Fittest().Genes()
	g[0] = -100
	bestCopy := p.Fittest()
	bestCopy.SetFitness(1e9)

	after := p.Individuals()
	for i := range before {
		assert.True(t, GenesEqual(before[i], after[i]))
		assert.Equal(t, before[i].Fitness(), after[i].Fitness())
	}
	assert.True(t, GenesEqual(best, p.Fittest()))
	assert.Equal(t, best.Fitness(), p.Fittest().Fitness())
}

func TestPopulation_StrategyErrors(t *testing.T) {
	cfg := Config{Size: 6, CrossoverRate: 0.5, EliteCount: 1, EliteCopies: 1, Seed: 4}

	_, err := NewPopulation[int](cfg, &countingStrategy{genes: 2, generateErr: errBoom})
	assert.Equal(t, errBoom, err)

	_, err = NewPopulation[int](cfg, &countingStrategy{genes: 2, evaluateErr: errBoom})
	assert.Equal(t, errBoom, err)

	t.Run("mutation leaves population unchanged", func(t *testing.T) {
		s := &countingStrategy{genes: 2}
		p, err := NewPopulation[int](cfg, s)
		require.NoError(t, err)
		before := p.Individuals()

		s.mutateErr = errBoom
		assert.Equal(t, errBoom, p.AdvanceGeneration())
		assert.Equal(t, 0, p.Generation())
		after := p.Individuals()
		for i := range before {
			assert.True(t, GenesEqual(before[i], after[i]))
		}
	})

	t.Run("evaluation keeps counter", func(t *testing.T) {
		s := &countingStrategy{genes: 2}
		p, err := NewPopulation[int](cfg, s)
		require.NoError(t, err)

		s.evaluateErr = errBoom
		assert.Equal(t, errBoom, p.AdvanceGeneration())
		assert.Equal(t, 0, p.Generation())
		assert.Equal(t, 6, p.Size())
	})
}

func TestPopulation_GeneLength(t *testing.T) {
	cfg := Config{Size: 4, CrossoverRate: 0.5, EliteCount: 0, EliteCopies: 1, Seed: 1}

	n := 0
	growing := Funcs[int]{
		Genotype: func(*rand.Rand) Individual[int] {
			n++
			return NewIndividual(make([]int, n))
		},
		Fitness:  func(Individual[int]) float64 { return 1 },
		Mutation: IdentityMutation[int](),
	}
	_, err := NewPopulation[int](cfg, growing)
	assert.ErrorIs(t, err, ErrGeneLength)

	extending := Funcs[int]{
		Genotype: func(*rand.Rand) Individual[int] { return NewIndividual([]int{1, 2}) },
		Fitness:  func(Individual[int]) float64 { return 1 },
		Mutation: func(_ *rand.Rand, ind Individual[int]) Individual[int] {
			return NewIndividual(append(ind.Genes(), 3))
		},
	}
	p, err := NewPopulation[int](cfg, extending)
	require.NoError(t, err)
	assert.ErrorIs(t, p.AdvanceGeneration(), ErrGeneLength)
	assert.Equal(t, 0, p.Generation())
}

func TestPopulation_SeedReproducible(t *testing.T) {
	cfg := Config{Size: 15, CrossoverRate: 0.6, EliteCount: 2, EliteCopies: 1, Seed: 1234}
	mutation := ResetMutation(0.2, func(rng *rand.Rand) float64 { return rng.Float64() })

	run := func() []Stats {
		p, err := NewPopulation[float64](cfg, unitStrategy(mutation))
		require.NoError(t, err)
		for range 20 {
			require.NoError(t, p.AdvanceGeneration())
		}
		return p.History()
	}

	assert.Equal(t, run(), run())
}

func TestPopulation_HistoryIsCopy(t *testing.T) {
	p, err := NewPopulation[int](DefaultConfig(4), &countingStrategy{genes: 2})
	require.NoError(t, err)

	h := p.History()
	h[0].Best = -1
	assert.NotEqual(t, -1.0, p.History()[0].Best)
}
