package rastrigin

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/genpop/config"
	"github.com/lixenwraith/genpop/genetic"
)

func testConfig() config.Rastrigin {
	return config.Rastrigin{Dimensions: 4, Bound: 5.12, StdDev: 0.05, MutationRate: 0.2}
}

func TestCost(t *testing.T) {
	assert.InDelta(t, 0, Cost([]float64{0, 0, 0}), 1e-12)
	assert.InDelta(t, 1, Cost([]float64{1}), 1e-9)
	assert.InDelta(t, 2, Cost([]float64{1, -1}), 1e-9)
	assert.Greater(t, Cost([]float64{0.5}), Cost([]float64{0}))
}

func TestStrategy_Evaluate(t *testing.T) {
	s := New(testConfig())

	best, err := s.Evaluate(genetic.NewIndividual([]float64{0, 0, 0, 0}))
	require.NoError(t, err)
	assert.InDelta(t, MaxFitness, best, 1e-9)

	one, err := s.Evaluate(genetic.NewIndividual([]float64{1, 0, 0, 0}))
	require.NoError(t, err)
	assert.InDelta(t, MaxFitness/2.0, one, 1e-6)

	far, err := s.Evaluate(genetic.NewIndividual([]float64{4.5, -4.5, 4.5, -4.5}))
	require.NoError(t, err)
	assert.Less(t, far, one)
	assert.Positive(t, far)
}

func TestStrategy_GenerateAndMutateStayInBounds(t *testing.T) {
	cfg := testConfig()
	cfg.MutationRate = 1
	cfg.StdDev = 2
	s := New(cfg)
	rng := rand.New(rand.NewPCG(3, 3))

	for range 100 {
		ind, err := s.Generate(rng)
		require.NoError(t, err)
		require.Equal(t, 4, ind.Len())

		ind, err = s.Mutate(rng, ind)
		require.NoError(t, err)
		for i, v := range ind.Genes() {
			assert.GreaterOrEqual(t, v, -5.12, "gene %d", i)
			assert.LessOrEqual(t, v, 5.12, "gene %d", i)
		}
	}
	assert.Len(t, s.Bounds(), 4)
}

func TestStrategy_Evolves(t *testing.T) {
	s := New(testConfig())
	cfg := genetic.DefaultConfig(100)
	cfg.Seed = 9
	p, err := genetic.NewPopulation[float64](cfg, s)
	require.NoError(t, err)

	start := p.Fittest().Fitness()
	for range 100 {
		require.NoError(t, p.AdvanceGeneration())
	}
	assert.GreaterOrEqual(t, p.Fittest().Fitness(), start)
	assert.Contains(t, s.Describe(p.Fittest()), "cost=")
}
