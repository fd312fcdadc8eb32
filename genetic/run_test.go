package genetic

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUnitPopulation(t *testing.T, seed uint64) *Population[float64] {
	t.Helper()
	mutation := ResetMutation(0.3, func(rng *rand.Rand) float64 { return rng.Float64() })
	p, err := NewPopulation[float64](Config{Size: 10, CrossoverRate: 0, EliteCount: 1, EliteCopies: 1, Seed: seed}, unitStrategy(mutation))
	require.NoError(t, err)
	return p
}

func TestRun_MaxGenerations(t *testing.T) {
	p := newUnitPopulation(t, 1)

	var observed []int
	res, err := Run(context.Background(), p, RunConfig{MaxGenerations: 15},
		OnGeneration(func(s Stats, _ Individual[float64]) { observed = append(observed, s.Generation) }))
	require.NoError(t, err)

	assert.Equal(t, StopMaxGenerations, res.Reason)
	assert.Equal(t, 15, res.Generations)
	assert.Equal(t, 15, p.Generation())
	assert.Equal(t, 15, res.Stats.Generation)
	require.Len(t, observed, 16)
	for i, g := range observed {
		assert.Equal(t, i, g)
	}
}

func TestRun_Target(t *testing.T) {
	p := newUnitPopulation(t, 2)

	res, err := Run(context.Background(), p, RunConfig{MaxGenerations: 10000, TargetFitness: 0.99, HasTarget: true})
	require.NoError(t, err)
	assert.Equal(t, StopTarget, res.Reason)
	assert.GreaterOrEqual(t, res.Fittest.Fitness(), 0.99)
	assert.Less(t, res.Generations, 10000)
}

func TestRun_TargetAlreadyMet(t *testing.T) {
	p := newUnitPopulation(t, 3)

	res, err := Run(context.Background(), p, RunConfig{TargetFitness: 0, HasTarget: true})
	require.NoError(t, err)
	assert.Equal(t, StopTarget, res.Reason)
	assert.Zero(t, res.Generations)
}

func TestRun_Until(t *testing.T) {
	p := newUnitPopulation(t, 4)

	res, err := Run(context.Background(), p, RunConfig{},
		Until(func(s Stats, _ Individual[float64]) bool { return s.Generation >= 7 }))
	require.NoError(t, err)
	assert.Equal(t, StopPredicate, res.Reason)
	assert.Equal(t, 7, res.Generations)
}

func TestRun_Cancelled(t *testing.T) {
	p := newUnitPopulation(t, 5)
	ctx, cancel := context.WithCancel(context.Background())

	res, err := Run(ctx, p, RunConfig{},
		OnGeneration(func(s Stats, _ Individual[float64]) {
			if s.Generation == 3 {
				cancel()
			}
		}))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StopCancelled, res.Reason)
	assert.Equal(t, 3, res.Generations)
}

func TestRun_InvalidConfig(t *testing.T) {
	p := newUnitPopulation(t, 6)

	_, err := Run(context.Background(), p, RunConfig{})
	assert.ErrorIs(t, err, ErrInvalidConfig, "unbounded run")

	_, err = Run(context.Background(), p, RunConfig{MaxGenerations: -1})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Run[float64](context.Background(), nil, RunConfig{MaxGenerations: 1})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestRun_StrategyError(t *testing.T) {
	s := &countingStrategy{genes: 2}
	p, err := NewPopulation[int](DefaultConfig(6), s)
	require.NoError(t, err)

	s.mutateErr = errBoom
	_, err = Run(context.Background(), p, RunConfig{MaxGenerations: 5})
	assert.ErrorIs(t, err, errBoom)
}
