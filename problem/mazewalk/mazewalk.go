// Package mazewalk evolves fixed-length move sequences that walk from a maze's start toward its exit
package mazewalk

import (
	"fmt"
	"math/rand/v2"

	"github.com/lixenwraith/genpop/config"
	"github.com/lixenwraith/genpop/genetic"
	"github.com/lixenwraith/genpop/genetic/fitness"
	"github.com/lixenwraith/genpop/maze"
)

// Gene values
const (
	MoveYInc = iota
	MoveYDec
	MoveXInc
	MoveXDec

	moveCount
)

var moves = [moveCount]maze.Point{
	MoveYInc: {X: 0, Y: 1},
	MoveYDec: {X: 0, Y: -1},
	MoveXInc: {X: 1, Y: 0},
	MoveXDec: {X: -1, Y: 0},
}

// Strategy scores a walk by how close its last cell is to the exit
type Strategy struct {
	maze   *maze.Maze
	genes  int
	score  fitness.NormalizeFunc
	mutate genetic.MutationFunc[int]
}

// New generates the maze described by cfg
func New(cfg config.Maze) *Strategy {
	m := maze.Generate(maze.Config{
		Width:    cfg.Width,
		Height:   cfg.Height,
		Braiding: cfg.Braiding,
		Seed:     cfg.Seed,
	})
	return NewWithMaze(m, cfg.Genes, cfg.MutationRate)
}

// NewWithMaze walks an existing maze with genes moves per individual
func NewWithMaze(m *maze.Maze, genes int, mutationRate float64) *Strategy {
	return &Strategy{
		maze:   m,
		genes:  genes,
		score:  fitness.NormalizeInverse(1),
		mutate: genetic.ResetMutation(mutationRate, sampleMove),
	}
}

func sampleMove(rng *rand.Rand) int {
	return rng.IntN(moveCount)
}

func (s *Strategy) Maze() *maze.Maze {
	return s.maze
}

func (s *Strategy) Generate(rng *rand.Rand) (genetic.Individual[int], error) {
	return genetic.UniformGenotype(s.genes, sampleMove)(rng), nil
}

func (s *Strategy) Evaluate(ind genetic.Individual[int]) (float64, error) {
	path := s.Walk(ind.Genes())
	return s.score(float64(s.maze.Distance(path[len(path)-1], s.maze.Exit()))), nil
}

func (s *Strategy) Mutate(rng *rand.Rand, ind genetic.Individual[int]) (genetic.Individual[int], error) {
	return s.mutate(rng, ind), nil
}

// Walk follows genes from the start and returns the visited cells, start first.
// The walk ends before the first move into a wall, off the grid, back onto the start
// or with an unknown gene value, and ends on reaching the exit.
func (s *Strategy) Walk(genes []int) []maze.Point {
	start, exit := s.maze.Start(), s.maze.Exit()
	path := make([]maze.Point, 1, len(genes)+1)
	path[0] = start

	cur := start
	for _, g := range genes {
		if g < 0 || g >= moveCount {
			break
		}
		next := cur.Add(moves[g])
		if !s.maze.Open(next) || next == start {
			break
		}
		path = append(path, next)
		cur = next
		if cur == exit {
			break
		}
	}
	return path
}

// Distance returns the Manhattan distance from the walk's last cell to the exit
func (s *Strategy) Distance(ind genetic.Individual[int]) int {
	path := s.Walk(ind.Genes())
	return s.maze.Distance(path[len(path)-1], s.maze.Exit())
}

// Describe summarizes an individual for logs
func (s *Strategy) Describe(ind genetic.Individual[int]) string {
	path := s.Walk(ind.Genes())
	return fmt.Sprintf("steps=%d dist=%d", len(path)-1, s.maze.Distance(path[len(path)-1], s.maze.Exit()))
}
