// Package circlefit evolves the largest circle that fits inside a panel without touching any obstacle
package circlefit

import (
	"fmt"
	"math/rand/v2"

	"github.com/lixenwraith/genpop/config"
	"github.com/lixenwraith/genpop/genetic"
)

// Circle is a disc with integer center and radius; as genes it is [X, Y, R]
type Circle struct {
	X, Y, R int
}

func (c Circle) Genes() []int {
	return []int{c.X, c.Y, c.R}
}

// FromIndividual reads a circle from genes [X, Y, R]
func FromIndividual(ind genetic.Individual[int]) Circle {
	if ind.Len() < 3 {
		return Circle{}
	}
	return Circle{X: ind.Gene(0), Y: ind.Gene(1), R: ind.Gene(2)}
}

// Intersects reports whether the discs overlap or one contains the other
func (c Circle) Intersects(o Circle) bool {
	dx, dy := c.X-o.X, c.Y-o.Y
	sum := c.R + o.R
	return dx*dx+dy*dy < sum*sum
}

// Strategy holds the panel and its obstacles
type Strategy struct {
	width     int
	height    int
	minRadius int
	maxRadius int
	rate      float64
	obstacles []Circle
}

// New places cfg.Obstacles random circles using a generator seeded from cfg.Seed
func New(cfg config.CircleFit) *Strategy {
	var rng *rand.Rand
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	} else {
		rng = rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	}

	s := NewWithObstacles(cfg, nil)
	for range cfg.Obstacles {
		s.obstacles = append(s.obstacles, s.randomCircle(rng))
	}
	return s
}

// NewWithObstacles uses the given obstacles and ignores cfg.Obstacles and cfg.Seed
func NewWithObstacles(cfg config.CircleFit, obstacles []Circle) *Strategy {
	return &Strategy{
		width:     cfg.PanelWidth,
		height:    cfg.PanelHeight,
		minRadius: cfg.MinRadius,
		maxRadius: cfg.MaxRadius,
		rate:      cfg.MutationRate,
		obstacles: append([]Circle(nil), obstacles...),
	}
}

// Obstacles returns a copy of the obstacle circles
func (s *Strategy) Obstacles() []Circle {
	return append([]Circle(nil), s.obstacles...)
}

// Panel returns the panel dimensions
func (s *Strategy) Panel() (width, height int) {
	return s.width, s.height
}

// Valid reports whether c lies strictly inside the panel and touches no obstacle
func (s *Strategy) Valid(c Circle) bool {
	if c.R <= 0 {
		return false
	}
	if c.X <= c.R || c.X >= s.width-c.R || c.Y <= c.R || c.Y >= s.height-c.R {
		return false
	}
	for _, o := range s.obstacles {
		if c.Intersects(o) {
			return false
		}
	}
	return true
}

// randomCircle draws a radius in [minRadius, maxRadius] and a center that keeps the circle on the panel
func (s *Strategy) randomCircle(rng *rand.Rand) Circle {
	r := s.minRadius + rng.IntN(s.maxRadius-s.minRadius+1)
	return Circle{
		X: r + rng.IntN(s.width-2*r),
		Y: r + rng.IntN(s.height-2*r),
		R: r,
	}
}

func (s *Strategy) Generate(rng *rand.Rand) (genetic.Individual[int], error) {
	return genetic.NewIndividual(s.randomCircle(rng).Genes()), nil
}

func (s *Strategy) Evaluate(ind genetic.Individual[int]) (float64, error) {
	c := FromIndividual(ind)
	if !s.Valid(c) {
		return 0, nil
	}
	return float64(c.R), nil
}

// Mutate replaces each gene, with the mutation rate, by the matching gene of a fresh random circle
func (s *Strategy) Mutate(rng *rand.Rand, ind genetic.Individual[int]) (genetic.Individual[int], error) {
	fresh := s.randomCircle(rng).Genes()
	genes := ind.Genes()
	for i := range genes {
		if i < len(fresh) && rng.Float64() < s.rate {
			genes[i] = fresh[i]
		}
	}
	return genetic.NewIndividual(genes), nil
}

// Describe summarizes an individual for logs
func (s *Strategy) Describe(ind genetic.Individual[int]) string {
	c := FromIndividual(ind)
	return fmt.Sprintf("center=(%d,%d) r=%d valid=%t", c.X, c.Y, c.R, s.Valid(c))
}
