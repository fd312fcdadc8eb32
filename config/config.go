// Package config loads run settings from TOML, layered over the defaults in package parameter
package config

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/genpop/genetic"
	"github.com/lixenwraith/genpop/parameter"
)

// Problem names
const (
	ProblemThreshold = "threshold"
	ProblemMaze      = "maze"
	ProblemCircleFit = "circlefit"
	ProblemRastrigin = "rastrigin"
)

// Problems lists the valid problem names
var Problems = []string{ProblemThreshold, ProblemMaze, ProblemCircleFit, ProblemRastrigin}

type Config struct {
	Population Population `toml:"population"`
	Run        Run        `toml:"run"`
	Problem    Problem    `toml:"problem"`
	Monitor    Monitor    `toml:"monitor"`
	Report     Report     `toml:"report"`
	View       View       `toml:"view"`
}

type Population struct {
	// Size 0 selects the problem's own population size
	Size          int     `toml:"size"`
	CrossoverRate float64 `toml:"crossover_rate"`
	EliteCount    int     `toml:"elite_count"`
	EliteCopies   int     `toml:"elite_copies"`
	Seed          uint64  `toml:"seed"`
}

type Run struct {
	MaxGenerations int     `toml:"max_generations"`
	TargetFitness  float64 `toml:"target_fitness"`
	HasTarget      bool    `toml:"has_target"`
	LogEvery       int     `toml:"log_every"`
}

type Problem struct {
	Name      string    `toml:"name"`
	Threshold Threshold `toml:"threshold"`
	Maze      Maze      `toml:"maze"`
	CircleFit CircleFit `toml:"circlefit"`
	Rastrigin Rastrigin `toml:"rastrigin"`
}

type Threshold struct {
	Genes        int     `toml:"genes"`
	Bound        int     `toml:"bound"`
	Cutoff       int     `toml:"cutoff"`
	MutationRate float64 `toml:"mutation_rate"`
}

type Maze struct {
	Width        int     `toml:"width"`
	Height       int     `toml:"height"`
	Braiding     float64 `toml:"braiding"`
	Genes        int     `toml:"genes"`
	MutationRate float64 `toml:"mutation_rate"`
	// Seed for the maze layout (0 for a random layout)
	Seed uint64 `toml:"seed"`
}

type CircleFit struct {
	PanelWidth   int     `toml:"panel_width"`
	PanelHeight  int     `toml:"panel_height"`
	Obstacles    int     `toml:"obstacles"`
	MinRadius    int     `toml:"min_radius"`
	MaxRadius    int     `toml:"max_radius"`
	MutationRate float64 `toml:"mutation_rate"`
	// Seed for the obstacle layout (0 for a random layout)
	Seed uint64 `toml:"seed"`
}

type Rastrigin struct {
	Dimensions int     `toml:"dimensions"`
	Bound      float64 `toml:"bound"`
	// StdDev is the mutation noise as a fraction of the gene range
	StdDev       float64 `toml:"std_dev"`
	MutationRate float64 `toml:"mutation_rate"`
}

type Monitor struct {
	// Addr is the HTTP listen address; empty disables the monitor
	Addr string `toml:"addr"`
}

type Report struct {
	// Path of the TOML run report; empty disables it
	Path string `toml:"path"`
}

type View struct {
	FPS   int  `toml:"fps"`
	Sound bool `toml:"sound"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Population: Population{
			CrossoverRate: parameter.GACrossoverRate,
			EliteCount:    parameter.GAEliteCount,
			EliteCopies:   parameter.GAEliteCopies,
		},
		Run: Run{
			MaxGenerations: parameter.GAMaxGenerations,
			LogEvery:       parameter.GALogEvery,
		},
		Problem: Problem{
			Name: ProblemThreshold,
			Threshold: Threshold{
				Genes:        parameter.ThresholdGenes,
				Bound:        parameter.ThresholdBound,
				Cutoff:       parameter.ThresholdCutoff,
				MutationRate: parameter.ThresholdMutationRate,
			},
			Maze: Maze{
				Width:        parameter.MazeWidth,
				Height:       parameter.MazeHeight,
				Braiding:     parameter.MazeBraiding,
				Genes:        parameter.MazeGenes,
				MutationRate: parameter.MazeMutationRate,
			},
			CircleFit: CircleFit{
				PanelWidth:   parameter.CirclePanelWidth,
				PanelHeight:  parameter.CirclePanelHeight,
				Obstacles:    parameter.CircleObstacles,
				MinRadius:    parameter.CircleMinRadius,
				MaxRadius:    parameter.CircleMaxRadius,
				MutationRate: parameter.CircleMutationRate,
			},
			Rastrigin: Rastrigin{
				Dimensions:   parameter.RastriginDimensions,
				Bound:        parameter.RastriginBound,
				StdDev:       parameter.RastriginStdDev,
				MutationRate: parameter.RastriginMutationRate,
			},
		},
		View: View{
			FPS: int(time.Second / parameter.ViewFrameInterval),
		},
	}
}

// Load reads path over the defaults and validates the result.
// Keys that match no setting are reported as errors.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first invalid setting
func (c Config) Validate() error {
	if c.Population.Size < 0 {
		return fmt.Errorf("population.size %d: must not be negative", c.Population.Size)
	}
	if err := c.Genetic(c.Problem.PopulationSize()).Validate(); err != nil {
		return err
	}
	if c.Run.MaxGenerations < 0 {
		return fmt.Errorf("run.max_generations %d: must not be negative", c.Run.MaxGenerations)
	}
	if c.Run.MaxGenerations == 0 && !c.Run.HasTarget {
		return fmt.Errorf("run.max_generations is 0 and no target is set")
	}
	if c.Run.LogEvery < 0 {
		return fmt.Errorf("run.log_every %d: must not be negative", c.Run.LogEvery)
	}
	if !slices.Contains(Problems, c.Problem.Name) {
		return fmt.Errorf("problem.name %q: want one of %s", c.Problem.Name, strings.Join(Problems, ", "))
	}
	if err := c.Problem.validate(); err != nil {
		return err
	}
	if c.View.FPS <= 0 {
		return fmt.Errorf("view.fps %d: must be positive", c.View.FPS)
	}
	return nil
}

func (p Problem) validate() error {
	t := p.Threshold
	switch {
	case t.Genes <= 0:
		return fmt.Errorf("problem.threshold.genes %d: must be positive", t.Genes)
	case t.Bound <= 0:
		return fmt.Errorf("problem.threshold.bound %d: must be positive", t.Bound)
	case !validRate(t.MutationRate):
		return fmt.Errorf("problem.threshold.mutation_rate %v: must be within [0, 1]", t.MutationRate)
	}

	m := p.Maze
	switch {
	case m.Width < 3 || m.Height < 3:
		return fmt.Errorf("problem.maze size %dx%d: must be at least 3x3", m.Width, m.Height)
	case m.Genes <= 0:
		return fmt.Errorf("problem.maze.genes %d: must be positive", m.Genes)
	case !validRate(m.Braiding):
		return fmt.Errorf("problem.maze.braiding %v: must be within [0, 1]", m.Braiding)
	case !validRate(m.MutationRate):
		return fmt.Errorf("problem.maze.mutation_rate %v: must be within [0, 1]", m.MutationRate)
	}

	c := p.CircleFit
	switch {
	case c.MinRadius <= 0 || c.MaxRadius < c.MinRadius:
		return fmt.Errorf("problem.circlefit radius range [%d, %d]: invalid", c.MinRadius, c.MaxRadius)
	case c.PanelWidth <= 2*c.MaxRadius || c.PanelHeight <= 2*c.MaxRadius:
		return fmt.Errorf("problem.circlefit panel %dx%d: must exceed twice max_radius", c.PanelWidth, c.PanelHeight)
	case c.Obstacles < 0:
		return fmt.Errorf("problem.circlefit.obstacles %d: must not be negative", c.Obstacles)
	case !validRate(c.MutationRate):
		return fmt.Errorf("problem.circlefit.mutation_rate %v: must be within [0, 1]", c.MutationRate)
	}

	r := p.Rastrigin
	switch {
	case r.Dimensions <= 0:
		return fmt.Errorf("problem.rastrigin.dimensions %d: must be positive", r.Dimensions)
	case !(r.Bound > 0) || math.IsInf(r.Bound, 0):
		return fmt.Errorf("problem.rastrigin.bound %v: must be positive and finite", r.Bound)
	case !(r.StdDev > 0) || math.IsInf(r.StdDev, 0):
		return fmt.Errorf("problem.rastrigin.std_dev %v: must be positive and finite", r.StdDev)
	case !validRate(r.MutationRate):
		return fmt.Errorf("problem.rastrigin.mutation_rate %v: must be within [0, 1]", r.MutationRate)
	}
	return nil
}

// PopulationSize returns the named problem's own population size
func (p Problem) PopulationSize() int {
	switch p.Name {
	case ProblemMaze:
		return parameter.MazePopulationSize
	case ProblemCircleFit:
		return parameter.CirclePopulationSize
	case ProblemRastrigin:
		return parameter.RastriginPopulationSize
	}
	return parameter.GAPopulationSize
}

// Genetic returns the population configuration, using size when none is set
func (c Config) Genetic(size int) genetic.Config {
	if c.Population.Size > 0 {
		size = c.Population.Size
	}
	return genetic.Config{
		Size:          size,
		CrossoverRate: c.Population.CrossoverRate,
		EliteCount:    c.Population.EliteCount,
		EliteCopies:   c.Population.EliteCopies,
		Seed:          c.Population.Seed,
	}
}

// RunConfig returns the driver budget
func (c Config) RunConfig() genetic.RunConfig {
	return genetic.RunConfig{
		MaxGenerations: c.Run.MaxGenerations,
		TargetFitness:  c.Run.TargetFitness,
		HasTarget:      c.Run.HasTarget,
	}
}

func validRate(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}
