package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/genpop/config"
	"github.com/lixenwraith/genpop/genetic"
	"github.com/lixenwraith/genpop/problem/circlefit"
	"github.com/lixenwraith/genpop/problem/mazewalk"
	"github.com/lixenwraith/genpop/view"
)

var (
	configPath = flag.String("config", "", "TOML config file (built-in defaults when empty)")
	problem    = flag.String("problem", config.ProblemMaze, "Problem to animate: maze, circlefit")
	seed       = flag.Uint64("seed", 0, "Population seed (0 = random)")
	sound      = flag.Bool("sound", false, "Chime on every improvement")
	fps        = flag.Int("fps", 0, "Generations per second (0 = config value)")
)

func main() {
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fail(err)
		}
		cfg = loaded
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "problem":
			cfg.Problem.Name = *problem
		case "seed":
			cfg.Population.Seed = *seed
		case "sound":
			cfg.View.Sound = *sound
		case "fps":
			cfg.View.FPS = *fps
		}
	})
	if err := cfg.Validate(); err != nil {
		fail(err)
	}

	if err := animate(cfg); err != nil {
		fail(err)
	}
}

// animate runs the viewer; every resource it opens is released before it returns
func animate(cfg config.Config) error {
	strategy, scene, size, err := build(cfg)
	if err != nil {
		return err
	}
	pop, err := genetic.NewPopulation(cfg.Genetic(size), strategy)
	if err != nil {
		return err
	}

	var chime *view.Chime
	if cfg.View.Sound {
		if chime, err = view.NewChime(); err != nil {
			fmt.Fprintf(os.Stderr, "Audio initialization failed: %v (continuing without audio)\n", err)
		}
		defer chime.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			chime.Close()
			fmt.Fprintf(os.Stderr, "genpop-view crashed: %v\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	v := view.New(screen, pop, scene, view.Options{
		Title:          fmt.Sprintf("genpop %s (size %d)", cfg.Problem.Name, pop.Size()),
		Interval:       time.Second / time.Duration(cfg.View.FPS),
		MaxGenerations: cfg.Run.MaxGenerations,
		Target:         cfg.Run.TargetFitness,
		HasTarget:      cfg.Run.HasTarget,
		Chime:          chime,
	})
	err = v.Run(ctx)
	screen.Fini()
	if err != nil {
		return err
	}

	best := pop.Fittest()
	fmt.Printf("generation %d: fitness %.4f\n", pop.Generation(), best.Fitness())
	return nil
}

// build returns the problem's strategy, its scene and default population size
func build(cfg config.Config) (genetic.Strategy[int], view.Scene, int, error) {
	switch cfg.Problem.Name {
	case config.ProblemMaze:
		s := mazewalk.New(cfg.Problem.Maze)
		return s, view.NewMazeScene(s), cfg.Problem.PopulationSize(), nil
	case config.ProblemCircleFit:
		s := circlefit.New(cfg.Problem.CircleFit)
		return s, view.NewCircleScene(s), cfg.Problem.PopulationSize(), nil
	}
	return nil, nil, 0, fmt.Errorf("problem %q has no view (want maze or circlefit)", cfg.Problem.Name)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "genpop-view: %v\n", err)
	os.Exit(1)
}
