package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/lixenwraith/genpop/config"
	"github.com/lixenwraith/genpop/genetic"
	"github.com/lixenwraith/genpop/logx"
)

type options struct {
	configPath  string
	problem     string
	size        int
	generations int
	seed        uint64
	target      float64
	logEvery    int
	monitor     string
	report      string
	tui         bool
}

// parseArgs loads the config file, if any, and applies the flags that were set on top of it
func parseArgs(args []string, stderr io.Writer) (config.Config, options, error) {
	var o options
	fs := flag.NewFlagSet("genpop", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configPath, "config", "", "TOML config file (built-in defaults when empty)")
	fs.StringVar(&o.problem, "problem", "", "Problem: threshold, maze, circlefit, rastrigin")
	fs.IntVar(&o.size, "size", 0, "Population size (0 = problem default)")
	fs.IntVar(&o.generations, "generations", 0, "Generation budget (0 = unbounded, needs -target)")
	fs.Uint64Var(&o.seed, "seed", 0, "Population seed (0 = random)")
	fs.Float64Var(&o.target, "target", 0, "Stop once the best fitness reaches this value")
	fs.IntVar(&o.logEvery, "log-every", 0, "Generations between progress lines (0 = off)")
	fs.StringVar(&o.monitor, "monitor", "", "Serve /ws, /metrics and /status on this address")
	fs.StringVar(&o.report, "report", "", "Write a TOML run report to this path")
	fs.BoolVar(&o.tui, "tui", false, "Show the live dashboard")
	if err := fs.Parse(args); err != nil {
		return config.Config{}, o, err
	}

	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return config.Config{}, o, err
		}
		cfg = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "problem":
			cfg.Problem.Name = o.problem
		case "size":
			cfg.Population.Size = o.size
		case "generations":
			cfg.Run.MaxGenerations = o.generations
		case "seed":
			cfg.Population.Seed = o.seed
		case "target":
			cfg.Run.TargetFitness = o.target
			cfg.Run.HasTarget = true
		case "log-every":
			cfg.Run.LogEvery = o.logEvery
		case "monitor":
			cfg.Monitor.Addr = o.monitor
		case "report":
			cfg.Report.Path = o.report
		}
	})
	if err := cfg.Validate(); err != nil {
		return config.Config{}, o, err
	}
	return cfg, o, nil
}

func main() {
	cfg, opts, err := parseArgs(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "genpop: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logx.Console()
	if err := run(ctx, cfg, log, opts.tui); err != nil {
		log.Error("%v", err)
		stop()
		os.Exit(exitCode(err))
	}
}

// exitCode is 2 for configuration rejected by the engine, 1 for any other run failure
func exitCode(err error) int {
	if errors.Is(err, genetic.ErrInvalidConfig) {
		return 2
	}
	return 1
}
