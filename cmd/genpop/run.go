package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/lixenwraith/genpop/config"
	"github.com/lixenwraith/genpop/genetic"
	"github.com/lixenwraith/genpop/logx"
	"github.com/lixenwraith/genpop/monitor"
	"github.com/lixenwraith/genpop/problem"
	"github.com/lixenwraith/genpop/report"
	"github.com/lixenwraith/genpop/tui"
)

// run evolves the configured problem until its budget, target or ctx ends it.
// Cancellation is a normal stop; the report is still written.
func run(ctx context.Context, cfg config.Config, log *logx.Logger, useTUI bool) error {
	if problem.Real(cfg.Problem.Name) {
		inst, err := problem.NewReal(cfg.Problem)
		if err != nil {
			return err
		}
		return evolve(ctx, cfg, log, useTUI, inst)
	}
	inst, err := problem.New(cfg.Problem)
	if err != nil {
		return err
	}
	return evolve(ctx, cfg, log, useTUI, inst)
}

func evolve[T any](ctx context.Context, cfg config.Config, log *logx.Logger, useTUI bool, inst problem.Instance[T]) error {
	gcfg := cfg.Genetic(inst.PopulationSize)

	pop, err := genetic.NewPopulation(gcfg, inst.Strategy)
	if err != nil {
		return fmt.Errorf("init population: %w", err)
	}
	log.Init("problem=%s size=%d genes=%d crossover=%.2f elite=%dx%d seed=%d",
		inst.Name, gcfg.Size, pop.GeneLen(), gcfg.CrossoverRate, gcfg.EliteCount, gcfg.EliteCopies, gcfg.Seed)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var mon *monitor.Server
	if cfg.Monitor.Addr != "" {
		ln, err := net.Listen("tcp", cfg.Monitor.Addr)
		if err != nil {
			return fmt.Errorf("monitor: %w", err)
		}
		mon = monitor.New(inst.Name)
		monCtx, stopMonitor := context.WithCancel(context.Background())
		served := make(chan error, 1)
		go func() {
			served <- mon.Serve(monCtx, ln)
		}()
		defer func() {
			stopMonitor()
			if err := <-served; err != nil {
				log.Warn("monitor: %v", err)
			}
		}()
		log.Init("monitor on http://%s", ln.Addr())
	}

	var dash *tui.Program
	if useTUI {
		dash, err = tui.Start(runCtx, "genpop", cancel)
		switch {
		case errors.Is(err, tui.ErrNoTerminal):
			log.Warn("%v", err)
		case err != nil:
			return err
		default:
			log.SetOutput(nil)
			log.AddSink(dash.PushEvent)
		}
	}
	stopDash := func() {
		if dash != nil {
			dash.Stop()
			dash = nil
			log.SetOutput(os.Stdout)
		}
	}
	defer stopDash()

	start := time.Now()
	best := pop.Fittest().Fitness()
	observe := func(s genetic.Stats, fittest genetic.Individual[T]) {
		improved := s.Best > best
		if improved {
			best = s.Best
			log.Best("gen %d fitness=%.4f %s", s.Generation, s.Best, inst.Describe(fittest))
		}
		if cfg.Run.LogEvery > 0 && s.Generation%cfg.Run.LogEvery == 0 {
			log.Gen("gen %d best=%.4f avg=%.4f worst=%.4f sd=%.4f", s.Generation, s.Best, s.Average, s.Worst, s.StdDev)
		}
		if mon != nil {
			mon.Observe(s, gcfg.Size, inst.Describe(fittest), improved || s.Generation == 0)
		}
		if dash != nil {
			dash.PushSnapshot(tui.Snapshot{
				Title:          "genpop",
				Problem:        inst.Name,
				StartTime:      start,
				Generation:     s.Generation,
				MaxGenerations: cfg.Run.MaxGenerations,
				Best:           s.Best,
				Average:        s.Average,
				Worst:          s.Worst,
				StdDev:         s.StdDev,
				Target:         cfg.Run.TargetFitness,
				HasTarget:      cfg.Run.HasTarget,
				Fittest:        inst.Describe(fittest),
			})
		}
	}

	res, err := genetic.Run(runCtx, pop, cfg.RunConfig(), genetic.OnGeneration(observe))
	stopDash()
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("generation %d: %w", pop.Generation()+1, err)
	}

	if mon != nil {
		mon.Finish(string(res.Reason))
	}
	log.Done("%s after %d generations in %s: fitness=%.4f %s",
		res.Reason, res.Stats.Generation, logx.FormatDuration(res.Elapsed), res.Fittest.Fitness(), inst.Describe(res.Fittest))

	if cfg.Report.Path != "" {
		r := report.New(inst.Name, gcfg, res, pop.History())
		r.Fittest.Description = inst.Describe(res.Fittest)
		if err := report.Write(cfg.Report.Path, r); err != nil {
			return fmt.Errorf("report: %w", err)
		}
		log.Done("report written to %s", cfg.Report.Path)
	}
	return nil
}
