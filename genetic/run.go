package genetic

import (
	"context"
	"time"
)

// StopReason names the condition that ended a Run
type StopReason string

const (
	StopMaxGenerations StopReason = "max_generations"
	StopTarget         StopReason = "target"
	StopPredicate      StopReason = "predicate"
	StopCancelled      StopReason = "cancelled"
)

// RunConfig bounds a Run
type RunConfig struct {
	// MaxGenerations is the generation budget (0 for unbounded)
	MaxGenerations int
	// TargetFitness stops the run once the fittest reaches it, when HasTarget is set
	TargetFitness float64
	HasTarget     bool
}

// Result describes a finished Run
type Result[T any] struct {
	Fittest     Individual[T]
	Stats       Stats
	Generations int
	Elapsed     time.Duration
	Reason      StopReason
}

// RunOption customizes a Run
type RunOption[T any] func(*runOptions[T])

type runOptions[T any] struct {
	until     func(Stats, Individual[T]) bool
	observers []func(Stats, Individual[T])
}

// Until stops the run after the first generation for which fn returns true
func Until[T any](fn func(Stats, Individual[T]) bool) RunOption[T] {
	return func(o *runOptions[T]) {
		o.until = fn
	}
}

// OnGeneration registers an observer called once for generation 0 and after every advance.
// Observers run on the caller's goroutine and receive a copy of the fittest individual.
func OnGeneration[T any](fn func(Stats, Individual[T])) RunOption[T] {
	return func(o *runOptions[T]) {
		o.observers = append(o.observers, fn)
	}
}

// Run advances p until the generation budget is spent, the target is reached, the Until
// predicate holds or ctx is done. Cancellation is checked between generations and returns
// ctx.Err() together with the result so far.
func Run[T any](ctx context.Context, p *Population[T], cfg RunConfig, opts ...RunOption[T]) (Result[T], error) {
	if p == nil {
		return Result[T]{}, &ConfigError{Field: "Population", Value: nil, Reason: "population is nil"}
	}
	if cfg.MaxGenerations < 0 {
		return Result[T]{}, &ConfigError{Field: "MaxGenerations", Value: cfg.MaxGenerations, Reason: "must not be negative"}
	}

	var o runOptions[T]
	for _, opt := range opts {
		opt(&o)
	}
	if cfg.MaxGenerations == 0 && !cfg.HasTarget && o.until == nil && ctx.Done() == nil {
		return Result[T]{}, &ConfigError{Field: "MaxGenerations", Value: 0, Reason: "unbounded run needs a target, predicate or cancellable context"}
	}

	start := time.Now()
	startGen := p.Generation()
	result := func(reason StopReason) Result[T] {
		return Result[T]{
			Fittest:     p.Fittest(),
			Stats:       p.Stats(),
			Generations: p.Generation() - startGen,
			Elapsed:     time.Since(start),
			Reason:      reason,
		}
	}

	notify := func() {
		for _, fn := range o.observers {
			fn(p.Stats(), p.Fittest())
		}
	}
	done := func() (StopReason, bool) {
		if cfg.HasTarget && p.Fittest().Fitness() >= cfg.TargetFitness {
			return StopTarget, true
		}
		if o.until != nil && o.until(p.Stats(), p.Fittest()) {
			return StopPredicate, true
		}
		if cfg.MaxGenerations > 0 && p.Generation()-startGen >= cfg.MaxGenerations {
			return StopMaxGenerations, true
		}
		return "", false
	}

	notify()
	for {
		if reason, ok := done(); ok {
			return result(reason), nil
		}

		select {
		case <-ctx.Done():
			return result(StopCancelled), ctx.Err()
		default:
		}

		if err := p.AdvanceGeneration(); err != nil {
			return result(""), err
		}
		notify()
	}
}
