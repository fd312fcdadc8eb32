// Package report writes a TOML summary of a finished run
package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/genpop/genetic"
)

// Report is a one-way record of a run; it holds no population state
type Report[T any] struct {
	Run     Run          `toml:"run"`
	Config  Config       `toml:"config"`
	Fittest Fittest[T]   `toml:"fittest"`
	History []Generation `toml:"history"`
}

type Run struct {
	Problem     string    `toml:"problem"`
	Seed        uint64    `toml:"seed"`
	Generations int       `toml:"generations"`
	Elapsed     string    `toml:"elapsed"`
	Reason      string    `toml:"stop_reason"`
	Finished    time.Time `toml:"finished"`
}

type Config struct {
	Size          int     `toml:"size"`
	CrossoverRate float64 `toml:"crossover_rate"`
	EliteCount    int     `toml:"elite_count"`
	EliteCopies   int     `toml:"elite_copies"`
}

type Fittest[T any] struct {
	Genes       []T     `toml:"genes"`
	Fitness     float64 `toml:"fitness"`
	Description string  `toml:"description,omitempty"`
}

type Generation struct {
	Generation int     `toml:"generation"`
	Best       float64 `toml:"best"`
	Average    float64 `toml:"average"`
	Worst      float64 `toml:"worst"`
	StdDev     float64 `toml:"std_dev"`
}

// New summarizes a finished run
func New[T any](problem string, cfg genetic.Config, res genetic.Result[T], history []genetic.Stats) Report[T] {
	r := Report[T]{
		Run: Run{
			Problem:     problem,
			Seed:        cfg.Seed,
			Generations: res.Stats.Generation,
			Elapsed:     res.Elapsed.Round(time.Millisecond).String(),
			Reason:      string(res.Reason),
			Finished:    time.Now().UTC().Truncate(time.Second),
		},
		Config: Config{
			Size:          cfg.Size,
			CrossoverRate: cfg.CrossoverRate,
			EliteCount:    cfg.EliteCount,
			EliteCopies:   cfg.EliteCopies,
		},
		Fittest: Fittest[T]{
			Genes:   res.Fittest.Genes(),
			Fitness: res.Fittest.Fitness(),
		},
		History: make([]Generation, len(history)),
	}
	for i, s := range history {
		r.History[i] = Generation{
			Generation: s.Generation,
			Best:       s.Best,
			Average:    s.Average,
			Worst:      s.Worst,
			StdDev:     s.StdDev,
		}
	}
	return r
}

// Write encodes r to path through a temporary file in the same directory and a rename,
// so readers never observe a partial report
func Write[T any](path string, r Report[T]) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Read decodes a report written by Write
func Read[T any](path string) (Report[T], error) {
	var r Report[T]
	if _, err := toml.DecodeFile(path, &r); err != nil {
		return Report[T]{}, fmt.Errorf("read report %s: %w", path, err)
	}
	return r, nil
}
