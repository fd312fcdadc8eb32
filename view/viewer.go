package view

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/genpop/genetic"
)

const headerRows = 2

var (
	styleTitle  = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorSilver)
)

// Options controls a Viewer
type Options struct {
	Title string
	// Interval between generations; each tick advances once and redraws
	Interval time.Duration
	// MaxGenerations stops evolving (the display stays up) once reached; 0 = unbounded
	MaxGenerations int
	// Target stops evolving once the fittest reaches it, when HasTarget is set
	Target    float64
	HasTarget bool
	// Chime plays on every improvement; nil is silent
	Chime *Chime
}

// Viewer advances a population one generation per frame and draws its fittest individual
type Viewer struct {
	screen tcell.Screen
	pop    *genetic.Population[int]
	scene  Scene
	opts   Options

	paused   bool
	finished bool
	best     float64
}

func New(screen tcell.Screen, pop *genetic.Population[int], scene Scene, opts Options) *Viewer {
	return &Viewer{
		screen: screen,
		pop:    pop,
		scene:  scene,
		opts:   opts,
		best:   pop.Fittest().Fitness(),
	}
}

// Run loops until the user quits, ctx is done or the population fails.
// The screen must be initialized; the caller owns Fini.
func (v *Viewer) Run(ctx context.Context) error {
	ticker := time.NewTicker(v.opts.Interval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	v.draw()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !v.handleKey(ev.Key(), ev.Rune()) {
					return nil
				}
				v.draw()
			case *tcell.EventResize:
				v.screen.Sync()
				v.draw()
			}

		case <-ticker.C:
			if err := v.step(); err != nil {
				return err
			}
			v.draw()
		}
	}
}

// handleKey returns false when the viewer should quit
func (v *Viewer) handleKey(key tcell.Key, r rune) bool {
	switch {
	case key == tcell.KeyEscape, key == tcell.KeyCtrlC:
		return false
	case key == tcell.KeyRune && r == 'q':
		return false
	case key == tcell.KeyRune && r == ' ':
		v.paused = !v.paused
	}
	return true
}

// step advances one generation unless paused or finished
func (v *Viewer) step() error {
	if v.paused || v.finished {
		return nil
	}
	if err := v.pop.AdvanceGeneration(); err != nil {
		return fmt.Errorf("generation %d: %w", v.pop.Generation()+1, err)
	}

	best := v.pop.Fittest().Fitness()
	if best > v.best {
		v.best = best
		v.opts.Chime.Play()
	}
	if v.opts.HasTarget && best >= v.opts.Target {
		v.finished = true
	}
	if v.opts.MaxGenerations > 0 && v.pop.Generation() >= v.opts.MaxGenerations {
		v.finished = true
	}
	return nil
}

func (v *Viewer) draw() {
	v.screen.Clear()
	w, h := v.screen.Size()

	v.text(0, 0, w, v.opts.Title, styleTitle)
	v.text(0, 1, w, v.status(), styleStatus)
	if h > headerRows {
		v.scene.Draw(v.screen, 0, headerRows, w, h-headerRows, v.pop.Fittest())
	}
	v.screen.Show()
}

func (v *Viewer) status() string {
	s := v.pop.Stats()
	state := "running"
	switch {
	case v.finished:
		state = "done"
	case v.paused:
		state = "paused"
	}
	return fmt.Sprintf("gen %d  best %.4f  avg %.4f  [%s]  space pause  q quit", s.Generation, s.Best, s.Average, state)
}

func (v *Viewer) text(x, y, width int, s string, style tcell.Style) {
	for _, r := range s {
		if x >= width {
			return
		}
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
