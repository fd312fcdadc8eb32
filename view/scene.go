// Package view animates a running population in the terminal
package view

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/genpop/genetic"
	"github.com/lixenwraith/genpop/maze"
	"github.com/lixenwraith/genpop/problem/circlefit"
	"github.com/lixenwraith/genpop/problem/mazewalk"
)

// Canvas is the drawing subset of tcell.Screen
type Canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// Scene draws a problem with its current fittest individual inside a width x height area at (x0, y0)
type Scene interface {
	Draw(c Canvas, x0, y0, width, height int, fittest genetic.Individual[int])
}

var (
	styleWall     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleStart    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleExit     = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleWalk     = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleObstacle = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleCircle   = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

// MazeScene draws the maze two columns per cell with the fittest walk on top
type MazeScene struct {
	strategy *mazewalk.Strategy
}

func NewMazeScene(s *mazewalk.Strategy) *MazeScene {
	return &MazeScene{strategy: s}
}

func (s *MazeScene) Draw(c Canvas, x0, y0, width, height int, fittest genetic.Individual[int]) {
	m := s.strategy.Maze()
	put := func(p maze.Point, r rune, style tcell.Style) {
		x, y := x0+2*p.X, y0+p.Y
		if p.X < 0 || p.Y < 0 || 2*p.X+1 >= width || p.Y >= height {
			return
		}
		c.SetContent(x, y, r, nil, style)
		c.SetContent(x+1, y, r, nil, style)
	}

	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			if p := (maze.Point{X: x, Y: y}); !m.Open(p) {
				put(p, '█', styleWall)
			}
		}
	}
	for _, p := range s.strategy.Walk(fittest.Genes()) {
		put(p, '▒', styleWalk)
	}
	put(m.Start(), 'S', styleStart)
	put(m.Exit(), 'E', styleExit)
}

// CircleScene scales the panel into the area, two columns per row to keep circles round
type CircleScene struct {
	strategy *circlefit.Strategy
}

func NewCircleScene(s *circlefit.Strategy) *CircleScene {
	return &CircleScene{strategy: s}
}

func (s *CircleScene) Draw(c Canvas, x0, y0, width, height int, fittest genetic.Individual[int]) {
	pw, ph := s.strategy.Panel()
	if width < 2 || height < 1 {
		return
	}
	// Panel units per terminal row; a column covers half as much
	scale := max(float64(ph)/float64(height), float64(pw)/float64(width/2))

	obstacles := s.strategy.Obstacles()
	best := circlefit.FromIndividual(fittest)
	valid := s.strategy.Valid(best)

	for row := 0; row < height; row++ {
		py := (float64(row) + 0.5) * scale
		if py >= float64(ph) {
			break
		}
		for col := 0; col < width; col++ {
			px := (float64(col) + 0.5) * scale / 2
			if px >= float64(pw) {
				break
			}
			switch {
			case valid && inside(best, px, py, 0):
				c.SetContent(x0+col, y0+row, '█', nil, styleCircle)
			case onEdge(obstacles, px, py, scale/2):
				c.SetContent(x0+col, y0+row, '·', nil, styleObstacle)
			}
		}
	}
}

func inside(c circlefit.Circle, x, y, slack float64) bool {
	dx, dy := x-float64(c.X), y-float64(c.Y)
	r := float64(c.R) + slack
	return dx*dx+dy*dy <= r*r
}

// onEdge reports whether (x, y) lies within tol of any circle's outline
func onEdge(circles []circlefit.Circle, x, y, tol float64) bool {
	for _, c := range circles {
		if inside(c, x, y, tol) && !inside(c, x, y, -tol) {
			return true
		}
	}
	return false
}
