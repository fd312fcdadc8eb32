// Package maze generates odd-sized grid mazes: a recursive backtracker spanning tree,
// optionally braided into a graph, with a start, an exit and a shortest path between them.
package maze

import (
	"math/rand/v2"
)

// Point is a grid cell; X grows to the right and Y grows downward
type Point struct {
	X, Y int
}

// Add returns p moved by d
func (p Point) Add(d Point) Point {
	return Point{p.X + d.X, p.Y + d.Y}
}

// Config controls maze generation
type Config struct {
	// Width and Height are rounded down to odd values, minimum 3
	Width, Height int

	// Braiding is the probability (0-1) that a dead end is joined to a neighbor.
	// 0 keeps a perfect maze; joins never create 2x2 open areas or isolated pillars.
	Braiding float64

	Start *Point // nil places the start at the top-left room
	Exit  *Point // nil places the exit at the bottom-right room

	// Seed for the maze's generator (0 for a random seed)
	Seed uint64
}

// Maze is an immutable generated grid
type Maze struct {
	width, height int
	walls         []bool
	start, exit   Point
	path          []Point
}

// Generate builds a maze from cfg
func Generate(cfg Config) *Maze {
	w, h := oddAtLeast3(cfg.Width), oddAtLeast3(cfg.Height)

	var rng *rand.Rand
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	} else {
		rng = rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	}

	m := &Maze{
		width:  w,
		height: h,
		walls:  make([]bool, w*h),
	}
	for i := range m.walls {
		m.walls[i] = true
	}

	m.start = clampPoint(cfg.Start, Point{1, 1}, w, h)
	m.exit = clampPoint(cfg.Exit, Point{w - 2, h - 2}, w, h)

	m.carve(m.start, rng)
	if cfg.Braiding > 0 {
		m.braid(cfg.Braiding, rng)
	}
	m.connect(m.start)
	m.connect(m.exit)

	m.path = m.solve(m.start, m.exit)
	return m
}

func (m *Maze) Width() int {
	return m.width
}

func (m *Maze) Height() int {
	return m.height
}

func (m *Maze) Start() Point {
	return m.start
}

func (m *Maze) Exit() Point {
	return m.exit
}

// InBounds reports whether p lies on the grid
func (m *Maze) InBounds(p Point) bool {
	return p.X >= 0 && p.X < m.width && p.Y >= 0 && p.Y < m.height
}

// Open reports whether p is an in-bounds passage
func (m *Maze) Open(p Point) bool {
	return m.InBounds(p) && !m.walls[p.Y*m.width+p.X]
}

// Distance is the Manhattan distance between two cells, ignoring walls
func (m *Maze) Distance(a, b Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// ShortestPath returns a copy of a shortest start-to-exit route, both ends included
func (m *Maze) ShortestPath() []Point {
	out := make([]Point, len(m.path))
	copy(out, m.path)
	return out
}

// Rows renders the grid with '#' for walls, 'S' for the start and 'E' for the exit
func (m *Maze) Rows() []string {
	rows := make([]string, m.height)
	line := make([]byte, m.width)
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			p := Point{x, y}
			switch {
			case p == m.start:
				line[x] = 'S'
			case p == m.exit:
				line[x] = 'E'
			case m.Open(p):
				line[x] = ' '
			default:
				line[x] = '#'
			}
		}
		rows[y] = string(line)
	}
	return rows
}

func (m *Maze) wall(p Point) bool {
	return !m.InBounds(p) || m.walls[p.Y*m.width+p.X]
}

func (m *Maze) setOpen(p Point) {
	m.walls[p.Y*m.width+p.X] = false
}

func oddAtLeast3(n int) int {
	if n < 3 {
		return 3
	}
	if n%2 == 0 {
		return n - 1
	}
	return n
}

func clampPoint(p *Point, def Point, w, h int) Point {
	if p == nil {
		return def
	}
	return Point{min(max(p.X, 0), w-1), min(max(p.Y, 0), h-1)}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
