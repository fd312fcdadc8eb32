package maze

import "math/rand/v2"

var (
	steps = [4]Point{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
	jumps = [4]Point{{0, -2}, {0, 2}, {-2, 0}, {2, 0}}
)

// carve opens a uniform spanning tree over the odd rooms reachable from origin
func (m *Maze) carve(origin Point, rng *rand.Rand) {
	if !m.interior(origin) {
		origin = Point{1, 1}
	}
	m.setOpen(origin)

	stack := []Point{origin}
	var options [4]Point
	for len(stack) > 0 {
		cur := stack[len(stack)-1]

		n := 0
		for _, j := range jumps {
			next := cur.Add(j)
			if m.interior(next) && m.wall(next) {
				options[n] = j
				n++
			}
		}
		if n == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		j := options[rng.IntN(n)]
		m.setOpen(Point{cur.X + j.X/2, cur.Y + j.Y/2})
		next := cur.Add(j)
		m.setOpen(next)
		stack = append(stack, next)
	}
}

// interior excludes the outer wall ring
func (m *Maze) interior(p Point) bool {
	return p.X > 0 && p.X < m.width-1 && p.Y > 0 && p.Y < m.height-1
}

// braid joins dead-end rooms to an open neighbor room with the given probability
func (m *Maze) braid(probability float64, rng *rand.Rand) {
	var options [4]Point
	for y := 1; y < m.height-1; y += 2 {
		for x := 1; x < m.width-1; x += 2 {
			room := Point{x, y}
			if m.wall(room) || m.exits(room) != 1 || rng.Float64() >= probability {
				continue
			}

			n := 0
			for _, j := range jumps {
				between := Point{x + j.X/2, y + j.Y/2}
				if !m.wall(room.Add(j)) && m.wall(between) && m.canOpen(between) {
					options[n] = between
					n++
				}
			}
			if n > 0 {
				m.setOpen(options[rng.IntN(n)])
			}
		}
	}
}

func (m *Maze) exits(p Point) int {
	n := 0
	for _, s := range steps {
		if !m.wall(p.Add(s)) {
			n++
		}
	}
	return n
}

// canOpen reports whether opening p keeps the maze free of 2x2 open squares
// and of wall cells with no wall neighbor
func (m *Maze) canOpen(p Point) bool {
	open := func(dx, dy int) bool { return !m.wall(Point{p.X + dx, p.Y + dy}) }

	for _, q := range [4][2]int{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}} {
		if open(q[0], 0) && open(0, q[1]) && open(q[0], q[1]) {
			return false
		}
	}

	for _, s := range steps {
		nb := p.Add(s)
		if !m.InBounds(nb) || !m.wall(nb) {
			continue
		}
		linked := false
		for _, s2 := range steps {
			other := nb.Add(s2)
			if other != p && m.InBounds(other) && m.wall(other) {
				linked = true
				break
			}
		}
		if !linked {
			return false
		}
	}
	return true
}

// connect opens p and, if it has no open neighbor, the first interior neighbor
func (m *Maze) connect(p Point) {
	if !m.InBounds(p) {
		return
	}
	m.setOpen(p)
	if m.exits(p) > 0 {
		return
	}
	for _, s := range steps {
		if nb := p.Add(s); m.interior(nb) {
			m.setOpen(nb)
			return
		}
	}
}

// solve runs a breadth-first search; nil when to is unreachable
func (m *Maze) solve(from, to Point) []Point {
	if m.wall(from) || m.wall(to) {
		return nil
	}

	prev := make([]int, m.width*m.height)
	for i := range prev {
		prev[i] = -1
	}
	idx := func(p Point) int { return p.Y*m.width + p.X }
	prev[idx(from)] = idx(from)

	queue := []Point{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == to {
			break
		}
		for _, s := range steps {
			next := cur.Add(s)
			if m.wall(next) || prev[idx(next)] >= 0 {
				continue
			}
			prev[idx(next)] = idx(cur)
			queue = append(queue, next)
		}
	}
	if prev[idx(to)] < 0 {
		return nil
	}

	var path []Point
	for i := idx(to); ; i = prev[i] {
		path = append(path, Point{i % m.width, i / m.width})
		if i == idx(from) {
			break
		}
	}
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}
	return path
}
