package gridpath

import (
	"fmt"
	"math/rand"
)

// Cell is the classification of a single grid cell.
type Cell uint8

const (
	Empty Cell = iota
	Blocked
	Start
	End
)

func (c Cell) String() string {
	switch c {
	case Empty:
		return "empty"
	case Blocked:
		return "blocked"
	case Start:
		return "start"
	case End:
		return "end"
	default:
		return fmt.Sprintf("Cell(%d)", uint8(c))
	}
}

// Coord identifies a cell by column X and row Y.
type Coord struct {
	X, Y int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// View is the read-only side of a grid consumed by the pathfinder.
type View interface {
	Size() int
	At(c Coord) Cell
}

// Grid is a square cell table with at most one Start and one End cell.
// It is not safe for concurrent use; callers serialize edits and searches.
type Grid struct {
	size  int
	cells []Cell

	start, end       Coord
	hasStart, hasEnd bool
}

// NewGrid creates a size×size grid of Empty cells with no endpoints placed.
func NewGrid(size int) (*Grid, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: grid size %d", ErrInvalidOperation, size)
	}
	return &Grid{
		size:  size,
		cells: make([]Cell, size*size),
	}, nil
}

// NewRandomGrid creates an empty grid and places Start and End on two
// distinct random cells.
func NewRandomGrid(size int, rng *rand.Rand) (*Grid, error) {
	if size < 2 {
		return nil, fmt.Errorf("%w: grid size %d cannot hold distinct endpoints", ErrInvalidOperation, size)
	}
	g, err := NewGrid(size)
	if err != nil {
		return nil, err
	}

	start := Coord{rng.Intn(size), rng.Intn(size)}
	end := Coord{rng.Intn(size), rng.Intn(size)}
	for end == start {
		end = Coord{rng.Intn(size), rng.Intn(size)}
	}
	g.place(start, Start)
	g.place(end, End)
	return g, nil
}

// Size returns the grid dimension.
func (g *Grid) Size() int { return g.size }

// InBounds reports whether c addresses a cell of the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.size && c.Y >= 0 && c.Y < g.size
}

// At returns the cell at c. Coordinates outside the grid read as Blocked.
func (g *Grid) At(c Coord) Cell {
	if !g.InBounds(c) {
		return Blocked
	}
	return g.cells[g.index(c)]
}

// Get returns the cell at (x, y).
func (g *Grid) Get(x, y int) (Cell, error) {
	c := Coord{x, y}
	if err := g.check(c); err != nil {
		return Empty, err
	}
	return g.cells[g.index(c)], nil
}

// Start returns the Start coordinate and whether one has been placed.
func (g *Grid) Start() (Coord, bool) { return g.start, g.hasStart }

// End returns the End coordinate and whether one has been placed.
func (g *Grid) End() (Coord, bool) { return g.end, g.hasEnd }

// SetBlocked marks (x, y) Blocked. Endpoints cannot be blocked: the grid is
// left unchanged and ErrInvalidOperation is returned.
func (g *Grid) SetBlocked(x, y int) error {
	c := Coord{x, y}
	if err := g.check(c); err != nil {
		return err
	}
	i := g.index(c)
	if cell := g.cells[i]; cell == Start || cell == End {
		return fmt.Errorf("%w: cannot block %s cell %s", ErrInvalidOperation, cell, c)
	}
	g.cells[i] = Blocked
	return nil
}

// ClearCell resets (x, y) to Empty. Endpoints can only be relocated with
// MoveStart and MoveEnd, so clearing one fails with ErrInvalidOperation.
func (g *Grid) ClearCell(x, y int) error {
	c := Coord{x, y}
	if err := g.check(c); err != nil {
		return err
	}
	i := g.index(c)
	if cell := g.cells[i]; cell == Start || cell == End {
		return fmt.Errorf("%w: cannot clear %s cell %s", ErrInvalidOperation, cell, c)
	}
	g.cells[i] = Empty
	return nil
}

// MoveStart relocates the Start cell to (x, y). It reports false without
// changing anything when the target is Blocked, holds the End cell, or is
// already the Start.
func (g *Grid) MoveStart(x, y int) (bool, error) {
	return g.move(Coord{x, y}, Start)
}

// MoveEnd relocates the End cell to (x, y). See MoveStart.
func (g *Grid) MoveEnd(x, y int) (bool, error) {
	return g.move(Coord{x, y}, End)
}

// ClearBlocked resets every Blocked cell to Empty.
func (g *Grid) ClearBlocked() {
	for i, cell := range g.cells {
		if cell == Blocked {
			g.cells[i] = Empty
		}
	}
}

// Blocked lists the Blocked cells in row-major order.
func (g *Grid) Blocked() []Coord {
	var out []Coord
	for i, cell := range g.cells {
		if cell == Blocked {
			out = append(out, Coord{i % g.size, i / g.size})
		}
	}
	return out
}

// Snapshot returns an independent copy of the grid.
func (g *Grid) Snapshot() *Grid {
	c := *g
	c.cells = make([]Cell, len(g.cells))
	copy(c.cells, g.cells)
	return &c
}

func (g *Grid) move(target Coord, kind Cell) (bool, error) {
	if err := g.check(target); err != nil {
		return false, err
	}
	if g.cells[g.index(target)] != Empty {
		return false, nil
	}

	prev, placed := g.start, g.hasStart
	if kind == End {
		prev, placed = g.end, g.hasEnd
	}
	if placed {
		g.cells[g.index(prev)] = Empty
	}
	g.place(target, kind)
	return true, nil
}

func (g *Grid) place(c Coord, kind Cell) {
	g.cells[g.index(c)] = kind
	if kind == Start {
		g.start, g.hasStart = c, true
	} else {
		g.end, g.hasEnd = c, true
	}
}

func (g *Grid) check(c Coord) error {
	if !g.InBounds(c) {
		return fmt.Errorf("%w: %s not in [0,%d)", ErrOutOfBounds, c, g.size)
	}
	return nil
}

func (g *Grid) index(c Coord) int { return c.Y*g.size + c.X }
