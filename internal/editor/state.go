package editor

import "github.com/pdrpinto/gridpath"

// State is a copy of everything a renderer needs to draw the session.
type State struct {
	Size  int
	Cells []gridpath.Cell

	Start, End       gridpath.Coord
	HasStart, HasEnd bool

	Mode     Mode
	Hover    gridpath.Coord
	Hovering bool

	Path   []gridpath.Coord
	Open   []gridpath.Coord
	Closed []gridpath.Coord
	// Searched is set once a search finished; Found tells how it ended.
	Searched bool
	Found    bool
	Stepping bool

	Status string
}

// At returns the cell at c, Blocked outside the grid.
func (s State) At(c gridpath.Coord) gridpath.Cell {
	if c.X < 0 || c.X >= s.Size || c.Y < 0 || c.Y >= s.Size {
		return gridpath.Blocked
	}
	return s.Cells[c.Y*s.Size+c.X]
}

// OnPath reports whether c is part of the current path overlay.
func (s State) OnPath(c gridpath.Coord) bool {
	for _, p := range s.Path {
		if p == c {
			return true
		}
	}
	return false
}

// State snapshots the session.
func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	size := e.grid.Size()
	st := State{
		Size:     size,
		Cells:    make([]gridpath.Cell, size*size),
		Mode:     e.mode,
		Hover:    e.hover,
		Hovering: e.hovering,
		Path:     append([]gridpath.Coord(nil), e.overlay.path...),
		Open:     append([]gridpath.Coord(nil), e.overlay.open...),
		Closed:   append([]gridpath.Coord(nil), e.overlay.closed...),
		Searched: e.overlay.searched,
		Found:    e.overlay.found,
		Stepping: e.stepper != nil,
		Status:   e.status,
	}
	st.Start, st.HasStart = e.grid.Start()
	st.End, st.HasEnd = e.grid.End()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			st.Cells[y*size+x] = e.grid.At(gridpath.Coord{X: x, Y: y})
		}
	}
	return st
}
