package gridpath

import (
	"errors"
	"math/rand"
	"testing"
)

// parseGrid builds a grid from rows of '.', '#', 'S' and 'E'.
func parseGrid(t *testing.T, rows ...string) *Grid {
	t.Helper()
	g, err := NewGrid(len(rows))
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	for y, row := range rows {
		if len(row) != len(rows) {
			t.Fatalf("row %d has width %d, want %d", y, len(row), len(rows))
		}
		for x, ch := range row {
			switch ch {
			case '#':
				err = g.SetBlocked(x, y)
			case 'S':
				_, err = g.MoveStart(x, y)
			case 'E':
				_, err = g.MoveEnd(x, y)
			}
			if err != nil {
				t.Fatalf("cell (%d,%d): %v", x, y, err)
			}
		}
	}
	return g
}

func TestNewGridRejectsNonPositiveSize(t *testing.T) {
	for _, size := range []int{0, -3} {
		if _, err := NewGrid(size); !errors.Is(err, ErrInvalidOperation) {
			t.Fatalf("NewGrid(%d) error = %v, want ErrInvalidOperation", size, err)
		}
	}
	if _, err := NewRandomGrid(1, rand.New(rand.NewSource(1))); !errors.Is(err, ErrInvalidOperation) {
		t.Fatalf("NewRandomGrid(1) error = %v, want ErrInvalidOperation", err)
	}
}

func TestNewRandomGridPlacesDistinctEndpoints(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		g, err := NewRandomGrid(2, rng)
		if err != nil {
			t.Fatalf("NewRandomGrid: %v", err)
		}
		start, okStart := g.Start()
		end, okEnd := g.End()
		if !okStart || !okEnd {
			t.Fatalf("endpoints not placed: start=%v end=%v", okStart, okEnd)
		}
		if start == end {
			t.Fatalf("start and end share %s", start)
		}
		if g.At(start) != Start || g.At(end) != End {
			t.Fatalf("cells not tagged: %s=%s %s=%s", start, g.At(start), end, g.At(end))
		}
	}
}

func TestGetOutOfBounds(t *testing.T) {
	g := parseGrid(t, "S.", ".E")
	for _, c := range []Coord{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		if _, err := g.Get(c.X, c.Y); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Get%s error = %v, want ErrOutOfBounds", c, err)
		}
		if err := g.SetBlocked(c.X, c.Y); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("SetBlocked%s error = %v, want ErrOutOfBounds", c, err)
		}
		if _, err := g.MoveStart(c.X, c.Y); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("MoveStart%s error = %v, want ErrOutOfBounds", c, err)
		}
		if err := g.ClearCell(c.X, c.Y); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("ClearCell%s error = %v, want ErrOutOfBounds", c, err)
		}
		if got := g.At(c); got != Blocked {
			t.Errorf("At%s = %s, want blocked", c, got)
		}
	}
}

func TestSetBlockedRejectsEndpoints(t *testing.T) {
	g := parseGrid(t,
		"S..",
		"...",
		"..E",
	)
	if err := g.SetBlocked(0, 0); !errors.Is(err, ErrInvalidOperation) {
		t.Fatalf("blocking start: error = %v, want ErrInvalidOperation", err)
	}
	if err := g.SetBlocked(2, 2); !errors.Is(err, ErrInvalidOperation) {
		t.Fatalf("blocking end: error = %v, want ErrInvalidOperation", err)
	}
	if cell, _ := g.Get(0, 0); cell != Start {
		t.Fatalf("start cell = %s after rejected block", cell)
	}
	if cell, _ := g.Get(2, 2); cell != End {
		t.Fatalf("end cell = %s after rejected block", cell)
	}

	if err := g.SetBlocked(1, 1); err != nil {
		t.Fatalf("SetBlocked: %v", err)
	}
	if cell, _ := g.Get(1, 1); cell != Blocked {
		t.Fatalf("cell = %s, want blocked", cell)
	}
}

func TestClearCell(t *testing.T) {
	g := parseGrid(t,
		"S#.",
		"...",
		"..E",
	)
	if err := g.ClearCell(1, 0); err != nil {
		t.Fatalf("ClearCell: %v", err)
	}
	if cell, _ := g.Get(1, 0); cell != Empty {
		t.Fatalf("cell = %s, want empty", cell)
	}
	if err := g.ClearCell(0, 0); !errors.Is(err, ErrInvalidOperation) {
		t.Fatalf("clearing start: error = %v, want ErrInvalidOperation", err)
	}
	if err := g.ClearCell(2, 2); !errors.Is(err, ErrInvalidOperation) {
		t.Fatalf("clearing end: error = %v, want ErrInvalidOperation", err)
	}
	if _, ok := g.Start(); !ok {
		t.Fatal("start lost after rejected clear")
	}
}

func TestMoveStart(t *testing.T) {
	g := parseGrid(t,
		"S#.",
		"...",
		"..E",
	)

	moved, err := g.MoveStart(1, 0)
	if err != nil || moved {
		t.Fatalf("move onto blocked = (%v, %v), want (false, nil)", moved, err)
	}
	if start, _ := g.Start(); start != (Coord{0, 0}) {
		t.Fatalf("start = %s after rejected move", start)
	}
	if cell, _ := g.Get(1, 0); cell != Blocked {
		t.Fatalf("blocked cell became %s", cell)
	}

	moved, err = g.MoveStart(2, 2)
	if err != nil || moved {
		t.Fatalf("move onto end = (%v, %v), want (false, nil)", moved, err)
	}

	moved, err = g.MoveStart(0, 0)
	if err != nil || moved {
		t.Fatalf("move onto itself = (%v, %v), want (false, nil)", moved, err)
	}

	moved, err = g.MoveStart(1, 1)
	if err != nil || !moved {
		t.Fatalf("move onto empty = (%v, %v), want (true, nil)", moved, err)
	}
	if start, _ := g.Start(); start != (Coord{1, 1}) {
		t.Fatalf("start = %s, want (1,1)", start)
	}
	if cell, _ := g.Get(0, 0); cell != Empty {
		t.Fatalf("vacated cell = %s, want empty", cell)
	}
	if cell, _ := g.Get(1, 1); cell != Start {
		t.Fatalf("new cell = %s, want start", cell)
	}
}

func TestMoveEndPlacesFirstEndpoint(t *testing.T) {
	g, err := NewGrid(3)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := g.End(); ok {
		t.Fatal("fresh grid has an end")
	}
	if moved, err := g.MoveEnd(2, 1); err != nil || !moved {
		t.Fatalf("MoveEnd = (%v, %v)", moved, err)
	}
	if moved, err := g.MoveEnd(0, 1); err != nil || !moved {
		t.Fatalf("MoveEnd = (%v, %v)", moved, err)
	}
	if cell, _ := g.Get(2, 1); cell != Empty {
		t.Fatalf("old end = %s, want empty", cell)
	}
	if end, _ := g.End(); end != (Coord{0, 1}) {
		t.Fatalf("end = %s", end)
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	g := parseGrid(t,
		"S..",
		"...",
		"..E",
	)
	snap := g.Snapshot()
	if err := g.SetBlocked(1, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := g.MoveStart(0, 1); err != nil {
		t.Fatal(err)
	}
	if snap.At(Coord{1, 1}) != Empty {
		t.Fatal("snapshot saw a later block")
	}
	if start, _ := snap.Start(); start != (Coord{0, 0}) {
		t.Fatalf("snapshot start = %s", start)
	}
}

func TestBlockedAndClearBlocked(t *testing.T) {
	g := parseGrid(t,
		"S.#",
		"#..",
		".#E",
	)
	got := g.Blocked()
	want := []Coord{{2, 0}, {0, 1}, {1, 2}}
	if len(got) != len(want) {
		t.Fatalf("Blocked() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Blocked() = %v, want %v", got, want)
		}
	}

	g.ClearBlocked()
	if len(g.Blocked()) != 0 {
		t.Fatalf("Blocked() after clear = %v", g.Blocked())
	}
	if g.At(Coord{0, 0}) != Start || g.At(Coord{2, 2}) != End {
		t.Fatal("ClearBlocked touched endpoints")
	}
}

func TestCellString(t *testing.T) {
	cases := map[Cell]string{Empty: "empty", Blocked: "blocked", Start: "start", End: "end", Cell(9): "Cell(9)"}
	for cell, want := range cases {
		if got := cell.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", uint8(cell), got, want)
		}
	}
}
