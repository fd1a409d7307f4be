// Package editor holds the interactive session shared by the front ends:
// editing modes, painting, and running or stepping the pathfinder over the
// edited grid. Every operation takes the session lock, so no edit can land
// while a search is reading the grid.
package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/pdrpinto/gridpath"
)

// Mode selects what a click or drag does.
type Mode int

const (
	ModeNone Mode = iota
	ModeStart
	ModeEnd
	ModeBuild
	ModeErase
)

var modeNames = [...]string{"none", "start", "end", "build", "erase"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode is the inverse of Mode.String.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if name == s {
			return Mode(i), nil
		}
	}
	return ModeNone, fmt.Errorf("unknown mode %q", s)
}

// Option configures an Editor.
type Option func(*Editor)

// WithSearchOptions forwards options to every search the editor runs.
func WithSearchOptions(options ...gridpath.Option) Option {
	return func(e *Editor) { e.searchOptions = append(e.searchOptions, options...) }
}

// WithTimeout bounds each Run call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(e *Editor) { e.timeout = d }
}

// overlay is the search output drawn on top of the grid.
type overlay struct {
	path     []gridpath.Coord
	open     []gridpath.Coord
	closed   []gridpath.Coord
	searched bool
	found    bool
}

// Editor is one editing session over a single grid.
type Editor struct {
	mu     sync.Mutex
	grid   *gridpath.Grid
	logger *slog.Logger

	searchOptions []gridpath.Option
	timeout       time.Duration

	mode     Mode
	hover    gridpath.Coord
	hovering bool

	overlay overlay
	stepper *gridpath.Stepper
	status  string
}

// New wraps grid in an editing session. The editor becomes the grid's only
// writer.
func New(grid *gridpath.Grid, logger *slog.Logger, options ...Option) *Editor {
	e := &Editor{
		grid:   grid,
		logger: logger,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// SetMode switches the editing mode.
func (e *Editor) SetMode(m Mode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mode = m
	e.status = "mode: " + m.String()
}

// Mode returns the current editing mode.
func (e *Editor) Mode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

// Click applies the current mode to c. In start and end mode it relocates
// the endpoint; a Blocked target leaves the grid unchanged. In build and
// erase mode it paints c.
func (e *Editor) Click(c gridpath.Coord) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.mode {
	case ModeStart, ModeEnd:
		move := e.grid.MoveStart
		if e.mode == ModeEnd {
			move = e.grid.MoveEnd
		}
		moved, err := move(c.X, c.Y)
		if err != nil {
			return err
		}
		if moved {
			e.invalidate()
			e.logger.Debug("endpoint moved", "mode", e.mode.String(), "to", c.String())
		}
		return nil
	case ModeBuild, ModeErase:
		return e.paint(c)
	default:
		return e.checkBounds(c)
	}
}

// Paint applies a drag stroke at c. Only build and erase mode paint;
// endpoints are skipped.
func (e *Editor) Paint(c gridpath.Coord) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.mode != ModeBuild && e.mode != ModeErase {
		return e.checkBounds(c)
	}
	return e.paint(c)
}

// BuildRect blocks every non-endpoint cell in the rectangle spanned by a and
// b and returns how many cells it blocked.
func (e *Editor) BuildRect(a, b gridpath.Coord) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkBounds(a); err != nil {
		return 0, err
	}
	if err := e.checkBounds(b); err != nil {
		return 0, err
	}
	x0, x1 := order(a.X, b.X)
	y0, y1 := order(a.Y, b.Y)
	count := 0
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if e.grid.At(gridpath.Coord{X: x, Y: y}) != gridpath.Empty {
				continue
			}
			if err := e.grid.SetBlocked(x, y); err != nil {
				return count, err
			}
			count++
		}
	}
	if count > 0 {
		e.invalidate()
	}
	return count, nil
}

// Hover records the cell under the pointer.
func (e *Editor) Hover(c gridpath.Coord) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.checkBounds(c); err != nil {
		return err
	}
	e.hover, e.hovering = c, true
	return nil
}

// ClearHover drops the hover highlight.
func (e *Editor) ClearHover() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.hovering = false
}

// Run searches between the current endpoints and keeps the result as the
// overlay. A missing path is reported as gridpath.ErrNoPathFound together
// with a Result whose Found is false.
func (e *Editor) Run(ctx context.Context) (gridpath.Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopStepper()
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	started := time.Now()
	res, err := gridpath.SearchGrid(ctx, e.grid.Snapshot(), e.searchOptions...)
	switch {
	case err == nil:
		e.overlay = overlay{path: res.Path, searched: true, found: true}
		e.status = fmt.Sprintf("path found: %d moves", res.TotalCost)
		e.logger.Info("path found",
			"moves", res.TotalCost,
			"expanded", res.ExpandedNodes,
			"duration", time.Since(started),
		)
	case errors.Is(err, gridpath.ErrNoPathFound):
		e.overlay = overlay{searched: true}
		e.status = "no path found"
		e.logger.Info("no path found", "expanded", res.ExpandedNodes)
	default:
		e.overlay = overlay{}
		e.status = "search failed: " + err.Error()
		e.logger.Warn("search failed", "error", err)
	}
	return res, err
}

// Step advances a step-by-step search, starting one if none is running.
// When the search finishes the final snapshot stays as the overlay.
func (e *Editor) Step() (gridpath.StepSnapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stepper == nil {
		start, okStart := e.grid.Start()
		end, okEnd := e.grid.End()
		if !okStart || !okEnd {
			return gridpath.StepSnapshot{}, fmt.Errorf("%w: endpoints not placed", gridpath.ErrInvalidRequest)
		}
		stepper, err := gridpath.NewStepper(context.Background(), e.grid.Snapshot(), start, end, e.searchOptions...)
		if err != nil {
			return gridpath.StepSnapshot{}, err
		}
		e.stepper = stepper
		e.overlay = overlay{}
	}

	snap, err := e.stepper.Step()
	if err != nil {
		e.stopStepper()
		e.status = "search failed: " + err.Error()
		return snap, err
	}
	e.overlay = overlay{
		path:     snap.Path,
		open:     snap.Open,
		closed:   snap.Closed,
		searched: snap.Done,
		found:    snap.Found,
	}
	switch {
	case snap.Found:
		e.status = fmt.Sprintf("path found: %d moves", len(snap.Path)-1)
		e.stopStepper()
	case snap.Done:
		e.status = "no path found"
		e.logger.Info("no path found", "expanded", snap.StepIndex)
		e.stopStepper()
	default:
		e.status = fmt.Sprintf("step %d", snap.StepIndex)
	}
	return snap, nil
}

// Regenerate replaces the walls with freshly generated ones.
func (e *Editor) Regenerate(cfg gridpath.WallConfig, rng *rand.Rand) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.grid.ClearBlocked()
	n := gridpath.GenerateWalls(e.grid, cfg, rng)
	e.invalidate()
	e.status = fmt.Sprintf("generated %d walls", n)
	return n
}

// ClearWalls removes every wall.
func (e *Editor) ClearWalls() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.grid.ClearBlocked()
	e.invalidate()
	e.status = "walls cleared"
}

// Close releases a running step-by-step search.
func (e *Editor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopStepper()
}

func (e *Editor) paint(c gridpath.Coord) error {
	if err := e.checkBounds(c); err != nil {
		return err
	}
	cell := e.grid.At(c)
	var err error
	switch {
	case e.mode == ModeBuild && cell == gridpath.Blocked, e.mode == ModeErase && cell == gridpath.Empty:
		return nil
	case e.mode == ModeBuild:
		err = e.grid.SetBlocked(c.X, c.Y)
	default:
		err = e.grid.ClearCell(c.X, c.Y)
	}
	if errors.Is(err, gridpath.ErrInvalidOperation) {
		e.logger.Debug("paint skipped endpoint", "cell", c.String())
		return nil
	}
	if err != nil {
		return err
	}
	e.invalidate()
	return nil
}

// invalidate drops search output that no longer matches the grid.
func (e *Editor) invalidate() {
	e.stopStepper()
	e.overlay = overlay{}
	e.status = ""
}

func (e *Editor) stopStepper() {
	if e.stepper != nil {
		e.stepper.Close()
		e.stepper = nil
	}
}

func (e *Editor) checkBounds(c gridpath.Coord) error {
	if !e.grid.InBounds(c) {
		return fmt.Errorf("%w: %s", gridpath.ErrOutOfBounds, c)
	}
	return nil
}

func order(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}
