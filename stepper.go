package gridpath

import (
	"context"
)

// StepSnapshot exposes the per-iteration state of the search
type StepSnapshot struct {
	Current   Coord
	Open      []Coord
	Closed    []Coord
	Done      bool
	Found     bool
	Path      []Coord
	StepIndex int
}

// Stepper provides a step-by-step orchestrator over the same expansion logic
// as Search. Open and Closed are listed in discovery order.
type Stepper struct {
	ctx    context.Context
	cancel context.CancelFunc
	search *search
}

// NewStepper validates the request and prepares a search that has not
// expanded anything yet.
func NewStepper(
	parent context.Context,
	view View,
	startNode Coord,
	goalNode Coord,
	options ...Option,
) (*Stepper, error) {
	ctx, cancel := context.WithCancel(parent)
	s, err := newSearch(ctx, view, startNode, goalNode, options)
	if err != nil {
		cancel()
		return nil, err
	}
	return &Stepper{ctx: ctx, cancel: cancel, search: s}, nil
}

// Close stops the workers
func (s *Stepper) Close() {
	if s.cancel != nil {
		s.cancel()
	}
	s.search.close()
}

// Done reports whether the search reached a terminal state.
func (s *Stepper) Done() bool { return s.search.status != stepRunning }

// Step advances the search by one node expansion and returns a snapshot.
// Once the search is done every further call returns the final snapshot.
func (s *Stepper) Step() (StepSnapshot, error) {
	status, err := s.search.step()
	if err != nil {
		snap := s.snapshot()
		snap.Done = true
		s.Close()
		return snap, err
	}
	if status != stepRunning {
		s.search.close()
	}
	return s.snapshot(), nil
}

func (s *Stepper) snapshot() StepSnapshot {
	search := s.search
	snap := StepSnapshot{
		Current:   search.current,
		Done:      search.status != stepRunning,
		Found:     search.status == stepFound,
		StepIndex: search.expandedNodes,
	}
	for i := range search.nodes {
		if search.nodes[i].closed {
			snap.Closed = append(snap.Closed, search.nodes[i].coord)
		} else {
			snap.Open = append(snap.Open, search.nodes[i].coord)
		}
	}
	if snap.Found {
		snap.Path = append([]Coord(nil), search.path...)
	}
	return snap
}
