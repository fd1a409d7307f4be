package gridpath

import (
	"container/heap"
	"context"
	"fmt"

	"github.com/pdrpinto/gridpath/internal"
)

// Result contains the outcome of a search
type Result struct {
	Path          []Coord
	TotalCost     int
	ExpandedNodes int
	Found         bool
}

// Options defines parameters for the search.
type Options struct {
	// NumberOfWorkers above 1 expands neighbors on a pool of goroutines.
	// The result is the same as the inline expansion.
	NumberOfWorkers int
	// StepBudget caps the number of expanded nodes. Zero means size².
	StepBudget int
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithWorkers specifies how many worker goroutines should expand neighbors.
func WithWorkers(numberOfWorkers int) Option {
	return func(options *Options) { options.NumberOfWorkers = numberOfWorkers }
}

// WithStepBudget aborts the search with ErrStepBudgetExceeded once more than
// steps nodes would be expanded.
func WithStepBudget(steps int) Option {
	return func(options *Options) { options.StepBudget = steps }
}

// Manhattan returns the 4-directional distance between a and b.
func Manhattan(a, b Coord) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Search executes A* from start to end over view.
//
// When the open set is exhausted the returned Result has Found == false and
// the error is ErrNoPathFound. Invalid endpoints yield ErrInvalidRequest.
func Search(
	contextObject context.Context,
	view View,
	startNode Coord,
	goalNode Coord,
	options ...Option,
) (Result, error) {
	search, err := newSearch(contextObject, view, startNode, goalNode, options)
	if err != nil {
		return Result{}, err
	}
	defer search.close()

	for {
		status, err := search.step()
		if err != nil {
			return Result{ExpandedNodes: search.expandedNodes}, err
		}
		switch status {
		case stepFound:
			return Result{
				Path:          search.path,
				TotalCost:     len(search.path) - 1,
				ExpandedNodes: search.expandedNodes,
				Found:         true,
			}, nil
		case stepExhausted:
			return Result{ExpandedNodes: search.expandedNodes}, ErrNoPathFound
		}
	}
}

// SearchGrid runs Search between the grid's own Start and End cells.
func SearchGrid(contextObject context.Context, grid *Grid, options ...Option) (Result, error) {
	if grid == nil {
		return Result{}, fmt.Errorf("%w: nil grid", ErrInvalidRequest)
	}
	start, ok := grid.Start()
	if !ok {
		return Result{}, fmt.Errorf("%w: start not placed", ErrInvalidRequest)
	}
	end, ok := grid.End()
	if !ok {
		return Result{}, fmt.Errorf("%w: end not placed", ErrInvalidRequest)
	}
	return Search(contextObject, grid, start, end, options...)
}

type stepStatus int

const (
	stepRunning stepStatus = iota
	stepFound
	stepExhausted
)

// search is the orchestrator state shared by Search and Stepper. It owns the
// node arena and the frontier; workers only compute proposals.
type search struct {
	ctx        context.Context
	view       View
	size       int
	goal       Coord
	stepBudget int

	nodes  []searchNode
	lookup []int32
	open   priorityQueue
	pool   *workerPool

	expandedNodes int
	current       Coord
	path          []Coord
	status        stepStatus
}

func newSearch(ctx context.Context, view View, start, goal Coord, options []Option) (*search, error) {
	searchOptions := Options{NumberOfWorkers: 1}
	for _, option := range options {
		option(&searchOptions)
	}

	if view == nil || view.Size() <= 0 {
		return nil, fmt.Errorf("%w: empty grid", ErrInvalidRequest)
	}
	size := view.Size()
	for _, endpoint := range []Coord{start, goal} {
		if endpoint.X < 0 || endpoint.X >= size || endpoint.Y < 0 || endpoint.Y >= size {
			return nil, fmt.Errorf("%w: endpoint %s outside grid", ErrInvalidRequest, endpoint)
		}
		if view.At(endpoint) == Blocked {
			return nil, fmt.Errorf("%w: endpoint %s is blocked", ErrInvalidRequest, endpoint)
		}
	}

	s := &search{
		ctx:        ctx,
		view:       view,
		size:       size,
		goal:       goal,
		stepBudget: searchOptions.StepBudget,
		nodes:      make([]searchNode, 0, size*size),
		lookup:     make([]int32, size*size),
	}
	if s.stepBudget <= 0 {
		s.stepBudget = size * size
	}
	for i := range s.lookup {
		s.lookup[i] = -1
	}
	s.open.nodes = &s.nodes
	heap.Init(&s.open)

	s.discover(start, -1, 0, Manhattan(start, goal))

	if searchOptions.NumberOfWorkers > 1 {
		s.pool = startWorkers(ctx, searchOptions.NumberOfWorkers)
	}
	return s, nil
}

func (s *search) close() {
	if s.pool != nil {
		s.pool.close()
		s.pool = nil
	}
}

// step expands the best open node.
func (s *search) step() (stepStatus, error) {
	if s.status != stepRunning {
		return s.status, nil
	}
	if s.open.Len() == 0 {
		s.status = stepExhausted
		return s.status, nil
	}
	if err := s.ctx.Err(); err != nil {
		return stepRunning, err
	}
	if s.expandedNodes >= s.stepBudget {
		return stepRunning, fmt.Errorf("%w: %d expansions", ErrStepBudgetExceeded, s.stepBudget)
	}

	currentIndex := heap.Pop(&s.open).(int32)
	current := &s.nodes[currentIndex]
	current.closed = true
	s.expandedNodes++
	s.current = current.coord

	// Goal check
	if current.coord == s.goal {
		s.path = internal.ReconstructPath(currentIndex,
			func(i int32) int32 { return s.nodes[i].parent },
			func(i int32) Coord { return s.nodes[i].coord },
		)
		s.status = stepFound
		return s.status, nil
	}

	var tasks [maxNeighbors]expandTask
	count := 0
	for _, d := range [maxNeighbors]Coord{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		next := Coord{current.coord.X + d.X, current.coord.Y + d.Y}
		if next.X < 0 || next.X >= s.size || next.Y < 0 || next.Y >= s.size {
			continue
		}
		if s.view.At(next) == Blocked {
			continue
		}
		if known := s.lookup[s.flat(next)]; known >= 0 && s.nodes[known].closed {
			continue
		}
		tasks[count] = expandTask{
			slot:     count,
			fromNode: currentIndex,
			neighbor: next,
			currentG: current.gScore,
			goal:     s.goal,
		}
		count++
	}

	var proposals [maxNeighbors]relaxProposal
	if s.pool != nil {
		if err := s.pool.expand(s.ctx, tasks[:count], &proposals); err != nil {
			return stepRunning, err
		}
	} else {
		for i := 0; i < count; i++ {
			proposals[i] = propose(tasks[i])
		}
	}
	for i := 0; i < count; i++ {
		s.relax(proposals[i])
	}
	return stepRunning, nil
}

// relax attaches a newly discovered node or improves a known open one.
func (s *search) relax(proposal relaxProposal) {
	known := s.lookup[s.flat(proposal.toNode)]
	if known < 0 {
		s.discover(proposal.toNode, proposal.fromNode, proposal.gScore, proposal.hScore)
		return
	}
	node := &s.nodes[known]
	if node.closed || proposal.gScore >= node.gScore {
		return
	}
	node.gScore = proposal.gScore
	node.hScore = proposal.hScore
	node.parent = proposal.fromNode
	heap.Fix(&s.open, node.indexInQueue)
}

func (s *search) discover(c Coord, parent int32, g, h int) {
	index := int32(len(s.nodes))
	s.nodes = append(s.nodes, searchNode{
		coord:  c,
		gScore: g,
		hScore: h,
		parent: parent,
	})
	s.lookup[s.flat(c)] = index
	heap.Push(&s.open, index)
}

func (s *search) flat(c Coord) int { return c.Y*s.size + c.X }
