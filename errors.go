package gridpath

import "errors"

var (
	// ErrOutOfBounds is returned when a coordinate falls outside the grid.
	ErrOutOfBounds = errors.New("coordinate out of bounds")

	// ErrInvalidOperation is returned by grid mutations that would break the
	// start/end invariant, such as blocking or clearing an endpoint.
	ErrInvalidOperation = errors.New("invalid grid operation")

	// ErrInvalidRequest is returned when a search is asked for with a missing,
	// out of range or blocked endpoint. The search is not attempted.
	ErrInvalidRequest = errors.New("invalid search request")

	// ErrNoPathFound is returned alongside a Result with Found == false when the
	// open set empties before the end is reached. It is an expected outcome.
	ErrNoPathFound = errors.New("no path found")

	// ErrStepBudgetExceeded is returned when a search expands more nodes than
	// its step budget allows.
	ErrStepBudgetExceeded = errors.New("step budget exceeded")
)
