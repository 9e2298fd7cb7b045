package search

import "github.com/pkg/errors"

// ErrImpossibleExpansion is returned by a planner when a node's generator,
// created from a non-terminal (per GoalStrategy) position, produced no
// actions at all: the Game Model promised a live position but offered
// nothing to expand into. This always aborts the search with status
// Failure, unlike the per-iteration Game Model failures accumulated via
// Context.AddIterationError.
var ErrImpossibleExpansion = errors.New("search: game model produced no legal actions for a non-terminal position")

// PlayoutError wraps a PlayoutStrategy failure. Playout failures are never
// treated as recoverable per-iteration noise: the planner that receives one
// aborts the whole search with status Failure.
type PlayoutError struct {
	Err error
}

func (p *PlayoutError) Error() string {
	return "search: playout failed: " + p.Err.Error()
}

func (p *PlayoutError) Unwrap() error {
	return p.Err
}
