package search

import (
	"github.com/pkg/errors"

	"github.com/tmellor/mcsearch/position"
)

// RecoverGameModel is deferred by every planner's per-iteration function
// around the selection/expansion/done-check traversal that calls into
// GameLogic and GoalStrategy. A *position.ContractViolation panic (a
// PositionGenerator misused outside its contract — a programmer error, not
// a recoverable Game Model failure) is rethrown unchanged; any other panic
// is converted into *err so the planner can accumulate it via
// Context.AddIterationError and move on to the next iteration.
//
// Usage:
//
//	func runIteration(...) (err error) {
//	    defer search.RecoverGameModel(&err)
//	    ... traversal that may panic ...
//	}
func RecoverGameModel(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if cv, ok := r.(*position.ContractViolation); ok {
		panic(cv)
	}
	*err = errors.Errorf("search: game model panicked: %v", r)
}
