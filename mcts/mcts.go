// Package mcts implements the classic select/expand/simulate/back-propagate
// Monte-Carlo tree search planner described in spec §4.4, built entirely on
// top of the pluggable strategies in package search.
package mcts

import (
	"time"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/tmellor/mcsearch/mstate"
	"github.com/tmellor/mcsearch/search"
)

// Search runs MCTS against ctx until its iteration and/or time budget is
// exhausted, then selects and records a Solution via ctx's FinalNodeSelection
// and SolutionStrategy. ctx must already be configured with a full
// Strategies bundle; Search itself contributes no strategy defaults.
func Search[P mstate.State[P], A mstate.Action[P], Sol any](ctx *search.Context[P, A, Sol]) error {
	return ctx.Execute(func(c *search.Context[P, A, Sol]) error {
		start := time.Now()
		it := 0
		for budgetRemains(c, start, it) {
			if err := runIteration(c); err != nil {
				var pe *search.PlayoutError
				if errors.As(err, &pe) {
					c.Status = search.Failure
					return err
				}
				if errors.Is(err, search.ErrImpossibleExpansion) {
					c.Status = search.Failure
					return err
				}
				c.AddIterationError(err)
				it++
				continue
			}
			c.Env.Metrics.IterationCompleted()
			it++
		}
		if klog.V(1).Enabled() {
			klog.Infof("mcts %s: ran %d iterations in %s", c.Env.ID, it, time.Since(start))
		}

		finalH, err := c.Strategies.FinalSelect.SelectFinal(c.Env, c.Env.Tree, c.Env.Tree.Root())
		if err != nil {
			c.Status = search.Failure
			return err
		}
		c.Solution = c.Strategies.Solution.Solution(c.Env, c.Env.Tree, finalH)
		c.Status = search.Success
		return nil
	})
}

func budgetRemains[P mstate.State[P], A mstate.Action[P], Sol any](c *search.Context[P, A, Sol], start time.Time, it int) bool {
	iterOK := c.Iterations == mstate.NoLimitOnIterations || it < c.Iterations
	timeOK := c.TimeBudget == search.NoLimitOnThinkingTime || time.Since(start) < c.TimeBudget
	return iterOK && timeOK
}

// runIteration performs one select/expand/simulate/back-propagate pass:
//
//  1. Clone the root state.
//  2. Descend via SelectionStrategy while the current node is fully
//     expanded and not done.
//  3. If not done, attempt one expansion via ExpansionStrategy.
//  4. If still not done, play out to an end state.
//  5. Back-propagate the evaluated end state from the reached leaf.
func runIteration[P mstate.State[P], A mstate.Action[P], Sol any](c *search.Context[P, A, Sol]) (err error) {
	defer search.RecoverGameModel(&err)

	env := c.Env
	t := env.Tree
	state := env.Cloner.Clone(env.Source)
	h := t.Root()
	depth := 0

	for !c.Strategies.Goal.Done(env, state) && t.At(h).IsFullyExpanded() {
		h = c.Strategies.Selection.SelectNext(env, t, h)
		action := *t.At(h).Payload
		state = env.GameLogic.Apply(env, state, action)
		depth++
	}

	if !c.Strategies.Goal.Done(env, state) {
		newH := c.Strategies.Expansion.Expand(env, t, h, state)
		if newH != h {
			action := *t.At(newH).Payload
			state = env.GameLogic.Apply(env, state, action)
			h = newH
			depth++
		} else if t.At(h).IsFullyExpanded() && len(t.At(h).Children) == 0 {
			return search.ErrImpossibleExpansion
		}
	}

	if !c.Strategies.Goal.Done(env, state) {
		var perr error
		state, perr = c.Strategies.Playout.Playout(env, state)
		if perr != nil {
			return &search.PlayoutError{Err: perr}
		}
	}

	c.Strategies.BackProp.BackPropagate(env, t, c.Strategies.StateEval, h, state)
	if depth > c.MaxDepth {
		c.MaxDepth = depth
	}
	return nil
}
