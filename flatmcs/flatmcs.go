// Package flatmcs implements Flat Monte-Carlo Search (spec §4.5): a single
// level of children under the root, each evaluated by repeated playouts,
// with no further tree descent.
package flatmcs

import (
	"time"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/tmellor/mcsearch/mstate"
	"github.com/tmellor/mcsearch/node"
	"github.com/tmellor/mcsearch/search"
)

// Search runs Flat-MCS against ctx until its budget is exhausted, then
// selects and records a Solution.
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
			klog.Infof("flatmcs %s: ran %d iterations in %s", c.Env.ID, it, time.Since(start))
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

// runIteration expands the root by one child if it is not yet fully
// expanded, or otherwise selects among its existing children; applies that
// child's payload, plays out to an end state, and back-propagates. Unlike
// mcts, there is never a descent beyond depth 1.
func runIteration[P mstate.State[P], A mstate.Action[P], Sol any](c *search.Context[P, A, Sol]) (err error) {
	defer search.RecoverGameModel(&err)

	env := c.Env
	t := env.Tree
	root := t.Root()
	state := env.Cloner.Clone(env.Source)

	if c.Strategies.Goal.Done(env, state) {
		return search.ErrImpossibleExpansion
	}

	var h node.Handle
	if !t.At(root).IsFullyExpanded() {
		h = c.Strategies.Expansion.Expand(env, t, root, state)
	} else {
		h = root
	}
	if h == root {
		if len(t.At(root).Children) == 0 {
			return search.ErrImpossibleExpansion
		}
		h = c.Strategies.Selection.SelectNext(env, t, root)
	}

	action := *t.At(h).Payload
	state = env.GameLogic.Apply(env, state, action)

	end, perr := c.Strategies.Playout.Playout(env, state)
	if perr != nil {
		return &search.PlayoutError{Err: perr}
	}

	c.Strategies.BackProp.BackPropagate(env, t, c.Strategies.StateEval, h, end)
	c.MaxDepth = 1
	return nil
}
