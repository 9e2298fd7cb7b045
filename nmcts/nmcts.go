// Package nmcts implements Naive Monte-Carlo Tree Search (spec §4.6): a
// global, per-search map from state hash to per-action local arm statistics
// (gMAB), explored via a naive select-and-expand recursion instead of
// UCB-driven descent.
package nmcts

import (
	"math"
	"slices"
	"time"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
	xrand "golang.org/x/exp/rand"
	"k8s.io/klog/v2"

	"github.com/tmellor/mcsearch/mstate"
	"github.com/tmellor/mcsearch/node"
	"github.com/tmellor/mcsearch/search"
)

// Config holds NMCTS's planner-specific builder fields, separate from the
// Strategies bundle shared by every planner.
type Config[P mstate.State[P], A mstate.Action[P]] struct {
	Exploration search.ExplorationStrategy
	Sampling    search.SamplingStrategy[P, A]

	// PolicyGlobal is the probability, once exploiting, of drawing uniformly
	// at random among known arms rather than picking the highest-mean arm.
	PolicyGlobal float32
}

type localArm[A any] struct {
	action A
	reward float64
	visits int
}

type gmab[A any] map[uint64]map[uint64]*localArm[A]

// Search runs NMCTS against ctx until its budget is exhausted, then selects
// and records a Solution. The gMAB table is allocated fresh for this call
// and discarded afterwards: it is per-search state, never shared across
// parallel Contexts.
func Search[P mstate.State[P], A mstate.Action[P], Sol any](ctx *search.Context[P, A, Sol], cfg Config[P, A]) error {
	return ctx.Execute(func(c *search.Context[P, A, Sol]) error {
		arms := make(gmab[A])
		start := time.Now()
		it := 0
		for budgetRemains(c, start, it) {
			if err := runIteration(c, cfg, arms); err != nil {
				var pe *search.PlayoutError
				if errors.As(err, &pe) {
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
			klog.Infof("nmcts %s: ran %d iterations in %s, %d distinct states visited", c.Env.ID, it, time.Since(start), len(arms))
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

func runIteration[P mstate.State[P], A mstate.Action[P], Sol any](c *search.Context[P, A, Sol], cfg Config[P, A], arms gmab[A]) (err error) {
	defer search.RecoverGameModel(&err)

	env := c.Env
	t := env.Tree
	state := env.Cloner.Clone(env.Source)
	leaf, end, perr := naiveSelectAndExpand(c, cfg, arms, t.Root(), state)
	if perr != nil {
		return perr
	}
	c.Strategies.BackProp.BackPropagate(env, t, c.Strategies.StateEval, leaf, end)
	if d := t.Depth(leaf); d > c.MaxDepth {
		c.MaxDepth = d
	}
	return nil
}

// naiveSelectAndExpand samples an action from state via naiveSampling; if a
// child of h already carries that action and applying it keeps the same
// active player, it recurses into that child; if the action exists but
// changes the active player, it returns that child as the new leaf;
// otherwise it materialises a brand new child and returns it.
func naiveSelectAndExpand[P mstate.State[P], A mstate.Action[P], Sol any](
	c *search.Context[P, A, Sol], cfg Config[P, A], arms gmab[A], h node.Handle, state P,
) (node.Handle, P, error) {
	env := c.Env
	t := env.Tree

	if c.Strategies.Goal.Done(env, state) {
		return h, state, nil
	}

	action, err := naiveSampling(c, cfg, arms, state)
	if err != nil {
		return node.NoHandle, state, err
	}

	n := t.At(h)
	var matched node.Handle = node.NoHandle
	for _, ch := range n.Children {
		cn := t.At(ch)
		if cn.Payload != nil && (*cn.Payload).Equal(action) {
			matched = ch
			break
		}
	}

	childState := env.GameLogic.Apply(env, state, action)
	if matched != node.NoHandle {
		if childState.ActivePlayer() == state.ActivePlayer() {
			return naiveSelectAndExpand(c, cfg, arms, matched, childState)
		}
		return matched, childState, nil
	}
	newH := t.NewChild(h, action)
	return newH, childState, nil
}

// naiveSampling draws an action for state: explores (via cfg.Sampling) if
// the state is unseen or the exploration coin favors it, attributing the
// resulting playout's value to the local arm; otherwise exploits the
// accumulated local arms, picking the best mean with probability
// 1-PolicyGlobal or uniformly at random otherwise.
func naiveSampling[P mstate.State[P], A mstate.Action[P], Sol any](
	c *search.Context[P, A, Sol], cfg Config[P, A], arms gmab[A], state P,
) (A, error) {
	env := c.Env
	sHash := state.Hash()
	stateArms := arms[sHash]

	explore := len(stateArms) == 0
	if !explore {
		explore = cfg.Exploration.Explore(env.RNG, 0)
	}

	if explore {
		action := cfg.Sampling.Sample(env.RNG, state)
		next := env.GameLogic.Apply(env, state, action)
		end, perr := c.Strategies.Playout.Playout(env, next)
		if perr != nil {
			var zero A
			return zero, &search.PlayoutError{Err: perr}
		}
		value := c.Strategies.StateEval.Evaluate(env, state.ActivePlayer(), end)

		if stateArms == nil {
			stateArms = make(map[uint64]*localArm[A])
			arms[sHash] = stateArms
		}
		aHash := action.Hash()
		arm := stateArms[aHash]
		if arm == nil {
			arm = &localArm[A]{action: action}
			stateArms[aHash] = arm
		}
		arm.reward += value
		arm.visits++
		return action, nil
	}

	return exploit(env.RNG, cfg.PolicyGlobal, stateArms), nil
}

func exploit[A any](rng *xrand.Rand, policyGlobal float32, arms map[uint64]*localArm[A]) A {
	// Arms are walked in ascending action-hash order, so the pick depends
	// only on rng and not on Go's randomised map iteration order.
	keys := make([]uint64, 0, len(arms))
	for k := range arms {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	if rng.Float32() >= policyGlobal {
		var best *localArm[A]
		bestMean := math.Inf(-1)
		for _, k := range keys {
			arm := arms[k]
			mean := arm.reward / float64(arm.visits)
			if best == nil || mean > bestMean {
				best = arm
				bestMean = mean
			}
		}
		return best.action
	}
	idx := rng.Intn(len(arms))
	i := 0
	for _, k := range keys {
		if i == idx {
			return arms[k].action
		}
		i++
	}
	exceptions.Panicf("nmcts: unreachable, empty arm set during exploit")
	var zero A
	return zero
}
