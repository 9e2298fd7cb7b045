package lsi

import (
	"math"
	"sort"

	"k8s.io/klog/v2"

	"github.com/tmellor/mcsearch/mstate"
	"github.com/tmellor/mcsearch/search"
)

// Config holds LSI's planner-specific builder fields.
type Config[P mstate.State[P], A mstate.Action[P]] struct {
	SideInformation search.SideInformationStrategy[P, A]
	Sampling        search.LSISamplingStrategy[P, A]

	// Ng is the number of generation-phase random playouts used to build
	// the side information.
	Ng int
	// Ne is the number of joint actions drawn from the side information as
	// evaluation candidates, and the (soft) ceiling on playout samples spent
	// evaluating them.
	Ne int
}

// Search runs LSI once against ctx: a generation phase building side
// information from Ng random playouts, then a sequential-halving evaluation
// over candidate actions sampled from it. It returns the number of playout
// samples actually spent in the evaluation phase, for reporting, alongside
// the usual error.
func Search[P mstate.State[P], A mstate.Action[P], Sol any](ctx *search.Context[P, A, Sol], cfg Config[P, A]) (evalSamplesUsed int, err error) {
	err = ctx.Execute(func(c *search.Context[P, A, Sol]) error {
		env := c.Env

		acc := cfg.SideInformation.New()
		for i := 0; i < cfg.Ng; i++ {
			state := env.Cloner.Clone(env.Source)
			action := acc.RandomJointAction(env.RNG, state)
			next := env.GameLogic.Apply(env, state, action)
			end, perr := c.Strategies.Playout.Playout(env, next)
			if perr != nil {
				return &search.PlayoutError{Err: perr}
			}
			value := c.Strategies.StateEval.Evaluate(env, env.Source.ActivePlayer(), end)
			acc.Attribute(action, value)
			c.Env.Metrics.IterationCompleted()
		}

		seen := make(map[uint64]bool)
		var candidates []A
		for i := 0; i < cfg.Ne; i++ {
			a := cfg.Sampling.Sample(env.RNG, env.Source, acc)
			if !seen[a.Hash()] {
				seen[a.Hash()] = true
				candidates = append(candidates, a)
			}
		}

		if len(candidates) == 0 {
			var zero Sol
			c.Solution = zero
			c.Status = search.Success
			return nil
		}

		winner, used, err := sequentialHalving(c, cfg, candidates)
		evalSamplesUsed = used
		if err != nil {
			return err
		}

		childH := env.Tree.NewChild(env.Tree.Root(), winner)
		c.Solution = c.Strategies.Solution.Solution(env, env.Tree, childH)
		c.MaxDepth = 1
		c.Status = search.Success
		if klog.V(1).Enabled() {
			klog.Infof("lsi %s: %d candidates, %d eval samples used", env.ID, len(candidates), evalSamplesUsed)
		}
		return nil
	})
	return
}

// sequentialHalving evaluates remaining in ceil(log2(|remaining|)) (at
// least 1) rounds, halving the candidate set by its accumulated reward each
// round, until a single survivor remains.
func sequentialHalving[P mstate.State[P], A mstate.Action[P], Sol any](
	c *search.Context[P, A, Sol], cfg Config[P, A], candidates []A,
) (A, int, error) {
	env := c.Env
	remaining := append([]A(nil), candidates...)
	used := 0

	k := int(math.Ceil(math.Log2(float64(len(remaining)))))
	if k < 1 {
		k = 1
	}

	for round := 0; round < k && len(remaining) > 1; round++ {
		perArm := cfg.Ne / (len(remaining) * k)
		if perArm < 1 {
			perArm = 1
		}
		values := make(map[uint64]float64, len(remaining))
		for _, action := range remaining {
			state := env.Cloner.Clone(env.Source)
			next := env.GameLogic.Apply(env, state, action)
			var sum float64
			for s := 0; s < perArm; s++ {
				end, perr := c.Strategies.Playout.Playout(env, next)
				if perr != nil {
					var zero A
					return zero, used, &search.PlayoutError{Err: perr}
				}
				sum += c.Strategies.StateEval.Evaluate(env, env.Source.ActivePlayer(), end)
				used++
				c.Env.Metrics.IterationCompleted()
			}
			values[action.Hash()] = sum
		}
		sort.Slice(remaining, func(i, j int) bool {
			return values[remaining[i].Hash()] > values[remaining[j].Hash()]
		})
		keep := int(math.Ceil(float64(len(remaining)) / 2))
		remaining = remaining[:keep]
	}
	return remaining[0], used, nil
}
