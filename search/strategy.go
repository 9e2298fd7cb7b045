// Package search hosts the pluggable strategy interfaces every planner is
// built from, the Env each strategy is invoked with, and Context, the
// stateful object a caller constructs, configures and executes a planner
// against.
package search

import (
	"github.com/google/uuid"
	xrand "golang.org/x/exp/rand"

	"github.com/tmellor/mcsearch/mstate"
	"github.com/tmellor/mcsearch/node"
	"github.com/tmellor/mcsearch/position"
)

// Env is the read-mostly execution environment every strategy is invoked
// with: the searching player's identity, the tree being built, the RNG
// source, the optional metrics sink, and the two capabilities (GameLogic,
// Cloner) pervasive enough that every strategy needs them directly rather
// than through the Strategies bundle.
type Env[P mstate.State[P], A mstate.Action[P]] struct {
	ID      uuid.UUID
	Source  P
	Subject int
	Tree    *node.Tree[P, A]
	RNG     *xrand.Rand
	Metrics MetricsRecorder

	GameLogic GameLogic[P, A]
	Cloner    Cloner[P]
}

// Cloner produces independent copies of a position, used wherever a planner
// needs a private working copy of Env.Source (or a carried-over Target) to
// mutate during traversal.
type Cloner[P any] interface {
	Clone(p P) P
}

// GameLogic is the minimal rules engine a planner drives: applying actions,
// enumerating the actions available from a position, and deciding whether a
// position ends the game.
type GameLogic[P mstate.State[P], A mstate.Action[P]] interface {
	// Apply returns the position reached by playing a in s. s is never
	// mutated.
	Apply(env *Env[P, A], s P, a A) P

	// Expand returns a lazy generator over the actions legal in s. Called
	// once per node, on first expansion attempt.
	Expand(env *Env[P, A], s P) position.Generator[A]

	// Done reports whether s ends the game.
	Done(env *Env[P, A], s P) bool

	// Scores returns a per-player real-valued score vector for s, for
	// callers that want more than a win/loss/draw signal (e.g. external
	// tooling, not consumed by the core planning loop itself).
	Scores(s P) []float64
}

// GoalStrategy decides when a playout (or the search as a whole) should
// stop descending. It is distinct from GameLogic.Done: GameLogic.Done is the
// ground truth "the game is over"; GoalStrategy may stop earlier (a turn
// cutoff, a fixed ply limit) and is what the tree-traversal loops actually
// consult.
type GoalStrategy[P mstate.State[P], A mstate.Action[P]] interface {
	Done(env *Env[P, A], s P) bool
}

// SelectionStrategy chooses which already-expanded child of parent to
// descend into next. Requires parent to have at least one child.
type SelectionStrategy[P mstate.State[P], A mstate.Action[P]] interface {
	SelectNext(env *Env[P, A], t *node.Tree[P, A], parent node.Handle) node.Handle
}

// ExpansionStrategy materialises (at most) one new child of h, given the
// position s reached at h, and returns its handle, or h unchanged if no
// expansion happened (generator exhausted, or a min-visits gate not yet
// met).
type ExpansionStrategy[P mstate.State[P], A mstate.Action[P]] interface {
	Expand(env *Env[P, A], t *node.Tree[P, A], h node.Handle, s P) node.Handle
}

// PlayoutStrategy advances a position to a terminal (or goal) state,
// returning the end state. A returned error is always a genuine playout
// failure, never recovered by the planner: it aborts the search with
// status Failure.
type PlayoutStrategy[P mstate.State[P], A mstate.Action[P]] interface {
	Playout(env *Env[P, A], s P) (P, error)
}

// StateEvaluation scores an end state from the point of view of the player
// identified by perspective, conventionally in [-1, 1] for a win/loss/draw
// evaluator.
type StateEvaluation[P mstate.State[P], A mstate.Action[P]] interface {
	Evaluate(env *Env[P, A], perspective int, s P) float64
}

// BackPropagationStrategy folds an evaluated end state back up the tree
// starting at leaf.
type BackPropagationStrategy[P mstate.State[P], A mstate.Action[P]] interface {
	BackPropagate(env *Env[P, A], t *node.Tree[P, A], eval StateEvaluation[P, A], leaf node.Handle, end P)
}

// FinalNodeSelection picks the child of root to recommend once the search
// budget is exhausted.
type FinalNodeSelection[P mstate.State[P], A mstate.Action[P]] interface {
	SelectFinal(env *Env[P, A], t *node.Tree[P, A], root node.Handle) (node.Handle, error)
}

// SolutionStrategy converts the chosen node into whatever solution type Sol
// a caller wants back (the action, the node handle, the replayed state, a
// same-player action sequence, ...).
type SolutionStrategy[P mstate.State[P], A mstate.Action[P], Sol any] interface {
	Solution(env *Env[P, A], t *node.Tree[P, A], n node.Handle) Sol
}

// ExplorationStrategy is a biased coin flip an NMCTS-style planner consults
// at each sampling step to decide whether to explore (draw a fresh random
// action) or exploit (draw from the accumulated local arms).
type ExplorationStrategy interface {
	Explore(rng *xrand.Rand, iteration int) bool
}

// SamplingStrategy draws one legal action from s, used by NMCTS's naive
// sampling step.
type SamplingStrategy[P mstate.State[P], A mstate.Action[P]] interface {
	Sample(rng *xrand.Rand, s P) A
}

// SideInformationAccumulator is the per-search, stateful object LSI's
// generation phase attributes end-state values to, and its evaluation phase
// samples joint actions from.
type SideInformationAccumulator[P mstate.State[P], A mstate.Action[P]] interface {
	// RandomJointAction draws one uniformly random full action, used while
	// building up side information.
	RandomJointAction(rng *xrand.Rand, s P) A

	// Attribute records that action achieved end-state value value.
	Attribute(action A, value float64)
}

// SideInformationStrategy is a stateless factory for a fresh
// SideInformationAccumulator, so the accumulator's per-search mutable state
// never leaks into a Strategies bundle shared across parallel Contexts.
type SideInformationStrategy[P mstate.State[P], A mstate.Action[P]] interface {
	New() SideInformationAccumulator[P, A]
}

// LSISamplingStrategy draws one joint action using the side information
// accumulated so far.
type LSISamplingStrategy[P mstate.State[P], A mstate.Action[P]] interface {
	Sample(rng *xrand.Rand, s P, side SideInformationAccumulator[P, A]) A
}

// Strategies bundles the capabilities common to every planner. Planner-
// specific capabilities (NMCTS's ExplorationStrategy/SamplingStrategy,
// LSI's SideInformationStrategy/LSISamplingStrategy/Ng/Ne) are builder
// fields on the planner's own Config type instead, since they don't apply
// uniformly across planners.
type Strategies[P mstate.State[P], A mstate.Action[P], Sol any] struct {
	Goal        GoalStrategy[P, A]
	Selection   SelectionStrategy[P, A]
	Expansion   ExpansionStrategy[P, A]
	Playout     PlayoutStrategy[P, A]
	BackProp    BackPropagationStrategy[P, A]
	FinalSelect FinalNodeSelection[P, A]
	StateEval   StateEvaluation[P, A]
	Solution    SolutionStrategy[P, A, Sol]
}
