package search

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	xrand "golang.org/x/exp/rand"
	"k8s.io/klog/v2"

	"github.com/tmellor/mcsearch/mstate"
	"github.com/tmellor/mcsearch/node"
)

// NoLimitOnThinkingTime disables the wall-clock budget on a Context.
const NoLimitOnThinkingTime time.Duration = -1

// Context is the object a caller builds once, configures with
// budgets/strategies, and hands to a planner's Search function. Its
// lifecycle is Ready -> InProgress -> {Success, Failure}; Reset returns it
// to Ready for reuse.
type Context[P mstate.State[P], A mstate.Action[P], Sol any] struct {
	Env *Env[P, A]

	// Target is an optional second position (e.g. an opponent's actual
	// reply) some SolutionStrategy or GoalStrategy implementations consult.
	Target *P

	Strategies Strategies[P, A, Sol]

	Status   Status
	Solution Sol

	// Iterations and TimeBudget bound a single Execute call. Either may be
	// the corresponding NoLimit sentinel.
	Iterations int
	TimeBudget time.Duration

	// MaxDepth records the deepest node a planner reached during the last
	// Execute call, for observability.
	MaxDepth int

	iterErrors *multierror.Error
}

// NewContext builds a Ready Context rooted at source, for the player
// identified by subject, using the given GameLogic/Cloner and Strategies
// bundle. seed deterministically seeds the Context's private RNG.
func NewContext[P mstate.State[P], A mstate.Action[P], Sol any](
	source P,
	subject int,
	gameLogic GameLogic[P, A],
	cloner Cloner[P],
	strategies Strategies[P, A, Sol],
	seed uint64,
) *Context[P, A, Sol] {
	env := &Env[P, A]{
		ID:        uuid.New(),
		Source:    source,
		Subject:   subject,
		Tree:      node.NewTree[P, A](),
		RNG:       xrand.New(xrand.NewSource(seed)),
		Metrics:   NoopMetrics{},
		GameLogic: gameLogic,
		Cloner:    cloner,
	}
	return &Context[P, A, Sol]{
		Env:        env,
		Strategies: strategies,
		Status:     Ready,
		Iterations: mstate.NoLimitOnIterations,
		TimeBudget: NoLimitOnThinkingTime,
	}
}

// WithIterations sets the iteration budget. Chainable, mirroring the
// teacher's builder style.
func (c *Context[P, A, Sol]) WithIterations(n int) *Context[P, A, Sol] {
	c.Iterations = n
	return c
}

// WithTimeBudget sets the wall-clock budget.
func (c *Context[P, A, Sol]) WithTimeBudget(d time.Duration) *Context[P, A, Sol] {
	c.TimeBudget = d
	return c
}

// WithMetrics installs a MetricsRecorder.
func (c *Context[P, A, Sol]) WithMetrics(m MetricsRecorder) *Context[P, A, Sol] {
	c.Env.Metrics = m
	return c
}

// WithTarget installs an optional second position.
func (c *Context[P, A, Sol]) WithTarget(t P) *Context[P, A, Sol] {
	c.Target = &t
	return c
}

// Reset returns the Context to Ready, clearing Solution and accumulated
// iteration errors. If clearStartNode is true the search tree is discarded
// too; otherwise it (and any warm-started root) is kept for the next
// Execute call.
func (c *Context[P, A, Sol]) Reset(clearStartNode bool) {
	c.Status = Ready
	var zero Sol
	c.Solution = zero
	c.iterErrors = nil
	c.MaxDepth = 0
	if clearStartNode {
		c.Env.Tree = node.NewTree[P, A]()
	}
}

// Execute validates the Context's configuration, transitions Ready ->
// InProgress, and hands off to run (a planner's search loop). run is
// expected to set Status to Success or Failure itself before returning; if
// it returns a non-nil error while leaving Status at InProgress, Execute
// defaults it to Failure.
func (c *Context[P, A, Sol]) Execute(run func(*Context[P, A, Sol]) error) error {
	if c.Status != Ready {
		return errors.Errorf("search: Execute requires status Ready, got %s", c.Status)
	}
	if err := c.validate(); err != nil {
		return err
	}
	c.Status = InProgress
	start := time.Now()
	err := run(c)
	if err != nil && c.Status == InProgress {
		c.Status = Failure
	}
	elapsed := time.Since(start)
	c.Env.Metrics.SearchCompleted(elapsed)
	if klog.V(1).Enabled() {
		klog.Infof("search %s: finished %s after %s, started %s", c.Env.ID, c.Status,
			elapsed.Round(time.Microsecond), humanize.Time(start))
	}
	return err
}

func (c *Context[P, A, Sol]) validate() error {
	var missing []string
	if c.Env.GameLogic == nil {
		missing = append(missing, "GameLogic")
	}
	if c.Env.Cloner == nil {
		missing = append(missing, "Cloner")
	}
	if c.Strategies.Goal == nil {
		missing = append(missing, "GoalStrategy")
	}
	if c.Strategies.Selection == nil {
		missing = append(missing, "SelectionStrategy")
	}
	if c.Strategies.Expansion == nil {
		missing = append(missing, "ExpansionStrategy")
	}
	if c.Strategies.Playout == nil {
		missing = append(missing, "PlayoutStrategy")
	}
	if c.Strategies.BackProp == nil {
		missing = append(missing, "BackPropagationStrategy")
	}
	if c.Strategies.FinalSelect == nil {
		missing = append(missing, "FinalNodeSelection")
	}
	if c.Strategies.StateEval == nil {
		missing = append(missing, "StateEvaluation")
	}
	if c.Strategies.Solution == nil {
		missing = append(missing, "SolutionStrategy")
	}
	if len(missing) > 0 {
		return errors.Errorf("search: invalid configuration, missing: %s", strings.Join(missing, ", "))
	}
	return nil
}

// AddIterationError accumulates a recoverable per-iteration Game Model
// failure. Callers inspect the full list afterwards via IterationErrors,
// even on a search that ultimately reports Success.
func (c *Context[P, A, Sol]) AddIterationError(err error) {
	c.iterErrors = multierror.Append(c.iterErrors, err)
	if klog.V(1).Enabled() {
		klog.Infof("search %s: abandoned an iteration: %v", c.Env.ID, err)
	}
}

// IterationErrors returns the accumulated per-iteration failures, or nil if
// there were none.
func (c *Context[P, A, Sol]) IterationErrors() error {
	return c.iterErrors.ErrorOrNil()
}

// Copy returns an independent Context sharing this one's Strategies but
// with its own deep-cloned Source/Target, a deep-cloned copy of this
// Context's tree (any warm-started root carries over), and a fresh RNG
// stream seeded from this Context's RNG — suitable for handing to
// independent concurrent searches (the ensemble/parallelism boundary the
// core itself does not implement).
func (c *Context[P, A, Sol]) Copy() *Context[P, A, Sol] {
	seed := c.Env.RNG.Uint64()
	env := &Env[P, A]{
		ID:        uuid.New(),
		Source:    c.Env.Cloner.Clone(c.Env.Source),
		Subject:   c.Env.Subject,
		Tree:      c.Env.Tree.Rebase(c.Env.Tree.Root()),
		RNG:       xrand.New(xrand.NewSource(seed)),
		Metrics:   c.Env.Metrics,
		GameLogic: c.Env.GameLogic,
		Cloner:    c.Env.Cloner,
	}
	nc := &Context[P, A, Sol]{
		Env:        env,
		Strategies: c.Strategies,
		Status:     Ready,
		Iterations: c.Iterations,
		TimeBudget: c.TimeBudget,
	}
	if c.Target != nil {
		t := c.Env.Cloner.Clone(*c.Target)
		nc.Target = &t
	}
	return nc
}

// CarryRoot looks for a child of the current root carrying action and, if
// found, promotes it to be the new root via node.Tree.Rebase — the
// warm-start mechanism letting a caller replay an opponent's actual move
// against the subtree already explored instead of discarding it. Reports
// whether a matching child was found.
func (c *Context[P, A, Sol]) CarryRoot(action A) bool {
	t := c.Env.Tree
	root := t.At(t.Root())
	for _, ch := range root.Children {
		child := t.At(ch)
		if child.Payload != nil && (*child.Payload).Equal(action) {
			c.Env.Tree = t.Rebase(ch)
			return true
		}
	}
	return false
}
