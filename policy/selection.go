// Package policy provides the default concrete strategies described in
// spec §4.4–4.6: UCB1 selection with min-T amortised sort maintenance,
// min-T expansion, evaluate-once-and-colour back-propagation, best-ratio
// final selection, win/loss/draw state evaluation, and a chance-based
// exploration policy.
package policy

import (
	"github.com/gomlx/exceptions"

	"github.com/tmellor/mcsearch/mstate"
	"github.com/tmellor/mcsearch/node"
	"github.com/tmellor/mcsearch/search"
)

// UCBSelection is the default SelectionStrategy: below T*|children| parent
// visits it cycles through children round-robin so every child gets an
// initial sample; past that threshold it maintains children sorted by UCB1
// score descending, amortising the cost of staying sorted by re-scoring
// only the current best child each call and sinking it by one position if a
// second child has overtaken it.
type UCBSelection[P mstate.State[P], A mstate.Action[P]] struct {
	C float32 // exploration constant
	T int     // per-child minimum-visits threshold
}

// NewUCBSelection returns a UCBSelection configured with the package's
// default exploration constant and visits threshold.
func NewUCBSelection[P mstate.State[P], A mstate.Action[P]]() *UCBSelection[P, A] {
	return &UCBSelection[P, A]{C: mstate.DefaultExplorationConstant, T: mstate.DefaultMinVisitsThreshold}
}

func (u *UCBSelection[P, A]) SelectNext(env *search.Env[P, A], t *node.Tree[P, A], parent node.Handle) node.Handle {
	p := t.At(parent)
	n := len(p.Children)
	if n == 0 {
		exceptions.Panicf("policy: UCBSelection requires parent to have at least one child")
	}
	threshold := u.T * n
	if p.Visits < threshold {
		return p.Children[p.Visits%n]
	}

	score := func(h node.Handle) float64 {
		return t.CalculateScore(h, func(nd *node.Node[P, A]) float64 {
			return mstate.UCB(nd.Score, nd.Visits, p.Visits, u.C)
		})
	}

	if p.Visits == threshold {
		sortDescendingByScore(p.Children, score)
	} else if n > 1 {
		first, second := score(p.Children[0]), score(p.Children[1])
		if first < second {
			p.Children[0], p.Children[1] = p.Children[1], p.Children[0]
		}
	}
	return p.Children[0]
}

func sortDescendingByScore(children []node.Handle, score func(node.Handle) float64) {
	// Insertion sort: n is typically small (a position's branching factor),
	// and this only runs once per parent, the call where visits first cross
	// the threshold.
	for i := 1; i < len(children); i++ {
		c := children[i]
		v := score(c)
		j := i - 1
		for j >= 0 && score(children[j]) < v {
			children[j+1] = children[j]
			j--
		}
		children[j+1] = c
	}
}
