package policy

import (
	"github.com/tmellor/mcsearch/mstate"
	"github.com/tmellor/mcsearch/node"
	"github.com/tmellor/mcsearch/search"
)

// MinTExpansion is the default ExpansionStrategy: the root is always
// eligible for expansion; any other node must accrue T visits before its
// generator is created (or consulted again) for a new child.
type MinTExpansion[P mstate.State[P], A mstate.Action[P]] struct {
	T int
}

// NewMinTExpansion returns a MinTExpansion using the package's default
// minimum-visits threshold.
func NewMinTExpansion[P mstate.State[P], A mstate.Action[P]]() *MinTExpansion[P, A] {
	return &MinTExpansion[P, A]{T: mstate.DefaultMinVisitsThreshold}
}

func (m *MinTExpansion[P, A]) Expand(env *search.Env[P, A], t *node.Tree[P, A], h node.Handle, s P) node.Handle {
	n := t.At(h)
	if !n.IsRoot() && n.Visits < m.T {
		return h
	}
	if n.Generator == nil {
		n.Generator = env.GameLogic.Expand(env, s)
	}
	if !n.Generator.Advance() {
		return h
	}
	action := n.Generator.Current()
	return t.NewChild(h, action)
}
