package policy

import (
	"github.com/tmellor/mcsearch/mstate"
	"github.com/tmellor/mcsearch/node"
	"github.com/tmellor/mcsearch/search"
)

// ActionSolution is a SolutionStrategy returning the chosen node's payload
// action — the most common case, and what a caller wants from "recommend a
// single move".
type ActionSolution[P mstate.State[P], A mstate.Action[P]] struct{}

func NewActionSolution[P mstate.State[P], A mstate.Action[P]]() ActionSolution[P, A] {
	return ActionSolution[P, A]{}
}

func (ActionSolution[P, A]) Solution(env *search.Env[P, A], t *node.Tree[P, A], n node.Handle) A {
	return *t.At(n).Payload
}

// NodeSolution is a SolutionStrategy returning the chosen node's handle
// itself, for callers that want to keep exploring the tree (e.g. to render
// it, or to warm-start a follow-up Context via CarryRoot).
type NodeSolution[P mstate.State[P], A mstate.Action[P]] struct{}

func NewNodeSolution[P mstate.State[P], A mstate.Action[P]]() NodeSolution[P, A] {
	return NodeSolution[P, A]{}
}

func (NodeSolution[P, A]) Solution(env *search.Env[P, A], t *node.Tree[P, A], n node.Handle) node.Handle {
	return n
}

// StateSolution is a SolutionStrategy returning the position reached by
// replaying the chosen node's root-to-node action chain against Env.Source.
type StateSolution[P mstate.State[P], A mstate.Action[P]] struct{}

func NewStateSolution[P mstate.State[P], A mstate.Action[P]]() StateSolution[P, A] {
	return StateSolution[P, A]{}
}

func (StateSolution[P, A]) Solution(env *search.Env[P, A], t *node.Tree[P, A], n node.Handle) P {
	var actions []A
	cur := n
	for {
		nd := t.At(cur)
		if nd.Payload == nil {
			break
		}
		actions = append(actions, *nd.Payload)
		cur = nd.Parent
	}
	state := env.Cloner.Clone(env.Source)
	for i := len(actions) - 1; i >= 0; i-- {
		state = env.GameLogic.Apply(env, state, actions[i])
	}
	return state
}

// ActionSequenceSolution is a SolutionStrategy returning the contiguous
// chain of same-player ancestor payloads ending at the chosen node — useful
// for domains where a single "turn" is made of several consecutive
// sub-actions by the same player.
type ActionSequenceSolution[P mstate.State[P], A mstate.Action[P]] struct{}

func NewActionSequenceSolution[P mstate.State[P], A mstate.Action[P]]() ActionSequenceSolution[P, A] {
	return ActionSequenceSolution[P, A]{}
}

func (ActionSequenceSolution[P, A]) Solution(env *search.Env[P, A], t *node.Tree[P, A], n node.Handle) []A {
	nd := t.At(n)
	if nd.Payload == nil {
		return nil
	}
	player := (*nd.Payload).Player()
	var seq []A
	cur := n
	for {
		cn := t.At(cur)
		if cn.Payload == nil || (*cn.Payload).Player() != player {
			break
		}
		seq = append([]A{*cn.Payload}, seq...)
		cur = cn.Parent
	}
	return seq
}
