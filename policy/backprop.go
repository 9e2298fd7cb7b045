package policy

import (
	"github.com/tmellor/mcsearch/mstate"
	"github.com/tmellor/mcsearch/node"
	"github.com/tmellor/mcsearch/search"
)

// EvaluateOnceAndColour is the default BackPropagationStrategy: the end
// state is evaluated exactly once, from the perspective of the leaf node's
// payload player (the root is treated as if its payload player were the
// root's own active player), and that single value is then added to each
// ancestor with its sign flipped whenever the ancestor's payload player
// differs from the root's active player.
type EvaluateOnceAndColour[P mstate.State[P], A mstate.Action[P]] struct{}

func NewEvaluateOnceAndColour[P mstate.State[P], A mstate.Action[P]]() EvaluateOnceAndColour[P, A] {
	return EvaluateOnceAndColour[P, A]{}
}

func (EvaluateOnceAndColour[P, A]) BackPropagate(env *search.Env[P, A], t *node.Tree[P, A], eval search.StateEvaluation[P, A], leaf node.Handle, end P) {
	rootPlayer := env.Source.ActivePlayer()

	leafNode := t.At(leaf)
	leafPlayer := rootPlayer
	if leafNode.Payload != nil {
		leafPlayer = (*leafNode.Payload).Player()
	}
	value := eval.Evaluate(env, leafPlayer, end)

	cur := leaf
	for {
		n := t.At(cur)
		player := rootPlayer
		if n.Payload != nil {
			player = (*n.Payload).Player()
		}
		v := value
		if player != rootPlayer {
			v = -value
		}
		t.Visit(cur, v)
		if n.IsRoot() {
			break
		}
		cur = n.Parent
	}
}
