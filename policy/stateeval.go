package policy

import (
	"github.com/tmellor/mcsearch/mstate"
	"github.com/tmellor/mcsearch/search"
)

// WinLossDraw is the default StateEvaluation: +1 if perspective won, -1 if
// perspective lost, 0 for a draw or a non-terminal state.
type WinLossDraw[P mstate.State[P], A mstate.Action[P]] struct{}

func NewWinLossDraw[P mstate.State[P], A mstate.Action[P]]() WinLossDraw[P, A] {
	return WinLossDraw[P, A]{}
}

func (WinLossDraw[P, A]) Evaluate(env *search.Env[P, A], perspective int, s P) float64 {
	if !s.IsTerminal() {
		return 0
	}
	w := s.Winner()
	if w == mstate.Draw {
		return 0
	}
	if w == perspective {
		return 1
	}
	return -1
}
