package policy

import (
	"math"

	"github.com/pkg/errors"

	"github.com/tmellor/mcsearch/mstate"
	"github.com/tmellor/mcsearch/node"
	"github.com/tmellor/mcsearch/search"
)

// BestRatioFinalSelection is the default FinalNodeSelection: the child of
// root with the highest Score/Visits ratio, breaking ties uniformly at
// random via the context's RNG. Unvisited children are ignored.
type BestRatioFinalSelection[P mstate.State[P], A mstate.Action[P]] struct{}

func NewBestRatioFinalSelection[P mstate.State[P], A mstate.Action[P]]() BestRatioFinalSelection[P, A] {
	return BestRatioFinalSelection[P, A]{}
}

func (BestRatioFinalSelection[P, A]) SelectFinal(env *search.Env[P, A], t *node.Tree[P, A], root node.Handle) (node.Handle, error) {
	p := t.At(root)
	var best []node.Handle
	bestRatio := math.Inf(-1)
	for _, ch := range p.Children {
		c := t.At(ch)
		if c.Visits == 0 {
			continue
		}
		ratio := c.Score / float64(c.Visits)
		switch {
		case ratio > bestRatio+mstate.DoubleEqualityTolerance:
			bestRatio = ratio
			best = []node.Handle{ch}
		case math.Abs(ratio-bestRatio) <= mstate.DoubleEqualityTolerance:
			best = append(best, ch)
		}
	}
	if len(best) == 0 {
		return node.NoHandle, errors.New("policy: no visited children to select a final node from")
	}
	if len(best) == 1 {
		return best[0], nil
	}
	return best[env.RNG.Intn(len(best))], nil
}
