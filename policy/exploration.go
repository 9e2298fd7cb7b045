package policy

import (
	xrand "golang.org/x/exp/rand"

	"github.com/tmellor/mcsearch/mstate"
)

// ChanceExploration is the default ExplorationStrategy: a fixed-probability
// coin flip favoring exploration, independent of the iteration count.
type ChanceExploration struct {
	Chance float32
}

// NewChanceExploration returns a ChanceExploration using the package's
// default explore probability.
func NewChanceExploration() *ChanceExploration {
	return &ChanceExploration{Chance: mstate.DefaultExploreChance}
}

func (c *ChanceExploration) Explore(rng *xrand.Rand, iteration int) bool {
	return rng.Float32() < c.Chance
}
