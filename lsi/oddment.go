// Package lsi implements Linear Side Information search (spec §4.7): a
// generation phase that attributes random-playout values to a per-search
// side-information accumulator, followed by a sequential-halving evaluation
// of joint actions sampled from it.
package lsi

import (
	"sort"

	"gonum.org/v1/gonum/floats"

	xrand "golang.org/x/exp/rand"
)

// Oddment is a discrete weighted sampler: keys are added with a weight, and
// Sample draws one key with probability proportional to its weight. The
// building block domain-specific SideInformationAccumulator implementations
// use per sub-decision (spec's "an oddment table per dimension").
//
// Weight normalisation (the total, used to scale a draw into the
// cumulative-bucket range) is delegated to gonum's floats package; the
// cumulative-bucket walk itself is hand-rolled because the recompute/sample
// split is a spec-mandated internal algorithm, not an opaque library
// sampler.
type Oddment[K comparable] struct {
	keys       []K
	weights    []float64
	cumulative []float64
	total      float64
}

// NewOddment returns an empty Oddment table.
func NewOddment[K comparable]() *Oddment[K] {
	return &Oddment[K]{}
}

// Add records a weighted key. Recompute must be called again before the
// next Sample for the new weight to take effect.
func (o *Oddment[K]) Add(key K, weight float64) {
	o.keys = append(o.keys, key)
	o.weights = append(o.weights, weight)
}

// Recompute rebuilds the cumulative buckets Sample walks.
func (o *Oddment[K]) Recompute() {
	o.total = floats.Sum(o.weights)
	o.cumulative = make([]float64, len(o.weights))
	var running float64
	for i, w := range o.weights {
		running += w
		o.cumulative[i] = running
	}
}

// Sample draws one key with probability proportional to its weight. Falls
// back to a uniform draw if every weight is non-positive. Panics-free on an
// empty table is not possible: callers must Add at least one key first.
func (o *Oddment[K]) Sample(rng *xrand.Rand) K {
	if o.total <= 0 {
		return o.keys[rng.Intn(len(o.keys))]
	}
	r := rng.Float64() * o.total
	idx := sort.Search(len(o.cumulative), func(i int) bool { return o.cumulative[i] >= r })
	if idx >= len(o.keys) {
		idx = len(o.keys) - 1
	}
	return o.keys[idx]
}

// Len returns the number of keys added so far.
func (o *Oddment[K]) Len() int {
	return len(o.keys)
}
