package mstate_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmellor/mcsearch/mstate"
)

func TestFNV1Deterministic(t *testing.T) {
	h1 := mstate.FNV1(mstate.HashOffsetBasis, 1, 2, 3)
	h2 := mstate.FNV1(mstate.HashOffsetBasis, 1, 2, 3)
	assert.Equal(t, h1, h2)

	h3 := mstate.FNV1(mstate.HashOffsetBasis, 3, 2, 1)
	assert.NotEqual(t, h1, h3, "word order must affect the hash")
}

func TestUCBUnvisitedIsInfinite(t *testing.T) {
	got := mstate.UCB(0, 0, 10, mstate.DefaultExplorationConstant)
	assert.True(t, math.IsInf(got, 1))
}

func TestUCBHigherMeanWinsAtEqualVisits(t *testing.T) {
	lo := mstate.UCB(1, 10, 40, mstate.DefaultExplorationConstant)
	hi := mstate.UCB(8, 10, 40, mstate.DefaultExplorationConstant)
	assert.Greater(t, hi, lo)
}

func TestUCBExplorationShrinksWithVisits(t *testing.T) {
	fewVisits := mstate.UCB(5, 2, 100, mstate.DefaultExplorationConstant)
	manyVisits := mstate.UCB(5, 50, 100, mstate.DefaultExplorationConstant)
	// Same mean (2.5), but the less-visited child should score higher due
	// to its larger exploration bonus.
	assert.Greater(t, fewVisits, manyVisits)
}

func TestSoftmaxSumsToOne(t *testing.T) {
	out := mstate.Softmax([]float32{1, 2, 3})
	require.Len(t, out, 3)
	var sum float32
	for _, v := range out {
		sum += v
	}
	assert.InDelta(t, 1.0, float64(sum), 1e-5)
}

func TestSoftmaxEmpty(t *testing.T) {
	assert.Nil(t, mstate.Softmax(nil))
}

func TestEntropyUniformIsMaximal(t *testing.T) {
	uniform := mstate.Entropy([]float32{0.25, 0.25, 0.25, 0.25})
	skewed := mstate.Entropy([]float32{0.97, 0.01, 0.01, 0.01})
	assert.Greater(t, uniform, skewed)
}

func TestNormalize(t *testing.T) {
	w := []float32{1, 1, 2}
	mstate.Normalize(w)
	assert.InDelta(t, 0.25, float64(w[0]), 1e-6)
	assert.InDelta(t, 0.25, float64(w[1]), 1e-6)
	assert.InDelta(t, 0.5, float64(w[2]), 1e-6)
}

func TestNormalizeZeroSumUnchanged(t *testing.T) {
	w := []float32{0, 0, 0}
	mstate.Normalize(w)
	assert.Equal(t, []float32{0, 0, 0}, w)
}
