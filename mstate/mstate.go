// Package mstate defines the State and Action contracts every planner in
// this module is built against, plus the small set of numeric primitives
// (hashing, UCB, softmax) shared by the concrete policies and game models
// that plug into a search.Context.
package mstate

import (
	"github.com/chewxy/math32"
)

// State is a position in a two-player sequential decision problem. P is
// self-referential so Clone and the rest of the planning core can work with
// concrete value types without resorting to interface{} or reflection.
type State[P any] interface {
	// Clone returns an independent copy; mutating the result must never
	// affect the receiver.
	Clone() P

	// ActivePlayer returns the id of the player to move. Conventionally 0 or
	// 1 for a two-player game.
	ActivePlayer() int

	// Hash returns a position fingerprint, used for transposition-style
	// bookkeeping (e.g. NMCTS's global arm table). Equal positions must
	// hash equally; unequal positions should hash unequally with high
	// probability.
	Hash() uint64

	// IsTerminal reports whether the game has ended in this position.
	IsTerminal() bool

	// Winner returns the winning player's id, or Draw. Only meaningful when
	// IsTerminal reports true.
	Winner() int
}

// Action is a move applicable to a State. A is self-referential for the same
// reason P is on State.
type Action[P any] interface {
	// Player returns the id of the player making this move.
	Player() int

	// Hash fingerprints the action, used as the key into NMCTS's per-state
	// local-arm table and for node de-duplication.
	Hash() uint64

	// Equal reports whether two actions denote the same move.
	Equal(other Action[P]) bool
}

// Draw is the sentinel player id returned by State.Winner for a drawn game.
const Draw = -1

// NoLimitOnIterations disables the iteration budget on a search.Context.
const NoLimitOnIterations = -1

// HashOffsetBasis and HashFNVPrime are the 32-bit FNV-1 constants, widened
// to 64 bits for accumulation. They intentionally do not match the 64-bit
// canonical constants in the standard library's hash/fnv, so FNV1 below is
// hand-rolled rather than backed by hash/fnv.
const (
	HashOffsetBasis uint64 = 2166136261
	HashFNVPrime    uint64 = 16777619
)

// FNV1 folds zero or more 64-bit words into seed using FNV-1 (multiply then
// xor, per-word). Callers combining several hashed fields should thread the
// running value through successive calls, seeding the first with
// HashOffsetBasis.
func FNV1(seed uint64, words ...uint64) uint64 {
	h := seed
	for _, w := range words {
		h *= HashFNVPrime
		h ^= w
	}
	return h
}

// DoubleEqualityTolerance is the absolute tolerance used when comparing
// accumulated float64 scores for equality (e.g. final-node tie detection).
const DoubleEqualityTolerance = 1e-7

// ucbEpsilon guards the UCB denominator against division by zero for an
// unvisited child.
const ucbEpsilon = 1e-12

// DefaultExploreChance is the default probability an ExplorationStrategy
// coin-flip favors exploration over exploitation.
const DefaultExploreChance float32 = 0.5

// DefaultExplorationConstant is the default UCB1 exploration constant,
// 1/sqrt(2), the classic choice for rewards normalised to [-1, 1].
const DefaultExplorationConstant float32 = 0.70710678

// DefaultMinVisitsThreshold is the default number of visits a node must
// accrue, per child, before its children are treated as fully explored and
// the min-T sorted-selection maintenance kicks in.
const DefaultMinVisitsThreshold = 20

// UCB computes the UCB1 selection score of a child with the given
// accumulated score and visit count, given its parent's visit count and the
// exploration constant c. A child with zero visits returns +Inf so it is
// always selected first.
func UCB(score float64, visits int, parentVisits int, c float32) float64 {
	if visits == 0 {
		return float64(math32.Inf(1))
	}
	mean := score / float64(visits)
	exploration := 2 * float64(c) * math32Sqrt(float32(ln(float64(parentVisits))/(float64(visits)+ucbEpsilon)))
	return mean + exploration
}

func math32Sqrt(v float32) float64 {
	return float64(math32.Sqrt(v))
}

func ln(v float64) float64 {
	return float64(math32.Log(float32(v)))
}

// Softmax returns a normalised probability distribution over logits,
// computed in float32 to match the rest of this module's entropy/weighting
// helpers.
func Softmax(logits []float32) []float32 {
	if len(logits) == 0 {
		return nil
	}
	max := logits[0]
	for _, v := range logits[1:] {
		if v > max {
			max = v
		}
	}
	out := make([]float32, len(logits))
	var sum float32
	for i, v := range logits {
		e := math32.Exp(v - max)
		out[i] = e
		sum += e
	}
	if sum == 0 {
		return out
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

// Entropy computes the Shannon entropy (base e) of a probability
// distribution, ignoring zero-probability entries.
func Entropy(probs []float32) float32 {
	var h float32
	for _, p := range probs {
		if p <= 0 {
			continue
		}
		h -= p * math32.Log(p)
	}
	return h
}

// Normalize rescales weights in place so they sum to 1. Weights that sum to
// zero are left unchanged.
func Normalize(weights []float32) {
	var sum float32
	for _, w := range weights {
		sum += w
	}
	if sum == 0 {
		return
	}
	for i := range weights {
		weights[i] /= sum
	}
}
