// Package node implements the search tree as an arena of handles: nodes
// live in a single growable slice and refer to each other by integer index
// rather than by pointer, following the "naughty"-handle arena pattern
// adapted from the pack's mcts/tree.go (originally used for a neural-scorer
// driven tree; here it backs a strategy-driven one).
package node

import (
	"github.com/tmellor/mcsearch/mstate"
	"github.com/tmellor/mcsearch/position"
)

// Handle identifies a node within a Tree's arena. A Tree's root is always
// handle 0; NoHandle marks the absence of a node (e.g. a root's
// Parent).
type Handle int32

// NoHandle is the sentinel Handle denoting "no node".
const NoHandle Handle = -1

// Node is one vertex of a search tree. The root node always has a nil
// Payload; every other node's Payload is the action applied to its parent's
// state to reach it.
type Node[P mstate.State[P], A mstate.Action[P]] struct {
	Parent   Handle
	Children []Handle
	Payload  *A

	// Generator is created lazily, on first expansion attempt, by calling
	// GameLogic.Expand on the node's state. Nil until then.
	Generator position.Generator[A]

	// Score is the accumulated back-propagated value; Visits is the number
	// of times this node has been visited during back-propagation.
	Score  float64
	Visits int

	// Dirty marks this node's own EvaluatedScore cache as stale. Visit sets
	// it; CalculateScore recomputes EvaluatedScore and clears it.
	Dirty          bool
	EvaluatedScore float64

	// MinChild/MaxChild track the smallest/largest CalculateScore result
	// seen so far among this node's children. childBoundsSet guards their
	// first initialization, since a fresh node has no meaningful bounds yet.
	MinChild       float64
	MaxChild       float64
	childBoundsSet bool
}

// IsRoot reports whether n has no parent.
func (n *Node[P, A]) IsRoot() bool {
	return n.Parent == NoHandle
}

// IsFullyExpanded reports whether n's generator has been created and has no
// further actions to offer.
func (n *Node[P, A]) IsFullyExpanded() bool {
	return n.Generator != nil && !n.Generator.HasNext()
}

// DedupKey returns the hash of the node's payload action, or 0 for the root.
// Used by callers wanting a cheap transposition key without touching state.
func (n *Node[P, A]) DedupKey() uint64 {
	if n.Payload == nil {
		return 0
	}
	return (*n.Payload).Hash()
}

// Tree is an arena of Node values. The zero Tree is not usable; construct
// one with NewTree.
type Tree[P mstate.State[P], A mstate.Action[P]] struct {
	Nodes []Node[P, A]
}

// NewTree returns a Tree containing a single, childless root node.
func NewTree[P mstate.State[P], A mstate.Action[P]]() *Tree[P, A] {
	t := &Tree[P, A]{Nodes: make([]Node[P, A], 1)}
	t.Nodes[0].Parent = NoHandle
	t.Nodes[0].Dirty = true
	return t
}

// Root returns the tree's root handle, always 0.
func (t *Tree[P, A]) Root() Handle {
	return 0
}

// At returns a pointer to the node identified by h. The pointer is only
// valid until the next call that may grow the arena (NewChild); callers
// that need to hold a reference across such a call should re-fetch it.
func (t *Tree[P, A]) At(h Handle) *Node[P, A] {
	return &t.Nodes[h]
}

// NewChild appends a new node as a child of parent, carrying action as its
// payload, and returns its handle.
func (t *Tree[P, A]) NewChild(parent Handle, action A) Handle {
	t.Nodes = append(t.Nodes, Node[P, A]{Parent: parent, Dirty: true})
	h := Handle(len(t.Nodes) - 1)
	t.Nodes[h].Payload = &action
	t.Nodes[parent].Children = append(t.Nodes[parent].Children, h)
	return h
}

// Depth returns the number of edges between h and the root.
func (t *Tree[P, A]) Depth(h Handle) int {
	depth := 0
	for t.Nodes[h].Parent != NoHandle {
		h = t.Nodes[h].Parent
		depth++
	}
	return depth
}

// Visit records a single back-propagated observation of value delta at h,
// incrementing its visit count and marking its own EvaluatedScore cache
// dirty, so the next CalculateScore call on h recomputes rather than
// returning a stale cached value.
func (t *Tree[P, A]) Visit(h Handle, delta float64) {
	n := &t.Nodes[h]
	n.Score += delta
	n.Visits++
	n.Dirty = true
}

// CalculateScore returns h's evaluated score, recomputing via eval and
// refreshing the cache only if h is marked dirty; otherwise it returns the
// cached EvaluatedScore from the last recomputation. Either way, the
// returned value is folded into the parent's MinChild/MaxChild bounds.
// eval is typically a UCB or mean-score function over the node's own
// Score/Visits fields.
func (t *Tree[P, A]) CalculateScore(h Handle, eval func(*Node[P, A]) float64) float64 {
	n := &t.Nodes[h]
	var value float64
	if n.Dirty {
		value = eval(n)
		n.EvaluatedScore = value
		n.Dirty = false
	} else {
		value = n.EvaluatedScore
	}
	if n.Parent != NoHandle {
		p := &t.Nodes[n.Parent]
		if !p.childBoundsSet || value < p.MinChild {
			p.MinChild = value
		}
		if !p.childBoundsSet || value > p.MaxChild {
			p.MaxChild = value
		}
		p.childBoundsSet = true
	}
	return value
}

// ContentHash combines a node's ancestor action chain into a single
// transposition-style fingerprint, using mstate.FNV1.
func (t *Tree[P, A]) ContentHash(h Handle) uint64 {
	if h == NoHandle {
		return mstate.HashOffsetBasis
	}
	n := &t.Nodes[h]
	parentHash := t.ContentHash(n.Parent)
	if n.Payload == nil {
		return parentHash
	}
	return mstate.FNV1(parentHash, (*n.Payload).Hash())
}

// Rebase promotes newRoot to be the root of a freshly allocated tree,
// carrying over the statistics (Score, Visits, dirty bounds) of every node
// in its subtree but clearing the new root's Payload (a root's Payload is
// always nil) and dropping any cached Generator (expansion fringes are
// recomputed lazily on first use in the new tree). This is the mechanism
// behind search.Context.CarryRoot's warm-start across calls.
func (t *Tree[P, A]) Rebase(newRoot Handle) *Tree[P, A] {
	nt := &Tree[P, A]{}
	var copyNode func(h, parent Handle) Handle
	copyNode = func(h, parent Handle) Handle {
		old := t.Nodes[h]
		n := Node[P, A]{
			Parent:         parent,
			Score:          old.Score,
			Visits:         old.Visits,
			Dirty:          true,
			MinChild:       old.MinChild,
			MaxChild:       old.MaxChild,
			childBoundsSet: old.childBoundsSet,
		}
		if h != newRoot {
			n.Payload = old.Payload
		}
		nt.Nodes = append(nt.Nodes, n)
		nh := Handle(len(nt.Nodes) - 1)
		for _, c := range old.Children {
			ch := copyNode(c, nh)
			nt.Nodes[nh].Children = append(nt.Nodes[nh].Children, ch)
		}
		return nh
	}
	copyNode(newRoot, NoHandle)
	return nt
}
