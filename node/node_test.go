package node_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmellor/mcsearch/internal/tictactoe"
	"github.com/tmellor/mcsearch/node"
)

func newTree() *node.Tree[*tictactoe.Board, tictactoe.Move] {
	return node.NewTree[*tictactoe.Board, tictactoe.Move]()
}

func TestNewTreeHasChildlessRoot(t *testing.T) {
	tr := newTree()
	root := tr.At(tr.Root())
	assert.True(t, root.IsRoot())
	assert.Empty(t, root.Children)
	assert.Nil(t, root.Payload)
}

func TestNewChildAppendsAndLinks(t *testing.T) {
	tr := newTree()
	root := tr.Root()
	h := tr.NewChild(root, tictactoe.Move{Cell: 4, Mover: 0})

	assert.Equal(t, root, tr.At(h).Parent)
	assert.Contains(t, tr.At(root).Children, h)
	assert.Equal(t, 4, tr.At(h).Payload.Cell)
	assert.Equal(t, 1, tr.Depth(h))
}

func TestVisitAccumulatesAndDirties(t *testing.T) {
	tr := newTree()
	root := tr.Root()
	h := tr.NewChild(root, tictactoe.Move{Cell: 0, Mover: 0})

	tr.Visit(h, 1.0)
	tr.Visit(h, -0.5)

	got := tr.At(h)
	assert.Equal(t, 2, got.Visits)
	assert.InDelta(t, 0.5, got.Score, 1e-9)
	assert.True(t, got.Dirty, "a visited node's own dirty flag must be set")
}

func TestCalculateScoreCachesUntilNextVisit(t *testing.T) {
	tr := newTree()
	h := tr.NewChild(tr.Root(), tictactoe.Move{Cell: 0, Mover: 0})
	tr.Visit(h, 2)

	calls := 0
	eval := func(n *node.Node[*tictactoe.Board, tictactoe.Move]) float64 {
		calls++
		return n.Score
	}

	first := tr.CalculateScore(h, eval)
	assert.InDelta(t, 2, first, 1e-9)
	assert.Equal(t, 1, calls)
	assert.False(t, tr.At(h).Dirty)

	second := tr.CalculateScore(h, eval)
	assert.InDelta(t, 2, second, 1e-9)
	assert.Equal(t, 1, calls, "calculate_score must return the cached value without re-evaluating when not dirty")

	tr.Visit(h, 1)
	tr.CalculateScore(h, eval)
	assert.Equal(t, 2, calls, "a visit must force the next calculate_score to recompute")
}

func TestCalculateScoreTracksMinMax(t *testing.T) {
	tr := newTree()
	root := tr.Root()
	a := tr.NewChild(root, tictactoe.Move{Cell: 0, Mover: 0})
	b := tr.NewChild(root, tictactoe.Move{Cell: 1, Mover: 0})

	tr.Visit(a, 1)
	tr.Visit(b, 3)

	eval := func(n *node.Node[*tictactoe.Board, tictactoe.Move]) float64 { return n.Score }
	tr.CalculateScore(a, eval)
	tr.CalculateScore(b, eval)

	assert.InDelta(t, 1, tr.At(root).MinChild, 1e-9)
	assert.InDelta(t, 3, tr.At(root).MaxChild, 1e-9)
	assert.False(t, tr.At(a).Dirty)
	assert.False(t, tr.At(b).Dirty)
}

func TestContentHashDependsOnActionChain(t *testing.T) {
	tr := newTree()
	root := tr.Root()
	a := tr.NewChild(root, tictactoe.Move{Cell: 0, Mover: 0})
	b := tr.NewChild(root, tictactoe.Move{Cell: 1, Mover: 0})

	assert.NotEqual(t, tr.ContentHash(a), tr.ContentHash(b))
	assert.Equal(t, tr.ContentHash(a), tr.ContentHash(a))
}

func TestRebaseClearsNewRootPayloadAndKeepsStats(t *testing.T) {
	tr := newTree()
	root := tr.Root()
	child := tr.NewChild(root, tictactoe.Move{Cell: 4, Mover: 0})
	grandchild := tr.NewChild(child, tictactoe.Move{Cell: 0, Mover: 1})
	tr.Visit(child, 2)
	tr.Visit(grandchild, 1)

	nt := tr.Rebase(child)

	newRoot := nt.At(nt.Root())
	require.Nil(t, newRoot.Payload)
	assert.Equal(t, 1, newRoot.Visits)
	require.Len(t, newRoot.Children, 1)

	newGrandchild := nt.At(newRoot.Children[0])
	assert.Equal(t, 0, newGrandchild.Payload.Cell)
	assert.Equal(t, 1, newGrandchild.Visits)
}
