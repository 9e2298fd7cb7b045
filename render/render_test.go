package render_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmellor/mcsearch/internal/tictactoe"
	"github.com/tmellor/mcsearch/node"
	"github.com/tmellor/mcsearch/render"
)

func TestWriteDOTIncludesEveryNode(t *testing.T) {
	tr := node.NewTree[*tictactoe.Board, tictactoe.Move]()
	root := tr.Root()
	child := tr.NewChild(root, tictactoe.Move{Cell: 4, Mover: 0})
	tr.NewChild(child, tictactoe.Move{Cell: 0, Mover: 1})
	tr.Visit(child, 1)

	var buf strings.Builder
	err := render.WriteDOT(&buf, tr, root, render.DefaultLabel[*tictactoe.Board, tictactoe.Move])
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "n0")
	assert.Contains(t, out, "n1")
	assert.Contains(t, out, "n2")
	assert.Contains(t, out, "search")
}

func TestDefaultLabelReportsVisitsAndMean(t *testing.T) {
	tr := node.NewTree[*tictactoe.Board, tictactoe.Move]()
	h := tr.NewChild(tr.Root(), tictactoe.Move{Cell: 0, Mover: 0})
	tr.Visit(h, 2)
	tr.Visit(h, 4)

	label := render.DefaultLabel(tr.At(h))
	assert.Contains(t, label, "visits=2")
	assert.Contains(t, label, "3.000")
}
