package mcts_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmellor/mcsearch/internal/tictactoe"
	"github.com/tmellor/mcsearch/mcts"
	"github.com/tmellor/mcsearch/mstate"
	"github.com/tmellor/mcsearch/policy"
	"github.com/tmellor/mcsearch/search"
)

func mctsStrategies() search.Strategies[*tictactoe.Board, tictactoe.Move, tictactoe.Move] {
	return search.Strategies[*tictactoe.Board, tictactoe.Move, tictactoe.Move]{
		Goal:        tictactoe.TerminalGoal{},
		Selection:   &policy.UCBSelection[*tictactoe.Board, tictactoe.Move]{C: 1, T: 2},
		Expansion:   &policy.MinTExpansion[*tictactoe.Board, tictactoe.Move]{T: 1},
		Playout:     tictactoe.RandomPlayout{},
		BackProp:    policy.NewEvaluateOnceAndColour[*tictactoe.Board, tictactoe.Move](),
		FinalSelect: policy.NewBestRatioFinalSelection[*tictactoe.Board, tictactoe.Move](),
		StateEval:   policy.NewWinLossDraw[*tictactoe.Board, tictactoe.Move](),
		Solution:    policy.NewActionSolution[*tictactoe.Board, tictactoe.Move](),
	}
}

func newContext(iterations int) *search.Context[*tictactoe.Board, tictactoe.Move, tictactoe.Move] {
	return newContextFrom(tictactoe.NewBoard(), iterations, 123)
}

func newContextFrom(board *tictactoe.Board, iterations int, seed uint64) *search.Context[*tictactoe.Board, tictactoe.Move, tictactoe.Move] {
	return search.NewContext[*tictactoe.Board, tictactoe.Move, tictactoe.Move](
		board, board.ActivePlayer(), tictactoe.Logic{}, tictactoe.Cloner{}, mctsStrategies(), seed,
	).WithIterations(iterations)
}

// playToTerminalWithMCTS repeatedly lets MCTS recommend a move for the
// player to act and applies it, until the game ends, giving the final
// board that results from both sides following the planner's own
// recommendations. Used by the scenarios in spec.md section 8 that describe
// a full-game outcome rather than a single move.
func playToTerminalWithMCTS(t *testing.T, board *tictactoe.Board, iterations int) *tictactoe.Board {
	t.Helper()
	var seed uint64 = 1
	for i := 0; i < 9 && !board.IsTerminal(); i++ {
		ctx := newContextFrom(board, iterations, seed)
		require.NoError(t, mcts.Search(ctx))
		board = tictactoe.Logic{}.Apply(ctx.Env, board, ctx.Solution)
		seed++
	}
	return board
}

func TestMCTSSearchSucceedsAndPicksLegalMove(t *testing.T) {
	ctx := newContext(200)
	err := mcts.Search(ctx)
	require.NoError(t, err)
	assert.Equal(t, search.Success, ctx.Status)

	board := tictactoe.NewBoard()
	assert.Equal(t, tictactoe.Empty, board.Cells[ctx.Solution.Cell])
	assert.Equal(t, 0, ctx.Solution.Mover)
}

func TestMCTSSearchGrowsTree(t *testing.T) {
	ctx := newContext(200)
	require.NoError(t, mcts.Search(ctx))
	assert.Greater(t, len(ctx.Env.Tree.Nodes), 1)
}

func TestMCTSSearchOnAlreadyTerminalBoardFails(t *testing.T) {
	board := tictactoe.NewBoard()
	board.Cells = [9]tictactoe.Mark{
		tictactoe.MarkX, tictactoe.MarkX, tictactoe.MarkX,
		tictactoe.MarkO, tictactoe.MarkO, tictactoe.Empty,
		tictactoe.Empty, tictactoe.Empty, tictactoe.Empty,
	}
	strategies := search.Strategies[*tictactoe.Board, tictactoe.Move, tictactoe.Move]{
		Goal:        tictactoe.TerminalGoal{},
		Selection:   policy.NewUCBSelection[*tictactoe.Board, tictactoe.Move](),
		Expansion:   policy.NewMinTExpansion[*tictactoe.Board, tictactoe.Move](),
		Playout:     tictactoe.RandomPlayout{},
		BackProp:    policy.NewEvaluateOnceAndColour[*tictactoe.Board, tictactoe.Move](),
		FinalSelect: policy.NewBestRatioFinalSelection[*tictactoe.Board, tictactoe.Move](),
		StateEval:   policy.NewWinLossDraw[*tictactoe.Board, tictactoe.Move](),
		Solution:    policy.NewActionSolution[*tictactoe.Board, tictactoe.Move](),
	}
	ctx := search.NewContext[*tictactoe.Board, tictactoe.Move, tictactoe.Move](
		board, 0, tictactoe.Logic{}, tictactoe.Cloner{}, strategies, 1,
	).WithIterations(10)

	err := mcts.Search(ctx)
	assert.Error(t, err)
	assert.Equal(t, search.Failure, ctx.Status)
}

// TestS1ImmediateWinDetection is scenario S1 from spec.md section 8: X
// (player 0) has two marks on the main diagonal and should find the
// completing move at cell 8.
func TestS1ImmediateWinDetection(t *testing.T) {
	board := tictactoe.ParseBoard("X-O-XO---", 0)
	ctx := newContextFrom(board, 10_000, 1)
	require.NoError(t, mcts.Search(ctx))

	assert.Equal(t, 8, ctx.Solution.Cell)
	end := tictactoe.Logic{}.Apply(ctx.Env, board, ctx.Solution)
	assert.True(t, end.IsTerminal())
	assert.Equal(t, 0, end.Winner())
}

// TestS2LossAvoidanceEndsInDraw is scenario S2 from spec.md section 8: O
// (player 1) must block X's threat on the right column (cells 2, 5, 8);
// optimal play from here ends in a draw.
func TestS2LossAvoidanceEndsInDraw(t *testing.T) {
	board := tictactoe.ParseBoard("--X-OX---", 1)
	end := playToTerminalWithMCTS(t, board, 10_000)
	assert.Equal(t, mstate.Draw, end.Winner())
}

// TestS3OptimalPlayIsADraw is scenario S3 from spec.md section 8: optimal
// play from an empty board is a draw.
func TestS3OptimalPlayIsADraw(t *testing.T) {
	board := tictactoe.NewBoard()
	end := playToTerminalWithMCTS(t, board, 10_000)
	assert.Equal(t, mstate.Draw, end.Winner())
}
