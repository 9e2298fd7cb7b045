package nmcts_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmellor/mcsearch/internal/tictactoe"
	"github.com/tmellor/mcsearch/nmcts"
	"github.com/tmellor/mcsearch/policy"
	"github.com/tmellor/mcsearch/search"
)

func strategies() search.Strategies[*tictactoe.Board, tictactoe.Move, tictactoe.Move] {
	return search.Strategies[*tictactoe.Board, tictactoe.Move, tictactoe.Move]{
		Goal:        tictactoe.TerminalGoal{},
		Selection:   policy.NewUCBSelection[*tictactoe.Board, tictactoe.Move](),
		Expansion:   policy.NewMinTExpansion[*tictactoe.Board, tictactoe.Move](),
		Playout:     tictactoe.RandomPlayout{},
		BackProp:    policy.NewEvaluateOnceAndColour[*tictactoe.Board, tictactoe.Move](),
		FinalSelect: policy.NewBestRatioFinalSelection[*tictactoe.Board, tictactoe.Move](),
		StateEval:   policy.NewWinLossDraw[*tictactoe.Board, tictactoe.Move](),
		Solution:    policy.NewActionSolution[*tictactoe.Board, tictactoe.Move](),
	}
}

func TestNMCTSSearchSucceeds(t *testing.T) {
	board := tictactoe.NewBoard()
	ctx := search.NewContext[*tictactoe.Board, tictactoe.Move, tictactoe.Move](
		board, 0, tictactoe.Logic{}, tictactoe.Cloner{}, strategies(), 5,
	).WithIterations(150)

	cfg := nmcts.Config[*tictactoe.Board, tictactoe.Move]{
		Exploration:  policy.NewChanceExploration(),
		Sampling:     tictactoe.RandomSampling{},
		PolicyGlobal: 0.1,
	}

	err := nmcts.Search(ctx, cfg)
	require.NoError(t, err)
	assert.Equal(t, search.Success, ctx.Status)
	assert.Equal(t, tictactoe.Empty, board.Cells[ctx.Solution.Cell])
}

// TestS5NMCTSParity is scenario S5 from spec.md section 8: NMCTS on S1's
// board, with PolicyGlobal=0 and explore_chance=0.5, should also find the
// diagonal-completing win for player 0.
func TestS5NMCTSParity(t *testing.T) {
	board := tictactoe.ParseBoard("X-O-XO---", 0)
	ctx := search.NewContext[*tictactoe.Board, tictactoe.Move, tictactoe.Move](
		board, board.ActivePlayer(), tictactoe.Logic{}, tictactoe.Cloner{}, strategies(), 1,
	).WithIterations(10_000)
	cfg := nmcts.Config[*tictactoe.Board, tictactoe.Move]{
		Exploration:  &policy.ChanceExploration{Chance: 0.5},
		Sampling:     tictactoe.RandomSampling{},
		PolicyGlobal: 0,
	}

	require.NoError(t, nmcts.Search(ctx, cfg))
	end := tictactoe.Logic{}.Apply(ctx.Env, board, ctx.Solution)
	assert.True(t, end.IsTerminal())
	assert.Equal(t, 0, end.Winner())
}

func TestNMCTSSearchOnTerminalBoardFails(t *testing.T) {
	board := tictactoe.NewBoard()
	board.Cells = [9]tictactoe.Mark{
		tictactoe.MarkX, tictactoe.MarkX, tictactoe.MarkX,
		tictactoe.MarkO, tictactoe.MarkO, tictactoe.Empty,
		tictactoe.Empty, tictactoe.Empty, tictactoe.Empty,
	}
	ctx := search.NewContext[*tictactoe.Board, tictactoe.Move, tictactoe.Move](
		board, 0, tictactoe.Logic{}, tictactoe.Cloner{}, strategies(), 1,
	).WithIterations(5)
	cfg := nmcts.Config[*tictactoe.Board, tictactoe.Move]{
		Exploration:  policy.NewChanceExploration(),
		Sampling:     tictactoe.RandomSampling{},
		PolicyGlobal: 0.1,
	}

	err := nmcts.Search(ctx, cfg)
	assert.Error(t, err)
	assert.Equal(t, search.Failure, ctx.Status)
}
