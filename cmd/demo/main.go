// Command demo runs one of the four planners against the tic-tac-toe test
// fixture and prints the recommended move, a minimal smoke test of the
// library wired together end to end.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"

	"github.com/tmellor/mcsearch/flatmcs"
	"github.com/tmellor/mcsearch/internal/tictactoe"
	"github.com/tmellor/mcsearch/lsi"
	"github.com/tmellor/mcsearch/mcts"
	"github.com/tmellor/mcsearch/nmcts"
	"github.com/tmellor/mcsearch/policy"
	"github.com/tmellor/mcsearch/render"
	"github.com/tmellor/mcsearch/search"
)

var (
	flagPlanner    = flag.String("planner", "mcts", "Planner to run: mcts, flatmcs, nmcts or lsi.")
	flagIterations = flag.Int("iterations", 2000, "Iteration budget.")
	flagSeed       = flag.Uint64("seed", 1, "RNG seed.")
	flagDOT        = flag.String("dot", "", "If set, write the finished search tree as a DOT file here.")
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

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	board := tictactoe.NewBoard()
	ctx := search.NewContext[*tictactoe.Board, tictactoe.Move, tictactoe.Move](
		board, board.ActivePlayer(), tictactoe.Logic{}, tictactoe.Cloner{}, strategies(), *flagSeed,
	).WithIterations(*flagIterations)

	start := time.Now()
	var err error
	switch *flagPlanner {
	case "mcts":
		err = mcts.Search(ctx)
	case "flatmcs":
		err = flatmcs.Search(ctx)
	case "nmcts":
		err = nmcts.Search(ctx, nmcts.Config[*tictactoe.Board, tictactoe.Move]{
			Exploration:  policy.NewChanceExploration(),
			Sampling:     tictactoe.RandomSampling{},
			PolicyGlobal: 0.1,
		})
	case "lsi":
		_, err = lsi.Search(ctx, lsi.Config[*tictactoe.Board, tictactoe.Move]{
			SideInformation: tictactoe.SideInformation{},
			Sampling:        tictactoe.LSISampling{},
			Ng:              *flagIterations,
			Ne:              64,
		})
	default:
		klog.Fatalf("unknown --planner=%q", *flagPlanner)
	}
	if err != nil {
		klog.Fatalf("search failed: %v", err)
	}

	fmt.Printf("%s recommends cell %d, in %s (%s iterations budgeted)\n",
		*flagPlanner, ctx.Solution.Cell, time.Since(start), humanize.Comma(int64(*flagIterations)))

	if *flagDOT != "" {
		f := must.M1(os.Create(*flagDOT))
		defer f.Close()
		must.M(render.WriteDOT(f, ctx.Env.Tree, ctx.Env.Tree.Root(), render.DefaultLabel[*tictactoe.Board, tictactoe.Move]))
	}
}
