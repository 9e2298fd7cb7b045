// Package tictactoe is a minimal 3x3 tic-tac-toe game model used only as a
// test fixture for the planners in mcts, flatmcs, nmcts and lsi. It is not
// imported by any core package.
package tictactoe

import (
	xrand "golang.org/x/exp/rand"

	"github.com/tmellor/mcsearch/mstate"
	"github.com/tmellor/mcsearch/position"
	"github.com/tmellor/mcsearch/search"
)

// Mark is the content of a single cell.
type Mark int8

const (
	Empty Mark = iota
	MarkX
	MarkO
)

// Board is a 3x3 tic-tac-toe position.
type Board struct {
	Cells  [9]Mark
	Active int // 0 = X to move, 1 = O to move
}

var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// NewBoard returns an empty board with X to move.
func NewBoard() *Board {
	return &Board{Active: 0}
}

// ParseBoard builds a Board from a 9-character string over {'X', 'O', '-'}
// read row-major (index 0 top-left, index 8 bottom-right), with active set
// to the player to move. Used to set up fixtures from the notation the
// planner scenarios are described in; panics on a malformed board string.
func ParseBoard(s string, active int) *Board {
	if len(s) != 9 {
		panic("tictactoe: ParseBoard requires a 9-character board string")
	}
	b := &Board{Active: active}
	for i, r := range s {
		switch r {
		case 'X':
			b.Cells[i] = MarkX
		case 'O':
			b.Cells[i] = MarkO
		case '-':
			b.Cells[i] = Empty
		default:
			panic("tictactoe: ParseBoard: invalid cell character " + string(r))
		}
	}
	return b
}

func markOf(player int) Mark {
	if player == 0 {
		return MarkX
	}
	return MarkO
}

func (b *Board) full() bool {
	for _, c := range b.Cells {
		if c == Empty {
			return false
		}
	}
	return true
}

func (b *Board) lineWinner() (int, bool) {
	for _, line := range lines {
		a, c2, c3 := b.Cells[line[0]], b.Cells[line[1]], b.Cells[line[2]]
		if a != Empty && a == c2 && c2 == c3 {
			if a == MarkX {
				return 0, true
			}
			return 1, true
		}
	}
	return 0, false
}

// Clone implements mstate.State.
func (b *Board) Clone() *Board {
	nb := *b
	return &nb
}

// ActivePlayer implements mstate.State.
func (b *Board) ActivePlayer() int { return b.Active }

// Hash implements mstate.State.
func (b *Board) Hash() uint64 {
	h := mstate.HashOffsetBasis
	for _, c := range b.Cells {
		h = mstate.FNV1(h, uint64(c))
	}
	return mstate.FNV1(h, uint64(b.Active))
}

// IsTerminal implements mstate.State.
func (b *Board) IsTerminal() bool {
	if _, ok := b.lineWinner(); ok {
		return true
	}
	return b.full()
}

// Winner implements mstate.State. Only meaningful when IsTerminal is true.
func (b *Board) Winner() int {
	if w, ok := b.lineWinner(); ok {
		return w
	}
	return mstate.Draw
}

// Move is a single cell placement.
type Move struct {
	Cell  int
	Mover int
}

// Player implements mstate.Action.
func (m Move) Player() int { return m.Mover }

// Hash implements mstate.Action.
func (m Move) Hash() uint64 {
	return mstate.FNV1(mstate.HashOffsetBasis, uint64(m.Cell), uint64(m.Mover))
}

// Equal implements mstate.Action.
func (m Move) Equal(other mstate.Action[*Board]) bool {
	o, ok := other.(Move)
	return ok && o.Cell == m.Cell && o.Mover == m.Mover
}

// Cloner implements search.Cloner[*Board].
type Cloner struct{}

func (Cloner) Clone(b *Board) *Board { return b.Clone() }

// Logic implements search.GameLogic[*Board, Move].
type Logic struct{}

func (Logic) Apply(env *search.Env[*Board, Move], s *Board, a Move) *Board {
	nb := s.Clone()
	nb.Cells[a.Cell] = markOf(a.Mover)
	nb.Active = 1 - a.Mover
	return nb
}

func (Logic) Expand(env *search.Env[*Board, Move], s *Board) position.Generator[Move] {
	var moves []Move
	if !s.IsTerminal() {
		for i, c := range s.Cells {
			if c == Empty {
				moves = append(moves, Move{Cell: i, Mover: s.Active})
			}
		}
	}
	return position.FromSlice(moves)
}

func (Logic) Done(env *search.Env[*Board, Move], s *Board) bool { return s.IsTerminal() }

func (Logic) Scores(s *Board) []float64 {
	if !s.IsTerminal() {
		return []float64{0, 0}
	}
	w := s.Winner()
	if w == mstate.Draw {
		return []float64{0, 0}
	}
	if w == 0 {
		return []float64{1, -1}
	}
	return []float64{-1, 1}
}

// TerminalGoal implements search.GoalStrategy[*Board, Move] by consulting
// exactly the game's own terminal test.
type TerminalGoal struct{}

func (TerminalGoal) Done(env *search.Env[*Board, Move], s *Board) bool { return s.IsTerminal() }

// RandomPlayout implements search.PlayoutStrategy[*Board, Move] via uniform
// random moves to a terminal position.
type RandomPlayout struct{}

func (RandomPlayout) Playout(env *search.Env[*Board, Move], s *Board) (*Board, error) {
	cur := s.Clone()
	for !cur.IsTerminal() {
		var empties []int
		for i, c := range cur.Cells {
			if c == Empty {
				empties = append(empties, i)
			}
		}
		idx := empties[env.RNG.Intn(len(empties))]
		cur.Cells[idx] = markOf(cur.Active)
		cur.Active = 1 - cur.Active
	}
	return cur, nil
}

// RandomSampling implements search.SamplingStrategy[*Board, Move].
type RandomSampling struct{}

func (RandomSampling) Sample(rng *xrand.Rand, s *Board) Move {
	var empties []int
	for i, c := range s.Cells {
		if c == Empty {
			empties = append(empties, i)
		}
	}
	cell := empties[rng.Intn(len(empties))]
	return Move{Cell: cell, Mover: s.Active}
}
