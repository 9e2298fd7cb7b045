package tictactoe

import (
	xrand "golang.org/x/exp/rand"

	"github.com/tmellor/mcsearch/lsi"
	"github.com/tmellor/mcsearch/search"
)

// sideInfo accumulates, across generation-phase playouts, the values
// observed for each cell a joint action placed a mark in. A single Oddment
// table keyed by cell index is the spec's "oddment table" for this game's
// one-dimensional joint action (a single cell choice); every Attribute call
// for a cell adds another weighted entry (the observed value plus one) under
// that cell's key, so the table's accumulated mass per key is that cell's
// total observed value plus the number of entries recorded for it.
type sideInfo struct {
	table *lsi.Oddment[int]
	built bool
}

// SideInformation implements search.SideInformationStrategy[*Board, Move].
type SideInformation struct{}

func (SideInformation) New() search.SideInformationAccumulator[*Board, Move] {
	return &sideInfo{table: lsi.NewOddment[int]()}
}

func (s *sideInfo) RandomJointAction(rng *xrand.Rand, state *Board) Move {
	var empties []int
	for i, c := range state.Cells {
		if c == Empty {
			empties = append(empties, i)
		}
	}
	cell := empties[rng.Intn(len(empties))]
	return Move{Cell: cell, Mover: state.Active}
}

func (s *sideInfo) Attribute(action Move, value float64) {
	// Oddment weights must stay non-negative; shift a [-1,1] value into
	// [0,2] so a loss still contributes a (small) nonzero weight instead of
	// collapsing the table to a uniform fallback.
	s.table.Add(action.Cell, value+1)
	s.built = false
}

func (s *sideInfo) recomputeIfNeeded() {
	if s.built {
		return
	}
	s.table.Recompute()
	s.built = true
}

// LSISampling implements search.LSISamplingStrategy[*Board, Move].
type LSISampling struct{}

// Sample draws a cell from the accumulated side information with
// probability proportional to its attributed mass, via Oddment.Sample;
// cells never attributed to are then never drawn. Only when the table is
// entirely empty (no generation-phase playouts, e.g. Ng of zero) does it
// fall back to a uniform draw over the empty cells.
func (LSISampling) Sample(rng *xrand.Rand, state *Board, side search.SideInformationAccumulator[*Board, Move]) Move {
	acc := side.(*sideInfo)
	acc.recomputeIfNeeded()

	if acc.table.Len() == 0 {
		var empties []int
		for i, c := range state.Cells {
			if c == Empty {
				empties = append(empties, i)
			}
		}
		return Move{Cell: empties[rng.Intn(len(empties))], Mover: state.Active}
	}
	return Move{Cell: acc.table.Sample(rng), Mover: state.Active}
}
