package gods

import (
	"testing"

	"github.com/jpricey/santorini-core/internal/board"
)

func TestHermesIncludesDoubleMove(t *testing.T) {
	b := board.BoardState{CurrentPlayer: board.PlayerOne}
	b.Workers[board.PlayerOne] = board.AsMask(board.A1).With(board.E5)
	b.Workers[board.PlayerTwo] = board.AsMask(board.C3)
	base := Hermes.BaseHashP1 ^ Mortal.BaseHashP2
	b.RecalculateInternals(base)
	state := &GameState{Board: b, Gods: [2]*StaticGod{&Hermes, &Mortal}}

	moves := hermesGenerate(state, board.PlayerOne, IncludeScore, board.Empty)
	sawSingle, sawDouble := false, false
	for _, sm := range moves {
		if hermesIsDouble(sm.Action) {
			sawDouble = true
		} else {
			sawSingle = true
		}
	}
	if !sawSingle {
		t.Error("expected at least one ordinary single-worker move")
	}
	if !sawDouble {
		t.Error("expected at least one double-worker flood-fill move")
	}
}

func TestHermesApplyDoubleMovesBothWorkers(t *testing.T) {
	b := board.BoardState{CurrentPlayer: board.PlayerOne}
	b.Workers[board.PlayerOne] = board.AsMask(board.A1).With(board.E1)
	b.Workers[board.PlayerTwo] = board.AsMask(board.C3)
	base := Hermes.BaseHashP1 ^ Mortal.BaseHashP2
	b.RecalculateInternals(base)
	state := &GameState{Board: b, Gods: [2]*StaticGod{&Hermes, &Mortal}}

	payload := hermesDoubleBit | board.Move(board.E2)<<hermesSecondToOffset
	move := board.NewMove(board.A1, board.A2, board.B1, payload, false)
	hermesApply(state, board.PlayerOne, move, &Mortal)

	if state.Board.GetWorkerAt(board.A2) == nil {
		t.Error("worker A should have moved to A2")
	}
	if state.Board.GetWorkerAt(board.E2) == nil {
		t.Error("worker B should have moved to E2")
	}
	if state.Board.GetWorkerAt(board.A1) != nil || state.Board.GetWorkerAt(board.E1) != nil {
		t.Error("original squares should be vacated")
	}
}

func TestFloodFillSameHeightStopsAtHeightChange(t *testing.T) {
	var b board.BoardState
	b.BuildUp(board.B1)
	state := &GameState{Board: b, Gods: [2]*StaticGod{&Hermes, &Mortal}}
	reachable := floodFillSameHeight(state, board.A1, board.Empty)
	if reachable.Has(board.B1) {
		t.Error("flood fill should not cross into a different-height square")
	}
	if !reachable.Has(board.A2) {
		t.Error("flood fill should reach a same-height neighbor")
	}
}
