package gods

import (
	"testing"

	"github.com/jpricey/santorini-core/internal/board"
)

func newHydraState(b board.BoardState) *GameState {
	base := Hydra.BaseHashP1 ^ Mortal.BaseHashP2
	b.RecalculateInternals(base)
	return &GameState{Board: b, Gods: [2]*StaticGod{&Hydra, &Mortal}}
}

func TestHydraGeneratesBothAddAndRemoveOptions(t *testing.T) {
	b := board.BoardState{CurrentPlayer: board.PlayerOne}
	b.Workers[board.PlayerOne] = board.AsMask(board.A1).With(board.A3).With(board.A5)
	b.Workers[board.PlayerTwo] = board.AsMask(board.E5)
	state := newHydraState(b)

	moves := hydraGenerate(state, board.PlayerOne, IncludeScore, board.Empty)
	sawAdd, sawRemove := false, false
	for _, sm := range moves {
		if hydraIsAdd(sm.Action) {
			sawAdd = true
		} else {
			sawRemove = true
		}
	}
	if !sawAdd {
		t.Error("expected at least one worker-adding move")
	}
	if !sawRemove {
		t.Error("expected at least one worker-removing move")
	}
}

func TestHydraApplyAddGrowsWorkerCount(t *testing.T) {
	b := board.BoardState{CurrentPlayer: board.PlayerOne}
	b.Workers[board.PlayerOne] = board.AsMask(board.A1).With(board.A3)
	b.Workers[board.PlayerTwo] = board.AsMask(board.E5)
	state := newHydraState(b)

	before := state.Board.Workers[board.PlayerOne].PopCount()
	move := board.NewMove(board.A1, board.A2, board.B1, hydraIsAddBit|board.Move(board.B2)<<hydraSpecialSqOffset, false)
	hydraApply(state, board.PlayerOne, move, &Mortal)

	after := state.Board.Workers[board.PlayerOne].PopCount()
	if after != before+1 {
		t.Fatalf("worker count = %d, want %d", after, before+1)
	}
	if state.Board.GetWorkerAt(board.B2) == nil {
		t.Fatal("expected a new worker at B2")
	}
}

func TestHydraApplyRemoveShrinksWorkerCount(t *testing.T) {
	b := board.BoardState{CurrentPlayer: board.PlayerOne}
	b.Workers[board.PlayerOne] = board.AsMask(board.A1).With(board.A3).With(board.A5)
	b.Workers[board.PlayerTwo] = board.AsMask(board.E5)
	state := newHydraState(b)

	before := state.Board.Workers[board.PlayerOne].PopCount()
	move := board.NewMove(board.A1, board.A2, board.B1, board.Move(board.A3)<<hydraSpecialSqOffset, false)
	hydraApply(state, board.PlayerOne, move, &Mortal)

	after := state.Board.Workers[board.PlayerOne].PopCount()
	if after != before-1 {
		t.Fatalf("worker count = %d, want %d", after, before-1)
	}
	if state.Board.GetWorkerAt(board.A3) != nil {
		t.Fatal("A3 should have been removed")
	}
}

func TestHydraNoRemovalOptionWithOnlyOneWorkerLeft(t *testing.T) {
	b := board.BoardState{CurrentPlayer: board.PlayerOne}
	b.Workers[board.PlayerOne] = board.AsMask(board.A1)
	b.Workers[board.PlayerTwo] = board.AsMask(board.E5)
	state := newHydraState(b)

	moves := hydraGenerate(state, board.PlayerOne, IncludeScore, board.Empty)
	for _, sm := range moves {
		if !hydraIsAdd(sm.Action) {
			t.Errorf("removal should never leave zero workers: got removal move %s", sm.Action)
		}
	}
}
