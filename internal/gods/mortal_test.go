package gods

import (
	"testing"

	"github.com/jpricey/santorini-core/internal/board"
)

func newMortalState(b board.BoardState) *GameState {
	b.RecalculateInternals(Mortal.BaseHashP1 ^ Mortal.BaseHashP2)
	return &GameState{Board: b, Gods: [2]*StaticGod{&Mortal, &Mortal}}
}

func TestMortalGenerateStartingPosition(t *testing.T) {
	state := newMortalState(board.NewBasicState())
	moves := mortalGenerate(state, board.PlayerOne, MateOnly|IncludeScore, board.Empty)
	if len(moves) != 0 {
		t.Fatalf("no winning moves should exist from the starting position, got %d", len(moves))
	}
	all := mortalGenerate(state, board.PlayerOne, IncludeScore, board.Empty)
	if len(all) == 0 {
		t.Fatal("expected at least one legal move from the starting position")
	}
}

func TestMortalGenerateWinningClimb(t *testing.T) {
	b := board.BoardState{CurrentPlayer: board.PlayerOne}
	b.Workers[board.PlayerOne] = board.AsMask(board.C2)
	b.Workers[board.PlayerTwo] = board.AsMask(board.A5)
	b.BuildUp(board.C2)
	b.BuildUp(board.C2) // the worker stands at height 2
	b.BuildUp(board.C3)
	b.BuildUp(board.C3)
	b.BuildUp(board.C3)
	state := newMortalState(b)

	winning := mortalGenerate(state, board.PlayerOne, MateOnly, board.Empty)
	if len(winning) == 0 {
		t.Fatal("expected a winning move from level 2 to level 3")
	}
	for _, sm := range winning {
		if !sm.Action.IsWinning() {
			t.Errorf("move %s returned under MateOnly is not flagged winning", sm.Action)
		}
		if sm.Action.From() != board.C2 || sm.Action.To() != board.C3 {
			t.Errorf("unexpected winning move %s", sm.Action)
		}
	}
}

func TestMortalApplyWinningSetsWinner(t *testing.T) {
	b := board.BoardState{CurrentPlayer: board.PlayerOne}
	b.Workers[board.PlayerOne] = board.AsMask(board.C2)
	b.Workers[board.PlayerTwo] = board.AsMask(board.A5)
	b.BuildUp(board.C2)
	b.BuildUp(board.C2)
	b.BuildUp(board.C3)
	b.BuildUp(board.C3)
	b.BuildUp(board.C3)
	state := newMortalState(b)

	move := board.NewWinningMove(board.C2, board.C3, 0)
	mortalApply(state, board.PlayerOne, move, &Mortal)

	if w := state.Board.GetWinner(); w == nil || *w != board.PlayerOne {
		t.Fatal("expected PlayerOne to be recorded as winner")
	}
	if state.Board.GetWorkerAt(board.C3) == nil {
		t.Fatal("worker should have moved to C3")
	}
}

func TestMortalGenerateNeverClimbsMoreThanOneLevel(t *testing.T) {
	b := board.BoardState{CurrentPlayer: board.PlayerOne}
	b.Workers[board.PlayerOne] = board.AsMask(board.C2)
	b.Workers[board.PlayerTwo] = board.AsMask(board.A5)
	b.DomeUp(board.C3) // height 4, unreachable regardless
	b.BuildUp(board.B2)
	b.BuildUp(board.B2)
	state := newMortalState(b)

	moves := mortalGenerate(state, board.PlayerOne, IncludeScore, board.Empty)
	for _, sm := range moves {
		fromH := 0
		toH := state.Board.GetHeight(sm.Action.To())
		if toH > fromH+1 && !sm.Action.IsWinning() {
			t.Errorf("move %s climbs more than one level", sm.Action)
		}
	}
}

func TestMortalBlockerBoardIsMoveMask(t *testing.T) {
	m := board.NewMove(board.A1, board.B2, board.NoSquare, 0, false)
	if mortalBlockerBoard(m) != m.MoveMask() {
		t.Fatal("mortalBlockerBoard should equal the move's MoveMask")
	}
}
