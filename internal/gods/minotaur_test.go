package gods

import (
	"testing"

	"github.com/jpricey/santorini-core/internal/board"
)

func newMinotaurState(b board.BoardState) *GameState {
	base := Minotaur.BaseHashP1 ^ Mortal.BaseHashP2
	b.RecalculateInternals(base)
	return &GameState{Board: b, Gods: [2]*StaticGod{&Minotaur, &Mortal}}
}

func TestMinotaurGeneratesPushWhenBehindSquareEmpty(t *testing.T) {
	b := board.BoardState{CurrentPlayer: board.PlayerOne}
	b.Workers[board.PlayerOne] = board.AsMask(board.B2)
	b.Workers[board.PlayerTwo] = board.AsMask(board.C2)
	state := newMinotaurState(b)

	moves := minotaurGenerate(state, board.PlayerOne, IncludeScore, board.Empty)
	found := false
	for _, sm := range moves {
		if sm.Action.From() == board.B2 && sm.Action.To() == board.C2 {
			found = true
			if !minotaurIsPush(sm.Action) {
				t.Error("move onto an opponent worker should be flagged as a push")
			}
			if minotaurPushSquare(sm.Action) != board.D2 {
				t.Errorf("push square = %s, want D2", minotaurPushSquare(sm.Action))
			}
		}
	}
	if !found {
		t.Fatal("expected a push move from B2 onto C2")
	}
}

func TestMinotaurCannotPushWithNoRoomBehind(t *testing.T) {
	b := board.BoardState{CurrentPlayer: board.PlayerOne}
	b.Workers[board.PlayerOne] = board.AsMask(board.D2)
	b.Workers[board.PlayerTwo] = board.AsMask(board.E2)
	state := newMinotaurState(b)

	moves := minotaurGenerate(state, board.PlayerOne, IncludeScore, board.Empty)
	for _, sm := range moves {
		if sm.Action.To() == board.E2 {
			t.Errorf("push off the edge of the board should not be generated, got %s", sm.Action)
		}
	}
}

func TestMinotaurCannotPushIntoOccupiedSquare(t *testing.T) {
	b := board.BoardState{CurrentPlayer: board.PlayerOne}
	b.Workers[board.PlayerOne] = board.AsMask(board.B2).With(board.D2)
	b.Workers[board.PlayerTwo] = board.AsMask(board.C2)
	state := newMinotaurState(b)

	moves := minotaurGenerate(state, board.PlayerOne, IncludeScore, board.Empty)
	for _, sm := range moves {
		if sm.Action.From() == board.B2 && sm.Action.To() == board.C2 {
			t.Errorf("push into an occupied landing square should not be generated, got %s", sm.Action)
		}
	}
}

func TestMinotaurApplyMovesDisplacedWorker(t *testing.T) {
	b := board.BoardState{CurrentPlayer: board.PlayerOne}
	b.Workers[board.PlayerOne] = board.AsMask(board.B2)
	b.Workers[board.PlayerTwo] = board.AsMask(board.C2)
	state := newMinotaurState(b)

	payload := board.Move(board.D2)<<minotaurPushSquareOffset | minotaurIsPushBit
	move := board.NewMove(board.B2, board.C2, board.A1, payload, false)
	minotaurApply(state, board.PlayerOne, move, &Mortal)

	if state.Board.GetWorkerAt(board.C2) == nil {
		t.Fatal("mover should now occupy C2")
	}
	if p := state.Board.GetWorkerAt(board.D2); p == nil || *p != board.PlayerTwo {
		t.Fatal("displaced worker should now occupy D2")
	}
}
