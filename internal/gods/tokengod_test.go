package gods

import (
	"testing"

	"github.com/jpricey/santorini-core/internal/board"
)

// TestMinotaurPushUpdatesTrackedFemaleWorkerSquare exercises
// OppoWorkerXor's TracksFemaleWorker branch: pushing a TokenGod worker
// must move the tracked square along with it.
func TestMinotaurPushUpdatesTrackedFemaleWorkerSquare(t *testing.T) {
	b := board.BoardState{CurrentPlayer: board.PlayerOne}
	b.Workers[board.PlayerOne] = board.AsMask(board.B2)
	b.Workers[board.PlayerTwo] = board.AsMask(board.C2)
	b.GodData[board.PlayerTwo] = board.GodData(board.AsMask(board.C2))
	base := Minotaur.BaseHashP1 ^ TokenGod.BaseHashP2
	b.RecalculateInternals(base)
	state := &GameState{Board: b, Gods: [2]*StaticGod{&Minotaur, &TokenGod}}

	move := board.NewMove(board.B2, board.C2, board.A1, board.Move(board.D2)<<minotaurPushSquareOffset|minotaurIsPushBit, false)
	minotaurApply(state, board.PlayerOne, move, &TokenGod)

	want := board.GodData(board.AsMask(board.D2))
	if got := state.Board.GodData[board.PlayerTwo]; got != want {
		t.Errorf("tracked female-worker square = %v, want %v (followed the pushed worker)", got, want)
	}
}

func TestTokenGodApplyUpdatesOwnTrackedSquareOnMove(t *testing.T) {
	b := board.BoardState{CurrentPlayer: board.PlayerOne}
	b.Workers[board.PlayerOne] = board.AsMask(board.B2)
	b.Workers[board.PlayerTwo] = board.AsMask(board.E5)
	b.GodData[board.PlayerOne] = board.GodData(board.AsMask(board.B2))
	base := TokenGod.BaseHashP1 ^ Mortal.BaseHashP2
	b.RecalculateInternals(base)
	state := &GameState{Board: b, Gods: [2]*StaticGod{&TokenGod, &Mortal}}

	move := board.NewMove(board.B2, board.B3, board.A1, 0, false)
	tokenGodApply(state, board.PlayerOne, move, &Mortal)

	want := board.GodData(board.AsMask(board.B3))
	if got := state.Board.GodData[board.PlayerOne]; got != want {
		t.Errorf("tracked square after own move = %v, want %v", got, want)
	}
}

func TestTokenGodParseGodDataRoundTrip(t *testing.T) {
	data, err := TokenGod.ParseGodData("C2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := TokenGod.StringifyGodData(data); got != "C2" {
		t.Errorf("StringifyGodData round trip = %q, want %q", got, "C2")
	}
	if got := TokenGod.StringifyGodData(0); got != "" {
		t.Errorf("StringifyGodData(0) = %q, want empty string", got)
	}
}
