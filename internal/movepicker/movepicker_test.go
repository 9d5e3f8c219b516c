package movepicker

import (
	"testing"

	"github.com/jpricey/santorini-core/internal/board"
	"github.com/jpricey/santorini-core/internal/gods"
)

func newOrderState(t *testing.T) (*gods.GameState, *gods.StaticGod) {
	t.Helper()
	god := gods.Lookup(board.Mortal)
	if god == nil {
		t.Fatal("mortal not registered")
	}
	b := board.BoardState{CurrentPlayer: board.PlayerOne}
	b.Workers[board.PlayerOne] = board.AsMask(board.B2)
	b.Workers[board.PlayerTwo] = board.AsMask(board.D4)
	b.RecalculateInternals(god.BaseHashP1 ^ god.BaseHashP2)
	return &gods.GameState{Board: b, Gods: [2]*gods.StaticGod{god, god}}, god
}

func TestOrderPutsTTMoveFirst(t *testing.T) {
	state, god := newOrderState(t)
	moves := god.Generate(state, board.PlayerOne, gods.IncludeScore, board.Empty)
	if len(moves) < 2 {
		t.Fatal("need at least two candidate moves for this test")
	}
	ttMove := moves[len(moves)-1].Action

	o := NewOrderer()
	ordered := o.Order(state, god, moves, 0, ttMove)
	if ordered[0].Move.Action != ttMove {
		t.Fatalf("TT move not ordered first: got %s, want %s", ordered[0].Move.Action, ttMove)
	}
}

func TestOrderRanksWinningMoveAboveNonTTMoves(t *testing.T) {
	state, god := newOrderState(t)
	// The B2 worker stands at level 2 beside B3 at level 3.
	state.Board.BuildUp(board.B2)
	state.Board.BuildUp(board.B2)
	state.Board.BuildUp(board.B3)
	state.Board.BuildUp(board.B3)
	state.Board.BuildUp(board.B3)
	moves := god.Generate(state, board.PlayerOne, gods.IncludeScore, board.Empty)

	winIdx := -1
	for i, sm := range moves {
		if sm.Action.IsWinning() {
			winIdx = i
			break
		}
	}
	if winIdx == -1 {
		t.Skip("no winning move available from this position to rank")
	}

	o := NewOrderer()
	ordered := o.Order(state, god, moves, 0, board.NullMove)
	if ordered[0].Move.Action != moves[winIdx].Action {
		t.Errorf("winning move should sort first absent a TT hit")
	}
}

func TestUpdateKillersShiftsPreviousIntoSecondSlot(t *testing.T) {
	o := NewOrderer()
	m1 := board.NewMove(board.A1, board.A2, board.B1, 0, false)
	m2 := board.NewMove(board.A1, board.B2, board.A2, 0, false)

	o.UpdateKillers(m1, 0)
	o.UpdateKillers(m2, 0)

	if o.killers[0][0] != m2 {
		t.Errorf("killers[0][0] = %s, want most recent move %s", o.killers[0][0], m2)
	}
	if o.killers[0][1] != m1 {
		t.Errorf("killers[0][1] = %s, want displaced move %s", o.killers[0][1], m1)
	}
}

func TestUpdateKillersIgnoresRepeatOfFirstSlot(t *testing.T) {
	o := NewOrderer()
	m1 := board.NewMove(board.A1, board.A2, board.B1, 0, false)
	o.UpdateKillers(m1, 0)
	o.UpdateKillers(m1, 0)

	if o.killers[0][1] != board.NullMove {
		t.Error("repeating the current first killer should not push it into the second slot")
	}
}

func TestUpdateHistoryRewardsGoodMovesAndPenalizesBad(t *testing.T) {
	state, god := newOrderState(t)
	m := board.NewMove(board.B2, board.B3, board.A2, 0, false)

	o := NewOrderer()
	o.UpdateHistory(state, god, m, 4, true)
	key := historyKey{god: god.Name, hist: god.HistoryIndex(state, m)}
	if o.history[key] != 16 {
		t.Errorf("history bonus = %d, want depth^2 = 16", o.history[key])
	}

	o.UpdateHistory(state, god, m, 4, false)
	if o.history[key] != 0 {
		t.Errorf("history after equal penalty = %d, want 0", o.history[key])
	}
}

func TestClearAgesHistoryTowardZeroAndResetsKillers(t *testing.T) {
	state, god := newOrderState(t)
	m := board.NewMove(board.B2, board.B3, board.A2, 0, false)
	o := NewOrderer()
	o.UpdateHistory(state, god, m, 10, true)
	o.UpdateKillers(m, 5)

	o.Clear()

	if o.killers[5][0] != board.NullMove {
		t.Error("Clear should reset killer slots")
	}
	key := historyKey{god: god.Name, hist: god.HistoryIndex(state, m)}
	if v, ok := o.history[key]; ok && v >= 100 {
		t.Errorf("history entry %d should have been halved by Clear", v)
	}
}
