package gods

import (
	"fmt"

	"github.com/jpricey/santorini-core/internal/board"
)

const (
	athenaBaseHashP1 board.HashType = 0x4174686E61203120
	athenaBaseHashP2 board.HashType = 0x4174686E61203220
)

func init() {
	Register(&Athena)
}

// Athena moves and builds exactly like Mortal; in addition, any move
// that climbs (ends at a greater height than it started) clears the
// opponent's climb-permission bit, forbidding the opponent from
// climbing on their very next turn.
var Athena = StaticGod{
	Name:         board.Athena,
	Generate:     mortalGenerate,
	Apply:        athenaApply,
	BlockerBoard: mortalBlockerBoard,
	HistoryIndex: mortalHistoryIndex,
	Stringify:    func(m board.Move) string { return m.String() },
	ParseGodData: func(s string) (board.GodData, error) {
		if s != "" {
			return 0, fmt.Errorf("athena takes no god data, got %q", s)
		}
		return 0, nil
	},
	StringifyGodData:            func(board.GodData) string { return "" },
	BaseHashP1:                  athenaBaseHashP1,
	BaseHashP2:                  athenaBaseHashP2,
	Placement:                   board.PlacementStandard,
	HasOpponentClimbRestriction: true,
}

func athenaApply(state *GameState, player board.Player, move board.Move, otherGod *StaticGod) {
	restoreClimbAfterMove(state, player)
	st := &state.Board

	climbed := !move.IsWinning() && st.GetHeight(move.To()) > st.GetHeight(move.From())
	// Winning moves climb by definition (level 2 -> level 3), but the
	// game is over at that point so the restriction is moot; only
	// flag it for non-terminal climbs.
	if move.IsWinning() {
		st.WorkerXor(player, board.AsMask(move.From()).With(move.To()))
		st.SetWinner(player)
		return
	}

	st.WorkerXor(player, board.AsMask(move.From()).With(move.To()))
	st.BuildUp(move.Build())

	if climbed {
		st.FlipWorkerCanClimb(player.Other(), true)
	}
}
