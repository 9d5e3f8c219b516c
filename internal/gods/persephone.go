package gods

import (
	"fmt"

	"github.com/jpricey/santorini-core/internal/board"
)

const (
	persephoneBaseHashP1 board.HashType = 0x6572736570686F01
	persephoneBaseHashP2 board.HashType = 0x6572736570686F02
)

func init() {
	Register(&Persephone)
}

// Persephone's own turn plays exactly like Mortal; her effect is
// entirely about the *opponent's* generators, enforced by
// GenerateRespectingOpponent.
var Persephone = StaticGod{
	Name:         board.Persephone,
	Generate:     mortalGenerate,
	Apply:        mortalApply,
	BlockerBoard: mortalBlockerBoard,
	HistoryIndex: mortalHistoryIndex,
	Stringify:    func(m board.Move) string { return m.String() },
	ParseGodData: func(s string) (board.GodData, error) {
		if s != "" {
			return 0, fmt.Errorf("persephone takes no god data, got %q", s)
		}
		return 0, nil
	},
	StringifyGodData: func(board.GodData) string { return "" },
	BaseHashP1:       persephoneBaseHashP1,
	BaseHashP2:       persephoneBaseHashP2,
	Placement:        board.PlacementStandard,
}

// moveClimbs reports whether m's primary worker move ends higher than
// it started, read from state before the move is applied.
func moveClimbs(state *GameState, m board.Move) bool {
	st := &state.Board
	return st.GetHeight(m.To()) > st.GetHeight(m.From())
}

// GenerateRespectingOpponent is the entry point every caller (search,
// consistency checker) should use instead of calling a god's Generate
// directly: when the opponent is Persephone, it filters the god's own
// generator output down to climbing (and winning) moves and falls back
// to the unconstrained set only if no such move exists.
func GenerateRespectingOpponent(state *GameState, player board.Player, flags MoveGenFlags, keySquares board.BitBoard) []board.ScoredMove {
	god := state.God(player)
	moves := god.Generate(state, player, flags, keySquares)

	if state.Opponent(player).Name != board.Persephone {
		return moves
	}

	climbing := make([]board.ScoredMove, 0, len(moves))
	for _, sm := range moves {
		if sm.Action.IsWinning() || moveClimbs(state, sm.Action) {
			climbing = append(climbing, sm)
		}
	}
	if len(climbing) > 0 {
		return climbing
	}
	return moves
}
