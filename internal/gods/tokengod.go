package gods

import (
	"fmt"

	"github.com/jpricey/santorini-core/internal/board"
)

const (
	tokenGodBaseHashP1 board.HashType = 0x6F6B656E476F6401
	tokenGodBaseHashP2 board.HashType = 0x6F6B656E476F6402
)

func init() {
	Register(&TokenGod)
}

// TokenGod moves and builds exactly like Mortal. Its only purpose is
// to exercise BoardState.OppoWorkerXor/OppoWorkerKill's
// female-worker-tracking branch: a real Selene-style god also has a movement
// effect keyed off which worker is tracked, but that effect is out of
// scope here. TracksFemaleWorker alone is
// enough to give the female-worker GodData convention a caller: when
// an opponent playing TokenGod is pushed (Minotaur), the tracked
// square updates automatically through DeltaGodData.
var TokenGod = StaticGod{
	Name:         board.Selene,
	Generate:     mortalGenerate,
	Apply:        tokenGodApply,
	BlockerBoard: mortalBlockerBoard,
	HistoryIndex: mortalHistoryIndex,
	Stringify:    func(m board.Move) string { return m.String() },
	ParseGodData: func(s string) (board.GodData, error) {
		if s == "" {
			return 0, nil
		}
		sq, err := board.ParseSquare(s)
		if err != nil {
			return 0, fmt.Errorf("tokengod female-worker square: %w", err)
		}
		return board.GodData(board.AsMask(sq)), nil
	},
	StringifyGodData: func(data board.GodData) string {
		mask := board.BitBoard(data)
		if mask.IsEmpty() {
			return ""
		}
		return mask.LSB().String()
	},
	BaseHashP1:         tokenGodBaseHashP1,
	BaseHashP2:         tokenGodBaseHashP2,
	Placement:          board.PlacementFemaleWorker,
	TracksFemaleWorker: true,
}

// tokenGodApply plays a plain Mortal turn. god_data (the tracked
// female-worker square bitmask) is set by ApplyPlacement at setup,
// moved here when the tracked worker itself moves, and otherwise
// updated through the opponent's OppoWorkerXor/OppoWorkerKill calls.
func tokenGodApply(state *GameState, player board.Player, move board.Move, otherGod *StaticGod) {
	restoreClimbAfterMove(state, player)
	st := &state.Board

	from, to := move.From(), move.To()
	if st.GodData[player]&board.GodData(board.AsMask(from)) != 0 {
		st.DeltaGodData(player, board.GodData(board.AsMask(from).With(to)))
	}

	if move.IsWinning() {
		st.WorkerXor(player, board.AsMask(from).With(to))
		st.SetWinner(player)
		return
	}

	st.WorkerXor(player, board.AsMask(from).With(to))
	st.BuildUp(move.Build())
}
