package gods

import (
	"fmt"

	"github.com/jpricey/santorini-core/internal/board"
)

const (
	apolloBaseHashP1 board.HashType = 0x4170006F6C6C6F01
	apolloBaseHashP2 board.HashType = 0x4170006F6C6C6F02
)

func init() {
	Register(&Apollo)
}

// Apollo moves and builds like Mortal, except a destination occupied
// by an adjacent opponent worker is allowed: the two workers swap
// places instead of one displacing the other.
var Apollo = StaticGod{
	Name:         board.Apollo,
	Generate:     apolloGenerate,
	Apply:        apolloApply,
	BlockerBoard: mortalBlockerBoard,
	HistoryIndex: mortalHistoryIndex,
	Stringify:    func(m board.Move) string { return m.String() },
	ParseGodData: func(s string) (board.GodData, error) {
		if s != "" {
			return 0, fmt.Errorf("apollo takes no god data, got %q", s)
		}
		return 0, nil
	},
	StringifyGodData: func(board.GodData) string { return "" },
	BaseHashP1:       apolloBaseHashP1,
	BaseHashP2:       apolloBaseHashP2,
	Placement:        board.PlacementStandard,
}

func apolloGenerate(state *GameState, player board.Player, flags MoveGenFlags, keySquares board.BitBoard) []board.ScoredMove {
	b := newBuilder(flags)
	st := &state.Board
	opponent := player.Other()

	st.Workers[player].ForEach(func(from board.Square) {
		if b.stop() {
			return
		}
		fromHeight := st.GetHeight(from)
		canClimb := st.GetWorkerCanClimb(player)

		candidates := movementNeighbors(state, from) &^ st.Workers[player] &^ st.HeightMap[3]
		candidates.ForEach(func(to board.Square) {
			if b.stop() {
				return
			}
			toHeight := st.GetHeight(to)
			if toHeight > fromHeight && !canClimb {
				return
			}
			if toHeight > fromHeight+1 {
				return
			}

			isSwap := st.Workers[opponent].Has(to)
			isImproving := toHeight > fromHeight

			if isWinningClimb(fromHeight, toHeight) {
				payload := board.Move(0)
				if isSwap {
					payload = apolloSwapBit
				}
				b.pushWinning(board.NewWinningMove(from, to, payload))
				return
			}

			postOccupied := st.Workers[player].Without(from).With(to) | st.Workers[opponent]
			if isSwap {
				// The swapped worker now stands on the vacated square.
				postOccupied = st.Workers[player].Without(from).With(to) | st.Workers[opponent].Without(to).With(from)
			}
			builds := board.NeighborMap[to] &^ st.HeightMap[3] &^ postOccupied
			builds = narrowBuilds(flags, builds, keySquares, board.AsMask(from).With(to))
			wind := activeWind(state)

			builds.ForEach(func(build board.Square) {
				isCheck := false
				if flags.Has(IncludeScore) || flags.Has(GenerateThreatsOnly) {
					isCheck = threatensWinAfter(state, to, build, 1, wind, postOccupied)
				}
				if flags.Has(GenerateThreatsOnly) && !isCheck {
					return
				}
				payload := board.Move(0)
				if isSwap {
					payload = apolloSwapBit
				}
				b.push(board.NewMove(from, to, build, payload, isCheck), sentinelFor(isImproving, isCheck))
			})
		})
	})

	return b.out
}

const apolloSwapBit = board.Move(1) << 15

func apolloIsSwap(m board.Move) bool { return m.Payload()&apolloSwapBit != 0 }

func apolloApply(state *GameState, player board.Player, move board.Move, otherGod *StaticGod) {
	restoreClimbAfterMove(state, player)
	st := &state.Board
	opponent := player.Other()

	if apolloIsSwap(move) {
		st.OppoWorkerXor(otherGod.TracksFemaleWorker, opponent, board.AsMask(move.To()).With(move.From()))
	}

	if move.IsWinning() {
		st.WorkerXor(player, board.AsMask(move.From()).With(move.To()))
		st.SetWinner(player)
		return
	}

	st.WorkerXor(player, board.AsMask(move.From()).With(move.To()))
	st.BuildUp(move.Build())
}
