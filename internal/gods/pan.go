package gods

import (
	"fmt"

	"github.com/jpricey/santorini-core/internal/board"
)

const (
	panBaseHashP1 board.HashType = 0x50616E2020202031
	panBaseHashP2 board.HashType = 0x50616E2020202032
)

func init() {
	Register(&Pan)
}

// Pan moves and builds like Mortal, but has a second win condition:
// moving down two or more levels in one step also wins, alongside the
// canonical climb-to-3.
var Pan = StaticGod{
	Name:         board.Pan,
	Generate:     panGenerate,
	Apply:        mortalApply,
	BlockerBoard: mortalBlockerBoard,
	HistoryIndex: mortalHistoryIndex,
	Stringify:    func(m board.Move) string { return m.String() },
	ParseGodData: func(s string) (board.GodData, error) {
		if s != "" {
			return 0, fmt.Errorf("pan takes no god data, got %q", s)
		}
		return 0, nil
	},
	StringifyGodData: func(board.GodData) string { return "" },
	BaseHashP1:       panBaseHashP1,
	BaseHashP2:       panBaseHashP2,
	Placement:        board.PlacementStandard,
}

func panWins(fromHeight, toHeight int) bool {
	return isWinningClimb(fromHeight, toHeight) || fromHeight-toHeight >= 2
}

func panGenerate(state *GameState, player board.Player, flags MoveGenFlags, keySquares board.BitBoard) []board.ScoredMove {
	b := newBuilder(flags)
	st := &state.Board

	st.Workers[player].ForEach(func(from board.Square) {
		if b.stop() {
			return
		}
		fromHeight := st.GetHeight(from)
		destinations := climbNeighbors(state, player, from, fromHeight)

		destinations.ForEach(func(to board.Square) {
			if b.stop() {
				return
			}
			toHeight := st.GetHeight(to)
			isImproving := toHeight > fromHeight

			if panWins(fromHeight, toHeight) {
				b.pushWinning(board.NewWinningMove(from, to, 0))
				return
			}

			builds := unblockedBuildSquares(state, player, from, to)
			builds = narrowBuilds(flags, builds, keySquares, board.AsMask(from).With(to))
			postOccupied := st.Workers[player].Without(from).With(to) | st.Workers[player.Other()]
			wind := activeWind(state)

			builds.ForEach(func(build board.Square) {
				// Fall threats (ending at height >= 2 above a reachable
				// low square) are not flagged; only the canonical climb
				// threat is, keeping detection conservative.
				isCheck := false
				if flags.Has(IncludeScore) || flags.Has(GenerateThreatsOnly) {
					isCheck = threatensWinAfter(state, to, build, 1, wind, postOccupied)
				}
				if flags.Has(GenerateThreatsOnly) && !isCheck {
					return
				}
				b.push(board.NewMove(from, to, build, 0, isCheck), sentinelFor(isImproving, isCheck))
			})
		})
	})

	return b.out
}
