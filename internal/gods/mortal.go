package gods

import (
	"fmt"

	"github.com/jpricey/santorini-core/internal/board"
)

// mortalBaseHashP1/P2 seed BoardState.Hash for Mortal. Arbitrary fixed
// constants distinct from every other god's, so two structurally
// identical boards under different matchups never collide.
const (
	mortalBaseHashP1 board.HashType = 0x4D6F7274616C2031
	mortalBaseHashP2 board.HashType = 0x4D6F7274616C2032
)

func init() {
	Register(&Mortal)
}

// Mortal is the baseline god power: move one worker one
// king-step to a square at most one level higher, never onto a dome
// or occupied square; build one adjacent square that is not a dome
// and not occupied; win by reaching height 3.
var Mortal = StaticGod{
	Name:         board.Mortal,
	Generate:     mortalGenerate,
	Apply:        mortalApply,
	BlockerBoard: mortalBlockerBoard,
	HistoryIndex: mortalHistoryIndex,
	Stringify:    func(m board.Move) string { return m.String() },
	ParseGodData: func(s string) (board.GodData, error) {
		if s != "" {
			return 0, fmt.Errorf("mortal takes no god data, got %q", s)
		}
		return 0, nil
	},
	StringifyGodData: func(board.GodData) string { return "" },
	BaseHashP1:       mortalBaseHashP1,
	BaseHashP2:       mortalBaseHashP2,
	Placement:        board.PlacementStandard,
}

// mortalGenerate implements the shared skeleton (prelude → per-worker
// → narrowed builds → push) with no god-specific twist: this is the
// pattern every other representative god specializes.
func mortalGenerate(state *GameState, player board.Player, flags MoveGenFlags, keySquares board.BitBoard) []board.ScoredMove {
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

			if isWinningClimb(fromHeight, toHeight) {
				b.pushWinning(board.NewWinningMove(from, to, 0))
				return
			}

			builds := unblockedBuildSquares(state, player, from, to)
			builds = narrowBuilds(flags, builds, keySquares, board.AsMask(from).With(to))
			postOccupied := st.Workers[player].Without(from).With(to) | st.Workers[player.Other()]
			wind := activeWind(state)

			builds.ForEach(func(build board.Square) {
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

func mortalApply(state *GameState, player board.Player, move board.Move, otherGod *StaticGod) {
	restoreClimbAfterMove(state, player)
	st := &state.Board
	if move.IsWinning() {
		st.WorkerXor(player, board.AsMask(move.From()).With(move.To()))
		st.SetWinner(player)
		return
	}
	st.WorkerXor(player, board.AsMask(move.From()).With(move.To()))
	st.BuildUp(move.Build())
}

func mortalBlockerBoard(move board.Move) board.BitBoard {
	return move.MoveMask()
}

func mortalHistoryIndex(state *GameState, move board.Move) uint32 {
	st := &state.Board
	fromH := st.GetHeight(move.From())
	toH := st.GetHeight(move.To())
	buildH := 0
	if move.Build() != board.NoSquare {
		buildH = st.GetHeight(move.Build())
	}
	return uint32(move.From())<<20 | uint32(fromH)<<18 | uint32(move.To())<<13 | uint32(toH)<<11 | uint32(move.Build())<<6 | uint32(buildH)
}
