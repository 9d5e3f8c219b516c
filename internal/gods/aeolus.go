package gods

import (
	"fmt"
	"strconv"

	"github.com/jpricey/santorini-core/internal/board"
)

const (
	aeolusBaseHashP1 board.HashType = 0x65006F6C75730141
	aeolusBaseHashP2 board.HashType = 0x65006F6C75730242
)

func init() {
	Register(&Aeolus)
}

// aeolusWindMask is where god_data stores the active wind direction
// (board.DirNone..board.DirNW).
const aeolusWindMask board.GodData = 0xF

// Aeolus moves and builds like Mortal. In addition, every turn she
// sets a wind direction (0 = none, 1..8 = one of the eight
// king-directions); while active, the wind removes that single
// direction from every worker's neighbor set, for both players
//. The chosen direction is packed into the move so
// Apply can store it without recomputation.
var Aeolus = StaticGod{
	Name:         board.Aeolus,
	Generate:     aeolusGenerate,
	Apply:        aeolusApply,
	BlockerBoard: mortalBlockerBoard,
	HistoryIndex: mortalHistoryIndex,
	Stringify:    aeolusStringify,
	ParseGodData: func(s string) (board.GodData, error) {
		if s == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 || n > int(board.DirNW) {
			return 0, fmt.Errorf("invalid aeolus wind direction %q", s)
		}
		return board.GodData(n), nil
	},
	StringifyGodData: func(data board.GodData) string {
		return strconv.Itoa(int(data & aeolusWindMask))
	},
	BaseHashP1:        aeolusBaseHashP1,
	BaseHashP2:        aeolusBaseHashP2,
	Placement:         board.PlacementStandard,
	UsesWindDirection: true,
}

const aeolusWindOffset = 15

func aeolusGenerate(state *GameState, player board.Player, flags MoveGenFlags, keySquares board.BitBoard) []board.ScoredMove {
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
				// A winning move still carries a chosen next wind for the
				// (moot, game-over) state; DirNone keeps it simple.
				b.pushWinning(board.NewWinningMove(from, to, 0))
				return
			}

			builds := unblockedBuildSquares(state, player, from, to)
			builds = narrowBuilds(flags, builds, keySquares, board.AsMask(from).With(to))
			postOccupied := st.Workers[player].Without(from).With(to) | st.Workers[player.Other()]

			builds.ForEach(func(build board.Square) {
				for wind := int(board.DirNone); wind <= int(board.DirNW); wind++ {
					// The chosen wind is the one in force on the opponent's
					// reply and on our own next move, so the threat is
					// judged under it.
					isCheck := false
					if flags.Has(IncludeScore) || flags.Has(GenerateThreatsOnly) {
						isCheck = threatensWinAfter(state, to, build, 1, wind, postOccupied)
					}
					if flags.Has(GenerateThreatsOnly) && !isCheck {
						continue
					}
					payload := board.Move(wind) << aeolusWindOffset
					b.push(board.NewMove(from, to, build, payload, isCheck), sentinelFor(isImproving, isCheck))
				}
			})
		})
	})

	return b.out
}

func aeolusChosenWind(m board.Move) int {
	return int((m.Payload() >> aeolusWindOffset) & 0xF)
}

func aeolusApply(state *GameState, player board.Player, move board.Move, otherGod *StaticGod) {
	restoreClimbAfterMove(state, player)
	st := &state.Board

	if move.IsWinning() {
		st.WorkerXor(player, board.AsMask(move.From()).With(move.To()))
		st.SetWinner(player)
		return
	}

	st.WorkerXor(player, board.AsMask(move.From()).With(move.To()))
	st.BuildUp(move.Build())
	st.SetGodData(player, board.GodData(aeolusChosenWind(move)))
}

func aeolusStringify(move board.Move) string {
	return fmt.Sprintf("%s{wind=%d}", move.String(), aeolusChosenWind(move))
}
