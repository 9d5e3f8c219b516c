package gods

import (
	"fmt"

	"github.com/jpricey/santorini-core/internal/board"
)

const (
	minotaurBaseHashP1 board.HashType = 0x696E6F7461757201
	minotaurBaseHashP2 board.HashType = 0x696E6F7461757202
)

func init() {
	Register(&Minotaur)
}

// Minotaur moves and builds like Mortal, but may also step onto a
// square occupied by an opponent worker if the square directly behind
// it (colinear, one step further) is empty and not a dome; the
// opponent worker is displaced there.
var Minotaur = StaticGod{
	Name:         board.Minotaur,
	Generate:     minotaurGenerate,
	Apply:        minotaurApply,
	BlockerBoard: minotaurBlockerBoard,
	HistoryIndex: mortalHistoryIndex,
	Stringify:    minotaurStringify,
	ParseGodData: func(s string) (board.GodData, error) {
		if s != "" {
			return 0, fmt.Errorf("minotaur takes no god data, got %q", s)
		}
		return 0, nil
	},
	StringifyGodData: func(board.GodData) string { return "" },
	BaseHashP1:       minotaurBaseHashP1,
	BaseHashP2:       minotaurBaseHashP2,
	Placement:        board.PlacementStandard,
}

// minotaurPushSquareOffset is where, within a move's god-specific payload
// bits (15..29), the displaced worker's landing square is packed; bit
// 20 distinguishes a push from an ordinary move.
const (
	minotaurPushSquareOffset = 15
	minotaurIsPushBit        = board.Move(1) << 20
)

func minotaurGenerate(state *GameState, player board.Player, flags MoveGenFlags, keySquares board.BitBoard) []board.ScoredMove {
	b := newBuilder(flags)
	st := &state.Board
	opponent := player.Other()

	st.Workers[player].ForEach(func(from board.Square) {
		if b.stop() {
			return
		}
		fromHeight := st.GetHeight(from)
		canClimb := st.GetWorkerCanClimb(player)

		neighbors := movementNeighbors(state, from)
		occupiedMine := st.Workers[player]
		occupiedTheirs := st.Workers[opponent]

		candidates := neighbors &^ occupiedMine &^ st.HeightMap[3]
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

			pushTo := board.NoSquare
			if occupiedTheirs.Has(to) {
				pushTo = board.Push[from][to]
				if pushTo == board.NoSquare || st.GetWorkerAt(pushTo) != nil || st.HeightMap[3].Has(pushTo) {
					return
				}
			}

			isImproving := toHeight > fromHeight

			if isWinningClimb(fromHeight, toHeight) {
				payload := board.Move(0)
				if pushTo != board.NoSquare {
					payload = board.Move(pushTo)<<minotaurPushSquareOffset | minotaurIsPushBit
				}
				b.pushWinning(board.NewWinningMove(from, to, payload))
				return
			}

			postOccupied := st.Workers[player].Without(from).With(to) | st.Workers[opponent]
			if pushTo != board.NoSquare {
				postOccupied = st.Workers[player].Without(from).With(to) | st.Workers[opponent].Without(to).With(pushTo)
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
				if pushTo != board.NoSquare {
					payload = board.Move(pushTo)<<minotaurPushSquareOffset | minotaurIsPushBit
				}
				b.push(board.NewMove(from, to, build, payload, isCheck), sentinelFor(isImproving, isCheck))
			})
		})
	})

	return b.out
}

func minotaurIsPush(m board.Move) bool { return m.Payload()&minotaurIsPushBit != 0 }

func minotaurPushSquare(m board.Move) board.Square {
	return board.Square((m.Payload() >> minotaurPushSquareOffset) & board.PositionMask)
}

func minotaurApply(state *GameState, player board.Player, move board.Move, otherGod *StaticGod) {
	restoreClimbAfterMove(state, player)
	st := &state.Board
	opponent := player.Other()

	if minotaurIsPush(move) {
		to := move.To()
		pushTo := minotaurPushSquare(move)
		st.OppoWorkerXor(otherGod.TracksFemaleWorker, opponent, board.AsMask(to).With(pushTo))
	}

	if move.IsWinning() {
		st.WorkerXor(player, board.AsMask(move.From()).With(move.To()))
		st.SetWinner(player)
		return
	}

	st.WorkerXor(player, board.AsMask(move.From()).With(move.To()))
	st.BuildUp(move.Build())
}

func minotaurBlockerBoard(move board.Move) board.BitBoard {
	blockers := move.MoveMask()
	if minotaurIsPush(move) {
		blockers = blockers.With(minotaurPushSquare(move))
	}
	return blockers
}

func minotaurStringify(move board.Move) string {
	base := move.String()
	if minotaurIsPush(move) {
		return fmt.Sprintf("%s(%s>%s)", base, move.To(), minotaurPushSquare(move))
	}
	return base
}
