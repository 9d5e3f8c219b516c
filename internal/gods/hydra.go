package gods

import (
	"fmt"

	"github.com/jpricey/santorini-core/internal/board"
)

const (
	hydraBaseHashP1 board.HashType = 0x4879647261202031
	hydraBaseHashP2 board.HashType = 0x4879647261202032
)

// HydraMaxWorkers caps how far Hydra's worker blob can grow.
const HydraMaxWorkers = 11

func init() {
	Register(&Hydra)
}

// Hydra starts with three workers and may grow to HydraMaxWorkers.
// Each turn: move one worker a king-step and build one square, exactly
// like Mortal, then either add a new worker to an empty square
// adjacent to the post-move worker blob, or remove one of her own
// workers outright.
//
// Hydra is exempted from the consistency checker's no-duplicate-
// post-state and blocker-reduces-wins properties (see DESIGN.md):
// removing different workers from a symmetric blob can reach the same
// resulting board through distinct moves, and a removal can expose a
// win the opponent didn't have a blocker move against.
var Hydra = StaticGod{
	Name:         board.Hydra,
	Generate:     hydraGenerate,
	Apply:        hydraApply,
	BlockerBoard: hydraBlockerBoard,
	HistoryIndex: mortalHistoryIndex,
	Stringify:    hydraStringify,
	ParseGodData: func(s string) (board.GodData, error) {
		if s != "" {
			return 0, fmt.Errorf("hydra takes no god data, got %q", s)
		}
		return 0, nil
	},
	StringifyGodData: func(board.GodData) string { return "" },
	BaseHashP1:       hydraBaseHashP1,
	BaseHashP2:       hydraBaseHashP2,
	Placement:        board.PlacementThreeWorkers,
}

const (
	hydraIsAddBit         = board.Move(1) << 15
	hydraSpecialSqOffset  = 16
)

func hydraGenerate(state *GameState, player board.Player, flags MoveGenFlags, keySquares board.BitBoard) []board.ScoredMove {
	b := newBuilder(flags)
	st := &state.Board
	workerCount := st.Workers[player].PopCount()

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
			wind := activeWind(state)

			builds.ForEach(func(build board.Square) {
				postMoveOwn := st.Workers[player].Without(from).With(to)
				postOccupied := postMoveOwn | st.Workers[player.Other()]

				// Removal option: drop any one of the post-move workers,
				// provided at least one would remain.
				if postMoveOwn.PopCount() > 1 {
					postMoveOwn.ForEach(func(removed board.Square) {
						isCheck := false
						if flags.Has(IncludeScore) || flags.Has(GenerateThreatsOnly) {
							isCheck = removed != to &&
								threatensWinAfter(state, to, build, 1, wind, postOccupied.Without(removed))
						}
						if flags.Has(GenerateThreatsOnly) && !isCheck {
							return
						}
						payload := board.Move(removed) << hydraSpecialSqOffset
						b.push(board.NewMove(from, to, build, payload, isCheck), sentinelFor(isImproving, isCheck))
					})
				}

				// Addition option: any empty, non-domed square adjacent to
				// the post-move blob, if under the cap.
				if workerCount < HydraMaxWorkers {
					var blobNeighbors board.BitBoard
					postMoveOwn.ForEach(func(sq board.Square) {
						blobNeighbors |= board.NeighborMap[sq]
					})
					candidates := blobNeighbors &^ postOccupied &^ st.HeightMap[3] &^ board.AsMask(build)
					candidates.ForEach(func(addSq board.Square) {
						isCheck := false
						if flags.Has(IncludeScore) || flags.Has(GenerateThreatsOnly) {
							isCheck = threatensWinAfter(state, to, build, 1, wind, postOccupied.With(addSq))
						}
						if flags.Has(GenerateThreatsOnly) && !isCheck {
							return
						}
						payload := hydraIsAddBit | board.Move(addSq)<<hydraSpecialSqOffset
						b.push(board.NewMove(from, to, build, payload, isCheck), sentinelFor(isImproving, isCheck))
					})
				}
			})
		})
	})

	return b.out
}

func hydraIsAdd(m board.Move) bool { return m.Payload()&hydraIsAddBit != 0 }

func hydraSpecialSquare(m board.Move) board.Square {
	return board.Square((m.Payload() >> hydraSpecialSqOffset) & board.PositionMask)
}

func hydraApply(state *GameState, player board.Player, move board.Move, otherGod *StaticGod) {
	restoreClimbAfterMove(state, player)
	st := &state.Board

	if move.IsWinning() {
		st.WorkerXor(player, board.AsMask(move.From()).With(move.To()))
		st.SetWinner(player)
		return
	}

	st.WorkerXor(player, board.AsMask(move.From()).With(move.To()))
	st.BuildUp(move.Build())

	// Add and remove are both a single-bit toggle; which one it is only
	// matters for legality (checked at generation time), not for how
	// the bit flips.
	st.WorkerXor(player, board.AsMask(hydraSpecialSquare(move)))
}

func hydraBlockerBoard(move board.Move) board.BitBoard {
	return move.MoveMask().With(hydraSpecialSquare(move))
}

func hydraStringify(move board.Move) string {
	base := move.String()
	special := hydraSpecialSquare(move)
	if hydraIsAdd(move) {
		return fmt.Sprintf("%s+%s", base, special)
	}
	return fmt.Sprintf("%s-%s", base, special)
}
