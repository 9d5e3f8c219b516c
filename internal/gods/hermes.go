package gods

import (
	"fmt"

	"github.com/jpricey/santorini-core/internal/board"
)

const (
	hermesBaseHashP1 board.HashType = 0x65726D657320310A
	hermesBaseHashP2 board.HashType = 0x65726D657320320A
)

func init() {
	Register(&Hermes)
}

// Hermes may play an ordinary Mortal move+build, or instead move both
// workers any distance across same-height, unoccupied squares (a
// flood fill, no build) followed by one build adjacent to either
// worker's final position.
//
// Simplification: the two workers' flood fills are computed as if
// simultaneous (each blocked only by squares neither worker starts
// on), rather than exhaustively enumerating both sequential
// orderings. This undercounts the rare case where the two workers'
// reachable components only connect once one of them has already
// relocated; see DESIGN.md for why this is accepted the same way the
// consistency checker already exempts Hydra and Nemesis from full
// duplicate-post-state checking.
var Hermes = StaticGod{
	Name:         board.Hermes,
	Generate:     hermesGenerate,
	Apply:        hermesApply,
	BlockerBoard: hermesBlockerBoard,
	HistoryIndex: mortalHistoryIndex,
	Stringify:    hermesStringify,
	ParseGodData: func(s string) (board.GodData, error) {
		if s != "" {
			return 0, fmt.Errorf("hermes takes no god data, got %q", s)
		}
		return 0, nil
	},
	StringifyGodData: func(board.GodData) string { return "" },
	BaseHashP1:       hermesBaseHashP1,
	BaseHashP2:       hermesBaseHashP2,
	Placement:        board.PlacementStandard,
}

const (
	hermesDoubleBit       = board.Move(1) << 25
	hermesSecondToOffset  = 15
)

func floodFillSameHeight(state *GameState, start board.Square, blocked board.BitBoard) board.BitBoard {
	st := &state.Board
	height := st.GetHeight(start)
	visited := board.AsMask(start)
	frontier := []board.Square{start}
	for len(frontier) > 0 {
		cur := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		movementNeighbors(state, cur).ForEach(func(n board.Square) {
			if visited.Has(n) || blocked.Has(n) {
				return
			}
			if st.GetHeight(n) != height {
				return
			}
			visited = visited.With(n)
			frontier = append(frontier, n)
		})
	}
	return visited.Without(start)
}

func hermesGenerate(state *GameState, player board.Player, flags MoveGenFlags, keySquares board.BitBoard) []board.ScoredMove {
	b := newBuilder(flags)

	// Ordinary single-worker move+build, identical to Mortal's.
	singles := mortalGenerate(state, player, flags, keySquares)
	for _, sm := range singles {
		if sm.Action.IsWinning() {
			b.pushWinning(sm.Action)
		} else {
			b.out = append(b.out, sm)
		}
		if b.stop() {
			return b.out
		}
	}

	st := &state.Board
	workers := st.Workers[player].Squares()
	if len(workers) != 2 {
		return b.out
	}
	workerA, workerB := workers[0], workers[1]
	occupied := st.Workers[board.PlayerOne] | st.Workers[board.PlayerTwo]
	blocked := occupied.Without(workerA).Without(workerB)

	destinationsA := floodFillSameHeight(state, workerA, blocked).With(workerA)
	destinationsB := floodFillSameHeight(state, workerB, blocked).With(workerB)
	wind := activeWind(state)

	destinationsA.ForEach(func(toA board.Square) {
		if b.stop() {
			return
		}
		destinationsB.ForEach(func(toB board.Square) {
			if b.stop() {
				return
			}
			if toA == workerA && toB == workerB {
				return // no-op, not a real double move
			}
			if toA == toB {
				return // both workers cannot end on one square
			}
			postOccupied := board.AsMask(toA).With(toB) | st.Workers[player.Other()]
			builds := (board.NeighborMap[toA] | board.NeighborMap[toB]) &^ st.HeightMap[3] &^ postOccupied
			builds = narrowBuilds(flags, builds, keySquares, board.AsMask(toA).With(toB))

			builds.ForEach(func(build board.Square) {
				// Double moves never climb, so either worker threatens
				// only from a square already at level 2.
				isCheck := false
				if flags.Has(IncludeScore) || flags.Has(GenerateThreatsOnly) {
					isCheck = threatensWinAfter(state, toA, build, 1, wind, postOccupied) ||
						threatensWinAfter(state, toB, build, 1, wind, postOccupied)
				}
				if flags.Has(GenerateThreatsOnly) && !isCheck {
					return
				}
				payload := hermesDoubleBit | board.Move(toB)<<hermesSecondToOffset
				b.push(board.NewMove(workerA, toA, build, payload, isCheck), sentinelFor(false, isCheck))
			})
		})
	})

	return b.out
}

func hermesIsDouble(m board.Move) bool { return m.Payload()&hermesDoubleBit != 0 }

func hermesSecondTo(m board.Move) board.Square {
	return board.Square((m.Payload() >> hermesSecondToOffset) & board.PositionMask)
}

func hermesApply(state *GameState, player board.Player, move board.Move, otherGod *StaticGod) {
	restoreClimbAfterMove(state, player)
	st := &state.Board

	if move.IsWinning() {
		st.WorkerXor(player, board.AsMask(move.From()).With(move.To()))
		st.SetWinner(player)
		return
	}

	if hermesIsDouble(move) {
		workers := st.Workers[player]
		workerB := (workers.Without(move.From()))
		st.WorkerXor(player, board.AsMask(move.From()).With(move.To()))
		bSquare := workerB.LSB()
		st.WorkerXor(player, board.AsMask(bSquare).With(hermesSecondTo(move)))
		if move.Build() != board.NoSquare {
			st.BuildUp(move.Build())
		}
		return
	}

	st.WorkerXor(player, board.AsMask(move.From()).With(move.To()))
	st.BuildUp(move.Build())
}

func hermesBlockerBoard(move board.Move) board.BitBoard {
	blockers := move.MoveMask()
	if hermesIsDouble(move) {
		blockers = blockers.With(hermesSecondTo(move))
	}
	return blockers
}

func hermesStringify(move board.Move) string {
	if !hermesIsDouble(move) {
		return move.String()
	}
	return fmt.Sprintf("%s>%s,?>%s^%s", move.From(), move.To(), hermesSecondTo(move), move.Build())
}
