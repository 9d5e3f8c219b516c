package gods

import "github.com/jpricey/santorini-core/internal/board"

// builder accumulates ScoredMoves for one Generate call, enforcing
// StopOnMate/MateOnly/IncludeScore uniformly so each god's Generate
// only has to decide what moves exist, not how the flags gate output
type builder struct {
	flags MoveGenFlags
	out   []board.ScoredMove
	done  bool
}

func newBuilder(flags MoveGenFlags) *builder {
	return &builder{flags: flags, out: make([]board.ScoredMove, 0, 32)}
}

// pushWinning records a winning move. Winning moves are kept at the
// front of the result (see board.NewWinningScoredMove's doc comment);
// under StopOnMate this also halts further generation.
func (b *builder) pushWinning(m board.Move) {
	b.out = append([]board.ScoredMove{board.NewWinningScoredMove(m)}, b.out...)
	if b.flags.Has(StopOnMate) {
		b.done = true
	}
}

// push records a non-winning move at the given sentinel score, unless
// MateOnly is set (in which case non-winning moves are never kept).
func (b *builder) push(m board.Move, score board.MoveScore) {
	if b.flags.Has(MateOnly) {
		return
	}
	if !b.flags.Has(IncludeScore) {
		score = board.NonImproverSentinelScore
	}
	b.out = append(b.out, board.NewScoredMove(m, score))
}

func (b *builder) stop() bool { return b.done }

// isWinningClimb reports the canonical win condition: a worker moving
// from exactly level 2 to exactly level 3. Gods with
// alternative win conditions (Pan's fall, future jump/triangulation
// wins) layer additional checks in their own Generate.
func isWinningClimb(fromHeight, toHeight int) bool {
	return fromHeight == 2 && toHeight == 3
}

// sentinelFor classifies an ordinary (non-winning) move for move
// ordering: an improving move (net height gain at the destination)
// ranks above a non-improver; a move flagged check ranks above a
// plain improver.
func sentinelFor(isImproving, isCheck bool) board.MoveScore {
	switch {
	case isCheck:
		return board.CheckSentinelScore
	case isImproving:
		return board.ImproverSentinelScore
	default:
		return board.NonImproverSentinelScore
	}
}

// activeWind returns the wind direction currently in force, or 0 when
// no Aeolus is in the matchup. The live wind is whichever one was set
// most recently, i.e. by the side that moved last — the current
// player's opponent when that side is the Aeolus, else the current
// player's own stored value.
func activeWind(state *GameState) int {
	cur := state.Board.CurrentPlayer
	if state.Gods[cur.Other()].UsesWindDirection {
		return int(state.Board.GodData[cur.Other()] & aeolusWindMask)
	}
	if state.Gods[cur].UsesWindDirection {
		return int(state.Board.GodData[cur] & aeolusWindMask)
	}
	return 0
}

// movementNeighbors returns sq's king-neighbor set, masked for the
// active wind: the wind prunes one direction from every worker's
// neighbor set, for both players.
func movementNeighbors(state *GameState, sq board.Square) board.BitBoard {
	if w := activeWind(state); w != 0 {
		return board.WindAwareNeighbor[w][sq]
	}
	return board.NeighborMap[sq]
}

// climbNeighbors returns the squares a worker standing at from (at
// fromHeight) may step to: a king-neighbor not pruned by the active
// wind, not occupied by either player's workers, not a dome, and at
// most one level higher than fromHeight.
func climbNeighbors(state *GameState, player board.Player, from board.Square, fromHeight int) board.BitBoard {
	b := &state.Board
	neighbors := movementNeighbors(state, from)
	occupied := b.Workers[board.PlayerOne] | b.Workers[board.PlayerTwo]
	candidates := neighbors &^ occupied &^ b.HeightMap[3]
	canClimb := b.GetWorkerCanClimb(player)

	var out board.BitBoard
	candidates.ForEach(func(to board.Square) {
		toHeight := b.GetHeight(to)
		if toHeight > fromHeight && !canClimb {
			return
		}
		if toHeight <= fromHeight+1 {
			out = out.With(to)
		}
	})
	return out
}

// unblockedBuildSquares returns the squares available to build on
// after a worker has vacated `from` and landed on `to`: neighbors of
// `to`, not domed, not occupied by any worker in the post-move position.
func unblockedBuildSquares(state *GameState, player board.Player, from, to board.Square) board.BitBoard {
	b := &state.Board
	postMoveOccupied := (b.Workers[player].Without(from).With(to)) | b.Workers[player.Other()]
	return board.NeighborMap[to] &^ b.HeightMap[3] &^ postMoveOccupied
}

// narrowBuilds restricts candidate build squares to key squares when
// InteractWithKeySquares is set. moveMask is
// the move's own from/to footprint: a move that already touches a key
// square (occupying a threatened destination is a block in itself)
// keeps its full build set.
func narrowBuilds(flags MoveGenFlags, candidates, keySquares, moveMask board.BitBoard) board.BitBoard {
	if !flags.Has(InteractWithKeySquares) {
		return candidates
	}
	if (moveMask & keySquares).IsNotEmpty() {
		return candidates
	}
	return candidates & keySquares
}

// restoreClimbAfterMove clears Athena's one-turn climb restriction
// once the restricted player has taken their turn: the bit only
// suppresses the single next move, never longer.
// Every god's Apply calls this on the moving player before committing
// the rest of the move, since the restriction can be imposed by
// whichever god the opponent happens to be playing.
func restoreClimbAfterMove(state *GameState, player board.Player) {
	st := &state.Board
	if !st.GetWorkerCanClimb(player) {
		st.FlipWorkerCanClimb(player, true)
	}
}

// threatensWinAfter reports whether a worker that ends its move on
// `to`, with `build` raised by buildDelta levels, threatens a one-move
// win next turn: `to` sits at exactly level 2 and some neighbor of
// `to` (masked for `wind`, the direction in force once the move is
// complete) ends at exactly level 3, unoccupied in the post-move
// worker set `occupied`. build may be NoSquare for build-less moves.
// Detection is deliberately conservative: only the moved worker's
// canonical climb win is considered, not alternative win conditions
// or stationary workers' threats.
func threatensWinAfter(state *GameState, to, build board.Square, buildDelta, wind int, occupied board.BitBoard) bool {
	b := &state.Board
	if b.GetHeight(to) != 2 {
		return false
	}
	neighbors := board.NeighborMap[to]
	if wind != 0 {
		neighbors = board.WindAwareNeighbor[wind][to]
	}
	threat := false
	(neighbors &^ occupied).ForEach(func(n board.Square) {
		if threat {
			return
		}
		h := b.GetHeight(n)
		if n == build {
			h += buildDelta
		}
		if h == 3 {
			threat = true
		}
	})
	return threat
}
