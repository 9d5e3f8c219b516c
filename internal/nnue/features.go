package nnue

import "github.com/jpricey/santorini-core/internal/board"

// HeightFeatureIndex returns the one-hot feature slot for sq being at
// the given height (0..4).
func HeightFeatureIndex(sq board.Square, height int) int {
	return int(sq)*5 + height
}

// WorkerFeatureIndex returns the feature slot for a worker standing on
// sq, from the evaluating player's perspective: ownIsMine selects
// whether the worker belongs to the perspective player or the
// opponent. Color-relative slot selection, with no king-square term
// to anchor it on this board.
func WorkerFeatureIndex(sq board.Square, ownIsMine bool) int {
	base := NumHeightFeatures + int(sq)*2
	if ownIsMine {
		return base
	}
	return base + 1
}

// ActiveFeatures lists every active feature index for state, from
// player's perspective.
func ActiveFeatures(state *board.BoardState, player board.Player) []int {
	out := make([]int, 0, board.BoardSize+8)
	for sq := board.Square(0); sq < board.BoardSize; sq++ {
		out = append(out, HeightFeatureIndex(sq, state.GetHeight(sq)))
	}
	state.Workers[player].ForEach(func(sq board.Square) {
		out = append(out, WorkerFeatureIndex(sq, true))
	})
	state.Workers[player.Other()].ForEach(func(sq board.Square) {
		out = append(out, WorkerFeatureIndex(sq, false))
	})
	return out
}
