package nnue

import "github.com/jpricey/santorini-core/internal/board"

// Accumulator holds the accumulated L1 activations for one
// perspective.
type Accumulator struct {
	Values   [L1Size]int16
	Computed bool
}

// ComputeFull recomputes acc from scratch for state, from player's
// perspective. A 25-square board's feature set is cheap enough
// (one height feature per square plus one per worker) that recomputing on every evaluation is the
// accepted simplification here: the cost profile that justifies an
// incrementally-maintained chess accumulator (40960 HalfKP features)
// doesn't hold at this board size.
func (acc *Accumulator) ComputeFull(state *board.BoardState, player board.Player, net *Network) {
	copy(acc.Values[:], net.L1Bias[:])
	for _, idx := range ActiveFeatures(state, player) {
		if idx < 0 || idx >= FeatureSize {
			continue
		}
		for i := 0; i < L1Size; i++ {
			acc.Values[i] += net.L1Weights[idx][i]
		}
	}
	acc.Computed = true
}

