// Package nnue implements a small NNUE-style (Efficiently Updatable
// Neural Network) static evaluator for a position: an input feature
// layer accumulated per board square, one hidden layer, and a scalar
// output.
//
// The weights here are a deterministically-generated synthetic
// network, not a trained one; the training pipeline lives outside
// this repository. The architecture exists so the search has a real
// evaluator to call and so the accumulator pattern has somewhere to
// live until a trained weight set replaces the synthetic one.
package nnue

import "github.com/jpricey/santorini-core/internal/board"

const (
	// NumHeightFeatures is one one-hot slot per square per height
	// (0..4): exactly 25 of these are active in any position.
	NumHeightFeatures = board.BoardSize * 5

	// NumWorkerFeatures is one slot per square per worker-ownership
	// state (own, opponent): active only where a worker stands.
	NumWorkerFeatures = board.BoardSize * 2

	// FeatureSize is the total per-perspective input width. This board
	// has no king to anchor a HalfKP-style relative encoding, so
	// features are plain
	// absolute-square one-hots, mirrored for the non-moving side by
	// swapping the "own"/"opponent" worker slots (see features.go).
	FeatureSize = NumHeightFeatures + NumWorkerFeatures

	L1Size = 64

	// InputQuantShift/OutputScale set the quantized fixed-point
	// scale, sized for this small net.
	InputQuantShift = 6
	OutputScale     = 300
)

// ClampedReLU clamps an accumulated value to [0, 127] for quantized
// inference.
func ClampedReLU(x int16) int8 {
	if x < 0 {
		return 0
	}
	if x > 127 {
		return 127
	}
	return int8(x)
}

// Evaluator binds a Network to a reusable Accumulator.
type Evaluator struct {
	net *Network
	acc Accumulator
}

// NewEvaluator returns an Evaluator over a deterministically seeded
// synthetic network.
func NewEvaluator(seed int64) *Evaluator {
	net := NewNetwork()
	net.InitSynthetic(seed)
	return &Evaluator{net: net}
}

// Evaluate returns the static evaluation of state from player's
// perspective, in the same centipawn-like units the search's
// sentinel/mate scores are expressed in.
func (e *Evaluator) Evaluate(state *board.BoardState, player board.Player) int {
	e.acc.ComputeFull(state, player, e.net)
	return e.net.Forward(&e.acc)
}
