package nnue

// Network holds the (synthetic) NNUE weights: one linear layer from
// FeatureSize inputs to L1Size, clipped-ReLU'd, then summed through a
// single output weight vector. One hidden layer is enough at this
// input width.
type Network struct {
	L1Weights [FeatureSize][L1Size]int16
	L1Bias    [L1Size]int16

	OutputWeights [L1Size]int8
	OutputBias    int32
}

// NewNetwork returns a zero-valued network; call InitSynthetic before
// use.
func NewNetwork() *Network {
	return &Network{}
}

// Forward computes the scalar evaluation from an already-accumulated
// L1 layer.
func (n *Network) Forward(acc *Accumulator) int {
	var output int32 = n.OutputBias
	for i := 0; i < L1Size; i++ {
		activated := ClampedReLU(acc.Values[i])
		output += int32(activated) * int32(n.OutputWeights[i])
	}
	return int(output * OutputScale >> (InputQuantShift + 8))
}

// InitSynthetic fills the network with small deterministic
// pseudo-random weights. No trained weight file ships with the
// engine, so this synthetic net is what keeps the evaluator
// exercisable and benchmarks reproducible.
func (n *Network) InitSynthetic(seed int64) {
	state := uint64(seed)
	next := func() int16 {
		state = state*6364136223846793005 + 1442695040888963407
		return int16((state >> 48) & 0xFF) - 128
	}

	for i := 0; i < FeatureSize; i++ {
		for j := 0; j < L1Size; j++ {
			n.L1Weights[i][j] = next() >> 5
		}
	}
	for i := 0; i < L1Size; i++ {
		n.L1Bias[i] = next() >> 3
	}
	for i := 0; i < L1Size; i++ {
		v := next() >> 6
		if v > 127 {
			v = 127
		} else if v < -128 {
			v = -128
		}
		n.OutputWeights[i] = int8(v)
	}
	n.OutputBias = int32(next())
}
