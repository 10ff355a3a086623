package datasets

import (
	"math"
	"math/rand"
)

// SineDatasetName selects the synthetic sine dataset instead of a CSV file.
const SineDatasetName = "sine"

// Shape of the synthetic sine dataset.
const (
	SineSamples  = 10000
	SineSeqLen   = 24
	SineFeatures = 5
)

// maximum frequency and phase drawn per feature
const sineMaxParam = 0.1

// SequenceGenerator produces n windows of seqLen steps with dim features
// each, drawing all randomness from rng.
type SequenceGenerator func(rng *rand.Rand, n, seqLen, dim int) []Window

// SineData is the default SequenceGenerator. Every feature of every window
// is an independent sinusoid sin(f*t + p) with f and p drawn from [0, 0.1),
// rescaled from [-1, 1] to [0, 1].
func SineData(rng *rand.Rand, n, seqLen, dim int) []Window {
	out := make([]Window, n)
	for i := range n {
		// one backing array per window keeps its rows contiguous
		buf := make([]float64, seqLen*dim)
		w := make(Window, seqLen)
		for t := range seqLen {
			w[t] = buf[t*dim : (t+1)*dim]
		}
		for k := range dim {
			freq := rng.Float64() * sineMaxParam
			phase := rng.Float64() * sineMaxParam
			for t := range seqLen {
				w[t][k] = (math.Sin(freq*float64(t)+phase) + 1) * 0.5
			}
		}
		out[i] = w
	}
	return out
}
