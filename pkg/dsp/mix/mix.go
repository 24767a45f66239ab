// Package mix combines audio signals.
package mix

// Crossfade blends dry into wet. wet is the wet share in [0, 1].
func Crossfade(dry, wetSignal, wet float32) float32 {
	return dry + (wetSignal-dry)*wet
}

// Sum overwrites dst with the sample-wise sum of srcs. A source shorter than
// dst only contributes its own length.
func Sum(dst []float32, srcs ...[]float32) {
	clear(dst)
	for _, src := range srcs {
		for i, x := range src[:min(len(src), len(dst))] {
			dst[i] += x
		}
	}
}
