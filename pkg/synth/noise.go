package synth

// Jitter returns a deterministic pseudo-random value in [0, 1) keyed by k,
// quantized to steps of 0.001.
//
// k is mixed with the SplitMix64 finalizer (Steele, Lea & Flood 2014):
//
//	z = k + 0x9E3779B97F4A7C15
//	z = (z ^ z>>30) * 0xBF58476D1CE4E5B9
//	z = (z ^ z>>27) * 0x94D049BB133111EB
//	z = z ^ z>>31
//
// and the result is (z mod 1000) / 1000. All arithmetic is unsigned 64-bit
// with wraparound, so any language can reproduce it bit for bit.
func Jitter(k uint64) float64 {
	z := k + 0x9E3779B97F4A7C15
	z = (z ^ z>>30) * 0xBF58476D1CE4E5B9
	z = (z ^ z>>27) * 0x94D049BB133111EB
	z ^= z >> 31
	return float64(z%1000) / 1000
}
