// Package mix provides the small bit-mixing primitives shared by every
// tumbler engine: rotate-left over 32- and 64-bit words, and the splitmix64
// finalizer used to expand a single scalar seed into well-mixed state words.
package mix

import "math/bits"

// Rotl32 rotates x left by k bits.
func Rotl32(x uint32, k int) uint32 {
	return bits.RotateLeft32(x, k)
}

// Rotl64 rotates x left by k bits.
func Rotl64(x uint64, k int) uint64 {
	return bits.RotateLeft64(x, k)
}

// SplitMix64 applies the splitmix64 finalizing mix to x. The output is
// well distributed even for consecutive inputs, which is what makes it
// suitable for deriving multi-word engine states from one scalar seed.
func SplitMix64(x uint64) uint64 {
	z := x + 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// ExpandSeed fills out with SplitMix64(seed+i) for each index i. Every
// multi-word engine in tumbler derives its initial state this way, so two
// engines built from the same seed always start from the same state.
func ExpandSeed(seed uint64, out []uint64) {
	for i := range out {
		out[i] = SplitMix64(seed + uint64(i))
	}
}
