// Package prng implements the small fast generators of the xoroshiro and
// xoshiro families plus pcg32. These are statistical generators, not
// cryptographic ones, but they satisfy the same engine contract as the
// cipher engines so callers can swap one in wherever an engine is
// accepted.
package prng

import "github.com/rayozzie/tumbler/pkg/mix"

// Xoroshiro128Plus is the xoroshiro128+ generator: 128 bits of state
// with an additive output function.
type Xoroshiro128Plus struct {
	s0, s1 uint64
}

// NewXoroshiro128Plus seeds a generator by expanding seed with SplitMix64.
func NewXoroshiro128Plus(seed uint64) *Xoroshiro128Plus {
	var s [2]uint64
	mix.ExpandSeed(seed, s[:])
	return &Xoroshiro128Plus{s0: s[0], s1: s[1]}
}

// NewXoroshiro128PlusState resumes a generator from explicit state words.
func NewXoroshiro128PlusState(s0, s1 uint64) *Xoroshiro128Plus {
	return &Xoroshiro128Plus{s0: s0, s1: s1}
}

// Next returns s0+s1, then scrambles the state.
func (x *Xoroshiro128Plus) Next() uint64 {
	r := x.s0 + x.s1
	x.s1 ^= x.s0
	x.s0 = mix.Rotl64(x.s0, 24) ^ x.s1 ^ (x.s1 << 16)
	x.s1 = mix.Rotl64(x.s1, 37)
	return r
}

// State returns the current state words.
func (x *Xoroshiro128Plus) State() (uint64, uint64) {
	return x.s0, x.s1
}

// Xoroshiro128PlusPlus is the xoroshiro128++ generator: the same state
// size as xoroshiro128+ with a rotated-sum output and 49/21/28 rotations.
type Xoroshiro128PlusPlus struct {
	s0, s1 uint64
}

// NewXoroshiro128PlusPlus seeds a generator by expanding seed with
// SplitMix64.
func NewXoroshiro128PlusPlus(seed uint64) *Xoroshiro128PlusPlus {
	var s [2]uint64
	mix.ExpandSeed(seed, s[:])
	return &Xoroshiro128PlusPlus{s0: s[0], s1: s[1]}
}

// NewXoroshiro128PlusPlusState resumes a generator from explicit state
// words.
func NewXoroshiro128PlusPlusState(s0, s1 uint64) *Xoroshiro128PlusPlus {
	return &Xoroshiro128PlusPlus{s0: s0, s1: s1}
}

// Next returns rotl(s0+s1,17)+s0, then scrambles the state.
func (x *Xoroshiro128PlusPlus) Next() uint64 {
	r := mix.Rotl64(x.s0+x.s1, 17) + x.s0
	x.s1 ^= x.s0
	x.s0 = mix.Rotl64(x.s0, 49) ^ x.s1 ^ (x.s1 << 21)
	x.s1 = mix.Rotl64(x.s1, 28)
	return r
}

// State returns the current state words.
func (x *Xoroshiro128PlusPlus) State() (uint64, uint64) {
	return x.s0, x.s1
}

// Xoroshiro128StarStar is the xoroshiro128** generator: the xoroshiro128+
// state update with a multiplicative output scrambler.
type Xoroshiro128StarStar struct {
	s0, s1 uint64
}

// NewXoroshiro128StarStar seeds a generator by expanding seed with
// SplitMix64.
func NewXoroshiro128StarStar(seed uint64) *Xoroshiro128StarStar {
	var s [2]uint64
	mix.ExpandSeed(seed, s[:])
	return &Xoroshiro128StarStar{s0: s[0], s1: s[1]}
}

// NewXoroshiro128StarStarState resumes a generator from explicit state
// words.
func NewXoroshiro128StarStarState(s0, s1 uint64) *Xoroshiro128StarStar {
	return &Xoroshiro128StarStar{s0: s0, s1: s1}
}

// Next returns rotl(s0*5,7)*9, then scrambles the state.
func (x *Xoroshiro128StarStar) Next() uint64 {
	r := mix.Rotl64(x.s0*5, 7) * 9
	x.s1 ^= x.s0
	x.s0 = mix.Rotl64(x.s0, 24) ^ x.s1 ^ (x.s1 << 16)
	x.s1 = mix.Rotl64(x.s1, 37)
	return r
}

// State returns the current state words.
func (x *Xoroshiro128StarStar) State() (uint64, uint64) {
	return x.s0, x.s1
}
