package prng

import "github.com/rayozzie/tumbler/pkg/mix"

// xoshiroState is the 256-bit state and scramble shared by the three
// xoshiro256 variants; only the output function differs.
type xoshiroState struct {
	s [4]uint64
}

func (x *xoshiroState) scramble() {
	t := x.s[1] << 17
	x.s[2] ^= x.s[0]
	x.s[3] ^= x.s[1]
	x.s[1] ^= x.s[2]
	x.s[0] ^= x.s[3]
	x.s[2] ^= t
	x.s[3] = mix.Rotl64(x.s[3], 45)
}

// State returns the current state words.
func (x *xoshiroState) State() [4]uint64 {
	return x.s
}

// Xoshiro256Plus is the xoshiro256+ generator.
type Xoshiro256Plus struct {
	xoshiroState
}

// NewXoshiro256Plus seeds a generator by expanding seed with SplitMix64.
func NewXoshiro256Plus(seed uint64) *Xoshiro256Plus {
	g := &Xoshiro256Plus{}
	mix.ExpandSeed(seed, g.s[:])
	return g
}

// NewXoshiro256PlusState resumes a generator from explicit state words.
func NewXoshiro256PlusState(state [4]uint64) *Xoshiro256Plus {
	return &Xoshiro256Plus{xoshiroState{s: state}}
}

// Next returns s0+s3, then scrambles the state.
func (x *Xoshiro256Plus) Next() uint64 {
	r := x.s[0] + x.s[3]
	x.scramble()
	return r
}

// Xoshiro256PlusPlus is the xoshiro256++ generator.
type Xoshiro256PlusPlus struct {
	xoshiroState
}

// NewXoshiro256PlusPlus seeds a generator by expanding seed with
// SplitMix64.
func NewXoshiro256PlusPlus(seed uint64) *Xoshiro256PlusPlus {
	g := &Xoshiro256PlusPlus{}
	mix.ExpandSeed(seed, g.s[:])
	return g
}

// NewXoshiro256PlusPlusState resumes a generator from explicit state
// words.
func NewXoshiro256PlusPlusState(state [4]uint64) *Xoshiro256PlusPlus {
	return &Xoshiro256PlusPlus{xoshiroState{s: state}}
}

// Next returns rotl(s0+s3,23)+s0, then scrambles the state.
func (x *Xoshiro256PlusPlus) Next() uint64 {
	r := mix.Rotl64(x.s[0]+x.s[3], 23) + x.s[0]
	x.scramble()
	return r
}

// Xoshiro256StarStar is the xoshiro256** generator.
type Xoshiro256StarStar struct {
	xoshiroState
}

// NewXoshiro256StarStar seeds a generator by expanding seed with
// SplitMix64.
func NewXoshiro256StarStar(seed uint64) *Xoshiro256StarStar {
	g := &Xoshiro256StarStar{}
	mix.ExpandSeed(seed, g.s[:])
	return g
}

// NewXoshiro256StarStarState resumes a generator from explicit state
// words.
func NewXoshiro256StarStarState(state [4]uint64) *Xoshiro256StarStar {
	return &Xoshiro256StarStar{xoshiroState{s: state}}
}

// Next returns rotl(s1*5,7)*9, then scrambles the state.
func (x *Xoshiro256StarStar) Next() uint64 {
	r := mix.Rotl64(x.s[1]*5, 7) * 9
	x.scramble()
	return r
}
