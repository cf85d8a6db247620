package prng

// PCG32 is the pcg32 generator: a 64-bit linear congruential state with
// an xorshift-rotate output permutation. Unlike the shift-register
// generators it supports jumping an arbitrary distance in logarithmic
// time via Advance.
type PCG32 struct {
	state uint64
}

const (
	pcgMult uint64 = 6364136223846793005
	pcgInc  uint64 = 1442695040888963407
)

// NewPCG32 seeds a generator. The stream is fixed by stepping once from
// zero, adding the seed, and stepping again.
func NewPCG32(seed uint64) *PCG32 {
	p := &PCG32{}
	p.Next32()
	p.state += seed
	p.Next32()
	return p
}

// NewPCG32State resumes a generator from its raw LCG state.
func NewPCG32State(state uint64) *PCG32 {
	return &PCG32{state: state}
}

// Next32 advances the LCG once and returns the permuted 32-bit output.
func (p *PCG32) Next32() uint32 {
	old := p.state
	p.state = old*pcgMult + pcgInc
	v := uint32((old ^ (old >> 18)) >> 27)
	rot := uint32(old >> 59)
	return (v >> rot) | (v << ((-rot) & 31))
}

// Next packs two 32-bit outputs into one value, first half high.
func (p *PCG32) Next() uint64 {
	hi := uint64(p.Next32())
	lo := uint64(p.Next32())
	return hi<<32 | lo
}

// Advance jumps delta 32-bit steps ahead in logarithmic time by
// composing the LCG through a doubling accumulator. A huge delta wraps,
// so jumping backward is Advance(2^64 - n).
func (p *PCG32) Advance(delta uint64) {
	accMult := uint64(1)
	accPlus := uint64(0)
	curMult := pcgMult
	curPlus := pcgInc
	for delta > 0 {
		if delta&1 != 0 {
			accMult *= curMult
			accPlus = accPlus*curMult + curPlus
		}
		curPlus = (curMult + 1) * curPlus
		curMult *= curMult
		delta >>= 1
	}
	p.state = accMult*p.state + accPlus
}

// State returns the raw LCG state.
func (p *PCG32) State() uint64 {
	return p.state
}
