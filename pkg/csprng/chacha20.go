// Package csprng implements the cipher-based tumbler engines: a ChaCha20
// keystream engine and a reduced AES counter-mode engine. Each step of an
// engine produces one keystream block, and Next folds that block to the
// 64-bit engine contract. The raw block is available through NextBlock for
// callers that want the full width.
package csprng

import (
	"context"
	"fmt"
	"math/bits"

	"github.com/rayozzie/tumbler/pkg/entropy"
	"github.com/rayozzie/tumbler/pkg/trace"
)

// The four constant words spell "expand 32-byte k".
const (
	chachaConst0 = 0x61707865
	chachaConst1 = 0x3320646e
	chachaConst2 = 0x79622d32
	chachaConst3 = 0x6b206574
)

// ChaCha20 is a keystream engine over the ChaCha20 block function. State
// words 0-3 hold the constants, 4-11 the key, 12-13 a 64-bit block
// counter, and 14-15 the nonce. Each step emits the 512-bit block for the
// current counter value and then advances the counter.
type ChaCha20 struct {
	state [16]uint32
}

// NewChaCha20 keys an engine from six entropy draws: four key words
// filling state 4 through 7 and two nonce words. Key words 8 through 11
// stay zero, giving an effective 128-bit key.
func NewChaCha20(ctx context.Context, src entropy.Source) (*ChaCha20, error) {
	log := trace.FromContext(ctx).WithPrefix("CHACHA-ENGINE")

	var c ChaCha20
	c.state[0] = chachaConst0
	c.state[1] = chachaConst1
	c.state[2] = chachaConst2
	c.state[3] = chachaConst3
	for i := 4; i < 8; i++ {
		w, err := src.Word32(ctx)
		if err != nil {
			return nil, fmt.Errorf("chacha20 key: %w", err)
		}
		c.state[i] = w
	}
	for i := 14; i < 16; i++ {
		w, err := src.Word32(ctx)
		if err != nil {
			return nil, fmt.Errorf("chacha20 nonce: %w", err)
		}
		c.state[i] = w
	}

	log.Debugf("Keyed ChaCha20 engine from entropy")
	return &c, nil
}

// NewChaCha20Key creates an engine with an explicit 256-bit key and
// 64-bit nonce. The block counter starts at zero.
func NewChaCha20Key(key [8]uint32, nonce [2]uint32) *ChaCha20 {
	var c ChaCha20
	c.state[0] = chachaConst0
	c.state[1] = chachaConst1
	c.state[2] = chachaConst2
	c.state[3] = chachaConst3
	copy(c.state[4:12], key[:])
	c.state[14] = nonce[0]
	c.state[15] = nonce[1]
	return &c
}

// quarterRound mixes four state words in place.
func quarterRound(s *[16]uint32, a, b, c, d int) {
	s[a] += s[b]
	s[d] = bits.RotateLeft32(s[d]^s[a], 16)
	s[c] += s[d]
	s[b] = bits.RotateLeft32(s[b]^s[c], 12)
	s[a] += s[b]
	s[d] = bits.RotateLeft32(s[d]^s[a], 8)
	s[c] += s[d]
	s[b] = bits.RotateLeft32(s[b]^s[c], 7)
}

// NextBlock advances the engine one step and returns the 512-bit
// keystream block as sixteen words: ten double rounds over a working copy
// of the state, the pre-round state added back, then the counter bumped.
func (c *ChaCha20) NextBlock() [16]uint32 {
	w := c.state
	for round := 0; round < 10; round++ {
		quarterRound(&w, 0, 4, 8, 12)
		quarterRound(&w, 1, 5, 9, 13)
		quarterRound(&w, 2, 6, 10, 14)
		quarterRound(&w, 3, 7, 11, 15)
		quarterRound(&w, 0, 5, 10, 15)
		quarterRound(&w, 1, 6, 11, 12)
		quarterRound(&w, 2, 7, 8, 13)
		quarterRound(&w, 3, 4, 9, 14)
	}
	for i := range w {
		w[i] += c.state[i]
	}

	c.state[12]++
	if c.state[12] == 0 {
		c.state[13]++
	}
	return w
}

// Next folds one keystream block to 64 bits: adjacent words pair into
// eight lanes (even word high) and the lanes XOR together.
func (c *ChaCha20) Next() uint64 {
	block := c.NextBlock()
	var v uint64
	for i := 0; i < 16; i += 2 {
		v ^= uint64(block[i])<<32 | uint64(block[i+1])
	}
	return v
}

// BlockBits returns the keystream block width.
func (c *ChaCha20) BlockBits() int {
	return 512
}
