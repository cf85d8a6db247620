package csprng

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/rayozzie/tumbler/pkg/entropy"
	"github.com/rayozzie/tumbler/pkg/trace"
)

// aesSbox is the AES substitution box.
var aesSbox = [256]byte{
	0x63, 0x7c, 0x77, 0x7b, 0xf2, 0x6b, 0x6f, 0xc5, 0x30, 0x01, 0x67, 0x2b, 0xfe, 0xd7, 0xab, 0x76,
	0xca, 0x82, 0xc9, 0x7d, 0xfa, 0x59, 0x47, 0xf0, 0xad, 0xd4, 0xa2, 0xaf, 0x9c, 0xa4, 0x72, 0xc0,
	0xb7, 0xfd, 0x93, 0x26, 0x36, 0x3f, 0xf7, 0xcc, 0x34, 0xa5, 0xe5, 0xf1, 0x71, 0xd8, 0x31, 0x15,
	0x04, 0xc7, 0x23, 0xc3, 0x18, 0x96, 0x05, 0x9a, 0x07, 0x12, 0x80, 0xe2, 0xeb, 0x27, 0xb2, 0x75,
	0x09, 0x83, 0x2c, 0x1a, 0x1b, 0x6e, 0x5a, 0xa0, 0x52, 0x3b, 0xd6, 0xb3, 0x29, 0xe3, 0x2f, 0x84,
	0x53, 0xd1, 0x00, 0xed, 0x20, 0xfc, 0xb1, 0x5b, 0x6a, 0xcb, 0xbe, 0x39, 0x4a, 0x4c, 0x58, 0xcf,
	0xd0, 0xef, 0xaa, 0xfb, 0x43, 0x4d, 0x33, 0x85, 0x45, 0xf9, 0x02, 0x7f, 0x50, 0x3c, 0x9f, 0xa8,
	0x51, 0xa3, 0x40, 0x8f, 0x92, 0x9d, 0x38, 0xf5, 0xbc, 0xb6, 0xda, 0x21, 0x10, 0xff, 0xf3, 0xd2,
	0xcd, 0x0c, 0x13, 0xec, 0x5f, 0x97, 0x44, 0x17, 0xc4, 0xa7, 0x7e, 0x3d, 0x64, 0x5d, 0x19, 0x73,
	0x60, 0x81, 0x4f, 0xdc, 0x22, 0x2a, 0x90, 0x88, 0x46, 0xee, 0xb8, 0x14, 0xde, 0x5e, 0x0b, 0xdb,
	0xe0, 0x32, 0x3a, 0x0a, 0x49, 0x06, 0x24, 0x5c, 0xc2, 0xd3, 0xac, 0x62, 0x91, 0x95, 0xe4, 0x79,
	0xe7, 0xc8, 0x37, 0x6d, 0x8d, 0xd5, 0x4e, 0xa9, 0x6c, 0x56, 0xf4, 0xea, 0x65, 0x7a, 0xae, 0x08,
	0xba, 0x78, 0x25, 0x2e, 0x1c, 0xa6, 0xb4, 0xc6, 0xe8, 0xdd, 0x74, 0x1f, 0x4b, 0xbd, 0x8b, 0x8a,
	0x70, 0x3e, 0xb5, 0x66, 0x48, 0x03, 0xf6, 0x0e, 0x61, 0x35, 0x57, 0xb9, 0x86, 0xc1, 0x1d, 0x9e,
	0xe1, 0xf8, 0x98, 0x11, 0x69, 0xd9, 0x8e, 0x94, 0x9b, 0x1e, 0x87, 0xe9, 0xce, 0x55, 0x28, 0xdf,
	0x8c, 0xa1, 0x89, 0x0d, 0xbf, 0xe6, 0x42, 0x68, 0x41, 0x99, 0x2d, 0x0f, 0xb0, 0x54, 0xbb, 0x16,
}

// AESCTR is a counter-mode engine over a single reduced AES round: key
// whitening, SubBytes, ShiftRows, and a second schedule XOR, with no
// MixColumns and no further rounds. This transform is a fixed bijection
// on blocks, which keeps counter-mode outputs collision-free within a
// run; it is NOT the full AES cipher.
type AESCTR struct {
	counter  [16]byte
	schedule [176]byte
}

// NewAESCTR keys an engine from eight entropy draws: four words fill the
// counter block little-endian and four fill the cipher key big-endian.
func NewAESCTR(ctx context.Context, src entropy.Source) (*AESCTR, error) {
	log := trace.FromContext(ctx).WithPrefix("AESCTR-ENGINE")

	var a AESCTR
	for i := 0; i < 4; i++ {
		w, err := src.Word32(ctx)
		if err != nil {
			return nil, fmt.Errorf("aesctr counter: %w", err)
		}
		binary.LittleEndian.PutUint32(a.counter[i*4:], w)
	}
	var key [16]byte
	for i := 0; i < 4; i++ {
		w, err := src.Word32(ctx)
		if err != nil {
			return nil, fmt.Errorf("aesctr key: %w", err)
		}
		binary.BigEndian.PutUint32(key[i*4:], w)
	}
	a.expandKey(key)

	log.Debugf("Keyed AESCTR engine from entropy")
	return &a, nil
}

// NewAESCTRKey creates an engine with an explicit 128-bit key and a
// nonce that becomes the initial counter block.
func NewAESCTRKey(key [16]byte, nonce [16]byte) *AESCTR {
	var a AESCTR
	a.counter = nonce
	a.expandKey(key)
	return &a
}

// expandKey builds the 176-byte schedule. Each four-byte word is the
// word one round back XOR the previous word; on round boundaries the
// previous word is first rotated right one byte, substituted, and the
// round constant 0x01 lands on byte (round-1) mod 4.
func (a *AESCTR) expandKey(key [16]byte) {
	ks := a.schedule[:]
	copy(ks[:16], key[:])
	for i := 4; i < 44; i++ {
		var t [4]byte
		copy(t[:], ks[(i-1)*4:i*4])
		if i%4 == 0 {
			t = [4]byte{t[3], t[0], t[1], t[2]}
			for j := range t {
				t[j] = aesSbox[t[j]]
			}
			t[(i/4-1)%4] ^= 0x01
		}
		for j := 0; j < 4; j++ {
			ks[i*4+j] = ks[(i-4)*4+j] ^ t[j]
		}
	}
}

// nextBlock encrypts the current counter through the reduced round and
// then increments the counter.
func (a *AESCTR) nextBlock() [16]byte {
	b := a.counter

	for i := range b {
		b[i] ^= a.schedule[i]
	}
	for i := range b {
		b[i] = aesSbox[b[i]]
	}
	b = [16]byte{
		b[0], b[5], b[10], b[15],
		b[4], b[9], b[14], b[3],
		b[8], b[13], b[2], b[7],
		b[12], b[1], b[6], b[11],
	}
	for i := range b {
		b[i] ^= a.schedule[16+i]
	}

	a.incrementCounter()
	return b
}

// incrementCounter steps the 128-bit counter. The low word is the last
// four bytes, little-endian, with carries rippling toward byte 0.
func (a *AESCTR) incrementCounter() {
	for off := 12; off >= 0; off -= 4 {
		v := binary.LittleEndian.Uint32(a.counter[off:]) + 1
		binary.LittleEndian.PutUint32(a.counter[off:], v)
		if v != 0 {
			return
		}
	}
}

// Next encrypts one counter block and folds it to 64 bits: the block's
// two little-endian halves XORed together.
func (a *AESCTR) Next() uint64 {
	b := a.nextBlock()
	hi := binary.LittleEndian.Uint64(b[0:8])
	lo := binary.LittleEndian.Uint64(b[8:16])
	return hi ^ lo
}

// NextBlock advances the engine one step and returns the 128-bit block
// as two little-endian 64-bit halves.
func (a *AESCTR) NextBlock() (uint64, uint64) {
	b := a.nextBlock()
	return binary.LittleEndian.Uint64(b[0:8]), binary.LittleEndian.Uint64(b[8:16])
}

// BlockBits returns the keystream block width.
func (a *AESCTR) BlockBits() int {
	return 128
}
