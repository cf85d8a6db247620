package prng

import (
	"math/bits"
	"testing"

	"github.com/rayozzie/tumbler/pkg/engine"
	"github.com/rayozzie/tumbler/pkg/mix"
)

var (
	_ engine.Engine = (*Xoroshiro128Plus)(nil)
	_ engine.Engine = (*Xoroshiro128PlusPlus)(nil)
	_ engine.Engine = (*Xoroshiro128StarStar)(nil)
	_ engine.Engine = (*Xoshiro256Plus)(nil)
	_ engine.Engine = (*Xoshiro256PlusPlus)(nil)
	_ engine.Engine = (*Xoshiro256StarStar)(nil)
	_ engine.Engine = (*PCG32)(nil)
)

func TestKnownSequences(t *testing.T) {
	tests := []struct {
		name string
		eng  engine.Engine
		want []uint64
	}{
		{"xoroshiro128+", NewXoroshiro128Plus(42), []uint64{
			0x78411eb71b3b5e1d, 0x93b8151dc7e02d07, 0xc1ac1042ffd2028a, 0x4a3b5679cde83e92,
		}},
		{"xoroshiro128++", NewXoroshiro128PlusPlus(42), []uint64{
			0xfb45689cec265f17, 0xff81d9121cb5cff9, 0x63e9bbaaaeb73d8d, 0x3d18f0abf54b08b3,
		}},
		{"xoroshiro128**", NewXoroshiro128StarStar(42), []uint64{
			0x69e85b3631381baa, 0x02b97848619325e5, 0x04b60486f42e0ade, 0xe0eb656357479e23,
		}},
		{"xoshiro256+", NewXoshiro256Plus(42), []uint64{
			0xb5c1261ebcabb96b, 0xe502f6fe4c51d8bc, 0x733ef464ae79b04e, 0x47632216fc181b6c,
		}},
		{"xoshiro256++", NewXoshiro256PlusPlus(42), []uint64{
			0xcd358802e5c64f28, 0x6f7d563aa6d74d46, 0x2a5e5032cdf0b1ee, 0x1badf11f93725d7e,
		}},
		{"xoshiro256**", NewXoshiro256StarStar(42), []uint64{
			0x4f4abcae868d76e2, 0x2543feda05bf5f38, 0x3b8b416b32afe767, 0x6dfe97486a029bb5,
		}},
		{"pcg32", NewPCG32(42), []uint64{
			0xc2f57bd66b07c4a9, 0x72b7b29b44215383, 0xf5af5ead68beb632, 0xcbc7312cd5efc7d7,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i, want := range tt.want {
				if got := tt.eng.Next(); got != want {
					t.Errorf("output %d = %#x, want %#x", i, got, want)
				}
			}
		})
	}
}

func TestSeedExpansion(t *testing.T) {
	// Seeding must expand through SplitMix64 word by word.
	s0, s1 := NewXoroshiro128Plus(7).State()
	if s0 != mix.SplitMix64(7) || s1 != mix.SplitMix64(8) {
		t.Errorf("seed 7 expanded to %#x,%#x, want %#x,%#x",
			s0, s1, mix.SplitMix64(7), mix.SplitMix64(8))
	}

	s := NewXoshiro256StarStar(7).State()
	want := [4]uint64{0x63cbe1e459320dd7, 0x9e5651b0ef953636, 0xaeaf52febe706064, 0x088712be8a582fca}
	if s != want {
		t.Errorf("seed 7 expanded to %#x, want %#x", s, want)
	}
}

func TestStateResumption(t *testing.T) {
	t.Run("xoroshiro128**", func(t *testing.T) {
		a := NewXoroshiro128StarStar(123)
		for i := 0; i < 100; i++ {
			a.Next()
		}
		b := NewXoroshiro128StarStarState(a.State())
		for i := 0; i < 16; i++ {
			if va, vb := a.Next(), b.Next(); va != vb {
				t.Fatalf("resumed generator diverged at step %d: %#x vs %#x", i, va, vb)
			}
		}
	})

	t.Run("xoshiro256++", func(t *testing.T) {
		a := NewXoshiro256PlusPlus(123)
		for i := 0; i < 100; i++ {
			a.Next()
		}
		b := NewXoshiro256PlusPlusState(a.State())
		for i := 0; i < 16; i++ {
			if va, vb := a.Next(), b.Next(); va != vb {
				t.Fatalf("resumed generator diverged at step %d: %#x vs %#x", i, va, vb)
			}
		}
	})

	t.Run("pcg32", func(t *testing.T) {
		a := NewPCG32(123)
		for i := 0; i < 100; i++ {
			a.Next()
		}
		b := NewPCG32State(a.State())
		for i := 0; i < 16; i++ {
			if va, vb := a.Next(), b.Next(); va != vb {
				t.Fatalf("resumed generator diverged at step %d: %#x vs %#x", i, va, vb)
			}
		}
	})
}

func TestPCG32Advance(t *testing.T) {
	a := NewPCG32(42)
	b := NewPCG32(42)

	b.Advance(0)
	if a.State() != b.State() {
		t.Errorf("Advance(0) changed state: %#x vs %#x", b.State(), a.State())
	}

	for i := 0; i < 6; i++ {
		a.Next32()
	}
	b.Advance(6)
	if a.State() != b.State() {
		t.Errorf("Advance(6) state %#x, want iterated state %#x", b.State(), a.State())
	}
	if va, vb := a.Next32(), b.Next32(); va != vb {
		t.Errorf("post-jump outputs diverged: %#x vs %#x", va, vb)
	}
}

func TestPCG32AdvanceThenNext(t *testing.T) {
	p := NewPCG32(99)
	p.Advance(8)
	if got := p.Next(); got != 0xc193eb868a9d0424 {
		t.Errorf("value after Advance(8) = %#x, want 0xc193eb868a9d0424", got)
	}

	// Eight 32-bit steps are four packed values, so the jump lands on
	// the fifth.
	q := NewPCG32(99)
	var fifth uint64
	for i := 0; i < 5; i++ {
		fifth = q.Next()
	}
	if fifth != 0xc193eb868a9d0424 {
		t.Errorf("fifth value = %#x, want 0xc193eb868a9d0424", fifth)
	}
}

func TestDistinctSeedsDiverge(t *testing.T) {
	a := NewXoshiro256Plus(1)
	b := NewXoshiro256Plus(2)
	same := 0
	for i := 0; i < 64; i++ {
		if a.Next() == b.Next() {
			same++
		}
	}
	if same > 1 {
		t.Errorf("%d of 64 outputs matched across different seeds", same)
	}
}

func TestFamilyBitBalance(t *testing.T) {
	engines := []struct {
		name string
		eng  engine.Engine
	}{
		{"xoroshiro128+", NewXoroshiro128Plus(2025)},
		{"xoroshiro128++", NewXoroshiro128PlusPlus(2025)},
		{"xoroshiro128**", NewXoroshiro128StarStar(2025)},
		{"xoshiro256+", NewXoshiro256Plus(2025)},
		{"xoshiro256++", NewXoshiro256PlusPlus(2025)},
		{"xoshiro256**", NewXoshiro256StarStar(2025)},
		{"pcg32", NewPCG32(2025)},
	}
	for _, tt := range engines {
		t.Run(tt.name, func(t *testing.T) {
			const words = 65536
			ones := 0
			for i := 0; i < words; i++ {
				ones += bits.OnesCount64(tt.eng.Next())
			}
			total := words * 64
			if diff := ones - total/2; diff < -8000 || diff > 8000 {
				t.Errorf("bit balance: %d ones of %d bits, outside tolerance", ones, total)
			}
		})
	}
}
