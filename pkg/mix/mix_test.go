package mix

import "testing"

func TestSplitMix64(t *testing.T) {
	tests := []struct {
		name string
		in   uint64
		want uint64
	}{
		{"zero", 0, 0xe220a8397b1dcdaf},
		{"one", 1, 0x910a2dec89025cc1},
		{"two", 2, 0x975835de1c9756ce},
		{"small", 42, 0xbdd732262feb6e95},
		{"large", 0xdeadbeef, 0x4adfb90f68c9eb9b},
		{"max", 0xffffffffffffffff, 0xe4d971771b652c20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitMix64(tt.in); got != tt.want {
				t.Errorf("SplitMix64(%#x) = %#x, want %#x", tt.in, got, tt.want)
			}
		})
	}
}

func TestExpandSeed(t *testing.T) {
	got := make([]uint64, 4)
	ExpandSeed(7, got)

	want := []uint64{
		0x63cbe1e459320dd7,
		0x9e5651b0ef953636,
		0xaeaf52febe706064,
		0x088712be8a582fca,
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ExpandSeed(7)[%d] = %#x, want %#x", i, got[i], want[i])
		}
	}

	// Word i must equal SplitMix64(seed+i) so independently derived
	// state matches regardless of slice length.
	solo := make([]uint64, 1)
	ExpandSeed(9, solo)
	if solo[0] != SplitMix64(9) {
		t.Errorf("ExpandSeed(9)[0] = %#x, want SplitMix64(9) = %#x", solo[0], SplitMix64(9))
	}
}

func TestRotl32(t *testing.T) {
	tests := []struct {
		x    uint32
		k    int
		want uint32
	}{
		{0x00000001, 1, 0x00000002},
		{0x80000000, 1, 0x00000001},
		{0x12345678, 16, 0x56781234},
		{0xdeadbeef, 0, 0xdeadbeef},
		{0xdeadbeef, 32, 0xdeadbeef},
	}
	for _, tt := range tests {
		if got := Rotl32(tt.x, tt.k); got != tt.want {
			t.Errorf("Rotl32(%#x, %d) = %#x, want %#x", tt.x, tt.k, got, tt.want)
		}
	}
}

func TestRotl64(t *testing.T) {
	tests := []struct {
		x    uint64
		k    int
		want uint64
	}{
		{0x0000000000000001, 1, 0x0000000000000002},
		{0x8000000000000000, 1, 0x0000000000000001},
		{0x0123456789abcdef, 32, 0x89abcdef01234567},
		{0xdeadbeefcafef00d, 0, 0xdeadbeefcafef00d},
		{0xdeadbeefcafef00d, 64, 0xdeadbeefcafef00d},
	}
	for _, tt := range tests {
		if got := Rotl64(tt.x, tt.k); got != tt.want {
			t.Errorf("Rotl64(%#x, %d) = %#x, want %#x", tt.x, tt.k, got, tt.want)
		}
	}
}
