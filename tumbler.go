// Package tumbler assembles the random-value engines behind name-based
// construction and provides the streaming operations over them: bulk
// generation with selectable output formats and typed sampling. The
// engines themselves live in pkg/csprng and pkg/prng; entropy keying
// lives in pkg/entropy.
package tumbler

import (
	"context"
	"fmt"
	"strings"

	"github.com/rayozzie/tumbler/pkg/csprng"
	"github.com/rayozzie/tumbler/pkg/engine"
	"github.com/rayozzie/tumbler/pkg/entropy"
	"github.com/rayozzie/tumbler/pkg/mix"
	"github.com/rayozzie/tumbler/pkg/prng"
	"github.com/rayozzie/tumbler/pkg/trace"
)

// DefaultEngine is used when a configuration names no engine.
const DefaultEngine = "chacha20"

// EngineNames lists the engine names NewEngine accepts.
func EngineNames() []string {
	return []string{
		"aesctr", "chacha20", "pcg32",
		"xoroshiro128p", "xoroshiro128pp", "xoroshiro128ss",
		"xoshiro256p", "xoshiro256pp", "xoshiro256ss",
	}
}

// seedSource scripts an entropy source with words expanded from seed, so
// the cipher engines key deterministically: draw i yields the low word
// of SplitMix64(seed+i).
func seedSource(seed uint64, words int) *entropy.FixedSource {
	expanded := make([]uint64, words)
	mix.ExpandSeed(seed, expanded)
	w32 := make([]uint32, words)
	for i, w := range expanded {
		w32[i] = uint32(w)
	}
	return entropy.NewFixedSource(w32...)
}

// NewEngine constructs the named engine. When seeded is set construction
// is fully deterministic: the shift-register family and pcg32 expand the
// seed directly, and the cipher engines draw their key words from a
// scripted source filled by the same expansion. Otherwise key material
// comes from src, or from the default entropy stack when src is nil.
func NewEngine(ctx context.Context, name string, src entropy.Source, seeded bool, seed uint64) (engine.Engine, error) {
	log := trace.FromContext(ctx).WithPrefix("ENGINE")
	if src == nil && !seeded {
		src = entropy.NewDefaultSource(ctx)
	}

	cipherSource := func(words int) entropy.Source {
		if seeded {
			return seedSource(seed, words)
		}
		return src
	}
	prngSeed := func() (uint64, error) {
		if seeded {
			return seed, nil
		}
		hi, err := src.Word32(ctx)
		if err != nil {
			return 0, fmt.Errorf("engine seed: %w", err)
		}
		lo, err := src.Word32(ctx)
		if err != nil {
			return 0, fmt.Errorf("engine seed: %w", err)
		}
		return uint64(hi)<<32 | uint64(lo), nil
	}

	log.Debugf("Constructing engine %s (seeded=%v)", name, seeded)
	switch name {
	case "chacha20":
		return csprng.NewChaCha20(ctx, cipherSource(6))
	case "aesctr":
		return csprng.NewAESCTR(ctx, cipherSource(8))
	case "xoroshiro128p":
		s, err := prngSeed()
		if err != nil {
			return nil, err
		}
		return prng.NewXoroshiro128Plus(s), nil
	case "xoroshiro128pp":
		s, err := prngSeed()
		if err != nil {
			return nil, err
		}
		return prng.NewXoroshiro128PlusPlus(s), nil
	case "xoroshiro128ss":
		s, err := prngSeed()
		if err != nil {
			return nil, err
		}
		return prng.NewXoroshiro128StarStar(s), nil
	case "xoshiro256p":
		s, err := prngSeed()
		if err != nil {
			return nil, err
		}
		return prng.NewXoshiro256Plus(s), nil
	case "xoshiro256pp":
		s, err := prngSeed()
		if err != nil {
			return nil, err
		}
		return prng.NewXoshiro256PlusPlus(s), nil
	case "xoshiro256ss":
		s, err := prngSeed()
		if err != nil {
			return nil, err
		}
		return prng.NewXoshiro256StarStar(s), nil
	case "pcg32":
		s, err := prngSeed()
		if err != nil {
			return nil, err
		}
		return prng.NewPCG32(s), nil
	default:
		return nil, fmt.Errorf("unknown engine %q (valid: %s)", name, strings.Join(EngineNames(), ", "))
	}
}
