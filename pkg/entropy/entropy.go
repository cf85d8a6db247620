// Package entropy provides the sources of unpredictable 32-bit words used
// to key and seed tumbler engines. Sources range from the operating system
// CSPRNG through userspace keystreams to an optional quantum provider, and
// any set of them can be XOR-combined so the result is at least as strong
// as the strongest member.
package entropy

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	mrand "math/rand"
	rand2 "math/rand/v2"
	"sync"

	"github.com/rayozzie/tumbler/pkg/trace"
	"github.com/seehuhn/mt19937"
	"golang.org/x/crypto/chacha20"
)

// Source is a provider of 32-bit entropy words. Implementations must be
// safe for concurrent use.
type Source interface {
	// Word32 draws the next 32-bit word from the source.
	Word32(ctx context.Context) (uint32, error)
}

// rekeyWordLimit bounds how many words a ChaChaSource emits under one key.
const rekeyWordLimit = 1 << 28

// CryptoSource draws words from the operating system CSPRNG via
// crypto/rand.
type CryptoSource struct{}

// NewCryptoSource creates an entropy source backed by crypto/rand.
func NewCryptoSource() *CryptoSource {
	return &CryptoSource{}
}

// Word32 draws one word from crypto/rand.
func (s *CryptoSource) Word32(ctx context.Context) (uint32, error) {
	log := trace.FromContext(ctx).WithPrefix("CRYPTO-ENTROPY")
	var buf [4]byte
	if _, err := crand.Read(buf[:]); err != nil {
		log.Error(fmt.Errorf("crypto/rand read failed: %w", err))
		return 0, fmt.Errorf("crypto entropy: %w", err)
	}
	log.Tracef("Drew word from crypto/rand")
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// ChaChaSource draws words from a ChaCha20 keystream keyed from
// crypto/rand. The keystream is rekeyed after rekeyWordLimit words.
type ChaChaSource struct {
	lock   sync.Mutex
	cipher *chacha20.Cipher
	words  uint64
}

// NewChaChaSource creates a ChaCha20 keystream entropy source. It panics
// if the initial key material cannot be read from crypto/rand.
func NewChaChaSource() *ChaChaSource {
	cipher, err := newChaChaCipher()
	if err != nil {
		panic(fmt.Sprintf("failed to key ChaCha20 entropy source: %v", err))
	}
	return &ChaChaSource{cipher: cipher}
}

func newChaChaCipher() (*chacha20.Cipher, error) {
	key := make([]byte, chacha20.KeySize)
	nonce := make([]byte, chacha20.NonceSize)
	if _, err := crand.Read(key); err != nil {
		return nil, fmt.Errorf("chacha entropy key: %w", err)
	}
	if _, err := crand.Read(nonce); err != nil {
		return nil, fmt.Errorf("chacha entropy nonce: %w", err)
	}
	return chacha20.NewUnauthenticatedCipher(key, nonce)
}

// Word32 draws one word from the keystream, rekeying first when the
// current key has reached its word limit.
func (s *ChaChaSource) Word32(ctx context.Context) (uint32, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.words >= rekeyWordLimit {
		log := trace.FromContext(ctx).WithPrefix("CHACHA-ENTROPY")
		log.Debugf("Rekeying keystream after %d words", s.words)
		cipher, err := newChaChaCipher()
		if err != nil {
			log.Error(fmt.Errorf("keystream rekey failed: %w", err))
			return 0, err
		}
		s.cipher = cipher
		s.words = 0
	}

	var buf [4]byte
	s.cipher.XORKeyStream(buf[:], buf[:])
	s.words++
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// PCGSource draws words from a PCG generator seeded from crypto/rand.
type PCGSource struct {
	lock sync.Mutex
	rand *rand2.Rand
}

// NewPCGSource creates a PCG entropy source with a random seed. It panics
// if the seed cannot be read from crypto/rand.
func NewPCGSource() *PCGSource {
	var seed [16]byte
	if _, err := crand.Read(seed[:]); err != nil {
		panic(fmt.Sprintf("failed to seed PCG entropy source: %v", err))
	}
	return NewPCGSourceSeeded(
		binary.LittleEndian.Uint64(seed[0:8]),
		binary.LittleEndian.Uint64(seed[8:16]),
	)
}

// NewPCGSourceSeeded creates a PCG entropy source with a fixed seed,
// giving a reproducible word sequence.
func NewPCGSourceSeeded(hi, lo uint64) *PCGSource {
	return &PCGSource{rand: rand2.New(rand2.NewPCG(hi, lo))}
}

// Word32 draws one word from the PCG stream.
func (s *PCGSource) Word32(ctx context.Context) (uint32, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return uint32(s.rand.Uint64()), nil
}

// MTSource draws words from a Mersenne Twister seeded from crypto/rand.
type MTSource struct {
	lock sync.Mutex
	rand *mrand.Rand
}

// NewMTSource creates a Mersenne Twister entropy source with a random
// seed. It panics if the seed cannot be read from crypto/rand.
func NewMTSource() *MTSource {
	var seed [8]byte
	if _, err := crand.Read(seed[:]); err != nil {
		panic(fmt.Sprintf("failed to seed Mersenne Twister entropy source: %v", err))
	}
	return NewMTSourceSeeded(int64(binary.LittleEndian.Uint64(seed[:])))
}

// NewMTSourceSeeded creates a Mersenne Twister entropy source with a
// fixed seed, giving a reproducible word sequence.
func NewMTSourceSeeded(seed int64) *MTSource {
	mt := mt19937.New()
	mt.Seed(seed)
	return &MTSource{rand: mrand.New(mt)}
}

// Word32 draws one word from the Mersenne Twister stream.
func (s *MTSource) Word32(ctx context.Context) (uint32, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return uint32(s.rand.Uint64()), nil
}

// MultiSource XORs the words of several sources. As long as one member
// is unpredictable, so is the combination.
type MultiSource struct {
	sources []Source
}

// NewMultiSource combines the given sources into one.
func NewMultiSource(sources ...Source) *MultiSource {
	return &MultiSource{sources: sources}
}

// Word32 draws one word from each member source and XORs them together.
func (s *MultiSource) Word32(ctx context.Context) (uint32, error) {
	log := trace.FromContext(ctx).WithPrefix("MULTI-ENTROPY")
	var word uint32
	for i, src := range s.sources {
		w, err := src.Word32(ctx)
		if err != nil {
			return 0, fmt.Errorf("entropy source %d: %w", i, err)
		}
		word ^= w
	}
	log.Tracef("Combined %d entropy sources", len(s.sources))
	return word, nil
}

// NewDefaultSource creates the standard entropy stack: crypto/rand, a
// ChaCha20 keystream, PCG, and Mersenne Twister, XOR-combined. When
// quantum entropy is enabled on the context, the ANU quantum source is
// added as a fifth member.
func NewDefaultSource(ctx context.Context) *MultiSource {
	log := trace.FromContext(ctx).WithPrefix("ENTROPY")

	sources := []Source{
		NewCryptoSource(),
		NewChaChaSource(),
		NewPCGSource(),
		NewMTSource(),
	}
	if IsQuantumEnabled(ctx) {
		log.Infof("Quantum entropy source enabled")
		sources = append(sources, NewQuantumSource())
	}

	log.Debugf("Default entropy source combines %d providers", len(sources))
	return NewMultiSource(sources...)
}
